// Package menu provides the title menu scene.
package menu

import (
	"image/color"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/rage/internal/application/scene"
	"github.com/younwookim/rage/internal/domain/event"
	"github.com/younwookim/rage/internal/graphics"
)

// Name is the scene name the menu registers under.
const Name = "Menu"

// Colors for rendering
var (
	colorTitle     = color.RGBA{255, 215, 0, 255}
	colorItem      = color.RGBA{200, 200, 200, 255}
	colorSelected  = color.RGBA{26, 26, 46, 255}
	colorHighlight = color.RGBA{100, 200, 100, 255}
)

const (
	titleSize = 32
	itemSize  = 18
	itemGap   = 36
)

// Quitter ends the application.
type Quitter interface {
	Quit(code int)
}

type item struct {
	label  string
	action func()
	text   *graphics.Text
}

// Menu lists a Play and a Quit entry, driven by keyboard or mouse.
type Menu struct {
	scene.Base
	switcher scene.Switcher
	quitter  Quitter
	logger   *log.Logger
	font     graphics.Font
	screenW  float32
	screenH  float32

	title     *graphics.Text
	items     []*item
	highlight *graphics.RectangleShape
	selected  int
	elapsed   float64
	visits    int
}

// Option configures a Menu.
type Option func(*Menu)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Menu) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates the menu. Play switches to playScene.
func New(sw scene.Switcher, q Quitter, font graphics.Font, screenW, screenH int, playScene string, opts ...Option) *Menu {
	m := &Menu{
		Base:     scene.NewBase(Name),
		switcher: sw,
		quitter:  q,
		logger:   log.New(io.Discard),
		font:     font,
		screenW:  float32(screenW),
		screenH:  float32(screenH),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.items = []*item{
		{label: "Play", action: func() { m.switcher.SetActiveScene(playScene) }},
		{label: "Quit", action: func() { m.quitter.Quit(0) }},
	}
	return m
}

// Init builds the texts and shapes.
func (m *Menu) Init() {
	m.title = graphics.NewText("RAGE", m.font, titleSize)
	m.title.SetColor(colorTitle)
	m.title.SetStyle(graphics.Bold | graphics.Underlined)
	m.centre(m.title, m.screenH/4)

	for i, it := range m.items {
		it.text = graphics.NewText(it.label, m.font, itemSize)
		m.centre(it.text, m.screenH/2+float32(i*itemGap))
	}

	m.highlight = graphics.NewRectangleShape(graphics.Vec2{X: m.screenW / 3, Y: itemGap - 8})
	m.highlight.SetFillColor(colorHighlight)
	m.highlight.SetOutlineThickness(2)
	m.highlight.SetOutlineColor(color.White)

	m.selected = 0
	m.visits = 1
	m.refresh()
	m.logger.Debug("menu ready", "items", len(m.items))
}

// Resume keeps the previous selection.
func (m *Menu) Resume() {
	m.visits++
	m.logger.Debug("menu resumed", "visits", m.visits)
}

func (m *Menu) Event(ev event.Event) {
	switch ev.Kind {
	case event.KindKeyPressed:
		switch ebiten.Key(ev.Key) {
		case ebiten.KeyArrowUp, ebiten.KeyW:
			m.Select(m.selected - 1)
		case ebiten.KeyArrowDown, ebiten.KeyS:
			m.Select(m.selected + 1)
		case ebiten.KeyEnter, ebiten.KeySpace:
			m.Activate()
		case ebiten.KeyEscape:
			m.quitter.Quit(0)
		}
	case event.KindMouseMoved:
		if i := m.itemAt(ev.X, ev.Y); i >= 0 {
			m.Select(i)
		}
	case event.KindMouseButtonPressed:
		if ebiten.MouseButton(ev.Button) == ebiten.MouseButtonLeft && m.itemAt(ev.X, ev.Y) >= 0 {
			m.Select(m.itemAt(ev.X, ev.Y))
			m.Activate()
		}
	}
}

// Select moves the highlight to item i, wrapping around.
func (m *Menu) Select(i int) {
	n := len(m.items)
	m.selected = ((i % n) + n) % n
	m.refresh()
}

// Activate runs the selected item's action.
func (m *Menu) Activate() {
	it := m.items[m.selected]
	m.logger.Info("menu item chosen", "item", it.label)
	it.action()
}

// Selected returns the label of the highlighted item.
func (m *Menu) Selected() string {
	return m.items[m.selected].label
}

// Visits returns how many times the menu has been shown.
func (m *Menu) Visits() int {
	return m.visits
}

func (m *Menu) Update(dt float64) error {
	m.elapsed += dt
	pulse := uint8(200 + 55*math.Sin(m.elapsed*4))
	m.highlight.SetOutlineColor(color.RGBA{pulse, pulse, pulse, 255})
	return nil
}

func (m *Menu) Draw(screen *ebiten.Image) {
	var identity ebiten.GeoM
	m.title.Draw(screen, identity)
	m.highlight.Draw(screen, identity)
	for _, it := range m.items {
		it.text.Draw(screen, identity)
	}
}

func (m *Menu) centre(t *graphics.Text, y float32) {
	b := t.LocalBounds()
	t.SetOrigin(b.Left+b.Width/2, b.Top+b.Height/2)
	t.SetPosition(m.screenW/2, y)
}

func (m *Menu) refresh() {
	if m.highlight == nil {
		return
	}
	for i, it := range m.items {
		if i == m.selected {
			it.text.SetColor(colorSelected)
		} else {
			it.text.SetColor(colorItem)
		}
	}
	size := m.highlight.Size()
	m.highlight.SetOrigin(size.X/2, size.Y/2)
	m.highlight.SetPosition(m.screenW/2, m.screenH/2+float32(m.selected*itemGap))
}

func (m *Menu) itemAt(x, y int) int {
	p := graphics.Vec2{X: float32(x), Y: float32(y)}
	for i, it := range m.items {
		if it.text != nil && it.text.GlobalBounds().Contains(p) {
			return i
		}
	}
	return -1
}
