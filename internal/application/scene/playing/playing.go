// Package playing provides the gameplay demo scene: a paddle keeping a ball
// in play.
package playing

import (
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/rage/internal/application/scene"
	"github.com/younwookim/rage/internal/domain/event"
	"github.com/younwookim/rage/internal/graphics"
)

// Name is the scene name the gameplay scene registers under.
const Name = "Game"

// Colors for rendering
var (
	colorPaddle  = color.RGBA{100, 200, 100, 255}
	colorBall    = color.RGBA{255, 215, 0, 255}
	colorOutline = color.RGBA{80, 80, 100, 255}
	colorHUD     = color.RGBA{200, 200, 200, 255}
	colorPause   = color.RGBA{200, 50, 50, 255}
)

const (
	paddleW     = 80
	paddleH     = 10
	paddleSpeed = 320 // px/s
	ballRadius  = 6
	ballSpeed   = 200 // px/s per axis
	hudSize     = 13
)

type playState int

const (
	statePlaying playState = iota
	statePaused
)

// Playing is the gameplay scene. Escape returns to the menu, P pauses and
// the arrow keys move the paddle.
type Playing struct {
	scene.Base
	switcher scene.Switcher
	logger   *log.Logger
	font     graphics.Font
	back     string
	screenW  float32
	screenH  float32

	paddle *graphics.RectangleShape
	ball   *graphics.CircleShape
	hud    *graphics.Text
	paused *graphics.Text

	vx, vy      float32
	left, right bool
	state       playState
	score       int
	misses      int
}

// Option configures a Playing scene.
type Option func(*Playing)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Playing) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates the scene. Escape switches to backScene.
func New(sw scene.Switcher, font graphics.Font, screenW, screenH int, backScene string, opts ...Option) *Playing {
	p := &Playing{
		Base:     scene.NewBase(Name),
		switcher: sw,
		logger:   log.New(io.Discard),
		font:     font,
		back:     backScene,
		screenW:  float32(screenW),
		screenH:  float32(screenH),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Init builds the shapes and serves the first ball.
func (p *Playing) Init() {
	p.paddle = graphics.NewRectangleShape(graphics.Vec2{X: paddleW, Y: paddleH})
	p.paddle.SetFillColor(colorPaddle)
	p.paddle.SetOutlineThickness(1)
	p.paddle.SetOutlineColor(colorOutline)
	p.paddle.SetPosition((p.screenW-paddleW)/2, p.screenH-paddleH-16)

	p.ball = graphics.NewCircleShape(ballRadius, 0)
	p.ball.SetFillColor(colorBall)

	p.hud = graphics.NewText("", p.font, hudSize)
	p.hud.SetColor(colorHUD)
	p.hud.SetPosition(8, 4)

	p.paused = graphics.NewText("PAUSED", p.font, hudSize)
	p.paused.SetColor(colorPause)
	p.paused.SetStyle(graphics.Bold)
	b := p.paused.LocalBounds()
	p.paused.SetOrigin(b.Left+b.Width/2, b.Top+b.Height/2)
	p.paused.SetPosition(p.screenW/2, p.screenH/2)

	p.state = statePlaying
	p.score = 0
	p.misses = 0
	p.serve()
	p.refreshHUD()
	p.logger.Debug("game initialized")
}

// Pause drops held keys: their releases go to whichever scene is active.
func (p *Playing) Pause() {
	p.left = false
	p.right = false
	p.logger.Debug("game paused", "score", p.score)
}

func (p *Playing) Resume() {
	p.logger.Debug("game resumed", "score", p.score)
}

func (p *Playing) Cleanup() {
	p.logger.Debug("game cleaned up", "score", p.score, "misses", p.misses)
}

func (p *Playing) Event(ev event.Event) {
	switch ev.Kind {
	case event.KindKeyPressed:
		switch ebiten.Key(ev.Key) {
		case ebiten.KeyEscape:
			p.switcher.SetActiveScene(p.back)
		case ebiten.KeyP:
			p.togglePause()
		case ebiten.KeyArrowLeft, ebiten.KeyA:
			p.left = true
		case ebiten.KeyArrowRight, ebiten.KeyD:
			p.right = true
		}
	case event.KindKeyReleased:
		switch ebiten.Key(ev.Key) {
		case ebiten.KeyArrowLeft, ebiten.KeyA:
			p.left = false
		case ebiten.KeyArrowRight, ebiten.KeyD:
			p.right = false
		}
	case event.KindFocusLost:
		if p.state == statePlaying {
			p.togglePause()
		}
	}
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) error {
	if p.state == statePaused {
		return nil
	}
	step := float32(dt)

	// Paddle
	dir := float32(0)
	if p.left {
		dir--
	}
	if p.right {
		dir++
	}
	if dir != 0 {
		pos := p.paddle.Position()
		x := pos.X + dir*paddleSpeed*step
		x = max(0, min(x, p.screenW-paddleW))
		p.paddle.SetPosition(x, pos.Y)
	}

	// Ball
	p.ball.Move(p.vx*step, p.vy*step)
	pos := p.ball.Position()
	d := float32(ballRadius * 2)

	if pos.X < 0 {
		p.ball.SetPosition(0, pos.Y)
		p.vx = -p.vx
	} else if pos.X+d > p.screenW {
		p.ball.SetPosition(p.screenW-d, pos.Y)
		p.vx = -p.vx
	}
	if pos.Y < 0 {
		p.ball.SetPosition(p.ball.Position().X, 0)
		p.vy = -p.vy
	}

	if p.vy > 0 && p.ball.GlobalBounds().Intersects(p.paddle.GlobalBounds()) {
		p.vy = -p.vy
		p.score++
		p.refreshHUD()
	}

	if pos.Y > p.screenH {
		p.misses++
		p.logger.Debug("ball missed", "misses", p.misses)
		p.serve()
		p.refreshHUD()
	}

	return nil
}

// Draw renders the scene to the screen.
func (p *Playing) Draw(screen *ebiten.Image) {
	var identity ebiten.GeoM
	p.paddle.Draw(screen, identity)
	p.ball.Draw(screen, identity)
	p.hud.Draw(screen, identity)
	if p.state == statePaused {
		p.paused.Draw(screen, identity)
	}
}

// Score returns the number of paddle hits.
func (p *Playing) Score() int { return p.score }

// Misses returns the number of balls lost.
func (p *Playing) Misses() int { return p.misses }

// PaddlePosition returns the top-left corner of the paddle.
func (p *Playing) PaddlePosition() graphics.Vec2 { return p.paddle.Position() }

// BallPosition returns the top-left corner of the ball's bounds.
func (p *Playing) BallPosition() graphics.Vec2 { return p.ball.Position() }

// IsPaused reports whether the game is paused.
func (p *Playing) IsPaused() bool { return p.state == statePaused }

func (p *Playing) togglePause() {
	if p.state == statePaused {
		p.state = statePlaying
	} else {
		p.state = statePaused
	}
}

// serve puts the ball at the top centre heading down.
func (p *Playing) serve() {
	p.ball.SetPosition(p.screenW/2-ballRadius, p.screenH/4)
	p.vx = ballSpeed
	p.vy = ballSpeed
}

func (p *Playing) refreshHUD() {
	p.hud.SetString(fmt.Sprintf("Score: %d  Missed: %d", p.score, p.misses))
}
