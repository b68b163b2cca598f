package graphics

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Style is a set of text style flags.
type Style uint32

const (
	Regular    Style = 0
	Bold       Style = 1 << 0
	Italic     Style = 1 << 1
	Underlined Style = 1 << 2
)

// DefaultCharacterSize is the size of a Text created without one.
const DefaultCharacterSize = 30

// italicShear is tan(12 degrees).
const italicShear = 0.208

// Text is a drawable string: one textured quad per glyph plus optional
// underline quads.
type Text struct {
	Transformable

	str   []rune
	font  Font
	size  int
	style Style
	color color.Color

	vertices []ebiten.Vertex // glyph quads
	lines    []ebiten.Vertex // underline quads
	bounds   Rect
	scratch  []ebiten.Vertex
}

// NewText creates a white, regular Text. A nil font draws nothing.
func NewText(s string, f Font, size int) *Text {
	t := &Text{
		Transformable: NewTransformable(),
		str:           []rune(s),
		font:          f,
		size:          size,
		color:         color.White,
	}
	t.updateGeometry()
	return t
}

func (t *Text) SetString(s string) {
	t.str = []rune(s)
	t.updateGeometry()
}

func (t *Text) String() string {
	return string(t.str)
}

func (t *Text) SetFont(f Font) {
	if t.font != f {
		t.font = f
		t.updateGeometry()
	}
}

func (t *Text) Font() Font {
	return t.font
}

func (t *Text) SetCharacterSize(size int) {
	if t.size != size {
		t.size = size
		t.updateGeometry()
	}
}

func (t *Text) CharacterSize() int {
	return t.size
}

func (t *Text) SetStyle(s Style) {
	if t.style != s {
		t.style = s
		t.updateGeometry()
	}
}

func (t *Text) Style() Style {
	return t.style
}

// SetColor recolours the existing geometry without rebuilding it.
func (t *Text) SetColor(c color.Color) {
	t.color = c
	setColor(t.vertices, c)
	setColor(t.lines, c)
}

func (t *Text) Color() color.Color {
	return t.color
}

// VertexCount returns the number of vertices of the current geometry.
func (t *Text) VertexCount() int {
	return len(t.vertices) + len(t.lines)
}

// FindCharacterPos returns the position the character at index would be
// drawn at, in parent coordinates. Indices past the end map to the end.
func (t *Text) FindCharacterPos(index int) Vec2 {
	if t.font == nil {
		return Vec2{}
	}
	index = clamp(index, 0, len(t.str))

	bold := t.style&Bold != 0
	hspace := t.font.Glyph(' ', t.size, bold).Advance
	vspace := t.font.LineSpacing(t.size)

	var pos Vec2
	var prev rune
	for _, cur := range t.str[:index] {
		pos.X += t.font.Kerning(prev, cur, t.size)
		prev = cur

		switch cur {
		case ' ':
			pos.X += hspace
			continue
		case '\t':
			pos.X += hspace * 4
			continue
		case '\n':
			pos.Y += vspace
			pos.X = 0
			continue
		case '\v':
			pos.Y += vspace * 4
			continue
		}

		pos.X += t.font.Glyph(cur, t.size, bold).Advance
	}

	return t.TransformPoint(pos)
}

// LocalBounds returns the bounds of the geometry, ignoring the transform.
func (t *Text) LocalBounds() Rect {
	return t.bounds
}

// GlobalBounds returns the bounds in parent coordinates.
func (t *Text) GlobalBounds() Rect {
	return transformRect(t.GeoM(), t.bounds)
}

// Draw renders the text onto target, with parent applied after the text's
// own transform.
func (t *Text) Draw(target *ebiten.Image, parent ebiten.GeoM) {
	if t.font == nil || len(t.vertices)+len(t.lines) == 0 {
		return
	}
	g := t.GeoM()
	g.Concat(parent)

	if len(t.vertices) > 0 {
		drawQuads(target, t.font.Texture(t.size), t.vertices, g, &t.scratch)
	}
	if len(t.lines) > 0 {
		drawQuads(target, whiteSubImage, t.lines, g, &t.scratch)
	}
}

func (t *Text) updateGeometry() {
	t.vertices = t.vertices[:0]
	t.lines = t.lines[:0]
	t.bounds = Rect{}

	if t.font == nil || len(t.str) == 0 {
		return
	}

	bold := t.style&Bold != 0
	underlined := t.style&Underlined != 0
	var italic float32
	if t.style&Italic != 0 {
		italic = italicShear
	}
	size := float32(t.size)
	underlineOffset := size * 0.1
	underlineThickness := size * 0.07
	if bold {
		underlineThickness = size * 0.1
	}

	hspace := t.font.Glyph(' ', t.size, bold).Advance
	vspace := t.font.LineSpacing(t.size)
	x, y := float32(0), size

	r, g, b, a := vertexColor(t.color)
	vertex := func(px, py, u, v float32) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: px, DstY: py,
			SrcX: u, SrcY: v,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		}
	}
	underline := func(x, y float32) {
		top := y + underlineOffset
		bottom := top + underlineThickness
		t.lines = append(t.lines,
			vertex(0, top, whiteSrc, whiteSrc),
			vertex(x, top, whiteSrc, whiteSrc),
			vertex(x, bottom, whiteSrc, whiteSrc),
			vertex(0, bottom, whiteSrc, whiteSrc),
		)
	}

	var prev rune
	for _, cur := range t.str {
		x += t.font.Kerning(prev, cur, t.size)
		prev = cur

		if underlined && cur == '\n' {
			underline(x, y)
		}

		switch cur {
		case ' ':
			x += hspace
			continue
		case '\t':
			x += hspace * 4
			continue
		case '\n':
			y += vspace
			x = 0
			continue
		case '\v':
			y += vspace * 4
			continue
		}

		gl := t.font.Glyph(cur, t.size, bold)
		left := gl.Bounds.Left
		top := gl.Bounds.Top
		right := left + gl.Bounds.Width
		bottom := top + gl.Bounds.Height

		u1 := float32(gl.TextureRect.Min.X)
		v1 := float32(gl.TextureRect.Min.Y)
		u2 := float32(gl.TextureRect.Max.X)
		v2 := float32(gl.TextureRect.Max.Y)

		t.vertices = append(t.vertices,
			vertex(x+left-italic*top, y+top, u1, v1),
			vertex(x+right-italic*top, y+top, u2, v1),
			vertex(x+right-italic*bottom, y+bottom, u2, v2),
			vertex(x+left-italic*bottom, y+bottom, u1, v2),
		)

		x += gl.Advance
	}

	if underlined {
		underline(x, y)
	}

	t.bounds = boundsOf(t.vertices, t.lines)
}
