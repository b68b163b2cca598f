package graphics

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Glyph describes one rendered character.
type Glyph struct {
	// Advance is the horizontal offset to the next character.
	Advance float32
	// Bounds is the quad relative to the pen position on the baseline.
	Bounds Rect
	// TextureRect is the glyph's area in the font texture.
	TextureRect image.Rectangle
}

// Font supplies glyphs and metrics at a given character size.
type Font interface {
	Glyph(r rune, size int, bold bool) Glyph
	Kerning(prev, cur rune, size int) float32
	LineSpacing(size int) float32
	Texture(size int) *ebiten.Image
}

type glyphKey struct {
	r    rune
	bold bool
}

// FaceFont is a Font backed by a single font.Face. The size argument is
// ignored: every glyph comes out at the face's own size.
//
// Glyphs are rasterized on first use into a CPU atlas that is uploaded to
// the texture when Texture is called.
type FaceFont struct {
	face   font.Face
	glyphs map[glyphKey]Glyph
	atlas  *atlas
}

// NewFaceFont wraps face.
func NewFaceFont(face font.Face) *FaceFont {
	return &FaceFont{
		face:   face,
		glyphs: make(map[glyphKey]Glyph),
		atlas:  newAtlas(256, 256),
	}
}

// Face returns the wrapped face.
func (f *FaceFont) Face() font.Face {
	return f.face
}

// Glyph returns the glyph for r, rasterizing it if needed. Runes the face
// does not cover yield the zero Glyph.
func (f *FaceFont) Glyph(r rune, _ int, bold bool) Glyph {
	k := glyphKey{r: r, bold: bold}
	if g, ok := f.glyphs[k]; ok {
		return g
	}
	g := f.rasterize(r, bold)
	f.glyphs[k] = g
	return g
}

func (f *FaceFont) rasterize(r rune, bold bool) Glyph {
	dr, mask, mp, adv, ok := f.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return Glyph{}
	}

	g := Glyph{
		Advance: fixedToFloat(adv),
		Bounds: Rect{
			Left:   float32(dr.Min.X),
			Top:    float32(dr.Min.Y),
			Width:  float32(dr.Dx()),
			Height: float32(dr.Dy()),
		},
	}
	if dr.Empty() {
		return g
	}
	// Synthetic bold: the mask is stamped twice, one pixel apart.
	if bold {
		g.Advance++
		g.Bounds.Width++
	}
	g.TextureRect = f.atlas.add(mask, mp, dr.Size(), bold)
	return g
}

// Kerning returns the adjustment between prev and cur.
func (f *FaceFont) Kerning(prev, cur rune, _ int) float32 {
	if prev == 0 || cur == 0 {
		return 0
	}
	return fixedToFloat(f.face.Kern(prev, cur))
}

// LineSpacing returns the recommended distance between baselines.
func (f *FaceFont) LineSpacing(_ int) float32 {
	return fixedToFloat(f.face.Metrics().Height)
}

// Texture returns the glyph atlas, uploading any glyphs added since the
// previous call.
func (f *FaceFont) Texture(_ int) *ebiten.Image {
	return f.atlas.texture()
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

const atlasPadding = 1

// atlas packs glyph masks into rows of an RGBA image.
type atlas struct {
	img   *image.RGBA
	penX  int
	penY  int
	rowH  int
	tex   *ebiten.Image
	dirty bool
}

func newAtlas(w, h int) *atlas {
	return &atlas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// add copies the size.X x size.Y area of mask at mp into the atlas and
// returns where it landed.
func (a *atlas) add(mask image.Image, mp image.Point, size image.Point, bold bool) image.Rectangle {
	w, h := size.X, size.Y
	if bold {
		w++
	}

	width := a.img.Bounds().Dx()
	if w+2*atlasPadding > width {
		a.resize(w+2*atlasPadding, a.img.Bounds().Dy())
		width = a.img.Bounds().Dx()
	}
	if a.penX+atlasPadding+w > width {
		a.penX = 0
		a.penY += a.rowH
		a.rowH = 0
	}
	for a.penY+atlasPadding+h > a.img.Bounds().Dy() {
		a.resize(width, a.img.Bounds().Dy()*2)
	}

	x0, y0 := a.penX+atlasPadding, a.penY+atlasPadding
	dst := image.Rect(x0, y0, x0+size.X, y0+h)
	draw.DrawMask(a.img, dst, image.White, image.Point{}, mask, mp, draw.Over)
	if bold {
		draw.DrawMask(a.img, dst.Add(image.Pt(1, 0)), image.White, image.Point{}, mask, mp, draw.Over)
	}

	a.penX = x0 + w
	a.rowH = max(a.rowH, h+atlasPadding)
	a.dirty = true
	return image.Rect(x0, y0, x0+w, y0+h)
}

func (a *atlas) resize(w, h int) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, a.img.Bounds(), a.img, image.Point{}, draw.Src)
	a.img = img
	a.tex = nil
}

func (a *atlas) texture() *ebiten.Image {
	if a.tex == nil {
		a.tex = ebiten.NewImageFromImage(a.img)
		a.dirty = false
		return a.tex
	}
	if a.dirty {
		a.tex.WritePixels(a.img.Pix)
		a.dirty = false
	}
	return a.tex
}
