package graphics

import (
	"errors"
	"image"

	"github.com/fzipp/bmfont"
	"github.com/hajimehoshi/ebiten/v2"
)

// ErrMultiPage is returned for bitmap fonts spread over several textures.
var ErrMultiPage = errors.New("bitmap font: only single page fonts are supported")

type kerningPair struct {
	first, second rune
}

// BitmapFont is a Font built from an AngelCode BMFont descriptor and its
// page texture. It has a fixed size; the size argument is ignored.
type BitmapFont struct {
	face       string
	size       int
	lineHeight float32
	glyphs     map[rune]Glyph
	kerning    map[kerningPair]float32
	page       *ebiten.Image
}

// NewBitmapFont builds a BitmapFont from desc, drawing glyphs from page.
func NewBitmapFont(desc *bmfont.Descriptor, page *ebiten.Image) (*BitmapFont, error) {
	if len(desc.Pages) > 1 {
		return nil, ErrMultiPage
	}

	base := float32(desc.Common.Base)
	f := &BitmapFont{
		face:       desc.Info.Face,
		size:       int(desc.Info.Size),
		lineHeight: float32(desc.Common.LineHeight),
		glyphs:     make(map[rune]Glyph, len(desc.Chars)),
		kerning:    make(map[kerningPair]float32, len(desc.Kerning)),
		page:       page,
	}

	for _, c := range desc.Chars {
		x, y := int(c.X), int(c.Y)
		w, h := int(c.Width), int(c.Height)
		f.glyphs[rune(c.ID)] = Glyph{
			Advance: float32(c.XAdvance),
			Bounds: Rect{
				Left:   float32(c.XOffset),
				Top:    float32(c.YOffset) - base,
				Width:  float32(w),
				Height: float32(h),
			},
			TextureRect: image.Rect(x, y, x+w, y+h),
		}
	}
	for p, k := range desc.Kerning {
		f.kerning[kerningPair{rune(p.First), rune(p.Second)}] = float32(k.Amount)
	}

	return f, nil
}

// Name returns the face name from the descriptor.
func (f *BitmapFont) Name() string {
	return f.face
}

// Size returns the size the font was generated at.
func (f *BitmapFont) Size() int {
	return f.size
}

// Glyph returns the glyph for r. Bold is not available for bitmap fonts.
func (f *BitmapFont) Glyph(r rune, _ int, _ bool) Glyph {
	return f.glyphs[r]
}

func (f *BitmapFont) Kerning(prev, cur rune, _ int) float32 {
	return f.kerning[kerningPair{prev, cur}]
}

func (f *BitmapFont) LineSpacing(_ int) float32 {
	return f.lineHeight
}

func (f *BitmapFont) Texture(_ int) *ebiten.Image {
	return f.page
}
