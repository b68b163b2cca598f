package graphics

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// OpenTypeFont is a scalable Font. It keeps one FaceFont per character size.
type OpenTypeFont struct {
	font    *opentype.Font
	hinting font.Hinting
	faces   map[int]*FaceFont
}

// ParseOpenType parses TrueType or OpenType font data.
func ParseOpenType(data []byte) (*OpenTypeFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &OpenTypeFont{
		font:    f,
		hinting: font.HintingFull,
		faces:   make(map[int]*FaceFont),
	}, nil
}

// Family returns the font family name, or "" if the font has none.
func (f *OpenTypeFont) Family() string {
	var buf sfnt.Buffer
	name, err := f.font.Name(&buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

func (f *OpenTypeFont) faceFor(size int) *FaceFont {
	size = max(size, 1)
	if ff, ok := f.faces[size]; ok {
		return ff
	}
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: f.hinting,
	})
	if err != nil {
		// Only fails on invalid options, which faceFor never builds.
		panic(err)
	}
	ff := NewFaceFont(face)
	f.faces[size] = ff
	return ff
}

func (f *OpenTypeFont) Glyph(r rune, size int, bold bool) Glyph {
	return f.faceFor(size).Glyph(r, size, bold)
}

func (f *OpenTypeFont) Kerning(prev, cur rune, size int) float32 {
	return f.faceFor(size).Kerning(prev, cur, size)
}

func (f *OpenTypeFont) LineSpacing(size int) float32 {
	return f.faceFor(size).LineSpacing(size)
}

func (f *OpenTypeFont) Texture(size int) *ebiten.Image {
	return f.faceFor(size).Texture(size)
}

// Close releases every face created so far. Texts laid out with f must not
// be drawn afterwards: their quads point into the released atlases.
func (f *OpenTypeFont) Close() error {
	var errs []error
	for size, ff := range f.faces {
		if err := ff.face.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(f.faces, size)
	}
	return errors.Join(errs...)
}
