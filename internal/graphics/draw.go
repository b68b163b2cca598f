package graphics

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	whiteImage = ebiten.NewImage(3, 3)

	// whiteSubImage is the source for untextured geometry. Sampling its
	// inner pixel avoids bleeding at the edges.
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// whiteSrc is a texture coordinate inside whiteSubImage.
const whiteSrc = 1

// maxBatchVertices is the most vertices a uint16-indexed draw can address.
const maxBatchVertices = 1 << 16

var quadIndexBuf []uint16

// quadIndices returns indices for n quads laid out as 4 consecutive vertices.
func quadIndices(n int) []uint16 {
	for q := len(quadIndexBuf) / 6; q < n; q++ {
		b := uint16(q * 4)
		quadIndexBuf = append(quadIndexBuf, b, b+1, b+2, b, b+2, b+3)
	}
	return quadIndexBuf[:n*6]
}

// vertexColor converts c to the straight-alpha components ebiten expects.
func vertexColor(c color.Color) (r, g, b, a float32) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return float32(n.R) / 255, float32(n.G) / 255, float32(n.B) / 255, float32(n.A) / 255
}

func setColor(vs []ebiten.Vertex, c color.Color) {
	r, g, b, a := vertexColor(c)
	for i := range vs {
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, g, b, a
	}
}

// transformed copies vs into dst with positions mapped through g.
func transformed(dst, vs []ebiten.Vertex, g ebiten.GeoM) []ebiten.Vertex {
	dst = append(dst[:0], vs...)
	for i := range dst {
		x, y := g.Apply(float64(dst[i].DstX), float64(dst[i].DstY))
		dst[i].DstX, dst[i].DstY = float32(x), float32(y)
	}
	return dst
}

// drawQuads draws vs (4 vertices per quad) in as many batches as needed.
func drawQuads(target, src *ebiten.Image, vs []ebiten.Vertex, g ebiten.GeoM, scratch *[]ebiten.Vertex) {
	for start := 0; start < len(vs); start += maxBatchVertices {
		end := min(start+maxBatchVertices, len(vs))
		*scratch = transformed(*scratch, vs[start:end], g)
		target.DrawTriangles(*scratch, quadIndices((end-start)/4), src, nil)
	}
}

// drawIndexed draws vs with the given indices in a single batch.
func drawIndexed(target, src *ebiten.Image, vs []ebiten.Vertex, indices []uint16, g ebiten.GeoM, scratch *[]ebiten.Vertex) {
	if len(indices) == 0 {
		return
	}
	*scratch = transformed(*scratch, vs, g)
	target.DrawTriangles(*scratch, indices, src, nil)
}
