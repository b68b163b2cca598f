package graphics

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// PointSource supplies the outline points of a shape, in local coordinates.
// Points must describe a convex polygon.
type PointSource interface {
	PointCount() int
	Point(i int) Vec2
}

// Shape draws a convex polygon with an optional texture and outline.
// Concrete shapes embed it and call update whenever their points change.
type Shape struct {
	Transformable

	points      PointSource
	texture     *ebiten.Image
	textureRect image.Rectangle
	fill        color.Color
	outline     color.Color
	thickness   float32

	// vertices is a fan: centre, the points, then the first point again.
	vertices        []ebiten.Vertex
	fillIndices     []uint16
	outlineVertices []ebiten.Vertex
	outlineIndices  []uint16
	insideBounds    Rect
	bounds          Rect
	scratch         []ebiten.Vertex
}

func newShape(points PointSource) Shape {
	return Shape{
		Transformable: NewTransformable(),
		points:        points,
		fill:          color.White,
		outline:       color.White,
	}
}

// SetTexture sets the texture, nil for none. The texture rect is reset to the
// whole texture when resetRect is set or when no rect was chosen yet.
func (s *Shape) SetTexture(tex *ebiten.Image, resetRect bool) {
	if tex != nil && (resetRect || (s.texture == nil && s.textureRect.Empty())) {
		s.textureRect = tex.Bounds()
	}
	s.texture = tex
	s.updateTexCoords()
}

func (s *Shape) Texture() *ebiten.Image {
	return s.texture
}

// SetTextureRect selects the area of the texture mapped onto the shape.
func (s *Shape) SetTextureRect(r image.Rectangle) {
	s.textureRect = r
	s.updateTexCoords()
}

func (s *Shape) TextureRect() image.Rectangle {
	return s.textureRect
}

func (s *Shape) SetFillColor(c color.Color) {
	s.fill = c
	setColor(s.vertices, c)
}

func (s *Shape) FillColor() color.Color {
	return s.fill
}

func (s *Shape) SetOutlineColor(c color.Color) {
	s.outline = c
	setColor(s.outlineVertices, c)
}

func (s *Shape) OutlineColor() color.Color {
	return s.outline
}

// SetOutlineThickness sets the outline width. Negative values grow the
// outline inwards; zero disables it.
func (s *Shape) SetOutlineThickness(thickness float32) {
	s.thickness = thickness
	s.update()
}

func (s *Shape) OutlineThickness() float32 {
	return s.thickness
}

// LocalBounds returns the bounds of fill and outline, ignoring the transform.
func (s *Shape) LocalBounds() Rect {
	return s.bounds
}

// GlobalBounds returns the bounds in parent coordinates.
func (s *Shape) GlobalBounds() Rect {
	return transformRect(s.GeoM(), s.bounds)
}

// Draw renders the shape onto target, with parent applied after the shape's
// own transform.
func (s *Shape) Draw(target *ebiten.Image, parent ebiten.GeoM) {
	g := s.GeoM()
	g.Concat(parent)

	src := s.texture
	if src == nil {
		src = whiteSubImage
	}
	drawIndexed(target, src, s.vertices, s.fillIndices, g, &s.scratch)
	if s.thickness != 0 {
		drawIndexed(target, whiteSubImage, s.outlineVertices, s.outlineIndices, g, &s.scratch)
	}
}

// update rebuilds the geometry from the point source.
func (s *Shape) update() {
	n := s.points.PointCount()
	if n < 3 {
		s.vertices = s.vertices[:0]
		s.fillIndices = s.fillIndices[:0]
		s.outlineVertices = s.outlineVertices[:0]
		s.outlineIndices = s.outlineIndices[:0]
		s.insideBounds = Rect{}
		s.bounds = Rect{}
		return
	}

	s.vertices = resizeVertices(s.vertices, n+2)
	for i := 0; i < n; i++ {
		p := s.points.Point(i)
		s.vertices[i+1].DstX, s.vertices[i+1].DstY = p.X, p.Y
	}
	s.vertices[n+1].DstX, s.vertices[n+1].DstY = s.vertices[1].DstX, s.vertices[1].DstY

	s.insideBounds = boundsOf(s.vertices[1:])
	s.vertices[0].DstX = s.insideBounds.Left + s.insideBounds.Width/2
	s.vertices[0].DstY = s.insideBounds.Top + s.insideBounds.Height/2

	s.fillIndices = s.fillIndices[:0]
	for i := 1; i <= n; i++ {
		s.fillIndices = append(s.fillIndices, 0, uint16(i), uint16(i+1))
	}

	setColor(s.vertices, s.fill)
	s.updateTexCoords()
	s.updateOutline()
}

func (s *Shape) updateTexCoords() {
	if len(s.vertices) == 0 {
		return
	}
	rect := s.textureRect
	if s.texture == nil {
		rect = image.Rect(whiteSrc, whiteSrc, whiteSrc+1, whiteSrc+1)
	}
	for i := range s.vertices {
		var xr, yr float32
		if s.insideBounds.Width > 0 {
			xr = (s.vertices[i].DstX - s.insideBounds.Left) / s.insideBounds.Width
		}
		if s.insideBounds.Height > 0 {
			yr = (s.vertices[i].DstY - s.insideBounds.Top) / s.insideBounds.Height
		}
		s.vertices[i].SrcX = float32(rect.Min.X) + float32(rect.Dx())*xr
		s.vertices[i].SrcY = float32(rect.Min.Y) + float32(rect.Dy())*yr
	}
}

func (s *Shape) updateOutline() {
	count := len(s.vertices) - 2
	s.outlineVertices = resizeVertices(s.outlineVertices, (count+1)*2)

	center := vertexPos(s.vertices[0])
	for i := 0; i < count; i++ {
		index := i + 1

		p0 := vertexPos(s.vertices[count])
		if i > 0 {
			p0 = vertexPos(s.vertices[index-1])
		}
		p1 := vertexPos(s.vertices[index])
		p2 := vertexPos(s.vertices[index+1])

		n1 := edgeNormal(p0, p1)
		n2 := edgeNormal(p1, p2)

		// Point the normals away from the centre.
		if n1.Dot(center.Sub(p1)) > 0 {
			n1 = n1.Mul(-1)
		}
		if n2.Dot(center.Sub(p1)) > 0 {
			n2 = n2.Mul(-1)
		}

		normal := n1
		if factor := 1 + n1.Dot(n2); factor != 0 {
			normal = n1.Add(n2).Mul(1 / factor)
		}

		outer := p1.Add(normal.Mul(s.thickness))
		s.outlineVertices[i*2] = ebiten.Vertex{DstX: p1.X, DstY: p1.Y, SrcX: whiteSrc, SrcY: whiteSrc}
		s.outlineVertices[i*2+1] = ebiten.Vertex{DstX: outer.X, DstY: outer.Y, SrcX: whiteSrc, SrcY: whiteSrc}
	}
	s.outlineVertices[count*2] = s.outlineVertices[0]
	s.outlineVertices[count*2+1] = s.outlineVertices[1]

	// Triangle strip over consecutive (inner, outer) pairs.
	s.outlineIndices = s.outlineIndices[:0]
	for i := 0; i < count; i++ {
		a := uint16(i * 2)
		s.outlineIndices = append(s.outlineIndices, a, a+1, a+2, a+1, a+3, a+2)
	}

	setColor(s.outlineVertices, s.outline)
	s.bounds = boundsOf(s.outlineVertices)
}

// edgeNormal returns the unit normal of the edge p1->p2.
func edgeNormal(p1, p2 Vec2) Vec2 {
	return Vec2{p1.Y - p2.Y, p2.X - p1.X}.Normalize()
}

func vertexPos(v ebiten.Vertex) Vec2 {
	return Vec2{v.DstX, v.DstY}
}

func resizeVertices(vs []ebiten.Vertex, n int) []ebiten.Vertex {
	if cap(vs) < n {
		return make([]ebiten.Vertex, n)
	}
	return vs[:n]
}
