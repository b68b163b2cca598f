package graphics

import (
	"image"
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

func TestRectangleShape_Bounds(t *testing.T) {
	r := NewRectangleShape(Vec2{10, 20})

	assert.Equal(t, 4, r.PointCount())
	assert.Equal(t, Rect{0, 0, 10, 20}, r.LocalBounds())
	assert.Len(t, r.vertices, 6)
	assert.Equal(t, Vec2{5, 10}, vertexPos(r.vertices[0]), "fan centre")
	assert.Equal(t, vertexPos(r.vertices[1]), vertexPos(r.vertices[5]), "fan is closed")
}

func TestRectangleShape_Outline(t *testing.T) {
	r := NewRectangleShape(Vec2{10, 20})

	r.SetOutlineThickness(2)
	assertRect(t, Rect{-2, -2, 14, 24}, r.LocalBounds())
	assert.Len(t, r.outlineVertices, 10)

	r.SetOutlineThickness(-2)
	assertRect(t, Rect{0, 0, 10, 20}, r.LocalBounds())
	assert.Equal(t, Vec2{2, 2}, vertexPos(r.outlineVertices[1]), "negative thickness grows inwards")
}

func TestRectangleShape_SetSize(t *testing.T) {
	r := NewRectangleShape(Vec2{10, 20})
	r.SetSize(Vec2{4, 4})

	assert.Equal(t, Vec2{4, 4}, r.Size())
	assert.Equal(t, Rect{0, 0, 4, 4}, r.LocalBounds())
}

func TestShape_GlobalBounds(t *testing.T) {
	r := NewRectangleShape(Vec2{10, 20})
	r.SetRotation(90)

	assertRect(t, Rect{-20, 0, 20, 10}, r.GlobalBounds())

	r.SetRotation(0)
	r.SetOrigin(5, 10)
	r.SetPosition(100, 100)
	assertRect(t, Rect{95, 90, 10, 20}, r.GlobalBounds())
}

func TestShape_FillColor(t *testing.T) {
	r := NewRectangleShape(Vec2{10, 20})
	r.SetFillColor(color.RGBA{G: 255, A: 255})

	for _, v := range r.vertices {
		assert.Equal(t, float32(0), v.ColorR)
		assert.Equal(t, float32(1), v.ColorG)
	}
	assert.Equal(t, color.RGBA{G: 255, A: 255}, r.FillColor())
}

func TestShape_TextureCoords(t *testing.T) {
	r := NewRectangleShape(Vec2{10, 20})
	tex := ebiten.NewImage(100, 200)

	r.SetTexture(tex, false)
	assert.Equal(t, image.Rect(0, 0, 100, 200), r.TextureRect())
	assert.Equal(t, float32(50), r.vertices[0].SrcX)
	assert.Equal(t, float32(100), r.vertices[0].SrcY)
	assert.Equal(t, float32(100), r.vertices[2].SrcX, "top-right corner")
	assert.Equal(t, float32(0), r.vertices[2].SrcY)

	// An explicit rect survives setting another texture without reset.
	r.SetTextureRect(image.Rect(10, 10, 20, 30))
	r.SetTexture(ebiten.NewImage(8, 8), false)
	assert.Equal(t, image.Rect(10, 10, 20, 30), r.TextureRect())

	r.SetTexture(tex, true)
	assert.Equal(t, image.Rect(0, 0, 100, 200), r.TextureRect())

	r.SetTexture(nil, false)
	assert.Nil(t, r.Texture())
	assert.Equal(t, float32(whiteSrc), r.vertices[1].SrcX)
}

func TestCircleShape(t *testing.T) {
	c := NewCircleShape(10, 0)
	assert.Equal(t, DefaultCirclePoints, c.PointCount())
	assert.InDelta(t, 10, c.Point(0).X, 1e-4)
	assert.InDelta(t, 0, c.Point(0).Y, 1e-4)

	c.SetPointCount(4)
	assertRect(t, Rect{0, 0, 20, 20}, c.LocalBounds())

	c.SetRadius(5)
	assert.Equal(t, float32(5), c.Radius())
	assertRect(t, Rect{0, 0, 10, 10}, c.LocalBounds())
}

func TestConvexShape(t *testing.T) {
	c := NewConvexShape(Vec2{0, 0}, Vec2{10, 0}, Vec2{0, 10})
	assert.Equal(t, Rect{0, 0, 10, 10}, c.LocalBounds())

	c.SetPoint(1, Vec2{20, 0})
	assert.Equal(t, Rect{0, 0, 20, 10}, c.LocalBounds())

	c.SetPoint(7, Vec2{99, 99})
	assert.Equal(t, Rect{0, 0, 20, 10}, c.LocalBounds())

	c.SetPointCount(2)
	assert.Equal(t, Rect{}, c.LocalBounds(), "fewer than three points has no geometry")
	assert.Empty(t, c.vertices)

	c.SetPointCount(4)
	c.SetPoint(0, Vec2{0, 0})
	c.SetPoint(1, Vec2{4, 0})
	c.SetPoint(2, Vec2{4, 4})
	c.SetPoint(3, Vec2{0, 4})
	assert.Equal(t, Rect{0, 0, 4, 4}, c.LocalBounds())
}

func TestShape_Draw(t *testing.T) {
	r := NewRectangleShape(Vec2{10, 20})
	r.SetOutlineThickness(1)
	c := NewCircleShape(4, 8)
	target := ebiten.NewImage(32, 32)

	assert.NotPanics(t, func() {
		r.Draw(target, ebiten.GeoM{})
		c.Draw(target, r.GeoM())
	})
}

func TestTransformable(t *testing.T) {
	tr := NewTransformable()
	assert.Equal(t, Vec2{1, 1}, tr.Scale())

	tr.SetRotation(-90)
	assert.Equal(t, 270.0, tr.Rotation())
	tr.Rotate(100)
	assert.InDelta(t, 10.0, tr.Rotation(), 1e-9)

	tr.SetRotation(0)
	tr.SetPosition(1, 2)
	tr.Move(3, 4)
	assert.Equal(t, Vec2{4, 6}, tr.Position())
	assert.Equal(t, Vec2{5, 7}, tr.TransformPoint(Vec2{1, 1}))
}

func TestRect(t *testing.T) {
	r := Rect{0, 0, 10, 10}

	assert.True(t, r.Contains(Vec2{5, 5}))
	assert.False(t, r.Contains(Vec2{10, 5}))
	assert.True(t, r.Intersects(Rect{5, 5, 10, 10}))
	assert.False(t, r.Intersects(Rect{10, 0, 5, 5}))
	assert.Equal(t, 3, clamp(5, 0, 3))
	assert.Equal(t, -1.5, clamp(-1.5, -2, 2))
}
