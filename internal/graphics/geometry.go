// Package graphics provides drawable 2D primitives that build their own
// vertex geometry and render it with (*ebiten.Image).DrawTriangles.
package graphics

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/exp/constraints"
)

// Vec2 is a 2D vector in pixels.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }

// Len returns the euclidean length of v.
func (v Vec2) Len() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Normalize returns v scaled to unit length, or the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Left, Top, Width, Height float32
}

// Right returns Left + Width.
func (r Rect) Right() float32 { return r.Left + r.Width }

// Bottom returns Top + Height.
func (r Rect) Bottom() float32 { return r.Top + r.Height }

// Contains reports whether the point lies inside r (right and bottom edges excluded).
func (r Rect) Contains(p Vec2) bool {
	minX, maxX := min(r.Left, r.Right()), max(r.Left, r.Right())
	minY, maxY := min(r.Top, r.Bottom()), max(r.Top, r.Bottom())
	return p.X >= minX && p.X < maxX && p.Y >= minY && p.Y < maxY
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	left := max(min(r.Left, r.Right()), min(o.Left, o.Right()))
	top := max(min(r.Top, r.Bottom()), min(o.Top, o.Bottom()))
	right := min(max(r.Left, r.Right()), max(o.Left, o.Right()))
	bottom := min(max(r.Top, r.Bottom()), max(o.Top, o.Bottom()))
	return left < right && top < bottom
}

// boundsOf returns the smallest rectangle containing every vertex position.
func boundsOf(batches ...[]ebiten.Vertex) Rect {
	first := true
	var left, top, right, bottom float32
	for _, vs := range batches {
		for _, v := range vs {
			if first {
				left, right = v.DstX, v.DstX
				top, bottom = v.DstY, v.DstY
				first = false
				continue
			}
			left = min(left, v.DstX)
			right = max(right, v.DstX)
			top = min(top, v.DstY)
			bottom = max(bottom, v.DstY)
		}
	}
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// transformRect returns the bounding box of r after applying g.
func transformRect(g ebiten.GeoM, r Rect) Rect {
	corners := [4][2]float64{
		{float64(r.Left), float64(r.Top)},
		{float64(r.Left), float64(r.Bottom())},
		{float64(r.Right()), float64(r.Top)},
		{float64(r.Right()), float64(r.Bottom())},
	}
	x0, y0 := g.Apply(corners[0][0], corners[0][1])
	left, right, top, bottom := x0, x0, y0, y0
	for _, c := range corners[1:] {
		x, y := g.Apply(c[0], c[1])
		left = min(left, x)
		right = max(right, x)
		top = min(top, y)
		bottom = max(bottom, y)
	}
	return Rect{
		Left:   float32(left),
		Top:    float32(top),
		Width:  float32(right - left),
		Height: float32(bottom - top),
	}
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
