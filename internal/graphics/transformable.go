package graphics

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Transformable holds a position, origin, scale and rotation and turns them
// into an ebiten.GeoM. The origin is the point of the object that sits at
// the position and that scaling and rotation happen around.
type Transformable struct {
	position Vec2
	origin   Vec2
	scale    Vec2
	rotation float64 // degrees, [0, 360)
}

// NewTransformable returns the identity transform.
func NewTransformable() Transformable {
	return Transformable{scale: Vec2{1, 1}}
}

func (t *Transformable) SetPosition(x, y float32) { t.position = Vec2{x, y} }
func (t *Transformable) Position() Vec2 { return t.position }

// Move offsets the position.
func (t *Transformable) Move(dx, dy float32) {
	t.position = t.position.Add(Vec2{dx, dy})
}

func (t *Transformable) SetOrigin(x, y float32) { t.origin = Vec2{x, y} }
func (t *Transformable) Origin() Vec2 { return t.origin }

func (t *Transformable) SetScale(sx, sy float32) { t.scale = Vec2{sx, sy} }
func (t *Transformable) Scale() Vec2 { return t.scale }

// SetRotation sets the rotation in degrees.
func (t *Transformable) SetRotation(deg float64) {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	t.rotation = deg
}

// Rotate adds deg to the current rotation.
func (t *Transformable) Rotate(deg float64) {
	t.SetRotation(t.rotation + deg)
}

// Rotation returns the rotation in degrees.
func (t *Transformable) Rotation() float64 {
	return t.rotation
}

// GeoM returns the local-to-parent transform.
func (t *Transformable) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-float64(t.origin.X), -float64(t.origin.Y))
	g.Scale(float64(t.scale.X), float64(t.scale.Y))
	if t.rotation != 0 {
		g.Rotate(t.rotation * math.Pi / 180)
	}
	g.Translate(float64(t.position.X), float64(t.position.Y))
	return g
}

// TransformPoint maps a local point to parent coordinates.
func (t *Transformable) TransformPoint(p Vec2) Vec2 {
	g := t.GeoM()
	x, y := g.Apply(float64(p.X), float64(p.Y))
	return Vec2{float32(x), float32(y)}
}
