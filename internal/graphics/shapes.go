package graphics

import "math"

// DefaultCirclePoints is the point count of a CircleShape created without one.
const DefaultCirclePoints = 30

// RectangleShape is an axis-aligned rectangle with its top-left corner at
// the local origin.
type RectangleShape struct {
	Shape
	size Vec2
}

func NewRectangleShape(size Vec2) *RectangleShape {
	r := &RectangleShape{size: size}
	r.Shape = newShape(r)
	r.update()
	return r
}

func (r *RectangleShape) SetSize(size Vec2) {
	r.size = size
	r.update()
}

func (r *RectangleShape) Size() Vec2 { return r.size }

func (r *RectangleShape) PointCount() int { return 4 }

func (r *RectangleShape) Point(i int) Vec2 {
	switch i {
	case 1:
		return Vec2{r.size.X, 0}
	case 2:
		return r.size
	case 3:
		return Vec2{0, r.size.Y}
	default:
		return Vec2{}
	}
}

// CircleShape approximates a circle with a regular polygon. The circle's
// bounding box has its top-left corner at the local origin.
type CircleShape struct {
	Shape
	radius float32
	count  int
}

// NewCircleShape creates a circle; points <= 0 selects DefaultCirclePoints.
func NewCircleShape(radius float32, points int) *CircleShape {
	if points <= 0 {
		points = DefaultCirclePoints
	}
	c := &CircleShape{radius: radius, count: points}
	c.Shape = newShape(c)
	c.update()
	return c
}

func (c *CircleShape) SetRadius(radius float32) {
	c.radius = radius
	c.update()
}

func (c *CircleShape) Radius() float32 { return c.radius }

func (c *CircleShape) SetPointCount(n int) {
	c.count = max(n, 0)
	c.update()
}

func (c *CircleShape) PointCount() int { return c.count }

// Point returns the i-th point, starting at the top and going clockwise.
func (c *CircleShape) Point(i int) Vec2 {
	angle := float64(i)*2*math.Pi/float64(c.count) - math.Pi/2
	x := float32(math.Cos(angle)) * c.radius
	y := float32(math.Sin(angle)) * c.radius
	return Vec2{c.radius + x, c.radius + y}
}

// ConvexShape is a convex polygon with caller supplied points.
type ConvexShape struct {
	Shape
	points []Vec2
}

func NewConvexShape(points ...Vec2) *ConvexShape {
	c := &ConvexShape{points: append([]Vec2(nil), points...)}
	c.Shape = newShape(c)
	c.update()
	return c
}

// SetPointCount resizes the point list; new points start at the origin.
// Call SetPoint for each before drawing.
func (c *ConvexShape) SetPointCount(n int) {
	n = max(n, 0)
	if n <= len(c.points) {
		c.points = c.points[:n]
	} else {
		c.points = append(c.points, make([]Vec2, n-len(c.points))...)
	}
	c.update()
}

// SetPoint moves point i. Out of range indices are ignored.
func (c *ConvexShape) SetPoint(i int, p Vec2) {
	if i < 0 || i >= len(c.points) {
		return
	}
	c.points[i] = p
	c.update()
}

func (c *ConvexShape) PointCount() int { return len(c.points) }

func (c *ConvexShape) Point(i int) Vec2 {
	return c.points[clamp(i, 0, len(c.points)-1)]
}
