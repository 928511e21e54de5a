// Package geom holds the plane geometry used by the arena: vectors,
// axis-aligned boxes and finite segments. It has no dependencies so the
// collision code stays testable in isolation.
package geom

import "math"

// Vec2 is a point or displacement in field pixels.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64 { return o.Sub(v).Len() }

// Norm returns the unit vector of v, or the zero vector when v has no length.
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Segment is a finite line segment between A and B.
type Segment struct {
	A, B Vec2
}

func (s Segment) Len() float64 { return s.A.Dist(s.B) }

// Intersects reports whether two finite segments share a point. Parallel and
// collinear segments never intersect, matching a bounded-intersection test
// that needs a single crossing point.
func (s Segment) Intersects(o Segment) bool {
	r := s.B.Sub(s.A)
	q := o.B.Sub(o.A)
	denom := r.Cross(q)
	if denom == 0 {
		return false
	}
	d := o.A.Sub(s.A)
	t := d.Cross(q) / denom
	u := d.Cross(r) / denom
	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// Rect is an axis-aligned box anchored at its top-left corner.
type Rect struct {
	X, Y float64 // top-left corner
	W, H float64
}

func NewRect(pos Vec2, w, h float64) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: w, H: h}
}

func (r Rect) Right() float64 { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Overlaps reports whether two boxes share interior area. Touching edges
// do not count.
func (r Rect) Overlaps(o Rect) bool {
	if r.X >= o.Right() || o.X >= r.Right() {
		return false
	}
	if r.Y >= o.Bottom() || o.Y >= r.Bottom() {
		return false
	}
	return true
}

// Edges returns the top, bottom, left and right sides of the box.
func (r Rect) Edges() [4]Segment {
	tl := Vec2{r.X, r.Y}
	tr := Vec2{r.Right(), r.Y}
	bl := Vec2{r.X, r.Bottom()}
	br := Vec2{r.Right(), r.Bottom()}
	return [4]Segment{
		{A: tl, B: tr},
		{A: bl, B: br},
		{A: tl, B: bl},
		{A: tr, B: br},
	}
}

// TouchesSegment reports whether any edge of the box crosses s.
func (r Rect) TouchesSegment(s Segment) bool {
	for _, e := range r.Edges() {
		if s.Intersects(e) {
			return true
		}
	}
	return false
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
