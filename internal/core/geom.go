// Package core provides fundamental types and utilities for the pinball
// machine. It contains no external dependencies (especially no Bubble Tea) to
// keep the simulation pure and testable.
package core

import "math"

// Vec2 is a point or direction in playfield space. Playfield units are pixels
// of a notional table; the renderer scales them down to terminal cells.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// LenSq returns the squared length of v.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// FromAngle returns the unit vector at angle radians (y grows downward).
func FromAngle(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Box is an axis-aligned rectangle in playfield space.
type Box struct {
	X float64 `json:"x"` // Top-left corner
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Center returns the center point of the box.
func (b Box) Center() Vec2 {
	return Vec2{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// ClosestPoint returns the point of the box nearest to p.
func (b Box) ClosestPoint(p Vec2) Vec2 {
	return Vec2{
		X: ClampF(p.X, b.X, b.X+b.W),
		Y: ClampF(p.Y, b.Y, b.Y+b.H),
	}
}

// DistancePointToSegment returns the shortest distance from p to segment ab.
// A degenerate segment (a == b) falls back to the distance to a.
func DistancePointToSegment(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	lenSq := ab.LenSq()
	if lenSq == 0 {
		return p.Dist(a)
	}
	t := ClampF(p.Sub(a).Dot(ab)/lenSq, 0, 1)
	return p.Dist(a.Add(ab.Scale(t)))
}

// ClosestScalarOnSegment projects p onto the interval [a, b] along a single
// axis: the parameter (p-a)/(b-a) is clamped to [0, 1] and interpolated back.
// When a == b the result is a.
func ClosestScalarOnSegment(p, a, b float64) float64 {
	if a == b {
		return a
	}
	t := ClampF((p-a)/(b-a), 0, 1)
	return a + t*(b-a)
}

// ClosestAxisPoint applies ClosestScalarOnSegment independently to each axis
// of segment ab. The result lies in the bounding box of the segment, not
// necessarily on the segment itself.
func ClosestAxisPoint(p, a, b Vec2) Vec2 {
	return Vec2{
		X: ClosestScalarOnSegment(p.X, a.X, b.X),
		Y: ClosestScalarOnSegment(p.Y, a.Y, b.Y),
	}
}

// CirclesOverlap reports whether two circles strictly overlap.
// Touching circles do not overlap.
func CirclesOverlap(c1 Vec2, r1 float64, c2 Vec2, r2 float64) bool {
	return c1.Dist(c2) < r1+r2
}

// CircleBoxOverlap reports whether a circle strictly overlaps a box.
func CircleBoxOverlap(c Vec2, r float64, b Box) bool {
	return c.Sub(b.ClosestPoint(c)).LenSq() < r*r
}

// Rect represents an axis-aligned rectangle of screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
