package geom

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance for every "is this zero" comparison in the
// viewport pipeline. Branch selection depends on it, so it must not vary
// between call sites.
const Epsilon = 1e-4

// NearZero reports whether v is within Epsilon of zero.
func NearZero(v float64) bool {
	return math.Abs(v) < Epsilon
}

// Point is a position in math coordinates (y grows upward).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Distance returns the euclidean distance between two points.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Reflect mirrors p through center, so that center is the midpoint of p and
// the result.
func (p Point) Reflect(center Point) Point {
	return Point{
		X: 2*center.X - p.X,
		Y: 2*center.Y - p.Y,
	}
}

// Midpoint returns the midpoint of two points.
func (p Point) Midpoint(o Point) Point {
	return Point{
		X: 0.5 * (p.X + o.X),
		Y: 0.5 * (p.Y + o.Y),
	}
}

// NearOrigin reports whether both coordinates are within Epsilon of zero.
func (p Point) NearOrigin() bool {
	return NearZero(p.X) && NearZero(p.Y)
}

// Origin is the point (0, 0).
var Origin = Point{}
