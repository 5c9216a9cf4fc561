package geom

import "math"

// Quadratic is the function a·x² + b·x + c. A near-zero A makes it linear.
type Quadratic struct {
	A float64
	B float64
	C float64
}

// IsLinear reports whether the quadratic term vanishes. Vertex math divides
// by A, so this must be checked before any of it.
func (q Quadratic) IsLinear() bool {
	return NearZero(q.A)
}

// Eval returns the function value at x.
func (q Quadratic) Eval(x float64) float64 {
	return (q.A*x+q.B)*x + q.C
}

// Discriminant returns b² - 4ac.
func (q Quadratic) Discriminant() float64 {
	return q.B*q.B - 4*q.A*q.C
}

// AxisOfSymmetry returns -b/2a. Undefined for linear functions.
func (q Quadratic) AxisOfSymmetry() float64 {
	return -q.B / (2 * q.A)
}

// Vertex returns the turning point. The second result is false for linear
// functions, which have none.
func (q Quadratic) Vertex() (Point, bool) {
	if q.IsLinear() {
		return Point{}, false
	}
	x := q.AxisOfSymmetry()
	return Point{X: x, Y: q.Eval(x)}, true
}

// OpensDown reports whether the parabola opens toward negative y.
func (q Quadratic) OpensDown() bool {
	return q.A < -Epsilon
}

// NoRealRoots reports whether a (non-linear) parabola stays strictly above
// or below the x-axis. A discriminant within Epsilon of zero counts as a
// repeated root.
func (q Quadratic) NoRealRoots() bool {
	if q.IsLinear() {
		return false
	}
	d := q.Discriminant()
	return d < 0 && !NearZero(d)
}

// XIntercepts returns the real roots in ascending order. A repeated root is
// reported once. Linear functions report the root of b·x + c when b is
// non-zero.
func (q Quadratic) XIntercepts() []Point {
	if q.IsLinear() {
		if NearZero(q.B) {
			return nil
		}
		return []Point{{X: -q.C / q.B}}
	}

	d := q.Discriminant()
	switch {
	case NearZero(d):
		return []Point{{X: q.AxisOfSymmetry()}}
	case d < 0:
		return nil
	}

	s := math.Sqrt(d)
	x1 := (-q.B - s) / (2 * q.A)
	x2 := (-q.B + s) / (2 * q.A)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	return []Point{{X: x1}, {X: x2}}
}

// YIntercept returns (0, c).
func (q Quadratic) YIntercept() Point {
	return Point{Y: q.C}
}
