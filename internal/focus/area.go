// Package focus computes the coordinate rectangle that frames a scene of
// functions, points and shapes.
//
// The package is pure: nothing here logs, allocates state between calls or
// reads a clock. Degenerate input always degrades to a finite rectangle;
// non-finite coefficients are the caller's problem.
package focus

import (
	"math"

	"github.com/inamate/focusframe/internal/geom"
	"github.com/inamate/focusframe/internal/scene"
)

// Branch names the rule that produced a focus area.
type Branch string

const (
	BranchLinear           Branch = "linear"
	BranchOriginVertex     Branch = "originVertex"
	BranchSymmetricNoRoots Branch = "symmetricNoRoots"
	BranchNoRealRoots      Branch = "noRealRoots"
	BranchGeneral          Branch = "general"
)

// Fixed framings for a parabola whose vertex sits on the origin, biased
// toward the opening direction.
var (
	originUpRect   = geom.Rect{MinX: -10, MaxX: 10, MinY: -5, MaxY: 15}
	originDownRect = geom.Rect{MinX: -10, MaxX: 10, MinY: -15, MaxY: 5}
)

// originVertexMaxFunctions is the largest scene for which a single
// origin-vertex parabola gets its fixed framing.
const originVertexMaxFunctions = 2

// Refs are the reference points a focus area was derived from. They exist
// for overlay rendering only.
type Refs struct {
	V  geom.Point `json:"v"` // symmetry center: the vertex, or V' when there are no real roots
	F1 geom.Point `json:"f1"`
	F2 geom.Point `json:"f2"`
	F3 geom.Point `json:"f3"`
	F4 geom.Point `json:"f4"`
}

// Area is the minimal framing of one function.
type Area struct {
	Index  int       `json:"index"`
	Branch Branch    `json:"branch"`
	Rect   geom.Rect `json:"rect"`
	Refs   *Refs     `json:"refs,omitempty"`
}

// Calculate returns the focus area of fn. extra are points that belong to
// the same visual group; total is the number of functions in the scene and
// index is fn's position among them.
//
// Rules are tried in order and the first match wins. The linear check must
// come first since everything after it divides by a.
func Calculate(fn scene.Function, extra []scene.Point, total, index int) Area {
	q := fn.Quadratic()
	area := Area{Index: index}

	if q.IsLinear() {
		area.Branch = BranchLinear
		area.Rect = geom.DefaultRect
		return area
	}

	vertex, _ := q.Vertex()
	if total <= originVertexMaxFunctions && vertex.NearOrigin() {
		area.Branch = BranchOriginVertex
		if q.A > 0 {
			area.Rect = originUpRect
		} else {
			area.Rect = originDownRect
		}
		return area
	}

	noRoots := q.NoRealRoots()
	if noRoots && geom.NearZero(q.B) {
		area.Branch = BranchSymmetricNoRoots
		area.Rect = symmetricNoRootsRect(q)
		return area
	}

	center := vertex
	area.Branch = BranchGeneral
	if noRoots {
		// The true vertex hangs off the axis; frame around its projection.
		center = geom.Pt(q.AxisOfSymmetry(), 0)
		area.Branch = BranchNoRealRoots
	}

	refs := reflectFarthest(center, candidates(q, extra))
	area.Refs = &refs
	area.Rect = guardExtent(refsRect(refs), center)
	return area
}

func symmetricNoRootsRect(q geom.Quadratic) geom.Rect {
	halfWidth := max(math.Sqrt(math.Abs(q.C)/math.Abs(q.A)), 1)
	height := 2 * math.Abs(q.C)
	r := geom.Rect{MinX: -halfWidth, MaxX: halfWidth}
	if q.C > 0 {
		r.MaxY = height
	} else {
		r.MinY = -height
	}
	return r
}

// candidates lists the points a function's framing must consider, in the
// order that decides ties: origin, x-intercepts, y-intercept, extras.
func candidates(q geom.Quadratic, extra []scene.Point) []geom.Point {
	xs := q.XIntercepts()
	pts := make([]geom.Point, 0, 2+len(xs)+len(extra))
	pts = append(pts, geom.Origin)
	pts = append(pts, xs...)
	pts = append(pts, q.YIntercept())
	for _, p := range extra {
		pts = append(pts, p.Geom())
	}
	return pts
}

// reflectFarthest picks the candidate farthest from center as F1 (first seen
// wins a tie), mirrors it through center as F2, and projects both onto the
// center's height as F3 and F4.
func reflectFarthest(center geom.Point, pts []geom.Point) Refs {
	f1 := center
	best := -1.0
	for _, p := range pts {
		if d := p.Distance(center); d > best {
			best = d
			f1 = p
		}
	}
	f2 := f1.Reflect(center)
	return Refs{
		V:  center,
		F1: f1,
		F2: f2,
		F3: geom.Pt(f1.X, center.Y),
		F4: geom.Pt(f2.X, center.Y),
	}
}

func refsRect(refs Refs) geom.Rect {
	r, _ := geom.RectFromPoints(refs.F1, refs.F2, refs.F3, refs.F4)
	return r
}

// guardExtent widens any axis with no extent to ±1 around center.
func guardExtent(r geom.Rect, center geom.Point) geom.Rect {
	if r.Width() < geom.Epsilon {
		r.MinX, r.MaxX = center.X-1, center.X+1
	}
	if r.Height() < geom.Epsilon {
		r.MinY, r.MaxY = center.Y-1, center.Y+1
	}
	return r
}
