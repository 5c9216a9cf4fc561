package focus

import (
	"math"

	"github.com/inamate/focusframe/internal/geom"
	"github.com/inamate/focusframe/internal/scene"
)

// SceneBranch names the aggregation rule that framed a scene.
type SceneBranch string

const (
	SceneShapes       SceneBranch = "shapes"
	ScenePointsOnly   SceneBranch = "pointsOnly"
	SceneEmpty        SceneBranch = "empty"
	SceneOriginPair   SceneBranch = "originVertices"
	SceneSingleOrigin SceneBranch = "singleOriginVertex"
	SceneGeneral      SceneBranch = "general"
)

const (
	// minPointSpan is the smallest extent a points-only scene gets per axis.
	minPointSpan = 2
	// minShapeMargin is the smallest per-side margin around shapes.
	minShapeMargin = 2
	// minHeadroom is the smallest margin added in the opening direction.
	minHeadroom = 1
)

// Aggregation is the raw content rectangle for a whole scene.
type Aggregation struct {
	Rect   geom.Rect
	Branch SceneBranch
	// Skip is set when Rect is already the final viewport and the 70% rule
	// must not be applied.
	Skip bool
	// Debug is nil unless requested.
	Debug *Debug
}

// Aggregate combines the focus areas of every function with the scene's
// points and shapes. Branches are tried in order and the first match wins.
func Aggregate(fns []scene.Function, pts []scene.Point, shapes []scene.Shape, debug bool) Aggregation {
	var agg Aggregation
	if debug {
		agg.Debug = &Debug{}
	}

	switch {
	case hasVertices(shapes):
		agg.Branch = SceneShapes
		agg.Rect = frameShapes(fns, pts, shapes, agg.Debug)
	case len(fns) == 0 && len(pts) > 0:
		agg.Branch = ScenePointsOnly
		agg.Rect = framePoints(pts)
	case len(fns) == 0:
		agg.Branch = SceneEmpty
		agg.Rect = geom.DefaultRect
		agg.Skip = true
	case len(fns) >= 2 && len(pts) == 0 && allVerticesAtOrigin(fns):
		agg.Branch = SceneOriginPair
		agg.Rect = geom.DefaultRect
		agg.Skip = true
	default:
		agg.Branch, agg.Rect, agg.Skip = frameFunctions(fns, pts, agg.Debug)
	}

	if agg.Debug != nil {
		agg.Debug.Branch = agg.Branch
		agg.Debug.Content = agg.Rect
	}
	return agg
}

// frameShapes frames shapes first, then makes room for user points and
// function vertices.
func frameShapes(fns []scene.Function, pts []scene.Point, shapes []scene.Shape, dbg *Debug) geom.Rect {
	var verts []geom.Point
	for _, s := range shapes {
		verts = append(verts, scene.GeomPoints(s.Vertices)...)
	}
	for _, p := range pts {
		if p.IsUser() {
			verts = append(verts, p.Geom())
		}
	}
	r, _ := geom.RectFromPoints(verts...)
	if dbg != nil {
		dbg.Union = ptr(r)
	}

	r = r.Inflate(shapeMargin(r.Width()), shapeMargin(r.Height()))
	if len(fns) == 0 {
		return r
	}

	for _, fn := range fns {
		if v, ok := fn.Quadratic().Vertex(); ok {
			r = r.UnionPoint(v)
			if dbg != nil {
				dbg.Vertices = append(dbg.Vertices, v)
			}
		}
	}
	return addHeadroom(r, anyOpensDown(fns))
}

// framePoints centers a box of at least minPointSpan per axis on the points.
func framePoints(pts []scene.Point) geom.Rect {
	r, _ := geom.RectFromPoints(scene.GeomPoints(pts)...)
	w := max(r.Width(), minPointSpan)
	h := max(r.Height(), minPointSpan)
	return geom.CenteredSpan(r.Center(), w, h)
}

// frameFunctions unions the per-function focus areas with the points.
func frameFunctions(fns []scene.Function, pts []scene.Point, dbg *Debug) (SceneBranch, geom.Rect, bool) {
	var union geom.Rect
	for i, fn := range fns {
		area := Calculate(fn, fn.Points, len(fns), i)
		if dbg != nil {
			dbg.Functions = append(dbg.Functions, FunctionDebug{Label: fn.Label(), Area: area})
		}
		if i == 0 {
			union = area.Rect
		} else {
			union = union.Union(area.Rect)
		}

		if len(fns) == 1 && len(pts) == 0 && area.Branch == BranchOriginVertex {
			return SceneSingleOrigin, area.Rect, true
		}
	}

	if pr, ok := geom.RectFromPoints(scene.GeomPoints(pts)...); ok {
		union = union.Union(pr)
	}
	if dbg != nil {
		dbg.Union = ptr(union)
	}
	return SceneGeneral, addHeadroom(union, anyOpensDown(fns)), false
}

// addHeadroom adds margin on the side a parabola opens toward: below when
// any function opens downward, above otherwise.
func addHeadroom(r geom.Rect, downward bool) geom.Rect {
	m := max(math.Ceil(r.Height()/10), minHeadroom)
	if downward {
		return r.Extend(0, m)
	}
	return r.Extend(m, 0)
}

func shapeMargin(span float64) float64 {
	return max(math.Ceil(span/5), minShapeMargin)
}

func hasVertices(shapes []scene.Shape) bool {
	for _, s := range shapes {
		if len(s.Vertices) > 0 {
			return true
		}
	}
	return false
}

func anyOpensDown(fns []scene.Function) bool {
	for _, fn := range fns {
		if fn.Quadratic().OpensDown() {
			return true
		}
	}
	return false
}

func allVerticesAtOrigin(fns []scene.Function) bool {
	for _, fn := range fns {
		v, ok := fn.Quadratic().Vertex()
		if !ok || !v.NearOrigin() {
			return false
		}
	}
	return true
}

func ptr[T any](v T) *T {
	return &v
}
