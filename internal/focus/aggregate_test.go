package focus

import (
	"math"
	"testing"

	"github.com/inamate/focusframe/internal/geom"
	"github.com/inamate/focusframe/internal/scene"
)

func TestAggregateBranches(t *testing.T) {
	triangle := scene.Triangle(scene.Point{X: 0, Y: 0}, scene.Point{X: 4, Y: 0}, scene.Point{X: 0, Y: 2})

	tests := []struct {
		name   string
		fns    []scene.Function
		pts    []scene.Point
		shapes []scene.Shape
		branch SceneBranch
		skip   bool
		want   geom.Rect
	}{
		{
			name:   "empty",
			branch: SceneEmpty,
			skip:   true,
			want:   geom.DefaultRect,
		},
		{
			name:   "shapes with no vertices count as empty",
			shapes: []scene.Shape{{Kind: scene.ShapeKindPolygon}},
			branch: SceneEmpty,
			skip:   true,
			want:   geom.DefaultRect,
		},
		{
			name:   "two origin vertices",
			fns:    []scene.Function{fn(1, 0, 0), fn(-2, 0, 0)},
			branch: SceneOriginPair,
			skip:   true,
			want:   geom.DefaultRect,
		},
		{
			name:   "single origin vertex",
			fns:    []scene.Function{fn(1, 0, 0)},
			branch: SceneSingleOrigin,
			skip:   true,
			want:   geom.Rect{MinX: -10, MaxX: 10, MinY: -5, MaxY: 15},
		},
		{
			name:   "single origin vertex with a point",
			fns:    []scene.Function{fn(1, 0, 0)},
			pts:    []scene.Point{{X: 3, Y: 3}},
			branch: SceneGeneral,
			want:   geom.Rect{MinX: -10, MaxX: 10, MinY: -5, MaxY: 17},
		},
		{
			name:   "single point",
			pts:    []scene.Point{{X: 1, Y: 1}},
			branch: ScenePointsOnly,
			want:   geom.Rect{MinX: 0, MaxX: 2, MinY: 0, MaxY: 2},
		},
		{
			name:   "flat points",
			pts:    []scene.Point{{X: 0, Y: 0}, {X: 4, Y: 1}},
			branch: ScenePointsOnly,
			want:   geom.Rect{MinX: 0, MaxX: 4, MinY: -0.5, MaxY: 1.5},
		},
		{
			name:   "shape only",
			shapes: []scene.Shape{triangle},
			branch: SceneShapes,
			want:   geom.Rect{MinX: -2, MaxX: 6, MinY: -2, MaxY: 4},
		},
		{
			name:   "shape with user point",
			shapes: []scene.Shape{triangle},
			pts:    []scene.Point{{X: 10, Y: 0, Kind: scene.PointKindFree}, {X: -50, Y: 0, Kind: scene.PointKindAxis}},
			branch: SceneShapes,
			want:   geom.Rect{MinX: -2, MaxX: 12, MinY: -2, MaxY: 4},
		},
		{
			name:   "shape with a downward parabola",
			shapes: []scene.Shape{triangle},
			fns:    []scene.Function{fn(-1, 0, 9)},
			branch: SceneShapes,
			want:   geom.Rect{MinX: -2, MaxX: 6, MinY: -4, MaxY: 9},
		},
		{
			name:   "shape with a line",
			shapes: []scene.Shape{triangle},
			fns:    []scene.Function{fn(0, 1, 0)},
			branch: SceneShapes,
			want:   geom.Rect{MinX: -2, MaxX: 6, MinY: -2, MaxY: 5},
		},
		{
			name:   "single parabola",
			fns:    []scene.Function{fn(1, 0, -4)},
			branch: SceneGeneral,
			want:   geom.Rect{MinX: -2, MaxX: 2, MinY: -8, MaxY: 1},
		},
		{
			name:   "single downward parabola",
			fns:    []scene.Function{fn(-1, 0, 4)},
			branch: SceneGeneral,
			want:   geom.Rect{MinX: -2, MaxX: 2, MinY: -1, MaxY: 8},
		},
		{
			name:   "line only",
			fns:    []scene.Function{fn(0, 1, 0)},
			branch: SceneGeneral,
			want:   geom.Rect{MinX: -10, MaxX: 10, MinY: -10, MaxY: 12},
		},
		{
			name:   "line next to an origin parabola",
			fns:    []scene.Function{fn(1, 0, 0), fn(0, 2, 1)},
			branch: SceneGeneral,
			want:   geom.Rect{MinX: -10, MaxX: 10, MinY: -10, MaxY: 18},
		},
		{
			name:   "parabola and far point",
			fns:    []scene.Function{fn(1, 0, -4)},
			pts:    []scene.Point{{X: 6, Y: 12}},
			branch: SceneGeneral,
			want:   geom.Rect{MinX: -2, MaxX: 6, MinY: -8, MaxY: 14},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.fns, tt.pts, tt.shapes, false)
			if got.Branch != tt.branch {
				t.Errorf("got branch %q, want %q", got.Branch, tt.branch)
			}
			if got.Skip != tt.skip {
				t.Errorf("got skip %v, want %v", got.Skip, tt.skip)
			}
			if got.Debug != nil {
				t.Error("debug payload built without being requested")
			}
			diff(t, tt.want, got.Rect, approx)
		})
	}
}

func TestFrameEmptyIsDefault(t *testing.T) {
	for i := 0; i < 3; i++ {
		got := Frame(scene.NewEmptyFrame())
		diff(t, geom.Viewport{XMin: -10, XMax: 10, YMin: -10, YMax: 10}, got.Viewport)
	}
	got := Frame(&scene.Frame{})
	diff(t, geom.DefaultViewport, got.Viewport)
}

func TestFrameOriginPairIsDefault(t *testing.T) {
	f := &scene.Frame{Functions: []scene.Function{fn(1, 0, 0), fn(0.5, 0, 0)}}
	got := Frame(f)
	if !got.Skip {
		t.Error("origin pair should skip normalization")
	}
	diff(t, geom.DefaultViewport, got.Viewport)
}

func TestFrameExampleParabola(t *testing.T) {
	got := Frame(&scene.Frame{Functions: []scene.Function{fn(1, 0, -4)}})
	vp := got.Viewport
	for _, p := range []geom.Point{geom.Pt(-2, 0), geom.Pt(2, 0), geom.Pt(0, -4), geom.Pt(0, 0)} {
		if !vp.Rect().Contains(p) {
			t.Errorf("viewport %+v does not contain %v", vp, p)
		}
	}
	if math.Abs(vp.Width()-vp.Height()) > 1e-9 {
		t.Errorf("viewport %+v is not square", vp)
	}
	if !vp.Valid() {
		t.Errorf("viewport %+v is not valid", vp)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	f := scene.NewSampleFrame()
	f.Points = append(f.Points, scene.Point{X: -7.25, Y: 3.125})
	first := Frame(f)
	second := Frame(f)
	if first.Viewport != second.Viewport || first.Content != second.Content {
		t.Errorf("framing the same scene twice differs: %+v vs %+v", first, second)
	}
}

func TestFrameDebugPayload(t *testing.T) {
	f := &scene.Frame{
		Functions: []scene.Function{fn(1, 0, -4), fn(-1, 2, 3)},
		Points:    []scene.Point{{X: 1, Y: 1}},
		Debug:     true,
	}
	got := Frame(f)
	if got.Debug == nil {
		t.Fatal("no debug payload")
	}
	if got.Debug.Branch != SceneGeneral {
		t.Errorf("got branch %q, want %q", got.Debug.Branch, SceneGeneral)
	}
	if len(got.Debug.Functions) != 2 {
		t.Fatalf("got %d function areas, want 2", len(got.Debug.Functions))
	}
	if got.Debug.Union == nil {
		t.Fatal("no union recorded")
	}
	diff(t, got.Content, got.Debug.Content)
	diff(t, got.Viewport, got.Debug.Viewport)
	if n := len(got.Debug.RefPoints()); n != 10 {
		t.Errorf("got %d reference points, want 10", n)
	}

	f.Debug = false
	if plain := Frame(f); plain.Debug != nil || plain.Viewport != got.Viewport {
		t.Errorf("debug flag changed the framing or leaked a payload: %+v", plain)
	}
}

func TestFrameShapeDebugRecordsVertices(t *testing.T) {
	f := &scene.Frame{
		Functions: []scene.Function{fn(1, 0, -1), fn(0, 1, 1)},
		Shapes:    []scene.Shape{scene.Circle(0, 0, 2)},
		Debug:     true,
	}
	got := Frame(f)
	if got.Debug == nil || got.Debug.Branch != SceneShapes {
		t.Fatalf("unexpected debug payload %+v", got.Debug)
	}
	if len(got.Debug.Vertices) != 1 {
		t.Errorf("got %d vertices, want 1 (lines have none)", len(got.Debug.Vertices))
	}
}
