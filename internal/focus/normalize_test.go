package focus

import (
	"math"
	"testing"

	"github.com/inamate/focusframe/internal/geom"
)

func TestNormalizeSkipCopiesBounds(t *testing.T) {
	r := geom.Rect{MinX: -10, MaxX: 10, MinY: -5, MaxY: 15}
	diff(t, geom.Viewport{XMin: -10, XMax: 10, YMin: -5, YMax: 15}, Normalize(r, true))
}

func TestNormalizeSeventyPercent(t *testing.T) {
	rects := []geom.Rect{
		{MinX: -2, MaxX: 2, MinY: -8, MaxY: 1},
		{MinX: 0, MaxX: 100, MinY: 0, MaxY: 1},
		{MinX: -3, MaxX: -1, MinY: 40, MaxY: 41},
		{MinX: -0.5, MaxX: 0.5, MinY: -0.5, MaxY: 0.5},
		{MinX: 1e3, MaxX: 1e3 + 7, MinY: -12, MaxY: 30},
	}
	for _, r := range rects {
		vp := Normalize(r, false)
		in := max(r.Width(), r.Height())
		out := max(vp.Width(), vp.Height())
		if ratio := in / out; math.Abs(ratio-ContentRatio) > 1e-9 {
			t.Errorf("%+v: content ratio %v, want %v", r, ratio, ContentRatio)
		}
		if math.Abs(vp.Width()-vp.Height()) > 1e-9 {
			t.Errorf("%+v: viewport %+v is not square", r, vp)
		}
		diff(t, r.Center(), vp.Rect().Center(), approx)
		for _, p := range []geom.Point{{X: r.MinX, Y: r.MinY}, {X: r.MaxX, Y: r.MaxY}} {
			if !vp.Rect().Contains(p) {
				t.Errorf("%+v: viewport %+v does not contain corner %v", r, vp, p)
			}
		}
	}
}

func TestNormalizeZeroExtent(t *testing.T) {
	vp := Normalize(geom.Rect{MinX: 3, MaxX: 3, MinY: -1, MaxY: -1}, false)
	if !vp.Valid() {
		t.Fatalf("viewport %+v is not valid", vp)
	}
	diff(t, geom.Pt(3, -1), vp.Rect().Center(), approx)
}
