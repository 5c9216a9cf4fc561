package viewcache

import (
	"testing"

	"github.com/inamate/focusframe/internal/focus"
	"github.com/inamate/focusframe/internal/scene"
)

func sampleFrame() *scene.Frame {
	return &scene.Frame{
		Functions: []scene.Function{
			{A: 1, B: 0, C: -4},
			{A: 0, B: 2, C: 1, Points: []scene.Point{{X: 1, Y: 3}}},
		},
		Points: []scene.Point{{X: 2, Y: 2, Kind: scene.PointKindFree}},
		Shapes: []scene.Shape{scene.Rectangle(0, 0, 1, 1)},
	}
}

func TestSignatureDeterministic(t *testing.T) {
	if Signature(sampleFrame()) != Signature(sampleFrame()) {
		t.Error("equal scenes produced different signatures")
	}
	if Signature(&scene.Frame{}) != Signature(scene.NewEmptyFrame()) {
		t.Error("nil and empty slices produced different signatures")
	}
}

func TestSignatureSensitivity(t *testing.T) {
	base := Signature(sampleFrame())

	tests := []struct {
		name   string
		mutate func(f *scene.Frame)
	}{
		{"coefficient a", func(f *scene.Frame) { f.Functions[0].A = 1.0000001 }},
		{"coefficient b", func(f *scene.Frame) { f.Functions[1].B = 3 }},
		{"coefficient c", func(f *scene.Frame) { f.Functions[0].C = -4.5 }},
		{"attached point", func(f *scene.Frame) { f.Functions[1].Points[0].Y = 4 }},
		{"shape vertex", func(f *scene.Frame) { f.Shapes[0].Vertices[2].X = 2 }},
		{"shape kind", func(f *scene.Frame) { f.Shapes[0].Kind = scene.ShapeKindPolygon }},
		{"point coordinate", func(f *scene.Frame) { f.Points[0].X = -2 }},
		{"point kind", func(f *scene.Frame) { f.Points[0].Kind = scene.PointKindAxis }},
		{"extra point", func(f *scene.Frame) { f.Points = append(f.Points, scene.Point{}) }},
		{"debug flag", func(f *scene.Frame) { f.Debug = true }},
		{"function order", func(f *scene.Frame) { f.Functions[0], f.Functions[1] = f.Functions[1], f.Functions[0] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := sampleFrame()
			tt.mutate(f)
			if Signature(f) == base {
				t.Errorf("signature unchanged after mutating %s", tt.name)
			}
		})
	}
}

func TestSignatureSeparatorsDoNotCollide(t *testing.T) {
	a := &scene.Frame{Functions: []scene.Function{{A: 1, B: 12, C: 3}}}
	b := &scene.Frame{Functions: []scene.Function{{A: 11, B: 2, C: 3}}}
	if Signature(a) == Signature(b) {
		t.Error("different coefficient lists share a signature")
	}
	c := &scene.Frame{Points: []scene.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}}
	d := &scene.Frame{Points: []scene.Point{{X: 1, Y: 23}, {X: 4}}}
	if Signature(c) == Signature(d) {
		t.Error("different point lists share a signature")
	}
}

func TestSignatureKindCannotForgeRecords(t *testing.T) {
	tests := []struct {
		name string
		a, b *scene.Frame
	}{
		{
			"point kind",
			&scene.Frame{Points: []scene.Point{{X: 1, Y: 2, Kind: "a|p:30,40"}}},
			&scene.Frame{Points: []scene.Point{{X: 1, Y: 2, Kind: "a"}, {X: 30, Y: 40}}},
		},
		{
			"shape kind",
			&scene.Frame{Shapes: []scene.Shape{{Kind: "x|p:5,5"}}},
			&scene.Frame{Shapes: []scene.Shape{{Kind: "x"}}, Points: []scene.Point{{X: 5, Y: 5}}},
		},
		{
			"quote in kind",
			&scene.Frame{Points: []scene.Point{{X: 1, Y: 2, Kind: `a"|p:3,4/"b`}}},
			&scene.Frame{Points: []scene.Point{{X: 1, Y: 2, Kind: "a"}, {X: 3, Y: 4, Kind: "b"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Signature(tt.a) == Signature(tt.b) {
				t.Errorf("distinct scenes share signature %q", Signature(tt.a))
			}
		})
	}
}

func TestLookupKindCollisionRecomputes(t *testing.T) {
	c := New()
	forged := &scene.Frame{Points: []scene.Point{{X: 1, Y: 2, Kind: "a|p:30,40"}}}
	c.Lookup(forged, focus.Frame)

	plain := &scene.Frame{Points: []scene.Point{{X: 1, Y: 2, Kind: "a"}, {X: 30, Y: 40}}}
	entry, fromCache := c.Lookup(plain, focus.Frame)
	if fromCache {
		t.Fatal("scene with an extra point hit the cache")
	}
	if vp := entry.Viewport; vp.XMax < 30 || vp.YMax < 40 {
		t.Errorf("viewport %+v does not contain (30, 40)", vp)
	}
}

func TestCacheGetSet(t *testing.T) {
	c := New()
	sig := Signature(sampleFrame())

	if _, ok := c.Get(sig); ok {
		t.Fatal("empty cache reported a hit")
	}

	res := focus.Frame(sampleFrame())
	stored := c.Set(sig, res.Viewport, res.Debug)

	got, ok := c.Get(sig)
	if !ok {
		t.Fatal("expected a hit after Set")
	}
	if got != stored {
		t.Error("hit returned a different entry than Set stored")
	}
	if got.Viewport != res.Viewport {
		t.Errorf("got viewport %+v, want %+v", got.Viewport, res.Viewport)
	}

	if _, ok := c.Get(sig + "x"); ok {
		t.Error("different signature reported a hit")
	}

	if s := c.Stats(); s.Hits != 1 || s.Misses != 1 {
		t.Errorf("got stats %+v, want 1 hit and 1 miss", s)
	}
}

func TestCacheLookup(t *testing.T) {
	c := New()
	computed := 0
	compute := func(f *scene.Frame) focus.Result {
		computed++
		return focus.Frame(f)
	}

	first, fromCache := c.Lookup(sampleFrame(), compute)
	if fromCache {
		t.Error("first lookup reported fromCache")
	}
	second, fromCache := c.Lookup(sampleFrame(), compute)
	if !fromCache {
		t.Error("second lookup of an identical scene missed")
	}
	if first != second {
		t.Error("cache hit returned a different entry")
	}
	if computed != 1 {
		t.Errorf("compute called %d times, want 1", computed)
	}

	changed := sampleFrame()
	changed.Functions[0].B = 1
	third, fromCache := c.Lookup(changed, compute)
	if fromCache {
		t.Error("changed coefficient still hit the cache")
	}
	if third == first {
		t.Error("changed scene returned the old entry")
	}
	if computed != 2 {
		t.Errorf("compute called %d times, want 2", computed)
	}
}

func TestCacheClear(t *testing.T) {
	c := New()
	c.Lookup(sampleFrame(), focus.Frame)
	c.Lookup(sampleFrame(), focus.Frame)
	c.Clear()

	if c.Last() != nil {
		t.Error("Clear kept the last entry")
	}
	if s := c.Stats(); s != (Stats{}) {
		t.Errorf("Clear kept counters %+v", s)
	}
	if _, fromCache := c.Lookup(sampleFrame(), focus.Frame); fromCache {
		t.Error("lookup after Clear hit the cache")
	}
}
