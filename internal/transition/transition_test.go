package transition

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/inamate/focusframe/internal/geom"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Errorf("mismatch (-want +got):\n%s", d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestEasingEndpoints(t *testing.T) {
	for _, e := range Easings {
		t.Run(string(e), func(t *testing.T) {
			if got := e.Apply(0); math.Abs(got) > 1e-9 {
				t.Errorf("Apply(0) = %v, want 0", got)
			}
			if got := e.Apply(1); math.Abs(got-1) > 1e-9 {
				t.Errorf("Apply(1) = %v, want 1", got)
			}
		})
	}
}

func TestEasingMonotonic(t *testing.T) {
	monotonic := []Easing{Linear, EaseIn, EaseOut, EaseInOut, EaseInCubic, EaseOutCubic, EaseInOutCubic}
	for _, e := range monotonic {
		t.Run(string(e), func(t *testing.T) {
			prev := e.Apply(0)
			for i := 1; i <= 100; i++ {
				cur := e.Apply(float64(i) / 100)
				if cur < prev-1e-12 {
					t.Fatalf("decreased at t=%v: %v < %v", float64(i)/100, cur, prev)
				}
				prev = cur
			}
		})
	}
}

func TestEasingValues(t *testing.T) {
	tests := []struct {
		easing Easing
		t      float64
		want   float64
	}{
		{Linear, 0.25, 0.25},
		{EaseIn, 0.5, 0.25},
		{EaseOut, 0.5, 0.75},
		{EaseInCubic, 0.5, 0.125},
		{EaseOutCubic, 0.5, 0.875},
		{EaseInOut, 0.5, 0.5},
		{EaseInOutCubic, 0.5, 0.5},
	}
	for _, tt := range tests {
		diff(t, tt.want, tt.easing.Apply(tt.t), approx)
	}
}

func TestEaseOutBackOvershoots(t *testing.T) {
	peak := 0.0
	for i := 0; i <= 100; i++ {
		peak = max(peak, EaseOutBack.Apply(float64(i)/100))
	}
	if peak <= 1 {
		t.Errorf("easeOutBack peak %v, want overshoot above 1", peak)
	}
}

func TestSpringSettles(t *testing.T) {
	if got := Spring.Apply(0.5); got <= 0 {
		t.Errorf("spring at half time = %v, want progress", got)
	}
	if got := Spring.Apply(0.999); math.Abs(got-1) > 0.1 {
		t.Errorf("spring near the end = %v, want close to 1", got)
	}
}

func TestParseEasing(t *testing.T) {
	for _, e := range Easings {
		got, ok := ParseEasing(string(e))
		if !ok || got != e {
			t.Errorf("ParseEasing(%q) = %q, %v", e, got, ok)
		}
	}
	if got, ok := ParseEasing("wobble"); ok || got != Linear {
		t.Errorf("unknown name: got %q, %v; want linear fallback", got, ok)
	}
}

var (
	t0   = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	from = geom.Viewport{XMin: -10, XMax: 10, YMin: -10, YMax: 10}
	to   = geom.Viewport{XMin: 0, XMax: 4, YMin: -2, YMax: 2}
)

func TestStartNoopOnEqualTarget(t *testing.T) {
	live := NewLive(from)
	Start(live, from, DefaultOptions(), t0)
	if IsAnimating(live) {
		t.Error("transition started toward the current bounds")
	}
	if Update(live, t0.Add(time.Second)) {
		t.Error("idle Update reported animating")
	}
}

func TestUpdateInterpolatesAndSnaps(t *testing.T) {
	live := NewLive(from)
	done := 0
	Start(live, to, Options{Duration: time.Second, Easing: Linear, OnComplete: func() { done++ }}, t0)

	if !Update(live, t0.Add(500*time.Millisecond)) {
		t.Fatal("expected animating at half time")
	}
	diff(t, geom.Viewport{XMin: -5, XMax: 7, YMin: -6, YMax: 6}, live.Bounds, approx)
	diff(t, 0.5, live.State.RawProgress, approx)

	if Update(live, t0.Add(1500*time.Millisecond)) {
		t.Error("expected finished past the duration")
	}
	if live.Bounds != to {
		t.Errorf("got %+v, want exact snap to %+v", live.Bounds, to)
	}
	if IsAnimating(live) {
		t.Error("state kept after completion")
	}
	if done != 1 {
		t.Errorf("OnComplete ran %d times, want 1", done)
	}
}

func TestUpdateBeforeStartClamps(t *testing.T) {
	live := NewLive(from)
	Start(live, to, Options{Duration: time.Second, Easing: EaseOutCubic}, t0)
	Update(live, t0.Add(-time.Second))
	diff(t, from, live.Bounds, approx)
}

func TestZeroDurationCompletesImmediately(t *testing.T) {
	live := NewLive(from)
	Start(live, to, Options{}, t0)
	if Update(live, t0) {
		t.Error("zero duration still animating")
	}
	if live.Bounds != to {
		t.Errorf("got %+v, want %+v", live.Bounds, to)
	}
}

func TestRestartFromMidFlight(t *testing.T) {
	live := NewLive(from)
	opts := Options{Duration: time.Second, Easing: Linear}
	Start(live, to, opts, t0)
	Update(live, t0.Add(500*time.Millisecond))
	mid := live.Bounds

	other := geom.Viewport{XMin: 20, XMax: 30, YMin: 20, YMax: 30}
	Start(live, other, opts, t0.Add(500*time.Millisecond))
	if live.State.From != mid {
		t.Errorf("restart from %+v, want mid-flight %+v", live.State.From, mid)
	}
	diff(t, other, Target(live))

	Update(live, t0.Add(500*time.Millisecond))
	diff(t, mid, live.Bounds, approx)
}

func TestEasingStaysWithinOvershootBounds(t *testing.T) {
	live := NewLive(from)
	Start(live, to, Options{Duration: time.Second, Easing: EaseOutCubic}, t0)
	for ms := 0; ms < 1000; ms += 16 {
		Update(live, t0.Add(time.Duration(ms)*time.Millisecond))
		b := live.Bounds
		if b.XMin < from.XMin-1e-9 || b.XMin > to.XMin+1e-9 {
			t.Fatalf("XMin %v left [%v,%v] at %dms", b.XMin, from.XMin, to.XMin, ms)
		}
	}
}
