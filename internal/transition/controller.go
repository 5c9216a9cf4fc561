// Package transition animates a displayed viewport toward a target over a
// fixed duration with an easing curve.
package transition

import (
	"time"

	"github.com/inamate/focusframe/internal/geom"
)

// Defaults used when Options leaves a field unset.
const (
	DefaultDuration = 600 * time.Millisecond
	DefaultEasing   = EaseOutCubic
)

// Options configures one transition.
type Options struct {
	Duration   time.Duration
	Easing     Easing
	OnComplete func()
}

// DefaultOptions returns the default duration and easing.
func DefaultOptions() Options {
	return Options{Duration: DefaultDuration, Easing: DefaultEasing}
}

// State is an in-flight transition.
type State struct {
	From        geom.Viewport
	To          geom.Viewport
	Start       time.Time
	Duration    time.Duration
	Easing      Easing
	RawProgress float64
	Progress    float64
	OnComplete  func()
}

// Live is the viewport currently on screen plus at most one transition
// toward a new target.
type Live struct {
	Bounds geom.Viewport
	State  *State
}

// NewLive returns a Live showing vp with nothing in flight.
func NewLive(vp geom.Viewport) *Live {
	return &Live{Bounds: vp}
}

// Start begins a transition from the live bounds toward target, replacing
// any transition already in flight. It does nothing when target equals the
// live bounds exactly.
func Start(live *Live, target geom.Viewport, opts Options, now time.Time) {
	if live.Bounds.Equal(target) {
		return
	}
	live.State = &State{
		From:       live.Bounds,
		To:         target,
		Start:      now,
		Duration:   opts.Duration,
		Easing:     opts.Easing,
		OnComplete: opts.OnComplete,
	}
}

// Update advances the transition to now and writes the interpolated bounds
// into live. On completion the bounds snap exactly to the target, the state
// is cleared and OnComplete runs. Update reports whether a transition is
// still in flight.
func Update(live *Live, now time.Time) bool {
	s := live.State
	if s == nil {
		return false
	}

	raw := 1.0
	if s.Duration > 0 {
		raw = float64(now.Sub(s.Start)) / float64(s.Duration)
		raw = min(max(raw, 0), 1)
	}
	s.RawProgress = raw

	if raw >= 1 {
		s.Progress = 1
		live.Bounds = s.To
		live.State = nil
		if s.OnComplete != nil {
			s.OnComplete()
		}
		return false
	}

	s.Progress = s.Easing.Apply(raw)
	live.Bounds = s.From.Lerp(s.To, s.Progress)
	return true
}

// IsAnimating reports whether live has a transition in flight.
func IsAnimating(live *Live) bool {
	return live.State != nil
}

// Target returns the bounds live is heading toward: the transition target
// when one is in flight, otherwise the current bounds.
func Target(live *Live) geom.Viewport {
	if live.State != nil {
		return live.State.To
	}
	return live.Bounds
}
