// Package engine runs the per-frame framing pipeline: it signs the current
// frame, reuses or recomputes the target viewport, and animates the
// displayed viewport toward it.
package engine

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/inamate/focusframe/internal/focus"
	"github.com/inamate/focusframe/internal/geom"
	"github.com/inamate/focusframe/internal/scene"
	"github.com/inamate/focusframe/internal/transition"
	"github.com/inamate/focusframe/internal/viewcache"
)

// Result is the outcome of one Tick.
type Result struct {
	Viewport  geom.Viewport `json:"viewport"`
	Target    geom.Viewport `json:"target"`
	FromCache bool          `json:"fromCache"`
	Animating bool          `json:"animating"`
	Debug     *focus.Debug  `json:"debug,omitempty"`
}

// Engine owns the current frame, the viewport cache and the live viewport.
// It is not safe for concurrent use; callers serialize access.
type Engine struct {
	frame *scene.Frame
	debug bool

	cache *viewcache.Cache
	live  *transition.Live
	opts  transition.Options

	// placed is false until a viewport has been shown, so the first target
	// is applied directly instead of animated.
	placed bool
}

// NewEngine creates an engine showing the default viewport.
func NewEngine(opts transition.Options) *Engine {
	return &Engine{
		frame: scene.NewEmptyFrame(),
		cache: viewcache.New(),
		live:  transition.NewLive(geom.DefaultViewport),
		opts:  opts,
	}
}

// --- Commands ---

// SetFrame replaces the current frame. The framing is recomputed on the
// next Tick only if the frame's signature changed.
func (e *Engine) SetFrame(f *scene.Frame) {
	if f == nil {
		f = scene.NewEmptyFrame()
	}
	e.frame = f
}

// LoadFrame decodes a frame from JSON and makes it current.
func (e *Engine) LoadFrame(jsonData string) error {
	var f scene.Frame
	if err := json.Unmarshal([]byte(jsonData), &f); err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}
	e.SetFrame(&f)
	return nil
}

// SetDebug toggles the debug payload. It takes part in the signature, so
// toggling it forces one recomputation.
func (e *Engine) SetDebug(on bool) {
	e.debug = on
}

// SetOptions changes the duration and easing of future transitions.
func (e *Engine) SetOptions(opts transition.Options) {
	e.opts = opts
}

// Seed shows vp immediately, typically a snapshot restored from storage.
// Any transition in flight is dropped.
func (e *Engine) Seed(vp geom.Viewport) {
	if !vp.Valid() {
		return
	}
	e.live.Bounds = vp
	e.live.State = nil
	e.placed = true
}

// Reset returns the engine to its initial state.
func (e *Engine) Reset() {
	e.frame = scene.NewEmptyFrame()
	e.debug = false
	e.cache.Clear()
	e.live = transition.NewLive(geom.DefaultViewport)
	e.placed = false
}

// Tick runs the pipeline once at time now.
func (e *Engine) Tick(now time.Time) Result {
	f := *e.frame
	f.Debug = e.debug || e.frame.Debug

	entry, fromCache := e.cache.Lookup(&f, focus.Frame)
	if !fromCache {
		switch {
		case !e.placed:
			e.live.Bounds = entry.Viewport
			e.live.State = nil
			e.placed = true
		case entry.Viewport.Equal(transition.Target(e.live)):
			// Same destination: the transition in flight keeps its clock.
		default:
			transition.Start(e.live, entry.Viewport, e.opts, now)
		}
	}
	animating := transition.Update(e.live, now)

	return Result{
		Viewport:  e.live.Bounds,
		Target:    entry.Viewport,
		FromCache: fromCache,
		Animating: animating,
		Debug:     entry.Debug,
	}
}

// --- Queries ---

// Viewport returns the displayed viewport.
func (e *Engine) Viewport() geom.Viewport {
	return e.live.Bounds
}

// Target returns the viewport the display is heading toward.
func (e *Engine) Target() geom.Viewport {
	return transition.Target(e.live)
}

// IsAnimating reports whether a transition is in flight.
func (e *Engine) IsAnimating() bool {
	return transition.IsAnimating(e.live)
}

// Frame returns the current frame.
func (e *Engine) Frame() *scene.Frame {
	return e.frame
}

// Debug returns the debug payload of the last framing, or nil.
func (e *Engine) Debug() *focus.Debug {
	if last := e.cache.Last(); last != nil {
		return last.Debug
	}
	return nil
}

// Signature returns the signature of the last framed scene, or "".
func (e *Engine) Signature() string {
	if last := e.cache.Last(); last != nil {
		return last.Signature
	}
	return ""
}

// CacheStats returns the viewport cache counters.
func (e *Engine) CacheStats() viewcache.Stats {
	return e.cache.Stats()
}

// Render compiles the current frame through the displayed viewport into
// draw commands for a width x height canvas, as JSON.
func (e *Engine) Render(width, height float64) string {
	commands := CompileDrawCommands(e.frame, e.live.Bounds, e.Debug(), width, height)
	result, _ := DrawCommandsToJSON(commands)
	return result
}

// TickJSON runs Tick and returns the result as JSON.
func (e *Engine) TickJSON(now time.Time) string {
	data, _ := json.Marshal(e.Tick(now))
	return string(data)
}

// GetViewport returns the displayed viewport as JSON.
func (e *Engine) GetViewport() string {
	data, _ := json.Marshal(e.live.Bounds)
	return string(data)
}

// GetFrame returns the current frame as JSON.
func (e *Engine) GetFrame() string {
	data, _ := json.Marshal(e.frame)
	return string(data)
}

// ComputeFocus frames a JSON-encoded frame without touching engine state.
func ComputeFocus(jsonData string) (focus.Result, error) {
	var f scene.Frame
	if err := json.Unmarshal([]byte(jsonData), &f); err != nil {
		return focus.Result{}, fmt.Errorf("decode frame: %w", err)
	}
	return focus.Frame(&f), nil
}
