package session

import (
	"sync"
	"time"

	"github.com/inamate/focusframe/internal/engine"
	"github.com/inamate/focusframe/internal/focus"
	"github.com/inamate/focusframe/internal/geom"
	"github.com/inamate/focusframe/internal/scene"
	"github.com/inamate/focusframe/internal/transition"
)

// Room is one session: its connected clients and the engine framing the
// presenter's frames. The engine is single-writer; every access goes
// through mu.
type Room struct {
	sessionID string
	clients   map[string]*Client // clientID -> client, guarded by Hub.mu
	roster    *Roster

	mu     sync.Mutex
	engine *engine.Engine
	seq    int64
	// dirty is set when the latest target could not be saved.
	dirty bool
}

func NewRoom(sessionID string, opts transition.Options) *Room {
	return &Room{
		sessionID: sessionID,
		clients:   make(map[string]*Client),
		roster:    NewRoster(),
		engine:    engine.NewEngine(opts),
	}
}

// Snapshot is a consistent copy of what a room is showing.
type Snapshot struct {
	SessionID string        `json:"sessionId"`
	Frame     *scene.Frame  `json:"frame"`
	Viewport  geom.Viewport `json:"viewport"`
	Target    geom.Viewport `json:"target"`
	Animating bool          `json:"animating"`
	Debug     *focus.Debug  `json:"debug,omitempty"`
	Seq       int64         `json:"seq"`
}

// Seed shows vp without animating.
func (r *Room) Seed(vp geom.Viewport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engine.Seed(vp)
}

// Submit makes f the current frame and runs one tick.
func (r *Room) Submit(f *scene.Frame, now time.Time) (engine.Result, int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engine.SetFrame(f)
	r.seq++
	return r.engine.Tick(now), r.seq
}

// SetDebug toggles the debug payload and runs one tick.
func (r *Room) SetDebug(on bool, now time.Time) engine.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engine.SetDebug(on)
	return r.engine.Tick(now)
}

// Advance ticks the engine when a transition is in flight. The second
// result is false when the room was idle.
func (r *Room) Advance(now time.Time) (engine.Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.engine.IsAnimating() {
		return engine.Result{}, false
	}
	return r.engine.Tick(now), true
}

// Target returns the current signature and the viewport the room is
// heading toward.
func (r *Room) Target() (string, geom.Viewport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.engine.Signature(), r.engine.Target()
}

func (r *Room) setDirty(dirty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dirty = dirty
}

func (r *Room) isDirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dirty
}

func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		SessionID: r.sessionID,
		Frame:     r.engine.Frame(),
		Viewport:  r.engine.Viewport(),
		Target:    r.engine.Target(),
		Animating: r.engine.IsAnimating(),
		Debug:     r.engine.Debug(),
		Seq:       r.seq,
	}
}
