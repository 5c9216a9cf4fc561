// Package session fans a presenter's frames out to every viewer of a
// session over WebSocket, animating the shared viewport on a server tick.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/inamate/focusframe/internal/auth"
	"github.com/inamate/focusframe/internal/engine"
	"github.com/inamate/focusframe/internal/geom"
	"github.com/inamate/focusframe/internal/transition"
)

// ErrNoViewport is returned by a Loader that has nothing stored.
var ErrNoViewport = errors.New("no stored viewport")

// Loader returns the last persisted viewport of a session.
type Loader func(ctx context.Context, sessionID string) (geom.Viewport, error)

// Saver persists a new target viewport together with its scene signature.
type Saver func(ctx context.Context, sessionID, signature string, vp geom.Viewport) error

// Options configures a Hub. Zero fields fall back to defaults.
type Options struct {
	Transition   transition.Options
	TickInterval time.Duration
	Loader       Loader
	Saver        Saver
	Now          func() time.Time
}

const (
	defaultTickInterval = 16 * time.Millisecond
	storeTimeout        = 5 * time.Second
)

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // sessionID -> room
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	done       chan struct{}
	stopOnce   sync.Once
	opts       Options
}

func NewHub(opts Options) *Hub {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Transition.Easing == "" {
		opts.Transition = transition.DefaultOptions()
	}
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		opts:       opts,
	}
}

// Run owns room membership and the render tick. It returns after Stop.
func (h *Hub) Run() {
	defer close(h.done)

	ticker := time.NewTicker(h.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ticker.C:
			h.advance(h.opts.Now())
		case <-h.stop:
			h.saveDirty()
			return
		}
	}
}

// Stop ends Run, retrying any save that failed earlier, and waits for it.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}

// Register adds client to its session's room and returns once the room is
// seeded and the welcome is queued, so the client's first message always
// finds the room.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		return
	}
	select {
	case <-client.ready:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Snapshot returns what the session is currently showing.
func (h *Hub) Snapshot(sessionID string) (Snapshot, bool) {
	h.mu.RLock()
	room, ok := h.rooms[sessionID]
	h.mu.RUnlock()
	if !ok {
		return Snapshot{}, false
	}
	return room.Snapshot(), true
}

// ServeWS upgrades the request and runs the client until it disconnects.
// claims must already be validated for sessionID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, claims *auth.Claims, originPatterns []string) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h, conn, claims.SessionID(), uuid.New().String(), claims.Role)
	h.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

func (h *Hub) addClient(client *Client) {
	h.mu.RLock()
	room, ok := h.rooms[client.SessionID]
	h.mu.RUnlock()

	// Only Run creates rooms, so loading outside the lock cannot race.
	if !ok {
		room = NewRoom(client.SessionID, h.opts.Transition)
		h.seedRoom(room)
		h.mu.Lock()
		h.rooms[client.SessionID] = room
		h.mu.Unlock()
	}

	h.mu.Lock()
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	entry := RosterEntry{ClientID: client.ClientID, Role: string(client.Role)}
	room.roster.Add(entry)

	snap := room.Snapshot()
	welcome := WelcomePayload{
		ClientID: client.ClientID,
		Role:     string(client.Role),
		Viewport: snap.Viewport,
	}
	if !snap.Frame.IsEmpty() {
		welcome.Frame = snap.Frame
	}
	client.Send(newMessage(TypeWelcome, welcome))

	if stateMsg := room.roster.StateMessage(); stateMsg != nil {
		client.Send(stateMsg)
	}
	h.broadcastToRoom(client.SessionID, newMessage(TypeRosterJoin, entry), client.ClientID)

	close(client.ready)
	slog.Info("client joined", "client", client.ClientID, "role", client.Role, "session", client.SessionID)
}

func (h *Hub) seedRoom(room *Room) {
	if h.opts.Loader == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	vp, err := h.opts.Loader(ctx, room.sessionID)
	if err != nil {
		if errors.Is(err, ErrNoViewport) {
			return
		}
		slog.Warn("load viewport", "error", err, "session", room.sessionID)
		return
	}
	room.Seed(vp)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.SessionID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, ok := room.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)
	room.roster.Remove(client.ClientID)

	empty := len(room.clients) == 0
	if empty {
		delete(h.rooms, client.SessionID)
	}
	h.mu.Unlock()

	if empty {
		if room.isDirty() {
			h.save(room)
		}
	} else {
		h.broadcastToRoom(client.SessionID, newMessage(TypeRosterLeave, RosterEntry{
			ClientID: client.ClientID,
			Role:     string(client.Role),
		}), "")
	}

	slog.Info("client left", "client", client.ClientID, "session", client.SessionID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypeFrameSubmit:
		h.handleFrameSubmit(sender, msg)
	case TypeDebugSet:
		h.handleDebugSet(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", sender.ClientID)
		sender.Send(errorMessage("unknown message type: " + msg.Type))
	}
}

func (h *Hub) room(sessionID string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[sessionID]
}

func (h *Hub) handleFrameSubmit(sender *Client, msg *Message) {
	if !sender.CanPresent() {
		sender.Send(errorMessage("only the presenter can submit frames"))
		return
	}

	var payload FrameSubmitPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		slog.Warn("invalid frame payload", "error", err, "client", sender.ClientID)
		sender.Send(errorMessage("invalid frame payload"))
		return
	}

	room := h.room(sender.SessionID)
	if room == nil {
		slog.Warn("frame for missing room", "client", sender.ClientID, "session", sender.SessionID)
		sender.Send(errorMessage("session is not live"))
		return
	}

	res, seq := room.Submit(&payload.Frame, h.opts.Now())

	ack := newMessage(TypeFrameAck, FrameAckPayload{Seq: msg.Seq, FromCache: res.FromCache})
	ack.Seq = seq
	sender.Send(ack)

	h.broadcastViewport(room, res, seq)
	if !res.FromCache {
		h.save(room)
	}
}

func (h *Hub) handleDebugSet(sender *Client, msg *Message) {
	if !sender.CanPresent() {
		sender.Send(errorMessage("only the presenter can toggle debug"))
		return
	}

	var payload DebugSetPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		sender.Send(errorMessage("invalid debug payload"))
		return
	}

	room := h.room(sender.SessionID)
	if room == nil {
		sender.Send(errorMessage("session is not live"))
		return
	}
	res := room.SetDebug(payload.Enabled, h.opts.Now())
	h.broadcastViewport(room, res, 0)
}

// advance moves every animating room one step and broadcasts the result.
func (h *Hub) advance(now time.Time) {
	h.mu.RLock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.mu.RUnlock()

	for _, room := range rooms {
		if res, ok := room.Advance(now); ok {
			h.broadcastViewport(room, res, 0)
		}
	}
}

func (h *Hub) broadcastViewport(room *Room, res engine.Result, seq int64) {
	msg := newMessage(TypeViewportUpdate, ViewportPayload{
		Viewport:  res.Viewport,
		Target:    res.Target,
		Animating: res.Animating,
		FromCache: res.FromCache,
		Debug:     res.Debug,
	})
	msg.Seq = seq
	h.broadcastToRoom(room.sessionID, msg, "")
}

// save persists the room's target, marking the room dirty on failure so
// Stop can retry.
func (h *Hub) save(room *Room) {
	if h.opts.Saver == nil {
		return
	}
	sig, vp := room.Target()

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := h.opts.Saver(ctx, room.sessionID, sig, vp); err != nil {
		slog.Error("save viewport", "error", err, "session", room.sessionID)
		room.setDirty(true)
		return
	}
	room.setDirty(false)
}

func (h *Hub) saveDirty() {
	h.mu.RLock()
	var dirty []*Room
	for _, r := range h.rooms {
		if r.isDirty() {
			dirty = append(dirty, r)
		}
	}
	h.mu.RUnlock()

	for _, r := range dirty {
		h.save(r)
	}
	if len(dirty) > 0 {
		slog.Info("saved pending viewports", "rooms", len(dirty))
	}
}

// broadcastToRoom sends msg to every client in the room except
// excludeClientID. Sends are non-blocking, so the read lock is held
// throughout to keep removeClient from closing a channel mid-send.
func (h *Hub) broadcastToRoom(sessionID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[sessionID]
	if !ok {
		return
	}
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			c.Send(msg)
		}
	}
}
