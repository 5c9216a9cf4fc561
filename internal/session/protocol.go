package session

import (
	"encoding/json"

	"github.com/inamate/focusframe/internal/focus"
	"github.com/inamate/focusframe/internal/geom"
	"github.com/inamate/focusframe/internal/scene"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Presenter → server
	TypeFrameSubmit = "frame.submit"
	TypeDebugSet    = "debug.set"

	// Server → clients
	TypeFrameAck       = "frame.ack"
	TypeViewportUpdate = "viewport.update"

	// Roster
	TypeRosterState = "roster.state"
	TypeRosterJoin  = "roster.join"
	TypeRosterLeave = "roster.leave"
)

// FrameSubmitPayload carries a new frame from the presenter.
type FrameSubmitPayload struct {
	Frame scene.Frame `json:"frame"`
}

// DebugSetPayload toggles the debug overlay for the whole session.
type DebugSetPayload struct {
	Enabled bool `json:"enabled"`
}

// FrameAckPayload acknowledges a submitted frame.
type FrameAckPayload struct {
	Seq       int64 `json:"seq"`
	FromCache bool  `json:"fromCache"`
}

// ViewportPayload is broadcast whenever the displayed viewport moves or a
// new target is chosen.
type ViewportPayload struct {
	Viewport  geom.Viewport `json:"viewport"`
	Target    geom.Viewport `json:"target"`
	Animating bool          `json:"animating"`
	FromCache bool          `json:"fromCache"`
	Debug     *focus.Debug  `json:"debug,omitempty"`
}

// WelcomePayload is the first message a client receives.
type WelcomePayload struct {
	ClientID string        `json:"clientId"`
	Role     string        `json:"role"`
	Viewport geom.Viewport `json:"viewport"`
	Frame    *scene.Frame  `json:"frame,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type RosterEntry struct {
	ClientID string `json:"clientId"`
	Role     string `json:"role"`
}

type RosterStatePayload struct {
	Clients []RosterEntry `json:"clients"`
}

func newMessage(msgType string, payload any) *Message {
	data, _ := json.Marshal(payload)
	return &Message{Type: msgType, Payload: data}
}

func errorMessage(text string) *Message {
	return newMessage(TypeError, ErrorPayload{Message: text})
}
