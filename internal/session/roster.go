package session

import (
	"log/slog"
	"sort"
	"sync"
)

// Roster tracks who is connected to a room.
type Roster struct {
	mu      sync.RWMutex
	entries map[string]RosterEntry // clientID -> entry
}

func NewRoster() *Roster {
	return &Roster{
		entries: make(map[string]RosterEntry),
	}
}

func (r *Roster) Add(e RosterEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.ClientID] = e
}

func (r *Roster) Remove(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, clientID)
}

func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// All returns the entries ordered by client id.
func (r *Roster) All() []RosterEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]RosterEntry, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ClientID < result[j].ClientID })
	return result
}

func (r *Roster) StateMessage() *Message {
	msg := newMessage(TypeRosterState, RosterStatePayload{Clients: r.All()})
	if msg.Payload == nil {
		slog.Error("marshal roster state")
		return nil
	}
	return msg
}
