package preview

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/inamate/focusframe/internal/session"
)

// SnapshotSource returns what a live session is currently showing.
type SnapshotSource interface {
	Snapshot(sessionID string) (session.Snapshot, bool)
}

type Handler struct {
	source      SnapshotSource
	defaultSize int
}

func NewHandler(source SnapshotSource, defaultSize int) *Handler {
	return &Handler{source: source, defaultSize: defaultSize}
}

// SessionPNG renders the live frame of {sessionId} through its displayed
// viewport. ?size= overrides the default edge length.
func (h *Handler) SessionPNG(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	size := h.defaultSize
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < MinSize || n > MaxSize {
			http.Error(w, "invalid size", http.StatusBadRequest)
			return
		}
		size = n
	}

	snap, ok := h.source.Snapshot(sessionID)
	if !ok {
		http.Error(w, "session not live", http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, snap.Frame, snap.Viewport, snap.Debug, size); err != nil {
		slog.Error("render preview", "error", err, "session", sessionID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
