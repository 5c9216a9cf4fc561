package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/inamate/focusframe/internal/typeid"
)

// SessionRecorder persists newly created sessions.
type SessionRecorder interface {
	CreateSession(ctx context.Context, sessionID string) error
}

type Handler struct {
	service  *Service
	sessions SessionRecorder
}

// NewHandler creates the session handler. sessions may be nil when nothing
// is persisted.
func NewHandler(service *Service, sessions SessionRecorder) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// SessionResult is returned when a session is created.
type SessionResult struct {
	SessionID      string `json:"sessionId"`
	PresenterToken string `json:"presenterToken"`
	ViewerToken    string `json:"viewerToken"`
}

// CreateSession allocates a session id and issues one token per role.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := typeid.NewSessionID()

	if h.sessions != nil {
		if err := h.sessions.CreateSession(r.Context(), sessionID); err != nil {
			slog.Error("create session failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
	}

	presenter, err := h.service.IssueToken(sessionID, RolePresenter)
	if err != nil {
		slog.Error("issue presenter token failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	viewer, err := h.service.IssueToken(sessionID, RoleViewer)
	if err != nil {
		slog.Error("issue viewer token failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	slog.Info("session created", "sessionId", sessionID)
	writeJSON(w, http.StatusCreated, SessionResult{
		SessionID:      sessionID,
		PresenterToken: presenter,
		ViewerToken:    viewer,
	})
}

// Me returns the claims of the caller's token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"sessionId": claims.SessionID(),
		"role":      string(claims.Role),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
