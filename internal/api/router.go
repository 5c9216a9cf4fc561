package api

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/inamate/focusframe/internal/auth"
	mw "github.com/inamate/focusframe/internal/middleware"
	"github.com/inamate/focusframe/internal/preview"
	"github.com/inamate/focusframe/internal/session"
)

// RouterConfig holds everything NewRouter wires together.
type RouterConfig struct {
	Auth        *auth.Service
	AuthHandler *auth.Handler
	Handler     *Handler
	Preview     *preview.Handler
	Hub         *session.Hub
	Origins     []string
}

// NewRouter builds the HTTP surface of the server.
func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Public
	r.HandleFunc("/sessions", cfg.AuthHandler.CreateSession).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/focus", cfg.Handler.Focus).Methods("POST", "OPTIONS")

	// Session-scoped, bearer token required
	sessions := r.PathPrefix("/api/sessions/{sessionId}").Subrouter()
	sessions.Use(cfg.Auth.Middleware)
	sessions.Use(RequireSession)
	sessions.HandleFunc("/me", cfg.AuthHandler.Me).Methods("GET", "OPTIONS")
	sessions.HandleFunc("/viewport", cfg.Handler.Viewport).Methods("GET", "OPTIONS")
	if cfg.Preview != nil {
		sessions.HandleFunc("/preview.png", cfg.Preview.SessionPNG).Methods("GET", "OPTIONS")
	}

	// WebSocket, token in the query string since browsers cannot set headers
	if cfg.Hub != nil {
		patterns := originPatterns(cfg.Origins)
		r.HandleFunc("/ws/session/{sessionId}", func(w http.ResponseWriter, r *http.Request) {
			handleWebSocket(w, r, cfg.Hub, cfg.Auth, patterns)
		})
	}

	return r
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *session.Hub, authSvc *auth.Service, patterns []string) {
	sessionID := mux.Vars(r)["sessionId"]

	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := authSvc.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if claims.SessionID() != sessionID {
		http.Error(w, "token is for another session", http.StatusForbidden)
		return
	}

	hub.ServeWS(w, r, claims, patterns)
}

// originPatterns converts allowed origins into the host patterns the
// websocket library matches against.
func originPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			patterns = append(patterns, "*")
			continue
		}
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			continue
		}
		patterns = append(patterns, u.Host)
	}
	return patterns
}
