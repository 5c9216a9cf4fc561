package api

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/inamate/focusframe/internal/auth"
	"github.com/inamate/focusframe/internal/focus"
	"github.com/inamate/focusframe/internal/geom"
	"github.com/inamate/focusframe/internal/scene"
	"github.com/inamate/focusframe/internal/session"
	"github.com/inamate/focusframe/internal/store"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidFrame = errors.New("invalid frame")
)

// Limits on a submitted frame.
const (
	maxFunctions = 64
	maxPoints    = 1024
	maxShapes    = 256
	maxVertices  = 4096
)

// ViewportStore reads persisted viewports.
type ViewportStore interface {
	LatestViewport(ctx context.Context, sessionID string) (*store.Snapshot, error)
}

// LiveSource reads sessions that currently have clients connected.
type LiveSource interface {
	Snapshot(sessionID string) (session.Snapshot, bool)
}

type Service struct {
	viewports ViewportStore
	live      LiveSource
}

// NewService creates the API service. Either dependency may be nil.
func NewService(viewports ViewportStore, live LiveSource) *Service {
	return &Service{viewports: viewports, live: live}
}

// ViewportResult is a session viewport and where it came from.
type ViewportResult struct {
	SessionID string        `json:"sessionId"`
	Viewport  geom.Viewport `json:"viewport"`
	Live      bool          `json:"live"`
	Animating bool          `json:"animating,omitempty"`
	SavedAt   *time.Time    `json:"savedAt,omitempty"`
}

// Focus frames f without any session state.
func (s *Service) Focus(f *scene.Frame) (focus.Result, error) {
	if err := validateFrame(f); err != nil {
		return focus.Result{}, err
	}
	return focus.Frame(f), nil
}

// Viewport returns the displayed viewport of a live session, falling back
// to the last persisted one.
func (s *Service) Viewport(ctx context.Context, sessionID string, claims *auth.Claims) (*ViewportResult, error) {
	if err := authorize(sessionID, claims); err != nil {
		return nil, err
	}

	if s.live != nil {
		if snap, ok := s.live.Snapshot(sessionID); ok {
			return &ViewportResult{
				SessionID: sessionID,
				Viewport:  snap.Viewport,
				Live:      true,
				Animating: snap.Animating,
			}, nil
		}
	}

	if s.viewports == nil {
		return nil, ErrNotFound
	}
	snap, err := s.viewports.LatestViewport(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("latest viewport: %w", err)
	}
	return &ViewportResult{
		SessionID: sessionID,
		Viewport:  snap.Viewport,
		SavedAt:   &snap.CreatedAt,
	}, nil
}

func authorize(sessionID string, claims *auth.Claims) error {
	if claims == nil || claims.SessionID() != sessionID {
		return ErrForbidden
	}
	return nil
}

func validateFrame(f *scene.Frame) error {
	if len(f.Functions) > maxFunctions {
		return fmt.Errorf("%w: more than %d functions", ErrInvalidFrame, maxFunctions)
	}
	if len(f.Points) > maxPoints {
		return fmt.Errorf("%w: more than %d points", ErrInvalidFrame, maxPoints)
	}
	if len(f.Shapes) > maxShapes {
		return fmt.Errorf("%w: more than %d shapes", ErrInvalidFrame, maxShapes)
	}
	vertices := 0
	for _, sh := range f.Shapes {
		vertices += len(sh.Vertices)
	}
	if vertices > maxVertices {
		return fmt.Errorf("%w: more than %d shape vertices", ErrInvalidFrame, maxVertices)
	}
	for i, fn := range f.Functions {
		if !finite(fn.A, fn.B, fn.C) {
			return fmt.Errorf("%w: function %d has a non-finite coefficient", ErrInvalidFrame, i)
		}
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
