// Package store persists the last displayed viewport of each session in
// Postgres.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inamate/focusframe/internal/geom"
	"github.com/inamate/focusframe/internal/typeid"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrSessionExists = errors.New("session already exists")
)

// NewPool connects to databaseURL and verifies the connection.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Snapshot is one persisted viewport.
type Snapshot struct {
	ID        string        `json:"id"`
	SessionID string        `json:"sessionId"`
	Signature []byte        `json:"signature"`
	Viewport  geom.Viewport `json:"viewport"`
	CreatedAt time.Time     `json:"createdAt"`
}

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS viewport_snapshots (
	id         TEXT PRIMARY KEY,
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	signature  BYTEA NOT NULL,
	x_min      DOUBLE PRECISION NOT NULL,
	x_max      DOUBLE PRECISION NOT NULL,
	y_min      DOUBLE PRECISION NOT NULL,
	y_max      DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS viewport_snapshots_session_created
	ON viewport_snapshots (session_id, created_at DESC);
`

// Migrate creates the schema if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// CreateSession records a new session id.
func (s *Store) CreateSession(ctx context.Context, sessionID string) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO sessions (id) VALUES ($1)`, sessionID)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrSessionExists
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// SaveViewport stores vp as the latest viewport of sessionID. The scene
// signature is stored as its digest. The session row is created on demand
// so sessions that were never recorded still persist.
func (s *Store) SaveViewport(ctx context.Context, sessionID, signature string, vp geom.Viewport) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO sessions (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`,
			sessionID,
		); err != nil {
			return fmt.Errorf("ensure session: %w", err)
		}

		digest := Digest(signature)
		if _, err := tx.Exec(ctx,
			`INSERT INTO viewport_snapshots (id, session_id, signature, x_min, x_max, y_min, y_max)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			typeid.NewSnapshotID(), sessionID, digest[:], vp.XMin, vp.XMax, vp.YMin, vp.YMax,
		); err != nil {
			return fmt.Errorf("insert snapshot: %w", err)
		}
		return nil
	})
}

// LatestViewport returns the most recently saved viewport of sessionID.
func (s *Store) LatestViewport(ctx context.Context, sessionID string) (*Snapshot, error) {
	var snap Snapshot
	err := s.pool.QueryRow(ctx,
		`SELECT id, session_id, signature, x_min, x_max, y_min, y_max, created_at
		 FROM viewport_snapshots
		 WHERE session_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`,
		sessionID,
	).Scan(
		&snap.ID, &snap.SessionID, &snap.Signature,
		&snap.Viewport.XMin, &snap.Viewport.XMax, &snap.Viewport.YMin, &snap.Viewport.YMax,
		&snap.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get latest viewport: %w", err)
	}
	return &snap, nil
}

// PruneViewports keeps the newest keep snapshots of sessionID and deletes
// the rest.
func (s *Store) PruneViewports(ctx context.Context, sessionID string, keep int) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM viewport_snapshots
		 WHERE session_id = $1 AND id NOT IN (
			SELECT id FROM viewport_snapshots
			WHERE session_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		 )`,
		sessionID, keep,
	)
	if err != nil {
		return 0, fmt.Errorf("prune viewports: %w", err)
	}
	return tag.RowsAffected(), nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
