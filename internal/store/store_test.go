package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inamate/focusframe/internal/geom"
	"github.com/inamate/focusframe/internal/scene"
	"github.com/inamate/focusframe/internal/typeid"
	"github.com/inamate/focusframe/internal/viewcache"
)

func TestDigest(t *testing.T) {
	a := viewcache.Signature(scene.NewEmptyFrame())
	b := viewcache.Signature(&scene.Frame{Debug: true})

	if Digest(a) != Digest(a) {
		t.Error("digest is not deterministic")
	}
	if Digest(a) == Digest(b) {
		t.Error("different signatures share a digest")
	}
	if n := len(Digest(a)); n != 32 {
		t.Errorf("got %d bytes, want 32", n)
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	if !isDuplicateKeyError(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation not recognized")
	}
	if isDuplicateKeyError(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation treated as duplicate")
	}
	if isDuplicateKeyError(errors.New("boom")) {
		t.Error("plain error treated as duplicate")
	}
}

// testStore connects to TEST_DATABASE_URL, skipping when it is unset.
func testStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pool.Close)

	s := New(pool)
	if err := s.Migrate(ctx); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestViewportRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	sessionID := typeid.NewSessionID()

	if _, err := s.LatestViewport(ctx, sessionID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	if err := s.CreateSession(ctx, sessionID); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateSession(ctx, sessionID); !errors.Is(err, ErrSessionExists) {
		t.Errorf("got %v, want ErrSessionExists", err)
	}

	first := geom.Viewport{XMin: -1, XMax: 1, YMin: -1, YMax: 1}
	second := geom.Viewport{XMin: -3, XMax: 5, YMin: -2, YMax: 6}
	if err := s.SaveViewport(ctx, sessionID, "a", first); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveViewport(ctx, sessionID, "b", second); err != nil {
		t.Fatal(err)
	}

	snap, err := s.LatestViewport(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Viewport != second {
		t.Errorf("got %+v, want %+v", snap.Viewport, second)
	}
	if d := Digest("b"); string(snap.Signature) != string(d[:]) {
		t.Error("stored signature digest mismatch")
	}

	n, err := s.PruneViewports(ctx, sessionID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("pruned %d rows, want 1", n)
	}
}
