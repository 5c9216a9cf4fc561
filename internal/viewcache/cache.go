// Package viewcache memoizes the last framed viewport under a signature of
// the scene it was computed from.
package viewcache

import (
	"github.com/inamate/focusframe/internal/focus"
	"github.com/inamate/focusframe/internal/geom"
	"github.com/inamate/focusframe/internal/scene"
)

// Entry is one cached framing. Entries are replaced, never mutated, so a
// caller holding an *Entry can compare pointers to detect "nothing changed".
type Entry struct {
	Signature string
	Viewport  geom.Viewport
	Debug     *focus.Debug
}

// Stats holds cache counters.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// Cache holds the single most recent framing.
//
// Cache is owned by one caller and is not safe for concurrent use.
type Cache struct {
	last  *Entry
	stats Stats
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{}
}

// Get returns the stored entry when sig matches the stored signature.
// A hit returns the same *Entry that Set returned.
func (c *Cache) Get(sig string) (*Entry, bool) {
	if c.last == nil || c.last.Signature != sig {
		return nil, false
	}
	c.stats.Hits++
	return c.last, true
}

// Set replaces the stored entry. Every Set follows a recomputation and is
// counted as a miss.
func (c *Cache) Set(sig string, vp geom.Viewport, debug *focus.Debug) *Entry {
	c.last = &Entry{Signature: sig, Viewport: vp, Debug: debug}
	c.stats.Misses++
	return c.last
}

// Lookup returns the entry for f, calling compute only on a miss. The second
// result reports whether the entry came from the cache.
func (c *Cache) Lookup(f *scene.Frame, compute func(*scene.Frame) focus.Result) (*Entry, bool) {
	sig := Signature(f)
	if e, ok := c.Get(sig); ok {
		return e, true
	}
	res := compute(f)
	return c.Set(sig, res.Viewport, res.Debug), false
}

// Last returns the stored entry, or nil.
func (c *Cache) Last() *Entry {
	return c.last
}

// Clear drops the stored entry and resets the counters.
func (c *Cache) Clear() {
	c.last = nil
	c.stats = Stats{}
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	return c.stats
}
