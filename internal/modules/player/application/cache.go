package application

import (
	"sync"

	"github.com/minstrelbot/minstrel/internal/modules/player/domain"
)

// TrackInfoCache memoizes metadata lookups for direct references, keyed by
// the exact reference string. Entries live for the process lifetime and are
// never evicted; reference strings are low-cardinality per session.
type TrackInfoCache struct {
	mu      sync.RWMutex
	entries map[string]domain.Track
}

// NewTrackInfoCache creates a new empty TrackInfoCache.
func NewTrackInfoCache() *TrackInfoCache {
	return &TrackInfoCache{
		entries: make(map[string]domain.Track),
	}
}

// Get returns the cached track for the reference, if present.
func (c *TrackInfoCache) Get(ref string) (domain.Track, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	track, ok := c.entries[ref]
	return track, ok
}

// Put stores a track keyed by its reference.
func (c *TrackInfoCache) Put(ref string, track domain.Track) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[ref] = track
}

// Len returns the number of cached entries.
func (c *TrackInfoCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
