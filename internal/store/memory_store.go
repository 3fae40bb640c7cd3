package store

import (
	"sync"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/match"
)

// MemoryStore keeps a thread-safe copy of the latest published scoreboard snapshot.
type MemoryStore struct {
	mu     sync.RWMutex
	latest match.Snapshot
	saved  bool
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save replaces the stored snapshot unless it is older than the current one.
func (s *MemoryStore) Save(snap match.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saved && snap.Version < s.latest.Version {
		return false
	}
	s.latest = copySnapshot(snap)
	s.saved = true
	return true
}

// Latest returns the most recent snapshot and whether one was ever saved.
func (s *MemoryStore) Latest() (match.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copySnapshot(s.latest), s.saved
}

func copySnapshot(snap match.Snapshot) match.Snapshot {
	if snap.Tick != nil {
		tick := *snap.Tick
		snap.Tick = &tick
	}
	return snap
}
