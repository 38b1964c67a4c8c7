package memory

import (
	"context"
	"sync"

	"bankfolio/internal/core"
	ports "bankfolio/internal/sheets"
)

var _ ports.SnapshotWriter = (*Store)(nil)

// Store keeps the most recent exported snapshot in memory.
type Store struct {
	mu     sync.Mutex
	last   core.Snapshot
	writes int
}

func New() *Store {
	return &Store{}
}

func (s *Store) WriteSnapshot(_ context.Context, snap core.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = snap
	s.writes++
	return nil
}

// Last returns the latest snapshot and whether one was written.
func (s *Store) Last() (core.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.writes > 0
}

// Writes counts WriteSnapshot calls.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
