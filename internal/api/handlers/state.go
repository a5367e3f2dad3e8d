// Package handlers implements the HTTP API. All handlers operate on a
// shared in-memory snapshot guarded by a mutex; every mutation is written
// through to the backing store before the response is sent.
package handlers

import (
	"context"
	"fmt"
	"sync"

	"github.com/dvloznov/wealthmind/internal/store"
)

// State is the single source of truth for the running server. It loads the
// snapshot once at startup and serializes all reads and writes.
type State struct {
	mu    sync.Mutex
	store store.Store
	snap  *store.Snapshot
}

// NewState loads the snapshot from the store.
func NewState(ctx context.Context, st store.Store) (*State, error) {
	snap, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewState: %w", err)
	}
	return &State{store: st, snap: snap}, nil
}

// View runs fn with read access to the snapshot. The snapshot must not be
// mutated or retained by fn.
func (s *State) View(fn func(*store.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.snap)
}

// Update runs fn with write access to the snapshot and persists the result.
// If fn returns an error the snapshot is still persisted only when fn
// succeeded; a failed save leaves the in-memory state as fn left it so a
// retry can persist it.
func (s *State) Update(ctx context.Context, fn func(*store.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.snap); err != nil {
		return err
	}
	if err := s.store.Save(ctx, s.snap); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}
