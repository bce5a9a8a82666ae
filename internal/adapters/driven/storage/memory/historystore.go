package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/clipr-cli/internal/core/domain"
	"github.com/custodia-labs/clipr-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// Used in tests and when persistence is disabled.
type HistoryStore struct {
	mu    sync.RWMutex
	clips []domain.Clip
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Load returns the stored snapshot.
func (s *HistoryStore) Load(_ context.Context) ([]domain.Clip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Clip, len(s.clips))
	copy(out, s.clips)
	return out, nil
}

// Save replaces the stored snapshot.
func (s *HistoryStore) Save(_ context.Context, clips []domain.Clip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clips = make([]domain.Clip, len(clips))
	copy(s.clips, clips)
	return nil
}
