package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/clipr-cli/internal/core/domain"
	"github.com/custodia-labs/clipr-cli/internal/core/ports/driven"
	"github.com/custodia-labs/clipr-cli/internal/core/ports/driving"
	"github.com/custodia-labs/clipr-cli/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// captureBuffer bounds the capture notification channel. Notifications
// are refresh hints, not data; dropping one under load is harmless.
const captureBuffer = 64

// HistoryService wraps the history container with the single mutex that
// separates the ingestion monitor goroutine from the TUI event loop.
// Mutations mark the service dirty; Flush persists the snapshot.
type HistoryService struct {
	mu       sync.Mutex
	history  *domain.History
	store    driven.HistoryStore
	dirty    bool
	gen      uint64 // bumped on every mutation, guards dirty against lost updates
	captures chan uint64
}

// NewHistoryService loads persisted clips and builds the service. A store
// that cannot be read yields an empty history; startup never fails on
// persistence.
func NewHistoryService(ctx context.Context, store driven.HistoryStore, maxUnpinned int) *HistoryService {
	clips, err := store.Load(ctx)
	if err != nil {
		logger.Warn("history load failed, starting empty: %v", err)
		clips = nil
	}
	return &HistoryService{
		history:  domain.RestoreHistory(clips, maxUnpinned),
		store:    store,
		captures: make(chan uint64, captureBuffer),
	}
}

// Capture appends new clipboard content and notifies listeners.
func (s *HistoryService) Capture(ctx context.Context, content domain.Content) (uint64, error) {
	s.mu.Lock()
	id, err := s.history.Capture(content)
	if err == nil {
		s.markDirty()
	}
	s.mu.Unlock()
	if err != nil {
		return id, err
	}

	select {
	case s.captures <- id:
	default:
		logger.Debug("capture notification dropped for clip %d", id)
	}
	return id, nil
}

// List returns a snapshot copy of all clips, newest first.
func (s *HistoryService) List(_ context.Context) []domain.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.List()
}

// Get returns a copy of one clip.
func (s *HistoryService) Get(_ context.Context, id uint64) (domain.Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clip, ok := s.history.Get(id)
	if !ok {
		return domain.Clip{}, domain.ErrNotFound
	}
	return clip, nil
}

// Remove deletes a clip, pinned or not.
func (s *HistoryService) Remove(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.history.Remove(id); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// TogglePin flips a clip's pinned flag.
func (s *HistoryService) TogglePin(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pinned, err := s.history.TogglePin(id)
	if err != nil {
		return false, err
	}
	s.markDirty()
	return pinned, nil
}

// AssignRegister records the register letter on a clip.
func (s *HistoryService) AssignRegister(_ context.Context, id uint64, name byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.history.AssignRegister(id, name); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// ClearUnpinned removes every non-pinned clip.
func (s *HistoryService) ClearUnpinned(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.history.ClearUnpinned()
	if removed > 0 {
		s.markDirty()
	}
	return removed
}

// Captures exposes the capture notification stream.
func (s *HistoryService) Captures() <-chan uint64 {
	return s.captures
}

// SetMaxUnpinned applies a new ceiling from reloaded configuration. The
// history keeps its clips and re-rotates under the new limit.
func (s *HistoryService) SetMaxUnpinned(max int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if max <= 0 || max == s.history.MaxUnpinned() {
		return
	}
	s.history = domain.RestoreHistory(s.history.List(), max)
	s.markDirty()
}

// markDirty must be called with the mutex held.
func (s *HistoryService) markDirty() {
	s.dirty = true
	s.gen++
}

// Flush persists the snapshot if mutations occurred since the last flush.
// On save failure the dirty flag stays set so the next flush retries;
// in-memory state is never dropped.
func (s *HistoryService) Flush(ctx context.Context) error {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	clips := s.history.List()
	gen := s.gen
	s.mu.Unlock()

	if err := s.store.Save(ctx, clips); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	// A mutation may have landed while Save ran; it is not in the saved
	// snapshot, so the service stays dirty for the next flush.
	s.mu.Lock()
	if s.gen == gen {
		s.dirty = false
	}
	s.mu.Unlock()
	return nil
}
