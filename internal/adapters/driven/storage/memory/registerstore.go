package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/clipr-cli/internal/core/domain"
	"github.com/custodia-labs/clipr-cli/internal/core/ports/driven"
)

// Ensure RegisterStore implements the interface.
var _ driven.RegisterStore = (*RegisterStore)(nil)

// RegisterStore is an in-memory implementation of driven.RegisterStore.
type RegisterStore struct {
	mu        sync.RWMutex
	registers []domain.Register
}

// NewRegisterStore creates a new in-memory register store.
func NewRegisterStore() *RegisterStore {
	return &RegisterStore{}
}

// Load returns the stored snapshot.
func (s *RegisterStore) Load(_ context.Context) ([]domain.Register, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Register, len(s.registers))
	copy(out, s.registers)
	return out, nil
}

// Save replaces the stored snapshot.
func (s *RegisterStore) Save(_ context.Context, registers []domain.Register) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registers = make([]domain.Register, len(registers))
	copy(s.registers, registers)
	return nil
}
