package driven

import (
	"context"

	"github.com/custodia-labs/clipr-cli/internal/core/domain"
)

// RegisterStore persists temporary registers. Permanent registers come
// from configuration and are never written here.
type RegisterStore interface {
	// Load returns all persisted temporary registers.
	Load(ctx context.Context) ([]domain.Register, error)

	// Save atomically replaces the persisted register snapshot.
	Save(ctx context.Context, registers []domain.Register) error
}
