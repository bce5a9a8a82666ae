package driven

import (
	"context"

	"github.com/custodia-labs/clipr-cli/internal/core/domain"
)

// HistoryStore persists clip history snapshots.
// Backed by SQLite for durable storage.
type HistoryStore interface {
	// Load returns all persisted clips. A missing or unreadable store
	// returns an empty slice, never an error that prevents startup.
	Load(ctx context.Context) ([]domain.Clip, error)

	// Save atomically replaces the persisted snapshot.
	Save(ctx context.Context, clips []domain.Clip) error
}
