package driving

import (
	"context"

	"github.com/custodia-labs/clipr-cli/internal/core/domain"
)

// HistoryService is the synchronized clip history surface. It is the only
// component allowed to touch history state; both the ingestion monitor and
// the TUI event loop go through it.
type HistoryService interface {
	// Capture appends new clipboard content. Returns
	// domain.ErrDuplicateOfLatest when the content matches the most
	// recent clip.
	Capture(ctx context.Context, content domain.Content) (uint64, error)

	// List returns a snapshot copy of all clips, newest first.
	List(ctx context.Context) []domain.Clip

	// Get returns a copy of one clip.
	Get(ctx context.Context, id uint64) (domain.Clip, error)

	// Remove deletes a clip, pinned or not.
	Remove(ctx context.Context, id uint64) error

	// TogglePin flips a clip's pinned flag and returns the new state.
	TogglePin(ctx context.Context, id uint64) (bool, error)

	// AssignRegister records the register letter on a clip.
	AssignRegister(ctx context.Context, id uint64, name byte) error

	// ClearUnpinned removes every non-pinned clip and returns the count.
	ClearUnpinned(ctx context.Context) int

	// Captures exposes the stream of clip IDs appended by Capture, for
	// UI refresh. The channel is buffered; slow consumers drop
	// notifications, never block capture.
	Captures() <-chan uint64

	// Flush persists the current snapshot if mutations occurred since
	// the last flush.
	Flush(ctx context.Context) error
}
