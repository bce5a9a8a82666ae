package driving

import "context"

// Monitor is the background clipboard ingestion loop.
type Monitor interface {
	// Run polls the clipboard and captures changes until ctx is
	// cancelled. It returns ctx.Err() on cancellation.
	Run(ctx context.Context) error
}
