package driving

import "github.com/custodia-labs/clipr-cli/internal/core/domain"

// SearchService is the disposable fuzzy index over the current clip
// snapshot.
type SearchService interface {
	// Rebuild replaces the index contents from a clip snapshot.
	Rebuild(clips []domain.Clip)

	// Query returns ranked clip IDs, best match first, capped. An empty
	// query returns the snapshot order.
	Query(text string) []uint64
}
