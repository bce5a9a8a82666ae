package driven

import "github.com/custodia-labs/clipr-cli/internal/core/domain"

// Clipboard is the system clipboard capability. Reads and writes may fail
// transiently; callers treat failures as recoverable.
type Clipboard interface {
	// Read returns the current clipboard content. An empty clipboard
	// returns content for which Empty() is true, not an error.
	Read() (domain.Content, error)

	// Write replaces the clipboard content. Returns
	// domain.ErrUnsupportedContent when the backend cannot carry the
	// content kind.
	Write(content domain.Content) error
}
