// Package clipboard adapts the system clipboard to the driven port.
// Backed by atotto/clipboard, which shells out to the platform utility
// (xclip/xsel, pbcopy/pbpaste, or the Windows API) and carries text only.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/clipr-cli/internal/core/domain"
	"github.com/custodia-labs/clipr-cli/internal/core/ports/driven"
)

// Ensure System implements the interface.
var _ driven.Clipboard = (*System)(nil)

// System is the real clipboard backend.
type System struct{}

// NewSystem creates the system clipboard adapter.
func NewSystem() *System {
	return &System{}
}

// Read returns the current clipboard text. An empty clipboard yields
// empty content, not an error.
func (s *System) Read() (domain.Content, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return domain.Content{}, fmt.Errorf("reading clipboard: %w", err)
	}
	return domain.TextContent(text), nil
}

// Write replaces the clipboard content. Image payloads are rejected with
// domain.ErrUnsupportedContent; the text backend cannot carry them.
func (s *System) Write(content domain.Content) error {
	if content.Kind != domain.ContentText {
		return domain.ErrUnsupportedContent
	}
	if err := clipboard.WriteAll(content.Text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}
