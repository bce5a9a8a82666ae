package driven

import (
	"context"

	"github.com/custodia-labs/clipr-cli/internal/core/domain"
)

// ConfigSource loads application configuration and reports changes.
type ConfigSource interface {
	// Load reads the current configuration. A missing file yields
	// defaults, not an error.
	Load() (domain.Config, error)

	// Watch invokes onChange with the reloaded configuration whenever
	// the underlying source changes, until ctx is cancelled. Reload
	// failures are logged and skipped; the last good configuration
	// stays in effect.
	Watch(ctx context.Context, onChange func(domain.Config)) error
}
