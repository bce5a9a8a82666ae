package services

import (
	"context"
	"errors"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/clipr-cli/internal/core/domain"
	"github.com/custodia-labs/clipr-cli/internal/core/ports/driven"
	"github.com/custodia-labs/clipr-cli/internal/core/ports/driving"
	"github.com/custodia-labs/clipr-cli/internal/logger"
)

// Ensure Monitor implements the interface.
var _ driving.Monitor = (*Monitor)(nil)

// defaultPollRate is the clipboard poll frequency in polls per second.
const defaultPollRate = 5

// Monitor polls the system clipboard and captures changes into history.
// It only ever calls Capture; every other history mutation belongs to the
// TUI event loop.
type Monitor struct {
	clipboard driven.Clipboard
	history   driving.HistoryService
	limiter   *rate.Limiter
}

// MonitorOption adjusts monitor construction.
type MonitorOption func(*Monitor)

// WithPollRate overrides the poll frequency. Used by tests to run the
// loop at full speed.
func WithPollRate(perSecond float64) MonitorOption {
	return func(m *Monitor) {
		m.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// NewMonitor creates a monitor polling at roughly 5 Hz.
func NewMonitor(clipboard driven.Clipboard, history driving.HistoryService, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		clipboard: clipboard,
		history:   history,
		limiter:   rate.NewLimiter(rate.Limit(defaultPollRate), 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run polls until ctx is cancelled. Read failures and duplicate content
// are logged and skipped; the loop never stops on a recoverable error.
func (m *Monitor) Run(ctx context.Context) error {
	logger.Info("clipboard monitor started")
	for {
		if err := m.limiter.Wait(ctx); err != nil {
			logger.Info("clipboard monitor stopped")
			return ctx.Err()
		}

		content, err := m.clipboard.Read()
		if err != nil {
			logger.Debug("clipboard read failed: %v", err)
			continue
		}
		if content.Empty() {
			continue
		}

		if _, err := m.history.Capture(ctx, content); err != nil {
			if errors.Is(err, domain.ErrDuplicateOfLatest) {
				continue
			}
			logger.Warn("capture failed: %v", err)
		}
	}
}
