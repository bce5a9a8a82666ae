package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/clipr-cli/internal/adapters/driven/clipboard"
	"github.com/custodia-labs/clipr-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/clipr-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/clipr-cli/internal/core/domain"
	"github.com/custodia-labs/clipr-cli/internal/core/services"
	"github.com/custodia-labs/clipr-cli/internal/logger"
)

// flushInterval paces background persistence of dirty state.
const flushInterval = 5 * time.Second

// app bundles the wired services behind the commands.
type app struct {
	cfg       domain.Config
	config    *file.ConfigSource
	store     *sqlite.Store
	history   *services.HistoryService
	registers *services.RegisterService
	search    *services.SearchService
	monitor   *services.Monitor
	clipboard *clipboard.System
}

// buildApp constructs the full service graph: config, storage, services,
// monitor.
func buildApp(ctx context.Context) (*app, error) {
	configSource, err := file.NewConfigSource(flagConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}

	cfg, err := configSource.Load()
	if err != nil {
		logger.Warn("config unreadable, using defaults: %v", err)
		cfg = domain.DefaultConfig()
	}
	if cfg.Verbose {
		logger.SetVerbose(true)
	}

	store, err := sqlite.NewStore(flagDataDir)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	history := services.NewHistoryService(ctx, store.HistoryStore(), cfg.MaxHistory)
	registers := services.NewRegisterService(ctx, store.RegisterStore(), history, cfg.PermanentRegisters)
	clip := clipboard.NewSystem()

	return &app{
		cfg:       cfg,
		config:    configSource,
		store:     store,
		history:   history,
		registers: registers,
		search:    services.NewSearchService(),
		monitor:   services.NewMonitor(clip, history),
		clipboard: clip,
	}, nil
}

// close flushes pending state and releases the store. Flush errors are
// logged, not fatal; the process is exiting either way.
func (a *app) close(ctx context.Context) {
	if err := a.history.Flush(ctx); err != nil {
		logger.Warn("final history flush failed: %v", err)
	}
	if err := a.registers.Flush(ctx); err != nil {
		logger.Warn("final register flush failed: %v", err)
	}
	if err := a.store.Close(); err != nil {
		logger.Warn("closing storage: %v", err)
	}
}

// flushLoop persists dirty state on a timer until ctx is cancelled.
func (a *app) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.history.Flush(ctx); err != nil {
				logger.Warn("history flush failed, will retry: %v", err)
			}
			if err := a.registers.Flush(ctx); err != nil {
				logger.Warn("register flush failed, will retry: %v", err)
			}
		}
	}
}

// watchConfig applies configuration changes at runtime: permanent
// registers and the history ceiling.
func (a *app) watchConfig(ctx context.Context) {
	err := a.config.Watch(ctx, func(cfg domain.Config) {
		a.registers.ReloadPermanent(ctx, cfg.PermanentRegisters)
		a.history.SetMaxUnpinned(cfg.MaxHistory)
	})
	if err != nil && ctx.Err() == nil {
		logger.Warn("config watcher stopped: %v", err)
	}
}
