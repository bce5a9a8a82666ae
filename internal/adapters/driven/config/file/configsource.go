// Package file is the TOML-file configuration source. Configuration lives
// at ~/.config/clipr/config.toml and is reloaded on file change through
// an fsnotify watcher.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/clipr-cli/internal/core/domain"
	"github.com/custodia-labs/clipr-cli/internal/core/ports/driven"
	"github.com/custodia-labs/clipr-cli/internal/logger"
)

// Ensure ConfigSource implements the interface.
var _ driven.ConfigSource = (*ConfigSource)(nil)

// fileConfig mirrors the TOML layout.
type fileConfig struct {
	General struct {
		MaxHistory   int  `toml:"max-history"`
		ExitOnSelect bool `toml:"exit-on-select"`
		Verbose      bool `toml:"verbose"`
	} `toml:"general"`
	PermanentRegisters map[string]registerDef `toml:"permanent-registers"`
}

type registerDef struct {
	Content     string `toml:"content"`
	Description string `toml:"description"`
}

// ConfigSource is a file-based implementation of driven.ConfigSource
// using TOML.
type ConfigSource struct {
	filePath string
}

// NewConfigSource creates a TOML config source. If configDir is empty,
// defaults to ~/.config/clipr.
func NewConfigSource(configDir string) (*ConfigSource, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".config", "clipr")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &ConfigSource{filePath: filepath.Join(configDir, "config.toml")}, nil
}

// Path returns the config file path.
func (s *ConfigSource) Path() string {
	return s.filePath
}

// Load reads the current configuration. A missing file yields defaults.
func (s *ConfigSource) Load() (domain.Config, error) {
	cfg := domain.DefaultConfig()

	raw, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(raw, &fc); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if fc.General.MaxHistory > 0 {
		cfg.MaxHistory = fc.General.MaxHistory
	}
	cfg.ExitOnSelect = fc.General.ExitOnSelect
	cfg.Verbose = fc.General.Verbose

	for key, def := range fc.PermanentRegisters {
		if len(key) != 1 || !domain.ValidRegisterName(key[0]) {
			logger.Warn("ignoring permanent register %q: name must be a single letter", key)
			continue
		}
		cfg.PermanentRegisters = append(cfg.PermanentRegisters, domain.PermanentRegisterDef{
			Name:        key[0],
			Content:     def.Content,
			Description: def.Description,
		})
	}

	return cfg, nil
}

// Watch reloads the configuration on file change until ctx is cancelled.
// The watch covers the directory, not the file, so editors that replace
// the file by rename keep triggering reloads. A failed reload keeps the
// previous configuration in effect.
func (s *ConfigSource) Watch(ctx context.Context, onChange func(domain.Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("watching config directory: %w", err)
	}

	// Editors fire several events per save; debounce before reloading.
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != s.filePath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(100 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error: %v", err)
		case <-pending:
			pending = nil
			cfg, err := s.Load()
			if err != nil {
				logger.Warn("config reload failed, keeping previous: %v", err)
				continue
			}
			logger.Info("configuration reloaded")
			onChange(cfg)
		}
	}
}
