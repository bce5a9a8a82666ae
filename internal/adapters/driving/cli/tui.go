package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/clipr-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/clipr-cli/internal/logger"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive clipboard browser",
	Long: `Open the interactive clipboard browser.

Controls:
  ↑/k, ↓/j - Navigate clips
  /        - Search (esc keeps the filter, esc again clears it)
  Enter    - Copy selection to the clipboard
  p        - Pin/unpin  ·  d - Delete  ·  D - Clear unpinned
  m        - Mark into a register  ·  '/" - Register listings
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// Panic recovery keeps a stack trace visible after the alt screen
	// is torn down.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())

	a, err := buildApp(ctx)
	if err != nil {
		cancel()
		return err
	}
	// Deferred in this order so the monitor and flush loop are cancelled
	// before the final flush writes the closing snapshot.
	defer a.close(context.Background())
	defer cancel()

	app, err := tui.NewApp(&tui.Ports{
		History:   a.history,
		Registers: a.registers,
		Search:    a.search,
		Clipboard: a.clipboard,
	}, tui.WithExitOnSelect(a.cfg.ExitOnSelect))
	if err != nil {
		return err
	}

	go func() {
		if err := a.monitor.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("clipboard monitor stopped: %v", err)
		}
	}()
	go a.flushLoop(ctx)
	go a.watchConfig(ctx)

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
