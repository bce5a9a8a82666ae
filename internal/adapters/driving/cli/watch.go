package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/clipr-cli/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Capture clipboard changes without opening the browser",
	Long: `Run the background clipboard monitor headlessly.

Every clipboard change is captured into history until interrupted with
Ctrl-C. Useful as a login service; open the browser later with 'clipr'.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	go a.flushLoop(ctx)
	go a.watchConfig(ctx)

	// Drain capture notifications; no UI is listening in watch mode.
	go func() {
		for range a.history.Captures() {
		}
	}()

	cmd.Println("watching clipboard, Ctrl-C to stop")
	if err := a.monitor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("watch stopped")
	return nil
}
