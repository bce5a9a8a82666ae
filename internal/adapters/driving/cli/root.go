// Package cli wires the cobra command tree. Commands build their services
// through wire.go and drive the core through the driving ports.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/clipr-cli/internal/logger"
)

var (
	flagVerbose   bool
	flagConfigDir string
	flagDataDir   string
)

var rootCmd = &cobra.Command{
	Use:   "clipr",
	Short: "Clipboard history manager",
	Long: `clipr keeps a searchable, deduplicated history of everything you copy.

A background monitor captures clipboard changes; the interactive browser
lets you search, pin, and re-copy past clips, and file content into
single-letter registers.

Running clipr without a subcommand opens the interactive browser.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logger.SetVerbose(true)
		}
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default ~/.config/clipr)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.local/share/clipr)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
