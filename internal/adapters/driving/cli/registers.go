package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/clipr-cli/internal/core/domain"
)

var registersCmd = &cobra.Command{
	Use:   "registers",
	Short: "List permanent and temporary registers",
	RunE:  runRegisters,
}

func init() {
	rootCmd.AddCommand(registersCmd)
}

func runRegisters(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	printRegisters := func(title string, kind domain.RegisterKind) {
		regs := a.registers.List(ctx, kind)
		if len(regs) == 0 {
			return
		}
		cmd.Printf("%s:\n", title)
		for _, reg := range regs {
			cmd.Printf("  %c  %s\n", reg.Name, reg.Content.Preview(70))
		}
		cmd.Println()
	}

	printRegisters("Permanent registers", domain.RegisterPermanent)
	printRegisters("Temporary registers", domain.RegisterTemporary)
	return nil
}
