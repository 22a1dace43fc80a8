package commands

import (
	"github.com/spf13/cobra"

	"github.com/eqcalc/eqcalc/internal/tui"
)

// NewUICommand creates the ui command.
func NewUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Start the full-screen calculator",
		Long: `Start an interactive full-screen calculator.

Type an expression and press Enter to evaluate it; the result replaces
the input so it can be used as the next operand. Configured variables
are available in every expression.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd.Context())
			return tui.Run(cfg.Variables)
		},
	}
}
