// Package cli provides the command-line interface for eqcalc.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eqcalc/eqcalc/internal/cli/commands"
	"github.com/eqcalc/eqcalc/internal/config"
)

var (
	cfgFile  string
	varFlags []string
	cfg      *config.Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "eqc",
		Short: "eqcalc - Expression Calculator",
		Long: `eqcalc evaluates arithmetic expressions with parentheses, powers,
square roots and named variables.

Expressions are parsed into postfix form and evaluated on a stack, so
operator precedence and unary minus behave the way a pocket calculator
would handle them.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			if err := applyVarFlags(cfg, varFlags); err != nil {
				return err
			}

			logger := newLogger(cmd, cfg.Verbose)
			cmd.SetContext(commands.NewContext(cmd.Context(), cfg, logger))

			if cfg.Verbose && cfg.ConfigFile != "" {
				fmt.Fprintf(os.Stderr, "Using config file: %s\n", cfg.ConfigFile)
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./eqcalc.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Output format (auto|text|json)")
	rootCmd.PersistentFlags().IntP("precision", "p", config.DefaultPrecision, "Decimal places in results (-1 for shortest form)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringArrayVar(&varFlags, "var", nil, "Variable binding as name=value (repeatable)")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))
	rootCmd.AddCommand(commands.NewEvalCommand())
	rootCmd.AddCommand(commands.NewExplainCommand())
	rootCmd.AddCommand(commands.NewReplCommand())
	rootCmd.AddCommand(commands.NewHistoryCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewUICommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// newLogger builds the command logger. Verbose mode lowers the level to
// debug; otherwise only warnings and errors reach stderr.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
}

// applyVarFlags merges --var name=value bindings into the config,
// overriding any bindings loaded from file or environment.
func applyVarFlags(cfg *config.Config, flags []string) error {
	if len(flags) == 0 {
		return nil
	}
	if cfg.Variables == nil {
		cfg.Variables = make(map[string]float64, len(flags))
	}
	for _, f := range flags {
		name, raw, ok := strings.Cut(f, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return fmt.Errorf("invalid --var %q: expected name=value", f)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("invalid --var %q: %w", f, err)
		}
		cfg.Variables[name] = v
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for eqcalc.

To load completions:

Bash:
  $ source <(eqc completion bash)

Zsh:
  $ eqc completion zsh > "${fpath[1]}/_eqc"

Fish:
  $ eqc completion fish | source

PowerShell:
  PS> eqc completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
