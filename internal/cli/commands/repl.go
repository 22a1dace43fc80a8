package commands

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/eqcalc/eqcalc/internal/config"
	"github.com/eqcalc/eqcalc/pkg/calc"
)

// identPattern matches a bare variable name on the left of an
// assignment.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive calculator session",
		Long: `Start an interactive session. Each line is evaluated as an
expression; lines of the form "name = expression" bind a variable for
the rest of the session.`,
		RunE: runRepl,
	}
	return cmd
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cfg := GetConfig(cmd.Context())
	logger := GetLogger(cmd.Context())

	// Session variables start from the configured bindings.
	vars := make(map[string]float64, len(cfg.Variables))
	for k, v := range cfg.Variables {
		vars[k] = v
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "eqc> ",
		HistoryFile:     config.DefaultReplHistoryPath(),
		AutoComplete:    newReplCompleter(vars),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "eqcalc interactive calculator")
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(cmd, line, vars); quit {
				break
			}
			continue
		}

		if name, expr, ok := splitAssignment(line); ok {
			res := calc.CalculateWith(expr, vars)
			if !res.OK {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", res.Message)
				continue
			}
			vars[name] = res.Value
			_, _ = fmt.Fprintf(out, "%s = %s\n", name, formatFloat(res.Value, cfg.Precision))
			continue
		}

		res := calc.CalculateWith(line, vars)
		recordHistory(logger, cfg, line, res)
		if !res.OK {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", res.Message)
			continue
		}
		_, _ = fmt.Fprintln(out, formatFloat(res.Value, cfg.Precision))
	}

	return nil
}

// splitAssignment recognizes "name = expression" lines. A lone "=" in
// any other position is left for the parser to reject.
func splitAssignment(line string) (name, expr string, ok bool) {
	name, expr, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	name = strings.TrimSpace(name)
	expr = strings.TrimSpace(expr)
	if !identPattern.MatchString(name) || expr == "" {
		return "", "", false
	}
	return name, expr, true
}

func handleDotCommand(cmd *cobra.Command, line string, vars map[string]float64) (quit bool) {
	out := cmd.OutOrStdout()
	cfg := GetConfig(cmd.Context())

	switch strings.ToLower(strings.Fields(line)[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		printReplHelp(out)

	case ".vars":
		if len(vars) == 0 {
			_, _ = fmt.Fprintln(out, "(no variables bound)")
			break
		}
		names := make([]string, 0, len(vars))
		for name := range vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			_, _ = fmt.Fprintf(out, "%s = %s\n", name, formatFloat(vars[name], cfg.Precision))
		}

	case ".history":
		store, err := openHistoryStore(cfg)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			break
		}
		entries, err := store.Recent(10)
		_ = store.Close()
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			break
		}
		if err := renderHistory(out, entries, cfg); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

	case ".clear":
		fmt.Print("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", line)
	}
	return false
}

func printReplHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .vars           List session variables
  .history        Show recent persisted evaluations
  .clear          Clear the screen
  .quit / .exit   Exit the session

Tips:
  - name = expression binds a variable for the session
  - Use arrow keys to navigate history
  - sqrt(x) takes a square root, ^ raises to a power
`
	_, _ = fmt.Fprintln(w, help)
}

// newReplCompleter builds tab completion over the function keyword,
// dot-commands and the current variable names. Variable completion is
// dynamic so new bindings complete without rebuilding the completer.
func newReplCompleter(vars map[string]float64) *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("sqrt("),
		readline.PcItem(".help"),
		readline.PcItem(".vars"),
		readline.PcItem(".history"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
		readline.PcItemDynamic(func(string) []string {
			names := make([]string, 0, len(vars))
			for name := range vars {
				names = append(names, name)
			}
			sort.Strings(names)
			return names
		}),
	)
}
