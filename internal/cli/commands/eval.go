package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/eqcalc/eqcalc/internal/config"
	"github.com/eqcalc/eqcalc/internal/state"
	"github.com/eqcalc/eqcalc/pkg/calc"
)

// errEvaluationFailed signals a non-zero exit after the failure message
// has already been rendered.
var errEvaluationFailed = errors.New("evaluation failed")

// EvalOptions holds options for the eval command.
type EvalOptions struct {
	Input string
	Watch bool
}

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:   "eval [expression]",
		Short: "Evaluate an arithmetic expression",
		Long: `Evaluate a single arithmetic expression and print the result.

The expression comes from the arguments, from a file with --input, or
from standard input when piped.`,
		Example: `  # Evaluate an expression
  eqc eval '3 + 4 * 2'

  # With variables
  eqc eval --var x=3 --var y=4 'sqrt(x^2 + y^2)'

  # From a file, re-evaluating on change
  eqc eval --input expr.txt --watch

  # Piped
  echo '2^10' | eqc eval`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read the expression from a file")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-evaluate the --input file whenever it changes")

	return cmd
}

func runEval(cmd *cobra.Command, args []string, opts *EvalOptions) error {
	cfg := GetConfig(cmd.Context())
	logger := GetLogger(cmd.Context())

	if opts.Watch {
		if opts.Input == "" {
			return fmt.Errorf("--watch requires --input")
		}
		return watchEval(cmd, opts.Input, cfg, logger)
	}

	expr, err := readExpression(cmd, args, opts.Input)
	if err != nil {
		return err
	}

	return evalOnce(cmd, expr, cfg, logger)
}

// readExpression resolves the expression source: arguments first, then
// --input, then piped stdin.
func readExpression(cmd *cobra.Command, args []string, input string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return "", fmt.Errorf("no expression given (pass it as an argument, via --input, or on stdin)")
}

func evalOnce(cmd *cobra.Command, expr string, cfg *config.Config, logger *slog.Logger) error {
	res := calc.CalculateWith(expr, cfg.Variables)
	logger.Debug("evaluated expression", "expression", expr, "ok", res.OK)

	recordHistory(logger, cfg, expr, res)

	if err := renderResult(cmd.OutOrStdout(), res, cfg); err != nil {
		return err
	}
	if !res.OK {
		return errEvaluationFailed
	}
	return nil
}

// watchEval evaluates the input file and re-evaluates it on every
// change until interrupted.
func watchEval(cmd *cobra.Command, input string, cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors replace files on save, which would
	// drop a watch on the file itself.
	dir := filepath.Dir(input)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	target := filepath.Clean(input)

	evaluate := func() {
		data, err := os.ReadFile(input)
		if err != nil {
			logger.Warn("failed to read input file", "path", input, "error", err)
			return
		}
		expr := strings.TrimSpace(string(data))
		if expr == "" {
			return
		}
		res := calc.CalculateWith(expr, cfg.Variables)
		recordHistory(logger, cfg, expr, res)
		if err := renderResult(cmd.OutOrStdout(), res, cfg); err != nil {
			logger.Warn("failed to render result", "error", err)
		}
	}

	evaluate()
	logger.Info("watching for changes", "path", input)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
				evaluate()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

// recordHistory appends the evaluation to the history store when
// enabled. History failures never fail the evaluation.
func recordHistory(logger *slog.Logger, cfg *config.Config, expr string, res calc.Result) {
	if !cfg.History.Enabled {
		return
	}
	store, err := state.Open(cfg.History.Path)
	if err != nil {
		logger.Warn("failed to open history store", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	if _, err := store.Append(expr, res.OK, res.Value, res.Message); err != nil {
		logger.Warn("failed to record history", "error", err)
	}
}
