package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/eqcalc/eqcalc/internal/config"
	"github.com/eqcalc/eqcalc/internal/state"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit int
}

// NewHistoryCommand creates the history command with its subcommands.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past evaluations",
		Long:  `List, search or clear the evaluation history database.`,
		Example: `  # Show the most recent evaluations
  eqc history

  # Search for past sqrt expressions
  eqc history search sqrt

  # Delete all history
  eqc history clear`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryList(cmd, opts)
		},
	}
	cmd.PersistentFlags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of entries to show")

	cmd.AddCommand(&cobra.Command{
		Use:   "search <term>",
		Short: "Search history by expression substring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistorySearch(cmd, args[0], opts)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE:  runHistoryClear,
	})

	return cmd
}

func openHistoryStore(cfg *config.Config) (*state.Store, error) {
	path := cfg.History.Path
	if path == "" {
		path = config.DefaultHistoryPath()
	}
	return state.Open(path)
}

func runHistoryList(cmd *cobra.Command, opts *HistoryOptions) error {
	cfg := GetConfig(cmd.Context())

	store, err := openHistoryStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(opts.Limit)
	if err != nil {
		return err
	}
	return renderHistory(cmd.OutOrStdout(), entries, cfg)
}

func runHistorySearch(cmd *cobra.Command, term string, opts *HistoryOptions) error {
	cfg := GetConfig(cmd.Context())

	store, err := openHistoryStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Search(term, opts.Limit)
	if err != nil {
		return err
	}
	return renderHistory(cmd.OutOrStdout(), entries, cfg)
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	cfg := GetConfig(cmd.Context())

	store, err := openHistoryStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	n, err := store.Clear()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entries\n", n)
	return nil
}

func renderHistory(w io.Writer, entries []state.Entry, cfg *config.Config) error {
	if resolveFormat(cfg.Format) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "(no history)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"When", "Expression", "Result"})
	for _, e := range entries {
		result := e.Message
		if e.OK {
			result = formatFloat(e.Value, cfg.Precision)
		}
		t.AppendRow(table.Row{
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			e.Expression,
			result,
		})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d entries)\n", len(entries))
	return nil
}
