package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/eqcalc/eqcalc/pkg/parser"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <expression>",
		Short: "Show how an expression is tokenized and parsed",
		Long: `Show the token classification and the postfix program an expression
compiles to, without evaluating it.`,
		Example: `  # Inspect precedence handling
  eqc explain '2 + 3 * 4'

  # Inspect unary minus
  eqc explain -- '-5 + 3'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd, strings.Join(args, " "))
		},
	}
	return cmd
}

// explainOutput is the JSON form of an explain report.
type explainOutput struct {
	Expression string         `json:"expression"`
	Tokens     []explainToken `json:"tokens"`
	Postfix    string         `json:"postfix,omitempty"`
	Error      string         `json:"error,omitempty"`
}

type explainToken struct {
	Literal string `json:"literal"`
	Kind    string `json:"kind"`
	Detail  string `json:"detail"`
}

func runExplain(cmd *cobra.Command, expr string) error {
	cfg := GetConfig(cmd.Context())
	w := cmd.OutOrStdout()

	raw := parser.Scan(expr)
	classified := parser.ClassifyAll(raw)

	tokens := make([]explainToken, 0, len(classified))
	for _, c := range classified {
		tokens = append(tokens, explainToken{
			Literal: c.Literal,
			Kind:    c.Kind.String(),
			Detail:  c.Kind.Describe(c.Literal),
		})
	}

	out := explainOutput{Expression: expr, Tokens: tokens}
	program, err := parser.Build(raw)
	if err != nil {
		out.Error = err.Error()
	} else {
		out.Postfix = program.String()
	}

	if resolveFormat(cfg.Format) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return renderExplainText(w, out)
}

func renderExplainText(w io.Writer, out explainOutput) error {
	if len(out.Tokens) == 0 {
		_, _ = fmt.Fprintln(w, "(no tokens)")
	} else {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"#", "Token", "Kind", "Detail"})
		for i, tok := range out.Tokens {
			t.AppendRow(table.Row{i + 1, tok.Literal, tok.Kind, tok.Detail})
		}
		t.Render()
	}

	if out.Error != "" {
		_, _ = fmt.Fprintf(w, "\nError: %s\n", out.Error)
		return nil
	}
	_, _ = fmt.Fprintf(w, "\nPostfix: %s\n", out.Postfix)
	return nil
}
