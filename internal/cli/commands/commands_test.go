package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/eqcalc/eqcalc/internal/config"
	"github.com/eqcalc/eqcalc/pkg/calc"
)

func testContext(cfg *config.Config) context.Context {
	return NewContext(context.Background(), cfg, slog.New(slog.DiscardHandler))
}

func jsonConfig() *config.Config {
	return &config.Config{Precision: config.DefaultPrecision, Format: "json"}
}

// execute runs a command with the given context and args, capturing
// stdout.
func execute(t *testing.T, cmd *cobra.Command, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestNewEvalCommand(t *testing.T) {
	cmd := NewEvalCommand()

	if cmd.Use != "eval [expression]" {
		t.Errorf("Use = %q, want %q", cmd.Use, "eval [expression]")
	}
	if cmd.Short == "" {
		t.Error("Short should not be empty")
	}
	if cmd.Example == "" {
		t.Error("Example should not be empty")
	}
}

func TestEvalCommand_Success(t *testing.T) {
	out, err := execute(t, NewEvalCommand(), testContext(jsonConfig()), "3 + 4 * 2")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}

	var res calc.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\noutput: %s", err, out)
	}
	if !res.OK {
		t.Errorf("OK = false, message %q", res.Message)
	}
	if res.Value != 11 {
		t.Errorf("Value = %v, want 11", res.Value)
	}
}

func TestEvalCommand_Failure(t *testing.T) {
	out, err := execute(t, NewEvalCommand(), testContext(jsonConfig()), "1/0")
	if err == nil {
		t.Fatal("expected non-nil error for failed evaluation")
	}

	var res calc.Result
	if jsonErr := json.Unmarshal([]byte(out), &res); jsonErr != nil {
		t.Fatalf("output is not JSON: %v\noutput: %s", jsonErr, out)
	}
	if res.OK {
		t.Error("OK = true for division by zero")
	}
	if !strings.Contains(res.Message, "division by zero") {
		t.Errorf("Message = %q, want division by zero", res.Message)
	}
}

func TestEvalCommand_Variables(t *testing.T) {
	cfg := jsonConfig()
	cfg.Variables = map[string]float64{"x": 3, "y": 4}

	out, err := execute(t, NewEvalCommand(), testContext(cfg), "sqrt(x^2 + y^2)")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}

	var res calc.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if res.Value != 5 {
		t.Errorf("Value = %v, want 5", res.Value)
	}
}

func TestEvalCommand_WatchRequiresInput(t *testing.T) {
	_, err := execute(t, NewEvalCommand(), testContext(jsonConfig()), "--watch", "1+1")
	if err == nil || !strings.Contains(err.Error(), "--watch requires --input") {
		t.Errorf("err = %v, want --watch requires --input", err)
	}
}

func TestExplainCommand_Success(t *testing.T) {
	out, err := execute(t, NewExplainCommand(), testContext(jsonConfig()), "2 + 3 * 4")
	if err != nil {
		t.Fatalf("explain failed: %v", err)
	}

	var report explainOutput
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not JSON: %v\noutput: %s", err, out)
	}
	if report.Postfix != "2 3 4 MUL ADD" {
		t.Errorf("Postfix = %q, want %q", report.Postfix, "2 3 4 MUL ADD")
	}
	if len(report.Tokens) != 5 {
		t.Errorf("len(Tokens) = %d, want 5", len(report.Tokens))
	}
	if report.Error != "" {
		t.Errorf("Error = %q, want empty", report.Error)
	}
}

func TestExplainCommand_ParseError(t *testing.T) {
	out, err := execute(t, NewExplainCommand(), testContext(jsonConfig()), "2 +")
	if err != nil {
		t.Fatalf("explain failed: %v", err)
	}

	var report explainOutput
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if report.Error == "" {
		t.Error("Error should report the parse failure")
	}
	if report.Postfix != "" {
		t.Errorf("Postfix = %q, want empty", report.Postfix)
	}
}

func TestHistoryCommand_Structure(t *testing.T) {
	cmd := NewHistoryCommand()

	if cmd.Use != "history" {
		t.Errorf("Use = %q, want %q", cmd.Use, "history")
	}

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"search", "clear"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand("1.2.3", "today", "abc"), context.Background())
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "v1.2.3") {
		t.Errorf("output %q missing version", out)
	}
}

func TestSplitAssignment(t *testing.T) {
	tests := []struct {
		line string
		name string
		expr string
		ok   bool
	}{
		{"x = 3", "x", "3", true},
		{"rate = 2 * 3", "rate", "2 * 3", true},
		{"_tmp=1", "_tmp", "1", true},
		{"3 + 4", "", "", false},
		{"2x = 1", "", "", false},
		{"x =", "", "", false},
		{"= 3", "", "", false},
	}
	for _, tt := range tests {
		name, expr, ok := splitAssignment(tt.line)
		if ok != tt.ok || name != tt.name || expr != tt.expr {
			t.Errorf("splitAssignment(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.line, name, expr, ok, tt.name, tt.expr, tt.ok)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		value     float64
		precision int
		want      string
	}{
		{11, -1, "11"},
		{11, 2, "11.00"},
		{2.5, 0, "2"},
		{1.0 / 3.0, 4, "0.3333"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.value, tt.precision); got != tt.want {
			t.Errorf("formatFloat(%v, %d) = %q, want %q", tt.value, tt.precision, got, tt.want)
		}
	}
}
