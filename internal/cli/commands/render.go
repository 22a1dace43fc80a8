package commands

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/eqcalc/eqcalc/internal/config"
	"github.com/eqcalc/eqcalc/pkg/calc"
)

var (
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// formatFloat renders a value with the configured precision. A negative
// precision picks the shortest representation that round-trips.
func formatFloat(v float64, precision int) string {
	if precision < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// resolveFormat maps "auto" to text on a terminal and json otherwise,
// so piped output stays machine-readable.
func resolveFormat(format string) string {
	if format != config.DefaultFormat && format != "" {
		return format
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "text"
	}
	return "json"
}

// styled reports whether color output should be used.
func styled() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) &&
		termenv.EnvColorProfile() != termenv.Ascii
}

// jsonResult is the JSON form of a result. The numeric field is
// omitted for non-finite values, which JSON cannot represent; the
// display string always carries the formatted value on success.
type jsonResult struct {
	OK      bool     `json:"ok"`
	Value   *float64 `json:"value,omitempty"`
	Display string   `json:"display,omitempty"`
	Message string   `json:"message,omitempty"`
}

func toJSONResult(res calc.Result, precision int) jsonResult {
	out := jsonResult{OK: res.OK, Message: res.Message}
	if res.OK {
		out.Display = formatFloat(res.Value, precision)
		if !math.IsNaN(res.Value) && !math.IsInf(res.Value, 0) {
			v := res.Value
			out.Value = &v
		}
	}
	return out
}

// renderResult writes an evaluation result in the configured format.
func renderResult(w io.Writer, res calc.Result, cfg *config.Config) error {
	switch resolveFormat(cfg.Format) {
	case "json":
		enc := json.NewEncoder(w)
		return enc.Encode(toJSONResult(res, cfg.Precision))
	default:
		return renderResultText(w, res, cfg.Precision)
	}
}

func renderResultText(w io.Writer, res calc.Result, precision int) error {
	var line string
	if res.OK {
		line = formatFloat(res.Value, precision)
		if styled() {
			line = valueStyle.Render(line)
		}
	} else {
		line = res.Message
		if styled() {
			line = errStyle.Render(line)
		}
	}
	_, err := io.WriteString(w, line+"\n")
	return err
}
