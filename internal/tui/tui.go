// Package tui implements an interactive full-screen calculator.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eqcalc/eqcalc/pkg/calc"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// historySize bounds the number of past evaluations shown on screen.
const historySize = 8

// entry is one evaluated expression and its outcome.
type entry struct {
	expression string
	display    string
	ok         bool
}

// Model is the calculator screen state.
type Model struct {
	input     textinput.Model
	variables map[string]float64
	history   []entry
	quitting  bool
}

// New creates a calculator model. Variables are made available to every
// evaluation.
func New(variables map[string]float64) Model {
	ti := textinput.New()
	ti.Placeholder = "3 + 4 * 2"
	ti.Prompt = "= "
	ti.Focus()
	ti.CharLimit = 256

	return Model{
		input:     ti,
		variables: variables,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.evaluate(), nil
		case tea.KeyCtrlS:
			m.input.SetValue(m.input.Value() + "sqrt(")
			m.input.CursorEnd()
			return m, nil
		case tea.KeyCtrlQ:
			m.input.SetValue(m.input.Value() + "^2")
			m.input.CursorEnd()
			return m, nil
		}
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// evaluate runs the current expression. On success the result replaces
// the input so it can be used as the next operand; on failure the input
// is kept for correction.
func (m Model) evaluate() Model {
	expr := strings.TrimSpace(m.input.Value())
	if expr == "" {
		return m
	}

	res := calc.CalculateWith(expr, m.variables)
	e := entry{expression: expr, ok: res.OK}
	if res.OK {
		e.display = strconv.FormatFloat(res.Value, 'g', -1, 64)
		m.input.SetValue(e.display)
		m.input.CursorEnd()
	} else {
		e.display = res.Message
	}

	m.history = append(m.history, e)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
	return m
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("eqcalc"))
	b.WriteString("\n\n")

	for _, e := range m.history {
		if e.ok {
			b.WriteString(fmt.Sprintf("%s = %s\n", e.expression, resultStyle.Render(e.display)))
		} else {
			b.WriteString(fmt.Sprintf("%s  %s\n", e.expression, errorStyle.Render(e.display)))
		}
	}
	if len(m.history) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(faintStyle.Render("Enter evaluate · Ctrl+S sqrt( · Ctrl+Q ^2 · Esc quit"))

	return borderStyle.Render(b.String()) + "\n"
}

// Run starts the calculator and blocks until the user quits.
func Run(variables map[string]float64) error {
	p := tea.NewProgram(New(variables))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("calculator ui failed: %w", err)
	}
	return nil
}
