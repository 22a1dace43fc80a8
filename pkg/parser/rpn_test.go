package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/eqcalc/eqcalc/pkg/token"
)

func mustBuild(t *testing.T, input string) Program {
	t.Helper()
	p, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return p
}

func TestBuild_Programs(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"3+4", "3 4 ADD"},
		{"2 + 3 * 4", "2 3 4 MUL ADD"},
		{"(2+3)*4", "2 3 ADD 4 MUL"},
		{"-5 + 3", "5 UMINUS 3 ADD"},
		{"(-5)^2", "5 UMINUS 2 POW"},
		{"sqrt(16)", "16 SQRT"},
		{"-sqrt(4)", "4 SQRT UMINUS"},
		{"sqrt(9)*2", "9 SQRT 2 MUL"},
		{"x + 1", "x 1 ADD"},
		{"1/0", "1 0 DIV"},
		// '^' drains equal priority from the stack, so the program
		// reduces left to right: (2^3)^2, not 2^(3^2).
		{"2^3^2", "2 3 POW 2 POW"},
		{"2-3-4", "2 3 SUB 4 SUB"},
	}

	for _, tt := range tests {
		p := mustBuild(t, tt.input)
		if got := p.String(); got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuild_NoOperands(t *testing.T) {
	for _, input := range []string{"", "   "} {
		_, err := Parse(input)
		if !errors.Is(err, ErrNoOperands) {
			t.Errorf("Parse(%q) error = %v, want ErrNoOperands", input, err)
		}
	}
}

func TestBuild_ExtraParens(t *testing.T) {
	var parenErr *ParenError

	_, err := Parse("(1+2")
	if !errors.As(err, &parenErr) || parenErr.Side != "open" {
		t.Errorf("Parse(\"(1+2\") error = %v, want extra open parenthesis", err)
	}

	_, err = Parse("1+2)")
	if !errors.As(err, &parenErr) || parenErr.Side != "close" {
		t.Errorf("Parse(\"1+2)\") error = %v, want extra close parenthesis", err)
	}
}

func TestBuild_OrderErrors(t *testing.T) {
	tests := []struct {
		input    string
		prev     token.Kind
		curr     token.Kind
		fragment string
	}{
		// A minus after a binary minus is not reclassified as unary.
		{"3 - -2", token.Sub, token.Sub, "subtraction sign '-' cannot be after the subtraction sign '-'"},
		{"3 4", token.Number, token.Number, "number 4 cannot be after the number 3"},
		{"sqrt 4", token.Sqrt, token.Number, "number 4 cannot be after the sqrt function"},
		{"*3", token.Undefined, token.Mul, "cannot be the first in an expression"},
		{"2(3)", token.Number, token.OpenParen, "open parenthesis cannot be after the number 2"},
	}

	for _, tt := range tests {
		_, err := Parse(tt.input)
		var orderErr *OrderError
		if !errors.As(err, &orderErr) {
			t.Errorf("Parse(%q) error = %v, want OrderError", tt.input, err)
			continue
		}
		if orderErr.Prev != tt.prev || orderErr.Curr != tt.curr {
			t.Errorf("Parse(%q) order error %v -> %v, want %v -> %v",
				tt.input, orderErr.Prev, orderErr.Curr, tt.prev, tt.curr)
		}
		if !strings.Contains(err.Error(), tt.fragment) {
			t.Errorf("Parse(%q) message %q does not contain %q", tt.input, err.Error(), tt.fragment)
		}
	}
}

func TestBuild_ParenthesizedUnaryMinus(t *testing.T) {
	// "3 - (-2)" is the accepted spelling for subtracting a negative.
	p := mustBuild(t, "3 - (-2)")
	if got := p.String(); got != "3 2 UMINUS SUB" {
		t.Errorf("Parse(\"3 - (-2)\") = %q, want \"3 2 UMINUS SUB\"", got)
	}
}

func TestBuild_LoneOperatorRejected(t *testing.T) {
	_, err := Parse("+")
	var orderErr *OrderError
	if !errors.As(err, &orderErr) {
		t.Errorf("Parse(\"+\") error = %v, want OrderError", err)
	}
}
