package parser

import (
	"errors"
	"fmt"

	"github.com/eqcalc/eqcalc/pkg/token"
)

// ErrNoOperands reports a token stream without a single number or
// variable, such as empty or all-whitespace input.
var ErrNoOperands = errors.New("expression does not contain any operands")

// OrderError reports two adjacent tokens in an order the expression
// grammar does not permit.
type OrderError struct {
	Prev    token.Kind
	PrevLit string
	Curr    token.Kind
	CurrLit string
}

func (e *OrderError) Error() string {
	head := "incorrect order of operands and operations in the expression: the " +
		e.Curr.Describe(e.CurrLit)
	if e.Prev == token.Undefined {
		return head + " cannot be the first in an expression"
	}
	return head + " cannot be after the " + e.Prev.Describe(e.PrevLit)
}

// ParenError reports an unbalanced parenthesis. Side is "open" when an
// open parenthesis is left unmatched at the end of the expression, and
// "close" when a close parenthesis has no matching open one.
type ParenError struct {
	Side string
}

func (e *ParenError) Error() string {
	return fmt.Sprintf("found extra %s parenthesis", e.Side)
}
