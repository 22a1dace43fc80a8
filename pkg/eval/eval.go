// Package eval executes postfix programs produced by the parser on a
// numeric stack.
package eval

import (
	"errors"
	"fmt"
	"math"

	"github.com/eqcalc/eqcalc/pkg/parser"
	"github.com/eqcalc/eqcalc/pkg/token"
)

// ErrDivisionByZero reports a division whose right operand is exactly
// zero.
var ErrDivisionByZero = errors.New("division by zero is not defined")

// UnknownVariableError reports a variable reference with no binding in
// the evaluation environment.
type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown variable %q", e.Name)
}

// InternalError reports a malformed postfix program: operand underflow
// or an operation outside the executable set. Programs built from
// validated input never trigger it.
type InternalError struct {
	Reason string
}

func (e *InternalError) Error() string {
	return "invalid postfix program: " + e.Reason
}

// stack is the transient operand stack of one evaluation pass.
type stack []float64

func (s *stack) push(v float64) {
	*s = append(*s, v)
}

func (s *stack) pop() (float64, bool) {
	old := *s
	if len(old) == 0 {
		return 0, false
	}
	v := old[len(old)-1]
	*s = old[:len(old)-1]
	return v, true
}

// Evaluate executes a postfix program and returns the resulting value.
// Variable items take their values from vars; a reference absent from
// vars is an error, never a silent no-op. sqrt of a negative value
// yields NaN rather than an error, matching floating-point propagation
// semantics.
func Evaluate(p parser.Program, vars map[string]float64) (float64, error) {
	st := make(stack, 0, len(p))

	for _, it := range p {
		switch it.Kind {
		case parser.ItemNumber:
			st.push(it.Value)

		case parser.ItemVariable:
			v, ok := vars[it.Name]
			if !ok {
				return 0, &UnknownVariableError{Name: it.Name}
			}
			st.push(v)

		case parser.ItemOp:
			v, err := apply(it.Op, &st)
			if err != nil {
				return 0, err
			}
			st.push(v)
		}
	}

	top, ok := st.pop()
	if !ok {
		return 0, &InternalError{Reason: "no result on the stack"}
	}
	return top, nil
}

// apply pops the operands of op and computes its result. For binary
// operators the operand popped second is the left operand, restoring
// the original left-to-right order.
func apply(op token.Kind, st *stack) (float64, error) {
	switch op {
	case token.UnaryMinus:
		a, err := operand(st)
		if err != nil {
			return 0, err
		}
		return -a, nil

	case token.Sqrt:
		a, err := operand(st)
		if err != nil {
			return 0, err
		}
		return math.Sqrt(a), nil

	case token.Add, token.Sub, token.Mul, token.Div, token.Pow:
		b, err := operand(st)
		if err != nil {
			return 0, err
		}
		a, err := operand(st)
		if err != nil {
			return 0, err
		}
		return applyBinary(op, a, b)
	}

	return 0, &InternalError{Reason: fmt.Sprintf("unrecognized operation %v", op)}
}

func applyBinary(op token.Kind, a, b float64) (float64, error) {
	switch op {
	case token.Add:
		return a + b, nil
	case token.Sub:
		return a - b, nil
	case token.Mul:
		return a * b, nil
	case token.Div:
		if b == 0.0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default: // token.Pow
		return math.Pow(a, b), nil
	}
}

func operand(st *stack) (float64, error) {
	v, ok := st.pop()
	if !ok {
		return 0, &InternalError{Reason: "operand stack underflow"}
	}
	return v, nil
}
