// Package calc is the public entry point of the expression calculator.
// It wires the lexer, the order-validating RPN builder and the stack
// evaluator into a single pure call that never lets a fault escape.
package calc

import (
	"errors"

	"github.com/eqcalc/eqcalc/pkg/eval"
	"github.com/eqcalc/eqcalc/pkg/parser"
)

// genericFailure is returned when an unrecognized fault reaches the
// facade boundary.
const genericFailure = "Something went wrong"

// Result is the outcome of evaluating one expression. On success OK is
// true and Value holds the numeric result; on failure Message carries a
// human-readable diagnostic.
type Result struct {
	OK      bool    `json:"ok"`
	Value   float64 `json:"value"`
	Message string  `json:"message,omitempty"`
}

// Calculate evaluates a single arithmetic expression with no variable
// bindings.
func Calculate(expression string) Result {
	return CalculateWith(expression, nil)
}

// CalculateWith evaluates a single arithmetic expression against the
// given variable bindings. It always returns a Result; structural and
// arithmetic failures are reported through Message, and any fault of an
// unrecognized kind is converted to a generic failure at this boundary.
func CalculateWith(expression string, vars map[string]float64) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Message: genericFailure}
		}
	}()

	program, err := parser.Parse(expression)
	if err != nil {
		return Result{Message: err.Error()}
	}

	value, err := eval.Evaluate(program, vars)
	if err != nil {
		var internal *eval.InternalError
		if errors.As(err, &internal) {
			return Result{Message: "incorrect expression"}
		}
		return Result{Message: err.Error()}
	}

	return Result{OK: true, Value: value}
}
