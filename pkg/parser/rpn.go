package parser

import "github.com/eqcalc/eqcalc/pkg/token"

// priority returns the binding strength of an operator or parenthesis.
// Parentheses bind weakest so that draining stops at them.
func priority(k token.Kind) int {
	switch k {
	case token.Add, token.Sub:
		return 1
	case token.Mul, token.Div:
		return 2
	case token.Pow:
		return 3
	case token.UnaryMinus:
		return 4
	case token.Sqrt:
		return 5
	}
	return 0
}

// Build converts a raw token stream into a postfix program using the
// shunting-yard algorithm, validating token order along the way.
//
// Operators are popped while the stack top has priority greater than or
// equal to the incoming operator, which makes every operator, including
// '^', left-associative: 2^3^2 reduces as (2^3)^2. This tie-break is
// deliberate and covered by tests.
func Build(raw []string) (Program, error) {
	var (
		out      Program
		ops      []token.Kind
		prev     = token.Undefined
		prevLit  string
		operands int
	)

	for _, lit := range raw {
		kind, value := resolveKind(lit, prev)
		if !mayFollow(prev, kind) {
			return nil, &OrderError{Prev: prev, PrevLit: prevLit, Curr: kind, CurrLit: lit}
		}

		switch kind {
		case token.Number:
			out = append(out, NumberItem(value))
			operands++

		case token.Identifier:
			out = append(out, VariableItem(lit))
			operands++

		case token.OpenParen, token.Sqrt:
			ops = append(ops, kind)

		case token.CloseParen:
			for len(ops) > 0 && ops[len(ops)-1] != token.OpenParen {
				out = append(out, OpItem(ops[len(ops)-1]))
				ops = ops[:len(ops)-1]
			}
			if len(ops) == 0 {
				return nil, &ParenError{Side: "close"}
			}
			ops = ops[:len(ops)-1] // discard the matching open parenthesis

		default:
			for len(ops) > 0 && priority(ops[len(ops)-1]) >= priority(kind) {
				out = append(out, OpItem(ops[len(ops)-1]))
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, kind)
		}

		prev, prevLit = kind, lit
	}

	if operands == 0 {
		return nil, ErrNoOperands
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		if top == token.OpenParen {
			return nil, &ParenError{Side: "open"}
		}
		out = append(out, OpItem(top))
		ops = ops[:len(ops)-1]
	}

	return out, nil
}

// Parse scans and builds in one step.
func Parse(input string) (Program, error) {
	return Build(Scan(input))
}
