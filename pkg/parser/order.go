package parser

import "github.com/eqcalc/eqcalc/pkg/token"

// kindSet is a set of token kinds.
type kindSet map[token.Kind]struct{}

func newKindSet(kinds ...token.Kind) kindSet {
	s := make(kindSet, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

// follows maps a previous token kind to the set of kinds permitted to
// come next. It is total over every kind that can appear as "previous"
// and is never mutated after construction, so it is safe to share
// across concurrent callers.
//
//	+--------------------+-------------------------------------+
//	| previous           | permitted next                      |
//	+--------------------+-------------------------------------+
//	| number, var, )     | + - * / ^ )                         |
//	| + - * / ^ unary -  | number, var, (, sqrt                |
//	| sqrt               | (                                   |
//	| start, (           | number, var, (, unary -, sqrt       |
//	+--------------------+-------------------------------------+
var follows = buildFollows()

func buildFollows() map[token.Kind]kindSet {
	m := make(map[token.Kind]kindSet)

	afterOperand := newKindSet(
		token.Add, token.Sub, token.Mul, token.Div, token.Pow, token.CloseParen,
	)
	for _, k := range []token.Kind{token.Number, token.Identifier, token.CloseParen} {
		m[k] = afterOperand
	}

	afterOperator := newKindSet(
		token.Number, token.Identifier, token.OpenParen, token.Sqrt,
	)
	for _, k := range []token.Kind{
		token.UnaryMinus, token.Add, token.Sub, token.Mul, token.Div, token.Pow,
	} {
		m[k] = afterOperator
	}

	atStart := newKindSet(
		token.Number, token.Identifier, token.OpenParen, token.UnaryMinus, token.Sqrt,
	)
	m[token.Undefined] = atStart
	m[token.OpenParen] = atStart

	m[token.Sqrt] = newKindSet(token.OpenParen)

	return m
}

// mayFollow reports whether a token of kind curr may legally follow a
// token of kind prev.
func mayFollow(prev, curr token.Kind) bool {
	_, ok := follows[prev][curr]
	return ok
}

// resolveKind classifies a raw token in the context of the previous
// token's kind, reclassifying a subtraction sign as unary minus at the
// start of an expression or directly after an open parenthesis.
func resolveKind(literal string, prev token.Kind) (token.Kind, float64) {
	kind, value := token.Classify(literal)
	if kind == token.Sub && (prev == token.Undefined || prev == token.OpenParen) {
		kind = token.UnaryMinus
	}
	return kind, value
}

// Classified is a raw token together with its resolved kind. The Value
// field is meaningful only for Number tokens.
type Classified struct {
	Literal string
	Kind    token.Kind
	Value   float64
}

// ClassifyAll resolves the kind of every raw token in stream order,
// applying the unary-minus rule. It performs no order validation; it
// exists for inspection tooling and tests.
func ClassifyAll(raw []string) []Classified {
	out := make([]Classified, 0, len(raw))
	prev := token.Undefined
	for _, lit := range raw {
		kind, value := resolveKind(lit, prev)
		out = append(out, Classified{Literal: lit, Kind: kind, Value: value})
		prev = kind
	}
	return out
}
