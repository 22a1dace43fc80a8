// Package token defines the lexical token kinds of an arithmetic
// expression and the fixed classification tables shared by the parser
// and the evaluator.
package token

import "strconv"

// Kind is the lexical classification of one expression token.
type Kind int

const (
	// Undefined marks the position before the first token of an
	// expression. It is only ever used as a "previous" kind during
	// order validation and is never assigned to a scanned token.
	Undefined Kind = iota

	Number     // numeric literal, e.g. 3.25
	Identifier // variable name, e.g. x
	OpenParen  // (
	CloseParen // )
	UnaryMinus // - applied to a single operand
	Add        // +
	Sub        // binary -
	Mul        // *
	Div        // /
	Pow        // ^
	Sqrt       // sqrt function keyword
)

// keywords maps fixed token spellings to their kinds. Anything not in
// this table is a number if it parses as one, otherwise an identifier.
var keywords = map[string]Kind{
	"(":    OpenParen,
	")":    CloseParen,
	"+":    Add,
	"-":    Sub,
	"*":    Mul,
	"/":    Div,
	"^":    Pow,
	"sqrt": Sqrt,
}

// Lookup returns the kind registered for a fixed token spelling.
func Lookup(literal string) (Kind, bool) {
	k, ok := keywords[literal]
	return k, ok
}

// Classify assigns a kind to a raw token. For Number tokens the parsed
// value is returned alongside the kind; it is zero otherwise. A token
// counts as a number only if the full literal parses as one, so "1x"
// classifies as an identifier rather than a truncated number.
func Classify(literal string) (Kind, float64) {
	if k, ok := keywords[literal]; ok {
		return k, 0
	}
	if v, err := strconv.ParseFloat(literal, 64); err == nil {
		return Number, v
	}
	return Identifier, 0
}

// IsOperator reports whether k is an executable operation, i.e. one of
// the kinds that may appear in a postfix program.
func (k Kind) IsOperator() bool {
	switch k {
	case UnaryMinus, Add, Sub, Mul, Div, Pow, Sqrt:
		return true
	}
	return false
}

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case Undefined:
		return "UNDEFINED"
	case Number:
		return "NUMBER"
	case Identifier:
		return "IDENTIFIER"
	case OpenParen:
		return "LPAREN"
	case CloseParen:
		return "RPAREN"
	case UnaryMinus:
		return "UMINUS"
	case Add:
		return "ADD"
	case Sub:
		return "SUB"
	case Mul:
		return "MUL"
	case Div:
		return "DIV"
	case Pow:
		return "POW"
	case Sqrt:
		return "SQRT"
	}
	return "UNKNOWN"
}

// Describe renders the kind for user-facing diagnostics. Number and
// identifier descriptions include the offending literal.
func (k Kind) Describe(literal string) string {
	switch k {
	case Number:
		return "number " + literal
	case Identifier:
		return "variable " + literal
	case OpenParen:
		return "open parenthesis"
	case CloseParen:
		return "close parenthesis"
	case UnaryMinus:
		return "unary minus '-'"
	case Add:
		return "addition sign '+'"
	case Sub:
		return "subtraction sign '-'"
	case Mul:
		return "multiplication sign '*'"
	case Div:
		return "division sign '/'"
	case Pow:
		return "power sign '^'"
	case Sqrt:
		return "sqrt function"
	}
	return "undefined"
}
