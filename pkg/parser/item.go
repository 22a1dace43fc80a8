package parser

import (
	"strconv"
	"strings"

	"github.com/eqcalc/eqcalc/pkg/token"
)

// ItemKind discriminates the variants of a postfix program item.
type ItemKind int

const (
	ItemNumber   ItemKind = iota // literal operand
	ItemVariable                 // named operand, bound at evaluation time
	ItemOp                       // executable operation
)

// Item is one element of a postfix program: a number literal, a
// variable reference, or an operation.
type Item struct {
	Kind  ItemKind
	Value float64    // set for ItemNumber
	Name  string     // set for ItemVariable
	Op    token.Kind // set for ItemOp; always an operator kind
}

// NumberItem returns a literal operand item.
func NumberItem(v float64) Item {
	return Item{Kind: ItemNumber, Value: v}
}

// VariableItem returns a named operand item.
func VariableItem(name string) Item {
	return Item{Kind: ItemVariable, Name: name}
}

// OpItem returns an operation item.
func OpItem(op token.Kind) Item {
	return Item{Kind: ItemOp, Op: op}
}

// String renders the item for diagnostics and program listings.
func (it Item) String() string {
	switch it.Kind {
	case ItemNumber:
		return strconv.FormatFloat(it.Value, 'g', -1, 64)
	case ItemVariable:
		return it.Name
	default:
		return it.Op.String()
	}
}

// Program is a postfix (RPN) program in evaluation order.
type Program []Item

// String renders the program as a space-separated listing.
func (p Program) String() string {
	parts := make([]string, len(p))
	for i, it := range p {
		parts[i] = it.String()
	}
	return strings.Join(parts, " ")
}
