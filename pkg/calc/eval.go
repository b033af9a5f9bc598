package calc

import (
	"fmt"
	"math"

	"github.com/leapstack-labs/leapcalc/pkg/token"
)

// Eval computes the value of a syntax tree in post-order. Each chain folds
// its operands left to right with the operator that preceded each one.
//
// Division and exponentiation follow float64 semantics: x/0 is ±Inf or NaN
// and power uses math.Pow. Eval panics on nodes the parser cannot produce.
func Eval(n Node) float64 {
	switch n := n.(type) {
	case *Expression:
		return Eval(n.Addition)
	case *AdditionExpression:
		result := Eval(n.Operands[0])
		for i, op := range n.Operators {
			result = apply(op, result, Eval(n.Operands[i+1]))
		}
		return result
	case *MultiplicationExpression:
		result := Eval(n.Operands[0])
		for i, op := range n.Operators {
			result = apply(op, result, Eval(n.Operands[i+1]))
		}
		return result
	case *AtomicExpression:
		return Eval(n.Inner)
	case *ParenthesisExpression:
		return Eval(n.Inner)
	case *NumberLiteral:
		v, ok := ResolveLiteral(n.Token.Literal)
		if !ok {
			panic(fmt.Sprintf("calc: literal %q at %s has no value", n.Token.Literal, n.Token.Pos))
		}
		return v
	case *PowerCall:
		return math.Pow(Eval(n.Base), Eval(n.Exponent))
	}
	panic(fmt.Sprintf("calc: unexpected node %T", n))
}

func apply(op token.Token, lhs, rhs float64) float64 {
	switch op.Kind {
	case token.PLUS:
		return lhs + rhs
	case token.MINUS:
		return lhs - rhs
	case token.STAR:
		return lhs * rhs
	case token.SLASH:
		return lhs / rhs
	}
	panic(fmt.Sprintf("calc: %s is not an arithmetic operator", op.Kind))
}
