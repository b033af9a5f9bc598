package calc

import "github.com/leapstack-labs/leapcalc/pkg/token"

// Node is a concrete syntax tree node. The set of node types is closed:
// one type per grammar rule plus NumberLiteral for the NUMBER leaf.
type Node interface {
	Pos() token.Position
	node()
}

// Expression is the root of every arithmetic tree.
type Expression struct {
	Addition *AdditionExpression
}

// AdditionExpression is a left-associative chain of + and - operations.
// len(Operators) == len(Operands)-1; Operators[i] sits between Operands[i]
// and Operands[i+1].
type AdditionExpression struct {
	Operands  []*MultiplicationExpression
	Operators []token.Token
}

// MultiplicationExpression is a left-associative chain of * and / operations.
type MultiplicationExpression struct {
	Operands  []*AtomicExpression
	Operators []token.Token
}

// AtomicExpression wraps exactly one of *ParenthesisExpression,
// *NumberLiteral or *PowerCall.
type AtomicExpression struct {
	Inner Node
}

// ParenthesisExpression is ( Expression ).
type ParenthesisExpression struct {
	LParen token.Token
	Inner  *Expression
	RParen token.Token
}

// NumberLiteral is a digit sequence or number word.
type NumberLiteral struct {
	Token token.Token
}

// PowerCall is power ( Base , Exponent ).
type PowerCall struct {
	Keyword  token.Token
	Base     *Expression
	Exponent *Expression
	RParen   token.Token
}

func (n *Expression) Pos() token.Position               { return n.Addition.Pos() }
func (n *AdditionExpression) Pos() token.Position       { return n.Operands[0].Pos() }
func (n *MultiplicationExpression) Pos() token.Position { return n.Operands[0].Pos() }
func (n *AtomicExpression) Pos() token.Position         { return n.Inner.Pos() }
func (n *ParenthesisExpression) Pos() token.Position    { return n.LParen.Pos }
func (n *NumberLiteral) Pos() token.Position            { return n.Token.Pos }
func (n *PowerCall) Pos() token.Position                { return n.Keyword.Pos }

func (*Expression) node()               {}
func (*AdditionExpression) node()       {}
func (*MultiplicationExpression) node() {}
func (*AtomicExpression) node()         {}
func (*ParenthesisExpression) node()    {}
func (*NumberLiteral) node()            {}
func (*PowerCall) node()                {}
