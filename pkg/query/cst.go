package query

import "github.com/leapstack-labs/leapcalc/pkg/token"

// Node is a node of the query syntax tree. The set of implementations is
// closed: one per grammar rule.
type Node interface {
	Pos() token.Position
	node()
}

// SelectStatement is SelectClause FromClause WhereClause?.
type SelectStatement struct {
	Select *SelectClause
	From   *FromClause
	Where  *WhereClause // nil without a WHERE clause
}

// SelectClause is SELECT followed by a comma-separated column list.
type SelectClause struct {
	Keyword token.Token
	Columns []token.Token
}

// FromClause names the single source table.
type FromClause struct {
	Keyword token.Token
	Table   token.Token
}

// WhereClause holds the filter condition.
type WhereClause struct {
	Keyword   token.Token
	Condition *Comparison
}

// Comparison is one binary relation between two atoms.
type Comparison struct {
	LHS      token.Token // IDENT or INTEGER
	Operator token.Token // < or >
	RHS      token.Token // IDENT or INTEGER
}

func (n *SelectStatement) Pos() token.Position { return n.Select.Pos() }
func (n *SelectClause) Pos() token.Position    { return n.Keyword.Pos }
func (n *FromClause) Pos() token.Position      { return n.Keyword.Pos }
func (n *WhereClause) Pos() token.Position     { return n.Keyword.Pos }
func (n *Comparison) Pos() token.Position      { return n.LHS.Pos }

func (*SelectStatement) node() {}
func (*SelectClause) node()    {}
func (*FromClause) node()      {}
func (*WhereClause) node()     {}
func (*Comparison) node()      {}
