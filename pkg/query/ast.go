package query

import "fmt"

// Record type tags.
const (
	TypeSelectStmt   = "SELECT_STMT"
	TypeSelectClause = "SELECT_CLAUSE"
	TypeFromClause   = "FROM_CLAUSE"
	TypeWhereClause  = "WHERE_CLAUSE"
	TypeExpression   = "EXPRESSION"
)

// Statement describes a parsed query. It is plain data, ready to be
// serialized as JSON or YAML.
type Statement struct {
	Type   string `json:"type" yaml:"type"`
	Select Select `json:"selectClause" yaml:"selectClause"`
	From   From   `json:"fromClause" yaml:"fromClause"`
	Where  *Where `json:"whereClause,omitempty" yaml:"whereClause,omitempty"`
}

// Select lists the selected columns in source order.
type Select struct {
	Type    string   `json:"type" yaml:"type"`
	Columns []string `json:"columns" yaml:"columns"`
}

// From names the source table.
type From struct {
	Type  string `json:"type" yaml:"type"`
	Table string `json:"table" yaml:"table"`
}

// Where holds the filter of a statement.
type Where struct {
	Type      string    `json:"type" yaml:"type"`
	Condition Condition `json:"condition" yaml:"condition"`
}

// Condition is a single comparison. Operands are source text; whether one
// names a column or is a number is not decided here.
type Condition struct {
	Type     string `json:"type" yaml:"type"`
	LHS      string `json:"lhs" yaml:"lhs"`
	Operator string `json:"operator" yaml:"operator"`
	RHS      string `json:"rhs" yaml:"rhs"`
}

// Build turns a syntax tree into its query description.
func Build(tree *SelectStatement) *Statement {
	return build(tree).(*Statement)
}

// build walks the tree in post-order. It panics on nodes the parser cannot
// produce.
func build(n Node) any {
	switch n := n.(type) {
	case *SelectStatement:
		stmt := &Statement{
			Type:   TypeSelectStmt,
			Select: build(n.Select).(Select),
			From:   build(n.From).(From),
		}
		if n.Where != nil {
			w := build(n.Where).(Where)
			stmt.Where = &w
		}
		return stmt
	case *SelectClause:
		cols := make([]string, len(n.Columns))
		for i, c := range n.Columns {
			cols[i] = c.Literal
		}
		return Select{Type: TypeSelectClause, Columns: cols}
	case *FromClause:
		return From{Type: TypeFromClause, Table: n.Table.Literal}
	case *WhereClause:
		return Where{Type: TypeWhereClause, Condition: build(n.Condition).(Condition)}
	case *Comparison:
		return Condition{
			Type:     TypeExpression,
			LHS:      n.LHS.Literal,
			Operator: n.Operator.Literal,
			RHS:      n.RHS.Literal,
		}
	}
	panic(fmt.Sprintf("query: unexpected node %T", n))
}
