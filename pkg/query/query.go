// Package query parses a small SQL subset into a query description.
//
//	stmt, err := query.Parse("SELECT id, name FROM users WHERE id > 124")
//	// stmt.Select.Columns == []string{"id", "name"}
//	// stmt.Where.Condition == Condition{LHS: "id", Operator: ">", RHS: "124"}
//
// The grammar:
//
//	SelectStatement := SelectClause FromClause WhereClause?
//	SelectClause    := SELECT IDENT (, IDENT)*
//	FromClause      := FROM IDENT
//	WhereClause     := WHERE Comparison
//	Comparison      := Atomic (<|>) Atomic
//	Atomic          := INTEGER | IDENT
//
// Keywords are upper case and case-sensitive; "select" is an identifier.
// Nothing is executed: operands are kept as their source text.
package query

import "github.com/leapstack-labs/leapcalc/pkg/token"

// Tokenize returns all tokens of input, ending with EOF.
func Tokenize(input string) ([]token.Token, error) {
	return NewLexer(input).Tokenize()
}

// ParseTree tokenizes and parses input into its syntax tree.
func ParseTree(input string) (*SelectStatement, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// Parse tokenizes, parses and builds the query description of input.
func Parse(input string) (*Statement, error) {
	tree, err := ParseTree(input)
	if err != nil {
		return nil, err
	}
	return Build(tree), nil
}
