// Package token defines the lexical tokens shared by the arithmetic and query
// languages.
//
// Tokens are classified on two levels. Kind is the precise tag the evaluators
// switch on (PLUS, SLASH, GT ...). Tier is the coarse precedence tier the
// parsers use for lookahead, so a grammar level asks "is this an addition
// operator?" without listing every concrete operator.
package token

import "fmt"

// Kind is the precise category of a token.
type Kind int32

//nolint:revive // ALL_CAPS names follow the token naming convention
const (
	// Special
	EOF Kind = iota

	// Arithmetic language
	NUMBER // 0, 42, seven
	PLUS   // + plus
	MINUS  // - minus
	STAR   // * times
	SLASH  // / by
	LPAREN // (
	RPAREN // )
	COMMA  // ,
	POWER  // power

	// Query language
	IDENT   // users
	INTEGER // 124
	SELECT  // SELECT
	FROM    // FROM
	WHERE   // WHERE
	LT      // <
	GT      // >
)

var kindNames = [...]string{
	EOF:     "EOF",
	NUMBER:  "NUMBER",
	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	LPAREN:  "(",
	RPAREN:  ")",
	COMMA:   ",",
	POWER:   "power",
	IDENT:   "IDENT",
	INTEGER: "INTEGER",
	SELECT:  "SELECT",
	FROM:    "FROM",
	WHERE:   "WHERE",
	LT:      "<",
	GT:      ">",
}

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("KIND(%d)", k)
}

// Tier is the coarse precedence tier of an operator token.
type Tier int

const (
	TierNone Tier = iota
	TierComparison
	TierAddition
	TierMultiplication
)

func (t Tier) String() string {
	switch t {
	case TierComparison:
		return "comparison"
	case TierAddition:
		return "addition"
	case TierMultiplication:
		return "multiplication"
	default:
		return "none"
	}
}

// Tier returns the precedence tier of the kind. Non-operators are TierNone.
func (k Kind) Tier() Tier {
	switch k {
	case PLUS, MINUS:
		return TierAddition
	case STAR, SLASH:
		return TierMultiplication
	case LT, GT:
		return TierComparison
	case EOF, NUMBER, LPAREN, RPAREN, COMMA, POWER,
		IDENT, INTEGER, SELECT, FROM, WHERE:
		return TierNone
	}
	return TierNone
}

// IsKeyword reports whether the kind is a reserved word of either language.
func (k Kind) IsKeyword() bool {
	switch k {
	case POWER, SELECT, FROM, WHERE:
		return true
	}
	return false
}

// Token is a lexical token with position information.
// Literal holds the text exactly as written, so a PLUS may read "+" or "plus".
type Token struct {
	Kind    Kind
	Literal string
	Pos     Position
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Literal)
}
