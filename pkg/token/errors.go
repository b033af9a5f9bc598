package token

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LexError reports input text that matches no token rule.
type LexError struct {
	Pos  Position
	Text string // offending character or word
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: unexpected %s %q",
		e.Pos.Line, e.Pos.Column, e.what(), e.Text)
}

func (e *LexError) what() string {
	if utf8.RuneCountInString(e.Text) > 1 {
		return "word"
	}
	return "character"
}

// ParseError reports a token sequence that does not match the grammar.
type ParseError struct {
	Pos      Position
	Rule     string // grammar rule whose alternatives all failed, if any
	Expected []Kind
	Found    Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: expected %s, found %s",
		e.Pos.Line, e.Pos.Column, e.expectation(), e.Found)
}

func (e *ParseError) expectation() string {
	names := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		names[i] = quoteSymbol(k)
	}
	list := strings.Join(names, ", ")
	switch {
	case e.Rule != "" && len(names) > 0:
		return fmt.Sprintf("%s (one of %s)", e.Rule, list)
	case e.Rule != "":
		return e.Rule
	default:
		return list
	}
}

// quoteSymbol returns the kind's name, quoted when the kind is punctuation
// so that "," or "(" reads as a token in a message.
func quoteSymbol(k Kind) string {
	name := k.String()
	if r, _ := utf8.DecodeRuneInString(name); unicode.IsLetter(r) {
		return name
	}
	return strconv.Quote(name)
}

// Unexpected builds a ParseError for the token found where one of expected
// kinds was required.
func Unexpected(found Token, rule string, expected ...Kind) *ParseError {
	return &ParseError{
		Pos:      found.Pos,
		Rule:     rule,
		Expected: expected,
		Found:    found,
	}
}
