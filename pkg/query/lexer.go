package query

import (
	"unicode/utf8"

	"github.com/leapstack-labs/leapcalc/pkg/token"
)

// keywords maps reserved words to their token kind. Lookup happens after the
// whole identifier run is read, so SELECTED stays an identifier.
var keywords = map[string]token.Kind{
	"SELECT": token.SELECT,
	"FROM":   token.FROM,
	"WHERE":  token.WHERE,
}

// Lexer tokenizes query input.
type Lexer struct {
	input string
	cur   token.Cursor
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, cur: token.NewCursor(input)}
}

// NextToken returns the next token, EOF once the input is exhausted.
func (l *Lexer) NextToken() (token.Token, error) {
	for isSpace(l.cur.Peek()) {
		l.cur.Advance()
	}

	pos := l.cur.Pos()
	ch := l.cur.Peek()

	switch {
	case l.cur.AtEnd():
		return token.Token{Kind: token.EOF, Pos: pos}, nil
	case isLetter(ch):
		for isWordChar(l.cur.Peek()) {
			l.cur.Advance()
		}
		word := l.cur.Slice(pos)
		if kind, ok := keywords[word]; ok {
			return token.Token{Kind: kind, Literal: word, Pos: pos}, nil
		}
		return token.Token{Kind: token.IDENT, Literal: word, Pos: pos}, nil
	case ch == '0':
		l.cur.Advance()
		return token.Token{Kind: token.INTEGER, Literal: "0", Pos: pos}, nil
	case isDigit(ch):
		for isDigit(l.cur.Peek()) {
			l.cur.Advance()
		}
		return token.Token{Kind: token.INTEGER, Literal: l.cur.Slice(pos), Pos: pos}, nil
	}

	var kind token.Kind
	switch ch {
	case ',':
		kind = token.COMMA
	case '<':
		kind = token.LT
	case '>':
		kind = token.GT
	default:
		r, _ := utf8.DecodeRuneInString(l.input[pos.Offset:])
		return token.Token{}, &token.LexError{Pos: pos, Text: string(r)}
	}
	l.cur.Advance()
	return token.Token{Kind: kind, Literal: string(ch), Pos: pos}, nil
}

// Tokenize returns all tokens up to and including EOF, or the first LexError.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isWordChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}
