package calc

import (
	"unicode/utf8"

	"github.com/leapstack-labs/leapcalc/pkg/token"
)

// Lexer tokenizes arithmetic input.
type Lexer struct {
	input string
	cur   token.Cursor
	opts  Options
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string, opts Options) *Lexer {
	return &Lexer{
		input: input,
		cur:   token.NewCursor(input),
		opts:  opts,
	}
}

// NextToken returns the next token, EOF once the input is exhausted.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()

	pos := l.cur.Pos()
	ch := l.cur.Peek()

	switch {
	case l.cur.AtEnd():
		return token.Token{Kind: token.EOF, Pos: pos}, nil
	case ch == '0':
		// A zero never starts a longer literal: "012" is 0 followed by 12.
		l.cur.Advance()
		return token.Token{Kind: token.NUMBER, Literal: "0", Pos: pos}, nil
	case isDigit(ch):
		for isDigit(l.cur.Peek()) {
			l.cur.Advance()
		}
		return token.Token{Kind: token.NUMBER, Literal: l.cur.Slice(pos), Pos: pos}, nil
	case isLetter(ch):
		for isLetter(l.cur.Peek()) {
			l.cur.Advance()
		}
		word := l.cur.Slice(pos)
		kind, ok := lookupWord(word, l.opts)
		if !ok {
			return token.Token{}, &token.LexError{Pos: pos, Text: word}
		}
		return token.Token{Kind: kind, Literal: word, Pos: pos}, nil
	}

	var kind token.Kind
	switch ch {
	case '+':
		kind = token.PLUS
	case '-':
		kind = token.MINUS
	case '*':
		kind = token.STAR
	case '/':
		kind = token.SLASH
	case '(':
		kind = token.LPAREN
	case ')':
		kind = token.RPAREN
	case ',':
		kind = token.COMMA
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

func (l *Lexer) skipWhitespace() {
	for isSpace(l.cur.Peek()) {
		l.cur.Advance()
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
