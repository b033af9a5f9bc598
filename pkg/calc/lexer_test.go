package calc

import (
	"testing"

	"github.com/leapstack-labs/leapcalc/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "symbols",
			input: "1+2-3*4/5",
			want: []token.Kind{
				token.NUMBER, token.PLUS, token.NUMBER, token.MINUS, token.NUMBER,
				token.STAR, token.NUMBER, token.SLASH, token.NUMBER, token.EOF,
			},
		},
		{
			name:  "word aliases",
			input: "one plus two minus three times four by five",
			want: []token.Kind{
				token.NUMBER, token.PLUS, token.NUMBER, token.MINUS, token.NUMBER,
				token.STAR, token.NUMBER, token.SLASH, token.NUMBER, token.EOF,
			},
		},
		{
			name:  "power call",
			input: "power(2, 3)",
			want: []token.Kind{
				token.POWER, token.LPAREN, token.NUMBER, token.COMMA, token.NUMBER, token.RPAREN, token.EOF,
			},
		},
		{
			name:  "whitespace only",
			input: " \t\n ",
			want:  []token.Kind{token.EOF},
		},
		{
			name:  "empty",
			input: "",
			want:  []token.Kind{token.EOF},
		},
		{
			name:  "leading zero splits literal",
			input: "012",
			want:  []token.Kind{token.NUMBER, token.NUMBER, token.EOF},
		},
		{
			name:  "digits then word without space",
			input: "2plus3",
			want:  []token.Kind{token.NUMBER, token.PLUS, token.NUMBER, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input, DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, tt.want, kinds(tokens))
		})
	}
}

func TestTokenizeKeepsLexemeAndPosition(t *testing.T) {
	tokens, err := Tokenize("10 times\n  seven", DefaultOptions())
	require.NoError(t, err)
	require.Len(t, tokens, 4)

	assert.Equal(t, token.Token{Kind: token.NUMBER, Literal: "10", Pos: token.Position{Line: 1, Column: 1, Offset: 0}}, tokens[0])
	assert.Equal(t, token.Token{Kind: token.STAR, Literal: "times", Pos: token.Position{Line: 1, Column: 4, Offset: 3}}, tokens[1])
	assert.Equal(t, token.Token{Kind: token.NUMBER, Literal: "seven", Pos: token.Position{Line: 2, Column: 3, Offset: 11}}, tokens[2])
	assert.Equal(t, token.EOF, tokens[3].Kind)
	assert.Equal(t, 16, tokens[3].Pos.Offset)
}

func TestTokenizeZeroIsALiteral(t *testing.T) {
	tokens, err := Tokenize("0", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "0", tokens[0].Literal)
	assert.Equal(t, token.NUMBER, tokens[0].Kind)
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     Options
		wantPos  token.Position
		wantText string
	}{
		{
			name:     "unknown symbol",
			input:    "2 $ 3",
			opts:     DefaultOptions(),
			wantPos:  token.Position{Line: 1, Column: 3, Offset: 2},
			wantText: "$",
		},
		{
			name:     "unknown word",
			input:    "2 plsu 3",
			opts:     DefaultOptions(),
			wantPos:  token.Position{Line: 1, Column: 3, Offset: 2},
			wantText: "plsu",
		},
		{
			name:     "alias with trailing letters",
			input:    "plusx",
			opts:     DefaultOptions(),
			wantPos:  token.Position{Line: 1, Column: 1, Offset: 0},
			wantText: "plusx",
		},
		{
			name:     "keywords are case sensitive",
			input:    "Two",
			opts:     DefaultOptions(),
			wantPos:  token.Position{Line: 1, Column: 1, Offset: 0},
			wantText: "Two",
		},
		{
			name:     "words disabled",
			input:    "1 plus 2",
			opts:     Options{Words: false},
			wantPos:  token.Position{Line: 1, Column: 3, Offset: 2},
			wantText: "plus",
		},
		{
			name:     "multibyte character",
			input:    "1 × 2",
			opts:     DefaultOptions(),
			wantPos:  token.Position{Line: 1, Column: 3, Offset: 2},
			wantText: "×",
		},
		{
			name:     "error on second line",
			input:    "1 +\n2 % 3",
			opts:     DefaultOptions(),
			wantPos:  token.Position{Line: 2, Column: 3, Offset: 6},
			wantText: "%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input, tt.opts)
			require.Error(t, err)

			var lexErr *token.LexError
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tt.wantPos, lexErr.Pos)
			assert.Equal(t, tt.wantText, lexErr.Text)
		})
	}
}

func TestSymbolsOnlyStillAcceptsPower(t *testing.T) {
	tokens, err := Tokenize("power(2,3)", Options{Words: false})
	require.NoError(t, err)
	assert.Equal(t, token.POWER, tokens[0].Kind)
}
