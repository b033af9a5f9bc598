package calc

import (
	"strconv"

	"github.com/leapstack-labs/leapcalc/pkg/token"
)

// numberWords is the closed set of spelled-out number literals.
var numberWords = map[string]float64{
	"zero":  0,
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
	"six":   6,
	"seven": 7,
	"eight": 8,
	"nine":  9,
}

// operatorWords maps word aliases to the kind of their symbol.
var operatorWords = map[string]token.Kind{
	"plus":  token.PLUS,
	"minus": token.MINUS,
	"times": token.STAR,
	"by":    token.SLASH,
}

// ResolveLiteral maps the lexeme of a NUMBER token to its value. Digit
// sequences are tried first, then the number words.
func ResolveLiteral(lexeme string) (float64, bool) {
	if n, err := strconv.ParseInt(lexeme, 10, 64); err == nil {
		return float64(n), true
	}
	if isDigits(lexeme) {
		// Too long for int64; ParseFloat still yields the nearest value or +Inf.
		f, _ := strconv.ParseFloat(lexeme, 64)
		return f, true
	}
	v, ok := numberWords[lexeme]
	return v, ok
}

// lookupWord classifies a run of letters.
func lookupWord(word string, opts Options) (token.Kind, bool) {
	if word == "power" {
		return token.POWER, true
	}
	if !opts.Words {
		return token.EOF, false
	}
	if k, ok := operatorWords[word]; ok {
		return k, true
	}
	if _, ok := numberWords[word]; ok {
		return token.NUMBER, true
	}
	return token.EOF, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
