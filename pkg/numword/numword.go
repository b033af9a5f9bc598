// Package numword spells numbers as English words.
package numword

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Limit is the smallest magnitude Spell rejects.
const Limit = 1e18

// ErrNotFinite is returned for NaN and infinities.
var ErrNotFinite = errors.New("numword: value is not finite")

var ones = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tens = [...]string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

var scales = [...]string{"", "thousand", "million", "billion", "trillion", "quadrillion"}

// Spell returns the English words for v truncated toward zero, e.g.
// 1234.9 is "one thousand, two hundred thirty-four" and -7 is "minus seven".
func Spell(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", ErrNotFinite
	}
	v = math.Trunc(v)
	if math.Abs(v) >= Limit {
		return "", fmt.Errorf("numword: %g is out of range", v)
	}

	n := int64(v)
	if n == 0 {
		return ones[0], nil
	}
	var prefix string
	if n < 0 {
		prefix = "minus "
		n = -n
	}

	var groups []string
	for scale := 0; n > 0; scale++ {
		if chunk := int(n % 1000); chunk > 0 {
			words := hundreds(chunk)
			if scales[scale] != "" {
				words += " " + scales[scale]
			}
			groups = append(groups, words)
		}
		n /= 1000
	}
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return prefix + strings.Join(groups, ", "), nil
}

// hundreds spells 1..999.
func hundreds(n int) string {
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, ones[h]+" hundred")
	}
	switch r := n % 100; {
	case r == 0:
	case r < 20:
		parts = append(parts, ones[r])
	case r%10 == 0:
		parts = append(parts, tens[r/10])
	default:
		parts = append(parts, tens[r/10]+"-"+ones[r%10])
	}
	return strings.Join(parts, " ")
}
