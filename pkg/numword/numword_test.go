package numword

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpell(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "zero"},
		{7, "seven"},
		{13, "thirteen"},
		{20, "twenty"},
		{21, "twenty-one"},
		{99, "ninety-nine"},
		{100, "one hundred"},
		{101, "one hundred one"},
		{110, "one hundred ten"},
		{999, "nine hundred ninety-nine"},
		{1000, "one thousand"},
		{1001, "one thousand, one"},
		{1234, "one thousand, two hundred thirty-four"},
		{1000000, "one million"},
		{2000045, "two million, forty-five"},
		{14.99, "fourteen"},
		{-7, "minus seven"},
		{-0.5, "zero"},
		{-1234.7, "minus one thousand, two hundred thirty-four"},
		{999999999999999872, "nine hundred ninety-nine quadrillion, nine hundred ninety-nine trillion, nine hundred ninety-nine billion, nine hundred ninety-nine million, nine hundred ninety-nine thousand, eight hundred seventy-two"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := Spell(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpellRejects(t *testing.T) {
	_, err := Spell(math.NaN())
	require.ErrorIs(t, err, ErrNotFinite)

	_, err = Spell(math.Inf(-1))
	require.ErrorIs(t, err, ErrNotFinite)

	_, err = Spell(1e18)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	_, err = Spell(-1e19)
	require.Error(t, err)
}
