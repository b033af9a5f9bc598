package calc

import (
	"testing"

	"github.com/leapstack-labs/leapcalc/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammarIsLL1(t *testing.T) {
	require.NoError(t, Grammar().Validate())
}

func TestGrammarMatchesParser(t *testing.T) {
	g := Grammar()

	// The error the parser reports for a bad atom lists exactly FIRST(AtomicExpression).
	assert.Equal(t, atomicStart(), g.First(RuleAtomic))

	for _, rule := range []string{RuleExpression, RuleAddition, RuleMultiplication, RuleAtomic} {
		assert.Equal(t, g.First(RuleAtomic), g.First(rule), rule)
		assert.False(t, g.Nullable(rule), rule)
	}
	assert.Equal(t, []token.Kind{token.LPAREN}, g.First(RuleParenthesis))
	assert.Equal(t, []token.Kind{token.POWER}, g.First(RulePowerCall))
}

func TestGrammarString(t *testing.T) {
	want := "Expression := AdditionExpression\n" +
		"AdditionExpression := MultiplicationExpression ((+|-) MultiplicationExpression)*\n" +
		"MultiplicationExpression := AtomicExpression ((*|/) AtomicExpression)*\n" +
		"AtomicExpression := ParenthesisExpression | NUMBER | PowerCall\n" +
		"ParenthesisExpression := ( Expression )\n" +
		"PowerCall := power ( Expression , Expression )\n"
	assert.Equal(t, want, Grammar().String())
}
