package calc_test

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapcalc/pkg/calc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	starmath "go.starlark.net/lib/math"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// exprGen builds the same random expression twice: once in calc syntax and
// once as Starlark, whose arithmetic serves as the reference evaluator.
type exprGen struct {
	rng *rand.Rand
}

func (g *exprGen) expr(depth int) (string, string) {
	n := 1 + g.rng.IntN(3)
	var calcSrc, starSrc strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			op := "+-"[g.rng.IntN(2)]
			fmt.Fprintf(&calcSrc, " %c ", op)
			fmt.Fprintf(&starSrc, " %c ", op)
		}
		c, s := g.term(depth)
		calcSrc.WriteString(c)
		starSrc.WriteString(s)
	}
	return calcSrc.String(), starSrc.String()
}

func (g *exprGen) term(depth int) (string, string) {
	n := 1 + g.rng.IntN(3)
	var calcSrc, starSrc strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			op := "*/"[g.rng.IntN(2)]
			fmt.Fprintf(&calcSrc, " %c ", op)
			fmt.Fprintf(&starSrc, " %c ", op)
		}
		c, s := g.atom(depth)
		calcSrc.WriteString(c)
		starSrc.WriteString(s)
	}
	return calcSrc.String(), starSrc.String()
}

func (g *exprGen) atom(depth int) (string, string) {
	choice := 0
	if depth > 0 {
		choice = g.rng.IntN(3)
	}
	switch choice {
	case 1:
		c, s := g.expr(depth - 1)
		return "(" + c + ")", "(" + s + ")"
	case 2:
		c, s := g.expr(depth - 1)
		exp := g.rng.IntN(4)
		return fmt.Sprintf("power(%s, %d)", c, exp), fmt.Sprintf("math.pow(%s, %d)", s, exp)
	default:
		lit := fmt.Sprint(1 + g.rng.IntN(9))
		return lit, lit
	}
}

func starlarkEval(t *testing.T, src string) (float64, error) {
	t.Helper()
	thread := &starlark.Thread{Name: "oracle"}
	env := starlark.StringDict{"math": starmath.Module}
	v, err := starlark.EvalOptions(&syntax.FileOptions{}, thread, "oracle", src, env)
	if err != nil {
		return 0, err
	}
	f, ok := starlark.AsFloat(v)
	require.True(t, ok, "starlark returned %s for %s", v.Type(), src)
	return f, nil
}

func TestEvaluateAgreesWithStarlark(t *testing.T) {
	gen := &exprGen{rng: rand.New(rand.NewPCG(7, 11))}

	checked := 0
	for i := 0; i < 500; i++ {
		calcSrc, starSrc := gen.expr(2)

		want, err := starlarkEval(t, starSrc)
		if err != nil {
			// Starlark rejects division by zero where float64 yields Inf or NaN.
			continue
		}

		got, err := calc.Evaluate(calcSrc, calc.DefaultOptions())
		require.NoError(t, err, calcSrc)

		if math.IsInf(want, 0) || math.IsNaN(want) {
			continue
		}
		tol := 1e-9 * math.Max(1, math.Abs(want))
		assert.InDelta(t, want, got, tol, "calc: %s\nstarlark: %s", calcSrc, starSrc)
		checked++
	}
	assert.Greater(t, checked, 200)
}
