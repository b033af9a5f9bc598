// Package calc implements a small arithmetic language: a lexer, a
// precedence-aware recursive-descent parser producing a concrete syntax tree,
// and a tree-walking evaluator.
//
// # Usage
//
//	v, err := calc.Evaluate("2 + 3 * 4", calc.DefaultOptions())
//	// v == 14
//
// Each stage can also be driven separately:
//
//	tokens, err := calc.NewLexer(input, opts).Tokenize()
//	expr, err := calc.NewParser(tokens).Parse()
//	v := calc.Eval(expr)
//
// # Grammar
//
//	Expression               → AdditionExpression
//	AdditionExpression       → MultiplicationExpression ((+|-) MultiplicationExpression)*
//	MultiplicationExpression → AtomicExpression ((*|/) AtomicExpression)*
//	AtomicExpression         → ParenthesisExpression | NUMBER | PowerCall
//	ParenthesisExpression    → ( Expression )
//	PowerCall                → power ( Expression , Expression )
//
// Operators accept word aliases (plus, minus, times, by) and number literals
// accept the words zero through nine unless Options.Words is false.
package calc

import "github.com/leapstack-labs/leapcalc/pkg/token"

// Options selects the lexicon accepted by the lexer.
type Options struct {
	// Words enables the spelled-out lexicon: plus, minus, times, by and the
	// number words zero..nine. The power keyword is always accepted.
	Words bool
}

// DefaultOptions returns the options with the word lexicon enabled.
func DefaultOptions() Options {
	return Options{Words: true}
}

// Tokenize returns all tokens of input, ending with EOF.
func Tokenize(input string, opts Options) ([]token.Token, error) {
	return NewLexer(input, opts).Tokenize()
}

// Parse tokenizes and parses input into a syntax tree.
func Parse(input string, opts Options) (*Expression, error) {
	tokens, err := Tokenize(input, opts)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// Evaluate parses input and returns its numeric value.
func Evaluate(input string, opts Options) (float64, error) {
	expr, err := Parse(input, opts)
	if err != nil {
		return 0, err
	}
	return Eval(expr), nil
}
