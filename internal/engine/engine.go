// Package engine runs programs of both languages on behalf of the CLI, the
// batch runner and the HTTP server. It turns the pure results of pkg/calc
// and pkg/query into serializable records and logs what it does.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapcalc/pkg/calc"
	"github.com/leapstack-labs/leapcalc/pkg/numword"
	"github.com/leapstack-labs/leapcalc/pkg/query"
	"github.com/leapstack-labs/leapcalc/pkg/token"
)

// Language names one of the two input languages.
type Language string

// Supported languages.
const (
	LangCalc  Language = "calc"
	LangQuery Language = "query"
)

// Languages returns the accepted language names.
func Languages() []string {
	return []string{string(LangCalc), string(LangQuery)}
}

// ParseLanguage parses a language name, case-insensitively.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LangCalc:
		return LangCalc, nil
	case LangQuery:
		return LangQuery, nil
	}
	return "", fmt.Errorf("unknown language %q (want calc or query)", s)
}

// Engine evaluates arithmetic programs and parses queries.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	opts   calc.Options
	spell  bool
	logger *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// Calc selects the arithmetic lexicon.
	Calc calc.Options
	// Spell adds the English spelling of each arithmetic result.
	Spell bool
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		opts:   cfg.Calc,
		spell:  cfg.Spell,
		logger: logger,
	}
}

// Words reports whether arithmetic accepts word operators and number words.
func (e *Engine) Words() bool { return e.opts.Words }

// Spells reports whether arithmetic results carry their English spelling.
func (e *Engine) Spells() bool { return e.spell }

// EvalResult is the outcome of evaluating one arithmetic program.
type EvalResult struct {
	Input string `json:"input" yaml:"input"`
	// Value is nil when the result is not finite; JSON has no NaN or Inf.
	Value   *float64 `json:"value" yaml:"value"`
	Display string   `json:"display" yaml:"display"`
	Words   string   `json:"words,omitempty" yaml:"words,omitempty"`
}

// Eval evaluates an arithmetic program.
func (e *Engine) Eval(input string) (*EvalResult, error) {
	v, err := calc.Evaluate(input, e.opts)
	if err != nil {
		e.logger.Debug("evaluation failed", "input", input, "error", err)
		return nil, err
	}

	res := &EvalResult{
		Input:   input,
		Display: FormatNumber(v),
	}
	if !math.IsInf(v, 0) && !math.IsNaN(v) {
		res.Value = &v
	}
	if e.spell {
		words, err := numword.Spell(v)
		if err != nil {
			e.logger.Debug("cannot spell result", "value", res.Display, "error", err)
		}
		res.Words = words
	}

	e.logger.Debug("evaluated", "input", input, "value", res.Display)
	return res, nil
}

// FormatNumber renders v in the shortest form that reads back exactly.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// QueryResult is the outcome of parsing one query.
type QueryResult struct {
	Input     string           `json:"input" yaml:"input"`
	Statement *query.Statement `json:"ast" yaml:"ast"`
	SQL       string           `json:"sql" yaml:"sql"`
}

// Query parses a query and builds its description.
func (e *Engine) Query(input string) (*QueryResult, error) {
	stmt, err := query.Parse(input)
	if err != nil {
		e.logger.Debug("query failed", "input", input, "error", err)
		return nil, err
	}

	res := &QueryResult{
		Input:     input,
		Statement: stmt,
		SQL:       query.Format(stmt),
	}
	e.logger.Debug("parsed query", "table", stmt.From.Table, "columns", len(stmt.Select.Columns))
	return res, nil
}

// TokenInfo describes one token for display.
type TokenInfo struct {
	Kind    string `json:"kind" yaml:"kind"`
	Tier    string `json:"tier,omitempty" yaml:"tier,omitempty"`
	Literal string `json:"literal" yaml:"literal"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

// Tokens tokenizes input in the given language. The trailing EOF is included.
func (e *Engine) Tokens(lang Language, input string) ([]TokenInfo, error) {
	var (
		toks []token.Token
		err  error
	)
	switch lang {
	case LangCalc:
		toks, err = calc.Tokenize(input, e.opts)
	case LangQuery:
		toks, err = query.Tokenize(input)
	default:
		return nil, fmt.Errorf("unknown language %q", lang)
	}
	if err != nil {
		return nil, err
	}

	infos := make([]TokenInfo, len(toks))
	for i, t := range toks {
		info := TokenInfo{
			Kind:    t.Kind.String(),
			Literal: t.Literal,
			Line:    t.Pos.Line,
			Column:  t.Pos.Column,
		}
		if tier := t.Kind.Tier(); tier != token.TierNone {
			info.Tier = tier.String()
		}
		infos[i] = info
	}
	return infos, nil
}

// Result is the outcome of running a program of either language.
// Exactly one of Eval and Query is set.
type Result struct {
	Lang  Language     `json:"lang" yaml:"lang"`
	Eval  *EvalResult  `json:"eval,omitempty" yaml:"eval,omitempty"`
	Query *QueryResult `json:"query,omitempty" yaml:"query,omitempty"`
}

// Summary returns the one-line rendering of the result.
func (r *Result) Summary() string {
	switch {
	case r.Eval != nil && r.Eval.Words != "":
		return r.Eval.Display + " (" + r.Eval.Words + ")"
	case r.Eval != nil:
		return r.Eval.Display
	case r.Query != nil:
		return r.Query.SQL
	}
	return ""
}

// Run dispatches input to the given language.
func (e *Engine) Run(lang Language, input string) (*Result, error) {
	switch lang {
	case LangCalc:
		res, err := e.Eval(input)
		if err != nil {
			return nil, err
		}
		return &Result{Lang: lang, Eval: res}, nil
	case LangQuery:
		res, err := e.Query(input)
		if err != nil {
			return nil, err
		}
		return &Result{Lang: lang, Query: res}, nil
	}
	return nil, fmt.Errorf("unknown language %q", lang)
}

// Error kinds reported by DescribeError.
const (
	ErrorKindLex      = "lex"
	ErrorKindParse    = "parse"
	ErrorKindInternal = "internal"
)

// ErrorInfo is the serializable description of a failed run.
type ErrorInfo struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"error" yaml:"error"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
	Offset  int    `json:"offset,omitempty" yaml:"offset,omitempty"`
}

// DescribeError classifies err. Lexer and parser errors carry their position.
func DescribeError(err error) ErrorInfo {
	info := ErrorInfo{Kind: ErrorKindInternal, Message: err.Error()}

	var lexErr *token.LexError
	var parseErr *token.ParseError
	switch {
	case errors.As(err, &lexErr):
		info.Kind = ErrorKindLex
		info.Line, info.Column, info.Offset = lexErr.Pos.Line, lexErr.Pos.Column, lexErr.Pos.Offset
	case errors.As(err, &parseErr):
		info.Kind = ErrorKindParse
		info.Line, info.Column, info.Offset = parseErr.Pos.Line, parseErr.Pos.Column, parseErr.Pos.Offset
	}
	return info
}

// Position returns the source position of a lexer or parser error.
func Position(err error) (token.Position, bool) {
	var lexErr *token.LexError
	if errors.As(err, &lexErr) {
		return lexErr.Pos, true
	}
	var parseErr *token.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Pos, true
	}
	return token.Position{}, false
}

// SourceLine returns the line of src holding pos and a marker line with a
// caret under pos. Tabs before pos are kept so the caret lines up.
func SourceLine(src string, pos token.Position) (line, marker string) {
	lines := strings.Split(src, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return "", ""
	}
	line = strings.TrimSuffix(lines[pos.Line-1], "\r")

	prefix := line
	if col := pos.Column - 1; col < len(line) {
		prefix = line[:max(col, 0)]
	}
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	return line, b.String()
}
