package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	"github.com/leapstack-labs/leapcalc/internal/engine"
	"github.com/leapstack-labs/leapcalc/pkg/query"
	"github.com/spf13/cobra"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	File        string
	Watch       bool
	Out         string
	Interactive bool
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL...]",
		Short: "Parse a SELECT statement into its description",
		Long: `Parse a statement of the SELECT subset and print its description.

The language has a single statement:

  SELECT col, ... FROM table [WHERE operand (<|>) operand]

Keywords are upper case. Operands are identifiers or integers. The
statement is parsed, never executed.

The statement is taken from the arguments, from --file, or from piped
stdin, and falls back to the configured default query.`,
		Example: `  # Describe a query
  leapcalc query "SELECT id, name FROM users WHERE id > 124"

  # Save the description as JSON
  leapcalc query --out result.json "SELECT a FROM t"

  # YAML on stdout
  leapcalc query -o yaml "SELECT a, b FROM t WHERE a < b"

  # Interactive session
  leapcalc query -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read the statement from a file")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-parse --file whenever it changes")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Also write the description as JSON to this file")
	cmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false, "Start an interactive session")
	cmd.Flags().Duration("debounce", 0, "Delay before re-parsing a changed file")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	cmdCtx := NewCommandContext(cmd)
	if opts.Interactive {
		return runREPL(cmd, cmdCtx, engine.LangQuery)
	}
	if opts.Watch && opts.File == "" {
		return errors.New("--watch requires --file")
	}

	out := cmdCtx.Cfg.Query.Out
	if opts.Out != "" {
		out = opts.Out
	}

	src, err := readSource(cmd, args, opts.File)
	if err != nil {
		return err
	}
	text := src.text
	if src.repl || text == "" {
		text = cmdCtx.Cfg.Query.Default
		cmdCtx.Logger.Debug("using default query", "sql", text)
	}

	err = queryAndRender(cmdCtx, text, out)
	if !opts.Watch {
		return err
	}
	return watchFile(cmd, cmdCtx, src.file, func(text string) {
		_ = queryAndRender(cmdCtx, text, out)
	})
}

func queryAndRender(cmdCtx *CommandContext, text, out string) error {
	start := time.Now()
	res, err := cmdCtx.Engine.Query(text)
	if err != nil {
		return reportError(cmdCtx.Renderer, text, err)
	}

	if out != "" {
		if err := writeDescription(out, res.Statement); err != nil {
			return err
		}
		cmdCtx.Logger.Debug("wrote query description", "path", out, "elapsed", time.Since(start))
	}
	return renderQuery(cmdCtx.Renderer, res)
}

// encodeDescription returns stmt as indented JSON. Comparison operators are
// written as-is, not as HTML escapes.
func encodeDescription(stmt *query.Statement) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(stmt); err != nil {
		return nil, fmt.Errorf("failed to encode description: %w", err)
	}
	return buf.Bytes(), nil
}

// writeDescription writes stmt as indented JSON.
func writeDescription(path string, stmt *query.Statement) error {
	data, err := encodeDescription(stmt)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // output is meant to be shared
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func renderQuery(r *output.Renderer, res *engine.QueryResult) error {
	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		return r.Data(res.Statement)
	case output.ModeMarkdown:
		data, err := encodeDescription(res.Statement)
		if err != nil {
			return err
		}
		r.Println(output.FormatHeader(1, "Query"))
		r.Println("")
		r.Println(output.FormatCodeBlock("sql", query.Pretty(res.Statement)))
		r.Println("")
		r.Println(output.FormatHeader(2, "Description"))
		r.Println("")
		r.Println(output.FormatCodeBlock("json", string(data)))
	default:
		r.Println(r.Styles().Value.Render(res.SQL))
		r.Muted(summarize(res.Statement))
	}
	return nil
}

// summarize describes stmt in one line.
func summarize(stmt *query.Statement) string {
	s := fmt.Sprintf("%s from %s", pluralize(len(stmt.Select.Columns), "column"), stmt.From.Table)
	if stmt.Where == nil {
		return s + ", no filter"
	}
	c := stmt.Where.Condition
	return fmt.Sprintf("%s, filtered on %s %s %s", s, c.LHS, c.Operator, c.RHS)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
