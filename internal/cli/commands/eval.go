package commands

import (
	"errors"

	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	"github.com/leapstack-labs/leapcalc/internal/engine"
	"github.com/leapstack-labs/leapcalc/internal/watch"
	"github.com/spf13/cobra"
)

// EvalOptions holds options for the eval command.
type EvalOptions struct {
	File        string
	Watch       bool
	Spell       bool
	SymbolsOnly bool
}

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate an arithmetic expression",
		Long: `Evaluate an arithmetic expression.

Operators may be written as symbols or words (plus, minus, times, by) and
the digits zero to nine may be spelled out. power(a, b) raises a to b.
Multiplication and division bind tighter than addition and subtraction.

The expression is taken from the arguments, from --file, or from piped
stdin. Without any of them on a terminal an interactive session starts.`,
		Example: `  # Symbols and words mix freely
  leapcalc eval "2 + 3 times four"

  # Spell the result out
  leapcalc eval --spell "power(2, 10)"

  # Re-evaluate a file whenever it changes
  leapcalc eval --watch -f expr.txt

  # Interactive session
  leapcalc eval`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read the expression from a file")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-evaluate --file whenever it changes")
	cmd.Flags().BoolVar(&opts.Spell, "spell", false, "Also print the result in words")
	cmd.Flags().BoolVar(&opts.SymbolsOnly, "symbols-only", false, "Accept operator and digit symbols only")
	cmd.Flags().Duration("debounce", 0, "Delay before re-evaluating a changed file")

	return cmd
}

func runEval(cmd *cobra.Command, args []string, opts *EvalOptions) error {
	cmdCtx := NewCommandContext(cmd)
	if opts.SymbolsOnly || opts.Spell {
		words := cmdCtx.Cfg.Calc.Words && !opts.SymbolsOnly
		spell := cmdCtx.Cfg.Calc.Spell || opts.Spell
		cmdCtx.Engine = newEngine(cmdCtx.Cfg, cmdCtx.Logger, words, spell)
	}

	if opts.Watch && opts.File == "" {
		return errors.New("--watch requires --file")
	}

	src, err := readSource(cmd, args, opts.File)
	if err != nil {
		return err
	}
	if src.repl {
		return runREPL(cmd, cmdCtx, engine.LangCalc)
	}

	err = evalAndRender(cmdCtx, src.text)
	if !opts.Watch {
		return err
	}
	return watchFile(cmd, cmdCtx, src.file, func(text string) {
		_ = evalAndRender(cmdCtx, text)
	})
}

func evalAndRender(cmdCtx *CommandContext, text string) error {
	res, err := cmdCtx.Engine.Eval(text)
	if err != nil {
		return reportError(cmdCtx.Renderer, text, err)
	}
	return renderEval(cmdCtx.Renderer, res)
}

func renderEval(r *output.Renderer, res *engine.EvalResult) error {
	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		return r.Data(res)
	case output.ModeMarkdown:
		r.Println(output.FormatKeyValue("Expression", "`"+res.Input+"`"))
		r.Println(output.FormatKeyValue("Result", res.Display))
		if res.Words != "" {
			r.Println(output.FormatKeyValue("Words", res.Words))
		}
	default:
		r.Println(r.Styles().Value.Render(res.Display))
		if res.Words != "" {
			r.Muted(res.Words)
		}
	}
	return nil
}

// watchFile re-runs fn with the file's content after every change until the
// command is interrupted.
func watchFile(cmd *cobra.Command, cmdCtx *CommandContext, path string, fn func(text string)) error {
	w, err := watch.New(path, cmdCtx.Cfg.Watch.Debounce, cmdCtx.Logger)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	cmdCtx.Logger.Info("watching for changes", "path", w.Path())
	return w.Run(ctx, func() {
		text, err := readFile(w.Path())
		if err != nil {
			cmdCtx.Renderer.Error(err.Error())
			return
		}
		fn(text)
	})
}
