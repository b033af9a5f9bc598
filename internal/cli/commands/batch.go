package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/leapstack-labs/leapcalc/internal/batch"
	"github.com/leapstack-labs/leapcalc/internal/cli/output"
	"github.com/leapstack-labs/leapcalc/internal/engine"
	"github.com/spf13/cobra"
)

// BatchOptions holds options for the batch command.
type BatchOptions struct {
	Lang    string
	Workers int
}

// batchLine is the structured form of one batch outcome.
type batchLine struct {
	Line   int               `json:"line" yaml:"line"`
	Input  string            `json:"input" yaml:"input"`
	Result *engine.Result    `json:"result,omitempty" yaml:"result,omitempty"`
	Error  *engine.ErrorInfo `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	opts := &BatchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Run every line of a file as a separate program",
		Long: `Run every non-empty line of a file as an independent program.

Lines run concurrently, bounded by --workers, and results are printed in
file order. Lines starting with a comment prefix (# by default) are
skipped. A failing line does not stop the others; the command exits
non-zero if any line failed. Use - to read from stdin.`,
		Example: `  leapcalc batch expressions.txt
  leapcalc batch --lang query --workers 8 queries.sql
  cat expressions.txt | leapcalc batch -o json -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := engine.ParseLanguage(opts.Lang)
			if err != nil {
				return err
			}
			return runBatch(cmd, args[0], lang, opts.Workers)
		},
	}

	cmd.Flags().StringVar(&opts.Lang, "lang", string(engine.LangCalc), "Language: calc or query")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Maximum concurrent programs (default from config)")
	_ = cmd.RegisterFlagCompletionFunc("lang", completeLanguages)

	return cmd
}

func runBatch(cmd *cobra.Command, path string, lang engine.Language, workers int) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	jobs, err := readBatchJobs(cmd, path, cmdCtx.Cfg.Batch.CommentPrefixes)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	start := time.Now()
	if workers <= 0 {
		workers = cmdCtx.Cfg.Batch.Workers
	}
	outcomes, err := batch.Run(ctx, jobs, workers, func(_ context.Context, job batch.Job) (*engine.Result, error) {
		return cmdCtx.Engine.Run(lang, job.Input)
	})
	if err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}
	failed := batch.Failed(outcomes)
	cmdCtx.Logger.Debug("batch finished",
		"programs", len(outcomes),
		"failed", failed,
		"workers", workers,
		"elapsed", time.Since(start))

	if err := renderBatch(r, outcomes); err != nil {
		return err
	}
	if failed > 0 {
		if !r.Structured() {
			r.Error(fmt.Sprintf("%d of %d programs failed", failed, len(outcomes)))
		}
		return ErrReported
	}
	if !r.Structured() {
		r.Success(fmt.Sprintf("%s programs ran", output.FormatCount(len(outcomes))))
	}
	return nil
}

func readBatchJobs(cmd *cobra.Command, path string, commentPrefixes []string) ([]batch.Job, error) {
	var in io.Reader
	if path == "-" {
		in = cmd.InOrStdin()
	} else {
		f, err := os.Open(path) //nolint:gosec // path comes from the user
		if err != nil {
			return nil, fmt.Errorf("failed to open batch file: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}
	jobs, err := batch.ReadJobs(in, commentPrefixes)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return jobs, nil
}

func renderBatch(r *output.Renderer, outcomes []batch.Outcome[*engine.Result]) error {
	if r.Structured() {
		lines := make([]batchLine, len(outcomes))
		for i, o := range outcomes {
			lines[i] = batchLine{Line: o.Job.Line, Input: o.Job.Input, Result: o.Value}
			if o.Err != nil {
				info := engine.DescribeError(o.Err)
				lines[i].Error = &info
			}
		}
		return r.Data(lines)
	}

	rows := make([][]string, len(outcomes))
	for i, o := range outcomes {
		var result string
		if o.Err != nil {
			result = "error: " + o.Err.Error()
		} else {
			result = o.Value.Summary()
		}
		rows[i] = []string{strconv.Itoa(o.Job.Line), o.Job.Input, result}
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Batch results"))
		r.Println("")
	}
	r.Table([]string{"Line", "Input", "Result"}, rows)
	return nil
}
