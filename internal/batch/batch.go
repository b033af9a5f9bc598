// Package batch evaluates many independent inputs concurrently with a bounded
// number of workers and reports the outcomes in input order.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// Job is one input line.
type Job struct {
	Line  int    // 1-based line number in the source
	Input string // trimmed text
}

// ReadJobs reads one job per line from r. Blank lines and lines starting
// with one of commentPrefixes are skipped; line numbers still count them.
func ReadJobs(r io.Reader, commentPrefixes []string) ([]Job, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var jobs []Job
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || isComment(text, commentPrefixes) {
			continue
		}
		jobs = append(jobs, Job{Line: line, Input: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading line %d: %w", line+1, err)
	}
	return jobs, nil
}

func isComment(text string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}

// Outcome is the result of one job. Err is set when the job failed.
type Outcome[T any] struct {
	Job   Job
	Value T
	Err   error
}

// Func processes one job.
type Func[T any] func(ctx context.Context, job Job) (T, error)

// Run applies fn to every job using at most workers goroutines. Outcomes are
// returned in job order. A failing job never stops the others; only
// cancellation of ctx does, in which case the unstarted jobs carry ctx's
// error and Run returns it.
func Run[T any](ctx context.Context, jobs []Job, workers int, fn Func[T]) ([]Outcome[T], error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]Outcome[T], len(jobs))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, job := range jobs {
		out[i].Job = job
		if err := egctx.Err(); err != nil {
			out[i].Err = err
			continue
		}
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}
			out[i].Value, out[i].Err = fn(egctx, job)
			return nil
		})
	}

	_ = eg.Wait()
	return out, ctx.Err()
}

// Failed counts the outcomes that carry an error.
func Failed[T any](outcomes []Outcome[T]) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
