package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJobs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		prefixes []string
		want     []Job
	}{
		{
			name:  "plain lines",
			input: "1 + 2\n3 * 4\n",
			want:  []Job{{Line: 1, Input: "1 + 2"}, {Line: 2, Input: "3 * 4"}},
		},
		{
			name:     "blank and comment lines keep numbering",
			input:    "# header\n\n  2 plus 2  \n-- sql comment\nSELECT a FROM t",
			prefixes: []string{"#", "--"},
			want:     []Job{{Line: 3, Input: "2 plus 2"}, {Line: 5, Input: "SELECT a FROM t"}},
		},
		{
			name:     "empty prefix ignored",
			input:    "1\n",
			prefixes: []string{""},
			want:     []Job{{Line: 1, Input: "1"}},
		},
		{
			name:  "crlf",
			input: "1\r\n2\r\n",
			want:  []Job{{Line: 1, Input: "1"}, {Line: 2, Input: "2"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadJobs(strings.NewReader(tt.input), tt.prefixes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadJobsLineTooLong(t *testing.T) {
	long := strings.Repeat("1", maxLineSize+1)
	_, err := ReadJobs(strings.NewReader("1\n"+long), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading line 2")
}

func makeJobs(n int) []Job {
	jobs := make([]Job, n)
	for i := range jobs {
		jobs[i] = Job{Line: i + 1, Input: fmt.Sprint(i)}
	}
	return jobs
}

func TestRunPreservesOrder(t *testing.T) {
	jobs := makeJobs(50)

	out, err := Run(context.Background(), jobs, 8, func(_ context.Context, j Job) (string, error) {
		// Later jobs finish first.
		time.Sleep(time.Duration(50-j.Line) * 100 * time.Microsecond)
		return "r" + j.Input, nil
	})
	require.NoError(t, err)
	require.Len(t, out, 50)
	for i, o := range out {
		assert.Equal(t, jobs[i], o.Job)
		assert.Equal(t, fmt.Sprintf("r%d", i), o.Value)
		assert.NoError(t, o.Err)
	}
}

func TestRunBoundsWorkers(t *testing.T) {
	var running, peak atomic.Int32

	_, err := Run(context.Background(), makeJobs(40), 3, func(_ context.Context, _ Job) (struct{}, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		running.Add(-1)
		return struct{}{}, nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Positive(t, peak.Load())
}

func TestRunFailuresDoNotAbort(t *testing.T) {
	boom := errors.New("boom")

	out, err := Run(context.Background(), makeJobs(10), 2, func(_ context.Context, j Job) (int, error) {
		if j.Line%3 == 0 {
			return 0, boom
		}
		return j.Line * 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, Failed(out))
	for _, o := range out {
		if o.Job.Line%3 == 0 {
			assert.ErrorIs(t, o.Err, boom)
			continue
		}
		assert.Equal(t, o.Job.Line*2, o.Value)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	out, err := Run(ctx, makeJobs(5), 2, func(_ context.Context, _ Job) (int, error) {
		calls.Add(1)
		return 1, nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
	assert.Equal(t, 5, Failed(out))
}

func TestRunZeroWorkers(t *testing.T) {
	out, err := Run(context.Background(), makeJobs(3), 0, func(_ context.Context, j Job) (int, error) {
		return j.Line, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, Failed(out))
	assert.Equal(t, 3, out[2].Value)
}
