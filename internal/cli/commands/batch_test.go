package commands

import (
	"encoding/json"
	"strings"
	"testing"

	clitest "github.com/leapstack-labs/leapcalc/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const batchInput = `# arithmetic checks
2 + 3 * 4

(2 + 3) * 4
one plus two
2 +
power(2, 10)
`

func TestBatchCommand(t *testing.T) {
	file := clitest.WriteFile(t, "exprs.txt", batchInput)

	stdout, stderr, err := execute(t, NewBatchCommand(), "", "batch", "--workers", "2", file)
	require.ErrorIs(t, err, ErrReported)

	assert.Contains(t, stdout, "# Batch Results\n")
	assert.Contains(t, stdout, "| 2 | 2 + 3 * 4 | 14 |")
	assert.Contains(t, stdout, "| 4 | (2 + 3) * 4 | 20 |")
	assert.Contains(t, stdout, "| 5 | one plus two | 3 |")
	assert.Contains(t, stdout, "| 6 | 2 + | error: parse error at line 1, column 4")
	assert.Contains(t, stdout, "| 7 | power(2, 10) | 1024 |")
	assert.NotContains(t, stdout, "arithmetic checks")
	assert.Contains(t, stderr, "1 of 5 programs failed")

	// Results keep file order.
	assert.Less(t, indexOf(t, stdout, "| 2 |"), indexOf(t, stdout, "| 7 |"))
}

func TestBatchCommandAllSucceed(t *testing.T) {
	file := clitest.WriteFile(t, "queries.sql", "SELECT a FROM t\nSELECT id, name FROM users WHERE id > 124\n")

	stdout, stderr, err := execute(t, NewBatchCommand(), "", "batch", "--lang", "query", file)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "| 1 | SELECT a FROM t | SELECT a FROM t |")
	assert.Contains(t, stdout, "✓ 2 programs ran")
}

func TestBatchCommandJSONFromStdin(t *testing.T) {
	stdout, _, err := execute(t, NewBatchCommand(), "1 + 1\n2 $ 2\n", "batch", "-o", "json", "-")
	require.ErrorIs(t, err, ErrReported)

	var lines []struct {
		Line   int            `json:"line"`
		Input  string         `json:"input"`
		Result map[string]any `json:"result"`
		Error  map[string]any `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &lines), stdout)
	require.Len(t, lines, 2)

	assert.Equal(t, 1, lines[0].Line)
	assert.Equal(t, "calc", lines[0].Result["lang"])
	assert.Equal(t, "2", lines[0].Result["eval"].(map[string]any)["display"])
	assert.Nil(t, lines[0].Error)

	assert.Equal(t, 2, lines[1].Line)
	assert.Nil(t, lines[1].Result)
	assert.Equal(t, "lex", lines[1].Error["kind"])
	assert.InDelta(t, 3.0, lines[1].Error["column"], 0)
}

func TestBatchCommandErrors(t *testing.T) {
	_, _, err := execute(t, NewBatchCommand(), "", "batch", "missing.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open batch file")

	_, _, err = execute(t, NewBatchCommand(), "", "batch", "--lang", "fortran", "-")
	require.Error(t, err)

	_, _, err = execute(t, NewBatchCommand(), "", "batch")
	require.Error(t, err)
}

func indexOf(t *testing.T, s, substr string) int {
	t.Helper()
	i := strings.Index(s, substr)
	if i < 0 {
		t.Fatalf("%q not found in %s", substr, s)
	}
	return i
}
