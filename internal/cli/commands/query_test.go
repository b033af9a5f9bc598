package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	clitest "github.com/leapstack-labs/leapcalc/internal/cli/testutil"
	"github.com/leapstack-labs/leapcalc/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const describedQuery = `{
	"type": "SELECT_STMT",
	"selectClause": {"type": "SELECT_CLAUSE", "columns": ["id", "name"]},
	"fromClause": {"type": "FROM_CLAUSE", "table": "users"},
	"whereClause": {
		"type": "WHERE_CLAUSE",
		"condition": {"type": "EXPRESSION", "lhs": "id", "operator": ">", "rhs": "124"}
	}
}`

func TestQueryCommandJSON(t *testing.T) {
	stdout, stderr, err := execute(t, NewQueryCommand(), "",
		"query", "-o", "json", "SELECT id, name FROM users WHERE id > 124")
	require.NoError(t, err, stderr)
	assert.JSONEq(t, describedQuery, stdout)
}

func TestQueryCommandDefaultQuery(t *testing.T) {
	// No arguments and nothing piped: the configured default is used.
	stdout, stderr, err := execute(t, NewQueryCommand(), "", "query", "-o", "json")
	require.NoError(t, err, stderr)
	assert.JSONEq(t, describedQuery, stdout)
}

func TestQueryCommandNoWhere(t *testing.T) {
	stdout, _, err := execute(t, NewQueryCommand(), "", "query", "-o", "json", "SELECT a FROM t")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.NotContains(t, got, "whereClause")
	assert.Equal(t, "t", got["fromClause"].(map[string]any)["table"])
}

func TestQueryCommandYAML(t *testing.T) {
	stdout, _, err := execute(t, NewQueryCommand(), "", "query", "-o", "yaml", "SELECT a, b FROM t WHERE a < b")
	require.NoError(t, err)
	assert.Contains(t, stdout, "type: SELECT_STMT\n")
	assert.Contains(t, stdout, "selectClause:\n")
	assert.Contains(t, stdout, "operator: <\n")
}

func TestQueryCommandText(t *testing.T) {
	tests := []struct {
		sql  string
		want []string
	}{
		{
			sql:  "SELECT   id,name FROM users WHERE id > 124",
			want: []string{"SELECT id, name FROM users WHERE id > 124\n", "2 columns from users, filtered on id > 124"},
		},
		{
			sql:  "SELECT a FROM t",
			want: []string{"SELECT a FROM t\n", "1 column from t, no filter"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			stdout, _, err := execute(t, NewQueryCommand(), "", "query", "-o", "text", tt.sql)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, stdout, want)
			}
		})
	}
}

func TestQueryCommandMarkdown(t *testing.T) {
	stdout, _, err := execute(t, NewQueryCommand(), "SELECT a, b FROM t\n", "query")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# Query\n")
	assert.Contains(t, stdout, "```sql\n")
	assert.Contains(t, stdout, "## Description\n")
	assert.Contains(t, stdout, "```json\n")
	assert.Contains(t, stdout, `"columns": [`)
	clitest.AssertNoANSI(t, stdout)
}

func TestQueryCommandOut(t *testing.T) {
	file := clitest.WriteFile(t, "query.sql", "SELECT id, name FROM users WHERE id > 124\n")
	out := filepath.Join(t.TempDir(), "result.json")

	_, stderr, err := execute(t, NewQueryCommand(), "", "query", "-o", "text", "-f", file, "--out", out)
	require.NoError(t, err, stderr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, describedQuery, string(data))
	assert.Contains(t, string(data), "\n  \"selectClause\"")

	// The file reads back as the same description.
	var stmt query.Statement
	require.NoError(t, json.Unmarshal(data, &stmt))
	reparsed, err := query.Parse(query.Format(&stmt))
	require.NoError(t, err)
	assert.Equal(t, &stmt, reparsed)
}

func TestQueryCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{"lowercase keyword", "select a FROM t", `parse error at line 1, column 1: expected SELECT, found IDENT "select"`},
		{"missing table", "SELECT a FROM", "parse error at line 1, column 14"},
		{"bad character", "SELECT a FROM t WHERE a = 1", `lexer error at line 1, column 25: unexpected character "="`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := execute(t, NewQueryCommand(), "", "query", tt.sql)
			require.ErrorIs(t, err, ErrReported)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestQueryCommandKeepsComparisonSymbols(t *testing.T) {
	stdout, _, err := execute(t, NewQueryCommand(), "", "query", "-o", "json", "SELECT id FROM users WHERE id > 124")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"operator": ">"`)

	stdout, _, err = execute(t, NewQueryCommand(), "", "query", "-o", "markdown", "SELECT id FROM users WHERE id > 124")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"operator": ">"`)

	out := filepath.Join(t.TempDir(), "result.json")
	_, _, err = execute(t, NewQueryCommand(), "", "query", "-o", "text", "--out", out, "SELECT id FROM users WHERE id < 124")
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"operator": "<"`)
	assert.NotContains(t, string(data), `\u003c`)
}
