package query

import (
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/leapcalc/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Statement
	}{
		{
			name:  "default query",
			input: "SELECT id, name FROM users WHERE id > 124",
			want: &Statement{
				Type:   TypeSelectStmt,
				Select: Select{Type: TypeSelectClause, Columns: []string{"id", "name"}},
				From:   From{Type: TypeFromClause, Table: "users"},
				Where: &Where{
					Type:      TypeWhereClause,
					Condition: Condition{Type: TypeExpression, LHS: "id", Operator: ">", RHS: "124"},
				},
			},
		},
		{
			name:  "no where",
			input: "SELECT a FROM t",
			want: &Statement{
				Type:   TypeSelectStmt,
				Select: Select{Type: TypeSelectClause, Columns: []string{"a"}},
				From:   From{Type: TypeFromClause, Table: "t"},
			},
		},
		{
			name:  "integers on both sides",
			input: "SELECT a FROM t WHERE 1 < 2",
			want: &Statement{
				Type:   TypeSelectStmt,
				Select: Select{Type: TypeSelectClause, Columns: []string{"a"}},
				From:   From{Type: TypeFromClause, Table: "t"},
				Where: &Where{
					Type:      TypeWhereClause,
					Condition: Condition{Type: TypeExpression, LHS: "1", Operator: "<", RHS: "2"},
				},
			},
		},
		{
			name:  "identifiers on both sides",
			input: "SELECT x, y, z FROM points WHERE x < y",
			want: &Statement{
				Type:   TypeSelectStmt,
				Select: Select{Type: TypeSelectClause, Columns: []string{"x", "y", "z"}},
				From:   From{Type: TypeFromClause, Table: "points"},
				Where: &Where{
					Type:      TypeWhereClause,
					Condition: Condition{Type: TypeExpression, LHS: "x", Operator: "<", RHS: "y"},
				},
			},
		},
		{
			name:  "keyword-like identifiers",
			input: "SELECT select, FROMAGE FROM WHEREABOUTS",
			want: &Statement{
				Type:   TypeSelectStmt,
				Select: Select{Type: TypeSelectClause, Columns: []string{"select", "FROMAGE"}},
				From:   From{Type: TypeFromClause, Table: "WHEREABOUTS"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatementJSON(t *testing.T) {
	stmt, err := Parse("SELECT id, name FROM users WHERE id > 124")
	require.NoError(t, err)

	data, err := json.Marshal(stmt)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "SELECT_STMT",
		"selectClause": {"type": "SELECT_CLAUSE", "columns": ["id", "name"]},
		"fromClause": {"type": "FROM_CLAUSE", "table": "users"},
		"whereClause": {
			"type": "WHERE_CLAUSE",
			"condition": {"type": "EXPRESSION", "lhs": "id", "operator": ">", "rhs": "124"}
		}
	}`, string(data))
}

func TestStatementJSONOmitsAbsentWhere(t *testing.T) {
	stmt, err := Parse("SELECT a FROM t")
	require.NoError(t, err)

	data, err := json.Marshal(stmt)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "whereClause")
	assert.Contains(t, fields, "selectClause")
}

func TestStatementYAML(t *testing.T) {
	stmt, err := Parse("SELECT a FROM t WHERE a > 1")
	require.NoError(t, err)

	data, err := yaml.Marshal(stmt)
	require.NoError(t, err)
	assert.Contains(t, string(data), "selectClause:")
	assert.Contains(t, string(data), "lhs: a")

	var back Statement
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, stmt, &back)
}

func TestBuildPanicsOnForeignNode(t *testing.T) {
	assert.Panics(t, func() { build(nil) })
	assert.Panics(t, func() { build(foreign{}) })
}

type foreign struct{}

func (foreign) Pos() token.Position { return token.Position{} }
func (foreign) node()               {}
