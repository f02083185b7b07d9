package statementfile

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/sqlfluent/pkg/client"
)

const sample = `
statements:
  - name: adults
    select: id, name
    from: users
    match:
      - {column: age, op: ">=", value: 18}
    and_where: deleted_at IS NULL
    order_by: [name, id]
    limit: 10
  - name: totals
    select_distinct: ""
    columns:
      - {expr: u.city}
      - {alias: n, expr: COUNT(*)}
    from: [users u, teams t]
    joins:
      - {type: LEFT JOIN, table: posts p, on: p.user_id = u.id}
    group_by: u.city
    having: COUNT(*) > 1
  - insert: roles
    values:
      name: Administrator
      id: admin
      created_at: {raw: CURRENT_TIMESTAMP}
      level: {value: "3", type: INT}
      parent: null
  - update: users
    values:
      active: false
    match:
      - {value: 7}
  - delete: sessions
    where: expires_at < :now
    params:
      now: {value: "2024-01-01", type: STRING}
  - query: SELECT 1
`

func TestParseAndApply(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, f.Statements, 6)

	b := client.New(nil)
	var sqls []string
	for i := range f.Statements {
		sqls = append(sqls, f.Statements[i].Apply(b).GetSQL())
	}

	assert.Equal(t, []string{
		"SELECT id, name FROM users WHERE (age >= :__age1) AND (deleted_at IS NULL) ORDER BY name, id LIMIT 10;",
		"SELECT DISTINCT u.city, COUNT(*) AS n FROM users u LEFT JOIN posts p ON (p.user_id = u.id), teams t GROUP BY u.city HAVING COUNT(*) > 1;",
		"INSERT INTO roles (name, id, created_at, level, parent) VALUES (:_name, :_id, CURRENT_TIMESTAMP, :_level, :_parent);",
		"UPDATE users SET active=:_active;",
		"DELETE FROM sessions WHERE (expires_at < :now);",
		"SELECT 1",
	}, sqls)
}

func TestApply_Bindings(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)
	b := client.New(nil)

	f.Statements[0].Apply(b)
	assert.Equal(t, client.Params{":__age1": {Value: 18, Type: client.ParamString}}, b.GetParams())

	f.Statements[2].Apply(b)
	params := b.GetParams()
	assert.Equal(t, client.Binding{Value: "3", Type: client.ParamInt}, params[":_level"])
	assert.Equal(t, client.Binding{Value: nil, Type: client.ParamNull}, params[":_parent"])
	assert.NotContains(t, params, ":_created_at")

	f.Statements[4].Apply(b)
	assert.Equal(t, client.Params{":now": {Value: "2024-01-01", Type: client.ParamString}}, b.GetParams())
}

func TestParse_Labels(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "adults", f.Statements[0].Label(0))
	assert.Equal(t, "#3", f.Statements[2].Label(2))
	assert.Equal(t, "select_distinct", f.Statements[1].Operation())
	assert.Equal(t, "insert", f.Statements[2].Operation())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "statements: []", "no statements"},
		{"no operation", "statements: [{where: a = 1}]", "no operation set"},
		{"two operations", "statements: [{delete: a, update: b}]", "more than one operation set: delete, update"},
		{"where with match", "statements: [{delete: a, where: x, match: [{value: 1}]}]", "where and match"},
		{"values on select", "statements: [{select: '*', values: {a: 1}}]", "values are not allowed"},
		{"columns on delete", "statements: [{delete: a, columns: [{expr: x}]}]", "columns are not allowed"},
		{"values not mapping", "statements: [{insert: a, values: [1]}]", "values must be a mapping"},
		{"bad mapping value", "statements: [{insert: a, values: {x: {foo: 1}}}]", "needs raw or type"},
		{"invalid yaml", "statements: [", "invalid yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "stmts.yaml", []byte(sample), 0o644))

	f, err := Load(fs, "stmts.yaml")
	require.NoError(t, err)
	assert.Len(t, f.Statements, 6)

	_, err = Load(fs, "missing.yaml")
	assert.Error(t, err)
}
