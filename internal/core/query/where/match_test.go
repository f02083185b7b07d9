package where

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/sqlfluent/internal/core/query/binder"
	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
)

type tableSchemas map[string]*domain.TableSchema

func (s tableSchemas) Describe(_ context.Context, table string) (*domain.TableSchema, error) {
	t, ok := s[table]
	if !ok {
		return nil, domain.ErrSchemaUnavailable
	}
	return t, nil
}

func (s tableSchemas) Column(ctx context.Context, table, column string) (domain.ColumnType, bool) {
	t, err := s.Describe(ctx, table)
	if err != nil {
		return domain.ColumnType{Name: column, ParamType: domain.ParamString}, false
	}
	if c, ok := t.Column(column); ok {
		return c, true
	}
	return domain.ColumnType{Name: column, ParamType: domain.ParamString}, false
}

func usersSchema() tableSchemas {
	id := domain.ColumnType{Name: "id", DeclaredType: "int", ParamType: domain.ParamInt}
	return tableSchemas{
		"users": {
			Table:      "users",
			PrimaryKey: &id,
			Columns: map[string]domain.ColumnType{
				"id":   id,
				"age":  {Name: "age", DeclaredType: "int", ParamType: domain.ParamInt},
				"name": {Name: "name", DeclaredType: "varchar", ParamType: domain.ParamString},
			},
			Order: []string{"id", "age", "name"},
		},
	}
}

func newMatcher(s tableSchemas) *Matcher {
	return NewMatcher(binder.New(s), s)
}

func selectFrom(table string) *domain.Statement {
	stmt := domain.NewStatement()
	stmt.Start(domain.OpSelect, table)
	return stmt
}

func TestMatch_ColumnValue(t *testing.T) {
	stmt := selectFrom("users")
	require.NoError(t, newMatcher(usersSchema()).Match(context.Background(), stmt, Eq("id", 5)))

	assert.Equal(t, "(id = :__id1)", Render(stmt.Where))
	assert.Equal(t, domain.Binding{Value: 5, Type: domain.ParamInt}, stmt.Params[":__id1"])
}

func TestMatch_PrimaryKeyShorthand(t *testing.T) {
	stmt := selectFrom("users")
	require.NoError(t, newMatcher(usersSchema()).Match(context.Background(), stmt, Key(9)))

	assert.Equal(t, "(id = :__id1)", Render(stmt.Where))
	assert.Equal(t, domain.ParamInt, stmt.Params[":__id1"].Type)
}

func TestMatch_ExplicitOperator(t *testing.T) {
	stmt := selectFrom("users")
	require.NoError(t, newMatcher(usersSchema()).Match(context.Background(), stmt, Cmp("age", ">=", 30)))

	assert.Equal(t, "(age >= :__age1)", Render(stmt.Where))
	assert.Len(t, stmt.Params, 1)
}

func TestMatch_Nulls(t *testing.T) {
	ctx := context.Background()
	m := newMatcher(usersSchema())

	stmt := selectFrom("users")
	require.NoError(t, m.Match(ctx, stmt, Key(nil)))
	assert.Equal(t, "(id IS NULL)", Render(stmt.Where))
	assert.Empty(t, stmt.Params)

	for _, op := range []string{"!=", "<>", "is not"} {
		stmt = selectFrom("users")
		require.NoError(t, m.Match(ctx, stmt, Cmp("", op, nil)))
		assert.Equal(t, "(id IS NOT NULL)", Render(stmt.Where), op)
	}
}

func TestMatch_MultipleConditions(t *testing.T) {
	stmt := selectFrom("users")
	err := newMatcher(usersSchema()).Match(context.Background(), stmt,
		Cmp("age", ">", 18),
		Eq("name", "ann"),
		Cmp("age", "<", 65),
	)
	require.NoError(t, err)

	assert.Equal(t, "(age > :__age1) AND (name = :__name2) AND (age < :__age3)", Render(stmt.Where))
	assert.Equal(t, 18, stmt.Params[":__age1"].Value)
	assert.Equal(t, 65, stmt.Params[":__age3"].Value)
	assert.Equal(t, domain.ParamString, stmt.Params[":__name2"].Type)
}

func TestMatch_RawValue(t *testing.T) {
	stmt := selectFrom("users")
	require.NoError(t, newMatcher(usersSchema()).Match(context.Background(), stmt, Eq("age", domain.Raw("other.age + 1"))))

	assert.Equal(t, "(age = other.age + 1)", Render(stmt.Where))
	assert.Empty(t, stmt.Params)
}

func TestMatch_TypedValue(t *testing.T) {
	stmt := selectFrom("users")
	require.NoError(t, newMatcher(usersSchema()).Match(context.Background(), stmt, Eq("name", domain.Typed{Value: 12, Type: domain.ParamInt})))

	assert.Equal(t, domain.Binding{Value: 12, Type: domain.ParamInt}, stmt.Params[":__name1"])
}

func TestMatch_NoSchemaFallsBackToString(t *testing.T) {
	stmt := selectFrom("logs")
	require.NoError(t, newMatcher(usersSchema()).Match(context.Background(), stmt, Eq("level", 3)))

	assert.Equal(t, "(level = :__level1)", Render(stmt.Where))
	assert.Equal(t, domain.ParamString, stmt.Params[":__level1"].Type)
}

func TestMatch_KeyWithoutSchemaMatchesNothing(t *testing.T) {
	stmt := domain.NewStatement()
	stmt.Start(domain.OpDelete, "logs")

	err := newMatcher(usersSchema()).Match(context.Background(), stmt, Eq("level", 1), Key(3))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaUnavailable)
	assert.Equal(t, "(1 = 0)", Render(stmt.Where))
	assert.Empty(t, stmt.Params)
}

func TestMatch_KeyWithoutPrimaryKey(t *testing.T) {
	schemas := usersSchema()
	schemas["events"] = &domain.TableSchema{
		Table:   "events",
		Columns: map[string]domain.ColumnType{"name": {Name: "name", ParamType: domain.ParamString}},
		Order:   []string{"name"},
	}
	stmt := domain.NewStatement()
	stmt.Start(domain.OpUpdate, "events")
	stmt.SetWhere(domain.Cond("name = 'x'"))

	err := newMatcher(schemas).Match(context.Background(), stmt, Key(1))

	assert.ErrorIs(t, err, domain.ErrNoPrimaryKey)
	assert.Equal(t, "(1 = 0)", Render(stmt.Where))
}

func TestMatch_RawValueKeepsOperator(t *testing.T) {
	stmt := selectFrom("users")
	require.NoError(t, newMatcher(usersSchema()).Match(context.Background(), stmt, Cmp("age", "<", domain.Raw("other.age")), Key(domain.Raw("7"))))

	assert.Equal(t, "(age < other.age) AND (id = 7)", Render(stmt.Where))
	assert.Empty(t, stmt.Params)
}

func TestMatch_ReplacesWhereTree(t *testing.T) {
	stmt := selectFrom("users")
	stmt.SetWhere(domain.Cond("deleted = 0"))

	require.NoError(t, newMatcher(usersSchema()).Match(context.Background(), stmt, Eq("id", 1)))
	assert.Equal(t, "(id = :__id1)", Render(stmt.Where))
}

func TestMatch_NoActiveTable(t *testing.T) {
	stmt := domain.NewStatement()

	err := newMatcher(usersSchema()).Match(context.Background(), stmt, Eq("id", 1))
	assert.ErrorIs(t, err, domain.ErrNoActiveTable)
	assert.Empty(t, stmt.Where)
	assert.Empty(t, stmt.Params)
}
