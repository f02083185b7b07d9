package binder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
)

type staticColumns map[string]domain.ColumnType

func (s staticColumns) Column(_ context.Context, _ string, column string) (domain.ColumnType, bool) {
	c, ok := s[column]
	if !ok {
		return domain.ColumnType{Name: column, ParamType: domain.ParamString}, false
	}
	return c, true
}

var eventColumns = staticColumns{
	"id":         {Name: "id", DeclaredType: "int", ParamType: domain.ParamInt},
	"active":     {Name: "active", DeclaredType: "boolean", ParamType: domain.ParamBool},
	"day":        {Name: "day", DeclaredType: "date", ParamType: domain.ParamString},
	"starts_at":  {Name: "starts_at", DeclaredType: "datetime", ParamType: domain.ParamString},
	"created_at": {Name: "created_at", DeclaredType: "timestamp", ParamType: domain.ParamString},
}

func newStatement(table string) *domain.Statement {
	s := domain.NewStatement()
	s.Start(domain.OpInsert, table)
	return s
}

func TestParamNames(t *testing.T) {
	assert.Equal(t, ":_id", ParamName("id"))
	assert.Equal(t, ":_id", ParamName("`id`"))
	assert.Equal(t, ":_u_id", ParamName("u.id"))
	assert.Equal(t, ":__age1", MatchParamName("age", 1))
	assert.Equal(t, ":__age12", MatchParamName("`age`", 12))
}

func TestAddColumn_Raw(t *testing.T) {
	b := New(eventColumns)
	stmt := newStatement("events")

	b.AddColumn(context.Background(), stmt, "created_at", domain.Raw("NOW()"))

	assert.Equal(t, []domain.ColumnEntry{{Name: "created_at", Expr: "NOW()"}}, stmt.Columns)
	assert.Empty(t, stmt.Params)
}

func TestAddColumn_Typed(t *testing.T) {
	b := New(eventColumns)
	stmt := newStatement("events")

	b.AddColumn(context.Background(), stmt, "id", domain.Typed{Value: "42", Type: domain.ParamString})

	assert.Equal(t, ":_id", stmt.Columns[0].Expr)
	assert.Equal(t, domain.Binding{Value: "42", Type: domain.ParamString}, stmt.Params[":_id"])
}

func TestAddColumn_Inferred(t *testing.T) {
	b := New(eventColumns)
	stmt := newStatement("events")
	ctx := context.Background()

	b.AddColumn(ctx, stmt, "id", 7)
	b.AddColumn(ctx, stmt, "active", true)
	b.AddColumn(ctx, stmt, "title", "Launch")
	b.AddColumn(ctx, stmt, "note", nil)

	assert.Equal(t, []string{"id", "active", "title", "note"}, stmt.ColumnNames())
	assert.Equal(t, domain.Binding{Value: 7, Type: domain.ParamInt}, stmt.Params[":_id"])
	assert.Equal(t, domain.Binding{Value: true, Type: domain.ParamBool}, stmt.Params[":_active"])
	assert.Equal(t, domain.Binding{Value: "Launch", Type: domain.ParamString}, stmt.Params[":_title"])
	assert.Equal(t, domain.Binding{Value: nil, Type: domain.ParamNull}, stmt.Params[":_note"])
}

func TestAddColumn_NoSchema(t *testing.T) {
	b := New(nil)
	stmt := newStatement("roles")

	b.AddColumn(context.Background(), stmt, "status", 1)

	assert.Equal(t, domain.Binding{Value: 1, Type: domain.ParamString}, stmt.Params[":_status"])
}

func TestAddColumn_Overwrite(t *testing.T) {
	b := New(nil)
	stmt := newStatement("roles")
	ctx := context.Background()

	b.AddColumn(ctx, stmt, "name", "first")
	b.AddColumn(ctx, stmt, "name", "second")

	require.Len(t, stmt.Columns, 1)
	assert.Equal(t, "second", stmt.Params[":_name"].Value)
}

func TestAddColumn_TimeFormatting(t *testing.T) {
	b := New(eventColumns)
	stmt := newStatement("events")
	ctx := context.Background()

	loc := time.FixedZone("UTC+2", 2*60*60)
	when := time.Date(2024, 3, 9, 14, 5, 6, 0, loc)

	b.AddColumn(ctx, stmt, "day", when)
	b.AddColumn(ctx, stmt, "starts_at", when)
	b.AddColumn(ctx, stmt, "created_at", &when)

	assert.Equal(t, "2024-03-09", stmt.Params[":_day"].Value)
	assert.Equal(t, "2024-03-09 14:05:06", stmt.Params[":_starts_at"].Value)
	assert.Equal(t, "2024-03-09 12:05:06", stmt.Params[":_created_at"].Value)
}

func TestAddColumn_NilPointerIsNull(t *testing.T) {
	b := New(eventColumns)
	stmt := newStatement("events")

	var when *time.Time
	b.AddColumn(context.Background(), stmt, "created_at", when)

	assert.Equal(t, domain.ParamNull, stmt.Params[":_created_at"].Type)
	assert.Nil(t, stmt.Params[":_created_at"].Value)
}

func TestBindParams(t *testing.T) {
	b := New(nil)
	stmt := newStatement("roles")

	b.BindParam(stmt, ":a", 1, domain.ParamInt)
	b.BindParams(stmt, domain.Params{
		":a": {Value: 2, Type: domain.ParamInt},
		":b": {Value: "x", Type: domain.ParamString},
	})

	assert.Equal(t, 2, stmt.Params[":a"].Value)
	assert.Equal(t, "x", stmt.Params[":b"].Value)
}

func TestFormatTime_LeavesOtherValues(t *testing.T) {
	assert.Equal(t, "2024-01-01", FormatTime("date", "2024-01-01"))

	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, when, FormatTime("varchar", when))
}
