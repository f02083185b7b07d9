package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatement_StartResetsClauses(t *testing.T) {
	s := NewStatement()
	s.Start(OpSelect, "users")
	s.SetColumn("id", "")
	s.BindParam(":_id", 1, ParamInt)
	s.AddFrom(FromEntry{Table: "users"})
	s.SetWhere(Cond("id = :_id"))
	s.Limit = &Limit{Start: "10"}

	s.Start(OpDelete, "roles")

	assert.Equal(t, OpDelete, s.Operation)
	assert.Equal(t, "roles", s.Table)
	assert.Empty(t, s.Columns)
	assert.Empty(t, s.Params)
	assert.NotNil(t, s.Params)
	assert.Empty(t, s.From)
	assert.Empty(t, s.Where)
	assert.Nil(t, s.Limit)
}

func TestStatement_SetColumnKeepsPosition(t *testing.T) {
	s := NewStatement()
	s.SetColumn("a", ":_a")
	s.SetColumn("b", ":_b")
	s.SetColumn("a", "NOW()")

	assert.Equal(t, []string{"a", "b"}, s.ColumnNames())
	assert.Equal(t, "NOW()", s.Columns[0].Expr)
}

func TestStatement_BindParamLastWriteWins(t *testing.T) {
	s := &Statement{}
	s.BindParam(":x", 1, ParamInt)
	s.BindParam(":x", "two", ParamString)

	assert.Equal(t, Binding{Value: "two", Type: ParamString}, s.Params[":x"])
}

func TestStatement_WhereTree(t *testing.T) {
	s := NewStatement()
	s.SetWhere(Cond("a = 1"))
	s.AppendWhere(Or, Cond("b = 2"))

	assert.Equal(t, Group{Cond("a = 1"), Or, Cond("b = 2")}, s.Where)

	s.SetWhere()
	assert.NotNil(t, s.Where)
	assert.Empty(t, s.Where)
}

func TestOperation_Kinds(t *testing.T) {
	assert.True(t, OpSelect.IsSelect())
	assert.True(t, OpSelectDistinct.IsSelect())
	assert.False(t, OpRawQuery.IsSelect())
	assert.True(t, OpInsertIgnore.IsInsert())
	assert.True(t, OpReplace.IsInsert())
	assert.False(t, OpUpdate.IsInsert())
}

func TestParamType_RoundTrip(t *testing.T) {
	for _, pt := range []ParamType{ParamNull, ParamBool, ParamInt, ParamString} {
		assert.Equal(t, pt, ParseParamType(pt.String()))
	}
	assert.Equal(t, ParamInt, ParseParamType("integer"))
	assert.Equal(t, ParamString, ParseParamType("decimal"))
}

func TestParams_NamesAndClone(t *testing.T) {
	p := Params{":b": {Value: 2}, ":a": {Value: 1}}
	assert.Equal(t, []string{":a", ":b"}, p.Names())

	c := p.Clone()
	c[":c"] = Binding{Value: 3}
	assert.Len(t, p, 2)
	assert.Len(t, c, 3)
}

func TestNewGroup(t *testing.T) {
	g := NewGroup("a = 1", " or ", []any{"b = 2", "&&", "c = 3"}, Cond("d = 4"))

	require.Len(t, g, 4)
	assert.Equal(t, Cond("a = 1"), g[0])
	assert.Equal(t, Or, g[1])
	assert.Equal(t, Group{Cond("b = 2"), AndSymbol, Cond("c = 3")}, g[2])
	assert.Equal(t, Cond("d = 4"), g[3])
}

func TestTableSchema_NilSafe(t *testing.T) {
	var ts *TableSchema
	_, ok := ts.Column("id")
	assert.False(t, ok)
	assert.Empty(t, ts.PrimaryKeyName())

	ts = &TableSchema{
		Columns:    map[string]ColumnType{"id": {Name: "id", ParamType: ParamInt}},
		PrimaryKey: &ColumnType{Name: "id", ParamType: ParamInt},
	}
	col, ok := ts.Column("id")
	assert.True(t, ok)
	assert.Equal(t, ParamInt, col.ParamType)
	assert.Equal(t, "id", ts.PrimaryKeyName())
}

func TestDriverError(t *testing.T) {
	cause := errors.New("near \"SELEC\": syntax error")
	err := fmt.Errorf("execute: %w", NewDriverError("prepare", "SELEC 1", cause))

	assert.True(t, IsDriverError(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `prepare failed for "SELEC 1"`)

	assert.Equal(t, "begin failed: boom", NewDriverError("begin", "", errors.New("boom")).Error())
	assert.False(t, IsDriverError(ErrNoMoreRows))
}
