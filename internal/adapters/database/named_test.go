package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
)

func TestBindNamed(t *testing.T) {
	params := domain.Params{
		":_id":    {Value: "7", Type: domain.ParamInt},
		":_name":  {Value: "ann", Type: domain.ParamString},
		":__age1": {Value: 30, Type: domain.ParamInt},
	}

	tests := []struct {
		name     string
		query    string
		style    PlaceholderStyle
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "question marks in order",
			query:    "INSERT INTO roles (id, name) VALUES (:_id, :_name);",
			style:    QuestionMark,
			wantSQL:  "INSERT INTO roles (id, name) VALUES (?, ?);",
			wantArgs: []any{int64(7), "ann"},
		},
		{
			name:     "dollar placeholders",
			query:    "SELECT * FROM users WHERE (age >= :__age1) AND (name = :_name);",
			style:    Dollar,
			wantSQL:  "SELECT * FROM users WHERE (age >= $1) AND (name = $2);",
			wantArgs: []any{int64(30), "ann"},
		},
		{
			name:     "repeated name repeats argument",
			query:    "SELECT :_name, :_name",
			style:    QuestionMark,
			wantSQL:  "SELECT ?, ?",
			wantArgs: []any{"ann", "ann"},
		},
		{
			name:     "quoted text and comments untouched",
			query:    "SELECT ':_nope', \":_nope\", `:_nope` -- :_nope\n/* :_nope */ FROM t WHERE id = :_id",
			style:    QuestionMark,
			wantSQL:  "SELECT ':_nope', \":_nope\", `:_nope` -- :_nope\n/* :_nope */ FROM t WHERE id = ?",
			wantArgs: []any{int64(7)},
		},
		{
			name:     "casts ignored",
			query:    "SELECT created_at::date FROM t WHERE id = :_id",
			style:    Dollar,
			wantSQL:  "SELECT created_at::date FROM t WHERE id = $1",
			wantArgs: []any{int64(7)},
		},
		{
			name:     "time literals ignored",
			query:    "SELECT '10:30'",
			style:    QuestionMark,
			wantSQL:  "SELECT '10:30'",
			wantArgs: []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := BindNamed(tt.query, params, tt.style)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBindNamed_Unbound(t *testing.T) {
	_, _, err := BindNamed("SELECT * FROM t WHERE id = :_missing", domain.Params{}, QuestionMark)
	assert.ErrorIs(t, err, domain.ErrUnboundParameter)
	assert.Contains(t, err.Error(), ":_missing")
}

func TestBindNamed_CoercionFailure(t *testing.T) {
	params := domain.Params{":_id": {Value: "abc", Type: domain.ParamInt}}
	_, _, err := BindNamed("SELECT :_id", params, QuestionMark)
	assert.Error(t, err)
}
