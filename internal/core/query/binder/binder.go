// Package binder resolves column values into named, typed parameter bindings.
package binder

import (
	"context"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// ColumnResolver reports the normalized type of a table column.
type ColumnResolver interface {
	Column(ctx context.Context, table, column string) (domain.ColumnType, bool)
}

// Binder binds column values onto a statement.
type Binder struct {
	columns ColumnResolver
}

// New creates a Binder. A nil resolver makes every inferred value a STRING.
func New(columns ColumnResolver) *Binder {
	return &Binder{columns: columns}
}

// ParamName returns the parameter name derived from a column: ":_<column>".
func ParamName(column string) string {
	return ":_" + Sanitize(column)
}

// MatchParamName returns the parameter name used by match(): ":__<column><ordinal>".
func MatchParamName(column string, ordinal int) string {
	return ":__" + Sanitize(column) + strconv.Itoa(ordinal)
}

// Sanitize strips backticks from a column name and replaces every character that
// cannot appear in a placeholder name with an underscore.
func Sanitize(column string) string {
	column = strings.ReplaceAll(column, "`", "")
	var sb strings.Builder
	sb.Grow(len(column))
	for _, r := range column {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// BindParam stores value under name. A binding with the same name is overwritten.
func (b *Binder) BindParam(stmt *domain.Statement, name string, value any, t domain.ParamType) {
	stmt.BindParam(name, value, t)
}

// BindParams applies BindParam for every entry.
func (b *Binder) BindParams(stmt *domain.Statement, params domain.Params) {
	for name, binding := range params {
		stmt.BindParam(name, binding.Value, binding.Type)
	}
}

// AddColumn sets a column on the statement according to the shape of value:
// a domain.Raw is used verbatim, a domain.Typed is bound with its explicit type,
// and anything else is bound with a type inferred from the statement's table.
func (b *Binder) AddColumn(ctx context.Context, stmt *domain.Statement, name string, value any) {
	switch v := value.(type) {
	case domain.Raw:
		stmt.SetColumn(name, string(v))
	case domain.Typed:
		param := ParamName(name)
		stmt.BindParam(param, v.Value, v.Type)
		stmt.SetColumn(name, param)
	default:
		param := ParamName(name)
		bound, t := b.Infer(ctx, stmt.Table, name, value)
		stmt.BindParam(param, bound, t)
		stmt.SetColumn(name, param)
	}
}

// AddColumns applies AddColumn for every field in order.
func (b *Binder) AddColumns(ctx context.Context, stmt *domain.Statement, fields ...domain.Field) {
	for _, f := range fields {
		b.AddColumn(ctx, stmt, f.Name, f.Value)
	}
}

// Infer returns the value to bind for column of table and its parameter type.
// Nil values are NULL; unknown schemas and columns fall back to STRING. Time
// values bound to date, datetime or timestamp columns are formatted as text.
func (b *Binder) Infer(ctx context.Context, table, column string, value any) (any, domain.ParamType) {
	if isNil(value) {
		return nil, domain.ParamNull
	}
	if b == nil || b.columns == nil || table == "" {
		return value, domain.ParamString
	}

	col, _ := b.columns.Column(ctx, table, column)
	return FormatTime(col.DeclaredType, value), col.ParamType
}

// FormatTime formats time values for date-like declared types and returns any
// other value unchanged.
func FormatTime(declared string, value any) any {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return value
		}
		t = *v
	default:
		return value
	}

	switch declared {
	case "date":
		return t.Format(dateLayout)
	case "datetime":
		return t.Format(dateTimeLayout)
	case "timestamp":
		return t.UTC().Format(dateTimeLayout)
	default:
		return value
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
