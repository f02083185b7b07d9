package where

import (
	"context"
	"fmt"
	"strings"

	"github.com/satishbabariya/sqlfluent/internal/core/query/binder"
	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
)

// Condition is one match() condition. An empty Column targets the table's primary
// key and an empty Operator means "=".
type Condition struct {
	Column   string
	Operator string
	Value    any
}

// Key matches the primary key against value.
func Key(value any) Condition {
	return Condition{Value: value}
}

// Eq matches column = value.
func Eq(column string, value any) Condition {
	return Condition{Column: column, Operator: "=", Value: value}
}

// Cmp matches column <operator> value.
func Cmp(column, operator string, value any) Condition {
	return Condition{Column: column, Operator: operator, Value: value}
}

// SchemaSource describes tables.
type SchemaSource interface {
	Describe(ctx context.Context, table string) (*domain.TableSchema, error)
}

// Matcher compiles match() conditions into bound where conditions.
type Matcher struct {
	binder  *binder.Binder
	schemas SchemaSource
}

// NewMatcher creates a Matcher.
func NewMatcher(b *binder.Binder, schemas SchemaSource) *Matcher {
	return &Matcher{binder: b, schemas: schemas}
}

// NoRows is the condition that replaces the where tree when a match condition
// cannot be resolved.
const NoRows = "1 = 0"

// Match compiles conds against the statement's table, binds their parameters and
// replaces the where tree with the resulting conditions joined by AND. It returns
// domain.ErrNoActiveTable and leaves the statement untouched when no table is set.
//
// A condition without a column targets the primary key. When the primary key
// cannot be resolved, Match binds nothing, replaces the where tree with NoRows
// and returns the schema error or domain.ErrNoPrimaryKey.
func (m *Matcher) Match(ctx context.Context, stmt *domain.Statement, conds ...Condition) error {
	if stmt.Table == "" {
		return domain.ErrNoActiveTable
	}

	var schema *domain.TableSchema
	schemaErr := domain.ErrSchemaUnavailable
	if m.schemas != nil {
		schema, schemaErr = m.schemas.Describe(ctx, stmt.Table)
	}

	columns := make([]string, len(conds))
	for i, cond := range conds {
		if columns[i] = cond.Column; columns[i] != "" {
			continue
		}
		if columns[i] = schema.PrimaryKeyName(); columns[i] == "" {
			cause := schemaErr
			if cause == nil {
				cause = domain.ErrNoPrimaryKey
			}
			stmt.SetWhere(domain.Cond(NoRows))
			return fmt.Errorf("match condition %d on %s: %w", i+1, stmt.Table, cause)
		}
	}

	tree := make(domain.Group, 0, len(conds)*2)
	for i, cond := range conds {
		text := m.condition(ctx, stmt, columns[i], cond, i+1)
		if len(tree) > 0 {
			tree = append(tree, domain.And)
		}
		tree = append(tree, domain.Cond(text))
	}

	stmt.SetWhere(tree...)
	return nil
}

func (m *Matcher) condition(ctx context.Context, stmt *domain.Statement, column string, cond Condition, ordinal int) string {
	op := strings.TrimSpace(cond.Operator)
	if op == "" {
		op = "="
	}

	switch v := cond.Value.(type) {
	case domain.Raw:
		return fmt.Sprintf("%s %s %s", column, op, string(v))
	case domain.Typed:
		if v.Value == nil || v.Type == domain.ParamNull {
			return nullCondition(column, op)
		}
		param := binder.MatchParamName(column, ordinal)
		stmt.BindParam(param, v.Value, v.Type)
		return fmt.Sprintf("%s %s %s", column, op, param)
	}

	value, t := m.binder.Infer(ctx, stmt.Table, column, cond.Value)
	if t == domain.ParamNull {
		return nullCondition(column, op)
	}

	param := binder.MatchParamName(column, ordinal)
	stmt.BindParam(param, value, t)
	return fmt.Sprintf("%s %s %s", column, op, param)
}

func nullCondition(column, op string) string {
	switch strings.ToUpper(op) {
	case "<>", "!=", "IS NOT":
		return column + " IS NOT NULL"
	default:
		return column + " IS NULL"
	}
}
