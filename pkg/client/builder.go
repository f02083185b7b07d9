// Package client provides the fluent SQL statement builder.
//
// A Builder accumulates the clauses of one statement at a time. Each statement
// starter (Select, Insert, Update, Delete, Replace, Query, ...) resets the clause
// state; clause appenders mutate it and return the builder for chaining; terminal
// operations compile and run it:
//
//	b := client.New(driver)
//	rows, err := b.Select("id, name", "users").
//		Match(client.Cmp("age", ">=", 30)).
//		OrderBy("name").
//		Limit(10).
//		FetchAll(ctx)
//
// A Builder is not safe for concurrent use. Use Clone to get an independent
// builder sharing the same driver and schema cache.
package client

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/satishbabariya/sqlfluent/internal/adapters/database"
	"github.com/satishbabariya/sqlfluent/internal/core/query/binder"
	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
	"github.com/satishbabariya/sqlfluent/internal/core/query/where"
	"github.com/satishbabariya/sqlfluent/internal/core/schema"
	"github.com/satishbabariya/sqlfluent/internal/debug"
)

// Builder is a fluent, reusable SQL statement builder bound to one driver.
type Builder struct {
	ctx    context.Context
	driver database.Driver
	cache  *schema.Cache

	resolver *schema.Resolver
	binder   *binder.Binder
	matcher  *where.Matcher

	stmt *domain.Statement

	prepared database.Statement
	cursor   database.Cursor
	result   database.ExecResult

	// err is a build error of the current statement, returned by Execute.
	err error
}

// New creates a Builder running statements on driver.
func New(driver database.Driver, opts ...Option) *Builder {
	b := &Builder{
		ctx:    context.Background(),
		driver: driver,
		stmt:   domain.NewStatement(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if driver != nil {
		b.resolver = schema.NewResolver(driver, b.cache)
		b.cache = b.resolver.Cache()
		b.binder = binder.New(b.resolver)
		b.matcher = where.NewMatcher(b.binder, b.resolver)
	} else {
		b.binder = binder.New(nil)
		b.matcher = where.NewMatcher(b.binder, nil)
	}
	return b
}

// Clone returns a builder sharing the driver and schema cache with fresh clause state.
func (b *Builder) Clone() *Builder {
	return New(b.driver, WithSchemaCache(b.cache), WithContext(b.ctx))
}

// Statement starters

// Select starts a SELECT of a comma-separated column list from tables.
func (b *Builder) Select(cols string, tables ...string) *Builder {
	return b.startSelect(domain.OpSelect, SplitColumns(cols), tables)
}

// SelectSpec starts a SELECT of aliased columns from tables.
func (b *Builder) SelectSpec(cols []ColumnSpec, tables ...string) *Builder {
	return b.startSelect(domain.OpSelect, ExpandColumns(cols), tables)
}

// SelectDistinct starts a SELECT DISTINCT of a comma-separated column list.
func (b *Builder) SelectDistinct(cols string, tables ...string) *Builder {
	return b.startSelect(domain.OpSelectDistinct, SplitColumns(cols), tables)
}

// SelectDistinctSpec starts a SELECT DISTINCT of aliased columns.
func (b *Builder) SelectDistinctSpec(cols []ColumnSpec, tables ...string) *Builder {
	return b.startSelect(domain.OpSelectDistinct, ExpandColumns(cols), tables)
}

func (b *Builder) startSelect(op domain.Operation, cols []string, tables []string) *Builder {
	table := ""
	if len(tables) > 0 {
		table = tables[0]
	}
	b.start(op, table)

	for _, c := range cols {
		b.stmt.Columns = append(b.stmt.Columns, domain.ColumnEntry{Name: c})
	}
	for _, t := range tables {
		b.stmt.AddFrom(domain.FromEntry{Table: t})
	}
	return b
}

// Insert starts an INSERT of fields into table.
func (b *Builder) Insert(table string, fields ...Field) *Builder {
	return b.startWrite(domain.OpInsert, table, fields)
}

// InsertMap starts an INSERT of values into table, columns in key order.
func (b *Builder) InsertMap(table string, values map[string]any) *Builder {
	return b.startWrite(domain.OpInsert, table, fieldsOf(values))
}

// InsertIgnore starts an INSERT IGNORE of fields into table.
func (b *Builder) InsertIgnore(table string, fields ...Field) *Builder {
	return b.startWrite(domain.OpInsertIgnore, table, fields)
}

// InsertIgnoreMap starts an INSERT IGNORE of values into table.
func (b *Builder) InsertIgnoreMap(table string, values map[string]any) *Builder {
	return b.startWrite(domain.OpInsertIgnore, table, fieldsOf(values))
}

// Replace starts a REPLACE of fields into table.
func (b *Builder) Replace(table string, fields ...Field) *Builder {
	return b.startWrite(domain.OpReplace, table, fields)
}

// ReplaceMap starts a REPLACE of values into table.
func (b *Builder) ReplaceMap(table string, values map[string]any) *Builder {
	return b.startWrite(domain.OpReplace, table, fieldsOf(values))
}

// Update starts an UPDATE of table setting fields.
func (b *Builder) Update(table string, fields ...Field) *Builder {
	return b.startWrite(domain.OpUpdate, table, fields)
}

// UpdateMap starts an UPDATE of table setting values.
func (b *Builder) UpdateMap(table string, values map[string]any) *Builder {
	return b.startWrite(domain.OpUpdate, table, fieldsOf(values))
}

func (b *Builder) startWrite(op domain.Operation, table string, fields []Field) *Builder {
	b.start(op, table)
	b.binder.AddColumns(b.ctx, b.stmt, fields...)
	return b
}

// Delete starts a DELETE from table.
func (b *Builder) Delete(table string) *Builder {
	b.start(domain.OpDelete, table)
	return b
}

// Query starts a raw statement. The text is sent as is; named parameters in it
// are bound from BindParam.
func (b *Builder) Query(sql string) *Builder {
	b.start(domain.OpRawQuery, "")
	b.stmt.RawQuery = sql
	return b
}

func (b *Builder) start(op domain.Operation, table string) {
	b.release()
	b.result = database.ExecResult{}
	b.err = nil
	b.stmt.Start(op, table)
}

// Clause appenders

// From replaces the FROM list with table and its joins.
func (b *Builder) From(table string, joins ...Join) *Builder {
	b.stmt.From = nil
	return b.AddFrom(table, joins...)
}

// AddFrom appends table and its joins to the FROM list.
func (b *Builder) AddFrom(table string, joins ...Join) *Builder {
	b.stmt.AddFrom(domain.FromEntry{Table: table, Joins: joins})
	b.adoptTable(table)
	return b
}

// AddFromRaw appends table with a pre-rendered join clause.
func (b *Builder) AddFromRaw(table, joinSQL string) *Builder {
	b.stmt.AddFrom(domain.FromEntry{Table: table, JoinSQL: joinSQL})
	b.adoptTable(table)
	return b
}

func (b *Builder) adoptTable(table string) {
	if b.stmt.Table == "" {
		b.stmt.Table = table
	}
}

// Where replaces the WHERE tree with cond.
func (b *Builder) Where(cond string) *Builder {
	b.stmt.SetWhere(domain.Cond(cond))
	return b
}

// AndWhere appends cond joined with AND.
func (b *Builder) AndWhere(cond string) *Builder {
	b.stmt.AppendWhere(domain.And, domain.Cond(cond))
	return b
}

// OrWhere appends cond joined with OR.
func (b *Builder) OrWhere(cond string) *Builder {
	b.stmt.AppendWhere(domain.Or, domain.Cond(cond))
	return b
}

// XorWhere appends cond joined with XOR.
func (b *Builder) XorWhere(cond string) *Builder {
	b.stmt.AppendWhere(domain.Xor, domain.Cond(cond))
	return b
}

// WhereGroup replaces the WHERE tree with a parenthesized group. Items are
// condition strings, operator strings ("AND", "OR", "XOR", "&&", "||"), nested
// []any slices or Groups.
func (b *Builder) WhereGroup(items ...any) *Builder {
	b.stmt.SetWhere(group(items))
	return b
}

// AndWhereGroup appends a group joined with AND.
func (b *Builder) AndWhereGroup(items ...any) *Builder {
	b.stmt.AppendWhere(domain.And, group(items))
	return b
}

// OrWhereGroup appends a group joined with OR.
func (b *Builder) OrWhereGroup(items ...any) *Builder {
	b.stmt.AppendWhere(domain.Or, group(items))
	return b
}

// XorWhereGroup appends a group joined with XOR.
func (b *Builder) XorWhereGroup(items ...any) *Builder {
	b.stmt.AppendWhere(domain.Xor, group(items))
	return b
}

func group(items []any) domain.Group {
	if len(items) == 1 {
		if g, ok := items[0].(domain.Group); ok {
			return g
		}
	}
	return domain.NewGroup(items...)
}

// Match replaces the WHERE tree with bound conditions on the current table,
// joined with AND. Without a current table it does nothing.
//
// When a condition targets the primary key and the key cannot be resolved, the
// WHERE tree matches no rows and Execute returns the error until the next
// statement starts.
func (b *Builder) Match(conds ...Condition) *Builder {
	if err := b.matcher.Match(b.ctx, b.stmt, conds...); err != nil {
		if errors.Is(err, domain.ErrNoActiveTable) {
			debug.Warn("match ignored: no active table")
			return b
		}
		debug.Warn("match failed", "table", b.stmt.Table, "error", err)
		b.err = err
	}
	return b
}

// Err returns the build error of the current statement, if any.
func (b *Builder) Err() error {
	return b.err
}

// GroupBy replaces the GROUP BY list.
func (b *Builder) GroupBy(cols ...string) *Builder {
	b.stmt.GroupBy = nil
	return b.AddGroupBy(cols...)
}

// AddGroupBy appends to the GROUP BY list.
func (b *Builder) AddGroupBy(cols ...string) *Builder {
	b.stmt.GroupBy = append(b.stmt.GroupBy, cols...)
	return b
}

// Having sets the HAVING condition.
func (b *Builder) Having(cond string) *Builder {
	b.stmt.Having = cond
	return b
}

// OrderBy replaces the ORDER BY list.
func (b *Builder) OrderBy(cols ...string) *Builder {
	b.stmt.OrderBy = nil
	return b.AddOrderBy(cols...)
}

// AddOrderBy appends to the ORDER BY list.
func (b *Builder) AddOrderBy(cols ...string) *Builder {
	b.stmt.OrderBy = append(b.stmt.OrderBy, cols...)
	return b
}

// Limit sets LIMIT n.
func (b *Builder) Limit(n int) *Builder {
	b.stmt.Limit = &domain.Limit{Start: strconv.Itoa(n)}
	return b
}

// LimitRange sets LIMIT start, count.
func (b *Builder) LimitRange(start, count int) *Builder {
	b.stmt.Limit = &domain.Limit{Start: strconv.Itoa(start), End: strconv.Itoa(count)}
	return b
}

// LimitRaw sets the LIMIT argument text as is, e.g. "10 OFFSET 20".
func (b *Builder) LimitRaw(limit string) *Builder {
	b.stmt.Limit = &domain.Limit{Start: limit}
	return b
}

// BindParam binds value under name with type t. A leading ":" is added when missing.
func (b *Builder) BindParam(name string, value any, t ParamType) *Builder {
	b.binder.BindParam(b.stmt, paramName(name), value, t)
	return b
}

// BindParams binds every entry of params.
func (b *Builder) BindParams(params Params) *Builder {
	normalized := make(domain.Params, len(params))
	for name, binding := range params {
		normalized[paramName(name)] = binding
	}
	b.binder.BindParams(b.stmt, normalized)
	return b
}

func paramName(name string) string {
	if strings.HasPrefix(name, ":") {
		return name
	}
	return ":" + name
}

// AddColumn sets one column of the current statement. A Raw value is used
// verbatim, a Typed value is bound with its type and any other value is bound
// with a type inferred from the table schema.
func (b *Builder) AddColumn(name string, value any) *Builder {
	b.binder.AddColumn(b.ctx, b.stmt, name, value)
	return b
}

// AddColumns applies AddColumn to fields in order.
func (b *Builder) AddColumns(fields ...Field) *Builder {
	b.binder.AddColumns(b.ctx, b.stmt, fields...)
	return b
}

func fieldsOf(values map[string]any) []Field {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, len(names))
	for i, name := range names {
		fields[i] = Field{Name: name, Value: values[name]}
	}
	return fields
}
