// Package compiler renders a statement's clause model into SQL text.
package compiler

import (
	"strings"

	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
	"github.com/satishbabariya/sqlfluent/internal/core/query/where"
)

// Compile renders stmt as SQL. Structured statements end with ";", raw queries are
// returned untouched and a statement with no operation renders as "".
func Compile(stmt *domain.Statement) string {
	if stmt == nil {
		return ""
	}

	switch stmt.Operation {
	case domain.OpSelect, domain.OpSelectDistinct:
		return compileSelect(stmt) + ";"
	case domain.OpInsert, domain.OpInsertIgnore, domain.OpReplace:
		return compileInsert(stmt) + ";"
	case domain.OpUpdate:
		return compileUpdate(stmt) + ";"
	case domain.OpDelete:
		return compileDelete(stmt) + ";"
	case domain.OpRawQuery:
		return stmt.RawQuery
	default:
		return ""
	}
}

// compileSelect compiles a SELECT or SELECT DISTINCT statement.
func compileSelect(stmt *domain.Statement) string {
	var sb strings.Builder

	sb.WriteString(string(stmt.Operation))
	sb.WriteString(" ")
	if len(stmt.Columns) > 0 {
		sb.WriteString(strings.Join(stmt.ColumnNames(), ", "))
	} else {
		sb.WriteString("*")
	}

	if from := renderFrom(stmt.From); from != "" {
		sb.WriteString(" ")
		sb.WriteString(from)
	}

	writeWhere(&sb, stmt.Where)

	if len(stmt.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(stmt.GroupBy, ", "))
	}

	if stmt.Having != "" {
		sb.WriteString(" HAVING ")
		sb.WriteString(stmt.Having)
	}

	if len(stmt.OrderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(stmt.OrderBy, ", "))
	}

	if limit := renderLimit(stmt.Limit); limit != "" {
		sb.WriteString(" ")
		sb.WriteString(limit)
	}

	return sb.String()
}

// compileInsert compiles INSERT, INSERT IGNORE and REPLACE. Names and value
// expressions come from the same ordered column list.
func compileInsert(stmt *domain.Statement) string {
	names := make([]string, len(stmt.Columns))
	exprs := make([]string, len(stmt.Columns))
	for i, c := range stmt.Columns {
		names[i] = c.Name
		exprs[i] = c.Expr
	}

	var sb strings.Builder
	sb.WriteString(string(stmt.Operation))
	sb.WriteString(" INTO ")
	sb.WriteString(stmt.Table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(names, ", "))
	sb.WriteString(") VALUES (")
	sb.WriteString(strings.Join(exprs, ", "))
	sb.WriteString(")")
	return sb.String()
}

// compileUpdate compiles an UPDATE statement.
func compileUpdate(stmt *domain.Statement) string {
	sets := make([]string, len(stmt.Columns))
	for i, c := range stmt.Columns {
		sets[i] = c.Name + "=" + c.Expr
	}

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(stmt.Table)
	sb.WriteString(" SET ")
	sb.WriteString(strings.Join(sets, ", "))
	writeWhere(&sb, stmt.Where)
	return sb.String()
}

// compileDelete compiles a DELETE statement.
func compileDelete(stmt *domain.Statement) string {
	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(stmt.Table)
	writeWhere(&sb, stmt.Where)
	return sb.String()
}

func writeWhere(sb *strings.Builder, tree domain.Group) {
	if rendered := where.Render(tree); rendered != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(rendered)
	}
}

// renderFrom renders the FROM list. Entries after the first are comma-joined.
func renderFrom(entries []domain.FromEntry) string {
	if len(entries) == 0 {
		return ""
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		part := e.Table
		if join := renderJoins(e); join != "" {
			part += " " + join
		}
		parts = append(parts, part)
	}
	return "FROM " + strings.Join(parts, ", ")
}

func renderJoins(e domain.FromEntry) string {
	if e.JoinSQL != "" {
		return e.JoinSQL
	}

	joins := make([]string, 0, len(e.Joins))
	for _, j := range e.Joins {
		joinType := j.Type
		if joinType == "" {
			joinType = "JOIN"
		}
		joins = append(joins, joinType+" "+j.Table+" ON ("+j.On+")")
	}
	return strings.Join(joins, " ")
}

// renderLimit renders "LIMIT <start>[, <end>]".
func renderLimit(l *domain.Limit) string {
	if l == nil || l.Start == "" {
		return ""
	}
	if l.End == "" {
		return "LIMIT " + l.Start
	}
	return "LIMIT " + l.Start + ", " + l.End
}
