// Package schema resolves, normalizes and caches table structure reported by the driver.
package schema

import (
	"strings"
	"unicode"

	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
)

// BaseType returns the leading alphabetic prefix of a declared column type,
// lowercased, so "VARCHAR(100)" and "int(11) unsigned" become "varchar" and "int".
func BaseType(declared string) string {
	declared = strings.TrimSpace(declared)
	end := 0
	for end < len(declared) && unicode.IsLetter(rune(declared[end])) {
		end++
	}
	return strings.ToLower(declared[:end])
}

// ParamTypeOf maps a declared column type to the binding type used for its values.
func ParamTypeOf(declared string) domain.ParamType {
	switch BaseType(declared) {
	case "boolean", "bool":
		return domain.ParamBool
	case "int", "integer", "tinyint", "smallint", "mediumint", "bigint":
		return domain.ParamInt
	default:
		// numeric, real, decimal, float, double, date, datetime, time, timestamp,
		// every char-like type and anything unrecognized bind as text.
		return domain.ParamString
	}
}

// StripQuotes removes identifier quoting characters from a column name.
func StripQuotes(name string) string {
	return strings.Trim(strings.TrimSpace(name), "`\"'[]")
}
