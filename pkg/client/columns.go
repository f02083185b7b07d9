package client

import "strings"

// SplitColumns splits a comma-separated column list into trimmed names. Empty
// entries are dropped.
func SplitColumns(cols string) []string {
	parts := strings.Split(cols, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ExpandColumns renders column specs as select expressions: "<expr> AS <alias>"
// when an alias is set and the bare expression otherwise.
func ExpandColumns(specs []ColumnSpec) []string {
	out := make([]string, 0, len(specs))
	for _, s := range specs {
		if s.Alias != "" {
			out = append(out, s.Expr+" AS "+s.Alias)
			continue
		}
		out = append(out, s.Expr)
	}
	return out
}
