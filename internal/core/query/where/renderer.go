// Package where renders WHERE trees and compiles match() shorthand conditions.
package where

import (
	"strings"

	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
)

// Render renders a where tree. Conditions are wrapped in parentheses, operators are
// emitted bare between siblings and nested groups are parenthesized. An operator
// is only emitted between two rendered operands: leading and trailing operators
// are dropped, and of consecutive operators the last one wins.
func Render(g domain.Group) string {
	parts := make([]string, 0, len(g))
	pending := ""
	emit := func(operand string) {
		if pending != "" && len(parts) > 0 {
			parts = append(parts, pending)
		}
		pending = ""
		parts = append(parts, operand)
	}

	for _, n := range g {
		switch v := n.(type) {
		case domain.Op:
			pending = normalizeOp(string(v))
		case domain.Cond:
			if domain.IsOperatorToken(string(v)) {
				pending = normalizeOp(string(v))
				continue
			}
			emit("(" + string(v) + ")")
		case domain.Group:
			if inner := Render(v); inner != "" {
				emit("(" + inner + ")")
			}
		}
	}
	return strings.Join(parts, " ")
}

func normalizeOp(op string) string {
	return strings.ToUpper(strings.TrimSpace(op))
}
