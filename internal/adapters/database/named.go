package database

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
)

// PlaceholderStyle is the positional placeholder syntax of a dialect.
type PlaceholderStyle int

const (
	// QuestionMark emits "?" (SQLite, MySQL).
	QuestionMark PlaceholderStyle = iota
	// Dollar emits "$1", "$2", ... (PostgreSQL).
	Dollar
)

// scanner states
const (
	sText = iota
	sSingle
	sDouble
	sBacktick
	sLineComment
	sBlockComment
)

// BindNamed rewrites :name placeholders into positional placeholders and returns
// the coerced arguments in placeholder order. Placeholders inside quotes and
// comments are left alone, as are "::" casts. A repeated name yields a repeated
// argument.
func BindNamed(query string, params domain.Params, style PlaceholderStyle) (string, []any, error) {
	var sb strings.Builder
	sb.Grow(len(query))
	args := make([]any, 0, len(params))

	state := sText
	for i := 0; i < len(query); {
		c := query[i]

		switch state {
		case sSingle, sDouble, sBacktick:
			sb.WriteByte(c)
			i++
			if (state == sSingle && c == '\'') || (state == sDouble && c == '"') || (state == sBacktick && c == '`') {
				state = sText
			}
			continue
		case sLineComment:
			sb.WriteByte(c)
			i++
			if c == '\n' {
				state = sText
			}
			continue
		case sBlockComment:
			if c == '*' && i+1 < len(query) && query[i+1] == '/' {
				sb.WriteString("*/")
				i += 2
				state = sText
				continue
			}
			sb.WriteByte(c)
			i++
			continue
		}

		switch {
		case c == '\'':
			state = sSingle
		case c == '"':
			state = sDouble
		case c == '`':
			state = sBacktick
		case c == '-' && i+1 < len(query) && query[i+1] == '-':
			state = sLineComment
		case c == '/' && i+1 < len(query) && query[i+1] == '*':
			sb.WriteString("/*")
			i += 2
			state = sBlockComment
			continue
		case c == ':' && i+1 < len(query) && query[i+1] == ':':
			sb.WriteString("::")
			i += 2
			continue
		case c == ':' && i+1 < len(query) && isNameStart(query[i+1]):
			end := i + 1
			for end < len(query) && isNameChar(query[end]) {
				end++
			}
			name := query[i:end]
			binding, ok := params[name]
			if !ok {
				return "", nil, fmt.Errorf("%s: %w", name, domain.ErrUnboundParameter)
			}
			value, err := Coerce(binding)
			if err != nil {
				return "", nil, fmt.Errorf("bind %s: %w", name, err)
			}
			args = append(args, value)
			if style == Dollar {
				sb.WriteString("$" + strconv.Itoa(len(args)))
			} else {
				sb.WriteByte('?')
			}
			i = end
			continue
		}

		sb.WriteByte(c)
		i++
	}

	return sb.String(), args, nil
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}
