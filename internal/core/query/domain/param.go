package domain

import "sort"

// ParamType is the coarse binding type handed to the driver with each value.
type ParamType int

const (
	// ParamNull binds SQL NULL.
	ParamNull ParamType = iota
	// ParamBool binds a boolean.
	ParamBool
	// ParamInt binds an integer.
	ParamInt
	// ParamString binds text. It is the universal fallback.
	ParamString
)

// String returns the type tag name.
func (t ParamType) String() string {
	switch t {
	case ParamNull:
		return "NULL"
	case ParamBool:
		return "BOOL"
	case ParamInt:
		return "INT"
	default:
		return "STRING"
	}
}

// ParseParamType maps a tag name back to a ParamType. Unknown names map to ParamString.
func ParseParamType(name string) ParamType {
	switch name {
	case "NULL", "null":
		return ParamNull
	case "BOOL", "bool", "BOOLEAN", "boolean":
		return ParamBool
	case "INT", "int", "INTEGER", "integer":
		return ParamInt
	default:
		return ParamString
	}
}

// Binding is a value and its parameter type.
type Binding struct {
	Value any
	Type  ParamType
}

// Params maps parameter names (including the leading colon) to bindings.
type Params map[string]Binding

// Names returns the parameter names in sorted order.
func (p Params) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
