package domain

import "strings"

// Node is an element of a WHERE tree: a Cond, an Op or a nested Group.
type Node interface {
	isNode()
}

// Cond is a leaf condition rendered as "(text)".
type Cond string

// Op is a boolean operator token placed between siblings.
type Op string

// Group is an ordered sibling list rendered inside parentheses when nested.
type Group []Node

const (
	// And joins siblings with AND.
	And Op = "AND"
	// Or joins siblings with OR.
	Or Op = "OR"
	// Xor joins siblings with XOR.
	Xor Op = "XOR"
	// AndSymbol is the && spelling of AND.
	AndSymbol Op = "&&"
	// OrSymbol is the || spelling of OR.
	OrSymbol Op = "||"
)

func (Cond) isNode()  {}
func (Op) isNode()    {}
func (Group) isNode() {}

// IsOperatorToken reports whether text is one of the reserved boolean tokens.
func IsOperatorToken(text string) bool {
	switch Op(strings.ToUpper(strings.TrimSpace(text))) {
	case And, Or, Xor, AndSymbol, OrSymbol:
		return true
	}
	return false
}

// NewGroup builds a Group from strings and nodes. Strings that are reserved
// operator tokens become Ops, other strings become Conds.
func NewGroup(items ...any) Group {
	g := make(Group, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case Node:
			g = append(g, v)
		case string:
			if IsOperatorToken(v) {
				g = append(g, Op(strings.ToUpper(strings.TrimSpace(v))))
			} else {
				g = append(g, Cond(v))
			}
		case []any:
			g = append(g, NewGroup(v...))
		}
	}
	return g
}
