package ast

// VariableKind distinguishes where a template variable was declared.
type VariableKind string

const (
	// VariableKindFor marks a loop variable declared by a v-for alias.
	VariableKindFor VariableKind = "v-for"
	// VariableKindScope marks a scope variable declared by slot-scope or
	// v-slot.
	VariableKindScope VariableKind = "scope"
)

// ReferenceMode is the access mode of a reference.
type ReferenceMode string

const (
	ReferenceRead      ReferenceMode = "r"
	ReferenceWrite     ReferenceMode = "w"
	ReferenceReadWrite ReferenceMode = "rw"
)

// Variable is a name declared by a loop or slot-scope construct. It is
// visible to every expression container inside the declaring element's
// subtree.
type Variable struct {
	ID         *Identifier  `json:"id"`
	Kind       VariableKind `json:"kind"`
	References []*Reference `json:"-"`
}

// Reference is a use of a name inside a delegated expression. Variable is
// nil while the reference is unresolved; resolution sets the link in both
// directions but ownership stays with the container.
type Reference struct {
	ID       *Identifier   `json:"id"`
	Mode     ReferenceMode `json:"mode"`
	Variable *Variable     `json:"-"`
}

// ParentElement returns the closest Element ancestor of node, or nil.
func ParentElement(node Node) *Element {
	for n := node.Base().Parent; n != nil; n = n.Base().Parent {
		if e, ok := n.(*Element); ok {
			return e
		}
	}
	return nil
}
