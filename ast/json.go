package ast

import "encoding/json"

// marshalNode serializes a node through its alias type and prepends the
// node-type discriminator, so consumers can dispatch without reflection.
func marshalNode(n Node, alias any) ([]byte, error) {
	data, err := json.Marshal(alias)
	if err != nil {
		return nil, err
	}
	head, err := json.Marshal(n.Type().String())
	if err != nil {
		return nil, err
	}
	if len(data) == 2 {
		return append(append([]byte(`{"type":`), head...), '}'), nil
	}
	out := append([]byte(`{"type":`), head...)
	out = append(out, ',')
	return append(out, data[1:]...), nil
}

func (n *DocumentFragment) MarshalJSON() ([]byte, error) {
	type alias DocumentFragment
	return marshalNode(n, (*alias)(n))
}

func (n *Element) MarshalJSON() ([]byte, error) {
	type alias Element
	return marshalNode(n, (*alias)(n))
}

func (n *StartTag) MarshalJSON() ([]byte, error) {
	type alias StartTag
	return marshalNode(n, (*alias)(n))
}

func (n *EndTag) MarshalJSON() ([]byte, error) {
	type alias EndTag
	return marshalNode(n, (*alias)(n))
}

func (n *Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return marshalNode(n, (*alias)(n))
}

func (n *Attribute) MarshalJSON() ([]byte, error) {
	type alias Attribute
	return marshalNode(n, (*alias)(n))
}

func (n *Directive) MarshalJSON() ([]byte, error) {
	type alias Directive
	return marshalNode(n, (*alias)(n))
}

func (n *DirectiveKey) MarshalJSON() ([]byte, error) {
	type alias DirectiveKey
	return marshalNode(n, (*alias)(n))
}

func (n *ExpressionContainer) MarshalJSON() ([]byte, error) {
	type alias ExpressionContainer
	return marshalNode(n, (*alias)(n))
}

func (n *Identifier) MarshalJSON() ([]byte, error) {
	type alias Identifier
	return marshalNode(n, (*alias)(n))
}

func (n *Literal) MarshalJSON() ([]byte, error) {
	type alias Literal
	return marshalNode(n, (*alias)(n))
}

func (n *ForExpression) MarshalJSON() ([]byte, error) {
	type alias ForExpression
	return marshalNode(n, (*alias)(n))
}

func (n *OnExpression) MarshalJSON() ([]byte, error) {
	type alias OnExpression
	return marshalNode(n, (*alias)(n))
}

func (n *SlotScopeExpression) MarshalJSON() ([]byte, error) {
	type alias SlotScopeExpression
	return marshalNode(n, (*alias)(n))
}

func (n *GenericExpression) MarshalJSON() ([]byte, error) {
	type alias GenericExpression
	return marshalNode(n, (*alias)(n))
}

func (n *ExternalExpression) MarshalJSON() ([]byte, error) {
	type alias ExternalExpression
	return marshalNode(n, (*alias)(n))
}
