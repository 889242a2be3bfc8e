package ast

// Namespace identifies the vocabulary an element belongs to.
type Namespace string

const (
	NamespaceHTML   Namespace = "http://www.w3.org/1999/xhtml"
	NamespaceSVG    Namespace = "http://www.w3.org/2000/svg"
	NamespaceMathML Namespace = "http://www.w3.org/1998/Math/MathML"
	NamespaceXLink  Namespace = "http://www.w3.org/1999/xlink"
	NamespaceXML    Namespace = "http://www.w3.org/XML/1998/namespace"
	NamespaceXMLNS  Namespace = "http://www.w3.org/2000/xmlns/"
)

// NodeType represents the type of a tree node.
type NodeType int

const (
	DocumentFragmentNode NodeType = iota
	ElementNode
	StartTagNode
	EndTagNode
	TextNode
	AttributeNode
	DirectiveNode
	DirectiveKeyNode
	ExpressionContainerNode
	IdentifierNode
	LiteralNode
	ForExpressionNode
	OnExpressionNode
	SlotScopeExpressionNode
	GenericExpressionNode
	ExternalExpressionNode
)

// String returns the string representation of NodeType.
func (n NodeType) String() string {
	switch n {
	case DocumentFragmentNode:
		return "DocumentFragment"
	case ElementNode:
		return "Element"
	case StartTagNode:
		return "StartTag"
	case EndTagNode:
		return "EndTag"
	case TextNode:
		return "Text"
	case AttributeNode:
		return "Attribute"
	case DirectiveNode:
		return "Directive"
	case DirectiveKeyNode:
		return "DirectiveKey"
	case ExpressionContainerNode:
		return "ExpressionContainer"
	case IdentifierNode:
		return "Identifier"
	case LiteralNode:
		return "Literal"
	case ForExpressionNode:
		return "ForExpression"
	case OnExpressionNode:
		return "OnExpression"
	case SlotScopeExpressionNode:
		return "SlotScopeExpression"
	case GenericExpressionNode:
		return "GenericExpression"
	case ExternalExpressionNode:
		return "ExternalExpression"
	default:
		return "Unknown"
	}
}

// Node is implemented by every tree node. Base exposes the shared
// range/location/parent storage so that location fixes can mutate a node
// in place without knowing its concrete type.
type Node interface {
	Type() NodeType
	Base() *BaseNode
}

// BaseNode holds the fields shared by all nodes. Parent is a non-owning
// back-pointer set once when the node is attached to the tree.
type BaseNode struct {
	Range Range    `json:"range"`
	Loc   Location `json:"loc"`
	// Parent is excluded from serialization to keep the tree acyclic on
	// the wire.
	Parent Node `json:"-"`
}

// Base returns the node's shared storage.
func (b *BaseNode) Base() *BaseNode { return b }

// SourceRange returns the node's byte range in the raw source.
func (b *BaseNode) SourceRange() Range { return b.Range }

// Expression is implemented by nodes that can appear inside an
// ExpressionContainer.
type Expression interface {
	Node
	expressionNode()
}

// AttributeLike is implemented by Attribute and Directive, the two node
// kinds that can appear in a start tag's attribute list.
type AttributeLike interface {
	Node
	attributeNode()
	KeyRange() Range
}

// DocumentFragment is the root of a parsed template. Tokens and Comments
// are the global, offset-sorted streams; Errors is sorted by offset as
// well. Through collects references that no template variable resolved.
type DocumentFragment struct {
	BaseNode
	Children []Node       `json:"children"`
	Tokens   []Token      `json:"tokens"`
	Comments []Token      `json:"comments"`
	Errors   []ParseError `json:"errors"`
	Through  []*Reference `json:"-"`
}

func (*DocumentFragment) Type() NodeType { return DocumentFragmentNode }

// Element is a markup element. Name is the adjusted name (case-folded for
// HTML, alias-corrected for foreign namespaces); RawName preserves the
// source spelling. Range is back-filled when the element is popped from
// the open-element stack.
type Element struct {
	BaseNode
	Name      string      `json:"name"`
	RawName   string      `json:"rawName"`
	Namespace Namespace   `json:"namespace"`
	StartTag  *StartTag   `json:"startTag"`
	EndTag    *EndTag     `json:"endTag"`
	Children  []Node      `json:"children"`
	Variables []*Variable `json:"variables"`
}

func (*Element) Type() NodeType { return ElementNode }

// StartTag holds the attribute list of an element. SelfClosing records the
// `/>` syntax whether or not it was spec-correct there.
type StartTag struct {
	BaseNode
	Attributes  []AttributeLike `json:"attributes"`
	SelfClosing bool            `json:"selfClosing"`
}

func (*StartTag) Type() NodeType { return StartTagNode }

// EndTag is the closing tag of an element, when one was present.
type EndTag struct {
	BaseNode
	Name string `json:"name"`
}

func (*EndTag) Type() NodeType { return EndTagNode }

// Text is a character-data node. Value is the decoded text; Range still
// covers the raw source including entity and CRLF spellings.
type Text struct {
	BaseNode
	Value string `json:"value"`
}

func (*Text) Type() NodeType { return TextNode }

// Attribute is a plain (non-directive) attribute. Value is nil for bare
// attributes such as `disabled`.
type Attribute struct {
	BaseNode
	Key   *Identifier `json:"key"`
	Value *Literal    `json:"value"`
}

func (*Attribute) Type() NodeType { return AttributeNode }
func (*Attribute) attributeNode() {}
func (a *Attribute) KeyRange() Range { return a.Key.Range }

// Directive is an attribute promoted to hold an expression. Value is the
// original *Literal until expression linking replaces it with an
// *ExpressionContainer; it is nil for bare directives such as `v-else`.
type Directive struct {
	BaseNode
	Key   *DirectiveKey `json:"key"`
	Value Node          `json:"value"`
}

func (*Directive) Type() NodeType { return DirectiveNode }
func (*Directive) attributeNode() {}
func (d *Directive) KeyRange() Range { return d.Key.Range }

// DirectiveKey is the parsed name of a directive. Name holds the canonical
// directive name (shorthand sigils expanded). Argument is an *Identifier
// for static arguments or an *ExpressionContainer for `[dynamic]` ones,
// nil when absent.
type DirectiveKey struct {
	BaseNode
	Name      *Identifier   `json:"name"`
	Argument  Node          `json:"argument"`
	Modifiers []*Identifier `json:"modifiers"`
}

func (*DirectiveKey) Type() NodeType { return DirectiveKeyNode }

// ExpressionContainer wraps a delegated expression. Expression is nil when
// the delegated parser rejected the text (a null-expression container).
type ExpressionContainer struct {
	BaseNode
	Expression Expression   `json:"expression"`
	References []*Reference `json:"references"`
}

func (*ExpressionContainer) Type() NodeType { return ExpressionContainerNode }

// Identifier is a name inside a directive key or a delegated expression.
// RawName preserves the source spelling where the name was adjusted.
type Identifier struct {
	BaseNode
	Name    string `json:"name"`
	RawName string `json:"rawName,omitempty"`
}

func (*Identifier) Type() NodeType { return IdentifierNode }
func (*Identifier) expressionNode() {}

// Literal is a static attribute value. Value is the decoded text; the
// range includes the surrounding quotes when present.
type Literal struct {
	BaseNode
	Value string `json:"value"`
}

func (*Literal) Type() NodeType { return LiteralNode }

// ForExpression is the synthetic shape of a loop directive value such as
// `(item, index) in items`. Left holds the alias patterns, Right the
// iterated expression.
type ForExpression struct {
	BaseNode
	Left  []Expression `json:"left"`
	Right Expression   `json:"right"`
}

func (*ForExpression) Type() NodeType { return ForExpressionNode }
func (*ForExpression) expressionNode() {}

// OnExpression is the synthetic shape of an inline event handler body.
// Body holds the delegated statement forms; their concrete type belongs
// to the expression parser.
type OnExpression struct {
	BaseNode
	Body []any `json:"body"`
}

func (*OnExpression) Type() NodeType { return OnExpressionNode }
func (*OnExpression) expressionNode() {}

// SlotScopeExpression is the synthetic shape of a slot-scope value; Params
// holds the declared parameter patterns.
type SlotScopeExpression struct {
	BaseNode
	Params []Expression `json:"params"`
}

func (*SlotScopeExpression) Type() NodeType { return SlotScopeExpressionNode }
func (*SlotScopeExpression) expressionNode() {}

// GenericExpression is the synthetic shape of a generics declaration on a
// type-aware script block. RawParams preserves each parameter's source
// text.
type GenericExpression struct {
	BaseNode
	Params    []Expression `json:"params"`
	RawParams []string     `json:"rawParams"`
}

func (*GenericExpression) Type() NodeType { return GenericExpressionNode }
func (*GenericExpression) expressionNode() {}

// ExternalExpression wraps a program tree owned by the delegated
// expression parser. Program is opaque to this package.
type ExternalExpression struct {
	BaseNode
	Program any `json:"-"`
}

func (*ExternalExpression) Type() NodeType { return ExternalExpressionNode }
func (*ExternalExpression) expressionNode() {}
