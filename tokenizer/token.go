package tokenizer

import "github.com/vuejs/vue-eslint-parser-sub000/ast"

// TokenType represents the type of a raw markup token.
type TokenType int

const (
	HTMLAssociation TokenType = iota // =
	HTMLBogusComment
	HTMLCDataText
	HTMLComment
	HTMLEndTagOpen // </name
	HTMLIdentifier // attribute name
	HTMLLiteral    // attribute value, quotes included in the range
	HTMLRawText
	HTMLRcDataText
	HTMLSelfClosingTagClose // />
	HTMLTagClose            // >
	HTMLTagOpen             // <name
	HTMLText
	VExpressionStart // {{
	VExpressionEnd   // }}
)

// String returns the string representation of TokenType. These names are
// what the global token stream carries.
func (t TokenType) String() string {
	switch t {
	case HTMLAssociation:
		return "HTMLAssociation"
	case HTMLBogusComment:
		return "HTMLBogusComment"
	case HTMLCDataText:
		return "HTMLCDataText"
	case HTMLComment:
		return "HTMLComment"
	case HTMLEndTagOpen:
		return "HTMLEndTagOpen"
	case HTMLIdentifier:
		return "HTMLIdentifier"
	case HTMLLiteral:
		return "HTMLLiteral"
	case HTMLRawText:
		return "HTMLRawText"
	case HTMLRcDataText:
		return "HTMLRcDataText"
	case HTMLSelfClosingTagClose:
		return "HTMLSelfClosingTagClose"
	case HTMLTagClose:
		return "HTMLTagClose"
	case HTMLTagOpen:
		return "HTMLTagOpen"
	case HTMLText:
		return "HTMLText"
	case VExpressionStart:
		return "VExpressionStart"
	case VExpressionEnd:
		return "VExpressionEnd"
	default:
		return "Unknown"
	}
}

// Token is a primitive token produced by the raw tokenizer. Range and Loc
// refer to the raw source; Value is the decoded text.
type Token struct {
	Type  TokenType
	Range ast.Range
	Loc   ast.Location
	Value string
}

// Global converts the token to its representation in the global token
// stream.
func (t Token) Global() ast.Token {
	return ast.Token{Type: t.Type.String(), Range: t.Range, Loc: t.Loc, Value: t.Value}
}
