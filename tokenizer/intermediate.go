package tokenizer

import (
	"strings"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
)

// IntermediateToken is a unit the tree builder consumes: a whole start
// tag with its attributes, a whole end tag, a run of text, or an
// interpolation.
type IntermediateToken interface {
	intermediateToken()
	Span() (ast.Range, ast.Location)
}

// IntermediateBase carries the source span shared by all intermediate
// tokens.
type IntermediateBase struct {
	Range ast.Range
	Loc   ast.Location
}

func (b *IntermediateBase) Span() (ast.Range, ast.Location) { return b.Range, b.Loc }

// StartTag is an opening tag including its attribute list. Name is
// lowercased; RawName preserves the source spelling.
type StartTag struct {
	IntermediateBase
	Name        string
	RawName     string
	SelfClosing bool
	Attributes  []*ast.Attribute
}

func (*StartTag) intermediateToken() {}

// EndTag is a closing tag.
type EndTag struct {
	IntermediateBase
	Name string
}

func (*EndTag) intermediateToken() {}

// Text is a run of character data. Value is decoded; the range may span
// embedded comments, whose content the value skips.
type Text struct {
	IntermediateBase
	Value string
}

func (*Text) intermediateToken() {}

// Mustache is an interpolation. Value is the decoded text between the
// markers; StartToken and EndToken are the marker tokens themselves.
type Mustache struct {
	IntermediateBase
	Value      string
	StartToken ast.Token
	EndToken   ast.Token
}

func (*Mustache) intermediateToken() {}

// IntermediateTokenizer assembles primitive tokens into intermediate
// tokens, accumulating the global token and comment streams on the way.
type IntermediateTokenizer struct {
	Tokenizer *Tokenizer
	Tokens    []ast.Token
	Comments  []ast.Token

	current             IntermediateToken
	queue               []IntermediateToken
	attribute           *ast.Attribute
	attrNames           map[string]bool
	expectValue         bool
	endTagAttrsReported bool

	exprStartToken *ast.Token
	exprTokens     []ast.Token
}

// NewIntermediateTokenizer wraps a raw tokenizer.
func NewIntermediateTokenizer(t *Tokenizer) *IntermediateTokenizer {
	return &IntermediateTokenizer{Tokenizer: t}
}

// NextToken returns the next intermediate token, or nil at end of input.
func (it *IntermediateTokenizer) NextToken() IntermediateToken {
	for len(it.queue) == 0 {
		token := it.Tokenizer.NextToken()
		if token == nil {
			it.foldExpression()
			it.commit()
			break
		}
		it.process(token)
	}
	if len(it.queue) == 0 {
		return nil
	}
	token := it.queue[0]
	it.queue = it.queue[1:]
	return token
}

func (it *IntermediateTokenizer) commit() {
	if it.current == nil {
		return
	}
	it.queue = append(it.queue, it.current)
	it.current = nil
	it.attribute = nil
	it.expectValue = false
}

func (it *IntermediateTokenizer) reportError(code string, token *Token) {
	it.Tokenizer.Errors = append(it.Tokenizer.Errors, ast.ParseError{
		Code:    code,
		Message: code,
		Index:   token.Range[0],
		Line:    token.Loc.Start.Line,
		Column:  token.Loc.Start.Column,
	})
}

func (it *IntermediateTokenizer) process(token *Token) {
	switch token.Type {
	case HTMLTagOpen:
		it.processTagOpen(token)
	case HTMLEndTagOpen:
		it.processEndTagOpen(token)
	case HTMLTagClose:
		it.processTagClose(token, false)
	case HTMLSelfClosingTagClose:
		it.processTagClose(token, true)
	case HTMLIdentifier:
		it.processIdentifier(token)
	case HTMLAssociation:
		it.Tokens = append(it.Tokens, token.Global())
		if it.attribute != nil {
			it.expectValue = true
		}
	case HTMLLiteral:
		it.processLiteral(token)
	case HTMLText, HTMLRcDataText, HTMLRawText, HTMLCDataText:
		it.processText(token)
	case HTMLComment, HTMLBogusComment:
		it.foldExpression()
		it.Comments = append(it.Comments, token.Global())
	case VExpressionStart:
		it.processExpressionStart(token)
	case VExpressionEnd:
		it.processExpressionEnd(token)
	}
}

func (it *IntermediateTokenizer) processTagOpen(token *Token) {
	it.foldExpression()
	it.commit()
	it.Tokens = append(it.Tokens, token.Global())
	it.current = &StartTag{
		IntermediateBase: IntermediateBase{Range: token.Range, Loc: token.Loc},
		Name:             strings.ToLower(token.Value),
		RawName:          token.Value,
	}
	it.attrNames = map[string]bool{}
}

func (it *IntermediateTokenizer) processEndTagOpen(token *Token) {
	it.foldExpression()
	it.commit()
	it.Tokens = append(it.Tokens, token.Global())
	it.current = &EndTag{
		IntermediateBase: IntermediateBase{Range: token.Range, Loc: token.Loc},
		Name:             strings.ToLower(token.Value),
	}
	it.endTagAttrsReported = false
}

func (it *IntermediateTokenizer) processTagClose(token *Token, selfClosing bool) {
	it.Tokens = append(it.Tokens, token.Global())
	switch tag := it.current.(type) {
	case *StartTag:
		tag.SelfClosing = selfClosing
		tag.Range[1] = token.Range[1]
		tag.Loc.End = token.Loc.End
		it.commit()
	case *EndTag:
		if selfClosing {
			it.reportError("end-tag-with-trailing-solidus", token)
		}
		tag.Range[1] = token.Range[1]
		tag.Loc.End = token.Loc.End
		it.commit()
	}
}

func (it *IntermediateTokenizer) processIdentifier(token *Token) {
	it.Tokens = append(it.Tokens, token.Global())
	switch tag := it.current.(type) {
	case *StartTag:
		name := strings.ToLower(token.Value)
		if it.attrNames[name] {
			it.reportError("duplicate-attribute", token)
		}
		it.attrNames[name] = true
		attr := &ast.Attribute{
			BaseNode: ast.BaseNode{Range: token.Range, Loc: token.Loc},
			Key: &ast.Identifier{
				BaseNode: ast.BaseNode{Range: token.Range, Loc: token.Loc},
				Name:     name,
				RawName:  token.Value,
			},
		}
		attr.Key.Parent = attr
		tag.Attributes = append(tag.Attributes, attr)
		it.attribute = attr
		it.expectValue = false
	case *EndTag:
		if !it.endTagAttrsReported {
			it.reportError("end-tag-with-attributes", token)
			it.endTagAttrsReported = true
		}
	}
}

func (it *IntermediateTokenizer) processLiteral(token *Token) {
	it.Tokens = append(it.Tokens, token.Global())
	if it.expectValue && it.attribute != nil {
		lit := &ast.Literal{
			BaseNode: ast.BaseNode{Range: token.Range, Loc: token.Loc},
			Value:    token.Value,
		}
		lit.Parent = it.attribute
		it.attribute.Value = lit
		it.attribute.Range[1] = token.Range[1]
		it.attribute.Loc.End = token.Loc.End
		it.expectValue = false
	}
}

func (it *IntermediateTokenizer) processText(token *Token) {
	global := token.Global()
	it.Tokens = append(it.Tokens, global)
	if it.exprStartToken != nil {
		it.exprTokens = append(it.exprTokens, global)
		return
	}
	it.appendText(global.Value, global.Range, global.Loc)
}

// appendText merges decoded text into the text token being built,
// starting one if needed.
func (it *IntermediateTokenizer) appendText(value string, rng ast.Range, loc ast.Location) {
	if text, ok := it.current.(*Text); ok {
		text.Value += value
		text.Range[1] = rng[1]
		text.Loc.End = loc.End
		return
	}
	it.commit()
	it.current = &Text{
		IntermediateBase: IntermediateBase{Range: rng, Loc: loc},
		Value:            value,
	}
}

func (it *IntermediateTokenizer) processExpressionStart(token *Token) {
	it.foldExpression()
	global := token.Global()
	it.Tokens = append(it.Tokens, global)
	it.exprStartToken = &global
	it.exprTokens = nil
}

func (it *IntermediateTokenizer) processExpressionEnd(token *Token) {
	global := token.Global()
	it.Tokens = append(it.Tokens, global)
	if it.exprStartToken == nil {
		// stray closing marker, plain text
		it.appendText(global.Value, global.Range, global.Loc)
		return
	}
	start := it.exprStartToken
	it.exprStartToken = nil
	var value strings.Builder
	for _, t := range it.exprTokens {
		value.WriteString(t.Value)
	}
	it.exprTokens = nil
	it.commit()
	it.queue = append(it.queue, &Mustache{
		IntermediateBase: IntermediateBase{
			Range: ast.Range{start.Range[0], global.Range[1]},
			Loc:   ast.Location{Start: start.Loc.Start, End: global.Loc.End},
		},
		Value:      value.String(),
		StartToken: *start,
		EndToken:   global,
	})
}

// foldExpression turns an unterminated interpolation back into plain
// text.
func (it *IntermediateTokenizer) foldExpression() {
	if it.exprStartToken == nil {
		return
	}
	start := it.exprStartToken
	it.exprStartToken = nil
	it.appendText(start.Value, start.Range, start.Loc)
	for _, t := range it.exprTokens {
		it.appendText(t.Value, t.Range, t.Loc)
	}
	it.exprTokens = nil
}
