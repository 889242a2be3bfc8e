package exprparser

import (
	"strings"

	"github.com/google/cel-go/cel"
	pc "github.com/shibukawa/parsercombinator"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
	"github.com/vuejs/vue-eslint-parser-sub000/parser"
)

// Parser is the built-in expression delegate. Plain expressions are
// validated through CEL where the two dialects overlap; text CEL cannot
// parse is still accepted on the lexer's say-so, with an opaque program
// of nil.
type Parser struct {
	env *cel.Env
}

// New creates the delegate.
func New() (*Parser, error) {
	env, err := cel.NewEnv(
		cel.Variable("_", cel.AnyType),
	)
	if err != nil {
		return nil, err
	}
	return &Parser{env: env}, nil
}

var _ parser.ExpressionParser = (*Parser)(nil)

// ParseExpression implements parser.ExpressionParser.
func (p *Parser) ParseExpression(code string, kind parser.ExpressionKind) (*parser.ExpressionParseResult, error) {
	tokens, comments, err := lex(code)
	if err != nil {
		return nil, err
	}
	switch kind {
	case parser.KindForStatement:
		return p.parseForStatement(code, tokens, comments)
	case parser.KindEventHandler:
		return p.parseHandler(tokens, comments)
	case parser.KindSlotParams:
		return p.parseSlotParams(tokens, comments)
	case parser.KindTypeParams:
		return p.parseTypeParams(code, tokens, comments)
	default:
		return p.parsePlain(code, tokens, comments)
	}
}

// program returns the CEL parse of code, or nil when code uses syntax
// outside the CEL overlap.
func (p *Parser) program(code string) any {
	parsed, issues := p.env.Parse(code)
	if issues != nil && issues.Err() != nil {
		return nil
	}
	return parsed
}

func identNode(t token) *ast.Identifier {
	return &ast.Identifier{
		BaseNode: ast.BaseNode{Range: ast.Range{t.start, t.end}},
		Name:     t.value,
	}
}

func globalTokens(tokens []token) []ast.Token {
	out := make([]ast.Token, len(tokens))
	for i, t := range tokens {
		out[i] = t.global()
	}
	return out
}

func globalComments(comments []comment) []ast.Token {
	out := make([]ast.Token, len(comments))
	for i, c := range comments {
		out[i] = c.global()
	}
	return out
}

func (p *Parser) parsePlain(code string, tokens []token, comments []comment) (*parser.ExpressionParseResult, error) {
	res := &parser.ExpressionParseResult{
		Tokens:   globalTokens(tokens),
		Comments: globalComments(comments),
	}
	if len(tokens) == 0 {
		return res, nil
	}
	res.References = extractReferences(tokens, nil)
	if len(tokens) == 1 && tokens[0].typ == typeIdentifier {
		// reference and expression share the identifier node
		res.Expression = res.References[0].ID
		return res, nil
	}
	res.Expression = &ast.ExternalExpression{
		BaseNode: ast.BaseNode{Range: ast.Range{tokens[0].start, tokens[len(tokens)-1].end}},
		Program:  p.program(code),
	}
	return res, nil
}

// extractReferences lists the free names a token run reads or writes.
// Property accesses and literal object keys do not count; names in
// exclude are synthetic and skipped.
func extractReferences(tokens []token, exclude map[string]bool) []*ast.Reference {
	var refs []*ast.Reference
	for i, t := range tokens {
		if t.typ != typeIdentifier || exclude[t.value] {
			continue
		}
		if i > 0 {
			prev := tokens[i-1]
			if prev.typ == typePunctuator && (prev.value == "." || prev.value == "?.") {
				continue
			}
			if i+1 < len(tokens) && tokens[i+1].value == ":" &&
				(prev.value == "{" || prev.value == ",") {
				continue
			}
		}
		mode := ast.ReferenceRead
		if i+1 < len(tokens) && tokens[i+1].typ == typePunctuator {
			switch next := tokens[i+1].value; {
			case next == "=":
				mode = ast.ReferenceWrite
			case next == "++" || next == "--" || strings.HasSuffix(next, "=") &&
				next != "==" && next != "===" && next != "!=" && next != "!==" &&
				next != "<=" && next != ">=":
				mode = ast.ReferenceReadWrite
			}
		}
		if i > 0 && tokens[i-1].typ == typePunctuator &&
			(tokens[i-1].value == "++" || tokens[i-1].value == "--") {
			mode = ast.ReferenceReadWrite
		}
		refs = append(refs, &ast.Reference{ID: identNode(t), Mode: mode})
	}
	return refs
}

// entity adapts lexed tokens to the combinator library.
type entity struct {
	tok token
}

func toPCTokens(tokens []token) []pc.Token[entity] {
	out := make([]pc.Token[entity], len(tokens))
	for i, t := range tokens {
		out[i] = pc.Token[entity]{
			Type: "raw",
			Pos:  &pc.Pos{Line: 1, Col: t.start + 1, Index: t.start},
			Val:  entity{tok: t},
			Raw:  t.value,
		}
	}
	return out
}

// exact matches one token by its spelling and relabels it.
func exact(label string, values ...string) pc.Parser[entity] {
	return pc.Trace(label, func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
		if len(tokens) == 0 {
			return 0, nil, pc.ErrNotMatch
		}
		for _, v := range values {
			if tokens[0].Val.tok.value == v {
				return 1, []pc.Token[entity]{{Type: label, Pos: tokens[0].Pos, Val: tokens[0].Val, Raw: tokens[0].Raw}}, nil
			}
		}
		return 0, nil, pc.ErrNotMatch
	})
}

// loopAliases consumes the alias patterns of a loop head, up to the
// `in`/`of` keyword at bracket depth zero.
func loopAliases(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
	depth := 0
	for i, t := range tokens {
		tok := t.Val.tok
		if depth == 0 && tok.typ == typeKeyword && (tok.value == "in" || tok.value == "of") {
			if i == 0 {
				return 0, nil, pc.ErrNotMatch
			}
			return i, tokens[:i], nil
		}
		switch tok.value {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		}
	}
	return 0, nil, pc.ErrNotMatch
}

// loopRight consumes the iterable, leaving the wrapper's closing `);`.
func loopRight(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
	if len(tokens) <= 2 {
		return 0, nil, pc.ErrNotMatch
	}
	return len(tokens) - 2, tokens[:len(tokens)-2], nil
}

func (p *Parser) parseForStatement(code string, tokens []token, comments []comment) (*parser.ExpressionParseResult, error) {
	loopHead := pc.Seq(
		exact("for", "for"),
		exact("paren-open", "("),
		exact("let", "let"),
		pc.Trace("loop-aliases", loopAliases),
		exact("in-of", "in", "of"),
		pc.Trace("loop-right", loopRight),
		exact("paren-close", ")"),
		exact("semi", ";"),
		pc.EOS[entity](),
	)
	pctx := pc.NewParseContext[entity]()
	_, matched, err := loopHead(pctx, toPCTokens(tokens))
	if err != nil {
		index := 0
		if len(tokens) > 3 {
			index = tokens[3].start
		}
		return nil, lexError(index, "invalid loop expression")
	}

	var aliasToks, rightToks []token
	var innerToks []token
	section := 0
	for _, m := range matched {
		switch m.Type {
		case "let":
			section = 1
			continue
		case "in-of":
			section = 2
			innerToks = append(innerToks, m.Val.tok)
			continue
		case "paren-close":
			section = 3
		}
		if m.Type != "raw" {
			continue
		}
		switch section {
		case 1:
			aliasToks = append(aliasToks, m.Val.tok)
			innerToks = append(innerToks, m.Val.tok)
		case 2:
			rightToks = append(rightToks, m.Val.tok)
			innerToks = append(innerToks, m.Val.tok)
		}
	}
	if len(rightToks) == 0 {
		return nil, lexError(tokens[3].start, "invalid loop expression")
	}

	var left []ast.Expression
	var variables []*ast.Variable
	for _, t := range aliasToks {
		if t.typ != typeIdentifier {
			continue
		}
		id := identNode(t)
		left = append(left, id)
		variables = append(variables, &ast.Variable{ID: id, Kind: ast.VariableKindFor})
	}

	rightStart := rightToks[0].start
	rightEnd := rightToks[len(rightToks)-1].end
	right := &ast.ExternalExpression{
		BaseNode: ast.BaseNode{Range: ast.Range{rightStart, rightEnd}},
		Program:  p.program(code[rightStart:rightEnd]),
	}
	expr := &ast.ForExpression{
		BaseNode: ast.BaseNode{Range: ast.Range{aliasToks[0].start, rightEnd}},
		Left:     left,
		Right:    right,
	}
	for _, l := range left {
		l.Base().Parent = expr
	}
	right.Parent = expr

	return &parser.ExpressionParseResult{
		Expression: expr,
		Tokens:     globalTokens(innerToks),
		Comments:   globalComments(comments),
		References: extractReferences(rightToks, nil),
		Variables:  variables,
	}, nil
}

// handlerPrefixTokens is `void function ( $event ) {`.
const handlerPrefixTokens = 6

func (p *Parser) parseHandler(tokens []token, comments []comment) (*parser.ExpressionParseResult, error) {
	if len(tokens) < handlerPrefixTokens+1 {
		return nil, lexError(0, "invalid handler expression")
	}
	inner := tokens[handlerPrefixTokens : len(tokens)-1]
	expr := &ast.OnExpression{}
	if len(inner) > 0 {
		expr.Range = ast.Range{inner[0].start, inner[len(inner)-1].end}
	}

	// statements split on top-level semicolons
	depth := 0
	start := 0
	for i := 0; i <= len(inner); i++ {
		atEnd := i == len(inner)
		if !atEnd {
			switch inner[i].value {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			}
		}
		if atEnd || (inner[i].typ == typePunctuator && inner[i].value == ";" && depth == 0) {
			if i > start {
				stmt := inner[start:i]
				ext := &ast.ExternalExpression{
					BaseNode: ast.BaseNode{
						Range:  ast.Range{stmt[0].start, stmt[len(stmt)-1].end},
						Parent: expr,
					},
				}
				expr.Body = append(expr.Body, ext)
			}
			start = i + 1
		}
	}

	return &parser.ExpressionParseResult{
		Expression: expr,
		Tokens:     globalTokens(inner),
		Comments:   globalComments(comments),
		References: extractReferences(inner, map[string]bool{"$event": true}),
	}, nil
}

func (p *Parser) parseSlotParams(tokens []token, comments []comment) (*parser.ExpressionParseResult, error) {
	// wrapper is `function ( <params> ) { }`
	if len(tokens) < 5 {
		return nil, lexError(0, "invalid scope expression")
	}
	inner := tokens[2 : len(tokens)-3]
	expr := &ast.SlotScopeExpression{}
	if len(inner) > 0 {
		expr.Range = ast.Range{inner[0].start, inner[len(inner)-1].end}
	}
	var variables []*ast.Variable
	for i, t := range inner {
		if t.typ != typeIdentifier {
			continue
		}
		if i > 0 && inner[i-1].typ == typePunctuator && (inner[i-1].value == "." || inner[i-1].value == "?.") {
			continue
		}
		id := identNode(t)
		id.Parent = expr
		expr.Params = append(expr.Params, id)
		variables = append(variables, &ast.Variable{ID: id, Kind: ast.VariableKindScope})
	}
	return &parser.ExpressionParseResult{
		Expression: expr,
		Tokens:     globalTokens(inner),
		Comments:   globalComments(comments),
		Variables:  variables,
	}, nil
}

func (p *Parser) parseTypeParams(code string, tokens []token, comments []comment) (*parser.ExpressionParseResult, error) {
	if len(tokens) == 0 {
		return nil, lexError(0, "invalid type parameter list")
	}
	expr := &ast.GenericExpression{
		BaseNode: ast.BaseNode{Range: ast.Range{tokens[0].start, tokens[len(tokens)-1].end}},
	}
	depth := 0
	start := 0
	splitAt := func(i int) {
		seg := tokens[start:i]
		if len(seg) == 0 {
			return
		}
		id := identNode(seg[0])
		id.Parent = expr
		expr.Params = append(expr.Params, id)
		expr.RawParams = append(expr.RawParams, strings.TrimSpace(code[seg[0].start:seg[len(seg)-1].end]))
	}
	for i, t := range tokens {
		switch t.value {
		case "(", "[", "{", "<":
			depth++
		case ")", "]", "}", ">":
			depth--
		case ",":
			if depth == 0 {
				splitAt(i)
				start = i + 1
			}
		}
	}
	splitAt(len(tokens))
	return &parser.ExpressionParseResult{
		Expression: expr,
		Tokens:     globalTokens(tokens),
		Comments:   globalComments(comments),
	}, nil
}
