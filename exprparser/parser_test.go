package exprparser

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
	"github.com/vuejs/vue-eslint-parser-sub000/parser"
)

func newParser(t *testing.T) *Parser {
	t.Helper()

	p, err := New()
	assert.NoError(t, err)

	return p
}

func TestParsePlainIdentifier(t *testing.T) {
	p := newParser(t)

	res, err := p.ParseExpression("foo", parser.KindExpression)
	assert.NoError(t, err)

	id, ok := res.Expression.(*ast.Identifier)
	assert.True(t, ok)
	assert.Equal(t, "foo", id.Name)
	assert.Equal(t, ast.Range{0, 3}, id.Range)

	// a lone identifier is its own reference
	assert.Equal(t, 1, len(res.References))
	assert.Equal(t, ast.ReferenceRead, res.References[0].Mode)
	assert.True(t, res.References[0].ID == id)
}

func TestParsePlainExpression(t *testing.T) {
	p := newParser(t)

	res, err := p.ParseExpression("a.b + c", parser.KindExpression)
	assert.NoError(t, err)

	ext, ok := res.Expression.(*ast.ExternalExpression)
	assert.True(t, ok)
	assert.Equal(t, ast.Range{0, 7}, ext.Range)

	var names []string
	for _, ref := range res.References {
		names = append(names, ref.ID.Name)
	}
	// b is a property access, not a reference
	assert.Equal(t, []string{"a", "c"}, names)
	assert.Equal(t, 5, len(res.Tokens))
}

func TestParsePlainEmpty(t *testing.T) {
	p := newParser(t)

	res, err := p.ParseExpression("   ", parser.KindExpression)
	assert.NoError(t, err)
	assert.Zero(t, res.Expression)
	assert.Equal(t, 0, len(res.References))
}

func TestReferenceModes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]ast.ReferenceMode
	}{
		{"assignment", "a = b", map[string]ast.ReferenceMode{"a": ast.ReferenceWrite, "b": ast.ReferenceRead}},
		{"compound assignment", "a += b", map[string]ast.ReferenceMode{"a": ast.ReferenceReadWrite, "b": ast.ReferenceRead}},
		{"postfix increment", "a++", map[string]ast.ReferenceMode{"a": ast.ReferenceReadWrite}},
		{"prefix decrement", "--a", map[string]ast.ReferenceMode{"a": ast.ReferenceReadWrite}},
		{"comparison is a read", "a <= b", map[string]ast.ReferenceMode{"a": ast.ReferenceRead, "b": ast.ReferenceRead}},
	}

	p := newParser(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := p.ParseExpression(tt.input, parser.KindExpression)
			assert.NoError(t, err)

			got := map[string]ast.ReferenceMode{}
			for _, ref := range res.References {
				got[ref.ID.Name] = ref.Mode
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestObjectKeysAreNotReferences(t *testing.T) {
	p := newParser(t)

	res, err := p.ParseExpression("{a: b, c: d}", parser.KindExpression)
	assert.NoError(t, err)

	var names []string
	for _, ref := range res.References {
		names = append(names, ref.ID.Name)
	}
	assert.Equal(t, []string{"b", "d"}, names)
}

func TestParseForStatement(t *testing.T) {
	p := newParser(t)

	res, err := p.ParseExpression("for(let x in xs);", parser.KindForStatement)
	assert.NoError(t, err)

	expr, ok := res.Expression.(*ast.ForExpression)
	assert.True(t, ok)
	assert.Equal(t, ast.Range{8, 15}, expr.Range)

	assert.Equal(t, 1, len(expr.Left))
	alias := expr.Left[0].(*ast.Identifier)
	assert.Equal(t, "x", alias.Name)
	assert.Equal(t, ast.Range{8, 9}, alias.Range)

	right, ok := expr.Right.(*ast.ExternalExpression)
	assert.True(t, ok)
	assert.Equal(t, ast.Range{13, 15}, right.Range)

	// the alias becomes a loop variable, not a reference
	assert.Equal(t, 1, len(res.Variables))
	assert.Equal(t, ast.VariableKindFor, res.Variables[0].Kind)
	assert.True(t, res.Variables[0].ID == alias)

	assert.Equal(t, 1, len(res.References))
	assert.Equal(t, "xs", res.References[0].ID.Name)

	// wrapper tokens are not part of the result
	assert.Equal(t, 3, len(res.Tokens))
	assert.Equal(t, "x", res.Tokens[0].Value)
	assert.Equal(t, "in", res.Tokens[1].Value)
	assert.Equal(t, "xs", res.Tokens[2].Value)
}

func TestParseForStatementDestructuring(t *testing.T) {
	p := newParser(t)

	res, err := p.ParseExpression("for(let [a, b] of pairs);", parser.KindForStatement)
	assert.NoError(t, err)

	expr := res.Expression.(*ast.ForExpression)
	assert.Equal(t, 2, len(expr.Left))
	assert.Equal(t, "a", expr.Left[0].(*ast.Identifier).Name)
	assert.Equal(t, "b", expr.Left[1].(*ast.Identifier).Name)
	assert.Equal(t, 2, len(res.Variables))
	assert.Equal(t, 1, len(res.References))
	assert.Equal(t, "pairs", res.References[0].ID.Name)
}

func TestParseForStatementInvalid(t *testing.T) {
	p := newParser(t)

	_, err := p.ParseExpression("for(let in xs);", parser.KindForStatement)
	assert.Error(t, err)

	perr, ok := err.(*ast.ParseError)
	assert.True(t, ok)
	assert.Equal(t, "x-invalid-expression", perr.Code)
}

func TestParseHandler(t *testing.T) {
	p := newParser(t)

	res, err := p.ParseExpression("void function($event){foo($event);bar()}", parser.KindEventHandler)
	assert.NoError(t, err)

	expr, ok := res.Expression.(*ast.OnExpression)
	assert.True(t, ok)
	assert.Equal(t, ast.Range{22, 39}, expr.Range)
	assert.Equal(t, 2, len(expr.Body))

	var names []string
	for _, ref := range res.References {
		names = append(names, ref.ID.Name)
	}
	// $event is synthetic and never a reference
	assert.Equal(t, []string{"foo", "bar"}, names)
}

func paramIdent(t *testing.T, expr ast.Expression) *ast.Identifier {
	t.Helper()

	id, ok := expr.(*ast.Identifier)
	assert.True(t, ok)

	return id
}

func TestParseSlotParams(t *testing.T) {
	p := newParser(t)

	res, err := p.ParseExpression("function(a, {b}){}", parser.KindSlotParams)
	assert.NoError(t, err)

	expr, ok := res.Expression.(*ast.SlotScopeExpression)
	assert.True(t, ok)
	assert.Equal(t, 2, len(expr.Params))
	assert.Equal(t, "a", paramIdent(t, expr.Params[0]).Name)
	assert.Equal(t, "b", paramIdent(t, expr.Params[1]).Name)

	assert.Equal(t, 2, len(res.Variables))
	assert.Equal(t, ast.VariableKindScope, res.Variables[0].Kind)
	assert.True(t, res.Variables[0].ID == paramIdent(t, expr.Params[0]))
	assert.Equal(t, 0, len(res.References))
}

func TestParseTypeParams(t *testing.T) {
	p := newParser(t)

	res, err := p.ParseExpression("T extends string, U", parser.KindTypeParams)
	assert.NoError(t, err)

	expr, ok := res.Expression.(*ast.GenericExpression)
	assert.True(t, ok)
	assert.Equal(t, 2, len(expr.Params))
	assert.Equal(t, "T", paramIdent(t, expr.Params[0]).Name)
	assert.Equal(t, "U", paramIdent(t, expr.Params[1]).Name)
	assert.Equal(t, []string{"T extends string", "U"}, expr.RawParams)
}

func TestParseTypeParamsNestedGenerics(t *testing.T) {
	p := newParser(t)

	res, err := p.ParseExpression("K extends keyof Map<string, number>, V", parser.KindTypeParams)
	assert.NoError(t, err)

	expr := res.Expression.(*ast.GenericExpression)
	// the comma inside the angle brackets does not split
	assert.Equal(t, 2, len(expr.Params))
	assert.Equal(t, "K", paramIdent(t, expr.Params[0]).Name)
	assert.Equal(t, "V", paramIdent(t, expr.Params[1]).Name)
}
