// Package parser builds a concrete syntax tree from component template
// source. Every node, token and error keeps its exact byte range and
// line/column location in the raw input, including text the tokenizer
// decoded on the way through (character references, CRLF folding) and
// expression text handed off to a delegated parser.
package parser

import (
	"errors"
	"strings"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
	"github.com/vuejs/vue-eslint-parser-sub000/location"
)

// ErrMissingExpressionParser is returned when Parse is called without a
// delegate for embedded expressions.
var ErrMissingExpressionParser = errors.New("parser: options do not carry an expression parser")

// Parse parses template source into a document fragment. Recoverable
// syntax problems are collected on the fragment, not returned; the error
// is non-nil only when the options are unusable or the expression
// delegate failed fatally.
func Parse(code string, opts Options) (*ast.DocumentFragment, error) {
	if opts.ExpressionParser == nil {
		return nil, ErrMissingExpressionParser
	}
	if isExpressionSource(code, opts.FilePath) {
		return parseExpressionSource(code, &opts)
	}
	return newTreeBuilder(code, &opts).build()
}

// isExpressionSource reports whether the input skips markup tokenization
// entirely: text that does not open with a tag and does not come from a
// component file is expression-language source, handed to the delegate
// wholesale.
func isExpressionSource(code, filePath string) bool {
	trimmed := strings.TrimLeft(code, " \t\n\f\r")
	if trimmed == "" || trimmed[0] == '<' {
		return false
	}
	return !strings.HasSuffix(strings.ToLower(filePath), ".vue")
}

// parseExpressionSource delegates the full input as one expression. The
// document's single child is the resulting container; offsets need no
// gap correction because no markup decoding took place.
func parseExpressionSource(code string, opts *Options) (*ast.DocumentFragment, error) {
	calc := location.NewCalculator(nil, lineTerminatorOffsets(code))
	doc := &ast.DocumentFragment{BaseNode: ast.BaseNode{
		Range: ast.Range{0, len(code)},
		Loc: ast.Location{
			Start: calc.Location(0),
			End:   calc.Location(len(code)),
		},
	}}
	container := &ast.ExpressionContainer{BaseNode: ast.BaseNode{
		Range:  doc.Range,
		Loc:    doc.Loc,
		Parent: doc,
	}}
	doc.Children = []ast.Node{container}

	res, err := opts.ExpressionParser.ParseExpression(code, KindExpression)
	if err != nil {
		pe, ok := err.(*ast.ParseError)
		if !ok {
			pe = &ast.ParseError{Code: "x-expression-error", Message: err.Error()}
		}
		fixed := *pe
		calc.FixErrorLocation(&fixed)
		fixed.Fatal = true
		return nil, &fixed
	}

	seen := map[ast.Node]bool{}
	if res.Expression != nil {
		fixExpression(calc, res.Expression, seen)
		res.Expression.Base().Parent = container
		container.Expression = res.Expression
	}
	for _, ref := range res.References {
		if !seen[ref.ID] {
			seen[ref.ID] = true
			calc.FixLocation(ref.ID)
		}
	}
	for i := range res.Tokens {
		calc.FixToken(&res.Tokens[i])
	}
	for i := range res.Comments {
		calc.FixToken(&res.Comments[i])
	}
	doc.Tokens = res.Tokens
	doc.Comments = res.Comments
	container.References = res.References
	doc.Through = append(doc.Through, res.References...)
	return doc, nil
}

// lineTerminatorOffsets records the offset just after each terminator in
// undecoded text. CRLF counts once, at its LF.
func lineTerminatorOffsets(code string) []int {
	var lts []int
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '\n':
			lts = append(lts, i+1)
		case '\r':
			if i+1 < len(code) && code[i+1] == '\n' {
				continue
			}
			lts = append(lts, i+1)
		}
	}
	return lts
}
