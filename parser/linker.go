package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
	"github.com/vuejs/vue-eslint-parser-sub000/location"
	"github.com/vuejs/vue-eslint-parser-sub000/tokenizer"
)

const expressionSpaces = " \t\n\f\r"

// linker delegates embedded expression text to the expression parser and
// stitches the results back into the document: locations rebased onto
// the raw source, expression tokens spliced into the global stream, and
// references resolved against template variables.
type linker struct {
	opts *Options
	tok  *tokenizer.Tokenizer
	doc  *ast.DocumentFragment
	// fatal holds the first delegate fault that must abort the parse.
	fatal error
}

func (l *linker) calculator() *location.Calculator {
	return location.NewCalculator(l.tok.Gaps, l.tok.LineTerminators)
}

// linkMustache parses an interpolation's content and fills the container.
func (l *linker) linkMustache(container *ast.ExpressionContainer, m *tokenizer.Mustache) {
	code := strings.Trim(m.Value, expressionSpaces)
	if code == "" {
		return
	}
	leading := len(m.Value) - len(strings.TrimLeft(m.Value, expressionSpaces))
	calc := l.calculator().SubCalculatorAfter(m.StartToken.Range[1] + leading)
	res, err := l.opts.ExpressionParser.ParseExpression(code, KindExpression)
	if err != nil {
		l.reportDelegateError(err, calc)
		return
	}
	l.commit(container, res, calc, &tokenSplice{rng: ast.Range{m.StartToken.Range[1], m.EndToken.Range[0]}}, nil)
}

// linkDirectiveValue replaces a directive's literal value with an
// expression container and parses the content according to the directive
// name. Variables the value declares are registered on element before
// references resolve, so a loop alias is visible to its own iterable.
func (l *linker) linkDirectiveValue(d *ast.Directive, element *ast.Element) {
	lit, _ := d.Value.(*ast.Literal)
	if lit == nil {
		return
	}
	container := &ast.ExpressionContainer{
		BaseNode: ast.BaseNode{Range: lit.Range, Loc: lit.Loc, Parent: d},
	}
	d.Value = container

	quote := byte(0)
	if c := l.tok.Text[lit.Range[0]]; c == '"' || c == '\'' {
		quote = c
	}
	innerStart := lit.Range[0]
	if quote != 0 {
		innerStart++
	}
	code := strings.Trim(lit.Value, expressionSpaces)
	if code == "" {
		return
	}
	leading := len(lit.Value) - len(strings.TrimLeft(lit.Value, expressionSpaces))
	calc := l.calculator().SubCalculatorAfter(innerStart + leading)
	splice := l.literalSplice(lit, quote)

	name := d.Key.Name.Name
	switch {
	case name == "for":
		l.linkForValue(container, code, calc, splice, element)
	case name == "on" && d.Key.Argument != nil:
		l.linkWrapped(container, code, calc, splice, "void function($event){", "}", KindEventHandler, element)
	case name == "slot" || name == "slot-scope" || name == "scope":
		l.linkWrapped(container, code, calc, splice, "function(", "){}", KindSlotParams, element)
	case name == "generic" && l.opts.TypeAware:
		res, err := l.opts.ExpressionParser.ParseExpression(code, KindTypeParams)
		if err != nil {
			l.reportDelegateError(err, calc)
			return
		}
		l.commit(container, res, calc, splice, element)
	default:
		res, err := l.opts.ExpressionParser.ParseExpression(code, KindExpression)
		if err != nil {
			l.reportDelegateError(err, calc)
			return
		}
		l.commit(container, res, calc, splice, element)
	}
}

var forAliasParens = regexp.MustCompile(`^\(([\s\S]+?)\)(\s+(?:in|of)\s+[\s\S]+)$`)

// linkForValue handles loop directives. Parenthesized alias lists are
// rewritten to bracket form so the wrapper stays a valid loop head, and
// the bracket tokens are restored to parentheses afterwards.
func (l *linker) linkForValue(container *ast.ExpressionContainer, code string, calc *location.Calculator, splice *tokenSplice, element *ast.Element) {
	processed := code
	hadParens := false
	if m := forAliasParens.FindStringSubmatch(code); m != nil {
		processed = "[" + m[1] + "]" + m[2]
		hadParens = true
	}
	wrapped := "for(let " + processed + ");"
	shifted := calc.SubCalculatorShift(-len("for(let "))
	res, err := l.opts.ExpressionParser.ParseExpression(wrapped, KindForStatement)
	if err != nil {
		l.reportDelegateError(err, shifted)
		return
	}
	if hadParens {
		restoreAliasParens(res.Tokens)
	}
	l.commit(container, res, shifted, splice, element)
}

// restoreAliasParens rewrites the outermost bracket pair back to the
// parentheses the source actually had.
func restoreAliasParens(tokens []ast.Token) {
	depth := 0
	for i := range tokens {
		switch tokens[i].Value {
		case "[":
			if depth == 0 && i == 0 {
				tokens[i].Type = "Punctuator"
				tokens[i].Value = "("
			}
			depth++
		case "]":
			depth--
			if depth == 0 {
				tokens[i].Type = "Punctuator"
				tokens[i].Value = ")"
				return
			}
		}
	}
}

// linkWrapped parses code inside a synthetic wrapper whose prefix length
// determines the offset shift.
func (l *linker) linkWrapped(container *ast.ExpressionContainer, code string, calc *location.Calculator, splice *tokenSplice, prefix, suffix string, kind ExpressionKind, element *ast.Element) {
	shifted := calc.SubCalculatorShift(-len(prefix))
	res, err := l.opts.ExpressionParser.ParseExpression(prefix+code+suffix, kind)
	if err != nil {
		l.reportDelegateError(err, shifted)
		return
	}
	l.commit(container, res, shifted, splice, element)
}

// linkDynamicArgument parses a `[expr]` directive argument. The key's
// identifier token stays whole, so no tokens are spliced.
func (l *linker) linkDynamicArgument(dyn *dynamicArgument) {
	code := strings.Trim(dyn.text, expressionSpaces)
	if code == "" {
		return
	}
	leading := len(dyn.text) - len(strings.TrimLeft(dyn.text, expressionSpaces))
	calc := l.calculator().SubCalculatorAfter(dyn.container.Range[0] + 1 + leading)
	res, err := l.opts.ExpressionParser.ParseExpression(code, KindExpression)
	if err != nil {
		l.reportDelegateError(err, calc)
		return
	}
	l.commit(dyn.container, res, calc, nil, nil)
}

// tokenSplice describes which slice of the global token stream an
// expression's tokens replace, with optional surrounding punctuators.
type tokenSplice struct {
	rng    ast.Range
	prefix []ast.Token
	suffix []ast.Token
}

// literalSplice prepares the replacement of an attribute-value token:
// the quotes survive as punctuator tokens around the expression tokens.
func (l *linker) literalSplice(lit *ast.Literal, quote byte) *tokenSplice {
	s := &tokenSplice{rng: lit.Range}
	if quote == 0 {
		return s
	}
	q := string(quote)
	s.prefix = []ast.Token{{
		Type:  "Punctuator",
		Range: ast.Range{lit.Range[0], lit.Range[0] + 1},
		Loc: ast.Location{
			Start: lit.Loc.Start,
			End:   ast.Position{Line: lit.Loc.Start.Line, Column: lit.Loc.Start.Column + 1},
		},
		Value: q,
	}}
	s.suffix = []ast.Token{{
		Type:  "Punctuator",
		Range: ast.Range{lit.Range[1] - 1, lit.Range[1]},
		Loc: ast.Location{
			Start: ast.Position{Line: lit.Loc.End.Line, Column: lit.Loc.End.Column - 1},
			End:   lit.Loc.End,
		},
		Value: q,
	}}
	return s
}

// commit rebases a delegated result onto the raw source and attaches it
// to the container. Declared variables are registered on element first.
func (l *linker) commit(container *ast.ExpressionContainer, res *ExpressionParseResult, calc *location.Calculator, splice *tokenSplice, element *ast.Element) {
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
	for _, v := range res.Variables {
		if !seen[v.ID] {
			seen[v.ID] = true
			calc.FixLocation(v.ID)
		}
		if element != nil {
			element.Variables = append(element.Variables, v)
		}
	}
	for i := range res.Tokens {
		calc.FixToken(&res.Tokens[i])
	}
	for i := range res.Comments {
		calc.FixToken(&res.Comments[i])
	}
	if splice != nil {
		replacement := append(append(splice.prefix, res.Tokens...), splice.suffix...)
		l.replaceTokens(splice.rng, replacement)
	}
	l.insertComments(res.Comments)
	refs := res.References
	if len(refs) == 0 && l.opts.ScopeAnalyzer != nil {
		if ext, ok := res.Expression.(*ast.ExternalExpression); ok && ext.Program != nil {
			refs = l.opts.ScopeAnalyzer.Analyze(ext.Program)
			for _, ref := range refs {
				calc.FixLocation(ref.ID)
			}
		}
	}
	container.References = append(container.References, refs...)
	l.resolveReferences(container)
}

// fixExpression rebases an expression subtree in place. Opaque external
// programs and handler bodies are left to their owner.
func fixExpression(calc *location.Calculator, expr ast.Expression, seen map[ast.Node]bool) {
	if expr == nil || seen[expr] {
		return
	}
	seen[expr] = true
	calc.FixLocation(expr)
	switch e := expr.(type) {
	case *ast.ForExpression:
		for _, left := range e.Left {
			fixExpression(calc, left, seen)
		}
		fixExpression(calc, e.Right, seen)
	case *ast.SlotScopeExpression:
		for _, p := range e.Params {
			fixExpression(calc, p, seen)
		}
	case *ast.GenericExpression:
		for _, p := range e.Params {
			fixExpression(calc, p, seen)
		}
	}
}

// replaceTokens swaps the global tokens fully inside rng for the given
// replacement, keeping the stream sorted.
func (l *linker) replaceTokens(rng ast.Range, replacement []ast.Token) {
	tokens := l.doc.Tokens
	i := sort.Search(len(tokens), func(k int) bool { return tokens[k].Range[0] >= rng[0] })
	j := i
	for j < len(tokens) && tokens[j].Range[1] <= rng[1] {
		j++
	}
	merged := make([]ast.Token, 0, len(tokens)-(j-i)+len(replacement))
	merged = append(merged, tokens[:i]...)
	merged = append(merged, replacement...)
	merged = append(merged, tokens[j:]...)
	l.doc.Tokens = merged
}

// insertComments merges expression comments into the global comment
// stream by offset.
func (l *linker) insertComments(comments []ast.Token) {
	for _, c := range comments {
		i := sort.Search(len(l.doc.Comments), func(k int) bool {
			return l.doc.Comments[k].Range[0] >= c.Range[0]
		})
		l.doc.Comments = append(l.doc.Comments, ast.Token{})
		copy(l.doc.Comments[i+1:], l.doc.Comments[i:])
		l.doc.Comments[i] = c
	}
}

// resolveReferences links each of the container's references to the
// closest template variable of the same name. Unresolved references fall
// through to the document.
func (l *linker) resolveReferences(container *ast.ExpressionContainer) {
	for _, ref := range container.References {
		if ref.Variable != nil {
			continue
		}
		if v := findVariable(container, ref.ID.Name); v != nil {
			ref.Variable = v
			v.References = append(v.References, ref)
			continue
		}
		l.doc.Through = append(l.doc.Through, ref)
	}
}

func findVariable(node ast.Node, name string) *ast.Variable {
	for el := ast.ParentElement(node); el != nil; el = ast.ParentElement(el) {
		for _, v := range el.Variables {
			if v.ID.Name == name {
				return v
			}
		}
	}
	return nil
}

// reportDelegateError records a recoverable expression parse failure at
// its remapped location, leaving the container's expression nil. A
// delegate fault that is not a *ast.ParseError, or one flagged fatal,
// is stored for the builder to abort with instead.
func (l *linker) reportDelegateError(err error, calc *location.Calculator) {
	pe, ok := err.(*ast.ParseError)
	if !ok {
		fixed := ast.ParseError{Code: "x-expression-error", Message: err.Error(), Fatal: true}
		calc.FixErrorLocation(&fixed)
		l.setFatal(&fixed)
		return
	}
	fixed := *pe
	calc.FixErrorLocation(&fixed)
	if fixed.Fatal {
		l.setFatal(&fixed)
		return
	}
	l.tok.Errors = append(l.tok.Errors, fixed)
}

func (l *linker) setFatal(err error) {
	if l.fatal == nil {
		l.fatal = err
	}
}
