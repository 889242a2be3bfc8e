package parser

import (
	"github.com/rs/zerolog"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
)

// ExpressionKind tells a delegated parser what synthetic wrapper
// surrounds the text it receives.
type ExpressionKind int

const (
	// KindExpression is a bare expression with no wrapper.
	KindExpression ExpressionKind = iota
	// KindForStatement wraps loop-directive content as
	// `for(let <aliases> <in|of> <iterable>);`.
	KindForStatement
	// KindEventHandler wraps handler content as
	// `void function($event){<body>}`.
	KindEventHandler
	// KindSlotParams wraps slot parameters as `function(<params>){}`.
	KindSlotParams
	// KindTypeParams is a type-parameter list of a type-aware block.
	KindTypeParams
)

// ExpressionParseResult is what a delegated parser returns. Offsets in
// every node and token are relative to the text that was handed in; the
// linker rebases them onto the raw template source.
type ExpressionParseResult struct {
	// Expression is the parsed shape with the synthetic wrapper already
	// stripped. Nil only when the text was empty.
	Expression ast.Expression
	// Tokens covers the content inside the wrapper, sorted by offset.
	Tokens   []ast.Token
	Comments []ast.Token
	// References are the free names the content reads or writes. The
	// synthetic `$event` parameter of a handler wrapper is not free.
	References []*ast.Reference
	// Variables are the names the content declares (loop aliases, slot
	// parameters).
	Variables []*ast.Variable
}

// ExpressionParser parses the embedded expression language. Returned
// errors of type *ast.ParseError keep their offsets relative to the
// given text and are remapped by the caller.
type ExpressionParser interface {
	ParseExpression(code string, kind ExpressionKind) (*ExpressionParseResult, error)
}

// ScopeAnalyzer post-processes a delegated program to extract the
// references the delegate itself did not report.
type ScopeAnalyzer interface {
	Analyze(program any) []*ast.Reference
}

// Options configures a parse.
type Options struct {
	// FilePath is used in log output only.
	FilePath string
	// ExpressionParser handles embedded expressions. Required; callers
	// going through the root package get a default.
	ExpressionParser ExpressionParser
	// ScopeAnalyzer supplements reference extraction for external
	// programs. Optional.
	ScopeAnalyzer ScopeAnalyzer
	// TypeAware enables parsing of type-parameter declarations on
	// script-like elements.
	TypeAware bool
	// Vue2Compat keeps the template-root compatibility behaviors of the
	// older component model.
	Vue2Compat bool
	// Logger receives debug traces of the parse phases. Defaults to a
	// disabled logger.
	Logger *zerolog.Logger
}

func (o *Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	nop := zerolog.Nop()
	return &nop
}
