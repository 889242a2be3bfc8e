// Package vueparser parses component templates into a position-accurate
// concrete syntax tree. Everything the tree, token stream and error
// list report points at the raw input text, even where the parser
// decoded character references, folded CRLF sequences, or handed
// expression text to a delegated parser.
package vueparser

import (
	"fmt"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
	"github.com/vuejs/vue-eslint-parser-sub000/exprparser"
	"github.com/vuejs/vue-eslint-parser-sub000/parser"
	"github.com/vuejs/vue-eslint-parser-sub000/tokenstore"
)

// Options configures a parse. See parser.Options.
type Options = parser.Options

// ExpressionParser is the delegate interface for embedded expressions.
type ExpressionParser = parser.ExpressionParser

// StoreOptions tunes token store queries. See tokenstore.Options.
type StoreOptions = tokenstore.Options

// Result bundles the parsed document with a token store over its
// streams.
type Result struct {
	Document *ast.DocumentFragment
	Store    *tokenstore.Store
}

// Parse parses template source. When no expression parser is set, the
// built-in delegate is used.
func Parse(code string, opts Options) (*Result, error) {
	if opts.ExpressionParser == nil {
		delegate, err := exprparser.New()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExpressionParserInit, err)
		}
		opts.ExpressionParser = delegate
	}
	doc, err := parser.Parse(code, opts)
	if err != nil {
		return nil, err
	}
	return &Result{
		Document: doc,
		Store:    tokenstore.New(doc),
	}, nil
}
