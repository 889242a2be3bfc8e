package vueparser

import "errors"

// Common errors used throughout the package
var (
	// ErrExpressionParserInit is returned when the built-in expression
	// parser could not be constructed.
	ErrExpressionParserInit = errors.New("failed to initialize the default expression parser")
	// ErrEmptySource indicates the given source text was empty where
	// content is required.
	ErrEmptySource = errors.New("empty source text")
)
