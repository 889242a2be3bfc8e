package ast

import "fmt"

// Position is a location inside source text. Line is 1-based, Column is
// 0-based, both counted on the raw source before any decoding.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location is a start/end pair of positions.
type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Range is a half-open [start, end) byte range in the raw source.
type Range [2]int

// Covers reports whether r fully contains other.
func (r Range) Covers(other Range) bool {
	return r[0] <= other[0] && other[1] <= r[1]
}

// Token is one token of the final, globally sorted token stream. Type is a
// string because tokens produced by a delegated expression parser carry
// that parser's own type names next to the markup token names.
type Token struct {
	Type  string   `json:"type"`
	Range Range    `json:"range"`
	Loc   Location `json:"loc"`
	Value string   `json:"value"`
}

// SourceRange returns the token's byte range in the raw source.
func (t Token) SourceRange() Range { return t.Range }

// ParseError is a recoverable syntax problem. Errors never stop the parse;
// they are collected on the document in offset order.
type ParseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Index   int    `json:"index"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Fatal   bool   `json:"fatal,omitempty"`
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s (%d:%d)", e.Message, e.Line, e.Column)
}
