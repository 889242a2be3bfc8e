// Package tokenstore answers positional token queries over a parsed
// document: first/last token of a node, neighbors of a token, tokens
// between two nodes. The store indexes every token boundary once, so
// anchored lookups are constant time.
package tokenstore

import (
	"sort"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
)

// Ranged is anything with a byte range in the raw source. Both tree
// nodes and tokens qualify.
type Ranged interface {
	SourceRange() ast.Range
}

// Options tunes a query. The zero value means: skip comments, no
// filter, no skipping, and for plural queries no count limit.
type Options struct {
	IncludeComments bool
	Filter          func(*ast.Token) bool
	Skip            int
	Count           int
}

func (o *Options) or() *Options {
	if o == nil {
		return &Options{}
	}
	return o
}

func (o *Options) accepts(t *ast.Token) bool {
	if !o.IncludeComments && isComment(t) {
		return false
	}
	return o.Filter == nil || o.Filter(t)
}

// Store indexes a document's tokens and comments. merged interleaves
// both streams in offset order; anchors maps every token start and end
// offset to the first merged index at or after it.
type Store struct {
	merged  []ast.Token
	anchors map[int]int
}

// New builds a store over the document's token and comment streams.
func New(doc *ast.DocumentFragment) *Store {
	merged := make([]ast.Token, 0, len(doc.Tokens)+len(doc.Comments))
	merged = append(merged, doc.Tokens...)
	merged = append(merged, doc.Comments...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Range[0] < merged[j].Range[0]
	})
	anchors := make(map[int]int, 2*len(merged))
	for i := len(merged) - 1; i >= 0; i-- {
		anchors[merged[i].Range[0]] = i
		if _, ok := anchors[merged[i].Range[1]]; !ok {
			anchors[merged[i].Range[1]] = i + 1
		}
	}
	return &Store{merged: merged, anchors: anchors}
}

// lowerBound returns the first index whose token starts at or after
// offset. Token boundaries hit the anchor map; offsets inside a token
// fall back to a binary search.
func (s *Store) lowerBound(offset int) int {
	if i, ok := s.anchors[offset]; ok {
		return i
	}
	return sort.Search(len(s.merged), func(i int) bool {
		return s.merged[i].Range[0] >= offset
	})
}

// upperBound returns the first index whose token ends after offset. At
// a token boundary this coincides with the anchor.
func (s *Store) upperBound(offset int) int {
	if i, ok := s.anchors[offset]; ok {
		return i
	}
	return sort.Search(len(s.merged), func(i int) bool {
		return s.merged[i].Range[1] > offset
	})
}

// GetFirstToken returns the first token inside r, or nil.
func (s *Store) GetFirstToken(r Ranged, opts *Options) *ast.Token {
	o := opts.or()
	rng := r.SourceRange()
	skip := o.Skip
	for i := s.lowerBound(rng[0]); i < len(s.merged) && s.merged[i].Range[1] <= rng[1]; i++ {
		if !o.accepts(&s.merged[i]) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		return &s.merged[i]
	}
	return nil
}

// GetLastToken returns the last token inside r, or nil.
func (s *Store) GetLastToken(r Ranged, opts *Options) *ast.Token {
	o := opts.or()
	rng := r.SourceRange()
	skip := o.Skip
	for i := s.upperBound(rng[1]) - 1; i >= 0 && s.merged[i].Range[0] >= rng[0]; i-- {
		if s.merged[i].Range[1] > rng[1] || !o.accepts(&s.merged[i]) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		return &s.merged[i]
	}
	return nil
}

// GetTokenBefore returns the closest token ending at or before the start
// of r, or nil.
func (s *Store) GetTokenBefore(r Ranged, opts *Options) *ast.Token {
	o := opts.or()
	rng := r.SourceRange()
	skip := o.Skip
	for i := s.lowerBound(rng[0]) - 1; i >= 0; i-- {
		if s.merged[i].Range[1] > rng[0] || !o.accepts(&s.merged[i]) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		return &s.merged[i]
	}
	return nil
}

// GetTokenAfter returns the closest token starting at or after the end
// of r, or nil.
func (s *Store) GetTokenAfter(r Ranged, opts *Options) *ast.Token {
	o := opts.or()
	rng := r.SourceRange()
	skip := o.Skip
	for i := s.lowerBound(rng[1]); i < len(s.merged); i++ {
		if !o.accepts(&s.merged[i]) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		return &s.merged[i]
	}
	return nil
}

// GetFirstTokens returns the tokens inside r from the start, at most
// Count when set.
func (s *Store) GetFirstTokens(r Ranged, opts *Options) []ast.Token {
	o := opts.or()
	rng := r.SourceRange()
	var out []ast.Token
	for i := s.lowerBound(rng[0]); i < len(s.merged) && s.merged[i].Range[1] <= rng[1]; i++ {
		if !o.accepts(&s.merged[i]) {
			continue
		}
		out = append(out, s.merged[i])
		if o.Count > 0 && len(out) == o.Count {
			break
		}
	}
	return out
}

// GetLastTokens returns the tokens inside r from the end, at most Count
// when set, in source order.
func (s *Store) GetLastTokens(r Ranged, opts *Options) []ast.Token {
	o := opts.or()
	rng := r.SourceRange()
	var out []ast.Token
	for i := s.upperBound(rng[1]) - 1; i >= 0 && s.merged[i].Range[0] >= rng[0]; i-- {
		if s.merged[i].Range[1] > rng[1] || !o.accepts(&s.merged[i]) {
			continue
		}
		out = append(out, s.merged[i])
		if o.Count > 0 && len(out) == o.Count {
			break
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// GetTokens returns every token inside r.
func (s *Store) GetTokens(r Ranged, opts *Options) []ast.Token {
	o := opts.or()
	return s.GetFirstTokens(r, &Options{
		IncludeComments: o.IncludeComments,
		Filter:          o.Filter,
	})
}

// GetTokensBetween returns the tokens after a and before b.
func (s *Store) GetTokensBetween(a, b Ranged, opts *Options) []ast.Token {
	o := opts.or()
	start := a.SourceRange()[1]
	end := b.SourceRange()[0]
	var out []ast.Token
	for i := s.lowerBound(start); i < len(s.merged) && s.merged[i].Range[1] <= end; i++ {
		if !o.accepts(&s.merged[i]) {
			continue
		}
		out = append(out, s.merged[i])
		if o.Count > 0 && len(out) == o.Count {
			break
		}
	}
	return out
}

// GetCommentsBefore returns the comment run immediately preceding r.
func (s *Store) GetCommentsBefore(r Ranged) []ast.Token {
	var run []ast.Token
	cursor := r
	for {
		t := s.GetTokenBefore(cursor, &Options{IncludeComments: true})
		if t == nil || !isComment(t) {
			break
		}
		run = append(run, *t)
		cursor = *t
	}
	for i, j := 0, len(run)-1; i < j; i, j = i+1, j-1 {
		run[i], run[j] = run[j], run[i]
	}
	return run
}

// GetCommentsAfter returns the comment run immediately following r.
func (s *Store) GetCommentsAfter(r Ranged) []ast.Token {
	var run []ast.Token
	cursor := r
	for {
		t := s.GetTokenAfter(cursor, &Options{IncludeComments: true})
		if t == nil || !isComment(t) {
			break
		}
		run = append(run, *t)
		cursor = *t
	}
	return run
}

// CommentsExistBetween reports whether any comment sits between a and b.
func (s *Store) CommentsExistBetween(a, b Ranged) bool {
	tokens := s.GetTokensBetween(a, b, &Options{IncludeComments: true})
	for i := range tokens {
		if isComment(&tokens[i]) {
			return true
		}
	}
	return false
}

func isComment(t *ast.Token) bool {
	switch t.Type {
	case "HTMLComment", "HTMLBogusComment", "Line", "Block":
		return true
	}
	return false
}
