package parser

import (
	"regexp"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
)

// directiveNamePattern matches attribute names that carry an embedded
// expression: a `v-` prefix or a shorthand sigil, not ending in a
// separator.
var directiveNamePattern = regexp.MustCompile(`^(?:v-|[.:@#]).*[^.:@#]$`)

// isDirectiveName reports whether an attribute spelling makes the
// attribute a directive. The legacy scope attribute counts even though
// it has no prefix.
func isDirectiveName(rawName string) bool {
	return directiveNamePattern.MatchString(rawName) || rawName == "slot-scope"
}

// keySegment is a dot-separated piece of a directive key with its byte
// offset inside the key text.
type keySegment struct {
	start int
	text  string
}

// splitKeySegments splits on `.` outside square brackets, so dynamic
// arguments keep member accesses intact.
func splitKeySegments(text string) []keySegment {
	var segs []keySegment
	start := 0
	depth := 0
	for i, r := range text {
		switch {
		case r == '[':
			depth++
		case r == ']' && depth > 0:
			depth--
		case r == '.' && depth == 0:
			segs = append(segs, keySegment{start, text[start:i]})
			start = i + len(".")
		}
	}
	return append(segs, keySegment{start, text[start:]})
}

// indexOfArgument finds the `:` separating directive name from argument,
// outside square brackets. Returns -1 when there is none.
func indexOfArgument(text string) int {
	depth := 0
	for i, r := range text {
		switch {
		case r == '[':
			depth++
		case r == ']' && depth > 0:
			depth--
		case r == ':' && depth == 0:
			return i
		}
	}
	return -1
}

// dynamicArgument is a `[expr]` directive argument awaiting expression
// linking. Text excludes the brackets.
type dynamicArgument struct {
	container *ast.ExpressionContainer
	text      string
}

// parseDirectiveKey parses the static structure of a directive key. The
// returned dynamic argument, if any, still has a nil expression; the
// caller links it.
func parseDirectiveKey(key *ast.Identifier) (*ast.DirectiveKey, *dynamicArgument) {
	text := key.RawName
	base := key.Range[0]
	baseLoc := key.Loc.Start

	ident := func(start, end int, name, raw string) *ast.Identifier {
		return &ast.Identifier{
			BaseNode: ast.BaseNode{
				Range: ast.Range{base + start, base + end},
				Loc: ast.Location{
					Start: ast.Position{Line: baseLoc.Line, Column: baseLoc.Column + start},
					End:   ast.Position{Line: baseLoc.Line, Column: baseLoc.Column + end},
				},
			},
			Name:    name,
			RawName: raw,
		}
	}

	dk := &ast.DirectiveKey{BaseNode: ast.BaseNode{Range: key.Range, Loc: key.Loc}}
	segs := splitKeySegments(text)
	first := segs[0]
	rest := segs[1:]

	var argStart int
	var argText string
	switch text[0] {
	case ':':
		dk.Name = ident(0, 1, "bind", ":")
		argStart, argText = 1, first.text[1:]
	case '@':
		dk.Name = ident(0, 1, "on", "@")
		argStart, argText = 1, first.text[1:]
	case '#':
		dk.Name = ident(0, 1, "slot", "#")
		argStart, argText = 1, first.text[1:]
	case '.':
		// `.prop` shorthand binds with an implied prop modifier.
		dk.Name = ident(0, 1, "bind", ".")
		if len(rest) > 0 {
			argStart, argText = rest[0].start, rest[0].text
			rest = rest[1:]
		}
		dk.Modifiers = append(dk.Modifiers, ident(0, 1, "prop", "."))
	default:
		nameEnd := len(first.text)
		if i := indexOfArgument(first.text); i >= 0 {
			nameEnd = i
			argStart, argText = i+1, first.text[i+1:]
		}
		name := text[:nameEnd]
		// the legacy scope attributes have no `v-` prefix to strip
		if len(name) > 2 && name[:2] == "v-" {
			name = name[2:]
		}
		dk.Name = ident(0, nameEnd, name, text[:nameEnd])
	}

	var dyn *dynamicArgument
	if argText != "" {
		argEnd := argStart + len(argText)
		if argText[0] == '[' {
			container := &ast.ExpressionContainer{
				BaseNode: ident(argStart, argEnd, "", "").BaseNode,
			}
			inner := argText[1:]
			if n := len(inner); n > 0 && inner[n-1] == ']' {
				inner = inner[:n-1]
			}
			dyn = &dynamicArgument{container: container, text: inner}
			dk.Argument = container
		} else {
			dk.Argument = ident(argStart, argEnd, argText, argText)
		}
	}

	for _, seg := range rest {
		if seg.text == "" {
			continue
		}
		dk.Modifiers = append(dk.Modifiers, ident(seg.start, seg.start+len(seg.text), seg.text, seg.text))
	}

	if dk.Name != nil {
		dk.Name.Parent = dk
	}
	if dk.Argument != nil {
		dk.Argument.Base().Parent = dk
	}
	for _, m := range dk.Modifiers {
		m.Parent = dk
	}
	return dk, dyn
}
