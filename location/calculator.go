// Package location converts between raw source offsets, decoded text
// offsets, and line/column pairs. The tokenizer records where decoding and
// line-ending normalization removed characters (gaps) and where line
// terminators sit; a Calculator built from those tables rebases the
// offsets a delegated expression parser reports back onto the raw source.
package location

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
)

// Calculator maps offsets inside a decoded sub-text back to raw source
// offsets and locations. It is cheap to derive sub-calculators from; the
// gap and line-terminator tables are shared, never copied.
type Calculator struct {
	gapOffsets     []int
	ltOffsets      []int
	baseOffset     int
	baseIndexOfGap int
	shiftOffset    int
}

// NewCalculator creates a calculator over the given tables. gapOffsets
// holds the raw offset of every character that decoding removed, in
// ascending order; ltOffsets holds the raw offset just after every line
// terminator, in ascending order.
func NewCalculator(gapOffsets, ltOffsets []int) *Calculator {
	return &Calculator{
		gapOffsets: gapOffsets,
		ltOffsets:  ltOffsets,
	}
}

// upperBound returns the number of elements in a that are <= value.
func upperBound(a []int, value int) int {
	return sort.SearchInts(a, value+1)
}

// SubCalculatorAfter returns a calculator rebased so that decoded offset 0
// corresponds to the raw offset base of this calculator plus offset.
func (c *Calculator) SubCalculatorAfter(offset int) *Calculator {
	base := c.baseOffset + offset
	return &Calculator{
		gapOffsets:     c.gapOffsets,
		ltOffsets:      c.ltOffsets,
		baseOffset:     base,
		baseIndexOfGap: upperBound(c.gapOffsets, base-1),
		shiftOffset:    c.shiftOffset,
	}
}

// SubCalculatorShift returns a calculator whose reported offsets are
// shifted by offset before mapping. A negative shift removes a synthetic
// wrapper prefix inserted before delegation.
func (c *Calculator) SubCalculatorShift(offset int) *Calculator {
	return &Calculator{
		gapOffsets:     c.gapOffsets,
		ltOffsets:      c.ltOffsets,
		baseOffset:     c.baseOffset,
		baseIndexOfGap: c.baseIndexOfGap,
		shiftOffset:    c.shiftOffset + offset,
	}
}

// FixedOffset converts a decoded offset reported by a delegated parser to
// a raw source offset. The gap lookup is a binary search for the gaps
// before the candidate position followed by a short walk over adjacent
// gaps, because every gap at or before the result pushes the result
// further right.
func (c *Calculator) FixedOffset(offset int) int {
	shifted := offset + c.shiftOffset
	pos := c.baseOffset + shifted
	g := upperBound(c.gapOffsets, pos)
	if g < c.baseIndexOfGap {
		g = c.baseIndexOfGap
	}
	pos += g - c.baseIndexOfGap
	for g < len(c.gapOffsets) && c.gapOffsets[g] <= pos {
		g++
		pos++
	}
	return pos
}

// Location returns the line/column of a raw offset. Line lookup is a
// binary search over the line-terminator table.
func (c *Calculator) Location(rawOffset int) ast.Position {
	line := upperBound(c.ltOffsets, rawOffset) + 1
	column := rawOffset
	if line > 1 {
		column = rawOffset - c.ltOffsets[line-2]
	}
	return ast.Position{Line: line, Column: column}
}

// FixLocation rewrites a node's range and location in place from decoded
// offsets to raw offsets. Applying it through a zero-base, zero-shift
// calculator over empty tables is a no-op.
func (c *Calculator) FixLocation(node ast.Node) {
	b := node.Base()
	b.Range[0] = c.FixedOffset(b.Range[0])
	b.Range[1] = c.FixedOffset(b.Range[1])
	b.Loc.Start = c.Location(b.Range[0])
	b.Loc.End = c.Location(b.Range[1])
}

// FixToken rewrites a token's range and location in place, like
// FixLocation does for nodes.
func (c *Calculator) FixToken(token *ast.Token) {
	token.Range[0] = c.FixedOffset(token.Range[0])
	token.Range[1] = c.FixedOffset(token.Range[1])
	token.Loc.Start = c.Location(token.Range[0])
	token.Loc.End = c.Location(token.Range[1])
}

var errorLocPattern = regexp.MustCompile(`\(\d+:\d+\)`)

// FixErrorLocation rewrites a delegated parser's error in place: the
// offset and line/column fields are remapped, and any trailing
// `(line:column)` marker embedded in the message text is rewritten to the
// corrected location.
func (c *Calculator) FixErrorLocation(err *ast.ParseError) {
	err.Index = c.FixedOffset(err.Index)
	pos := c.Location(err.Index)
	err.Line = pos.Line
	err.Column = pos.Column
	err.Message = errorLocPattern.ReplaceAllString(
		err.Message,
		"("+strconv.Itoa(pos.Line)+":"+strconv.Itoa(pos.Column)+")",
	)
}
