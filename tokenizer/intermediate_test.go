package tokenizer

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
)

func collectIntermediate(src string) (*IntermediateTokenizer, []IntermediateToken) {
	it := NewIntermediateTokenizer(New(src))

	var tokens []IntermediateToken

	for {
		token := it.NextToken()
		if token == nil {
			return it, tokens
		}

		tokens = append(tokens, token)
	}
}

func TestIntermediateStartTag(t *testing.T) {
	_, tokens := collectIntermediate(`<DIV id="a" :class="b">`)

	assert.Equal(t, 1, len(tokens))

	tag, ok := tokens[0].(*StartTag)
	assert.True(t, ok)
	assert.Equal(t, "div", tag.Name)
	assert.Equal(t, "DIV", tag.RawName)
	assert.False(t, tag.SelfClosing)
	assert.Equal(t, ast.Range{0, 23}, tag.Range)
	assert.Equal(t, 2, len(tag.Attributes))

	assert.Equal(t, "id", tag.Attributes[0].Key.Name)
	assert.Equal(t, "a", tag.Attributes[0].Value.Value)
	assert.Equal(t, ":class", tag.Attributes[1].Key.Name)

	// attribute ranges cover the value literal
	assert.Equal(t, ast.Range{5, 11}, tag.Attributes[0].Range)
}

func TestIntermediateSelfClosing(t *testing.T) {
	_, tokens := collectIntermediate(`<img src="x"/>`)

	tag := tokens[0].(*StartTag)
	assert.True(t, tag.SelfClosing)
	assert.Equal(t, ast.Range{0, 14}, tag.Range)
}

func TestIntermediateDuplicateAttribute(t *testing.T) {
	it, tokens := collectIntermediate(`<div a="1" A="2">`)

	tag := tokens[0].(*StartTag)
	assert.Equal(t, 2, len(tag.Attributes))
	assert.Equal(t, 1, len(it.Tokenizer.Errors))
	assert.Equal(t, "duplicate-attribute", it.Tokenizer.Errors[0].Code)
}

func TestIntermediateEndTagWithAttributes(t *testing.T) {
	it, tokens := collectIntermediate(`</div a="1" b="2">`)

	tag, ok := tokens[0].(*EndTag)
	assert.True(t, ok)
	assert.Equal(t, "div", tag.Name)

	// reported once per end tag
	assert.Equal(t, 1, len(it.Tokenizer.Errors))
	assert.Equal(t, "end-tag-with-attributes", it.Tokenizer.Errors[0].Code)
}

func TestIntermediateEndTagWithSolidus(t *testing.T) {
	it, _ := collectIntermediate(`</div/>`)

	assert.Equal(t, 1, len(it.Tokenizer.Errors))
	assert.Equal(t, "end-tag-with-trailing-solidus", it.Tokenizer.Errors[0].Code)
}

func TestIntermediateMustache(t *testing.T) {
	_, tokens := collectIntermediate(`a{{ b }}c`)

	assert.Equal(t, 3, len(tokens))

	text := tokens[0].(*Text)
	assert.Equal(t, "a", text.Value)

	mustache := tokens[1].(*Mustache)
	assert.Equal(t, " b ", mustache.Value)
	assert.Equal(t, ast.Range{1, 8}, mustache.Range)
	assert.Equal(t, "VExpressionStart", mustache.StartToken.Type)
	assert.Equal(t, ast.Range{1, 3}, mustache.StartToken.Range)
	assert.Equal(t, "VExpressionEnd", mustache.EndToken.Type)
	assert.Equal(t, ast.Range{6, 8}, mustache.EndToken.Range)

	tail := tokens[2].(*Text)
	assert.Equal(t, "c", tail.Value)
}

func TestIntermediateUnterminatedMustache(t *testing.T) {
	_, tokens := collectIntermediate(`{{ b`)

	assert.Equal(t, 1, len(tokens))

	text, ok := tokens[0].(*Text)
	assert.True(t, ok)
	assert.Equal(t, "{{ b", text.Value)
	assert.Equal(t, ast.Range{0, 4}, text.Range)
}

func TestIntermediateStrayClosingMarker(t *testing.T) {
	_, tokens := collectIntermediate(`a }} b`)

	assert.Equal(t, 1, len(tokens))

	text := tokens[0].(*Text)
	assert.Equal(t, "a }} b", text.Value)
}

func TestIntermediateTextAcrossComment(t *testing.T) {
	it, tokens := collectIntermediate(`a<!--x-->b`)

	assert.Equal(t, 1, len(tokens))

	text := tokens[0].(*Text)
	// the comment's content is not part of the text value
	assert.Equal(t, "ab", text.Value)
	assert.Equal(t, ast.Range{0, 10}, text.Range)

	assert.Equal(t, 1, len(it.Comments))
	assert.Equal(t, "HTMLComment", it.Comments[0].Type)
	assert.Equal(t, "x", it.Comments[0].Value)
}

func TestIntermediateGlobalTokenStream(t *testing.T) {
	it, _ := collectIntermediate(`<div>{{ x }}</div>`)

	var types []string
	for _, token := range it.Tokens {
		types = append(types, token.Type)
	}

	assert.Equal(t, []string{
		"HTMLTagOpen",
		"HTMLTagClose",
		"VExpressionStart",
		"HTMLText",
		"VExpressionEnd",
		"HTMLEndTagOpen",
		"HTMLTagClose",
	}, types)
}
