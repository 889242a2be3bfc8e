package exprparser

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
)

func TestLexTokenTypes(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		types  []string
		values []string
	}{
		{
			"member access",
			"a.b",
			[]string{typeIdentifier, typePunctuator, typeIdentifier},
			[]string{"a", ".", "b"},
		},
		{
			"keywords and literals",
			"item in null",
			[]string{typeIdentifier, typeKeyword, typeNull},
			[]string{"item", "in", "null"},
		},
		{
			"booleans",
			"true === false",
			[]string{typeBoolean, typePunctuator, typeBoolean},
			[]string{"true", "===", "false"},
		},
		{
			"numbers",
			"0x1f 1.5e3 10n",
			[]string{typeNumeric, typeNumeric, typeNumeric},
			[]string{"0x1f", "1.5e3", "10n"},
		},
		{
			"strings",
			`'a' + "b"`,
			[]string{typeString, typePunctuator, typeString},
			[]string{"'a'", "+", `"b"`},
		},
		{
			"template with interpolation",
			"`x${a}y`",
			[]string{typeTemplate},
			[]string{"`x${a}y`"},
		},
		{
			"greedy punctuators",
			"a?.b ?? c",
			[]string{typeIdentifier, typePunctuator, typeIdentifier, typePunctuator, typeIdentifier},
			[]string{"a", "?.", "b", "??", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, _, err := lex(tt.input)
			assert.NoError(t, err)

			var types, values []string
			for _, tok := range tokens {
				types = append(types, tok.typ)
				values = append(values, tok.value)
			}

			assert.Equal(t, tt.types, types)
			assert.Equal(t, tt.values, values)
		})
	}
}

func TestLexOffsets(t *testing.T) {
	tokens, _, err := lex("ab + cd")
	assert.NoError(t, err)

	assert.Equal(t, 3, len(tokens))
	assert.Equal(t, 0, tokens[0].start)
	assert.Equal(t, 2, tokens[0].end)
	assert.Equal(t, 5, tokens[2].start)
	assert.Equal(t, 7, tokens[2].end)
}

func TestLexComments(t *testing.T) {
	tokens, comments, err := lex("a /* note */ + b // tail")
	assert.NoError(t, err)

	assert.Equal(t, 3, len(tokens))
	assert.Equal(t, 2, len(comments))

	assert.True(t, comments[0].block)
	assert.Equal(t, " note ", comments[0].value)
	assert.Equal(t, 2, comments[0].start)
	assert.Equal(t, 12, comments[0].end)

	assert.False(t, comments[1].block)
	assert.Equal(t, " tail", comments[1].value)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		index int
	}{
		{"unterminated string", "'abc", 0},
		{"string with newline", "'a\nb'", 0},
		{"unterminated comment", "a /* b", 2},
		{"unterminated template", "`abc", 0},
		{"unclosed paren", "f(a", 1},
		{"unmatched close", "a)", 1},
		{"mismatched pair", "(a]", 2},
		{"unexpected character", "a \\ b", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := lex(tt.input)
			assert.Error(t, err)

			perr, ok := err.(*ast.ParseError)
			assert.True(t, ok)
			assert.Equal(t, "x-invalid-expression", perr.Code)
			assert.Equal(t, tt.index, perr.Index)
		})
	}
}
