package tokenizer

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
)

func collectTokens(t *Tokenizer) []Token {
	var tokens []Token

	for {
		token := t.NextToken()
		if token == nil {
			return tokens
		}

		tokens = append(tokens, *token)
	}
}

func TestTokenizeStartTag(t *testing.T) {
	tokenizer := New(`<div class="a">x</div>`)
	tokens := collectTokens(tokenizer)

	expected := []Token{
		{Type: HTMLTagOpen, Range: ast.Range{0, 4}, Value: "div"},
		{Type: HTMLIdentifier, Range: ast.Range{5, 10}, Value: "class"},
		{Type: HTMLAssociation, Range: ast.Range{10, 11}, Value: "="},
		{Type: HTMLLiteral, Range: ast.Range{11, 14}, Value: "a"},
		{Type: HTMLTagClose, Range: ast.Range{14, 15}, Value: ""},
		{Type: HTMLText, Range: ast.Range{15, 16}, Value: "x"},
		{Type: HTMLEndTagOpen, Range: ast.Range{16, 21}, Value: "div"},
		{Type: HTMLTagClose, Range: ast.Range{21, 22}, Value: ""},
	}

	assert.Equal(t, len(expected), len(tokens))

	for i, want := range expected {
		assert.Equal(t, want.Type, tokens[i].Type)
		assert.Equal(t, want.Range, tokens[i].Range)
		assert.Equal(t, want.Value, tokens[i].Value)
	}

	assert.Equal(t, 0, len(tokenizer.Errors))
}

func TestTokenizeSelfClosing(t *testing.T) {
	tokenizer := New(`<br/>`)
	tokens := collectTokens(tokenizer)

	assert.Equal(t, 2, len(tokens))
	assert.Equal(t, HTMLTagOpen, tokens[0].Type)
	assert.Equal(t, HTMLSelfClosingTagClose, tokens[1].Type)
	assert.Equal(t, ast.Range{3, 5}, tokens[1].Range)
}

func TestTokenizeCharacterReferences(t *testing.T) {
	tokenizer := New(`a&lt;b&amp;&#x41;`)
	tokens := collectTokens(tokenizer)

	assert.Equal(t, 1, len(tokens))
	assert.Equal(t, HTMLText, tokens[0].Type)
	assert.Equal(t, "a<b&A", tokens[0].Value)
	assert.Equal(t, ast.Range{0, 17}, tokens[0].Range)

	// one gap per removed byte
	assert.Equal(t, []int{2, 3, 4, 7, 8, 9, 10, 12, 13, 14, 15, 16}, tokenizer.Gaps)
	assert.Equal(t, 0, len(tokenizer.Errors))
}

func TestTokenizeLegacyReferenceWithoutSemicolon(t *testing.T) {
	tokenizer := New(`a&amp b`)
	tokens := collectTokens(tokenizer)

	assert.Equal(t, 1, len(tokens))
	assert.Equal(t, "a& b", tokens[0].Value)
	assert.Equal(t, []int{2, 3, 4}, tokenizer.Gaps)
	assert.Equal(t, 1, len(tokenizer.Errors))
	assert.Equal(t, "missing-semicolon-after-character-reference", tokenizer.Errors[0].Code)
}

func TestTokenizeNumericReferenceErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value string
		code  string
	}{
		{"null", "&#0;", "�", "null-character-reference"},
		{"surrogate", "&#xD800;", "�", "surrogate-character-reference"},
		{"out of range", "&#x110000;", "�", "character-reference-outside-unicode-range"},
		{"c1 control", "&#x80;", "€", "control-character-reference"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenizer := New(tt.input)
			tokens := collectTokens(tokenizer)

			assert.Equal(t, 1, len(tokens))
			assert.Equal(t, tt.value, tokens[0].Value)
			assert.Equal(t, 1, len(tokenizer.Errors))
			assert.Equal(t, tt.code, tokenizer.Errors[0].Code)
		})
	}
}

func TestTokenizeCRLF(t *testing.T) {
	tokenizer := New("a\r\nb")
	tokens := collectTokens(tokenizer)

	assert.Equal(t, 1, len(tokens))
	assert.Equal(t, "a\nb", tokens[0].Value)
	assert.Equal(t, ast.Range{0, 4}, tokens[0].Range)
	assert.Equal(t, []int{2}, tokenizer.Gaps)
	assert.Equal(t, []int{3}, tokenizer.LineTerminators)
	assert.Equal(t, ast.Position{Line: 2, Column: 1}, tokens[0].Loc.End)
}

func TestTokenizeLoneCR(t *testing.T) {
	tokenizer := New("a\rb")
	tokens := collectTokens(tokenizer)

	assert.Equal(t, 1, len(tokens))
	assert.Equal(t, "a\nb", tokens[0].Value)
	assert.Equal(t, 0, len(tokenizer.Gaps))
	assert.Equal(t, []int{2}, tokenizer.LineTerminators)
}

func TestTokenizeInterpolationMarkers(t *testing.T) {
	tokenizer := New(`{{ x }}`)
	tokens := collectTokens(tokenizer)

	assert.Equal(t, 3, len(tokens))
	assert.Equal(t, VExpressionStart, tokens[0].Type)
	assert.Equal(t, ast.Range{0, 2}, tokens[0].Range)
	assert.Equal(t, HTMLText, tokens[1].Type)
	assert.Equal(t, " x ", tokens[1].Value)
	assert.Equal(t, VExpressionEnd, tokens[2].Type)
	assert.Equal(t, ast.Range{5, 7}, tokens[2].Range)
}

func TestTokenizeSingleBraceIsText(t *testing.T) {
	tokenizer := New(`{x}`)
	tokens := collectTokens(tokenizer)

	assert.Equal(t, 1, len(tokens))
	assert.Equal(t, HTMLText, tokens[0].Type)
	assert.Equal(t, "{x}", tokens[0].Value)
}

func TestTokenizeMarkersDisabled(t *testing.T) {
	tokenizer := New(`{{ x }}`)
	tokenizer.ExpressionEnabled = false
	tokens := collectTokens(tokenizer)

	assert.Equal(t, 1, len(tokens))
	assert.Equal(t, HTMLText, tokens[0].Type)
	assert.Equal(t, "{{ x }}", tokens[0].Value)
}

func TestTokenizeRawText(t *testing.T) {
	tokenizer := New("a &lt; b</script>x")
	tokenizer.SetContentModel(RawTextModel, "script")
	tokens := collectTokens(tokenizer)

	assert.Equal(t, 4, len(tokens))
	assert.Equal(t, HTMLRawText, tokens[0].Type)
	// raw text is not decoded
	assert.Equal(t, "a &lt; b", tokens[0].Value)
	assert.Equal(t, HTMLEndTagOpen, tokens[1].Type)
	assert.Equal(t, "script", tokens[1].Value)
	assert.Equal(t, HTMLTagClose, tokens[2].Type)
	assert.Equal(t, HTMLText, tokens[3].Type)
	assert.Equal(t, 0, len(tokenizer.Gaps))
}

func TestTokenizeRawTextIgnoresOtherEndTags(t *testing.T) {
	tokenizer := New("</div></script>")
	tokenizer.SetContentModel(RawTextModel, "script")
	tokens := collectTokens(tokenizer)

	assert.Equal(t, 3, len(tokens))
	assert.Equal(t, HTMLRawText, tokens[0].Type)
	assert.Equal(t, "</div>", tokens[0].Value)
	assert.Equal(t, HTMLEndTagOpen, tokens[1].Type)
	assert.Equal(t, "script", tokens[1].Value)
}

func TestTokenizeRCData(t *testing.T) {
	tokenizer := New("a&lt;b</title>")
	tokenizer.SetContentModel(RCDataModel, "title")
	tokens := collectTokens(tokenizer)

	assert.Equal(t, 3, len(tokens))
	assert.Equal(t, HTMLRcDataText, tokens[0].Type)
	// RCDATA decodes entities
	assert.Equal(t, "a<b", tokens[0].Value)
	assert.Equal(t, ast.Range{0, 6}, tokens[0].Range)
	assert.Equal(t, []int{2, 3, 4}, tokenizer.Gaps)
	assert.Equal(t, HTMLEndTagOpen, tokens[1].Type)
	assert.Equal(t, ast.Range{6, 13}, tokens[1].Range)
}

func TestTokenizeComment(t *testing.T) {
	tokenizer := New(`<!-- hi -->`)
	tokens := collectTokens(tokenizer)

	assert.Equal(t, 1, len(tokens))
	assert.Equal(t, HTMLComment, tokens[0].Type)
	assert.Equal(t, " hi ", tokens[0].Value)
	assert.Equal(t, ast.Range{0, 11}, tokens[0].Range)
	assert.Equal(t, 0, len(tokenizer.Errors))
}

func TestTokenizeBogusComment(t *testing.T) {
	tokenizer := New(`<?xml?>`)
	tokens := collectTokens(tokenizer)

	assert.Equal(t, 1, len(tokens))
	assert.Equal(t, HTMLBogusComment, tokens[0].Type)
	assert.Equal(t, "?xml?", tokens[0].Value)
	assert.Equal(t, ast.Range{0, 7}, tokens[0].Range)
	assert.Equal(t, 1, len(tokenizer.Errors))
	assert.Equal(t, "unexpected-question-mark-instead-of-tag-name", tokenizer.Errors[0].Code)
}

func TestTokenizeCDataInHTML(t *testing.T) {
	tokenizer := New(`<![CDATA[x]]>`)
	tokens := collectTokens(tokenizer)

	assert.Equal(t, 1, len(tokens))
	assert.Equal(t, HTMLBogusComment, tokens[0].Type)
	assert.Equal(t, 1, len(tokenizer.Errors))
	assert.Equal(t, "cdata-in-html-content", tokenizer.Errors[0].Code)
}

func TestTokenizeCDataInForeignContent(t *testing.T) {
	tokenizer := New(`<![CDATA[a<b]]>`)
	tokenizer.Namespace = ast.NamespaceSVG
	tokens := collectTokens(tokenizer)

	assert.Equal(t, 1, len(tokens))
	assert.Equal(t, HTMLCDataText, tokens[0].Type)
	assert.Equal(t, "a<b", tokens[0].Value)
	assert.Equal(t, 0, len(tokenizer.Errors))
}

func TestTokenizeAttributeValueEntities(t *testing.T) {
	tokenizer := New(`<div v-show="c &lt; 3">`)
	tokens := collectTokens(tokenizer)

	assert.Equal(t, 5, len(tokens))
	assert.Equal(t, HTMLLiteral, tokens[3].Type)
	assert.Equal(t, "c < 3", tokens[3].Value)
	// range covers both quotes
	assert.Equal(t, ast.Range{12, 22}, tokens[3].Range)
	assert.Equal(t, []int{16, 17, 18}, tokenizer.Gaps)
}

func TestTokenizeErrorPositions(t *testing.T) {
	tokenizer := New("x\n</>")
	collectTokens(tokenizer)

	assert.Equal(t, 1, len(tokenizer.Errors))
	err := tokenizer.Errors[0]
	assert.Equal(t, "missing-end-tag-name", err.Code)
	assert.Equal(t, 2, err.Line)
	assert.Equal(t, 2, err.Column)
}

func TestTokenizeNullCharacter(t *testing.T) {
	tokenizer := New("\x00")
	tokens := collectTokens(tokenizer)

	assert.Equal(t, 1, len(tokens))
	assert.Equal(t, "�", tokens[0].Value)
	assert.Equal(t, ast.Range{0, 1}, tokens[0].Range)
	assert.Equal(t, "unexpected-null-character", tokenizer.Errors[0].Code)
}
