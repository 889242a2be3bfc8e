// Package tokenizer scans component template source into primitive markup
// tokens. The scanner is a content-model state machine: normal data
// decodes character references and recognizes interpolation markers,
// RCDATA decodes but keeps markup inert, and RAWTEXT passes everything
// through until the matching end tag. While decoding, the tokenizer
// records every removed character's raw offset (a gap) and every line
// terminator so that locations can be mapped back onto the raw source
// later.
package tokenizer

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
)

// ContentModel selects how the current element's content is scanned.
type ContentModel int

const (
	// DataModel decodes entities, recognizes interpolation markers and
	// sub-elements.
	DataModel ContentModel = iota
	// RCDataModel decodes entities but only the matching end tag closes
	// it (title, textarea).
	RCDataModel
	// RawTextModel passes text through untouched until the matching end
	// tag (script, style).
	RawTextModel
)

type state int

const (
	stateData state = iota
	stateTagOpen
	stateEndTagOpen
	stateTagName
	stateRCData
	stateRCDataLessThanSign
	stateRCDataEndTagOpen
	stateRCDataEndTagName
	stateRawText
	stateRawTextLessThanSign
	stateRawTextEndTagOpen
	stateRawTextEndTagName
	stateBeforeAttributeName
	stateAttributeName
	stateAfterAttributeName
	stateBeforeAttributeValue
	stateAttributeValueDoubleQuoted
	stateAttributeValueSingleQuoted
	stateAttributeValueUnquoted
	stateAfterAttributeValueQuoted
	stateSelfClosingStartTag
	stateBogusComment
	stateMarkupDeclarationOpen
	stateCommentStart
	stateCommentStartDash
	stateComment
	stateCommentLessThanSign
	stateCommentLessThanSignBang
	stateCommentLessThanSignBangDash
	stateCommentLessThanSignBangDashDash
	stateCommentEndDash
	stateCommentEnd
	stateCommentEndBang
	stateCDataSection
	stateCDataSectionBracket
	stateCDataSectionEnd
	stateCharacterReference
	stateNamedCharacterReference
	stateNumericCharacterReference
	stateHexCharacterReference
	stateDecimalCharacterReference
	stateVExpressionStart
	stateVExpressionEnd
	stateEOF
)

const eof = rune(-1)

// Tokenizer converts raw text into primitive tokens. One instance scans
// one input; the gap and line-terminator tables grow as the scan
// progresses and stay valid afterwards.
type Tokenizer struct {
	Text            string
	Gaps            []int
	LineTerminators []int
	Errors          []ast.ParseError

	// ExpressionEnabled makes the scanner recognize interpolation
	// markers in data. The tree builder turns it off inside verbatim
	// subtrees.
	ExpressionEnabled bool
	// Namespace is the namespace of the element currently being
	// scanned; the tree builder keeps it up to date. CDATA sections are
	// only valid outside it.
	Namespace ast.Namespace

	state       state
	returnState state
	reconsuming bool
	lastCP      rune
	offset      int // byte offset of lastCP
	nextOffset  int // byte offset just after lastCP

	committed    []Token
	currentToken *Token

	tagOpenStart     int // offset of `<` while a tag is being opened
	slashOffset      int // offset of `/` in a self-closing candidate
	braceStart       int // offset of the first brace of a marker candidate
	lessThanOffset   int // offset of `<` in RCDATA/RAWTEXT
	refStart         int // offset of `&` of the current character reference
	refNameBuf       strings.Builder
	refCode          rune
	refDigits        bool
	endTagNameBuf    strings.Builder
	lastStartTagName string
}

// New creates a tokenizer over text. Expressions are enabled by default.
func New(text string) *Tokenizer {
	t := &Tokenizer{
		Text:              text,
		ExpressionEnabled: true,
		Namespace:         ast.NamespaceHTML,
		state:             stateData,
		offset:            -1,
		nextOffset:        0,
	}
	return t
}

// SetContentModel switches the scanner into the content model of the
// element that was just opened. tagName is the lowercased name whose end
// tag terminates RCDATA/RAWTEXT content.
func (t *Tokenizer) SetContentModel(model ContentModel, tagName string) {
	t.lastStartTagName = tagName
	switch model {
	case RCDataModel:
		t.state = stateRCData
	case RawTextModel:
		t.state = stateRawText
	default:
		t.state = stateData
	}
}

// NextToken returns the next primitive token, or nil at end of input.
func (t *Tokenizer) NextToken() *Token {
	for len(t.committed) == 0 && t.state != stateEOF {
		cp := t.consume()
		t.state = t.step(cp)
	}
	if len(t.committed) == 0 {
		return nil
	}
	token := t.committed[0]
	t.committed = t.committed[1:]
	return &token
}

// consume reads the next code point, normalizing CRLF and lone CR to LF
// and maintaining the gap/line-terminator tables.
func (t *Tokenizer) consume() rune {
	if t.reconsuming {
		t.reconsuming = false
		return t.lastCP
	}
	if t.nextOffset >= len(t.Text) {
		t.offset = len(t.Text)
		t.lastCP = eof
		return eof
	}
	t.offset = t.nextOffset
	r, size := utf8.DecodeRuneInString(t.Text[t.offset:])
	t.nextOffset = t.offset + size
	if r == '\r' {
		if t.nextOffset < len(t.Text) && t.Text[t.nextOffset] == '\n' {
			// CRLF decodes to a single LF attributed to the CR position.
			t.Gaps = append(t.Gaps, t.nextOffset)
			t.nextOffset++
		}
		r = '\n'
	}
	if r == '\n' {
		t.LineTerminators = append(t.LineTerminators, t.nextOffset)
	}
	t.lastCP = r
	return r
}

func (t *Tokenizer) reconsumeAs(next state) state {
	t.reconsuming = true
	return next
}

func (t *Tokenizer) locate(offset int) ast.Position {
	line := sort.SearchInts(t.LineTerminators, offset+1) + 1
	column := offset
	if line > 1 {
		column = offset - t.LineTerminators[line-2]
	}
	return ast.Position{Line: line, Column: column}
}

func (t *Tokenizer) reportError(code string) {
	t.reportErrorAt(code, t.offset)
}

func (t *Tokenizer) reportErrorAt(code string, offset int) {
	pos := t.locate(offset)
	t.Errors = append(t.Errors, ast.ParseError{
		Code:    code,
		Message: code,
		Index:   offset,
		Line:    pos.Line,
		Column:  pos.Column,
	})
}

// startToken commits any in-progress token and begins a new one whose
// range starts at offset.
func (t *Tokenizer) startToken(typ TokenType, offset int) {
	t.endToken()
	t.currentToken = &Token{Type: typ, Range: ast.Range{offset, offset}}
}

// ensureTextToken makes sure a token of the given text type is being
// built, starting at offset if not.
func (t *Tokenizer) ensureTextToken(typ TokenType, offset int) {
	if t.currentToken == nil || t.currentToken.Type != typ {
		t.startToken(typ, offset)
	}
}

// appendValue adds the current code point's decoded form to the token
// being built and extends its range over the raw spelling.
func (t *Tokenizer) appendValue(r rune) {
	t.currentToken.Value += string(r)
	t.currentToken.Range[1] = t.nextOffset
}

// appendDecoded adds an already-decoded string covering the raw range up
// to end.
func (t *Tokenizer) appendDecoded(s string, end int) {
	t.currentToken.Value += s
	t.currentToken.Range[1] = end
}

// extendTo moves the current token's end without appending to its value
// (closing quotes, comment terminators).
func (t *Tokenizer) extendTo(end int) {
	t.currentToken.Range[1] = end
}

// endToken commits the token being built, if any.
func (t *Tokenizer) endToken() {
	if t.currentToken == nil {
		return
	}
	token := t.currentToken
	t.currentToken = nil
	token.Loc.Start = t.locate(token.Range[0])
	token.Loc.End = t.locate(token.Range[1])
	t.committed = append(t.committed, *token)
}

// emitToken commits a complete token without touching the one being
// built.
func (t *Tokenizer) emitToken(typ TokenType, start, end int, value string) {
	t.committed = append(t.committed, Token{
		Type:  typ,
		Range: ast.Range{start, end},
		Loc:   ast.Location{Start: t.locate(start), End: t.locate(end)},
		Value: value,
	})
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\f'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (t *Tokenizer) step(cp rune) state {
	switch t.state {
	case stateData:
		return t.stepData(cp)
	case stateTagOpen:
		return t.stepTagOpen(cp)
	case stateEndTagOpen:
		return t.stepEndTagOpen(cp)
	case stateTagName:
		return t.stepTagName(cp)
	case stateRCData:
		return t.stepRCData(cp)
	case stateRCDataLessThanSign:
		return t.stepRCDataLessThanSign(cp)
	case stateRCDataEndTagOpen:
		return t.stepRCDataEndTagOpen(cp)
	case stateRCDataEndTagName:
		return t.stepRCDataEndTagName(cp)
	case stateRawText:
		return t.stepRawText(cp)
	case stateRawTextLessThanSign:
		return t.stepRawTextLessThanSign(cp)
	case stateRawTextEndTagOpen:
		return t.stepRawTextEndTagOpen(cp)
	case stateRawTextEndTagName:
		return t.stepRawTextEndTagName(cp)
	case stateBeforeAttributeName:
		return t.stepBeforeAttributeName(cp)
	case stateAttributeName:
		return t.stepAttributeName(cp)
	case stateAfterAttributeName:
		return t.stepAfterAttributeName(cp)
	case stateBeforeAttributeValue:
		return t.stepBeforeAttributeValue(cp)
	case stateAttributeValueDoubleQuoted:
		return t.stepAttributeValueQuoted(cp, '"')
	case stateAttributeValueSingleQuoted:
		return t.stepAttributeValueQuoted(cp, '\'')
	case stateAttributeValueUnquoted:
		return t.stepAttributeValueUnquoted(cp)
	case stateAfterAttributeValueQuoted:
		return t.stepAfterAttributeValueQuoted(cp)
	case stateSelfClosingStartTag:
		return t.stepSelfClosingStartTag(cp)
	case stateBogusComment:
		return t.stepBogusComment(cp)
	case stateMarkupDeclarationOpen:
		return t.stepMarkupDeclarationOpen(cp)
	case stateCommentStart:
		return t.stepCommentStart(cp)
	case stateCommentStartDash:
		return t.stepCommentStartDash(cp)
	case stateComment:
		return t.stepComment(cp)
	case stateCommentLessThanSign:
		return t.stepCommentLessThanSign(cp)
	case stateCommentLessThanSignBang:
		return t.stepCommentLessThanSignBang(cp)
	case stateCommentLessThanSignBangDash:
		return t.stepCommentLessThanSignBangDash(cp)
	case stateCommentLessThanSignBangDashDash:
		return t.stepCommentLessThanSignBangDashDash(cp)
	case stateCommentEndDash:
		return t.stepCommentEndDash(cp)
	case stateCommentEnd:
		return t.stepCommentEnd(cp)
	case stateCommentEndBang:
		return t.stepCommentEndBang(cp)
	case stateCDataSection:
		return t.stepCDataSection(cp)
	case stateCDataSectionBracket:
		return t.stepCDataSectionBracket(cp)
	case stateCDataSectionEnd:
		return t.stepCDataSectionEnd(cp)
	case stateCharacterReference:
		return t.stepCharacterReference(cp)
	case stateNamedCharacterReference:
		return t.stepNamedCharacterReference(cp)
	case stateNumericCharacterReference:
		return t.stepNumericCharacterReference(cp)
	case stateHexCharacterReference:
		return t.stepHexCharacterReference(cp)
	case stateDecimalCharacterReference:
		return t.stepDecimalCharacterReference(cp)
	case stateVExpressionStart:
		return t.stepVExpressionStart(cp)
	case stateVExpressionEnd:
		return t.stepVExpressionEnd(cp)
	default:
		return stateEOF
	}
}

func (t *Tokenizer) stepData(cp rune) state {
	switch {
	case cp == '&':
		t.refStart = t.offset
		t.returnState = stateData
		return stateCharacterReference
	case cp == '<':
		t.endToken()
		t.tagOpenStart = t.offset
		return stateTagOpen
	case cp == '{' && t.ExpressionEnabled:
		t.braceStart = t.offset
		return stateVExpressionStart
	case cp == '}' && t.ExpressionEnabled:
		t.braceStart = t.offset
		return stateVExpressionEnd
	case cp == 0:
		t.reportError("unexpected-null-character")
		t.ensureTextToken(HTMLText, t.offset)
		// the replacement character is wider than the raw NUL byte;
		// gaps only record removals and every range stays raw, so the
		// growth needs no table entry
		t.appendValue('�')
		return stateData
	case cp == eof:
		t.endToken()
		return stateEOF
	default:
		t.ensureTextToken(HTMLText, t.offset)
		t.appendValue(cp)
		return stateData
	}
}

func (t *Tokenizer) stepVExpressionStart(cp rune) state {
	if cp == '{' {
		t.endToken()
		t.emitToken(VExpressionStart, t.braceStart, t.nextOffset, "{{")
		return stateData
	}
	t.ensureTextToken(HTMLText, t.braceStart)
	t.appendDecoded("{", t.braceStart+1)
	if cp == eof {
		t.endToken()
		return stateEOF
	}
	return t.reconsumeAs(stateData)
}

func (t *Tokenizer) stepVExpressionEnd(cp rune) state {
	if cp == '}' {
		t.endToken()
		t.emitToken(VExpressionEnd, t.braceStart, t.nextOffset, "}}")
		return stateData
	}
	t.ensureTextToken(HTMLText, t.braceStart)
	t.appendDecoded("}", t.braceStart+1)
	if cp == eof {
		t.endToken()
		return stateEOF
	}
	return t.reconsumeAs(stateData)
}

func (t *Tokenizer) stepTagOpen(cp rune) state {
	switch {
	case cp == '!':
		return stateMarkupDeclarationOpen
	case cp == '/':
		return stateEndTagOpen
	case isLetter(cp):
		t.startToken(HTMLTagOpen, t.tagOpenStart)
		return t.reconsumeAs(stateTagName)
	case cp == '?':
		t.reportError("unexpected-question-mark-instead-of-tag-name")
		t.startToken(HTMLBogusComment, t.tagOpenStart)
		return t.reconsumeAs(stateBogusComment)
	case cp == eof:
		t.reportError("eof-before-tag-name")
		t.ensureTextToken(HTMLText, t.tagOpenStart)
		t.appendDecoded("<", t.tagOpenStart+1)
		t.endToken()
		return stateEOF
	default:
		t.reportError("invalid-first-character-of-tag-name")
		t.ensureTextToken(HTMLText, t.tagOpenStart)
		t.appendDecoded("<", t.tagOpenStart+1)
		return t.reconsumeAs(stateData)
	}
}

func (t *Tokenizer) stepEndTagOpen(cp rune) state {
	switch {
	case isLetter(cp):
		t.startToken(HTMLEndTagOpen, t.tagOpenStart)
		return t.reconsumeAs(stateTagName)
	case cp == '>':
		t.reportError("missing-end-tag-name")
		return stateData
	case cp == eof:
		t.reportError("eof-before-tag-name")
		t.ensureTextToken(HTMLText, t.tagOpenStart)
		t.appendDecoded("</", t.offset)
		t.endToken()
		return stateEOF
	default:
		t.reportError("invalid-first-character-of-tag-name")
		t.startToken(HTMLBogusComment, t.tagOpenStart)
		return t.reconsumeAs(stateBogusComment)
	}
}

func (t *Tokenizer) stepTagName(cp rune) state {
	switch {
	case isWhitespace(cp):
		t.endToken()
		return stateBeforeAttributeName
	case cp == '/':
		t.endToken()
		t.slashOffset = t.offset
		return stateSelfClosingStartTag
	case cp == '>':
		t.endToken()
		t.emitToken(HTMLTagClose, t.offset, t.nextOffset, "")
		return stateData
	case cp == 0:
		t.reportError("unexpected-null-character")
		t.appendValue('�')
		return stateTagName
	case cp == eof:
		t.reportError("eof-in-tag")
		t.endToken()
		return stateEOF
	default:
		t.appendValue(cp)
		return stateTagName
	}
}

func (t *Tokenizer) stepRCData(cp rune) state {
	switch {
	case cp == '&':
		t.refStart = t.offset
		t.returnState = stateRCData
		return stateCharacterReference
	case cp == '<':
		t.lessThanOffset = t.offset
		return stateRCDataLessThanSign
	case cp == 0:
		t.reportError("unexpected-null-character")
		t.ensureTextToken(HTMLRcDataText, t.offset)
		t.appendValue('�')
		return stateRCData
	case cp == eof:
		t.endToken()
		return stateEOF
	default:
		t.ensureTextToken(HTMLRcDataText, t.offset)
		t.appendValue(cp)
		return stateRCData
	}
}

func (t *Tokenizer) stepRCDataLessThanSign(cp rune) state {
	if cp == '/' {
		t.endTagNameBuf.Reset()
		return stateRCDataEndTagOpen
	}
	t.ensureTextToken(HTMLRcDataText, t.lessThanOffset)
	t.appendDecoded("<", t.lessThanOffset+1)
	if cp == eof {
		t.endToken()
		return stateEOF
	}
	return t.reconsumeAs(stateRCData)
}

func (t *Tokenizer) stepRCDataEndTagOpen(cp rune) state {
	if isLetter(cp) {
		return t.reconsumeAs(stateRCDataEndTagName)
	}
	t.ensureTextToken(HTMLRcDataText, t.lessThanOffset)
	t.appendDecoded("</", t.lessThanOffset+2)
	if cp == eof {
		t.endToken()
		return stateEOF
	}
	return t.reconsumeAs(stateRCData)
}

func (t *Tokenizer) stepRCDataEndTagName(cp rune) state {
	return t.stepRawLikeEndTagName(cp, HTMLRcDataText, stateRCData, stateRCDataEndTagName)
}

func (t *Tokenizer) stepRawText(cp rune) state {
	switch {
	case cp == '<':
		t.lessThanOffset = t.offset
		return stateRawTextLessThanSign
	case cp == 0:
		t.reportError("unexpected-null-character")
		t.ensureTextToken(HTMLRawText, t.offset)
		t.appendValue('�')
		return stateRawText
	case cp == eof:
		t.endToken()
		return stateEOF
	default:
		t.ensureTextToken(HTMLRawText, t.offset)
		t.appendValue(cp)
		return stateRawText
	}
}

func (t *Tokenizer) stepRawTextLessThanSign(cp rune) state {
	if cp == '/' {
		t.endTagNameBuf.Reset()
		return stateRawTextEndTagOpen
	}
	t.ensureTextToken(HTMLRawText, t.lessThanOffset)
	t.appendDecoded("<", t.lessThanOffset+1)
	if cp == eof {
		t.endToken()
		return stateEOF
	}
	return t.reconsumeAs(stateRawText)
}

func (t *Tokenizer) stepRawTextEndTagOpen(cp rune) state {
	if isLetter(cp) {
		return t.reconsumeAs(stateRawTextEndTagName)
	}
	t.ensureTextToken(HTMLRawText, t.lessThanOffset)
	t.appendDecoded("</", t.lessThanOffset+2)
	if cp == eof {
		t.endToken()
		return stateEOF
	}
	return t.reconsumeAs(stateRawText)
}

func (t *Tokenizer) stepRawTextEndTagName(cp rune) state {
	return t.stepRawLikeEndTagName(cp, HTMLRawText, stateRawText, stateRawTextEndTagName)
}

// stepRawLikeEndTagName handles the shared end-tag-name logic of the
// RCDATA and RAWTEXT content models: only the end tag matching the
// element that opened the content model terminates it, everything else
// stays text.
func (t *Tokenizer) stepRawLikeEndTagName(cp rune, textType TokenType, textState, nameState state) state {
	if isLetter(cp) || isDigit(cp) || cp == '-' {
		t.endTagNameBuf.WriteRune(cp)
		return nameState
	}
	name := t.endTagNameBuf.String()
	if (isWhitespace(cp) || cp == '/' || cp == '>') && strings.ToLower(name) == t.lastStartTagName {
		t.endToken()
		t.startToken(HTMLEndTagOpen, t.lessThanOffset)
		t.appendDecoded(name, t.offset)
		t.endToken()
		switch {
		case isWhitespace(cp):
			return stateBeforeAttributeName
		case cp == '/':
			t.slashOffset = t.offset
			return stateSelfClosingStartTag
		default:
			t.emitToken(HTMLTagClose, t.offset, t.nextOffset, "")
			return stateData
		}
	}
	t.ensureTextToken(textType, t.lessThanOffset)
	t.appendDecoded("</"+name, t.lessThanOffset+2+len(name))
	if cp == eof {
		t.endToken()
		return stateEOF
	}
	return t.reconsumeAs(textState)
}

func (t *Tokenizer) stepBeforeAttributeName(cp rune) state {
	switch {
	case isWhitespace(cp):
		return stateBeforeAttributeName
	case cp == '/':
		t.slashOffset = t.offset
		return stateSelfClosingStartTag
	case cp == '>':
		t.emitToken(HTMLTagClose, t.offset, t.nextOffset, "")
		return stateData
	case cp == eof:
		t.reportError("eof-in-tag")
		t.endToken()
		return stateEOF
	case cp == '=':
		t.reportError("unexpected-equals-sign-before-attribute-name")
		t.startToken(HTMLIdentifier, t.offset)
		t.appendValue(cp)
		return stateAttributeName
	default:
		t.startToken(HTMLIdentifier, t.offset)
		return t.reconsumeAs(stateAttributeName)
	}
}

func (t *Tokenizer) stepAttributeName(cp rune) state {
	switch {
	case isWhitespace(cp) || cp == '/' || cp == '>' || cp == eof:
		t.endToken()
		return t.reconsumeAs(stateAfterAttributeName)
	case cp == '=':
		t.endToken()
		t.emitToken(HTMLAssociation, t.offset, t.nextOffset, "=")
		return stateBeforeAttributeValue
	case cp == 0:
		t.reportError("unexpected-null-character")
		t.appendValue('�')
		return stateAttributeName
	case cp == '"' || cp == '\'' || cp == '<':
		t.reportError("unexpected-character-in-attribute-name")
		t.appendValue(cp)
		return stateAttributeName
	default:
		t.appendValue(cp)
		return stateAttributeName
	}
}

func (t *Tokenizer) stepAfterAttributeName(cp rune) state {
	switch {
	case isWhitespace(cp):
		return stateAfterAttributeName
	case cp == '/':
		t.slashOffset = t.offset
		return stateSelfClosingStartTag
	case cp == '=':
		t.emitToken(HTMLAssociation, t.offset, t.nextOffset, "=")
		return stateBeforeAttributeValue
	case cp == '>':
		t.emitToken(HTMLTagClose, t.offset, t.nextOffset, "")
		return stateData
	case cp == eof:
		t.reportError("eof-in-tag")
		t.endToken()
		return stateEOF
	default:
		t.startToken(HTMLIdentifier, t.offset)
		return t.reconsumeAs(stateAttributeName)
	}
}

func (t *Tokenizer) stepBeforeAttributeValue(cp rune) state {
	switch {
	case isWhitespace(cp):
		return stateBeforeAttributeValue
	case cp == '"':
		t.startToken(HTMLLiteral, t.offset)
		return stateAttributeValueDoubleQuoted
	case cp == '\'':
		t.startToken(HTMLLiteral, t.offset)
		return stateAttributeValueSingleQuoted
	case cp == '>':
		t.reportError("missing-attribute-value")
		t.emitToken(HTMLTagClose, t.offset, t.nextOffset, "")
		return stateData
	case cp == eof:
		t.reportError("eof-in-tag")
		t.endToken()
		return stateEOF
	default:
		t.startToken(HTMLLiteral, t.offset)
		return t.reconsumeAs(stateAttributeValueUnquoted)
	}
}

func (t *Tokenizer) stepAttributeValueQuoted(cp rune, quote rune) state {
	current := t.state
	switch {
	case cp == quote:
		t.extendTo(t.nextOffset)
		t.endToken()
		return stateAfterAttributeValueQuoted
	case cp == '&':
		t.refStart = t.offset
		t.returnState = current
		return stateCharacterReference
	case cp == 0:
		t.reportError("unexpected-null-character")
		t.appendValue('�')
		return current
	case cp == eof:
		t.reportError("eof-in-tag")
		t.endToken()
		return stateEOF
	default:
		t.appendValue(cp)
		return current
	}
}

func (t *Tokenizer) stepAttributeValueUnquoted(cp rune) state {
	switch {
	case isWhitespace(cp):
		t.endToken()
		return stateBeforeAttributeName
	case cp == '&':
		t.refStart = t.offset
		t.returnState = stateAttributeValueUnquoted
		return stateCharacterReference
	case cp == '>':
		t.endToken()
		t.emitToken(HTMLTagClose, t.offset, t.nextOffset, "")
		return stateData
	case cp == 0:
		t.reportError("unexpected-null-character")
		t.appendValue('�')
		return stateAttributeValueUnquoted
	case cp == '"' || cp == '\'' || cp == '<' || cp == '=' || cp == '`':
		t.reportError("unexpected-character-in-unquoted-attribute-value")
		t.appendValue(cp)
		return stateAttributeValueUnquoted
	case cp == eof:
		t.reportError("eof-in-tag")
		t.endToken()
		return stateEOF
	default:
		t.appendValue(cp)
		return stateAttributeValueUnquoted
	}
}

func (t *Tokenizer) stepAfterAttributeValueQuoted(cp rune) state {
	switch {
	case isWhitespace(cp):
		return stateBeforeAttributeName
	case cp == '/':
		t.slashOffset = t.offset
		return stateSelfClosingStartTag
	case cp == '>':
		t.emitToken(HTMLTagClose, t.offset, t.nextOffset, "")
		return stateData
	case cp == eof:
		t.reportError("eof-in-tag")
		t.endToken()
		return stateEOF
	default:
		t.reportError("missing-whitespace-between-attributes")
		return t.reconsumeAs(stateBeforeAttributeName)
	}
}

func (t *Tokenizer) stepSelfClosingStartTag(cp rune) state {
	switch {
	case cp == '>':
		t.emitToken(HTMLSelfClosingTagClose, t.slashOffset, t.nextOffset, "")
		return stateData
	case cp == eof:
		t.reportError("eof-in-tag")
		t.endToken()
		return stateEOF
	default:
		t.reportError("unexpected-solidus-in-tag")
		return t.reconsumeAs(stateBeforeAttributeName)
	}
}

func (t *Tokenizer) stepMarkupDeclarationOpen(cp rune) state {
	if cp == '-' && t.nextOffset < len(t.Text) && t.Text[t.nextOffset] == '-' {
		t.consume()
		t.startToken(HTMLComment, t.tagOpenStart)
		return stateCommentStart
	}
	if cp == '[' && strings.HasPrefix(t.Text[t.offset:], "[CDATA[") {
		for i := 0; i < 6; i++ {
			t.consume()
		}
		if t.Namespace != ast.NamespaceHTML {
			return stateCDataSection
		}
		t.reportErrorAt("cdata-in-html-content", t.tagOpenStart)
		t.startToken(HTMLBogusComment, t.tagOpenStart)
		t.appendDecoded("[CDATA[", t.nextOffset)
		return stateBogusComment
	}
	t.reportErrorAt("incorrectly-opened-comment", t.tagOpenStart)
	t.startToken(HTMLBogusComment, t.tagOpenStart)
	return t.reconsumeAs(stateBogusComment)
}

func (t *Tokenizer) stepBogusComment(cp rune) state {
	switch {
	case cp == '>':
		t.extendTo(t.nextOffset)
		t.endToken()
		return stateData
	case cp == eof:
		t.endToken()
		return stateEOF
	case cp == 0:
		t.reportError("unexpected-null-character")
		t.appendValue('�')
		return stateBogusComment
	default:
		t.appendValue(cp)
		return stateBogusComment
	}
}

func (t *Tokenizer) stepCommentStart(cp rune) state {
	switch {
	case cp == '-':
		return stateCommentStartDash
	case cp == '>':
		t.reportError("abrupt-closing-of-empty-comment")
		t.extendTo(t.nextOffset)
		t.endToken()
		return stateData
	default:
		return t.reconsumeAs(stateComment)
	}
}

func (t *Tokenizer) stepCommentStartDash(cp rune) state {
	switch {
	case cp == '-':
		return stateCommentEnd
	case cp == '>':
		t.reportError("abrupt-closing-of-empty-comment")
		t.extendTo(t.nextOffset)
		t.endToken()
		return stateData
	case cp == eof:
		t.reportError("eof-in-comment")
		t.endToken()
		return stateEOF
	default:
		t.appendDecoded("-", t.offset)
		return t.reconsumeAs(stateComment)
	}
}

func (t *Tokenizer) stepComment(cp rune) state {
	switch {
	case cp == '<':
		t.appendValue(cp)
		return stateCommentLessThanSign
	case cp == '-':
		return stateCommentEndDash
	case cp == 0:
		t.reportError("unexpected-null-character")
		t.appendValue('�')
		return stateComment
	case cp == eof:
		t.reportError("eof-in-comment")
		t.endToken()
		return stateEOF
	default:
		t.appendValue(cp)
		return stateComment
	}
}

func (t *Tokenizer) stepCommentLessThanSign(cp rune) state {
	switch {
	case cp == '!':
		t.appendValue(cp)
		return stateCommentLessThanSignBang
	case cp == '<':
		t.appendValue(cp)
		return stateCommentLessThanSign
	default:
		return t.reconsumeAs(stateComment)
	}
}

func (t *Tokenizer) stepCommentLessThanSignBang(cp rune) state {
	if cp == '-' {
		return stateCommentLessThanSignBangDash
	}
	return t.reconsumeAs(stateComment)
}

func (t *Tokenizer) stepCommentLessThanSignBangDash(cp rune) state {
	if cp == '-' {
		return stateCommentLessThanSignBangDashDash
	}
	return t.reconsumeAs(stateCommentEndDash)
}

func (t *Tokenizer) stepCommentLessThanSignBangDashDash(cp rune) state {
	if cp != '>' && cp != eof {
		t.reportError("nested-comment")
	}
	return t.reconsumeAs(stateCommentEnd)
}

func (t *Tokenizer) stepCommentEndDash(cp rune) state {
	switch {
	case cp == '-':
		return stateCommentEnd
	case cp == eof:
		t.reportError("eof-in-comment")
		t.endToken()
		return stateEOF
	default:
		t.appendDecoded("-", t.offset)
		return t.reconsumeAs(stateComment)
	}
}

func (t *Tokenizer) stepCommentEnd(cp rune) state {
	switch {
	case cp == '>':
		t.extendTo(t.nextOffset)
		t.endToken()
		return stateData
	case cp == '!':
		return stateCommentEndBang
	case cp == '-':
		t.appendDecoded("-", t.offset)
		return stateCommentEnd
	case cp == eof:
		t.reportError("eof-in-comment")
		t.endToken()
		return stateEOF
	default:
		t.appendDecoded("--", t.offset)
		return t.reconsumeAs(stateComment)
	}
}

func (t *Tokenizer) stepCommentEndBang(cp rune) state {
	switch {
	case cp == '-':
		t.appendDecoded("--!", t.offset)
		return stateCommentEndDash
	case cp == '>':
		t.reportError("incorrectly-closed-comment")
		t.extendTo(t.nextOffset)
		t.endToken()
		return stateData
	case cp == eof:
		t.reportError("eof-in-comment")
		t.endToken()
		return stateEOF
	default:
		t.appendDecoded("--!", t.offset)
		return t.reconsumeAs(stateComment)
	}
}

func (t *Tokenizer) stepCDataSection(cp rune) state {
	switch {
	case cp == ']':
		return stateCDataSectionBracket
	case cp == eof:
		t.reportError("eof-in-cdata")
		t.endToken()
		return stateEOF
	default:
		t.ensureTextToken(HTMLCDataText, t.offset)
		t.appendValue(cp)
		return stateCDataSection
	}
}

func (t *Tokenizer) stepCDataSectionBracket(cp rune) state {
	if cp == ']' {
		return stateCDataSectionEnd
	}
	t.ensureTextToken(HTMLCDataText, t.offset-1)
	t.appendDecoded("]", t.offset)
	return t.reconsumeAs(stateCDataSection)
}

func (t *Tokenizer) stepCDataSectionEnd(cp rune) state {
	switch {
	case cp == '>':
		t.endToken()
		return stateData
	case cp == ']':
		t.ensureTextToken(HTMLCDataText, t.offset-2)
		t.appendDecoded("]", t.offset-1)
		return stateCDataSectionEnd
	default:
		t.ensureTextToken(HTMLCDataText, t.offset-2)
		t.appendDecoded("]]", t.offset)
		return t.reconsumeAs(stateCDataSection)
	}
}

// flushRawReference writes the reference's raw spelling through
// unmodified, up to but excluding end.
func (t *Tokenizer) flushRawReference(end int) {
	t.flushReference(t.Text[t.refStart:end], end)
}

// flushReference appends decoded text for the raw span [refStart, end)
// and records one gap per removed byte.
func (t *Tokenizer) flushReference(decoded string, end int) {
	switch t.returnState {
	case stateData:
		t.ensureTextToken(HTMLText, t.refStart)
	case stateRCData:
		t.ensureTextToken(HTMLRcDataText, t.refStart)
	default:
		// attribute value states build an HTMLLiteral already
	}
	t.appendDecoded(decoded, end)
	for pos := t.refStart + len(decoded); pos < end; pos++ {
		t.Gaps = append(t.Gaps, pos)
	}
}

func (t *Tokenizer) stepCharacterReference(cp rune) state {
	t.refNameBuf.Reset()
	switch {
	case isLetter(cp) || isDigit(cp):
		return t.reconsumeAs(stateNamedCharacterReference)
	case cp == '#':
		t.refCode = 0
		t.refDigits = false
		return stateNumericCharacterReference
	default:
		t.flushRawReference(t.offset)
		if cp == eof {
			t.endToken()
			return stateEOF
		}
		return t.reconsumeAs(t.returnState)
	}
}

func (t *Tokenizer) stepNamedCharacterReference(cp rune) state {
	if (isLetter(cp) || isDigit(cp)) && t.refNameBuf.Len() < 32 {
		t.refNameBuf.WriteRune(cp)
		return stateNamedCharacterReference
	}
	name := t.refNameBuf.String()
	if cp == ';' {
		if decoded, ok := namedEntities[name]; ok {
			t.flushReference(decoded, t.nextOffset)
			return t.returnState
		}
		t.reportError("unknown-named-character-reference")
		t.flushRawReference(t.nextOffset)
		return t.returnState
	}
	if decoded, ok := legacyEntities[name]; ok {
		t.reportError("missing-semicolon-after-character-reference")
		t.flushReference(decoded, t.offset)
	} else {
		t.flushRawReference(t.offset)
	}
	if cp == eof {
		t.endToken()
		return stateEOF
	}
	return t.reconsumeAs(t.returnState)
}

func (t *Tokenizer) stepNumericCharacterReference(cp rune) state {
	if cp == 'x' || cp == 'X' {
		return stateHexCharacterReference
	}
	return t.reconsumeAs(stateDecimalCharacterReference)
}

func (t *Tokenizer) stepHexCharacterReference(cp rune) state {
	if isHexDigit(cp) {
		t.refDigits = true
		t.refCode = t.refCode*16 + hexValue(cp)
		if t.refCode > 0x10FFFF {
			t.refCode = 0x110000
		}
		return stateHexCharacterReference
	}
	return t.endNumericReference(cp)
}

func (t *Tokenizer) stepDecimalCharacterReference(cp rune) state {
	if isDigit(cp) {
		t.refDigits = true
		t.refCode = t.refCode*10 + (cp - '0')
		if t.refCode > 0x10FFFF {
			t.refCode = 0x110000
		}
		return stateDecimalCharacterReference
	}
	return t.endNumericReference(cp)
}

func (t *Tokenizer) endNumericReference(cp rune) state {
	if !t.refDigits {
		t.reportError("absence-of-digits-in-numeric-character-reference")
		end := t.offset
		if cp == ';' {
			end = t.nextOffset
		}
		t.flushRawReference(end)
		if cp == ';' {
			return t.returnState
		}
		if cp == eof {
			t.endToken()
			return stateEOF
		}
		return t.reconsumeAs(t.returnState)
	}
	end := t.offset
	if cp == ';' {
		end = t.nextOffset
	} else {
		t.reportError("missing-semicolon-after-character-reference")
	}
	code := t.refCode
	switch {
	case code == 0:
		t.reportError("null-character-reference")
		code = '�'
	case code > 0x10FFFF:
		t.reportError("character-reference-outside-unicode-range")
		code = '�'
	case code >= 0xD800 && code <= 0xDFFF:
		t.reportError("surrogate-character-reference")
		code = '�'
	default:
		if mapped, ok := c1ControlReplacements[code]; ok {
			t.reportError("control-character-reference")
			code = mapped
		}
	}
	t.flushReference(string(code), end)
	if cp == ';' {
		return t.returnState
	}
	if cp == eof {
		t.endToken()
		return stateEOF
	}
	return t.reconsumeAs(t.returnState)
}

func hexValue(r rune) rune {
	switch {
	case r >= '0' && r <= '9':
		return r - '0'
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10
	default:
		return r - 'A' + 10
	}
}
