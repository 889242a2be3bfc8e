// Package exprparser is the default delegate for embedded expressions.
// It tokenizes the expression language, validates plain expressions
// through CEL where the dialects overlap, and parses the synthetic
// wrapper shapes the template parser hands it.
package exprparser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
)

// Token type names follow the convention linters expect in token
// streams.
const (
	typeIdentifier = "Identifier"
	typeKeyword    = "Keyword"
	typeBoolean    = "Boolean"
	typeNull       = "Null"
	typeNumeric    = "Numeric"
	typeString     = "String"
	typeTemplate   = "Template"
	typePunctuator = "Punctuator"
	typeRegExp     = "RegularExpression"
)

var keywords = map[string]bool{
	"async": true, "await": true, "break": true, "case": true,
	"catch": true, "class": true, "const": true, "continue": true,
	"debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "export": true, "extends": true, "finally": true,
	"for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "let": true, "new": true,
	"of": true, "return": true, "static": true, "super": true,
	"switch": true, "this": true, "throw": true, "try": true,
	"typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true,
}

// punctuators in longest-first order so the scanner can greedy-match.
var punctuators = []string{
	">>>=", "...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=",
	"||=", "??=", "=>", "==", "!=", "<=", ">=", "&&", "||", "??",
	"?.", "**", "++", "--", "+=", "-=", "*=", "/=", "%=", "&=",
	"|=", "^=", "<<", ">>",
	"(", ")", "[", "]", "{", "}", ",", ".", ";", ":", "?", "+",
	"-", "*", "/", "%", "<", ">", "=", "!", "&", "|", "^", "~", "@", "#",
}

// token is a lexed unit with byte offsets into the lexed text.
type token struct {
	typ   string
	value string
	start int
	end   int
}

func (t token) global() ast.Token {
	return ast.Token{Type: t.typ, Range: ast.Range{t.start, t.end}, Value: t.value}
}

// comment is a lexed comment; value excludes the delimiters.
type comment struct {
	block bool
	value string
	start int
	end   int
}

func (c comment) global() ast.Token {
	typ := "Line"
	if c.block {
		typ = "Block"
	}
	return ast.Token{Type: typ, Range: ast.Range{c.start, c.end}, Value: c.value}
}

// lexError builds a parse error with offsets relative to the lexed text.
func lexError(index int, format string, args ...any) *ast.ParseError {
	return &ast.ParseError{
		Code:    "x-invalid-expression",
		Message: fmt.Sprintf(format, args...),
		Index:   index,
	}
}

// lex tokenizes expression text. The scan is permissive about operator
// combinations but strict about unterminated literals and comments.
func lex(src string) ([]token, []comment, error) {
	var tokens []token
	var comments []comment
	pos := 0
	for pos < len(src) {
		r, size := utf8.DecodeRuneInString(src[pos:])
		switch {
		case unicode.IsSpace(r):
			pos += size
		case strings.HasPrefix(src[pos:], "//"):
			end := strings.IndexByte(src[pos:], '\n')
			if end < 0 {
				end = len(src) - pos
			}
			comments = append(comments, comment{value: src[pos+2 : pos+end], start: pos, end: pos + end})
			pos += end
		case strings.HasPrefix(src[pos:], "/*"):
			end := strings.Index(src[pos+2:], "*/")
			if end < 0 {
				return nil, nil, lexError(pos, "unterminated comment")
			}
			comments = append(comments, comment{block: true, value: src[pos+2 : pos+2+end], start: pos, end: pos + end + 4})
			pos += end + 4
		case r == '\'' || r == '"':
			end, err := scanString(src, pos, byte(r))
			if err != nil {
				return nil, nil, err
			}
			tokens = append(tokens, token{typ: typeString, value: src[pos:end], start: pos, end: end})
			pos = end
		case r == '`':
			end, err := scanTemplate(src, pos)
			if err != nil {
				return nil, nil, err
			}
			tokens = append(tokens, token{typ: typeTemplate, value: src[pos:end], start: pos, end: end})
			pos = end
		case isDigit(r) || (r == '.' && pos+size < len(src) && isDigit(rune(src[pos+size]))):
			end := scanNumber(src, pos)
			tokens = append(tokens, token{typ: typeNumeric, value: src[pos:end], start: pos, end: end})
			pos = end
		case isIdentStart(r):
			end := pos + size
			for end < len(src) {
				r2, s2 := utf8.DecodeRuneInString(src[end:])
				if !isIdentPart(r2) {
					break
				}
				end += s2
			}
			word := src[pos:end]
			typ := typeIdentifier
			switch {
			case word == "true" || word == "false":
				typ = typeBoolean
			case word == "null":
				typ = typeNull
			case word == "undefined":
				typ = typeIdentifier
			case keywords[word]:
				typ = typeKeyword
			}
			tokens = append(tokens, token{typ: typ, value: word, start: pos, end: end})
			pos = end
		default:
			matched := false
			for _, p := range punctuators {
				if strings.HasPrefix(src[pos:], p) {
					tokens = append(tokens, token{typ: typePunctuator, value: p, start: pos, end: pos + len(p)})
					pos += len(p)
					matched = true
					break
				}
			}
			if !matched {
				return nil, nil, lexError(pos, "unexpected character %q", r)
			}
		}
	}
	if err := checkBalance(tokens); err != nil {
		return nil, nil, err
	}
	return tokens, comments, nil
}

func scanString(src string, pos int, quote byte) (int, error) {
	i := pos + 1
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1, nil
		case '\n':
			return 0, lexError(pos, "unterminated string literal")
		default:
			i++
		}
	}
	return 0, lexError(pos, "unterminated string literal")
}

func scanTemplate(src string, pos int) (int, error) {
	i := pos + 1
	depth := 0
	for i < len(src) {
		switch {
		case src[i] == '\\':
			i += 2
		case strings.HasPrefix(src[i:], "${"):
			depth++
			i += 2
		case src[i] == '}' && depth > 0:
			depth--
			i++
		case src[i] == '`' && depth == 0:
			return i + 1, nil
		default:
			i++
		}
	}
	return 0, lexError(pos, "unterminated template literal")
}

func scanNumber(src string, pos int) int {
	i := pos
	if strings.HasPrefix(src[i:], "0x") || strings.HasPrefix(src[i:], "0X") ||
		strings.HasPrefix(src[i:], "0b") || strings.HasPrefix(src[i:], "0o") {
		i += 2
		for i < len(src) && (isHexByte(src[i]) || src[i] == '_') {
			i++
		}
		return i
	}
	seenDot := false
	seenExp := false
	for i < len(src) {
		c := src[i]
		switch {
		case c >= '0' && c <= '9' || c == '_':
			i++
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
			i++
		case (c == 'e' || c == 'E') && !seenExp:
			seenExp = true
			i++
			if i < len(src) && (src[i] == '+' || src[i] == '-') {
				i++
			}
		case c == 'n' && !seenDot && !seenExp:
			return i + 1
		default:
			return i
		}
	}
	return i
}

// checkBalance rejects unbalanced bracket pairs; everything else is the
// downstream consumer's business.
func checkBalance(tokens []token) error {
	var stack []token
	pairs := map[string]string{")": "(", "]": "[", "}": "{"}
	for _, t := range tokens {
		if t.typ != typePunctuator {
			continue
		}
		switch t.value {
		case "(", "[", "{":
			stack = append(stack, t)
		case ")", "]", "}":
			if len(stack) == 0 || stack[len(stack)-1].value != pairs[t.value] {
				return lexError(t.start, "unmatched %q", t.value)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return lexError(stack[len(stack)-1].start, "unclosed %q", stack[len(stack)-1].value)
	}
	return nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexByte(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
