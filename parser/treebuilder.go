package parser

import (
	"sort"
	"strings"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
	"github.com/vuejs/vue-eslint-parser-sub000/location"
	"github.com/vuejs/vue-eslint-parser-sub000/tokenizer"
)

// treeBuilder assembles intermediate tokens into the document tree,
// tracking namespaces, implicit closes and verbatim subtrees, and hands
// embedded expression text to the linker as it goes.
type treeBuilder struct {
	text  string
	opts  *Options
	tok   *tokenizer.Tokenizer
	it    *tokenizer.IntermediateTokenizer
	link  *linker
	doc   *ast.DocumentFragment
	stack []*ast.Element
	vPre  *ast.Element
}

func newTreeBuilder(text string, opts *Options) *treeBuilder {
	tok := tokenizer.New(text)
	doc := &ast.DocumentFragment{
		BaseNode: ast.BaseNode{
			Range: ast.Range{0, len(text)},
			Loc:   ast.Location{Start: ast.Position{Line: 1, Column: 0}},
		},
	}
	return &treeBuilder{
		text: text,
		opts: opts,
		tok:  tok,
		it:   tokenizer.NewIntermediateTokenizer(tok),
		link: &linker{opts: opts, tok: tok, doc: doc},
		doc:  doc,
	}
}

func (b *treeBuilder) build() (*ast.DocumentFragment, error) {
	log := b.opts.logger()
	log.Debug().Str("path", b.opts.FilePath).Int("len", len(b.text)).Msg("parsing template")

	for {
		token := b.it.NextToken()
		b.flushStreams()
		if token == nil {
			break
		}
		switch t := token.(type) {
		case *tokenizer.StartTag:
			b.processStartTag(t)
		case *tokenizer.EndTag:
			b.processEndTag(t)
		case *tokenizer.Text:
			b.processText(t)
		case *tokenizer.Mustache:
			b.processMustache(t)
		}
		if b.link.fatal != nil {
			return nil, b.link.fatal
		}
	}
	for len(b.stack) > 0 {
		b.popElement(nil)
	}
	b.finish()

	log.Debug().
		Int("tokens", len(b.doc.Tokens)).
		Int("errors", len(b.doc.Errors)).
		Msg("parsed template")
	return b.doc, nil
}

// flushStreams moves the tokens and comments the tokenizer accumulated
// into the document, so splices during linking see the full stream.
func (b *treeBuilder) flushStreams() {
	b.doc.Tokens = append(b.doc.Tokens, b.it.Tokens...)
	b.it.Tokens = b.it.Tokens[:0]
	b.doc.Comments = append(b.doc.Comments, b.it.Comments...)
	b.it.Comments = b.it.Comments[:0]
}

func (b *treeBuilder) finish() {
	calc := location.NewCalculator(b.tok.Gaps, b.tok.LineTerminators)
	b.doc.Loc.End = calc.Location(len(b.text))
	sort.SliceStable(b.tok.Errors, func(i, j int) bool {
		return b.tok.Errors[i].Index < b.tok.Errors[j].Index
	})
	b.doc.Errors = b.tok.Errors
}

func (b *treeBuilder) currentParent() ast.Node {
	if len(b.stack) > 0 {
		return b.stack[len(b.stack)-1]
	}
	return b.doc
}

func (b *treeBuilder) appendChild(node ast.Node) {
	parent := b.currentParent()
	node.Base().Parent = parent
	if el, ok := parent.(*ast.Element); ok {
		el.Children = append(el.Children, node)
		return
	}
	b.doc.Children = append(b.doc.Children, node)
}

func (b *treeBuilder) reportError(code string, rng ast.Range, loc ast.Location) {
	b.tok.Errors = append(b.tok.Errors, ast.ParseError{
		Code:    code,
		Message: code,
		Index:   rng[0],
		Line:    loc.Start.Line,
		Column:  loc.Start.Column,
	})
}

// detectNamespace decides the namespace of a new element from the open
// stack, honoring the integration points where foreign content switches
// back to HTML.
func (b *treeBuilder) detectNamespace(name string) ast.Namespace {
	ns := ast.NamespaceHTML
	if len(b.stack) > 0 {
		top := b.stack[len(b.stack)-1]
		ns = top.Namespace
		switch ns {
		case ast.NamespaceMathML:
			if top.Name == "annotation-xml" {
				if name == "svg" {
					return ast.NamespaceSVG
				}
				if enc := attributeValue(top, "encoding"); enc == "text/html" || enc == "application/xhtml+xml" {
					ns = ast.NamespaceHTML
				}
			} else if mathmlTextIntegrationPoints[top.Name] && name != "mglyph" && name != "malignmark" {
				ns = ast.NamespaceHTML
			}
		case ast.NamespaceSVG:
			if svgHTMLIntegrationPoints[top.Name] {
				ns = ast.NamespaceHTML
			}
		}
	}
	if ns == ast.NamespaceHTML {
		switch name {
		case "svg":
			return ast.NamespaceSVG
		case "math":
			return ast.NamespaceMathML
		}
	}
	return ns
}

func attributeValue(el *ast.Element, name string) string {
	for _, attr := range el.StartTag.Attributes {
		if a, ok := attr.(*ast.Attribute); ok && a.Key.Name == name {
			if a.Value != nil {
				return strings.ToLower(strings.TrimSpace(a.Value.Value))
			}
			return ""
		}
	}
	return ""
}

// closeIfNecessary pops elements that the next start tag implicitly
// closes.
func (b *treeBuilder) closeIfNecessary(name string) {
	for len(b.stack) > 0 {
		top := b.stack[len(b.stack)-1]
		if top.Namespace != ast.NamespaceHTML {
			return
		}
		if (top.Name == "p" && nonPhrasingTags[name]) || (top.Name == name && leftOpenTags[name]) {
			b.popElement(nil)
			continue
		}
		return
	}
}

func (b *treeBuilder) processStartTag(t *tokenizer.StartTag) {
	b.closeIfNecessary(t.Name)

	ns := b.detectNamespace(t.Name)
	name := t.Name
	if ns == ast.NamespaceSVG {
		if alias, ok := svgElementAliases[name]; ok {
			name = alias
		}
	}

	element := &ast.Element{
		BaseNode:  ast.BaseNode{Range: t.Range, Loc: t.Loc},
		Name:      name,
		RawName:   t.RawName,
		Namespace: ns,
		StartTag: &ast.StartTag{
			BaseNode:    ast.BaseNode{Range: t.Range, Loc: t.Loc},
			SelfClosing: t.SelfClosing,
		},
	}
	element.StartTag.Parent = element
	for _, attr := range t.Attributes {
		attr.Parent = element.StartTag
		if ns == ast.NamespaceSVG {
			if alias, ok := svgAttributeAliases[attr.Key.Name]; ok {
				attr.Key.Name = alias
			}
		}
		element.StartTag.Attributes = append(element.StartTag.Attributes, attr)
	}
	b.appendChild(element)

	if b.vPre == nil {
		if hasAttribute(t, "v-pre") {
			b.vPre = element
			b.tok.ExpressionEnabled = false
		} else {
			b.processAttributes(element)
		}
	}

	isVoid := ns == ast.NamespaceHTML && voidTags[t.Name]
	if t.SelfClosing && ns == ast.NamespaceHTML && !isVoid {
		b.reportError("non-void-html-element-start-tag-with-trailing-solidus", t.Range, t.Loc)
	}
	if t.SelfClosing || isVoid {
		if b.vPre == element {
			b.vPre = nil
			b.tok.ExpressionEnabled = true
		}
		return
	}

	b.stack = append(b.stack, element)
	b.tok.Namespace = ns
	if ns == ast.NamespaceHTML {
		switch {
		case rcdataTags[t.Name]:
			b.tok.SetContentModel(tokenizer.RCDataModel, t.Name)
		case rawTextTags[t.Name]:
			b.tok.SetContentModel(tokenizer.RawTextModel, t.Name)
		}
	}
}

func hasAttribute(t *tokenizer.StartTag, name string) bool {
	for _, attr := range t.Attributes {
		if attr.Key.Name == name {
			return true
		}
	}
	return false
}

// processAttributes promotes directive attributes and links their
// values.
func (b *treeBuilder) processAttributes(element *ast.Element) {
	st := element.StartTag
	isScript := element.Namespace == ast.NamespaceHTML && element.Name == "script"
	for i, attrLike := range st.Attributes {
		attr := attrLike.(*ast.Attribute)
		raw := attr.Key.RawName
		promote := isDirectiveName(raw) ||
			(b.opts.Vue2Compat && raw == "scope") ||
			(b.opts.TypeAware && isScript && raw == "generic")
		if !promote {
			continue
		}
		d := &ast.Directive{BaseNode: ast.BaseNode{Range: attr.Range, Loc: attr.Loc, Parent: st}}
		key, dyn := parseDirectiveKey(attr.Key)
		key.Parent = d
		d.Key = key
		if attr.Value != nil {
			attr.Value.Parent = d
			d.Value = attr.Value
		}
		st.Attributes[i] = d
		if dyn != nil {
			dyn.container.Parent = key
			b.link.linkDynamicArgument(dyn)
		}
		b.link.linkDirectiveValue(d, element)
	}
}

func (b *treeBuilder) processEndTag(t *tokenizer.EndTag) {
	idx := -1
	for i := len(b.stack) - 1; i >= 0; i-- {
		if strings.ToLower(b.stack[i].RawName) == t.Name {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.reportError("x-invalid-end-tag", t.Range, t.Loc)
		return
	}
	for len(b.stack) > idx+1 {
		b.popElement(nil)
	}
	endTag := &ast.EndTag{
		BaseNode: ast.BaseNode{Range: t.Range, Loc: t.Loc},
		Name:     t.Name,
	}
	b.popElement(endTag)
}

// popElement closes the innermost open element. Without an end tag the
// element's range stops at its last child.
func (b *treeBuilder) popElement(endTag *ast.EndTag) {
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	if endTag != nil {
		endTag.Parent = top
		top.EndTag = endTag
		top.Range[1] = endTag.Range[1]
		top.Loc.End = endTag.Loc.End
	} else if n := len(top.Children); n > 0 {
		last := top.Children[n-1].Base()
		top.Range[1] = last.Range[1]
		top.Loc.End = last.Loc.End
	} else {
		top.Range[1] = top.StartTag.Range[1]
		top.Loc.End = top.StartTag.Loc.End
	}

	if top == b.vPre {
		b.vPre = nil
		b.tok.ExpressionEnabled = true
	}
	ns := ast.NamespaceHTML
	if len(b.stack) > 0 {
		ns = b.stack[len(b.stack)-1].Namespace
	}
	b.tok.Namespace = ns
}

func (b *treeBuilder) processText(t *tokenizer.Text) {
	b.appendChild(&ast.Text{
		BaseNode: ast.BaseNode{Range: t.Range, Loc: t.Loc},
		Value:    t.Value,
	})
}

func (b *treeBuilder) processMustache(m *tokenizer.Mustache) {
	container := &ast.ExpressionContainer{
		BaseNode: ast.BaseNode{Range: m.Range, Loc: m.Loc},
	}
	b.appendChild(container)
	b.link.linkMustache(container, m)
}
