package main

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/vuejs/vue-eslint-parser-sub000/ast"
)

// exportXML renders the element structure of a parsed document as an
// XML tree. Text and mustache children become nested elements so the
// output stays well-formed regardless of the template content.
func exportXML(doc *ast.DocumentFragment) (*etree.Document, error) {
	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := out.CreateElement("template")
	setRangeAttrs(root, doc.Range)

	for _, child := range doc.Children {
		if err := exportNode(root, child); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func exportNode(parent *etree.Element, node ast.Node) error {
	switch n := node.(type) {
	case *ast.Element:
		el := parent.CreateElement(n.Name)
		setRangeAttrs(el, n.Range)
		if n.RawName != n.Name {
			el.CreateAttr("raw-name", n.RawName)
		}
		for _, attr := range n.StartTag.Attributes {
			exportAttribute(el, attr)
		}
		for _, child := range n.Children {
			if err := exportNode(el, child); err != nil {
				return err
			}
		}
	case *ast.Text:
		el := parent.CreateElement("text")
		setRangeAttrs(el, n.Range)
		el.SetText(n.Value)
	case *ast.ExpressionContainer:
		el := parent.CreateElement("expression")
		setRangeAttrs(el, n.Range)
		for _, ref := range n.References {
			el.CreateElement("reference").CreateAttr("name", ref.ID.Name)
		}
	default:
		return fmt.Errorf("unexpected node type: %s", node.Type())
	}

	return nil
}

func exportAttribute(el *etree.Element, attr ast.AttributeLike) {
	switch a := attr.(type) {
	case *ast.Attribute:
		value := ""
		if a.Value != nil {
			value = a.Value.Value
		}
		el.CreateAttr(a.Key.RawName, value)
	case *ast.Directive:
		key := "v-" + a.Key.Name.Name
		if arg, ok := a.Key.Argument.(*ast.Identifier); ok {
			key += ":" + arg.RawName
		}
		for _, mod := range a.Key.Modifiers {
			key += "." + mod.RawName
		}
		dir := el.CreateElement("directive")
		dir.CreateAttr("key", key)
		setRangeAttrs(dir, a.Range)
	}
}

func setRangeAttrs(el *etree.Element, rng ast.Range) {
	el.CreateAttr("start", fmt.Sprint(rng[0]))
	el.CreateAttr("end", fmt.Sprint(rng[1]))
}
