package codegen

import "github.com/jsforge/jsforge/internal/ast"

func (p *printer) printJSXName(n ast.JSXName) {
	if n.Namespace != "" {
		p.print(n.Namespace)
		p.print(":")
	}
	for i, part := range n.Parts {
		if i > 0 {
			p.print(".")
		}
		p.print(part)
	}
}

func (p *printer) printJSXElement(el *ast.JSXElement) {
	p.print("<")
	p.printJSXName(el.Name)
	for _, attr := range el.Attributes {
		p.print(" ")
		p.printJSXAttribute(attr)
	}
	if el.SelfClosing {
		p.print(" />")
		return
	}
	p.print(">")
	p.printJSXChildren(el.Children)
	p.print("</")
	p.printJSXName(el.Name)
	p.print(">")
}

func (p *printer) printJSXFragment(f *ast.JSXFragment) {
	p.print("<>")
	p.printJSXChildren(f.Children)
	p.print("</>")
}

func (p *printer) printJSXAttribute(attr ast.JSXAttributeOrSpread) {
	if attr.Spread != nil {
		p.print("{...")
		p.printExpr(attr.Spread.Argument, lComma)
		p.print("}")
		return
	}
	a := attr.Attribute
	p.printJSXName(a.Name)
	if a.Value == nil {
		return
	}
	p.print("=")
	if a.Value.StringValue != nil {
		p.printQuoted(*a.Value.StringValue)
		return
	}
	p.print("{")
	p.printExpr(*a.Value.Expression, lComma)
	p.print("}")
}

func (p *printer) printJSXChildren(children []ast.JSXChild) {
	for _, c := range children {
		p.printJSXChild(c)
	}
}

func (p *printer) printJSXChild(c ast.JSXChild) {
	switch {
	case c.Text != nil:
		p.print(*c.Text)
	case c.Element != nil:
		p.printJSXElement(c.Element)
	case c.Fragment != nil:
		p.printJSXFragment(c.Fragment)
	case c.Expr != nil:
		p.print("{")
		p.printExpr(*c.Expr, lComma)
		p.print("}")
	default:
		p.print("{}")
	}
}
