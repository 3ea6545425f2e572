package codegen

import "github.com/jsforge/jsforge/internal/ast"

func (p *printer) printPattern(pat ast.Pattern) {
	switch d := pat.Data.(type) {
	case *ast.PIdentifier:
		p.mark(pat.Span, d.Name)
		p.print(d.Name)
		if d.Optional {
			p.print("?")
		}
		if d.TypeAnn != nil {
			p.print(": ")
			p.printType(d.TypeAnn.Type)
		}
	case *ast.PArray:
		p.print("[")
		for i, el := range d.Elements {
			if i > 0 {
				p.print(", ")
			}
			if el.Pattern == nil {
				continue
			}
			if el.Rest {
				p.print("...")
			}
			p.printPattern(*el.Pattern)
			if el.DefaultValue != nil {
				p.print(" = ")
				p.printExpr(*el.DefaultValue, lAssign)
			}
		}
		p.print("]")
		if d.TypeAnn != nil {
			p.print(": ")
			p.printType(d.TypeAnn.Type)
		}
	case *ast.PObject:
		p.print("{")
		wrote := false
		for _, prop := range d.Properties {
			if wrote {
				p.print(", ")
			}
			wrote = true
			if prop.Shorthand {
				p.printPattern(prop.Value)
			} else {
				p.printPropertyKey(prop.Key, prop.Computed)
				p.print(": ")
				p.printPattern(prop.Value)
			}
			if prop.DefaultValue != nil {
				p.print(" = ")
				p.printExpr(*prop.DefaultValue, lAssign)
			}
		}
		if d.Rest != nil {
			if wrote {
				p.print(", ")
			}
			p.print("...")
			p.printPattern(*d.Rest)
		}
		p.print("}")
		if d.TypeAnn != nil {
			p.print(": ")
			p.printType(d.TypeAnn.Type)
		}
	case *ast.PAssign:
		p.printPattern(d.Target)
		p.print(" = ")
		p.printExpr(d.Default, lAssign)
	case *ast.PExpr:
		p.printExpr(d.Value, lAssign)
	default:
		panic("codegen: unhandled pattern node")
	}
}
