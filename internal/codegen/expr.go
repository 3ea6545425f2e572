package codegen

import (
	"strings"

	"github.com/jsforge/jsforge/internal/ast"
)

// printExpr renders e. lvl is the precedence level the surrounding
// context requires; e is wrapped in parens whenever its own natural
// level is lower than lvl.
func (p *printer) printExpr(e ast.Expr, lvl level) {
	switch d := e.Data.(type) {
	case *ast.ENull:
		p.mark(e.Span, "")
		p.print("null")
	case *ast.EUndefined:
		p.mark(e.Span, "")
		p.print("undefined")
	case *ast.EBoolean:
		p.mark(e.Span, "")
		if d.Value {
			p.print("true")
		} else {
			p.print("false")
		}
	case *ast.ENumber:
		p.mark(e.Span, "")
		p.print(formatNumber(d.Value))
	case *ast.EBigInt:
		p.mark(e.Span, "")
		p.print(d.Raw)
		p.print("n")
	case *ast.EString:
		p.mark(e.Span, "")
		p.printQuoted(d.Value)
	case *ast.ERegExp:
		p.mark(e.Span, "")
		p.print("/")
		p.print(d.Pattern)
		p.print("/")
		p.print(d.Flags)
	case *ast.EIdentifier:
		p.mark(e.Span, d.Name)
		p.print(d.Name)
	case *ast.EPrivateIdentifier:
		p.mark(e.Span, "")
		p.print(d.Name)
	case *ast.EThis:
		p.mark(e.Span, "")
		p.print("this")
	case *ast.ESuper:
		p.mark(e.Span, "")
		p.print("super")
	case *ast.ENewTarget:
		p.mark(e.Span, "")
		p.print("new.target")
	case *ast.EImportMeta:
		p.mark(e.Span, "")
		p.print("import.meta")
	case *ast.EMember:
		p.printMember(d, lvl)
	case *ast.ECall:
		p.printCall(d, lvl)
	case *ast.ENew:
		p.printNew(d, lvl)
	case *ast.EV8Intrinsic:
		p.print("%")
		p.print(d.Name)
		p.printArgs(d.Args)
	case *ast.EUnary:
		p.printUnary(d, lvl)
	case *ast.EBinary:
		p.printBinary(d, lvl)
	case *ast.ELogical:
		p.printLogical(d, lvl)
	case *ast.EAssign:
		p.printAssign(d, lvl)
	case *ast.EConditional:
		p.printConditional(d, lvl)
	case *ast.ESequence:
		wrap := lvl >= lComma
		p.parenIf(wrap, func() {
			for i, sub := range d.Expressions {
				if i > 0 {
					p.print(", ")
				}
				p.printExpr(sub, lComma)
			}
		})
	case *ast.EArray:
		p.printArray(d)
	case *ast.EObject:
		p.printObject(d)
	case *ast.EFunction:
		wrap := lvl >= lCall && p.atStatementStart()
		p.parenIf(wrap, func() { p.printFunction(d, false) })
	case *ast.EArrow:
		p.printArrow(d, lvl)
	case *ast.EClass:
		p.printClass(d.Class, nil)
	case *ast.ETemplate:
		p.printTemplate(d)
	case *ast.EParenthesized:
		p.print("(")
		p.printExpr(d.Value, lLowest)
		p.print(")")
	case *ast.EYield:
		wrap := lvl >= lAssign
		p.parenIf(wrap, func() {
			p.print("yield")
			if d.Delegate {
				p.print("*")
			}
			if d.Value != nil {
				p.print(" ")
				p.printExpr(*d.Value, lYield)
			}
		})
	case *ast.EAwait:
		wrap := lvl >= lPrefix
		p.parenIf(wrap, func() {
			p.print("await ")
			p.printExpr(d.Value, lPrefix)
		})
	case *ast.ETSAs:
		p.printExpr(d.Value, lCompare)
		p.print(" as ")
		p.printType(d.Type)
	case *ast.ETSSatisfies:
		p.printExpr(d.Value, lCompare)
		p.print(" satisfies ")
		p.printType(d.Type)
	case *ast.ETSNonNull:
		p.printExpr(d.Value, lPostfix)
		p.print("!")
	case *ast.ETSTypeAssertion:
		p.print("<")
		p.printType(d.Type)
		p.print(">")
		p.printExpr(d.Value, lPrefix)
	case *ast.JSXElement:
		p.printJSXElement(d)
	case *ast.JSXFragment:
		p.printJSXFragment(d)
	default:
		panic("codegen: unhandled expression node")
	}
}

// printIdent prints a bound identifier directly, bypassing printExpr
// since several AST fields (Function.ID, Class.ID, enum/namespace/
// interface/alias/import-equals declaration names) hold a bare
// EIdentifier or *EIdentifier rather than a wrapped Expr.
func (p *printer) printIdent(id ast.EIdentifier) {
	p.print(id.Name)
}

func (p *printer) parenIf(wrap bool, body func()) {
	if wrap {
		p.print("(")
	}
	body()
	if wrap {
		p.print(")")
	}
}

// atStatementStart is conservative and always reports true: the AST
// keeps no record of whether a function/class expression needed parens
// to disambiguate from a declaration, so an expression-statement caller
// requests the wrap via lvl instead.
func (p *printer) atStatementStart() bool { return true }

func (p *printer) printMember(d *ast.EMember, lvl level) {
	wrap := lvl > lMember
	p.parenIf(wrap, func() {
		p.printExpr(d.Object, lMember)
		if d.Computed {
			if d.Optional {
				p.print("?.")
			}
			p.print("[")
			p.printExpr(d.Property, lLowest)
			p.print("]")
		} else {
			if d.Optional {
				p.print("?.")
			} else {
				p.print(".")
			}
			p.printExpr(d.Property, lLowest)
		}
	})
}

func (p *printer) printArgs(args []ast.Argument) {
	p.print("(")
	for i, a := range args {
		if i > 0 {
			p.print(", ")
		}
		if a.Spread {
			p.print("...")
		}
		p.printExpr(a.Value, lComma)
	}
	p.print(")")
}

func (p *printer) printTypeArgs(args []ast.TSType) {
	if len(args) == 0 {
		return
	}
	p.print("<")
	for i, t := range args {
		if i > 0 {
			p.print(", ")
		}
		p.printType(t)
	}
	p.print(">")
}

func (p *printer) printCall(d *ast.ECall, lvl level) {
	wrap := lvl > lCall
	p.parenIf(wrap, func() {
		p.printExpr(d.Callee, lCall)
		if d.Optional {
			p.print("?.")
		}
		p.printTypeArgs(d.TypeArguments)
		p.printArgs(d.Args)
	})
}

func (p *printer) printNew(d *ast.ENew, lvl level) {
	wrap := lvl > lNew
	p.parenIf(wrap, func() {
		p.print("new ")
		p.printExpr(d.Callee, lMember)
		p.printTypeArgs(d.TypeArguments)
		p.printArgs(d.Args)
	})
}

var unaryOpText = [...]string{
	"+", "-", "~", "!", "void ", "typeof ", "delete ", "++", "--", "++", "--",
}

func (p *printer) printUnary(d *ast.EUnary, lvl level) {
	if !d.Prefix {
		wrap := lvl > lPostfix
		p.parenIf(wrap, func() {
			p.printExpr(d.Value, lPostfix)
			p.print(unaryOpText[d.Op])
		})
		return
	}
	wrap := lvl > lPrefix
	p.parenIf(wrap, func() {
		text := unaryOpText[d.Op]
		p.print(text)
		if strings.HasSuffix(text, "+") || strings.HasSuffix(text, "-") {
			// Defend against "+ +x" collapsing into "++x".
			if u, ok := d.Value.Data.(*ast.EUnary); ok && unaryOpText[u.Op][0] == text[0] {
				p.print(" ")
			} else if n, ok := d.Value.Data.(*ast.ENumber); ok && n.Value < 0 && text == "-" {
				p.print(" ")
			}
		}
		p.printExpr(d.Value, lPrefix)
	})
}

var binaryOpText = [...]string{
	"+", "-", "*", "/", "%", "**", "<<", ">>", ">>>",
	"<", "<=", ">", ">=", "in", "instanceof",
	"==", "!=", "===", "!==",
	"&", "|", "^", ",",
}

func (p *printer) printBinary(d *ast.EBinary, outer level) {
	lvl, leftAssoc := binaryOpLevel(int(d.Op))
	wrap := outer > lvl
	p.parenIf(wrap, func() {
		leftLvl, rightLvl := lvl, lvl+1
		if !leftAssoc {
			leftLvl, rightLvl = lvl+1, lvl
		}
		p.printExpr(d.Left, leftLvl)
		p.print(" ")
		p.print(binaryOpText[d.Op])
		p.print(" ")
		p.printExpr(d.Right, rightLvl)
	})
}

func (p *printer) printLogical(d *ast.ELogical, outer level) {
	lvl := logicalOpLevel(int(d.Op))
	wrap := outer > lvl
	p.parenIf(wrap, func() {
		p.printExpr(d.Left, lvl)
		switch d.Op {
		case ast.LogicalOpAnd:
			p.print(" && ")
		case ast.LogicalOpOr:
			p.print(" || ")
		default:
			p.print(" ?? ")
		}
		p.printExpr(d.Right, lvl+1)
	})
}

var assignOpText = [...]string{
	"=", "+=", "-=", "*=", "/=", "%=", "**=", "<<=", ">>=", ">>>=",
	"&=", "|=", "^=", "&&=", "||=", "??=",
}

func (p *printer) printAssign(d *ast.EAssign, outer level) {
	wrap := outer > lAssign
	p.parenIf(wrap, func() {
		p.printExpr(d.Target, lAssign+1)
		p.print(" ")
		p.print(assignOpText[d.Op])
		p.print(" ")
		p.printExpr(d.Value, lAssign)
	})
}

func (p *printer) printConditional(d *ast.EConditional, outer level) {
	wrap := outer > lConditional
	p.parenIf(wrap, func() {
		p.printExpr(d.Test, lNullishCoalescing+1)
		p.print(" ? ")
		p.printExpr(d.Consequent, lAssign)
		p.print(" : ")
		p.printExpr(d.Alternate, lAssign)
	})
}

func (p *printer) printArray(d *ast.EArray) {
	p.print("[")
	for i, el := range d.Elements {
		if i > 0 {
			p.print(", ")
		}
		if el.Hole {
			continue
		}
		if el.Spread {
			p.print("...")
		}
		p.printExpr(el.Value, lComma)
	}
	p.print("]")
}

func (p *printer) printObject(d *ast.EObject) {
	p.print("{")
	for i, prop := range d.Properties {
		if i > 0 {
			p.print(", ")
		}
		p.printObjectProperty(prop)
	}
	p.print("}")
}

func (p *printer) printObjectProperty(prop ast.ObjectProperty) {
	if prop.Kind == ast.PropertySpread {
		p.print("...")
		p.printExpr(prop.Value, lComma)
		return
	}

	if prop.Kind == ast.PropertyGet || prop.Kind == ast.PropertySet {
		if prop.Kind == ast.PropertyGet {
			p.print("get ")
		} else {
			p.print("set ")
		}
		p.printPropertyKey(prop.Key, prop.Computed)
		fn := prop.Value.Data.(*ast.EFunction).Fn
		p.printParamsFor(fn)
		p.print(" ")
		p.printFunctionBody(fn.Body)
		return
	}

	if prop.Kind == ast.PropertyMethod {
		fn := prop.Value.Data.(*ast.EFunction).Fn
		if fn.Async {
			p.print("async ")
		}
		if fn.Generator {
			p.print("*")
		}
		p.printPropertyKey(prop.Key, prop.Computed)
		p.printParamsFor(fn)
		p.print(" ")
		p.printFunctionBody(fn.Body)
		return
	}

	if prop.Shorthand {
		p.printExpr(prop.Key, lComma)
		return
	}

	p.printPropertyKey(prop.Key, prop.Computed)
	p.print(": ")
	p.printExpr(prop.Value, lComma)
}

func (p *printer) printPropertyKey(key ast.Expr, computed bool) {
	if computed {
		p.print("[")
		p.printExpr(key, lComma)
		p.print("]")
		return
	}
	p.printExpr(key, lLowest)
}

func (p *printer) printTemplate(d *ast.ETemplate) {
	if d.Tag != nil {
		p.printExpr(*d.Tag, lMember)
	}
	p.print("`")
	for i, q := range d.Tpl.Quasis {
		p.print(q.Raw)
		if i < len(d.Tpl.Exprs) {
			p.print("${")
			p.printExpr(d.Tpl.Exprs[i], lLowest)
			p.print("}")
		}
	}
	p.print("`")
}

func (p *printer) printArrow(d *ast.EArrow, outer level) {
	wrap := outer >= lAssign
	p.parenIf(wrap, func() {
		if d.Async {
			p.print("async ")
		}
		if len(d.Params) == 1 && d.Params[0].DefaultValue == nil && !d.Params[0].Rest &&
			d.Params[0].TypeAnn == nil && !d.Params[0].Optional {
			if _, ok := d.Params[0].Pattern.Data.(*ast.PIdentifier); ok && len(d.TypeParams) == 0 {
				p.printPattern(d.Params[0].Pattern)
				p.print(" => ")
				p.printArrowBody(d.Body)
				return
			}
		}
		p.printTypeParams(d.TypeParams)
		p.printParams(d.Params)
		if d.ReturnType != nil {
			p.print(": ")
			p.printType(d.ReturnType.Type)
		}
		p.print(" => ")
		p.printArrowBody(d.Body)
	})
}

func (p *printer) printArrowBody(body ast.ArrowBody) {
	if body.Block != nil {
		p.printFunctionBody(body.Block)
		return
	}
	// An object literal as an arrow's concise body needs parens so it
	// isn't parsed as the arrow's block.
	if _, ok := body.Expr.Data.(*ast.EObject); ok {
		p.print("(")
		p.printExpr(*body.Expr, lComma)
		p.print(")")
		return
	}
	p.printExpr(*body.Expr, lAssign)
}
