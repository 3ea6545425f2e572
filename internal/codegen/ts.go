package codegen

import "github.com/jsforge/jsforge/internal/ast"

var tsKeywordText = [...]string{
	"any", "unknown", "never", "void", "undefined", "null", "boolean",
	"number", "string", "symbol", "bigint", "object", "this",
}

func (p *printer) printType(t ast.TSType) {
	switch d := t.Data.(type) {
	case *ast.TSKeywordType:
		p.print(tsKeywordText[d.Keyword])

	case *ast.TSLiteralType:
		p.printExpr(d.Literal, lLowest)

	case *ast.TSUnionType:
		for i, sub := range d.Types {
			if i > 0 {
				p.print(" | ")
			}
			p.printTypeParen(sub, isLowPrecedenceType)
		}

	case *ast.TSIntersectionType:
		for i, sub := range d.Types {
			if i > 0 {
				p.print(" & ")
			}
			p.printTypeParen(sub, isLowPrecedenceType)
		}

	case *ast.TSTypeReference:
		p.printQualifiedName(d.Name)
		p.printTypeArgs(d.TypeArguments)

	case *ast.TSTypeQuery:
		p.print("typeof ")
		p.printQualifiedName(d.Name)
		p.printTypeArgs(d.TypeArguments)

	case *ast.TSImportType:
		p.print("import(")
		p.printQuoted(d.Argument)
		p.print(")")
		if d.Qualifier != nil {
			p.print(".")
			p.printQualifiedName(*d.Qualifier)
		}
		p.printTypeArgs(d.TypeArguments)

	case *ast.TSConditionalType:
		p.printTypeParen(d.Check, isLowPrecedenceType)
		p.print(" extends ")
		p.printTypeParen(d.Extends, isLowPrecedenceType)
		p.print(" ? ")
		p.printType(d.TrueType)
		p.print(" : ")
		p.printType(d.FalseType)

	case *ast.TSInferType:
		p.print("infer ")
		p.print(d.Name)
		if d.Constraint != nil {
			p.print(" extends ")
			p.printType(*d.Constraint)
		}

	case *ast.TSMappedType:
		p.print("{ ")
		switch d.ReadonlyMod {
		case ast.MappedModifierPlus:
			p.print("+readonly ")
		case ast.MappedModifierMinus:
			p.print("-readonly ")
		}
		tp := d.TypeParam
		p.print("[")
		p.print(tp.Name)
		if tp.Constraint != nil {
			p.print(" in ")
			p.printType(*tp.Constraint)
		}
		if d.NameType != nil {
			p.print(" as ")
			p.printType(*d.NameType)
		}
		p.print("]")
		switch d.OptionalMod {
		case ast.MappedModifierPlus:
			p.print("+?")
		case ast.MappedModifierMinus:
			p.print("-?")
		}
		p.print(": ")
		p.printType(d.ValueType)
		p.print(" }")

	case *ast.TSIndexedAccessType:
		p.printTypeParen(d.ObjectType, isLowPrecedenceType)
		p.print("[")
		p.printType(d.IndexType)
		p.print("]")

	case *ast.TSTupleType:
		p.print("[")
		for i, m := range d.Elements {
			if i > 0 {
				p.print(", ")
			}
			if m.Rest {
				p.print("...")
			}
			if m.Label != "" {
				p.print(m.Label)
				if m.Optional {
					p.print("?")
				}
				p.print(": ")
			}
			p.printType(m.Type)
			if m.Label == "" && m.Optional {
				p.print("?")
			}
		}
		p.print("]")

	case *ast.TSArrayType:
		p.printTypeParen(d.ElementType, isLowPrecedenceType)
		p.print("[]")

	case *ast.TSParenthesizedType:
		p.print("(")
		p.printType(d.Type)
		p.print(")")

	case *ast.TSTypeOperatorType:
		switch d.Operator {
		case ast.TSTypeOperatorKeyOf:
			p.print("keyof ")
		case ast.TSTypeOperatorUnique:
			p.print("unique ")
		case ast.TSTypeOperatorReadonly:
			p.print("readonly ")
		}
		p.printType(d.Type)

	case *ast.TSFunctionType:
		p.printTypeParams(d.TypeParams)
		p.printTSFunctionParams(d.Params)
		p.print(" => ")
		p.printType(d.ReturnType)

	case *ast.TSConstructorType:
		if d.Abstract {
			p.print("abstract ")
		}
		p.print("new ")
		p.printTypeParams(d.TypeParams)
		p.printTSFunctionParams(d.Params)
		p.print(" => ")
		p.printType(d.ReturnType)

	case *ast.TSTypePredicate:
		if d.Asserts {
			p.print("asserts ")
		}
		if d.IsThis {
			p.print("this")
		} else {
			p.print(d.ParamName)
		}
		if d.Type != nil {
			p.print(" is ")
			p.printType(*d.Type)
		}

	case *ast.TSTemplateLiteralType:
		p.print("`")
		for i, q := range d.Quasis {
			p.print(q)
			if i < len(d.Types) {
				p.print("${")
				p.printType(d.Types[i])
				p.print("}")
			}
		}
		p.print("`")

	default:
		panic("codegen: unhandled type node")
	}
}

// isLowPrecedenceType flags the type-node kinds that need wrapping
// parens when nested inside a union/intersection/conditional/indexed-
// access/array type, mirroring how a plain-text TS printer must
// disambiguate "A | B[]" from "(A | B)[]".
func isLowPrecedenceType(t ast.TSType) bool {
	switch t.Data.(type) {
	case *ast.TSUnionType, *ast.TSIntersectionType, *ast.TSConditionalType,
		*ast.TSFunctionType, *ast.TSConstructorType, *ast.TSTypeOperatorType:
		return true
	}
	return false
}

func (p *printer) printTypeParen(t ast.TSType, needsParen func(ast.TSType) bool) {
	if needsParen(t) {
		p.print("(")
		p.printType(t)
		p.print(")")
		return
	}
	p.printType(t)
}

func (p *printer) printQualifiedName(q ast.QualifiedName) {
	if q.Left != nil {
		p.printQualifiedName(*q.Left)
		p.print(".")
	}
	p.print(q.Right)
}

func (p *printer) printTSFunctionParams(params []ast.TSFunctionParam) {
	p.print("(")
	for i, param := range params {
		if i > 0 {
			p.print(", ")
		}
		if param.Rest {
			p.print("...")
		}
		p.print(param.Name)
		if param.Optional {
			p.print("?")
		}
		p.print(": ")
		p.printType(param.Type)
	}
	p.print(")")
}

func (p *printer) printInterfaceMember(m ast.TSInterfaceMember) {
	p.printModifiers(m.Modifiers)
	switch m.Kind {
	case ast.TSInterfaceCallSignature:
		p.printTSFunctionParams(m.Params)
	case ast.TSInterfaceConstructSignature:
		p.print("new ")
		p.printTSFunctionParams(m.Params)
	case ast.TSInterfaceIndexSignature:
		p.print("[")
		p.printPropertyKey(m.Key, m.Computed)
		p.print("]")
	case ast.TSInterfaceGetterSignature:
		p.print("get ")
		p.printPropertyKey(m.Key, m.Computed)
		p.print("()")
	case ast.TSInterfaceSetterSignature:
		p.print("set ")
		p.printPropertyKey(m.Key, m.Computed)
		p.printTSFunctionParams(m.Params)
	default:
		p.printPropertyKey(m.Key, m.Computed)
		if m.Optional {
			p.print("?")
		}
		if m.Kind == ast.TSInterfaceMethodSignature {
			p.printTSFunctionParams(m.Params)
		}
	}
	if m.TypeAnn != nil {
		p.print(": ")
		p.printType(m.TypeAnn.Type)
	}
	p.print(";")
}
