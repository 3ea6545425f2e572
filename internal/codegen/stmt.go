package codegen

import "github.com/jsforge/jsforge/internal/ast"

func (p *printer) printStmtList(stmts []ast.Stmt) {
	for _, s := range stmts {
		p.printStmt(s)
	}
}

func (p *printer) printBlock(block []ast.Stmt) {
	p.print("{\n")
	p.indent++
	p.printStmtList(block)
	p.indent--
	p.printIndent()
	p.print("}")
}

// printBody prints a single statement used as a loop/if/etc body,
// wrapping it in braces unless it's already a block.
func (p *printer) printBody(s ast.Stmt) {
	if b, ok := s.Data.(*ast.SBlock); ok {
		p.print(" ")
		p.printBlock(b.Body)
		p.print("\n")
		return
	}
	p.print("\n")
	p.indent++
	p.printStmt(s)
	p.indent--
}

func (p *printer) printStmt(s ast.Stmt) {
	p.printIndent()
	p.mark(s.Span, "")

	switch d := s.Data.(type) {
	case *ast.SExpr:
		p.printExpr(d.Value, lLowest)
		p.print(";\n")

	case *ast.SBlock:
		p.printBlock(d.Body)
		p.print("\n")

	case *ast.SEmpty:
		p.print(";\n")

	case *ast.SDebugger:
		p.print("debugger;\n")

	case *ast.SIf:
		p.print("if (")
		p.printExpr(d.Test, lLowest)
		p.print(")")
		if d.Alternate == nil {
			p.printBody(d.Consequent)
			return
		}
		if _, ok := d.Consequent.Data.(*ast.SBlock); ok {
			p.print(" ")
			p.printBlock(d.Consequent.Data.(*ast.SBlock).Body)
			p.print(" else")
		} else {
			p.print("\n")
			p.indent++
			p.printStmt(d.Consequent)
			p.indent--
			p.printIndent()
			p.print("else")
		}
		if elseIf, ok := d.Alternate.Data.(*ast.SIf); ok {
			p.print(" ")
			p.printIfNoIndent(elseIf)
			return
		}
		p.printBody(*d.Alternate)

	case *ast.SFor:
		p.print("for (")
		p.printForInit(d.Init)
		p.print("; ")
		if d.Test != nil {
			p.printExpr(*d.Test, lLowest)
		}
		p.print("; ")
		if d.Update != nil {
			p.printExpr(*d.Update, lLowest)
		}
		p.print(")")
		p.printBody(d.Body)

	case *ast.SForIn:
		p.print("for (")
		p.printForHead(d.Left)
		p.print(" in ")
		p.printExpr(d.Right, lLowest)
		p.print(")")
		p.printBody(d.Body)

	case *ast.SForOf:
		p.print("for ")
		if d.Await {
			p.print("await ")
		}
		p.print("(")
		p.printForHead(d.Left)
		p.print(" of ")
		p.printExpr(d.Right, lAssign)
		p.print(")")
		p.printBody(d.Body)

	case *ast.SWhile:
		p.print("while (")
		p.printExpr(d.Test, lLowest)
		p.print(")")
		p.printBody(d.Body)

	case *ast.SDoWhile:
		p.print("do")
		p.printBody(d.Body)
		p.printIndent()
		p.print("while (")
		p.printExpr(d.Test, lLowest)
		p.print(");\n")

	case *ast.SReturn:
		p.print("return")
		if d.Value != nil {
			p.print(" ")
			p.printExpr(*d.Value, lLowest)
		}
		p.print(";\n")

	case *ast.SBreak:
		p.print("break")
		if d.Label != nil {
			p.print(" ")
			p.print(*d.Label)
		}
		p.print(";\n")

	case *ast.SContinue:
		p.print("continue")
		if d.Label != nil {
			p.print(" ")
			p.print(*d.Label)
		}
		p.print(";\n")

	case *ast.SThrow:
		p.print("throw ")
		p.printExpr(d.Value, lLowest)
		p.print(";\n")

	case *ast.STry:
		p.print("try ")
		p.printBlock(d.Block.Body)
		if d.Catch != nil {
			p.print(" catch")
			if d.Catch.Param != nil {
				p.print(" (")
				p.printPattern(*d.Catch.Param)
				p.print(")")
			}
			p.print(" ")
			p.printBlock(d.Catch.Body.Body)
		}
		if d.Finally != nil {
			p.print(" finally ")
			p.printBlock(d.Finally.Body)
		}
		p.print("\n")

	case *ast.SSwitch:
		p.print("switch (")
		p.printExpr(d.Discriminant, lLowest)
		p.print(") {\n")
		p.indent++
		for _, c := range d.Cases {
			p.printIndent()
			if c.Test != nil {
				p.print("case ")
				p.printExpr(*c.Test, lLowest)
				p.print(":\n")
			} else {
				p.print("default:\n")
			}
			p.indent++
			p.printStmtList(c.Body)
			p.indent--
		}
		p.indent--
		p.printIndent()
		p.print("}\n")

	case *ast.SLabeled:
		p.print(d.Label)
		p.print(": ")
		bodyIndent := p.indent
		p.indent = 0
		p.printStmt(d.Body)
		p.indent = bodyIndent

	case *ast.SWith:
		p.print("with (")
		p.printExpr(d.Object, lLowest)
		p.print(")")
		p.printBody(d.Body)

	case *ast.SVarDecl:
		p.printVarDecl(d)
		p.print(";\n")

	case *ast.SFunctionDecl:
		p.printModifiers(d.Modifiers)
		p.printFunction(&ast.EFunction{Fn: d.Fn}, true)
		p.print("\n")

	case *ast.SClassDecl:
		p.printModifiers(d.Modifiers)
		p.printClass(d.Class, nil)
		p.print("\n")

	case *ast.STSEnumDecl:
		p.printModifiers(d.Modifiers)
		p.print("enum ")
		p.printIdent(d.ID)
		p.print(" {\n")
		p.indent++
		for _, m := range d.Members {
			p.printIndent()
			p.printExpr(m.Name, lLowest)
			if m.Initializer != nil {
				p.print(" = ")
				p.printExpr(*m.Initializer, lAssign)
			}
			p.print(",\n")
		}
		p.indent--
		p.printIndent()
		p.print("}\n")

	case *ast.STSModuleDecl:
		p.printModifiers(d.Modifiers)
		if d.Global {
			p.print("global")
		} else {
			p.print("namespace ")
			if d.StringName != nil {
				p.printQuoted(*d.StringName)
			} else {
				p.printIdent(d.ID)
			}
		}
		p.print(" {\n")
		p.indent++
		p.printStmtList(d.Body)
		p.indent--
		p.printIndent()
		p.print("}\n")

	case *ast.STSInterfaceDecl:
		p.printModifiers(d.Modifiers)
		p.print("interface ")
		p.printIdent(d.ID)
		p.printTypeParams(d.TypeParams)
		if len(d.Extends) > 0 {
			p.print(" extends ")
			for i, t := range d.Extends {
				if i > 0 {
					p.print(", ")
				}
				p.printType(t)
			}
		}
		p.print(" {\n")
		p.indent++
		for _, m := range d.Body {
			p.printIndent()
			p.printInterfaceMember(m)
			p.print("\n")
		}
		p.indent--
		p.printIndent()
		p.print("}\n")

	case *ast.STSTypeAliasDecl:
		p.printModifiers(d.Modifiers)
		p.print("type ")
		p.printIdent(d.ID)
		p.printTypeParams(d.TypeParams)
		p.print(" = ")
		p.printType(d.Type)
		p.print(";\n")

	case *ast.STSImportEquals:
		p.printModifiers(d.Modifiers)
		p.print("import ")
		p.printIdent(d.ID)
		p.print(" = ")
		p.printType(d.ModuleRef)
		p.print(";\n")

	case *ast.STSExportAssignment:
		p.print("export = ")
		p.printExpr(d.Value, lLowest)
		p.print(";\n")

	case *ast.SImportDecl:
		p.printImportDecl(d)

	case *ast.SExportNamedDecl:
		p.printExportNamedDecl(d)

	case *ast.SExportDefaultDecl:
		p.print("export default ")
		p.printExpr(d.Decl, lComma)
		if !isDeclarationExpr(d.Decl) {
			p.print(";")
		}
		p.print("\n")

	case *ast.SExportAllDecl:
		p.print("export ")
		if d.IsTypeOnly {
			p.print("type ")
		}
		p.print("*")
		if d.Alias != nil {
			p.print(" as ")
			p.print(*d.Alias)
		}
		p.print(" from ")
		p.printQuoted(d.Source)
		p.print(";\n")

	default:
		panic("codegen: unhandled statement node")
	}
}

// printIfNoIndent prints an "else if" chain link without re-indenting
// or re-printing the leading "if" keyword's own indentation.
func (p *printer) printIfNoIndent(d *ast.SIf) {
	p.print("if (")
	p.printExpr(d.Test, lLowest)
	p.print(")")
	if d.Alternate == nil {
		p.printBody(d.Consequent)
		return
	}
	p.print(" ")
	p.printBlock(blockBodyOf(d.Consequent))
	p.print(" else")
	if elseIf, ok := d.Alternate.Data.(*ast.SIf); ok {
		p.print(" ")
		p.printIfNoIndent(elseIf)
		return
	}
	p.printBody(*d.Alternate)
}

func blockBodyOf(s ast.Stmt) []ast.Stmt {
	if b, ok := s.Data.(*ast.SBlock); ok {
		return b.Body
	}
	return []ast.Stmt{s}
}

func isDeclarationExpr(e ast.Expr) bool {
	switch e.Data.(type) {
	case *ast.EFunction, *ast.EClass:
		return true
	}
	return false
}

func (p *printer) printForInit(init *ast.ForInit) {
	if init == nil {
		return
	}
	if init.Decl != nil {
		p.printVarDecl(init.Decl)
		return
	}
	if init.Expr != nil {
		p.printExpr(*init.Expr, lLowest)
	}
}

func (p *printer) printForHead(left ast.ForInit) {
	if left.Decl != nil {
		p.printVarDecl(left.Decl)
		return
	}
	p.printExpr(*left.Expr, lLowest)
}

func (p *printer) printVarDecl(d *ast.SVarDecl) {
	p.printModifiers(d.Modifiers)
	p.print(d.Kind.String())
	p.print(" ")
	for i, decl := range d.Declarations {
		if i > 0 {
			p.print(", ")
		}
		p.printPattern(decl.ID)
		if decl.Init != nil {
			p.print(" = ")
			p.printExpr(*decl.Init, lAssign)
		}
	}
}

func (p *printer) printModifiers(mods ast.Modifiers) {
	for _, m := range mods {
		p.print(m.Kind.String())
		p.print(" ")
	}
}

func (p *printer) printTypeParams(params []ast.TSTypeParam) {
	if len(params) == 0 {
		return
	}
	p.print("<")
	for i, tp := range params {
		if i > 0 {
			p.print(", ")
		}
		for _, m := range tp.Modifiers {
			p.print(m.Kind.String())
			p.print(" ")
		}
		p.print(tp.Name)
		if tp.Constraint != nil {
			p.print(" extends ")
			p.printType(*tp.Constraint)
		}
		if tp.Default != nil {
			p.print(" = ")
			p.printType(*tp.Default)
		}
	}
	p.print(">")
}

// printParamsFor prints a function's parameter list, including the
// synthetic `this: T` pseudo-parameter TS allows as the first
// position when a function annotates the type its `this` must have.
func (p *printer) printParamsFor(fn *ast.Function) {
	p.print("(")
	if fn.ThisParamType != nil {
		p.print("this: ")
		p.printType(*fn.ThisParamType)
		if len(fn.Params) > 0 {
			p.print(", ")
		}
	}
	p.printParamList(fn.Params)
	p.print(")")
}

func (p *printer) printParams(params []ast.Param) {
	p.print("(")
	p.printParamList(params)
	p.print(")")
}

func (p *printer) printParamList(params []ast.Param) {
	for i, param := range params {
		if i > 0 {
			p.print(", ")
		}
		for _, dec := range param.Decorators {
			p.print("@")
			p.printExpr(dec, lCall)
			p.print(" ")
		}
		p.printModifiers(param.Modifiers)
		if param.Rest {
			p.print("...")
		}
		p.printPattern(param.Pattern)
		if param.Optional {
			p.print("?")
		}
		if param.TypeAnn != nil {
			p.print(": ")
			p.printType(param.TypeAnn.Type)
		}
		if param.DefaultValue != nil {
			p.print(" = ")
			p.printExpr(*param.DefaultValue, lAssign)
		}
	}
}

func (p *printer) printFunctionBody(body *ast.FunctionBody) {
	if body == nil {
		p.print(";")
		return
	}
	p.print("{\n")
	p.indent++
	for _, dir := range body.Directives {
		p.printIndent()
		p.printQuoted(dir)
		p.print(";\n")
	}
	p.printStmtList(body.Stmts)
	p.indent--
	p.printIndent()
	p.print("}")
}

func (p *printer) printFunction(d *ast.EFunction, asDeclaration bool) {
	fn := d.Fn
	if fn.Async {
		p.print("async ")
	}
	p.print("function")
	if fn.Generator {
		p.print("*")
	}
	if fn.ID != nil {
		p.print(" ")
		p.printIdent(*fn.ID)
	} else if asDeclaration {
		p.print(" ")
	}
	p.printTypeParams(fn.TypeParams)
	p.printParamsFor(fn)
	if fn.ReturnType != nil {
		p.print(": ")
		p.printType(fn.ReturnType.Type)
	}
	p.print(" ")
	p.printFunctionBody(fn.Body)
}

func (p *printer) printClass(cls *ast.Class, modifiers ast.Modifiers) {
	for _, dec := range cls.Decorators {
		p.printIndent()
		p.print("@")
		p.printExpr(dec, lCall)
		p.print("\n")
	}
	p.print("class")
	if cls.ID != nil {
		p.print(" ")
		p.printIdent(*cls.ID)
	}
	p.printTypeParams(cls.TypeParams)
	if cls.SuperClass != nil {
		p.print(" extends ")
		p.printExpr(*cls.SuperClass, lCall)
		p.printTypeArgs(cls.SuperTypeArgs)
	}
	if len(cls.Implements) > 0 {
		p.print(" implements ")
		for i, t := range cls.Implements {
			if i > 0 {
				p.print(", ")
			}
			p.printType(t)
		}
	}
	p.print(" {\n")
	p.indent++
	for _, m := range cls.Body {
		p.printClassMember(m)
	}
	p.indent--
	p.printIndent()
	p.print("}")
}

func (p *printer) printClassMember(m ast.ClassMember) {
	p.printIndent()
	for _, dec := range m.Decorators {
		p.print("@")
		p.printExpr(dec, lCall)
		p.print(" ")
	}
	p.printModifiers(m.Modifiers)

	switch m.Kind {
	case ast.ClassMemberStaticBlock:
		p.print("static ")
		p.printFunctionBody(m.StaticBody)
		p.print("\n")
		return

	case ast.ClassMemberField:
		p.printPropertyKey(m.Key, m.Computed)
		if m.Optional {
			p.print("?")
		}
		if m.TypeAnn != nil {
			p.print(": ")
			p.printType(m.TypeAnn.Type)
		}
		if m.Value != nil {
			p.print(" = ")
			p.printExpr(*m.Value, lAssign)
		}
		p.print(";\n")
		return

	case ast.ClassMemberGetter:
		p.print("get ")
	case ast.ClassMemberSetter:
		p.print("set ")
	}

	fn := m.Fn
	if fn.Async {
		p.print("async ")
	}
	if fn.Generator {
		p.print("*")
	}
	if m.Kind == ast.ClassMemberConstructor {
		p.print("constructor")
	} else {
		p.printPropertyKey(m.Key, m.Computed)
	}
	if m.Optional {
		p.print("?")
	}
	p.printTypeParams(fn.TypeParams)
	p.printParamsFor(fn)
	if fn.ReturnType != nil {
		p.print(": ")
		p.printType(fn.ReturnType.Type)
	}
	p.print(" ")
	p.printFunctionBody(fn.Body)
	p.print("\n")
}

func (p *printer) printImportDecl(d *ast.SImportDecl) {
	p.print("import ")
	if d.IsTypeOnly {
		p.print("type ")
	}
	if len(d.Specifiers) > 0 {
		var def, ns string
		var named []ast.ImportSpecifier
		for _, spec := range d.Specifiers {
			switch {
			case spec.IsDefault:
				def = spec.Local
			case spec.IsNamespace:
				ns = spec.Local
			default:
				named = append(named, spec)
			}
		}
		wroteAny := false
		if def != "" {
			p.print(def)
			wroteAny = true
		}
		if ns != "" {
			if wroteAny {
				p.print(", ")
			}
			p.print("* as ")
			p.print(ns)
			wroteAny = true
		}
		if len(named) > 0 {
			if wroteAny {
				p.print(", ")
			}
			p.print("{ ")
			for i, spec := range named {
				if i > 0 {
					p.print(", ")
				}
				if spec.IsType {
					p.print("type ")
				}
				p.print(spec.Imported)
				if spec.Local != spec.Imported {
					p.print(" as ")
					p.print(spec.Local)
				}
			}
			p.print(" }")
		}
		p.print(" from ")
	}
	p.printQuoted(d.Source)
	if len(d.Assertions) > 0 {
		p.print(" assert { ")
		for i, a := range d.Assertions {
			if i > 0 {
				p.print(", ")
			}
			p.print(a.Key)
			p.print(": ")
			p.printQuoted(a.Value)
		}
		p.print(" }")
	}
	p.print(";\n")
}

func (p *printer) printExportNamedDecl(d *ast.SExportNamedDecl) {
	p.print("export ")
	if d.Decl != nil {
		p.printStmt(*d.Decl)
		return
	}
	if d.IsTypeOnly {
		p.print("type ")
	}
	p.print("{ ")
	for i, spec := range d.Specifiers {
		if i > 0 {
			p.print(", ")
		}
		if spec.IsType {
			p.print("type ")
		}
		p.print(spec.Local)
		if spec.Exported != spec.Local {
			p.print(" as ")
			p.print(spec.Exported)
		}
	}
	p.print(" }")
	if d.Source != nil {
		p.print(" from ")
		p.printQuoted(*d.Source)
	}
	p.print(";\n")
}
