package semantic

import "github.com/jsforge/jsforge/internal/ast"

// declareProgram is phase one's entry point: build every Scope and
// Symbol over the whole program before phase two resolves a single
// reference (spec §4.2, "declaration phase").
func (b *builder) declareProgram(prog *ast.Program) {
	b.scope = b.scopes.push(ScopeModule, 0)
	for i := range prog.Body {
		b.declareStmt(&prog.Body[i])
	}
}

func (b *builder) declareStmtList(list []ast.Stmt) {
	for i := range list {
		b.declareStmt(&list[i])
	}
}

func (b *builder) declareStmt(s *ast.Stmt) {
	switch d := s.Data.(type) {
	case *ast.SExpr:
		b.declareExpr(&d.Value)

	case *ast.SBlock:
		parent := b.scope
		b.scope = b.pushScopeFor(d, ScopeBlock, parent)
		b.declareStmtList(d.Body)
		b.scope = parent

	case *ast.SIf:
		b.declareExpr(&d.Test)
		b.declareStmt(&d.Consequent)
		if d.Alternate != nil {
			b.declareStmt(d.Alternate)
		}

	case *ast.SFor:
		parent := b.scope
		hasLexicalHead := d.Init != nil && d.Init.Decl != nil && d.Init.Decl.Kind != ast.VarVar
		if hasLexicalHead {
			b.scope = b.pushScopeFor(s, ScopeFor, parent)
		}
		if d.Init != nil {
			if d.Init.Decl != nil {
				b.declareVarDecl(d.Init.Decl, s.ID)
			} else if d.Init.Expr != nil {
				b.declareExpr(d.Init.Expr)
			}
		}
		if d.Test != nil {
			b.declareExpr(d.Test)
		}
		if d.Update != nil {
			b.declareExpr(d.Update)
		}
		b.declareStmt(&d.Body)
		b.scope = parent

	case *ast.SForIn:
		b.declareForHead(s, &d.Left, &d.Right, &d.Body)
	case *ast.SForOf:
		b.declareForHead(s, &d.Left, &d.Right, &d.Body)

	case *ast.SWhile:
		b.declareExpr(&d.Test)
		b.declareStmt(&d.Body)

	case *ast.SDoWhile:
		b.declareStmt(&d.Body)
		b.declareExpr(&d.Test)

	case *ast.SReturn:
		if d.Value != nil {
			b.declareExpr(d.Value)
		}

	case *ast.SThrow:
		b.declareExpr(&d.Value)

	case *ast.STry:
		parent := b.scope
		b.scope = b.pushScopeFor(&d.Block, ScopeBlock, parent)
		b.declareStmtList(d.Block.Body)
		b.scope = parent

		if d.Catch != nil {
			c := d.Catch
			bindScope := b.pushScopeFor(c, ScopeCatchBinding, parent)
			b.scope = bindScope
			if c.Param != nil {
				b.declareBindingPattern(c.Param, SymbolCatchIdentifier, bindScope, s.ID)
			}
			bodyScope := b.pushScopeFor(&c.Body, ScopeBlock, bindScope)
			b.catchBindingScope[c] = bindScope
			b.catchBodyScope[c] = bodyScope
			b.scope = bodyScope
			b.declareStmtList(c.Body.Body)
			b.scope = parent
		}
		if d.Finally != nil {
			b.scope = b.pushScopeFor(d.Finally, ScopeBlock, parent)
			b.declareStmtList(d.Finally.Body)
			b.scope = parent
		}

	case *ast.SSwitch:
		b.declareExpr(&d.Discriminant)
		parent := b.scope
		b.scope = b.pushScopeFor(s, ScopeSwitch, parent)
		for ci := range d.Cases {
			c := &d.Cases[ci]
			if c.Test != nil {
				b.declareExpr(c.Test)
			}
			b.declareStmtList(c.Body)
		}
		b.scope = parent

	case *ast.SLabeled:
		parent := b.scope
		labelScope := b.pushScopeFor(s, ScopeLabel, parent)
		ls := b.scopes.Get(labelScope)
		sym := b.symbols.declare(d.Label, s.Span, SymbolLabel, labelScope, s.ID)
		ls.Label = sym
		b.labelSymbols[d.Label] = append(b.labelSymbols[d.Label], sym)
		b.scope = labelScope
		b.declareStmt(&d.Body)
		b.scope = parent
		b.labelSymbols[d.Label] = b.labelSymbols[d.Label][:len(b.labelSymbols[d.Label])-1]

	case *ast.SWith:
		b.declareExpr(&d.Object)
		b.declareStmt(&d.Body)

	case *ast.SVarDecl:
		b.declareVarDecl(d, s.ID)

	case *ast.SFunctionDecl:
		if d.Fn.ID != nil {
			target := b.scopes.FindHoistTarget(b.scope)
			d.Fn.ID.Ref = b.declareSymbol(d.Fn.ID.Name, s.Span, SymbolHoistedFunction, target, s.ID)
		}
		b.declareFunction(d.Fn)

	case *ast.SClassDecl:
		if d.Class.ID != nil {
			d.Class.ID.Ref = b.declareSymbol(d.Class.ID.Name, s.Span, SymbolClass, b.scope, s.ID)
		}
		b.declareClass(d.Class)

	case *ast.STSEnumDecl:
		d.ID.Ref = b.declareSymbol(d.ID.Name, s.Span, SymbolTSEnum, b.scope, s.ID)
		parent := b.scope
		b.scope = b.pushScopeFor(s, ScopeTSEnum, parent)
		for mi := range d.Members {
			m := &d.Members[mi]
			if id, ok := m.Name.Data.(*ast.EIdentifier); ok {
				id.Ref = b.declareSymbol(id.Name, m.Name.Span, SymbolConst, b.scope, s.ID)
			}
			if m.Initializer != nil {
				b.declareExpr(m.Initializer)
			}
		}
		b.scope = parent

	case *ast.STSModuleDecl:
		d.ID.Ref = b.declareSymbol(d.ID.Name, s.Span, SymbolTSNamespace, b.scope, s.ID)
		parent := b.scope
		b.scope = b.pushScopeFor(s, ScopeTSNamespace, parent)
		b.declareStmtList(d.Body)
		b.scope = parent

	case *ast.STSInterfaceDecl:
		d.ID.Ref = b.declareSymbol(d.ID.Name, s.Span, SymbolTSInterface, b.scope, s.ID)
		b.symbols.setFlag(d.ID.Ref, FlagTypeOnly)

	case *ast.STSTypeAliasDecl:
		d.ID.Ref = b.declareSymbol(d.ID.Name, s.Span, SymbolTSTypeAlias, b.scope, s.ID)
		b.symbols.setFlag(d.ID.Ref, FlagTypeOnly)

	case *ast.STSImportEquals:
		d.ID.Ref = b.declareSymbol(d.ID.Name, s.Span, SymbolImport, b.scope, s.ID)

	case *ast.STSExportAssignment:
		b.declareExpr(&d.Value)

	case *ast.SImportDecl:
		for i := range d.Specifiers {
			spec := &d.Specifiers[i]
			kind := SymbolImport
			span := s.Span
			id := b.declareSymbol(spec.Local, span, kind, b.scope, s.ID)
			if spec.IsType || d.IsTypeOnly {
				b.symbols.setFlag(id, FlagTypeOnly)
			}
		}

	case *ast.SExportNamedDecl:
		if d.Decl != nil {
			b.declareStmt(d.Decl)
			b.markExported(d.Decl)
		}

	case *ast.SExportDefaultDecl:
		b.declareExpr(&d.Decl)

	case *ast.SExportAllDecl, *ast.SEmpty, *ast.SDebugger, *ast.SBreak, *ast.SContinue:
		// no bindings, no nested expressions to scan

	default:
		_ = d
	}
}

// markExported flags every symbol a directly-exported declaration
// statement ("export const x = 1", "export function f() {}", "export
// class C {}") introduces, so later passes — the unused-binding lint
// rule, the minifier's mangler — can recognize a binding that's part
// of the module's public surface and leave it alone.
func (b *builder) markExported(decl *ast.Stmt) {
	switch d := decl.Data.(type) {
	case *ast.SVarDecl:
		for i := range d.Declarations {
			b.markPatternExported(&d.Declarations[i].ID)
		}
	case *ast.SFunctionDecl:
		if d.Fn != nil && d.Fn.ID != nil && d.Fn.ID.Ref.Valid() {
			b.symbols.setFlag(d.Fn.ID.Ref, FlagExported)
		}
	case *ast.SClassDecl:
		if d.Class != nil && d.Class.ID != nil && d.Class.ID.Ref.Valid() {
			b.symbols.setFlag(d.Class.ID.Ref, FlagExported)
		}
	}
}

func (b *builder) markPatternExported(pat *ast.Pattern) {
	switch p := pat.Data.(type) {
	case *ast.PIdentifier:
		if p.Ref.Valid() {
			b.symbols.setFlag(p.Ref, FlagExported)
		}
	case *ast.PArray:
		for i := range p.Elements {
			if p.Elements[i].Pattern != nil {
				b.markPatternExported(p.Elements[i].Pattern)
			}
		}
	case *ast.PObject:
		for i := range p.Properties {
			b.markPatternExported(&p.Properties[i].Value)
		}
		if p.Rest != nil {
			b.markPatternExported(p.Rest)
		}
	case *ast.PAssign:
		b.markPatternExported(&p.Target)
	}
}

func (b *builder) declareForHead(s *ast.Stmt, left *ast.ForInit, right *ast.Expr, body *ast.Stmt) {
	parent := b.scope
	hasLexicalHead := left.Decl != nil && left.Decl.Kind != ast.VarVar
	if hasLexicalHead {
		b.scope = b.pushScopeFor(s, ScopeFor, parent)
	}
	if left.Decl != nil {
		b.declareVarDecl(left.Decl, s.ID)
	} else if left.Expr != nil {
		b.declareExpr(left.Expr)
	}
	b.declareExpr(right)
	b.declareStmt(body)
	b.scope = parent
}

func (b *builder) declareVarDecl(d *ast.SVarDecl, declNode ast.NodeID) {
	kind := SymbolBlockScoped
	target := b.scope
	switch d.Kind {
	case ast.VarVar:
		kind = SymbolHoisted
		target = b.scopes.FindHoistTarget(b.scope)
	case ast.VarConst, ast.VarUsing, ast.VarAwaitUsing:
		kind = SymbolConst
	}
	for i := range d.Declarations {
		decl := &d.Declarations[i]
		b.declareBindingPattern(&decl.ID, kind, target, declNode)
		if decl.Init != nil {
			b.declareExpr(decl.Init)
		}
	}
}

// declareBindingPattern recursively declares every identifier a
// binding pattern introduces, in the scope the caller has already
// chosen (the hoist target for "var", the local scope otherwise).
func (b *builder) declareBindingPattern(pat *ast.Pattern, kind SymbolKind, scope ast.ScopeID, declNode ast.NodeID) {
	switch p := pat.Data.(type) {
	case *ast.PIdentifier:
		p.Ref = b.declareSymbol(p.Name, pat.Span, kind, scope, declNode)
	case *ast.PArray:
		for i := range p.Elements {
			el := &p.Elements[i]
			if el.Pattern != nil {
				b.declareBindingPattern(el.Pattern, kind, scope, declNode)
			}
			if el.DefaultValue != nil {
				b.declareExpr(el.DefaultValue)
			}
		}
	case *ast.PObject:
		for i := range p.Properties {
			prop := &p.Properties[i]
			if prop.Computed {
				b.declareExpr(&prop.Key)
			}
			b.declareBindingPattern(&prop.Value, kind, scope, declNode)
			if prop.DefaultValue != nil {
				b.declareExpr(prop.DefaultValue)
			}
		}
		if p.Rest != nil {
			b.declareBindingPattern(p.Rest, kind, scope, declNode)
		}
	case *ast.PAssign:
		b.declareBindingPattern(&p.Target, kind, scope, declNode)
		b.declareExpr(&p.Default)
	case *ast.PExpr:
		b.declareExpr(&p.Value)
	}
}

func (b *builder) declareParams(params []ast.Param, scope ast.ScopeID, declNode ast.NodeID) {
	for i := range params {
		prm := &params[i]
		for j := range prm.Decorators {
			b.declareExpr(&prm.Decorators[j])
		}
		b.declareBindingPattern(&prm.Pattern, SymbolParameter, scope, declNode)
		if prm.DefaultValue != nil {
			b.declareExpr(prm.DefaultValue)
		}
	}
}

func (b *builder) declareFunction(fn *ast.Function) {
	b.allFunctions[fn] = struct{}{}
	parent := b.scope
	argsScope := b.scopes.push(ScopeFunctionArgs, parent)
	b.fnArgsScope[fn] = argsScope
	b.scope = argsScope
	b.declareParams(fn.Params, argsScope, 0)
	if fn.Body != nil {
		bodyScope := b.scopes.push(ScopeFunctionBody, argsScope)
		b.fnBodyScope[fn] = bodyScope
		b.scope = bodyScope
		b.declareStmtList(fn.Body.Stmts)
	}
	b.scope = parent
}

func (b *builder) declareArrow(e *ast.EArrow) {
	parent := b.scope
	argsScope := b.scopes.push(ScopeFunctionArgs, parent)
	b.arrowArgsScope[e] = argsScope
	b.scope = argsScope
	b.declareParams(e.Params, argsScope, 0)
	if e.Body.Block != nil {
		bodyScope := b.scopes.push(ScopeFunctionBody, argsScope)
		b.arrowBodyScope[e] = bodyScope
		b.scope = bodyScope
		b.declareStmtList(e.Body.Block.Stmts)
	} else if e.Body.Expr != nil {
		b.declareExpr(e.Body.Expr)
	}
	b.scope = parent
}

func (b *builder) declareClass(cls *ast.Class) {
	parent := b.scope
	nameScope := b.pushScopeFor(cls, ScopeClassName, parent)
	b.classNameScope[cls] = nameScope
	if cls.ID != nil {
		if cls.ID.Ref.Valid() {
			// Already bound by an enclosing "class Foo {}" declaration
			// statement — alias the inner self-reference scope to that
			// same symbol rather than minting a second one, since both
			// names refer to the identical class.
			b.scopes.Get(nameScope).Bindings[cls.ID.Name] = cls.ID.Ref
		} else {
			cls.ID.Ref = b.declareSymbol(cls.ID.Name, ast.Span{}, SymbolClass, nameScope, 0)
		}
	}
	b.scope = nameScope
	if cls.SuperClass != nil {
		b.declareExpr(cls.SuperClass)
	}
	for i := range cls.Decorators {
		b.declareExpr(&cls.Decorators[i])
	}
	bodyScope := b.pushScopeFor(&cls.Body, ScopeClassBody, nameScope)
	b.classBodyScope[cls] = bodyScope
	b.scope = bodyScope
	for i := range cls.Body {
		b.declareClassMember(&cls.Body[i])
	}
	b.scope = parent
}

func (b *builder) declareClassMember(m *ast.ClassMember) {
	if m.Computed {
		b.declareExpr(&m.Key)
	}
	for i := range m.Decorators {
		b.declareExpr(&m.Decorators[i])
	}
	switch m.Kind {
	case ast.ClassMemberStaticBlock:
		parent := b.scope
		scope := b.pushScopeFor(m, ScopeClassStaticInit, parent)
		b.staticBlockScope[m] = scope
		b.scope = scope
		if m.StaticBody != nil {
			b.declareStmtList(m.StaticBody.Stmts)
		}
		b.scope = parent
	case ast.ClassMemberField:
		if m.Value != nil {
			b.declareExpr(m.Value)
		}
	default: // method, getter, setter, constructor
		if m.Fn != nil {
			b.declareFunction(m.Fn)
		}
	}
}

// declareExpr descends into an expression purely to find nested
// functions, arrows, and classes — each of which introduces its own
// scope that must exist before phase two tries to resolve anything
// inside it.
func (b *builder) declareExpr(e *ast.Expr) {
	switch d := e.Data.(type) {
	case *ast.EMember:
		b.declareExpr(&d.Object)
		if d.Computed {
			b.declareExpr(&d.Property)
		}
	case *ast.ECall:
		b.declareExpr(&d.Callee)
		b.declareArgs(d.Args)
	case *ast.ENew:
		b.declareExpr(&d.Callee)
		b.declareArgs(d.Args)
	case *ast.EV8Intrinsic:
		b.declareArgs(d.Args)
	case *ast.EUnary:
		b.declareExpr(&d.Value)
	case *ast.EBinary:
		b.declareExpr(&d.Left)
		b.declareExpr(&d.Right)
	case *ast.ELogical:
		b.declareExpr(&d.Left)
		b.declareExpr(&d.Right)
	case *ast.EAssign:
		b.declareExpr(&d.Target)
		b.declareExpr(&d.Value)
	case *ast.EConditional:
		b.declareExpr(&d.Test)
		b.declareExpr(&d.Consequent)
		b.declareExpr(&d.Alternate)
	case *ast.ESequence:
		for i := range d.Expressions {
			b.declareExpr(&d.Expressions[i])
		}
	case *ast.EArray:
		for i := range d.Elements {
			if !d.Elements[i].Hole {
				b.declareExpr(&d.Elements[i].Value)
			}
		}
	case *ast.EObject:
		for i := range d.Properties {
			p := &d.Properties[i]
			if p.Computed {
				b.declareExpr(&p.Key)
			}
			if p.Kind == ast.PropertyMethod || p.Kind == ast.PropertyGet || p.Kind == ast.PropertySet {
				if fn, ok := p.Value.Data.(*ast.EFunction); ok {
					b.declareFunction(fn.Fn)
					continue
				}
			}
			b.declareExpr(&p.Value)
		}
	case *ast.EFunction:
		b.declareFunction(d.Fn)
	case *ast.EArrow:
		b.declareArrow(d)
	case *ast.EClass:
		b.declareClass(d.Class)
	case *ast.ETemplate:
		if d.Tag != nil {
			b.declareExpr(d.Tag)
		}
		for i := range d.Tpl.Exprs {
			b.declareExpr(&d.Tpl.Exprs[i])
		}
	case *ast.EParenthesized:
		b.declareExpr(&d.Value)
	case *ast.EYield:
		if d.Value != nil {
			b.declareExpr(d.Value)
		}
	case *ast.EAwait:
		b.declareExpr(&d.Value)
	case *ast.ETSAs:
		b.declareExpr(&d.Value)
	case *ast.ETSSatisfies:
		b.declareExpr(&d.Value)
	case *ast.ETSNonNull:
		b.declareExpr(&d.Value)
	case *ast.ETSTypeAssertion:
		b.declareExpr(&d.Value)
	case *ast.JSXElement:
		b.declareJSXElement(d)
	case *ast.JSXFragment:
		for i := range d.Children {
			b.declareJSXChild(&d.Children[i])
		}
	}
}

func (b *builder) declareArgs(args []ast.Argument) {
	for i := range args {
		b.declareExpr(&args[i].Value)
	}
}

func (b *builder) declareJSXElement(el *ast.JSXElement) {
	for i := range el.Attributes {
		a := &el.Attributes[i]
		if a.Attribute != nil && a.Attribute.Value != nil && a.Attribute.Value.Expression != nil {
			b.declareExpr(a.Attribute.Value.Expression)
		}
		if a.Spread != nil {
			b.declareExpr(&a.Spread.Argument)
		}
	}
	for i := range el.Children {
		b.declareJSXChild(&el.Children[i])
	}
}

func (b *builder) declareJSXChild(c *ast.JSXChild) {
	if c.Expr != nil {
		b.declareExpr(c.Expr)
	}
	if c.Element != nil {
		b.declareJSXElement(c.Element)
	}
	if c.Fragment != nil {
		for i := range c.Fragment.Children {
			b.declareJSXChild(&c.Fragment.Children[i])
		}
	}
}
