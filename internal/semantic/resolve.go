package semantic

import "github.com/jsforge/jsforge/internal/ast"

// resolveProgram is phase two's entry point. It walks the exact same
// tree phase one already walked, re-entering each scope phase one
// built (via the scopeOf maps) instead of creating new ones, and
// records a Reference for every identifier use it finds (spec §4.2,
// "reference phase").
func (b *builder) resolveProgram(prog *ast.Program) {
	b.scope = b.scopes.Root()
	for i := range prog.Body {
		b.resolveStmt(&prog.Body[i])
	}
}

func (b *builder) resolveStmtList(list []ast.Stmt) {
	for i := range list {
		b.resolveStmt(&list[i])
	}
}

// recordIdentUse resolves name against the current scope, records the
// reference, stamps the identifier's Ref field, and bumps the
// symbol's use count. An unresolved name still gets a Reference (with
// Symbol left at its zero value) — see ReferenceTable.Unresolved.
func (b *builder) recordIdentUse(id *ast.EIdentifier, nodeID ast.NodeID, flags ReferenceFlags) {
	sym, ok := b.scopes.Resolve(b.scope, id.Name)
	refID := b.refs.record(id.Name, nodeID, flags, 0)
	if ok {
		b.refs.Get(refID).Symbol = sym
		id.Ref = sym
		b.symbols.markUse(sym)
	}
}

func (b *builder) resolveStmt(s *ast.Stmt) {
	switch d := s.Data.(type) {
	case *ast.SExpr:
		b.resolveExpr(&d.Value)

	case *ast.SBlock:
		parent := b.scope
		b.scope = b.scopeOf[d]
		b.resolveStmtList(d.Body)
		b.scope = parent

	case *ast.SIf:
		b.resolveExpr(&d.Test)
		b.resolveStmt(&d.Consequent)
		if d.Alternate != nil {
			b.resolveStmt(d.Alternate)
		}

	case *ast.SFor:
		parent := b.scope
		if scope, ok := b.scopeOf[s]; ok {
			b.scope = scope
		}
		if d.Init != nil {
			if d.Init.Decl != nil {
				b.resolveVarDecl(d.Init.Decl)
			} else if d.Init.Expr != nil {
				b.resolveExpr(d.Init.Expr)
			}
		}
		if d.Test != nil {
			b.resolveExpr(d.Test)
		}
		if d.Update != nil {
			b.resolveExpr(d.Update)
		}
		b.resolveStmt(&d.Body)
		b.scope = parent

	case *ast.SForIn:
		b.resolveForHead(s, &d.Left, &d.Right, &d.Body)
	case *ast.SForOf:
		b.resolveForHead(s, &d.Left, &d.Right, &d.Body)

	case *ast.SWhile:
		b.resolveExpr(&d.Test)
		b.resolveStmt(&d.Body)

	case *ast.SDoWhile:
		b.resolveStmt(&d.Body)
		b.resolveExpr(&d.Test)

	case *ast.SReturn:
		if d.Value != nil {
			b.resolveExpr(d.Value)
		}

	case *ast.SThrow:
		b.resolveExpr(&d.Value)

	case *ast.STry:
		parent := b.scope
		b.scope = b.scopeOf[&d.Block]
		b.resolveStmtList(d.Block.Body)
		b.scope = parent

		if d.Catch != nil {
			c := d.Catch
			if c.Param != nil {
				b.scope = b.catchBindingScope[c]
				b.resolvePattern(c.Param)
			}
			b.scope = b.catchBodyScope[c]
			b.resolveStmtList(c.Body.Body)
			b.scope = parent
		}
		if d.Finally != nil {
			b.scope = b.scopeOf[d.Finally]
			b.resolveStmtList(d.Finally.Body)
			b.scope = parent
		}

	case *ast.SSwitch:
		b.resolveExpr(&d.Discriminant)
		parent := b.scope
		b.scope = b.scopeOf[s]
		for ci := range d.Cases {
			c := &d.Cases[ci]
			if c.Test != nil {
				b.resolveExpr(c.Test)
			}
			b.resolveStmtList(c.Body)
		}
		b.scope = parent

	case *ast.SLabeled:
		parent := b.scope
		b.scope = b.scopeOf[s]
		b.labelSymbols[d.Label] = append(b.labelSymbols[d.Label], b.scopes.Get(b.scope).Label)
		b.resolveStmt(&d.Body)
		b.labelSymbols[d.Label] = b.labelSymbols[d.Label][:len(b.labelSymbols[d.Label])-1]
		b.scope = parent

	case *ast.SBreak:
		b.markLabelUse(d.Label)
	case *ast.SContinue:
		b.markLabelUse(d.Label)

	case *ast.SWith:
		b.resolveExpr(&d.Object)
		b.resolveStmt(&d.Body)

	case *ast.SVarDecl:
		b.resolveVarDecl(d)

	case *ast.SFunctionDecl:
		b.resolveFunction(d.Fn)

	case *ast.SClassDecl:
		b.resolveClass(d.Class)

	case *ast.STSEnumDecl:
		parent := b.scope
		b.scope = b.scopeOf[s]
		for mi := range d.Members {
			m := &d.Members[mi]
			if m.Initializer != nil {
				b.resolveExpr(m.Initializer)
			}
		}
		b.scope = parent

	case *ast.STSModuleDecl:
		parent := b.scope
		b.scope = b.scopeOf[s]
		b.resolveStmtList(d.Body)
		b.scope = parent

	case *ast.STSInterfaceDecl:
		for i := range d.Extends {
			b.resolveType(&d.Extends[i])
		}
		for i := range d.Body {
			m := &d.Body[i]
			if m.TypeAnn != nil {
				b.resolveType(&m.TypeAnn.Type)
			}
		}

	case *ast.STSTypeAliasDecl:
		b.resolveType(&d.Type)

	case *ast.STSImportEquals:
		b.resolveType(&d.ModuleRef)

	case *ast.STSExportAssignment:
		b.resolveExpr(&d.Value)

	case *ast.SExportNamedDecl:
		if d.Decl != nil {
			b.resolveStmt(d.Decl)
		}
		for i := range d.Specifiers {
			spec := &d.Specifiers[i]
			if sym, ok := b.scopes.Resolve(b.scope, spec.Local); ok {
				b.refs.record(spec.Local, s.ID, RefRead, sym)
				b.symbols.markUse(sym)
			}
		}

	case *ast.SExportDefaultDecl:
		b.resolveExpr(&d.Decl)
	}
}

// markLabelUse bumps the use count of the innermost label matching
// name. A nil name (a bare "break"/"continue") returns at once, since
// labelSymbols only holds explicitly-named labels.
func (b *builder) markLabelUse(name *string) {
	if name == nil {
		return
	}
	stack := b.labelSymbols[*name]
	if len(stack) == 0 {
		return
	}
	sym := stack[len(stack)-1]
	b.symbols.markUse(sym)
	b.refs.record(*name, 0, RefRead, sym)
}

func (b *builder) resolveForHead(s *ast.Stmt, left *ast.ForInit, right *ast.Expr, body *ast.Stmt) {
	parent := b.scope
	if scope, ok := b.scopeOf[s]; ok {
		b.scope = scope
	}
	if left.Decl != nil {
		b.resolveVarDecl(left.Decl)
	} else if left.Expr != nil {
		b.resolveAssignTarget(left.Expr)
	}
	b.resolveExpr(right)
	b.resolveStmt(body)
	b.scope = parent
}

func (b *builder) resolveVarDecl(d *ast.SVarDecl) {
	for i := range d.Declarations {
		decl := &d.Declarations[i]
		b.resolvePattern(&decl.ID)
		if decl.Init != nil {
			b.resolveExpr(decl.Init)
		}
	}
}

// resolvePattern visits only the parts of a binding pattern that can
// reference other symbols — default-value expressions and computed
// property keys. The binding identifiers themselves were already
// resolved (to freshly minted symbols) during the declaration phase.
func (b *builder) resolvePattern(pat *ast.Pattern) {
	switch p := pat.Data.(type) {
	case *ast.PIdentifier:
		if p.TypeAnn != nil {
			b.resolveType(&p.TypeAnn.Type)
		}
	case *ast.PArray:
		for i := range p.Elements {
			el := &p.Elements[i]
			if el.Pattern != nil {
				b.resolvePattern(el.Pattern)
			}
			if el.DefaultValue != nil {
				b.resolveExpr(el.DefaultValue)
			}
		}
		if p.TypeAnn != nil {
			b.resolveType(&p.TypeAnn.Type)
		}
	case *ast.PObject:
		for i := range p.Properties {
			prop := &p.Properties[i]
			if prop.Computed {
				b.resolveExpr(&prop.Key)
			}
			b.resolvePattern(&prop.Value)
			if prop.DefaultValue != nil {
				b.resolveExpr(prop.DefaultValue)
			}
		}
		if p.Rest != nil {
			b.resolvePattern(p.Rest)
		}
		if p.TypeAnn != nil {
			b.resolveType(&p.TypeAnn.Type)
		}
	case *ast.PAssign:
		b.resolvePattern(&p.Target)
		b.resolveExpr(&p.Default)
	case *ast.PExpr:
		b.resolveAssignTarget(&p.Value)
	}
}

func (b *builder) resolveParams(params []ast.Param) {
	for i := range params {
		prm := &params[i]
		for j := range prm.Decorators {
			b.resolveExpr(&prm.Decorators[j])
		}
		b.resolvePattern(&prm.Pattern)
		if prm.DefaultValue != nil {
			b.resolveExpr(prm.DefaultValue)
		}
		if prm.TypeAnn != nil {
			b.resolveType(&prm.TypeAnn.Type)
		}
	}
}

func (b *builder) resolveFunction(fn *ast.Function) {
	parent := b.scope
	b.scope = b.fnArgsScope[fn]
	b.resolveParams(fn.Params)
	for i := range fn.TypeParams {
		if fn.TypeParams[i].Constraint != nil {
			b.resolveType(fn.TypeParams[i].Constraint)
		}
	}
	if fn.ReturnType != nil {
		b.resolveType(&fn.ReturnType.Type)
	}
	if fn.Body != nil {
		b.scope = b.fnBodyScope[fn]
		b.resolveStmtList(fn.Body.Stmts)
	}
	b.scope = parent
}

func (b *builder) resolveArrow(e *ast.EArrow) {
	parent := b.scope
	b.scope = b.arrowArgsScope[e]
	b.resolveParams(e.Params)
	if e.ReturnType != nil {
		b.resolveType(&e.ReturnType.Type)
	}
	if e.Body.Block != nil {
		b.scope = b.arrowBodyScope[e]
		b.resolveStmtList(e.Body.Block.Stmts)
	} else if e.Body.Expr != nil {
		b.resolveExpr(e.Body.Expr)
	}
	b.scope = parent
}

func (b *builder) resolveClass(cls *ast.Class) {
	parent := b.scope
	nameScope := b.classNameScope[cls]
	b.scope = nameScope
	if cls.SuperClass != nil {
		b.resolveExpr(cls.SuperClass)
	}
	for i := range cls.SuperTypeArgs {
		b.resolveType(&cls.SuperTypeArgs[i])
	}
	for i := range cls.Implements {
		b.resolveType(&cls.Implements[i])
	}
	for i := range cls.Decorators {
		b.resolveExpr(&cls.Decorators[i])
	}
	b.scope = b.classBodyScope[cls]
	for i := range cls.Body {
		b.resolveClassMember(&cls.Body[i])
	}
	b.scope = parent
}

func (b *builder) resolveClassMember(m *ast.ClassMember) {
	if m.Computed {
		b.resolveExpr(&m.Key)
	}
	for i := range m.Decorators {
		b.resolveExpr(&m.Decorators[i])
	}
	if m.TypeAnn != nil {
		b.resolveType(&m.TypeAnn.Type)
	}
	switch m.Kind {
	case ast.ClassMemberStaticBlock:
		parent := b.scope
		b.scope = b.staticBlockScope[m]
		if m.StaticBody != nil {
			b.resolveStmtList(m.StaticBody.Stmts)
		}
		b.scope = parent
	case ast.ClassMemberField:
		if m.Value != nil {
			b.resolveExpr(m.Value)
		}
	default:
		if m.Fn != nil {
			b.resolveFunction(m.Fn)
		}
	}
}

func (b *builder) resolveExpr(e *ast.Expr) {
	switch d := e.Data.(type) {
	case *ast.EIdentifier:
		b.recordIdentUse(d, e.ID, RefRead)
	case *ast.EMember:
		b.resolveExpr(&d.Object)
		if d.Computed {
			b.resolveExpr(&d.Property)
		}
	case *ast.ECall:
		b.resolveExpr(&d.Callee)
		b.resolveArgs(d.Args)
		for i := range d.TypeArguments {
			b.resolveType(&d.TypeArguments[i])
		}
	case *ast.ENew:
		b.resolveExpr(&d.Callee)
		b.resolveArgs(d.Args)
		for i := range d.TypeArguments {
			b.resolveType(&d.TypeArguments[i])
		}
	case *ast.EV8Intrinsic:
		b.resolveArgs(d.Args)
	case *ast.EUnary:
		if d.Op == ast.UnOpPreInc || d.Op == ast.UnOpPreDec || d.Op == ast.UnOpPostInc || d.Op == ast.UnOpPostDec {
			b.resolveAssignTarget(&d.Value)
		} else {
			b.resolveExpr(&d.Value)
		}
	case *ast.EBinary:
		b.resolveExpr(&d.Left)
		b.resolveExpr(&d.Right)
	case *ast.ELogical:
		b.resolveExpr(&d.Left)
		b.resolveExpr(&d.Right)
	case *ast.EAssign:
		b.resolveAssignTarget(&d.Target)
		b.resolveExpr(&d.Value)
	case *ast.EConditional:
		b.resolveExpr(&d.Test)
		b.resolveExpr(&d.Consequent)
		b.resolveExpr(&d.Alternate)
	case *ast.ESequence:
		for i := range d.Expressions {
			b.resolveExpr(&d.Expressions[i])
		}
	case *ast.EArray:
		for i := range d.Elements {
			if !d.Elements[i].Hole {
				b.resolveExpr(&d.Elements[i].Value)
			}
		}
	case *ast.EObject:
		for i := range d.Properties {
			p := &d.Properties[i]
			if p.Computed {
				b.resolveExpr(&p.Key)
			}
			if p.Kind == ast.PropertyMethod || p.Kind == ast.PropertyGet || p.Kind == ast.PropertySet {
				if fn, ok := p.Value.Data.(*ast.EFunction); ok {
					b.resolveFunction(fn.Fn)
					continue
				}
			}
			b.resolveExpr(&p.Value)
		}
	case *ast.EFunction:
		b.resolveFunction(d.Fn)
	case *ast.EArrow:
		b.resolveArrow(d)
	case *ast.EClass:
		b.resolveClass(d.Class)
	case *ast.ETemplate:
		if d.Tag != nil {
			b.resolveExpr(d.Tag)
		}
		for i := range d.Tpl.Exprs {
			b.resolveExpr(&d.Tpl.Exprs[i])
		}
	case *ast.EParenthesized:
		b.resolveExpr(&d.Value)
	case *ast.EYield:
		if d.Value != nil {
			b.resolveExpr(d.Value)
		}
	case *ast.EAwait:
		b.resolveExpr(&d.Value)
	case *ast.ETSAs:
		b.resolveExpr(&d.Value)
		b.resolveType(&d.Type)
	case *ast.ETSSatisfies:
		b.resolveExpr(&d.Value)
		b.resolveType(&d.Type)
	case *ast.ETSNonNull:
		b.resolveExpr(&d.Value)
	case *ast.ETSTypeAssertion:
		b.resolveType(&d.Type)
		b.resolveExpr(&d.Value)
	case *ast.JSXElement:
		b.resolveJSXElement(d)
	case *ast.JSXFragment:
		for i := range d.Children {
			b.resolveJSXChild(&d.Children[i])
		}
	}
}

func (b *builder) resolveArgs(args []ast.Argument) {
	for i := range args {
		b.resolveExpr(&args[i].Value)
	}
}

// resolveAssignTarget walks an assignment/update target, recording
// writes for leaf identifiers. Destructuring assignment (as opposed to
// destructuring declaration) reuses plain array/object expression
// nodes rather than Pattern nodes, so array/object literals are
// unwrapped here the same way a binding pattern would be.
func (b *builder) resolveAssignTarget(e *ast.Expr) {
	switch d := e.Data.(type) {
	case *ast.EIdentifier:
		b.recordIdentUse(d, e.ID, RefWrite)
	case *ast.EMember:
		b.resolveExpr(&d.Object)
		if d.Computed {
			b.resolveExpr(&d.Property)
		}
	case *ast.EArray:
		for i := range d.Elements {
			if !d.Elements[i].Hole {
				b.resolveAssignTarget(&d.Elements[i].Value)
			}
		}
	case *ast.EObject:
		for i := range d.Properties {
			p := &d.Properties[i]
			if p.Computed {
				b.resolveExpr(&p.Key)
			}
			b.resolveAssignTarget(&p.Value)
		}
	case *ast.EAssign:
		// A destructuring default written as "target = default".
		b.resolveAssignTarget(&d.Target)
		b.resolveExpr(&d.Value)
	case *ast.EParenthesized:
		b.resolveAssignTarget(&d.Value)
	default:
		b.resolveExpr(e)
	}
}

func (b *builder) resolveJSXElement(el *ast.JSXElement) {
	for i := range el.Attributes {
		a := &el.Attributes[i]
		if a.Attribute != nil && a.Attribute.Value != nil && a.Attribute.Value.Expression != nil {
			b.resolveExpr(a.Attribute.Value.Expression)
		}
		if a.Spread != nil {
			b.resolveExpr(&a.Spread.Argument)
		}
	}
	for i := range el.Children {
		b.resolveJSXChild(&el.Children[i])
	}
}

func (b *builder) resolveJSXChild(c *ast.JSXChild) {
	if c.Expr != nil {
		b.resolveExpr(c.Expr)
	}
	if c.Element != nil {
		b.resolveJSXElement(c.Element)
	}
	if c.Fragment != nil {
		for i := range c.Fragment.Children {
			b.resolveJSXChild(&c.Fragment.Children[i])
		}
	}
}

// resolveType walks the common composite TS type shapes looking for
// type references to resolve as type-only uses (spec §4.2). Positions
// that introduce their own type-parameter scope (conditional "infer",
// mapped-type binders, generic function/constructor types) are left
// unresolved against a dedicated scope — a known simplification noted
// in DESIGN.md — but their children still get walked so a reference to
// an outer-scope type elsewhere in the same annotation still resolves.
func (b *builder) resolveType(ty *ast.TSType) {
	switch d := ty.Data.(type) {
	case *ast.TSTypeReference:
		b.resolveQualifiedName(&d.Name, ty.Span, RefTypeOnly)
		for i := range d.TypeArguments {
			b.resolveType(&d.TypeArguments[i])
		}
	case *ast.TSTypeQuery:
		b.resolveQualifiedName(&d.Name, ty.Span, RefRead)
		for i := range d.TypeArguments {
			b.resolveType(&d.TypeArguments[i])
		}
	case *ast.TSUnionType:
		for i := range d.Types {
			b.resolveType(&d.Types[i])
		}
	case *ast.TSIntersectionType:
		for i := range d.Types {
			b.resolveType(&d.Types[i])
		}
	case *ast.TSArrayType:
		b.resolveType(&d.ElementType)
	case *ast.TSParenthesizedType:
		b.resolveType(&d.Type)
	case *ast.TSTypeOperatorType:
		b.resolveType(&d.Type)
	case *ast.TSIndexedAccessType:
		b.resolveType(&d.ObjectType)
		b.resolveType(&d.IndexType)
	case *ast.TSTupleType:
		for i := range d.Elements {
			b.resolveType(&d.Elements[i].Type)
		}
	case *ast.TSConditionalType:
		b.resolveType(&d.Check)
		b.resolveType(&d.Extends)
		b.resolveType(&d.TrueType)
		b.resolveType(&d.FalseType)
	case *ast.TSMappedType:
		if d.TypeParam.Constraint != nil {
			b.resolveType(d.TypeParam.Constraint)
		}
		if d.NameType != nil {
			b.resolveType(d.NameType)
		}
		b.resolveType(&d.ValueType)
	case *ast.TSFunctionType:
		for i := range d.Params {
			b.resolveType(&d.Params[i].Type)
		}
		b.resolveType(&d.ReturnType)
	case *ast.TSConstructorType:
		for i := range d.Params {
			b.resolveType(&d.Params[i].Type)
		}
		b.resolveType(&d.ReturnType)
	case *ast.TSTypePredicate:
		if d.Type != nil {
			b.resolveType(d.Type)
		}
	case *ast.TSTemplateLiteralType:
		for i := range d.Types {
			b.resolveType(&d.Types[i])
		}
	case *ast.TSImportType:
		for i := range d.TypeArguments {
			b.resolveType(&d.TypeArguments[i])
		}
	}
}

func (b *builder) resolveQualifiedName(q *ast.QualifiedName, span ast.Span, flags ReferenceFlags) {
	left := q
	for left.Left != nil {
		left = left.Left
	}
	sym, ok := b.scopes.Resolve(b.scope, left.Right)
	refID := b.refs.record(left.Right, 0, flags, 0)
	if ok {
		b.refs.Get(refID).Symbol = sym
		b.symbols.markUse(sym)
	}
}
