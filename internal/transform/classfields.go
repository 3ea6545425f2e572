package transform

import "github.com/jsforge/jsforge/internal/ast"

// lowerParameterProperties turns TypeScript's constructor-parameter
// shorthand —
//
//	constructor(private x: number, public readonly y: string) {}
//
// — into the assignment statements it's shorthand for, since
// "private"/"public"/"readonly" parameter modifiers have no meaning
// once the file is plain JavaScript:
//
//	constructor(x, y) { this.x = x; this.y = y; }
//
// The assignments go right after a leading `super(...)` call when the
// class extends something (TypeScript inserts them there too, since a
// derived constructor can't touch `this` any earlier), otherwise at
// the top of the body.
func lowerParameterProperties(c *ast.Class) {
	for mi := range c.Body {
		m := &c.Body[mi]
		if m.Kind != ast.ClassMemberConstructor || m.Fn == nil || m.Fn.Body == nil {
			continue
		}
		var assigns []ast.Stmt
		for pi := range m.Fn.Params {
			p := &m.Fn.Params[pi]
			if len(p.Modifiers) == 0 {
				continue
			}
			id, ok := p.Pattern.Data.(*ast.PIdentifier)
			if !ok {
				continue
			}
			p.Modifiers = nil
			assigns = append(assigns, ast.Stmt{Data: &ast.SExpr{Value: ast.Expr{Data: &ast.EAssign{
				Op:     ast.AssignOpAssign,
				Target: ast.Expr{Data: &ast.EMember{Object: ast.Expr{Data: &ast.EThis{}}, Property: ast.Expr{Data: &ast.EIdentifier{Name: id.Name}}}},
				Value:  ast.Expr{Data: &ast.EIdentifier{Name: id.Name}},
			}}}})
		}
		if len(assigns) == 0 {
			continue
		}
		insertAt := 0
		if len(m.Fn.Body.Stmts) > 0 {
			if se, ok := m.Fn.Body.Stmts[0].Data.(*ast.SExpr); ok {
				if call, ok := se.Value.Data.(*ast.ECall); ok {
					if _, ok := call.Callee.Data.(*ast.ESuper); ok {
						insertAt = 1
					}
				}
			}
		}
		stmts := make([]ast.Stmt, 0, len(m.Fn.Body.Stmts)+len(assigns))
		stmts = append(stmts, m.Fn.Body.Stmts[:insertAt]...)
		stmts = append(stmts, assigns...)
		stmts = append(stmts, m.Fn.Body.Stmts[insertAt:]...)
		m.Fn.Body.Stmts = stmts
	}
}

// lowerClassFields rewrites instance field declarations with a plain
// (non-private, non-computed) key into constructor assignments when
// the target can't run native class fields. opts.UseDefineForClassFields
// picks between the two semantics TypeScript itself switches on:
// `Object.defineProperty` (closer to what a native field does — it
// bypasses an inherited setter) versus a bare assignment (what
// `target: "es2015"` compiled to before useDefineForClassFields
// existed).
//
// Static fields and computed keys are left as-is; see DESIGN.md for
// why this pass stops there.
func lowerClassFields(c *ast.Class, opts Options, engines Engines) {
	if !engines.Lower(ClassField) {
		return
	}
	ctor := findOrCreateConstructor(c)
	var prelude []ast.Stmt
	kept := make([]ast.ClassMember, 0, len(c.Body))
	for _, m := range c.Body {
		if m.Kind != ast.ClassMemberField || m.Modifiers.Has(ast.ModStatic) || m.Computed {
			kept = append(kept, m)
			continue
		}
		if _, ok := m.Key.Data.(*ast.EPrivateIdentifier); ok {
			kept = append(kept, m) // handled by lowerPrivateFields instead
			continue
		}
		var value ast.Expr
		if m.Value != nil {
			value = *m.Value
		} else {
			value = ast.Expr{Data: &ast.EUndefined{}}
		}
		if opts.UseDefineForClassFields {
			prelude = append(prelude, ast.Stmt{Data: &ast.SExpr{Value: ast.Expr{Data: &ast.ECall{
				Callee: ast.Expr{Data: &ast.EMember{
					Object:   ast.Expr{Data: &ast.EIdentifier{Name: "Object"}},
					Property: ast.Expr{Data: &ast.EIdentifier{Name: "defineProperty"}},
				}},
				Args: []ast.Argument{
					{Value: ast.Expr{Data: &ast.EThis{}}},
					{Value: ast.Expr{Data: &ast.EString{Value: keyLiteral(m.Key)}}},
					{Value: ast.Expr{Data: &ast.EObject{Properties: []ast.ObjectProperty{
						{Kind: ast.PropertyInit, Key: ast.Expr{Data: &ast.EIdentifier{Name: "value"}}, Value: value},
						{Kind: ast.PropertyInit, Key: ast.Expr{Data: &ast.EIdentifier{Name: "writable"}}, Value: ast.Expr{Data: &ast.EBoolean{Value: true}}},
						{Kind: ast.PropertyInit, Key: ast.Expr{Data: &ast.EIdentifier{Name: "enumerable"}}, Value: ast.Expr{Data: &ast.EBoolean{Value: true}}},
						{Kind: ast.PropertyInit, Key: ast.Expr{Data: &ast.EIdentifier{Name: "configurable"}}, Value: ast.Expr{Data: &ast.EBoolean{Value: true}}},
					}}}},
				},
			}}}})
		} else {
			prelude = append(prelude, ast.Stmt{Data: &ast.SExpr{Value: ast.Expr{Data: &ast.EAssign{
				Op:     ast.AssignOpAssign,
				Target: ast.Expr{Data: &ast.EMember{Object: ast.Expr{Data: &ast.EThis{}}, Property: m.Key, Computed: m.Computed}},
				Value:  value,
			}}}})
		}
	}
	if len(prelude) == 0 {
		return
	}
	insertAt := 0
	if len(ctor.Fn.Body.Stmts) > 0 {
		if se, ok := ctor.Fn.Body.Stmts[0].Data.(*ast.SExpr); ok {
			if call, ok := se.Value.Data.(*ast.ECall); ok {
				if _, ok := call.Callee.Data.(*ast.ESuper); ok {
					insertAt = 1
				}
			}
		}
	}
	stmts := make([]ast.Stmt, 0, len(ctor.Fn.Body.Stmts)+len(prelude))
	stmts = append(stmts, ctor.Fn.Body.Stmts[:insertAt]...)
	stmts = append(stmts, prelude...)
	stmts = append(stmts, ctor.Fn.Body.Stmts[insertAt:]...)
	ctor.Fn.Body.Stmts = stmts
	c.Body = kept
}

func keyLiteral(key ast.Expr) string {
	switch k := key.Data.(type) {
	case *ast.EIdentifier:
		return k.Name
	case *ast.EString:
		return k.Value
	default:
		return ""
	}
}

func findOrCreateConstructor(c *ast.Class) *ast.ClassMember {
	for i := range c.Body {
		if c.Body[i].Kind == ast.ClassMemberConstructor {
			return &c.Body[i]
		}
	}
	ctor := ast.ClassMember{
		Kind: ast.ClassMemberConstructor,
		Key:  ast.Expr{Data: &ast.EIdentifier{Name: "constructor"}},
		Fn:   &ast.Function{Body: &ast.FunctionBody{}},
	}
	if c.SuperClass != nil {
		ctor.Fn.Params = []ast.Param{{Pattern: ast.Pattern{Data: &ast.PIdentifier{Name: "args"}}, Rest: true}}
		ctor.Fn.Body.Stmts = []ast.Stmt{{Data: &ast.SExpr{Value: ast.Expr{Data: &ast.ECall{
			Callee: ast.Expr{Data: &ast.ESuper{}},
			Args:   []ast.Argument{{Value: ast.Expr{Data: &ast.EIdentifier{Name: "args"}}, Spread: true}},
		}}}}}
	}
	c.Body = append([]ast.ClassMember{ctor}, c.Body...)
	return &c.Body[0]
}

// lowerPrivateFields downlevels private field access to a WeakMap
// when the target doesn't support native private fields. Every read
// or write of a lowered field is rewritten, not just `this.#x` —
// `other.#x` from inside a method (comparing two instances, say) goes
// through the same backing map, which is what native private fields
// do anyway: they're keyed on the object, not on how a method happens
// to have gotten a reference to it. Private methods and accessors are
// left untouched; see DESIGN.md.
func lowerPrivateFields(c *ast.Class, engines Engines) []ast.Stmt {
	if !engines.Lower(ClassPrivateField) {
		return nil
	}
	maps := map[string]string{} // private name -> backing WeakMap identifier
	var decls []ast.Stmt

	weakMapFor := func(name string) string {
		if id, ok := maps[name]; ok {
			return id
		}
		id := "_" + name[1:] + "Map"
		maps[name] = id
		decls = append(decls, ast.Stmt{Data: &ast.SVarDecl{
			Kind: ast.VarConst,
			Declarations: []ast.VarDeclarator{{
				ID:   ast.Pattern{Data: &ast.PIdentifier{Name: id}},
				Init: &ast.Expr{Data: &ast.ENew{Callee: ast.Expr{Data: &ast.EIdentifier{Name: "WeakMap"}}}},
			}},
		}})
		return id
	}

	kept := make([]ast.ClassMember, 0, len(c.Body))
	var ctorInit []ast.Stmt
	for _, m := range c.Body {
		if m.Kind == ast.ClassMemberField && !m.Computed {
			if priv, ok := m.Key.Data.(*ast.EPrivateIdentifier); ok {
				mapID := weakMapFor(priv.Name)
				value := ast.Expr{Data: &ast.EUndefined{}}
				if m.Value != nil {
					value = *m.Value
				}
				ctorInit = append(ctorInit, ast.Stmt{Data: &ast.SExpr{Value: weakMapSetCall(mapID, ast.Expr{Data: &ast.EThis{}}, value)}})
				continue
			}
		}
		kept = append(kept, m)
	}
	c.Body = kept
	if len(ctorInit) > 0 {
		ctor := findOrCreateConstructor(c)
		insertAt := 0
		if len(ctor.Fn.Body.Stmts) > 0 {
			if se, ok := ctor.Fn.Body.Stmts[0].Data.(*ast.SExpr); ok {
				if call, ok := se.Value.Data.(*ast.ECall); ok {
					if _, ok := call.Callee.Data.(*ast.ESuper); ok {
						insertAt = 1
					}
				}
			}
		}
		stmts := make([]ast.Stmt, 0, len(ctor.Fn.Body.Stmts)+len(ctorInit))
		stmts = append(stmts, ctor.Fn.Body.Stmts[:insertAt]...)
		stmts = append(stmts, ctorInit...)
		stmts = append(stmts, ctor.Fn.Body.Stmts[insertAt:]...)
		ctor.Fn.Body.Stmts = stmts
	}

	if len(maps) == 0 {
		return nil
	}
	rewriteThisPrivateAccess(c, maps)
	return decls
}

func weakMapSetCall(mapID string, obj, value ast.Expr) ast.Expr {
	return ast.Expr{Data: &ast.ECall{
		Callee: ast.Expr{Data: &ast.EMember{Object: ast.Expr{Data: &ast.EIdentifier{Name: mapID}}, Property: ast.Expr{Data: &ast.EIdentifier{Name: "set"}}}},
		Args:   []ast.Argument{{Value: obj}, {Value: value}},
	}}
}

func weakMapGetCall(mapID string, obj ast.Expr) ast.Expr {
	return ast.Expr{Data: &ast.ECall{
		Callee: ast.Expr{Data: &ast.EMember{Object: ast.Expr{Data: &ast.EIdentifier{Name: mapID}}, Property: ast.Expr{Data: &ast.EIdentifier{Name: "get"}}}},
		Args:   []ast.Argument{{Value: obj}},
	}}
}

// rewriteThisPrivateAccess walks every method/accessor/constructor
// body in c and replaces reads of a lowered private field with a
// WeakMap get and writes with a WeakMap set, regardless of which
// object expression the access is made through.
func rewriteThisPrivateAccess(c *ast.Class, maps map[string]string) {
	r := &privateRewriter{maps: maps}
	for i := range c.Body {
		m := &c.Body[i]
		if m.Fn != nil {
			r.function(m.Fn)
		}
	}
}

type privateRewriter struct{ maps map[string]string }

func (r *privateRewriter) function(fn *ast.Function) {
	if fn == nil || fn.Body == nil {
		return
	}
	r.stmts(fn.Body.Stmts)
}

func (r *privateRewriter) stmts(list []ast.Stmt) {
	for i := range list {
		r.stmt(&list[i])
	}
}

func (r *privateRewriter) stmt(s *ast.Stmt) {
	switch st := s.Data.(type) {
	case *ast.SExpr:
		r.expr(&st.Value)
	case *ast.SBlock:
		r.stmts(st.Body)
	case *ast.SIf:
		r.expr(&st.Test)
		r.stmt(&st.Consequent)
		if st.Alternate != nil {
			r.stmt(st.Alternate)
		}
	case *ast.SFor:
		if st.Init != nil && st.Init.Expr != nil {
			r.expr(st.Init.Expr)
		}
		if st.Init != nil && st.Init.Decl != nil {
			for i := range st.Init.Decl.Declarations {
				if st.Init.Decl.Declarations[i].Init != nil {
					r.expr(st.Init.Decl.Declarations[i].Init)
				}
			}
		}
		if st.Test != nil {
			r.expr(st.Test)
		}
		if st.Update != nil {
			r.expr(st.Update)
		}
		r.stmt(&st.Body)
	case *ast.SForIn:
		r.expr(&st.Right)
		r.stmt(&st.Body)
	case *ast.SForOf:
		r.expr(&st.Right)
		r.stmt(&st.Body)
	case *ast.SWhile:
		r.expr(&st.Test)
		r.stmt(&st.Body)
	case *ast.SDoWhile:
		r.stmt(&st.Body)
		r.expr(&st.Test)
	case *ast.SReturn:
		if st.Value != nil {
			r.expr(st.Value)
		}
	case *ast.SThrow:
		r.expr(&st.Value)
	case *ast.STry:
		r.stmts(st.Block.Body)
		if st.Catch != nil {
			r.stmts(st.Catch.Body.Body)
		}
		if st.Finally != nil {
			r.stmts(st.Finally.Body)
		}
	case *ast.SSwitch:
		r.expr(&st.Discriminant)
		for i := range st.Cases {
			c := &st.Cases[i]
			if c.Test != nil {
				r.expr(c.Test)
			}
			r.stmts(c.Body)
		}
	case *ast.SLabeled:
		r.stmt(&st.Body)
	case *ast.SVarDecl:
		for i := range st.Declarations {
			if st.Declarations[i].Init != nil {
				r.expr(st.Declarations[i].Init)
			}
		}
	}
}

func (r *privateRewriter) expr(e *ast.Expr) {
	if e == nil {
		return
	}
	if assign, ok := e.Data.(*ast.EAssign); ok {
		if mapID, obj, ok := r.thisPrivateMember(assign.Target); ok {
			r.expr(&assign.Value)
			if assign.Op == ast.AssignOpAssign {
				*e = weakMapSetCall(mapID, obj, assign.Value)
				return
			}
			*e = weakMapSetCall(mapID, obj, ast.Expr{Data: &ast.EBinary{
				Op:    compoundToBinary(assign.Op),
				Left:  weakMapGetCall(mapID, obj),
				Right: assign.Value,
			}})
			return
		}
	}
	if u, ok := e.Data.(*ast.EUnary); ok && (u.Op == ast.UnOpPreInc || u.Op == ast.UnOpPostInc || u.Op == ast.UnOpPreDec || u.Op == ast.UnOpPostDec) {
		if mapID, obj, ok := r.thisPrivateMember(u.Value); ok {
			op := ast.BinOpAdd
			if u.Op == ast.UnOpPreDec || u.Op == ast.UnOpPostDec {
				op = ast.BinOpSub
			}
			*e = weakMapSetCall(mapID, obj, ast.Expr{Data: &ast.EBinary{Op: op, Left: weakMapGetCall(mapID, obj), Right: ast.Expr{Data: &ast.ENumber{Value: 1}}}})
			return
		}
	}
	if mapID, obj, ok := r.thisPrivateMember(*e); ok {
		*e = weakMapGetCall(mapID, obj)
		return
	}
	switch d := e.Data.(type) {
	case *ast.EMember:
		r.expr(&d.Object)
		if d.Computed {
			r.expr(&d.Property)
		}
	case *ast.ECall:
		r.expr(&d.Callee)
		for i := range d.Args {
			r.expr(&d.Args[i].Value)
		}
	case *ast.ENew:
		r.expr(&d.Callee)
		for i := range d.Args {
			r.expr(&d.Args[i].Value)
		}
	case *ast.EUnary:
		r.expr(&d.Value)
	case *ast.EBinary:
		r.expr(&d.Left)
		r.expr(&d.Right)
	case *ast.ELogical:
		r.expr(&d.Left)
		r.expr(&d.Right)
	case *ast.EAssign:
		r.expr(&d.Target)
		r.expr(&d.Value)
	case *ast.EConditional:
		r.expr(&d.Test)
		r.expr(&d.Consequent)
		r.expr(&d.Alternate)
	case *ast.ESequence:
		for i := range d.Expressions {
			r.expr(&d.Expressions[i])
		}
	case *ast.EArray:
		for i := range d.Elements {
			if d.Elements[i].Value.Data != nil {
				r.expr(&d.Elements[i].Value)
			}
		}
	case *ast.EObject:
		for i := range d.Properties {
			p := &d.Properties[i]
			if p.Computed {
				r.expr(&p.Key)
			}
			if p.Value.Data != nil {
				r.expr(&p.Value)
			}
		}
	case *ast.EFunction:
		r.function(d.Fn)
	case *ast.EArrow:
		if d.Body.Block != nil {
			r.stmts(d.Body.Block.Stmts)
		} else if d.Body.Expr != nil {
			r.expr(d.Body.Expr)
		}
	case *ast.ETemplate:
		if d.Tag != nil {
			r.expr(d.Tag)
		}
		for i := range d.Tpl.Exprs {
			r.expr(&d.Tpl.Exprs[i])
		}
	case *ast.EParenthesized:
		r.expr(&d.Value)
	case *ast.EYield:
		if d.Value != nil {
			r.expr(d.Value)
		}
	case *ast.EAwait:
		r.expr(&d.Value)
	}
}

func (r *privateRewriter) thisPrivateMember(e ast.Expr) (mapID string, obj ast.Expr, ok bool) {
	m, isMember := e.Data.(*ast.EMember)
	if !isMember || m.Computed {
		return "", ast.Expr{}, false
	}
	priv, isPrivate := m.Property.Data.(*ast.EPrivateIdentifier)
	if !isPrivate {
		return "", ast.Expr{}, false
	}
	id, has := r.maps[priv.Name]
	if !has {
		return "", ast.Expr{}, false
	}
	return id, m.Object, true
}

func compoundToBinary(op ast.AssignOp) ast.BinaryOp {
	switch op {
	case ast.AssignOpAdd:
		return ast.BinOpAdd
	case ast.AssignOpSub:
		return ast.BinOpSub
	case ast.AssignOpMul:
		return ast.BinOpMul
	case ast.AssignOpDiv:
		return ast.BinOpDiv
	case ast.AssignOpMod:
		return ast.BinOpMod
	case ast.AssignOpPow:
		return ast.BinOpPow
	case ast.AssignOpShl:
		return ast.BinOpShl
	case ast.AssignOpShr:
		return ast.BinOpShr
	case ast.AssignOpUShr:
		return ast.BinOpUShr
	case ast.AssignOpBitwiseAnd:
		return ast.BinOpBitwiseAnd
	case ast.AssignOpBitwiseOr:
		return ast.BinOpBitwiseOr
	case ast.AssignOpBitwiseXor:
		return ast.BinOpBitwiseXor
	default:
		return ast.BinOpAdd
	}
}
