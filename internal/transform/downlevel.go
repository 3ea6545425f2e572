package transform

import "github.com/jsforge/jsforge/internal/ast"

// downleveler rewrites ES2020+ operator syntax into the equivalent an
// older engine understands. It walks the tree itself rather than
// riding on internal/visit: optional-chain lowering needs to look at
// an entire member/call spine at once and replace it wholesale, which
// doesn't fit the walker's one-node-at-a-time callback shape.
type downleveler struct {
	n       *namer
	engines Engines
}

func downlevelProgram(body []ast.Stmt, n *namer, engines Engines) {
	d := &downleveler{n: n, engines: engines}
	d.stmts(body)
}

func (d *downleveler) stmts(list []ast.Stmt) {
	for i := range list {
		d.stmt(&list[i])
	}
}

func (d *downleveler) stmt(s *ast.Stmt) {
	switch st := s.Data.(type) {
	case *ast.SExpr:
		d.expr(&st.Value)
	case *ast.SBlock:
		d.stmts(st.Body)
	case *ast.SIf:
		d.expr(&st.Test)
		d.stmt(&st.Consequent)
		if st.Alternate != nil {
			d.stmt(st.Alternate)
		}
	case *ast.SFor:
		if st.Init != nil {
			d.forInit(st.Init)
		}
		if st.Test != nil {
			d.expr(st.Test)
		}
		if st.Update != nil {
			d.expr(st.Update)
		}
		d.stmt(&st.Body)
	case *ast.SForIn:
		d.forInit(&st.Left)
		d.expr(&st.Right)
		d.stmt(&st.Body)
	case *ast.SForOf:
		d.forInit(&st.Left)
		d.expr(&st.Right)
		d.stmt(&st.Body)
	case *ast.SWhile:
		d.expr(&st.Test)
		d.stmt(&st.Body)
	case *ast.SDoWhile:
		d.stmt(&st.Body)
		d.expr(&st.Test)
	case *ast.SReturn:
		if st.Value != nil {
			d.expr(st.Value)
		}
	case *ast.SThrow:
		d.expr(&st.Value)
	case *ast.STry:
		d.stmts(st.Block.Body)
		if st.Catch != nil {
			d.stmts(st.Catch.Body.Body)
		}
		if st.Finally != nil {
			d.stmts(st.Finally.Body)
		}
	case *ast.SSwitch:
		d.expr(&st.Discriminant)
		for i := range st.Cases {
			c := &st.Cases[i]
			if c.Test != nil {
				d.expr(c.Test)
			}
			d.stmts(c.Body)
		}
	case *ast.SLabeled:
		d.stmt(&st.Body)
	case *ast.SWith:
		d.expr(&st.Object)
		d.stmt(&st.Body)
	case *ast.SVarDecl:
		for i := range st.Declarations {
			if st.Declarations[i].Init != nil {
				d.expr(st.Declarations[i].Init)
			}
		}
	case *ast.SFunctionDecl:
		d.function(st.Fn)
	case *ast.SClassDecl:
		d.class(st.Class)
	case *ast.SExportDefaultDecl:
		d.expr(&st.Decl)
	case *ast.SExportNamedDecl:
		if st.Decl != nil {
			d.stmt(st.Decl)
		}
	}
}

func (d *downleveler) forInit(init *ast.ForInit) {
	if init.Decl != nil {
		for i := range init.Decl.Declarations {
			if init.Decl.Declarations[i].Init != nil {
				d.expr(init.Decl.Declarations[i].Init)
			}
		}
	}
	if init.Expr != nil {
		d.expr(init.Expr)
	}
}

func (d *downleveler) function(fn *ast.Function) {
	if fn == nil {
		return
	}
	for i := range fn.Params {
		if fn.Params[i].DefaultValue != nil {
			d.expr(fn.Params[i].DefaultValue)
		}
	}
	if fn.Body != nil {
		d.stmts(fn.Body.Stmts)
	}
}

func (d *downleveler) class(c *ast.Class) {
	if c == nil {
		return
	}
	if c.SuperClass != nil {
		d.expr(c.SuperClass)
	}
	for i := range c.Body {
		m := &c.Body[i]
		if m.Computed {
			d.expr(&m.Key)
		}
		d.function(m.Fn)
		if m.Value != nil {
			d.expr(m.Value)
		}
		if m.StaticBody != nil {
			d.stmts(m.StaticBody.Stmts)
		}
	}
}

func (d *downleveler) expr(e *ast.Expr) {
	if e == nil {
		return
	}
	switch ed := e.Data.(type) {
	case *ast.EMember:
		if d.engines.Lower(OptionalChain) && chainHasOptional(*e) {
			*e = d.lowerChain(*e)
			return
		}
		d.expr(&ed.Object)
		if ed.Computed {
			d.expr(&ed.Property)
		}

	case *ast.ECall:
		if d.engines.Lower(OptionalChain) && chainHasOptional(*e) {
			*e = d.lowerChain(*e)
			return
		}
		d.expr(&ed.Callee)
		for i := range ed.Args {
			d.expr(&ed.Args[i].Value)
		}

	case *ast.ENew:
		d.expr(&ed.Callee)
		for i := range ed.Args {
			d.expr(&ed.Args[i].Value)
		}

	case *ast.EUnary:
		d.expr(&ed.Value)

	case *ast.EBinary:
		d.expr(&ed.Left)
		d.expr(&ed.Right)
		if ed.Op == ast.BinOpPow && d.engines.Lower(Exponentiation) {
			*e = ast.Expr{Data: &ast.ECall{
				Callee: ast.Expr{Data: &ast.EMember{
					Object:   ast.Expr{Data: &ast.EIdentifier{Name: "Math"}},
					Property: ast.Expr{Data: &ast.EIdentifier{Name: "pow"}},
				}},
				Args: []ast.Argument{{Value: ed.Left}, {Value: ed.Right}},
			}}
		}

	case *ast.ELogical:
		d.expr(&ed.Left)
		d.expr(&ed.Right)
		if ed.Op == ast.LogicalOpNullishCoalescing && d.engines.Lower(NullishCoalescing) {
			*e = d.lowerNullish(ed.Left, ed.Right)
		}

	case *ast.EAssign:
		d.expr(&ed.Target)
		d.expr(&ed.Value)
		if lowered, ok := d.maybeLowerAssign(ed); ok {
			*e = lowered
		}

	case *ast.EConditional:
		d.expr(&ed.Test)
		d.expr(&ed.Consequent)
		d.expr(&ed.Alternate)

	case *ast.ESequence:
		for i := range ed.Expressions {
			d.expr(&ed.Expressions[i])
		}

	case *ast.EArray:
		for i := range ed.Elements {
			if ed.Elements[i].Value.Data != nil {
				d.expr(&ed.Elements[i].Value)
			}
		}

	case *ast.EObject:
		for i := range ed.Properties {
			p := &ed.Properties[i]
			if p.Computed {
				d.expr(&p.Key)
			}
			if p.Value.Data != nil {
				d.expr(&p.Value)
			}
		}

	case *ast.EFunction:
		d.function(ed.Fn)

	case *ast.EArrow:
		for i := range ed.Params {
			if ed.Params[i].DefaultValue != nil {
				d.expr(ed.Params[i].DefaultValue)
			}
		}
		if ed.Body.Block != nil {
			d.stmts(ed.Body.Block.Stmts)
		} else if ed.Body.Expr != nil {
			d.expr(ed.Body.Expr)
		}

	case *ast.EClass:
		d.class(ed.Class)

	case *ast.ETemplate:
		if ed.Tag != nil {
			d.expr(ed.Tag)
		}
		for i := range ed.Tpl.Exprs {
			d.expr(&ed.Tpl.Exprs[i])
		}

	case *ast.EParenthesized:
		d.expr(&ed.Value)

	case *ast.EYield:
		if ed.Value != nil {
			d.expr(ed.Value)
		}

	case *ast.EAwait:
		d.expr(&ed.Value)
	}
}

// lowerNullish turns "left ?? right" into "left == null ? right :
// left", the same rewrite esbuild's lowerNullishCoalescing produces
// (down to using a loose-equality null check to catch undefined too),
// capturing left once if evaluating it twice could repeat a side
// effect.
func (d *downleveler) lowerNullish(left, right ast.Expr) ast.Expr {
	return captureOnce(d.n, left, func(ref ast.Expr) ast.Expr {
		return ast.Expr{Data: &ast.EConditional{
			Test:       ast.Expr{Data: &ast.EBinary{Op: ast.BinOpLooseEq, Left: ref, Right: ast.Expr{Data: &ast.ENull{}}}},
			Consequent: right,
			Alternate:  ref,
		}}
	})
}

// maybeLowerAssign handles the three logical-assignment operators.
// Everything else passes through untouched.
func (d *downleveler) maybeLowerAssign(e *ast.EAssign) (ast.Expr, bool) {
	var op ast.LogicalOp
	switch e.Op {
	case ast.AssignOpLogicalAnd:
		op = ast.LogicalOpAnd
	case ast.AssignOpLogicalOr:
		op = ast.LogicalOpOr
	case ast.AssignOpNullishCoalescing:
		op = ast.LogicalOpNullishCoalescing
	default:
		return ast.Expr{}, false
	}
	if !d.engines.Lower(LogicalAssignment) {
		return ast.Expr{}, false
	}
	result := lowerAssignTarget(d.n, e.Target, func(read, write ast.Expr) ast.Expr {
		assign := ast.Expr{Data: &ast.EAssign{Op: ast.AssignOpAssign, Target: write, Value: e.Value}}
		logical := ast.Expr{Data: &ast.ELogical{Op: op, Left: read, Right: assign}}
		if op == ast.LogicalOpNullishCoalescing && d.engines.Lower(NullishCoalescing) {
			return d.lowerNullish(read, assign)
		}
		return logical
	})
	return result, true
}

// chainHasOptional reports whether any link along e's member/call
// spine carries "?.". It stops as soon as it reaches something that
// isn't itself a continuation of the chain (an identifier, a call's
// arguments, anything in parentheses).
func chainHasOptional(e ast.Expr) bool {
	for {
		switch d := e.Data.(type) {
		case *ast.EMember:
			if d.Optional {
				return true
			}
			e = d.Object
		case *ast.ECall:
			if d.Optional {
				return true
			}
			e = d.Callee
		default:
			return false
		}
	}
}

type chainLink struct {
	call     *ast.ECall
	member   *ast.EMember
	optional bool
}

// lowerChain flattens e's member/call spine down to its base
// expression and the ordered list of links applied on top of it, then
// rebuilds it as nested conditionals: each optional link becomes a
// null-check guarding everything still to come, so a nullish result
// anywhere in the chain short-circuits the whole expression the way
// "a?.b.c?.d" requires, not just the link that produced it.
func (d *downleveler) lowerChain(e ast.Expr) ast.Expr {
	var links []chainLink
	base := e
	for {
		switch bd := base.Data.(type) {
		case *ast.EMember:
			links = append(links, chainLink{member: bd, optional: bd.Optional})
			base = bd.Object
		case *ast.ECall:
			links = append(links, chainLink{call: bd, optional: bd.Optional})
			base = bd.Callee
		default:
			goto done
		}
	}
done:
	// links were collected outermost-first; walk them base-to-tip.
	for i, j := 0, len(links)-1; i < j; i, j = i+1, j-1 {
		links[i], links[j] = links[j], links[i]
	}
	for i := range links {
		if links[i].member != nil {
			d.expr(&links[i].member.Object)
			if links[i].member.Computed {
				d.expr(&links[i].member.Property)
			}
		} else {
			for a := range links[i].call.Args {
				d.expr(&links[i].call.Args[a].Value)
			}
		}
	}
	d.expr(&base)
	return buildChain(d.n, base, links)
}

func buildChain(n *namer, base ast.Expr, links []chainLink) ast.Expr {
	if len(links) == 0 {
		return base
	}
	link := links[0]
	rest := links[1:]

	apply := func(b ast.Expr) ast.Expr {
		if link.member != nil {
			return ast.Expr{Data: &ast.EMember{Object: b, Property: link.member.Property, Computed: link.member.Computed}}
		}
		return ast.Expr{Data: &ast.ECall{Callee: b, Args: link.call.Args, TypeArguments: link.call.TypeArguments}}
	}

	if !link.optional {
		return buildChain(n, apply(base), rest)
	}

	return captureOnce(n, base, func(ref ast.Expr) ast.Expr {
		return ast.Expr{Data: &ast.EConditional{
			Test:       ast.Expr{Data: &ast.EBinary{Op: ast.BinOpLooseEq, Left: ref, Right: ast.Expr{Data: &ast.ENull{}}}},
			Consequent: ast.Expr{Data: &ast.EUndefined{}},
			Alternate:  buildChain(n, apply(ref), rest),
		}}
	})
}
