package transform

import "github.com/jsforge/jsforge/internal/ast"

// safeToRepeat reports whether e can be duplicated in the output
// without changing behavior or evaluation count — identifiers,
// `this`, literals, and member chains built only out of those. A
// lowering that needs the same value twice (the base of an optional
// chain, the object a private field lives on) can inline e directly
// when this holds; otherwise it has to capture it once into a
// temporary first.
func safeToRepeat(e ast.Expr) bool {
	switch d := e.Data.(type) {
	case *ast.EIdentifier, *ast.EThis, *ast.ENull, *ast.EUndefined, *ast.EBoolean, *ast.ENumber, *ast.EString:
		return true
	case *ast.EMember:
		if d.Computed {
			return safeToRepeat(d.Object) && safeToRepeat(d.Property)
		}
		return safeToRepeat(d.Object)
	default:
		return false
	}
}

// captureOnce evaluates e exactly once and lets use build an
// expression referencing it as many times as it needs. When e is
// already safe to repeat, use runs directly against e — no temporary,
// no IIFE, just the plain expression a hand-written downlevel would
// produce. Otherwise the result is an arrow IIFE that binds e to a
// single parameter first:
//
//	(( _jsforge_1 ) => <use of _jsforge_1>)(e)
//
// This port has no enclosing-statement list to hoist a `var` into the
// way esbuild's lowerer does, so an arrow IIFE is the fallback — it
// costs a function call per evaluation but never double-evaluates a
// side-effecting base.
func captureOnce(n *namer, e ast.Expr, use func(ref ast.Expr) ast.Expr) ast.Expr {
	if safeToRepeat(e) {
		return use(e)
	}
	name := n.next()
	ref := ast.Expr{Data: &ast.EIdentifier{Name: name}}
	body := use(ref)
	arrow := ast.Expr{Data: &ast.EArrow{
		Params: []ast.Param{{Pattern: ast.Pattern{Data: &ast.PIdentifier{Name: name}}}},
		Body:   ast.ArrowBody{Expr: &body},
	}}
	return ast.Expr{Data: &ast.ECall{Callee: arrow, Args: []ast.Argument{{Value: e}}}}
}

// lowerAssignTarget hands build two independent read/write
// expressions for the same assignment target — an identifier just
// reuses itself, a member expression captures its object (and, if
// computed, its property) once so a rewrite that needs to both read
// and write the target doesn't evaluate a side-effecting base twice.
// Mirrors the target-capturing half of esbuild's lowerAssignmentOperator.
func lowerAssignTarget(n *namer, target ast.Expr, build func(read, write ast.Expr) ast.Expr) ast.Expr {
	switch left := target.Data.(type) {
	case *ast.EIdentifier:
		read := ast.Expr{Data: &ast.EIdentifier{Name: left.Name, Ref: left.Ref}}
		return build(read, target)

	case *ast.EMember:
		if left.Optional {
			break
		}
		return captureOnce(n, left.Object, func(objRef ast.Expr) ast.Expr {
			if !left.Computed {
				read := ast.Expr{Data: &ast.EMember{Object: objRef, Property: left.Property}}
				write := ast.Expr{Data: &ast.EMember{Object: objRef, Property: left.Property}}
				return build(read, write)
			}
			return captureOnce(n, left.Property, func(propRef ast.Expr) ast.Expr {
				read := ast.Expr{Data: &ast.EMember{Object: objRef, Property: propRef, Computed: true}}
				write := ast.Expr{Data: &ast.EMember{Object: objRef, Property: propRef, Computed: true}}
				return build(read, write)
			})
		})
	}

	// Not a valid assignment target (garbage in, garbage out — parsing
	// would already have rejected this before a transform ever sees it).
	return target
}
