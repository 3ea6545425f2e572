package transform

import "github.com/jsforge/jsforge/internal/ast"

// lowerLegacyDecorators implements TypeScript's `experimentalDecorators`
// calling convention: every class/member/parameter decorator is
// collected into a call to a small `__decorate` runtime helper,
// inserted as a statement right after the class declaration it
// belongs to — the same shape `tsc --experimentalDecorators` has
// always emitted (`Foo = __decorate([dec], Foo)` for a class,
// `__decorate([dec], Foo.prototype, "method",
// Object.getOwnPropertyDescriptor(Foo.prototype, "method"))` for a
// method or accessor, with `null` as the last argument for a field).
//
// Stage-3 (TC39) decorators are left untouched: codegen already
// prints them as native syntax, and this pass only touches a class
// when opts.ExperimentalDecorators says to use the legacy convention.
func lowerLegacyDecorators(body []ast.Stmt, opts Options) ([]ast.Stmt, bool) {
	if !opts.ExperimentalDecorators {
		return body, false
	}
	out := make([]ast.Stmt, 0, len(body))
	usedHelper := false
	for _, s := range body {
		switch d := s.Data.(type) {
		case *ast.SClassDecl:
			out = append(out, s)
			if extra := lowerClassDecorators(d.Class, nameOf(d.Class)); len(extra) > 0 {
				out = append(out, extra...)
				usedHelper = true
			}
		case *ast.SExportNamedDecl:
			if d.Decl != nil {
				if cd, ok := d.Decl.Data.(*ast.SClassDecl); ok {
					out = append(out, s)
					if extra := lowerClassDecorators(cd.Class, nameOf(cd.Class)); len(extra) > 0 {
						out = append(out, extra...)
						usedHelper = true
					}
					continue
				}
			}
			out = append(out, s)
		default:
			out = append(out, s)
		}
	}
	if usedHelper {
		out = append(decorateHelperStmts(), out...)
	}
	return out, usedHelper
}

func nameOf(c *ast.Class) string {
	if c.ID != nil {
		return c.ID.Name
	}
	return ""
}

// lowerClassDecorators strips every decorator off c and returns the
// `__decorate(...)` statements that reproduce their effect.
func lowerClassDecorators(c *ast.Class, className string) []ast.Stmt {
	var stmts []ast.Stmt
	classRef := ast.Expr{Data: &ast.EIdentifier{Name: className}}

	for i := range c.Body {
		m := &c.Body[i]
		var decs []ast.Expr
		decs = append(decs, m.Decorators...)
		m.Decorators = nil

		if m.Fn != nil {
			for pi := range m.Fn.Params {
				for _, pd := range m.Fn.Params[pi].Decorators {
					decs = append(decs, ast.Expr{Data: &ast.ECall{
						Callee: ast.Expr{Data: &ast.EIdentifier{Name: "__param"}},
						Args:   []ast.Argument{{Value: ast.Expr{Data: &ast.ENumber{Value: float64(pi)}}}, {Value: pd}},
					}})
				}
				m.Fn.Params[pi].Decorators = nil
			}
		}
		if len(decs) == 0 || m.Kind == ast.ClassMemberConstructor {
			continue
		}

		target := classRef
		if !m.Modifiers.Has(ast.ModStatic) {
			target = ast.Expr{Data: &ast.EMember{Object: classRef, Property: ast.Expr{Data: &ast.EIdentifier{Name: "prototype"}}}}
		}
		key := m.Key
		if id, ok := key.Data.(*ast.EIdentifier); ok && !m.Computed {
			key = ast.Expr{Data: &ast.EString{Value: id.Name}}
		}
		var descriptor ast.Expr = ast.Expr{Data: &ast.ENull{}}
		if m.Kind == ast.ClassMemberMethod || m.Kind == ast.ClassMemberGetter || m.Kind == ast.ClassMemberSetter {
			descriptor = ast.Expr{Data: &ast.ECall{
				Callee: ast.Expr{Data: &ast.EMember{
					Object:   ast.Expr{Data: &ast.EIdentifier{Name: "Object"}},
					Property: ast.Expr{Data: &ast.EIdentifier{Name: "getOwnPropertyDescriptor"}},
				}},
				Args: []ast.Argument{{Value: target}, {Value: key}},
			}}
		}
		stmts = append(stmts, ast.Stmt{Data: &ast.SExpr{Value: ast.Expr{Data: &ast.ECall{
			Callee: ast.Expr{Data: &ast.EIdentifier{Name: "__decorate"}},
			Args: []ast.Argument{
				{Value: ast.Expr{Data: &ast.EArray{Elements: exprsToElements(decs)}}},
				{Value: target},
				{Value: key},
				{Value: descriptor},
			},
		}}}})
	}

	if len(c.Decorators) > 0 {
		decs := c.Decorators
		c.Decorators = nil
		stmts = append(stmts, ast.Stmt{Data: &ast.SExpr{Value: ast.Expr{Data: &ast.EAssign{
			Op:     ast.AssignOpAssign,
			Target: classRef,
			Value: ast.Expr{Data: &ast.ECall{
				Callee: ast.Expr{Data: &ast.EIdentifier{Name: "__decorate"}},
				Args: []ast.Argument{
					{Value: ast.Expr{Data: &ast.EArray{Elements: exprsToElements(decs)}}},
					{Value: classRef},
				},
			}},
		}}}})
	}
	return stmts
}

func exprsToElements(exprs []ast.Expr) []ast.ArrayElement {
	out := make([]ast.ArrayElement, len(exprs))
	for i, e := range exprs {
		out[i] = ast.ArrayElement{Value: e}
	}
	return out
}

// decorateHelperStmts is the small runtime this pass's output
// depends on: a reflect-free version of the `__decorate`/`__param`
// pair tsc emits inline at the top of a file compiled with
// experimentalDecorators.
func decorateHelperStmts() []ast.Stmt {
	params := func(names ...string) []ast.Param {
		out := make([]ast.Param, len(names))
		for i, n := range names {
			out[i] = ast.Param{Pattern: ast.Pattern{Data: &ast.PIdentifier{Name: n}}}
		}
		return out
	}
	ident := func(name string) ast.Expr { return ast.Expr{Data: &ast.EIdentifier{Name: name}} }

	// function __decorate(decorators, target, key, desc) {
	//   var d = desc === undefined ? target : desc;
	//   for (var i = decorators.length - 1; i >= 0; i--) {
	//     var r = decorators[i](target, key, d);
	//     if (r) d = r;
	//   }
	//   if (key && d) Object.defineProperty(target, key, d);
	//   return d;
	// }
	decorateBody := []ast.Stmt{
		{Data: &ast.SVarDecl{Kind: ast.VarVar, Declarations: []ast.VarDeclarator{{
			ID: ast.Pattern{Data: &ast.PIdentifier{Name: "d"}}, Init: ptrExpr(ast.Expr{Data: &ast.EConditional{
				Test:       ast.Expr{Data: &ast.EBinary{Op: ast.BinOpStrictEq, Left: ident("desc"), Right: ast.Expr{Data: &ast.EUndefined{}}}},
				Consequent: ident("target"),
				Alternate:  ident("desc"),
			}}),
		}}}},
		{Data: &ast.SFor{
			Init: &ast.ForInit{Decl: &ast.SVarDecl{Kind: ast.VarVar, Declarations: []ast.VarDeclarator{{
				ID: ast.Pattern{Data: &ast.PIdentifier{Name: "i"}},
				Init: ptrExpr(ast.Expr{Data: &ast.EBinary{
					Op:   ast.BinOpSub,
					Left: ast.Expr{Data: &ast.EMember{Object: ident("decorators"), Property: ident("length")}},
					Right: ast.Expr{Data: &ast.ENumber{Value: 1}},
				}}),
			}}}},
			Test: ptrExpr(ast.Expr{Data: &ast.EBinary{Op: ast.BinOpGe, Left: ident("i"), Right: ast.Expr{Data: &ast.ENumber{Value: 0}}}}),
			Update: ptrExpr(ast.Expr{Data: &ast.EUnary{Op: ast.UnOpPostDec, Value: ident("i")}}),
			Body: ast.Stmt{Data: &ast.SBlock{Body: []ast.Stmt{
				{Data: &ast.SVarDecl{Kind: ast.VarVar, Declarations: []ast.VarDeclarator{{
					ID: ast.Pattern{Data: &ast.PIdentifier{Name: "r"}},
					Init: ptrExpr(ast.Expr{Data: &ast.ECall{
						Callee: ast.Expr{Data: &ast.EMember{Object: ident("decorators"), Property: ident("i"), Computed: true}},
						Args:   []ast.Argument{{Value: ident("target")}, {Value: ident("key")}, {Value: ident("d")}},
					}}),
				}}}},
				{Data: &ast.SIf{
					Test: ident("r"),
					Consequent: ast.Stmt{Data: &ast.SExpr{Value: ast.Expr{Data: &ast.EAssign{Op: ast.AssignOpAssign, Target: ident("d"), Value: ident("r")}}}},
				}},
			}}},
		}},
		{Data: &ast.SIf{
			Test: ast.Expr{Data: &ast.ELogical{Op: ast.LogicalOpAnd, Left: ident("key"), Right: ident("d")}},
			Consequent: ast.Stmt{Data: &ast.SExpr{Value: ast.Expr{Data: &ast.ECall{
				Callee: ast.Expr{Data: &ast.EMember{Object: ident("Object"), Property: ident("defineProperty")}},
				Args:   []ast.Argument{{Value: ident("target")}, {Value: ident("key")}, {Value: ident("d")}},
			}}}},
		}},
		{Data: &ast.SReturn{Value: ptrExpr(ident("d"))}},
	}

	// function __param(index, decorator) {
	//   return function (target, key) { decorator(target, key, index); };
	// }
	paramBody := []ast.Stmt{
		{Data: &ast.SReturn{Value: ptrExpr(ast.Expr{Data: &ast.EFunction{Fn: &ast.Function{
			Params: params("target", "key"),
			Body: &ast.FunctionBody{Stmts: []ast.Stmt{
				{Data: &ast.SExpr{Value: ast.Expr{Data: &ast.ECall{
					Callee: ident("decorator"),
					Args:   []ast.Argument{{Value: ident("target")}, {Value: ident("key")}, {Value: ident("index")}},
				}}}},
			}},
		}}})}},
	}

	return []ast.Stmt{
		{Data: &ast.SFunctionDecl{Fn: &ast.Function{ID: &ast.EIdentifier{Name: "__decorate"}, Params: params("decorators", "target", "key", "desc"), Body: &ast.FunctionBody{Stmts: decorateBody}}}},
		{Data: &ast.SFunctionDecl{Fn: &ast.Function{ID: &ast.EIdentifier{Name: "__param"}, Params: params("index", "decorator"), Body: &ast.FunctionBody{Stmts: paramBody}}}},
	}
}

func ptrExpr(e ast.Expr) *ast.Expr { return &e }
