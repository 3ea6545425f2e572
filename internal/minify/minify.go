package minify

import (
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/semantic"
)

// Program runs the three cooperating passes over prog in place, in
// the order spec §4.6 lists them: peephole folding first (so the
// dead-code sweep sees already-collapsed conditions), then dead-code
// elimination, then the mangler last (renaming is purely cosmetic and
// must never change which bindings are live). sem is the component C5
// output for prog; callers that only want folding/DCE without a
// symbol table can pass a nil sem as long as ManglePrivate is off.
func Program(prog *ast.Program, sem *semantic.Result, opts Options) {
	if opts.FoldConstants {
		for i := range prog.Body {
			FoldStmt(&prog.Body[i])
		}
	}
	if opts.RemoveDeadCode {
		prog.Body = DeadCode(prog.Body, sem)
		foldDeadCodeInNestedScopes(prog.Body, sem)
	}
	if opts.ManglePrivate {
		Mangle(prog, sem, opts)
	}
	collapseBooleansProgram(prog)
}

// foldDeadCodeInNestedScopes applies the statement-list sweep inside
// every block, function body, and loop/switch body the top-level pass
// doesn't reach directly, since DeadCode only rewrites the list it's
// handed, not nested ones.
func foldDeadCodeInNestedScopes(stmts []ast.Stmt, sem *semantic.Result) {
	for i := range stmts {
		foldDeadCodeInStmt(&stmts[i], sem)
	}
}

func foldDeadCodeInStmt(s *ast.Stmt, sem *semantic.Result) {
	switch d := s.Data.(type) {
	case *ast.SBlock:
		d.Body = DeadCode(d.Body, sem)
		foldDeadCodeInNestedScopes(d.Body, sem)
	case *ast.SIf:
		foldDeadCodeInStmt(&d.Consequent, sem)
		if d.Alternate != nil {
			foldDeadCodeInStmt(d.Alternate, sem)
		}
	case *ast.SFor:
		foldDeadCodeInStmt(&d.Body, sem)
	case *ast.SForIn:
		foldDeadCodeInStmt(&d.Body, sem)
	case *ast.SForOf:
		foldDeadCodeInStmt(&d.Body, sem)
	case *ast.SWhile:
		foldDeadCodeInStmt(&d.Body, sem)
	case *ast.SDoWhile:
		foldDeadCodeInStmt(&d.Body, sem)
	case *ast.SLabeled:
		foldDeadCodeInStmt(&d.Body, sem)
	case *ast.SFunctionDecl:
		foldDeadCodeInFunction(d.Fn, sem)
	case *ast.SClassDecl:
		foldDeadCodeInClass(d.Class, sem)
	case *ast.STry:
		d.Block.Body = DeadCode(d.Block.Body, sem)
		foldDeadCodeInNestedScopes(d.Block.Body, sem)
		if d.Catch != nil {
			d.Catch.Body.Body = DeadCode(d.Catch.Body.Body, sem)
			foldDeadCodeInNestedScopes(d.Catch.Body.Body, sem)
		}
		if d.Finally != nil {
			d.Finally.Body = DeadCode(d.Finally.Body, sem)
			foldDeadCodeInNestedScopes(d.Finally.Body, sem)
		}
	case *ast.SSwitch:
		for i := range d.Cases {
			d.Cases[i].Body = DeadCode(d.Cases[i].Body, sem)
			foldDeadCodeInNestedScopes(d.Cases[i].Body, sem)
		}
	}
}

func foldDeadCodeInFunction(fn *ast.Function, sem *semantic.Result) {
	if fn == nil || fn.Body == nil {
		return
	}
	fn.Body.Stmts = DeadCode(fn.Body.Stmts, sem)
	foldDeadCodeInNestedScopes(fn.Body.Stmts, sem)
}

func foldDeadCodeInClass(c *ast.Class, sem *semantic.Result) {
	if c == nil {
		return
	}
	for i := range c.Body {
		m := &c.Body[i]
		if m.Fn != nil {
			foldDeadCodeInFunction(m.Fn, sem)
		}
		if m.StaticBody != nil {
			m.StaticBody.Stmts = DeadCode(m.StaticBody.Stmts, sem)
			foldDeadCodeInNestedScopes(m.StaticBody.Stmts, sem)
		}
	}
}

// collapseBooleansProgram replaces boolean literals with the shorter
// !0/!1 spelling codegen already knows how to print, as the very last
// rewrite so earlier passes keep seeing plain true/false values to
// pattern-match against. It runs whatever opts says. It does not
// descend into function, arrow or class bodies, export declarations,
// or await/yield operands; literals there stay true/false.
func collapseBooleansProgram(prog *ast.Program) {
	for i := range prog.Body {
		collapseBooleansStmt(&prog.Body[i])
	}
}

func collapseBooleansStmt(s *ast.Stmt) {
	switch d := s.Data.(type) {
	case *ast.SExpr:
		collapseBooleansExpr(&d.Value)
	case *ast.SBlock:
		for i := range d.Body {
			collapseBooleansStmt(&d.Body[i])
		}
	case *ast.SIf:
		collapseBooleansExpr(&d.Test)
		collapseBooleansStmt(&d.Consequent)
		if d.Alternate != nil {
			collapseBooleansStmt(d.Alternate)
		}
	case *ast.SFor:
		if d.Init != nil && d.Init.Expr != nil {
			collapseBooleansExpr(d.Init.Expr)
		}
		if d.Test != nil {
			collapseBooleansExpr(d.Test)
		}
		if d.Update != nil {
			collapseBooleansExpr(d.Update)
		}
		collapseBooleansStmt(&d.Body)
	case *ast.SForIn:
		collapseBooleansExpr(&d.Right)
		collapseBooleansStmt(&d.Body)
	case *ast.SForOf:
		collapseBooleansExpr(&d.Right)
		collapseBooleansStmt(&d.Body)
	case *ast.SWhile:
		collapseBooleansExpr(&d.Test)
		collapseBooleansStmt(&d.Body)
	case *ast.SDoWhile:
		collapseBooleansStmt(&d.Body)
		collapseBooleansExpr(&d.Test)
	case *ast.SReturn:
		if d.Value != nil {
			collapseBooleansExpr(d.Value)
		}
	case *ast.SThrow:
		collapseBooleansExpr(&d.Value)
	case *ast.SVarDecl:
		for i := range d.Declarations {
			if d.Declarations[i].Init != nil {
				collapseBooleansExpr(d.Declarations[i].Init)
			}
		}
	case *ast.SLabeled:
		collapseBooleansStmt(&d.Body)
	case *ast.STry:
		for i := range d.Block.Body {
			collapseBooleansStmt(&d.Block.Body[i])
		}
		if d.Catch != nil {
			for i := range d.Catch.Body.Body {
				collapseBooleansStmt(&d.Catch.Body.Body[i])
			}
		}
		if d.Finally != nil {
			for i := range d.Finally.Body {
				collapseBooleansStmt(&d.Finally.Body[i])
			}
		}
	case *ast.SSwitch:
		collapseBooleansExpr(&d.Discriminant)
		for i := range d.Cases {
			c := &d.Cases[i]
			if c.Test != nil {
				collapseBooleansExpr(c.Test)
			}
			for j := range c.Body {
				collapseBooleansStmt(&c.Body[j])
			}
		}
	}
}

func collapseBooleansExpr(e *ast.Expr) {
	switch d := e.Data.(type) {
	case *ast.EBoolean:
		n := 0.0
		if d.Value {
			n = 1
		}
		e.Data = &ast.EUnary{Op: ast.UnOpNot, Value: ast.Expr{Span: e.Span, Data: &ast.ENumber{Value: 1 - n}}}
	case *ast.EUnary:
		collapseBooleansExpr(&d.Value)
	case *ast.EBinary:
		collapseBooleansExpr(&d.Left)
		collapseBooleansExpr(&d.Right)
	case *ast.ELogical:
		collapseBooleansExpr(&d.Left)
		collapseBooleansExpr(&d.Right)
	case *ast.EAssign:
		collapseBooleansExpr(&d.Target)
		collapseBooleansExpr(&d.Value)
	case *ast.EConditional:
		collapseBooleansExpr(&d.Test)
		collapseBooleansExpr(&d.Consequent)
		collapseBooleansExpr(&d.Alternate)
	case *ast.ESequence:
		for i := range d.Expressions {
			collapseBooleansExpr(&d.Expressions[i])
		}
	case *ast.EMember:
		collapseBooleansExpr(&d.Object)
		if d.Computed {
			collapseBooleansExpr(&d.Property)
		}
	case *ast.ECall:
		collapseBooleansExpr(&d.Callee)
		for i := range d.Args {
			collapseBooleansExpr(&d.Args[i].Value)
		}
	case *ast.ENew:
		collapseBooleansExpr(&d.Callee)
		for i := range d.Args {
			collapseBooleansExpr(&d.Args[i].Value)
		}
	case *ast.EArray:
		for i := range d.Elements {
			if d.Elements[i].Value.Data != nil {
				collapseBooleansExpr(&d.Elements[i].Value)
			}
		}
	case *ast.EObject:
		for i := range d.Properties {
			p := &d.Properties[i]
			if p.Computed {
				collapseBooleansExpr(&p.Key)
			}
			if p.Value.Data != nil {
				collapseBooleansExpr(&p.Value)
			}
		}
	case *ast.EParenthesized:
		collapseBooleansExpr(&d.Value)
	case *ast.ETemplate:
		for i := range d.Tpl.Exprs {
			collapseBooleansExpr(&d.Tpl.Exprs[i])
		}
	}
}
