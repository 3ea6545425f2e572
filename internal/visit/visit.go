// Package visit implements the uniform traversal framework (component
// C3). It factors esbuild's per-pass switch-based recursion (see
// js_parser.go's visitExpr/visitStmts) out into one reusable walker.
// The lint kernel and the transform package's type eraser walk the AST
// through it; semantic analysis, the formatter builder, the minifier
// and the other transform passes still hand-roll their own recursion.
package visit

import "github.com/jsforge/jsforge/internal/ast"

// Visitor receives pre-order callbacks for every node family. Each
// method returns true to continue into the node's children, false to
// skip them. A Visitor that only cares about a few node kinds should
// embed Base and override just those methods.
type Visitor interface {
	EnterStmt(s *ast.Stmt) bool
	LeaveStmt(s *ast.Stmt)
	EnterExpr(e *ast.Expr) bool
	LeaveExpr(e *ast.Expr)
	EnterPattern(p *ast.Pattern) bool
	LeavePattern(p *ast.Pattern)
}

// Base is a no-op Visitor embeddable by passes that only need a subset
// of hooks.
type Base struct{}

func (Base) EnterStmt(*ast.Stmt) bool       { return true }
func (Base) LeaveStmt(*ast.Stmt)            {}
func (Base) EnterExpr(*ast.Expr) bool       { return true }
func (Base) LeaveExpr(*ast.Expr)            {}
func (Base) EnterPattern(*ast.Pattern) bool { return true }
func (Base) LeavePattern(*ast.Pattern)      {}

// Program walks every top-level statement of a program.
func Program(prog *ast.Program, v Visitor) {
	for i := range prog.Body {
		Stmt(&prog.Body[i], v)
	}
}

// Stmt recursively walks a single statement and its children.
func Stmt(s *ast.Stmt, v Visitor) {
	if s == nil || !v.EnterStmt(s) {
		if s != nil {
			v.LeaveStmt(s)
		}
		return
	}
	switch d := s.Data.(type) {
	case *ast.SExpr:
		Expr(&d.Value, v)
	case *ast.SBlock:
		for i := range d.Body {
			Stmt(&d.Body[i], v)
		}
	case *ast.SIf:
		Expr(&d.Test, v)
		Stmt(&d.Consequent, v)
		if d.Alternate != nil {
			Stmt(d.Alternate, v)
		}
	case *ast.SFor:
		walkForInit(d.Init, v)
		if d.Test != nil {
			Expr(d.Test, v)
		}
		if d.Update != nil {
			Expr(d.Update, v)
		}
		Stmt(&d.Body, v)
	case *ast.SForIn:
		walkForInit(&d.Left, v)
		Expr(&d.Right, v)
		Stmt(&d.Body, v)
	case *ast.SForOf:
		walkForInit(&d.Left, v)
		Expr(&d.Right, v)
		Stmt(&d.Body, v)
	case *ast.SWhile:
		Expr(&d.Test, v)
		Stmt(&d.Body, v)
	case *ast.SDoWhile:
		Stmt(&d.Body, v)
		Expr(&d.Test, v)
	case *ast.SReturn:
		if d.Value != nil {
			Expr(d.Value, v)
		}
	case *ast.SThrow:
		Expr(&d.Value, v)
	case *ast.STry:
		for i := range d.Block.Body {
			Stmt(&d.Block.Body[i], v)
		}
		if d.Catch != nil {
			if d.Catch.Param != nil {
				Pattern(d.Catch.Param, v)
			}
			for i := range d.Catch.Body.Body {
				Stmt(&d.Catch.Body.Body[i], v)
			}
		}
		if d.Finally != nil {
			for i := range d.Finally.Body {
				Stmt(&d.Finally.Body[i], v)
			}
		}
	case *ast.SSwitch:
		Expr(&d.Discriminant, v)
		for ci := range d.Cases {
			c := &d.Cases[ci]
			if c.Test != nil {
				Expr(c.Test, v)
			}
			for i := range c.Body {
				Stmt(&c.Body[i], v)
			}
		}
	case *ast.SLabeled:
		Stmt(&d.Body, v)
	case *ast.SWith:
		Expr(&d.Object, v)
		Stmt(&d.Body, v)
	case *ast.SVarDecl:
		for i := range d.Declarations {
			Pattern(&d.Declarations[i].ID, v)
			if d.Declarations[i].Init != nil {
				Expr(d.Declarations[i].Init, v)
			}
		}
	case *ast.SFunctionDecl:
		walkFunction(d.Fn, v)
	case *ast.SClassDecl:
		walkClass(d.Class, v)
	case *ast.STSEnumDecl:
		for i := range d.Members {
			Expr(&d.Members[i].Name, v)
			if d.Members[i].Initializer != nil {
				Expr(d.Members[i].Initializer, v)
			}
		}
	case *ast.STSModuleDecl:
		for i := range d.Body {
			Stmt(&d.Body[i], v)
		}
	case *ast.STSExportAssignment:
		Expr(&d.Value, v)
	case *ast.SExportNamedDecl:
		if d.Decl != nil {
			Stmt(d.Decl, v)
		}
	case *ast.SExportDefaultDecl:
		Expr(&d.Decl, v)
	}
	v.LeaveStmt(s)
}

func walkForInit(init *ast.ForInit, v Visitor) {
	if init == nil {
		return
	}
	if init.Decl != nil {
		for i := range init.Decl.Declarations {
			Pattern(&init.Decl.Declarations[i].ID, v)
			if init.Decl.Declarations[i].Init != nil {
				Expr(init.Decl.Declarations[i].Init, v)
			}
		}
	}
	if init.Expr != nil {
		Expr(init.Expr, v)
	}
}

func walkFunction(fn *ast.Function, v Visitor) {
	if fn == nil {
		return
	}
	for i := range fn.Params {
		Pattern(&fn.Params[i].Pattern, v)
		if fn.Params[i].DefaultValue != nil {
			Expr(fn.Params[i].DefaultValue, v)
		}
	}
	if fn.Body != nil {
		for i := range fn.Body.Stmts {
			Stmt(&fn.Body.Stmts[i], v)
		}
	}
}

func walkClass(c *ast.Class, v Visitor) {
	if c == nil {
		return
	}
	if c.SuperClass != nil {
		Expr(c.SuperClass, v)
	}
	for mi := range c.Body {
		m := &c.Body[mi]
		if m.Computed {
			Expr(&m.Key, v)
		}
		if m.Fn != nil {
			walkFunction(m.Fn, v)
		}
		if m.Value != nil {
			Expr(m.Value, v)
		}
		if m.StaticBody != nil {
			for i := range m.StaticBody.Stmts {
				Stmt(&m.StaticBody.Stmts[i], v)
			}
		}
	}
}

// Expr recursively walks a single expression and its children.
func Expr(e *ast.Expr, v Visitor) {
	if e == nil || !v.EnterExpr(e) {
		if e != nil {
			v.LeaveExpr(e)
		}
		return
	}
	switch d := e.Data.(type) {
	case *ast.EMember:
		Expr(&d.Object, v)
		if d.Computed {
			Expr(&d.Property, v)
		}
	case *ast.ECall:
		Expr(&d.Callee, v)
		for i := range d.Args {
			Expr(&d.Args[i].Value, v)
		}
	case *ast.ENew:
		Expr(&d.Callee, v)
		for i := range d.Args {
			Expr(&d.Args[i].Value, v)
		}
	case *ast.EV8Intrinsic:
		for i := range d.Args {
			Expr(&d.Args[i].Value, v)
		}
	case *ast.EUnary:
		Expr(&d.Value, v)
	case *ast.EBinary:
		Expr(&d.Left, v)
		Expr(&d.Right, v)
	case *ast.ELogical:
		Expr(&d.Left, v)
		Expr(&d.Right, v)
	case *ast.EAssign:
		Expr(&d.Target, v)
		Expr(&d.Value, v)
	case *ast.EConditional:
		Expr(&d.Test, v)
		Expr(&d.Consequent, v)
		Expr(&d.Alternate, v)
	case *ast.ESequence:
		for i := range d.Expressions {
			Expr(&d.Expressions[i], v)
		}
	case *ast.EArray:
		for i := range d.Elements {
			if d.Elements[i].Value.Data != nil {
				Expr(&d.Elements[i].Value, v)
			}
		}
	case *ast.EObject:
		for i := range d.Properties {
			p := &d.Properties[i]
			if p.Computed {
				Expr(&p.Key, v)
			}
			if p.Value.Data != nil {
				Expr(&p.Value, v)
			}
		}
	case *ast.EFunction:
		walkFunction(d.Fn, v)
	case *ast.EArrow:
		for i := range d.Params {
			Pattern(&d.Params[i].Pattern, v)
		}
		if d.Body.Block != nil {
			for i := range d.Body.Block.Stmts {
				Stmt(&d.Body.Block.Stmts[i], v)
			}
		} else if d.Body.Expr != nil {
			Expr(d.Body.Expr, v)
		}
	case *ast.EClass:
		walkClass(d.Class, v)
	case *ast.ETemplate:
		if d.Tag != nil {
			Expr(d.Tag, v)
		}
		for i := range d.Tpl.Exprs {
			Expr(&d.Tpl.Exprs[i], v)
		}
	case *ast.EParenthesized:
		Expr(&d.Value, v)
	case *ast.EYield:
		if d.Value != nil {
			Expr(d.Value, v)
		}
	case *ast.EAwait:
		Expr(&d.Value, v)
	case *ast.ETSAs:
		Expr(&d.Value, v)
	case *ast.ETSSatisfies:
		Expr(&d.Value, v)
	case *ast.ETSNonNull:
		Expr(&d.Value, v)
	case *ast.ETSTypeAssertion:
		Expr(&d.Value, v)
	case *ast.JSXElement:
		for i := range d.Attributes {
			if d.Attributes[i].Attribute != nil && d.Attributes[i].Attribute.Value != nil && d.Attributes[i].Attribute.Value.Expression != nil {
				Expr(d.Attributes[i].Attribute.Value.Expression, v)
			}
			if d.Attributes[i].Spread != nil {
				Expr(&d.Attributes[i].Spread.Argument, v)
			}
		}
		for i := range d.Children {
			walkJSXChild(&d.Children[i], v)
		}
	case *ast.JSXFragment:
		for i := range d.Children {
			walkJSXChild(&d.Children[i], v)
		}
	}
	v.LeaveExpr(e)
}

func walkJSXChild(c *ast.JSXChild, v Visitor) {
	if c.Expr != nil {
		Expr(c.Expr, v)
	}
	if c.Element != nil {
		Expr(&ast.Expr{Data: c.Element}, v)
	}
	if c.Fragment != nil {
		Expr(&ast.Expr{Data: c.Fragment}, v)
	}
}

// Pattern recursively walks a binding pattern and its children.
func Pattern(p *ast.Pattern, v Visitor) {
	if p == nil || !v.EnterPattern(p) {
		if p != nil {
			v.LeavePattern(p)
		}
		return
	}
	switch d := p.Data.(type) {
	case *ast.PArray:
		for i := range d.Elements {
			if d.Elements[i].Pattern != nil {
				Pattern(d.Elements[i].Pattern, v)
			}
			if d.Elements[i].DefaultValue != nil {
				Expr(d.Elements[i].DefaultValue, v)
			}
		}
	case *ast.PObject:
		for i := range d.Properties {
			pr := &d.Properties[i]
			if pr.Computed {
				Expr(&pr.Key, v)
			}
			Pattern(&pr.Value, v)
			if pr.DefaultValue != nil {
				Expr(pr.DefaultValue, v)
			}
		}
		if d.Rest != nil {
			Pattern(d.Rest, v)
		}
	case *ast.PAssign:
		Pattern(&d.Target, v)
		Expr(&d.Default, v)
	case *ast.PExpr:
		Expr(&d.Value, v)
	}
	v.LeavePattern(p)
}
