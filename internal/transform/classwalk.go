package transform

import "github.com/jsforge/jsforge/internal/ast"

// walkClasses finds every class reachable from s — a top-level
// declaration, an exported one, a default export, or a class
// expression buried anywhere in an initializer, argument, or nested
// function body — and invokes fn once per class, outermost first. A
// class nested inside another class's method body is visited after
// its enclosing class, the same order lowerClassesIn's caller already
// walks statements in.
func walkClasses(s *ast.Stmt, fn func(*ast.Class)) {
	w := &classWalker{fn: fn}
	w.stmt(s)
}

type classWalker struct {
	fn func(*ast.Class)
}

func (w *classWalker) stmts(list []ast.Stmt) {
	for i := range list {
		w.stmt(&list[i])
	}
}

func (w *classWalker) stmt(s *ast.Stmt) {
	switch st := s.Data.(type) {
	case *ast.SExpr:
		w.expr(&st.Value)
	case *ast.SBlock:
		w.stmts(st.Body)
	case *ast.SIf:
		w.expr(&st.Test)
		w.stmt(&st.Consequent)
		if st.Alternate != nil {
			w.stmt(st.Alternate)
		}
	case *ast.SFor:
		if st.Init != nil {
			w.forInit(st.Init)
		}
		if st.Test != nil {
			w.expr(st.Test)
		}
		if st.Update != nil {
			w.expr(st.Update)
		}
		w.stmt(&st.Body)
	case *ast.SForIn:
		w.forInit(&st.Left)
		w.expr(&st.Right)
		w.stmt(&st.Body)
	case *ast.SForOf:
		w.forInit(&st.Left)
		w.expr(&st.Right)
		w.stmt(&st.Body)
	case *ast.SWhile:
		w.expr(&st.Test)
		w.stmt(&st.Body)
	case *ast.SDoWhile:
		w.stmt(&st.Body)
		w.expr(&st.Test)
	case *ast.SReturn:
		if st.Value != nil {
			w.expr(st.Value)
		}
	case *ast.SThrow:
		w.expr(&st.Value)
	case *ast.STry:
		w.stmts(st.Block.Body)
		if st.Catch != nil {
			w.stmts(st.Catch.Body.Body)
		}
		if st.Finally != nil {
			w.stmts(st.Finally.Body)
		}
	case *ast.SSwitch:
		w.expr(&st.Discriminant)
		for i := range st.Cases {
			c := &st.Cases[i]
			if c.Test != nil {
				w.expr(c.Test)
			}
			w.stmts(c.Body)
		}
	case *ast.SLabeled:
		w.stmt(&st.Body)
	case *ast.SWith:
		w.expr(&st.Object)
		w.stmt(&st.Body)
	case *ast.SVarDecl:
		for i := range st.Declarations {
			if st.Declarations[i].Init != nil {
				w.expr(st.Declarations[i].Init)
			}
		}
	case *ast.SFunctionDecl:
		w.function(st.Fn)
	case *ast.SClassDecl:
		w.fn(st.Class)
		w.class(st.Class)
	case *ast.SExportDefaultDecl:
		w.expr(&st.Decl)
	case *ast.SExportNamedDecl:
		if st.Decl != nil {
			w.stmt(st.Decl)
		}
	}
}

func (w *classWalker) forInit(init *ast.ForInit) {
	if init.Decl != nil {
		for i := range init.Decl.Declarations {
			if init.Decl.Declarations[i].Init != nil {
				w.expr(init.Decl.Declarations[i].Init)
			}
		}
	}
	if init.Expr != nil {
		w.expr(init.Expr)
	}
}

func (w *classWalker) function(fn *ast.Function) {
	if fn == nil {
		return
	}
	for i := range fn.Params {
		if fn.Params[i].DefaultValue != nil {
			w.expr(fn.Params[i].DefaultValue)
		}
	}
	if fn.Body != nil {
		w.stmts(fn.Body.Stmts)
	}
}

// class visits everything inside c that could itself contain a
// nested class — it does not call w.fn(c); the caller does that for
// every spot a class can appear (declaration, default export,
// expression) before descending.
func (w *classWalker) class(c *ast.Class) {
	if c == nil {
		return
	}
	if c.SuperClass != nil {
		w.expr(c.SuperClass)
	}
	for i := range c.Body {
		m := &c.Body[i]
		if m.Computed {
			w.expr(&m.Key)
		}
		w.function(m.Fn)
		if m.Value != nil {
			w.expr(m.Value)
		}
		if m.StaticBody != nil {
			w.stmts(m.StaticBody.Stmts)
		}
	}
}

func (w *classWalker) expr(e *ast.Expr) {
	if e == nil {
		return
	}
	switch ed := e.Data.(type) {
	case *ast.EMember:
		w.expr(&ed.Object)
		if ed.Computed {
			w.expr(&ed.Property)
		}
	case *ast.ECall:
		w.expr(&ed.Callee)
		for i := range ed.Args {
			w.expr(&ed.Args[i].Value)
		}
	case *ast.ENew:
		w.expr(&ed.Callee)
		for i := range ed.Args {
			w.expr(&ed.Args[i].Value)
		}
	case *ast.EUnary:
		w.expr(&ed.Value)
	case *ast.EBinary:
		w.expr(&ed.Left)
		w.expr(&ed.Right)
	case *ast.ELogical:
		w.expr(&ed.Left)
		w.expr(&ed.Right)
	case *ast.EAssign:
		w.expr(&ed.Target)
		w.expr(&ed.Value)
	case *ast.EConditional:
		w.expr(&ed.Test)
		w.expr(&ed.Consequent)
		w.expr(&ed.Alternate)
	case *ast.ESequence:
		for i := range ed.Expressions {
			w.expr(&ed.Expressions[i])
		}
	case *ast.EArray:
		for i := range ed.Elements {
			if ed.Elements[i].Value.Data != nil {
				w.expr(&ed.Elements[i].Value)
			}
		}
	case *ast.EObject:
		for i := range ed.Properties {
			p := &ed.Properties[i]
			if p.Computed {
				w.expr(&p.Key)
			}
			if p.Value.Data != nil {
				w.expr(&p.Value)
			}
		}
	case *ast.EFunction:
		w.function(ed.Fn)
	case *ast.EArrow:
		for i := range ed.Params {
			if ed.Params[i].DefaultValue != nil {
				w.expr(ed.Params[i].DefaultValue)
			}
		}
		if ed.Body.Block != nil {
			w.stmts(ed.Body.Block.Stmts)
		} else if ed.Body.Expr != nil {
			w.expr(ed.Body.Expr)
		}
	case *ast.EClass:
		w.fn(ed.Class)
		w.class(ed.Class)
	case *ast.ETemplate:
		if ed.Tag != nil {
			w.expr(ed.Tag)
		}
		for i := range ed.Tpl.Exprs {
			w.expr(&ed.Tpl.Exprs[i])
		}
	case *ast.EParenthesized:
		w.expr(&ed.Value)
	case *ast.EYield:
		if ed.Value != nil {
			w.expr(ed.Value)
		}
	case *ast.EAwait:
		w.expr(&ed.Value)
	}
}
