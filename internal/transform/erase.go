package transform

import (
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/visit"
)

// eraseTypes removes every node whose only role is to describe a type
// rather than produce a value: ambient (`declare`) statements,
// interface/type-alias declarations, type-only import/export
// specifiers, and then every remaining type annotation and TS-only
// expression wrapper (`as`, `satisfies`, `!`, `<T>x`) throughout the
// surviving tree. What's left prints as plain JavaScript.
func eraseTypes(body []ast.Stmt) []ast.Stmt {
	body = filterTypeOnlyStmts(body)
	v := &eraseVisitor{}
	for i := range body {
		visit.Stmt(&body[i], v)
	}
	return body
}

func filterTypeOnlyStmts(body []ast.Stmt) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(body))
	for _, s := range body {
		if s, ok := filterTypeOnlyStmt(s); ok {
			out = append(out, s)
		}
	}
	return out
}

func filterTypeOnlyStmt(s ast.Stmt) (ast.Stmt, bool) {
	switch d := s.Data.(type) {
	case *ast.STSInterfaceDecl, *ast.STSTypeAliasDecl:
		return s, false

	case *ast.SVarDecl:
		if d.Modifiers.Has(ast.ModDeclare) {
			return s, false
		}
	case *ast.SFunctionDecl:
		if d.Fn.Body == nil {
			// An overload signature or ambient function: the
			// implementation (if any) carries the real body.
			return s, false
		}
	case *ast.SClassDecl:
		if d.Modifiers.Has(ast.ModDeclare) {
			return s, false
		}
	case *ast.STSEnumDecl:
		if d.Modifiers.Has(ast.ModDeclare) {
			return s, false
		}
	case *ast.STSModuleDecl:
		if d.Modifiers.Has(ast.ModDeclare) {
			return s, false
		}

	case *ast.SImportDecl:
		if d.IsTypeOnly {
			return s, false
		}
		specs := make([]ast.ImportSpecifier, 0, len(d.Specifiers))
		for _, spec := range d.Specifiers {
			if !spec.IsType {
				specs = append(specs, spec)
			}
		}
		if len(specs) == 0 && len(d.Specifiers) > 0 {
			// Every named binding was type-only: a bare `import "x"`
			// for side effects is the only thing left to say, and
			// that's only right if there was no default/namespace
			// binding either.
			return s, false
		}
		return ast.Stmt{Span: s.Span, ID: s.ID, Data: &ast.SImportDecl{
			Specifiers: specs, Source: d.Source, Assertions: d.Assertions,
		}}, true

	case *ast.SExportNamedDecl:
		if d.IsTypeOnly {
			return s, false
		}
		if d.Decl != nil {
			inner, keep := filterTypeOnlyStmt(*d.Decl)
			if !keep {
				return s, false
			}
			return ast.Stmt{Span: s.Span, ID: s.ID, Data: &ast.SExportNamedDecl{
				Decl: &inner, Specifiers: d.Specifiers, Source: d.Source,
			}}, true
		}
		specs := make([]ast.ExportSpecifier, 0, len(d.Specifiers))
		for _, spec := range d.Specifiers {
			if !spec.IsType {
				specs = append(specs, spec)
			}
		}
		if len(specs) == 0 && len(d.Specifiers) > 0 {
			return s, false
		}
		return ast.Stmt{Span: s.Span, ID: s.ID, Data: &ast.SExportNamedDecl{
			Specifiers: specs, Source: d.Source,
		}}, true

	case *ast.SExportAllDecl:
		if d.IsTypeOnly {
			return s, false
		}
	}
	return s, true
}

// eraseVisitor strips type syntax that the uniform walker can reach
// without needing to delete anything from a statement list: type
// annotations on bindings/params/functions/classes, and TS-only
// expression wrappers that just get replaced by the value they wrap.
type eraseVisitor struct{ visit.Base }

func (*eraseVisitor) EnterStmt(s *ast.Stmt) bool {
	switch d := s.Data.(type) {
	case *ast.SFunctionDecl:
		eraseFunction(d.Fn)
	case *ast.SClassDecl:
		eraseClass(d.Class)
	}
	return true
}

func (*eraseVisitor) EnterExpr(e *ast.Expr) bool {
	switch d := e.Data.(type) {
	case *ast.ETSAs:
		*e = ast.Expr{Span: e.Span, ID: e.ID, Data: d.Value.Data}
	case *ast.ETSSatisfies:
		*e = ast.Expr{Span: e.Span, ID: e.ID, Data: d.Value.Data}
	case *ast.ETSNonNull:
		*e = ast.Expr{Span: e.Span, ID: e.ID, Data: d.Value.Data}
	case *ast.ETSTypeAssertion:
		*e = ast.Expr{Span: e.Span, ID: e.ID, Data: d.Value.Data}
	case *ast.EFunction:
		eraseFunction(d.Fn)
	case *ast.EArrow:
		d.TypeParams = nil
		d.ReturnType = nil
		for i := range d.Params {
			eraseParam(&d.Params[i])
		}
	case *ast.EClass:
		eraseClass(d.Class)
	}
	return true
}

func (*eraseVisitor) EnterPattern(p *ast.Pattern) bool {
	if id, ok := p.Data.(*ast.PIdentifier); ok {
		id.TypeAnn = nil
	}
	return true
}

func eraseFunction(fn *ast.Function) {
	if fn == nil {
		return
	}
	fn.TypeParams = nil
	fn.ReturnType = nil
	fn.ThisParamType = nil
	for i := range fn.Params {
		eraseParam(&fn.Params[i])
	}
}

func eraseParam(p *ast.Param) {
	p.TypeAnn = nil
	if id, ok := p.Pattern.Data.(*ast.PIdentifier); ok {
		id.TypeAnn = nil
	}
}

func eraseClass(c *ast.Class) {
	if c == nil {
		return
	}
	c.SuperTypeArgs = nil
	c.Implements = nil
	c.TypeParams = nil
	kept := make([]ast.ClassMember, 0, len(c.Body))
	for _, m := range c.Body {
		if m.Fn != nil && m.Fn.Body == nil && m.Kind != ast.ClassMemberConstructor {
			continue // overload signature, no implementation to keep
		}
		if m.Fn != nil && m.Fn.Body == nil && m.Kind == ast.ClassMemberConstructor {
			continue
		}
		m.TypeAnn = nil
		eraseFunction(m.Fn)
		kept = append(kept, m)
	}
	c.Body = kept
}
