package isolated

import (
	"fmt"

	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/logger"
)

// reportExpandoFunctions warns about the "expando function" pattern —
// `function f() {}` followed by `f.prop = ...` — that isolated
// declarations can't express: a declaration file can say a binding
// named f exists, but not that it was later decorated with
// properties, unless a matching `namespace f { ... }` merge already
// declares them. This is the simpler, syntax-only form of the check:
// it doesn't gate on whether f is ever used as a value elsewhere (the
// original implementation's scope-tracking heuristic) — a function
// without a type annotation that is assigned a property anywhere in
// the same statement list is always flagged.
func reportExpandoFunctions(stmts []ast.Stmt, filePath string, log *logger.Log) {
	candidates := make(map[string]bool)
	namespaceProps := make(map[string]map[string]bool)

	collectCandidate := func(name string, hasAnnotation, hasBody bool) {
		if hasBody && !hasAnnotation {
			candidates[name] = true
		}
	}

	collectFromDecl := func(s *ast.Stmt) {
		switch d := s.Data.(type) {
		case *ast.SFunctionDecl:
			if d.Fn.ID != nil {
				collectCandidate(d.Fn.ID.Name, d.Fn.ReturnType != nil, d.Fn.Body != nil)
			}
		case *ast.SVarDecl:
			for _, decl := range d.Declarations {
				id, ok := decl.ID.Data.(*ast.PIdentifier)
				if !ok || decl.Init == nil {
					continue
				}
				if _, isFn := decl.Init.Data.(*ast.EFunction); isFn {
					collectCandidate(id.Name, id.TypeAnn != nil, true)
				}
			}
		}
	}

	for i, s := range stmts {
		if exp, ok := s.Data.(*ast.SExportNamedDecl); ok {
			if exp.Decl != nil {
				collectFromDecl(exp.Decl)
			}
			continue
		}
		if mod, ok := s.Data.(*ast.STSModuleDecl); ok && mod.StringName == nil {
			namespaceProps[mod.ID.Name] = collectNamespaceProperties(mod.Body)
			continue
		}
		collectFromDecl(&stmts[i])
	}

	if log == nil || len(candidates) == 0 {
		return
	}

	for _, s := range stmts {
		expr, ok := s.Data.(*ast.SExpr)
		if !ok {
			continue
		}
		assign, ok := expr.Value.Data.(*ast.EAssign)
		if !ok || assign.Op != ast.AssignOpAssign {
			continue
		}
		member, ok := assign.Target.Data.(*ast.EMember)
		if !ok || member.Computed {
			continue
		}
		obj, ok := member.Object.Data.(*ast.EIdentifier)
		if !ok || !candidates[obj.Name] {
			continue
		}
		prop, ok := member.Property.Data.(*ast.EIdentifier)
		if !ok {
			continue
		}
		if namespaceProps[obj.Name] != nil && namespaceProps[obj.Name][prop.Name] {
			continue
		}
		log.AddMsg(logger.Msg{
			Kind:     logger.KindIsolatedDeclarationsError,
			Severity: logger.SeverityWarning,
			Text: fmt.Sprintf(
				"cannot emit a declaration for %q: it is assigned the property %q elsewhere, and isolated declarations can't express an expando function without a matching namespace merge",
				obj.Name, prop.Name,
			),
			Labels: []logger.Label{{Span: s.Span}},
		})
	}
}

// collectNamespaceProperties gathers the exported binding names a
// `namespace Foo { ... }` body declares, which is what legitimizes a
// later `Foo.prop = ...` expando assignment.
func collectNamespaceProperties(body []ast.Stmt) map[string]bool {
	props := make(map[string]bool)
	for _, s := range body {
		decl, ok := s.Data.(*ast.SExportNamedDecl)
		if !ok || decl.Decl == nil {
			continue
		}
		switch d := decl.Decl.Data.(type) {
		case *ast.SVarDecl:
			for _, vd := range d.Declarations {
				if id, ok := vd.ID.Data.(*ast.PIdentifier); ok {
					props[id.Name] = true
				}
			}
		case *ast.SFunctionDecl:
			if d.Fn.ID != nil {
				props[d.Fn.ID.Name] = true
			}
		case *ast.SClassDecl:
			if d.Class.ID != nil {
				props[d.Class.ID.Name] = true
			}
		}
	}
	return props
}
