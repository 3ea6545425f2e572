// Package transform lowers a parsed program toward plain, older-engine
// JavaScript: TypeScript syntax is erased, parameter properties and
// class fields are desugared into constructor assignments, legacy
// decorators get their `__decorate` calls, and a handful of newer
// operators (optional chaining, nullish coalescing, logical
// assignment, exponentiation) are rewritten for engines that predate
// them. It mirrors the shape of esbuild's own lowering passes
// (internal/js_parser/js_parser_lower*.go) but runs as a standalone
// AST-to-AST pass over an already-parsed Program rather than inline
// during parsing.
package transform

import "github.com/jsforge/jsforge/internal/ast"

// Transform applies every lowering this package knows about and
// returns a new Program ready for internal/codegen. Only the top-level
// statement slice is copied: the nodes it points to are shared with
// prog, and several passes rewrite them in place, so prog's tree is
// changed by the call as well.
func Transform(prog *ast.Program, opts Options) *ast.Program {
	body := cloneStmts(prog.Body)

	body = eraseTypes(body)
	body, _ = lowerLegacyDecorators(body, opts)

	var weakMapDecls []ast.Stmt
	for i := range body {
		weakMapDecls = append(weakMapDecls, lowerClassesIn(&body[i], opts)...)
	}
	if len(weakMapDecls) > 0 {
		body = append(weakMapDecls, body...)
	}

	n := newNamer("_jsforge_")
	downlevelProgram(body, n, opts.Target)

	return &ast.Program{
		SourceType: prog.SourceType,
		Hashbang:   prog.Hashbang,
		Comments:   prog.Comments,
		Directives: prog.Directives,
		Body:       body,
		NodeCount:  prog.NodeCount,
	}
}

// lowerClassesIn finds every class declaration/expression reachable
// from s (including nested ones, since a class can be an expression
// anywhere) and runs the per-class lowerings: parameter properties
// always; field and private-field lowering only when the target
// needs it. It returns the WeakMap declarations private-field
// lowering introduced, for the caller to splice in at module scope.
func lowerClassesIn(s *ast.Stmt, opts Options) []ast.Stmt {
	var decls []ast.Stmt
	walkClasses(s, func(c *ast.Class) {
		lowerParameterProperties(c)
		lowerClassFields(c, opts, opts.Target)
		decls = append(decls, lowerPrivateFields(c, opts.Target)...)
	})
	return decls
}

func cloneStmts(in []ast.Stmt) []ast.Stmt {
	out := make([]ast.Stmt, len(in))
	copy(out, in)
	return out
}
