package minify

import (
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/semantic"
)

// DeadCode rewrites a statement list in place: code after an
// unconditional terminator is stripped (keeping only the "var"
// identifiers a dead declaration would otherwise still hoist),
// declarations whose symbol is never read are dropped when their
// initializer is side-effect-free, and a single-use "let"/"const"
// binding is inlined into the very next statement when that
// statement's leftmost evaluated subexpression is the binding itself.
//
// sem supplies the use counts and symbol kinds the last two
// optimizations need; it is read-only here, matching the rest of this
// module's relationship with component C5's output.
func DeadCode(stmts []ast.Stmt, sem *semantic.Result) []ast.Stmt {
	// Strip everything after the first unconditional terminator.
	for i, s := range stmts {
		if isTerminator(s) {
			kept := stmts[:i+1]
			for _, rest := range stmts[i+1:] {
				if replacement, ok := deadCodeSurvivor(rest); ok {
					kept = append(kept, replacement)
				}
			}
			stmts = kept
			break
		}
	}

	result := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		if _, ok := s.Data.(*ast.SEmpty); ok {
			continue
		}
		if decl, ok := s.Data.(*ast.SVarDecl); ok {
			decl.Declarations = dropUnusedDeclarators(decl, sem)
			if len(decl.Declarations) == 0 {
				continue
			}
		}
		result = append(result, s)
	}

	return inlineSingleUseConsts(result, sem)
}

// isTerminator reports whether s unconditionally transfers control out
// of the statement list it's in, making every following sibling dead.
func isTerminator(s ast.Stmt) bool {
	switch s.Data.(type) {
	case *ast.SReturn, *ast.SThrow, *ast.SBreak, *ast.SContinue:
		return true
	}
	return false
}

// deadCodeSurvivor reports what, if anything, must remain from a
// statement located after a terminator: "var" bindings still hoist to
// the enclosing function scope even though the code declaring them
// never runs, so their identifiers (without initializers) survive;
// everything else disappears outright.
func deadCodeSurvivor(s ast.Stmt) (ast.Stmt, bool) {
	switch d := s.Data.(type) {
	case *ast.SVarDecl:
		if d.Kind != ast.VarVar {
			return ast.Stmt{}, false
		}
		var idents []ast.VarDeclarator
		collectVarIdentifiers(d.Declarations, &idents)
		if len(idents) == 0 {
			return ast.Stmt{}, false
		}
		return ast.Stmt{Span: s.Span, Data: &ast.SVarDecl{Kind: ast.VarVar, Declarations: idents}}, true
	case *ast.SBlock:
		var kept []ast.Stmt
		for _, child := range d.Body {
			if replacement, ok := deadCodeSurvivor(child); ok {
				kept = append(kept, replacement)
			}
		}
		if len(kept) == 0 {
			return ast.Stmt{}, false
		}
		return ast.Stmt{Span: s.Span, Data: &ast.SBlock{Body: kept}}, true
	case *ast.SIf:
		yes, yesOK := deadCodeSurvivor(d.Consequent)
		if d.Alternate == nil {
			if !yesOK {
				return ast.Stmt{}, false
			}
			return yes, true
		}
		no, noOK := deadCodeSurvivor(*d.Alternate)
		if !yesOK && !noOK {
			return ast.Stmt{}, false
		}
		if !yesOK {
			yes = ast.Stmt{Data: &ast.SEmpty{}}
		}
		if !noOK {
			return yes, true
		}
		return ast.Stmt{Span: s.Span, Data: &ast.SIf{Test: d.Test, Consequent: yes, Alternate: &no}}, true
	case *ast.SFor:
		return deadCodeSurvivor(d.Body)
	case *ast.SForIn:
		return deadCodeSurvivor(d.Body)
	case *ast.SForOf:
		return deadCodeSurvivor(d.Body)
	case *ast.SWhile:
		return deadCodeSurvivor(d.Body)
	case *ast.SDoWhile:
		return deadCodeSurvivor(d.Body)
	}
	return ast.Stmt{}, false
}

func collectVarIdentifiers(decls []ast.VarDeclarator, out *[]ast.VarDeclarator) {
	for _, d := range decls {
		collectPatternIdentifiers(d.ID, out)
	}
}

func collectPatternIdentifiers(p ast.Pattern, out *[]ast.VarDeclarator) {
	switch d := p.Data.(type) {
	case *ast.PIdentifier:
		*out = append(*out, ast.VarDeclarator{ID: p})
	case *ast.PArray:
		for _, el := range d.Elements {
			if el.Pattern != nil {
				collectPatternIdentifiers(*el.Pattern, out)
			}
		}
	case *ast.PObject:
		for _, pr := range d.Properties {
			collectPatternIdentifiers(pr.Value, out)
		}
		if d.Rest != nil {
			collectPatternIdentifiers(*d.Rest, out)
		}
	case *ast.PAssign:
		collectPatternIdentifiers(d.Target, out)
	}
}

// dropUnusedDeclarators removes declarators whose bound identifier is
// never read, unless the initializer might have a side effect worth
// preserving (in which case only the binding part is dropped and the
// initializer survives as a bare expression would — simplified here
// to conservatively keep the whole declarator rather than splitting it
// into a new expression statement, since that split is rare enough in
// practice not to be worth the extra statement-list surgery).
func dropUnusedDeclarators(decl *ast.SVarDecl, sem *semantic.Result) []ast.VarDeclarator {
	kept := make([]ast.VarDeclarator, 0, len(decl.Declarations))
	for _, d := range decl.Declarations {
		id, ok := d.ID.Data.(*ast.PIdentifier)
		if !ok || !id.Ref.Valid() {
			kept = append(kept, d)
			continue
		}
		sym := sem.Symbols.Get(id.Ref)
		if sym.UseCount > 0 {
			kept = append(kept, d)
			continue
		}
		if d.Init != nil && HasSideEffects(*d.Init) {
			kept = append(kept, d)
			continue
		}
		// Dead binding with a pure (or absent) initializer: drop it.
	}
	return kept
}

// inlineSingleUseConsts repeatedly tries to fold a "let"/"const"
// declaration whose single declarator is used exactly once into the
// statement immediately following it, the way spec §4.6's "inline
// single-use const bindings" calls for.
func inlineSingleUseConsts(stmts []ast.Stmt, sem *semantic.Result) []ast.Stmt {
	changed := true
	for changed {
		changed = false
		for i := 0; i+1 < len(stmts); i++ {
			decl, ok := stmts[i].Data.(*ast.SVarDecl)
			if !ok || decl.Kind == ast.VarVar || len(decl.Declarations) == 0 {
				continue
			}
			last := &decl.Declarations[len(decl.Declarations)-1]
			id, ok := last.ID.Data.(*ast.PIdentifier)
			if !ok || !id.Ref.Valid() || last.Init == nil {
				continue
			}
			sym := sem.Symbols.Get(id.Ref)
			if sym.UseCount != 1 {
				continue
			}
			if target, ok := leadingExprOf(&stmts[i+1]); ok {
				if substituteLeadingIdentifier(target, id.Ref, *last.Init) {
					decl.Declarations = decl.Declarations[:len(decl.Declarations)-1]
					if len(decl.Declarations) == 0 {
						stmts = append(stmts[:i], stmts[i+1:]...)
					} else {
						i-- // re-examine the same declaration for its new last declarator
					}
					changed = true
				}
			}
		}
	}
	return stmts
}

// leadingExprOf returns the single top-level expression a statement is
// built from, for the handful of statement shapes simple enough for
// single-use inlining to reach into.
func leadingExprOf(s *ast.Stmt) (*ast.Expr, bool) {
	switch d := s.Data.(type) {
	case *ast.SExpr:
		return &d.Value, true
	case *ast.SReturn:
		if d.Value != nil {
			return d.Value, true
		}
	case *ast.SThrow:
		return &d.Value, true
	}
	return nil, false
}

// substituteLeadingIdentifier replaces ref with replacement if ref is
// the first subexpression e's evaluation touches — the identifier
// itself, or the leftmost operand of a member/call chain rooted at it.
// Any other shape bails out rather than risk reordering a side effect.
func substituteLeadingIdentifier(e *ast.Expr, ref ast.SymbolID, replacement ast.Expr) bool {
	switch d := e.Data.(type) {
	case *ast.EIdentifier:
		if d.Ref == ref {
			*e = replacement
			return true
		}
		return false
	case *ast.EMember:
		return substituteLeadingIdentifier(&d.Object, ref, replacement)
	case *ast.ECall:
		return substituteLeadingIdentifier(&d.Callee, ref, replacement)
	}
	return false
}
