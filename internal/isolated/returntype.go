package isolated

import "github.com/jsforge/jsforge/internal/ast"

// inferReturnType implements the "inferring return types only when
// locally derivable (literal return, annotated return)" rule: an
// already-annotated function is trivially derivable; otherwise every
// top-level return in the body must agree on one primitive kind (a
// mix of return shapes, or any return whose expression isn't a bare
// literal, isn't locally derivable and the caller must report a
// diagnostic instead of guessing).
func inferReturnType(fn *ast.Function) (*ast.TSTypeAnnotation, bool) {
	if fn.ReturnType != nil {
		return fn.ReturnType, true
	}
	if fn.Body == nil {
		return nil, false
	}

	returns := collectTopLevelReturns(fn.Body.Stmts)
	var inner ast.TSType
	switch {
	case len(returns) == 0:
		inner = ast.TSType{Data: &ast.TSKeywordType{Keyword: ast.TSKeywordVoid}}
	default:
		kind, ok := agreeingLiteralKeyword(returns)
		if !ok {
			return nil, false
		}
		inner = ast.TSType{Data: &ast.TSKeywordType{Keyword: kind}}
	}

	if fn.Async {
		inner = ast.TSType{Data: &ast.TSTypeReference{
			Name:          ast.QualifiedName{Right: "Promise"},
			TypeArguments: []ast.TSType{inner},
		}}
	}
	return &ast.TSTypeAnnotation{Type: inner}, true
}

// agreeingLiteralKeyword reports the single primitive keyword every
// returned expression widens to, or false if any return is bare
// ("return;"), is not a plain literal, or the returns disagree.
func agreeingLiteralKeyword(returns []*ast.Expr) (ast.TSKeyword, bool) {
	var kind ast.TSKeyword
	for i, r := range returns {
		if r == nil {
			return 0, false
		}
		k, ok := literalKeywordOf(*r)
		if !ok {
			return 0, false
		}
		if i == 0 {
			kind = k
		} else if k != kind {
			return 0, false
		}
	}
	return kind, true
}

func literalKeywordOf(e ast.Expr) (ast.TSKeyword, bool) {
	switch e.Data.(type) {
	case *ast.EString:
		return ast.TSKeywordString, true
	case *ast.ENumber, *ast.EBigInt:
		return ast.TSKeywordNumber, true
	case *ast.EBoolean:
		return ast.TSKeywordBoolean, true
	case *ast.ENull:
		return ast.TSKeywordNull, true
	case *ast.EUndefined:
		return ast.TSKeywordUndefined, true
	default:
		return 0, false
	}
}

// collectTopLevelReturns gathers the value (or nil, for a bare
// "return;") of every return statement reachable without crossing
// into a nested function/arrow/class body, the scope a return
// statement's type actually belongs to.
func collectTopLevelReturns(stmts []ast.Stmt) []*ast.Expr {
	var out []*ast.Expr
	for i := range stmts {
		collectReturnsInStmt(&stmts[i], &out)
	}
	return out
}

func collectReturnsInStmt(s *ast.Stmt, out *[]*ast.Expr) {
	switch d := s.Data.(type) {
	case *ast.SReturn:
		*out = append(*out, d.Value)
	case *ast.SBlock:
		for i := range d.Body {
			collectReturnsInStmt(&d.Body[i], out)
		}
	case *ast.SIf:
		collectReturnsInStmt(&d.Consequent, out)
		if d.Alternate != nil {
			collectReturnsInStmt(d.Alternate, out)
		}
	case *ast.SFor:
		collectReturnsInStmt(&d.Body, out)
	case *ast.SForIn:
		collectReturnsInStmt(&d.Body, out)
	case *ast.SForOf:
		collectReturnsInStmt(&d.Body, out)
	case *ast.SWhile:
		collectReturnsInStmt(&d.Body, out)
	case *ast.SDoWhile:
		collectReturnsInStmt(&d.Body, out)
	case *ast.SLabeled:
		collectReturnsInStmt(&d.Body, out)
	case *ast.STry:
		for i := range d.Block.Body {
			collectReturnsInStmt(&d.Block.Body[i], out)
		}
		if d.Catch != nil {
			for i := range d.Catch.Body.Body {
				collectReturnsInStmt(&d.Catch.Body.Body[i], out)
			}
		}
		if d.Finally != nil {
			for i := range d.Finally.Body {
				collectReturnsInStmt(&d.Finally.Body[i], out)
			}
		}
	case *ast.SSwitch:
		for ci := range d.Cases {
			for i := range d.Cases[ci].Body {
				collectReturnsInStmt(&d.Cases[ci].Body[i], out)
			}
		}
	}
}
