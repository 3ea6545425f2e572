package isolated

import "github.com/jsforge/jsforge/internal/ast"

// collapseFunctionOverloads implements "overloaded functions collapse
// (implementation removed)": when a function name appears more than
// once at the same statement-list level with at least one signature-
// only sibling (Body == nil), every sibling that still has a body —
// the implementation TypeScript requires at the call site but never
// exposes in its own declaration file — is dropped. A lone function
// with a body and no overload siblings is untouched here; its body is
// stripped later by the ordinary declaration transform.
func collapseFunctionOverloads(stmts []ast.Stmt) []ast.Stmt {
	hasSignature := make(map[string]bool)
	for _, s := range stmts {
		if fd, ok := s.Data.(*ast.SFunctionDecl); ok && fd.Fn.ID != nil && fd.Fn.Body == nil {
			hasSignature[fd.Fn.ID.Name] = true
		}
	}
	if len(hasSignature) == 0 {
		return stmts
	}
	out := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		if fd, ok := s.Data.(*ast.SFunctionDecl); ok && fd.Fn.ID != nil && fd.Fn.Body != nil && hasSignature[fd.Fn.ID.Name] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// collapseMethodOverloads applies the same rule inside a class body,
// keyed by the member's identifier/string key text — computed members
// and symbol keys never participate in overloading, so they're always
// left alone.
func collapseMethodOverloads(members []ast.ClassMember) []ast.ClassMember {
	hasSignature := make(map[string]bool)
	for _, m := range members {
		if m.Kind != ast.ClassMemberMethod || m.Computed || m.Fn == nil {
			continue
		}
		if name, ok := memberKeyName(m.Key); ok && m.Fn.Body == nil {
			hasSignature[name] = true
		}
	}
	if len(hasSignature) == 0 {
		return members
	}
	out := make([]ast.ClassMember, 0, len(members))
	for _, m := range members {
		if m.Kind == ast.ClassMemberMethod && !m.Computed && m.Fn != nil && m.Fn.Body != nil {
			if name, ok := memberKeyName(m.Key); ok && hasSignature[name] {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

func memberKeyName(key ast.Expr) (string, bool) {
	switch d := key.Data.(type) {
	case *ast.EIdentifier:
		return d.Name, true
	case *ast.EString:
		return d.Value, true
	default:
		return "", false
	}
}
