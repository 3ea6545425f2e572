package isolated

import (
	"strconv"

	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/logger"
)

// transformer carries the state shared across one file's worth of
// declaration transforms: which nodes are @internal, the emitter's
// options, and where diagnostics go.
type transformer struct {
	internal internalAnnotations
	opts     Options
	log      *logger.Log
}

// unknownType is the conservative fallback used whenever a type can't
// be locally derived — a value still has to go in the .d.ts output,
// and `unknown` never claims more than isolated declarations actually
// knows.
func unknownType() ast.TSType {
	return ast.TSType{Data: &ast.TSKeywordType{Keyword: ast.TSKeywordUnknown}}
}

func (t *transformer) notDerivable(span ast.Span, what string) {
	if t.log == nil {
		return
	}
	t.log.AddMsg(logger.Msg{
		Kind:     logger.KindIsolatedDeclarationsError,
		Severity: logger.SeverityWarning,
		Text:     "cannot infer the type of " + what + " without a type annotation; falling back to unknown",
		Labels:   []logger.Label{{Span: span}},
	})
}

// transformStmt rewrites a single top-level (or namespace-body) value
// declaration into its declaration-file form: bodies stripped, types
// filled in where derivable, `declare` added unless ambient already
// covers it. Non-declaration statements (plain expressions, control
// flow) never survive isolated declarations and are dropped by the
// caller before transformStmt is reached.
func (t *transformer) transformStmt(s ast.Stmt, ambient bool) ast.Stmt {
	switch d := s.Data.(type) {
	case *ast.SFunctionDecl:
		fn := *d.Fn
		if fn.Body != nil {
			if rt, ok := inferReturnType(&fn); ok {
				fn.ReturnType = rt
			} else {
				t.notDerivable(s.Span, "the return of function "+fnName(&fn))
				fn.ReturnType = &ast.TSTypeAnnotation{Type: unknownType()}
			}
		}
		fn.Body = nil
		mods := d.Modifiers
		if !ambient {
			mods = addModifier(mods, ast.ModDeclare)
		}
		return ast.Stmt{Span: s.Span, ID: s.ID, Data: &ast.SFunctionDecl{Fn: &fn, Modifiers: mods}}

	case *ast.SClassDecl:
		class := *d.Class
		class.Body = t.transformClassBody(class.Body)
		mods := d.Modifiers
		if !ambient {
			mods = addModifier(mods, ast.ModDeclare)
		}
		return ast.Stmt{Span: s.Span, ID: s.ID, Data: &ast.SClassDecl{Class: &class, Modifiers: mods}}

	case *ast.SVarDecl:
		decls := make([]ast.VarDeclarator, len(d.Declarations))
		for i, decl := range d.Declarations {
			decls[i] = t.transformVarDeclarator(decl, d.Kind, s.Span)
		}
		mods := d.Modifiers
		if !ambient {
			mods = addModifier(mods, ast.ModDeclare)
		}
		return ast.Stmt{Span: s.Span, ID: s.ID, Data: &ast.SVarDecl{Kind: d.Kind, Declarations: decls, Modifiers: mods}}

	case *ast.STSEnumDecl:
		mods := d.Modifiers
		if !ambient {
			mods = addModifier(mods, ast.ModDeclare)
		}
		return ast.Stmt{Span: s.Span, ID: s.ID, Data: &ast.STSEnumDecl{ID: d.ID, Members: d.Members, Modifiers: mods}}

	case *ast.STSModuleDecl:
		body := make([]ast.Stmt, 0, len(d.Body))
		for _, child := range d.Body {
			if t.opts.StripInternal && t.internal.has(child.Span) {
				continue
			}
			body = append(body, t.transformStmt(child, true))
		}
		mods := d.Modifiers
		if !ambient {
			mods = addModifier(mods, ast.ModDeclare)
		}
		return ast.Stmt{Span: s.Span, ID: s.ID, Data: &ast.STSModuleDecl{
			ID: d.ID, StringName: d.StringName, Body: body, Modifiers: mods, Global: d.Global,
		}}

	default:
		// Interfaces, type aliases, import/export plumbing, and
		// import-equals declarations are already pure type syntax or
		// module wiring — nothing to strip, nothing to annotate.
		return s
	}
}

// transformVarDeclarator decides, per declarator, whether the
// initializer is dropped in favor of a type annotation or — for a
// const bound directly to a literal, which TypeScript itself keeps
// verbatim in a .d.ts — left in place.
func (t *transformer) transformVarDeclarator(decl ast.VarDeclarator, kind ast.VarKind, stmtSpan ast.Span) ast.VarDeclarator {
	id, ok := decl.ID.Data.(*ast.PIdentifier)
	if !ok {
		// Destructuring patterns can't appear in an ambient declaration;
		// leave the pattern as-is and drop the initializer.
		return ast.VarDeclarator{ID: decl.ID, Init: nil}
	}
	if id.TypeAnn != nil {
		return ast.VarDeclarator{ID: decl.ID, Init: nil}
	}
	if decl.Init == nil {
		return ast.VarDeclarator{ID: decl.ID, Init: nil}
	}

	if kind == ast.VarConst {
		if _, ok := literalKeywordOf(*decl.Init); ok {
			// TypeScript preserves the literal itself for a const bound
			// to a primitive literal, rather than widening it to a
			// keyword type.
			return ast.VarDeclarator{ID: decl.ID, Init: decl.Init}
		}
	}

	if k, ok := literalKeywordOf(*decl.Init); ok {
		ann := &ast.TSTypeAnnotation{Type: ast.TSType{Data: &ast.TSKeywordType{Keyword: k}}}
		return ast.VarDeclarator{ID: ast.Pattern{Span: decl.ID.Span, Data: &ast.PIdentifier{Name: id.Name, Ref: id.Ref, TypeAnn: ann}}}
	}

	if fn, ok := decl.Init.Data.(*ast.EFunction); ok && fn.Fn.ReturnType != nil {
		ann := &ast.TSTypeAnnotation{Type: ast.TSType{Data: &ast.TSFunctionType{
			Params:     tsFunctionParams(fn.Fn.Params),
			ReturnType: fn.Fn.ReturnType.Type,
			TypeParams: fn.Fn.TypeParams,
		}}}
		return ast.VarDeclarator{ID: ast.Pattern{Span: decl.ID.Span, Data: &ast.PIdentifier{Name: id.Name, Ref: id.Ref, TypeAnn: ann}}}
	}
	if arrow, ok := decl.Init.Data.(*ast.EArrow); ok && arrow.ReturnType != nil {
		ann := &ast.TSTypeAnnotation{Type: ast.TSType{Data: &ast.TSFunctionType{
			Params:     tsFunctionParams(arrow.Params),
			ReturnType: arrow.ReturnType.Type,
			TypeParams: arrow.TypeParams,
		}}}
		return ast.VarDeclarator{ID: ast.Pattern{Span: decl.ID.Span, Data: &ast.PIdentifier{Name: id.Name, Ref: id.Ref, TypeAnn: ann}}}
	}

	t.notDerivable(stmtSpan, "the binding "+id.Name)
	ann := &ast.TSTypeAnnotation{Type: unknownType()}
	return ast.VarDeclarator{ID: ast.Pattern{Span: decl.ID.Span, Data: &ast.PIdentifier{Name: id.Name, Ref: id.Ref, TypeAnn: ann}}}
}

// transformClassBody strips method/accessor/constructor bodies, fills
// in field types where derivable, collapses overloaded methods, and
// drops static initialization blocks — a block of imperative code has
// no declaration-file equivalent.
func (t *transformer) transformClassBody(members []ast.ClassMember) []ast.ClassMember {
	members = collapseMethodOverloads(members)
	out := make([]ast.ClassMember, 0, len(members))
	for _, m := range members {
		if t.opts.StripInternal && t.internal.has(m.Key.Span) {
			continue
		}
		switch m.Kind {
		case ast.ClassMemberStaticBlock:
			continue
		case ast.ClassMemberMethod, ast.ClassMemberGetter, ast.ClassMemberSetter, ast.ClassMemberConstructor:
			if m.Fn != nil && m.Fn.Body != nil {
				fn := *m.Fn
				if rt, ok := inferReturnType(&fn); ok {
					fn.ReturnType = rt
				} else if m.Kind != ast.ClassMemberConstructor {
					t.notDerivable(m.Key.Span, "the return of method "+keySpanName(m.Key))
					fn.ReturnType = &ast.TSTypeAnnotation{Type: unknownType()}
				}
				fn.Body = nil
				m.Fn = &fn
			}
		case ast.ClassMemberField:
			if m.TypeAnn == nil && m.Value != nil {
				if k, ok := literalKeywordOf(*m.Value); ok {
					m.TypeAnn = &ast.TSTypeAnnotation{Type: ast.TSType{Data: &ast.TSKeywordType{Keyword: k}}}
				} else {
					t.notDerivable(m.Key.Span, "the field "+keySpanName(m.Key))
					m.TypeAnn = &ast.TSTypeAnnotation{Type: unknownType()}
				}
			}
			m.Value = nil
		}
		out = append(out, m)
	}
	return out
}

func keySpanName(key ast.Expr) string {
	if name, ok := memberKeyName(key); ok {
		return name
	}
	return "<computed>"
}

func fnName(fn *ast.Function) string {
	if fn.ID != nil {
		return fn.ID.Name
	}
	return "<anonymous>"
}

// tsFunctionParams renders a function's value-level parameter list as
// the lighter param-name/type pairs a TSFunctionType needs, falling
// back to unknown for any parameter left untyped.
func tsFunctionParams(params []ast.Param) []ast.TSFunctionParam {
	out := make([]ast.TSFunctionParam, len(params))
	for i, p := range params {
		name := "arg" + strconv.Itoa(i)
		if id, ok := p.Pattern.Data.(*ast.PIdentifier); ok {
			name = id.Name
		}
		typ := unknownType()
		if p.TypeAnn != nil {
			typ = p.TypeAnn.Type
		}
		out[i] = ast.TSFunctionParam{Name: name, Type: typ, Optional: p.Optional, Rest: p.Rest}
	}
	return out
}

func addModifier(mods ast.Modifiers, kind ast.ModifierKind) ast.Modifiers {
	if mods.Has(kind) {
		return mods
	}
	out := make(ast.Modifiers, len(mods), len(mods)+1)
	copy(out, mods)
	return append(out, ast.Modifier{Kind: kind})
}
