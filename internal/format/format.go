package format

import (
	"fmt"

	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/codegen"
)

// Program renders prog to canonically formatted source text.
//
// The builder below lays out, node by node, the handful of
// constructs where width-aware wrapping actually matters in practice —
// variable declarator lists, object and array literals, and call
// argument lists — as real
// Group/Indent/Line trees. Everything else (control-flow statements,
// class bodies, operator expressions) is laid out as plain
// concatenation with the precedence-correct text for its leaf
// expressions borrowed from codegen.PrintExpr/PrintStmt, since
// getting operator parenthesization right is already codegen's job
// and duplicating that switch here would buy nothing.
func Program(prog *ast.Program, opts Options) string {
	b := &builder{opts: opts, attach: attachComments(prog.Comments)}
	var parts []Doc
	if prog.Hashbang != nil {
		parts = append(parts, Text(prog.Hashbang.Text), HardLine())
	}
	for _, d := range prog.Directives {
		parts = append(parts, Text(fmt.Sprintf("%q", d)+";"), HardLine())
	}
	parts = append(parts, b.stmtList(prog.Body))
	return Print(Concat(parts...), opts)
}

type builder struct {
	opts   Options
	attach map[int32][]ast.Comment
}

func attachComments(comments []ast.Comment) map[int32][]ast.Comment {
	m := make(map[int32][]ast.Comment)
	for _, c := range comments {
		if c.AttachedTo == ast.NoAttachment {
			continue
		}
		off := int32(c.AttachedTo)
		m[off] = append(m[off], c)
	}
	return m
}

// leadingComments renders whatever comments are attached to a node
// starting at offset, reflowing JSDoc blocks and passing everything
// else through unchanged.
func (b *builder) leadingComments(offset int32, indentColumn int) Doc {
	cs, ok := b.attach[offset]
	if !ok {
		return Concat()
	}
	var parts []Doc
	for _, c := range cs {
		if c.IsJSDoc() {
			if formatted, ok := FormatJSDocComment(c.Text, b.opts.JSDoc, b.opts.LineWidth, indentColumn); ok {
				if formatted == "" {
					continue
				}
				parts = append(parts, Text(formatted), HardLine())
				continue
			}
		}
		parts = append(parts, Text(c.Text), HardLine())
	}
	return Concat(parts...)
}

func (b *builder) stmtList(stmts []ast.Stmt) Doc {
	var parts []Doc
	for i, s := range stmts {
		if i > 0 {
			parts = append(parts, HardLine())
		}
		parts = append(parts, b.leadingComments(s.Span.Loc.Start, 0))
		parts = append(parts, b.stmt(s))
	}
	return Concat(parts...)
}

func (b *builder) block(s ast.SBlock) Doc {
	if len(s.Body) == 0 {
		return Text("{}")
	}
	return Concat(
		Text("{"),
		Indent(Concat(HardLine(), b.stmtList(s.Body))),
		HardLine(),
		Text("}"),
	)
}

// stmt lays out the handful of statement kinds whose children benefit
// from group-based wrapping; anything else is rendered verbatim by
// codegen and wrapped as an opaque leaf.
func (b *builder) stmt(s ast.Stmt) Doc {
	switch d := s.Data.(type) {
	case *ast.SBlock:
		return b.block(*d)

	case *ast.SVarDecl:
		return b.varDecl(d)

	case *ast.SExpr:
		return Concat(b.expr(d.Value), Text(";"))

	case *ast.SIf:
		parts := []Doc{Text("if ("), b.expr(d.Test), Text(") "), b.bodyStmt(d.Consequent)}
		if d.Alternate != nil {
			parts = append(parts, Text(" else "), b.bodyStmt(*d.Alternate))
		}
		return Concat(parts...)

	case *ast.SReturn:
		if d.Value == nil {
			return Text("return;")
		}
		return Concat(Text("return "), b.expr(*d.Value), Text(";"))

	case *ast.SFunctionDecl:
		return Text(codegen.PrintStmt(s))

	case *ast.SClassDecl:
		return Text(codegen.PrintStmt(s))

	default:
		return Text(codegen.PrintStmt(s))
	}
}

// bodyStmt renders a statement used as a control-flow body, always as
// a brace block so reformatting never introduces an ASI hazard from a
// dangling single-statement if/while/for.
func (b *builder) bodyStmt(s ast.Stmt) Doc {
	if block, ok := s.Data.(*ast.SBlock); ok {
		return b.block(*block)
	}
	return Concat(Text("{"), Indent(Concat(HardLine(), b.stmt(s))), HardLine(), Text("}"))
}

func (b *builder) varDecl(d *ast.SVarDecl) Doc {
	parts := []Doc{Text(d.Kind.String() + " ")}
	declarators := make([]Doc, len(d.Declarations))
	for i, decl := range d.Declarations {
		id := Text(codegenPattern(decl.ID))
		if decl.Init != nil {
			declarators[i] = Concat(id, Text(" = "), b.expr(*decl.Init))
		} else {
			declarators[i] = id
		}
	}
	if len(declarators) == 1 {
		parts = append(parts, declarators[0])
	} else {
		parts = append(parts, Group(Indent(Join(Concat(Text(","), Line()), declarators))))
	}
	parts = append(parts, Text(";"))
	return Concat(parts...)
}

// codegenPattern falls back to codegen for binding-pattern text; a
// destructuring pattern's own internal layout is rare enough to wrap
// that it isn't worth a parallel Doc-based pattern printer.
func codegenPattern(pat ast.Pattern) string {
	fakeDecl := ast.SVarDecl{Kind: ast.VarConst, Declarations: []ast.VarDeclarator{{ID: pat}}}
	text := codegen.PrintStmt(ast.Stmt{Data: &fakeDecl})
	// Strip the "const " prefix and trailing ";" that wrapping it in a
	// throwaway declarator added just to reach the pattern printer.
	const prefix = "const "
	if len(text) > len(prefix) {
		text = text[len(prefix):]
	}
	if len(text) > 0 && text[len(text)-1] == ';' {
		text = text[:len(text)-1]
	}
	return text
}

// expr lays out the literal-container and call-shaped expressions
// whose arguments benefit from width-aware wrapping; everything else
// is delegated to codegen.PrintExpr, which already gets
// parenthesization right for every operator.
func (b *builder) expr(e ast.Expr) Doc {
	switch d := e.Data.(type) {
	case *ast.EArray:
		return b.arrayExpr(d)
	case *ast.EObject:
		return b.objectExpr(d)
	case *ast.ECall:
		return b.callExpr(d)
	default:
		return Text(codegen.PrintExpr(e))
	}
}

func (b *builder) arrayExpr(d *ast.EArray) Doc {
	if len(d.Elements) == 0 {
		return Text("[]")
	}
	elems := make([]Doc, len(d.Elements))
	for i, el := range d.Elements {
		switch {
		case el.Hole:
			elems[i] = Text("")
		case el.Spread:
			elems[i] = Concat(Text("..."), b.expr(el.Value))
		default:
			elems[i] = b.expr(el.Value)
		}
	}
	trailingComma := Doc{}
	if b.opts.TrailingCommas != TrailingCommasNone {
		trailingComma = IfGroupBreaks("", Text(","))
	}
	return Group(Concat(
		Text("["),
		Indent(Concat(SoftLine(), Join(Concat(Text(","), Line()), elems), trailingComma)),
		SoftLine(),
		Text("]"),
	))
}

func (b *builder) objectExpr(d *ast.EObject) Doc {
	if len(d.Properties) == 0 {
		return Text("{}")
	}
	props := make([]Doc, len(d.Properties))
	for i, p := range d.Properties {
		props[i] = b.objectProperty(p)
	}
	edge := Line()
	if !b.opts.BracketSpacing {
		edge = SoftLine()
	}
	trailingComma := Doc{}
	if b.opts.TrailingCommas != TrailingCommasNone {
		trailingComma = IfGroupBreaks("", Text(","))
	}
	return Group(Concat(
		Text("{"),
		Indent(Concat(edge, Join(Concat(Text(","), Line()), props), trailingComma)),
		edge,
		Text("}"),
	))
}

// objectProperty lays out a plain "key: value" (or shorthand) entry
// with Doc-based wrapping for its value; getters, setters, methods and
// spreads reuse codegen's property printer wholesale by rendering a
// throwaway single-property object literal and trimming its braces,
// since their shape (parameter lists, function bodies) is already
// handled correctly there and isn't width-sensitive in the same way.
func (b *builder) objectProperty(p ast.ObjectProperty) Doc {
	switch p.Kind {
	case ast.PropertySpread, ast.PropertyGet, ast.PropertySet, ast.PropertyMethod:
		return Text(printSingleProperty(p))
	default:
		if p.Shorthand {
			return Text(codegen.PrintExpr(p.Key))
		}
		keyText := codegen.PrintExpr(p.Key)
		if p.Computed {
			keyText = "[" + keyText + "]"
		}
		return Concat(Text(keyText+": "), b.expr(p.Value))
	}
}

func printSingleProperty(p ast.ObjectProperty) string {
	obj := ast.EObject{Properties: []ast.ObjectProperty{p}}
	text := codegen.PrintExpr(ast.Expr{Data: &obj})
	// Strip the "{ " / " }" wrapping codegen puts around a single-property
	// object literal, leaving just the property's own rendering.
	text = trimPrefixSpace(text, "{")
	text = trimSuffixSpace(text, "}")
	return text
}

func trimPrefixSpace(s, prefix string) string {
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		s = s[len(prefix):]
	}
	if len(s) > 0 && s[0] == ' ' {
		s = s[1:]
	}
	return s
}

func trimSuffixSpace(s, suffix string) string {
	if len(s) > len(suffix) && s[len(s)-len(suffix):] == suffix {
		s = s[:len(s)-len(suffix)]
	}
	if len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}

func (b *builder) callExpr(d *ast.ECall) Doc {
	callee := Text(codegen.PrintExpr(d.Callee))
	if len(d.Args) == 0 {
		return Concat(callee, Text("()"))
	}
	args := make([]Doc, len(d.Args))
	for i, a := range d.Args {
		if a.Spread {
			args[i] = Concat(Text("..."), b.expr(a.Value))
		} else {
			args[i] = b.expr(a.Value)
		}
	}
	return Concat(callee, Text("("), Group(Concat(
		Indent(Concat(SoftLine(), Join(Concat(Text(","), Line()), args))),
		SoftLine(),
	)), Text(")"))
}
