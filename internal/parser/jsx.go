package parser

import (
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/lexer"
)

// JSX is layered on top of the ordinary token stream as a lexical mode
// rather than a separate grammar: the lexer's ScanJSXText resumes raw
// text scanning from wherever the last punctuator left off, and the
// parser switches between that and ordinary Next()-driven tokenizing
// at the boundaries an opening/closing ">" or a "{"/"}" container
// creates.
//
// parseJSXElementOrFragment parses a JSX element or fragment starting
// at an unconsumed "<". It returns with the element's terminating
// ">" seen but not consumed — the caller decides whether to resume
// JSX text mode (a nested child, via lexer.ScanJSXText) or ordinary
// tokenizing (the top-level expression, via lexer.Next) since only
// the caller knows which context it's in.
func (p *Parser) parseJSXElementOrFragment(start int, id ast.NodeID) ast.Expr {
	p.lex.Next() // consume "<"

	if p.at(lexer.TGreaterThan) {
		p.lex.ScanJSXText()
		children := p.parseJSXChildren()
		p.parseJSXClosing(true)
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.JSXFragment{Children: children}}
	}

	name := p.parseJSXName()
	var attrs []ast.JSXAttributeOrSpread
	for !p.at(lexer.TSlash) && !p.at(lexer.TGreaterThan) && !p.at(lexer.TEndOfFile) {
		attrs = append(attrs, p.parseJSXAttribute())
	}

	if p.eat(lexer.TSlash) {
		if !p.at(lexer.TGreaterThan) {
			p.log.AddErrorf(p.tokenSpan(), "expected \">\"")
		}
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.JSXElement{Name: name, Attributes: attrs, SelfClosing: true}}
	}

	if !p.at(lexer.TGreaterThan) {
		p.log.AddErrorf(p.tokenSpan(), "expected \">\"")
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.JSXElement{Name: name, Attributes: attrs}}
	}
	p.lex.ScanJSXText()
	children := p.parseJSXChildren()
	p.parseJSXClosing(false)
	return ast.Expr{Span: p.span(start), ID: id, Data: &ast.JSXElement{Name: name, Attributes: attrs, Children: children}}
}

// parseJSXChildren consumes JSX children in text mode (the lexer must
// already be positioned by ScanJSXText) until it reaches the "</"
// that starts this element's closing tag, or end of file.
func (p *Parser) parseJSXChildren() []ast.JSXChild {
	var children []ast.JSXChild
	for {
		switch p.lex.Token {
		case lexer.TJSXText:
			if text := p.lex.Raw(); text != "" {
				t := text
				children = append(children, ast.JSXChild{Text: &t})
			}
			p.lex.Next()
		case lexer.TOpenBrace:
			p.lex.Next()
			if p.at(lexer.TCloseBrace) {
				p.lex.Next()
				children = append(children, ast.JSXChild{})
			} else {
				e := p.parseExpr(LLowest)
				p.expect(lexer.TCloseBrace, "\"}\"")
				children = append(children, ast.JSXChild{Expr: &e})
			}
			p.lex.ScanJSXText()
		case lexer.TLessThan:
			save := *p.lex
			p.lex.Next()
			isClose := p.at(lexer.TSlash)
			*p.lex = save
			if isClose {
				return children
			}
			child := p.parseJSXElementOrFragment(p.lex.TokenStart, p.nextNodeID())
			p.lex.ScanJSXText()
			switch data := child.Data.(type) {
			case *ast.JSXElement:
				children = append(children, ast.JSXChild{Element: data})
			case *ast.JSXFragment:
				children = append(children, ast.JSXChild{Fragment: data})
			}
		default:
			return children
		}
	}
}

// parseJSXClosing consumes a "</Name>" or "</>" closing tag, leaving
// the terminating ">" unconsumed so the caller can choose how to
// resume scanning, matching parseJSXElementOrFragment's contract.
func (p *Parser) parseJSXClosing(fragment bool) {
	if !p.eat(lexer.TLessThan) {
		p.log.AddErrorf(p.tokenSpan(), "expected closing JSX tag")
		return
	}
	p.expect(lexer.TSlash, "\"/\"")
	if !fragment {
		p.parseJSXName()
	}
	if !p.at(lexer.TGreaterThan) {
		p.log.AddErrorf(p.tokenSpan(), "expected \">\"")
	}
}

// parseJSXName parses a tag or attribute name, including the
// "ns:name", "a.b.c", and hyphenated ("data-foo") forms JSX allows
// where ordinary identifiers don't.
func (p *Parser) parseJSXName() ast.JSXName {
	var name ast.JSXName
	part := p.lex.Identifier
	if part == "" {
		part = p.lex.Raw()
	}
	p.lex.Next()
	for p.at(lexer.TMinus) {
		p.lex.Next()
		next := p.lex.Identifier
		if next == "" {
			next = p.lex.Raw()
		}
		p.lex.Next()
		part += "-" + next
	}
	name.Parts = append(name.Parts, part)

	if p.eat(lexer.TColon) {
		name.Namespace = part
		name.Parts = nil
		next := p.lex.Identifier
		p.lex.Next()
		name.Parts = append(name.Parts, next)
		return name
	}

	for p.at(lexer.TDot) {
		p.lex.Next()
		next := p.lex.Identifier
		p.lex.Next()
		name.Parts = append(name.Parts, next)
	}
	return name
}

// parseJSXAttribute parses one attribute, or one "{...spread}" entry,
// in an opening tag's attribute list.
func (p *Parser) parseJSXAttribute() ast.JSXAttributeOrSpread {
	if p.eat(lexer.TOpenBrace) {
		p.expect(lexer.TDotDotDot, "\"...\"")
		arg := p.parseAssignExpr()
		p.expect(lexer.TCloseBrace, "\"}\"")
		return ast.JSXAttributeOrSpread{Spread: &ast.JSXSpreadAttribute{Argument: arg}}
	}

	name := p.parseJSXName()
	var value *ast.JSXAttributeValue
	if p.eat(lexer.TEquals) {
		switch {
		case p.at(lexer.TStringLiteral):
			s := p.lex.StringValue
			p.lex.Next()
			value = &ast.JSXAttributeValue{StringValue: &s}
		case p.eat(lexer.TOpenBrace):
			e := p.parseAssignExpr()
			p.expect(lexer.TCloseBrace, "\"}\"")
			value = &ast.JSXAttributeValue{Expression: &e}
		case p.at(lexer.TLessThan):
			e := p.parseJSXElementOrFragment(p.lex.TokenStart, p.nextNodeID())
			p.lex.Next()
			value = &ast.JSXAttributeValue{Expression: &e}
		default:
			p.log.AddErrorf(p.tokenSpan(), "expected JSX attribute value")
		}
	}
	return ast.JSXAttributeOrSpread{Attribute: &ast.JSXAttribute{Name: name, Value: value}}
}
