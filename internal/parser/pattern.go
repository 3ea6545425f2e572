package parser

import (
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/lexer"
)

// parseBindingPattern parses an identifier, array pattern, or object
// pattern appearing in a declaration or parameter position.
func (p *Parser) parseBindingPattern() ast.Pattern {
	start := p.lex.TokenStart
	switch p.lex.Token {
	case lexer.TOpenBracket:
		return p.parseArrayPattern(start)
	case lexer.TOpenBrace:
		return p.parseObjectPattern(start)
	default:
		name := p.lex.Identifier
		if name == "" {
			name = p.lex.Raw()
		}
		p.lex.Next()
		var typeAnn *ast.TSTypeAnnotation
		optional := p.eat(lexer.TQuestion)
		if p.eat(lexer.TColon) {
			ty := p.parseTSType()
			typeAnn = &ast.TSTypeAnnotation{Type: ty}
		}
		return ast.Pattern{Span: p.span(start), Data: &ast.PIdentifier{Name: name, TypeAnn: typeAnn, Optional: optional}}
	}
}

func (p *Parser) parseArrayPattern(start int) ast.Pattern {
	p.lex.Next()
	var elements []ast.ArrayPatternElement
	for !p.at(lexer.TCloseBracket) && !p.at(lexer.TEndOfFile) {
		if p.at(lexer.TComma) {
			elements = append(elements, ast.ArrayPatternElement{})
			p.lex.Next()
			continue
		}
		rest := p.eat(lexer.TDotDotDot)
		pat := p.parseBindingPattern()
		var def *ast.Expr
		if p.eat(lexer.TEquals) {
			v := p.parseAssignExpr()
			def = &v
		}
		elements = append(elements, ast.ArrayPatternElement{Pattern: &pat, DefaultValue: def, Rest: rest})
		if !p.eat(lexer.TComma) {
			break
		}
	}
	p.expect(lexer.TCloseBracket, "\"]\"")
	var typeAnn *ast.TSTypeAnnotation
	if p.eat(lexer.TColon) {
		ty := p.parseTSType()
		typeAnn = &ast.TSTypeAnnotation{Type: ty}
	}
	return ast.Pattern{Span: p.span(start), Data: &ast.PArray{Elements: elements, TypeAnn: typeAnn}}
}

func (p *Parser) parseObjectPattern(start int) ast.Pattern {
	p.lex.Next()
	var props []ast.ObjectPatternProperty
	var rest *ast.Pattern
	for !p.at(lexer.TCloseBrace) && !p.at(lexer.TEndOfFile) {
		if p.eat(lexer.TDotDotDot) {
			pat := p.parseBindingPattern()
			rest = &pat
			break
		}
		computed := false
		var key ast.Expr
		keyStart := p.lex.TokenStart
		if p.eat(lexer.TOpenBracket) {
			computed = true
			key = p.parseAssignExpr()
			p.expect(lexer.TCloseBracket, "\"]\"")
		} else if p.at(lexer.TStringLiteral) {
			key = ast.Expr{Span: p.span(keyStart), Data: &ast.EString{Value: p.lex.StringValue}}
			p.lex.Next()
		} else if p.at(lexer.TNumericLiteral) {
			key = ast.Expr{Span: p.span(keyStart), Data: &ast.ENumber{Value: p.lex.Number}}
			p.lex.Next()
		} else {
			name := p.lex.Identifier
			key = ast.Expr{Span: p.span(keyStart), Data: &ast.EIdentifier{Name: name}}
			p.lex.Next()
		}

		if p.eat(lexer.TColon) {
			value := p.parseBindingPattern()
			var def *ast.Expr
			if p.eat(lexer.TEquals) {
				v := p.parseAssignExpr()
				def = &v
			}
			props = append(props, ast.ObjectPatternProperty{Key: key, Value: value, Computed: computed, DefaultValue: def})
		} else {
			var def *ast.Expr
			if p.eat(lexer.TEquals) {
				v := p.parseAssignExpr()
				def = &v
			}
			ident, _ := key.Data.(*ast.EIdentifier)
			name := ""
			if ident != nil {
				name = ident.Name
			}
			props = append(props, ast.ObjectPatternProperty{
				Key:          key,
				Value:        ast.Pattern{Span: key.Span, Data: &ast.PIdentifier{Name: name}},
				Shorthand:    true,
				DefaultValue: def,
			})
		}
		if !p.eat(lexer.TComma) {
			break
		}
	}
	p.expect(lexer.TCloseBrace, "\"}\"")
	var typeAnn *ast.TSTypeAnnotation
	if p.eat(lexer.TColon) {
		ty := p.parseTSType()
		typeAnn = &ast.TSTypeAnnotation{Type: ty}
	}
	return ast.Pattern{Span: p.span(start), Data: &ast.PObject{Properties: props, Rest: rest, TypeAnn: typeAnn}}
}
