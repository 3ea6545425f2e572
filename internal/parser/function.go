package parser

import (
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/lexer"
)

// parseFunctionTail parses everything after the "function" keyword
// (and after an already-consumed "async" for async functions): an
// optional "*", an optional name, type parameters, a parameter list,
// an optional return-type annotation, and a body (absent for
// ambient/overload signatures, per spec's TS declaration forms).
func (p *Parser) parseFunctionTail(isExpr bool) *ast.Function {
	fn := &ast.Function{}
	fn.Generator = p.eat(lexer.TAsterisk)
	if p.at(lexer.TIdentifier) {
		nameStart := p.lex.TokenStart
		name := p.lex.Identifier
		p.lex.Next()
		fn.ID = &ast.EIdentifier{Name: name}
		_ = nameStart
	}
	if p.at(lexer.TLessThan) {
		fn.TypeParams = p.parseTypeParams()
	}
	fn.Params = p.parseParamList()
	if p.eat(lexer.TColon) {
		ty := p.parseTSType()
		fn.ReturnType = &ast.TSTypeAnnotation{Type: ty}
	}
	if p.at(lexer.TOpenBrace) {
		block := p.parseBlockData()
		fn.Body = &ast.FunctionBody{Stmts: block.Body}
	} else {
		p.semicolon()
	}
	_ = isExpr
	return fn
}

func (p *Parser) parseParamList() []ast.Param {
	p.expect(lexer.TOpenParen, "\"(\"")
	var params []ast.Param
	for !p.at(lexer.TCloseParen) && !p.at(lexer.TEndOfFile) {
		var decorators []ast.Expr
		for p.eat(lexer.TAt) {
			d := p.parseUnary()
			decorators = append(decorators, d)
		}
		var mods ast.Modifiers
		for {
			if p.at(lexer.TIdentifier) {
				switch p.lex.Identifier {
				case "public", "private", "protected", "readonly", "override":
					mods = append(mods, ast.Modifier{Kind: modifierKindFor(p.lex.Identifier)})
					p.lex.Next()
					continue
				}
			}
			break
		}
		rest := p.eat(lexer.TDotDotDot)
		pat := p.parseBindingPattern()
		optional := p.eat(lexer.TQuestion)
		var typeAnn *ast.TSTypeAnnotation
		if p.eat(lexer.TColon) {
			ty := p.parseTSType()
			typeAnn = &ast.TSTypeAnnotation{Type: ty}
		}
		var def *ast.Expr
		if p.eat(lexer.TEquals) {
			v := p.parseAssignExpr()
			def = &v
		}
		params = append(params, ast.Param{Pattern: pat, DefaultValue: def, Decorators: decorators, Modifiers: mods, TypeAnn: typeAnn, Optional: optional, Rest: rest})
		if !p.eat(lexer.TComma) {
			break
		}
	}
	p.expect(lexer.TCloseParen, "\")\"")
	return params
}

func modifierKindFor(word string) ast.ModifierKind {
	switch word {
	case "public":
		return ast.ModPublic
	case "private":
		return ast.ModPrivate
	case "protected":
		return ast.ModProtected
	case "readonly":
		return ast.ModReadonly
	case "override":
		return ast.ModOverride
	}
	return ast.ModPublic
}

// parseClassTail parses everything after the "class" keyword: an
// optional name, type parameters, an optional "extends" clause (with
// its own type arguments), an optional "implements" clause, and the
// class body.
func (p *Parser) parseClassTail() *ast.Class {
	class := &ast.Class{}
	if p.at(lexer.TIdentifier) && p.lex.Identifier != "extends" && p.lex.Identifier != "implements" {
		name := p.lex.Identifier
		p.lex.Next()
		class.ID = &ast.EIdentifier{Name: name}
	}
	if p.at(lexer.TLessThan) {
		class.TypeParams = p.parseTypeParams()
	}
	if p.at(lexer.TIdentifier) && p.lex.Identifier == "extends" {
		p.lex.Next()
		super := p.parseBinary(LCall)
		class.SuperClass = &super
		if p.at(lexer.TLessThan) {
			class.SuperTypeArgs = p.parseTypeArgs()
		}
	}
	if p.at(lexer.TIdentifier) && p.lex.Identifier == "implements" {
		p.lex.Next()
		for {
			class.Implements = append(class.Implements, p.parseTSType())
			if !p.eat(lexer.TComma) {
				break
			}
		}
	}
	class.Body = p.parseClassBody()
	return class
}

func (p *Parser) parseClassBody() []ast.ClassMember {
	p.expect(lexer.TOpenBrace, "\"{\"")
	var members []ast.ClassMember
	for !p.at(lexer.TCloseBrace) && !p.at(lexer.TEndOfFile) {
		if p.eat(lexer.TSemicolon) {
			continue
		}
		members = append(members, p.parseClassMember())
	}
	p.expect(lexer.TCloseBrace, "\"}\"")
	return members
}

func (p *Parser) parseClassMember() ast.ClassMember {
	var decorators []ast.Expr
	for p.eat(lexer.TAt) {
		decorators = append(decorators, p.parseUnary())
	}

	var mods ast.Modifiers
	for p.at(lexer.TIdentifier) {
		word := p.lex.Identifier
		var kind ast.ModifierKind
		switch word {
		case "static":
			kind = ast.ModStatic
		case "public":
			kind = ast.ModPublic
		case "private":
			kind = ast.ModPrivate
		case "protected":
			kind = ast.ModProtected
		case "readonly":
			kind = ast.ModReadonly
		case "abstract":
			kind = ast.ModAbstract
		case "override":
			kind = ast.ModOverride
		case "declare":
			kind = ast.ModDeclare
		case "accessor":
			kind = ast.ModAccessor
		default:
			goto doneModifiers
		}
		save := *p.lex
		p.lex.Next()
		if p.at(lexer.TOpenParen) || p.at(lexer.TEquals) || p.at(lexer.TSemicolon) || p.at(lexer.TColon) || p.lex.HasNewlineBefore {
			*p.lex = save
			goto doneModifiers
		}
		mods = append(mods, ast.Modifier{Kind: kind})
	}
doneModifiers:

	if p.at(lexer.TOpenBrace) {
		// static initialization block
		block := p.parseBlockData()
		return ast.ClassMember{Kind: ast.ClassMemberStaticBlock, Modifiers: mods, StaticBody: &ast.FunctionBody{Stmts: block.Body}}
	}

	async := false
	if p.at(lexer.TIdentifier) && p.lex.Identifier == "async" {
		save := *p.lex
		p.lex.Next()
		if p.lex.HasNewlineBefore || p.at(lexer.TOpenParen) || p.at(lexer.TEquals) {
			*p.lex = save
		} else {
			async = true
		}
	}
	generator := p.eat(lexer.TAsterisk)

	kind := ast.ClassMemberMethod
	if p.at(lexer.TIdentifier) && (p.lex.Identifier == "get" || p.lex.Identifier == "set") {
		save := *p.lex
		word := p.lex.Identifier
		p.lex.Next()
		if p.at(lexer.TOpenParen) || p.at(lexer.TEquals) || p.at(lexer.TSemicolon) || p.lex.HasNewlineBefore {
			*p.lex = save
		} else if word == "get" {
			kind = ast.ClassMemberGetter
		} else {
			kind = ast.ClassMemberSetter
		}
	}

	computed := false
	var key ast.Expr
	keyStart := p.lex.TokenStart
	switch {
	case p.eat(lexer.TOpenBracket):
		computed = true
		key = p.parseAssignExpr()
		p.expect(lexer.TCloseBracket, "\"]\"")
	case p.at(lexer.TStringLiteral):
		key = ast.Expr{Span: p.span(keyStart), Data: &ast.EString{Value: p.lex.StringValue}}
		p.lex.Next()
	case p.at(lexer.TNumericLiteral):
		key = ast.Expr{Span: p.span(keyStart), Data: &ast.ENumber{Value: p.lex.Number}}
		p.lex.Next()
	case p.at(lexer.TPrivateIdentifier):
		key = ast.Expr{Span: p.span(keyStart), Data: &ast.EPrivateIdentifier{Name: "#" + p.lex.Identifier}}
		p.lex.Next()
	default:
		name := p.lex.Identifier
		if name == "" {
			name = p.lex.Raw()
		}
		key = ast.Expr{Span: p.span(keyStart), Data: &ast.EIdentifier{Name: name}}
		p.lex.Next()
	}

	optional := p.eat(lexer.TQuestion)
	_ = p.eat(lexer.TExclamation) // definite-assignment assertion on a field

	if p.at(lexer.TOpenParen) || p.at(lexer.TLessThan) {
		if id, ok := key.Data.(*ast.EIdentifier); ok && id.Name == "constructor" {
			kind = ast.ClassMemberConstructor
		}
		fn := &ast.Function{Async: async, Generator: generator}
		if p.at(lexer.TLessThan) {
			fn.TypeParams = p.parseTypeParams()
		}
		fn.Params = p.parseParamList()
		if p.eat(lexer.TColon) {
			ty := p.parseTSType()
			fn.ReturnType = &ast.TSTypeAnnotation{Type: ty}
		}
		if p.at(lexer.TOpenBrace) {
			block := p.parseBlockData()
			fn.Body = &ast.FunctionBody{Stmts: block.Body}
		} else {
			p.semicolon()
		}
		return ast.ClassMember{Kind: kind, Key: key, Computed: computed, Modifiers: mods, Fn: fn, Decorators: decorators, Optional: optional}
	}

	var typeAnn *ast.TSTypeAnnotation
	if p.eat(lexer.TColon) {
		ty := p.parseTSType()
		typeAnn = &ast.TSTypeAnnotation{Type: ty}
	}
	var value *ast.Expr
	if p.eat(lexer.TEquals) {
		v := p.parseAssignExpr()
		value = &v
	}
	p.semicolon()
	return ast.ClassMember{Kind: ast.ClassMemberField, Key: key, Computed: computed, Modifiers: mods, Value: value, TypeAnn: typeAnn, Decorators: decorators, Optional: optional}
}
