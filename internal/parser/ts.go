package parser

import (
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/lexer"
)

// parseTSType parses a full type annotation, including the top-level
// conditional/union/intersection forms (spec §3.2). It never fails:
// on malformed input it records a diagnostic and returns a keyword
// "any" type, consistent with the parser's never-abort contract.
func (p *Parser) parseTSType() ast.TSType {
	if ty, ok := p.tryParseTSType(); ok {
		return ty
	}
	p.log.AddErrorf(p.tokenSpan(), "expected a type")
	return ast.TSType{Span: p.tokenSpan(), Data: &ast.TSKeywordType{Keyword: ast.TSKeywordAny}}
}

// tryParseTSType attempts to parse a type and reports whether it
// succeeded, letting callers that speculate (e.g. arrow-vs-paren
// disambiguation, angle-bracket type assertions) roll back cleanly.
func (p *Parser) tryParseTSType() (ast.TSType, bool) {
	start := p.lex.TokenStart
	check, ok := p.parseTSUnionType()
	if !ok {
		return ast.TSType{}, false
	}
	if p.at(lexer.TIdentifier) && p.lex.Identifier == "extends" {
		p.lex.Next()
		extends, ok := p.parseTSUnionType()
		if !ok {
			return ast.TSType{}, false
		}
		p.expect(lexer.TQuestion, "\"?\"")
		trueType := p.parseTSType()
		p.expect(lexer.TColon, "\":\"")
		falseType := p.parseTSType()
		return ast.TSType{Span: p.span(start), Data: &ast.TSConditionalType{Check: check, Extends: extends, TrueType: trueType, FalseType: falseType}}, true
	}
	return check, true
}

func (p *Parser) parseTSUnionType() (ast.TSType, bool) {
	start := p.lex.TokenStart
	_ = p.eat(lexer.TBar) // leading "|" is allowed before the first member
	first, ok := p.parseTSIntersectionType()
	if !ok {
		return ast.TSType{}, false
	}
	if !p.at(lexer.TBar) {
		return first, true
	}
	types := []ast.TSType{first}
	for p.eat(lexer.TBar) {
		next, ok := p.parseTSIntersectionType()
		if !ok {
			return ast.TSType{}, false
		}
		types = append(types, next)
	}
	return ast.TSType{Span: p.span(start), Data: &ast.TSUnionType{Types: types}}, true
}

func (p *Parser) parseTSIntersectionType() (ast.TSType, bool) {
	start := p.lex.TokenStart
	_ = p.eat(lexer.TAmpersand)
	first, ok := p.parseTSTypeOperator()
	if !ok {
		return ast.TSType{}, false
	}
	if !p.at(lexer.TAmpersand) {
		return first, true
	}
	types := []ast.TSType{first}
	for p.eat(lexer.TAmpersand) {
		next, ok := p.parseTSTypeOperator()
		if !ok {
			return ast.TSType{}, false
		}
		types = append(types, next)
	}
	return ast.TSType{Span: p.span(start), Data: &ast.TSIntersectionType{Types: types}}, true
}

func (p *Parser) parseTSTypeOperator() (ast.TSType, bool) {
	start := p.lex.TokenStart
	if p.at(lexer.TIdentifier) {
		var op ast.TSTypeOperator
		matched := true
		switch p.lex.Identifier {
		case "keyof":
			op = ast.TSTypeOperatorKeyOf
		case "unique":
			op = ast.TSTypeOperatorUnique
		case "readonly":
			op = ast.TSTypeOperatorReadonly
		default:
			matched = false
		}
		if matched {
			p.lex.Next()
			inner, ok := p.parseTSTypeOperator()
			if !ok {
				return ast.TSType{}, false
			}
			return ast.TSType{Span: p.span(start), Data: &ast.TSTypeOperatorType{Operator: op, Type: inner}}, true
		}
	}
	if p.at(lexer.TIdentifier) && p.lex.Identifier == "infer" {
		p.lex.Next()
		name := p.lex.Identifier
		p.lex.Next()
		var constraint *ast.TSType
		if p.at(lexer.TIdentifier) && p.lex.Identifier == "extends" {
			save := *p.lex
			p.lex.Next()
			if c, ok := p.parseTSUnionType(); ok && !p.at(lexer.TQuestion) {
				constraint = &c
			} else {
				*p.lex = save
			}
		}
		return ast.TSType{Span: p.span(start), Data: &ast.TSInferType{Name: name, Constraint: constraint}}, true
	}
	return p.parseTSPostfixType()
}

func (p *Parser) parseTSPostfixType() (ast.TSType, bool) {
	start := p.lex.TokenStart
	ty, ok := p.parseTSPrimaryType()
	if !ok {
		return ast.TSType{}, false
	}
	for {
		if p.at(lexer.TOpenBracket) && !p.lex.HasNewlineBefore {
			save := *p.lex
			p.lex.Next()
			if p.at(lexer.TCloseBracket) {
				p.lex.Next()
				ty = ast.TSType{Span: p.span(start), Data: &ast.TSArrayType{ElementType: ty}}
				continue
			}
			index, ok := p.tryParseTSType()
			if !ok || !p.eat(lexer.TCloseBracket) {
				*p.lex = save
				break
			}
			ty = ast.TSType{Span: p.span(start), Data: &ast.TSIndexedAccessType{ObjectType: ty, IndexType: index}}
			continue
		}
		break
	}
	return ty, true
}

func (p *Parser) parseTSPrimaryType() (ast.TSType, bool) {
	start := p.lex.TokenStart
	switch p.lex.Token {
	case lexer.TOpenParen:
		return p.parseTSParenOrFunctionType(start)
	case lexer.TLessThan:
		return p.parseTSFunctionType(start, true)
	case lexer.TOpenBracket:
		return p.parseTSTupleType(start)
	case lexer.TOpenBrace:
		return p.parseTSObjectOrMappedType(start)
	case lexer.TStringLiteral:
		v := p.lex.StringValue
		lit := ast.Expr{Data: &ast.EString{Value: v}}
		p.lex.Next()
		return ast.TSType{Span: p.span(start), Data: &ast.TSLiteralType{Literal: lit}}, true
	case lexer.TNumericLiteral:
		v := p.lex.Number
		lit := ast.Expr{Data: &ast.ENumber{Value: v}}
		p.lex.Next()
		return ast.TSType{Span: p.span(start), Data: &ast.TSLiteralType{Literal: lit}}, true
	case lexer.TMinus:
		p.lex.Next()
		if !p.at(lexer.TNumericLiteral) {
			return ast.TSType{}, false
		}
		v := -p.lex.Number
		lit := ast.Expr{Data: &ast.ENumber{Value: v}}
		p.lex.Next()
		return ast.TSType{Span: p.span(start), Data: &ast.TSLiteralType{Literal: lit}}, true
	case lexer.TTrue:
		p.lex.Next()
		return ast.TSType{Span: p.span(start), Data: &ast.TSLiteralType{Literal: ast.Expr{Data: &ast.EBoolean{Value: true}}}}, true
	case lexer.TFalse:
		p.lex.Next()
		return ast.TSType{Span: p.span(start), Data: &ast.TSLiteralType{Literal: ast.Expr{Data: &ast.EBoolean{Value: false}}}}, true
	case lexer.TNull:
		p.lex.Next()
		return ast.TSType{Span: p.span(start), Data: &ast.TSKeywordType{Keyword: ast.TSKeywordNull}}, true
	case lexer.TVoid:
		p.lex.Next()
		return ast.TSType{Span: p.span(start), Data: &ast.TSKeywordType{Keyword: ast.TSKeywordVoid}}, true
	case lexer.TThis:
		p.lex.Next()
		return ast.TSType{Span: p.span(start), Data: &ast.TSKeywordType{Keyword: ast.TSKeywordThis}}, true
	case lexer.TNoSubstitutionTemplateLiteral, lexer.TTemplateHead:
		return p.parseTSTemplateLiteralType(start)
	case lexer.TTypeof:
		p.lex.Next()
		name := p.parseQualifiedName()
		var args []ast.TSType
		if p.at(lexer.TLessThan) {
			args = p.parseTypeArgs()
		}
		return ast.TSType{Span: p.span(start), Data: &ast.TSTypeQuery{Name: name, TypeArguments: args}}, true
	case lexer.TIdentifier:
		switch p.lex.Identifier {
		case "any":
			p.lex.Next()
			return ast.TSType{Span: p.span(start), Data: &ast.TSKeywordType{Keyword: ast.TSKeywordAny}}, true
		case "unknown":
			p.lex.Next()
			return ast.TSType{Span: p.span(start), Data: &ast.TSKeywordType{Keyword: ast.TSKeywordUnknown}}, true
		case "never":
			p.lex.Next()
			return ast.TSType{Span: p.span(start), Data: &ast.TSKeywordType{Keyword: ast.TSKeywordNever}}, true
		case "undefined":
			p.lex.Next()
			return ast.TSType{Span: p.span(start), Data: &ast.TSKeywordType{Keyword: ast.TSKeywordUndefined}}, true
		case "boolean":
			p.lex.Next()
			return ast.TSType{Span: p.span(start), Data: &ast.TSKeywordType{Keyword: ast.TSKeywordBoolean}}, true
		case "number":
			p.lex.Next()
			return ast.TSType{Span: p.span(start), Data: &ast.TSKeywordType{Keyword: ast.TSKeywordNumber}}, true
		case "string":
			p.lex.Next()
			return ast.TSType{Span: p.span(start), Data: &ast.TSKeywordType{Keyword: ast.TSKeywordString}}, true
		case "symbol":
			p.lex.Next()
			return ast.TSType{Span: p.span(start), Data: &ast.TSKeywordType{Keyword: ast.TSKeywordSymbol}}, true
		case "bigint":
			p.lex.Next()
			return ast.TSType{Span: p.span(start), Data: &ast.TSKeywordType{Keyword: ast.TSKeywordBigInt}}, true
		case "object":
			p.lex.Next()
			return ast.TSType{Span: p.span(start), Data: &ast.TSKeywordType{Keyword: ast.TSKeywordObject}}, true
		case "import":
			return p.parseTSImportType(start)
		case "asserts":
			save := *p.lex
			p.lex.Next()
			if p.at(lexer.TThis) || p.at(lexer.TIdentifier) {
				paramName := "this"
				if p.at(lexer.TIdentifier) {
					paramName = p.lex.Identifier
				}
				p.lex.Next()
				var ty *ast.TSType
				if p.at(lexer.TIdentifier) && p.lex.Identifier == "is" {
					p.lex.Next()
					t := p.parseTSType()
					ty = &t
				}
				return ast.TSType{Span: p.span(start), Data: &ast.TSTypePredicate{ParamName: paramName, Asserts: true, Type: ty}}, true
			}
			*p.lex = save
		}
		// Either `x is T` or a plain type reference/qualified name, with
		// optional type arguments.
		name := p.parseQualifiedName()
		if p.at(lexer.TIdentifier) && p.lex.Identifier == "is" && name.Left == nil {
			p.lex.Next()
			t := p.parseTSType()
			return ast.TSType{Span: p.span(start), Data: &ast.TSTypePredicate{ParamName: name.Right, Type: &t}}, true
		}
		var args []ast.TSType
		if p.at(lexer.TLessThan) {
			args = p.parseTypeArgs()
		}
		return ast.TSType{Span: p.span(start), Data: &ast.TSTypeReference{Name: name, TypeArguments: args}}, true
	}
	return ast.TSType{}, false
}

func (p *Parser) parseQualifiedName() ast.QualifiedName {
	name := ast.QualifiedName{Right: p.lex.Identifier}
	p.lex.Next()
	for p.eat(lexer.TDot) {
		next := ast.QualifiedName{Left: &name, Right: p.lex.Identifier}
		p.lex.Next()
		name = next
	}
	return name
}

func (p *Parser) parseTSImportType(start int) (ast.TSType, bool) {
	p.lex.Next() // "import"
	p.expect(lexer.TOpenParen, "\"(\"")
	arg := p.lex.StringValue
	p.expect(lexer.TStringLiteral, "a module specifier")
	p.expect(lexer.TCloseParen, "\")\"")
	var qualifier *ast.QualifiedName
	if p.eat(lexer.TDot) {
		q := p.parseQualifiedName()
		qualifier = &q
	}
	var args []ast.TSType
	if p.at(lexer.TLessThan) {
		args = p.parseTypeArgs()
	}
	return ast.TSType{Span: p.span(start), Data: &ast.TSImportType{Argument: arg, Qualifier: qualifier, TypeArguments: args}}, true
}

func (p *Parser) parseTSTemplateLiteralType(start int) (ast.TSType, bool) {
	lit := ast.TSTemplateLiteralType{}
	lit.Quasis = append(lit.Quasis, p.lex.StringValue)
	if p.at(lexer.TNoSubstitutionTemplateLiteral) {
		p.lex.Next()
		return ast.TSType{Span: p.span(start), Data: &lit}, true
	}
	p.lex.Next()
	for {
		ty := p.parseTSType()
		lit.Types = append(lit.Types, ty)
		p.lex.ResumeTemplate()
		lit.Quasis = append(lit.Quasis, p.lex.StringValue)
		if p.at(lexer.TTemplateTail) {
			p.lex.Next()
			return ast.TSType{Span: p.span(start), Data: &lit}, true
		}
		p.lex.Next()
	}
}

func (p *Parser) parseTSTupleType(start int) (ast.TSType, bool) {
	p.lex.Next()
	var elements []ast.TupleMember
	for !p.at(lexer.TCloseBracket) && !p.at(lexer.TEndOfFile) {
		rest := p.eat(lexer.TDotDotDot)
		label := ""
		if p.at(lexer.TIdentifier) {
			save := *p.lex
			name := p.lex.Identifier
			p.lex.Next()
			optional := p.eat(lexer.TQuestion)
			if p.eat(lexer.TColon) {
				label = name
				ty := p.parseTSType()
				elements = append(elements, ast.TupleMember{Type: ty, Label: label, Optional: optional, Rest: rest})
				if !p.eat(lexer.TComma) {
					break
				}
				continue
			}
			*p.lex = save
		}
		ty, ok := p.tryParseTSType()
		if !ok {
			return ast.TSType{}, false
		}
		optional := p.eat(lexer.TQuestion)
		elements = append(elements, ast.TupleMember{Type: ty, Optional: optional, Rest: rest})
		if !p.eat(lexer.TComma) {
			break
		}
	}
	p.expect(lexer.TCloseBracket, "\"]\"")
	return ast.TSType{Span: p.span(start), Data: &ast.TSTupleType{Elements: elements}}, true
}

func (p *Parser) parseTSParenOrFunctionType(start int) (ast.TSType, bool) {
	save := *p.lex
	if ty, ok := p.parseTSFunctionType(start, false); ok {
		return ty, true
	}
	*p.lex = save
	p.lex.Next()
	inner, ok := p.tryParseTSType()
	if !ok || !p.eat(lexer.TCloseParen) {
		return ast.TSType{}, false
	}
	return ast.TSType{Span: p.span(start), Data: &ast.TSParenthesizedType{Type: inner}}, true
}

// parseTSFunctionType speculatively parses `<T>(params) => R` or
// `(params) => R`; forceGenerics requires a leading "<...>" (used when
// the primary-type dispatcher already saw "<").
func (p *Parser) parseTSFunctionType(start int, forceGenerics bool) (ast.TSType, bool) {
	var typeParams []ast.TSTypeParam
	if forceGenerics {
		if !p.at(lexer.TLessThan) {
			return ast.TSType{}, false
		}
		typeParams = p.parseTypeParams()
	} else if p.at(lexer.TLessThan) {
		typeParams = p.parseTypeParams()
	}
	if !p.at(lexer.TOpenParen) {
		return ast.TSType{}, false
	}
	p.lex.Next()
	var params []ast.TSFunctionParam
	for !p.at(lexer.TCloseParen) && !p.at(lexer.TEndOfFile) {
		rest := p.eat(lexer.TDotDotDot)
		if !p.at(lexer.TIdentifier) && !p.at(lexer.TThis) {
			return ast.TSType{}, false
		}
		name := p.lex.Identifier
		if p.at(lexer.TThis) {
			name = "this"
		}
		p.lex.Next()
		optional := p.eat(lexer.TQuestion)
		var ty ast.TSType
		if p.eat(lexer.TColon) {
			t, ok := p.tryParseTSType()
			if !ok {
				return ast.TSType{}, false
			}
			ty = t
		}
		params = append(params, ast.TSFunctionParam{Name: name, Type: ty, Optional: optional, Rest: rest})
		if !p.eat(lexer.TComma) {
			break
		}
	}
	if !p.eat(lexer.TCloseParen) {
		return ast.TSType{}, false
	}
	if !p.eat(lexer.TEqualsGreaterThan) {
		return ast.TSType{}, false
	}
	ret, ok := p.tryParseTSType()
	if !ok {
		return ast.TSType{}, false
	}
	return ast.TSType{Span: p.span(start), Data: &ast.TSFunctionType{Params: params, ReturnType: ret, TypeParams: typeParams}}, true
}

// parseTSObjectOrMappedType handles both `{ [K in Keys]: V }` mapped
// types and plain `{ a: T; b?: U }` object-literal-type shapes; the
// latter are parsed by parseTSInlineInterfaceBody into a TSObjectType
// whose members are TSInterfaceMember values.
func (p *Parser) parseTSObjectOrMappedType(start int) (ast.TSType, bool) {
	save := *p.lex
	p.lex.Next()
	readonlyMod := ast.MappedModifierNone
	if p.at(lexer.TIdentifier) && p.lex.Identifier == "readonly" {
		readonlyMod = ast.MappedModifierPlus
		p.lex.Next()
	} else if (p.at(lexer.TPlus) || p.at(lexer.TMinus)) {
		sign := ast.MappedModifierPlus
		if p.at(lexer.TMinus) {
			sign = ast.MappedModifierMinus
		}
		save2 := *p.lex
		p.lex.Next()
		if p.at(lexer.TIdentifier) && p.lex.Identifier == "readonly" {
			readonlyMod = sign
			p.lex.Next()
		} else {
			*p.lex = save2
		}
	}
	if p.at(lexer.TOpenBracket) {
		save3 := *p.lex
		p.lex.Next()
		if p.at(lexer.TIdentifier) {
			paramName := p.lex.Identifier
			p.lex.Next()
			if p.at(lexer.TIdentifier) && p.lex.Identifier == "in" {
				p.lex.Next()
				constraint, ok := p.tryParseTSType()
				if ok {
					var nameType *ast.TSType
					if p.at(lexer.TIdentifier) && p.lex.Identifier == "as" {
						p.lex.Next()
						nt := p.parseTSType()
						nameType = &nt
					}
					if p.eat(lexer.TCloseBracket) {
						optionalMod := ast.MappedModifierNone
						if p.at(lexer.TPlus) || p.at(lexer.TMinus) {
							sign := ast.MappedModifierPlus
							if p.at(lexer.TMinus) {
								sign = ast.MappedModifierMinus
							}
							p.lex.Next()
							if p.eat(lexer.TQuestion) {
								optionalMod = sign
							}
						} else if p.eat(lexer.TQuestion) {
							optionalMod = ast.MappedModifierPlus
						}
						p.expect(lexer.TColon, "\":\"")
						value, ok := p.tryParseTSType()
						if ok {
							_ = p.eat(lexer.TSemicolon)
							p.expect(lexer.TCloseBrace, "\"}\"")
							return ast.TSType{Span: p.span(start), Data: &ast.TSMappedType{
								TypeParam:   ast.TSTypeParam{Name: paramName, Constraint: &constraint},
								NameType:    nameType,
								ValueType:   value,
								ReadonlyMod: readonlyMod,
								OptionalMod: optionalMod,
							}}, true
						}
					}
				}
			}
		}
		*p.lex = save3
	}
	*p.lex = save
	return p.parseTSInlineInterfaceBody(start)
}

// parseTSInlineInterfaceBody parses `{ members... }` as an anonymous
// interface-like type, reusing TSInterfaceMember so downstream passes
// treat object-literal types and `interface` bodies uniformly.
func (p *Parser) parseTSInlineInterfaceBody(start int) (ast.TSType, bool) {
	p.lex.Next() // "{"
	members := p.parseTSInterfaceMembers()
	if !p.eat(lexer.TCloseBrace) {
		return ast.TSType{}, false
	}
	return ast.TSType{Span: p.span(start), Data: &TSObjectType{Members: members}}, true
}

// TSObjectType represents an inline `{ ... }` object type literal. It
// is kept local to the parser package's grounding of anonymous types
// rather than internal/ast because no other component needs to
// distinguish it from an unnamed interface.
type TSObjectType struct{ Members []ast.TSInterfaceMember }

func (*TSObjectType) isTSType() {}

func (p *Parser) parseTSInterfaceMembers() []ast.TSInterfaceMember {
	var members []ast.TSInterfaceMember
	for !p.at(lexer.TCloseBrace) && !p.at(lexer.TEndOfFile) {
		if p.eat(lexer.TSemicolon) || p.eat(lexer.TComma) {
			continue
		}
		members = append(members, p.parseTSInterfaceMember())
		if !p.at(lexer.TCloseBrace) {
			_ = p.eat(lexer.TSemicolon) || p.eat(lexer.TComma)
		}
	}
	return members
}

func (p *Parser) parseTSInterfaceMember() ast.TSInterfaceMember {
	var mods ast.Modifiers
	for p.at(lexer.TIdentifier) && p.lex.Identifier == "readonly" {
		save := *p.lex
		p.lex.Next()
		if p.at(lexer.TColon) || p.at(lexer.TOpenParen) || p.at(lexer.TQuestion) {
			*p.lex = save
			break
		}
		mods = append(mods, ast.Modifier{Kind: ast.ModReadonly})
	}

	if p.at(lexer.TOpenParen) || p.at(lexer.TLessThan) {
		var typeParams []ast.TSTypeParam
		if p.at(lexer.TLessThan) {
			typeParams = p.parseTypeParams()
		}
		params := p.parseTSParamsNoBody()
		var ret *ast.TSTypeAnnotation
		if p.eat(lexer.TColon) {
			t := p.parseTSType()
			ret = &ast.TSTypeAnnotation{Type: t}
		}
		_ = typeParams
		return ast.TSInterfaceMember{Kind: ast.TSInterfaceCallSignature, Params: params, TypeAnn: ret, Modifiers: mods}
	}

	if p.at(lexer.TNew) {
		p.lex.Next()
		params := p.parseTSParamsNoBody()
		var ret *ast.TSTypeAnnotation
		if p.eat(lexer.TColon) {
			t := p.parseTSType()
			ret = &ast.TSTypeAnnotation{Type: t}
		}
		return ast.TSInterfaceMember{Kind: ast.TSInterfaceConstructSignature, Params: params, TypeAnn: ret, Modifiers: mods}
	}

	if p.at(lexer.TOpenBracket) {
		save := *p.lex
		p.lex.Next()
		if p.at(lexer.TIdentifier) {
			p.lex.Next()
			if p.eat(lexer.TColon) {
				_ = p.parseTSType()
				if p.eat(lexer.TCloseBracket) {
					var ret *ast.TSTypeAnnotation
					if p.eat(lexer.TColon) {
						t := p.parseTSType()
						ret = &ast.TSTypeAnnotation{Type: t}
					}
					return ast.TSInterfaceMember{Kind: ast.TSInterfaceIndexSignature, TypeAnn: ret, Modifiers: mods}
				}
			}
		}
		*p.lex = save
	}

	kind := ast.TSInterfacePropertySignature
	if p.at(lexer.TIdentifier) && (p.lex.Identifier == "get" || p.lex.Identifier == "set") {
		save := *p.lex
		word := p.lex.Identifier
		p.lex.Next()
		if p.at(lexer.TOpenParen) || p.at(lexer.TColon) || p.at(lexer.TSemicolon) {
			*p.lex = save
		} else if word == "get" {
			kind = ast.TSInterfaceGetterSignature
		} else {
			kind = ast.TSInterfaceSetterSignature
		}
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
	} else {
		name := p.lex.Identifier
		key = ast.Expr{Span: p.span(keyStart), Data: &ast.EIdentifier{Name: name}}
		p.lex.Next()
	}
	optional := p.eat(lexer.TQuestion)

	if p.at(lexer.TOpenParen) || p.at(lexer.TLessThan) {
		if kind == ast.TSInterfacePropertySignature {
			kind = ast.TSInterfaceMethodSignature
		}
		var typeParams []ast.TSTypeParam
		if p.at(lexer.TLessThan) {
			typeParams = p.parseTypeParams()
		}
		params := p.parseTSParamsNoBody()
		var ret *ast.TSTypeAnnotation
		if p.eat(lexer.TColon) {
			t := p.parseTSType()
			ret = &ast.TSTypeAnnotation{Type: t}
		}
		_ = typeParams
		return ast.TSInterfaceMember{Kind: kind, Key: key, Computed: computed, Optional: optional, Params: params, TypeAnn: ret, Modifiers: mods}
	}

	var typeAnn *ast.TSTypeAnnotation
	if p.eat(lexer.TColon) {
		t := p.parseTSType()
		typeAnn = &ast.TSTypeAnnotation{Type: t}
	}
	return ast.TSInterfaceMember{Kind: kind, Key: key, Computed: computed, Optional: optional, TypeAnn: typeAnn, Modifiers: mods}
}

func (p *Parser) parseTSParamsNoBody() []ast.TSFunctionParam {
	p.expect(lexer.TOpenParen, "\"(\"")
	var params []ast.TSFunctionParam
	for !p.at(lexer.TCloseParen) && !p.at(lexer.TEndOfFile) {
		rest := p.eat(lexer.TDotDotDot)
		name := p.lex.Identifier
		p.lex.Next()
		optional := p.eat(lexer.TQuestion)
		var ty ast.TSType
		if p.eat(lexer.TColon) {
			ty = p.parseTSType()
		}
		params = append(params, ast.TSFunctionParam{Name: name, Type: ty, Optional: optional, Rest: rest})
		if !p.eat(lexer.TComma) {
			break
		}
	}
	p.expect(lexer.TCloseParen, "\")\"")
	return params
}

func (p *Parser) parseTypeParams() []ast.TSTypeParam {
	p.expect(lexer.TLessThan, "\"<\"")
	var params []ast.TSTypeParam
	for !p.at(lexer.TGreaterThan) && !p.at(lexer.TEndOfFile) {
		var mods ast.Modifiers
		for p.at(lexer.TIdentifier) && (p.lex.Identifier == "in" || p.lex.Identifier == "out" || p.lex.Identifier == "const") {
			word := p.lex.Identifier
			save := *p.lex
			p.lex.Next()
			if p.at(lexer.TComma) || p.at(lexer.TGreaterThan) {
				*p.lex = save
				break
			}
			kind := ast.ModIn
			if word == "out" {
				kind = ast.ModOut
			} else if word == "const" {
				kind = ast.ModConst
			}
			mods = append(mods, ast.Modifier{Kind: kind})
		}
		name := p.lex.Identifier
		p.lex.Next()
		var constraint *ast.TSType
		if p.at(lexer.TIdentifier) && p.lex.Identifier == "extends" {
			p.lex.Next()
			c := p.parseTSType()
			constraint = &c
		}
		var def *ast.TSType
		if p.eat(lexer.TEquals) {
			d := p.parseTSType()
			def = &d
		}
		params = append(params, ast.TSTypeParam{Name: name, Constraint: constraint, Default: def, Modifiers: mods})
		if !p.eat(lexer.TComma) {
			break
		}
	}
	p.closeAngleBracket()
	return params
}

func (p *Parser) parseTypeArgs() []ast.TSType {
	p.expect(lexer.TLessThan, "\"<\"")
	var args []ast.TSType
	for !p.at(lexer.TGreaterThan) && !p.at(lexer.TEndOfFile) {
		args = append(args, p.parseTSType())
		if !p.eat(lexer.TComma) {
			break
		}
	}
	p.closeAngleBracket()
	return args
}

// closeAngleBracket consumes a single ">" even when the lexer produced
// a composite token like ">>" or ">=" by splitting it in place — the
// teacher's lexer does the same for nested generic closes.
func (p *Parser) closeAngleBracket() {
	switch p.lex.Token {
	case lexer.TGreaterThan:
		p.lex.Next()
	case lexer.TGreaterThanGreaterThan, lexer.TGreaterThanGreaterThanGreaterThan,
		lexer.TGreaterThanEquals, lexer.TGreaterThanGreaterThanEquals, lexer.TGreaterThanGreaterThanGreaterThanEquals:
		p.lex.SplitGreaterThan()
	default:
		p.log.AddErrorf(p.tokenSpan(), "expected \">\"")
	}
}
