package parser

import (
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/lexer"
)

// L is the binding-power table used for precedence-climbing expression
// parsing, matching the ordering of spec §3.2's operator families
// (and the teacher's internal/js_ast.L enum).
type L uint8

const (
	LLowest L = iota
	LComma
	LSpread
	LYield
	LAssign
	LConditional
	LNullishCoalescing
	LLogicalOr
	LLogicalAnd
	LBitwiseOr
	LBitwiseXor
	LBitwiseAnd
	LEquals
	LCompare
	LShift
	LAdd
	LMultiply
	LExponentiation
	LPrefix
	LPostfix
	LNew
	LCall
	LMember
)

type binopInfo struct {
	level L
	logical *ast.LogicalOp
	binary  *ast.BinaryOp
	rightAssoc bool
}

func binopFor(t lexer.Token) (binopInfo, bool) {
	logOp := func(op ast.LogicalOp) *ast.LogicalOp { return &op }
	binOp := func(op ast.BinaryOp) *ast.BinaryOp { return &op }
	switch t {
	case lexer.TBarBar:
		return binopInfo{level: LLogicalOr, logical: logOp(ast.LogicalOpOr)}, true
	case lexer.TAmpersandAmpersand:
		return binopInfo{level: LLogicalAnd, logical: logOp(ast.LogicalOpAnd)}, true
	case lexer.TQuestionQuestion:
		return binopInfo{level: LNullishCoalescing, logical: logOp(ast.LogicalOpNullishCoalescing)}, true
	case lexer.TBar:
		return binopInfo{level: LBitwiseOr, binary: binOp(ast.BinOpBitwiseOr)}, true
	case lexer.TCaret:
		return binopInfo{level: LBitwiseXor, binary: binOp(ast.BinOpBitwiseXor)}, true
	case lexer.TAmpersand:
		return binopInfo{level: LBitwiseAnd, binary: binOp(ast.BinOpBitwiseAnd)}, true
	case lexer.TEqualsEquals:
		return binopInfo{level: LEquals, binary: binOp(ast.BinOpLooseEq)}, true
	case lexer.TExclamationEquals:
		return binopInfo{level: LEquals, binary: binOp(ast.BinOpLooseNe)}, true
	case lexer.TEqualsEqualsEquals:
		return binopInfo{level: LEquals, binary: binOp(ast.BinOpStrictEq)}, true
	case lexer.TExclamationEqualsEquals:
		return binopInfo{level: LEquals, binary: binOp(ast.BinOpStrictNe)}, true
	case lexer.TLessThan:
		return binopInfo{level: LCompare, binary: binOp(ast.BinOpLt)}, true
	case lexer.TLessThanEquals:
		return binopInfo{level: LCompare, binary: binOp(ast.BinOpLe)}, true
	case lexer.TGreaterThan:
		return binopInfo{level: LCompare, binary: binOp(ast.BinOpGt)}, true
	case lexer.TGreaterThanEquals:
		return binopInfo{level: LCompare, binary: binOp(ast.BinOpGe)}, true
	case lexer.TIn:
		return binopInfo{level: LCompare, binary: binOp(ast.BinOpIn)}, true
	case lexer.TInstanceof:
		return binopInfo{level: LCompare, binary: binOp(ast.BinOpInstanceof)}, true
	case lexer.TLessThanLessThan:
		return binopInfo{level: LShift, binary: binOp(ast.BinOpShl)}, true
	case lexer.TGreaterThanGreaterThan:
		return binopInfo{level: LShift, binary: binOp(ast.BinOpShr)}, true
	case lexer.TGreaterThanGreaterThanGreaterThan:
		return binopInfo{level: LShift, binary: binOp(ast.BinOpUShr)}, true
	case lexer.TPlus:
		return binopInfo{level: LAdd, binary: binOp(ast.BinOpAdd)}, true
	case lexer.TMinus:
		return binopInfo{level: LAdd, binary: binOp(ast.BinOpSub)}, true
	case lexer.TAsterisk:
		return binopInfo{level: LMultiply, binary: binOp(ast.BinOpMul)}, true
	case lexer.TSlash:
		return binopInfo{level: LMultiply, binary: binOp(ast.BinOpDiv)}, true
	case lexer.TPercent:
		return binopInfo{level: LMultiply, binary: binOp(ast.BinOpMod)}, true
	case lexer.TAsteriskAsterisk:
		return binopInfo{level: LExponentiation, binary: binOp(ast.BinOpPow), rightAssoc: true}, true
	}
	return binopInfo{}, false
}

var assignOps = map[lexer.Token]ast.AssignOp{
	lexer.TEquals:                            ast.AssignOpAssign,
	lexer.TPlusEquals:                        ast.AssignOpAdd,
	lexer.TMinusEquals:                       ast.AssignOpSub,
	lexer.TAsteriskEquals:                    ast.AssignOpMul,
	lexer.TSlashEquals:                       ast.AssignOpDiv,
	lexer.TPercentEquals:                     ast.AssignOpMod,
	lexer.TAsteriskAsteriskEquals:            ast.AssignOpPow,
	lexer.TLessThanLessThanEquals:            ast.AssignOpShl,
	lexer.TGreaterThanGreaterThanEquals:      ast.AssignOpShr,
	lexer.TGreaterThanGreaterThanGreaterThanEquals: ast.AssignOpUShr,
	lexer.TAmpersandEquals:                   ast.AssignOpBitwiseAnd,
	lexer.TBarEquals:                         ast.AssignOpBitwiseOr,
	lexer.TCaretEquals:                       ast.AssignOpBitwiseXor,
	lexer.TAmpersandAmpersandEquals:          ast.AssignOpLogicalAnd,
	lexer.TBarBarEquals:                      ast.AssignOpLogicalOr,
	lexer.TQuestionQuestionEquals:            ast.AssignOpNullishCoalescing,
}

func (p *Parser) parseExpr(minLevel L) ast.Expr {
	expr := p.parseAssignExpr()
	for p.at(lexer.TComma) && minLevel <= LComma {
		start := expr.Span.Loc.Start
		p.lex.Next()
		next := p.parseAssignExpr()
		if seq, ok := expr.Data.(*ast.ESequence); ok {
			seq.Expressions = append(seq.Expressions, next)
		} else {
			expr = ast.Expr{Span: p.span(int(start)), ID: p.nextNodeID(), Data: &ast.ESequence{Expressions: []ast.Expr{expr, next}}}
		}
	}
	return expr
}

func (p *Parser) parseAssignExpr() ast.Expr {
	start := p.lex.TokenStart
	left := p.parseConditional()
	if op, ok := assignOps[p.lex.Token]; ok {
		p.lex.Next()
		right := p.parseAssignExpr()
		return ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.EAssign{Op: op, Target: left, Value: right}}
	}
	return left
}

func (p *Parser) parseConditional() ast.Expr {
	start := p.lex.TokenStart
	test := p.parseBinary(LLowest)
	if p.eat(lexer.TQuestion) {
		cons := p.parseAssignExpr()
		p.expect(lexer.TColon, "\":\"")
		alt := p.parseAssignExpr()
		return ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.EConditional{Test: test, Consequent: cons, Alternate: alt}}
	}
	return test
}

func (p *Parser) parseBinary(minLevel L) ast.Expr {
	start := p.lex.TokenStart
	left := p.parseUnary()
	for {
		// TS "as"/"satisfies" bind at relational precedence.
		if p.at(lexer.TIdentifier) && (p.lex.Identifier == "as" || p.lex.Identifier == "satisfies") && LCompare >= minLevel {
			isSatisfies := p.lex.Identifier == "satisfies"
			p.lex.Next()
			ty := p.parseTSType()
			if isSatisfies {
				left = ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.ETSSatisfies{Value: left, Type: ty}}
			} else {
				left = ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.ETSAs{Value: left, Type: ty}}
			}
			continue
		}
		info, ok := binopFor(p.lex.Token)
		if !ok || info.level < minLevel {
			break
		}
		p.lex.Next()
		nextMin := info.level + 1
		if info.rightAssoc {
			nextMin = info.level
		}
		right := p.parseBinary(nextMin)
		if info.logical != nil {
			left = ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.ELogical{Op: *info.logical, Left: left, Right: right}}
		} else {
			left = ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.EBinary{Op: *info.binary, Left: left, Right: right}}
		}
	}
	return left
}

var unaryOps = map[lexer.Token]ast.UnaryOp{
	lexer.TPlus:   ast.UnOpPos,
	lexer.TMinus:  ast.UnOpNeg,
	lexer.TTilde:  ast.UnOpCpl,
	lexer.TExclamation: ast.UnOpNot,
}

func (p *Parser) parseUnary() ast.Expr {
	start := p.lex.TokenStart
	switch p.lex.Token {
	case lexer.TPlusPlus, lexer.TMinusMinus:
		op := ast.UnOpPreInc
		if p.lex.Token == lexer.TMinusMinus {
			op = ast.UnOpPreDec
		}
		p.lex.Next()
		value := p.parseUnary()
		return ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.EUnary{Op: op, Value: value, Prefix: true}}
	case lexer.TPlus, lexer.TMinus, lexer.TTilde, lexer.TExclamation:
		op := unaryOps[p.lex.Token]
		p.lex.Next()
		value := p.parseUnary()
		return ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.EUnary{Op: op, Value: value, Prefix: true}}
	case lexer.TTypeof:
		p.lex.Next()
		value := p.parseUnary()
		return ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.EUnary{Op: ast.UnOpTypeof, Value: value, Prefix: true}}
	case lexer.TVoid:
		p.lex.Next()
		value := p.parseUnary()
		return ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.EUnary{Op: ast.UnOpVoid, Value: value, Prefix: true}}
	case lexer.TDelete:
		p.lex.Next()
		value := p.parseUnary()
		return ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.EUnary{Op: ast.UnOpDelete, Value: value, Prefix: true}}
	}
	if p.at(lexer.TIdentifier) && p.lex.Identifier == "await" {
		p.lex.Next()
		value := p.parseUnary()
		return ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.EAwait{Value: value}}
	}
	if p.at(lexer.TLessThan) && !p.opts.JSX {
		// TS angle-bracket type assertion `<T>expr` — only outside JSX-mode
		// files; callers that need JSX should prefer `as` instead.
		save := *p.lex
		p.lex.Next()
		if ty, ok := p.tryParseTSType(); ok && p.eat(lexer.TGreaterThan) {
			value := p.parseUnary()
			return ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.ETSTypeAssertion{Type: ty, Value: value}}
		}
		*p.lex = save
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	start := p.lex.TokenStart
	expr := p.parseCallTail(p.parsePrimary(), start)
	if (p.at(lexer.TPlusPlus) || p.at(lexer.TMinusMinus)) && !p.lex.HasNewlineBefore {
		op := ast.UnOpPostInc
		if p.at(lexer.TMinusMinus) {
			op = ast.UnOpPostDec
		}
		p.lex.Next()
		expr = ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.EUnary{Op: op, Value: expr, Prefix: false}}
	}
	if p.at(lexer.TExclamation) && !p.lex.HasNewlineBefore {
		p.lex.Next()
		expr = ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.ETSNonNull{Value: expr}}
		expr = p.parseCallTail(expr, start)
	}
	return expr
}

func (p *Parser) parseCallTail(expr ast.Expr, start int) ast.Expr {
	for {
		switch {
		case p.at(lexer.TDot):
			p.lex.Next()
			name := p.lex.Identifier
			nameStart := p.lex.TokenStart
			p.lex.Next()
			prop := ast.Expr{Span: p.span(nameStart), ID: p.nextNodeID(), Data: &ast.EIdentifier{Name: name}}
			expr = ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.EMember{Object: expr, Property: prop}}
		case p.at(lexer.TQuestionDot):
			p.lex.Next()
			if p.at(lexer.TOpenParen) {
				args := p.parseArgs()
				expr = ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.ECall{Callee: expr, Args: args, Optional: true}}
				continue
			}
			if p.at(lexer.TOpenBracket) {
				p.lex.Next()
				prop := p.parseExpr(LLowest)
				p.expect(lexer.TCloseBracket, "\"]\"")
				expr = ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.EMember{Object: expr, Property: prop, Computed: true, Optional: true}}
				continue
			}
			name := p.lex.Identifier
			nameStart := p.lex.TokenStart
			p.lex.Next()
			prop := ast.Expr{Span: p.span(nameStart), ID: p.nextNodeID(), Data: &ast.EIdentifier{Name: name}}
			expr = ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.EMember{Object: expr, Property: prop, Optional: true}}
		case p.at(lexer.TOpenBracket):
			p.lex.Next()
			prop := p.parseExpr(LLowest)
			p.expect(lexer.TCloseBracket, "\"]\"")
			expr = ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.EMember{Object: expr, Property: prop, Computed: true}}
		case p.at(lexer.TOpenParen):
			args := p.parseArgs()
			expr = ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.ECall{Callee: expr, Args: args}}
		case p.at(lexer.TNoSubstitutionTemplateLiteral) || p.at(lexer.TTemplateHead):
			tpl := p.parseTemplateLiteral()
			expr = ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.ETemplate{Tag: exprPtr(expr), Tpl: tpl}}
		default:
			return expr
		}
	}
}

func exprPtr(e ast.Expr) *ast.Expr { return &e }

func (p *Parser) parseArgs() []ast.Argument {
	p.expect(lexer.TOpenParen, "\"(\"")
	var args []ast.Argument
	for !p.at(lexer.TCloseParen) && !p.at(lexer.TEndOfFile) {
		spread := p.eat(lexer.TDotDotDot)
		v := p.parseAssignExpr()
		args = append(args, ast.Argument{Value: v, Spread: spread})
		if !p.eat(lexer.TComma) {
			break
		}
	}
	p.expect(lexer.TCloseParen, "\")\"")
	return args
}

func (p *Parser) parseTemplateLiteral() ast.TemplateLiteral {
	var tpl ast.TemplateLiteral
	tpl.Quasis = append(tpl.Quasis, ast.TemplatePart{Cooked: p.lex.StringValue, Raw: p.lex.Raw()})
	if p.at(lexer.TNoSubstitutionTemplateLiteral) {
		p.lex.Next()
		return tpl
	}
	p.lex.Next() // consume TTemplateHead
	for {
		e := p.parseExpr(LLowest)
		tpl.Exprs = append(tpl.Exprs, e)
		p.lex.ResumeTemplate()
		tpl.Quasis = append(tpl.Quasis, ast.TemplatePart{Cooked: p.lex.StringValue, Raw: p.lex.Raw()})
		if p.at(lexer.TTemplateTail) {
			p.lex.Next()
			return tpl
		}
		p.lex.Next() // consume TTemplateMiddle
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	start := p.lex.TokenStart
	id := p.nextNodeID()

	switch p.lex.Token {
	case lexer.TNumericLiteral:
		v := p.lex.Number
		p.lex.Next()
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.ENumber{Value: v}}
	case lexer.TBigIntLiteral:
		v := p.lex.BigIntText
		p.lex.Next()
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.EBigInt{Raw: v}}
	case lexer.TStringLiteral:
		v := p.lex.StringValue
		p.lex.Next()
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.EString{Value: v}}
	case lexer.TNoSubstitutionTemplateLiteral, lexer.TTemplateHead:
		tpl := p.parseTemplateLiteral()
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.ETemplate{Tpl: tpl}}
	case lexer.TTrue:
		p.lex.Next()
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.EBoolean{Value: true}}
	case lexer.TFalse:
		p.lex.Next()
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.EBoolean{Value: false}}
	case lexer.TNull:
		p.lex.Next()
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.ENull{}}
	case lexer.TThis:
		p.lex.Next()
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.EThis{}}
	case lexer.TSuper:
		p.lex.Next()
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.ESuper{}}
	case lexer.TSlash, lexer.TSlashEquals:
		p.lex.RescanSlashAsRegExp()
		pattern, flags := p.lex.RegExpPattern, p.lex.RegExpFlags
		p.lex.Next()
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.ERegExp{Pattern: pattern, Flags: flags}}
	case lexer.TPrivateIdentifier:
		name := p.lex.Identifier
		p.lex.Next()
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.EPrivateIdentifier{Name: "#" + name}}
	case lexer.TFunction:
		p.lex.Next()
		fn := p.parseFunctionTail(true)
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.EFunction{Fn: fn}}
	case lexer.TClass:
		p.lex.Next()
		class := p.parseClassTail()
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.EClass{Class: class}}
	case lexer.TNew:
		p.lex.Next()
		if p.at(lexer.TDot) {
			p.lex.Next()
			p.lex.Next() // "target"
			return ast.Expr{Span: p.span(start), ID: id, Data: &ast.ENewTarget{}}
		}
		callee := p.parseMemberOnlyTail(p.parsePrimary(), start)
		var args []ast.Argument
		if p.at(lexer.TOpenParen) {
			args = p.parseArgs()
		}
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.ENew{Callee: callee, Args: args}}
	case lexer.TOpenBracket:
		return p.parseArrayLiteral(start, id)
	case lexer.TOpenBrace:
		return p.parseObjectLiteral(start, id)
	case lexer.TOpenParen:
		return p.parseParenOrArrow(start, id)
	case lexer.TIdentifier:
		return p.parseIdentifierOrArrowOrAsync(start, id)
	case lexer.TLessThan:
		if p.opts.JSX {
			e := p.parseJSXElementOrFragment(start, id)
			p.lex.Next()
			return e
		}
	}

	if p.lex.Token >= lexer.TBreak {
		// A reserved word used where an identifier was expected — recover
		// by treating it as an identifier so the rest of the file can
		// still be analyzed, per spec §4.1's "never fails catastrophically".
		name := p.lex.Raw()
		p.log.AddErrorf(p.tokenSpan(), "unexpected reserved word")
		p.lex.Next()
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.EIdentifier{Name: name}}
	}

	p.log.AddErrorf(p.tokenSpan(), "unexpected token in expression")
	p.lex.Next()
	return ast.Expr{Span: p.span(start), ID: id, Data: &ast.EIdentifier{Name: "(error)"}}
}

func (p *Parser) parseMemberOnlyTail(expr ast.Expr, start int) ast.Expr {
	for {
		if p.at(lexer.TDot) {
			p.lex.Next()
			name := p.lex.Identifier
			nameStart := p.lex.TokenStart
			p.lex.Next()
			prop := ast.Expr{Span: p.span(nameStart), ID: p.nextNodeID(), Data: &ast.EIdentifier{Name: name}}
			expr = ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.EMember{Object: expr, Property: prop}}
			continue
		}
		if p.at(lexer.TOpenBracket) {
			p.lex.Next()
			prop := p.parseExpr(LLowest)
			p.expect(lexer.TCloseBracket, "\"]\"")
			expr = ast.Expr{Span: p.span(start), ID: p.nextNodeID(), Data: &ast.EMember{Object: expr, Property: prop, Computed: true}}
			continue
		}
		return expr
	}
}

func (p *Parser) parseArrayLiteral(start int, id ast.NodeID) ast.Expr {
	p.lex.Next()
	var elements []ast.ArrayElement
	for !p.at(lexer.TCloseBracket) && !p.at(lexer.TEndOfFile) {
		if p.at(lexer.TComma) {
			elements = append(elements, ast.ArrayElement{Hole: true})
			p.lex.Next()
			continue
		}
		spread := p.eat(lexer.TDotDotDot)
		v := p.parseAssignExpr()
		elements = append(elements, ast.ArrayElement{Value: v, Spread: spread})
		if !p.eat(lexer.TComma) {
			break
		}
	}
	p.expect(lexer.TCloseBracket, "\"]\"")
	return ast.Expr{Span: p.span(start), ID: id, Data: &ast.EArray{Elements: elements}}
}

func (p *Parser) parseObjectLiteral(start int, id ast.NodeID) ast.Expr {
	p.lex.Next()
	var props []ast.ObjectProperty
	for !p.at(lexer.TCloseBrace) && !p.at(lexer.TEndOfFile) {
		if p.eat(lexer.TDotDotDot) {
			v := p.parseAssignExpr()
			props = append(props, ast.ObjectProperty{Kind: ast.PropertySpread, Value: v})
			if !p.eat(lexer.TComma) {
				break
			}
			continue
		}
		async, generator := false, false
		if p.at(lexer.TIdentifier) && p.lex.Identifier == "async" {
			save := *p.lex
			p.lex.Next()
			if p.at(lexer.TCloseBrace) || p.at(lexer.TComma) || p.at(lexer.TColon) || p.at(lexer.TOpenParen) {
				*p.lex = save
			} else {
				async = true
			}
		}
		generator = p.eat(lexer.TAsterisk)
		kind := ast.PropertyInit
		if p.at(lexer.TIdentifier) && (p.lex.Identifier == "get" || p.lex.Identifier == "set") {
			save := *p.lex
			word := p.lex.Identifier
			p.lex.Next()
			if p.at(lexer.TCloseBrace) || p.at(lexer.TComma) || p.at(lexer.TColon) || p.at(lexer.TOpenParen) {
				*p.lex = save
			} else if word == "get" {
				kind = ast.PropertyGet
			} else {
				kind = ast.PropertySet
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
		} else if p.at(lexer.TNumericLiteral) {
			key = ast.Expr{Span: p.span(keyStart), Data: &ast.ENumber{Value: p.lex.Number}}
			p.lex.Next()
		} else {
			name := p.lex.Identifier
			key = ast.Expr{Span: p.span(keyStart), Data: &ast.EIdentifier{Name: name}}
			p.lex.Next()
		}

		if p.at(lexer.TOpenParen) || kind == ast.PropertyGet || kind == ast.PropertySet {
			fn := p.parseFunctionTail(true)
			fn.Async, fn.Generator = async, generator
			if kind == ast.PropertyInit {
				kind = ast.PropertyMethod
			}
			props = append(props, ast.ObjectProperty{Kind: kind, Key: key, Value: ast.Expr{Data: &ast.EFunction{Fn: fn}}, Computed: computed, Async: async, Generator: generator})
		} else if p.eat(lexer.TColon) {
			v := p.parseAssignExpr()
			props = append(props, ast.ObjectProperty{Kind: ast.PropertyInit, Key: key, Value: v, Computed: computed})
		} else {
			// shorthand, possibly with a default (only legal in a pattern
			// context, but accepted here and resolved by the caller).
			var v ast.Expr
			if p.eat(lexer.TEquals) {
				v = p.parseAssignExpr()
			} else {
				v = key
			}
			props = append(props, ast.ObjectProperty{Kind: ast.PropertyInit, Key: key, Value: v, Shorthand: true})
		}
		if !p.eat(lexer.TComma) {
			break
		}
	}
	p.expect(lexer.TCloseBrace, "\"}\"")
	return ast.Expr{Span: p.span(start), ID: id, Data: &ast.EObject{Properties: props}}
}

func (p *Parser) parseIdentifierOrArrowOrAsync(start int, id ast.NodeID) ast.Expr {
	name := p.lex.Identifier
	if name == "async" {
		save := *p.lex
		p.lex.Next()
		if !p.lex.HasNewlineBefore && p.at(lexer.TFunction) {
			p.lex.Next()
			fn := p.parseFunctionTail(true)
			fn.Async = true
			return ast.Expr{Span: p.span(start), ID: id, Data: &ast.EFunction{Fn: fn}}
		}
		if !p.lex.HasNewlineBefore && (p.at(lexer.TIdentifier) || p.at(lexer.TOpenParen)) {
			if arrow, ok := p.tryParseArrow(start, id, true); ok {
				return arrow
			}
		}
		*p.lex = save
	}
	if arrow, ok := p.tryParseArrow(start, id, false); ok {
		return arrow
	}
	p.lex.Next()
	return ast.Expr{Span: p.span(start), ID: id, Data: &ast.EIdentifier{Name: name}}
}

// tryParseArrow attempts `ident =>` or `(params) =>`. On failure it
// restores lexer state and returns false so the caller can fall back
// to parsing a plain identifier or parenthesized expression.
func (p *Parser) tryParseArrow(start int, id ast.NodeID, async bool) (ast.Expr, bool) {
	save := *p.lex
	var params []ast.Param
	if p.at(lexer.TIdentifier) {
		name := p.lex.Identifier
		nameStart := p.lex.TokenStart
		p.lex.Next()
		if !p.at(lexer.TEqualsGreaterThan) {
			*p.lex = save
			return ast.Expr{}, false
		}
		params = []ast.Param{{Pattern: ast.Pattern{Span: p.span(nameStart), Data: &ast.PIdentifier{Name: name}}}}
	} else if p.at(lexer.TOpenParen) {
		ok := false
		params, ok = p.tryParseParenParamList()
		if !ok || !p.at(lexer.TEqualsGreaterThan) {
			*p.lex = save
			return ast.Expr{}, false
		}
	} else {
		return ast.Expr{}, false
	}
	p.lex.Next() // consume "=>"
	body := p.parseArrowBody()
	return ast.Expr{Span: p.span(start), ID: id, Data: &ast.EArrow{Params: params, Body: body, Async: async}}, true
}

func (p *Parser) tryParseParenParamList() ([]ast.Param, bool) {
	p.lex.Next() // consume "("
	var params []ast.Param
	for !p.at(lexer.TCloseParen) && !p.at(lexer.TEndOfFile) {
		rest := p.eat(lexer.TDotDotDot)
		pat := p.parseBindingPattern()
		var def *ast.Expr
		if p.eat(lexer.TEquals) {
			v := p.parseAssignExpr()
			def = &v
		}
		params = append(params, ast.Param{Pattern: pat, DefaultValue: def, Rest: rest})
		if !p.eat(lexer.TComma) {
			break
		}
	}
	if !p.eat(lexer.TCloseParen) {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseArrowBody() ast.ArrowBody {
	if p.at(lexer.TOpenBrace) {
		block := p.parseBlockData()
		return ast.ArrowBody{Block: &ast.FunctionBody{Stmts: block.Body}}
	}
	e := p.parseAssignExpr()
	return ast.ArrowBody{Expr: &e}
}

// parseParenOrArrow handles "(" that might open a parenthesized
// expression or an arrow-function parameter list; it speculatively
// tries the arrow form first and falls back on failure.
func (p *Parser) parseParenOrArrow(start int, id ast.NodeID) ast.Expr {
	if arrow, ok := p.tryParseArrow(start, id, false); ok {
		return arrow
	}
	p.lex.Next()
	inner := p.parseExpr(LLowest)
	p.expect(lexer.TCloseParen, "\")\"")
	if p.opts.PreserveParens {
		return ast.Expr{Span: p.span(start), ID: id, Data: &ast.EParenthesized{Value: inner}}
	}
	return inner
}
