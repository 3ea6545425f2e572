package parser

import (
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/lexer"
	"github.com/jsforge/jsforge/internal/logger"
)

func (p *Parser) parseStmt() ast.Stmt {
	start := p.lex.TokenStart
	id := p.nextNodeID()

	switch p.lex.Token {
	case lexer.TOpenBrace:
		return p.wrap(start, id, p.parseBlockData())

	case lexer.TSemicolon:
		p.lex.Next()
		return p.wrap(start, id, &ast.SEmpty{})

	case lexer.TVar, lexer.TConst:
		kind := ast.VarVar
		if p.lex.Token == lexer.TConst {
			kind = ast.VarConst
		}
		p.lex.Next()
		decl := p.parseVarDeclTail(kind)
		p.semicolon()
		return p.wrap(start, id, decl)

	case lexer.TIdentifier:
		if p.lex.Identifier == "let" && p.letStartsDeclaration() {
			p.lex.Next()
			decl := p.parseVarDeclTail(ast.VarLet)
			p.semicolon()
			return p.wrap(start, id, decl)
		}
		if p.lex.Identifier == "async" {
			// lookahead handled by parseIdentifierOrArrowOrAsync when the
			// expression statement below is parsed
		}

	case lexer.TFunction:
		p.lex.Next()
		fn := p.parseFunctionTail(false)
		return p.wrap(start, id, &ast.SFunctionDecl{Fn: fn})

	case lexer.TClass:
		p.lex.Next()
		class := p.parseClassTail()
		return p.wrap(start, id, &ast.SClassDecl{Class: class})

	case lexer.TIf:
		return p.wrap(start, id, p.parseIf())

	case lexer.TFor:
		return p.wrap(start, id, p.parseFor())

	case lexer.TWhile:
		p.lex.Next()
		p.expect(lexer.TOpenParen, "\"(\"")
		test := p.parseExpr(LLowest)
		p.expect(lexer.TCloseParen, "\")\"")
		body := p.parseStmt()
		return p.wrap(start, id, &ast.SWhile{Test: test, Body: body})

	case lexer.TDo:
		p.lex.Next()
		body := p.parseStmt()
		p.expect(lexer.TWhile, "\"while\"")
		p.expect(lexer.TOpenParen, "\"(\"")
		test := p.parseExpr(LLowest)
		p.expect(lexer.TCloseParen, "\")\"")
		p.eat(lexer.TSemicolon)
		return p.wrap(start, id, &ast.SDoWhile{Body: body, Test: test})

	case lexer.TReturn:
		p.lex.Next()
		var value *ast.Expr
		if !p.at(lexer.TSemicolon) && !p.at(lexer.TCloseBrace) && !p.at(lexer.TEndOfFile) && !p.lex.HasNewlineBefore {
			v := p.parseExpr(LLowest)
			value = &v
		}
		p.semicolon()
		return p.wrap(start, id, &ast.SReturn{Value: value})

	case lexer.TBreak:
		p.lex.Next()
		label := p.parseOptionalLabel()
		p.semicolon()
		return p.wrap(start, id, &ast.SBreak{Label: label})

	case lexer.TContinue:
		p.lex.Next()
		label := p.parseOptionalLabel()
		p.semicolon()
		return p.wrap(start, id, &ast.SContinue{Label: label})

	case lexer.TThrow:
		p.lex.Next()
		value := p.parseExpr(LLowest)
		p.semicolon()
		return p.wrap(start, id, &ast.SThrow{Value: value})

	case lexer.TTry:
		return p.wrap(start, id, p.parseTry())

	case lexer.TSwitch:
		return p.wrap(start, id, p.parseSwitch())

	case lexer.TDebugger:
		p.lex.Next()
		p.semicolon()
		return p.wrap(start, id, &ast.SDebugger{})

	case lexer.TWith:
		p.lex.Next()
		p.expect(lexer.TOpenParen, "\"(\"")
		obj := p.parseExpr(LLowest)
		p.expect(lexer.TCloseParen, "\")\"")
		body := p.parseStmt()
		return p.wrap(start, id, &ast.SWith{Object: obj, Body: body})

	case lexer.TImport:
		return p.wrap(start, id, p.parseImport())

	case lexer.TExport:
		return p.wrap(start, id, p.parseExport())
	}

	// Fall through to expression statement / labeled statement.
	expr := p.parseExpr(LLowest)
	if id2, ok := expr.Data.(*ast.EIdentifier); ok && p.at(lexer.TColon) {
		p.lex.Next()
		body := p.parseStmt()
		return p.wrap(start, id, &ast.SLabeled{Label: id2.Name, Body: body})
	}
	p.semicolon()
	return p.wrap(start, id, &ast.SExpr{Value: expr})
}

func (p *Parser) wrap(start int, id ast.NodeID, data ast.StmtData) ast.Stmt {
	return ast.Stmt{Span: p.span(start), ID: id, Data: data}
}

func (p *Parser) parseOptionalLabel() *string {
	if p.at(lexer.TIdentifier) && !p.lex.HasNewlineBefore {
		name := p.lex.Identifier
		p.lex.Next()
		return &name
	}
	return nil
}

// letStartsDeclaration looks one token ahead to distinguish `let x`
// (declaration) from `let` used as a plain identifier (legal in
// sloppy-mode code), mirroring the teacher's contextual-keyword
// handling.
func (p *Parser) letStartsDeclaration() bool {
	switch p.peekAfterIdentifier() {
	case lexer.TIdentifier, lexer.TOpenBracket, lexer.TOpenBrace:
		return true
	default:
		return false
	}
}

// peekAfterIdentifier scans ahead without consuming, by cloning the
// lexer's scan position via a throwaway lexer instance over the
// remaining source. This keeps the main lexer single-pass while still
// allowing bounded lookahead; its one caller is letStartsDeclaration
// (async and from are disambiguated by saving and restoring the lexer).
func (p *Parser) peekAfterIdentifier() lexer.Token {
	savedSource := p.lex.Source
	rest := savedSource[p.lex.TokenStart+len(p.lex.Raw()):]
	tmp := lexer.NewLexer(logger.NewLog(), "", rest)
	return tmp.Token
}

func (p *Parser) parseBlockData() *ast.SBlock {
	p.expect(lexer.TOpenBrace, "\"{\"")
	body := p.parseStmtListUntil(lexer.TCloseBrace)
	p.expect(lexer.TCloseBrace, "\"}\"")
	return &ast.SBlock{Body: body}
}

func (p *Parser) parseVarDeclTail(kind ast.VarKind) *ast.SVarDecl {
	var decls []ast.VarDeclarator
	for {
		pattern := p.parseBindingPattern()
		var init *ast.Expr
		if p.eat(lexer.TEquals) {
			v := p.parseAssignExpr()
			init = &v
		}
		decls = append(decls, ast.VarDeclarator{ID: pattern, Init: init})
		if !p.eat(lexer.TComma) {
			break
		}
	}
	return &ast.SVarDecl{Kind: kind, Declarations: decls}
}

func (p *Parser) parseIf() ast.StmtData {
	p.lex.Next()
	p.expect(lexer.TOpenParen, "\"(\"")
	test := p.parseExpr(LLowest)
	p.expect(lexer.TCloseParen, "\")\"")
	consequent := p.parseStmt()
	var alt *ast.Stmt
	if p.eat(lexer.TElse) {
		a := p.parseStmt()
		alt = &a
	}
	return &ast.SIf{Test: test, Consequent: consequent, Alternate: alt}
}

func (p *Parser) parseFor() ast.StmtData {
	p.lex.Next()
	isAwait := p.at(lexer.TIdentifier) && p.lex.Identifier == "await"
	if isAwait {
		p.lex.Next()
	}
	p.expect(lexer.TOpenParen, "\"(\"")

	var init *ForInitHolder
	if !p.at(lexer.TSemicolon) {
		init = p.parseForInit()
	}

	if init != nil && init.Decl != nil && len(init.Decl.Declarations) == 1 {
		if p.at(lexer.TIdentifier) && p.lex.Identifier == "of" {
			p.lex.Next()
			right := p.parseAssignExpr()
			p.expect(lexer.TCloseParen, "\")\"")
			body := p.parseStmt()
			return &ast.SForOf{Left: ast.ForInit{Decl: init.Decl}, Right: right, Body: body, Await: isAwait}
		}
		if p.at(lexer.TIn) {
			p.lex.Next()
			right := p.parseExpr(LLowest)
			p.expect(lexer.TCloseParen, "\")\"")
			body := p.parseStmt()
			return &ast.SForIn{Left: ast.ForInit{Decl: init.Decl}, Right: right, Body: body}
		}
	} else if init != nil && init.Expr != nil {
		if p.at(lexer.TIdentifier) && p.lex.Identifier == "of" {
			p.lex.Next()
			right := p.parseAssignExpr()
			p.expect(lexer.TCloseParen, "\")\"")
			body := p.parseStmt()
			return &ast.SForOf{Left: ast.ForInit{Expr: init.Expr}, Right: right, Body: body, Await: isAwait}
		}
		if p.at(lexer.TIn) {
			p.lex.Next()
			right := p.parseExpr(LLowest)
			p.expect(lexer.TCloseParen, "\")\"")
			body := p.parseStmt()
			return &ast.SForIn{Left: ast.ForInit{Expr: init.Expr}, Right: right, Body: body}
		}
	}

	p.expect(lexer.TSemicolon, "\";\"")
	var test *ast.Expr
	if !p.at(lexer.TSemicolon) {
		t := p.parseExpr(LLowest)
		test = &t
	}
	p.expect(lexer.TSemicolon, "\";\"")
	var update *ast.Expr
	if !p.at(lexer.TCloseParen) {
		u := p.parseExpr(LLowest)
		update = &u
	}
	p.expect(lexer.TCloseParen, "\")\"")
	body := p.parseStmt()

	var forInit *ast.ForInit
	if init != nil {
		forInit = &ast.ForInit{Decl: init.Decl, Expr: init.Expr}
	}
	return &ast.SFor{Init: forInit, Test: test, Update: update, Body: body}
}

// ForInitHolder distinguishes "no init", "declaration init", and
// "expression init" while the for-head is still ambiguous between a
// C-style for and a for-in/for-of loop.
type ForInitHolder struct {
	Decl *ast.SVarDecl
	Expr *ast.Expr
}

func (p *Parser) parseForInit() *ForInitHolder {
	switch p.lex.Token {
	case lexer.TVar:
		p.lex.Next()
		return &ForInitHolder{Decl: p.parseVarDeclTail(ast.VarVar)}
	case lexer.TConst:
		p.lex.Next()
		return &ForInitHolder{Decl: p.parseVarDeclTail(ast.VarConst)}
	case lexer.TIdentifier:
		if p.lex.Identifier == "let" && p.letStartsDeclaration() {
			p.lex.Next()
			return &ForInitHolder{Decl: p.parseVarDeclTail(ast.VarLet)}
		}
	}
	e := p.parseExpr(LLowest)
	return &ForInitHolder{Expr: &e}
}

func (p *Parser) parseTry() ast.StmtData {
	p.lex.Next()
	block := p.parseBlockData()
	var catch *ast.CatchClause
	if p.eat(lexer.TCatch) {
		var param *ast.Pattern
		if p.eat(lexer.TOpenParen) {
			pat := p.parseBindingPattern()
			param = &pat
			p.expect(lexer.TCloseParen, "\")\"")
		}
		body := p.parseBlockData()
		catch = &ast.CatchClause{Param: param, Body: *body}
	}
	var finally *ast.SBlock
	if p.eat(lexer.TFinally) {
		finally = p.parseBlockData()
	}
	return &ast.STry{Block: *block, Catch: catch, Finally: finally}
}

func (p *Parser) parseSwitch() ast.StmtData {
	p.lex.Next()
	p.expect(lexer.TOpenParen, "\"(\"")
	disc := p.parseExpr(LLowest)
	p.expect(lexer.TCloseParen, "\")\"")
	p.expect(lexer.TOpenBrace, "\"{\"")
	var cases []ast.SwitchCase
	for !p.at(lexer.TCloseBrace) && !p.at(lexer.TEndOfFile) {
		var test *ast.Expr
		if p.eat(lexer.TCase) {
			t := p.parseExpr(LLowest)
			test = &t
		} else {
			p.expect(lexer.TDefault, "\"default\"")
		}
		p.expect(lexer.TColon, "\":\"")
		var body []ast.Stmt
		for !p.at(lexer.TCase) && !p.at(lexer.TDefault) && !p.at(lexer.TCloseBrace) && !p.at(lexer.TEndOfFile) {
			body = append(body, p.parseStmt())
		}
		cases = append(cases, ast.SwitchCase{Test: test, Body: body})
	}
	p.expect(lexer.TCloseBrace, "\"}\"")
	return &ast.SSwitch{Discriminant: disc, Cases: cases}
}

func (p *Parser) parseImport() ast.StmtData {
	p.lex.Next()
	decl := &ast.SImportDecl{}
	if p.at(lexer.TIdentifier) && p.lex.Identifier == "type" {
		// could be `import type ...` or a default import literally named "type"
		save := *p.lex
		p.lex.Next()
		if p.at(lexer.TOpenBrace) || (p.at(lexer.TIdentifier) && p.lex.Identifier != "from") {
			decl.IsTypeOnly = true
		} else {
			*p.lex = save
		}
	}
	if p.at(lexer.TStringLiteral) {
		decl.Source = p.lex.StringValue
		p.lex.Next()
		p.semicolon()
		p.recordModule(decl.Source, true, decl.IsTypeOnly)
		return decl
	}
	if p.at(lexer.TIdentifier) {
		decl.Specifiers = append(decl.Specifiers, ast.ImportSpecifier{Local: p.lex.Identifier, IsDefault: true})
		p.lex.Next()
		p.eat(lexer.TComma)
	}
	if p.eat(lexer.TAsterisk) {
		if p.at(lexer.TIdentifier) && p.lex.Identifier == "as" {
			p.lex.Next()
		}
		local := p.lex.Identifier
		p.lex.Next()
		decl.Specifiers = append(decl.Specifiers, ast.ImportSpecifier{Local: local, IsNamespace: true})
	} else if p.eat(lexer.TOpenBrace) {
		for !p.at(lexer.TCloseBrace) && !p.at(lexer.TEndOfFile) {
			spec := ast.ImportSpecifier{}
			name := p.lex.Identifier
			p.lex.Next()
			spec.Imported = name
			spec.Local = name
			if p.at(lexer.TIdentifier) && p.lex.Identifier == "as" {
				p.lex.Next()
				spec.Local = p.lex.Identifier
				p.lex.Next()
			}
			decl.Specifiers = append(decl.Specifiers, spec)
			if !p.eat(lexer.TComma) {
				break
			}
		}
		p.expect(lexer.TCloseBrace, "\"}\"")
	}
	if p.at(lexer.TIdentifier) && p.lex.Identifier == "from" {
		p.lex.Next()
	}
	if p.at(lexer.TStringLiteral) {
		decl.Source = p.lex.StringValue
		p.lex.Next()
	}
	p.semicolon()
	p.recordModule(decl.Source, true, decl.IsTypeOnly)
	return decl
}

func (p *Parser) recordModule(specifier string, isImport bool, typeOnly bool) {
	p.moduleRecord = append(p.moduleRecord, ModuleRecordEntry{Specifier: specifier, IsImport: isImport, IsTypeOnly: typeOnly})
}

func (p *Parser) parseExport() ast.StmtData {
	p.lex.Next()
	if p.eat(lexer.TDefault) {
		expr := p.parseAssignExpr()
		p.eat(lexer.TSemicolon)
		return &ast.SExportDefaultDecl{Decl: expr}
	}
	if p.eat(lexer.TAsterisk) {
		var alias *string
		if p.at(lexer.TIdentifier) && p.lex.Identifier == "as" {
			p.lex.Next()
			a := p.lex.Identifier
			p.lex.Next()
			alias = &a
		}
		if p.at(lexer.TIdentifier) && p.lex.Identifier == "from" {
			p.lex.Next()
		}
		source := p.lex.StringValue
		p.eat(lexer.TStringLiteral)
		p.semicolon()
		p.recordModule(source, false, false)
		return &ast.SExportAllDecl{Source: source, Alias: alias}
	}
	isTypeOnly := false
	if p.at(lexer.TIdentifier) && p.lex.Identifier == "type" {
		save := *p.lex
		p.lex.Next()
		if p.at(lexer.TOpenBrace) {
			isTypeOnly = true
		} else {
			*p.lex = save
		}
	}
	if p.eat(lexer.TOpenBrace) {
		var specs []ast.ExportSpecifier
		for !p.at(lexer.TCloseBrace) && !p.at(lexer.TEndOfFile) {
			local := p.lex.Identifier
			p.lex.Next()
			exported := local
			if p.at(lexer.TIdentifier) && p.lex.Identifier == "as" {
				p.lex.Next()
				exported = p.lex.Identifier
				p.lex.Next()
			}
			specs = append(specs, ast.ExportSpecifier{Local: local, Exported: exported})
			if !p.eat(lexer.TComma) {
				break
			}
		}
		p.expect(lexer.TCloseBrace, "\"}\"")
		var source *string
		if p.at(lexer.TIdentifier) && p.lex.Identifier == "from" {
			p.lex.Next()
			s := p.lex.StringValue
			p.eat(lexer.TStringLiteral)
			source = &s
			p.recordModule(s, false, isTypeOnly)
		}
		p.semicolon()
		return &ast.SExportNamedDecl{Specifiers: specs, Source: source, IsTypeOnly: isTypeOnly}
	}
	// export <decl>
	decl := p.parseStmt()
	return &ast.SExportNamedDecl{Decl: &decl}
}
