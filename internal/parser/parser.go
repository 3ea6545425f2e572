// Package parser implements the single-pass recursive-descent parser
// (component C4). It never aborts: on a syntax error it records a
// diagnostic and synthesizes a recovery node so later passes can still
// run over the rest of the file (spec §4.1).
//
// This implementation covers the statement and expression grammar of
// ES2020+ plus a representative subset of JSX and TS syntax (type
// annotations, generics on functions/classes, `as`/`satisfies`/non-null
// assertions, `<T>` assertions outside JSX). TS declaration statements
// (interface, type alias, enum, namespace, `declare`) are not parsed as
// such: a statement starting with one of those words takes the
// expression-statement path like any other identifier. It does not
// attempt every corner of the TS type grammar (e.g. nested conditional
// types with multiple `infer` sites, complex mapped-type modifier
// combinations) — those are represented in internal/ast so later
// passes can consume them, but the parser builds the common forms seen
// in real code rather than the full PEG.
package parser

import (
	"strings"

	"github.com/jsforge/jsforge/internal/arena"
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/lexer"
	"github.com/jsforge/jsforge/internal/logger"
)

// Options mirrors spec §4.1's recognized parser options.
type Options struct {
	ParseRegularExpression    bool
	AllowReturnOutsideFunction bool
	PreserveParens            bool
	AllowV8Intrinsics         bool
	JSX                       bool // enables the JSX lexical mode (spec §4.1)
}

// ModuleRecordEntry is a minimal summary of one import/export for the
// driver's module-record consumers (e.g. the linter's dependency
// check, spec §4.5).
type ModuleRecordEntry struct {
	Specifier string
	IsImport  bool
	IsExport  bool
	IsTypeOnly bool
}

type Result struct {
	Program      *ast.Program
	Comments     []ast.Comment
	ModuleRecord []ModuleRecordEntry
}

type Parser struct {
	lex     *lexer.Lexer
	log     *logger.Log
	arena   *arena.Arena
	opts    Options
	source  string
	sourceType ast.SourceType

	fnDepth      int
	moduleRecord []ModuleRecordEntry

	// recoveryDepth guards against infinite loops when a construct can't
	// make progress; see recover.go.
	recoveryDepth int
}

func Parse(ar *arena.Arena, log *logger.Log, file string, source string, sourceType ast.SourceType, opts Options) Result {
	hashbang, body := stripHashbang(source)
	lex := lexer.NewLexer(log, file, source)

	p := &Parser{lex: lex, log: log, arena: ar, opts: opts, source: source, sourceType: sourceType}

	prog := &ast.Program{SourceType: sourceType}
	if hashbang != "" {
		prog.Hashbang = &ast.Hashbang{Span: logger.Span{Len: int32(len(hashbang))}, Text: hashbang}
	}
	_ = body

	prog.Directives = p.parseDirectivePrologue()
	prog.Body = p.parseStmtListUntil(lexer.TEndOfFile)
	prog.Comments = p.lex.Comments
	prog.NodeCount = ar.NodeCount()

	return Result{Program: prog, Comments: prog.Comments, ModuleRecord: p.moduleRecord}
}

func stripHashbang(source string) (hashbang string, rest string) {
	if strings.HasPrefix(source, "#!") {
		if idx := strings.IndexByte(source, '\n'); idx >= 0 {
			return source[:idx], source[idx:]
		}
		return source, ""
	}
	return "", source
}

func (p *Parser) nextNodeID() ast.NodeID { return ast.NodeID(p.arena.NextNodeID()) }

func (p *Parser) span(start int) logger.Span {
	return logger.Span{Loc: logger.Loc{Start: int32(start)}, Len: int32(p.lex.TokenStart - start)}
}

func (p *Parser) at(t lexer.Token) bool { return p.lex.Token == t }

func (p *Parser) eat(t lexer.Token) bool {
	if p.at(t) {
		p.lex.Next()
		return true
	}
	return false
}

func (p *Parser) expect(t lexer.Token, what string) {
	if !p.eat(t) {
		p.log.AddErrorf(p.tokenSpan(), "expected %s", what)
	}
}

func (p *Parser) tokenSpan() logger.Span {
	return logger.Span{Loc: logger.Loc{Start: int32(p.lex.TokenStart)}, Len: int32(len(p.lex.Raw()))}
}

// semicolon implements automatic semicolon insertion: a ";" is
// consumed if present; otherwise ASI applies at a newline, "}", or EOF
// (spec §4.1).
func (p *Parser) semicolon() {
	if p.eat(lexer.TSemicolon) {
		return
	}
	if p.lex.HasNewlineBefore || p.at(lexer.TCloseBrace) || p.at(lexer.TEndOfFile) {
		return
	}
	p.log.AddErrorf(p.tokenSpan(), "expected \";\"")
}

func (p *Parser) parseDirectivePrologue() []string {
	var directives []string
	for p.at(lexer.TStringLiteral) {
		text := p.lex.StringValue
		save := *p.lex
		p.lex.Next()
		if !p.at(lexer.TSemicolon) && !p.lex.HasNewlineBefore && !p.at(lexer.TCloseBrace) && !p.at(lexer.TEndOfFile) {
			// Not actually a directive (e.g. was followed by ".foo") — bail
			// and rewind to the string, leaving reparse to the statement
			// parser. This mirrors the teacher's ASI-driven lookahead.
			*p.lex = save
			break
		}
		p.semicolon()
		directives = append(directives, text)
	}
	return directives
}

func (p *Parser) parseStmtListUntil(end lexer.Token) []ast.Stmt {
	var stmts []ast.Stmt
	for !p.at(end) && !p.at(lexer.TEndOfFile) {
		before := p.lex.TokenStart
		stmt := p.parseStmt()
		if p.lex.TokenStart == before {
			// No progress was made; recover by skipping one token so the
			// parser can never spin forever on a malformed file.
			recovered, keepGoing := p.recoverStmt()
			stmts = append(stmts, recovered)
			if !keepGoing {
				break
			}
			continue
		}
		p.resetRecovery()
		stmts = append(stmts, stmt)
	}
	return stmts
}
