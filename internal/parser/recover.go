package parser

import (
	"github.com/jsforge/jsforge/internal/ast"
)

// maxRecoveryDepth bounds how many consecutive no-progress recoveries a
// single statement list absorbs before giving up on the remainder of
// that list outright. Parsing a syntax error never aborts the whole
// file (spec §4.1), but a file so malformed that it can't advance even
// one token at a time for dozens of attempts in a row isn't served by
// emitting hundreds of near-identical "unexpected token" diagnostics —
// better to stop the list early and let an enclosing construct (or
// end-of-file) take over.
const maxRecoveryDepth = 64

// recoverStmt is called by parseStmtListUntil when parseStmt returned
// without consuming any input. It reports the stuck token, skips past
// it, and hands back a synthetic empty statement so the caller's
// statement slice stays well-formed and later passes see a normal
// (if padded) Program. The bool result reports whether the caller
// should keep trying: once recoveryDepth exceeds maxRecoveryDepth the
// list is abandoned rather than continuing to spin.
func (p *Parser) recoverStmt() (ast.Stmt, bool) {
	p.recoveryDepth++
	span := p.tokenSpan()
	p.log.AddErrorf(span, "unexpected token")
	p.lex.Next()
	stmt := ast.Stmt{Span: span, ID: p.nextNodeID(), Data: &ast.SEmpty{}}
	return stmt, p.recoveryDepth <= maxRecoveryDepth
}

// resetRecovery clears the no-progress counter after a statement
// parses cleanly, so a run of recoveries near the start of a file
// doesn't eat into the budget for an unrelated malformed region later
// in the same file.
func (p *Parser) resetRecovery() {
	p.recoveryDepth = 0
}
