package semantic

import "github.com/jsforge/jsforge/internal/ast"

// loopCtx tracks where "break"/"continue" land for one enclosing
// loop or switch. A switch has a break target but no continue target
// (continuing into a switch isn't valid JS, so hasContinue stays
// false and such a continue simply produces no edge).
type loopCtx struct {
	label          string
	hasContinue    bool
	continueTarget BlockID
	breakTarget    BlockID
}

type loopTarget struct {
	valid bool
	block BlockID
}

// tryCtx tracks the nearest enclosing handler/finally so a throwing
// statement can be wired to it (spec §4.2's "exceptions produce edges
// from every potentially-throwing instruction to the nearest enclosing
// handler or function exit" — here simplified to block granularity per
// DESIGN.md's resolved CFG open question).
type tryCtx struct {
	catchTarget   BlockID
	hasCatch      bool
	finallyTarget BlockID
	hasFinally    bool
}

type cfgBuilder struct {
	cfg          *CFG
	current      BlockID
	loops        []loopCtx
	tries        []tryCtx
	pendingLabel string
}

// buildCFG builds one function/module-level control-flow graph over a
// statement list (spec §4.2). owner identifies the Function or
// Program node this graph belongs to.
func buildCFG(owner ast.NodeID, stmts []ast.Stmt) *CFG {
	cfg := newCFG(owner)
	b := &cfgBuilder{cfg: cfg, current: cfg.Entry}
	b.stmts(stmts)
	if b.current != cfg.Exit {
		cfg.addEdge(b.current, cfg.Exit, EdgeNormal, "")
	}
	return cfg
}

func (b *cfgBuilder) stmts(list []ast.Stmt) {
	for i := range list {
		b.stmt(&list[i])
	}
}

func (b *cfgBuilder) takeLabel() string {
	l := b.pendingLabel
	b.pendingLabel = ""
	return l
}

func labelOf(l *string) string {
	if l == nil {
		return ""
	}
	return *l
}

func (b *cfgBuilder) findBreakTarget(label string) loopTarget {
	for i := len(b.loops) - 1; i >= 0; i-- {
		lc := b.loops[i]
		if label == "" || lc.label == label {
			return loopTarget{valid: true, block: lc.breakTarget}
		}
	}
	return loopTarget{}
}

func (b *cfgBuilder) findContinueTarget(label string) loopTarget {
	for i := len(b.loops) - 1; i >= 0; i-- {
		lc := b.loops[i]
		if !lc.hasContinue {
			continue
		}
		if label == "" || lc.label == label {
			return loopTarget{valid: true, block: lc.continueTarget}
		}
	}
	return loopTarget{}
}

func (b *cfgBuilder) edgeToFinallyOrExit(kind EdgeKind) {
	for i := len(b.tries) - 1; i >= 0; i-- {
		if b.tries[i].hasFinally {
			b.cfg.addEdge(b.current, b.tries[i].finallyTarget, kind, "")
			return
		}
	}
	b.cfg.addEdge(b.current, b.cfg.Exit, kind, "")
}

func (b *cfgBuilder) edgeToHandlerOrExit() {
	for i := len(b.tries) - 1; i >= 0; i-- {
		if b.tries[i].hasCatch {
			b.cfg.addEdge(b.current, b.tries[i].catchTarget, EdgeThrow, "")
			return
		}
		if b.tries[i].hasFinally {
			b.cfg.addEdge(b.current, b.tries[i].finallyTarget, EdgeThrow, "")
			return
		}
	}
	b.cfg.addEdge(b.current, b.cfg.Exit, EdgeThrow, "")
}

func (b *cfgBuilder) stmt(s *ast.Stmt) {
	switch d := s.Data.(type) {
	case *ast.SIf:
		b.cfg.appendNode(b.current, s.ID)
		testBlock := b.current
		consEntry := b.cfg.newBlock()
		b.cfg.addEdge(testBlock, consEntry, EdgeCondTrue, "")
		b.current = consEntry
		b.stmt(&d.Consequent)
		join := b.cfg.newBlock()
		b.cfg.addEdge(b.current, join, EdgeNormal, "")
		if d.Alternate != nil {
			altEntry := b.cfg.newBlock()
			b.cfg.addEdge(testBlock, altEntry, EdgeCondFalse, "")
			b.current = altEntry
			b.stmt(d.Alternate)
			b.cfg.addEdge(b.current, join, EdgeNormal, "")
		} else {
			b.cfg.addEdge(testBlock, join, EdgeCondFalse, "")
		}
		b.current = join

	case *ast.SBlock:
		b.stmts(d.Body)

	case *ast.SWhile:
		b.loopStmt(b.takeLabel(), nil, &d.Body, true)

	case *ast.SDoWhile:
		label := b.takeLabel()
		bodyEntry := b.cfg.newBlock()
		after := b.cfg.newBlock()
		b.cfg.addEdge(b.current, bodyEntry, EdgeNormal, "")
		b.loops = append(b.loops, loopCtx{label: label, hasContinue: true, continueTarget: bodyEntry, breakTarget: after})
		b.current = bodyEntry
		b.stmt(&d.Body)
		b.cfg.addEdge(b.current, bodyEntry, EdgeCondTrue, "")
		b.cfg.addEdge(b.current, after, EdgeCondFalse, "")
		b.loops = b.loops[:len(b.loops)-1]
		b.current = after

	case *ast.SFor:
		label := b.takeLabel()
		head := b.cfg.newBlock()
		b.cfg.addEdge(b.current, head, EdgeNormal, "")
		bodyEntry := b.cfg.newBlock()
		updateBlock := b.cfg.newBlock()
		after := b.cfg.newBlock()
		b.cfg.addEdge(head, bodyEntry, EdgeCondTrue, "")
		b.cfg.addEdge(head, after, EdgeCondFalse, "")
		b.loops = append(b.loops, loopCtx{label: label, hasContinue: true, continueTarget: updateBlock, breakTarget: after})
		b.current = bodyEntry
		b.stmt(&d.Body)
		b.cfg.addEdge(b.current, updateBlock, EdgeNormal, "")
		b.current = updateBlock
		b.cfg.addEdge(updateBlock, head, EdgeNormal, "")
		b.loops = b.loops[:len(b.loops)-1]
		b.current = after

	case *ast.SForIn:
		b.loopStmt(b.takeLabel(), nil, &d.Body, true)
	case *ast.SForOf:
		b.loopStmt(b.takeLabel(), nil, &d.Body, true)

	case *ast.SSwitch:
		label := b.takeLabel()
		b.cfg.appendNode(b.current, s.ID)
		disc := b.current
		after := b.cfg.newBlock()
		b.loops = append(b.loops, loopCtx{label: label, breakTarget: after})
		var prevFallthrough BlockID
		hasFallthrough := false
		for ci := range d.Cases {
			c := &d.Cases[ci]
			entry := b.cfg.newBlock()
			if c.Test != nil {
				b.cfg.addEdge(disc, entry, EdgeCondTrue, "")
			} else {
				b.cfg.addEdge(disc, entry, EdgeNormal, "")
			}
			if hasFallthrough {
				b.cfg.addEdge(prevFallthrough, entry, EdgeNormal, "")
			}
			b.current = entry
			b.stmts(c.Body)
			prevFallthrough = b.current
			hasFallthrough = true
		}
		if hasFallthrough {
			b.cfg.addEdge(prevFallthrough, after, EdgeNormal, "")
		} else {
			b.cfg.addEdge(disc, after, EdgeNormal, "")
		}
		b.loops = b.loops[:len(b.loops)-1]
		b.current = after

	case *ast.STry:
		b.tryStmt(d)

	case *ast.SLabeled:
		b.pendingLabel = d.Label
		b.stmt(&d.Body)
		b.pendingLabel = ""

	case *ast.SBreak:
		b.cfg.appendNode(b.current, s.ID)
		if t := b.findBreakTarget(labelOf(d.Label)); t.valid {
			b.cfg.addEdge(b.current, t.block, EdgeBreak, labelOf(d.Label))
		}
		b.current = b.cfg.newBlock()

	case *ast.SContinue:
		b.cfg.appendNode(b.current, s.ID)
		if t := b.findContinueTarget(labelOf(d.Label)); t.valid {
			b.cfg.addEdge(b.current, t.block, EdgeContinue, labelOf(d.Label))
		}
		b.current = b.cfg.newBlock()

	case *ast.SReturn:
		b.cfg.appendNode(b.current, s.ID)
		b.edgeToFinallyOrExit(EdgeReturn)
		b.current = b.cfg.newBlock()

	case *ast.SThrow:
		b.cfg.appendNode(b.current, s.ID)
		b.edgeToHandlerOrExit()
		b.current = b.cfg.newBlock()

	default:
		b.cfg.appendNode(b.current, s.ID)
	}
}

// loopStmt handles the three "head decides whether to enter, body
// loops back to head" shapes (while, for-in, for-of) that otherwise
// differ only in how the head's condition is represented in the AST
// — a detail this CFG doesn't need since it only models control flow,
// not data flow.
func (b *cfgBuilder) loopStmt(label string, _ *ast.Expr, body *ast.Stmt, _ bool) {
	head := b.cfg.newBlock()
	b.cfg.addEdge(b.current, head, EdgeNormal, "")
	bodyEntry := b.cfg.newBlock()
	after := b.cfg.newBlock()
	b.cfg.addEdge(head, bodyEntry, EdgeCondTrue, "")
	b.cfg.addEdge(head, after, EdgeCondFalse, "")
	b.loops = append(b.loops, loopCtx{label: label, hasContinue: true, continueTarget: head, breakTarget: after})
	b.current = bodyEntry
	b.stmt(body)
	b.cfg.addEdge(b.current, head, EdgeNormal, "")
	b.loops = b.loops[:len(b.loops)-1]
	b.current = after
}

func (b *cfgBuilder) tryStmt(d *ast.STry) {
	beforeTry := b.current
	tryEntry := b.cfg.newBlock()
	b.cfg.addEdge(beforeTry, tryEntry, EdgeNormal, "")

	hasFinally := d.Finally != nil
	var finallyEntry BlockID
	if hasFinally {
		finallyEntry = b.cfg.newBlock()
	}
	hasCatch := d.Catch != nil
	var catchEntry BlockID
	if hasCatch {
		catchEntry = b.cfg.newBlock()
		b.cfg.addEdge(tryEntry, catchEntry, EdgeThrow, "")
	}

	b.tries = append(b.tries, tryCtx{catchTarget: catchEntry, hasCatch: hasCatch, finallyTarget: finallyEntry, hasFinally: hasFinally})
	b.current = tryEntry
	b.stmts(d.Block.Body)
	tryExit := b.current
	b.tries = b.tries[:len(b.tries)-1]

	var catchExit BlockID
	if hasCatch {
		b.current = catchEntry
		b.stmts(d.Catch.Body.Body)
		catchExit = b.current
	}

	after := b.cfg.newBlock()
	if hasFinally {
		b.cfg.addEdge(tryExit, finallyEntry, EdgeNormal, "")
		if hasCatch {
			b.cfg.addEdge(catchExit, finallyEntry, EdgeNormal, "")
		}
		b.current = finallyEntry
		b.stmts(d.Finally.Body)
		b.cfg.addEdge(b.current, after, EdgeNormal, "")
	} else {
		b.cfg.addEdge(tryExit, after, EdgeNormal, "")
		if hasCatch {
			b.cfg.addEdge(catchExit, after, EdgeNormal, "")
		}
	}
	b.current = after
}
