package semantic

import (
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/logger"
)

// Options controls how much of the analysis C5 performs (spec §4.2).
// CFG construction is optional since most callers of C5 — codegen,
// the formatter, isolated-declarations emission — only need scopes and
// symbols, not control flow.
type Options struct {
	BuildCFG bool
}

// Result is everything C5 produces for one program (spec §3.3).
type Result struct {
	Scopes     *ScopeTree
	Symbols    *SymbolTable
	References *ReferenceTable

	// ModuleCFG is the top-level statement list's control-flow graph.
	// Nil unless Options.BuildCFG was set.
	ModuleCFG *CFG

	// FunctionCFGs maps each function body found in the program to its
	// own control-flow graph. Functions share the map key space with
	// the AST itself (a *ast.Function is already a stable, unique
	// identity — no synthetic id is needed the way esbuild's IR uses
	// Ref for symbols).
	FunctionCFGs map[*ast.Function]*CFG
}

// Analyze runs the two-phase scope/symbol/reference build described in
// spec §4.2: a declaration-phase walk that builds every Scope and
// Symbol, then a reference-phase walk — over the very same tree — that
// resolves every identifier use against the scopes the first phase
// already built. The only diagnostic Analyze emits is a non-fatal one
// in log for a disallowed redeclaration in the same scope; a use before
// declaration and a misplaced break/continue/return are not diagnosed.
//
// Esbuild ties its own two parser passes together with a position-
// ordered queue (scopesInOrder) that the second pass replays in
// lockstep. This implementation gets the same "phase two finds exactly
// the scope phase one built for this construct" property more simply:
// Go AST nodes that introduce a scope are already unique, stable
// pointers (*ast.Function, *ast.Class, *ast.CatchClause, or a
// statement's own address inside its parent slice), so a handful of
// pointer-keyed maps stand in for the queue.
func Analyze(prog *ast.Program, log *logger.Log, opts Options) *Result {
	b := newBuilder(log, opts)
	b.declareProgram(prog)
	b.resolveProgram(prog)

	res := &Result{
		Scopes:       b.scopes,
		Symbols:      b.symbols,
		References:   b.refs,
		FunctionCFGs: make(map[*ast.Function]*CFG),
	}
	if opts.BuildCFG {
		res.ModuleCFG = buildCFG(0, prog.Body)
		for fn := range b.allFunctions {
			if fn.Body != nil {
				res.FunctionCFGs[fn] = buildCFG(0, fn.Body.Stmts)
			}
		}
	}
	return res
}

// builder carries both phases' shared state. The *ScopeOf maps are
// populated only during the declaration phase and only ever read
// during the reference phase — nothing mutates them once phase one
// returns.
type builder struct {
	log  *logger.Log
	opts Options

	scopes  *ScopeTree
	symbols *SymbolTable
	refs    *ReferenceTable

	scope ast.ScopeID // current scope, threaded through whichever phase is running

	scopeOf           map[interface{}]ast.ScopeID
	fnArgsScope       map[*ast.Function]ast.ScopeID
	fnBodyScope       map[*ast.Function]ast.ScopeID
	arrowArgsScope    map[*ast.EArrow]ast.ScopeID
	arrowBodyScope    map[*ast.EArrow]ast.ScopeID
	classNameScope    map[*ast.Class]ast.ScopeID
	classBodyScope    map[*ast.Class]ast.ScopeID
	staticBlockScope  map[*ast.ClassMember]ast.ScopeID
	catchBindingScope map[*ast.CatchClause]ast.ScopeID
	catchBodyScope    map[*ast.CatchClause]ast.ScopeID

	// labelSymbols tracks the innermost symbol declared for each active
	// label name so SBreak/SContinue's label (which the CFG builder
	// already resolves structurally) can also be marked used here.
	labelSymbols map[string][]ast.SymbolID

	allFunctions map[*ast.Function]struct{}
}

func newBuilder(log *logger.Log, opts Options) *builder {
	return &builder{
		log:               log,
		opts:              opts,
		scopes:            newScopeTree(),
		symbols:           newSymbolTable(),
		refs:              newReferenceTable(),
		scopeOf:           make(map[interface{}]ast.ScopeID),
		fnArgsScope:       make(map[*ast.Function]ast.ScopeID),
		fnBodyScope:       make(map[*ast.Function]ast.ScopeID),
		arrowArgsScope:    make(map[*ast.EArrow]ast.ScopeID),
		arrowBodyScope:    make(map[*ast.EArrow]ast.ScopeID),
		classNameScope:    make(map[*ast.Class]ast.ScopeID),
		classBodyScope:    make(map[*ast.Class]ast.ScopeID),
		staticBlockScope:  make(map[*ast.ClassMember]ast.ScopeID),
		catchBindingScope: make(map[*ast.CatchClause]ast.ScopeID),
		catchBodyScope:    make(map[*ast.CatchClause]ast.ScopeID),
		labelSymbols:      make(map[string][]ast.SymbolID),
		allFunctions:      make(map[*ast.Function]struct{}),
	}
}

func (b *builder) pushScopeFor(key interface{}, kind ScopeKind, parent ast.ScopeID) ast.ScopeID {
	id := b.scopes.push(kind, parent)
	b.scopeOf[key] = id
	return id
}

// declareSymbol declares name in scope, flagging (but not rejecting) a
// same-scope redeclaration the way spec §4.2 asks for — duplicate
// bindings are a diagnostic, never a parse failure.
func (b *builder) declareSymbol(name string, span ast.Span, kind SymbolKind, scope ast.ScopeID, declNode ast.NodeID) ast.SymbolID {
	s := b.scopes.Get(scope)
	if existing, ok := s.Bindings[name]; ok {
		prev := b.symbols.Get(existing)
		if !redeclarationAllowed(prev.Kind, kind) {
			b.log.AddMsg(logger.Msg{
				Kind:     logger.KindSemanticError,
				Severity: logger.SeverityError,
				Text:     "\"" + name + "\" is already declared in this scope",
				Labels:   []logger.Label{{Span: span, Text: "already declared here"}},
			})
		}
		return existing
	}
	id := b.symbols.declare(name, span, kind, scope, declNode)
	s.Bindings[name] = id
	return id
}

// redeclarationAllowed matches the common-sense subset of JS's
// redeclaration rules: plain "var" may repeat itself (including
// against a function declaration) any number of times in the same
// scope; everything block-scoped may not.
func redeclarationAllowed(prev, next SymbolKind) bool {
	if prev.IsHoisted() && next.IsHoisted() {
		return true
	}
	return false
}
