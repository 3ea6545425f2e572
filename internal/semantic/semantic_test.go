package semantic

import (
	"testing"

	"github.com/jsforge/jsforge/internal/arena"
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/logger"
	"github.com/jsforge/jsforge/internal/parser"
)

func analyzeSource(t *testing.T, contents string, opts Options) (*ast.Program, *Result, *logger.Log) {
	t.Helper()
	ar := arena.New(len(contents))
	log := logger.NewLog()
	res := parser.Parse(ar, log, "<test>", contents, ast.SourceTypeModule, parser.Options{})
	if log.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", contents, log.Done())
	}
	out := Analyze(res.Program, log, opts)
	return res.Program, out, log
}

func symbolNamed(res *Result, name string) (*Symbol, bool) {
	all := res.Symbols.All()
	for i := range all {
		if all[i].Name == name {
			return &all[i], true
		}
	}
	return nil, false
}

func TestVarHoistsToFunctionScope(t *testing.T) {
	_, res, _ := analyzeSource(t, `
		function f() {
			if (true) {
				var x = 1
			}
			return x
		}
	`, Options{})

	sym, ok := symbolNamed(res, "x")
	if !ok {
		t.Fatalf("expected a symbol named x")
	}
	if sym.Kind != SymbolHoisted {
		t.Fatalf("expected x to be SymbolHoisted, got %v", sym.Kind)
	}
	if res.Scopes.Get(sym.ScopeID).Kind != ScopeFunctionBody {
		t.Fatalf("expected x to land in the function body scope, not the if-block")
	}
	if sym.UseCount != 1 {
		t.Fatalf("expected x to be used once (by the return), got %d", sym.UseCount)
	}
}

func TestLetStaysBlockScoped(t *testing.T) {
	_, res, _ := analyzeSource(t, `
		{
			let y = 1
		}
	`, Options{})

	sym, ok := symbolNamed(res, "y")
	if !ok {
		t.Fatalf("expected a symbol named y")
	}
	if res.Scopes.Get(sym.ScopeID).Kind != ScopeBlock {
		t.Fatalf("expected y to stay in its block scope, got %v", res.Scopes.Get(sym.ScopeID).Kind)
	}
}

func TestDuplicateLetIsDiagnosed(t *testing.T) {
	_, _, log := analyzeSource(t, `
		let z = 1
		let z = 2
	`, Options{})

	if !log.HasErrors() {
		t.Fatalf("expected a duplicate-declaration diagnostic for z")
	}
}

func TestFunctionParamsShadowOuterScope(t *testing.T) {
	prog, res, _ := analyzeSource(t, `
		let a = 1
		function f(a) {
			return a
		}
	`, Options{})

	fnDecl := prog.Body[1].Data.(*ast.SFunctionDecl)
	ret := fnDecl.Fn.Body.Stmts[0].Data.(*ast.SReturn)
	ident := ret.Value.Data.(*ast.EIdentifier)
	if !ident.Ref.Valid() {
		t.Fatalf("expected the returned identifier to resolve")
	}
	resolvedSym := res.Symbols.Get(ident.Ref)
	if resolvedSym.Kind != SymbolParameter {
		t.Fatalf("expected `return a` to resolve to the parameter, got kind %v", resolvedSym.Kind)
	}
}

func TestClassNameVisibleInsideOwnBody(t *testing.T) {
	_, res, _ := analyzeSource(t, `
		class Counter {
			static make() {
				return new Counter()
			}
		}
	`, Options{})

	outer, ok := symbolNamed(res, "Counter")
	if !ok {
		t.Fatalf("expected a Counter symbol")
	}
	if outer.UseCount == 0 {
		t.Fatalf("expected the inner `new Counter()` to count as a use of the outer binding")
	}
}

func TestCatchBindingIsBlockScoped(t *testing.T) {
	_, res, _ := analyzeSource(t, `
		try {
		} catch (err) {
			console.log(err)
		}
	`, Options{})

	sym, ok := symbolNamed(res, "err")
	if !ok {
		t.Fatalf("expected an err symbol")
	}
	if sym.Kind != SymbolCatchIdentifier {
		t.Fatalf("expected err to be SymbolCatchIdentifier, got %v", sym.Kind)
	}
	if sym.UseCount != 1 {
		t.Fatalf("expected err to be used once, got %d", sym.UseCount)
	}
}

func TestUnresolvedReferenceIsAFreeVariable(t *testing.T) {
	_, res, log := analyzeSource(t, `
		console.log(globalThing)
	`, Options{})

	if log.HasErrors() {
		t.Fatalf("a free variable reference must not be an error: %v", log.Done())
	}
	found := false
	for _, r := range res.References.Unresolved() {
		if r.Name == "globalThing" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected globalThing among the unresolved references")
	}
}

func TestCFGBranchesIf(t *testing.T) {
	_, res, _ := analyzeSource(t, `
		function f(x) {
			if (x) {
				return 1
			}
			return 2
		}
	`, Options{BuildCFG: true})

	var cfg *CFG
	for fn, c := range res.FunctionCFGs {
		_ = fn
		cfg = c
	}
	if cfg == nil {
		t.Fatalf("expected a function CFG to be built")
	}
	var condTrue, condFalse bool
	for _, e := range cfg.Edges {
		if e.Kind == EdgeCondTrue {
			condTrue = true
		}
		if e.Kind == EdgeCondFalse {
			condFalse = true
		}
	}
	if !condTrue || !condFalse {
		t.Fatalf("expected both cond-true and cond-false edges out of the if, got %+v", cfg.Edges)
	}
}

func TestCFGLoopHasBreakEdge(t *testing.T) {
	_, res, _ := analyzeSource(t, `
		function f() {
			while (true) {
				break
			}
		}
	`, Options{BuildCFG: true})

	var cfg *CFG
	for _, c := range res.FunctionCFGs {
		cfg = c
	}
	var sawBreak bool
	for _, e := range cfg.Edges {
		if e.Kind == EdgeBreak {
			sawBreak = true
		}
	}
	if !sawBreak {
		t.Fatalf("expected a break edge out of the loop")
	}
}

func TestLabeledBreakResolvesToEnclosingLabel(t *testing.T) {
	_, res, log := analyzeSource(t, `
		outer: for (;;) {
			break outer
		}
	`, Options{})

	if log.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", log.Done())
	}
	sym, ok := symbolNamed(res, "outer")
	if !ok {
		t.Fatalf("expected a label symbol named outer")
	}
	if sym.Kind != SymbolLabel {
		t.Fatalf("expected outer to be SymbolLabel, got %v", sym.Kind)
	}
	if sym.UseCount != 1 {
		t.Fatalf("expected the labeled break to count as a use, got %d", sym.UseCount)
	}
}
