package isolated

import (
	"strings"
	"testing"

	"github.com/jsforge/jsforge/internal/arena"
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/codegen"
	"github.com/jsforge/jsforge/internal/logger"
	"github.com/jsforge/jsforge/internal/parser"
)

func emitSource(t *testing.T, contents string, opts Options) (string, *logger.Log) {
	t.Helper()
	ar := arena.New(len(contents))
	log := logger.NewLog()
	res := parser.Parse(ar, log, "<test>", contents, ast.SourceTypeModule, parser.Options{})
	if log.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", contents, log.Done())
	}
	out := Emit(res.Program, contents, log, opts)
	printed := codegen.Print(out, codegen.Options{})
	return string(printed.JS), log
}

func TestEmitStripsExportedFunctionBody(t *testing.T) {
	out, _ := emitSource(t, `export function add(a: number, b: number): number { return a + b; }`, Options{})
	if strings.Contains(out, "return") {
		t.Fatalf("expected the function body to be stripped, got: %q", out)
	}
	if !strings.Contains(out, "declare function add") {
		t.Fatalf("expected a declare function signature, got: %q", out)
	}
}

func TestEmitDropsNonExportedDeclaration(t *testing.T) {
	out, _ := emitSource(t, `
		function helper() { return 1; }
		export function add(a: number): number { return a; }
	`, Options{})
	if strings.Contains(out, "helper") {
		t.Fatalf("expected the non-exported declaration to be dropped, got: %q", out)
	}
	if !strings.Contains(out, "add") {
		t.Fatalf("expected the exported declaration to survive, got: %q", out)
	}
}

func TestEmitInfersLiteralReturnType(t *testing.T) {
	out, _ := emitSource(t, `export function greet() { return "hi"; }`, Options{})
	if !strings.Contains(out, "string") {
		t.Fatalf("expected the inferred return type string, got: %q", out)
	}
}

func TestEmitReportsNonDerivableReturnType(t *testing.T) {
	out, log := emitSource(t, `export function compute(x: number) { return x + 1; }`, Options{})
	if !strings.Contains(out, "unknown") {
		t.Fatalf("expected a conservative unknown fallback, got: %q", out)
	}
	found := false
	for _, m := range log.Done() {
		if m.Kind == logger.KindIsolatedDeclarationsError {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a diagnostic for the non-derivable return type")
	}
}

func TestEmitKeepsAnnotatedReturnType(t *testing.T) {
	out, log := emitSource(t, `export function compute(x: number): number { return x + 1; }`, Options{})
	if !strings.Contains(out, ": number") {
		t.Fatalf("expected the existing annotation to survive, got: %q", out)
	}
	for _, m := range log.Done() {
		if m.Kind == logger.KindIsolatedDeclarationsError {
			t.Fatalf("expected no diagnostic when the return type is already annotated")
		}
	}
}

func TestEmitCollapsesOverloads(t *testing.T) {
	out, _ := emitSource(t, `
		export function fn(a: string): void;
		export function fn(a: number): void;
		export function fn(a: any): void { }
	`, Options{})
	if strings.Count(out, "function fn") != 2 {
		t.Fatalf("expected the implementation to be dropped and both signatures kept, got: %q", out)
	}
}

func TestEmitCollapsesMethodOverloads(t *testing.T) {
	out, _ := emitSource(t, `
		export class C {
			fn(a: string): void;
			fn(a: number): void;
			fn(a: any): void { }
		}
	`, Options{})
	if strings.Count(out, "fn(") != 2 {
		t.Fatalf("expected the method implementation to be dropped, got: %q", out)
	}
}

func TestEmitStripsInternalTaggedDeclaration(t *testing.T) {
	out, _ := emitSource(t, `
		/** @internal */
		export function hidden() { return 1; }
		export function visible() { return 1; }
	`, Options{StripInternal: true})
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected the @internal-tagged declaration to be stripped, got: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("expected the non-internal declaration to survive, got: %q", out)
	}
}

func TestEmitKeepsInternalWhenOptionDisabled(t *testing.T) {
	out, _ := emitSource(t, `
		/** @internal */
		export function hidden() { return 1; }
	`, Options{StripInternal: false})
	if !strings.Contains(out, "hidden") {
		t.Fatalf("expected the @internal-tagged declaration to survive when stripping is disabled, got: %q", out)
	}
}

func TestEmitFlagsExpandoFunction(t *testing.T) {
	_, log := emitSource(t, `
		export function f() {}
		f.prop = 1;
	`, Options{})
	found := false
	for _, m := range log.Done() {
		if m.Kind == logger.KindIsolatedDeclarationsError && strings.Contains(m.Text, "expando") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an expando-function diagnostic")
	}
}

func TestEmitScriptModeKeepsEveryDeclaration(t *testing.T) {
	out, _ := emitSource(t, `
		function helper() { return 1; }
		class Thing {}
	`, Options{})
	if !strings.Contains(out, "helper") || !strings.Contains(out, "Thing") {
		t.Fatalf("expected every top-level declaration to survive in script mode, got: %q", out)
	}
}

func TestEmitPreservesConstLiteralInitializer(t *testing.T) {
	out, _ := emitSource(t, `export const count = 1;`, Options{})
	if !strings.Contains(out, "= 1") {
		t.Fatalf("expected the literal initializer to survive on a const binding, got: %q", out)
	}
}
