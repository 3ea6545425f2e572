package codegen

import (
	"strings"
	"testing"

	"github.com/jsforge/jsforge/internal/arena"
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/logger"
	"github.com/jsforge/jsforge/internal/parser"
)

func printSource(t *testing.T, contents string) string {
	t.Helper()
	ar := arena.New(len(contents))
	log := logger.NewLog()
	res := parser.Parse(ar, log, "<test>", contents, ast.SourceTypeModule, parser.Options{})
	if log.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", contents, log.Done())
	}
	out := Print(res.Program, Options{})
	return string(out.JS)
}

func TestPrintSimpleFunction(t *testing.T) {
	out := printSource(t, "function add(a, b) {\n  return a + b\n}\n")
	if !strings.Contains(out, "function add(a, b)") {
		t.Fatalf("expected a rebuilt function signature, got: %s", out)
	}
	if !strings.Contains(out, "return a + b;") {
		t.Fatalf("expected a semicolon-terminated return, got: %s", out)
	}
}

func TestPrintPreservesOperatorPrecedence(t *testing.T) {
	out := printSource(t, "let x = (1 + 2) * 3\n")
	if !strings.Contains(out, "(1 + 2) * 3") {
		t.Fatalf("expected the multiplication to keep the addition parenthesized, got: %s", out)
	}
}

func TestPrintDropsRedundantParens(t *testing.T) {
	out := printSource(t, "let x = (1 * 2) + 3\n")
	if strings.Contains(out, "(1 * 2)") {
		t.Fatalf("expected the now-unnecessary parens to be dropped, got: %s", out)
	}
}

func TestPrintArrowShorthandParam(t *testing.T) {
	out := printSource(t, "const f = x => x + 1\n")
	if !strings.Contains(out, "x => x + 1") {
		t.Fatalf("expected a bare single-identifier arrow param, got: %s", out)
	}
}

func TestPrintClassWithMethod(t *testing.T) {
	out := printSource(t, "class Counter {\n  #n = 0\n  inc() {\n    this.#n++\n  }\n}\n")
	if !strings.Contains(out, "class Counter") || !strings.Contains(out, "inc()") {
		t.Fatalf("expected the class and method signatures to survive, got: %s", out)
	}
}

func TestPrintSourceMapMapsBackToOriginal(t *testing.T) {
	ar := arena.New(32)
	log := logger.NewLog()
	contents := "function f(x) {\n  return x\n}\n"
	res := parser.Parse(ar, log, "in.js", contents, ast.SourceTypeModule, parser.Options{})
	if log.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", log.Done())
	}
	out := Print(res.Program, Options{
		AddSourceMappings: true,
		Source:            contents,
		SourceURL:         "in.js",
	})
	if out.Map == nil {
		t.Fatalf("expected a source map")
	}
	if len(out.Map.Mappings) == 0 {
		t.Fatalf("expected a non-empty mappings string")
	}
	if len(out.Map.Sources) != 1 || out.Map.Sources[0] != "in.js" {
		t.Fatalf("expected sources == [\"in.js\"], got %v", out.Map.Sources)
	}
}
