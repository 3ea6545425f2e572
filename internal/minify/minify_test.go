package minify

import (
	"strings"
	"testing"

	"github.com/jsforge/jsforge/internal/arena"
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/codegen"
	"github.com/jsforge/jsforge/internal/logger"
	"github.com/jsforge/jsforge/internal/parser"
	"github.com/jsforge/jsforge/internal/semantic"
)

func minifySource(t *testing.T, contents string, opts Options) string {
	t.Helper()
	ar := arena.New(len(contents))
	log := logger.NewLog()
	res := parser.Parse(ar, log, "<test>", contents, ast.SourceTypeModule, parser.Options{})
	if log.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", contents, log.Done())
	}
	sem := semantic.Analyze(res.Program, log, semantic.Options{})
	Program(res.Program, sem, opts)
	out := codegen.Print(res.Program, codegen.Options{})
	return string(out.JS)
}

func TestFoldConstantArithmetic(t *testing.T) {
	out := minifySource(t, "let x = 1 + 2;\n", Options{FoldConstants: true})
	if !strings.Contains(out, "3") {
		t.Fatalf("expected 1 + 2 to fold to 3, got: %q", out)
	}
}

func TestFoldTypeofLiteral(t *testing.T) {
	out := minifySource(t, "let x = typeof 5;\n", Options{FoldConstants: true})
	if !strings.Contains(out, `"number"`) {
		t.Fatalf("expected typeof 5 to fold to \"number\", got: %q", out)
	}
}

func TestFoldLogicalShortCircuit(t *testing.T) {
	out := minifySource(t, "let x = false && foo();\n", Options{FoldConstants: true})
	if strings.Contains(out, "foo") {
		t.Fatalf("expected the dead right-hand side to disappear, got: %q", out)
	}
}

func TestFoldDropsUnreachableAfterReturn(t *testing.T) {
	out := minifySource(t, `
		function f() {
			return 1;
			sideEffect();
		}
	`, Options{FoldConstants: true, RemoveDeadCode: true})
	if strings.Contains(out, "sideEffect") {
		t.Fatalf("expected the statement after return to be removed, got: %q", out)
	}
}

func TestDeadCodeKeepsHoistedVar(t *testing.T) {
	out := minifySource(t, `
		function f() {
			return x;
			var x;
		}
	`, Options{RemoveDeadCode: true})
	if !strings.Contains(out, "var x") {
		t.Fatalf("expected the hoisted var declaration to survive, got: %q", out)
	}
}

func TestDeadCodeRemovesUnusedBinding(t *testing.T) {
	out := minifySource(t, `
		function f() {
			let unused = 1;
			return 2;
		}
	`, Options{RemoveDeadCode: true})
	if strings.Contains(out, "unused") {
		t.Fatalf("expected the never-read binding to be removed, got: %q", out)
	}
}

func TestDeadCodeInlinesSingleUseConst(t *testing.T) {
	out := minifySource(t, `
		function f() {
			const result = compute();
			return result.value;
		}
	`, Options{RemoveDeadCode: true})
	if strings.Contains(out, "const result") {
		t.Fatalf("expected the single-use const to be inlined, got: %q", out)
	}
	if !strings.Contains(out, "compute().value") {
		t.Fatalf("expected the initializer to be substituted at the use site, got: %q", out)
	}
}

func TestMangleRenamesNestedLocal(t *testing.T) {
	out := minifySource(t, `
		function f() {
			let longVariableName = 1;
			return longVariableName + longVariableName;
		}
	`, Options{ManglePrivate: true})
	if strings.Contains(out, "longVariableName") {
		t.Fatalf("expected the nested local to be renamed, got: %q", out)
	}
}

func TestMangleLeavesTopLevelAlone(t *testing.T) {
	out := minifySource(t, "let topLevelName = 1;\n", Options{ManglePrivate: true, TopLevel: false})
	if !strings.Contains(out, "topLevelName") {
		t.Fatalf("expected the top-level binding to keep its name by default, got: %q", out)
	}
}

func TestCollapseBooleanLiterals(t *testing.T) {
	out := minifySource(t, "let x = true;\nlet y = false;\n", Options{})
	if strings.Contains(out, "true") || strings.Contains(out, "false") {
		t.Fatalf("expected boolean literals to collapse to !0/!1, got: %q", out)
	}
	if !strings.Contains(out, "!0") || !strings.Contains(out, "!1") {
		t.Fatalf("expected !0 and !1 in the output, got: %q", out)
	}
}

func TestComputedMemberBecomesDotAccess(t *testing.T) {
	out := minifySource(t, `let x = obj["prop"];`+"\n", Options{FoldConstants: true})
	if !strings.Contains(out, "obj.prop") {
		t.Fatalf("expected obj[\"prop\"] to fold to obj.prop, got: %q", out)
	}
}

func TestCompoundAssignmentFold(t *testing.T) {
	out := minifySource(t, "x = x + 1;\n", Options{FoldConstants: true})
	if !strings.Contains(out, "x += 1") {
		t.Fatalf("expected x = x + 1 to fold to x += 1, got: %q", out)
	}
}
