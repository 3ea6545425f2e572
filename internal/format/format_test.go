package format

import (
	"strings"
	"testing"

	"github.com/jsforge/jsforge/internal/arena"
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/logger"
	"github.com/jsforge/jsforge/internal/parser"
)

func formatSource(t *testing.T, contents string, opts Options) string {
	t.Helper()
	ar := arena.New(len(contents))
	log := logger.NewLog()
	res := parser.Parse(ar, log, "<test>", contents, ast.SourceTypeModule, parser.Options{})
	if log.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", contents, log.Done())
	}
	return Program(res.Program, opts)
}

func TestFormatCollapsesShortObject(t *testing.T) {
	out := formatSource(t, "let x = {a: 1, b: 2}\n", Default())
	if !strings.Contains(out, "{ a: 1, b: 2 }") {
		t.Fatalf("expected a short object to stay on one line, got: %q", out)
	}
}

func TestFormatExpandsLongArray(t *testing.T) {
	opts := Default()
	opts.LineWidth = 20
	out := formatSource(t, "let xs = [111111, 222222, 333333, 444444]\n", opts)
	if !strings.Contains(out, "[\n") {
		t.Fatalf("expected a too-wide array to expand onto multiple lines, got: %q", out)
	}
}

func TestFormatKeepsShortArrayFlat(t *testing.T) {
	out := formatSource(t, "let xs = [1, 2, 3]\n", Default())
	if !strings.Contains(out, "[1, 2, 3]") {
		t.Fatalf("expected a short array to stay flat, got: %q", out)
	}
}

func TestFormatBracesSingleStatementIf(t *testing.T) {
	out := formatSource(t, "if (x) y()\n", Default())
	if !strings.Contains(out, "{") {
		t.Fatalf("expected a dangling if-body to be wrapped in braces, got: %q", out)
	}
}

func TestFormatJSDocReflowsLongDescription(t *testing.T) {
	raw := "/** This description runs on quite a bit longer than the configured print width allows for a single line. */"
	out, ok := FormatJSDocComment(raw, JSDocOptions{CapitalizeDescriptions: true, SingleLineWhenPossible: true}, 40, 0)
	if !ok {
		t.Fatalf("expected the comment to be reformatted")
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 40 {
			t.Fatalf("expected every reflowed line to fit the width budget, got: %q", line)
		}
	}
}

func TestFormatJSDocSingleLineTag(t *testing.T) {
	raw := "/**\n * @internal\n */"
	out, ok := FormatJSDocComment(raw, JSDocOptions{SingleLineWhenPossible: true}, 80, 0)
	if !ok {
		t.Fatalf("expected the comment to be reformatted")
	}
	if out != "/** @internal */" {
		t.Fatalf("expected a lone short tag to collapse to one line, got: %q", out)
	}
}

func TestDocPrinterFlattensGroupThatFits(t *testing.T) {
	doc := Group(Concat(Text("["), Indent(Concat(SoftLine(), Text("1, 2, 3"))), SoftLine(), Text("]")))
	out := Print(doc, Options{IndentWidth: 2, LineWidth: 80})
	if out != "[1, 2, 3]" {
		t.Fatalf("expected the group to flatten, got: %q", out)
	}
}

func TestDocPrinterExpandsGroupThatDoesNotFit(t *testing.T) {
	doc := Group(Concat(Text("["), Indent(Concat(SoftLine(), Text("1, 2, 3"))), SoftLine(), Text("]")))
	out := Print(doc, Options{IndentWidth: 2, LineWidth: 5})
	if !strings.Contains(out, "\n") {
		t.Fatalf("expected the group to expand across multiple lines, got: %q", out)
	}
}

func TestDocPrinterHardLinePropagatesExpansion(t *testing.T) {
	doc := Group(Concat(Text("{"), Indent(Concat(HardLine(), Text("x"))), HardLine(), Text("}")))
	out := Print(doc, Options{IndentWidth: 2, LineWidth: 80})
	if !strings.Contains(out, "\n  x\n") {
		t.Fatalf("expected the hard line to force expansion even though the flat form fits, got: %q", out)
	}
}
