package lint_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsforge/jsforge/internal/arena"
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/lint"
	"github.com/jsforge/jsforge/internal/lint/rules"
	"github.com/jsforge/jsforge/internal/logger"
	"github.com/jsforge/jsforge/internal/parser"
	"github.com/jsforge/jsforge/internal/semantic"
)

func lintSource(t *testing.T, contents, filePath string, settings lint.Settings) lint.Report {
	t.Helper()
	ar := arena.New(len(contents))
	log := logger.NewLog()
	res := parser.Parse(ar, log, filePath, contents, ast.SourceTypeModule, parser.Options{})
	if log.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", contents, log.Done())
	}
	sem := semantic.Analyze(res.Program, log, semantic.Options{})

	reg := lint.NewRegistry()
	rules.Register(reg)
	return lint.Run(res.Program, sem, contents, filePath, reg, settings, log)
}

func ruleNames(rep lint.Report) []string {
	var out []string
	for _, m := range rep.Msgs {
		out = append(out, m.RuleName)
	}
	return out
}

func containsRule(names []string, rule string) bool {
	for _, n := range names {
		if n == rule {
			return true
		}
	}
	return false
}

func TestKernelReportsUnusedBinding(t *testing.T) {
	rep := lintSource(t, "let unused = 1;\n", "<test>", lint.Settings{})
	if !containsRule(ruleNames(rep), "eslint/no-unused-vars") {
		t.Fatalf("expected a no-unused-vars violation, got %v", rep.Msgs)
	}
	if rep.RunID == "" {
		t.Fatalf("expected a non-empty RunID")
	}
}

func TestKernelSkipsExportedBinding(t *testing.T) {
	rep := lintSource(t, "export let used = 1;\n", "<test>", lint.Settings{})
	if containsRule(ruleNames(rep), "eslint/no-unused-vars") {
		t.Fatalf("expected exported bindings to be exempt, got %v", rep.Msgs)
	}
}

func TestKernelFlagsExtraneousImport(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "package.json")
	if err := os.WriteFile(manifest, []byte(`{"name":"x","dependencies":{"lodash":"^4.0.0"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	filePath := filepath.Join(dir, "index.js")
	rep := lintSource(t, `import express from "express";`+"\n", filePath, lint.Settings{})
	if !containsRule(ruleNames(rep), "import/no-extraneous-dependencies") {
		t.Fatalf("expected an extraneous-dependency violation, got %v", rep.Msgs)
	}
}

func TestKernelAllowsDeclaredImport(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "package.json")
	if err := os.WriteFile(manifest, []byte(`{"name":"x","dependencies":{"lodash":"^4.0.0"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	filePath := filepath.Join(dir, "index.js")
	rep := lintSource(t, `import fp from "lodash/fp";`+"\n", filePath, lint.Settings{})
	if containsRule(ruleNames(rep), "import/no-extraneous-dependencies") {
		t.Fatalf("expected lodash/fp to be allowed, got %v", rep.Msgs)
	}
}

func TestKernelRespectsSeverityOff(t *testing.T) {
	rep := lintSource(t, "let unused = 1;\n", "<test>", lint.Settings{
		RuleSeverity: map[string]lint.Severity{"eslint/no-unused-vars": lint.SeverityOff},
	})
	if containsRule(ruleNames(rep), "eslint/no-unused-vars") {
		t.Fatalf("expected the rule to be disabled, got %v", rep.Msgs)
	}
}

func TestApplyFixesDropsOverlappingEdit(t *testing.T) {
	source := "abcdef"
	msgs := []logger.Msg{
		{RuleName: "a", Fix: []logger.Fix{{Span: ast.Span{Loc: ast.Loc{Start: 0}, Len: 3}, Replacement: "XYZ"}}},
		{RuleName: "b", Fix: []logger.Fix{{Span: ast.Span{Loc: ast.Loc{Start: 1}, Len: 2}, Replacement: "Q"}}},
	}
	out, dropped := lint.ApplyFixes(source, msgs)
	if out != "XYZdef" {
		t.Fatalf("got %q", out)
	}
	if len(dropped) != 1 || dropped[0].RuleName != "b" {
		t.Fatalf("expected rule b's fix to be dropped, got %v", dropped)
	}
}
