package api

import (
	"sync"

	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/lint"
	"github.com/jsforge/jsforge/internal/lint/rules"
	"github.com/jsforge/jsforge/internal/logger"
	"github.com/jsforge/jsforge/internal/semantic"
)

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *lint.Registry
)

// builtinRegistry returns the process-wide registry of built-in
// rules. It's the one piece of this package that looks like shared
// state, but a Registry is read-only once built (Register panics on a
// duplicate key, and nothing here calls it twice) — every Lint call
// still produces its own Context, Settings, and Log, so two callers
// linting different files concurrently never interact.
func builtinRegistry() *lint.Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = lint.NewRegistry()
		rules.Register(defaultRegistry)
	})
	return defaultRegistry
}

// LintSettings mirrors lint.Settings.
type LintSettings = lint.Settings

// LintResult is one file's lint report: its rendered diagnostics for
// display, plus the raw messages (Msgs) a caller needs unmodified in
// order to pass them to ApplyLintFixes, since rendering a Diagnostic
// drops each message's attached Fix edits.
type LintResult struct {
	RunID       string
	Msgs        []logger.Msg
	Diagnostics []Diagnostic
}

// Lint walks prog once, dispatching to every rule settings.RuleSeverity
// doesn't turn off. sem must come from a prior BuildSemantic call over
// the same prog — rules like no-unused-vars read the symbol table
// directly rather than re-deriving it.
func Lint(file, source string, prog *ast.Program, sem *semantic.Result, settings LintSettings) LintResult {
	log := logger.NewLog()
	report := lint.Run(prog, sem, source, file, builtinRegistry(), settings, log)
	return LintResult{
		RunID:       report.RunID,
		Msgs:        report.Msgs,
		Diagnostics: diagnosticsFrom(file, source, report.Msgs),
	}
}

// ApplyLintFixes mirrors lint.ApplyFixes: it replays every
// non-overlapping fix attached to msgs against source and returns the
// patched text alongside whichever messages couldn't be auto-applied.
func ApplyLintFixes(source string, msgs []logger.Msg) (string, []logger.Msg) {
	return lint.ApplyFixes(source, msgs)
}
