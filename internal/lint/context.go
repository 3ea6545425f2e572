package lint

import (
	"encoding/json"

	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/logger"
	"github.com/jsforge/jsforge/internal/semantic"
)

// Settings is the subset of project configuration a rule might need
// beyond its own FromConfig options — the file path it's linting, the
// directories to search for package.json when classifying
// dependencies, and per-rule severity overrides read from the
// project's config file (the CLI's jsforge.yaml/.oxlintrc-equivalent,
// decoded by internal/config before the kernel ever sees it).
type Settings struct {
	PackageJSONDirs []string
	RuleSeverity    map[string]Severity
	RuleOptions     map[string]json.RawMessage
}

// Context is what every rule callback receives: read-only access to
// the program, its semantic model, the raw source, and a diagnostic
// sink scoped to whichever rule is currently running.
type Context struct {
	Program  *ast.Program
	Sem      *semantic.Result
	Source   string
	FilePath string
	Settings Settings

	log      *logger.Log
	ruleName string
	ruleSev  Severity
}

// Diagnostic reports a violation with no associated fix.
func (c *Context) Diagnostic(span ast.Span, message string) {
	c.DiagnosticHelp(span, message, "")
}

// DiagnosticHelp reports a violation with an additional help string
// (spec §4.5's Diagnostic.help field).
func (c *Context) DiagnosticHelp(span ast.Span, message, help string) {
	if c.ruleSev == SeverityOff {
		return
	}
	c.log.AddMsg(logger.Msg{
		Kind:     logger.KindLintViolation,
		Severity: c.ruleSev,
		Text:     message,
		Help:     help,
		RuleName: c.ruleName,
		Labels:   []logger.Label{{Span: span}},
	})
}

// FixBuilder accumulates the (span, replacement) edits a rule proposes
// for one violation, matching spec §4.5's RuleFix shape.
type FixBuilder struct {
	edits []logger.Fix
}

// Replace proposes replacing the byte range span covers with text.
func (b *FixBuilder) Replace(span ast.Span, text string) {
	b.edits = append(b.edits, logger.Fix{Span: span, Replacement: text})
}

// Delete proposes removing the byte range span covers.
func (b *FixBuilder) Delete(span ast.Span) {
	b.edits = append(b.edits, logger.Fix{Span: span, Replacement: ""})
}

// InsertBefore proposes inserting text immediately before span without
// consuming any of span's bytes.
func (b *FixBuilder) InsertBefore(span ast.Span, text string) {
	b.edits = append(b.edits, logger.Fix{Span: ast.Span{Loc: span.Loc, Len: 0}, Replacement: text})
}

// DiagnosticWithFix reports a violation and lets build propose the
// edit(s) that would resolve it. The kernel applies accepted fixes in
// a second pass after every rule has run, per spec §4.5.
func (c *Context) DiagnosticWithFix(span ast.Span, message string, build func(*FixBuilder)) {
	if c.ruleSev == SeverityOff {
		return
	}
	var b FixBuilder
	build(&b)
	c.log.AddMsg(logger.Msg{
		Kind:     logger.KindLintViolation,
		Severity: c.ruleSev,
		Text:     message,
		RuleName: c.ruleName,
		Labels:   []logger.Label{{Span: span}},
		Fix:      b.edits,
	})
}
