package lint

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/logger"
	"github.com/jsforge/jsforge/internal/semantic"
	"github.com/jsforge/jsforge/internal/visit"
)

// Registry owns the set of rules a Kernel can dispatch to, keyed by
// "plugin/name" the way oxlint addresses a rule on the command line
// and in config files.
type Registry struct {
	rules map[string]Rule
	order []string
}

func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register adds r to the registry under "plugin/name". Registering
// the same key twice panics — that's a programming error in the rule
// set, not a runtime condition callers need to recover from.
func (reg *Registry) Register(r Rule) {
	key := r.Plugin() + "/" + r.Name()
	if _, exists := reg.rules[key]; exists {
		panic("lint: rule already registered: " + key)
	}
	reg.rules[key] = r
	reg.order = append(reg.order, key)
}

func (reg *Registry) Lookup(key string) (Rule, bool) {
	r, ok := reg.rules[key]
	return r, ok
}

// Enabled is the resolved set of rules a run should apply, in
// registration order (rules configured SeverityOff are skipped entirely
// rather than dispatched and then filtered, since a disabled rule may be
// expensive to run). Run resolves each rule's reporting severity itself.
func (reg *Registry) Enabled(severities map[string]Severity) []Rule {
	out := make([]Rule, 0, len(reg.order))
	for _, key := range reg.order {
		if sev, ok := severities[key]; ok && sev == SeverityOff {
			continue
		}
		out = append(out, reg.rules[key])
	}
	return out
}

// Kernel walks an AST once per file and dispatches to every enabled
// rule's Run/RunOnce per spec §4.5: "the kernel walks the AST once
// per file, calling every enabled rule's run for each node."
type Kernel struct {
	Registry *Registry
}

func NewKernel(reg *Registry) *Kernel {
	return &Kernel{Registry: reg}
}

// Report is the outcome of one lint run: every diagnostic produced,
// tagged with a RunID so CI tooling can correlate this report with a
// run without re-deriving an identifier from its contents.
type Report struct {
	RunID  string
	FileID string
	Msgs   []logger.Msg
}

// Run lints one file's program against every enabled rule and returns
// the resulting report. log accumulates diagnostics the same way
// every other pass in this module does; Run also returns its own copy
// via Report.Msgs for callers that want just this file's violations.
func Run(prog *ast.Program, sem *semantic.Result, source, filePath string, reg *Registry, settings Settings, log *logger.Log) Report {
	severities := settings.RuleSeverity
	enabled := reg.Enabled(severities)

	before := len(log.Msgs())

	var nodeRules []ruleInvocation
	var fileRules []ruleInvocation
	for _, r := range enabled {
		key := r.Plugin() + "/" + r.Name()
		sev := SeverityError
		if s, ok := severities[key]; ok {
			sev = s
		}
		if raw, ok := settings.RuleOptions[key]; ok {
			if err := r.FromConfig(raw); err != nil {
				log.AddMsg(logger.Msg{
					Kind:     logger.KindConfigError,
					Severity: SeverityError,
					Text:     fmt.Sprintf("rule %s: invalid configuration: %v", key, err),
					RuleName: key,
				})
				continue
			}
		} else {
			r.FromConfig(json.RawMessage("null"))
		}

		ctx := &Context{
			Program: prog, Sem: sem, Source: source, FilePath: filePath,
			Settings: settings, log: log, ruleName: key, ruleSev: sev,
		}
		if cond, ok := r.(ConditionalRule); ok && !cond.ShouldRun(ctx) {
			continue
		}
		inv := ruleInvocation{rule: r, ctx: ctx}
		if nr, ok := r.(NodeRule); ok {
			inv.node = nr
			nodeRules = append(nodeRules, inv)
		}
		if fr, ok := r.(FileRule); ok {
			inv.file = fr
			fileRules = append(fileRules, inv)
		}
	}

	if len(nodeRules) > 0 {
		visit.Program(prog, &ruleWalker{rules: nodeRules})
	}
	for _, inv := range fileRules {
		inv.file.RunOnce(inv.ctx)
	}

	return Report{RunID: uuid.NewString(), FileID: filePath, Msgs: append([]logger.Msg(nil), log.Msgs()[before:]...)}
}

type ruleInvocation struct {
	rule Rule
	ctx  *Context
	node NodeRule
	file FileRule
}

// ruleWalker adapts the node-rule invocations onto the shared
// component-C3 Visitor interface, so the kernel doesn't need its own
// AST traversal separate from every other pass in this module.
type ruleWalker struct {
	rules []ruleInvocation
}

func (w *ruleWalker) EnterStmt(s *ast.Stmt) bool {
	n := Node{Stmt: s}
	for _, inv := range w.rules {
		inv.node.Run(n, inv.ctx)
	}
	return true
}
func (w *ruleWalker) LeaveStmt(*ast.Stmt) {}

func (w *ruleWalker) EnterExpr(e *ast.Expr) bool {
	n := Node{Expr: e}
	for _, inv := range w.rules {
		inv.node.Run(n, inv.ctx)
	}
	return true
}
func (w *ruleWalker) LeaveExpr(*ast.Expr) {}

func (w *ruleWalker) EnterPattern(p *ast.Pattern) bool {
	n := Node{Pattern: p}
	for _, inv := range w.rules {
		inv.node.Run(n, inv.ctx)
	}
	return true
}
func (w *ruleWalker) LeavePattern(*ast.Pattern) {}

var _ visit.Visitor = (*ruleWalker)(nil)

// ApplyFixes resolves every Fix attached to msgs against source,
// dropping any fix whose span overlaps one already accepted (earliest
// span start wins) and recording a diagnostic for the drop, per spec
// §4.5: "fixes are applied in a second pass, resolving overlaps by
// dropping conflicting fixes with a diagnostic."
func ApplyFixes(source string, msgs []logger.Msg) (string, []logger.Msg) {
	type edit struct {
		fix   logger.Fix
		owner string
	}
	var edits []edit
	for _, m := range msgs {
		for _, f := range m.Fix {
			edits = append(edits, edit{fix: f, owner: m.RuleName})
		}
	}
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].fix.Span.Loc.Start != edits[j].fix.Span.Loc.Start {
			return edits[i].fix.Span.Loc.Start < edits[j].fix.Span.Loc.Start
		}
		return edits[i].fix.Span.End() < edits[j].fix.Span.End()
	})

	var accepted []logger.Fix
	var dropped []logger.Msg
	lastEnd := int32(-1)
	for _, e := range edits {
		if e.fix.Span.Loc.Start < lastEnd {
			dropped = append(dropped, logger.Msg{
				Kind:     logger.KindLintViolation,
				Severity: logger.SeverityWarning,
				Text:     fmt.Sprintf("fix from rule %s overlaps a previously applied fix and was dropped", e.owner),
				RuleName: e.owner,
				Labels:   []logger.Label{{Span: e.fix.Span}},
			})
			continue
		}
		accepted = append(accepted, e.fix)
		lastEnd = e.fix.Span.End()
	}

	out := source
	for i := len(accepted) - 1; i >= 0; i-- {
		f := accepted[i]
		start, end := int(f.Span.Loc.Start), int(f.Span.End())
		if start < 0 || end > len(out) || start > end {
			continue
		}
		out = out[:start] + f.Replacement + out[end:]
	}
	return out, dropped
}
