// Package lint implements the rule-dispatch engine (component C10):
// a registry of Rule values, a one-pass-per-file kernel that invokes
// each enabled rule's node callback, and the diagnostic+fix plumbing
// rules use to report violations. internal/depgraph supplies the one
// sub-engine spec §4.5 calls out by name (dependency classification
// for "no-extraneous-dependencies"); everything else here is the
// generic kernel every rule, including that one, plugs into.
package lint

import (
	"encoding/json"

	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/logger"
)

// Category is the taxonomy a rule is filed under, matching the
// oxc_linter categories named in spec §4.5.
type Category uint8

const (
	CategoryCorrectness Category = iota
	CategorySuspicious
	CategoryPedantic
	CategoryPerf
	CategoryRestriction
	CategoryStyle
	CategoryNursery
)

func (c Category) String() string {
	switch c {
	case CategoryCorrectness:
		return "correctness"
	case CategorySuspicious:
		return "suspicious"
	case CategoryPedantic:
		return "pedantic"
	case CategoryPerf:
		return "perf"
	case CategoryRestriction:
		return "restriction"
	case CategoryStyle:
		return "style"
	case CategoryNursery:
		return "nursery"
	default:
		return "unknown"
	}
}

// Rule is the unit of work the kernel dispatches. A rule implements
// at most one of Run/RunOnce — the kernel treats both as optional and
// does nothing for a rule that implements neither, which is only
// useful for rules still under development.
//
// Run is called once for every AST node the kernel visits, in
// pre-order. RunOnce is called exactly once per file, after the
// per-node pass completes, for checks that need whole-file context
// (import/export shape, unused bindings) rather than a single node.
type Rule interface {
	Name() string
	Plugin() string
	Category() Category

	// FromConfig lets a rule read its own options out of the JSON
	// value configured for it; a rule with no options can ignore the
	// argument entirely. Returning an error disables the rule for the
	// run and records a KindConfigError diagnostic.
	FromConfig(raw json.RawMessage) error
}

// NodeRule is implemented by rules that want a callback per AST node.
type NodeRule interface {
	Rule
	Run(node Node, ctx *Context)
}

// FileRule is implemented by rules that only need to run once per
// file (dependency-hierarchy checks, whole-program unused-binding
// sweeps).
type FileRule interface {
	Rule
	RunOnce(ctx *Context)
}

// ConditionalRule lets a rule opt out for files it doesn't apply to
// (e.g. a TS-only rule skipping a plain .js file).
type ConditionalRule interface {
	Rule
	ShouldRun(ctx *Context) bool
}

// Node is what the kernel hands a NodeRule: the node itself, tagged
// with which AST family it came from, since Go's lack of a common
// Expr/Stmt/Pattern supertype means the kernel can't hand back a
// single interface value the way a dynamically-typed host would.
type Node struct {
	Stmt    *ast.Stmt
	Expr    *ast.Expr
	Pattern *ast.Pattern
}

// Severity re-exports logger.Severity so rule implementations don't
// need a second import for the same four-value enum.
type Severity = logger.Severity

const (
	SeverityError   = logger.SeverityError
	SeverityWarning = logger.SeverityWarning
	SeverityHint    = logger.SeverityHint
	SeverityOff     = logger.SeverityOff
)
