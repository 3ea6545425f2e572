package api

import (
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/logger"
	"github.com/jsforge/jsforge/internal/semantic"
)

// BuildSemanticOptions mirrors semantic.Options.
type BuildSemanticOptions struct {
	// BuildCFG additionally constructs a control-flow graph per
	// function and for the module top level. No built-in lint rule
	// reads the graphs; leave it off for formatting/codegen-only
	// pipelines.
	BuildCFG bool
}

// BuildSemanticResult is everything semantic analysis produces for
// one program: its scope tree, symbol table, reference table, and
// (when requested) control-flow graphs, plus any diagnostics raised
// along the way. The only diagnostic raised is for a disallowed
// same-scope redeclaration; use before declaration is not reported.
type BuildSemanticResult struct {
	Semantic    *semantic.Result
	Diagnostics []Diagnostic
}

// BuildSemantic resolves every scope, symbol, and reference in prog.
// file and source are only used to render Diagnostics; prog itself
// must already have been produced by Parse (or hand-built with the
// same file/source pairing) for the reported positions to make sense.
func BuildSemantic(file, source string, prog *ast.Program, opts BuildSemanticOptions) BuildSemanticResult {
	log := logger.NewLog()
	result := semantic.Analyze(prog, log, semantic.Options{BuildCFG: opts.BuildCFG})
	return BuildSemanticResult{
		Semantic:    result,
		Diagnostics: diagnosticsFrom(file, source, log.Done()),
	}
}
