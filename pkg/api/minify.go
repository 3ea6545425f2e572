package api

import (
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/minify"
	"github.com/jsforge/jsforge/internal/semantic"
)

// MinifyOptions mirrors minify.Options.
type MinifyOptions = minify.Options

// MinifyResult is prog after minification — folding, dead-code
// elimination, and (when requested) private-symbol mangling all
// happen in place, so Program is the same pointer the caller passed
// in, returned for chaining convenience.
type MinifyResult struct {
	Program *ast.Program
}

// Minify runs the peephole folder, dead-code eliminator, and mangler
// over prog in that order, matching minify.Program's own ordering
// rationale: folding first so DCE sees already-collapsed conditions,
// mangling last since renaming must never change which bindings are
// live. sem is required whenever opts.ManglePrivate or
// opts.RemoveDeadCode is set; a caller that only wants constant
// folding can pass nil.
func Minify(prog *ast.Program, sem *semantic.Result, opts MinifyOptions) MinifyResult {
	minify.Program(prog, sem, opts)
	return MinifyResult{Program: prog}
}
