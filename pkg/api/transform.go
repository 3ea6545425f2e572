package api

import (
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/transform"
)

// TransformOptions mirrors transform.Options.
type TransformOptions = transform.Options

// Engines mirrors transform.Engines, the per-runtime version table
// TransformOptions.Target is built from.
type Engines = transform.Engines

// TransformResult holds the lowered program. Transform has no way to
// fail short of a compiler bug — type erasure, class-field lowering,
// and syntax downleveling are all pure tree rewrites — so there is no
// diagnostics vector here; an internal invariant violation would
// panic rather than report, the same as every other pass in this
// package that has nothing legitimate to tell the caller about
// short of its own bugs.
type TransformResult struct {
	Program *ast.Program
}

// Transform lowers prog to the syntax opts.Target supports: TypeScript
// type annotations are erased, legacy decorators and parameter
// properties are desugared, class fields and private fields are
// rewritten to their ES5-compatible forms where the target requires
// it, and newer expression syntax (optional chaining, nullish
// coalescing, logical assignment, exponentiation) is downleveled.
func Transform(prog *ast.Program, opts TransformOptions) TransformResult {
	return TransformResult{Program: transform.Transform(prog, opts)}
}
