package api

import (
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/codegen"
	"github.com/jsforge/jsforge/internal/sourcemap"
)

// CodegenOptions mirrors codegen.Options.
type CodegenOptions = codegen.Options

// CodegenResult is the printed source, plus a source map when
// CodegenOptions.AddSourceMappings was set.
type CodegenResult struct {
	JS  []byte
	Map *sourcemap.File
}

// Codegen turns prog back into source text. Unlike Format, it makes
// no attempt at width-aware wrapping or canonical style — it's the
// fast path a build pipeline uses after transform/minify, where byte
// count and correctness matter and stable formatting doesn't.
func Codegen(prog *ast.Program, opts CodegenOptions) CodegenResult {
	res := codegen.Print(prog, opts)
	return CodegenResult{JS: res.JS, Map: res.Map}
}
