package api

import (
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/format"
)

// FormatOptions mirrors format.Options.
type FormatOptions = format.Options

// FormatResult is the formatted source text. Formatting a
// syntactically valid program can't fail, so there's no diagnostics
// vector — any error in this stage would be an internal bug, not
// something about the input worth reporting to a caller.
type FormatResult struct {
	Code string
}

// Format renders prog as canonically formatted source, the component
// a caller reaches for in place of running a separate Prettier-style
// tool: width-aware wrapping for declarator lists, object/array
// literals, and parameter/argument lists, with everything else laid
// out from codegen's own precedence-correct expression printing.
func Format(prog *ast.Program, opts FormatOptions) FormatResult {
	return FormatResult{Code: format.Program(prog, opts)}
}
