package api

import (
	"encoding/json"

	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/estree"
)

// ESTreeOptions mirrors estree.Options.
type ESTreeOptions = estree.Options

// SerializeAST renders prog as ESTree-compatible JSON. source is only
// needed when opts.UTF16Offsets is set, to drive the UTF-8→UTF-16
// offset conversion pass; callers that leave it unset can pass "".
func SerializeAST(prog *ast.Program, source string, opts ESTreeOptions) ([]byte, error) {
	return json.Marshal(estree.Serialize(prog, source, opts))
}
