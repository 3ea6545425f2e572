package semantic

import "github.com/jsforge/jsforge/internal/ast"

// ReferenceFlags records how an identifier use was made, per spec
// §3.3.
type ReferenceFlags uint8

const (
	RefRead ReferenceFlags = 1 << iota
	RefWrite
	RefTypeOnly // a use inside a TS type position, e.g. `: Foo`
)

func (f ReferenceFlags) Has(flag ReferenceFlags) bool { return f&flag != 0 }

// Reference is one identifier use site (spec §3.3). Symbol is 0 until
// (and unless) resolution finds a declaring Symbol; an unresolved
// Reference is a free/global name, not an error by itself.
type Reference struct {
	ID     ast.ReferenceID
	Symbol ast.SymbolID
	Flags  ReferenceFlags
	NodeID ast.NodeID
	Name   string
}

// ReferenceTable owns every Reference built for one program, indexed
// densely by ReferenceID starting at 1.
type ReferenceTable struct {
	refs []Reference
}

func newReferenceTable() *ReferenceTable {
	return &ReferenceTable{refs: make([]Reference, 1)}
}

func (t *ReferenceTable) record(name string, node ast.NodeID, flags ReferenceFlags, symbol ast.SymbolID) ast.ReferenceID {
	id := ast.ReferenceID(len(t.refs))
	t.refs = append(t.refs, Reference{ID: id, Symbol: symbol, Flags: flags, NodeID: node, Name: name})
	return id
}

func (t *ReferenceTable) Get(id ast.ReferenceID) *Reference { return &t.refs[id] }

func (t *ReferenceTable) Len() int { return len(t.refs) - 1 }

func (t *ReferenceTable) All() []Reference { return t.refs[1:] }

// Unresolved returns every reference that never found a declaring
// symbol — candidates for "undefined variable" diagnostics upstream,
// though this package stays conservative and doesn't report them
// itself since a free variable is completely legal (globals, ambient
// declarations this file doesn't see).
func (t *ReferenceTable) Unresolved() []Reference {
	var out []Reference
	for _, r := range t.refs[1:] {
		if !r.Symbol.Valid() {
			out = append(out, r)
		}
	}
	return out
}
