package semantic

import "github.com/jsforge/jsforge/internal/ast"

// ScopeKind distinguishes the scope boundaries that matter for var
// hoisting, `this`/`arguments` binding, and label resolution (spec
// §3.3). Split into FunctionArgs/FunctionBody the way the teacher does
// (js_ast.go's ScopeFunctionArgs/ScopeFunctionBody) so that a default
// parameter initializer and the function body can have distinct
// scopes — a default value referencing a later parameter is a TDZ
// violation, but referencing the body's `let` declarations is not.
type ScopeKind uint8

const (
	ScopeModule ScopeKind = iota
	ScopeBlock
	ScopeFunctionArgs
	ScopeFunctionBody
	ScopeClassName // the name binding visible inside a class's own body
	ScopeClassBody
	ScopeClassStaticInit
	ScopeCatchBinding
	ScopeFor // the per-iteration scope a "for (let ...)" head introduces
	ScopeSwitch
	ScopeLabel
	ScopeTSEnum
	ScopeTSNamespace
)

// StopsHoisting reports whether a "var" declared inside this scope
// hoists no further than this boundary.
func (k ScopeKind) StopsHoisting() bool {
	return k == ScopeModule || k == ScopeFunctionArgs || k == ScopeFunctionBody || k == ScopeClassStaticInit || k == ScopeTSEnum || k == ScopeTSNamespace
}

// Scope is one node of the scope tree (spec §3.3). Bindings maps a
// name to the symbol currently visible under that name in this scope.
type Scope struct {
	ID       ast.ScopeID
	Kind     ScopeKind
	Parent   ast.ScopeID // 0 for the root/module scope
	Children []ast.ScopeID
	Bindings map[string]ast.SymbolID
	Span     ast.Span

	// Label is set for ScopeLabel scopes: the symbol of the label name
	// itself, in its own label namespace (spec §3.3, "Labels are in
	// their own namespace").
	Label ast.SymbolID
}

// ScopeTree owns every Scope built for one program, indexed densely by
// ScopeID starting at 1; scope 0 is reserved the same way symbol 0 is.
type ScopeTree struct {
	scopes []Scope
	root   ast.ScopeID
}

func newScopeTree() *ScopeTree {
	return &ScopeTree{scopes: make([]Scope, 1)}
}

func (t *ScopeTree) push(kind ScopeKind, parent ast.ScopeID) ast.ScopeID {
	id := ast.ScopeID(len(t.scopes))
	t.scopes = append(t.scopes, Scope{
		ID: id, Kind: kind, Parent: parent, Bindings: make(map[string]ast.SymbolID),
	})
	if parent.Valid() {
		p := &t.scopes[parent]
		p.Children = append(p.Children, id)
	} else {
		t.root = id
	}
	return id
}

func (t *ScopeTree) Get(id ast.ScopeID) *Scope { return &t.scopes[id] }

func (t *ScopeTree) Root() ast.ScopeID { return t.root }

// Len returns the number of scopes, not counting the reserved zero
// slot.
func (t *ScopeTree) Len() int { return len(t.scopes) - 1 }

func (t *ScopeTree) All() []Scope { return t.scopes[1:] }

// Resolve walks the scope chain outward from start looking for name.
// No scope kind models `with`: names inside a `with` body resolve by
// the same plain lexical walk as everywhere else.
func (t *ScopeTree) Resolve(start ast.ScopeID, name string) (ast.SymbolID, bool) {
	for id := start; id.Valid(); {
		s := &t.scopes[id]
		if sym, ok := s.Bindings[name]; ok {
			return sym, true
		}
		id = s.Parent
	}
	return 0, false
}

// FindHoistTarget walks outward from start to the nearest scope that
// stops hoisting, i.e. where a "var" declared at or under start
// actually lands.
func (t *ScopeTree) FindHoistTarget(start ast.ScopeID) ast.ScopeID {
	id := start
	for id.Valid() && !t.scopes[id].Kind.StopsHoisting() {
		id = t.scopes[id].Parent
	}
	return id
}
