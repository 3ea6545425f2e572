package semantic

import "github.com/jsforge/jsforge/internal/ast"

// SymbolKind classifies how a binding behaves for hoisting, TDZ, and
// redeclaration purposes (spec §3.3). The split mirrors the teacher's
// SymbolKind enum, trimmed to what a single-file (non-bundling)
// semantic pass needs.
type SymbolKind uint8

const (
	// SymbolHoisted covers "var" (function declarations and parameters
	// have their own kinds below): redeclaration in the same scope is
	// legal and the binding is hoisted to the nearest function/module
	// scope.
	SymbolHoisted SymbolKind = iota
	SymbolHoistedFunction
	SymbolBlockScoped // let
	SymbolConst
	SymbolCatchIdentifier
	SymbolClass
	SymbolImport
	SymbolLabel
	SymbolTSEnum
	SymbolTSNamespace
	SymbolTSTypeAlias
	SymbolTSInterface
	SymbolParameter
)

func (k SymbolKind) IsHoisted() bool {
	return k == SymbolHoisted || k == SymbolHoistedFunction || k == SymbolParameter
}

func (k SymbolKind) IsBlockScoped() bool {
	return k == SymbolBlockScoped || k == SymbolConst || k == SymbolClass
}

// SymbolFlags records boolean bookkeeping that doesn't merit its own
// field, matching the teacher's "booleans as flags, not fields" rule
// for symbols.
type SymbolFlags uint16

const (
	FlagExported SymbolFlags = 1 << iota
	FlagTypeOnly                // a TS `type`/`interface`/ambient-only binding
	FlagUsedBeforeDeclared       // Analyze never sets this flag; TDZ uses are not tracked
	FlagConstantAssignedOnce
)

func (f SymbolFlags) Has(flag SymbolFlags) bool { return f&flag != 0 }

// Symbol is one named binding, scoped to the Scope it was declared in
// (spec §3.3).
type Symbol struct {
	ID         ast.SymbolID
	Name       string
	Span       ast.Span
	Kind       SymbolKind
	Flags      SymbolFlags
	ScopeID    ast.ScopeID
	DeclNodeID ast.NodeID
	UseCount   uint32
}

// SymbolTable owns every Symbol built for one program, indexed densely
// by SymbolID starting at 1 (0 is "no symbol", matching ast.SymbolID's
// own zero-value convention).
type SymbolTable struct {
	symbols []Symbol
}

func newSymbolTable() *SymbolTable {
	// Index 0 is reserved so SymbolID zero means "unresolved".
	return &SymbolTable{symbols: make([]Symbol, 1)}
}

func (t *SymbolTable) declare(name string, span ast.Span, kind SymbolKind, scope ast.ScopeID, declNode ast.NodeID) ast.SymbolID {
	id := ast.SymbolID(len(t.symbols))
	t.symbols = append(t.symbols, Symbol{
		ID: id, Name: name, Span: span, Kind: kind, ScopeID: scope, DeclNodeID: declNode,
	})
	return id
}

// Get returns the Symbol for id. It panics on an out-of-range id,
// since a caller holding a SymbolID it didn't get from this table (or
// from a Reference this table resolved) is an internal invariant
// violation, not a recoverable condition.
func (t *SymbolTable) Get(id ast.SymbolID) *Symbol { return &t.symbols[id] }

// Len returns the number of declared symbols, not counting the
// reserved zero slot.
func (t *SymbolTable) Len() int { return len(t.symbols) - 1 }

// All iterates every declared symbol in declaration order.
func (t *SymbolTable) All() []Symbol { return t.symbols[1:] }

func (t *SymbolTable) markUse(id ast.SymbolID) {
	if id.Valid() {
		t.symbols[id].UseCount++
	}
}

func (t *SymbolTable) setFlag(id ast.SymbolID, flag SymbolFlags) {
	if id.Valid() {
		t.symbols[id].Flags |= flag
	}
}
