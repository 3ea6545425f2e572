// Package ast defines the closed set of tagged-variant AST nodes for
// JS/JSX/TS/TSX (spec.md §3.2, component C2) and the symbol/scope/
// reference tables consumed by semantic analysis (C5). Node references
// between packages use integer indices into per-program tables rather
// than pointers, per spec §9's "arena + indices instead of shared
// pointers" note — the arena that owns those tables is
// internal/arena.Arena.
package ast

import "github.com/jsforge/jsforge/internal/logger"

// Span is re-exported so every AST file can carry a span without a
// second import.
type Span = logger.Span

// NodeID is a dense, 1-based index into a Program's node table,
// assigned during semantic analysis (spec §3.2). Zero is "no node".
type NodeID uint32

func (id NodeID) Raw() uint32 { return uint32(id) }
func (id NodeID) Valid() bool { return id != 0 }

// SymbolID, ScopeID, and ReferenceID are non-zero indices into the
// tables built by semantic analysis (internal/semantic), per spec
// §3.3. They live here, not in internal/semantic, because AST nodes
// (EIdentifier.Ref, PIdentifier.Ref) carry them directly and the ast
// package must not import semantic (semantic imports ast, not the
// other way around — see spec §2's component dependency table).
type SymbolID uint32

func (id SymbolID) Raw() uint32  { return uint32(id) }
func (id SymbolID) Valid() bool  { return id != 0 }

type ScopeID uint32

func (id ScopeID) Raw() uint32 { return uint32(id) }
func (id ScopeID) Valid() bool { return id != 0 }

type ReferenceID uint32

func (id ReferenceID) Raw() uint32 { return uint32(id) }
func (id ReferenceID) Valid() bool { return id != 0 }

// Atom is an arena-interned string; see internal/arena.Atom. AST nodes
// hold the raw string content directly for simplicity of this
// package's public API — interning happens when the parser hands text
// to the arena, not at node-construction time.
type Atom = string

// SourceType selects the grammar entry point and module semantics.
type SourceType uint8

const (
	SourceTypeScript SourceType = iota
	SourceTypeModule
	SourceTypeDefinition // a .d.ts file: type-only, no runtime emit
)

func (t SourceType) IsModule() bool { return t == SourceTypeModule }

// CommentKind distinguishes `//` from `/* */`.
type CommentKind uint8

const (
	CommentLine CommentKind = iota
	CommentBlock
)

// NoAttachment is the sentinel AttachedTo value for a comment that
// isn't associated with any node.
const NoAttachment = ^uint32(0)

// Comment is a single line or block comment. A comment is a JSDoc
// comment iff Kind == CommentBlock, its Text begins with "/**", and
// its length exceeds 4 bytes (spec §3.1).
type Comment struct {
	Kind       CommentKind
	Span       Span
	Text       string // includes delimiters, e.g. "// x" or "/** x */"
	AttachedTo uint32 // start offset of the node this comment precedes, or NoAttachment
}

func (c Comment) IsJSDoc() bool {
	return c.Kind == CommentBlock && len(c.Text) > 4 && len(c.Text) >= 3 && c.Text[:3] == "/**"
}

// Hashbang is the optional `#!/usr/bin/env node` line at file start.
type Hashbang struct {
	Span Span
	Text string
}

// Program is the root of every parsed file.
type Program struct {
	SourceType SourceType
	Hashbang   *Hashbang
	Comments   []Comment
	Directives []string // "use strict" etc, in source order
	Body       []Stmt

	// NodeCount is the number of NodeIDs assigned to this program's tree
	// by semantic analysis; valid NodeIDs for this program are dense in
	// [1, NodeCount].
	NodeCount uint32
}

// ModifierKind enumerates every TS/ES declaration modifier. Source
// order among the modifiers present on a declaration is preserved by
// storing them as an ordered slice rather than a bitset, per spec
// §3.2 ("represented as an optional ordered sequence so source order
// is preserved").
type ModifierKind uint8

const (
	ModDeclare ModifierKind = iota
	ModExport
	ModDefault
	ModAbstract
	ModAsync
	ModConst
	ModStatic
	ModReadonly
	ModPublic
	ModProtected
	ModPrivate
	ModOverride
	ModAccessor
	ModIn
	ModOut
)

func (m ModifierKind) String() string {
	names := [...]string{
		"declare", "export", "default", "abstract", "async", "const",
		"static", "readonly", "public", "protected", "private",
		"override", "accessor", "in", "out",
	}
	if int(m) < len(names) {
		return names[m]
	}
	return "unknown"
}

// Modifier pairs a modifier kind with its source span, so a formatter
// or codegen pass that needs to preserve surrounding comments can.
type Modifier struct {
	Kind ModifierKind
	Span Span
}

// Modifiers is the ordered modifier sequence shared by every
// declaration kind that can carry one.
type Modifiers []Modifier

func (m Modifiers) Has(kind ModifierKind) bool {
	for _, mod := range m {
		if mod.Kind == kind {
			return true
		}
	}
	return false
}
