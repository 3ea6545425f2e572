package semantic

import "github.com/jsforge/jsforge/internal/ast"

// BlockID indexes a CFG's own block table. Unlike SymbolID/ScopeID,
// block numbering is local to one CFG (one per function body plus one
// for the module top level) rather than global to the program, so it
// is a plain local type rather than one of ast's non-zero index types.
type BlockID uint32

// EdgeKind labels why two blocks are connected (spec §3.3).
type EdgeKind uint8

const (
	EdgeNormal EdgeKind = iota
	EdgeCondTrue
	EdgeCondFalse
	EdgeThrow
	EdgeReturn
	EdgeBreak
	EdgeContinue
)

type Edge struct {
	From, To BlockID
	Kind     EdgeKind
	Label    string // target label for a labelled break/continue edge
}

// BasicBlock holds the AST nodes that execute in sequence within it;
// NodeIDs let a later pass map back to the statements/expressions that produced each edge.
type BasicBlock struct {
	ID    BlockID
	Nodes []ast.NodeID
	Preds []BlockID
	Succs []BlockID
}

// CFG is one function body's (or the module top level's) control-flow
// graph (spec §3.3). It is built once by C5 and is read-only
// thereafter, like the rest of the semantic model.
type CFG struct {
	OwnerNodeID ast.NodeID // 0 for every graph Analyze builds; Result.FunctionCFGs' key identifies the function
	Blocks      []BasicBlock
	Edges       []Edge
	Entry       BlockID
	Exit        BlockID
}

func newCFG(owner ast.NodeID) *CFG {
	c := &CFG{OwnerNodeID: owner}
	c.Entry = c.newBlock()
	c.Exit = c.newBlock()
	return c
}

func (c *CFG) newBlock() BlockID {
	id := BlockID(len(c.Blocks))
	c.Blocks = append(c.Blocks, BasicBlock{ID: id})
	return id
}

func (c *CFG) block(id BlockID) *BasicBlock { return &c.Blocks[id] }

func (c *CFG) addEdge(from, to BlockID, kind EdgeKind, label string) {
	c.Edges = append(c.Edges, Edge{From: from, To: to, Kind: kind, Label: label})
	c.block(from).Succs = append(c.block(from).Succs, to)
	c.block(to).Preds = append(c.block(to).Preds, from)
}

func (c *CFG) appendNode(block BlockID, node ast.NodeID) {
	if node.Valid() {
		b := c.block(block)
		b.Nodes = append(b.Nodes, node)
	}
}
