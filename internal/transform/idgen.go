package transform

import "strconv"

// namer hands out identifiers for the temporaries a lowering pass
// introduces (captured chain bases, assignment targets, and so on;
// private-field WeakMaps are named from the field instead). It has no visibility into the file's real bindings — this
// package runs ahead of a full symbol table — so it leans on a prefix
// no JavaScript author types by hand rather than a collision check.
// esbuild can afford real uniqueness because its renamer walks the
// whole symbol table after the fact; this port doesn't have one, so
// the prefix is this pass's only protection.
type namer struct {
	prefix string
	n      int
}

func newNamer(prefix string) *namer {
	if prefix == "" {
		prefix = "_jsforge_"
	}
	return &namer{prefix: prefix}
}

func (m *namer) next() string {
	m.n++
	return m.prefix + strconv.Itoa(m.n)
}
