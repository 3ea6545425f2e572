package transform

// Feature is one bit of syntax the downleveler knows how to rewrite
// into an older equivalent. Named the same way compat.JSFeature is in
// the teacher's own table, but kept to a bitmask over the handful of
// features this package tracks (ClassPrivateMethod and
// ClassStaticBlock are tracked but no pass lowers them) rather than
// the full list
// esbuild tracks (esbuild's per-engine version table, js_table.go,
// wasn't part of the retrieved sources this port draws from).
type Feature uint16

const (
	OptionalChain Feature = 1 << iota
	NullishCoalescing
	LogicalAssignment
	ClassPrivateField
	ClassPrivateMethod
	ClassField
	ClassStaticBlock
	Exponentiation
)

func (f Feature) Has(want Feature) bool { return f&want != 0 }

// Engines is a set of minimum runtime versions, parsed from the
// engine=version pairs a caller passes as `target`. Only the engines
// this package's feature table actually branches on are kept as
// fields; an engine the caller never mentions is treated as
// "unconstrained," i.e. assumed to already support everything.
type Engines struct {
	Chrome  int // 0 means unconstrained
	Node    int
	Safari  int
	Firefox int
	ES      int // ES2015 == 2015, ES2020 == 2020, and so on; 0 == ESNext
}

// Supported reports which Features are safe to leave untouched for
// this engine set. A feature is supported only if every engine the
// caller constrained meets its minimum version — an engine left at 0
// is skipped, matching esbuild's "unconstrained platforms don't hold
// back a feature" rule.
func (e Engines) Supported() Feature {
	var supported Feature
	for _, f := range []struct {
		feature Feature
		table   table
	}{
		{OptionalChain, table{chrome: 80, node: 14, safari: 131, firefox: 74, es: 2020}},
		{NullishCoalescing, table{chrome: 80, node: 14, safari: 131, firefox: 72, es: 2020}},
		{LogicalAssignment, table{chrome: 85, node: 15, safari: 140, firefox: 79, es: 2021}},
		{ClassField, table{chrome: 73, node: 12, safari: 141, firefox: 69, es: 2022}},
		{ClassPrivateField, table{chrome: 84, node: 12, safari: 141, firefox: 90, es: 2022}},
		{ClassPrivateMethod, table{chrome: 84, node: 12, safari: 150, firefox: 90, es: 2022}},
		{ClassStaticBlock, table{chrome: 94, node: 16, safari: 160, firefox: 93, es: 2022}},
		{Exponentiation, table{chrome: 52, node: 7, safari: 101, firefox: 52, es: 2016}},
	} {
		if f.table.satisfiedBy(e) {
			supported |= f.feature
		}
	}
	return supported
}

// Lower reports whether the downleveler should rewrite code using
// this feature for these engines — the inverse of Supported, spelled
// the way call sites read most naturally ("lower optional chains?").
func (e Engines) Lower(f Feature) bool { return !e.Supported().Has(f) }

type table struct {
	chrome, node, safari, firefox, es int
}

func (t table) satisfiedBy(e Engines) bool {
	if e.Chrome != 0 && e.Chrome < t.chrome {
		return false
	}
	if e.Node != 0 && e.Node < t.node {
		return false
	}
	if e.Safari != 0 && e.Safari < t.safari {
		return false
	}
	if e.Firefox != 0 && e.Firefox < t.firefox {
		return false
	}
	if e.ES != 0 && e.ES < t.es {
		return false
	}
	return true
}

// ESNext treats every engine as unconstrained: nothing gets lowered.
var ESNext = Engines{}
