// Package minify implements the three cooperating compaction passes
// (component C9): peephole constant folding, a CFG-shaped dead-code
// sweep over statement lists, and a scope-respecting identifier
// mangler. All three are optional and independently toggleable so a
// caller can, for instance, mangle without folding.
package minify

// Options controls which of the three passes run and how the mangler
// behaves.
type Options struct {
	// FoldConstants runs the peephole pass: constant arithmetic/logical
	// folding, typeof-on-literal, bracket-to-dot property access,
	// compound-assignment compaction. (Boolean-to-!0/!1 is not part of
	// it: Program collapses boolean literals on every run.)
	FoldConstants bool

	// RemoveDeadCode runs the statement-list sweep: unreachable code
	// after an unconditional terminator, declarations whose symbol is
	// never read, and single-use side-effect-free const inlining.
	RemoveDeadCode bool

	// ManglePrivate renames every symbol not excluded by KeepNames (and,
	// unless TopLevel is set, not declared in the module's top-level
	// scope) to the shortest available identifier in its scope.
	ManglePrivate bool

	// TopLevel additionally renames module-scope symbols. Left off by
	// default since a module's top-level bindings may be the surface
	// another file (or a <script> tag relying on global leakage) reaches
	// for by name.
	TopLevel bool

	// KeepNames leaves function and class declaration/expression names
	// untouched even when ManglePrivate is on, so `fn.name` and
	// stack-trace output keep reading naturally.
	KeepNames bool
}

// Default returns the options esbuild-style "minify: true" turns on:
// every pass enabled, top-level names left alone, function and class
// names mangled along with everything else (KeepNames off).
func Default() Options {
	return Options{
		FoldConstants:  true,
		RemoveDeadCode: true,
		ManglePrivate:  true,
		TopLevel:       false,
		KeepNames:      false,
	}
}
