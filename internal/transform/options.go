package transform

// Options mirrors the handful of flags the original compiler's
// TypeScript-to-JavaScript pass actually branches on: which runtime to
// downlevel for, and the handful of TSC/Babel compatibility switches
// that change what a class body lowers to.
type Options struct {
	// Target selects which syntax the downleveler is allowed to leave
	// untouched. The zero value (ESNext, i.e. Engines{}) leaves every
	// engine unconstrained, so nothing gets lowered — set specific
	// engine minimums to opt into downleveling.
	Target Engines

	// UseDefineForClassFields mirrors tsconfig's `useDefineForClassFields`:
	// true emits class fields via `Object.defineProperty` semantics
	// (the default once `target` reaches ES2022), false emits a plain
	// assignment in the constructor (the legacy, ES2015-era behavior).
	UseDefineForClassFields bool

	// ExperimentalDecorators selects TC39 Stage 3 decorator semantics
	// (false, the default once a target natively understands class
	// decorators) versus the legacy experimentalDecorators calling
	// convention, lowered to calls of `__decorate`/`__param` helpers
	// emitted at the top of the file (true).
	ExperimentalDecorators bool

	// EmitDecoratorMetadata is carried through from configuration, but
	// no pass reads it: no design:type/design:paramtypes/
	// design:returntype metadata is emitted.
	EmitDecoratorMetadata bool
}
