// Package isolated implements the isolated-declarations emitter
// (component C11): it turns a parsed TypeScript program into its
// ".d.ts" equivalent without running full type inference, the way
// TypeScript's own --isolatedDeclarations mode works. Every exported
// declaration survives with its body stripped and its type either
// already-annotated, locally inferred (literal/annotated returns), or
// flagged with a diagnostic when neither is available.
package isolated

// Options mirrors the knobs the original Rust implementation exposes
// on IsolatedDeclarationsOptions.
type Options struct {
	// StripInternal omits declarations whose nearest preceding JSDoc
	// comment contains "@internal", matching TypeScript's
	// stripInternal tsconfig option.
	StripInternal bool
}
