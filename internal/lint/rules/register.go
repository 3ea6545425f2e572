package rules

import "github.com/jsforge/jsforge/internal/lint"

// Register adds every built-in rule this package ships to reg. It
// lives here rather than in internal/lint itself so that package can
// stay ignorant of any specific rule's dependencies (depgraph,
// regexp, ...) — the kernel only needs the Rule interface.
func Register(reg *lint.Registry) {
	reg.Register(NewNoUnusedVars())
	reg.Register(NewNoExtraneousDependencies())
}
