package api

import (
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/isolated"
	"github.com/jsforge/jsforge/internal/logger"
)

// IsolatedDeclarationsOptions mirrors isolated.Options.
type IsolatedDeclarationsOptions = isolated.Options

// IsolatedDeclarationsResult is the generated .d.ts-equivalent
// program, plus the diagnostics raised for any exported declaration
// the emitter couldn't strip without running real type inference.
type IsolatedDeclarationsResult struct {
	Program     *ast.Program
	Diagnostics []Diagnostic
}

// IsolatedDeclarations produces prog's declaration-file equivalent
// without running full type inference, the same contract
// TypeScript's own --isolatedDeclarations flag makes: every exported
// declaration survives with its body stripped and its type either
// already annotated, locally inferable from a literal return, or
// flagged with a diagnostic when neither holds.
func IsolatedDeclarations(file, source string, prog *ast.Program, opts IsolatedDeclarationsOptions) IsolatedDeclarationsResult {
	log := logger.NewLog()
	out := isolated.Emit(prog, source, log, opts)
	return IsolatedDeclarationsResult{
		Program:     out,
		Diagnostics: diagnosticsFrom(file, source, log.Done()),
	}
}
