// Package api is the single façade component C13 describes: every
// other package in this module is an internal implementation detail,
// and a consumer embedding jsforge as a library — or cmd/jsforge
// itself — talks to it exclusively through the functions here. Each
// function takes an Options struct and returns a Result struct
// holding the artifact it produced plus the diagnostics vector
// accumulated while producing it; none of them touch a global. A
// caller that wants the full pipeline chains them by hand, the same
// way a shell script chains single-purpose Unix tools:
//
//	package main
//
//	import (
//		"fmt"
//
//		"github.com/jsforge/jsforge/pkg/api"
//	)
//
//	func main() {
//		source := `const greeting: string = "hi"; console.log(greeting)`
//
//		parsed := api.Parse("greeting.ts", source, api.ParseOptions{
//			SourceType: api.SourceTypeModule,
//		})
//		sem := api.BuildSemantic("greeting.ts", source, parsed.Program, api.BuildSemanticOptions{})
//		transformed := api.Transform(parsed.Program, api.TransformOptions{})
//		out := api.Codegen(transformed.Program, api.CodegenOptions{})
//
//		fmt.Printf("%d diagnostics\n", len(parsed.Diagnostics)+len(sem.Diagnostics))
//		fmt.Println(string(out.JS))
//	}
//
// Every pass downstream of Parse is infallible at the Go signature
// level, the same contract internal/logger documents: a malformed
// input produces diagnostics, not a returned error. The exception is
// I/O and config decoding (reading a jsforge.yaml, writing an output
// file), which do return a plain Go error, since those failures have
// nothing to do with the program being compiled.
package api

import (
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/logger"
)

// SourceType mirrors ast.SourceType so callers outside this module
// never need to import internal/ast just to pick a parse mode.
type SourceType = ast.SourceType

const (
	SourceTypeScript     = ast.SourceTypeScript
	SourceTypeModule     = ast.SourceTypeModule
	SourceTypeDefinition = ast.SourceTypeDefinition
)

// Diagnostic is the façade's rendering of one logger.Msg: a resolved,
// human-facing position instead of a raw byte span, so a consumer
// that never touches internal/ast can still print a useful message.
type Diagnostic struct {
	Severity string
	Kind     string
	Text     string
	Help     string
	RuleName string

	File   string
	Line   int // 1-based; 0 when the diagnostic has no resolvable position
	Column int // 0-based, in bytes
}

// diagnosticsFrom renders a log's accumulated messages against file
// and source, resolving each message's primary label into a Location
// the way the CLI's own diagnostic renderer will need to. Passes
// don't resolve this themselves, since most callers during a build
// only care whether HasErrors is true and resolving every position
// up front would be wasted work on the happy path.
func diagnosticsFrom(file, source string, msgs []logger.Msg) []Diagnostic {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(msgs))
	for i, m := range msgs {
		d := Diagnostic{
			Severity: m.Severity.String(),
			Kind:     m.Kind.String(),
			Text:     m.Text,
			Help:     m.Help,
			RuleName: m.RuleName,
			File:     file,
		}
		loc := m.Location
		if loc == nil && len(m.Labels) > 0 {
			loc = logger.LocationOf(source, file, m.Labels[0].Span)
		}
		if loc != nil {
			d.Line = loc.Line
			d.Column = loc.Column
		}
		out[i] = d
	}
	return out
}

// RenderDiagnostics builds Diagnostics from a raw logger.Msg slice —
// the path ApplyLintFixes's leftover messages take, since those come
// back from internal/lint rather than from one of this package's own
// Result structs.
func RenderDiagnostics(file, source string, msgs []logger.Msg) []Diagnostic {
	return diagnosticsFrom(file, source, msgs)
}

// HasErrors reports whether any diagnostic in the slice is at error
// severity, the same check a driver makes against logger.Log.HasErrors
// before deciding whether to keep going to the next pass.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == logger.SeverityError.String() {
			return true
		}
	}
	return false
}
