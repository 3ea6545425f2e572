package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsforge/jsforge/pkg/api"
)

func TestParseReportsSyntaxDiagnosticsWithoutAborting(t *testing.T) {
	result := api.Parse("broken.ts", "const x =", api.ParseOptions{SourceType: api.SourceTypeModule})
	require.NotNil(t, result.Program)
	assert.True(t, api.HasErrors(result.Diagnostics))
}

func TestParseThenCodegenRoundTripsSimpleModule(t *testing.T) {
	source := "export const greeting = 'hi';\n"
	parsed := api.Parse("greeting.js", source, api.ParseOptions{SourceType: api.SourceTypeModule})
	require.Empty(t, parsed.Diagnostics)

	out := api.Codegen(parsed.Program, api.CodegenOptions{})
	assert.Contains(t, string(out.JS), "greeting")
}

func TestTransformErasesTypeAnnotationsThroughTheFacade(t *testing.T) {
	source := "function add(a: number, b: number): number { return a + b }"
	parsed := api.Parse("add.ts", source, api.ParseOptions{SourceType: api.SourceTypeModule})
	require.Empty(t, parsed.Diagnostics)

	transformed := api.Transform(parsed.Program, api.TransformOptions{})
	out := api.Codegen(transformed.Program, api.CodegenOptions{})

	assert.NotContains(t, string(out.JS), ": number")
}

func TestBuildSemanticThenLintFindsUnusedVar(t *testing.T) {
	source := "function f() { const unused = 1; return 2 }"
	parsed := api.Parse("f.js", source, api.ParseOptions{SourceType: api.SourceTypeModule})
	require.Empty(t, parsed.Diagnostics)

	sem := api.BuildSemantic("f.js", source, parsed.Program, api.BuildSemanticOptions{})
	require.Empty(t, sem.Diagnostics)

	result := api.Lint("f.js", source, parsed.Program, sem.Semantic, api.LintSettings{})
	found := false
	for _, d := range result.Diagnostics {
		if d.RuleName == "eslint/no-unused-vars" {
			found = true
		}
	}
	assert.True(t, found, "expected the unused local to be flagged, got %+v", result.Diagnostics)
}

func TestMinifyFoldsConstantsInPlace(t *testing.T) {
	source := "const x = 1 + 2;"
	parsed := api.Parse("x.js", source, api.ParseOptions{SourceType: api.SourceTypeModule})
	require.Empty(t, parsed.Diagnostics)

	sem := api.BuildSemantic("x.js", source, parsed.Program, api.BuildSemanticOptions{})
	minified := api.Minify(parsed.Program, sem.Semantic, api.MinifyOptions{FoldConstants: true})
	out := api.Codegen(minified.Program, api.CodegenOptions{})

	assert.Contains(t, string(out.JS), "3")
}

func TestFormatProducesDeterministicOutput(t *testing.T) {
	source := "const   x=1"
	parsed := api.Parse("x.js", source, api.ParseOptions{SourceType: api.SourceTypeModule})
	require.Empty(t, parsed.Diagnostics)

	first := api.Format(parsed.Program, api.FormatOptions{})
	second := api.Format(parsed.Program, api.FormatOptions{})
	assert.Equal(t, first.Code, second.Code)
}

func TestIsolatedDeclarationsStripsFunctionBodies(t *testing.T) {
	source := "export function add(a: number, b: number): number { return a + b }"
	parsed := api.Parse("add.ts", source, api.ParseOptions{SourceType: api.SourceTypeModule})
	require.Empty(t, parsed.Diagnostics)

	result := api.IsolatedDeclarations("add.ts", source, parsed.Program, api.IsolatedDeclarationsOptions{})
	out := api.Codegen(result.Program, api.CodegenOptions{})

	assert.NotContains(t, string(out.JS), "return a + b")
}
