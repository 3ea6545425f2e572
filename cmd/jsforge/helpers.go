package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsforge/jsforge/internal/config"
	"github.com/jsforge/jsforge/pkg/api"
)

// readSource loads path's contents, wrapping the error the way every
// other subcommand reports a config/IO failure.
func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("jsforge: read %s: %w", path, err)
	}
	return string(data), nil
}

// jsxFor reports whether path's extension implies JSX lexing.
func jsxFor(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsx", ".tsx":
		return true
	}
	return false
}

// parseOptionsFor builds the api.ParseOptions this CLI uses for every
// subcommand: module semantics by default (the common case for
// anything passed through a modern toolchain), JSX lexing switched on
// by extension.
func parseOptionsFor(path string) api.ParseOptions {
	return api.ParseOptions{
		SourceType: api.SourceTypeModule,
		JSX:        jsxFor(path),
	}
}

// printDiagnostics renders diags to stderr using the terminal's
// reported width to decide how much of each source line to show, the
// same width probe the rest of this module's diagnostic rendering
// relies on.
func printDiagnostics(diags []api.Diagnostic) {
	info := config.GetTerminalInfo(os.Stderr)
	width := info.Width
	if width <= 0 {
		width = 80
	}
	for _, d := range diags {
		loc := ""
		if d.Line > 0 {
			loc = fmt.Sprintf("%s:%d:%d: ", d.File, d.Line, d.Column)
		} else if d.File != "" {
			loc = d.File + ": "
		}
		line := fmt.Sprintf("%s%s: %s", loc, d.Severity, d.Text)
		if len(line) > width && width > 1 {
			line = line[:width-1] + "…"
		}
		fmt.Fprintln(os.Stderr, line)
		if d.Help != "" {
			fmt.Fprintf(os.Stderr, "  help: %s\n", d.Help)
		}
	}
}
