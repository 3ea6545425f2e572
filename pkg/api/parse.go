package api

import (
	"github.com/jsforge/jsforge/internal/arena"
	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/logger"
	"github.com/jsforge/jsforge/internal/parser"
)

// ParseOptions mirrors the recognized parser.Options plus the one
// knob every caller has to pick up front: which grammar entry point
// and module semantics the file uses.
type ParseOptions struct {
	SourceType SourceType

	JSX                        bool
	ParseRegularExpression     bool
	AllowReturnOutsideFunction bool
	PreserveParens             bool
	AllowV8Intrinsics          bool
}

// ParseResult is everything Parse produces for one file.
type ParseResult struct {
	Program      *ast.Program
	Comments     []ast.Comment
	ModuleRecord []parser.ModuleRecordEntry
	Diagnostics  []Diagnostic
}

// Parse runs the recursive-descent parser over source, recovering
// from syntax errors rather than aborting — a malformed file still
// comes back with a best-effort Program and the errors that explain
// what went wrong.
func Parse(file, source string, opts ParseOptions) ParseResult {
	ar := arena.New(len(source))
	log := logger.NewLog()
	res := parser.Parse(ar, log, file, source, opts.SourceType, parser.Options{
		JSX:                        opts.JSX,
		ParseRegularExpression:     opts.ParseRegularExpression,
		AllowReturnOutsideFunction: opts.AllowReturnOutsideFunction,
		PreserveParens:             opts.PreserveParens,
		AllowV8Intrinsics:          opts.AllowV8Intrinsics,
	})
	return ParseResult{
		Program:      res.Program,
		Comments:     res.Comments,
		ModuleRecord: res.ModuleRecord,
		Diagnostics:  diagnosticsFrom(file, source, log.Done()),
	}
}
