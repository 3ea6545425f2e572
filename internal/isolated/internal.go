package isolated

import (
	"sort"
	"strings"

	"github.com/jsforge/jsforge/internal/ast"
)

// internalAnnotations is the lookup table built once per program: the
// start offset of every declaration whose nearest preceding JSDoc
// comment contains "@internal".
//
// The lexer records every comment's byte span but — unlike oxc, whose
// parser threads comments through a trivia-attachment pass as it
// builds the tree — this one never computes which node a comment
// precedes. So this package does that matching itself: for each
// "@internal" JSDoc comment, the nearest following declaration whose
// start is separated from the comment by whitespace only is the one
// it tags.
type internalAnnotations map[uint32]bool

func buildInternalAnnotations(prog *ast.Program, source string) internalAnnotations {
	set := make(internalAnnotations)

	starts := collectAnnotatableStarts(prog.Body)
	if len(starts) == 0 {
		return set
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	for _, c := range prog.Comments {
		if !c.IsJSDoc() || !strings.Contains(c.Text, "@internal") {
			continue
		}
		end := int(c.Span.End())
		i := sort.Search(len(starts), func(i int) bool { return int(starts[i]) >= end })
		if i == len(starts) {
			continue
		}
		start := starts[i]
		gap := source[clamp(end, 0, len(source)):clamp(int(start), 0, len(source))]
		if strings.TrimSpace(gap) == "" {
			set[uint32(start)] = true
		}
	}
	return set
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// collectAnnotatableStarts gathers the start offset of every node the
// rest of this package later tests with has(): top-level declarations
// (recursing into ambient module/global bodies), plus every class
// member's key, since a member can carry its own "@internal" tag.
func collectAnnotatableStarts(stmts []ast.Stmt) []int32 {
	var out []int32
	for i := range stmts {
		out = append(out, stmts[i].Span.Loc.Start)
		switch d := stmts[i].Data.(type) {
		case *ast.STSModuleDecl:
			out = append(out, collectAnnotatableStarts(d.Body)...)
		case *ast.SClassDecl:
			for _, m := range d.Class.Body {
				out = append(out, m.Key.Span.Loc.Start)
			}
		case *ast.SExportNamedDecl:
			if d.Decl != nil {
				out = append(out, collectAnnotatableStarts([]ast.Stmt{*d.Decl})...)
			}
		}
	}
	return out
}

func (set internalAnnotations) has(span ast.Span) bool {
	return set[uint32(span.Loc.Start)]
}
