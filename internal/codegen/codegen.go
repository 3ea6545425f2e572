// Package codegen turns a parsed Program back into source text (spec
// §6.2, component C6), optionally alongside a source map. The printer
// shape — one struct accumulating output bytes plus running state for
// indentation and the last thing printed — is ported from esbuild's
// internal/js_printer; source-map production is wired through
// internal/sourcemap.Builder instead of a bundler-grade chunk joiner
// since this module never joins more than one file's output.
package codegen

import (
	"strconv"
	"strings"

	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/sourcemap"
)

// Options controls how Print renders a Program.
type Options struct {
	// Indent is the unit ("  " by default) repeated per nesting level.
	Indent string

	// ASCIIOnly escapes every non-ASCII rune in string/template literals
	// as \uXXXX instead of emitting it verbatim.
	ASCIIOnly bool

	// AddSourceMappings builds a source map alongside the text. Source
	// is the original text the Program was parsed from, used to turn
	// each node's span into a line/column pair.
	AddSourceMappings bool
	Source            string
	SourceURL         string
	OutputFile        string
}

// Result is everything Print produces.
type Result struct {
	JS  []byte
	Map *sourcemap.File // non-nil only when Options.AddSourceMappings is set
}

type printer struct {
	opts Options
	js   []byte
	sm   *sourcemap.Builder

	indent int

	// prevNumEnd and prevOpEnd let the printer decide whether it needs
	// a defensive space to avoid two adjacent tokens merging into a
	// different one (e.g. "1 .x" vs "1.x", "a + +b" vs "a ++b").
	prevNumEnd int
	prevOpEnd  int
}

// Print renders prog as source text.
func Print(prog *ast.Program, opts Options) Result {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	p := &printer{opts: opts, prevNumEnd: -1, prevOpEnd: -1}
	if opts.AddSourceMappings {
		p.sm = sourcemap.NewBuilder(opts.Source)
	}

	if prog.Hashbang != nil {
		p.print(prog.Hashbang.Text)
		p.print("\n")
	}
	for _, d := range prog.Directives {
		p.printIndent()
		p.printQuoted(d)
		p.print(";\n")
	}
	p.printStmtList(prog.Body)

	res := Result{JS: p.js}
	if p.sm != nil {
		res.Map = p.sm.GenerateFile(opts.SourceURL, opts.Source, opts.OutputFile)
	}
	return res
}

// PrintExpr renders a single expression in isolation, at the lowest
// precedence level (so it never gets wrapped in parens it wouldn't
// need as a top-level value). Other packages that need precedence-
// correct text for one subtree without a whole Program — the
// formatter's fallback path for node kinds it doesn't lay out itself,
// a linter's autofix — use this instead of rebuilding the printer.
func PrintExpr(e ast.Expr) string {
	p := &printer{opts: Options{Indent: "  "}, prevNumEnd: -1, prevOpEnd: -1}
	p.printExpr(e, lLowest)
	return string(p.js)
}

// PrintStmt renders a single statement in isolation, indentation-free.
func PrintStmt(s ast.Stmt) string {
	p := &printer{opts: Options{Indent: "  "}, prevNumEnd: -1, prevOpEnd: -1}
	p.printStmt(s)
	return strings.TrimSuffix(string(p.js), "\n")
}

func (p *printer) print(text string) {
	if p.sm != nil {
		p.sm.Advance(text)
	}
	p.js = append(p.js, text...)
}

func (p *printer) printIndent() {
	for i := 0; i < p.indent; i++ {
		p.print(p.opts.Indent)
	}
}

// mark records that the generated position the printer is currently
// at corresponds to span's start in the original source, for source
// map purposes. name carries the pre-rename identifier name, or "" if
// this mapping isn't for a renamed identifier.
func (p *printer) mark(span ast.Span, name string) {
	if p.sm != nil {
		p.sm.AddMapping(span.Loc.Start, name)
	}
}

// printQuoted writes s as a double-quoted JS string literal, escaping
// control characters, backslashes, and the quote character; non-ASCII
// runes are escaped too when Options.ASCIIOnly is set.
func (p *printer) printQuoted(s string) {
	p.print(quoteString(s, p.opts.ASCIIOnly))
}

func quoteString(s string, asciiOnly bool) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case ' ':
			b.WriteString(`\u2028`)
		case ' ':
			b.WriteString(`\u2029`)
		default:
			if r < 0x20 {
				b.WriteString(`\u`)
				hex := strconv.FormatInt(int64(r), 16)
				for len(hex) < 4 {
					hex = "0" + hex
				}
				b.WriteString(hex)
			} else if asciiOnly && r > 0x7E {
				if r > 0xFFFF {
					r -= 0x10000
					hi := 0xD800 + (r >> 10)
					lo := 0xDC00 + (r & 0x3FF)
					b.WriteString(`\u`)
					b.WriteString(pad4(strconv.FormatInt(int64(hi), 16)))
					b.WriteString(`\u`)
					b.WriteString(pad4(strconv.FormatInt(int64(lo), 16)))
				} else {
					b.WriteString(`\u`)
					b.WriteString(pad4(strconv.FormatInt(int64(r), 16)))
				}
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func pad4(hex string) string {
	for len(hex) < 4 {
		hex = "0" + hex
	}
	return hex
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) && (v != 0 || !isNegativeZero(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func isNegativeZero(v float64) bool {
	return v == 0 && strconv.FormatFloat(v, 'g', -1, 64)[0] == '-'
}
