// Package estree renders a parsed Program as ESTree-compatible JSON
// (spec §6.1): every node becomes an object tagged by a "type" string,
// spans become top-level "start"/"end" integers, and fields are
// spelled in camelCase. internal/ast's Expr/Stmt/Pattern wrappers are
// themselves untagged unions (a concrete *E*/*S*/*P* struct behind an
// interface) — this package walks that shape generically by
// reflection rather than hand-writing a case per node kind, since the
// AST's own closed-union discipline (every variant already has an
// exhaustive isExpr/isStmt/isPattern marker) means a single walker
// that asks "what concrete type is behind this interface" covers
// every node automatically, including ones added to internal/ast
// after this package was written.
package estree

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jsforge/jsforge/internal/ast"
)

// Options controls how Serialize renders a Program.
type Options struct {
	// UTF16Offsets rewrites every span from UTF-8 byte offsets to
	// UTF-16 code unit offsets in a single pass over source before any
	// node is visited, matching the ecosystem default most JS tooling
	// expects (spec §6.1's "offset conversion" paragraph). Left false,
	// spans are reported as UTF-8 byte offsets.
	UTF16Offsets bool
}

// Node is the generic JSON shape every AST node renders to: an
// ordered-enough map (json.Marshal on a map[string]interface{} sorts
// keys itself, so callers get stable output without this package
// tracking field order).
type Node = map[string]interface{}

// Serialize renders prog as an ESTree-shaped document: a top-level
// "Program" node with a "body" array, plus a flat "comments" array
// attached the way spec §6.1 describes (a hashbang becomes the first
// synthetic Line comment).
func Serialize(prog *ast.Program, source string, opts Options) Node {
	conv := identityOffset
	if opts.UTF16Offsets {
		conv = utf16OffsetTable(source)
	}
	w := &walker{conv: conv}

	body := make([]interface{}, len(prog.Body))
	for i := range prog.Body {
		body[i] = w.stmt(prog.Body[i])
	}

	node := Node{
		"type":       "Program",
		"sourceType": sourceTypeString(prog.SourceType),
		"body":       body,
		"comments":   w.comments(prog),
	}
	if len(prog.Body) > 0 {
		node["start"] = w.conv(prog.Body[0].Span.Loc.Start)
		node["end"] = w.conv(lastSpanEnd(prog.Body))
	} else {
		node["start"] = int32(0)
		node["end"] = int32(0)
	}
	return node
}

func lastSpanEnd(body []ast.Stmt) int32 {
	last := body[len(body)-1]
	return last.Span.End()
}

func sourceTypeString(t ast.SourceType) string {
	if t.IsModule() {
		return "module"
	}
	return "script"
}

// walker carries the active offset-conversion function so every span
// in the tree (node spans, comment spans, the hashbang span) goes
// through the same pass.
type walker struct {
	conv func(int32) int32
}

func (w *walker) comments(prog *ast.Program) []interface{} {
	var out []interface{}
	if prog.Hashbang != nil {
		out = append(out, Node{
			"type":  "Line",
			"value": strings.TrimPrefix(prog.Hashbang.Text, "#!"),
			"start": w.conv(prog.Hashbang.Span.Loc.Start),
			"end":   w.conv(prog.Hashbang.Span.End()),
		})
	}
	for _, c := range prog.Comments {
		kind := "Line"
		if c.Kind == ast.CommentBlock {
			kind = "Block"
		}
		out = append(out, Node{
			"type":  kind,
			"value": commentValue(c),
			"start": w.conv(c.Span.Loc.Start),
			"end":   w.conv(c.Span.End()),
		})
	}
	return out
}

// commentValue strips the delimiters Comment.Text keeps, since ESTree
// comment nodes carry only the text between them.
func commentValue(c ast.Comment) string {
	if c.Kind == ast.CommentBlock {
		s := strings.TrimPrefix(c.Text, "/*")
		return strings.TrimSuffix(s, "*/")
	}
	return strings.TrimPrefix(c.Text, "//")
}

func (w *walker) stmt(s ast.Stmt) Node {
	return w.wrap(s.Span, s.Data)
}

func (w *walker) expr(e ast.Expr) Node {
	return w.wrap(e.Span, e.Data)
}

func (w *walker) pattern(p ast.Pattern) Node {
	return w.wrap(p.Span, p.Data)
}

// wrap renders one tagged-union node: its concrete Data's exported
// fields, plus "type" (derived from the Go variant name) and
// "start"/"end" from span.
func (w *walker) wrap(span ast.Span, data interface{}) Node {
	if data == nil {
		return nil
	}
	node := w.structFields(reflect.ValueOf(data))
	node["type"] = typeNameFor(data)
	node["start"] = w.conv(span.Loc.Start)
	node["end"] = w.conv(span.End())
	return node
}

// structFields walks every exported field of the struct v points to
// (or is), converting PascalCase Go names to camelCase ESTree names
// and recursively rendering each field's value.
func (w *walker) structFields(v reflect.Value) Node {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return Node{}
		}
		v = v.Elem()
	}
	node := Node{}
	if v.Kind() != reflect.Struct {
		return node
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		if f.Name == "Span" || f.Name == "ID" {
			// Span is already flattened into start/end by wrap; ID has
			// no ESTree equivalent and is only meaningful post-semantic-
			// analysis, not part of the syntax tree shape.
			continue
		}
		node[camelCase(f.Name)] = w.value(v.Field(i))
	}
	return node
}

// value renders one Go field value into its ESTree JSON equivalent,
// recursing through the wrapper types (Expr/Stmt/Pattern), pointers,
// slices, and nested structs.
func (w *walker) value(v reflect.Value) interface{} {
	switch vv := v.Interface().(type) {
	case ast.Expr:
		return w.expr(vv)
	case *ast.Expr:
		if vv == nil {
			return nil
		}
		return w.expr(*vv)
	case ast.Stmt:
		return w.stmt(vv)
	case *ast.Stmt:
		if vv == nil {
			return nil
		}
		return w.stmt(*vv)
	case ast.Pattern:
		return w.pattern(vv)
	case *ast.Pattern:
		if vv == nil {
			return nil
		}
		return w.pattern(*vv)
	}

	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = w.value(v.Index(i))
		}
		return out
	case reflect.Struct:
		return w.structFields(v)
	case reflect.Map:
		out := Node{}
		keys := v.MapKeys()
		strKeys := make([]string, len(keys))
		for i, k := range keys {
			strKeys[i] = fmt.Sprintf("%v", k.Interface())
		}
		sort.Strings(strKeys)
		for _, k := range strKeys {
			mv := v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key()))
			out[k] = w.value(mv)
		}
		return out
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return w.value(v.Elem())
	default:
		if stringer, ok := v.Interface().(fmt.Stringer); ok {
			return stringer.String()
		}
		return v.Interface()
	}
}

// camelCase lowercases the leading run of capitals a Go exported name
// starts with — "JSX" stays "jsx", "ID" stays "id", "TypeArguments"
// becomes "typeArguments" — which is the ESTree convention for every
// field this AST actually has.
func camelCase(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	end := 1
	for end < len(r) && r[end] >= 'A' && r[end] <= 'Z' {
		end++
	}
	if end < len(r) {
		end--
		if end == 0 {
			end = 1
		}
	}
	return strings.ToLower(string(r[:end])) + string(r[end:])
}

// typeNameFor derives the ESTree "type" tag from the concrete Go
// variant behind an Expr/Stmt/Pattern's Data field: strip the single-
// letter E/S/P discriminator prefix every variant name carries
// (EIdentifier, SIfStatement's SIf, PArray, ...) and apply the
// well-known override when this package has one, falling back to the
// bare stripped name for the long tail of TS/JSX constructs that have
// no single canonical ESTree node (mapped types, satisfies
// expressions, and similar) — those still get a stable, readable
// type tag, just not one drawn from the ESTree spec itself.
func typeNameFor(data interface{}) string {
	name := reflect.TypeOf(data).Elem().Name()
	stripped := strings.TrimPrefix(strings.TrimPrefix(strings.TrimPrefix(name, "E"), "S"), "P")
	if override, ok := estreeNames[name]; ok {
		return override
	}
	return stripped
}

func identityOffset(b int32) int32 { return b }

// utf16OffsetTable builds the byte->UTF-16-unit converter spec §6.1
// asks for: a single forward pass over source tracking how many
// UTF-16 code units each byte offset corresponds to (an astral-plane
// rune costs 2 units but however many bytes UTF-8 needs; everything
// else costs 1 unit per rune).
func utf16OffsetTable(source string) func(int32) int32 {
	table := make([]int32, len(source)+1)
	var units int32
	i := 0
	for i < len(source) {
		table[i] = units
		r, size := utf8.DecodeRuneInString(source[i:])
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		i += size
	}
	table[len(source)] = units
	return func(b int32) int32 {
		if b < 0 {
			return b
		}
		if int(b) >= len(table) {
			return table[len(table)-1]
		}
		return table[b]
	}
}
