package minify

import (
	"sort"

	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/lexer"
	"github.com/jsforge/jsforge/internal/semantic"
)

// charFreq is a frequency histogram over the 64 characters that can
// appear in a minified identifier, ordered the same way esbuild's own
// CharFreq is: lowercase, uppercase, digits, "_", "$". Characters that
// show up often in the program's symbol names (each name counted once
// plus once per use) get assigned the shortest minified names first, which compresses slightly better under gzip
// than an arbitrary a/b/c/... ordering.
type charFreq [64]int32

const minifierTail = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_$"

func (f *charFreq) scan(text string, delta int32) {
	if delta == 0 {
		return
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'a' && c <= 'z':
			f[c-'a'] += delta
		case c >= 'A' && c <= 'Z':
			f[c-('A'-26)] += delta
		case c >= '0' && c <= '9':
			f[c+(52-'0')] += delta
		case c == '_':
			f[62] += delta
		case c == '$':
			f[63] += delta
		}
	}
}

type charAndCount struct {
	char  string
	count int32
	index byte
}

type byCountThenIndex []charAndCount

func (a byCountThenIndex) Len() int      { return len(a) }
func (a byCountThenIndex) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a byCountThenIndex) Less(i, j int) bool {
	return a[i].count > a[j].count || (a[i].count == a[j].count && a[i].index < a[j].index)
}

// nameMinifier turns a dense counter into the shortest identifier not
// yet handed out, biased by charFreq.compile toward the characters the
// source actually uses most.
type nameMinifier struct {
	head string
	tail string
}

var defaultNameMinifier = nameMinifier{
	head: "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_$",
	tail: minifierTail,
}

func (f *charFreq) compile() nameMinifier {
	arr := make(byCountThenIndex, 64)
	for i := 0; i < len(minifierTail); i++ {
		arr[i] = charAndCount{char: minifierTail[i : i+1], index: byte(i), count: f[i]}
	}
	sort.Sort(arr)

	var m nameMinifier
	for _, item := range arr {
		if item.char < "0" || item.char > "9" {
			m.head += item.char
		}
		m.tail += item.char
	}
	return m
}

func (m *nameMinifier) numberToName(i int) string {
	j := i % 54
	name := m.head[j : j+1]
	i /= 54
	for i > 0 {
		i--
		j := i % 64
		name += m.tail[j : j+1]
		i /= 64
	}
	return name
}

// Mangle renames symbols to the shortest available identifier in their
// scope, per spec §4.6. Renaming walks the scope tree top-down; each
// scope reserves every name assigned to any ancestor symbol (a
// simplification of the teacher's slot-reuse scheme, which lets
// unrelated sibling branches recycle the same slot number — here a
// name claimed anywhere up the chain is never reused by a descendant
// scope, trading a little compression for a renamer with no
// reservation bookkeeping beyond "the set of names above me").
func Mangle(prog *ast.Program, sem *semantic.Result, opts Options) {
	if !opts.ManglePrivate {
		return
	}

	reserved := map[string]bool{}
	for k := range lexer.Keywords {
		reserved[k] = true
	}
	for k := range lexer.StrictModeReservedWords {
		reserved[k] = true
	}
	for _, ref := range sem.References.Unresolved() {
		reserved[ref.Name] = true
	}

	var freq charFreq
	for _, sym := range sem.Symbols.All() {
		freq.scan(sym.Name, int32(sym.UseCount)+1)
	}
	minifier := freq.compile()

	names := make(map[ast.SymbolID]string)
	mangleScope(sem.Scopes, sem.Scopes.Root(), reserved, names, &minifier, sem, opts)

	applyNames(prog, names)
}

func mangleScope(
	tree *semantic.ScopeTree,
	id ast.ScopeID,
	inherited map[string]bool,
	names map[ast.SymbolID]string,
	minifier *nameMinifier,
	sem *semantic.Result,
	opts Options,
) {
	scope := tree.Get(id)

	type candidate struct {
		sym *semantic.Symbol
	}
	var candidates []candidate
	for _, symID := range scope.Bindings {
		sym := sem.Symbols.Get(symID)
		if !shouldMangle(sym, scope.Kind, opts) {
			continue
		}
		candidates = append(candidates, candidate{sym})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].sym.UseCount > candidates[j].sym.UseCount
	})

	local := make(map[string]bool, len(inherited)+len(candidates))
	for k := range inherited {
		local[k] = true
	}

	next := 0
	for _, c := range candidates {
		var name string
		for {
			name = minifier.numberToName(next)
			next++
			if !local[name] {
				break
			}
		}
		names[c.sym.ID] = name
		local[name] = true
	}

	for _, child := range scope.Children {
		mangleScope(tree, child, local, names, minifier, sem, opts)
	}
}

func shouldMangle(sym *semantic.Symbol, scopeKind semantic.ScopeKind, opts Options) bool {
	if scopeKind == semantic.ScopeModule && !opts.TopLevel {
		return false
	}
	if opts.KeepNames {
		switch sym.Kind {
		case semantic.SymbolClass:
			return false
		case semantic.SymbolHoistedFunction:
			return false
		}
	}
	if sym.Flags.Has(semantic.FlagExported) {
		return false
	}
	return true
}

// applyNames rewrites every EIdentifier/PIdentifier whose Ref has an
// assigned minified name.
func applyNames(prog *ast.Program, names map[ast.SymbolID]string) {
	r := &renameWalker{names: names}
	for i := range prog.Body {
		r.stmt(&prog.Body[i])
	}
}

type renameWalker struct{ names map[ast.SymbolID]string }

func (r *renameWalker) pattern(p *ast.Pattern) {
	switch d := p.Data.(type) {
	case *ast.PIdentifier:
		if name, ok := r.names[d.Ref]; ok {
			d.Name = name
		}
	case *ast.PArray:
		for i := range d.Elements {
			if d.Elements[i].Pattern != nil {
				r.pattern(d.Elements[i].Pattern)
			}
			if d.Elements[i].DefaultValue != nil {
				r.expr(d.Elements[i].DefaultValue)
			}
		}
	case *ast.PObject:
		for i := range d.Properties {
			pr := &d.Properties[i]
			if pr.Computed {
				r.expr(&pr.Key)
			}
			r.pattern(&pr.Value)
			if pr.DefaultValue != nil {
				r.expr(pr.DefaultValue)
			}
		}
		if d.Rest != nil {
			r.pattern(d.Rest)
		}
	case *ast.PAssign:
		r.pattern(&d.Target)
		r.expr(&d.Default)
	case *ast.PExpr:
		r.expr(&d.Value)
	}
}

func (r *renameWalker) params(params []ast.Param) {
	for i := range params {
		r.pattern(&params[i].Pattern)
		if params[i].DefaultValue != nil {
			r.expr(params[i].DefaultValue)
		}
	}
}

func (r *renameWalker) fn(fn *ast.Function) {
	if fn == nil {
		return
	}
	if fn.ID != nil {
		if name, ok := r.names[fn.ID.Ref]; ok {
			fn.ID.Name = name
		}
	}
	r.params(fn.Params)
	if fn.Body != nil {
		r.stmts(fn.Body.Stmts)
	}
}

func (r *renameWalker) class(c *ast.Class) {
	if c == nil {
		return
	}
	if c.ID != nil {
		if name, ok := r.names[c.ID.Ref]; ok {
			c.ID.Name = name
		}
	}
	if c.SuperClass != nil {
		r.expr(c.SuperClass)
	}
	for i := range c.Body {
		m := &c.Body[i]
		if m.Computed {
			r.expr(&m.Key)
		}
		if m.Fn != nil {
			r.fn(m.Fn)
		}
		if m.Value != nil {
			r.expr(m.Value)
		}
		if m.StaticBody != nil {
			r.stmts(m.StaticBody.Stmts)
		}
	}
}

func (r *renameWalker) stmts(list []ast.Stmt) {
	for i := range list {
		r.stmt(&list[i])
	}
}

func (r *renameWalker) stmt(s *ast.Stmt) {
	switch d := s.Data.(type) {
	case *ast.SExpr:
		r.expr(&d.Value)
	case *ast.SBlock:
		r.stmts(d.Body)
	case *ast.SIf:
		r.expr(&d.Test)
		r.stmt(&d.Consequent)
		if d.Alternate != nil {
			r.stmt(d.Alternate)
		}
	case *ast.SFor:
		if d.Init != nil {
			if d.Init.Decl != nil {
				r.stmt(&ast.Stmt{Data: d.Init.Decl})
			}
			if d.Init.Expr != nil {
				r.expr(d.Init.Expr)
			}
		}
		if d.Test != nil {
			r.expr(d.Test)
		}
		if d.Update != nil {
			r.expr(d.Update)
		}
		r.stmt(&d.Body)
	case *ast.SForIn:
		r.forHead(&d.Left)
		r.expr(&d.Right)
		r.stmt(&d.Body)
	case *ast.SForOf:
		r.forHead(&d.Left)
		r.expr(&d.Right)
		r.stmt(&d.Body)
	case *ast.SWhile:
		r.expr(&d.Test)
		r.stmt(&d.Body)
	case *ast.SDoWhile:
		r.stmt(&d.Body)
		r.expr(&d.Test)
	case *ast.SReturn:
		if d.Value != nil {
			r.expr(d.Value)
		}
	case *ast.SThrow:
		r.expr(&d.Value)
	case *ast.STry:
		r.stmts(d.Block.Body)
		if d.Catch != nil {
			if d.Catch.Param != nil {
				r.pattern(d.Catch.Param)
			}
			r.stmts(d.Catch.Body.Body)
		}
		if d.Finally != nil {
			r.stmts(d.Finally.Body)
		}
	case *ast.SSwitch:
		r.expr(&d.Discriminant)
		for i := range d.Cases {
			c := &d.Cases[i]
			if c.Test != nil {
				r.expr(c.Test)
			}
			r.stmts(c.Body)
		}
	case *ast.SLabeled:
		r.stmt(&d.Body)
	case *ast.SVarDecl:
		for i := range d.Declarations {
			r.pattern(&d.Declarations[i].ID)
			if d.Declarations[i].Init != nil {
				r.expr(d.Declarations[i].Init)
			}
		}
	case *ast.SFunctionDecl:
		r.fn(d.Fn)
	case *ast.SClassDecl:
		r.class(d.Class)
	case *ast.SExportNamedDecl:
		if d.Decl != nil {
			r.stmt(d.Decl)
		}
	case *ast.SExportDefaultDecl:
		r.expr(&d.Decl)
	}
}

func (r *renameWalker) forHead(init *ast.ForInit) {
	if init.Decl != nil {
		for i := range init.Decl.Declarations {
			r.pattern(&init.Decl.Declarations[i].ID)
		}
	}
	if init.Expr != nil {
		r.expr(init.Expr)
	}
}

func (r *renameWalker) expr(e *ast.Expr) {
	switch d := e.Data.(type) {
	case *ast.EIdentifier:
		if name, ok := r.names[d.Ref]; ok {
			d.Name = name
		}
	case *ast.EMember:
		r.expr(&d.Object)
		if d.Computed {
			r.expr(&d.Property)
		}
	case *ast.ECall:
		r.expr(&d.Callee)
		for i := range d.Args {
			r.expr(&d.Args[i].Value)
		}
	case *ast.ENew:
		r.expr(&d.Callee)
		for i := range d.Args {
			r.expr(&d.Args[i].Value)
		}
	case *ast.EUnary:
		r.expr(&d.Value)
	case *ast.EBinary:
		r.expr(&d.Left)
		r.expr(&d.Right)
	case *ast.ELogical:
		r.expr(&d.Left)
		r.expr(&d.Right)
	case *ast.EAssign:
		r.expr(&d.Target)
		r.expr(&d.Value)
	case *ast.EConditional:
		r.expr(&d.Test)
		r.expr(&d.Consequent)
		r.expr(&d.Alternate)
	case *ast.ESequence:
		for i := range d.Expressions {
			r.expr(&d.Expressions[i])
		}
	case *ast.EArray:
		for i := range d.Elements {
			if d.Elements[i].Value.Data != nil {
				r.expr(&d.Elements[i].Value)
			}
		}
	case *ast.EObject:
		for i := range d.Properties {
			p := &d.Properties[i]
			if p.Computed {
				r.expr(&p.Key)
			}
			if p.Value.Data != nil {
				r.expr(&p.Value)
			}
		}
	case *ast.EFunction:
		r.fn(d.Fn)
	case *ast.EArrow:
		r.params(d.Params)
		if d.Body.Block != nil {
			r.stmts(d.Body.Block.Stmts)
		} else if d.Body.Expr != nil {
			r.expr(d.Body.Expr)
		}
	case *ast.EClass:
		r.class(d.Class)
	case *ast.ETemplate:
		if d.Tag != nil {
			r.expr(d.Tag)
		}
		for i := range d.Tpl.Exprs {
			r.expr(&d.Tpl.Exprs[i])
		}
	case *ast.EParenthesized:
		r.expr(&d.Value)
	case *ast.EYield:
		if d.Value != nil {
			r.expr(d.Value)
		}
	case *ast.EAwait:
		r.expr(&d.Value)
	}
}
