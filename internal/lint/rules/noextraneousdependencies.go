package rules

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/jsforge/jsforge/internal/ast"
	"github.com/jsforge/jsforge/internal/depgraph"
	"github.com/jsforge/jsforge/internal/lint"
)

// NoExtraneousDependencies is spec §4.5's worked example: it flags an
// import/require specifier that doesn't resolve to any of the
// manifest's declared dependency sets.
type NoExtraneousDependencies struct {
	allow depgraph.AllowOptions
	dirs  []string

	cache map[string]depgraph.Sets
}

type noExtraneousDependenciesOptions struct {
	DevDependencies      *bool    `json:"devDependencies"`
	OptionalDependencies *bool    `json:"optionalDependencies"`
	PeerDependencies     *bool    `json:"peerDependencies"`
	BundledDependencies  *bool    `json:"bundledDependencies"`
	PackageDir           []string `json:"packageDir"`
}

func NewNoExtraneousDependencies() *NoExtraneousDependencies {
	return &NoExtraneousDependencies{
		allow: depgraph.AllowOptions{
			Dependencies:         true,
			DevDependencies:      true,
			OptionalDependencies: true,
			PeerDependencies:     true,
			BundledDependencies:  true,
		},
		cache: make(map[string]depgraph.Sets),
	}
}

func (r *NoExtraneousDependencies) Name() string            { return "no-extraneous-dependencies" }
func (r *NoExtraneousDependencies) Plugin() string          { return "import" }
func (r *NoExtraneousDependencies) Category() lint.Category { return lint.CategoryRestriction }

func (r *NoExtraneousDependencies) FromConfig(raw json.RawMessage) error {
	r.allow = depgraph.AllowOptions{Dependencies: true, DevDependencies: true, OptionalDependencies: true, PeerDependencies: true, BundledDependencies: true}
	r.dirs = nil
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var opts noExtraneousDependenciesOptions
	if err := json.Unmarshal(raw, &opts); err != nil {
		return fmt.Errorf("no-extraneous-dependencies: %w", err)
	}
	if opts.DevDependencies != nil {
		r.allow.DevDependencies = *opts.DevDependencies
	}
	if opts.OptionalDependencies != nil {
		r.allow.OptionalDependencies = *opts.OptionalDependencies
	}
	if opts.PeerDependencies != nil {
		r.allow.PeerDependencies = *opts.PeerDependencies
	}
	if opts.BundledDependencies != nil {
		r.allow.BundledDependencies = *opts.BundledDependencies
	}
	r.dirs = opts.PackageDir
	return nil
}

func (r *NoExtraneousDependencies) sets(ctx *lint.Context) (depgraph.Sets, bool) {
	dir := filepath.Dir(ctx.FilePath)
	dirs := r.dirs
	if len(dirs) == 0 {
		dirs = ctx.Settings.PackageJSONDirs
	}
	key := dir + "\x00" + fmt.Sprint(dirs)
	if sets, ok := r.cache[key]; ok {
		return sets, true
	}
	path, err := depgraph.FindManifest(dir, dirs)
	if err != nil {
		return depgraph.Sets{}, false
	}
	manifest, err := depgraph.LoadManifest(path)
	if err != nil {
		return depgraph.Sets{}, false
	}
	sets := depgraph.BuildSets(manifest)
	r.cache[key] = sets
	return sets, true
}

func (r *NoExtraneousDependencies) check(ctx *lint.Context, spec string, span ast.Span) {
	sets, ok := r.sets(ctx)
	if !ok {
		return
	}
	if !depgraph.Allowed(spec, sets, r.allow) {
		ctx.Diagnostic(span, fmt.Sprintf("'%s' is not declared as a dependency in the nearest package.json", spec))
	}
}

func (r *NoExtraneousDependencies) Run(node lint.Node, ctx *lint.Context) {
	if node.Stmt != nil {
		switch d := node.Stmt.Data.(type) {
		case *ast.SImportDecl:
			r.check(ctx, d.Source, node.Stmt.Span)
		case *ast.SExportNamedDecl:
			if d.Source != nil {
				r.check(ctx, *d.Source, node.Stmt.Span)
			}
		case *ast.SExportAllDecl:
			r.check(ctx, d.Source, node.Stmt.Span)
		}
		return
	}
	if node.Expr != nil {
		call, ok := node.Expr.Data.(*ast.ECall)
		if !ok {
			return
		}
		callee, ok := call.Callee.Data.(*ast.EIdentifier)
		if !ok || callee.Name != "require" || len(call.Args) != 1 {
			return
		}
		str, ok := call.Args[0].Value.Data.(*ast.EString)
		if !ok {
			return
		}
		r.check(ctx, str.Value, node.Expr.Span)
	}
}

var _ lint.NodeRule = (*NoExtraneousDependencies)(nil)
