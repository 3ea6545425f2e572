// Package rules holds the example lint rules wired into the default
// registry: per-node dispatch, whole-file dispatch and rule config are
// exercised; neither rule attaches a fix or implements ShouldRun. It
// is not a complete oxlint rule port.
package rules

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jsforge/jsforge/internal/lint"
	"github.com/jsforge/jsforge/internal/semantic"
)

// NoUnusedVars flags let/const/var/class/function bindings that are
// never read, the way eslint's rule of the same name does. It only
// needs the whole-program symbol table, so it's a FileRule rather than
// a NodeRule: spec §4.5 allows a rule to implement either.
type NoUnusedVars struct {
	ignore *regexp.Regexp
}

type noUnusedVarsOptions struct {
	VarsIgnorePattern string `json:"varsIgnorePattern"`
}

func NewNoUnusedVars() *NoUnusedVars { return &NoUnusedVars{} }

func (r *NoUnusedVars) Name() string          { return "no-unused-vars" }
func (r *NoUnusedVars) Plugin() string        { return "eslint" }
func (r *NoUnusedVars) Category() lint.Category { return lint.CategoryCorrectness }

func (r *NoUnusedVars) FromConfig(raw json.RawMessage) error {
	r.ignore = nil
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var opts noUnusedVarsOptions
	if err := json.Unmarshal(raw, &opts); err != nil {
		return fmt.Errorf("no-unused-vars: %w", err)
	}
	if opts.VarsIgnorePattern != "" {
		re, err := regexp.Compile(opts.VarsIgnorePattern)
		if err != nil {
			return fmt.Errorf("no-unused-vars: varsIgnorePattern: %w", err)
		}
		r.ignore = re
	}
	return nil
}

func (r *NoUnusedVars) RunOnce(ctx *lint.Context) {
	for _, sym := range ctx.Sem.Symbols.All() {
		if sym.UseCount > 0 {
			continue
		}
		if !relevantKind(sym.Kind) {
			continue
		}
		if sym.Flags.Has(semantic.FlagExported) {
			continue
		}
		if strings.HasPrefix(sym.Name, "_") {
			continue
		}
		if r.ignore != nil && r.ignore.MatchString(sym.Name) {
			continue
		}
		ctx.Diagnostic(sym.Span, fmt.Sprintf("'%s' is declared but never used", sym.Name))
	}
}

func relevantKind(k semantic.SymbolKind) bool {
	switch k {
	case semantic.SymbolHoisted, semantic.SymbolBlockScoped, semantic.SymbolConst,
		semantic.SymbolHoistedFunction, semantic.SymbolClass:
		return true
	default:
		return false
	}
}

var _ lint.FileRule = (*NoUnusedVars)(nil)
