// Package config decodes the project-level settings every jsforge
// entry point shares — target engines, formatter style, minifier
// passes — and builds the operational logger those entry points use
// for structured progress output. It does not own diagnostics: that
// stays internal/logger's bespoke accumulator, per the rest of this
// module's error-handling convention.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jsforge/jsforge/internal/format"
	"github.com/jsforge/jsforge/internal/minify"
	"github.com/jsforge/jsforge/internal/transform"
)

// ProjectConfig is the decoded shape of a project's jsforge.yaml, the
// YAML project-settings file cmd/jsforge loads from the working
// directory (or from its --config path). Every field has a zero-config default, the
// same contract codenerd's Config/DefaultConfig pair keeps.
type ProjectConfig struct {
	Target TargetConfig `yaml:"target"`

	UseDefineForClassFields bool `yaml:"use_define_for_class_fields"`
	ExperimentalDecorators  bool `yaml:"experimental_decorators"`
	EmitDecoratorMetadata   bool `yaml:"emit_decorator_metadata"`

	Format FormatConfig `yaml:"format"`
	Minify MinifyConfig `yaml:"minify"`

	// LintConfigPath points at the `.oxlintrc`-equivalent JSON file
	// (decoded separately, by LoadLintConfig — JSON, not YAML, since
	// that's the format rule configs in this pack's retrieval sources
	// are written in).
	LintConfigPath string `yaml:"lint_config"`
}

// TargetConfig is the engine-version table a project targets,
// decoded straight into transform.Engines.
type TargetConfig struct {
	Chrome  int `yaml:"chrome"`
	Node    int `yaml:"node"`
	Safari  int `yaml:"safari"`
	Firefox int `yaml:"firefox"`
	ES      int `yaml:"es"`
}

// FormatConfig mirrors format.Options with YAML-friendly string enums
// in place of the package's internal uint8 types, the same way a
// config file names an engine ("node") rather than an enum ordinal.
type FormatConfig struct {
	IndentStyle      string `yaml:"indent_style"`   // "space" | "tab"
	IndentWidth      int    `yaml:"indent_width"`
	LineWidth        int    `yaml:"line_width"`
	QuoteStyle       string `yaml:"quote_style"`     // "double" | "single"
	JSXQuoteStyle    string `yaml:"jsx_quote_style"` // "double" | "single"
	QuoteProperties  string `yaml:"quote_properties"` // "as-needed" | "preserve" | "consistent"
	TrailingCommas   string `yaml:"trailing_commas"` // "all" | "es5" | "none"
	Semicolons       string `yaml:"semicolons"`      // "always" | "as-needed"
	ArrowParentheses string `yaml:"arrow_parens"`    // "always" | "as-needed"
	BracketSpacing   bool   `yaml:"bracket_spacing"`
	BracketSameLine  bool   `yaml:"bracket_same_line"`
	Expand           string `yaml:"expand"` // "auto" | "always" | "never"
}

// MinifyConfig mirrors minify.Options.
type MinifyConfig struct {
	FoldConstants  bool `yaml:"fold_constants"`
	RemoveDeadCode bool `yaml:"remove_dead_code"`
	ManglePrivate  bool `yaml:"mangle_private"`
	TopLevel       bool `yaml:"top_level"`
	KeepNames      bool `yaml:"keep_names"`
}

// DefaultProjectConfig returns the configuration a project gets
// without a jsforge.yaml at all: no downleveling (ESNext), the
// formatter's own Default(), and every minifier pass switched off
// (MinifyOptions returns all-false toggles until the file's `minify`
// section enables them).
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Format: formatConfigFrom(format.Default()),
	}
}

func formatConfigFrom(o format.Options) FormatConfig {
	fc := FormatConfig{
		IndentWidth:     o.IndentWidth,
		LineWidth:       o.LineWidth,
		BracketSpacing:  o.BracketSpacing,
		BracketSameLine: o.BracketSameLine,
	}
	if o.IndentStyle == format.IndentTab {
		fc.IndentStyle = "tab"
	} else {
		fc.IndentStyle = "space"
	}
	fc.QuoteStyle = quoteStyleName(o.QuoteStyle)
	fc.JSXQuoteStyle = quoteStyleName(o.JSXQuoteStyle)
	switch o.QuoteProperties {
	case format.QuotePropertiesPreserve:
		fc.QuoteProperties = "preserve"
	case format.QuotePropertiesConsistent:
		fc.QuoteProperties = "consistent"
	default:
		fc.QuoteProperties = "as-needed"
	}
	switch o.TrailingCommas {
	case format.TrailingCommasES5:
		fc.TrailingCommas = "es5"
	case format.TrailingCommasNone:
		fc.TrailingCommas = "none"
	default:
		fc.TrailingCommas = "all"
	}
	if o.Semicolons == format.SemicolonsAsNeeded {
		fc.Semicolons = "as-needed"
	} else {
		fc.Semicolons = "always"
	}
	if o.ArrowParentheses == format.ArrowParensAsNeeded {
		fc.ArrowParentheses = "as-needed"
	} else {
		fc.ArrowParentheses = "always"
	}
	switch o.Expand {
	case format.ExpandAlways:
		fc.Expand = "always"
	case format.ExpandNever:
		fc.Expand = "never"
	default:
		fc.Expand = "auto"
	}
	return fc
}

func quoteStyleName(q format.QuoteStyle) string {
	if q == format.QuoteSingle {
		return "single"
	}
	return "double"
}

// LoadProjectConfig reads path as YAML into a ProjectConfig seeded
// with defaults, the same "defaults first, then overlay the file"
// sequencing codenerd's config loader uses. A missing file is not an
// error — it just means the project runs with every default.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	cfg := DefaultProjectConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg back out as YAML, creating any missing parent
// directories, mirroring codenerd's Config.Save.
func (cfg *ProjectConfig) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// TransformOptions builds the transform.Options this project's
// settings describe.
func (cfg *ProjectConfig) TransformOptions() transform.Options {
	return transform.Options{
		Target: transform.Engines{
			Chrome:  cfg.Target.Chrome,
			Node:    cfg.Target.Node,
			Safari:  cfg.Target.Safari,
			Firefox: cfg.Target.Firefox,
			ES:      cfg.Target.ES,
		},
		UseDefineForClassFields: cfg.UseDefineForClassFields,
		ExperimentalDecorators:  cfg.ExperimentalDecorators,
		EmitDecoratorMetadata:   cfg.EmitDecoratorMetadata,
	}
}

// FormatOptions decodes this project's FormatConfig into format.Options,
// rejecting any enum string that doesn't match one of the recognized
// spellings so a typo in jsforge.yaml surfaces at load time rather
// than silently falling back to a default.
func (cfg *ProjectConfig) FormatOptions() (format.Options, error) {
	o := format.Default()
	fc := cfg.Format
	if fc.IndentWidth != 0 {
		o.IndentWidth = fc.IndentWidth
	}
	if fc.LineWidth != 0 {
		o.LineWidth = fc.LineWidth
	}
	o.BracketSpacing = fc.BracketSpacing
	o.BracketSameLine = fc.BracketSameLine

	var err error
	if o.IndentStyle, err = parseIndentStyle(fc.IndentStyle); err != nil {
		return o, err
	}
	if o.QuoteStyle, err = parseQuoteStyle(fc.QuoteStyle); err != nil {
		return o, err
	}
	if fc.JSXQuoteStyle != "" {
		if o.JSXQuoteStyle, err = parseQuoteStyle(fc.JSXQuoteStyle); err != nil {
			return o, err
		}
	}
	if o.QuoteProperties, err = parseQuoteProperties(fc.QuoteProperties); err != nil {
		return o, err
	}
	if o.TrailingCommas, err = parseTrailingCommas(fc.TrailingCommas); err != nil {
		return o, err
	}
	if o.Semicolons, err = parseSemicolons(fc.Semicolons); err != nil {
		return o, err
	}
	if o.ArrowParentheses, err = parseArrowParens(fc.ArrowParentheses); err != nil {
		return o, err
	}
	if o.Expand, err = parseExpand(fc.Expand); err != nil {
		return o, err
	}
	return o, nil
}

func parseIndentStyle(s string) (format.IndentStyle, error) {
	switch s {
	case "", "space":
		return format.IndentSpace, nil
	case "tab":
		return format.IndentTab, nil
	}
	return 0, fmt.Errorf("config: unknown indent_style %q", s)
}

func parseQuoteStyle(s string) (format.QuoteStyle, error) {
	switch s {
	case "", "double":
		return format.QuoteDouble, nil
	case "single":
		return format.QuoteSingle, nil
	}
	return 0, fmt.Errorf("config: unknown quote style %q", s)
}

func parseQuoteProperties(s string) (format.QuoteProperties, error) {
	switch s {
	case "", "as-needed":
		return format.QuotePropertiesAsNeeded, nil
	case "preserve":
		return format.QuotePropertiesPreserve, nil
	case "consistent":
		return format.QuotePropertiesConsistent, nil
	}
	return 0, fmt.Errorf("config: unknown quote_properties %q", s)
}

func parseTrailingCommas(s string) (format.TrailingCommas, error) {
	switch s {
	case "", "all":
		return format.TrailingCommasAll, nil
	case "es5":
		return format.TrailingCommasES5, nil
	case "none":
		return format.TrailingCommasNone, nil
	}
	return 0, fmt.Errorf("config: unknown trailing_commas %q", s)
}

func parseSemicolons(s string) (format.Semicolons, error) {
	switch s {
	case "", "always":
		return format.SemicolonsAlways, nil
	case "as-needed":
		return format.SemicolonsAsNeeded, nil
	}
	return 0, fmt.Errorf("config: unknown semicolons %q", s)
}

func parseArrowParens(s string) (format.ArrowParentheses, error) {
	switch s {
	case "", "always":
		return format.ArrowParensAlways, nil
	case "as-needed":
		return format.ArrowParensAsNeeded, nil
	}
	return 0, fmt.Errorf("config: unknown arrow_parens %q", s)
}

func parseExpand(s string) (format.Expand, error) {
	switch s {
	case "", "auto":
		return format.ExpandAuto, nil
	case "always":
		return format.ExpandAlways, nil
	case "never":
		return format.ExpandNever, nil
	}
	return 0, fmt.Errorf("config: unknown expand %q", s)
}

// MinifyOptions builds the minify.Options this project's settings
// describe. A caller that wants esbuild-style "minify: true" with no
// per-project overrides should use minify.Default() directly instead.
func (cfg *ProjectConfig) MinifyOptions() minify.Options {
	return minify.Options{
		FoldConstants:  cfg.Minify.FoldConstants,
		RemoveDeadCode: cfg.Minify.RemoveDeadCode,
		ManglePrivate:  cfg.Minify.ManglePrivate,
		TopLevel:       cfg.Minify.TopLevel,
		KeepNames:      cfg.Minify.KeepNames,
	}
}
