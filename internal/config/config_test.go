package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsforge/jsforge/internal/format"
	"github.com/jsforge/jsforge/internal/lint"
)

func TestLoadProjectConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadProjectConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Format.IndentWidth != 2 {
		t.Fatalf("expected the formatter default indent width, got %d", cfg.Format.IndentWidth)
	}
}

func TestLoadProjectConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jsforge.yaml")
	contents := `
target:
  node: 18
use_define_for_class_fields: true
format:
  indent_style: tab
  quote_style: single
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadProjectConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Target.Node != 18 {
		t.Fatalf("expected target.node 18, got %d", cfg.Target.Node)
	}
	if !cfg.UseDefineForClassFields {
		t.Fatalf("expected use_define_for_class_fields to be true")
	}
	opts, err := cfg.FormatOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.IndentStyle != format.IndentTab {
		t.Fatalf("expected tab indentation, got %v", opts.IndentStyle)
	}
	if opts.QuoteStyle != format.QuoteSingle {
		t.Fatalf("expected single quotes, got %v", opts.QuoteStyle)
	}
}

func TestFormatOptionsRejectsUnknownEnum(t *testing.T) {
	cfg := DefaultProjectConfig()
	cfg.Format.QuoteStyle = "backtick"
	if _, err := cfg.FormatOptions(); err == nil {
		t.Fatalf("expected an error for an unrecognized quote style")
	}
}

func TestProjectConfigRoundTripsThroughSave(t *testing.T) {
	cfg := DefaultProjectConfig()
	cfg.Target.ES = 2020
	path := filepath.Join(t.TempDir(), "nested", "jsforge.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	reloaded, err := LoadProjectConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if reloaded.Target.ES != 2020 {
		t.Fatalf("expected target.es to round-trip, got %d", reloaded.Target.ES)
	}
}

func TestLoadLintConfigMissingFileIsEmpty(t *testing.T) {
	cfg, err := LoadLintConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Rules) != 0 {
		t.Fatalf("expected no rules, got %v", cfg.Rules)
	}
}

func TestLoadLintConfigParsesBareSeverity(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".jsforgelintrc")
	contents := `{"rules": {"eslint/no-unused-vars": "error"}}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadLintConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry, ok := cfg.Rules["eslint/no-unused-vars"]
	if !ok {
		t.Fatalf("expected the rule to be present")
	}
	if entry.Severity != lint.SeverityError {
		t.Fatalf("expected error severity, got %v", entry.Severity)
	}
}

func TestLoadLintConfigParsesSeverityOptionsPair(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".jsforgelintrc")
	contents := `{"rules": {"eslint/no-console": ["warn", {"allow": ["error"]}]}}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadLintConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry := cfg.Rules["eslint/no-console"]
	if entry.Severity != lint.SeverityWarning {
		t.Fatalf("expected warning severity, got %v", entry.Severity)
	}
	if entry.Options == nil {
		t.Fatalf("expected the rule's options payload to survive")
	}
}

func TestLintConfigToSettings(t *testing.T) {
	cfg := &LintConfig{Rules: map[string]RuleEntry{
		"eslint/no-console": {Severity: lint.SeverityOff},
	}}
	settings := cfg.ToSettings([]string{"/repo"})
	if settings.RuleSeverity["eslint/no-console"] != lint.SeverityOff {
		t.Fatalf("expected the severity override to carry over")
	}
	if len(settings.PackageJSONDirs) != 1 || settings.PackageJSONDirs[0] != "/repo" {
		t.Fatalf("expected the package.json dirs to carry over, got %v", settings.PackageJSONDirs)
	}
}
