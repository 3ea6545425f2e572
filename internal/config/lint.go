package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jsforge/jsforge/internal/lint"
)

// LintConfig is the decoded shape of an `.oxlintrc`-equivalent rule
// config: a flat map from "plugin/rule" to either a bare severity
// string ("error", "warn", "off") or a two-element array pairing a
// severity with that rule's own options object, exactly like oxlint
// and ESLint both accept. JSONC comment-stripping is a CLI/loader
// concern this package doesn't take on; a config file with comments
// needs to be pre-stripped by its caller.
type LintConfig struct {
	Rules map[string]RuleEntry `json:"rules"`
}

// RuleEntry holds one rule's resolved severity and, if present, its
// raw options payload — left as json.RawMessage since each rule
// decodes its own options shape (Rule.FromConfig in internal/lint).
type RuleEntry struct {
	Severity lint.Severity
	Options  json.RawMessage
}

// UnmarshalJSON accepts either a bare string ("error") or a
// [severity, options] pair (["warn", {"allow": ["foo"]}]), the two
// forms oxlint's own rule config supports.
func (e *RuleEntry) UnmarshalJSON(data []byte) error {
	var severityOnly string
	if err := json.Unmarshal(data, &severityOnly); err == nil {
		sev, err := parseSeverity(severityOnly)
		if err != nil {
			return err
		}
		e.Severity = sev
		return nil
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("config: rule entry must be a severity string or [severity, options]: %w", err)
	}
	if len(pair) == 0 {
		return fmt.Errorf("config: empty rule entry")
	}
	var severityStr string
	if err := json.Unmarshal(pair[0], &severityStr); err != nil {
		return fmt.Errorf("config: rule entry's first element must be a severity string: %w", err)
	}
	sev, err := parseSeverity(severityStr)
	if err != nil {
		return err
	}
	e.Severity = sev
	if len(pair) > 1 {
		e.Options = pair[1]
	}
	return nil
}

func parseSeverity(s string) (lint.Severity, error) {
	switch s {
	case "off", "0":
		return lint.SeverityOff, nil
	case "warn", "warning", "1":
		return lint.SeverityWarning, nil
	case "error", "2":
		return lint.SeverityError, nil
	}
	return 0, fmt.Errorf("config: unknown rule severity %q", s)
}

// LoadLintConfig reads path as JSON. A missing file decodes to an
// empty LintConfig (every rule runs at whatever default severity its
// own registration carries), matching ProjectConfig's "no file means
// defaults" behavior.
func LoadLintConfig(path string) (*LintConfig, error) {
	cfg := &LintConfig{Rules: map[string]RuleEntry{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// ToSettings builds the lint.Settings the kernel dispatches against
// from this config, adding packageJSONDirs (e.g. from the files the
// CLI was invoked on) for rules like the dependency-hierarchy check
// that need to locate a package.json.
func (c *LintConfig) ToSettings(packageJSONDirs []string) lint.Settings {
	severities := make(map[string]lint.Severity, len(c.Rules))
	options := make(map[string]json.RawMessage, len(c.Rules))
	for key, entry := range c.Rules {
		severities[key] = entry.Severity
		if entry.Options != nil {
			options[key] = entry.Options
		}
	}
	return lint.Settings{
		PackageJSONDirs: packageJSONDirs,
		RuleSeverity:    severities,
		RuleOptions:     options,
	}
}
