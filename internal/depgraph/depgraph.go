// Package depgraph implements the dependency-classification sub-engine
// spec §4.5 describes for the "no-extraneous-dependencies" lint rule:
// it loads package.json manifests, builds the five dependency-kind
// sets ESM/CJS specifiers are checked against, and computes the
// package-hierarchy ancestors of an import specifier.
package depgraph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Manifest is the subset of package.json fields this engine reads.
type Manifest struct {
	Name                 string            `json:"name"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	BundledDependencies  map[string]string `json:"-"`
}

// bundledDependenciesRaw unmarshals package.json's two accepted
// spellings for the same field ("bundledDependencies" and the older
// "bundleDependencies"), each of which may be either an array of
// names or (rarely, but legally) an object.
type bundledDependenciesRaw struct {
	Bundled     json.RawMessage `json:"bundledDependencies"`
	BundledAlt  json.RawMessage `json:"bundleDependencies"`
}

func (m *Manifest) UnmarshalJSON(data []byte) error {
	type alias Manifest
	aux := struct {
		*alias
		bundledDependenciesRaw
	}{alias: (*alias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	raw := aux.Bundled
	if len(raw) == 0 {
		raw = aux.BundledAlt
	}
	m.BundledDependencies = parseBundledField(raw)
	return nil
}

func parseBundledField(raw json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	var names []string
	if json.Unmarshal(raw, &names) == nil {
		out := make(map[string]string, len(names))
		for _, n := range names {
			out[n] = ""
		}
		return out
	}
	var obj map[string]string
	if json.Unmarshal(raw, &obj) == nil {
		return obj
	}
	return nil
}

// Kind names one of the five dependency sets a specifier is checked
// against.
type Kind uint8

const (
	KindDependencies Kind = iota
	KindDevDependencies
	KindOptionalDependencies
	KindPeerDependencies
	KindBundledDependencies
)

// Sets is the five dependency-name sets built from one manifest.
type Sets struct {
	byKind [5]map[string]bool
}

// Has reports whether name is declared under kind.
func (s Sets) Has(kind Kind, name string) bool {
	set := s.byKind[kind]
	return set != nil && set[name]
}

func toSet(m map[string]string) map[string]bool {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]bool, len(m))
	for k := range m {
		out[k] = true
	}
	return out
}

// BuildSets turns a decoded manifest into the five lookup sets.
func BuildSets(m *Manifest) Sets {
	return Sets{byKind: [5]map[string]bool{
		KindDependencies:         toSet(m.Dependencies),
		KindDevDependencies:      toSet(m.DevDependencies),
		KindOptionalDependencies: toSet(m.OptionalDependencies),
		KindPeerDependencies:     toSet(m.PeerDependencies),
		KindBundledDependencies:  toSet(m.BundledDependencies),
	}}
}

// LoadManifest decodes the package.json at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("depgraph: reading %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("depgraph: parsing %s: %w", path, err)
	}
	return &m, nil
}

// FindManifest walks upward from startDir looking for a package.json,
// the way Node module resolution itself walks upward for "nearest
// package.json" semantics. dirs, when non-empty, is consulted first
// and exclusively — a configured search path overrides the upward
// walk rather than supplementing it, matching spec §4.5's "reads
// package.json files from a configurable set of directories (or walks
// upward from the file)".
func FindManifest(startDir string, dirs []string) (string, error) {
	if len(dirs) > 0 {
		for _, d := range dirs {
			p := filepath.Join(d, "package.json")
			if _, err := os.Stat(p); err == nil {
				return p, nil
			}
		}
		return "", fmt.Errorf("depgraph: no package.json found in configured directories")
	}
	dir := startDir
	for {
		p := filepath.Join(dir, "package.json")
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("depgraph: no package.json found above %s", startDir)
		}
		dir = parent
	}
}

// NormalizeSpecifier strips the parts of an import specifier that
// don't participate in package identity: a "node:" builtin prefix, a
// trailing "?query" or "#hash", and Windows-style path separators —
// the extra normalization original_source/crates/oxc_linter applies
// before computing a specifier's package hierarchy.
func NormalizeSpecifier(spec string) string {
	spec = strings.TrimPrefix(spec, "node:")
	if i := strings.IndexAny(spec, "?#"); i >= 0 {
		spec = spec[:i]
	}
	spec = strings.ReplaceAll(spec, "\\", "/")
	return spec
}

// PackageHierarchy computes the ancestor package names a normalized
// specifier resolves through, per spec §4.5: for "@scope/pkg/sub"
// that's {"@scope/pkg", "@scope/pkg/sub"}; for "pkg/sub" it's
// {"pkg", "pkg/sub"}; a scope alone ("@scope") is never a valid
// ancestor on its own.
func PackageHierarchy(spec string) []string {
	if spec == "" || strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "/") {
		return nil
	}
	parts := strings.Split(spec, "/")

	rootLen := 1
	if strings.HasPrefix(parts[0], "@") {
		rootLen = 2
	}
	if len(parts) < rootLen {
		return nil
	}

	var out []string
	for end := rootLen; end <= len(parts); end++ {
		out = append(out, strings.Join(parts[:end], "/"))
	}
	return out
}

// AllowOptions mirrors the five "allow this dependency kind" toggles
// the no-extraneous-dependencies rule reads from its configuration.
type AllowOptions struct {
	Dependencies         bool
	DevDependencies      bool
	OptionalDependencies bool
	PeerDependencies     bool
	BundledDependencies  bool
}

// allowedKinds lists which Kind values AllowOptions permits, in a
// fixed order so Allowed's result doesn't depend on map iteration.
func (o AllowOptions) allowedKinds() []Kind {
	var kinds []Kind
	if o.Dependencies {
		kinds = append(kinds, KindDependencies)
	}
	if o.DevDependencies {
		kinds = append(kinds, KindDevDependencies)
	}
	if o.OptionalDependencies {
		kinds = append(kinds, KindOptionalDependencies)
	}
	if o.PeerDependencies {
		kinds = append(kinds, KindPeerDependencies)
	}
	if o.BundledDependencies {
		kinds = append(kinds, KindBundledDependencies)
	}
	return kinds
}

// Allowed reports whether spec is declared in some set AllowOptions
// permits: normalize the specifier, compute its package-hierarchy
// ancestors, and accept if any ancestor appears in any allowed set.
func Allowed(spec string, sets Sets, allow AllowOptions) bool {
	ancestors := PackageHierarchy(NormalizeSpecifier(spec))
	if len(ancestors) == 0 {
		// Relative/absolute specifiers aren't package dependencies at all.
		return true
	}
	kinds := allow.allowedKinds()
	for _, a := range ancestors {
		for _, k := range kinds {
			if sets.Has(k, a) {
				return true
			}
		}
	}
	return false
}
