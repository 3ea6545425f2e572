package depgraph

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPackageHierarchyScopedSpecifier(t *testing.T) {
	got := PackageHierarchy("@scope/pkg/sub")
	want := []string{"@scope/pkg", "@scope/pkg/sub"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestPackageHierarchyUnscopedSpecifier(t *testing.T) {
	got := PackageHierarchy("pkg/sub/deep")
	want := []string{"pkg", "pkg/sub", "pkg/sub/deep"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestPackageHierarchyRelativeSpecifierHasNoAncestors(t *testing.T) {
	if got := PackageHierarchy("./local"); got != nil {
		t.Fatalf("expected no ancestors for a relative specifier, got %v", got)
	}
}

func TestNormalizeSpecifierStripsNodePrefixAndQuery(t *testing.T) {
	if got := NormalizeSpecifier("node:fs"); got != "fs" {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeSpecifier("pkg/sub?raw"); got != "pkg/sub" {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeSpecifier(`pkg\sub`); got != "pkg/sub" {
		t.Fatalf("got %q", got)
	}
}

func TestAllowedAcceptsDeclaredDependency(t *testing.T) {
	sets := BuildSets(&Manifest{Dependencies: map[string]string{"lodash": "^4.0.0"}})
	allow := AllowOptions{Dependencies: true}
	if !Allowed("lodash/fp", sets, allow) {
		t.Fatalf("expected lodash/fp to resolve through the lodash dependency")
	}
}

func TestAllowedRejectsUndeclaredDependency(t *testing.T) {
	sets := BuildSets(&Manifest{Dependencies: map[string]string{"lodash": "^4.0.0"}})
	allow := AllowOptions{Dependencies: true}
	if Allowed("express", sets, allow) {
		t.Fatalf("expected express to be rejected as extraneous")
	}
}

func TestAllowedRespectsKindToggle(t *testing.T) {
	sets := BuildSets(&Manifest{DevDependencies: map[string]string{"jest": "^29.0.0"}})
	if Allowed("jest", sets, AllowOptions{Dependencies: true}) {
		t.Fatalf("expected jest to be rejected when devDependencies isn't allowed")
	}
	if !Allowed("jest", sets, AllowOptions{DevDependencies: true}) {
		t.Fatalf("expected jest to be accepted when devDependencies is allowed")
	}
}

func TestFindManifestWalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	manifestPath := filepath.Join(root, "package.json")
	if err := os.WriteFile(manifestPath, []byte(`{"name":"root"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := FindManifest(nested, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != manifestPath {
		t.Fatalf("got %q, want %q", got, manifestPath)
	}
}

func TestLoadManifestParsesBundledDependenciesArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	contents := `{"name":"x","bundledDependencies":["a","b"]}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.BundledDependencies["a"]; !ok {
		t.Fatalf("expected bundledDependencies to include a, got %v", m.BundledDependencies)
	}
	if _, ok := m.BundledDependencies["b"]; !ok {
		t.Fatalf("expected bundledDependencies to include b, got %v", m.BundledDependencies)
	}
}
