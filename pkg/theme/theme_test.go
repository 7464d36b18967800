package theme

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// setupThemesDir builds a themes directory with two valid themes (one with
// a manifest, one without) and one directory that is not a theme.
func setupThemesDir(tb testing.TB) string {
	tb.Helper()

	themesDir := tb.TempDir()

	mkTheme := func(name string) string {
		root := filepath.Join(themesDir, name)
		if err := os.MkdirAll(filepath.Join(root, "templates"), 0755); err != nil {
			tb.Fatalf("failed to create theme %s: %v", name, err)
		}
		return root
	}

	enterprise := mkTheme("enterprise")
	manifest := `{
  "name": "Enterprise",
  "version": "2.1.0",
  "description": "Marketing site theme",
  "author": "QuillPress",
  "tags": ["marketing", "dark-mode"],
  "unknown_field": {"ignored": true}
}`
	if err := os.WriteFile(filepath.Join(enterprise, "theme.json"), []byte(manifest), 0644); err != nil {
		tb.Fatalf("failed to write manifest: %v", err)
	}
	for _, name := range []string{"home.html", "about.html", "404.html"} {
		if err := os.WriteFile(filepath.Join(enterprise, "templates", name), []byte("<html></html>"), 0644); err != nil {
			tb.Fatalf("failed to write template: %v", err)
		}
	}
	// Non-template files in templates/ are not listed.
	if err := os.WriteFile(filepath.Join(enterprise, "templates", "notes.txt"), []byte("x"), 0644); err != nil {
		tb.Fatalf("failed to write notes.txt: %v", err)
	}

	mkTheme("bare")

	// A directory without templates/ is not a theme.
	if err := os.Mkdir(filepath.Join(themesDir, "not-a-theme"), 0755); err != nil {
		tb.Fatalf("failed to create non-theme dir: %v", err)
	}

	return themesDir
}

func TestLoad(t *testing.T) {
	themesDir := setupThemesDir(t)

	th, err := Load(themesDir, "enterprise")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if th.Name != "enterprise" {
		t.Errorf("Name = %q, want %q", th.Name, "enterprise")
	}
	if th.Manifest.Name != "Enterprise" || th.Manifest.Version != "2.1.0" {
		t.Errorf("manifest not loaded: %+v", th.Manifest)
	}
	if len(th.Manifest.Tags) != 2 {
		t.Errorf("manifest tags = %v", th.Manifest.Tags)
	}

	if _, err = Load(themesDir, "missing"); err == nil {
		t.Error("Load of a missing theme should fail")
	}
	if _, err = Load(themesDir, "not-a-theme"); err == nil {
		t.Error("Load of a directory without templates/ should fail")
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	themesDir := setupThemesDir(t)

	th, err := Load(themesDir, "bare")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := DefaultManifest("bare")
	if !reflect.DeepEqual(th.Manifest, want) {
		t.Errorf("manifest = %+v, want defaults %+v", th.Manifest, want)
	}
}

func TestLoadManifestMalformed(t *testing.T) {
	themesDir := setupThemesDir(t)
	broken := filepath.Join(themesDir, "enterprise", "theme.json")
	if err := os.WriteFile(broken, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to corrupt manifest: %v", err)
	}

	if _, err := Load(themesDir, "enterprise"); err == nil {
		t.Error("Load with a malformed manifest should fail")
	}
}

func TestDiscover(t *testing.T) {
	themesDir := setupThemesDir(t)

	themes, err := Discover(themesDir)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(themes) != 2 {
		t.Fatalf("Discover found %d themes, want 2: %+v", len(themes), themes)
	}
	// Sorted by directory name.
	if themes[0].Name != "bare" || themes[1].Name != "enterprise" {
		t.Errorf("Discover order = [%s, %s]", themes[0].Name, themes[1].Name)
	}
}

func TestTemplates(t *testing.T) {
	themesDir := setupThemesDir(t)

	th, err := Load(themesDir, "enterprise")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	names, err := th.Templates()
	if err != nil {
		t.Fatalf("Templates failed: %v", err)
	}
	want := []string{"404.html", "about.html", "home.html"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Templates = %v, want %v", names, want)
	}
}
