package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Manifest mirrors the optional theme.json file a theme ships with.
// Unknown fields are ignored so manifests written for the full CMS still
// load here.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description,omitempty"`
	Author      string   `json:"author,omitempty"`
	License     string   `json:"license,omitempty"`
	Screenshot  string   `json:"screenshot,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Pages       []string `json:"pages,omitempty"`
}

// DefaultManifest returns the manifest used for a theme directory that
// ships no theme.json.
func DefaultManifest(name string) Manifest {
	return Manifest{
		Name:    name,
		Version: "1.0.0",
		License: "MIT",
	}
}

// Theme is a discovered theme directory.
type Theme struct {
	// Name is the directory name, used as the theme identifier.
	Name string `json:"name"`
	// Root is the theme directory path.
	Root string `json:"root"`
	// Manifest is the loaded (or defaulted) theme.json.
	Manifest Manifest `json:"manifest"`
}

// LoadManifest reads <dir>/theme.json. A missing file is not an error: the
// default manifest, named after the directory, is returned instead. A
// present but malformed manifest is an error.
func LoadManifest(dir string) (Manifest, error) {
	manifest := DefaultManifest(filepath.Base(dir))

	data, err := os.ReadFile(filepath.Join(dir, "theme.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return manifest, nil
		}
		return manifest, fmt.Errorf("failed to read theme.json: %w", err)
	}

	if err = json.Unmarshal(data, &manifest); err != nil {
		return manifest, fmt.Errorf("failed to parse theme.json: %w", err)
	}
	if manifest.Name == "" {
		manifest.Name = filepath.Base(dir)
	}
	return manifest, nil
}

// Load opens a single theme by directory name under themesDir. A theme is
// valid only if it contains a templates subdirectory.
func Load(themesDir, name string) (Theme, error) {
	root := filepath.Join(themesDir, name)

	info, err := os.Stat(filepath.Join(root, "templates"))
	if err != nil || !info.IsDir() {
		return Theme{}, fmt.Errorf("theme %q not found under %s (missing templates directory)", name, themesDir)
	}

	manifest, err := LoadManifest(root)
	if err != nil {
		return Theme{}, err
	}

	return Theme{Name: name, Root: root, Manifest: manifest}, nil
}

// Discover lists the themes under themesDir: every subdirectory containing
// a templates directory. Directories with malformed manifests are skipped
// rather than failing the whole listing.
func Discover(themesDir string) ([]Theme, error) {
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}

	var themes []Theme
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		t, err := Load(themesDir, entry.Name())
		if err != nil {
			continue
		}
		themes = append(themes, t)
	}

	sort.Slice(themes, func(i, j int) bool { return themes[i].Name < themes[j].Name })
	return themes, nil
}

// TemplatesDir returns the path of the theme's templates directory.
func (t Theme) TemplatesDir() string {
	return filepath.Join(t.Root, "templates")
}

// Templates returns the theme's template filenames (the .html files under
// templates/) in sorted order.
func (t Theme) Templates() ([]string, error) {
	entries, err := os.ReadDir(t.TemplatesDir())
	if err != nil {
		return nil, fmt.Errorf("failed to read templates directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
