package preview

import (
	"sort"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	rt := DefaultRoutes()

	cases := []struct {
		rawPath string
		want    string
		wantHit bool
	}{
		{"/", "home.html", true},
		{"", "home.html", true},
		{"/home", "home.html", true},
		{"/features", "features.html", true},
		{"/features/", "features.html", true},
		{"/features?plan=team", "features.html", true},
		{"/features/?plan=team", "features.html", true},
		{"/404", "404.html", true},
		{"/500", "500.html", true},
		{"/use-cases", "use-cases.html", true},
		// Only a single trailing slash is normalized away.
		{"/features//", "", false},
		// Exact, case-sensitive matching.
		{"/Features", "", false},
		{"/featuresX", "", false},
		// Asset paths belong to the static fallback.
		{"/static/app.css", "", false},
		{"/templates/home.html", "", false},
	}

	for _, tc := range cases {
		name, ok := rt.Resolve(tc.rawPath)
		if ok != tc.wantHit || name != tc.want {
			t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)",
				tc.rawPath, name, ok, tc.want, tc.wantHit)
		}
	}
}

func TestDefaultRoutes(t *testing.T) {
	rt := DefaultRoutes()

	paths := []string{
		"/", "/home", "/features", "/pricing", "/about", "/contact",
		"/blog", "/post", "/team", "/integrations", "/use-cases",
		"/customers", "/security", "/enterprise", "/api", "/docs",
		"/demo", "/changelog", "/careers", "/privacy", "/terms",
		"/404", "/500",
	}
	if len(rt) != len(paths) {
		t.Errorf("DefaultRoutes has %d entries, want %d", len(rt), len(paths))
	}
	for _, p := range paths {
		name, ok := rt[p]
		if !ok {
			t.Errorf("DefaultRoutes missing path %q", p)
			continue
		}
		// Table values must stay inside the templates directory.
		if !strings.HasSuffix(name, ".html") {
			t.Errorf("route %q maps to %q, want an .html filename", p, name)
		}
		if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
			t.Errorf("route %q maps to %q, which escapes the templates directory", p, name)
		}
	}
}

func TestPagesSorted(t *testing.T) {
	pages := DefaultRoutes().Pages()
	if len(pages) != len(DefaultRoutes()) {
		t.Fatalf("Pages returned %d entries, want %d", len(pages), len(DefaultRoutes()))
	}
	if !sort.StringsAreSorted(pages) {
		t.Errorf("Pages is not sorted: %v", pages)
	}
}
