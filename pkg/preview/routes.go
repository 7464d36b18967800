package preview

import (
	"sort"
	"strings"
)

// RouteTable maps canonical URL paths to template filenames relative to a
// theme's templates directory. Keys are unique literal paths; there is no
// pattern, prefix, or parameter matching. A table is built once at startup
// and must not be mutated afterwards.
//
// Values must be plain filenames: no absolute paths and no ".." segments.
// The table is static and trusted, never user-supplied.
type RouteTable map[string]string

// DefaultRoutes returns the standard page set a QuillPress marketing theme
// ships with. Each path maps to a same-named template file.
func DefaultRoutes() RouteTable {
	return RouteTable{
		"/":             "home.html",
		"/home":         "home.html",
		"/features":     "features.html",
		"/pricing":      "pricing.html",
		"/about":        "about.html",
		"/contact":      "contact.html",
		"/blog":         "blog.html",
		"/post":         "post.html",
		"/team":         "team.html",
		"/integrations": "integrations.html",
		"/use-cases":    "use-cases.html",
		"/customers":    "customers.html",
		"/security":     "security.html",
		"/enterprise":   "enterprise.html",
		"/api":          "api.html",
		"/docs":         "docs.html",
		"/demo":         "demo.html",
		"/changelog":    "changelog.html",
		"/careers":      "careers.html",
		"/privacy":      "privacy.html",
		"/terms":        "terms.html",
		"/404":          "404.html",
		"/500":          "500.html",
	}
}

// Resolve maps a raw request path to a template filename. Normalization
// strips any query component, strips a single trailing slash, and treats an
// empty result as "/". The lookup itself is exact and case-sensitive.
//
// A miss is a normal outcome, not an error; unmatched paths (asset paths
// like /static/app.css included) belong to the static fallback.
func (rt RouteTable) Resolve(rawPath string) (string, bool) {
	path := rawPath
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		path = "/"
	}
	name, ok := rt[path]
	return name, ok
}

// Pages returns the browsable paths of the table in sorted order.
// This mainly exists for the startup banner and the themes API.
func (rt RouteTable) Pages() []string {
	pages := make([]string, 0, len(rt))
	for p := range rt {
		pages = append(pages, p)
	}
	sort.Strings(pages)
	return pages
}
