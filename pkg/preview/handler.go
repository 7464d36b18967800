package preview

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// HitRecorder receives one notification per request handled by the preview
// server. Implementations must be safe for concurrent use.
type HitRecorder interface {
	RecordHit(path, remoteAddr string)
}

// Config carries everything a Handler needs. It is consumed once at
// construction; the Handler holds no other configuration state.
type Config struct {
	// ThemeRoot is the theme directory. Templates live in its "templates"
	// subdirectory; static assets may live anywhere under it.
	ThemeRoot string

	// Routes maps canonical paths to template filenames.
	// Nil means DefaultRoutes().
	Routes RouteTable

	// Logger receives one line per request. Nil means slog.Default().
	Logger *slog.Logger

	// Stats, when non-nil, is notified of every request.
	Stats HitRecorder
}

// Handler serves a theme's templates with directives stripped and delegates
// every other path to a static file server rooted at the theme directory.
// It is stateless across requests and safe for concurrent use.
type Handler struct {
	templatesDir string
	routes       RouteTable
	logger       *slog.Logger
	stats        HitRecorder
	static       http.Handler
}

// NewHandler builds a Handler from the given config. The static fallback is
// held by composition: any request the route table does not claim, or whose
// template cannot be read, is handed to it unchanged.
func NewHandler(cfg Config) *Handler {
	routes := cfg.Routes
	if routes == nil {
		routes = DefaultRoutes()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		templatesDir: filepath.Join(cfg.ThemeRoot, "templates"),
		routes:       routes,
		logger:       logger,
		stats:        cfg.Stats,
		static:       http.FileServer(http.Dir(cfg.ThemeRoot)),
	}
}

// ServeHTTP handles a single request: normalize the path, look it up in the
// route table, and either serve the stripped template or fall through to
// static file serving. Every request produces exactly one response and one
// log line.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("Request",
		"remote_addr", r.RemoteAddr,
		"request_line", fmt.Sprintf("%s %s %s", r.Method, r.RequestURI, r.Proto))

	if h.stats != nil {
		h.stats.RecordHit(r.URL.Path, r.RemoteAddr)
	}

	// Only GET takes the template path; every other method gets the static
	// fallback's default treatment.
	if name, ok := h.routes.Resolve(r.URL.Path); ok && r.Method == http.MethodGet {
		// Read the template fresh on every request so edits show up
		// without a restart.
		content, err := os.ReadFile(filepath.Join(h.templatesDir, name))
		if err == nil {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(StripDirectives(string(content))))
			return
		}
		// A matched route whose template is missing or unreadable is not
		// an error; the static fallback decides what the client sees.
		h.logger.Debug("Template not readable, delegating to static fallback",
			"template", name, "error", err)
	}

	h.static.ServeHTTP(w, r)
}
