package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/quillpress/theme-preview/pkg/preview"
	"github.com/quillpress/theme-preview/pkg/theme"
)

// ThemeAPI holds the dependencies for the theme management handlers.
type ThemeAPI struct {
	config     *Config
	configPath string
	active     theme.Theme
	actionChan chan string
	logger     *slog.Logger
}

// ThemeListResponse is the payload for the theme listing endpoint.
type ThemeListResponse struct {
	Themes      []theme.Theme `json:"themes"`
	Total       int           `json:"total"`
	ActiveTheme string        `json:"active_theme"`
}

// NewThemeAPI creates a new instance of the ThemeAPI.
func NewThemeAPI(config *Config, configPath string, active theme.Theme, actionChan chan string, logger *slog.Logger) *ThemeAPI {
	return &ThemeAPI{
		config:     config,
		configPath: configPath,
		active:     active,
		actionChan: actionChan,
		logger:     logger,
	}
}

// RegisterRoutes sets up the routing for all /api/themes endpoints.
func (t *ThemeAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/themes", t.handleList)
	mux.HandleFunc("/api/themes/activate", t.handleActivate)
	mux.HandleFunc("/api/themes/templates", t.handleTemplates)
	mux.HandleFunc("/api/themes/preview", t.handlePreview)
	mux.HandleFunc("/api/themes/pages", t.handlePages)
}

// handleList returns every theme discovered under the themes directory.
func (t *ThemeAPI) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	themes, err := theme.Discover(t.config.Server.ThemesDir)
	if err != nil {
		t.logger.Error("Theme discovery failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list themes: %v", err))
		return
	}
	respondWithJSON(w, http.StatusOK, ThemeListResponse{
		Themes:      themes,
		Total:       len(themes),
		ActiveTheme: t.config.Server.ActiveTheme,
	})
}

// handleActivate switches the active theme. The new name is validated,
// persisted to the config file, and applied by restarting the server cycle
// so the preview handler is rebuilt against the new theme root.
func (t *ThemeAPI) handleActivate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'name' is required")
		return
	}
	if _, err := theme.Load(t.config.Server.ThemesDir, name); err != nil {
		respondWithError(w, http.StatusNotFound, fmt.Sprintf("Theme %q not found", name))
		return
	}

	t.config.Server.ActiveTheme = name
	if err := SaveConfig(t.configPath, t.config); err != nil {
		t.logger.Error("Failed to save config after theme activation", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to save configuration to disk")
		return
	}

	t.logger.Info("Theme activated, restarting server cycle", "theme", name)
	respondWithJSON(w, http.StatusAccepted, map[string]string{"message": "Theme activated, server is restarting...", "theme": name})
	t.actionChan <- actionRestart
}

// handleTemplates lists the template files of the active theme.
func (t *ThemeAPI) handleTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	names, err := t.active.Templates()
	if err != nil {
		t.logger.Error("Failed to list templates", "error", err)
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list templates: %v", err))
		return
	}
	respondWithJSON(w, http.StatusOK, names)
}

// handlePreview serves a single template of the active theme by filename,
// with directives stripped, regardless of whether any route maps to it.
func (t *ThemeAPI) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'name' is required")
		return
	}
	// The templates directory is flat; anything path-like is rejected.
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		respondWithError(w, http.StatusBadRequest, "Invalid template name")
		return
	}

	content, err := os.ReadFile(filepath.Join(t.active.TemplatesDir(), name))
	if err != nil {
		respondWithError(w, http.StatusNotFound, fmt.Sprintf("Template %q not found", name))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(preview.StripDirectives(string(content))))
}

// handlePages lists the browsable page paths of the route table.
func (t *ThemeAPI) handlePages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	respondWithJSON(w, http.StatusOK, preview.DefaultRoutes().Pages())
}
