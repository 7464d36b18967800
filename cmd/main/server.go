package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/quillpress/theme-preview/pkg/preview"
	"github.com/quillpress/theme-preview/pkg/theme"
)

// Server wires the preview handler and the admin API onto their muxes.
type Server struct {
	config     *Config
	db         *sql.DB
	logger     *slog.Logger
	active     theme.Theme
	routes     preview.RouteTable
	serverAPI  *ServerAPI
	themeAPI   *ThemeAPI
	statsAPI   *StatsAPI
	previewMux *http.ServeMux
	apiMux     *http.ServeMux
}

// NewServer loads the active theme, builds the preview handler, and
// registers all routes on both muxes.
func NewServer(config *Config, configPath string, logger *slog.Logger, db *sql.DB, actionChan chan string) (*Server, error) {

	active, err := theme.Load(config.Server.ThemesDir, config.Server.ActiveTheme)
	if err != nil {
		return nil, fmt.Errorf("failed to load active theme: %w", err)
	}

	statsAPI := NewStatsAPI(db, logger)

	// The preview handler only persists hits when stats are enabled; the
	// default behavior is a request with no side effects beyond its log line.
	var recorder preview.HitRecorder
	if config.Server.StatsEnabled {
		recorder = statsAPI
	}

	routes := preview.DefaultRoutes()
	handler := preview.NewHandler(preview.Config{
		ThemeRoot: active.Root,
		Routes:    routes,
		Logger:    logger,
		Stats:     recorder,
	})

	serverAPI := NewServerAPI(config, configPath, actionChan, logger)
	themeAPI := NewThemeAPI(config, configPath, active, actionChan, logger)

	server := &Server{
		config:     config,
		db:         db,
		logger:     logger,
		active:     active,
		routes:     routes,
		serverAPI:  serverAPI,
		themeAPI:   themeAPI,
		statsAPI:   statsAPI,
		previewMux: http.NewServeMux(),
		apiMux:     http.NewServeMux(),
	}

	server.serverAPI.RegisterRoutes(server.apiMux)
	server.themeAPI.RegisterRoutes(server.apiMux)
	server.statsAPI.RegisterRoutes(server.apiMux)
	server.apiMux.HandleFunc("/api/health", server.serverAPI.handleHealthCheck)

	server.previewMux.Handle("/", handler)

	return server, nil
}
