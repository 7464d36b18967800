package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "./config.json", "path to the configuration file")
	flag.Parse()

	baseLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	actionChan := make(chan string, 1)

	go func() {
		osSignalChan := make(chan os.Signal, 1)
		signal.Notify(osSignalChan, syscall.SIGINT, syscall.SIGTERM)
		<-osSignalChan // Wait for a signal
		baseLogger.Info("OS signal received, initiating shutdown.")
		actionChan <- actionShutdown
	}()

	for {
		action, err := run(*configPath, actionChan)
		if err != nil {
			baseLogger.Error("An error occurred during server run, shutting down.", "error", err)
			break
		}

		if action == actionRestart {
			baseLogger.Info("--- Server Restarting ---")
			continue
		} else {
			break
		}
	}

	baseLogger.Info("Theme preview server has shut down.")
}

// run hosts both servers for one cycle and returns when an action (shutdown
// or restart) arrives.
func run(configPath string, actionChan chan string) (string, error) {

	config, err := LoadConfig(configPath)
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}

	var logLevel slog.Level
	switch strings.ToLower(config.Server.LogLevel) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	logger.Info("Starting server cycle...")

	if err = ensureDataDir(config.Server.StatsDatabasePath); err != nil {
		logger.Warn("Failed to create data directory", "error", err)
	}
	db, err := openStatsDB(config.Server.StatsDatabasePath)
	if err != nil {
		return "", fmt.Errorf("failed to open stats database: %w", err)
	}
	if err = setupStatsSchema(db); err != nil {
		logger.Error("Failed to setup stats schema", "error", err)
	}

	server, err := NewServer(config, configPath, logger, db, actionChan)
	if err != nil {
		_ = db.Close()
		return "", fmt.Errorf("failed to create server object: %w", err)
	}

	previewHTTPServer := &http.Server{Addr: config.Server.PreviewAddr, Handler: server.previewMux}
	apiHTTPServer := &http.Server{Addr: config.Server.ApiAddr, Handler: server.apiMux}

	printBanner(config.Server, server)

	go func() {
		logger.Info("Starting theme preview server", "address", previewHTTPServer.Addr)
		if err := previewHTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			// A bind failure (port in use) is fatal for the whole process.
			logger.Error("Preview server failed", "error", err)
			select {
			case actionChan <- actionShutdown:
			default:
			}
		}
	}()

	go func() {
		logger.Info("Starting admin API server", "address", apiHTTPServer.Addr)
		if err := apiHTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Api server failed", "error", err)
			select {
			case actionChan <- actionShutdown:
			default:
			}
		}
	}()

	action := <-actionChan // Block here until API or OS signal sends an action.

	logger.Info("Stopping servers for " + action + "...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = previewHTTPServer.Shutdown(ctx); err != nil {
		logger.Error("Preview server shutdown failed", "error", err)
	}
	if err = apiHTTPServer.Shutdown(ctx); err != nil {
		logger.Error("Api server shutdown failed", "error", err)
	}
	logger.Info("HTTP servers stopped.")

	logger.Info("Closing stats database.")
	if err = db.Close(); err != nil {
		logger.Error("Failed to close stats database", "error", err)
	}

	return action, nil
}

// ensureDataDir creates the directory that holds the stats database. The
// configured path may carry driver options after a '?'.
func ensureDataDir(dataSource string) error {
	path := dataSource
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return os.MkdirAll(filepath.Dir(path), 0755)
}

// printBanner prints the informational startup banner: theme locations and
// the full list of browsable pages.
func printBanner(cfg *ServerConfig, server *Server) {
	rule := strings.Repeat("=", 60)
	fmt.Printf("\n%s\n", rule)
	fmt.Println("QuillPress Theme Preview Server")
	fmt.Println(rule)
	fmt.Printf("\nServing theme from: %s\n", server.active.Root)
	fmt.Printf("Templates directory: %s\n", server.active.TemplatesDir())
	fmt.Printf("\nServer running at: http://localhost%s\n", cfg.PreviewAddr)
	fmt.Println("\nAvailable pages:")
	for _, page := range server.routes.Pages() {
		fmt.Printf("  - http://localhost%s%s\n", cfg.PreviewAddr, page)
	}
	fmt.Println("\nPress Ctrl+C to stop the server.")
	fmt.Println()
}
