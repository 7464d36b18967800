package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const statsSchema = `
CREATE TABLE IF NOT EXISTS stats_page (
    path          TEXT PRIMARY KEY,
    total_hits    INTEGER NOT NULL DEFAULT 1,
    first_seen    DATETIME NOT NULL,
    last_seen     DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS stats_client (
    remote_addr   TEXT PRIMARY KEY,
    total_hits    INTEGER NOT NULL DEFAULT 1,
    first_seen    DATETIME NOT NULL,
    last_seen     DATETIME NOT NULL
);
`

// GlobalStatsSummary provides a high-level overview of all collected stats.
type GlobalStatsSummary struct {
	TotalRequests int64 `json:"total_requests"`
	UniquePages   int64 `json:"unique_pages"`
	UniqueClients int64 `json:"unique_clients"`
}

// StatsAPI holds the dependencies for the statistics handlers. It also
// implements preview.HitRecorder so the preview handler can feed it.
type StatsAPI struct {
	db     *sql.DB
	logger *slog.Logger
}

func setupStatsSchema(db *sql.DB) error {
	_, err := db.Exec(statsSchema)
	return err
}

func NewStatsAPI(db *sql.DB, logger *slog.Logger) *StatsAPI {
	return &StatsAPI{
		db:     db,
		logger: logger,
	}
}

func (s *StatsAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/stats/summary", s.handleSummary)
	mux.HandleFunc("/api/stats/top_pages", s.handleTopPages)
}

// RecordHit upserts the per-page and per-client counters for one request.
// Failures are logged, never surfaced: stats are advisory and must not
// affect preview responses.
func (s *StatsAPI) RecordHit(path, remoteAddr string) {
	now := time.Now()

	tx, err := s.db.Begin()
	if err != nil {
		s.logger.Error("Failed to begin stats transaction", "error", err)
		return
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	_, err = tx.Exec(`
        INSERT INTO stats_page (path, first_seen, last_seen) VALUES (?, ?, ?)
        ON CONFLICT(path) DO UPDATE SET total_hits = total_hits + 1, last_seen = ?
    `, path, now, now, now)
	if err != nil {
		s.logger.Error("Failed to upsert stats_page", "error", err)
		return
	}

	_, err = tx.Exec(`
        INSERT INTO stats_client (remote_addr, first_seen, last_seen) VALUES (?, ?, ?)
        ON CONFLICT(remote_addr) DO UPDATE SET total_hits = total_hits + 1, last_seen = ?
    `, remoteAddr, now, now, now)
	if err != nil {
		s.logger.Error("Failed to upsert stats_client", "error", err)
		return
	}

	if err = tx.Commit(); err != nil {
		s.logger.Error("Failed to commit stats transaction", "error", err)
	}
}

func (s *StatsAPI) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var summary GlobalStatsSummary
	// Total requests is the sum of all page hits.
	_ = s.db.QueryRowContext(r.Context(), "SELECT COALESCE(SUM(total_hits), 0) FROM stats_page").Scan(&summary.TotalRequests)
	_ = s.db.QueryRowContext(r.Context(), "SELECT COUNT(*) FROM stats_page").Scan(&summary.UniquePages)
	_ = s.db.QueryRowContext(r.Context(), "SELECT COUNT(*) FROM stats_client").Scan(&summary.UniqueClients)
	respondWithJSON(w, http.StatusOK, summary)
}

func (s *StatsAPI) handleTopPages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	rows, err := s.db.QueryContext(r.Context(), "SELECT path, total_hits, first_seen, last_seen FROM stats_page ORDER BY total_hits DESC LIMIT 100")
	if err != nil {
		s.logger.Error("Failed to query top pages", "error", err)
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Database error: %v", err))
		return
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var results []map[string]any
	for rows.Next() {
		var path string
		var hits int
		var first, last time.Time
		err = rows.Scan(&path, &hits, &first, &last)
		if err != nil {
			s.logger.Error("Failed to scan top pages", "error", err)
		}
		results = append(results, map[string]any{
			"path":       path,
			"total_hits": hits,
			"first_seen": first,
			"last_seen":  last,
		})
	}
	respondWithJSON(w, http.StatusOK, results)
}
