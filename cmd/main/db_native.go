//go:build !cgo_sqlite

package main

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// openStatsDB opens the stats database with the pure-Go sqlite driver.
func openStatsDB(dataSource string) (*sql.DB, error) {
	return sql.Open("sqlite", dataSource)
}
