//go:build cgo_sqlite

package main

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// openStatsDB opens the stats database with the cgo sqlite driver.
func openStatsDB(dataSource string) (*sql.DB, error) {
	return sql.Open("sqlite3", dataSource)
}
