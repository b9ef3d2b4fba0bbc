/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package store

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteDialect struct{}

func (SQLiteDialect) DriverName() string {
	return "sqlite3"
}

func (SQLiteDialect) RewriteQuery(query string) string {
	return query
}

func (SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	// One writer keeps rapid successive saves from tripping SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return err
		}
	}

	return nil
}

func (SQLiteDialect) CreateSessionsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS sessions (
			session_key TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (SQLiteDialect) UpsertSessionQuery() string {
	return "INSERT INTO sessions (session_key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP) " +
		"ON CONFLICT(session_key) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP"
}
