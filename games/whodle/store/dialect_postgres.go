/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package store

import (
	"database/sql"

	_ "github.com/lib/pq"
)

type PostgresDialect struct{}

func (PostgresDialect) DriverName() string {
	return "postgres"
}

func (PostgresDialect) RewriteQuery(query string) string {
	return rewritePlaceholdersToNumbered(query)
}

func (PostgresDialect) ConfigureConnection(db *sql.DB) error {
	configurePool(db)

	return nil
}

func (PostgresDialect) CreateSessionsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS sessions (
			session_key TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (PostgresDialect) UpsertSessionQuery() string {
	return "INSERT INTO sessions (session_key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP) " +
		"ON CONFLICT (session_key) DO UPDATE SET data = EXCLUDED.data, updated_at = CURRENT_TIMESTAMP"
}
