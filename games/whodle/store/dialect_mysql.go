/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package store

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
)

type MySQLDialect struct{}

func (MySQLDialect) DriverName() string {
	return "mysql"
}

func (MySQLDialect) RewriteQuery(query string) string {
	return query
}

func (MySQLDialect) ConfigureConnection(db *sql.DB) error {
	configurePool(db)

	return nil
}

func (MySQLDialect) CreateSessionsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS sessions (
			session_key VARCHAR(255) PRIMARY KEY,
			data MEDIUMTEXT NOT NULL,
			updated_at DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6)
		);
	`
}

func (MySQLDialect) UpsertSessionQuery() string {
	return "INSERT INTO sessions (session_key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP(6)) " +
		"ON DUPLICATE KEY UPDATE data = VALUES(data), updated_at = CURRENT_TIMESTAMP(6)"
}
