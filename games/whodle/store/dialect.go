/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package store

import (
	"database/sql"
	"regexp"
	"strconv"
	"time"
)

// Dialect covers the differences between the supported SQL databases.
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// RewriteQuery converts ? placeholders if the driver needs another syntax
	RewriteQuery(query string) string

	// ConfigureConnection applies database-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// CreateSessionsTableQuery returns the DDL for the sessions table
	CreateSessionsTableQuery() string

	// UpsertSessionQuery inserts or replaces one session row
	UpsertSessionQuery() string
}

var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
}
