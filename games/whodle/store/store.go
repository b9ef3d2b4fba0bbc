/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package store provides the session backends: process memory, a directory
// of JSON files, and SQL databases (sqlite, postgres, mysql).
package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Seednode/whodle/games/whodle"
)

// Backend is a session store that owns resources.
type Backend interface {
	whodle.Store
	io.Closer
}

// Kinds lists the accepted values for Open's kind.
var Kinds = []string{"memory", "file", "sqlite", "postgres", "mysql"}

func Valid(kind string) bool {
	for _, k := range Kinds {
		if strings.EqualFold(k, kind) {
			return true
		}
	}

	return false
}

// Open builds the backend named by kind. path is used by file and sqlite,
// url by postgres and mysql.
func Open(ctx context.Context, kind, path, url string) (Backend, error) {
	switch strings.ToLower(kind) {
	case "memory", "":
		return NewMemory(), nil
	case "file":
		return NewFile(path)
	case "sqlite", "sqlite3":
		return OpenSQL(ctx, SQLiteDialect{}, path)
	case "postgres", "postgresql":
		return OpenSQL(ctx, PostgresDialect{}, url)
	case "mysql":
		return OpenSQL(ctx, MySQLDialect{}, url)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", kind)
	}
}
