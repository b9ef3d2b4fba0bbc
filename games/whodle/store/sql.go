/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Seednode/whodle/games/whodle"
)

// SQL keeps sessions in a single table, one row per key.
type SQL struct {
	db      *sql.DB
	dialect Dialect
}

func OpenSQL(ctx context.Context, dialect Dialect, dsn string) (*SQL, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := dialect.ConfigureConnection(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	if _, err := db.ExecContext(ctx, dialect.CreateSessionsTableQuery()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	return &SQL{db: db, dialect: dialect}, nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var data string

	query := s.dialect.RewriteQuery("SELECT data FROM sessions WHERE session_key = ?")
	err := s.db.QueryRowContext(ctx, query, key).Scan(&data)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, whodle.ErrNotFound
	case err != nil:
		return nil, err
	}

	return []byte(data), nil
}

func (s *SQL) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, s.dialect.RewriteQuery(s.dialect.UpsertSessionQuery()), key, string(data))

	return err
}

func (s *SQL) Close() error {
	return s.db.Close()
}
