package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type queries struct {
	read  string
	write string
}

var (
	postgresQueries = queries{
		read: `SELECT value FROM snapshots WHERE key = $1`,
		write: `
			INSERT INTO snapshots (key, value, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		`,
	}

	sqliteQueries = queries{
		read: `SELECT value FROM snapshots WHERE key = ?`,
		write: `
			INSERT INTO snapshots (key, value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`,
	}
)

// SQL stores snapshots in the snapshots table created by the database
// migrations.
type SQL struct {
	db *sql.DB
	q  queries
}

func NewPostgres(db *sql.DB) *SQL {
	return &SQL{db: db, q: postgresQueries}
}

func NewSQLite(db *sql.DB) *SQL {
	return &SQL{db: db, q: sqliteQueries}
}

func (s *SQL) Read(ctx context.Context, key string) (string, bool, error) {
	var value string

	err := s.db.QueryRowContext(ctx, s.q.read, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("reading snapshot: %w", err)
	}

	return value, true, nil
}

func (s *SQL) Write(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.q.write, key, value); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}
