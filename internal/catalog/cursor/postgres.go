// Package cursor persists the incremental-sync cursor so it survives
// restarts. A single well-known key holds the server-reported timestamp of
// the last successfully merged batch.
package cursor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	// Key is the single row under which the cursor is stored.
	Key = "products.last_fetch_time"

	healthCheckTimeout = 2 * time.Second
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Load returns the persisted cursor. The second return value is false when no
// cursor has been saved yet, which callers treat as "full fetch".
func (r *PostgresRepository) Load(ctx context.Context) (string, bool, error) {
	query := `SELECT value FROM sync_cursor WHERE key = $1`

	var value string
	err := r.db.QueryRowContext(ctx, query, Key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load cursor: %w", err)
	}
	return value, true, nil
}

// Save upserts the cursor value.
func (r *PostgresRepository) Save(ctx context.Context, value string) error {
	query := `
		INSERT INTO sync_cursor (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
	`

	if _, err := r.db.ExecContext(ctx, query, Key, value); err != nil {
		return fmt.Errorf("save cursor: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()
	return r.db.PingContext(ctx)
}
