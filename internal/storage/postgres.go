package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// bootstrapSQL creates the single key/value table the gateway needs.
// There is no schema versioning; a format change is a breaking change.
const bootstrapSQL = `
CREATE TABLE IF NOT EXISTS engine_state (
    state_key  TEXT PRIMARY KEY,
    state_value BYTEA NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

const (
	getSQL   = `SELECT state_value FROM engine_state WHERE state_key = $1`
	setSQL   = `INSERT INTO engine_state (state_key, state_value, updated_at) VALUES ($1, $2, NOW()) ON CONFLICT (state_key) DO UPDATE SET state_value = EXCLUDED.state_value, updated_at = NOW()`
	clearSQL = `DELETE FROM engine_state`
)

// PostgresStore is a Store backed by a single postgres key/value table,
// for server deployments of the engine.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects, bootstraps the state table and returns the store
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, bootstrapSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("bootstrap state table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Get returns the stored bytes for key
func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := p.pool.QueryRow(ctx, getSQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key
func (p *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := p.pool.Exec(ctx, setSQL, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Clear removes all stored keys
func (p *PostgresStore) Clear(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, clearSQL); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	return nil
}

// Ping checks database connectivity; the readiness probe uses this
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close releases the connection pool
func (p *PostgresStore) Close() {
	p.pool.Close()
}
