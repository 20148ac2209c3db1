package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ngthanhdat/chitieubot/internal/ledger"
)

type DB struct {
	pool *pgxpool.Pool
}

var _ ledger.Store = (*DB)(nil)

func New(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

func (db *DB) Close() {
	db.pool.Close()
}

// RunMigrations runs database migrations
func (db *DB) RunMigrations(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			user_id BIGINT PRIMARY KEY,
			full_name TEXT,
			username TEXT,
			balance NUMERIC NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS transactions (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(user_id),
			amount NUMERIC NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			date TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		ALTER TABLE transactions ADD COLUMN IF NOT EXISTS kind TEXT NOT NULL DEFAULT 'chi';
		CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date);
	`)
	return err
}
