package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func (db *DB) UpsertUser(ctx context.Context, userID int64, fullName, username string) error {
	_, err := db.pool.Exec(ctx,
		"INSERT INTO users (user_id, full_name, username) VALUES ($1, NULLIF($2, ''), NULLIF($3, '')) ON CONFLICT (user_id) DO NOTHING",
		userID, fullName, username,
	)
	return err
}

// IncrementBalance applies the delta in one statement so concurrent
// handlers for the same user cannot lose updates. Unknown users get a row
// seeded with the delta itself.
func (db *DB) IncrementBalance(ctx context.Context, userID int64, delta decimal.Decimal) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO users (user_id, balance) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET balance = users.balance + EXCLUDED.balance`,
		userID, delta,
	)
	return err
}

func (db *DB) SetBalance(ctx context.Context, userID int64, amount decimal.Decimal) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO users (user_id, balance) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET balance = EXCLUDED.balance`,
		userID, amount,
	)
	return err
}

// GetBalance returns zero for users that have no row yet; absence is not
// an error.
func (db *DB) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := db.pool.QueryRow(ctx,
		"SELECT balance FROM users WHERE user_id = $1",
		userID,
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
