package db

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ngthanhdat/chitieubot/internal/ledger"
)

func (db *DB) InsertTransaction(ctx context.Context, tx ledger.Transaction) error {
	if tx.Date.IsZero() {
		_, err := db.pool.Exec(ctx,
			"INSERT INTO transactions (user_id, amount, reason, kind) VALUES ($1, $2, $3, $4)",
			tx.UserID, tx.Amount, tx.Reason, string(tx.Kind),
		)
		return err
	}
	_, err := db.pool.Exec(ctx,
		"INSERT INTO transactions (user_id, amount, reason, kind, date) VALUES ($1, $2, $3, $4, $5)",
		tx.UserID, tx.Amount, tx.Reason, string(tx.Kind), tx.Date,
	)
	return err
}

// RecordTransaction inserts the ledger row and applies the signed amount
// to the user's balance inside one database transaction, so history and
// balance cannot diverge on a partial failure.
func (db *DB) RecordTransaction(ctx context.Context, t ledger.Transaction) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if t.Date.IsZero() {
		_, err = tx.Exec(ctx,
			"INSERT INTO transactions (user_id, amount, reason, kind) VALUES ($1, $2, $3, $4)",
			t.UserID, t.Amount, t.Reason, string(t.Kind),
		)
	} else {
		_, err = tx.Exec(ctx,
			"INSERT INTO transactions (user_id, amount, reason, kind, date) VALUES ($1, $2, $3, $4, $5)",
			t.UserID, t.Amount, t.Reason, string(t.Kind), t.Date,
		)
	}
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO users (user_id, balance) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET balance = users.balance + EXCLUDED.balance`,
		t.UserID, t.Kind.Delta(t.Amount),
	)
	if err != nil {
		return fmt.Errorf("apply balance: %w", err)
	}

	return tx.Commit(ctx)
}

func (db *DB) ListRecentTransactions(ctx context.Context, userID int64, limit int) ([]ledger.Transaction, error) {
	rows, err := db.pool.Query(ctx,
		"SELECT user_id, amount, reason, kind, date FROM transactions WHERE user_id = $1 ORDER BY id DESC LIMIT $2",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []ledger.Transaction
	for rows.Next() {
		var tx ledger.Transaction
		var kind string
		if err := rows.Scan(&tx.UserID, &tx.Amount, &tx.Reason, &kind, &tx.Date); err != nil {
			return nil, err
		}
		tx.Kind = ledger.Kind(kind)
		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

// SumTransactions compares calendar dates, ignoring time of day, and
// returns zero when nothing matches.
func (db *DB) SumTransactions(ctx context.Context, userID int64, kind ledger.Kind, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions
		 WHERE user_id = $1 AND kind = $2 AND date::date BETWEEN $3::date AND $4::date`,
		userID, string(kind), start, end,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
