// Package ledger holds the bookkeeping core: transaction records and the
// per-user running balance they feed.
package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Kind tags a transaction as balance-decreasing ("chi") or
// balance-increasing ("thu").
type Kind string

const (
	KindExpense Kind = "chi"
	KindIncome  Kind = "thu"
)

// Delta returns the signed balance change for an amount of this kind.
func (k Kind) Delta(amount decimal.Decimal) decimal.Decimal {
	if k == KindExpense {
		return amount.Neg()
	}
	return amount
}

// Transaction is one recorded expense or income event. Amount is always a
// positive magnitude; the sign lives in Kind. A zero Date means "let the
// store default to now".
type Transaction struct {
	UserID int64
	Amount decimal.Decimal
	Reason string
	Kind   Kind
	Date   time.Time
}

// Store is the durable surface the ledger runs against. Implementations
// must make IncrementBalance a single atomic add on the storage side so
// concurrent handlers for the same user cannot lose updates, and
// RecordTransaction must apply the row insert and the balance change
// together or not at all.
type Store interface {
	UpsertUser(ctx context.Context, userID int64, fullName, username string) error
	InsertTransaction(ctx context.Context, tx Transaction) error
	RecordTransaction(ctx context.Context, tx Transaction) error
	IncrementBalance(ctx context.Context, userID int64, delta decimal.Decimal) error
	SetBalance(ctx context.Context, userID int64, amount decimal.Decimal) error
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
	ListRecentTransactions(ctx context.Context, userID int64, limit int) ([]Transaction, error)
	SumTransactions(ctx context.Context, userID int64, kind Kind, start, end time.Time) (decimal.Decimal, error)
}
