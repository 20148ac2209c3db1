package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Service applies bookkeeping rules on top of a Store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// EnsureUser creates the user row on first contact. Safe to call on every
// inbound message; existing rows are left untouched.
func (s *Service) EnsureUser(ctx context.Context, userID int64, fullName, username string) error {
	return s.store.UpsertUser(ctx, userID, fullName, username)
}

// Record persists one transaction and applies its signed amount to the
// user's balance in a single store-level transaction, then returns the
// resulting balance. date may be zero to record at the current time.
func (s *Service) Record(ctx context.Context, userID int64, amount decimal.Decimal, reason string, date time.Time, kind Kind) (decimal.Decimal, error) {
	if err := s.store.UpsertUser(ctx, userID, "", ""); err != nil {
		return decimal.Zero, fmt.Errorf("ensure user %d: %w", userID, err)
	}

	tx := Transaction{
		UserID: userID,
		Amount: amount,
		Reason: reason,
		Kind:   kind,
		Date:   date,
	}
	if err := s.store.RecordTransaction(ctx, tx); err != nil {
		return decimal.Zero, fmt.Errorf("record transaction for user %d: %w", userID, err)
	}

	balance, err := s.store.GetBalance(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("read balance for user %d: %w", userID, err)
	}
	return balance, nil
}

// SetBalance overwrites the stored balance unconditionally. Transaction
// history is not touched, so the derived-sum invariant no longer holds
// after this call; that is the point of the explicit reset.
func (s *Service) SetBalance(ctx context.Context, userID int64, amount decimal.Decimal) error {
	if err := s.store.SetBalance(ctx, userID, amount); err != nil {
		return fmt.Errorf("set balance for user %d: %w", userID, err)
	}
	return nil
}

// AdjustBalance adds a signed delta to the balance without writing a
// ledger row. Used by the manual correction flow.
func (s *Service) AdjustBalance(ctx context.Context, userID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	if err := s.store.IncrementBalance(ctx, userID, delta); err != nil {
		return decimal.Zero, fmt.Errorf("adjust balance for user %d: %w", userID, err)
	}
	balance, err := s.store.GetBalance(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("read balance for user %d: %w", userID, err)
	}
	return balance, nil
}

// GetBalance returns the stored balance, or zero for users that have never
// written anything.
func (s *Service) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return s.store.GetBalance(ctx, userID)
}

// Recent returns up to limit transactions for the user, newest first.
func (s *Service) Recent(ctx context.Context, userID int64, limit int) ([]Transaction, error) {
	return s.store.ListRecentTransactions(ctx, userID, limit)
}
