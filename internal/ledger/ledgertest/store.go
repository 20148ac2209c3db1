// Package ledgertest provides an in-memory ledger.Store for tests.
package ledgertest

import (
	"context"
	"sync"
	"time"

	"github.com/ngthanhdat/chitieubot/internal/ledger"
	"github.com/shopspring/decimal"
)

type user struct {
	fullName string
	username string
	balance  decimal.Decimal
}

// Store keeps users and transactions in memory with the same semantics the
// Postgres store implements: upsert-on-write, zero balance for unknown
// users, atomic record (all in-memory operations hold one lock).
type Store struct {
	mu           sync.Mutex
	users        map[int64]*user
	transactions []ledger.Transaction

	// Err, when set, is returned by every mutation to simulate an
	// unavailable store.
	Err error
}

var _ ledger.Store = (*Store)(nil)

func New() *Store {
	return &Store{users: make(map[int64]*user)}
}

func (s *Store) ensure(userID int64) *user {
	u, ok := s.users[userID]
	if !ok {
		u = &user{balance: decimal.Zero}
		s.users[userID] = u
	}
	return u
}

func (s *Store) UpsertUser(_ context.Context, userID int64, fullName, username string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; ok {
		return nil
	}
	s.users[userID] = &user{fullName: fullName, username: username, balance: decimal.Zero}
	return nil
}

func (s *Store) InsertTransaction(_ context.Context, tx ledger.Transaction) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertLocked(tx)
	return nil
}

func (s *Store) insertLocked(tx ledger.Transaction) {
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}
	s.transactions = append(s.transactions, tx)
}

func (s *Store) RecordTransaction(_ context.Context, tx ledger.Transaction) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertLocked(tx)
	u := s.ensure(tx.UserID)
	u.balance = u.balance.Add(tx.Kind.Delta(tx.Amount))
	return nil
}

func (s *Store) IncrementBalance(_ context.Context, userID int64, delta decimal.Decimal) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.ensure(userID)
	u.balance = u.balance.Add(delta)
	return nil
}

func (s *Store) SetBalance(_ context.Context, userID int64, amount decimal.Decimal) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(userID).balance = amount
	return nil
}

func (s *Store) GetBalance(_ context.Context, userID int64) (decimal.Decimal, error) {
	if s.Err != nil {
		return decimal.Zero, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return decimal.Zero, nil
	}
	return u.balance, nil
}

func (s *Store) ListRecentTransactions(_ context.Context, userID int64, limit int) ([]ledger.Transaction, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ledger.Transaction
	for i := len(s.transactions) - 1; i >= 0 && len(out) < limit; i-- {
		if s.transactions[i].UserID == userID {
			out = append(out, s.transactions[i])
		}
	}
	return out, nil
}

func (s *Store) SumTransactions(_ context.Context, userID int64, kind ledger.Kind, start, end time.Time) (decimal.Decimal, error) {
	if s.Err != nil {
		return decimal.Zero, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	startDay := start.Truncate(24 * time.Hour)
	endDay := end.Truncate(24 * time.Hour)
	for _, tx := range s.transactions {
		if tx.UserID != userID || tx.Kind != kind {
			continue
		}
		day := tx.Date.Truncate(24 * time.Hour)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total, nil
}
