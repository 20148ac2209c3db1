// Package summary aggregates recorded expenses over calendar ranges.
package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/ngthanhdat/chitieubot/internal/ledger"
	"github.com/shopspring/decimal"
)

// Range is a reporting preset. The Vietnamese names are the canonical
// command arguments; English aliases are accepted too.
type Range string

const (
	RangeDay   Range = "ngay"
	RangeWeek  Range = "tuan"
	RangeMonth Range = "thang"
)

// ParseRange maps a command argument to a preset. Empty input defaults to
// today.
func ParseRange(arg string) (Range, error) {
	switch arg {
	case "", "ngay", "today":
		return RangeDay, nil
	case "tuan", "week":
		return RangeWeek, nil
	case "thang", "month":
		return RangeMonth, nil
	}
	return "", fmt.Errorf("unknown range %q", arg)
}

// Label is the human-readable Vietnamese name used in replies.
func (r Range) Label() string {
	switch r {
	case RangeWeek:
		return "tuần này"
	case RangeMonth:
		return "tháng này"
	default:
		return "hôm nay"
	}
}

// Bounds resolves the preset against now into an inclusive calendar-date
// range: today is [now, now], this week starts on the most recent Monday,
// this month on the first.
func (r Range) Bounds(now time.Time) (start, end time.Time) {
	switch r {
	case RangeWeek:
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		return now.AddDate(0, 0, -daysSinceMonday), now
	case RangeMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now
	default:
		return now, now
	}
}

// Service answers expense totals over date ranges.
type Service struct {
	store ledger.Store
}

func NewService(store ledger.Store) *Service {
	return &Service{store: store}
}

// SumByRange returns the total of expense-kind transactions whose calendar
// date falls within [start, end]. Zero matching rows yield zero, not an
// error.
func (s *Service) SumByRange(ctx context.Context, userID int64, start, end time.Time) (decimal.Decimal, error) {
	total, err := s.store.SumTransactions(ctx, userID, ledger.KindExpense, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum transactions for user %d: %w", userID, err)
	}
	return total, nil
}

// SumPreset resolves a preset against now and sums over it.
func (s *Service) SumPreset(ctx context.Context, userID int64, r Range, now time.Time) (decimal.Decimal, error) {
	start, end := r.Bounds(now)
	return s.SumByRange(ctx, userID, start, end)
}
