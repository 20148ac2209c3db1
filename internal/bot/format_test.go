package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ngthanhdat/chitieubot/internal/ledger"
)

func TestFormatVND(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "0"},
		{in: "100", want: "100"},
		{in: "50000", want: "50,000"},
		{in: "1234567", want: "1,234,567"},
		{in: "-50000", want: "-50,000"},
		{in: "1500000.4", want: "1,500,000"},
	}

	for _, tt := range tests {
		d := decimal.RequireFromString(tt.in)
		if got := formatVND(d); got != tt.want {
			t.Errorf("formatVND(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRecorded(t *testing.T) {
	got := formatRecorded(ledger.KindExpense, decimal.NewFromInt(50000), "ăn sáng", decimal.NewFromInt(-50000))
	want := "✅ Đã ghi: 50,000đ cho 'ăn sáng'\n💵 Số dư còn lại: -50,000đ"
	if got != want {
		t.Errorf("formatRecorded = %q, want %q", got, want)
	}

	got = formatRecorded(ledger.KindIncome, decimal.NewFromInt(200000), "lương", decimal.NewFromInt(150000))
	if !strings.Contains(got, "Đã ghi thu: 200,000đ") {
		t.Errorf("income message missing amount: %q", got)
	}
}

func TestFormatRecent(t *testing.T) {
	txs := []ledger.Transaction{
		{
			Amount: decimal.NewFromInt(50000),
			Reason: "ăn sáng",
			Kind:   ledger.KindExpense,
			Date:   time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC),
		},
		{
			Amount: decimal.NewFromInt(200000),
			Reason: "lương",
			Kind:   ledger.KindIncome,
			Date:   time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC),
		},
	}

	got := formatRecent(txs)
	for _, want := range []string{
		"📋 Giao dịch gần đây:",
		"💸 50,000đ - ăn sáng (2025-03-12 09:30)",
		"💵 200,000đ - lương (2025-03-11 08:00)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("formatRecent missing %q in:\n%s", want, got)
		}
	}
}
