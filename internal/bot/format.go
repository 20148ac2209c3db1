package bot

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ngthanhdat/chitieubot/internal/ledger"
)

// formatVND renders an amount rounded to whole đồng with comma-grouped
// thousands, e.g. 1234567 -> "1,234,567".
func formatVND(d decimal.Decimal) string {
	s := d.Round(0).String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(s[i])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func formatRecorded(kind ledger.Kind, amount decimal.Decimal, reason string, balance decimal.Decimal) string {
	if kind == ledger.KindIncome {
		return fmt.Sprintf("✅ Đã ghi thu: %sđ cho '%s'\n💵 Số dư hiện có: %sđ", formatVND(amount), reason, formatVND(balance))
	}
	return fmt.Sprintf("✅ Đã ghi: %sđ cho '%s'\n💵 Số dư còn lại: %sđ", formatVND(amount), reason, formatVND(balance))
}

func formatRecent(txs []ledger.Transaction) string {
	var sb strings.Builder
	sb.WriteString("📋 Giao dịch gần đây:\n\n")
	for _, tx := range txs {
		icon := "💸"
		if tx.Kind == ledger.KindIncome {
			icon = "💵"
		}
		fmt.Fprintf(&sb, "%s %sđ - %s (%s)\n", icon, formatVND(tx.Amount), tx.Reason, tx.Date.Format("2006-01-02 15:04"))
	}
	return sb.String()
}
