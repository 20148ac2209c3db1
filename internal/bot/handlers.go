package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ngthanhdat/chitieubot/internal/ledger"
	"github.com/ngthanhdat/chitieubot/internal/parse"
	"github.com/ngthanhdat/chitieubot/internal/summary"
)

const (
	msgBadAmount      = "⚠️ Không hiểu số tiền bạn nhập."
	msgStoreError     = "😥 Có lỗi xảy ra, vui lòng thử lại sau."
	msgUsageChi       = "⚠️ Dùng cú pháp: /chi [số tiền] [lý do]\nVí dụ: /chi 50k ăn sáng hôm nay"
	msgUsageThu       = "⚠️ Dùng cú pháp: /thu [số tiền] [lý do]\nVí dụ: /thu 200k lương hôm qua"
	msgUsageTongChi   = "⚠️ Dùng: /tongchi [ngay|tuan|thang]"
	msgUsageSoDu      = "⚠️ Cú pháp: /sodu [set|them|tru] [số tiền]"
	msgNoTransactions = "📭 Chưa có giao dịch nào"
)

const startMessage = "💰 *Bot Quản Lý Chi Tiêu*\n\n" +
	"Bạn có thể dùng:\n" +
	"• /chi [số tiền] [lý do] – ghi chi tiêu\n" +
	"   👉 Ví dụ: `/chi 50k ăn sáng hôm nay`\n\n" +
	"• /thu [số tiền] [lý do] – ghi thu nhập\n\n" +
	"• Hoặc chỉ cần nhắn tự nhiên: `ăn sáng 50k`\n\n" +
	"• /danhsach – xem giao dịch gần đây\n" +
	"• /tongchi [ngay|tuan|thang] – xem tổng chi\n" +
	"• /sodu – xem hoặc chỉnh số dư\n"

func (b *Bot) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	if m.From == nil {
		return
	}

	fullName := strings.TrimSpace(m.From.FirstName + " " + m.From.LastName)
	if err := b.ledger.EnsureUser(ctx, m.From.ID, fullName, m.From.UserName); err != nil {
		log.Printf("Failed to upsert user %d: %v", m.From.ID, err)
	}

	if !m.IsCommand() {
		b.handleFreeText(ctx, m)
		return
	}

	switch m.Command() {
	case "start":
		b.replyMarkdown(m.Chat.ID, startMessage)
	case "chi":
		b.handleRecord(ctx, m, ledger.KindExpense)
	case "thu":
		b.handleRecord(ctx, m, ledger.KindIncome)
	case "danhsach":
		b.handleList(ctx, m)
	case "tongchi":
		b.handleSummary(ctx, m)
	case "sodu":
		b.handleBalance(ctx, m)
	}
}

func (b *Bot) handleRecord(ctx context.Context, m *tgbotapi.Message, kind ledger.Kind) {
	usage := msgUsageChi
	if kind == ledger.KindIncome {
		usage = msgUsageThu
	}

	args := strings.Fields(m.CommandArguments())
	if len(args) == 0 {
		b.reply(m.Chat.ID, usage)
		return
	}

	amount, ok := parse.ParseAmount(args[0])
	if !ok {
		b.reply(m.Chat.ID, msgBadAmount)
		return
	}

	rest := strings.Join(args[1:], " ")
	var date time.Time
	if d, hit := parse.ParseDateHint(rest, time.Now()); hit {
		date = d
	}
	reason := parse.ExtractReason(rest, "")

	balance, err := b.ledger.Record(ctx, m.From.ID, amount.Value, reason, date, kind)
	if err != nil {
		log.Printf("Failed to record %s for user %d: %v", kind, m.From.ID, err)
		b.reply(m.Chat.ID, msgStoreError)
		return
	}

	b.reply(m.Chat.ID, formatRecorded(kind, amount.Value, reason, balance))
}

func (b *Bot) handleFreeText(ctx context.Context, m *tgbotapi.Message) {
	norm := parse.Normalize(m.Text)

	amount, ok := parse.ParseAmount(norm)
	if !ok {
		// Not money talk; stay quiet.
		return
	}

	var date time.Time
	if d, hit := parse.ParseDateHint(norm, time.Now()); hit {
		date = d
	}
	reason := parse.ExtractReason(norm, amount.Raw)

	balance, err := b.ledger.Record(ctx, m.From.ID, amount.Value, reason, date, ledger.KindExpense)
	if err != nil {
		log.Printf("Failed to record expense for user %d: %v", m.From.ID, err)
		b.reply(m.Chat.ID, msgStoreError)
		return
	}

	b.reply(m.Chat.ID, formatRecorded(ledger.KindExpense, amount.Value, reason, balance))
}

func (b *Bot) handleList(ctx context.Context, m *tgbotapi.Message) {
	txs, err := b.ledger.Recent(ctx, m.From.ID, 10)
	if err != nil {
		log.Printf("Failed to list transactions for user %d: %v", m.From.ID, err)
		b.reply(m.Chat.ID, msgStoreError)
		return
	}
	if len(txs) == 0 {
		b.reply(m.Chat.ID, msgNoTransactions)
		return
	}

	b.reply(m.Chat.ID, formatRecent(txs))
}

func (b *Bot) handleSummary(ctx context.Context, m *tgbotapi.Message) {
	arg := ""
	if args := strings.Fields(m.CommandArguments()); len(args) > 0 {
		arg = strings.ToLower(args[0])
	}

	r, err := summary.ParseRange(arg)
	if err != nil {
		b.reply(m.Chat.ID, msgUsageTongChi)
		return
	}

	total, err := b.summary.SumPreset(ctx, m.From.ID, r, time.Now())
	if err != nil {
		log.Printf("Failed to sum expenses for user %d: %v", m.From.ID, err)
		b.reply(m.Chat.ID, msgStoreError)
		return
	}

	b.reply(m.Chat.ID, fmt.Sprintf("📊 Tổng chi %s: %sđ", r.Label(), formatVND(total)))
}

func (b *Bot) handleBalance(ctx context.Context, m *tgbotapi.Message) {
	args := strings.Fields(m.CommandArguments())
	if len(args) == 0 {
		balance, err := b.ledger.GetBalance(ctx, m.From.ID)
		if err != nil {
			log.Printf("Failed to read balance for user %d: %v", m.From.ID, err)
			b.reply(m.Chat.ID, msgStoreError)
			return
		}
		b.reply(m.Chat.ID, fmt.Sprintf("💰 Số dư hiện có: %sđ", formatVND(balance)))
		return
	}

	action := strings.ToLower(args[0])
	if len(args) < 2 {
		b.reply(m.Chat.ID, msgUsageSoDu)
		return
	}

	amount, ok := parse.ParseAmount(args[1])
	if !ok {
		b.reply(m.Chat.ID, msgBadAmount)
		return
	}

	switch action {
	case "set":
		if err := b.ledger.SetBalance(ctx, m.From.ID, amount.Value); err != nil {
			log.Printf("Failed to set balance for user %d: %v", m.From.ID, err)
			b.reply(m.Chat.ID, msgStoreError)
			return
		}
		b.reply(m.Chat.ID, fmt.Sprintf("✅ Đặt lại số dư: %sđ", formatVND(amount.Value)))
	case "them":
		balance, err := b.ledger.AdjustBalance(ctx, m.From.ID, amount.Value)
		if err != nil {
			log.Printf("Failed to adjust balance for user %d: %v", m.From.ID, err)
			b.reply(m.Chat.ID, msgStoreError)
			return
		}
		b.reply(m.Chat.ID, fmt.Sprintf("💵 Cộng thêm %sđ → Số dư mới: %sđ", formatVND(amount.Value), formatVND(balance)))
	case "tru":
		balance, err := b.ledger.AdjustBalance(ctx, m.From.ID, amount.Value.Neg())
		if err != nil {
			log.Printf("Failed to adjust balance for user %d: %v", m.From.ID, err)
			b.reply(m.Chat.ID, msgStoreError)
			return
		}
		b.reply(m.Chat.ID, fmt.Sprintf("💸 Trừ %sđ → Số dư mới: %sđ", formatVND(amount.Value), formatVND(balance)))
	default:
		b.reply(m.Chat.ID, msgUsageSoDu)
	}
}
