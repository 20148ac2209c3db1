package bot

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ngthanhdat/chitieubot/internal/ledger"
	"github.com/ngthanhdat/chitieubot/internal/summary"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	ledger  *ledger.Service
	summary *summary.Service
}

func New(token string, ledgerSvc *ledger.Service, summarySvc *summary.Service) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram session: %w", err)
	}

	return &Bot{
		api:     api,
		ledger:  ledgerSvc,
		summary: summarySvc,
	}, nil
}

// Run polls for updates until ctx is cancelled. Each message is handled in
// its own goroutine; there is no per-user ordering, the store's atomic
// balance increment keeps concurrent writes safe.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	log.Printf("Telegram bot is running as @%s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message to chat %d: %v", chatID, err)
	}
}

func (b *Bot) replyMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message to chat %d: %v", chatID, err)
	}
}
