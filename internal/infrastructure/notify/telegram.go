package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/ozon-stock-sync/internal/domain/apperror"
	"github.com/yourusername/ozon-stock-sync/internal/domain/entity"
	"github.com/yourusername/ozon-stock-sync/internal/domain/repository"
)

type telegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier hisobotni Telegram chatga yuboruvchi notifier
func NewTelegramNotifier(token string, chatID int64) (repository.Notifier, error) {
	return NewTelegramNotifierWithEndpoint(token, chatID, tgbotapi.APIEndpoint)
}

// NewTelegramNotifierWithEndpoint boshqa Bot API manzili bilan (format: ".../bot%s/%s")
func NewTelegramNotifierWithEndpoint(token string, chatID int64, endpoint string) (repository.Notifier, error) {
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, apperror.Network("telegram login", err)
	}
	return &telegramNotifier{bot: bot, chatID: chatID}, nil
}

// Notify hisobotni yuborish
func (n *telegramNotifier) Notify(ctx context.Context, report *entity.SyncReport) error {
	msg := tgbotapi.NewMessage(n.chatID, FormatReport(report))
	if _, err := n.bot.Send(msg); err != nil {
		return apperror.Network("telegram send", err)
	}
	return nil
}

// FormatReport hisobot matni
func FormatReport(report *entity.SyncReport) string {
	var sb strings.Builder
	if report.Succeeded() {
		sb.WriteString("✅ Ozon sync finished\n")
	} else {
		sb.WriteString("❌ Ozon sync failed\n")
	}
	sb.WriteString(fmt.Sprintf("Run: %s\n", report.ID))
	sb.WriteString(fmt.Sprintf("Duration: %s\n", report.Duration().Round(time.Millisecond)))
	sb.WriteString(fmt.Sprintf("Feed rows: %d\n", report.FeedRows))
	sb.WriteString(fmt.Sprintf("Stocks: %d (in stock: %d)\n", report.StocksSent, report.NonEmptyStocks))
	sb.WriteString(fmt.Sprintf("Prices: %d\n", report.PricesSent))
	if report.Rejected > 0 {
		sb.WriteString(fmt.Sprintf("Rejected by API: %d\n", report.Rejected))
	}
	if report.Err != nil {
		sb.WriteString(fmt.Sprintf("Error: %v\n", report.Err))
	}
	return sb.String()
}

type nopNotifier struct{}

// NewNopNotifier Telegram sozlanmagan bo'lsa ishlatiladi
func NewNopNotifier() repository.Notifier {
	return nopNotifier{}
}

func (nopNotifier) Notify(ctx context.Context, report *entity.SyncReport) error {
	return nil
}
