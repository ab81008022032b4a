package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/ozon-stock-sync/internal/domain/apperror"
)

var allKeys = []string{
	"SELLER_TOKEN", "CLIENT_ID", "OZON_API_URL", "STOCK_FEED_URL", "STOCK_FEED_FILE",
	"STOCK_FEED_HEADER_ROW", "WORK_DIR", "PRICE_BATCH_SIZE", "STOCK_BATCH_SIZE",
	"CATALOG_PAGE_LIMIT", "HTTP_TIMEOUT_SECONDS", "OZON_REQUESTS_PER_SECOND",
	"LOG_LEVEL", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "STOCK_FEED_IN_MEMORY",
	"STOCK_FEED_MAX_MB",
}

func clearEnv(t *testing.T) {
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SELLER_TOKEN", "token")
	t.Setenv("CLIENT_ID", "client")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token", c.SellerToken)
	assert.Equal(t, "client", c.ClientID)
	assert.Equal(t, "https://api-seller.ozon.ru", c.OzonAPIURL)
	assert.Equal(t, "https://timeworld.ru/upload/files/ostatki.zip", c.StockFeedURL)
	assert.Equal(t, "ostatki.xls", c.StockFeedFile)
	assert.Equal(t, 17, c.FeedHeaderRow)
	assert.Equal(t, ".", c.WorkDir)
	assert.False(t, c.FeedInMemory)
	assert.Equal(t, int64(64<<20), c.MaxFeedBytes)
	assert.Equal(t, 1000, c.PriceBatchSize)
	assert.Equal(t, 100, c.StockBatchSize)
	assert.Equal(t, 1000, c.CatalogPageLimit)
	assert.Equal(t, 30*time.Second, c.HTTPTimeout)
	assert.Zero(t, c.RequestsPerSecond)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, c.TelegramEnabled())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SELLER_TOKEN", "token")
	t.Setenv("CLIENT_ID", "client")
	t.Setenv("PRICE_BATCH_SIZE", "900")
	t.Setenv("STOCK_BATCH_SIZE", "50")
	t.Setenv("STOCK_FEED_HEADER_ROW", "0")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "5")
	t.Setenv("OZON_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("TELEGRAM_BOT_TOKEN", "bot")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")
	t.Setenv("STOCK_FEED_IN_MEMORY", "true")
	t.Setenv("STOCK_FEED_MAX_MB", "8")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 900, c.PriceBatchSize)
	assert.Equal(t, 50, c.StockBatchSize)
	assert.Equal(t, 0, c.FeedHeaderRow)
	assert.Equal(t, 5*time.Second, c.HTTPTimeout)
	assert.Equal(t, 2.5, c.RequestsPerSecond)
	assert.Equal(t, int64(-100123), c.TelegramChatID)
	assert.True(t, c.TelegramEnabled())
	assert.True(t, c.FeedInMemory)
	assert.Equal(t, int64(8<<20), c.MaxFeedBytes)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing token", map[string]string{"CLIENT_ID": "client"}},
		{"missing client id", map[string]string{"SELLER_TOKEN": "token"}},
		{"bad batch size", map[string]string{"SELLER_TOKEN": "token", "CLIENT_ID": "client", "PRICE_BATCH_SIZE": "many"}},
		{"zero batch size", map[string]string{"SELLER_TOKEN": "token", "CLIENT_ID": "client", "STOCK_BATCH_SIZE": "0"}},
		{"bad rps", map[string]string{"SELLER_TOKEN": "token", "CLIENT_ID": "client", "OZON_REQUESTS_PER_SECOND": "fast"}},
		{"bad chat id", map[string]string{"SELLER_TOKEN": "token", "CLIENT_ID": "client", "TELEGRAM_CHAT_ID": "chat"}},
		{"bad in-memory flag", map[string]string{"SELLER_TOKEN": "token", "CLIENT_ID": "client", "STOCK_FEED_IN_MEMORY": "maybe"}},
		{"zero feed limit", map[string]string{"SELLER_TOKEN": "token", "CLIENT_ID": "client", "STOCK_FEED_MAX_MB": "0"}},
		{"negative header", map[string]string{"SELLER_TOKEN": "token", "CLIENT_ID": "client", "STOCK_FEED_HEADER_ROW": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		})
	}
}
