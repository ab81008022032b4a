package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/ozon-stock-sync/internal/domain/entity"
)

func sampleReport(err error) *entity.SyncReport {
	start := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	return &entity.SyncReport{
		ID:             "run-1",
		StartedAt:      start,
		FinishedAt:     start.Add(1500 * time.Millisecond),
		FeedRows:       120,
		StocksSent:     80,
		NonEmptyStocks: 30,
		PricesSent:     75,
		Rejected:       2,
		Err:            err,
	}
}

func TestFormatReport(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		text := FormatReport(sampleReport(nil))
		assert.Contains(t, text, "sync finished")
		assert.Contains(t, text, "Run: run-1")
		assert.Contains(t, text, "Duration: 1.5s")
		assert.Contains(t, text, "Stocks: 80 (in stock: 30)")
		assert.Contains(t, text, "Prices: 75")
		assert.Contains(t, text, "Rejected by API: 2")
		assert.NotContains(t, text, "Error:")
	})

	t.Run("failure", func(t *testing.T) {
		text := FormatReport(sampleReport(errors.New("boom")))
		assert.Contains(t, text, "sync failed")
		assert.Contains(t, text, "Error: boom")
	})
}

func TestTelegramNotifierSendsReport(t *testing.T) {
	var sentText, sentChat string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"sync","username":"sync_bot"}}`)
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			require.NoError(t, r.ParseForm())
			sentText = r.FormValue("text")
			sentChat = r.FormValue("chat_id")
			fmt.Fprint(w, `{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	n, err := NewTelegramNotifierWithEndpoint("secret", 42, server.URL+"/bot%s/%s")
	require.NoError(t, err)

	require.NoError(t, n.Notify(context.Background(), sampleReport(nil)))
	assert.Equal(t, "42", sentChat)
	assert.Contains(t, sentText, "Run: run-1")
}

func TestTelegramNotifierLoginFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"ok":false,"error_code":401,"description":"Unauthorized"}`)
	}))
	defer server.Close()

	_, err := NewTelegramNotifierWithEndpoint("bad", 42, server.URL+"/bot%s/%s")
	assert.Error(t, err)
}

func TestNopNotifier(t *testing.T) {
	assert.NoError(t, NewNopNotifier().Notify(context.Background(), sampleReport(nil)))
}
