package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/yourusername/ozon-stock-sync/config"
	"github.com/yourusername/ozon-stock-sync/internal/domain/repository"
	"github.com/yourusername/ozon-stock-sync/internal/infrastructure/feed"
	"github.com/yourusername/ozon-stock-sync/internal/infrastructure/notify"
	"github.com/yourusername/ozon-stock-sync/internal/infrastructure/ozon"
	"github.com/yourusername/ozon-stock-sync/internal/infrastructure/parser"
	"github.com/yourusername/ozon-stock-sync/internal/logger"
	"github.com/yourusername/ozon-stock-sync/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// Konfiguratsiyani yuklash
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var notifier repository.Notifier = notify.NewNopNotifier()
	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			zlog.Warn("telegram report disabled", zap.Error(err))
		} else {
			notifier = tg
		}
	}

	marketplace := ozon.NewClient(cfg, zlog)
	feedParser := parser.NewExcelParser(cfg.FeedHeaderRow, zlog)
	feedLoader := feed.NewLoader(cfg, feedParser, zlog)

	syncUseCase := usecase.NewSyncUseCase(cfg, marketplace, feedLoader, notifier, zlog)

	report := syncUseCase.Run(ctx)
	if !report.Succeeded() {
		zlog.Sync()
		os.Exit(1)
	}
}
