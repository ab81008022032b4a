package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/ozon-stock-sync/config"
	"github.com/yourusername/ozon-stock-sync/internal/domain/apperror"
	"github.com/yourusername/ozon-stock-sync/internal/domain/entity"
	"github.com/yourusername/ozon-stock-sync/internal/domain/repository"
	"go.uber.org/zap"
)

// Xato sabablari (hisobot va log uchun)
const (
	FailureTimeout    = "timeout"
	FailureConnection = "connection"
	FailureOther      = "other"
)

// SyncUseCase narx va qoldiqlarni sinxronlash
type SyncUseCase interface {
	// UploadStocks qoldiqlarni yuborish. Qoldig'i bor yozuvlar va barcha yozuvlarni qaytaradi.
	UploadStocks(ctx context.Context, rows []entity.FeedRow) (nonEmpty []entity.StockUpdate, all []entity.StockUpdate, err error)

	// UploadPrices narxlarni yuborish
	UploadPrices(ctx context.Context, rows []entity.FeedRow) ([]entity.PriceUpdate, error)

	// Run to'liq sinxronizatsiya: feed -> qoldiqlar -> narxlar
	Run(ctx context.Context) *entity.SyncReport
}

type syncUseCase struct {
	marketplace    repository.MarketplaceRepository
	feedLoader     repository.StockFeedLoader
	notifier       repository.Notifier
	priceBatchSize int
	stockBatchSize int
	logger         *zap.Logger
}

// NewSyncUseCase yangi SyncUseCase yaratish
func NewSyncUseCase(
	cfg *config.Config,
	marketplace repository.MarketplaceRepository,
	feedLoader repository.StockFeedLoader,
	notifier repository.Notifier,
	logger *zap.Logger,
) SyncUseCase {
	return &syncUseCase{
		marketplace:    marketplace,
		feedLoader:     feedLoader,
		notifier:       notifier,
		priceBatchSize: cfg.PriceBatchSize,
		stockBatchSize: cfg.StockBatchSize,
		logger:         logger,
	}
}

// UploadStocks qoldiqlarni yuborish
func (u *syncUseCase) UploadStocks(ctx context.Context, rows []entity.FeedRow) ([]entity.StockUpdate, []entity.StockUpdate, error) {
	stocks, _, err := u.uploadStocks(ctx, rows)
	if err != nil {
		return nil, nil, err
	}
	return NonEmptyStocks(stocks), stocks, nil
}

// UploadPrices narxlarni yuborish
func (u *syncUseCase) UploadPrices(ctx context.Context, rows []entity.FeedRow) ([]entity.PriceUpdate, error) {
	prices, _, err := u.uploadPrices(ctx, rows)
	return prices, err
}

func (u *syncUseCase) uploadStocks(ctx context.Context, rows []entity.FeedRow) ([]entity.StockUpdate, int, error) {
	offerIDs, err := u.marketplace.OfferIDs(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch offer ids: %w", err)
	}

	stocks, err := CreateStocks(rows, offerIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("create stocks: %w", err)
	}

	rejected, err := uploadInBatches(ctx, stocks, u.stockBatchSize, func(ctx context.Context, chunk []entity.StockUpdate) (int, error) {
		results, err := u.marketplace.UpdateStocks(ctx, chunk)
		return countRejected(results), err
	})
	if err != nil {
		return nil, rejected, fmt.Errorf("upload stocks: %w", err)
	}

	u.logger.Info("stocks uploaded",
		zap.Int("offers", len(offerIDs)),
		zap.Int("stocks", len(stocks)),
		zap.Int("rejected", rejected),
	)
	return stocks, rejected, nil
}

func (u *syncUseCase) uploadPrices(ctx context.Context, rows []entity.FeedRow) ([]entity.PriceUpdate, int, error) {
	offerIDs, err := u.marketplace.OfferIDs(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch offer ids: %w", err)
	}

	prices := CreatePrices(rows, offerIDs)
	for _, p := range prices {
		if p.Price == "" {
			u.logger.Warn("price has no digits", zap.String("offer_id", p.OfferID))
		}
	}

	rejected, err := uploadInBatches(ctx, prices, u.priceBatchSize, func(ctx context.Context, chunk []entity.PriceUpdate) (int, error) {
		results, err := u.marketplace.UpdatePrices(ctx, chunk)
		return countRejected(results), err
	})
	if err != nil {
		return nil, rejected, fmt.Errorf("upload prices: %w", err)
	}

	u.logger.Info("prices uploaded",
		zap.Int("prices", len(prices)),
		zap.Int("rejected", rejected),
	)
	return prices, rejected, nil
}

// Run feedni bir marta yuklab, qoldiqlar va narxlarni ketma-ket yuboradi.
// Xato takrorlanmaydi: faqat turi aniqlanib logga yoziladi.
func (u *syncUseCase) Run(ctx context.Context) *entity.SyncReport {
	report := &entity.SyncReport{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}
	log := u.logger.With(zap.String("run_id", report.ID))
	log.Info("sync started")

	report.Err = u.run(ctx, report)
	report.FinishedAt = time.Now()

	if report.Err != nil {
		u.logFailure(log, report.Err)
	} else {
		log.Info("sync finished",
			zap.Int("stocks", report.StocksSent),
			zap.Int("non_empty_stocks", report.NonEmptyStocks),
			zap.Int("prices", report.PricesSent),
			zap.Duration("duration", report.Duration()),
		)
	}

	if err := u.notifier.Notify(ctx, report); err != nil {
		log.Warn("failed to send report", zap.Error(err))
	}
	return report
}

func (u *syncUseCase) run(ctx context.Context, report *entity.SyncReport) error {
	rows, err := u.feedLoader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load stock feed: %w", err)
	}
	report.FeedRows = len(rows)

	stocks, rejected, err := u.uploadStocks(ctx, rows)
	report.Rejected += rejected
	if err != nil {
		return err
	}
	report.CatalogSize = len(stocks)
	report.StocksSent = len(stocks)
	report.NonEmptyStocks = len(NonEmptyStocks(stocks))

	prices, rejected, err := u.uploadPrices(ctx, rows)
	report.Rejected += rejected
	if err != nil {
		return err
	}
	report.PricesSent = len(prices)
	return nil
}

func (u *syncUseCase) logFailure(log *zap.Logger, err error) {
	switch FailureReason(err) {
	case FailureTimeout:
		log.Error("sync aborted: request timed out", zap.Error(err))
	case FailureConnection:
		log.Error("sync aborted: connection error", zap.Error(err))
	default:
		log.Error("sync aborted",
			zap.String("kind", apperror.KindOf(err).String()),
			zap.Int("status", apperror.StatusCode(err)),
			zap.Error(err),
		)
	}
}

// FailureReason xatoni timeout, connection yoki other ga ajratadi
func FailureReason(err error) string {
	switch {
	case apperror.IsTimeout(err):
		return FailureTimeout
	case apperror.IsConnection(err):
		return FailureConnection
	default:
		return FailureOther
	}
}

func countRejected(results []entity.UpdateResult) int {
	n := 0
	for _, r := range results {
		if !r.Updated {
			n++
		}
	}
	return n
}
