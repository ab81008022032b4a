package repository

import (
	"context"

	"github.com/yourusername/ozon-stock-sync/internal/domain/entity"
)

// StockFeedLoader qoldiqlar faylini yuklab olish va o'qish
type StockFeedLoader interface {
	Load(ctx context.Context) ([]entity.FeedRow, error)
}
