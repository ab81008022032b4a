package repository

import (
	"context"

	"github.com/yourusername/ozon-stock-sync/internal/domain/entity"
)

// MarketplaceRepository marketplace seller API bilan ishlash uchun interface
type MarketplaceRepository interface {
	// ListProducts katalogning bitta sahifasini olish (birinchi sahifa uchun lastID = "")
	ListProducts(ctx context.Context, lastID string) (*entity.CatalogPage, error)

	// OfferIDs katalogdagi barcha artikullarni olish
	OfferIDs(ctx context.Context) ([]string, error)

	// UpdatePrices narxlarni yangilash
	UpdatePrices(ctx context.Context, prices []entity.PriceUpdate) ([]entity.UpdateResult, error)

	// UpdateStocks qoldiqlarni yangilash
	UpdateStocks(ctx context.Context, stocks []entity.StockUpdate) ([]entity.UpdateResult, error)
}
