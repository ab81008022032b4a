package repository

import (
	"context"

	"github.com/yourusername/ozon-stock-sync/internal/domain/entity"
)

// FeedParser qoldiqlar jadvalini parse qilish uchun interface
type FeedParser interface {
	// ParseFile fayldan qatorlarni o'qish
	ParseFile(ctx context.Context, filePath string) ([]entity.FeedRow, error)

	// ParseBytes byte array dan parse qilish
	ParseBytes(ctx context.Context, data []byte, filename string) ([]entity.FeedRow, error)
}
