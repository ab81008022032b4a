package repository

import (
	"context"

	"github.com/yourusername/ozon-stock-sync/internal/domain/entity"
)

// Notifier sinxronizatsiya hisobotini yuborish
type Notifier interface {
	Notify(ctx context.Context, report *entity.SyncReport) error
}
