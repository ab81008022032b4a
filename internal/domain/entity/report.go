package entity

import "time"

// SyncReport bitta ishga tushirish natijasi
type SyncReport struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time

	CatalogSize    int
	FeedRows       int
	StocksSent     int
	NonEmptyStocks int
	PricesSent     int
	Rejected       int // API updated=false qaytargan yozuvlar

	Err error
}

// Succeeded xatosiz tugaganmi
func (r *SyncReport) Succeeded() bool {
	return r.Err == nil
}

// Duration ishlash vaqti
func (r *SyncReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
