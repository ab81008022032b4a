package entity

// FeedRow yetkazib beruvchi jadvalidagi qator (Код, Количество, Цена)
type FeedRow struct {
	Code     string
	Quantity string
	Price    string
}
