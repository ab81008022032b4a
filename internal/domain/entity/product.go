package entity

// Product marketplace katalogidagi mahsulot
type Product struct {
	ProductID int64  `json:"product_id"`
	OfferID   string `json:"offer_id"`
}

// CatalogPage katalogning bitta sahifasi
type CatalogPage struct {
	Items  []Product
	Total  int
	LastID string // keyingi sahifa uchun kursor
}
