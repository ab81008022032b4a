package entity

const (
	CurrencyRUB       = "RUB"
	DefaultOldPrice   = "0"
	AutoActionUnknown = "UNKNOWN"
)

// StockUpdate qoldiqni yangilash yozuvi
type StockUpdate struct {
	OfferID string `json:"offer_id"`
	Stock   int    `json:"stock"`
}

// PriceUpdate narxni yangilash yozuvi
type PriceUpdate struct {
	AutoActionEnabled string `json:"auto_action_enabled"`
	CurrencyCode      string `json:"currency_code"`
	OfferID           string `json:"offer_id"`
	OldPrice          string `json:"old_price"`
	Price             string `json:"price"`
}

// UpdateError bitta yozuv bo'yicha API xatosi
type UpdateError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// UpdateResult API ning har bir yozuv uchun javobi
type UpdateResult struct {
	ProductID int64         `json:"product_id"`
	OfferID   string        `json:"offer_id"`
	Updated   bool          `json:"updated"`
	Errors    []UpdateError `json:"errors"`
}
