package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/ozon-stock-sync/internal/domain/apperror"
	"github.com/yourusername/ozon-stock-sync/internal/domain/entity"
)

const (
	quantityMany   = ">10"
	quantityOne    = "1"
	stockForMany   = 100
	stockForOne    = 0
	stockNotInFeed = 0
)

var nonDigits = regexp.MustCompile(`[^0-9]`)

// ParseQuantity jadvaldagi miqdorni qoldiqqa aylantirish:
// ">10" -> 100, "1" -> 0, qolganlari butun son.
// Maxsus qiymatlar bo'shliqsiz aynan solishtiriladi (" 1" oddiy son sifatida 1 bo'ladi).
func ParseQuantity(raw string) (int, error) {
	switch raw {
	case quantityMany:
		return stockForMany, nil
	case quantityOne:
		return stockForOne, nil
	}

	stock, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperror.Parse("parse quantity", fmt.Errorf("invalid quantity %q: %w", raw, err))
	}
	if stock < 0 {
		return 0, apperror.Validation("parse quantity", fmt.Errorf("negative quantity %d", stock))
	}
	return stock, nil
}

// ConvertPrice narxni birinchi "." gacha kesib, raqam bo'lmagan belgilarni olib tashlaydi.
// "5'990.00 руб." -> "5990", "1.250,50 USD" -> "1".
func ConvertPrice(price string) string {
	integerPart, _, _ := strings.Cut(price, ".")
	return nonDigits.ReplaceAllString(integerPart, "")
}

// CreateStocks katalog artikullari uchun qoldiqlar ro'yxati.
// Har bir artikul aynan bir marta chiqadi; jadvalda topilmaganlari 0 bilan.
func CreateStocks(rows []entity.FeedRow, offerIDs []string) ([]entity.StockUpdate, error) {
	remaining := make(map[string]struct{}, len(offerIDs))
	for _, id := range offerIDs {
		remaining[id] = struct{}{}
	}

	stocks := make([]entity.StockUpdate, 0, len(remaining))
	for _, row := range rows {
		if _, ok := remaining[row.Code]; !ok {
			continue
		}

		stock, err := ParseQuantity(row.Quantity)
		if err != nil {
			return nil, fmt.Errorf("offer %s: %w", row.Code, err)
		}
		stocks = append(stocks, entity.StockUpdate{OfferID: row.Code, Stock: stock})
		delete(remaining, row.Code)
	}

	for _, id := range offerIDs {
		if _, ok := remaining[id]; !ok {
			continue
		}
		stocks = append(stocks, entity.StockUpdate{OfferID: id, Stock: stockNotInFeed})
		delete(remaining, id)
	}

	return stocks, nil
}

// CreatePrices jadvalda ham, katalogda ham bor artikullar uchun narxlar ro'yxati
func CreatePrices(rows []entity.FeedRow, offerIDs []string) []entity.PriceUpdate {
	known := make(map[string]struct{}, len(offerIDs))
	for _, id := range offerIDs {
		known[id] = struct{}{}
	}

	prices := make([]entity.PriceUpdate, 0)
	for _, row := range rows {
		if _, ok := known[row.Code]; !ok {
			continue
		}
		prices = append(prices, entity.PriceUpdate{
			AutoActionEnabled: entity.AutoActionUnknown,
			CurrencyCode:      entity.CurrencyRUB,
			OfferID:           row.Code,
			OldPrice:          entity.DefaultOldPrice,
			Price:             ConvertPrice(row.Price),
		})
	}
	return prices
}

// NonEmptyStocks qoldig'i 0 bo'lmagan yozuvlar
func NonEmptyStocks(stocks []entity.StockUpdate) []entity.StockUpdate {
	nonEmpty := make([]entity.StockUpdate, 0, len(stocks))
	for _, s := range stocks {
		if s.Stock != 0 {
			nonEmpty = append(nonEmpty, s)
		}
	}
	return nonEmpty
}
