package ozon

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/yourusername/ozon-stock-sync/config"
	"github.com/yourusername/ozon-stock-sync/internal/domain/apperror"
	"github.com/yourusername/ozon-stock-sync/internal/domain/entity"
	"github.com/yourusername/ozon-stock-sync/internal/domain/repository"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	productListPath  = "/v2/product/list"
	importPricesPath = "/v1/product/import/prices"
	importStocksPath = "/v1/product/import/stocks"

	maxErrorBody = 512
)

type client struct {
	http          *resty.Client
	pageLimit     int
	pricesLimiter *rate.Limiter
	stocksLimiter *rate.Limiter
	logger        *zap.Logger
}

// NewClient Ozon seller API client yaratish
func NewClient(cfg *config.Config, logger *zap.Logger) repository.MarketplaceRepository {
	httpClient := resty.New().
		SetBaseURL(cfg.OzonAPIURL).
		SetTimeout(cfg.HTTPTimeout).
		SetHeader("Client-Id", cfg.ClientID).
		SetHeader("Api-Key", cfg.SellerToken).
		SetHeader("Content-Type", "application/json")

	return &client{
		http:          httpClient,
		pageLimit:     cfg.CatalogPageLimit,
		pricesLimiter: newLimiter(cfg.RequestsPerSecond),
		stocksLimiter: newLimiter(cfg.RequestsPerSecond),
		logger:        logger,
	}
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

type productListRequest struct {
	Filter productListFilter `json:"filter"`
	LastID string            `json:"last_id"`
	Limit  int               `json:"limit"`
}

type productListFilter struct {
	Visibility string `json:"visibility"`
}

type productListResponse struct {
	Result struct {
		Items  []entity.Product `json:"items"`
		Total  int              `json:"total"`
		LastID string           `json:"last_id"`
	} `json:"result"`
}

type importResponse struct {
	Result []entity.UpdateResult `json:"result"`
}

// ListProducts katalogning bitta sahifasini olish
func (c *client) ListProducts(ctx context.Context, lastID string) (*entity.CatalogPage, error) {
	payload := productListRequest{
		Filter: productListFilter{Visibility: "ALL"},
		LastID: lastID,
		Limit:  c.pageLimit,
	}

	var resp productListResponse
	if err := c.post(ctx, "list products", productListPath, payload, &resp); err != nil {
		return nil, err
	}

	return &entity.CatalogPage{
		Items:  resp.Result.Items,
		Total:  resp.Result.Total,
		LastID: resp.Result.LastID,
	}, nil
}

// OfferIDs katalogdagi barcha artikullarni olish.
// Yig'ilgan mahsulotlar soni total ga yetguncha sahifalab o'qiydi.
func (c *client) OfferIDs(ctx context.Context) ([]string, error) {
	var products []entity.Product
	lastID := ""

	for {
		page, err := c.ListProducts(ctx, lastID)
		if err != nil {
			return nil, err
		}

		products = append(products, page.Items...)
		c.logger.Debug("catalog page fetched",
			zap.Int("items", len(page.Items)),
			zap.Int("accumulated", len(products)),
			zap.Int("total", page.Total),
		)

		if len(products) >= page.Total {
			break
		}
		// Bo'sh sahifa kursor oldinga siljimayotganini bildiradi
		if len(page.Items) == 0 {
			return nil, apperror.Validation("list products",
				fmt.Errorf("empty page at cursor %q with %d of %d items fetched", lastID, len(products), page.Total))
		}
		lastID = page.LastID
	}

	offerIDs := make([]string, 0, len(products))
	for _, product := range products {
		offerIDs = append(offerIDs, product.OfferID)
	}

	c.logger.Info("catalog loaded", zap.Int("offers", len(offerIDs)))
	return offerIDs, nil
}

// UpdatePrices narxlarni yangilash
func (c *client) UpdatePrices(ctx context.Context, prices []entity.PriceUpdate) ([]entity.UpdateResult, error) {
	if err := c.pricesLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for prices limiter: %w", err)
	}

	var resp importResponse
	payload := map[string]any{"prices": prices}
	if err := c.post(ctx, "update prices", importPricesPath, payload, &resp); err != nil {
		return nil, err
	}

	c.logRejected("prices", resp.Result)
	return resp.Result, nil
}

// UpdateStocks qoldiqlarni yangilash
func (c *client) UpdateStocks(ctx context.Context, stocks []entity.StockUpdate) ([]entity.UpdateResult, error) {
	if err := c.stocksLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for stocks limiter: %w", err)
	}

	var resp importResponse
	payload := map[string]any{"stocks": stocks}
	if err := c.post(ctx, "update stocks", importStocksPath, payload, &resp); err != nil {
		return nil, err
	}

	c.logRejected("stocks", resp.Result)
	return resp.Result, nil
}

func (c *client) post(ctx context.Context, op, path string, payload, result any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post(path)
	if err != nil {
		return apperror.Network(op, err)
	}

	if resp.IsError() {
		body := resp.String()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return apperror.HTTPStatus(op, resp.StatusCode(), body)
	}

	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return apperror.Parse(op, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func (c *client) logRejected(kind string, results []entity.UpdateResult) {
	for _, r := range results {
		if r.Updated {
			continue
		}
		c.logger.Warn("offer not updated",
			zap.String("kind", kind),
			zap.String("offer_id", r.OfferID),
			zap.Any("errors", r.Errors),
		)
	}
}
