package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/yourusername/ozon-stock-sync/internal/domain/apperror"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	// Ozon seller API
	SellerToken       string
	ClientID          string
	OzonAPIURL        string
	CatalogPageLimit  int
	RequestsPerSecond float64
	HTTPTimeout       time.Duration

	// Qoldiqlar fayli (feed)
	StockFeedURL   string
	StockFeedFile  string
	FeedHeaderRow  int
	WorkDir        string
	FeedInMemory   bool  // arxivdagi jadvalni diskka yozmasdan o'qish
	MaxFeedBytes   int64 // arxiv va undagi jadval uchun chegara
	PriceBatchSize int
	StockBatchSize int

	// Hisobot (ixtiyoriy)
	TelegramToken  string
	TelegramChatID int64

	LogLevel string
}

// Load konfiguratsiyani yuklash
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	config := &Config{
		SellerToken:   os.Getenv("SELLER_TOKEN"),
		ClientID:      os.Getenv("CLIENT_ID"),
		OzonAPIURL:    getEnv("OZON_API_URL", "https://api-seller.ozon.ru"),
		StockFeedURL:  getEnv("STOCK_FEED_URL", "https://timeworld.ru/upload/files/ostatki.zip"),
		StockFeedFile: getEnv("STOCK_FEED_FILE", "ostatki.xls"),
		WorkDir:       getEnv("WORK_DIR", "."),
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if config.FeedHeaderRow, err = getEnvAsInt("STOCK_FEED_HEADER_ROW", 17); err != nil {
		return nil, err
	}
	if config.PriceBatchSize, err = getEnvAsInt("PRICE_BATCH_SIZE", 1000); err != nil {
		return nil, err
	}
	if config.StockBatchSize, err = getEnvAsInt("STOCK_BATCH_SIZE", 100); err != nil {
		return nil, err
	}
	if config.CatalogPageLimit, err = getEnvAsInt("CATALOG_PAGE_LIMIT", 1000); err != nil {
		return nil, err
	}

	maxFeedMB, err := getEnvAsInt("STOCK_FEED_MAX_MB", 64)
	if err != nil {
		return nil, err
	}
	config.MaxFeedBytes = int64(maxFeedMB) << 20

	if config.FeedInMemory, err = getEnvAsBool("STOCK_FEED_IN_MEMORY", false); err != nil {
		return nil, err
	}

	timeoutSeconds, err := getEnvAsInt("HTTP_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	config.HTTPTimeout = time.Duration(timeoutSeconds) * time.Second

	if raw := os.Getenv("OZON_REQUESTS_PER_SECOND"); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, apperror.Validation("config", fmt.Errorf("OZON_REQUESTS_PER_SECOND noto'g'ri formatda: %v", err))
		}
		config.RequestsPerSecond = rps
	}

	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, apperror.Validation("config", fmt.Errorf("TELEGRAM_CHAT_ID noto'g'ri formatda: %v", err))
		}
		config.TelegramChatID = parsed
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate majburiy qiymatlarni tekshirish
func (c *Config) Validate() error {
	if c.SellerToken == "" {
		return apperror.Validation("config", fmt.Errorf("SELLER_TOKEN environment variable bo'sh"))
	}
	if c.ClientID == "" {
		return apperror.Validation("config", fmt.Errorf("CLIENT_ID environment variable bo'sh"))
	}
	if c.PriceBatchSize <= 0 || c.StockBatchSize <= 0 {
		return apperror.Validation("config", fmt.Errorf("batch sizes must be positive (prices=%d, stocks=%d)", c.PriceBatchSize, c.StockBatchSize))
	}
	if c.CatalogPageLimit <= 0 {
		return apperror.Validation("config", fmt.Errorf("CATALOG_PAGE_LIMIT must be positive, got %d", c.CatalogPageLimit))
	}
	if c.MaxFeedBytes <= 0 {
		return apperror.Validation("config", fmt.Errorf("STOCK_FEED_MAX_MB must be positive, got %d bytes", c.MaxFeedBytes))
	}
	if c.FeedHeaderRow < 0 {
		return apperror.Validation("config", fmt.Errorf("STOCK_FEED_HEADER_ROW must not be negative, got %d", c.FeedHeaderRow))
	}
	return nil
}

// TelegramEnabled hisobot yuborish sozlanganmi
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, apperror.Validation("config", fmt.Errorf("%s noto'g'ri formatda: %v", key, err))
	}
	return parsed, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, apperror.Validation("config", fmt.Errorf("%s noto'g'ri formatda: %v", key, err))
	}
	return parsed, nil
}
