package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/honeynil/BlackMarketService/internal/infrastructure/webhook"
	"github.com/honeynil/BlackMarketService/internal/models"
	service "github.com/honeynil/BlackMarketService/internal/services"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	PostgresDSN  string
	RedisAddr    string
	KafkaBrokers []string
	JWTSecret    string
	HTTPAddr     string
	MetricsAddr  string
	OTLPEndpoint string
	ListingStore string
	LogLevel     slog.Level
	Market       Market
}

// Market is the economics and presentation file (MARKET_CONFIG).
type Market struct {
	BlackMarket BlackMarket `yaml:"blackmarket"`
	PageSize    int         `yaml:"page-size"`
	Discord     Discord     `yaml:"discord"`
}

// Multipliers are strings so they reach decimal without a float round trip.
type BlackMarket struct {
	Discount     string        `yaml:"discount"`
	BuyDiscount  string        `yaml:"buy-discount"`
	SellBonus    string        `yaml:"sell-bonus"`
	BatchSize    int           `yaml:"batch-size"`
	AddItemsEach time.Duration `yaml:"add-items-every"`
}

type Discord struct {
	WebhookURL string        `yaml:"webhook-url"`
	Purchase   webhook.Embed `yaml:"purchase"`
	Rotation   webhook.Embed `yaml:"rotation"`
	Alert      webhook.Embed `yaml:"alert"`
}

func DefaultMarket() Market {
	return Market{
		BlackMarket: BlackMarket{
			Discount:     "0.5",
			BuyDiscount:  "1.0",
			SellBonus:    "1.2",
			BatchSize:    5,
			AddItemsEach: time.Hour,
		},
		PageSize: 9,
	}
}

// Pricing converts the multipliers and validates them.
func (m Market) Pricing() (service.Pricing, error) {
	var p service.Pricing
	for _, f := range []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"discount", m.BlackMarket.Discount, &p.BlackMarketDiscount},
		{"buy-discount", m.BlackMarket.BuyDiscount, &p.BuyDiscount},
		{"sell-bonus", m.BlackMarket.SellBonus, &p.SellBonus},
	} {
		v, err := decimal.NewFromString(f.raw)
		if err != nil {
			return service.Pricing{}, fmt.Errorf("blackmarket.%s: %w", f.name, err)
		}
		*f.dst = v
	}
	return p, p.Validate()
}

// Embeds returns the configured embeds; empty ones fall back to webhook defaults.
func (d Discord) Embeds() map[models.EventType]webhook.Embed {
	out := map[models.EventType]webhook.Embed{}
	for t, e := range map[models.EventType]webhook.Embed{
		models.EventPurchaseCompleted: d.Purchase,
		models.EventListingRotated:    d.Rotation,
		models.EventOperatorAlert:     d.Alert,
	} {
		if e.Title != "" || e.Description != "" {
			out[t] = e
		}
	}
	return out
}

// LoadMarket reads path over the defaults. A missing file is not an error.
func LoadMarket(path string) (Market, error) {
	m := DefaultMarket()
	if path == "" {
		return m, nil
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Warn("market config not found, using defaults", "path", path)
		return m, nil
	}
	if err != nil {
		return m, fmt.Errorf("read market config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("parse market config %s: %w", path, err)
	}
	if m.PageSize < 1 {
		return m, fmt.Errorf("page-size must be positive, got %d", m.PageSize)
	}
	if m.BlackMarket.BatchSize < 1 {
		return m, fmt.Errorf("blackmarket.batch-size must be positive, got %d", m.BlackMarket.BatchSize)
	}
	if _, err := m.Pricing(); err != nil {
		return m, err
	}
	return m, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load .env file, using default values", "error", err)
	}

	cfg := &Config{
		PostgresDSN:  getenv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=marketplace sslmode=disable"),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers: strings.Split(getenv("KAFKA_BROKER", "localhost:9092"), ","),
		JWTSecret:    getenv("JWT_SECRET", "supersecret"),
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		MetricsAddr:  os.Getenv("METRICS_ADDR"),
		OTLPEndpoint: os.Getenv("OTLP_ENDPOINT"),
		ListingStore: getenv("LISTING_STORE", StorePostgres),
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if cfg.ListingStore != StorePostgres && cfg.ListingStore != StoreMemory {
		return nil, fmt.Errorf("LISTING_STORE must be %q or %q, got %q", StorePostgres, StoreMemory, cfg.ListingStore)
	}

	market, err := LoadMarket(getenv("MARKET_CONFIG", "market.yml"))
	if err != nil {
		return nil, err
	}
	if url := os.Getenv("DISCORD_WEBHOOK_URL"); url != "" {
		market.Discord.WebhookURL = url
	}
	cfg.Market = market

	slog.Info("config loaded",
		"redis_addr", cfg.RedisAddr,
		"kafka_brokers", cfg.KafkaBrokers,
		"listing_store", cfg.ListingStore,
		"page_size", market.PageSize,
		"rotation_every", market.BlackMarket.AddItemsEach,
	)
	return cfg, nil
}
