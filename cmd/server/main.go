package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/honeynil/BlackMarketService/internal/api"
	"github.com/honeynil/BlackMarketService/internal/config"
	"github.com/honeynil/BlackMarketService/internal/handler"
	"github.com/honeynil/BlackMarketService/internal/infrastructure/auth"
	"github.com/honeynil/BlackMarketService/internal/infrastructure/kafka"
	"github.com/honeynil/BlackMarketService/internal/infrastructure/redis"
	"github.com/honeynil/BlackMarketService/internal/observability"
	"github.com/honeynil/BlackMarketService/internal/repository"
	"github.com/honeynil/BlackMarketService/internal/repository/memory"
	"github.com/honeynil/BlackMarketService/internal/repository/postgres"
	service "github.com/honeynil/BlackMarketService/internal/services"
	_ "github.com/lib/pq"
)

const tokenTTL = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// server token <account-id>
	if len(os.Args) > 1 && os.Args[1] == "token" {
		if len(os.Args) != 3 {
			fmt.Fprintln(os.Stderr, "usage: server token <account-id>")
			os.Exit(2)
		}
		token, err := auth.GenerateJWT([]byte(cfg.JWTSecret), os.Args[2], tokenTTL)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем логи, метрики, трейсы
	shutdownTracing := observability.Setup(ctx, "blackmarket-service", cfg.MetricsAddr, cfg.OTLPEndpoint, cfg.LogLevel)
	defer shutdownTracing(context.Background())

	pricing, err := cfg.Market.Pricing()
	if err != nil {
		return err
	}

	listings, transactions, closeStore, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	redisClient, err := redis.NewClient(ctx, cfg.RedisAddr)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	producer := kafka.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	engine := service.NewMarketService(
		listings,
		transactions,
		redis.NewFunds(redisClient),
		redis.NewInventory(redisClient),
		kafka.NewNotifier(producer, kafka.EventsTopic, nil),
		pricing,
	)

	scheduler := service.NewScheduler(engine, cfg.Market.BlackMarket.AddItemsEach, cfg.Market.BlackMarket.BatchSize)
	go scheduler.Run(ctx)

	h := handler.NewHandler(engine, cfg.Market.PageSize, cfg.Market.BlackMarket.BatchSize)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.SetupRouter(h, cfg.JWTSecret),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config) (repository.ListingRepository, repository.TransactionRepository, func(), error) {
	if cfg.ListingStore == config.StoreMemory {
		slog.Warn("using in-memory listing store, data is lost on restart")
		return memory.NewListingStore(), memory.NewTransactionStore(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	slog.Info("connected to Postgres")
	return postgres.NewPostgresListingRepository(db), postgres.NewPostgresTransactionRepository(db), func() { db.Close() }, nil
}
