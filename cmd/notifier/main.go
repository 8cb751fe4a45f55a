package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/honeynil/BlackMarketService/internal/config"
	"github.com/honeynil/BlackMarketService/internal/infrastructure/kafka"
	"github.com/honeynil/BlackMarketService/internal/infrastructure/webhook"
	"github.com/honeynil/BlackMarketService/internal/observability"
)

// Relays marketplace events from Kafka to a Discord webhook.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := observability.Setup(ctx, "blackmarket-notifier", cfg.MetricsAddr, cfg.OTLPEndpoint, cfg.LogLevel)
	defer shutdownTracing(context.Background())

	if cfg.Market.Discord.WebhookURL == "" {
		slog.Error("discord webhook url is not configured")
		os.Exit(1)
	}

	discord := webhook.NewDiscord(cfg.Market.Discord.WebhookURL, cfg.Market.Discord.Embeds(), nil)
	consumer := kafka.NewConsumer(cfg.KafkaBrokers, kafka.EventsTopic, "blackmarket-notifier", discord)
	defer consumer.Close()

	slog.Info("notifier started", "topic", kafka.EventsTopic)
	consumer.Consume(ctx)
}
