package observability

import (
	"context"
	"log/slog"

	"github.com/honeynil/BlackMarketService/internal/infrastructure/observability"
)

// Setup initializes logs, metrics and traces and returns the tracer shutdown.
func Setup(ctx context.Context, serviceName, metricsAddr, otlpEndpoint string, level slog.Level) func(context.Context) error {
	observability.InitLogger(level)
	observability.InitMetrics(metricsAddr)
	return observability.InitTracing(ctx, serviceName, otlpEndpoint)
}
