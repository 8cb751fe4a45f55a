package observability

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Счётчик вызовов методов репозитория
	RepositoryCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repository_calls_total",
			Help: "Total number of repository method calls",
		},
		[]string{"method", "status"},
	)

	// Гистограмма времени выполнения запросов
	RepositoryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "repository_duration_seconds",
			Help:    "Duration of repository method calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// Исходы покупок по фазам конечного автомата
	PurchaseOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_purchases_total",
			Help: "Purchase attempts by terminal state",
		},
		[]string{"state", "tier"},
	)

	RotatedListings = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_rotated_listings_total",
			Help: "Listings moved to the black market",
		},
	)

	RotationRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_rotation_runs_total",
			Help: "Black market rotation runs by status",
		},
		[]string{"status"},
	)

	NotificationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_notification_failures_total",
			Help: "Notifications that could not be delivered",
		},
		[]string{"type"},
	)
)

func InitMetrics(addr string) {
	prometheus.MustRegister(RepositoryCalls, RepositoryDuration, PurchaseOutcomes, RotatedListings, RotationRuns, NotificationFailures)
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
}
