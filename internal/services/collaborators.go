package service

import (
	"context"
	"log/slog"

	"github.com/honeynil/BlackMarketService/internal/infrastructure/observability"
	"github.com/honeynil/BlackMarketService/internal/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_collaborators.go -package=mocks github.com/honeynil/BlackMarketService/internal/services FundsLedger,Inventory,Notifier

// FundsLedger is the external account balance system. Debit must refuse
// (and move nothing) rather than take an account below zero.
type FundsLedger interface {
	Balance(ctx context.Context, accountID string) (decimal.Decimal, error)
	Debit(ctx context.Context, accountID string, amount decimal.Decimal) error
	Credit(ctx context.Context, accountID string, amount decimal.Decimal) error
}

// Inventory hands traded goods to an account and lists what it holds.
type Inventory interface {
	Deliver(ctx context.Context, accountID string, itemPayload []byte) error
	Items(ctx context.Context, accountID string) ([][]byte, error)
}

// Notifier is informed of marketplace events. Failures are logged by the
// caller and never undo the event.
type Notifier interface {
	PurchaseCompleted(ctx context.Context, tx models.Transaction) error
	ListingRotated(ctx context.Context, listing models.Listing, previousPrice decimal.Decimal) error
	OperatorAlert(ctx context.Context, alert models.Alert) error
}

type noopNotifier struct{}

func (noopNotifier) PurchaseCompleted(context.Context, models.Transaction) error { return nil }
func (noopNotifier) ListingRotated(context.Context, models.Listing, decimal.Decimal) error {
	return nil
}
func (noopNotifier) OperatorAlert(context.Context, models.Alert) error { return nil }

func logNotifyFailure(kind models.EventType, err error, attrs ...any) {
	if err == nil {
		return
	}
	observability.NotificationFailures.WithLabelValues(string(kind)).Inc()
	slog.Warn("failed to send notification", append([]any{"type", kind, "error", err}, attrs...)...)
}
