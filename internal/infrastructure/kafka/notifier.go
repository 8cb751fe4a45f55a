package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/honeynil/BlackMarketService/internal/clock"
	"github.com/honeynil/BlackMarketService/internal/models"
	"github.com/shopspring/decimal"
)

const EventsTopic = "marketplace-events"

// Notifier publishes marketplace events for out-of-process consumers such as
// the Discord relay. Events are keyed by listing id so one listing's events
// stay ordered on a partition.
type Notifier struct {
	publisher Publisher
	topic     string
	clock     clock.Clock
}

func NewNotifier(publisher Publisher, topic string, c clock.Clock) *Notifier {
	if topic == "" {
		topic = EventsTopic
	}
	if c == nil {
		c = clock.NewSystem()
	}
	return &Notifier{publisher: publisher, topic: topic, clock: c}
}

func (n *Notifier) PurchaseCompleted(ctx context.Context, tx models.Transaction) error {
	credit := tx.SellerCredit
	return n.publish(ctx, models.Event{
		Type:          models.EventPurchaseCompleted,
		ListingID:     tx.ListingID,
		TransactionID: tx.ID,
		BuyerID:       tx.BuyerID,
		SellerID:      tx.SellerID,
		ItemPayload:   tx.ItemPayload,
		Price:         tx.Price,
		SellerCredit:  &credit,
		Tier:          tx.Tier,
		OccurredAt:    tx.Timestamp,
	})
}

func (n *Notifier) ListingRotated(ctx context.Context, listing models.Listing, previousPrice decimal.Decimal) error {
	return n.publish(ctx, models.Event{
		Type:          models.EventListingRotated,
		ListingID:     listing.ID,
		SellerID:      listing.SellerID,
		ItemPayload:   listing.ItemPayload,
		Price:         listing.Price,
		PreviousPrice: &previousPrice,
		Tier:          listing.Tier,
		OccurredAt:    n.clock.Now(),
	})
}

func (n *Notifier) OperatorAlert(ctx context.Context, alert models.Alert) error {
	credit := alert.Credit
	msg := ""
	if alert.Err != nil {
		msg = alert.Err.Error()
	}
	return n.publish(ctx, models.Event{
		Type:         models.EventOperatorAlert,
		ListingID:    alert.ListingID,
		BuyerID:      alert.BuyerID,
		SellerID:     alert.SellerID,
		Price:        alert.Charge,
		SellerCredit: &credit,
		Phase:        alert.Phase,
		Message:      msg,
		OccurredAt:   n.clock.Now(),
	})
}

func (n *Notifier) publish(ctx context.Context, event models.Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}
	return n.publisher.Send(ctx, n.topic, event.ListingID, value)
}
