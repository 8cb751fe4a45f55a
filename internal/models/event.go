package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventPurchaseCompleted EventType = "purchase_completed"
	EventListingRotated    EventType = "listing_rotated"
	EventOperatorAlert     EventType = "operator_alert"
)

// Event is the wire format published on the marketplace events topic.
type Event struct {
	Type          EventType        `json:"type"`
	ListingID     string           `json:"listing_id,omitempty"`
	TransactionID string           `json:"transaction_id,omitempty"`
	BuyerID       string           `json:"buyer_id,omitempty"`
	SellerID      string           `json:"seller_id,omitempty"`
	ItemPayload   []byte           `json:"item_payload,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	PreviousPrice *decimal.Decimal `json:"previous_price,omitempty"`
	SellerCredit  *decimal.Decimal `json:"seller_credit,omitempty"`
	Tier          Tier             `json:"tier,omitempty"`
	Phase         PurchaseState    `json:"phase,omitempty"`
	Message       string           `json:"message,omitempty"`
	OccurredAt    time.Time        `json:"occurred_at"`
}

// Alert is raised when a purchase fails after funds have moved.
type Alert struct {
	ListingID string
	BuyerID   string
	SellerID  string
	Charge    decimal.Decimal
	Credit    decimal.Decimal
	Phase     PurchaseState
	Err       error
}
