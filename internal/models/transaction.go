package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the immutable record of a completed purchase.
// Price is what the buyer was charged; SellerCredit is what the seller received.
type Transaction struct {
	ID           string          `json:"id"`
	ListingID    string          `json:"listing_id"`
	BuyerID      string          `json:"buyer_id"`
	SellerID     string          `json:"seller_id"`
	ItemPayload  []byte          `json:"item_payload"`
	Price        decimal.Decimal `json:"price"`
	SellerCredit decimal.Decimal `json:"seller_credit"`
	Tier         Tier            `json:"tier"`
	Timestamp    time.Time       `json:"timestamp"`
}

type PurchaseState string

const (
	StateStart               PurchaseState = "start"
	StateReserved            PurchaseState = "reserved"
	StateFundsOK             PurchaseState = "funds_ok"
	StateDelivered           PurchaseState = "delivered"
	StateRecorded            PurchaseState = "recorded"
	StateAbortedUnavailable  PurchaseState = "aborted_unavailable"
	StateAbortedNoFunds      PurchaseState = "aborted_no_funds"
	StateFatalTransferFailed PurchaseState = "fatal_transfer_failed"
)

// Terminal reports whether no further phase can follow s.
func (s PurchaseState) Terminal() bool {
	switch s {
	case StateRecorded, StateAbortedUnavailable, StateAbortedNoFunds, StateFatalTransferFailed:
		return true
	}
	return false
}
