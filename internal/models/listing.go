package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Listing struct {
	ID          string          `json:"id"`
	SellerID    string          `json:"seller_id"`
	ItemPayload []byte          `json:"item_payload"`
	Price       decimal.Decimal `json:"price"`
	Tier        Tier            `json:"tier"`
	CreatedAt   time.Time       `json:"created_at"`
	Version     int64           `json:"version"`
}

// Clone returns a deep copy so callers can mutate it without touching store state.
func (l Listing) Clone() Listing {
	c := l
	if l.ItemPayload != nil {
		c.ItemPayload = append([]byte(nil), l.ItemPayload...)
	}
	return c
}

type Tier string

const (
	TierNormal      Tier = "normal"
	TierBlackMarket Tier = "blackmarket"
)

func (t Tier) Valid() bool {
	return t == TierNormal || t == TierBlackMarket
}
