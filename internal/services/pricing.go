package service

import (
	"fmt"

	"github.com/honeynil/BlackMarketService/internal/models"
	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
	"github.com/shopspring/decimal"
)

// Pricing holds the black market multipliers. BuyDiscount and SellBonus are
// independent; nothing forces BuyDiscount <= 1 <= SellBonus.
type Pricing struct {
	BlackMarketDiscount decimal.Decimal
	BuyDiscount         decimal.Decimal
	SellBonus           decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		BlackMarketDiscount: decimal.RequireFromString("0.5"),
		BuyDiscount:         decimal.NewFromInt(1),
		SellBonus:           decimal.RequireFromString("1.2"),
	}
}

func (p Pricing) Validate() error {
	for _, m := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"black market discount", p.BlackMarketDiscount},
		{"buy discount", p.BuyDiscount},
		{"sell bonus", p.SellBonus},
	} {
		if !m.value.IsPositive() {
			return fmt.Errorf("%w: %s must be positive, got %s", pkgerrors.ErrInvalidInput, m.name, m.value)
		}
	}
	return nil
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Settle returns what the buyer pays and what the seller receives for l.
func (p Pricing) Settle(l models.Listing) (charge, credit decimal.Decimal) {
	if l.Tier != models.TierBlackMarket {
		return l.Price, l.Price
	}
	return round2(l.Price.Mul(p.BuyDiscount)), round2(l.Price.Mul(p.SellBonus))
}

// Demote moves a Normal listing to the black market at the discounted price.
// It is used as a CompareAndSwap mutation.
func (p Pricing) Demote(l *models.Listing) error {
	if l.Tier != models.TierNormal {
		return fmt.Errorf("%w: listing %s is already %s", pkgerrors.ErrInvalidTier, l.ID, l.Tier)
	}
	discounted := round2(l.Price.Mul(p.BlackMarketDiscount))
	if !discounted.IsPositive() {
		return fmt.Errorf("%w: discount would price listing %s at %s", pkgerrors.ErrInvalidPrice, l.ID, discounted)
	}
	l.Tier = models.TierBlackMarket
	l.Price = discounted
	return nil
}
