package repository

import (
	"fmt"

	"github.com/honeynil/BlackMarketService/internal/models"
	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
)

// ValidateListing checks the fields a store requires before persisting a new listing.
func ValidateListing(l *models.Listing) error {
	if l == nil {
		return pkgerrors.ErrNilListing
	}
	if l.SellerID == "" {
		return fmt.Errorf("%w: seller id is required", pkgerrors.ErrInvalidInput)
	}
	if len(l.ItemPayload) == 0 {
		return fmt.Errorf("%w: item payload is required", pkgerrors.ErrInvalidInput)
	}
	if !l.Price.IsPositive() {
		return fmt.Errorf("%w: got %s", pkgerrors.ErrInvalidPrice, l.Price)
	}
	if l.Tier != "" && !l.Tier.Valid() {
		return fmt.Errorf("%w: %q", pkgerrors.ErrInvalidTier, l.Tier)
	}
	return nil
}

func ValidateTransaction(tx *models.Transaction) error {
	if tx == nil {
		return pkgerrors.ErrNilTransaction
	}
	if tx.BuyerID == "" || tx.SellerID == "" {
		return fmt.Errorf("%w: buyer and seller are required", pkgerrors.ErrInvalidInput)
	}
	if !tx.Price.IsPositive() {
		return fmt.Errorf("%w: got %s", pkgerrors.ErrInvalidPrice, tx.Price)
	}
	return nil
}
