package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/honeynil/BlackMarketService/internal/infrastructure/observability"
	"github.com/honeynil/BlackMarketService/internal/models"
	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// errListingGone is what a caller sees after losing a version race.
var errListingGone = fmt.Errorf("%w: %w", pkgerrors.ErrListingUnavailable, pkgerrors.ErrVersionConflict)

// PurchaseResult reports how far a purchase got. It is returned alongside
// the error on failure so callers can see the terminal state.
type PurchaseResult struct {
	State             models.PurchaseState `json:"state"`
	ListingID         string               `json:"listing_id"`
	BuyerID           string               `json:"buyer_id"`
	SellerID          string               `json:"seller_id,omitempty"`
	Tier              models.Tier          `json:"tier,omitempty"`
	Charged           decimal.Decimal      `json:"charged"`
	SellerCredit      decimal.Decimal      `json:"seller_credit"`
	Transaction       *models.Transaction  `json:"transaction,omitempty"`
	RestoredListingID string               `json:"restored_listing_id,omitempty"`
}

// Purchase runs reserve, funds check, transfer, delivery and record for one
// listing. Deleting the listing first is the reservation: only one caller can
// delete a given version, so only one buyer can get past this step.
func (s *marketService) Purchase(ctx context.Context, listingID string, expectedVersion int64, buyerID string) (*PurchaseResult, error) {
	ctx, span := otel.Tracer("marketplace-service").Start(ctx, "Purchase")
	defer span.End()
	span.SetAttributes(
		attribute.String("listing_id", listingID),
		attribute.Int64("expected_version", expectedVersion),
		attribute.String("buyer_id", buyerID),
	)

	result := &PurchaseResult{State: models.StateStart, ListingID: listingID, BuyerID: buyerID}
	if buyerID == "" {
		span.SetStatus(codes.Error, "empty buyer")
		return result, fmt.Errorf("%w: buyer is required", pkgerrors.ErrInvalidInput)
	}

	listing, ok, err := s.listings.Delete(ctx, listingID, expectedVersion)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reserve failed")
		observability.PurchaseOutcomes.WithLabelValues("store_error", "").Inc()
		slog.Error("failed to reserve listing", "listing_id", listingID, "buyer_id", buyerID, "error", err)
		return result, fmt.Errorf("reserve listing: %w", err)
	}
	if !ok {
		slog.Info("listing no longer available", "listing_id", listingID, "expected_version", expectedVersion, "buyer_id", buyerID)
		return s.finish(span, result, models.StateAbortedUnavailable, errListingGone)
	}

	// The listing is claimed; the caller can stop waiting but cannot undo it.
	ctx = context.WithoutCancel(ctx)
	charge, credit := s.pricing.Settle(*listing)
	result.State = models.StateReserved
	result.SellerID = listing.SellerID
	result.Tier = listing.Tier
	result.Charged = charge
	result.SellerCredit = credit
	span.SetAttributes(attribute.String("charge", charge.String()), attribute.String("credit", credit.String()))

	balance, err := s.funds.Balance(ctx, buyerID)
	if err != nil {
		slog.Error("failed to read buyer balance", "buyer_id", buyerID, "error", err)
		return s.abortAndRestore(ctx, span, result, listing, fmt.Errorf("check balance: %w", err))
	}
	if balance.LessThan(charge) {
		slog.Info("insufficient funds", "buyer_id", buyerID, "balance", balance.String(), "charge", charge.String())
		return s.abortAndRestore(ctx, span, result, listing, pkgerrors.ErrInsufficientFunds)
	}

	if err := s.funds.Debit(ctx, buyerID, charge); err != nil {
		slog.Error("failed to debit buyer", "buyer_id", buyerID, "charge", charge.String(), "error", err)
		if stderrors.Is(err, pkgerrors.ErrInsufficientFunds) {
			return s.abortAndRestore(ctx, span, result, listing, err)
		}
		if !stderrors.Is(err, pkgerrors.ErrInvalidInput) {
			// A transport error may arrive after the ledger applied the debit.
			s.alert(ctx, models.Alert{
				ListingID: listing.ID,
				BuyerID:   buyerID,
				SellerID:  listing.SellerID,
				Charge:    charge,
				Credit:    credit,
				Phase:     models.StateReserved,
				Err:       fmt.Errorf("debit outcome unknown: %w", err),
			})
		}
		return s.abortAndRestore(ctx, span, result, listing, fmt.Errorf("debit buyer: %w", err))
	}
	if err := s.funds.Credit(ctx, listing.SellerID, credit); err != nil {
		return s.fatal(ctx, span, result, fmt.Errorf("%w: credit seller after debit: %v", pkgerrors.ErrTransferFailed, err))
	}
	result.State = models.StateFundsOK

	if err := s.inventory.Deliver(ctx, buyerID, listing.ItemPayload); err != nil {
		return s.fatal(ctx, span, result, fmt.Errorf("%w: deliver item: %v", pkgerrors.ErrTransferFailed, err))
	}
	result.State = models.StateDelivered

	tx := &models.Transaction{
		ListingID:    listing.ID,
		BuyerID:      buyerID,
		SellerID:     listing.SellerID,
		ItemPayload:  listing.ItemPayload,
		Price:        charge,
		SellerCredit: credit,
		Tier:         listing.Tier,
		Timestamp:    s.clock.Now(),
	}
	if _, err := s.transactions.Record(ctx, tx); err != nil {
		return s.fatal(ctx, span, result, fmt.Errorf("%w: record transaction: %v", pkgerrors.ErrTransferFailed, err))
	}
	result.Transaction = tx

	logNotifyFailure(models.EventPurchaseCompleted, s.notifier.PurchaseCompleted(ctx, *tx), "transaction_id", tx.ID)
	slog.Info("purchase completed",
		"listing_id", listing.ID,
		"transaction_id", tx.ID,
		"buyer_id", buyerID,
		"seller_id", listing.SellerID,
		"tier", listing.Tier,
		"charged", charge.String(),
		"credited", credit.String(),
	)
	return s.finish(span, result, models.StateRecorded, nil)
}

func (s *marketService) finish(span trace.Span, result *PurchaseResult, state models.PurchaseState, err error) (*PurchaseResult, error) {
	result.State = state
	observability.PurchaseOutcomes.WithLabelValues(string(state), string(result.Tier)).Inc()
	span.SetAttributes(attribute.String("state", string(state)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(state))
	}
	return result, err
}

// abortAndRestore is the one compensating action: no funds have moved, so the
// reserved listing is put back (under a new id) and the purchase aborts.
func (s *marketService) abortAndRestore(ctx context.Context, span trace.Span, result *PurchaseResult, listing *models.Listing, cause error) (*PurchaseResult, error) {
	restored := &models.Listing{
		SellerID:    listing.SellerID,
		ItemPayload: listing.ItemPayload,
		Price:       listing.Price,
		Tier:        listing.Tier,
		CreatedAt:   listing.CreatedAt,
	}
	if _, err := s.listings.Create(ctx, restored); err != nil {
		s.alert(ctx, models.Alert{
			ListingID: listing.ID,
			BuyerID:   result.BuyerID,
			SellerID:  listing.SellerID,
			Charge:    result.Charged,
			Credit:    result.SellerCredit,
			Phase:     models.StateReserved,
			Err:       fmt.Errorf("restore listing: %w", err),
		})
		return s.finish(span, result, models.StateAbortedNoFunds, fmt.Errorf("%w; restore listing: %v", cause, err))
	}

	result.RestoredListingID = restored.ID
	slog.Info("reserved listing restored", "listing_id", listing.ID, "restored_listing_id", restored.ID)
	return s.finish(span, result, models.StateAbortedNoFunds, cause)
}

// fatal is reached once the buyer has been debited. Nothing is reversed
// automatically; an operator has to settle it.
func (s *marketService) fatal(ctx context.Context, span trace.Span, result *PurchaseResult, err error) (*PurchaseResult, error) {
	s.alert(ctx, models.Alert{
		ListingID: result.ListingID,
		BuyerID:   result.BuyerID,
		SellerID:  result.SellerID,
		Charge:    result.Charged,
		Credit:    result.SellerCredit,
		Phase:     result.State,
		Err:       err,
	})
	return s.finish(span, result, models.StateFatalTransferFailed, err)
}
