package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/honeynil/BlackMarketService/internal/clock"
	"github.com/honeynil/BlackMarketService/internal/infrastructure/observability"
	"github.com/honeynil/BlackMarketService/internal/models"
	"github.com/honeynil/BlackMarketService/internal/pagination"
	"github.com/honeynil/BlackMarketService/internal/repository"
	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// MarketplaceEngine is the capability presentation adapters build on.
type MarketplaceEngine interface {
	Sell(ctx context.Context, sellerID string, itemPayload []byte, price decimal.Decimal) (*models.Listing, error)
	Browse(ctx context.Context, tier models.Tier, page, pageSize int) (pagination.Page[models.Listing], error)
	Purchase(ctx context.Context, listingID string, expectedVersion int64, buyerID string) (*PurchaseResult, error)
	Withdraw(ctx context.Context, listingID string, expectedVersion int64, sellerID string) (*models.Listing, error)
	Rotate(ctx context.Context, batchSize int) (int, error)
	History(ctx context.Context, participantID string) ([]models.Transaction, error)
	Inventory(ctx context.Context, accountID string) ([][]byte, error)
	Transaction(ctx context.Context, id string) (*models.Transaction, error)
}

type marketService struct {
	listings     repository.ListingRepository
	transactions repository.TransactionRepository
	funds        FundsLedger
	inventory    Inventory
	notifier     Notifier
	pricing      Pricing
	clock        clock.Clock
	perm         func(n int) []int
}

type Option func(*marketService)

func WithClock(c clock.Clock) Option {
	return func(s *marketService) { s.clock = c }
}

// WithPermutation replaces the random candidate order used by Rotate.
func WithPermutation(perm func(n int) []int) Option {
	return func(s *marketService) { s.perm = perm }
}

func NewMarketService(
	listings repository.ListingRepository,
	transactions repository.TransactionRepository,
	funds FundsLedger,
	inventory Inventory,
	notifier Notifier,
	pricing Pricing,
	opts ...Option,
) *marketService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	s := &marketService{
		listings:     listings,
		transactions: transactions,
		funds:        funds,
		inventory:    inventory,
		notifier:     notifier,
		pricing:      pricing,
		clock:        clock.NewSystem(),
		perm:         rand.Perm,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *marketService) Sell(ctx context.Context, sellerID string, itemPayload []byte, price decimal.Decimal) (*models.Listing, error) {
	ctx, span := otel.Tracer("marketplace-service").Start(ctx, "Sell")
	defer span.End()
	span.SetAttributes(attribute.String("seller_id", sellerID), attribute.String("price", price.String()))

	if sellerID == "" || len(itemPayload) == 0 {
		span.SetStatus(codes.Error, "empty seller or item")
		return nil, fmt.Errorf("%w: seller and item are required", pkgerrors.ErrInvalidInput)
	}
	price = round2(price)
	if !price.IsPositive() {
		span.SetStatus(codes.Error, "invalid price")
		return nil, fmt.Errorf("%w: got %s", pkgerrors.ErrInvalidPrice, price)
	}

	listing := &models.Listing{
		SellerID:    sellerID,
		ItemPayload: itemPayload,
		Price:       price,
		Tier:        models.TierNormal,
		CreatedAt:   s.clock.Now(),
	}
	if _, err := s.listings.Create(ctx, listing); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create listing failed")
		slog.Error("failed to list item", "seller_id", sellerID, "error", err)
		return nil, err
	}

	slog.Info("item listed", "listing_id", listing.ID, "seller_id", sellerID, "price", price.String())
	return listing, nil
}

// Browse sorts the tier snapshot by creation time before paginating, since
// the store gives no ordering guarantee.
func (s *marketService) Browse(ctx context.Context, tier models.Tier, page, pageSize int) (pagination.Page[models.Listing], error) {
	ctx, span := otel.Tracer("marketplace-service").Start(ctx, "Browse")
	defer span.End()
	span.SetAttributes(attribute.String("tier", string(tier)), attribute.Int("page", page))

	if !tier.Valid() {
		return pagination.Page[models.Listing]{}, fmt.Errorf("%w: %q", pkgerrors.ErrInvalidTier, tier)
	}
	snapshot, err := s.listings.GetAll(ctx, &tier)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot failed")
		slog.Error("failed to browse listings", "tier", tier, "error", err)
		return pagination.Page[models.Listing]{}, err
	}
	return pagination.Paginate(pagination.SortListings(snapshot), pageSize, page)
}

// Withdraw removes a seller's own listing and returns the item to them.
func (s *marketService) Withdraw(ctx context.Context, listingID string, expectedVersion int64, sellerID string) (*models.Listing, error) {
	ctx, span := otel.Tracer("marketplace-service").Start(ctx, "Withdraw")
	defer span.End()
	span.SetAttributes(attribute.String("listing_id", listingID), attribute.String("seller_id", sellerID))

	current, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "listing lookup failed")
		return nil, err
	}
	if current.SellerID != sellerID {
		span.SetStatus(codes.Error, "not owner")
		slog.Warn("withdraw refused: not the seller", "listing_id", listingID, "seller_id", sellerID)
		return nil, pkgerrors.ErrNotListingOwner
	}

	removed, ok, err := s.listings.Delete(ctx, listingID, expectedVersion)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return nil, err
	}
	if !ok {
		span.SetStatus(codes.Error, "listing unavailable")
		return nil, errListingGone
	}

	ctx = context.WithoutCancel(ctx)
	if err := s.inventory.Deliver(ctx, sellerID, removed.ItemPayload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "return item failed")
		s.alert(ctx, models.Alert{ListingID: listingID, SellerID: sellerID, Phase: models.StateReserved, Err: err})
		return nil, fmt.Errorf("%w: return item to seller: %v", pkgerrors.ErrTransferFailed, err)
	}

	slog.Info("listing withdrawn", "listing_id", listingID, "seller_id", sellerID)
	return removed, nil
}

func (s *marketService) History(ctx context.Context, participantID string) ([]models.Transaction, error) {
	ctx, span := otel.Tracer("marketplace-service").Start(ctx, "History")
	defer span.End()

	history, err := s.transactions.History(ctx, participantID)
	if err != nil {
		span.RecordError(err)
		slog.Error("failed to get transaction history", "participant_id", participantID, "error", err)
		return nil, err
	}
	return history, nil
}

// Inventory lists the items delivered to accountID by purchases and withdrawals.
func (s *marketService) Inventory(ctx context.Context, accountID string) ([][]byte, error) {
	ctx, span := otel.Tracer("marketplace-service").Start(ctx, "Inventory")
	defer span.End()

	if accountID == "" {
		return nil, fmt.Errorf("%w: account is required", pkgerrors.ErrInvalidInput)
	}
	items, err := s.inventory.Items(ctx, accountID)
	if err != nil {
		span.RecordError(err)
		slog.Error("failed to list inventory", "account_id", accountID, "error", err)
		return nil, err
	}
	return items, nil
}

func (s *marketService) Transaction(ctx context.Context, id string) (*models.Transaction, error) {
	ctx, span := otel.Tracer("marketplace-service").Start(ctx, "Transaction")
	defer span.End()
	return s.transactions.GetByID(ctx, id)
}

// alert escalates a failure that needs a human: funds or goods are in limbo.
func (s *marketService) alert(ctx context.Context, a models.Alert) {
	observability.WithContext(ctx).Error("OPERATOR ATTENTION: marketplace operation left inconsistent state",
		"listing_id", a.ListingID,
		"buyer_id", a.BuyerID,
		"seller_id", a.SellerID,
		"charge", a.Charge.String(),
		"credit", a.Credit.String(),
		"phase", a.Phase,
		"error", a.Err,
	)
	logNotifyFailure(models.EventOperatorAlert, s.notifier.OperatorAlert(ctx, a), "listing_id", a.ListingID)
}
