package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/honeynil/BlackMarketService/internal/infrastructure/observability"
	"github.com/honeynil/BlackMarketService/internal/models"
	"github.com/honeynil/BlackMarketService/internal/repository"
	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const listingColumns = `id, seller_id, item_payload, price, tier, created_at, version`

type PostgresListingRepository struct {
	db *sql.DB
}

func NewPostgresListingRepository(db *sql.DB) *PostgresListingRepository {
	return &PostgresListingRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (*models.Listing, error) {
	var l models.Listing
	if err := row.Scan(&l.ID, &l.SellerID, &l.ItemPayload, &l.Price, &l.Tier, &l.CreatedAt, &l.Version); err != nil {
		return nil, err
	}
	return &l, nil
}

// finishCall records the outcome of a repository call on its span and metrics.
func finishCall(span trace.Span, method string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	observability.RepositoryCalls.WithLabelValues(method, status).Inc()
	observability.RepositoryDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

func (r *PostgresListingRepository) Create(ctx context.Context, listing *models.Listing) (id string, err error) {
	ctx, span := otel.Tracer("listing-repository").Start(ctx, "CreateListing")
	defer span.End()
	start := time.Now()
	defer func() { finishCall(span, "CreateListing", start, err) }()

	if err = repository.ValidateListing(listing); err != nil {
		slog.Error("invalid listing", "method", "Create", "error", err)
		return "", err
	}

	l := listing.Clone()
	l.ID = uuid.NewString()
	l.Version = 0
	if l.Tier == "" {
		l.Tier = models.TierNormal
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	span.SetAttributes(
		attribute.String("listing_id", l.ID),
		attribute.String("seller_id", l.SellerID),
		attribute.String("tier", string(l.Tier)),
	)

	query := `INSERT INTO listings (` + listingColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err = r.db.ExecContext(ctx, query, l.ID, l.SellerID, l.ItemPayload, l.Price, l.Tier, l.CreatedAt, l.Version); err != nil {
		err = wrapStoreError("create listing", err)
		slog.Error("failed to create listing", "method", "Create", "seller_id", l.SellerID, "error", err)
		return "", err
	}

	*listing = l
	slog.Info("listing created", "method", "Create", "listing_id", l.ID, "seller_id", l.SellerID, "price", l.Price.String(), "tier", l.Tier)
	return l.ID, nil
}

func (r *PostgresListingRepository) GetAll(ctx context.Context, tier *models.Tier) (listings []models.Listing, err error) {
	ctx, span := otel.Tracer("listing-repository").Start(ctx, "GetAllListings")
	defer span.End()
	start := time.Now()
	defer func() { finishCall(span, "GetAllListings", start, err) }()

	query := `SELECT ` + listingColumns + ` FROM listings`
	var args []any
	if tier != nil {
		query += ` WHERE tier = $1`
		args = append(args, *tier)
		span.SetAttributes(attribute.String("tier", string(*tier)))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err = wrapStoreError("get listings", err)
		slog.Error("failed to get listings", "method", "GetAll", "error", err)
		return nil, err
	}
	defer rows.Close()

	listings = []models.Listing{}
	for rows.Next() {
		l, scanErr := scanListing(rows)
		if scanErr != nil {
			err = fmt.Errorf("failed to scan listing: %w", scanErr)
			slog.Error("failed to scan listing", "method", "GetAll", "error", err)
			return nil, err
		}
		listings = append(listings, *l)
	}
	if err = rows.Err(); err != nil {
		err = wrapStoreError("iterate listings", err)
		slog.Error("failed to iterate listings", "method", "GetAll", "error", err)
		return nil, err
	}

	slog.Debug("listings retrieved", "method", "GetAll", "count", len(listings))
	return listings, nil
}

func (r *PostgresListingRepository) GetByID(ctx context.Context, id string) (listing *models.Listing, err error) {
	ctx, span := otel.Tracer("listing-repository").Start(ctx, "GetListingByID")
	span.SetAttributes(attribute.String("listing_id", id))
	defer span.End()
	start := time.Now()
	defer func() { finishCall(span, "GetListingByID", start, err) }()

	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	listing, err = scanListing(r.db.QueryRowContext(ctx, query, id))
	if stderrors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		err = pkgerrors.ErrListingNotFound
		return nil, err
	}
	if err != nil {
		err = wrapStoreError("get listing by id", err)
		slog.Error("failed to get listing by id", "method", "GetByID", "listing_id", id, "error", err)
		return nil, err
	}
	return listing, nil
}

// CompareAndSwap only writes the mutable fields (price and tier); the
// conditional UPDATE is what arbitrates between concurrent writers.
func (r *PostgresListingRepository) CompareAndSwap(ctx context.Context, id string, expectedVersion int64, mutate func(*models.Listing) error) (updated *models.Listing, ok bool, err error) {
	ctx, span := otel.Tracer("listing-repository").Start(ctx, "CompareAndSwapListing")
	span.SetAttributes(attribute.String("listing_id", id), attribute.Int64("expected_version", expectedVersion))
	defer span.End()
	start := time.Now()
	defer func() { finishCall(span, "CompareAndSwapListing", start, err) }()

	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	current, err := scanListing(r.db.QueryRowContext(ctx, query, id))
	if stderrors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		err = nil
		slog.Info("listing gone before swap", "method", "CompareAndSwap", "listing_id", id)
		return nil, false, nil
	}
	if err != nil {
		err = wrapStoreError("read listing for swap", err)
		slog.Error("failed to read listing", "method", "CompareAndSwap", "listing_id", id, "error", err)
		return nil, false, err
	}
	if current.Version != expectedVersion {
		slog.Info("listing version conflict", "method", "CompareAndSwap", "listing_id", id, "expected", expectedVersion, "actual", current.Version)
		return nil, false, nil
	}

	next := current.Clone()
	if err = mutate(&next); err != nil {
		return nil, false, err
	}
	if !next.Price.IsPositive() || !next.Tier.Valid() {
		err = fmt.Errorf("%w: mutation produced price %s tier %q", pkgerrors.ErrInvalidInput, next.Price, next.Tier)
		return nil, false, err
	}

	update := `UPDATE listings SET price = $1, tier = $2, version = version + 1 WHERE id = $3 AND version = $4 RETURNING version`
	err = r.db.QueryRowContext(ctx, update, next.Price, next.Tier, id, expectedVersion).Scan(&next.Version)
	if stderrors.Is(err, sql.ErrNoRows) {
		err = nil
		slog.Info("listing changed during swap", "method", "CompareAndSwap", "listing_id", id, "expected", expectedVersion)
		return nil, false, nil
	}
	if err != nil {
		err = wrapStoreError("update listing", err)
		slog.Error("failed to update listing", "method", "CompareAndSwap", "listing_id", id, "error", err)
		return nil, false, err
	}

	// Immutable fields always come from the stored record.
	next.ID, next.SellerID, next.ItemPayload, next.CreatedAt = current.ID, current.SellerID, current.ItemPayload, current.CreatedAt
	slog.Info("listing updated", "method", "CompareAndSwap", "listing_id", id, "version", next.Version, "tier", next.Tier, "price", next.Price.String())
	return &next, true, nil
}

func (r *PostgresListingRepository) Delete(ctx context.Context, id string, expectedVersion int64) (deleted *models.Listing, ok bool, err error) {
	ctx, span := otel.Tracer("listing-repository").Start(ctx, "DeleteListing")
	span.SetAttributes(attribute.String("listing_id", id), attribute.Int64("expected_version", expectedVersion))
	defer span.End()
	start := time.Now()
	defer func() { finishCall(span, "DeleteListing", start, err) }()

	query := `DELETE FROM listings WHERE id = $1 AND version = $2 RETURNING ` + listingColumns
	deleted, err = scanListing(r.db.QueryRowContext(ctx, query, id, expectedVersion))
	if stderrors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		err = nil
		slog.Info("listing not deleted: missing or stale version", "method", "Delete", "listing_id", id, "expected", expectedVersion)
		return nil, false, nil
	}
	if err != nil {
		err = wrapStoreError("delete listing", err)
		slog.Error("failed to delete listing", "method", "Delete", "listing_id", id, "error", err)
		return nil, false, err
	}

	slog.Info("listing deleted", "method", "Delete", "listing_id", id, "version", expectedVersion)
	return deleted, true, nil
}
