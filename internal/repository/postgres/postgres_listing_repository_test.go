package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"syscall"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/honeynil/BlackMarketService/internal/models"
	"github.com/honeynil/BlackMarketService/internal/repository/postgres"
	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var listingRowColumns = []string{"id", "seller_id", "item_payload", "price", "tier", "created_at", "version"}

const (
	selectListingByID = `SELECT id, seller_id, item_payload, price, tier, created_at, version FROM listings WHERE id = $1`
	updateListing     = `UPDATE listings SET price = $1, tier = $2, version = version + 1 WHERE id = $3 AND version = $4 RETURNING version`
	deleteListing     = `DELETE FROM listings WHERE id = $1 AND version = $2 RETURNING id, seller_id, item_payload, price, tier, created_at, version`
)

func TestPostgresListingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := postgres.NewPostgresListingRepository(db)
	ctx := context.Background()

	t.Run("NilListing", func(t *testing.T) {
		id, err := repo.Create(ctx, nil)
		assert.Empty(t, id)
		assert.ErrorIs(t, err, pkgerrors.ErrNilListing)
	})

	t.Run("InvalidPrice", func(t *testing.T) {
		id, err := repo.Create(ctx, &models.Listing{SellerID: "seller", ItemPayload: []byte("sword"), Price: decimal.Zero})
		assert.Empty(t, id)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidPrice)
	})

	t.Run("MissingPayload", func(t *testing.T) {
		id, err := repo.Create(ctx, &models.Listing{SellerID: "seller", Price: decimal.NewFromInt(10)})
		assert.Empty(t, id)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)
	})

	t.Run("Success", func(t *testing.T) {
		listing := &models.Listing{
			SellerID:    "seller-1",
			ItemPayload: []byte("diamond_sword"),
			Price:       decimal.RequireFromString("100.00"),
			Version:     7,
		}
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO listings (id, seller_id, item_payload, price, tier, created_at, version) VALUES ($1, $2, $3, $4, $5, $6, $7)`)).
			WithArgs(sqlmock.AnyArg(), "seller-1", []byte("diamond_sword"), listing.Price, models.TierNormal, sqlmock.AnyArg(), int64(0)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		id, err := repo.Create(ctx, listing)
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, listing.ID)
		assert.Equal(t, int64(0), listing.Version)
		assert.Equal(t, models.TierNormal, listing.Tier)
		assert.False(t, listing.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConnectionLost", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO listings`)).
			WillReturnError(&pq.Error{Code: "08006", Message: "connection failure"})

		id, err := repo.Create(ctx, &models.Listing{SellerID: "seller-1", ItemPayload: []byte("x"), Price: decimal.NewFromInt(5)})
		assert.Empty(t, id)
		assert.ErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ServerShuttingDown", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO listings`)).
			WillReturnError(&pq.Error{Code: "57P01", Message: "terminating connection due to administrator command"})

		_, err := repo.Create(ctx, &models.Listing{SellerID: "seller-1", ItemPayload: []byte("x"), Price: decimal.NewFromInt(5)})
		assert.ErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConstraintViolationIsNotUnavailability", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO listings`)).
			WillReturnError(&pq.Error{Code: "23514", Message: "check constraint"})

		_, err := repo.Create(ctx, &models.Listing{SellerID: "seller-1", ItemPayload: []byte("x"), Price: decimal.NewFromInt(5)})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
		assert.Contains(t, err.Error(), "failed to create listing")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresListingRepository_GetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := postgres.NewPostgresListingRepository(db)
	ctx := context.Background()
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("AllTiers", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, seller_id, item_payload, price, tier, created_at, version FROM listings`)).
			WillReturnRows(sqlmock.NewRows(listingRowColumns).
				AddRow("l-1", "s-1", []byte("a"), "10.50", "normal", createdAt, int64(0)).
				AddRow("l-2", "s-2", []byte("b"), "20", "blackmarket", createdAt, int64(3)))

		listings, err := repo.GetAll(ctx, nil)
		require.NoError(t, err)
		require.Len(t, listings, 2)
		assert.True(t, decimal.RequireFromString("10.5").Equal(listings[0].Price))
		assert.Equal(t, models.TierBlackMarket, listings[1].Tier)
		assert.Equal(t, int64(3), listings[1].Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FilteredByTier", func(t *testing.T) {
		tier := models.TierNormal
		mock.ExpectQuery(regexp.QuoteMeta(`FROM listings WHERE tier = $1`)).
			WithArgs(models.TierNormal).
			WillReturnRows(sqlmock.NewRows(listingRowColumns))

		listings, err := repo.GetAll(ctx, &tier)
		require.NoError(t, err)
		assert.NotNil(t, listings)
		assert.Empty(t, listings)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StoreUnavailable", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM listings`)).
			WillReturnError(&pq.Error{Code: "08001", Message: "could not connect"})

		listings, err := repo.GetAll(ctx, nil)
		assert.Nil(t, listings)
		assert.ErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresListingRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := postgres.NewPostgresListingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectListingByID)).
			WithArgs("l-1").
			WillReturnRows(sqlmock.NewRows(listingRowColumns).AddRow("l-1", "s-1", []byte("a"), "10", "normal", time.Now(), int64(2)))

		listing, err := repo.GetByID(ctx, "l-1")
		require.NoError(t, err)
		assert.Equal(t, "s-1", listing.SellerID)
		assert.Equal(t, int64(2), listing.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectListingByID)).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(listingRowColumns))

		listing, err := repo.GetByID(ctx, "missing")
		assert.Nil(t, listing)
		assert.ErrorIs(t, err, pkgerrors.ErrListingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MalformedID", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectListingByID)).
			WithArgs("not-a-uuid").
			WillReturnError(&pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"})

		_, err := repo.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, pkgerrors.ErrListingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresListingRepository_CompareAndSwap(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := postgres.NewPostgresListingRepository(db)
	ctx := context.Background()
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	toBlackMarket := func(l *models.Listing) error {
		l.Tier = models.TierBlackMarket
		l.Price = l.Price.Mul(decimal.RequireFromString("0.5")).Round(2)
		return nil
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectListingByID)).
			WithArgs("l-1").
			WillReturnRows(sqlmock.NewRows(listingRowColumns).AddRow("l-1", "s-1", []byte("a"), "100", "normal", createdAt, int64(4)))
		mock.ExpectQuery(regexp.QuoteMeta(updateListing)).
			WithArgs(decimal.RequireFromString("50"), models.TierBlackMarket, "l-1", int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(5)))

		updated, ok, err := repo.CompareAndSwap(ctx, "l-1", 4, toBlackMarket)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(5), updated.Version)
		assert.Equal(t, models.TierBlackMarket, updated.Tier)
		assert.True(t, decimal.NewFromInt(50).Equal(updated.Price))
		assert.Equal(t, "s-1", updated.SellerID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StaleVersionSkipsWrite", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectListingByID)).
			WithArgs("l-1").
			WillReturnRows(sqlmock.NewRows(listingRowColumns).AddRow("l-1", "s-1", []byte("a"), "100", "normal", createdAt, int64(5)))

		called := false
		updated, ok, err := repo.CompareAndSwap(ctx, "l-1", 4, func(l *models.Listing) error {
			called = true
			return nil
		})
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, updated)
		assert.False(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListingGone", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectListingByID)).
			WithArgs("l-1").
			WillReturnRows(sqlmock.NewRows(listingRowColumns))

		_, ok, err := repo.CompareAndSwap(ctx, "l-1", 4, toBlackMarket)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LostRaceBetweenReadAndUpdate", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectListingByID)).
			WithArgs("l-1").
			WillReturnRows(sqlmock.NewRows(listingRowColumns).AddRow("l-1", "s-1", []byte("a"), "100", "normal", createdAt, int64(4)))
		mock.ExpectQuery(regexp.QuoteMeta(updateListing)).
			WithArgs(decimal.RequireFromString("50"), models.TierBlackMarket, "l-1", int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"version"}))

		_, ok, err := repo.CompareAndSwap(ctx, "l-1", 4, toBlackMarket)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MutateErrorAbortsWithoutWrite", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectListingByID)).
			WithArgs("l-1").
			WillReturnRows(sqlmock.NewRows(listingRowColumns).AddRow("l-1", "s-1", []byte("a"), "100", "blackmarket", createdAt, int64(4)))

		refuse := errors.New("already black market")
		_, ok, err := repo.CompareAndSwap(ctx, "l-1", 4, func(*models.Listing) error { return refuse })
		assert.ErrorIs(t, err, refuse)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateConnectionError", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectListingByID)).
			WithArgs("l-1").
			WillReturnRows(sqlmock.NewRows(listingRowColumns).AddRow("l-1", "s-1", []byte("a"), "100", "normal", createdAt, int64(4)))
		mock.ExpectQuery(regexp.QuoteMeta(updateListing)).
			WillReturnError(&net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET})

		_, ok, err := repo.CompareAndSwap(ctx, "l-1", 4, toBlackMarket)
		assert.ErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresListingRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := postgres.NewPostgresListingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(deleteListing)).
			WithArgs("l-1", int64(2)).
			WillReturnRows(sqlmock.NewRows(listingRowColumns).AddRow("l-1", "s-1", []byte("a"), "100", "normal", time.Now(), int64(2)))

		deleted, ok, err := repo.Delete(ctx, "l-1", 2)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "s-1", deleted.SellerID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("VersionMismatch", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(deleteListing)).
			WithArgs("l-1", int64(1)).
			WillReturnRows(sqlmock.NewRows(listingRowColumns))

		deleted, ok, err := repo.Delete(ctx, "l-1", 1)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DatabaseError", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(deleteListing)).
			WithArgs("l-1", int64(1)).
			WillReturnError(fmt.Errorf("database error"))

		_, ok, err := repo.Delete(ctx, "l-1", 1)
		assert.False(t, ok)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
		assert.Contains(t, err.Error(), "failed to delete listing")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
