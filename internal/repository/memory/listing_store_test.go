package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/honeynil/BlackMarketService/internal/models"
	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListing(seller string, price int64) *models.Listing {
	return &models.Listing{SellerID: seller, ItemPayload: []byte("item-" + seller), Price: decimal.NewFromInt(price)}
}

func TestListingStore_CreateAndQuery(t *testing.T) {
	store := NewListingStore()
	ctx := context.Background()

	a := newListing("a", 10)
	b := newListing("b", 20)
	_, err := store.Create(ctx, a)
	require.NoError(t, err)
	_, err = store.Create(ctx, b)
	require.NoError(t, err)
	_, ok, err := store.CompareAndSwap(ctx, b.ID, 0, func(l *models.Listing) error {
		l.Tier = models.TierBlackMarket
		return nil
	})
	require.NoError(t, err)
	require.True(t, ok)

	all, err := store.GetAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	normal := models.TierNormal
	onlyNormal, err := store.GetAll(ctx, &normal)
	require.NoError(t, err)
	require.Len(t, onlyNormal, 1)
	assert.Equal(t, a.ID, onlyNormal[0].ID)

	got, err := store.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Version)
	assert.Equal(t, models.TierBlackMarket, got.Tier)

	_, err = store.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, pkgerrors.ErrListingNotFound)
}

func TestListingStore_SnapshotIsDetached(t *testing.T) {
	store := NewListingStore()
	ctx := context.Background()
	l := newListing("a", 10)
	_, err := store.Create(ctx, l)
	require.NoError(t, err)

	snapshot, err := store.GetAll(ctx, nil)
	require.NoError(t, err)
	snapshot[0].Price = decimal.NewFromInt(1)
	snapshot[0].ItemPayload[0] = 'X'

	stored, err := store.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(stored.Price))
	assert.Equal(t, "item-a", string(stored.ItemPayload))
}

func TestListingStore_CompareAndSwapKeepsImmutableFields(t *testing.T) {
	store := NewListingStore()
	ctx := context.Background()
	l := newListing("a", 10)
	_, err := store.Create(ctx, l)
	require.NoError(t, err)

	updated, ok, err := store.CompareAndSwap(ctx, l.ID, 0, func(m *models.Listing) error {
		m.SellerID = "thief"
		m.Price = decimal.NewFromInt(5)
		return nil
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", updated.SellerID)
	assert.True(t, decimal.NewFromInt(5).Equal(updated.Price))

	_, ok, err = store.CompareAndSwap(ctx, l.ID, 0, func(*models.Listing) error { return nil })
	assert.NoError(t, err)
	assert.False(t, ok, "stale version must be rejected")
}

func TestListingStore_ConcurrentDeleteHasOneWinner(t *testing.T) {
	store := NewListingStore()
	ctx := context.Background()
	l := newListing("a", 10)
	_, err := store.Create(ctx, l)
	require.NoError(t, err)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, err := store.Delete(ctx, l.ID, 0); err == nil && ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, 0, store.Len())
}

func TestListingStore_Unavailable(t *testing.T) {
	store := NewListingStore()
	store.SetAvailable(false)
	ctx := context.Background()

	_, err := store.Create(ctx, newListing("a", 1))
	assert.ErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
	_, err = store.GetAll(ctx, nil)
	assert.ErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
	_, _, err = store.Delete(ctx, "x", 0)
	assert.ErrorIs(t, err, pkgerrors.ErrStoreUnavailable)
}

func TestTransactionStore_History(t *testing.T) {
	store := NewTransactionStore()
	ctx := context.Background()

	for _, tx := range []models.Transaction{
		{BuyerID: "alice", SellerID: "bob", Price: decimal.NewFromInt(1)},
		{BuyerID: "carol", SellerID: "alice", Price: decimal.NewFromInt(2)},
		{BuyerID: "carol", SellerID: "bob", Price: decimal.NewFromInt(3)},
	} {
		_, err := store.Record(ctx, &tx)
		require.NoError(t, err)
	}

	history, err := store.History(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, history, 2)

	got, err := store.GetByID(ctx, history[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.SellerID)

	_, err = store.Record(ctx, nil)
	assert.ErrorIs(t, err, pkgerrors.ErrNilTransaction)
}
