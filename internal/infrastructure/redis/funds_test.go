package redis

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestNewClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewClient(context.Background(), addr)
	assert.Error(t, err)
}

func TestFunds(t *testing.T) {
	c, mr := newTestClient(t)
	funds := NewFunds(c)
	ctx := context.Background()

	balance, err := funds.Balance(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	require.NoError(t, funds.Credit(ctx, "alice", decimal.RequireFromString("100.50")))
	got, err := mr.Get("balance:alice")
	require.NoError(t, err)
	assert.Equal(t, "10050", got)

	require.NoError(t, funds.Debit(ctx, "alice", decimal.RequireFromString("50.25")))
	balance, err = funds.Balance(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("50.25").Equal(balance), balance.String())

	err = funds.Debit(ctx, "alice", decimal.RequireFromString("50.26"))
	assert.ErrorIs(t, err, pkgerrors.ErrInsufficientFunds)
	balance, _ = funds.Balance(ctx, "alice")
	assert.True(t, decimal.RequireFromString("50.25").Equal(balance))

	assert.ErrorIs(t, funds.Credit(ctx, "alice", decimal.RequireFromString("0.001")), pkgerrors.ErrInvalidInput)
	assert.ErrorIs(t, funds.Debit(ctx, "alice", decimal.NewFromInt(-1)), pkgerrors.ErrInvalidInput)
}

func TestFunds_ConcurrentDebitNeverOverdraws(t *testing.T) {
	c, _ := newTestClient(t)
	funds := NewFunds(c)
	ctx := context.Background()
	require.NoError(t, funds.Credit(ctx, "bob", decimal.NewFromInt(10)))

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if funds.Debit(ctx, "bob", decimal.NewFromInt(1)) == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	balance, err := funds.Balance(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestInventory(t *testing.T) {
	c, mr := newTestClient(t)
	inventory := NewInventory(c)
	ctx := context.Background()

	require.NoError(t, inventory.Deliver(ctx, "alice", []byte("sword")))
	require.NoError(t, inventory.Deliver(ctx, "alice", []byte("shield")))

	items, err := inventory.Items(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "sword", string(items[0]))
	assert.Equal(t, "shield", string(items[1]))

	list, err := mr.List("inventory:alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"sword", "shield"}, list)

	mr.SetError("LOADING")
	assert.Error(t, inventory.Deliver(ctx, "bob", []byte("bow")))
}
