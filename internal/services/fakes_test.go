package service

import (
	"context"
	"sync"

	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
	"github.com/shopspring/decimal"
)

type fakeLedger struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
}

func newFakeLedger(balances map[string]int64) *fakeLedger {
	l := &fakeLedger{balances: map[string]decimal.Decimal{}}
	for id, v := range balances {
		l.balances[id] = decimal.NewFromInt(v)
	}
	return l
}

func (l *fakeLedger) Balance(_ context.Context, accountID string) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[accountID], nil
}

func (l *fakeLedger) Debit(_ context.Context, accountID string, amount decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[accountID].LessThan(amount) {
		return pkgerrors.ErrInsufficientFunds
	}
	l.balances[accountID] = l.balances[accountID].Sub(amount)
	return nil
}

func (l *fakeLedger) Credit(_ context.Context, accountID string, amount decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[accountID] = l.balances[accountID].Add(amount)
	return nil
}

func (l *fakeLedger) total() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	sum := decimal.Zero
	for _, v := range l.balances {
		sum = sum.Add(v)
	}
	return sum
}

type fakeInventory struct {
	mu    sync.Mutex
	items map[string][][]byte
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{items: map[string][][]byte{}}
}

func (i *fakeInventory) Deliver(_ context.Context, accountID string, itemPayload []byte) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.items[accountID] = append(i.items[accountID], append([]byte(nil), itemPayload...))
	return nil
}

func (i *fakeInventory) Items(_ context.Context, accountID string) ([][]byte, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([][]byte, len(i.items[accountID]))
	copy(out, i.items[accountID])
	return out, nil
}

func (i *fakeInventory) count(accountID string) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.items[accountID])
}
