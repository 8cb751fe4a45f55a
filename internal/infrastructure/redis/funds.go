package redis

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Balances are kept as integer cents so INCRBY/DECRBY stay exact.
const balanceKeyPrefix = "balance:"

// debitScript refuses instead of going negative. Returns the new balance or -1.
var debitScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
local amount = tonumber(ARGV[1])
if current < amount then
	return -1
end
return redis.call("DECRBY", KEYS[1], amount)
`)

// Funds is a FundsLedger backed by Redis.
type Funds struct {
	client *redis.Client
}

func NewFunds(c *Client) *Funds {
	return &Funds{client: c.client}
}

func balanceKey(accountID string) string {
	return balanceKeyPrefix + accountID
}

func toCents(amount decimal.Decimal) (int64, error) {
	if amount.IsNegative() || !amount.Equal(amount.Round(2)) {
		return 0, fmt.Errorf("%w: amount %s is not a non-negative cent value", pkgerrors.ErrInvalidInput, amount)
	}
	return amount.Shift(2).IntPart(), nil
}

func (f *Funds) Balance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	cents, err := f.client.Get(ctx, balanceKey(accountID)).Int64()
	if stderrors.Is(err, redis.Nil) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("get balance of %s: %w", accountID, err)
	}
	return decimal.New(cents, -2), nil
}

func (f *Funds) Debit(ctx context.Context, accountID string, amount decimal.Decimal) error {
	cents, err := toCents(amount)
	if err != nil {
		return err
	}
	left, err := debitScript.Run(ctx, f.client, []string{balanceKey(accountID)}, cents).Int64()
	if err != nil {
		return fmt.Errorf("debit %s: %w", accountID, err)
	}
	if left < 0 {
		return pkgerrors.ErrInsufficientFunds
	}
	slog.Debug("account debited", "account_id", accountID, "amount", amount.String())
	return nil
}

func (f *Funds) Credit(ctx context.Context, accountID string, amount decimal.Decimal) error {
	cents, err := toCents(amount)
	if err != nil {
		return err
	}
	if err := f.client.IncrBy(ctx, balanceKey(accountID), cents).Err(); err != nil {
		return fmt.Errorf("credit %s: %w", accountID, err)
	}
	slog.Debug("account credited", "account_id", accountID, "amount", amount.String())
	return nil
}
