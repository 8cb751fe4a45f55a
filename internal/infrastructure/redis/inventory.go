package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const inventoryKeyPrefix = "inventory:"

// Inventory appends delivered item payloads to a per-account Redis list.
type Inventory struct {
	client *redis.Client
}

func NewInventory(c *Client) *Inventory {
	return &Inventory{client: c.client}
}

func (i *Inventory) Deliver(ctx context.Context, accountID string, itemPayload []byte) error {
	if err := i.client.RPush(ctx, inventoryKeyPrefix+accountID, itemPayload).Err(); err != nil {
		return fmt.Errorf("deliver item to %s: %w", accountID, err)
	}
	return nil
}

// Items returns everything delivered to accountID, oldest first.
func (i *Inventory) Items(ctx context.Context, accountID string) ([][]byte, error) {
	values, err := i.client.LRange(ctx, inventoryKeyPrefix+accountID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list inventory of %s: %w", accountID, err)
	}
	out := make([][]byte, len(values))
	for n, v := range values {
		out[n] = []byte(v)
	}
	return out, nil
}
