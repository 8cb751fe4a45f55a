package postgres

import (
	"context"
	"database/sql"
	"log/slog"
)

const schema = `
CREATE TABLE IF NOT EXISTS listings (
	id           UUID PRIMARY KEY,
	seller_id    TEXT        NOT NULL,
	item_payload BYTEA       NOT NULL,
	price        NUMERIC     NOT NULL CHECK (price > 0),
	tier         TEXT        NOT NULL DEFAULT 'normal',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	version      BIGINT      NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS listings_tier_idx ON listings (tier);

CREATE TABLE IF NOT EXISTS transactions (
	id            UUID PRIMARY KEY,
	listing_id    UUID        NOT NULL,
	buyer_id      TEXT        NOT NULL,
	seller_id     TEXT        NOT NULL,
	item_payload  BYTEA       NOT NULL,
	price         NUMERIC     NOT NULL,
	seller_credit NUMERIC     NOT NULL,
	tier          TEXT        NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS transactions_buyer_idx ON transactions (buyer_id);
CREATE INDEX IF NOT EXISTS transactions_seller_idx ON transactions (seller_id);
`

// EnsureSchema creates the listings and transactions tables if they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return wrapStoreError("apply schema", err)
	}
	slog.Info("database schema ensured")
	return nil
}
