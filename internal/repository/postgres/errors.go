package postgres

import (
	"database/sql"
	"database/sql/driver"
	stderrors "errors"
	"fmt"
	"net"
	"syscall"

	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
	"github.com/lib/pq"
)

// wrapStoreError maps connection-level failures onto ErrStoreUnavailable so
// callers can tell "the database is gone" from "the query was wrong".
func wrapStoreError(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %v", op, pkgerrors.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func isUnavailable(err error) bool {
	if stderrors.Is(err, driver.ErrBadConn) || stderrors.Is(err, sql.ErrConnDone) || stderrors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		// 08: connection exception; 57P0x: server shutting down or not yet accepting connections.
		if pqErr.Code.Class() == "08" {
			return true
		}
		switch pqErr.Code {
		case "57P01", "57P02", "57P03":
			return true
		}
		return false
	}
	var netErr net.Error
	return stderrors.As(err, &netErr)
}

// isInvalidID reports a malformed uuid, which can never match a stored row.
func isInvalidID(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && pqErr.Code == "22P02"
}
