package errors

import (
	"errors"
	"fmt"
)

var (
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrVersionConflict     = errors.New("version conflict")
	ErrListingUnavailable  = errors.New("listing unavailable")
	ErrListingNotFound     = errors.New("listing not found")
	ErrNilListing          = errors.New("listing is nil")
	ErrNotListingOwner     = errors.New("listing belongs to another seller")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrTransferFailed      = errors.New("transfer failed")
	ErrNilTransaction      = errors.New("transaction is nil")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidPrice        = errors.New("price must be positive")
	ErrInvalidPage         = errors.New("invalid page")
	ErrInvalidTier         = errors.New("invalid tier")
	ErrInvalidCredentials  = fmt.Errorf("invalid credentials")
	ErrInvalidInput        = fmt.Errorf("invalid input")
)
