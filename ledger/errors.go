package ledger

import (
	"errors"
	"fmt"
)

// ErrLedgerUnavailable wraps transport failures against a remote node or
// indexer. Callers treat it as transient and retry.
var ErrLedgerUnavailable = errors.New("ledger unavailable")

// AuthorizationError is a ledger-side rejection: the caller is not
// entitled to perform the invocation. The transaction is never
// committed, so the subscriber never observes it.
type AuthorizationError struct {
	Reason string
}

func (e AuthorizationError) Error() string {
	return fmt.Sprintf("ledger authorization error: %s", e.Reason)
}

// PriceCapExceededError is raised when a transfer payment is above the
// program's max resale price. The whole transaction is rejected, no
// partial transfer occurs.
type PriceCapExceededError struct {
	Payment        uint64
	MaxResalePrice uint64
}

func (e PriceCapExceededError) Error() string {
	return fmt.Sprintf("payment %d exceeds max resale price %d", e.Payment, e.MaxResalePrice)
}
