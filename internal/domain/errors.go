package domain

import "errors"

// Business-rule errors. Each one rejects a single record; none of them stops
// the processing run. Callers match them with errors.Is.
var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrDuplicateTransaction = errors.New("duplicate transaction id")
	ErrOverflow             = errors.New("amount overflow")
	ErrInsufficientFunds    = errors.New("insufficient available funds")
	ErrAccountLocked        = errors.New("account locked")
	ErrUnknownTransaction   = errors.New("transaction not found")
	ErrClientMismatch       = errors.New("client id does not match transaction")
	ErrNotDisputable        = errors.New("transaction not disputable")
	ErrNotDisputed          = errors.New("transaction not under dispute")
)
