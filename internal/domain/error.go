package domain

import "errors"

var (
	ErrUserExists           = errors.New("user already exists")
	ErrIncorrectCredentials = errors.New("incorrect credentials")
	ErrUserNotFound         = errors.New("user not found")

	ErrEmptySymbol        = errors.New("symbol is empty")
	ErrInvalidShareCount  = errors.New("share count must be a positive integer")
	ErrSymbolNotFound     = errors.New("symbol not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNoHolding          = errors.New("no holding for symbol")
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrLedgerInconsistent marks a guarded ledger update that affected no
	// rows after validation had already passed. It is a defect, not a
	// user-facing rejection.
	ErrLedgerInconsistent = errors.New("ledger state inconsistent")
)
