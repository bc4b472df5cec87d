package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	KindBuy  = "BUY"
	KindSell = "SELL"
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Cash         decimal.Decimal
	RegisteredAt time.Time
}

type Holding struct {
	UserID int64
	Symbol string
	Shares int64
}

type Transaction struct {
	ID         int64
	UserID     int64
	Symbol     string
	Quantity   int64
	Price      decimal.Decimal
	Kind       string
	OccurredAt time.Time
}

// Quote is a symbol's current price as reported by the external price source.
type Quote struct {
	Symbol string
	Price  decimal.Decimal
}

// PortfolioEntry is one held symbol valued at the current price. Price and
// Value are nil when the lookup for that symbol failed; the rest of the
// portfolio is still valid.
type PortfolioEntry struct {
	Symbol string
	Shares int64
	Price  *decimal.Decimal
	Value  *decimal.Decimal
}

// Portfolio is a user's holdings valued at current prices plus cash.
// Total is cash plus the sum of all priced entries.
type Portfolio struct {
	Entries []PortfolioEntry
	Cash    decimal.Decimal
	Total   decimal.Decimal
}
