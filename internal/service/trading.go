package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Nik-Luchok/finance/internal/domain"
	"github.com/Nik-Luchok/finance/pkg/logger"
)

type LedgerRepository interface {
	UserByID(ctx context.Context, userID int64) (*domain.User, error)
	Holding(ctx context.Context, userID int64, symbol string) (*domain.Holding, error)
	Holdings(ctx context.Context, userID int64) ([]domain.Holding, error)
	Buy(ctx context.Context, userID int64, symbol string, quantity int64, price decimal.Decimal) error
	Sell(ctx context.Context, userID int64, symbol string, quantity int64, price decimal.Decimal) error
	Transactions(ctx context.Context, userID int64) ([]domain.Transaction, error)
}

type QuoteProvider interface {
	Lookup(ctx context.Context, symbol string) (*domain.Quote, error)
}

// TradingService carries the accounting operations: buy, sell, quote,
// portfolio valuation and transaction history. Identity is always an
// explicit parameter; there is no ambient user context.
type TradingService struct {
	repo   LedgerRepository
	quotes QuoteProvider
}

func NewTradingService(repo LedgerRepository, quotes QuoteProvider) *TradingService {
	return &TradingService{
		repo:   repo,
		quotes: quotes,
	}
}

func (s *TradingService) Quote(ctx context.Context, symbol string) (*domain.Quote, error) {
	if symbol == "" {
		return nil, domain.ErrEmptySymbol
	}

	return s.quotes.Lookup(ctx, symbol)
}

// Buy purchases shares at the current quote price. The quote resolved
// here is the price recorded for the whole operation; the ledger update
// is atomic against the cash balance.
func (s *TradingService) Buy(ctx context.Context, userID int64, symbol, number string) (*domain.Quote, int64, error) {
	if symbol == "" {
		return nil, 0, domain.ErrEmptySymbol
	}

	quantity, err := ParseShareCount(number)
	if err != nil {
		return nil, 0, err
	}

	q, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		return nil, 0, err
	}

	err = s.repo.Buy(ctx, userID, q.Symbol, quantity, q.Price)
	if err != nil {
		return nil, 0, err
	}

	logger.Log.Info("buy executed",
		logger.Int64("user_id", userID),
		logger.String("symbol", q.Symbol),
		logger.Int64("quantity", quantity),
		logger.String("price", q.Price.String()),
	)

	return q, quantity, nil
}

// Sell disposes of shares at the current quote price. Share sufficiency
// is validated against a holding snapshot for the user-facing rejection;
// the ledger update re-checks it atomically, and a failure there is a
// defect rather than another rejection.
func (s *TradingService) Sell(ctx context.Context, userID int64, symbol, number string) (*domain.Quote, int64, error) {
	quantity, err := ParseShareCount(number)
	if err != nil {
		return nil, 0, err
	}

	if symbol == "" {
		return nil, 0, domain.ErrEmptySymbol
	}

	holding, err := s.repo.Holding(ctx, userID, symbol)
	if err != nil {
		return nil, 0, err
	}

	if holding.Shares < quantity {
		return nil, 0, domain.ErrInsufficientShares
	}

	q, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		// The symbol is held, so the price source knows it; a failure
		// here is an inconsistency, not a user-facing rejection.
		return nil, 0, fmt.Errorf("quote lookup failed for held symbol %s: %w", symbol, errors.Join(domain.ErrLedgerInconsistent, err))
	}

	err = s.repo.Sell(ctx, userID, q.Symbol, quantity, q.Price)
	if err != nil {
		return nil, 0, err
	}

	logger.Log.Info("sell executed",
		logger.Int64("user_id", userID),
		logger.String("symbol", q.Symbol),
		logger.Int64("quantity", quantity),
		logger.String("price", q.Price.String()),
	)

	return q, quantity, nil
}

// Portfolio values every held symbol at a fresh quote, one lookup per
// symbol. A failed lookup leaves that entry unpriced without
// invalidating the rest.
func (s *TradingService) Portfolio(ctx context.Context, userID int64) (*domain.Portfolio, error) {
	user, err := s.repo.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	holdings, err := s.repo.Holdings(ctx, userID)
	if err != nil {
		return nil, err
	}

	portfolio := &domain.Portfolio{
		Cash:  user.Cash,
		Total: user.Cash,
	}

	for _, holding := range holdings {
		entry := domain.PortfolioEntry{
			Symbol: holding.Symbol,
			Shares: holding.Shares,
		}

		q, err := s.quotes.Lookup(ctx, holding.Symbol)
		if err != nil {
			logger.Log.Warn("quote lookup failed for held symbol",
				logger.Int64("user_id", userID),
				logger.String("symbol", holding.Symbol),
				logger.Error(err),
			)
		} else {
			value := q.Price.Mul(decimal.NewFromInt(holding.Shares))
			entry.Price = &q.Price
			entry.Value = &value
			portfolio.Total = portfolio.Total.Add(value)
		}

		portfolio.Entries = append(portfolio.Entries, entry)
	}

	return portfolio, nil
}

func (s *TradingService) History(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	return s.repo.Transactions(ctx, userID)
}

// HeldSymbols feeds the sell form's symbol selector.
func (s *TradingService) HeldSymbols(ctx context.Context, userID int64) ([]domain.Holding, error) {
	return s.repo.Holdings(ctx, userID)
}
