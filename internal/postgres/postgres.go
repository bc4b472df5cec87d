package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/Nik-Luchok/finance/internal/domain"
	"github.com/Nik-Luchok/finance/pkg/logger"
)

const transactionRollbackError = "error rolling back transaction"

//go:embed schema.sql
var schema string

type Postgres struct {
	DB *sql.DB
}

func New(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

func (p *Postgres) Close() error {
	return p.DB.Close()
}

// Bootstrap creates the ledger tables when they don't exist yet.
func (p *Postgres) Bootstrap(ctx context.Context) error {
	if _, err := p.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error bootstrapping schema: %w", err)
	}

	return nil
}

func (p *Postgres) CreateUser(ctx context.Context, username, hashedPassword string, startingCash decimal.Decimal) (int64, error) {
	var id int64
	err := p.DB.QueryRowContext(ctx,
		"INSERT INTO users (username, password_hash, cash) VALUES ($1, $2, $3) RETURNING id",
		username, hashedPassword, startingCash.String()).
		Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			logger.Log.Warn("user already exists", logger.String("username", username))
			return 0, domain.ErrUserExists
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

func (p *Postgres) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := p.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, cash, registered_at FROM users WHERE username = $1", username)

	return scanUser(row)
}

func (p *Postgres) UserByID(ctx context.Context, userID int64) (*domain.User, error) {
	row := p.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, cash, registered_at FROM users WHERE id = $1", userID)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, domain.ErrIncorrectCredentials) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var cash string
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &cash, &user.RegisteredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIncorrectCredentials
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	user.Cash, err = decimal.NewFromString(cash)
	if err != nil {
		return nil, fmt.Errorf("error parsing cash balance: %w", err)
	}

	return &user, nil
}

func (p *Postgres) Holdings(ctx context.Context, userID int64) ([]domain.Holding, error) {
	rows, err := p.DB.QueryContext(ctx,
		"SELECT user_id, symbol, share_count FROM holdings WHERE user_id = $1 ORDER BY symbol", userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching holdings: %w", err)
	}
	defer closeRows(rows)

	var holdings []domain.Holding
	for rows.Next() {
		var holding domain.Holding
		err := rows.Scan(&holding.UserID, &holding.Symbol, &holding.Shares)
		if err != nil {
			return nil, fmt.Errorf("error scanning holding: %w", err)
		}
		holdings = append(holdings, holding)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over holdings: %w", err)
	}

	return holdings, nil
}

func (p *Postgres) Holding(ctx context.Context, userID int64, symbol string) (*domain.Holding, error) {
	var holding domain.Holding
	err := p.DB.QueryRowContext(ctx,
		"SELECT user_id, symbol, share_count FROM holdings WHERE user_id = $1 AND symbol = $2",
		userID, symbol).
		Scan(&holding.UserID, &holding.Symbol, &holding.Shares)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoHolding
		}
		return nil, fmt.Errorf("error fetching holding: %w", err)
	}

	return &holding, nil
}

// Buy atomically debits cash, upserts the holding and appends a BUY
// transaction. The cash debit is guarded so a balance that became
// insufficient since validation rolls the whole operation back.
func (p *Postgres) Buy(ctx context.Context, userID int64, symbol string, quantity int64, price decimal.Decimal) error {
	cost := price.Mul(decimal.NewFromInt(quantity))

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE users SET cash = cash - $1 WHERE id = $2 AND cash >= $1",
		cost.String(), userID)
	if err != nil {
		rollback(tx)
		return fmt.Errorf("error debiting cash: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		rollback(tx)
		return fmt.Errorf("error checking rows affected for cash debit: %w", err)
	}
	if rowsAffected == 0 {
		rollback(tx)
		logger.Log.Warn("insufficient funds for buy",
			logger.String("symbol", symbol),
			logger.Int64("quantity", quantity),
			logger.Int64("user_id", userID),
		)
		return domain.ErrInsufficientFunds
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO holdings (user_id, symbol, share_count) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, symbol) DO UPDATE SET share_count = holdings.share_count + EXCLUDED.share_count`,
		userID, symbol, quantity)
	if err != nil {
		rollback(tx)
		return fmt.Errorf("error upserting holding: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO transactions (user_id, symbol, quantity, price, kind) VALUES ($1, $2, $3, $4, $5)",
		userID, symbol, quantity, price.String(), domain.KindBuy)
	if err != nil {
		rollback(tx)
		return fmt.Errorf("error recording buy transaction: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		rollback(tx)
		return fmt.Errorf("error committing buy transaction: %w", err)
	}

	return nil
}

// Sell atomically decrements the holding, credits cash and appends a SELL
// transaction. The decrement is guarded by the remaining share count; a
// zero-row update here means the holding changed after validation, which
// is a defect rather than a user-facing rejection.
func (p *Postgres) Sell(ctx context.Context, userID int64, symbol string, quantity int64, price decimal.Decimal) error {
	proceeds := price.Mul(decimal.NewFromInt(quantity))

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE holdings SET share_count = share_count - $1 WHERE user_id = $2 AND symbol = $3 AND share_count >= $1",
		quantity, userID, symbol)
	if err != nil {
		rollback(tx)
		return fmt.Errorf("error decrementing holding: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		rollback(tx)
		return fmt.Errorf("error checking rows affected for holding decrement: %w", err)
	}
	if rowsAffected == 0 {
		rollback(tx)
		logger.Log.Error("holding vanished between validation and update",
			logger.String("symbol", symbol),
			logger.Int64("quantity", quantity),
			logger.Int64("user_id", userID),
		)
		return domain.ErrLedgerInconsistent
	}

	_, err = tx.ExecContext(ctx,
		"DELETE FROM holdings WHERE user_id = $1 AND symbol = $2 AND share_count = 0",
		userID, symbol)
	if err != nil {
		rollback(tx)
		return fmt.Errorf("error deleting emptied holding: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE users SET cash = cash + $1 WHERE id = $2",
		proceeds.String(), userID)
	if err != nil {
		rollback(tx)
		return fmt.Errorf("error crediting cash: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO transactions (user_id, symbol, quantity, price, kind) VALUES ($1, $2, $3, $4, $5)",
		userID, symbol, quantity, price.String(), domain.KindSell)
	if err != nil {
		rollback(tx)
		return fmt.Errorf("error recording sell transaction: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		rollback(tx)
		return fmt.Errorf("error committing sell transaction: %w", err)
	}

	return nil
}

func (p *Postgres) Transactions(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	rows, err := p.DB.QueryContext(ctx,
		`SELECT id, user_id, symbol, quantity, price, kind, occurred_at
		 FROM transactions WHERE user_id = $1 ORDER BY occurred_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching transactions: %w", err)
	}
	defer closeRows(rows)

	var transactions []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		var price string
		err := rows.Scan(&t.ID, &t.UserID, &t.Symbol, &t.Quantity, &price, &t.Kind, &t.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction: %w", err)
		}
		t.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("error parsing transaction price: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over transactions: %w", err)
	}

	return transactions, nil
}

func closeRows(rows *sql.Rows) {
	err := rows.Close()
	if err != nil {
		logger.Log.Error("error closing rows", logger.Error(err))
	}
}

func rollback(tx *sql.Tx) {
	err := tx.Rollback()
	if err != nil {
		logger.Log.Error(transactionRollbackError, logger.Error(err))
	}
}
