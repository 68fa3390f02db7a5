package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mlourenco/stockfolio-backend/internal/domain"
)

// quoteRepository implements domain.QuoteRepository.
// The price_history table is append-only: rows are inserted on every
// successful fetch and never updated or deleted.
type quoteRepository struct {
	db *DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *DB) domain.QuoteRepository {
	return &quoteRepository{db: db}
}

// Append records a new price observation
func (r *quoteRepository) Append(ctx context.Context, quote *domain.Quote) error {
	query := `
		INSERT INTO price_history (id, symbol, price, timestamp, source)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		quote.ID,
		quote.Symbol,
		quote.Price.String(),
		quote.Timestamp,
		quote.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to append price history entry: %w", err)
	}

	return nil
}

// GetLatest retrieves the most recent quote for a symbol
func (r *quoteRepository) GetLatest(ctx context.Context, symbol string) (*domain.Quote, error) {
	query := `
		SELECT id, symbol, price, timestamp, source
		FROM price_history
		WHERE symbol = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`

	var quote domain.Quote
	var priceStr string

	err := r.db.QueryRowContext(ctx, query, symbol).Scan(
		&quote.ID,
		&quote.Symbol,
		&priceStr,
		&quote.Timestamp,
		&quote.Source,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no price history for symbol %s: %w", symbol, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get latest quote: %w", err)
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}
	quote.Price = price

	return &quote, nil
}
