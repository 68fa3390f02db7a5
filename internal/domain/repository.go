package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when the requested entity does
// not exist. Callers check it with errors.Is.
var ErrNotFound = errors.New("entity not found")

// PortfolioRepository defines the interface for portfolio persistence operations
type PortfolioRepository interface {
	// Create persists a new portfolio and assigns its ID
	Create(ctx context.Context, portfolio *Portfolio) error

	// GetByID retrieves a portfolio by its ID
	GetByID(ctx context.Context, id int64) (*Portfolio, error)

	// List retrieves all portfolios ordered by name
	List(ctx context.Context) ([]*Portfolio, error)

	// Update persists changes to an existing portfolio
	Update(ctx context.Context, portfolio *Portfolio) error

	// Delete removes a portfolio by its ID
	Delete(ctx context.Context, id int64) error
}

// HoldingRepository defines the interface for holding persistence operations
type HoldingRepository interface {
	// Create persists a new holding and assigns its ID
	Create(ctx context.Context, holding *Holding) error

	// GetByID retrieves a holding by its ID
	GetByID(ctx context.Context, id int64) (*Holding, error)

	// ListByPortfolio retrieves all holdings of a portfolio ordered by symbol
	ListByPortfolio(ctx context.Context, portfolioID int64) ([]*Holding, error)

	// Update persists changes to an existing holding
	Update(ctx context.Context, holding *Holding) error

	// Delete removes a holding by its ID
	Delete(ctx context.Context, id int64) error

	// DeleteByPortfolio removes all holdings of a portfolio
	DeleteByPortfolio(ctx context.Context, portfolioID int64) error
}

// QuoteRepository defines the interface for the append-only price history.
// It doubles as the fallback store: GetLatest serves the last known price
// when a live fetch fails.
type QuoteRepository interface {
	// Append records a new price observation
	Append(ctx context.Context, quote *Quote) error

	// GetLatest retrieves the most recent quote for a symbol
	// Returns ErrNotFound if no history exists for the symbol
	GetLatest(ctx context.Context, symbol string) (*Quote, error)
}
