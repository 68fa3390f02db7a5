package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mlourenco/stockfolio-backend/internal/domain"
)

// holdingRepository implements domain.HoldingRepository
type holdingRepository struct {
	db *DB
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *DB) domain.HoldingRepository {
	return &holdingRepository{db: db}
}

// Create persists a new holding and assigns its ID
func (r *holdingRepository) Create(ctx context.Context, holding *domain.Holding) error {
	query := `
		INSERT INTO holdings (portfolio_id, symbol, asset_type, quantity, purchase_price, purchase_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		holding.PortfolioID,
		holding.Symbol,
		string(holding.AssetType),
		holding.Quantity.String(),
		holding.PurchasePrice.String(),
		holding.PurchaseDate,
		holding.Notes,
		holding.CreatedAt,
		holding.UpdatedAt,
	).Scan(&holding.ID)
	if err != nil {
		return fmt.Errorf("failed to create holding: %w", err)
	}

	return nil
}

// GetByID retrieves a holding by its ID
func (r *holdingRepository) GetByID(ctx context.Context, id int64) (*domain.Holding, error) {
	query := `
		SELECT id, portfolio_id, symbol, asset_type, quantity, purchase_price, purchase_date, notes, created_at, updated_at
		FROM holdings
		WHERE id = $1
	`

	holding, err := scanHolding(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("holding %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get holding by ID: %w", err)
	}

	return holding, nil
}

// ListByPortfolio retrieves all holdings of a portfolio ordered by symbol
func (r *holdingRepository) ListByPortfolio(ctx context.Context, portfolioID int64) ([]*domain.Holding, error) {
	query := `
		SELECT id, portfolio_id, symbol, asset_type, quantity, purchase_price, purchase_date, notes, created_at, updated_at
		FROM holdings
		WHERE portfolio_id = $1
		ORDER BY symbol
	`

	rows, err := r.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	var holdings []*domain.Holding
	for rows.Next() {
		holding, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, holding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holdings: %w", err)
	}

	return holdings, nil
}

// Update persists changes to an existing holding
func (r *holdingRepository) Update(ctx context.Context, holding *domain.Holding) error {
	query := `
		UPDATE holdings
		SET symbol = $2, asset_type = $3, quantity = $4, purchase_price = $5, purchase_date = $6, notes = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		holding.ID,
		holding.Symbol,
		string(holding.AssetType),
		holding.Quantity.String(),
		holding.PurchasePrice.String(),
		holding.PurchaseDate,
		holding.Notes,
		holding.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("holding %d: %w", holding.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a holding by its ID
func (r *holdingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM holdings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("holding %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByPortfolio removes all holdings of a portfolio
func (r *holdingRepository) DeleteByPortfolio(ctx context.Context, portfolioID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM holdings WHERE portfolio_id = $1`, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to delete holdings for portfolio %d: %w", portfolioID, err)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scanning
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanHolding scans one holding row, parsing DECIMAL columns from their
// string form
func scanHolding(s scanner) (*domain.Holding, error) {
	var holding domain.Holding
	var assetType string
	var quantityStr, priceStr string

	if err := s.Scan(
		&holding.ID,
		&holding.PortfolioID,
		&holding.Symbol,
		&assetType,
		&quantityStr,
		&priceStr,
		&holding.PurchaseDate,
		&holding.Notes,
		&holding.CreatedAt,
		&holding.UpdatedAt,
	); err != nil {
		return nil, err
	}

	holding.AssetType = domain.AssetType(assetType)

	quantity, err := decimal.NewFromString(quantityStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quantity: %w", err)
	}
	holding.Quantity = quantity

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse purchase_price: %w", err)
	}
	holding.PurchasePrice = price

	return &holding, nil
}
