// Package portfolio implements portfolio and holding management plus the
// metrics aggregation that joins holdings with resolved prices.
package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mlourenco/stockfolio-backend/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// PriceResolver provides current prices for batches of symbols.
// Implemented by the pricing service; symbols that cannot be resolved map
// to nil and never produce an error.
type PriceResolver interface {
	GetMultiplePrices(ctx context.Context, symbols []string) map[string]*decimal.Decimal
}

// Service handles portfolio and holding operations
type Service struct {
	PortfolioRepo domain.PortfolioRepository
	HoldingRepo   domain.HoldingRepository
	Prices        PriceResolver
}

// NewService creates a new portfolio service instance
func NewService(portfolioRepo domain.PortfolioRepository, holdingRepo domain.HoldingRepository, prices PriceResolver) *Service {
	return &Service{
		PortfolioRepo: portfolioRepo,
		HoldingRepo:   holdingRepo,
		Prices:        prices,
	}
}

// CreatePortfolio creates a new portfolio
func (s *Service) CreatePortfolio(ctx context.Context, name, description string) (*domain.Portfolio, error) {
	now := time.Now()
	portfolio := &domain.Portfolio{
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := portfolio.Validate(); err != nil {
		return nil, err
	}

	if err := s.PortfolioRepo.Create(ctx, portfolio); err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	return portfolio, nil
}

// GetPortfolio retrieves a portfolio by ID
func (s *Service) GetPortfolio(ctx context.Context, id int64) (*domain.Portfolio, error) {
	return s.PortfolioRepo.GetByID(ctx, id)
}

// ListPortfolios retrieves all portfolios ordered by name
func (s *Service) ListPortfolios(ctx context.Context) ([]*domain.Portfolio, error) {
	return s.PortfolioRepo.List(ctx)
}

// UpdatePortfolio applies a partial update to a portfolio
func (s *Service) UpdatePortfolio(ctx context.Context, id int64, update domain.PortfolioUpdate) (*domain.Portfolio, error) {
	portfolio, err := s.PortfolioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		portfolio.Name = *update.Name
	}
	if update.Description != nil {
		portfolio.Description = *update.Description
	}
	portfolio.UpdatedAt = time.Now()

	if err := portfolio.Validate(); err != nil {
		return nil, err
	}

	if err := s.PortfolioRepo.Update(ctx, portfolio); err != nil {
		return nil, fmt.Errorf("failed to update portfolio: %w", err)
	}

	return portfolio, nil
}

// DeletePortfolio removes a portfolio and all of its holdings
func (s *Service) DeletePortfolio(ctx context.Context, id int64) error {
	if _, err := s.PortfolioRepo.GetByID(ctx, id); err != nil {
		return err
	}

	// Holdings are owned by the portfolio; remove them first
	if err := s.HoldingRepo.DeleteByPortfolio(ctx, id); err != nil {
		return fmt.Errorf("failed to delete portfolio holdings: %w", err)
	}

	if err := s.PortfolioRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}

	return nil
}

// AddHolding adds a new holding to a portfolio.
// The symbol is normalized to uppercase and the purchase date defaults to
// now when unset.
func (s *Service) AddHolding(ctx context.Context, holding *domain.Holding) (*domain.Holding, error) {
	holding.Symbol = domain.NormalizeSymbol(holding.Symbol)
	if holding.PurchaseDate.IsZero() {
		holding.PurchaseDate = time.Now()
	}
	now := time.Now()
	holding.CreatedAt = now
	holding.UpdatedAt = now

	if err := holding.Validate(); err != nil {
		return nil, err
	}

	// Verify the owning portfolio exists
	if _, err := s.PortfolioRepo.GetByID(ctx, holding.PortfolioID); err != nil {
		return nil, err
	}

	if err := s.HoldingRepo.Create(ctx, holding); err != nil {
		return nil, fmt.Errorf("failed to create holding: %w", err)
	}

	return holding, nil
}

// GetHolding retrieves a holding by ID
func (s *Service) GetHolding(ctx context.Context, id int64) (*domain.Holding, error) {
	return s.HoldingRepo.GetByID(ctx, id)
}

// ListHoldings retrieves all holdings of a portfolio ordered by symbol
func (s *Service) ListHoldings(ctx context.Context, portfolioID int64) ([]*domain.Holding, error) {
	return s.HoldingRepo.ListByPortfolio(ctx, portfolioID)
}

// UpdateHolding applies a partial update to a holding.
// Updates that would leave quantity or purchase price non-positive are
// rejected by validation.
func (s *Service) UpdateHolding(ctx context.Context, id int64, update domain.HoldingUpdate) (*domain.Holding, error) {
	holding, err := s.HoldingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Symbol != nil {
		holding.Symbol = domain.NormalizeSymbol(*update.Symbol)
	}
	if update.AssetType != nil {
		holding.AssetType = *update.AssetType
	}
	if update.Quantity != nil {
		holding.Quantity = *update.Quantity
	}
	if update.PurchasePrice != nil {
		holding.PurchasePrice = *update.PurchasePrice
	}
	if update.PurchaseDate != nil {
		holding.PurchaseDate = *update.PurchaseDate
	}
	if update.Notes != nil {
		holding.Notes = *update.Notes
	}
	holding.UpdatedAt = time.Now()

	if err := holding.Validate(); err != nil {
		return nil, err
	}

	if err := s.HoldingRepo.Update(ctx, holding); err != nil {
		return nil, fmt.Errorf("failed to update holding: %w", err)
	}

	return holding, nil
}

// DeleteHolding removes a holding by ID
func (s *Service) DeleteHolding(ctx context.Context, id int64) error {
	if _, err := s.HoldingRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.HoldingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	return nil
}

// ValueHoldings joins holdings with resolved prices to produce valued
// holdings. Total cost is always computed; the current-value and return
// fields stay nil for holdings whose symbol has no resolved price.
func (s *Service) ValueHoldings(holdings []*domain.Holding, prices map[string]*decimal.Decimal) []*domain.ValuedHolding {
	now := time.Now()
	valued := make([]*domain.ValuedHolding, 0, len(holdings))

	for _, h := range holdings {
		vh := &domain.ValuedHolding{
			Holding:     *h,
			TotalCost:   h.Quantity.Mul(h.PurchasePrice),
			LastUpdated: now,
		}

		if price := prices[h.Symbol]; price != nil {
			currentValue := h.Quantity.Mul(*price)
			absoluteReturn := currentValue.Sub(vh.TotalCost)

			vh.CurrentPrice = price
			vh.CurrentValue = &currentValue
			vh.AbsoluteReturn = &absoluteReturn

			// Quantity and purchase price are strictly positive, so a
			// zero total cost is unreachable; guarded anyway to keep the
			// division total
			if vh.TotalCost.GreaterThan(decimal.Zero) {
				percentageReturn := absoluteReturn.Div(vh.TotalCost).Mul(oneHundred)
				vh.PercentageReturn = &percentageReturn
			}
		}

		valued = append(valued, vh)
	}

	return valued
}

// Summarize aggregates valued holdings into a portfolio summary.
// Holdings without a resolved price contribute zero to the current-value
// total; best and worst performer consider only priced holdings and keep
// the first occurrence on ties.
func (s *Service) Summarize(portfolio *domain.Portfolio, valued []*domain.ValuedHolding) *domain.PortfolioSummary {
	summary := &domain.PortfolioSummary{
		PortfolioID:           portfolio.ID,
		PortfolioName:         portfolio.Name,
		TotalHoldings:         len(valued),
		TotalCost:             decimal.Zero,
		TotalCurrentValue:     decimal.Zero,
		TotalAbsoluteReturn:   decimal.Zero,
		TotalPercentageReturn: decimal.Zero,
		LastUpdated:           time.Now(),
	}

	var bestReturn, worstReturn *decimal.Decimal

	for _, vh := range valued {
		summary.TotalCost = summary.TotalCost.Add(vh.TotalCost)
		if vh.CurrentValue != nil {
			summary.TotalCurrentValue = summary.TotalCurrentValue.Add(*vh.CurrentValue)
		}

		if vh.PercentageReturn == nil {
			continue
		}
		if bestReturn == nil || vh.PercentageReturn.GreaterThan(*bestReturn) {
			bestReturn = vh.PercentageReturn
			symbol := vh.Symbol
			summary.BestPerformer = &symbol
		}
		if worstReturn == nil || vh.PercentageReturn.LessThan(*worstReturn) {
			worstReturn = vh.PercentageReturn
			symbol := vh.Symbol
			summary.WorstPerformer = &symbol
		}
	}

	summary.TotalAbsoluteReturn = summary.TotalCurrentValue.Sub(summary.TotalCost)
	if summary.TotalCost.GreaterThan(decimal.Zero) {
		summary.TotalPercentageReturn = summary.TotalAbsoluteReturn.Div(summary.TotalCost).Mul(oneHundred)
	}

	return summary
}

// GetHoldingsWithMetrics loads a portfolio's holdings and values them
// with live prices resolved in one concurrent batch.
func (s *Service) GetHoldingsWithMetrics(ctx context.Context, portfolioID int64) ([]*domain.ValuedHolding, error) {
	holdings, err := s.HoldingRepo.ListByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	if len(holdings) == 0 {
		return []*domain.ValuedHolding{}, nil
	}

	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		symbols = append(symbols, h.Symbol)
	}

	prices := s.Prices.GetMultiplePrices(ctx, symbols)

	return s.ValueHoldings(holdings, prices), nil
}

// GetPortfolioSummary computes the aggregated metrics for a portfolio.
// An empty portfolio yields all-zero totals and no best/worst performer.
func (s *Service) GetPortfolioSummary(ctx context.Context, portfolioID int64) (*domain.PortfolioSummary, error) {
	portfolio, err := s.PortfolioRepo.GetByID(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	valued, err := s.GetHoldingsWithMetrics(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	return s.Summarize(portfolio, valued), nil
}
