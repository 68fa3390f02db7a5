package domain

import (
	"errors"
	"time"
)

// Portfolio represents a portfolio entity in the domain layer.
// A portfolio groups holdings; its value and returns are always derived,
// never stored.
type Portfolio struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate ensures the portfolio adheres to domain rules.
// Returns an error if validation fails.
func (p *Portfolio) Validate() error {
	if p.Name == "" {
		return errors.New("portfolio name cannot be empty")
	}
	return nil
}

// PortfolioUpdate carries a partial update to a portfolio.
// Nil fields are left unchanged.
type PortfolioUpdate struct {
	Name        *string
	Description *string
}
