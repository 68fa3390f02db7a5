package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote represents a persisted historical price observation for a symbol.
// Quotes are append-only: they are written whenever a live fetch succeeds
// and are never updated or deleted, so the most recent one is always the
// last known good price for fallback lookups.
type Quote struct {
	ID        uuid.UUID
	Symbol    string
	Price     decimal.Decimal
	Timestamp time.Time
	Source    string
}

// Validate ensures the quote adheres to domain rules
func (q *Quote) Validate() error {
	if q.Symbol == "" {
		return errors.New("quote symbol cannot be empty")
	}
	if q.Price.LessThanOrEqual(decimal.Zero) {
		return errors.New("quote price must be positive")
	}
	return nil
}
