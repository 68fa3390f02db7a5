package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AssetType represents the type of asset a holding tracks
type AssetType string

const (
	AssetTypeStock  AssetType = "stock"
	AssetTypeCrypto AssetType = "crypto"
)

// Holding represents a position in a portfolio: a quantity of an asset
// bought at a given price. Quantity and purchase price use decimals with
// enough precision for crypto (8 fractional digits), never floats.
type Holding struct {
	ID            int64
	PortfolioID   int64
	Symbol        string
	AssetType     AssetType
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
	PurchaseDate  time.Time
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate ensures the holding adheres to domain rules.
// Quantity and purchase price must be strictly positive for the lifetime
// of the entity; updates that would break this are rejected upstream.
func (h *Holding) Validate() error {
	if h.PortfolioID == 0 {
		return errors.New("holding must reference a portfolio")
	}
	if h.Symbol == "" {
		return errors.New("holding symbol cannot be empty")
	}
	if h.AssetType != AssetTypeStock && h.AssetType != AssetTypeCrypto {
		return errors.New("holding asset type must be stock or crypto")
	}
	if h.Quantity.LessThanOrEqual(decimal.Zero) {
		return errors.New("holding quantity must be positive")
	}
	if h.PurchasePrice.LessThanOrEqual(decimal.Zero) {
		return errors.New("holding purchase price must be positive")
	}
	return nil
}

// HoldingUpdate carries a partial update to a holding.
// Nil fields are left unchanged.
type HoldingUpdate struct {
	Symbol        *string
	AssetType     *AssetType
	Quantity      *decimal.Decimal
	PurchasePrice *decimal.Decimal
	PurchaseDate  *time.Time
	Notes         *string
}

// NormalizeSymbol returns the canonical form of a ticker symbol.
// Symbols are case-insensitive; the system always stores and compares
// the uppercase form (e.g. "aapl" and "AAPL" are the same symbol).
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
