package pricing

import (
	"context"

	"github.com/shopspring/decimal"
)

// QuoteSource is the external quote provider. It is treated as untrusted
// and unreliable: errors and responses without a usable price are normal
// outcomes for the resolver, not exceptional ones.
type QuoteSource interface {
	Fetch(ctx context.Context, symbol string) (*RawQuote, error)
}

// RawQuote is a provider response. Providers differ in which price field
// they populate, so every field is optional; Price probes them in a fixed
// preference order. HistoricalClose is the provider's own most recent
// daily close, used only when no live field is present.
type RawQuote struct {
	CurrentPrice       *decimal.Decimal
	RegularMarketPrice *decimal.Decimal
	Price              *decimal.Decimal
	LastPrice          *decimal.Decimal
	HistoricalClose    *decimal.Decimal
}

// BestPrice returns the first populated positive price field in
// preference order: current, regular-market, generic, last, then
// historical close. Returns nil when the quote carries no usable price.
func (q *RawQuote) BestPrice() *decimal.Decimal {
	for _, p := range []*decimal.Decimal{
		q.CurrentPrice,
		q.RegularMarketPrice,
		q.Price,
		q.LastPrice,
		q.HistoricalClose,
	} {
		if p != nil && p.GreaterThan(decimal.Zero) {
			return p
		}
	}
	return nil
}
