package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValuedHolding is a read-only projection of a holding enriched with the
// current price and derived return metrics. It is computed on demand and
// never persisted.
//
// CurrentPrice and the fields derived from it are nil when no price could
// be resolved for the symbol; TotalCost is always computed.
type ValuedHolding struct {
	Holding

	CurrentPrice     *decimal.Decimal
	TotalCost        decimal.Decimal
	CurrentValue     *decimal.Decimal
	AbsoluteReturn   *decimal.Decimal
	PercentageReturn *decimal.Decimal
	LastUpdated      time.Time
}

// PortfolioSummary aggregates the valued holdings of a portfolio.
// Holdings with no resolvable price contribute zero to the current-value
// total; best/worst performer only consider holdings with a price.
type PortfolioSummary struct {
	PortfolioID           int64
	PortfolioName         string
	TotalHoldings         int
	TotalCost             decimal.Decimal
	TotalCurrentValue     decimal.Decimal
	TotalAbsoluteReturn   decimal.Decimal
	TotalPercentageReturn decimal.Decimal
	BestPerformer         *string
	WorstPerformer        *string
	LastUpdated           time.Time
}
