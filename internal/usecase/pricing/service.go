// Package pricing implements price resolution: a TTL cache in front of a
// rate-limited quote provider, with the persisted price history as a
// degraded-mode fallback.
package pricing

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mlourenco/stockfolio-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// SourceName tags quotes appended to the history with their origin.
const SourceName = "yahoo"

// Service resolves current prices for ticker symbols.
//
// Resolution order for a single symbol: fresh cache entry, else a
// rate-limited provider fetch (persisting the result), else the most
// recent persisted quote. A symbol that cannot be resolved at all yields
// nil rather than an error; callers render it as "unknown".
type Service struct {
	cache   *Cache
	limiter *Limiter
	source  QuoteSource
	history domain.QuoteRepository
	logger  *slog.Logger
}

// NewService creates a new price resolution service
func NewService(cache *Cache, limiter *Limiter, source QuoteSource, history domain.QuoteRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cache:   cache,
		limiter: limiter,
		source:  source,
		history: history,
		logger:  logger,
	}
}

// GetCurrentPrice resolves the current price for a symbol.
// Returns nil when no price can be obtained from either the provider or
// the persisted history. Provider and persistence failures are logged,
// never propagated.
func (s *Service) GetCurrentPrice(ctx context.Context, symbol string) *decimal.Decimal {
	symbol = domain.NormalizeSymbol(symbol)

	// Fresh cache hit consumes no rate limit and no network access
	if price, ok := s.cache.Lookup(symbol); ok {
		return &price
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		s.logger.Warn("rate limiter wait aborted", "symbol", symbol, "error", err)
		return s.lastKnownPrice(ctx, symbol)
	}

	raw, err := s.source.Fetch(ctx, symbol)
	if err != nil {
		s.logger.Warn("quote fetch failed, falling back to history", "symbol", symbol, "error", err)
		return s.lastKnownPrice(ctx, symbol)
	}

	price := raw.BestPrice()
	if price == nil {
		s.logger.Warn("quote carried no usable price, falling back to history", "symbol", symbol)
		return s.lastKnownPrice(ctx, symbol)
	}

	now := time.Now()
	s.cache.Store(symbol, *price, now)
	s.appendHistory(ctx, symbol, *price, now)

	return price
}

// GetMultiplePrices resolves prices for a batch of symbols concurrently.
// The result has exactly the input symbols as keys; symbols that could
// not be resolved map to nil. One symbol failing never affects another,
// and total latency is bounded by the slowest single resolution.
func (s *Service) GetMultiplePrices(ctx context.Context, symbols []string) map[string]*decimal.Decimal {
	prices := make(map[string]*decimal.Decimal, len(symbols))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, symbol := range symbols {
		key := domain.NormalizeSymbol(symbol)

		mu.Lock()
		if _, seen := prices[key]; seen {
			mu.Unlock()
			continue
		}
		prices[key] = nil
		mu.Unlock()

		wg.Add(1)
		go func() {
			defer wg.Done()
			// A panic in one resolution maps that symbol to nil
			// instead of aborting the batch
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("price resolution panicked", "symbol", key, "panic", r)
				}
			}()

			price := s.GetCurrentPrice(ctx, key)

			mu.Lock()
			prices[key] = price
			mu.Unlock()
		}()
	}
	wg.Wait()

	return prices
}

// ClearCache empties the price cache, forcing the next resolution of
// every symbol to attempt a fresh fetch.
func (s *Service) ClearCache() {
	s.cache.Reset()
}

// lastKnownPrice returns the most recently persisted quote's price for a
// symbol, or nil when no history exists or the read itself fails.
func (s *Service) lastKnownPrice(ctx context.Context, symbol string) *decimal.Decimal {
	quote, err := s.history.GetLatest(ctx, symbol)
	if err != nil {
		s.logger.Warn("no fallback price available", "symbol", symbol, "error", err)
		return nil
	}
	return &quote.Price
}

// appendHistory records a successful fetch in the price history.
// Persistence failures must not abort the in-progress resolution.
func (s *Service) appendHistory(ctx context.Context, symbol string, price decimal.Decimal, at time.Time) {
	quote := &domain.Quote{
		ID:        uuid.New(),
		Symbol:    symbol,
		Price:     price,
		Timestamp: at,
		Source:    SourceName,
	}
	if err := s.history.Append(ctx, quote); err != nil {
		s.logger.Error("failed to append price history", "symbol", symbol, "error", err)
	}
}
