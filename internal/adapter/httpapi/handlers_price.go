package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/mlourenco/stockfolio-backend/internal/domain"
)

// priceResponse is the JSON representation of a resolved price.
// Price is null when the symbol could not be resolved.
type priceResponse struct {
	Symbol      string           `json:"symbol"`
	Price       *decimal.Decimal `json:"price"`
	RetrievedAt time.Time        `json:"retrieved_at"`
}

// handleGetPrice handles GET /api/prices/{symbol}
func (s *Server) handleGetPrice(w http.ResponseWriter, r *http.Request) {
	symbol := domain.NormalizeSymbol(mux.Vars(r)["symbol"])
	if symbol == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Symbol required")
		return
	}

	price := s.prices.GetCurrentPrice(r.Context(), symbol)

	respondJSON(w, http.StatusOK, priceResponse{
		Symbol:      symbol,
		Price:       price,
		RetrievedAt: time.Now(),
	})
}

// handleGetPrices handles GET /api/prices?symbols=AAPL,GOOGL
func (s *Server) handleGetPrices(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("symbols")
	if raw == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "symbols query parameter required")
		return
	}

	var symbols []string
	for _, symbol := range strings.Split(raw, ",") {
		if symbol = domain.NormalizeSymbol(symbol); symbol != "" {
			symbols = append(symbols, symbol)
		}
	}
	if len(symbols) == 0 {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "no valid symbols provided")
		return
	}

	prices := s.prices.GetMultiplePrices(r.Context(), symbols)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"prices":       prices,
		"retrieved_at": time.Now(),
	})
}

// handleClearPriceCache handles DELETE /api/prices/cache
func (s *Server) handleClearPriceCache(w http.ResponseWriter, r *http.Request) {
	s.prices.ClearCache()
	respondJSON(w, http.StatusNoContent, nil)
}
