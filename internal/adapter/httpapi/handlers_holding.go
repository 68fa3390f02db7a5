package httpapi

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mlourenco/stockfolio-backend/internal/domain"
)

// holdingResponse is the JSON representation of a holding
type holdingResponse struct {
	ID            int64           `json:"id"`
	PortfolioID   int64           `json:"portfolio_id"`
	Symbol        string          `json:"symbol"`
	AssetType     string          `json:"asset_type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PurchaseDate  time.Time       `json:"purchase_date"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func toHoldingResponse(h *domain.Holding) holdingResponse {
	return holdingResponse{
		ID:            h.ID,
		PortfolioID:   h.PortfolioID,
		Symbol:        h.Symbol,
		AssetType:     string(h.AssetType),
		Quantity:      h.Quantity,
		PurchasePrice: h.PurchasePrice,
		PurchaseDate:  h.PurchaseDate,
		Notes:         h.Notes,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
}

// valuedHoldingResponse extends holdingResponse with derived metrics.
// Nil metric fields render as JSON null, which the UI shows as unknown.
type valuedHoldingResponse struct {
	holdingResponse

	CurrentPrice     *decimal.Decimal `json:"current_price"`
	TotalCost        decimal.Decimal  `json:"total_cost"`
	CurrentValue     *decimal.Decimal `json:"current_value"`
	AbsoluteReturn   *decimal.Decimal `json:"absolute_return"`
	PercentageReturn *decimal.Decimal `json:"percentage_return"`
	LastUpdated      time.Time        `json:"last_updated"`
}

func toValuedHoldingResponse(vh *domain.ValuedHolding) valuedHoldingResponse {
	return valuedHoldingResponse{
		holdingResponse:  toHoldingResponse(&vh.Holding),
		CurrentPrice:     vh.CurrentPrice,
		TotalCost:        vh.TotalCost,
		CurrentValue:     vh.CurrentValue,
		AbsoluteReturn:   vh.AbsoluteReturn,
		PercentageReturn: vh.PercentageReturn,
		LastUpdated:      vh.LastUpdated,
	}
}

// handleAddHolding handles POST /api/holdings
func (s *Server) handleAddHolding(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PortfolioID   int64           `json:"portfolio_id"`
		Symbol        string          `json:"symbol"`
		AssetType     string          `json:"asset_type"`
		Quantity      decimal.Decimal `json:"quantity"`
		PurchasePrice decimal.Decimal `json:"purchase_price"`
		PurchaseDate  *time.Time      `json:"purchase_date"`
		Notes         string          `json:"notes"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body")
		return
	}

	holding := &domain.Holding{
		PortfolioID:   req.PortfolioID,
		Symbol:        req.Symbol,
		AssetType:     domain.AssetType(req.AssetType),
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		Notes:         req.Notes,
	}
	if req.PurchaseDate != nil {
		holding.PurchaseDate = *req.PurchaseDate
	}

	created, err := s.portfolios.AddHolding(r.Context(), holding)
	if err != nil {
		// Validation failures surface as bad input, not server errors
		if statusCode, code := mapServiceError(err); statusCode == http.StatusNotFound {
			respondError(w, statusCode, code, err.Error())
		} else {
			respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusCreated, toHoldingResponse(created))
}

// handleGetHolding handles GET /api/holdings/{id}
func (s *Server) handleGetHolding(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid holding ID")
		return
	}

	holding, err := s.portfolios.GetHolding(r.Context(), id)
	if err != nil {
		statusCode, code := mapServiceError(err)
		respondError(w, statusCode, code, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, toHoldingResponse(holding))
}

// handleListHoldings handles GET /api/portfolios/{id}/holdings
func (s *Server) handleListHoldings(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid portfolio ID")
		return
	}

	holdings, err := s.portfolios.ListHoldings(r.Context(), id)
	if err != nil {
		statusCode, code := mapServiceError(err)
		respondError(w, statusCode, code, err.Error())
		return
	}

	resp := make([]holdingResponse, 0, len(holdings))
	for _, h := range holdings {
		resp = append(resp, toHoldingResponse(h))
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleUpdateHolding handles PUT /api/holdings/{id}
func (s *Server) handleUpdateHolding(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid holding ID")
		return
	}

	var req struct {
		Symbol        *string          `json:"symbol"`
		AssetType     *string          `json:"asset_type"`
		Quantity      *decimal.Decimal `json:"quantity"`
		PurchasePrice *decimal.Decimal `json:"purchase_price"`
		PurchaseDate  *time.Time       `json:"purchase_date"`
		Notes         *string          `json:"notes"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body")
		return
	}

	update := domain.HoldingUpdate{
		Symbol:        req.Symbol,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		PurchaseDate:  req.PurchaseDate,
		Notes:         req.Notes,
	}
	if req.AssetType != nil {
		assetType := domain.AssetType(*req.AssetType)
		update.AssetType = &assetType
	}

	holding, err := s.portfolios.UpdateHolding(r.Context(), id, update)
	if err != nil {
		if statusCode, code := mapServiceError(err); statusCode == http.StatusNotFound {
			respondError(w, statusCode, code, err.Error())
		} else {
			respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, toHoldingResponse(holding))
}

// handleDeleteHolding handles DELETE /api/holdings/{id}
func (s *Server) handleDeleteHolding(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid holding ID")
		return
	}

	if err := s.portfolios.DeleteHolding(r.Context(), id); err != nil {
		statusCode, code := mapServiceError(err)
		respondError(w, statusCode, code, err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
