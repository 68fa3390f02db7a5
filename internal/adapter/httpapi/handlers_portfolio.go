package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/mlourenco/stockfolio-backend/internal/domain"
)

// portfolioResponse is the JSON representation of a portfolio
type portfolioResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toPortfolioResponse(p *domain.Portfolio) portfolioResponse {
	return portfolioResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// summaryResponse is the JSON representation of a portfolio summary
type summaryResponse struct {
	PortfolioID           int64           `json:"portfolio_id"`
	PortfolioName         string          `json:"portfolio_name"`
	TotalHoldings         int             `json:"total_holdings"`
	TotalCost             decimal.Decimal `json:"total_cost"`
	TotalCurrentValue     decimal.Decimal `json:"total_current_value"`
	TotalAbsoluteReturn   decimal.Decimal `json:"total_absolute_return"`
	TotalPercentageReturn decimal.Decimal `json:"total_percentage_return"`
	BestPerformer         *string         `json:"best_performer"`
	WorstPerformer        *string         `json:"worst_performer"`
	LastUpdated           time.Time       `json:"last_updated"`
}

// parseIDVar extracts an integer id path variable
func parseIDVar(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// handleCreatePortfolio handles POST /api/portfolios
func (s *Server) handleCreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body")
		return
	}

	portfolio, err := s.portfolios.CreatePortfolio(r.Context(), req.Name, req.Description)
	if err != nil {
		statusCode, code := mapServiceError(err)
		respondError(w, statusCode, code, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, toPortfolioResponse(portfolio))
}

// handleListPortfolios handles GET /api/portfolios
func (s *Server) handleListPortfolios(w http.ResponseWriter, r *http.Request) {
	portfolios, err := s.portfolios.ListPortfolios(r.Context())
	if err != nil {
		statusCode, code := mapServiceError(err)
		respondError(w, statusCode, code, err.Error())
		return
	}

	resp := make([]portfolioResponse, 0, len(portfolios))
	for _, p := range portfolios {
		resp = append(resp, toPortfolioResponse(p))
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleGetPortfolio handles GET /api/portfolios/{id}
func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid portfolio ID")
		return
	}

	portfolio, err := s.portfolios.GetPortfolio(r.Context(), id)
	if err != nil {
		statusCode, code := mapServiceError(err)
		respondError(w, statusCode, code, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, toPortfolioResponse(portfolio))
}

// handleUpdatePortfolio handles PUT /api/portfolios/{id}
func (s *Server) handleUpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid portfolio ID")
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body")
		return
	}

	portfolio, err := s.portfolios.UpdatePortfolio(r.Context(), id, domain.PortfolioUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		statusCode, code := mapServiceError(err)
		respondError(w, statusCode, code, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, toPortfolioResponse(portfolio))
}

// handleDeletePortfolio handles DELETE /api/portfolios/{id}
func (s *Server) handleDeletePortfolio(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid portfolio ID")
		return
	}

	if err := s.portfolios.DeletePortfolio(r.Context(), id); err != nil {
		statusCode, code := mapServiceError(err)
		respondError(w, statusCode, code, err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// handleGetHoldingsWithMetrics handles GET /api/portfolios/{id}/metrics
func (s *Server) handleGetHoldingsWithMetrics(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid portfolio ID")
		return
	}

	valued, err := s.portfolios.GetHoldingsWithMetrics(r.Context(), id)
	if err != nil {
		statusCode, code := mapServiceError(err)
		respondError(w, statusCode, code, err.Error())
		return
	}

	resp := make([]valuedHoldingResponse, 0, len(valued))
	for _, vh := range valued {
		resp = append(resp, toValuedHoldingResponse(vh))
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleGetPortfolioSummary handles GET /api/portfolios/{id}/summary
func (s *Server) handleGetPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid portfolio ID")
		return
	}

	summary, err := s.portfolios.GetPortfolioSummary(r.Context(), id)
	if err != nil {
		statusCode, code := mapServiceError(err)
		respondError(w, statusCode, code, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, summaryResponse{
		PortfolioID:           summary.PortfolioID,
		PortfolioName:         summary.PortfolioName,
		TotalHoldings:         summary.TotalHoldings,
		TotalCost:             summary.TotalCost,
		TotalCurrentValue:     summary.TotalCurrentValue,
		TotalAbsoluteReturn:   summary.TotalAbsoluteReturn,
		TotalPercentageReturn: summary.TotalPercentageReturn,
		BestPerformer:         summary.BestPerformer,
		WorstPerformer:        summary.WorstPerformer,
		LastUpdated:           summary.LastUpdated,
	})
}
