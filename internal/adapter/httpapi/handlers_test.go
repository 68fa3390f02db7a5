package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlourenco/stockfolio-backend/internal/domain"
)

const testToken = "test-token"

// Mock services for testing

type mockPortfolioService struct {
	createFunc     func(ctx context.Context, name, description string) (*domain.Portfolio, error)
	getFunc        func(ctx context.Context, id int64) (*domain.Portfolio, error)
	summaryFunc    func(ctx context.Context, portfolioID int64) (*domain.PortfolioSummary, error)
	addHoldingFunc func(ctx context.Context, holding *domain.Holding) (*domain.Holding, error)
}

func (m *mockPortfolioService) CreatePortfolio(ctx context.Context, name, description string) (*domain.Portfolio, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, name, description)
	}
	return &domain.Portfolio{ID: 1, Name: name, Description: description, CreatedAt: time.Now(), UpdatedAt: time.Now()}, nil
}

func (m *mockPortfolioService) GetPortfolio(ctx context.Context, id int64) (*domain.Portfolio, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return &domain.Portfolio{ID: id, Name: "Growth"}, nil
}

func (m *mockPortfolioService) ListPortfolios(ctx context.Context) ([]*domain.Portfolio, error) {
	return []*domain.Portfolio{{ID: 1, Name: "Growth"}}, nil
}

func (m *mockPortfolioService) UpdatePortfolio(ctx context.Context, id int64, update domain.PortfolioUpdate) (*domain.Portfolio, error) {
	p := &domain.Portfolio{ID: id, Name: "Growth"}
	if update.Name != nil {
		p.Name = *update.Name
	}
	return p, nil
}

func (m *mockPortfolioService) DeletePortfolio(ctx context.Context, id int64) error {
	return nil
}

func (m *mockPortfolioService) AddHolding(ctx context.Context, holding *domain.Holding) (*domain.Holding, error) {
	if m.addHoldingFunc != nil {
		return m.addHoldingFunc(ctx, holding)
	}
	holding.ID = 10
	return holding, nil
}

func (m *mockPortfolioService) GetHolding(ctx context.Context, id int64) (*domain.Holding, error) {
	return &domain.Holding{ID: id, PortfolioID: 1, Symbol: "AAPL", AssetType: domain.AssetTypeStock,
		Quantity: decimal.NewFromInt(10), PurchasePrice: decimal.NewFromInt(150)}, nil
}

func (m *mockPortfolioService) ListHoldings(ctx context.Context, portfolioID int64) ([]*domain.Holding, error) {
	return nil, nil
}

func (m *mockPortfolioService) UpdateHolding(ctx context.Context, id int64, update domain.HoldingUpdate) (*domain.Holding, error) {
	return nil, domain.ErrNotFound
}

func (m *mockPortfolioService) DeleteHolding(ctx context.Context, id int64) error {
	return nil
}

func (m *mockPortfolioService) GetHoldingsWithMetrics(ctx context.Context, portfolioID int64) ([]*domain.ValuedHolding, error) {
	return []*domain.ValuedHolding{}, nil
}

func (m *mockPortfolioService) GetPortfolioSummary(ctx context.Context, portfolioID int64) (*domain.PortfolioSummary, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx, portfolioID)
	}
	best := "AAPL"
	return &domain.PortfolioSummary{
		PortfolioID:       portfolioID,
		PortfolioName:     "Growth",
		TotalHoldings:     1,
		TotalCost:         decimal.NewFromInt(1500),
		TotalCurrentValue: decimal.NewFromInt(1600),
		BestPerformer:     &best,
		LastUpdated:       time.Now(),
	}, nil
}

type mockPriceService struct {
	priceFunc   func(ctx context.Context, symbol string) *decimal.Decimal
	clearCalled bool
}

func (m *mockPriceService) GetCurrentPrice(ctx context.Context, symbol string) *decimal.Decimal {
	if m.priceFunc != nil {
		return m.priceFunc(ctx, symbol)
	}
	d := decimal.NewFromInt(160)
	return &d
}

func (m *mockPriceService) GetMultiplePrices(ctx context.Context, symbols []string) map[string]*decimal.Decimal {
	prices := make(map[string]*decimal.Decimal, len(symbols))
	for _, s := range symbols {
		prices[s] = m.GetCurrentPrice(ctx, s)
	}
	return prices
}

func (m *mockPriceService) ClearCache() {
	m.clearCalled = true
}

func newTestServer(portfolios PortfolioService, prices PriceService) *Server {
	return NewServer(&ServerConfig{
		Host:     "127.0.0.1",
		Port:     "0",
		APIToken: testToken,
	}, portfolios, prices, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func doRequest(t *testing.T, server *Server, method, path string, body interface{}, authorized bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if authorized {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}

	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, req)
	return recorder
}

func TestHealthEndpoint_NoAuthRequired(t *testing.T) {
	server := newTestServer(&mockPortfolioService{}, &mockPriceService{})

	recorder := doRequest(t, server, http.MethodGet, "/health", nil, false)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAuthMiddleware_RejectsMissingToken(t *testing.T) {
	server := newTestServer(&mockPortfolioService{}, &mockPriceService{})

	recorder := doRequest(t, server, http.MethodGet, "/api/portfolios", nil, false)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthMiddleware_RejectsWrongToken(t *testing.T) {
	server := newTestServer(&mockPortfolioService{}, &mockPriceService{})

	req := httptest.NewRequest(http.MethodGet, "/api/portfolios", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCreatePortfolio(t *testing.T) {
	server := newTestServer(&mockPortfolioService{}, &mockPriceService{})

	recorder := doRequest(t, server, http.MethodPost, "/api/portfolios", map[string]string{
		"name":        "Growth",
		"description": "long-term",
	}, true)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var resp portfolioResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "Growth", resp.Name)
	assert.Equal(t, int64(1), resp.ID)
}

func TestCreatePortfolio_InvalidBody(t *testing.T) {
	server := newTestServer(&mockPortfolioService{}, &mockPriceService{})

	req := httptest.NewRequest(http.MethodPost, "/api/portfolios", bytes.NewReader([]byte("not json")))
	req.Header.Set("Authorization", "Bearer "+testToken)
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetPortfolio_NotFound(t *testing.T) {
	server := newTestServer(&mockPortfolioService{
		getFunc: func(ctx context.Context, id int64) (*domain.Portfolio, error) {
			return nil, domain.ErrNotFound
		},
	}, &mockPriceService{})

	recorder := doRequest(t, server, http.MethodGet, "/api/portfolios/99", nil, true)

	require.Equal(t, http.StatusNotFound, recorder.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestGetPortfolio_InvalidID(t *testing.T) {
	server := newTestServer(&mockPortfolioService{}, &mockPriceService{})

	recorder := doRequest(t, server, http.MethodGet, "/api/portfolios/abc", nil, true)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetPortfolioSummary(t *testing.T) {
	server := newTestServer(&mockPortfolioService{}, &mockPriceService{})

	recorder := doRequest(t, server, http.MethodGet, "/api/portfolios/1/summary", nil, true)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp summaryResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "Growth", resp.PortfolioName)
	require.NotNil(t, resp.BestPerformer)
	assert.Equal(t, "AAPL", *resp.BestPerformer)
}

func TestAddHolding_ValidationFailureIsBadRequest(t *testing.T) {
	server := newTestServer(&mockPortfolioService{
		addHoldingFunc: func(ctx context.Context, holding *domain.Holding) (*domain.Holding, error) {
			return nil, holding.Validate()
		},
	}, &mockPriceService{})

	recorder := doRequest(t, server, http.MethodPost, "/api/holdings", map[string]interface{}{
		"portfolio_id":   1,
		"symbol":         "AAPL",
		"asset_type":     "stock",
		"quantity":       "0",
		"purchase_price": "150",
	}, true)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetPrice(t *testing.T) {
	server := newTestServer(&mockPortfolioService{}, &mockPriceService{})

	recorder := doRequest(t, server, http.MethodGet, "/api/prices/aapl", nil, true)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp priceResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "AAPL", resp.Symbol)
	require.NotNil(t, resp.Price)
	assert.True(t, decimal.NewFromInt(160).Equal(*resp.Price))
}

func TestGetPrice_UnresolvedIsNull(t *testing.T) {
	server := newTestServer(&mockPortfolioService{}, &mockPriceService{
		priceFunc: func(ctx context.Context, symbol string) *decimal.Decimal { return nil },
	})

	recorder := doRequest(t, server, http.MethodGet, "/api/prices/NOPE", nil, true)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp priceResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Nil(t, resp.Price)
}

func TestGetPrices_RequiresSymbols(t *testing.T) {
	server := newTestServer(&mockPortfolioService{}, &mockPriceService{})

	recorder := doRequest(t, server, http.MethodGet, "/api/prices", nil, true)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestClearPriceCache(t *testing.T) {
	prices := &mockPriceService{}
	server := newTestServer(&mockPortfolioService{}, prices)

	recorder := doRequest(t, server, http.MethodDelete, "/api/prices/cache", nil, true)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.True(t, prices.clearCalled)
}
