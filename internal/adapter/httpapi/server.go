// Package httpapi provides the HTTP API server. It is a thin adapter:
// handlers translate requests for the usecase services and perform no
// calculation of their own.
package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/mlourenco/stockfolio-backend/internal/domain"
)

// PortfolioService defines the portfolio operations the API exposes
type PortfolioService interface {
	CreatePortfolio(ctx context.Context, name, description string) (*domain.Portfolio, error)
	GetPortfolio(ctx context.Context, id int64) (*domain.Portfolio, error)
	ListPortfolios(ctx context.Context) ([]*domain.Portfolio, error)
	UpdatePortfolio(ctx context.Context, id int64, update domain.PortfolioUpdate) (*domain.Portfolio, error)
	DeletePortfolio(ctx context.Context, id int64) error
	AddHolding(ctx context.Context, holding *domain.Holding) (*domain.Holding, error)
	GetHolding(ctx context.Context, id int64) (*domain.Holding, error)
	ListHoldings(ctx context.Context, portfolioID int64) ([]*domain.Holding, error)
	UpdateHolding(ctx context.Context, id int64, update domain.HoldingUpdate) (*domain.Holding, error)
	DeleteHolding(ctx context.Context, id int64) error
	GetHoldingsWithMetrics(ctx context.Context, portfolioID int64) ([]*domain.ValuedHolding, error)
	GetPortfolioSummary(ctx context.Context, portfolioID int64) (*domain.PortfolioSummary, error)
}

// PriceService defines the price resolution operations the API exposes
type PriceService interface {
	GetCurrentPrice(ctx context.Context, symbol string) *decimal.Decimal
	GetMultiplePrices(ctx context.Context, symbols []string) map[string]*decimal.Decimal
	ClearCache()
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	APIToken        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server represents the HTTP API server
type Server struct {
	router     *mux.Router
	httpServer *http.Server
	portfolios PortfolioService
	prices     PriceService
	logger     *slog.Logger
	config     *ServerConfig
}

// NewServer creates a new API server instance
func NewServer(config *ServerConfig, portfolios PortfolioService, prices PriceService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:     mux.NewRouter(),
		portfolios: portfolios,
		prices:     prices,
		logger:     logger,
		config:     config,
	}

	s.setupRouter()

	return s
}

// setupRouter configures the router with middleware and routes
func (s *Server) setupRouter() {
	s.router.Use(LoggingMiddleware(s.logger))
	s.router.Use(RecoveryMiddleware(s.logger))

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// Health check stays unauthenticated
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(s.config.APIToken))

	// Portfolio endpoints
	api.HandleFunc("/portfolios", s.handleCreatePortfolio).Methods("POST")
	api.HandleFunc("/portfolios", s.handleListPortfolios).Methods("GET")
	api.HandleFunc("/portfolios/{id}", s.handleGetPortfolio).Methods("GET")
	api.HandleFunc("/portfolios/{id}", s.handleUpdatePortfolio).Methods("PUT")
	api.HandleFunc("/portfolios/{id}", s.handleDeletePortfolio).Methods("DELETE")
	api.HandleFunc("/portfolios/{id}/holdings", s.handleListHoldings).Methods("GET")
	api.HandleFunc("/portfolios/{id}/metrics", s.handleGetHoldingsWithMetrics).Methods("GET")
	api.HandleFunc("/portfolios/{id}/summary", s.handleGetPortfolioSummary).Methods("GET")

	// Holding endpoints
	api.HandleFunc("/holdings", s.handleAddHolding).Methods("POST")
	api.HandleFunc("/holdings/{id}", s.handleGetHolding).Methods("GET")
	api.HandleFunc("/holdings/{id}", s.handleUpdateHolding).Methods("PUT")
	api.HandleFunc("/holdings/{id}", s.handleDeleteHolding).Methods("DELETE")

	// Price endpoints
	api.HandleFunc("/prices/{symbol}", s.handleGetPrice).Methods("GET")
	api.HandleFunc("/prices", s.handleGetPrices).Methods("GET")
	api.HandleFunc("/prices/cache", s.handleClearPriceCache).Methods("DELETE")
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "stockfolio-backend",
	})
}

// Handler returns the configured router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.httpServer.Shutdown(ctx)
}
