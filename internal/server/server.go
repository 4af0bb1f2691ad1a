package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matthieukhl/expotrack/internal/logger"
	"github.com/matthieukhl/expotrack/internal/metrics"
	"github.com/matthieukhl/expotrack/internal/service"
)

type Server struct {
	router   *gin.Engine
	inv      *service.Inventory
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	http     *http.Server
}

// NewServer creates a new server instance. A nil gatherer serves the
// default Prometheus registry.
func NewServer(inv *service.Inventory, m *metrics.Metrics, gatherer prometheus.Gatherer) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router := gin.New()
	router.Use(gin.Logger(), requestID(), instrument(m), recoverJSON())

	server := &Server{
		router:   router,
		inv:      inv,
		metrics:  m,
		gatherer: gatherer,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)
		api.GET("/abacus-status", s.platformStatus)

		api.GET("/orders", s.getOrders)
		api.GET("/orders/booth/:booth", s.getBoothOrders)

		api.GET("/checklist", s.getChecklist)
		api.GET("/checklist/booth/:booth", s.getBoothChecklist)

		api.POST("/clear-cache", s.clearCache)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("HTTP server listening", logger.Fields{"addr": addr})
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
