package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/msmebridge/marketplace/pkg/auth"
	"github.com/msmebridge/marketplace/pkg/observability"
)

// ServerConfig configures the marketplace HTTP server.
type ServerConfig struct {
	Port int
	// JWTService enables bearer-token auth on the /api/v1 surface when set.
	// Health probes stay unauthenticated either way.
	JWTService *auth.JWTService
	Metrics    *observability.MarketplaceMetrics
}

// Server is the marketplace HTTP server: application lifecycle, policy
// management, lender statistics, and health probes.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer assembles the routing table and middleware chain.
func NewServer(
	cfg ServerConfig,
	applications *ApplicationHandler,
	policies *PolicyHandler,
	health *HealthHandler,
	logger *slog.Logger,
) *Server {
	api := http.NewServeMux()
	applications.RegisterRoutes(api)
	policies.RegisterRoutes(api)

	var apiHandler http.Handler = api
	if cfg.JWTService != nil {
		apiHandler = auth.Middleware(cfg.JWTService)(apiHandler)
	}

	root := http.NewServeMux()
	health.RegisterRoutes(root)
	root.Handle("/api/v1/", apiHandler)

	var h http.Handler = root
	h = LoggingMiddleware(logger, cfg.Metrics)(h)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           h,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Handler exposes the fully assembled handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start blocks serving HTTP until the server is shut down.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
