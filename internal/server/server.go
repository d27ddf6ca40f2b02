package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/config"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/middleware"
)

type Server struct {
	config   *config.Config
	router   *gin.Engine
	http     *http.Server
	handlers *handlers.Handlers
	logger   *logging.LoggerV2
}

// New builds the router with the full middleware chain. reg receives the
// HTTP metrics; nil skips them.
func New(h *handlers.Handlers, cfg *config.Config, reg prometheus.Registerer, logger *logging.LoggerV2) *Server {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logging(logger),
	)
	if reg != nil {
		router.Use(middleware.NewHTTPMetrics(reg).Middleware())
	}
	router.Use(middleware.RateLimit(cfg.RateLimit, logger))

	h.RegisterRoutes(router)

	return &Server{
		config:   cfg,
		router:   router,
		handlers: h,
		logger:   logger,
		http: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("Starting server", logging.Fields{"addr": s.http.Addr})
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
