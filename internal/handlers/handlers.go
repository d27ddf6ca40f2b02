package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/config"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/service"
)

// ReadinessCheck reports whether a dependency can serve requests.
type ReadinessCheck func(ctx context.Context) error

// Handlers holds all HTTP handlers for the admin console.
type Handlers struct {
	orders    *service.OrderService
	catalog   *service.CatalogService
	dashboard *service.DashboardService
	audit     *service.Auditor
	config    *config.Config
	gatherer  prometheus.Gatherer
	checks    map[string]ReadinessCheck
	logger    *logging.LoggerV2
}

// NewHandlers creates a new handlers instance.
func NewHandlers(
	orders *service.OrderService,
	catalog *service.CatalogService,
	dashboard *service.DashboardService,
	audit *service.Auditor,
	cfg *config.Config,
	gatherer prometheus.Gatherer,
) *Handlers {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Handlers{
		orders:    orders,
		catalog:   catalog,
		dashboard: dashboard,
		audit:     audit,
		config:    cfg,
		gatherer:  gatherer,
		checks:    make(map[string]ReadinessCheck),
		logger:    logging.NewLoggerV2("handlers"),
	}
}

// AddReadinessCheck registers a dependency consulted by GET /ready.
func (h *Handlers) AddReadinessCheck(name string, check ReadinessCheck) {
	if h.checks == nil {
		h.checks = make(map[string]ReadinessCheck)
	}
	h.checks[name] = check
}

// pathID parses an integer path parameter, answering 400 when it is not one.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func badBody(c *gin.Context, logger *logging.LoggerV2, err error) {
	logger.Warn("Failed to bind request", logging.Fields{
		"path":  c.FullPath(),
		"error": err.Error(),
	})
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}
