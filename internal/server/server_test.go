package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/clients"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/config"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/middleware"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/repository"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/service"
)

func newTestServer(t *testing.T, rl config.RateLimitConfig) (*Server, *prometheus.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logging.NewWithZap(nil)
	orders, users, products := clients.NewMockOrderClient(), clients.NewMockUserClient(), clients.NewMockProductClient()
	audit := service.NewAuditor(repository.NewMemoryAuditLog(0), nil, logger)
	orderSvc := service.NewOrderService(orders, users, products, repository.NewMemoryDraftStore(0), audit, logger)
	catalog := service.NewCatalogService(users, products, audit, logger)

	cfg := &config.Config{RateLimit: rl}
	reg := prometheus.NewRegistry()
	h := handlers.NewHandlers(orderSvc, catalog, service.NewDashboardService(orderSvc, catalog), audit, cfg, reg)
	return New(h, cfg, reg, logger), reg
}

func TestServer_RequestID(t *testing.T) {
	srv, _ := newTestServer(t, config.RateLimitConfig{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-42")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if got := w.Header().Get(middleware.HeaderRequestID); got != "req-42" {
		t.Errorf("Expected request id echoed, got %q", got)
	}
}

func TestServer_MetricsExposeHTTPRequests(t *testing.T) {
	srv, _ := newTestServer(t, config.RateLimitConfig{})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/console/orders", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(w.Body.String(), `console_http_requests_total{method="GET",route="/api/v1/console/orders",status="200"} 1`) {
		t.Errorf("Expected request counter in metrics output, got:\n%s", w.Body.String())
	}
}

func TestServer_RateLimit(t *testing.T) {
	srv, _ := newTestServer(t, config.RateLimitConfig{Enabled: true, Rate: 1, Burst: 1})

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("Expected [200 429], got %v", codes)
	}
}
