package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/clients"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/config"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/events"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/handlers"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/repository"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/server"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	logging.Init(cfg.Log.Level, cfg.Log.Format)
	defer logging.Sync()

	logger := logging.NewLoggerV2("admin-console")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	clientMetrics := clients.NewMetrics(reg)

	orderClient := clients.NewHTTPOrderClient(cfg.OrdersService, logger, clientMetrics)
	userClient := clients.NewHTTPUserClient(cfg.UsersService, logger, clientMetrics)
	productClient := clients.NewHTTPProductClient(cfg.ProductsService, logger, clientMetrics)

	checks := map[string]handlers.ReadinessCheck{}

	var drafts repository.DraftStore
	if cfg.Features.EnableRedisDrafts {
		redisDrafts := repository.NewRedisDraftStore(cfg.Redis, cfg.Drafts.TTL, logger)
		defer redisDrafts.Close()
		checks["redis"] = redisDrafts.Ping
		drafts = redisDrafts
	} else {
		drafts = repository.NewMemoryDraftStore(cfg.Drafts.TTL)
	}

	var auditLog repository.AuditLog
	if cfg.Features.EnableAuditLog {
		db, err := initDatabase(cfg, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", logging.Fields{"error": err.Error()})
		}
		defer db.Close()

		pgLog := repository.NewPostgresAuditLog(db, logger)
		if err := pgLog.Migrate(context.Background()); err != nil {
			logger.Fatal("Failed to migrate audit log", logging.Fields{"error": err.Error()})
		}
		checks["postgres"] = db.PingContext
		auditLog = pgLog
	} else {
		auditLog = repository.NewMemoryAuditLog(0)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Features.EnableAuditEvents {
		publisher = events.NewKafkaPublisher(cfg.Kafka, logger)
	}
	defer publisher.Close()

	auditor := service.NewAuditor(auditLog, publisher, logger)
	orderService := service.NewOrderService(orderClient, userClient, productClient, drafts, auditor, logger)
	catalogService := service.NewCatalogService(userClient, productClient, auditor, logger)
	dashboardService := service.NewDashboardService(orderService, catalogService)

	h := handlers.NewHandlers(orderService, catalogService, dashboardService, auditor, cfg, reg)
	for name, check := range checks {
		h.AddReadinessCheck(name, check)
	}

	srv := server.New(h, cfg, reg, logger)

	go func() {
		logger.Info("Server starting", logging.Fields{
			"port":                cfg.Server.Port,
			"orders_service_url":  cfg.OrdersService.BaseURL,
			"enable_redis_drafts": cfg.Features.EnableRedisDrafts,
			"enable_audit_log":    cfg.Features.EnableAuditLog,
			"enable_audit_events": cfg.Features.EnableAuditEvents,
		})
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", logging.Fields{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logging.Fields{"error": err.Error()})
	}

	logger.Info("Server exited")
}

func initDatabase(cfg *config.Config, logger *logging.LoggerV2) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Database connected", logging.Fields{
		"host": cfg.Database.Host,
		"name": cfg.Database.Name,
	})

	return db, nil
}
