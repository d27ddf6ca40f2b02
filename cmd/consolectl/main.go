package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap/zapcore"

	"github.com/tm-acme-shop/acme-shop-admin-console/internal/clients"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/config"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/events"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/repository"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/service"
)

func main() {
	summaryOnly := flag.Bool("summary", false, "print the dashboard summary as JSON and exit")
	tailAudit := flag.Bool("tail-audit", false, "print audit events from Kafka as they arrive")
	logFile := flag.String("log-file", os.Getenv("CONSOLECTL_LOG_FILE"), "write logs to this file")
	flag.Parse()

	cfg := config.Load()

	// stdout belongs to the terminal UI, so logs go to a file or nowhere.
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		defer f.Close()
		logging.InitWriter(cfg.Log.Level, cfg.Log.Format, zapcore.AddSync(f))
		defer logging.Sync()
	}
	logger := logging.NewLoggerV2("consolectl")

	if *tailAudit {
		if err := runAuditTail(cfg, logger); err != nil && err != context.Canceled {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	b := newBackend(cfg, logger)

	if *summaryOnly {
		out, _ := json.MarshalIndent(b.dashboard.Summary(context.Background()), "", "  ")
		fmt.Println(string(out))
		return
	}

	p := tea.NewProgram(initialModel(b))
	if _, err := p.Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

// runAuditTail prints one line per audit event until interrupted.
func runAuditTail(cfg *config.Config, logger *logging.LoggerV2) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := events.NewAuditConsumer(cfg.Kafka, func(ctx context.Context, e *events.AuditEvent) error {
		_, err := fmt.Printf("%s  %-22s %s:%d  request=%s\n",
			e.Timestamp.Format(time.RFC3339), e.Type, e.Resource, e.ResourceID, e.CorrelationID)
		return err
	}, logger)
	go func() {
		<-ctx.Done()
		consumer.Stop()
	}()

	return consumer.Start(ctx)
}

func newBackend(cfg *config.Config, logger *logging.LoggerV2) backend {
	orders := clients.NewHTTPOrderClient(cfg.OrdersService, logger, nil)
	users := clients.NewHTTPUserClient(cfg.UsersService, logger, nil)
	products := clients.NewHTTPProductClient(cfg.ProductsService, logger, nil)

	auditor := service.NewAuditor(nil, nil, logger)
	orderService := service.NewOrderService(orders, users, products, repository.NewMemoryDraftStore(cfg.Drafts.TTL), auditor, logger)
	catalog := service.NewCatalogService(users, products, auditor, logger)

	return backend{
		orders:    orderService,
		catalog:   catalog,
		dashboard: service.NewDashboardService(orderService, catalog),
	}
}
