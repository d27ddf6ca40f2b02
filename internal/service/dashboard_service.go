package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tm-acme-shop/acme-shop-admin-console/internal/dashboard"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
)

// DashboardService loads the three lists concurrently and summarizes them.
type DashboardService struct {
	orders  *OrderService
	catalog *CatalogService
}

func NewDashboardService(orders *OrderService, catalog *CatalogService) *DashboardService {
	return &DashboardService{orders: orders, catalog: catalog}
}

// Summary never fails. Each list that cannot be loaded counts as empty.
func (s *DashboardService) Summary(ctx context.Context) dashboard.Summary {
	var (
		users    []models.User
		products []models.Product
		orders   []models.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users = s.catalog.ListUsers(gctx)
		return nil
	})
	g.Go(func() error {
		products = s.catalog.ListProducts(gctx)
		return nil
	})
	g.Go(func() error {
		orders = s.orders.ListOrders(gctx)
		return nil
	})
	_ = g.Wait()

	return dashboard.Summarize(users, products, orders)
}
