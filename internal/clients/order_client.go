package clients

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/tm-acme-shop/acme-shop-admin-console/internal/config"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/errors"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
)

// OrderClient provides operations against the orders service.
type OrderClient interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	Create(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	// UpdateStatus targets the status endpoint, not a general update.
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateOrderStatusRequest) (*models.Order, error)
	Remove(ctx context.Context, id int64) error
	ByUser(ctx context.Context, userID int64) ([]models.Order, error)
}

// HTTPOrderClient implements OrderClient using HTTP.
type HTTPOrderClient struct {
	httpClient
}

// NewHTTPOrderClient creates a new HTTP-based orders client.
func NewHTTPOrderClient(cfg config.ServiceConfig, logger *logging.LoggerV2, metrics *Metrics) *HTTPOrderClient {
	return &HTTPOrderClient{httpClient: newHTTPClient(cfg, logger, metrics)}
}

func (c *HTTPOrderClient) List(ctx context.Context) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	if err := c.do(ctx, "list", http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return nonNilOrders(orders), nil
}

func (c *HTTPOrderClient) Get(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, "get", http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *HTTPOrderClient) Create(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, "create", http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}

	c.logger.Info("Order created", logging.Fields{
		"order_id": order.ID,
		"user_id":  req.UserID,
		"items":    len(req.Items),
	})
	return &order, nil
}

func (c *HTTPOrderClient) UpdateStatus(ctx context.Context, id int64, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, "update_status", http.MethodPut, fmt.Sprintf("/orders/%d/status", id), req, &order); err != nil {
		return nil, err
	}

	c.logger.Info("Order status updated", logging.Fields{
		"order_id": id,
		"status":   string(req.Status),
	})
	return &order, nil
}

func (c *HTTPOrderClient) Remove(ctx context.Context, id int64) error {
	if err := c.do(ctx, "remove", http.MethodDelete, fmt.Sprintf("/orders/%d", id), nil, nil); err != nil {
		return err
	}

	c.logger.Info("Order deleted", logging.Fields{"order_id": id})
	return nil
}

func (c *HTTPOrderClient) ByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	if err := c.do(ctx, "by_user", http.MethodGet, fmt.Sprintf("/orders/user/%d", userID), nil, &orders); err != nil {
		return nil, err
	}
	return nonNilOrders(orders), nil
}

func nonNilOrders(orders []models.Order) []models.Order {
	if orders == nil {
		return []models.Order{}
	}
	return orders
}

// MockOrderClient is a mock implementation for testing. It records every
// mutating call so tests can assert on request payloads.
type MockOrderClient struct {
	mu     sync.Mutex
	orders map[int64]*models.Order
	nextID int64

	Created       []models.CreateOrderRequest
	StatusUpdates map[int64][]models.UpdateOrderStatusRequest
	Removed       []int64
	Calls         []string

	ListErr, GetErr, CreateErr, UpdateErr, RemoveErr, ByUserErr error
}

// NewMockOrderClient creates a mock orders client.
func NewMockOrderClient() *MockOrderClient {
	return &MockOrderClient{
		orders:        make(map[int64]*models.Order),
		nextID:        1000,
		StatusUpdates: make(map[int64][]models.UpdateOrderStatusRequest),
	}
}

func (m *MockOrderClient) AddOrder(order *models.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *order
	m.orders[order.ID] = &clone
}

// CallCount returns how many times op was invoked.
func (m *MockOrderClient) CallCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == op {
			n++
		}
	}
	return n
}

func (m *MockOrderClient) List(ctx context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "list")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.snapshot(func(*models.Order) bool { return true }), nil
}

func (m *MockOrderClient) Get(ctx context.Context, id int64) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "get")
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	order, ok := m.orders[id]
	if !ok {
		return nil, &errors.ServiceError{Service: "orders", Operation: "get", StatusCode: http.StatusNotFound, Message: "Not Found"}
	}
	clone := *order
	return &clone, nil
}

func (m *MockOrderClient) Create(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "create")
	m.Created = append(m.Created, *req)
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}

	m.nextID++
	order := &models.Order{
		ID:              m.nextID,
		UserID:          req.UserID,
		ShippingAddress: req.ShippingAddress,
		Status:          models.OrderStatusPending,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, models.OrderLineItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	m.orders[order.ID] = order
	clone := *order
	return &clone, nil
}

func (m *MockOrderClient) UpdateStatus(ctx context.Context, id int64, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "update_status")
	m.StatusUpdates[id] = append(m.StatusUpdates[id], *req)
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	order, ok := m.orders[id]
	if !ok {
		return nil, &errors.ServiceError{Service: "orders", Operation: "update_status", StatusCode: http.StatusNotFound, Message: "Not Found"}
	}
	order.Status = req.Status
	clone := *order
	return &clone, nil
}

func (m *MockOrderClient) Remove(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "remove")
	m.Removed = append(m.Removed, id)
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.orders, id)
	return nil
}

func (m *MockOrderClient) ByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "by_user")
	if m.ByUserErr != nil {
		return nil, m.ByUserErr
	}
	return m.snapshot(func(o *models.Order) bool { return o.UserID == userID }), nil
}

// snapshot returns matching orders sorted by id. Callers hold m.mu.
func (m *MockOrderClient) snapshot(keep func(*models.Order) bool) []models.Order {
	out := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		if keep(o) {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
