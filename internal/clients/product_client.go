package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/tm-acme-shop/acme-shop-admin-console/internal/config"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/errors"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
)

// ProductClient provides operations against the products service.
type ProductClient interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, payload *models.ProductPayload) (*models.Product, error)
	Update(ctx context.Context, id int64, payload *models.ProductPayload) (*models.Product, error)
	Remove(ctx context.Context, id int64) error
	Search(ctx context.Context, name string) ([]models.Product, error)
	ByCategory(ctx context.Context, category models.Category) ([]models.Product, error)
	Available(ctx context.Context) ([]models.Product, error)
}

// HTTPProductClient implements ProductClient using HTTP.
type HTTPProductClient struct {
	httpClient
}

// NewHTTPProductClient creates a new HTTP-based products client.
func NewHTTPProductClient(cfg config.ServiceConfig, logger *logging.LoggerV2, metrics *Metrics) *HTTPProductClient {
	return &HTTPProductClient{httpClient: newHTTPClient(cfg, logger, metrics)}
}

func (c *HTTPProductClient) List(ctx context.Context) ([]models.Product, error) {
	return c.list(ctx, "list", "/products")
}

func (c *HTTPProductClient) Get(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, "get", http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *HTTPProductClient) Create(ctx context.Context, payload *models.ProductPayload) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, "create", http.MethodPost, "/products", payload, &product); err != nil {
		return nil, err
	}
	c.logger.Info("Product created", logging.Fields{"product_id": product.ID})
	return &product, nil
}

func (c *HTTPProductClient) Update(ctx context.Context, id int64, payload *models.ProductPayload) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, "update", http.MethodPut, fmt.Sprintf("/products/%d", id), payload, &product); err != nil {
		return nil, err
	}
	c.logger.Info("Product updated", logging.Fields{"product_id": id})
	return &product, nil
}

func (c *HTTPProductClient) Remove(ctx context.Context, id int64) error {
	if err := c.do(ctx, "remove", http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil); err != nil {
		return err
	}
	c.logger.Info("Product deleted", logging.Fields{"product_id": id})
	return nil
}

func (c *HTTPProductClient) Search(ctx context.Context, name string) ([]models.Product, error) {
	q := url.Values{"name": {name}}
	return c.list(ctx, "search", "/products/search?"+q.Encode())
}

func (c *HTTPProductClient) ByCategory(ctx context.Context, category models.Category) ([]models.Product, error) {
	return c.list(ctx, "by_category", "/products/category/"+url.PathEscape(string(category)))
}

func (c *HTTPProductClient) Available(ctx context.Context) ([]models.Product, error) {
	return c.list(ctx, "available", "/products/available")
}

func (c *HTTPProductClient) list(ctx context.Context, operation, path string) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := c.do(ctx, operation, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// MockProductClient is a mock implementation for testing.
type MockProductClient struct {
	mu       sync.Mutex
	products map[int64]*models.Product
	nextID   int64

	Created []models.ProductPayload
	Removed []int64

	ListErr, GetErr, CreateErr, UpdateErr, RemoveErr, SearchErr error
}

// NewMockProductClient creates a mock products client.
func NewMockProductClient() *MockProductClient {
	return &MockProductClient{
		products: make(map[int64]*models.Product),
		nextID:   500,
	}
}

func (m *MockProductClient) AddProduct(product *models.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *product
	m.products[product.ID] = &clone
}

func (m *MockProductClient) List(ctx context.Context) ([]models.Product, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.filter(func(*models.Product) bool { return true }), nil
}

func (m *MockProductClient) Get(ctx context.Context, id int64) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	product, ok := m.products[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (m *MockProductClient) Create(ctx context.Context, payload *models.ProductPayload) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created = append(m.Created, *payload)
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.nextID++
	product := productFromPayload(m.nextID, payload)
	m.products[product.ID] = product
	clone := *product
	return &clone, nil
}

func (m *MockProductClient) Update(ctx context.Context, id int64, payload *models.ProductPayload) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	if _, ok := m.products[id]; !ok {
		return nil, errors.ErrNotFound
	}
	product := productFromPayload(id, payload)
	m.products[id] = product
	clone := *product
	return &clone, nil
}

func (m *MockProductClient) Remove(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Removed = append(m.Removed, id)
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.products, id)
	return nil
}

func (m *MockProductClient) Search(ctx context.Context, name string) ([]models.Product, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.filter(func(p *models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), strings.ToLower(name))
	}), nil
}

func (m *MockProductClient) ByCategory(ctx context.Context, category models.Category) ([]models.Product, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.filter(func(p *models.Product) bool { return p.Category == category }), nil
}

func (m *MockProductClient) Available(ctx context.Context) ([]models.Product, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.filter(func(p *models.Product) bool {
		return p.IsActive() && (p.Stock == nil || *p.Stock > 0)
	}), nil
}

func (m *MockProductClient) filter(keep func(*models.Product) bool) []models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		if keep(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func productFromPayload(id int64, payload *models.ProductPayload) *models.Product {
	stock := payload.Stock
	active := payload.Active
	return &models.Product{
		ID:          id,
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       &stock,
		Category:    payload.Category,
		Active:      &active,
	}
}
