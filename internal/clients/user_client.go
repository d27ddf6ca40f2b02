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

// UserClient provides operations against the membership service.
type UserClient interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, req *models.UserRequest) (*models.User, error)
	Update(ctx context.Context, id int64, req *models.UserRequest) (*models.User, error)
	Remove(ctx context.Context, id int64) error
	Search(ctx context.Context, lastName string) ([]models.User, error)
	Active(ctx context.Context) ([]models.User, error)
}

// HTTPUserClient implements UserClient using HTTP.
type HTTPUserClient struct {
	httpClient
}

// NewHTTPUserClient creates a new HTTP-based user client.
func NewHTTPUserClient(cfg config.ServiceConfig, logger *logging.LoggerV2, metrics *Metrics) *HTTPUserClient {
	return &HTTPUserClient{httpClient: newHTTPClient(cfg, logger, metrics)}
}

func (c *HTTPUserClient) List(ctx context.Context) ([]models.User, error) {
	return c.list(ctx, "list", "/users")
}

func (c *HTTPUserClient) Get(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, "get", http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPUserClient) Create(ctx context.Context, req *models.UserRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, "create", http.MethodPost, "/users", req, &user); err != nil {
		return nil, err
	}
	c.logger.Info("User created", logging.Fields{"user_id": user.ID})
	return &user, nil
}

func (c *HTTPUserClient) Update(ctx context.Context, id int64, req *models.UserRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, "update", http.MethodPut, fmt.Sprintf("/users/%d", id), req, &user); err != nil {
		return nil, err
	}
	c.logger.Info("User updated", logging.Fields{"user_id": id})
	return &user, nil
}

func (c *HTTPUserClient) Remove(ctx context.Context, id int64) error {
	if err := c.do(ctx, "remove", http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil); err != nil {
		return err
	}
	c.logger.Info("User deleted", logging.Fields{"user_id": id})
	return nil
}

func (c *HTTPUserClient) Search(ctx context.Context, lastName string) ([]models.User, error) {
	q := url.Values{"lastName": {lastName}}
	return c.list(ctx, "search", "/users/search?"+q.Encode())
}

func (c *HTTPUserClient) Active(ctx context.Context) ([]models.User, error) {
	return c.list(ctx, "active", "/users/active")
}

func (c *HTTPUserClient) list(ctx context.Context, operation, path string) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := c.do(ctx, operation, http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// MockUserClient is a mock implementation for testing.
type MockUserClient struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	nextID int64

	Removed []int64

	ListErr, GetErr, CreateErr, UpdateErr, RemoveErr, SearchErr error
}

// NewMockUserClient creates a mock user client.
func NewMockUserClient() *MockUserClient {
	return &MockUserClient{
		users:  make(map[int64]*models.User),
		nextID: 100,
	}
}

func (m *MockUserClient) AddUser(user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *user
	m.users[user.ID] = &clone
}

func (m *MockUserClient) List(ctx context.Context) ([]models.User, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.filter(func(*models.User) bool { return true }), nil
}

func (m *MockUserClient) Get(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	user, ok := m.users[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *MockUserClient) Create(ctx context.Context, req *models.UserRequest) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.nextID++
	user := &models.User{ID: m.nextID, FirstName: req.FirstName, LastName: req.LastName, Email: req.Email, Active: true}
	m.users[user.ID] = user
	clone := *user
	return &clone, nil
}

func (m *MockUserClient) Update(ctx context.Context, id int64, req *models.UserRequest) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	user, ok := m.users[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	user.FirstName, user.LastName, user.Email = req.FirstName, req.LastName, req.Email
	clone := *user
	return &clone, nil
}

func (m *MockUserClient) Remove(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Removed = append(m.Removed, id)
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.users, id)
	return nil
}

func (m *MockUserClient) Search(ctx context.Context, lastName string) ([]models.User, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.filter(func(u *models.User) bool {
		return strings.Contains(strings.ToLower(u.LastName), strings.ToLower(lastName))
	}), nil
}

func (m *MockUserClient) Active(ctx context.Context) ([]models.User, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.filter(func(u *models.User) bool { return u.Active }), nil
}

func (m *MockUserClient) filter(keep func(*models.User) bool) []models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		if keep(u) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
