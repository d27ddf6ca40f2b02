package service

import (
	"context"
	"strings"

	"github.com/tm-acme-shop/acme-shop-admin-console/internal/clients"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
)

// CatalogService backs the users and products views.
type CatalogService struct {
	users    clients.UserClient
	products clients.ProductClient
	audit    *Auditor
	logger   *logging.LoggerV2
}

func NewCatalogService(users clients.UserClient, products clients.ProductClient, audit *Auditor, logger *logging.LoggerV2) *CatalogService {
	if audit == nil {
		audit = NewAuditor(nil, nil, logger)
	}
	return &CatalogService{users: users, products: products, audit: audit, logger: logger}
}

// ListUsers degrades to an empty list when the users service fails.
func (s *CatalogService) ListUsers(ctx context.Context) []models.User {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Warn("Failed to load users", logging.Fields{"error": err.Error()})
		return []models.User{}
	}
	return users
}

// SearchUsers queries by last name; an empty query reloads the list.
func (s *CatalogService) SearchUsers(ctx context.Context, lastName string) ([]models.User, error) {
	q := strings.TrimSpace(lastName)
	if q == "" {
		return s.ListUsers(ctx), nil
	}
	return s.users.Search(ctx, q)
}

func (s *CatalogService) ActiveUsers(ctx context.Context) ([]models.User, error) {
	return s.users.Active(ctx)
}

// FilterUsersByName matches q against the full name, ignoring case.
func FilterUsersByName(users []models.User, q string) []models.User {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]models.User, 0, len(users))
	for i := range users {
		if q == "" || strings.Contains(strings.ToLower(users[i].FullName()), q) {
			out = append(out, users[i])
		}
	}
	return out
}

func (s *CatalogService) CreateUser(ctx context.Context, req *models.UserRequest) (*models.User, error) {
	if err := ValidateUserRequest(req); err != nil {
		return nil, err
	}
	user, err := s.users.Create(ctx, trimUser(req))
	if err != nil {
		return nil, err
	}

	s.logger.Info("User created", logging.Fields{"user_id": user.ID})
	s.audit.Catalog(ctx, models.AuditUserCreated, "user", user.ID)
	return user, nil
}

func (s *CatalogService) UpdateUser(ctx context.Context, id int64, req *models.UserRequest) (*models.User, error) {
	if err := ValidateUserRequest(req); err != nil {
		return nil, err
	}
	user, err := s.users.Update(ctx, id, trimUser(req))
	if err != nil {
		return nil, err
	}

	s.logger.Info("User updated", logging.Fields{"user_id": id})
	s.audit.Catalog(ctx, models.AuditUserUpdated, "user", id)
	return user, nil
}

// DeleteUser removes the user and returns the reloaded list.
func (s *CatalogService) DeleteUser(ctx context.Context, id int64) ([]models.User, error) {
	if err := s.users.Remove(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("User deleted", logging.Fields{"user_id": id})
	s.audit.Catalog(ctx, models.AuditUserDeleted, "user", id)
	return s.ListUsers(ctx), nil
}

// ListProducts degrades to an empty list when the products service fails.
func (s *CatalogService) ListProducts(ctx context.Context) []models.Product {
	products, err := s.products.List(ctx)
	if err != nil {
		s.logger.Warn("Failed to load products", logging.Fields{"error": err.Error()})
		return []models.Product{}
	}
	return products
}

// SearchProducts queries by name; an empty query reloads the list.
func (s *CatalogService) SearchProducts(ctx context.Context, name string) ([]models.Product, error) {
	q := strings.TrimSpace(name)
	if q == "" {
		return s.ListProducts(ctx), nil
	}
	return s.products.Search(ctx, q)
}

func (s *CatalogService) ProductsByCategory(ctx context.Context, category models.Category) ([]models.Product, error) {
	return s.products.ByCategory(ctx, category)
}

func (s *CatalogService) AvailableProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.Available(ctx)
}

// FilterProductsByName matches q against the product name, ignoring case.
func FilterProductsByName(products []models.Product, q string) []models.Product {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]models.Product, 0, len(products))
	for i := range products {
		if q == "" || strings.Contains(strings.ToLower(products[i].Name), q) {
			out = append(out, products[i])
		}
	}
	return out
}

func (s *CatalogService) CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {
	payload, err := ValidateProductRequest(req)
	if err != nil {
		return nil, err
	}
	product, err := s.products.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product created", logging.Fields{"product_id": product.ID})
	s.audit.Catalog(ctx, models.AuditProductCreated, "product", product.ID)
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, req *models.ProductRequest) (*models.Product, error) {
	payload, err := ValidateProductRequest(req)
	if err != nil {
		return nil, err
	}
	product, err := s.products.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product updated", logging.Fields{"product_id": id})
	s.audit.Catalog(ctx, models.AuditProductUpdated, "product", id)
	return product, nil
}

// DeleteProduct removes the product and returns the reloaded list.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) ([]models.Product, error) {
	if err := s.products.Remove(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("Product deleted", logging.Fields{"product_id": id})
	s.audit.Catalog(ctx, models.AuditProductDeleted, "product", id)
	return s.ListProducts(ctx), nil
}

func trimUser(req *models.UserRequest) *models.UserRequest {
	return &models.UserRequest{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
	}
}
