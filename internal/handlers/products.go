package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/errors"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/service"
)

// ListProducts handles GET /api/v1/console/products
func (h *Handlers) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		products []models.Product
		err      error
	)
	switch category := models.Category(c.Query("category")); {
	case category != "":
		if !category.Valid() {
			handleError(c, errors.NewValidationError("category", "invalid category"))
			return
		}
		products, err = h.catalog.ProductsByCategory(ctx, category)
	case c.Query("available") == "true":
		products, err = h.catalog.AvailableProducts(ctx)
	default:
		products, err = h.catalog.SearchProducts(ctx, c.Query("q"))
	}
	if err != nil {
		handleError(c, err)
		return
	}
	products = service.FilterProductsByName(products, c.Query("filter"))

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// CreateProduct handles POST /api/v1/console/products
func (h *Handlers) CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.logger, err)
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/v1/console/products/:id
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.logger, err)
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/v1/console/products/:id
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	products, err := h.catalog.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}
