package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/service"
)

// ListUsers handles GET /api/v1/console/users
//
// ?active=true lists active users, ?q= searches by last name and ?filter=
// narrows the result by full name.
func (h *Handlers) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		users []models.User
		err   error
	)
	if c.Query("active") == "true" {
		users, err = h.catalog.ActiveUsers(ctx)
	} else {
		users, err = h.catalog.SearchUsers(ctx, c.Query("q"))
	}
	if err != nil {
		handleError(c, err)
		return
	}
	users = service.FilterUsersByName(users, c.Query("filter"))

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// CreateUser handles POST /api/v1/console/users
func (h *Handlers) CreateUser(c *gin.Context) {
	var req models.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.logger, err)
		return
	}

	user, err := h.catalog.CreateUser(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// UpdateUser handles PUT /api/v1/console/users/:id
func (h *Handlers) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.logger, err)
		return
	}

	user, err := h.catalog.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/v1/console/users/:id
func (h *Handlers) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	users, err := h.catalog.DeleteUser(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}
