package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/service"
)

type updateDraftRequest struct {
	UserID          *string             `json:"userId"`
	ShippingAddress *string             `json:"shippingAddress"`
	Status          *models.OrderStatus `json:"status"`
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CreateDraft handles POST /api/v1/console/orders/drafts
func (h *Handlers) CreateDraft(c *gin.Context) {
	draft, err := h.orders.OpenNewDraft(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

// EditOrder handles POST /api/v1/console/orders/:id/drafts
func (h *Handlers) EditOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	draft, err := h.orders.OpenOrderDraft(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

// GetDraft handles GET /api/v1/console/drafts/:draft_id
func (h *Handlers) GetDraft(c *gin.Context) {
	draft, err := h.orders.GetDraft(c.Request.Context(), c.Param("draft_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// UpdateDraft handles PATCH /api/v1/console/drafts/:draft_id
func (h *Handlers) UpdateDraft(c *gin.Context) {
	var req updateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.logger, err)
		return
	}

	draft, err := h.orders.UpdateDraft(c.Request.Context(), c.Param("draft_id"), service.DraftChanges{
		UserID:          req.UserID,
		ShippingAddress: req.ShippingAddress,
		Status:          req.Status,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// AddDraftItem handles POST /api/v1/console/drafts/:draft_id/items
func (h *Handlers) AddDraftItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.logger, err)
		return
	}

	draft, err := h.orders.AddDraftItem(c.Request.Context(), c.Param("draft_id"), req.ProductID, req.Quantity)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// RemoveDraftItem handles DELETE /api/v1/console/drafts/:draft_id/items/:index
func (h *Handlers) RemoveDraftItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}

	draft, err := h.orders.RemoveDraftItem(c.Request.Context(), c.Param("draft_id"), index)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SaveDraft handles POST /api/v1/console/drafts/:draft_id/save
func (h *Handlers) SaveDraft(c *gin.Context) {
	result, err := h.orders.SaveDraft(c.Request.Context(), c.Param("draft_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DiscardDraft handles DELETE /api/v1/console/drafts/:draft_id
func (h *Handlers) DiscardDraft(c *gin.Context) {
	if err := h.orders.DiscardDraft(c.Request.Context(), c.Param("draft_id")); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
