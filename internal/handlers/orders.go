package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/errors"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/models"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/service"
)

// ListOrders handles GET /api/v1/console/orders
//
// ?user= narrows to one user's orders on the backend; ?id= then keeps the
// orders whose id contains the value.
func (h *Handlers) ListOrders(c *gin.Context) {
	ctx := c.Request.Context()

	orders, err := h.orders.SearchOrders(ctx, c.Query("user"))
	if err != nil {
		handleError(c, err)
		return
	}
	orders = service.FilterOrdersByID(orders, c.Query("id"))

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder handles GET /api/v1/console/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/v1/console/orders/:id
//
// ?status= carries the status the caller last saw; the order is then not
// fetched first, and a terminal status is refused without any request.
func (h *Handlers) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var (
		orders []models.Order
		err    error
	)
	if status := c.Query("status"); status != "" {
		known := models.OrderStatus(status)
		if !known.Valid() {
			handleError(c, errors.NewValidationError("status", "unknown status "+strconv.Quote(status)))
			return
		}
		orders, err = h.orders.DeleteKnownOrder(c.Request.Context(), &models.Order{ID: id, Status: known})
	} else {
		orders, err = h.orders.DeleteOrder(c.Request.Context(), id)
	}
	if err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("Order deleted", logging.Fields{"order_id": id})
	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}
