package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/errors"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/middleware"
)

// handleError writes the response for a failed operation. Backend
// rejections keep their status and message so the operator sees what the
// service said.
func handleError(c *gin.Context, err error) {
	var (
		verrs      errors.ValidationErrors
		verr       *errors.ValidationError
		serviceErr *errors.ServiceError
		transport  *errors.TransportError
	)

	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   verrs.Error(),
			"details": verrs.Fields(),
		})

	case errors.As(err, &verr):
		body := gin.H{"error": verr.Message, "field": verr.Field}
		if len(verr.Details) > 0 {
			body["details"] = verr.Details
		}
		c.JSON(http.StatusBadRequest, body)

	case errors.Is(err, errors.ErrReadOnly),
		errors.Is(err, errors.ErrStatusNotAssignable),
		errors.Is(err, errors.ErrDeleteNotAllowed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, errors.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.As(err, &serviceErr):
		c.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})

	case errors.As(err, &transport):
		logging.NewLoggerV2("handlers").Error("Backend unreachable", logging.Fields{
			"service":    transport.Service,
			"operation":  transport.Operation,
			"request_id": middleware.RequestIDFromContext(c.Request.Context()),
			"error":      transport.Err,
		})
		c.JSON(http.StatusBadGateway, gin.H{"error": transport.Error()})

	case errors.Is(err, errors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})

	default:
		logging.NewLoggerV2("handlers").Error("Unhandled error", logging.Fields{
			"path":  c.FullPath(),
			"error": err,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
