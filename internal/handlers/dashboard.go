package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultAuditLimit = 50

// Dashboard handles GET /api/v1/console/dashboard
func (h *Handlers) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboard.Summary(c.Request.Context()))
}

// ListAudit handles GET /api/v1/console/audit
func (h *Handlers) ListAudit(c *gin.Context) {
	limit := defaultAuditLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	entries, err := h.audit.Recent(c.Request.Context(), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}
