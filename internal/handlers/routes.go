package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the probes at the root and the console API under
// /api/v1/console.
func (h *Handlers) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/live", h.Live)
	r.GET("/version", h.Version)
	r.GET("/metrics", h.Metrics())

	api := r.Group("/api/v1/console")
	{
		api.GET("/dashboard", h.Dashboard)
		api.GET("/audit", h.ListAudit)

		api.GET("/orders", h.ListOrders)
		api.POST("/orders/drafts", h.CreateDraft)
		api.GET("/orders/:id", h.GetOrder)
		api.DELETE("/orders/:id", h.DeleteOrder)
		api.POST("/orders/:id/drafts", h.EditOrder)

		api.GET("/drafts/:draft_id", h.GetDraft)
		api.PATCH("/drafts/:draft_id", h.UpdateDraft)
		api.DELETE("/drafts/:draft_id", h.DiscardDraft)
		api.POST("/drafts/:draft_id/items", h.AddDraftItem)
		api.DELETE("/drafts/:draft_id/items/:index", h.RemoveDraftItem)
		api.POST("/drafts/:draft_id/save", h.SaveDraft)

		api.GET("/users", h.ListUsers)
		api.POST("/users", h.CreateUser)
		api.PUT("/users/:id", h.UpdateUser)
		api.DELETE("/users/:id", h.DeleteUser)

		api.GET("/products", h.ListProducts)
		api.POST("/products", h.CreateProduct)
		api.PUT("/products/:id", h.UpdateProduct)
		api.DELETE("/products/:id", h.DeleteProduct)
	}
}
