package handlers

import (
	"net/http"

	"recipe-manager-api/models"

	"github.com/gin-gonic/gin"
)

// Health reports liveness and whether the database answers
func (h *Handler) Health(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":  status,
		"service": "Recipe Manager API",
		"version": "1.0.0",
	})
}

// Welcome lists the entry points and the recipe categories
func (h *Handler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":    "Welcome to the Recipe Manager API",
		"health":     "/health",
		"metrics":    "/metrics",
		"categories": models.Categories,
	})
}
