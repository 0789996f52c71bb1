package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	running func() bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(running func() bool) *HealthHandler {
	return &HealthHandler{running: running}
}

// Health returns the health status of the service
func (h *HealthHandler) Health(c *gin.Context) {
	resp := gin.H{"status": "ok"}
	if h.running != nil {
		resp["runInProgress"] = h.running()
	}
	c.JSON(http.StatusOK, resp)
}
