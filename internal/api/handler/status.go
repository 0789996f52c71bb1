package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/dailyreel/internal/service"
)

// StatusHandler reports configuration health and the pending queue.
type StatusHandler struct {
	status *service.StatusService
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(status *service.StatusService) *StatusHandler {
	return &StatusHandler{status: status}
}

// Status returns the current AgentStatus.
func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.status.Status(c.Request.Context()))
}
