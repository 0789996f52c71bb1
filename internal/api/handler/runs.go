package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timmy/dailyreel/internal/domain"
	"github.com/timmy/dailyreel/internal/logger"
)

const maxRunsLimit = 100

// RunLister reads run history.
type RunLister interface {
	ListRecent(ctx context.Context, limit int) ([]domain.RunRecord, error)
}

// RunsHandler serves run history.
type RunsHandler struct {
	history RunLister
}

// NewRunsHandler creates a new runs handler
func NewRunsHandler(history RunLister) *RunsHandler {
	return &RunsHandler{history: history}
}

// ListRuns returns recent runs, newest first.
// Query: limit (default 20, max 100).
func (h *RunsHandler) ListRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	if limit > maxRunsLimit {
		limit = maxRunsLimit
	}

	runs, err := h.history.ListRecent(c.Request.Context(), limit)
	if err != nil {
		logger.FromContext(c.Request.Context()).WithError(err).Error("Failed to list runs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}
	if runs == nil {
		runs = []domain.RunRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"count": len(runs),
	})
}
