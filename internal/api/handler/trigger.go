package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/dailyreel/internal/domain"
	"github.com/timmy/dailyreel/internal/logger"
	"github.com/timmy/dailyreel/internal/service"
)

// RunTrigger starts one recorded upload run.
type RunTrigger interface {
	Run(ctx context.Context, rc service.RunContext) (domain.RunResult, error)
}

// TriggerHandler serves the scheduled and manual run endpoints.
type TriggerHandler struct {
	runner RunTrigger
}

// NewTriggerHandler creates a new trigger handler.
// Parameters:
//   - runner: recorded run entry point.
// Returns:
//   - *TriggerHandler: initialized handler.
func NewTriggerHandler(runner RunTrigger) *TriggerHandler {
	return &TriggerHandler{runner: runner}
}

// Cron handles the scheduled trigger. A skipped run answers 500 so the
// scheduler records the failure.
func (h *TriggerHandler) Cron(c *gin.Context) {
	h.run(c, service.RunContext{Manual: false}, http.StatusInternalServerError)
}

// Manual handles the dashboard trigger. A skipped run answers 422.
func (h *TriggerHandler) Manual(c *gin.Context) {
	h.run(c, service.RunContext{Manual: true}, http.StatusUnprocessableEntity)
}

func (h *TriggerHandler) run(c *gin.Context, rc service.RunContext, skippedStatus int) {
	ctx := c.Request.Context()
	logger.CtxInfo(ctx, "Upload run requested: manual=%v, client_ip=%s", rc.Manual, c.ClientIP())

	result, err := h.runner.Run(ctx, rc)
	if err != nil {
		if errors.Is(err, service.ErrRunInProgress) {
			logger.CtxWarn(ctx, "Upload run rejected: already running, manual=%v", rc.Manual)
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.FromContext(ctx).WithError(err).Error("Upload run could not start")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(StatusFor(result, skippedStatus), result)
}

// StatusFor maps a run result to an HTTP status code.
func StatusFor(result domain.RunResult, skippedStatus int) int {
	switch result.(type) {
	case *domain.Uploaded:
		return http.StatusOK
	default:
		return skippedStatus
	}
}
