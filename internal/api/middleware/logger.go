package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/timmy/dailyreel/internal/logger"
)

// RequestIDHeader carries the request ID. An incoming value from a proxy or
// scheduler is kept so its logs line up with ours.
const RequestIDHeader = "X-Request-ID"

// LoggerMiddleware returns a Gin middleware that injects a request-scoped
// logger and logs one completion line per request.
// Parameters:
//   - log: base logger to enrich with request fields.
//   - quietPaths: paths logged at debug level (health probes, scrapes).
//
// Returns:
//   - gin.HandlerFunc: middleware handler.
func LoggerMiddleware(log *logger.Logger, quietPaths ...string) gin.HandlerFunc {
	quiet := make(map[string]bool, len(quietPaths))
	for _, p := range quietPaths {
		quiet[p] = true
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.New().String()
		}

		ctx := log.WithContext(c.Request.Context())
		ctx = logger.WithFields(ctx, logger.Fields{
			logger.FieldRequestID: requestID,
			logger.FieldComponent: "api",
		})
		c.Request = c.Request.WithContext(ctx)
		c.Set("logger", logger.FromContext(ctx))
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		entry := logger.With(logger.Fields{
			logger.FieldStatus:     status,
			logger.FieldDurationMs: time.Since(start).Milliseconds(),
			logger.FieldSize:       c.Writer.Size(),
		})
		if subject, ok := c.Get(AuthSubjectKey); ok {
			entry = entry.With(logger.Fields{"auth_subject": subject})
		}

		switch {
		case status >= 500:
			entry.Warn(ctx, "Request failed: method=%s, path=%s", c.Request.Method, path)
		case quiet[path]:
			logger.CtxDebug(ctx, "Request completed: method=%s, path=%s, status=%d", c.Request.Method, path, status)
		default:
			entry.Info(ctx, "Request completed: method=%s, path=%s, client_ip=%s", c.Request.Method, path, c.ClientIP())
		}
	}
}
