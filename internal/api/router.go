package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/dailyreel/internal/api/handler"
	"github.com/timmy/dailyreel/internal/api/middleware"
	"github.com/timmy/dailyreel/internal/config"
	"github.com/timmy/dailyreel/internal/logger"
	"github.com/timmy/dailyreel/internal/service"
)

// Dependencies groups what the router wires into handlers.
type Dependencies struct {
	Recorder *service.RunRecorder
	Status   *service.StatusService
	History  handler.RunLister // nil disables /api/runs
	Metrics  http.Handler      // nil disables the metrics route
	Logger   *logger.Logger
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(cfg *config.ServerConfig, metricsPath string, deps Dependencies) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	log := deps.Logger
	if log == nil {
		log = logger.GetDefault()
	}

	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log, "/health", metricsPath))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.CORS.AllowAllOrigins,
	}))

	requireToken := middleware.RequireToken(middleware.AuthConfig{
		CronSecret: cfg.Auth.CronSecret,
		JWTSecret:  cfg.Auth.JWTSecret,
	})

	healthHandler := handler.NewHealthHandler(deps.Recorder.Running)
	triggerHandler := handler.NewTriggerHandler(deps.Recorder)
	statusHandler := handler.NewStatusHandler(deps.Status)
	dashboardHandler := handler.NewDashboardHandler()

	r.GET("/", dashboardHandler.Page)
	r.GET("/health", healthHandler.Health)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/cron/daily", requireToken, triggerHandler.Cron)
		apiGroup.POST("/run", requireToken, triggerHandler.Manual)
		apiGroup.GET("/status", statusHandler.Status)

		if deps.History != nil {
			runsHandler := handler.NewRunsHandler(deps.History)
			apiGroup.GET("/runs", runsHandler.ListRuns)
		}
	}

	if deps.Metrics != nil {
		r.GET(metricsPath, gin.WrapH(deps.Metrics))
	}

	return r
}
