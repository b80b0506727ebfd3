package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/promptops/platform-api/internal/handlers"
	"github.com/promptops/platform-api/internal/middleware"
	"github.com/promptops/platform-api/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	CORSOrigins    []string
	TracingEnabled bool

	HealthHandler  *handlers.HealthHandler
	AuthHandler    *handlers.AuthHandler
	ProjectHandler *handlers.ProjectHandler
	KbHandler      *handlers.KbHandler
	AuditHandler   *handlers.AuditHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLog(cfg.Log))
	router.Use(middleware.CORS(cfg.CORSOrigins))
	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware("platform-api"))
	}

	// Public
	router.GET("/hello", cfg.HealthHandler.Hello)
	router.GET("/healthcheck", cfg.HealthHandler.Healthcheck)
	router.POST("/auth/register", cfg.AuthHandler.Register)
	router.POST("/auth/login", cfg.AuthHandler.Login)

	// Protected
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Projects
	protected.POST("/projects", cfg.ProjectHandler.Create)
	protected.GET("/projects", cfg.ProjectHandler.List)
	protected.GET("/projects/:id", cfg.ProjectHandler.Get)
	protected.PUT("/projects/:id", cfg.ProjectHandler.Update)
	protected.DELETE("/projects/:id", cfg.ProjectHandler.Delete)
	// Knowledge base
	protected.POST("/projects/:id/kb/docs", cfg.KbHandler.Upload)
	protected.GET("/projects/:id/kb/docs", cfg.KbHandler.List)
	protected.GET("/projects/:id/kb/docs/:docId", cfg.KbHandler.Get)
	protected.DELETE("/projects/:id/kb/docs/:docId", cfg.KbHandler.Delete)
	protected.POST("/projects/:id/kb/search", cfg.KbHandler.Search)
	// Audit trail
	protected.GET("/audit/logs", cfg.AuditHandler.ListByResource)
	protected.GET("/audit/logs/me", cfg.AuditHandler.ListMine)

	return router
}
