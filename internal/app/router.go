package app

import (
	"github.com/gin-gonic/gin"

	"github.com/promptops/platform-api/internal/observability"
	"github.com/promptops/platform-api/internal/platform/logger"
	"github.com/promptops/platform-api/internal/server"
)

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers, mw Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:            log,
		CORSOrigins:    cfg.CORSOrigins,
		TracingEnabled: observability.Enabled(),
		HealthHandler:  handlerset.Health,
		AuthHandler:    handlerset.Auth,
		ProjectHandler: handlerset.Project,
		KbHandler:      handlerset.Kb,
		AuditHandler:   handlerset.Audit,
		AuthMiddleware: mw.Auth,
	})
}
