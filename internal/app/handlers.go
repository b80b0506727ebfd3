package app

import (
	"github.com/promptops/platform-api/internal/handlers"
	"github.com/promptops/platform-api/internal/platform/logger"
)

type Handlers struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Project *handlers.ProjectHandler
	Kb      *handlers.KbHandler
	Audit   *handlers.AuditHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  handlers.NewHealthHandler(),
		Auth:    handlers.NewAuthHandler(serviceset.Auth, serviceset.Audit),
		Project: handlers.NewProjectHandler(serviceset.Project, serviceset.Audit),
		Kb:      handlers.NewKbHandler(serviceset.Kb, serviceset.Audit),
		Audit:   handlers.NewAuditHandler(serviceset.Audit),
	}
}
