package app

import (
	"gorm.io/gorm"

	"github.com/promptops/platform-api/internal/clients/indexer"
	"github.com/promptops/platform-api/internal/clients/redis"
	"github.com/promptops/platform-api/internal/platform/logger"
	"github.com/promptops/platform-api/internal/services"
)

type Services struct {
	Token   services.TokenService
	Auth    services.AuthService
	Project services.ProjectService
	Kb      services.KbService
	Audit   services.AuditService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	idxCfg, err := indexer.ResolveConfigFromEnv()
	if err != nil {
		return Services{}, err
	}
	idxClient, err := indexer.NewClient(log, idxCfg)
	if err != nil {
		return Services{}, err
	}

	// The search cache is optional: no REDIS_ADDR means searches always hit
	// the indexer.
	var cache redis.SearchCache
	if c, err := redis.NewSearchCache(log); err != nil {
		log.Warn("Search cache disabled", "error", err)
	} else {
		cache = c
	}

	tokenService := services.NewTokenService(log, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	authService := services.NewAuthService(db, log, reposet.User, tokenService)
	projectService := services.NewProjectService(db, log, reposet.Project, reposet.User)
	kbService := services.NewKbService(db, log, reposet.KbDoc, reposet.Project, idxClient, cache, cfg.SearchCacheTTL)
	auditService := services.NewAuditService(db, log, reposet.AuditLog)

	return Services{
		Token:   tokenService,
		Auth:    authService,
		Project: projectService,
		Kb:      kbService,
		Audit:   auditService,
	}, nil
}
