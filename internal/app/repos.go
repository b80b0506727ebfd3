package app

import (
	"gorm.io/gorm"

	"github.com/promptops/platform-api/internal/platform/logger"
	"github.com/promptops/platform-api/internal/repos"
)

type Repos struct {
	User     repos.UserRepo
	Project  repos.ProjectRepo
	KbDoc    repos.KbDocRepo
	AuditLog repos.AuditLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:     repos.NewUserRepo(db, log),
		Project:  repos.NewProjectRepo(db, log),
		KbDoc:    repos.NewKbDocRepo(db, log),
		AuditLog: repos.NewAuditLogRepo(db, log),
	}
}
