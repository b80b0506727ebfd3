package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/promptops/platform-api/internal/platform/apierr"
	"github.com/promptops/platform-api/internal/platform/logger"
	"github.com/promptops/platform-api/internal/repos"
	"github.com/promptops/platform-api/internal/types"
)

// AuditEntry is what callers hand in when recording an action. UserID is nil
// for system-initiated actions.
type AuditEntry struct {
	UserID       *uuid.UUID
	Action       string
	ResourceType string
	ResourceID   *uuid.UUID
	Details      map[string]any
	IPAddress    string
	UserAgent    string
}

type AuditService interface {
	Log(ctx context.Context, entry AuditEntry)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*types.AuditLog, error)
	FindByResource(ctx context.Context, resourceType string, resourceID uuid.UUID) ([]*types.AuditLog, error)
}

type auditService struct {
	db           *gorm.DB
	log          *logger.Logger
	auditLogRepo repos.AuditLogRepo
}

func NewAuditService(db *gorm.DB, log *logger.Logger, auditLogRepo repos.AuditLogRepo) AuditService {
	return &auditService{
		db:           db,
		log:          log.With("service", "AuditService"),
		auditLogRepo: auditLogRepo,
	}
}

// Log records an entry and never returns an error: auditing must not fail
// the operation being audited. Failures are logged and dropped.
func (as *auditService) Log(ctx context.Context, entry AuditEntry) {
	var details datatypes.JSON
	if len(entry.Details) > 0 {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			as.log.Warn("Audit details not serializable", "action", entry.Action, "error", err)
		} else {
			details = datatypes.JSON(raw)
		}
	}

	row := &types.AuditLog{
		ID:           uuid.New(),
		UserID:       entry.UserID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Details:      details,
		IPAddress:    entry.IPAddress,
		UserAgent:    entry.UserAgent,
	}
	if _, err := as.auditLogRepo.Create(ctx, nil, []*types.AuditLog{row}); err != nil {
		as.log.Error("Audit write failed", "action", entry.Action, "resource_type", entry.ResourceType, "error", err)
	}
}

func (as *auditService) FindByUser(ctx context.Context, userID uuid.UUID) ([]*types.AuditLog, error) {
	entries, err := as.auditLogRepo.GetByUserIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if entries == nil {
		entries = []*types.AuditLog{}
	}
	return entries, nil
}

func (as *auditService) FindByResource(ctx context.Context, resourceType string, resourceID uuid.UUID) ([]*types.AuditLog, error) {
	entries, err := as.auditLogRepo.GetByResource(ctx, nil, resourceType, resourceID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if entries == nil {
		entries = []*types.AuditLog{}
	}
	return entries, nil
}
