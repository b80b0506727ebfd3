package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Audit actions and resource types.
const (
	AuditActionCreate   = "CREATE"
	AuditActionUpdate   = "UPDATE"
	AuditActionDelete   = "DELETE"
	AuditActionLogin    = "LOGIN"
	AuditActionRegister = "REGISTER"
	AuditActionUpload   = "UPLOAD"
	AuditActionSearch   = "SEARCH"

	AuditResourceUser    = "USER"
	AuditResourceProject = "PROJECT"
	AuditResourceKb      = "KB"
)

// AuditLog rows are append-only and never mutated after insert.
type AuditLog struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	// Nullable: system-initiated actions have no acting user.
	UserID       *uuid.UUID     `gorm:"type:uuid;column:user_id;index" json:"user_id,omitempty"`
	Action       string         `gorm:"column:action;size:50;not null" json:"action"`
	ResourceType string         `gorm:"column:resource_type;size:50;not null;index:idx_audit_resource,priority:1" json:"resource_type"`
	ResourceID   *uuid.UUID     `gorm:"type:uuid;column:resource_id;index:idx_audit_resource,priority:2" json:"resource_id,omitempty"`
	Details      datatypes.JSON `gorm:"type:jsonb;column:details" json:"details,omitempty"`
	IPAddress    string         `gorm:"column:ip_address;size:45" json:"ip_address,omitempty"`
	UserAgent    string         `gorm:"column:user_agent;size:500" json:"user_agent,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
