package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProjectStatusActive   = "ACTIVE"
	ProjectStatusArchived = "ARCHIVED"
	ProjectStatusDeleted  = "DELETED"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;size:100;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	// Owner is set once at creation and never reassigned.
	OwnerID   uuid.UUID `gorm:"type:uuid;column:owner_id;not null;index" json:"owner_id"`
	Owner     *User     `gorm:"foreignKey:OwnerID;references:ID" json:"owner,omitempty"`
	Status    string    `gorm:"column:status;size:20;not null;default:'ACTIVE'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProjectStatusActive
	}
	return nil
}
