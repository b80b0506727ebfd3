package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KbDoc indexing states. Transitions are driven solely by the outcome of the
// single outbound call to the indexing service:
// PENDING(implicit) -> INDEXING -> INDEXED | FAILED.
const (
	KbDocStatusPending  = "PENDING"
	KbDocStatusIndexing = "INDEXING"
	KbDocStatusIndexed  = "INDEXED"
	KbDocStatusFailed   = "FAILED"
)

// KbDoc stores document metadata only; the chunked content and embedding
// vectors live in the external indexing service.
type KbDoc struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;column:project_id;not null;index" json:"project_id"`
	Project   *Project  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	Title     string    `gorm:"column:title;size:255;not null" json:"title"`
	// Original content is kept so the document can be re-indexed without a
	// re-upload.
	Content      string    `gorm:"column:content;type:text" json:"content,omitempty"`
	Status       string    `gorm:"column:status;size:20;not null" json:"status"`
	ChunksCount  int       `gorm:"column:chunks_count;not null;default:0" json:"chunks_count"`
	ErrorMessage string    `gorm:"column:error_message;type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (KbDoc) TableName() string { return "kb_docs" }

func (d *KbDoc) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Status == "" {
		d.Status = KbDocStatusPending
	}
	return nil
}
