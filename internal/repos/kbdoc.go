package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptops/platform-api/internal/platform/logger"
	"github.com/promptops/platform-api/internal/types"
)

type KbDocRepo interface {
	Create(ctx context.Context, tx *gorm.DB, docs []*types.KbDoc) ([]*types.KbDoc, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, docIDs []uuid.UUID) ([]*types.KbDoc, error)
	GetByProjectIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.KbDoc, error)
	Update(ctx context.Context, tx *gorm.DB, doc *types.KbDoc) (*types.KbDoc, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, docIDs []uuid.UUID) error
}

type kbDocRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewKbDocRepo(db *gorm.DB, baseLog *logger.Logger) KbDocRepo {
	return &kbDocRepo{db: db, log: baseLog.With("repo", "KbDocRepo")}
}

func (kr *kbDocRepo) Create(ctx context.Context, tx *gorm.DB, docs []*types.KbDoc) ([]*types.KbDoc, error) {
	transaction := tx
	if transaction == nil {
		transaction = kr.db
	}
	if len(docs) == 0 {
		return []*types.KbDoc{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (kr *kbDocRepo) GetByIDs(ctx context.Context, tx *gorm.DB, docIDs []uuid.UUID) ([]*types.KbDoc, error) {
	transaction := tx
	if transaction == nil {
		transaction = kr.db
	}
	var results []*types.KbDoc
	if len(docIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", docIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (kr *kbDocRepo) GetByProjectIDs(ctx context.Context, tx *gorm.DB, projectIDs []uuid.UUID) ([]*types.KbDoc, error) {
	transaction := tx
	if transaction == nil {
		transaction = kr.db
	}
	var results []*types.KbDoc
	if len(projectIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("project_id IN ?", projectIDs).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (kr *kbDocRepo) Update(ctx context.Context, tx *gorm.DB, doc *types.KbDoc) (*types.KbDoc, error) {
	transaction := tx
	if transaction == nil {
		transaction = kr.db
	}
	if err := transaction.WithContext(ctx).Save(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

func (kr *kbDocRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, docIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = kr.db
	}
	if len(docIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", docIDs).
		Delete(&types.KbDoc{}).Error
}
