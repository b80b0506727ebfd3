package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptops/platform-api/internal/clients/indexer"
	"github.com/promptops/platform-api/internal/clients/redis"
	"github.com/promptops/platform-api/internal/platform/apierr"
	"github.com/promptops/platform-api/internal/platform/logger"
	"github.com/promptops/platform-api/internal/repos"
	"github.com/promptops/platform-api/internal/types"
	"github.com/promptops/platform-api/internal/validate"
)

const defaultSearchTopK = 5

// KbService fronts the external indexing service. Documents are persisted
// locally first; indexing outcome is recorded on the row. Upload never fails
// because the indexer is down -- the document just lands in FAILED. Search is
// the opposite: an unreachable indexer is surfaced to the caller as a bad
// gateway, because there is no local fallback for retrieval.
type KbService interface {
	UploadAndIndex(ctx context.Context, projectID uuid.UUID, title, content string) (*types.KbDoc, error)
	Search(ctx context.Context, projectID uuid.UUID, query string, topK int, generateAnswer bool) (json.RawMessage, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*types.KbDoc, error)
	GetByID(ctx context.Context, docID uuid.UUID) (*types.KbDoc, error)
	Delete(ctx context.Context, docID uuid.UUID) error
}

type kbService struct {
	db          *gorm.DB
	log         *logger.Logger
	kbDocRepo   repos.KbDocRepo
	projectRepo repos.ProjectRepo
	idx         indexer.Client
	cache       redis.SearchCache
	cacheTTL    time.Duration
}

// NewKbService wires the gateway. cache may be nil, in which case every
// search goes straight to the indexer.
func NewKbService(db *gorm.DB, log *logger.Logger, kbDocRepo repos.KbDocRepo, projectRepo repos.ProjectRepo, idx indexer.Client, cache redis.SearchCache, cacheTTL time.Duration) KbService {
	return &kbService{
		db:          db,
		log:         log.With("service", "KbService"),
		kbDocRepo:   kbDocRepo,
		projectRepo: projectRepo,
		idx:         idx,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

func (ks *kbService) UploadAndIndex(ctx context.Context, projectID uuid.UUID, title, content string) (*types.KbDoc, error) {
	title = strings.TrimSpace(title)
	if vErrs := validate.KbDoc(title, content); len(vErrs) > 0 {
		return nil, vErrs
	}
	if err := ks.requireProject(ctx, projectID); err != nil {
		return nil, err
	}

	doc := &types.KbDoc{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     title,
		Content:   content,
		Status:    types.KbDocStatusPending,
	}
	if _, err := ks.kbDocRepo.Create(ctx, nil, []*types.KbDoc{doc}); err != nil {
		return nil, apierr.Internal(err)
	}

	doc.Status = types.KbDocStatusIndexing
	if _, err := ks.kbDocRepo.Update(ctx, nil, doc); err != nil {
		return nil, apierr.Internal(err)
	}

	result, err := ks.idx.Index(ctx, indexer.IndexRequest{
		ProjectID: projectID,
		DocID:     doc.ID,
		Title:     title,
		Content:   content,
	})
	switch {
	case err != nil:
		// Transport or protocol failure. The upload itself still succeeds;
		// the row records why indexing did not happen.
		doc.Status = types.KbDocStatusFailed
		doc.ErrorMessage = fmt.Sprintf("indexing call failed: %v", err)
		ks.log.Warn("Indexing call failed", "doc_id", doc.ID.String(), "error", err)
	case result.Status == indexer.StatusSuccess:
		doc.Status = types.KbDocStatusIndexed
		doc.ChunksCount = result.ChunksCount
		doc.ErrorMessage = ""
	default:
		doc.Status = types.KbDocStatusFailed
		doc.ErrorMessage = result.Message
	}
	if _, err := ks.kbDocRepo.Update(ctx, nil, doc); err != nil {
		return nil, apierr.Internal(err)
	}
	ks.log.Info("Document uploaded", "doc_id", doc.ID.String(), "status", doc.Status)
	return doc, nil
}

func (ks *kbService) Search(ctx context.Context, projectID uuid.UUID, query string, topK int, generateAnswer bool) (json.RawMessage, error) {
	query = strings.TrimSpace(query)
	if vErrs := validate.KbSearch(query, topK); len(vErrs) > 0 {
		return nil, vErrs
	}
	if topK == 0 {
		topK = defaultSearchTopK
	}
	if err := ks.requireProject(ctx, projectID); err != nil {
		return nil, err
	}

	cacheKey := searchCacheKey(projectID, query, topK, generateAnswer)
	if ks.cache != nil {
		if cached, hit, err := ks.cache.Get(ctx, cacheKey); err != nil {
			ks.log.Warn("Search cache read failed", "error", err)
		} else if hit {
			return cached, nil
		}
	}

	raw, err := ks.idx.Retrieve(ctx, indexer.RetrieveRequest{
		ProjectID:      projectID,
		Query:          query,
		TopK:           topK,
		GenerateAnswer: generateAnswer,
	})
	if err != nil {
		return nil, apierr.BadGateway("knowledge base search unavailable: %v", err)
	}

	if ks.cache != nil {
		if err := ks.cache.Set(ctx, cacheKey, raw, ks.cacheTTL); err != nil {
			ks.log.Warn("Search cache write failed", "error", err)
		}
	}
	return raw, nil
}

func (ks *kbService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*types.KbDoc, error) {
	if err := ks.requireProject(ctx, projectID); err != nil {
		return nil, err
	}
	docs, err := ks.kbDocRepo.GetByProjectIDs(ctx, nil, []uuid.UUID{projectID})
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if docs == nil {
		docs = []*types.KbDoc{}
	}
	return docs, nil
}

func (ks *kbService) GetByID(ctx context.Context, docID uuid.UUID) (*types.KbDoc, error) {
	docs, err := ks.kbDocRepo.GetByIDs(ctx, nil, []uuid.UUID{docID})
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if len(docs) == 0 {
		return nil, apierr.NotFound("document not found with id: %s", docID)
	}
	return docs[0], nil
}

// Delete removes the local row only. Vectors already pushed to the indexing
// service are left behind; retrieval may keep returning chunks for deleted
// documents until the index is rebuilt.
func (ks *kbService) Delete(ctx context.Context, docID uuid.UUID) error {
	if _, err := ks.GetByID(ctx, docID); err != nil {
		return err
	}
	if err := ks.kbDocRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{docID}); err != nil {
		return apierr.Internal(err)
	}
	ks.log.Info("Document deleted", "doc_id", docID.String())
	return nil
}

func (ks *kbService) requireProject(ctx context.Context, projectID uuid.UUID) error {
	projects, err := ks.projectRepo.GetByIDs(ctx, nil, []uuid.UUID{projectID})
	if err != nil {
		return apierr.Internal(err)
	}
	if len(projects) == 0 {
		return apierr.NotFound("project not found with id: %s", projectID)
	}
	return nil
}

func searchCacheKey(projectID uuid.UUID, query string, topK int, generateAnswer bool) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%t", projectID, query, topK, generateAnswer)))
	return hex.EncodeToString(sum[:])
}
