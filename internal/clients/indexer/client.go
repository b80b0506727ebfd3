package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/promptops/platform-api/internal/platform/logger"
)

const maxErrorBodyBytes = 1024

// Index outcome statuses on the wire.
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Client talks to the external indexing/retrieval service. The service owns
// chunking, embedding, vector storage and search; this client only moves
// JSON across.
type Client interface {
	Index(ctx context.Context, req IndexRequest) (*IndexResult, error)
	Retrieve(ctx context.Context, req RetrieveRequest) (json.RawMessage, error)
}

type IndexRequest struct {
	ProjectID uuid.UUID
	DocID     uuid.UUID
	Title     string
	Content   string
}

// IndexResult is the structured half of the contract: a 2xx response that
// decoded cleanly. Status FAILED here is a structured failure, not a
// transport error.
type IndexResult struct {
	Status      string `json:"status"`
	ChunksCount int    `json:"chunks_count"`
	Message     string `json:"message"`
}

type RetrieveRequest struct {
	ProjectID      uuid.UUID
	Query          string
	TopK           int
	GenerateAnswer bool
}

type client struct {
	log     *logger.Logger
	baseURL string
	http    *http.Client
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return &client{
		log:     log.With("service", "IndexerClient"),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

func (c *client) Index(ctx context.Context, req IndexRequest) (*IndexResult, error) {
	body := map[string]any{
		"project_id": req.ProjectID.String(),
		"doc_id":     req.DocID.String(),
		"title":      req.Title,
		"content":    req.Content,
	}
	var result IndexResult
	if err := c.doJSON(ctx, "/index", body, &result); err != nil {
		return nil, err
	}
	if result.Status != StatusSuccess && result.Status != StatusFailed {
		return nil, fmt.Errorf("indexer returned unknown status %q", result.Status)
	}
	return &result, nil
}

func (c *client) Retrieve(ctx context.Context, req RetrieveRequest) (json.RawMessage, error) {
	body := map[string]any{
		"project_id":      req.ProjectID.String(),
		"query":           req.Query,
		"top_k":           req.TopK,
		"generate_answer": req.GenerateAnswer,
	}
	var raw json.RawMessage
	if err := c.doJSON(ctx, "/retrieve", body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *client) doJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("indexer %s call failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("indexer %s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
