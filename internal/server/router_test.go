package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/promptops/platform-api/internal/clients/indexer"
	"github.com/promptops/platform-api/internal/handlers"
	"github.com/promptops/platform-api/internal/middleware"
	"github.com/promptops/platform-api/internal/platform/logger"
	"github.com/promptops/platform-api/internal/repos"
	"github.com/promptops/platform-api/internal/services"
	"github.com/promptops/platform-api/internal/types"
)

type fakeIndexer struct {
	indexResult *indexer.IndexResult
	retrieveRaw json.RawMessage
}

func (f *fakeIndexer) Index(ctx context.Context, req indexer.IndexRequest) (*indexer.IndexResult, error) {
	return f.indexResult, nil
}

func (f *fakeIndexer) Retrieve(ctx context.Context, req indexer.RetrieveRequest) (json.RawMessage, error) {
	return f.retrieveRaw, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.User{}, &types.Project{}, &types.KbDoc{}, &types.AuditLog{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	userRepo := repos.NewUserRepo(db, log)
	projectRepo := repos.NewProjectRepo(db, log)
	kbDocRepo := repos.NewKbDocRepo(db, log)
	auditLogRepo := repos.NewAuditLogRepo(db, log)

	idx := &fakeIndexer{
		indexResult: &indexer.IndexResult{Status: indexer.StatusSuccess, ChunksCount: 3},
		retrieveRaw: json.RawMessage(`{"results":[]}`),
	}

	tokenService := services.NewTokenService(log, "test-secret", time.Hour)
	authService := services.NewAuthService(db, log, userRepo, tokenService)
	projectService := services.NewProjectService(db, log, projectRepo, userRepo)
	kbService := services.NewKbService(db, log, kbDocRepo, projectRepo, idx, nil, time.Minute)
	auditService := services.NewAuditService(db, log, auditLogRepo)

	return NewRouter(RouterConfig{
		Log:            log,
		HealthHandler:  handlers.NewHealthHandler(),
		AuthHandler:    handlers.NewAuthHandler(authService, auditService),
		ProjectHandler: handlers.NewProjectHandler(projectService, auditService),
		KbHandler:      handlers.NewKbHandler(kbService, auditService),
		AuditHandler:   handlers.NewAuditHandler(auditService),
		AuthMiddleware: middleware.NewAuthMiddleware(log, authService),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPublicRoutes(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthcheck", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: code=%d body=%q", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodGet, "/hello", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("hello: code=%d", rec.Code)
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/projects", "/audit/logs/me"} {
		rec := doJSON(t, router, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: want=401 got=%d", path, rec.Code)
		}
	}
}

func TestFullFlow(t *testing.T) {
	router := newTestRouter(t)

	// Register
	rec := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register: code=%d body=%s", rec.Code, rec.Body.String())
	}

	// Login
	rec = doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]any{
		"username": "alice",
		"password": "password1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: code=%d body=%s", rec.Code, rec.Body.String())
	}
	var loginResp struct {
		Token    string `json:"token"`
		UserID   string `json:"userId"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if loginResp.Token == "" || loginResp.Username != "alice" {
		t.Fatalf("login response: %+v", loginResp)
	}
	token := loginResp.Token

	// Create a project
	rec = doJSON(t, router, http.MethodPost, "/projects", token, map[string]any{
		"name":        "Demo",
		"description": "demo project",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create project: code=%d body=%s", rec.Code, rec.Body.String())
	}
	var project types.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &project); err != nil {
		t.Fatalf("decode project: %v", err)
	}

	// Upload a document
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/projects/%s/kb/docs", project.ID), token, map[string]any{
		"title":   "Guide",
		"content": "hello world",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("upload: code=%d body=%s", rec.Code, rec.Body.String())
	}
	var doc types.KbDoc
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode doc: %v", err)
	}
	if doc.Status != types.KbDocStatusIndexed || doc.ChunksCount != 3 {
		t.Fatalf("doc: %+v", doc)
	}

	// Search
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/projects/%s/kb/search", project.ID), token, map[string]any{
		"query": "hello",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("search: code=%d body=%s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != `{"results":[]}` {
		t.Fatalf("search payload altered: %s", rec.Body.String())
	}

	// Audit trail reflects the actions above
	rec = doJSON(t, router, http.MethodGet, "/audit/logs/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("audit logs: code=%d body=%s", rec.Code, rec.Body.String())
	}
	var entries []types.AuditLog
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode audit: %v", err)
	}
	// register, login, project create, upload, search
	if len(entries) != 5 {
		t.Fatalf("audit entries: want=5 got=%d", len(entries))
	}
}

func TestErrorEnvelope(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]any{
		"username": "ghost",
		"password": "whatever1",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("login unknown user: want=401 got=%d", rec.Code)
	}
	var envelope struct {
		Status    int       `json:"status"`
		Message   string    `json:"message"`
		Timestamp time.Time `json:"timestamp"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Status != http.StatusUnauthorized || envelope.Message == "" || envelope.Timestamp.IsZero() {
		t.Fatalf("envelope: %+v", envelope)
	}
}

func TestValidationErrorFields(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]any{
		"username": "",
		"email":    "not-an-email",
		"password": "pw",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("register invalid: want=400 got=%d", rec.Code)
	}
	var envelope struct {
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if len(envelope.Fields) < 3 {
		t.Fatalf("field errors: want>=3 got=%d", len(envelope.Fields))
	}
}
