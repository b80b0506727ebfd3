package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/promptops/platform-api/internal/platform/apierr"
	"github.com/promptops/platform-api/internal/platform/ctxutil"
	"github.com/promptops/platform-api/internal/services"
	"github.com/promptops/platform-api/internal/types"
)

type KbHandler struct {
	kbService    services.KbService
	auditService services.AuditService
}

func NewKbHandler(kbService services.KbService, auditService services.AuditService) *KbHandler {
	return &KbHandler{kbService: kbService, auditService: auditService}
}

func (kh *KbHandler) Upload(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apierr.Unauthorized("missing request identity"))
		return
	}
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.BadRequest("invalid project id"))
		return
	}
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadBody(c)
		return
	}
	doc, err := kh.kbService.UploadAndIndex(c.Request.Context(), projectID, req.Title, req.Content)
	if err != nil {
		RespondError(c, err)
		return
	}
	kh.auditService.Log(c.Request.Context(), services.AuditEntry{
		UserID:       &rd.UserID,
		Action:       types.AuditActionUpload,
		ResourceType: types.AuditResourceKb,
		ResourceID:   &doc.ID,
		Details:      map[string]any{"project_id": projectID.String(), "status": doc.Status},
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
	RespondOK(c, doc)
}

func (kh *KbHandler) List(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.BadRequest("invalid project id"))
		return
	}
	docs, err := kh.kbService.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, docs)
}

func (kh *KbHandler) Get(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("docId"))
	if err != nil {
		RespondError(c, apierr.BadRequest("invalid document id"))
		return
	}
	doc, err := kh.kbService.GetByID(c.Request.Context(), docID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, doc)
}

func (kh *KbHandler) Delete(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apierr.Unauthorized("missing request identity"))
		return
	}
	docID, err := uuid.Parse(c.Param("docId"))
	if err != nil {
		RespondError(c, apierr.BadRequest("invalid document id"))
		return
	}
	if err := kh.kbService.Delete(c.Request.Context(), docID); err != nil {
		RespondError(c, err)
		return
	}
	kh.auditService.Log(c.Request.Context(), services.AuditEntry{
		UserID:       &rd.UserID,
		Action:       types.AuditActionDelete,
		ResourceType: types.AuditResourceKb,
		ResourceID:   &docID,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
	RespondOK(c, gin.H{})
}

func (kh *KbHandler) Search(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apierr.Unauthorized("missing request identity"))
		return
	}
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.BadRequest("invalid project id"))
		return
	}
	var req struct {
		Query          string `json:"query"`
		TopK           int    `json:"topK"`
		GenerateAnswer *bool  `json:"generateAnswer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadBody(c)
		return
	}
	// Answer generation is on unless the caller opts out.
	generateAnswer := true
	if req.GenerateAnswer != nil {
		generateAnswer = *req.GenerateAnswer
	}
	raw, err := kh.kbService.Search(c.Request.Context(), projectID, req.Query, req.TopK, generateAnswer)
	if err != nil {
		RespondError(c, err)
		return
	}
	kh.auditService.Log(c.Request.Context(), services.AuditEntry{
		UserID:       &rd.UserID,
		Action:       types.AuditActionSearch,
		ResourceType: types.AuditResourceKb,
		ResourceID:   &projectID,
		Details:      map[string]any{"top_k": req.TopK},
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
	// The retrieval payload is forwarded verbatim; its shape belongs to the
	// indexing service.
	c.Data(http.StatusOK, "application/json", []byte(raw))
}
