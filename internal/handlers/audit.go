package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/promptops/platform-api/internal/platform/apierr"
	"github.com/promptops/platform-api/internal/platform/ctxutil"
	"github.com/promptops/platform-api/internal/services"
)

type AuditHandler struct {
	auditService services.AuditService
}

func NewAuditHandler(auditService services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListByResource serves GET /audit/logs?resource_type=PROJECT&resource_id=...
func (ah *AuditHandler) ListByResource(c *gin.Context) {
	resourceType := c.Query("resource_type")
	if resourceType == "" {
		RespondError(c, apierr.BadRequest("resource_type is required"))
		return
	}
	resourceID, err := uuid.Parse(c.Query("resource_id"))
	if err != nil {
		RespondError(c, apierr.BadRequest("invalid resource_id"))
		return
	}
	entries, err := ah.auditService.FindByResource(c.Request.Context(), resourceType, resourceID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, entries)
}

// ListMine serves GET /audit/logs/me: the caller's own trail.
func (ah *AuditHandler) ListMine(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apierr.Unauthorized("missing request identity"))
		return
	}
	entries, err := ah.auditService.FindByUser(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, entries)
}
