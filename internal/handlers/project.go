package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/promptops/platform-api/internal/platform/apierr"
	"github.com/promptops/platform-api/internal/platform/ctxutil"
	"github.com/promptops/platform-api/internal/services"
	"github.com/promptops/platform-api/internal/types"
)

type ProjectHandler struct {
	projectService services.ProjectService
	auditService   services.AuditService
}

func NewProjectHandler(projectService services.ProjectService, auditService services.AuditService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, auditService: auditService}
}

func (ph *ProjectHandler) Create(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apierr.Unauthorized("missing request identity"))
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadBody(c)
		return
	}
	project, err := ph.projectService.Create(c.Request.Context(), req.Name, req.Description, rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	ph.auditService.Log(c.Request.Context(), services.AuditEntry{
		UserID:       &rd.UserID,
		Action:       types.AuditActionCreate,
		ResourceType: types.AuditResourceProject,
		ResourceID:   &project.ID,
		Details:      map[string]any{"name": project.Name},
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
	RespondOK(c, project)
}

func (ph *ProjectHandler) List(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apierr.Unauthorized("missing request identity"))
		return
	}
	projects, err := ph.projectService.ListByOwner(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, projects)
}

func (ph *ProjectHandler) Get(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.BadRequest("invalid project id"))
		return
	}
	project, err := ph.projectService.GetByID(c.Request.Context(), projectID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, project)
}

func (ph *ProjectHandler) Update(c *gin.Context) {
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
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadBody(c)
		return
	}
	project, err := ph.projectService.Update(c.Request.Context(), projectID, req.Name, req.Description)
	if err != nil {
		RespondError(c, err)
		return
	}
	ph.auditService.Log(c.Request.Context(), services.AuditEntry{
		UserID:       &rd.UserID,
		Action:       types.AuditActionUpdate,
		ResourceType: types.AuditResourceProject,
		ResourceID:   &project.ID,
		Details:      map[string]any{"name": project.Name},
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
	RespondOK(c, project)
}

func (ph *ProjectHandler) Delete(c *gin.Context) {
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
	if err := ph.projectService.Delete(c.Request.Context(), projectID); err != nil {
		RespondError(c, err)
		return
	}
	ph.auditService.Log(c.Request.Context(), services.AuditEntry{
		UserID:       &rd.UserID,
		Action:       types.AuditActionDelete,
		ResourceType: types.AuditResourceProject,
		ResourceID:   &projectID,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
	RespondOK(c, gin.H{})
}
