package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/promptops/platform-api/internal/services"
	"github.com/promptops/platform-api/internal/types"
)

type AuthHandler struct {
	authService  services.AuthService
	auditService services.AuditService
}

func NewAuthHandler(authService services.AuthService, auditService services.AuditService) *AuthHandler {
	return &AuthHandler{authService: authService, auditService: auditService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadBody(c)
		return
	}
	user, err := ah.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.DisplayName)
	if err != nil {
		RespondError(c, err)
		return
	}
	ah.auditService.Log(c.Request.Context(), services.AuditEntry{
		UserID:       &user.ID,
		Action:       types.AuditActionRegister,
		ResourceType: types.AuditResourceUser,
		ResourceID:   &user.ID,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
	RespondOK(c, user)
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadBody(c)
		return
	}
	token, user, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	ah.auditService.Log(c.Request.Context(), services.AuditEntry{
		UserID:       &user.ID,
		Action:       types.AuditActionLogin,
		ResourceType: types.AuditResourceUser,
		ResourceID:   &user.ID,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
	RespondOK(c, gin.H{
		"token":    token,
		"userId":   user.ID.String(),
		"username": user.Username,
	})
}
