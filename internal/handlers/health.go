package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (hh *HealthHandler) Hello(c *gin.Context) {
	c.String(http.StatusOK, "Hello from platform-api")
}

func (hh *HealthHandler) Healthcheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
