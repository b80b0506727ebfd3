package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/promptops/platform-api/internal/platform/apierr"
	"github.com/promptops/platform-api/internal/validate"
)

// ErrorEnvelope is the error body for every non-2xx JSON response. Fields is
// populated only for validation failures.
type ErrorEnvelope struct {
	Status    int                   `json:"status"`
	Message   string                `json:"message"`
	Timestamp time.Time             `json:"timestamp"`
	Fields    []validate.FieldError `json:"fields,omitempty"`
}

func RespondError(c *gin.Context, err error) {
	var fieldErrs validate.FieldErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, ErrorEnvelope{
			Status:    http.StatusBadRequest,
			Message:   "validation failed",
			Timestamp: time.Now().UTC(),
			Fields:    fieldErrs,
		})
		return
	}

	status := apierr.StatusOf(err)
	msg := "internal server error"
	if status != http.StatusInternalServerError && err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Status:    status,
		Message:   msg,
		Timestamp: time.Now().UTC(),
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondBadBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ErrorEnvelope{
		Status:    http.StatusBadRequest,
		Message:   "invalid request body",
		Timestamp: time.Now().UTC(),
	})
}
