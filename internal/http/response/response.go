package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/stepwise-backend/internal/platform/apierr"
)

// ExposeInternalKey is set on the gin context when 5xx messages may be shown
// to clients.
const ExposeInternalKey = "expose_internal_errors"

type APIError struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type ErrorEnvelope struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

type DataEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	respondError(c, status, APIError{Message: messageFor(c, status, err), Code: code}, err)
}

// RespondAPIError maps typed module errors to their status. Anything else is
// reported as a 500.
func RespondAPIError(c *gin.Context, err error) {
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}
	status := ae.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	respondError(c, status, APIError{
		Message: messageFor(c, status, ae),
		Code:    ae.Code,
		Fields:  ae.Fields,
	}, err)
}

func respondError(c *gin.Context, status int, body APIError, cause error) {
	if status >= http.StatusInternalServerError && cause != nil {
		_ = c.Error(cause)
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Success: false, Error: body})
}

func messageFor(c *gin.Context, status int, err error) string {
	if status >= http.StatusInternalServerError && !c.GetBool(ExposeInternalKey) {
		return "internal server error"
	}
	if err == nil {
		return http.StatusText(status)
	}
	return err.Error()
}

func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataEnvelope{Success: true, Data: data})
}

func RespondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, DataEnvelope{Success: true, Data: data})
}
