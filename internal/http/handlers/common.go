package handlers

import (
	"net/http"

	"truckledger/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// jwtSecret is set once by the router from configuration.
var jwtSecret = []byte("super-secret-key-change-me")

// Configure wires configuration the package-level handlers need.
func Configure(secret string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

// RespondError sends standard error payload with request_id included.
// Keeps backward compatibility by always providing "message".
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "body kosong", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "payload tidak valid", err)
		return false
	}
	return true
}

// dateRangeRequest is shared by every bulk date-ranged operation.
type dateRangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
