// Package respond maps service errors onto the JSON error shape every
// handler returns.
package respond

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tunakleague/collabin-backend/internal/domain"
	"github.com/tunakleague/collabin-backend/internal/observability"
)

// Status returns the HTTP status for err.
func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidName), errors.Is(err, domain.ErrInvalidDecision):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error writes {"error": ...} with the status mapped from err. Internal
// errors are logged and not echoed to the client.
func Error(c *gin.Context, operation string, err error) {
	status := Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		observability.NewLogger(c.Request.Context()).LogError(operation, err)
		msg = "internal error"
	}
	c.JSON(status, gin.H{"error": msg})
}

// IDParam parses a positive integer path parameter, answering 400 itself
// when it is malformed.
func IDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
