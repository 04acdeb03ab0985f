package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/percentquiz/scoring-backend/internal/errors"
)

// Per-request store timeouts
const (
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
)

// requestContext derives a bounded context from the incoming request
func requestContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}

// pathID parses the :id path parameter. A non-numeric id cannot name a
// row, so it is answered with 404 like any other unknown id.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondNotFound(c)
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body into obj. An empty body leaves obj at
// its zero value, so every field falls back to its default. Bodies cut off
// by the size limit are answered with 413.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		_ = c.Error(apperrors.InvalidInput("request body too large", err).
			WithDetails(fmt.Sprintf("limit is %d bytes", tooLarge.Limit)))
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		return false
	}

	_ = c.Error(apperrors.InvalidInput("invalid request body", err))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
	return false
}

func respondNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

// respondError maps service errors onto HTTP responses. The error is also
// attached to the gin context for the logging middleware.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch apperrors.Code(err) {
	case apperrors.ErrCodeNotFound:
		respondNotFound(c)
	case apperrors.ErrCodeInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}
