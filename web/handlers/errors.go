package handlers

import (
	"net/http"

	apperrors "enabl-chat/errors"

	"github.com/gin-gonic/gin"
)

// respondError maps application errors to HTTP status codes with a JSON
// body the UI can display.
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsInvalidInput(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsAgentUnavailable(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": "The assistant is temporarily unavailable. Please try again."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
	}
}
