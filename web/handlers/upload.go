package handlers

import (
	"fmt"
	"net/http"

	"enabl-chat/web/services"
	"enabl-chat/web/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UploadHandler struct {
	uploadService *services.UploadService
	logger        *zap.Logger
}

func NewUploadHandler(uploadService *services.UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		logger:        logger,
	}
}

// Upload handles POST /api/uploads. Files are validated and described but
// held only by the composer; they travel with the next chat message.
// Per-file validation problems come back on the file entries, not as a
// request failure.
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}
	if maxFiles := h.uploadService.MaxFiles(); len(files) > maxFiles {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Too many files. Maximum is %d per message.", maxFiles),
		})
		return
	}

	results := make([]types.UploadedFile, 0, len(files))
	for _, fileHeader := range files {
		results = append(results, h.uploadService.ProcessUpload(fileHeader))
	}

	c.JSON(http.StatusOK, gin.H{"files": results})
}
