package services

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"enabl-chat/config"
	"enabl-chat/utils"
	"enabl-chat/web/types"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// acceptedTypes maps allowed file extensions to their MIME types. Matches
// what the chat composer accepts.
var acceptedTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

type UploadService struct {
	cfg    *config.Config
	logger *zap.Logger
}

func NewUploadService(cfg *config.Config, logger *zap.Logger) *UploadService {
	return &UploadService{cfg: cfg, logger: logger}
}

// MaxFiles returns how many attachments one message may carry.
func (us *UploadService) MaxFiles() int {
	return us.cfg.MaxUploadFiles
}

// ProcessUpload validates one attachment and builds its descriptor.
// Validation problems are attached to the returned file's Error field
// rather than failing the request, so the composer can show per-file
// feedback.
func (us *UploadService) ProcessUpload(fileHeader *multipart.FileHeader) types.UploadedFile {
	sanitized := utils.SanitizeFilename(fileHeader.Filename)
	result := types.UploadedFile{
		ID:   utils.GenerateMessageID(),
		Name: sanitized,
		Size: fileHeader.Size,
	}

	if sanitized == "" {
		result.Error = "Invalid or unsafe filename"
		return result
	}

	ext := strings.ToLower(filepath.Ext(sanitized))
	mimeType, ok := acceptedTypes[ext]
	if !ok {
		result.Error = "Unsupported file type. Please upload images, PDF, Word, or text files"
		return result
	}
	result.Type = mimeType

	maxBytes := us.cfg.MaxUploadSizeMB * 1024 * 1024
	if fileHeader.Size > maxBytes {
		result.Error = fmt.Sprintf("File too large. Maximum size is %dMB", us.cfg.MaxUploadSizeMB)
		return result
	}

	switch {
	case strings.HasPrefix(mimeType, "image/"):
		preview, err := us.imagePreview(fileHeader, mimeType)
		if err != nil {
			us.logger.Warn("Failed to build image preview",
				zap.Error(err),
				zap.String("filename", sanitized))
		} else {
			result.Preview = preview
		}
	case ext == ".pdf":
		preview, err := us.pdfPreview(fileHeader)
		if err != nil {
			us.logger.Warn("Failed to extract PDF preview",
				zap.Error(err),
				zap.String("filename", sanitized))
		} else {
			result.Preview = preview
		}
	}

	return result
}

// imagePreview builds a data URL so the composer can show a thumbnail
// without a second round trip.
func (us *UploadService) imagePreview(fileHeader *multipart.FileHeader, mimeType string) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded image: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read uploaded image: %w", err)
	}

	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
}

// pdfPreview extracts the leading text of a PDF as its preview snippet.
func (us *UploadService) pdfPreview(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded pdf: %w", err)
	}
	defer src.Close()

	reader, err := pdf.NewReader(src, fileHeader.Size)
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	limit := us.cfg.PDFPreviewRunes
	if limit <= 0 {
		limit = 280
	}
	// Read a little extra so rune truncation has room to work with.
	buf := make([]byte, limit*4)
	n, err := io.ReadFull(textReader, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	text := strings.Join(strings.Fields(string(buf[:n])), " ")
	runes := []rune(text)
	if len(runes) > limit {
		text = string(runes[:limit]) + "..."
	}
	return text, nil
}
