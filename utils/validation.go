package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// SanitizeFilename cleans filename for safe handling by removing dangerous
// characters and limiting length. It trims spaces and dots, removes parent
// directory references, and filters out non-alphanumeric characters except
// for safe punctuation.
func SanitizeFilename(filename string) string {
	sanitized := strings.Trim(filename, " .")
	sanitized = strings.ReplaceAll(sanitized, "..", "")
	reg := regexp.MustCompile(`[^a-zA-Z0-9._\s-]`)
	sanitized = reg.ReplaceAllString(sanitized, "")
	if len(sanitized) > 255 {
		sanitized = sanitized[:255]
	}
	return sanitized
}

// GenerateMessageID creates a unique message identifier using UUID v4.
func GenerateMessageID() string {
	return uuid.New().String()
}
