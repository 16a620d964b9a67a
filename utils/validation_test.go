package utils

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"normal_filename", "report.pdf", "report.pdf"},
		{"path_traversal", "../../etc/passwd", "etcpasswd"},
		{"special_characters", "my<file>name?.txt", "myfilename.txt"},
		{"leading_trailing_dots", " .hidden. ", "hidden"},
		{"spaces_kept", "lab results 2026.pdf", "lab results 2026.pdf"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeFilenameLength(t *testing.T) {
	long := strings.Repeat("a", 300) + ".txt"
	if got := SanitizeFilename(long); len(got) > 255 {
		t.Errorf("sanitized length = %d, want at most 255", len(got))
	}
}

func TestGenerateMessageID(t *testing.T) {
	first := GenerateMessageID()
	second := GenerateMessageID()
	if first == "" || first == second {
		t.Error("message ids should be non-empty and unique")
	}
}
