package format

import (
	"fmt"
	"strings"
	"time"
)

// TruncatePreview shortens recent-chat preview text to maxLength runes,
// appending an ellipsis when trimmed.
func TruncatePreview(preview string, maxLength int) string {
	runes := []rune(preview)
	if len(runes) <= maxLength {
		return preview
	}
	return string(runes[:maxLength]) + "..."
}

// RelativeActivity renders a timestamp the way the sidebar displays it:
// "Just now", "3h ago", "2d ago", or the locale date for anything older
// than a week. Unparseable input degrades to "Recently".
func RelativeActivity(timestamp string, now time.Time) string {
	parsed, err := parseTimestamp(timestamp)
	if err != nil {
		return "Recently"
	}

	diff := now.Sub(parsed)
	hours := int(diff.Hours())
	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case hours < 24*7:
		return fmt.Sprintf("%dd ago", hours/24)
	default:
		return parsed.Format("1/2/2006")
	}
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// PreprocessAssistantText normalizes agent output before rendering.
// Performs basic text cleanup for better readability.
func PreprocessAssistantText(text string) string {
	if text == "" {
		return text
	}

	// Replace curly quotes (helps readability)
	text = strings.NewReplacer(
		"“", "\"",
		"”", "\"",
		"‘", "'",
		"’", "'",
	).Replace(text)

	return text
}
