package format

import (
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
)

// ConvertToHTML renders assistant markdown to HTML for the message's
// rendered field. User-authored content is never run through this.
func ConvertToHTML(rawContent string) string {
	text := PreprocessAssistantText(rawContent)
	text = normalizeMarkdownLists(text)
	return strings.TrimSpace(string(markdown.ToHTML([]byte(text), nil, nil)))
}

var numberedListRe = regexp.MustCompile(`^\d+\.\s`)

// normalizeMarkdownLists ensures list items have proper spacing for markdown
// parsing. Markdown requires a blank line before lists, but agents often
// forget this.
func normalizeMarkdownLists(text string) string {
	lines := strings.Split(text, "\n")
	var result []string

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		isListItem := strings.HasPrefix(trimmed, "- ") ||
			strings.HasPrefix(trimmed, "* ") ||
			strings.HasPrefix(trimmed, "+ ") ||
			numberedListRe.MatchString(trimmed)

		if isListItem && i > 0 {
			prevLine := strings.TrimSpace(lines[i-1])
			prevIsListItem := strings.HasPrefix(prevLine, "- ") ||
				strings.HasPrefix(prevLine, "* ") ||
				strings.HasPrefix(prevLine, "+ ") ||
				numberedListRe.MatchString(prevLine)

			if prevLine != "" && !prevIsListItem {
				result = append(result, "")
			}
		}

		result = append(result, line)
	}

	return strings.Join(result, "\n")
}
