package booktools

import (
	"regexp"
	"strings"
)

var markdownFencePattern = regexp.MustCompile(`(?s)^\s*` + "```" + `(?:json)?\s*\n(.*?)\n\s*` + "```" + `\s*$`)

// CleanJSONContent strips markdown code fences and surrounding noise from
// model output. Models occasionally wrap JSON in ```json fences despite
// instructions not to.
func CleanJSONContent(content string) string {
	content = strings.TrimSpace(content)

	if matches := markdownFencePattern.FindStringSubmatch(content); len(matches) > 1 {
		content = matches[1]
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	return strings.TrimSpace(content)
}
