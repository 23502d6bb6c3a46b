package search

import (
	"regexp"
	"strings"
)

var (
	spaceRuns   = regexp.MustCompile(` +`)
	newlineRuns = regexp.MustCompile(`\n+`)
)

// CleanAnswer strips navigation and UI boilerplate from an extracted
// answer span, then normalizes whitespace. The transform is idempotent:
// cleaning already-clean text is a no-op.
func CleanAnswer(text string) string {
	result := text
	// Removing one pattern can splice the surrounding text into a match
	// for another, so the pattern pass repeats until nothing changes.
	// Every removal shrinks the text, so the loop terminates.
	for {
		before := result
		for _, pattern := range navPatterns {
			result = pattern.ReplaceAllString(result, "")
		}
		if result == before {
			break
		}
	}
	result = spaceRuns.ReplaceAllString(result, " ")
	result = newlineRuns.ReplaceAllString(result, "\n")
	return strings.TrimSpace(result)
}
