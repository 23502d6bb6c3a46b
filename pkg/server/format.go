package server

import (
	"fmt"
	"strings"

	"aimodesearch/pkg/search"
)

// maxFormattedSources caps how many reference links appear in the
// formatted output; the full list stays in the result itself.
const maxFormattedSources = 5

// FormatResult renders a search result as Markdown for tool output.
func FormatResult(result search.SearchResult) string {
	if !result.Success {
		return formatFailure(result)
	}

	var b strings.Builder
	b.WriteString("## AI Mode Search Results\n\n")
	fmt.Fprintf(&b, "**%s**\n\n", result.Query)

	b.WriteString("### Answer\n\n")
	b.WriteString(result.AIAnswer)
	b.WriteString("\n")

	if len(result.Sources) > 0 {
		shown := result.Sources
		if len(shown) > maxFormattedSources {
			shown = shown[:maxFormattedSources]
		}
		fmt.Fprintf(&b, "\n### Sources (%d)\n\n", len(result.Sources))
		for _, source := range shown {
			fmt.Fprintf(&b, "- [%s](%s)\n", source.Title, source.URL)
		}
	}

	return b.String()
}

// formatFailure renders a failed result, keeping the query visible so a
// caller can retry it verbatim.
func formatFailure(result search.SearchResult) string {
	var b strings.Builder
	b.WriteString("## AI Mode Search Results\n\n")
	if result.Query != "" {
		fmt.Fprintf(&b, "**%s**\n\n", result.Query)
	}
	fmt.Fprintf(&b, "Search failed: %s\n", result.Error)
	return b.String()
}

// formatError renders an argument validation error.
func formatError(message string) string {
	return "Search failed: " + message + "\n"
}
