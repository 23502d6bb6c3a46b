package server

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"aimodesearch/pkg/search"
)

func TestFormatResult_Success(t *testing.T) {
	result := search.SearchResult{
		Success:  true,
		Query:    "什么是MCP协议",
		AIAnswer: "MCP协议是一种开放标准。",
		Sources: []search.SearchSource{
			{Title: "Protocol introduction", URL: "https://example.com/mcp"},
			{Title: "Release notes", URL: "https://example.com/notes"},
		},
	}

	text := FormatResult(result)

	assert.Contains(t, text, "## AI Mode Search Results")
	assert.Contains(t, text, "**什么是MCP协议**")
	assert.Contains(t, text, "### Answer")
	assert.Contains(t, text, "MCP协议是一种开放标准。")
	assert.Contains(t, text, "### Sources (2)")
	assert.Contains(t, text, "- [Protocol introduction](https://example.com/mcp)")
	assert.Contains(t, text, "- [Release notes](https://example.com/notes)")
}

func TestFormatResult_CapsSourceLines(t *testing.T) {
	result := search.SearchResult{
		Success:  true,
		Query:    "q",
		AIAnswer: "answer",
	}
	for i := 0; i < 9; i++ {
		result.Sources = append(result.Sources, search.SearchSource{
			Title: fmt.Sprintf("Source title %d", i),
			URL:   fmt.Sprintf("https://example.com/%d", i),
		})
	}

	text := FormatResult(result)

	assert.Contains(t, text, "### Sources (9)", "heading shows the full count")
	assert.Equal(t, maxFormattedSources, strings.Count(text, "\n- ["),
		"only the first %d sources are rendered", maxFormattedSources)
}

func TestFormatResult_NoSources(t *testing.T) {
	result := search.SearchResult{Success: true, Query: "q", AIAnswer: "answer"}

	text := FormatResult(result)

	assert.NotContains(t, text, "### Sources")
}

func TestFormatResult_Failure(t *testing.T) {
	result := search.Failure("the query", "verification required, please run a new search")

	text := FormatResult(result)

	assert.Contains(t, text, "**the query**")
	assert.Contains(t, text, "Search failed: verification required")
	assert.NotContains(t, text, "### Answer")
}
