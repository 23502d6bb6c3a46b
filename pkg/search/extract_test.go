package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_AnswerBetweenLabels(t *testing.T) {
	pageText := "导航栏 其他内容 AI 模式 MCP协议是一种开放标准，用于连接AI模型与外部工具。搜索结果 第一条普通结果"

	result := Extract(pageText, nil)

	require.True(t, result.Success)
	assert.Contains(t, result.AIAnswer, "MCP协议是一种开放标准")
	assert.NotContains(t, result.AIAnswer, "第一条普通结果")
}

func TestExtract_EndMarkerFallback(t *testing.T) {
	// No results label; the span should stop at the related-searches
	// end marker instead.
	pageText := "AI Mode " + strings.Repeat("answer body text ", 20) +
		"Related searches something else entirely"

	result := Extract(pageText, nil)

	require.True(t, result.Success)
	assert.Contains(t, result.AIAnswer, "answer body text")
	assert.NotContains(t, result.AIAnswer, "something else entirely")
}

func TestExtract_NoLabelBestEffort(t *testing.T) {
	pageText := "页面没有任何模式标签，但仍然包含有用的内容，提取不应失败。"

	result := Extract(pageText, nil)

	require.True(t, result.Success)
	assert.NotEmpty(t, result.AIAnswer)
}

func TestExtract_IncludesFilteredSources(t *testing.T) {
	links := []Link{
		{Text: "Model Context Protocol introduction", Href: "https://example.com/mcp"},
		{Text: "Google internal navigation link", Href: "https://www.google.com/preferences"},
		{Text: "Model Context Protocol introduction duplicate", Href: "https://example.com/mcp"},
	}

	result := Extract("AI 模式 协议说明。搜索结果", links)

	require.True(t, result.Success)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "https://example.com/mcp", result.Sources[0].URL)
}

func TestFilterSources(t *testing.T) {
	t.Run("drops engine domains", func(t *testing.T) {
		links := []Link{
			{Text: "Google sign-in page link", Href: "https://accounts.google.com/signin"},
			{Text: "Actual cited source page", Href: "https://example.org/article"},
		}
		sources := FilterSources(links, MaxSources)
		require.Len(t, sources, 1)
		assert.Equal(t, "https://example.org/article", sources[0].URL)
	})

	t.Run("drops short titles", func(t *testing.T) {
		links := []Link{
			{Text: "icon", Href: "https://example.org/icon"},
			{Text: "图标", Href: "https://example.org/zh-icon"},
			{Text: "long enough title", Href: "https://example.org/article"},
		}
		sources := FilterSources(links, MaxSources)
		require.Len(t, sources, 1)
		assert.Equal(t, "long enough title", sources[0].Title)
	})

	t.Run("deduplicates by URL, first wins", func(t *testing.T) {
		links := []Link{
			{Text: "first occurrence title", Href: "https://example.org/a"},
			{Text: "second occurrence title", Href: "https://example.org/a"},
		}
		sources := FilterSources(links, MaxSources)
		require.Len(t, sources, 1)
		assert.Equal(t, "first occurrence title", sources[0].Title)
	})

	t.Run("caps the list", func(t *testing.T) {
		var links []Link
		for i := 0; i < 30; i++ {
			links = append(links, Link{
				Text: strings.Repeat("t", 10),
				Href: "https://example.org/" + strings.Repeat("x", i+1),
			})
		}
		sources := FilterSources(links, MaxSources)
		assert.Len(t, sources, MaxSources)
	})

	t.Run("truncates titles by runes", func(t *testing.T) {
		links := []Link{
			{Text: strings.Repeat("标", 300), Href: "https://example.org/long"},
		}
		sources := FilterSources(links, MaxSources)
		require.Len(t, sources, 1)
		assert.Equal(t, MaxSourceTitleLen, len([]rune(sources[0].Title)))
	})
}
