package search

import (
	"strings"
)

// Extract isolates the AI answer span from the rendered page text and
// turns harvested links into cited sources. The query field of the
// returned result is left empty for the caller to fill in.
//
// The answer boundary is found opportunistically: the first AI-mode label
// of any supported language marks the start; the first search-results
// label after it marks the end, falling back to the nearest end marker
// and finally a hard length cap. When no label is present at all the
// leading page text is returned best-effort rather than failing.
func Extract(pageText string, links []Link) SearchResult {
	start := findAnswerStart(pageText)

	var span string
	switch {
	case start >= 0:
		end := findAnswerEnd(pageText, start)
		span = pageText[start:end]
	default:
		end := findEndMarker(pageText, min(100, len(pageText)), MaxAnswerLength)
		span = pageText[:end]
	}

	return SearchResult{
		Success:  true,
		AIAnswer: CleanAnswer(span),
		Sources:  FilterSources(links, MaxSources),
	}
}

// findAnswerStart returns the byte offset of the first AI-mode label in
// the text, or -1 when none is present.
func findAnswerStart(text string) int {
	for _, label := range aiModeLabels {
		if idx := strings.Index(text, label); idx != -1 {
			return idx
		}
	}
	return -1
}

// findAnswerEnd picks the end of the answer span that starts at start:
// the earliest search-results label after the start when one exists,
// otherwise the nearest end marker past the label region.
func findAnswerEnd(text string, start int) int {
	resultIdx := -1
	for _, label := range searchResultLabels {
		idx := strings.Index(text, label)
		if idx == -1 || idx <= start {
			continue
		}
		if resultIdx == -1 || idx < resultIdx {
			resultIdx = idx
		}
	}
	if resultIdx != -1 {
		return resultIdx
	}
	// Skip past the label itself before scanning for end markers so a
	// marker embedded in the header region is not taken as the boundary.
	return findEndMarker(text, min(start+100, len(text)), MaxAnswerLength)
}

// findEndMarker returns the offset of the nearest end marker at or after
// from, bounded by maxLen bytes past from.
func findEndMarker(text string, from, maxLen int) int {
	end := min(len(text), from+maxLen)
	for _, marker := range endMarkers {
		idx := strings.Index(text[from:], marker)
		if idx == -1 {
			continue
		}
		if abs := from + idx; abs < end {
			end = abs
		}
	}
	return end
}

// engineDomains are link hosts belonging to the search engine itself and
// are never cited as sources.
var engineDomains = []string{"google.com", "accounts.google"}

// minSourceTitleLen drops bare icon links and single-character anchors.
const minSourceTitleLen = 5

// FilterSources drops engine-internal links, deduplicates by URL with
// first occurrence winning, truncates titles and caps the list at max.
func FilterSources(links []Link, max int) []SearchSource {
	seen := make(map[string]struct{}, len(links))
	sources := make([]SearchSource, 0, max)

	for _, link := range links {
		if len(sources) >= max {
			break
		}
		title := strings.TrimSpace(link.Text)
		if len([]rune(title)) < minSourceTitleLen {
			continue
		}
		if isEngineLink(link.Href) {
			continue
		}
		if _, dup := seen[link.Href]; dup {
			continue
		}
		seen[link.Href] = struct{}{}

		if runes := []rune(title); len(runes) > MaxSourceTitleLen {
			title = string(runes[:MaxSourceTitleLen])
		}
		sources = append(sources, SearchSource{Title: title, URL: link.Href})
	}
	return sources
}

func isEngineLink(href string) bool {
	for _, domain := range engineDomains {
		if strings.Contains(href, domain) {
			return true
		}
	}
	return false
}
