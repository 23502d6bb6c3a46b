package search

import "time"

// SearchSource is a single cited source attached to an AI answer.
type SearchSource struct {
	// Title is the link text, truncated to 200 characters at extraction time
	Title string `json:"title"`

	// URL is the source address; sources are deduplicated by URL
	URL string `json:"url"`

	// Snippet is an optional short excerpt (currently always empty for
	// AI-mode pages, kept for forward compatibility)
	Snippet string `json:"snippet"`
}

// ToMap serializes the source into a plain mapping.
func (s SearchSource) ToMap() map[string]any {
	return map[string]any{
		"title":   s.Title,
		"url":     s.URL,
		"snippet": s.Snippet,
	}
}

// SourceFromMap builds a SearchSource from a plain mapping. Missing fields
// default to empty strings.
func SourceFromMap(data map[string]any) SearchSource {
	return SearchSource{
		Title:   stringField(data, "title"),
		URL:     stringField(data, "url"),
		Snippet: stringField(data, "snippet"),
	}
}

// SearchResult is the outcome of one search or follow-up turn.
type SearchResult struct {
	Success  bool           `json:"success"`
	Query    string         `json:"query"`
	AIAnswer string         `json:"ai_answer"`
	Sources  []SearchSource `json:"sources"`
	Error    string         `json:"error"`
}

// Failure builds a failed result for the given query.
func Failure(query, errMsg string) SearchResult {
	return SearchResult{Success: false, Query: query, Error: errMsg}
}

// ToMap serializes the result into a plain mapping with nested source maps.
func (r SearchResult) ToMap() map[string]any {
	sources := make([]map[string]any, 0, len(r.Sources))
	for _, s := range r.Sources {
		sources = append(sources, s.ToMap())
	}
	return map[string]any{
		"success":   r.Success,
		"query":     r.Query,
		"ai_answer": r.AIAnswer,
		"sources":   sources,
		"error":     r.Error,
	}
}

// ResultFromMap builds a SearchResult from a plain mapping as produced by
// ToMap. Unknown or missing fields default to zero values.
func ResultFromMap(data map[string]any) SearchResult {
	result := SearchResult{
		Query:    stringField(data, "query"),
		AIAnswer: stringField(data, "ai_answer"),
		Error:    stringField(data, "error"),
	}
	if v, ok := data["success"].(bool); ok {
		result.Success = v
	}
	switch raw := data["sources"].(type) {
	case []map[string]any:
		for _, m := range raw {
			result.Sources = append(result.Sources, SourceFromMap(m))
		}
	case []any:
		for _, item := range raw {
			if m, ok := item.(map[string]any); ok {
				result.Sources = append(result.Sources, SourceFromMap(m))
			}
		}
	}
	return result
}

func stringField(data map[string]any, key string) string {
	v, _ := data[key].(string)
	return v
}

// Link is a raw hyperlink harvested from the page DOM, before source
// filtering is applied.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Default tuning for the session controller and its collaborators.
const (
	// DefaultNavigationTimeout bounds a single page navigation.
	DefaultNavigationTimeout = 30 * time.Second

	// DefaultStreamWait bounds waiting for a streamed answer to settle.
	DefaultStreamWait = 30 * time.Second

	// DefaultSessionTimeout is the idle time after which the browser
	// session is torn down.
	DefaultSessionTimeout = 300 * time.Second

	// DefaultInterventionTimeout bounds the manual-verification window.
	DefaultInterventionTimeout = 300 * time.Second

	// DefaultCooldown is the quiet period after a verification timeout
	// during which search calls return an advisory without retrying.
	DefaultCooldown = 300 * time.Second

	// MaxSources caps the number of cited sources per result.
	MaxSources = 10

	// MaxSourceTitleLen caps the length of a cited source title.
	MaxSourceTitleLen = 200

	// MaxAnswerLength is the hard safety bound on an extracted answer span.
	MaxAnswerLength = 50000
)
