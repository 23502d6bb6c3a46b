package search

import (
	"fmt"
	"net/url"
)

const searchBaseURL = "https://www.google.com/search"

// aiModeParam is the udm value that selects the AI-answer presentation.
const aiModeParam = "50"

// BuildSearchURL constructs an AI-mode search URL for the given query and
// interface language.
func BuildSearchURL(query, language string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("udm", aiModeParam)
	params.Set("hl", language)
	return searchBaseURL + "?" + params.Encode()
}

// ParseSearchURL extracts the query and language from a search URL built
// by BuildSearchURL. It errors when the URL is not an AI-mode search URL.
func ParseSearchURL(raw string) (query, language string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid search URL: %w", err)
	}
	params := u.Query()
	if params.Get("udm") != aiModeParam {
		return "", "", fmt.Errorf("not an AI-mode search URL: %s", raw)
	}
	return params.Get("q"), params.Get("hl"), nil
}
