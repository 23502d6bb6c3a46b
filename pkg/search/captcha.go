package search

import "strings"

// IsCaptchaPage reports whether the page text looks like a verification
// challenge. Matching is a case-insensitive substring scan over a
// maintained multi-language keyword table, best-effort by design.
func IsCaptchaPage(content string) bool {
	lower := strings.ToLower(content)
	for _, keyword := range captchaKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
