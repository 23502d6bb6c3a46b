package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLinks(t *testing.T) {
	content := `<html><body>
		<div>
			<a href="https://example.com/a">First <b>source</b> article</a>
			<a href="https://example.com/b">
				Second source
			</a>
			<a>no href anchor</a>
			<a href="">empty href</a>
		</div>
	</body></html>`

	links, err := parseLinks(content)
	require.NoError(t, err)

	require.Len(t, links, 2)
	assert.Equal(t, "First source article", links[0].Text)
	assert.Equal(t, "https://example.com/a", links[0].Href)
	assert.Equal(t, "Second source", links[1].Text)
	assert.Equal(t, "https://example.com/b", links[1].Href)
}

func TestParseLinks_NestedAnchors(t *testing.T) {
	content := `<html><body>
		<ul>
			<li><a href="/relative/path">relative link text</a></li>
			<li><span><a href="https://example.com/deep">deeply nested</a></span></li>
		</ul>
	</body></html>`

	links, err := parseLinks(content)
	require.NoError(t, err)

	require.Len(t, links, 2)
	assert.Equal(t, "/relative/path", links[0].Href)
	assert.Equal(t, "https://example.com/deep", links[1].Href)
}

func TestBlockedURLGlobs(t *testing.T) {
	blocked := []string{
		"https://www.googleadservices.com/pagead/conversion.js",
		"https://pagead2.googlesyndication.com/pagead/js/ads.js",
		"https://stats.g.doubleclick.net/collect",
		"https://www.google-analytics.com/analytics.js",
		"https://www.googletagmanager.com/gtm.js",
		"https://www.facebook.com/tr?id=1",
		"https://connect.facebook.net/en_US/fbevents.js",
	}
	for _, url := range blocked {
		matched := false
		for _, pattern := range blockedURLGlobs {
			if pattern.Match(url) {
				matched = true
				break
			}
		}
		assert.True(t, matched, "expected %s to be blocked", url)
	}

	allowed := []string{
		"https://www.google.com/search?q=x&udm=50",
		"https://example.com/article",
	}
	for _, url := range allowed {
		for _, pattern := range blockedURLGlobs {
			assert.False(t, pattern.Match(url), "expected %s to pass pattern %v", url, pattern)
		}
	}
}
