package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"golang.org/x/net/html"

	"aimodesearch/pkg/logging"
	"aimodesearch/pkg/search"
)

// Session wraps one live Playwright page and its owning browser
// resources. It implements search.Page. The browser field is nil when
// the session came from a persistent context, which owns its own
// browser process.
type Session struct {
	page    playwright.Page
	context playwright.BrowserContext
	browser playwright.Browser
	logger  *logging.Logger
}

// Navigate loads url, waiting for the DOM to be parsed. Streaming pages
// keep mutating long after this returns, so waiting for full load would
// only burn the timeout.
func (s *Session) Navigate(url string, timeout time.Duration) error {
	waitUntil := playwright.WaitUntilStateDomcontentloaded
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: waitUntil,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("goto failed: %w", err)
	}
	return nil
}

// Text returns the rendered text of the whole document body.
func (s *Session) Text() (string, error) {
	text, err := s.page.InnerText("body")
	if err != nil {
		return "", fmt.Errorf("failed to read page text: %w", err)
	}
	return text, nil
}

// Evaluate runs a JavaScript expression in the page.
func (s *Session) Evaluate(script string) (any, error) {
	result, err := s.page.Evaluate(script)
	if err != nil {
		return nil, fmt.Errorf("evaluate failed: %w", err)
	}
	return result, nil
}

// IsVisible reports whether selector matches a visible element. Driver
// errors count as not visible.
func (s *Session) IsVisible(selector string) bool {
	visible, err := s.page.IsVisible(selector)
	if err != nil {
		return false
	}
	return visible
}

// WaitForSelector blocks until selector matches or timeout elapses.
func (s *Session) WaitForSelector(selector string, timeout time.Duration) error {
	_, err := s.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("wait for %q failed: %w", selector, err)
	}
	return nil
}

// Click clicks the first element matching selector.
func (s *Session) Click(selector string) error {
	if err := s.page.Click(selector); err != nil {
		return fmt.Errorf("click %q failed: %w", selector, err)
	}
	return nil
}

// Fill types value into the element matching selector.
func (s *Session) Fill(selector, value string) error {
	if err := s.page.Fill(selector, value); err != nil {
		return fmt.Errorf("fill %q failed: %w", selector, err)
	}
	return nil
}

// Press sends a key press to the element matching selector.
func (s *Session) Press(selector, key string) error {
	if err := s.page.Press(selector, key); err != nil {
		return fmt.Errorf("press %q on %q failed: %w", key, selector, err)
	}
	return nil
}

// Links parses the current DOM and returns every anchor with an href.
func (s *Session) Links() ([]search.Link, error) {
	content, err := s.page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}
	return parseLinks(content)
}

// URL returns the current page address.
func (s *Session) URL() string {
	return s.page.URL()
}

// PersistAuthState snapshots cookies and local storage to the shared
// state file so later launches start already signed in.
func (s *Session) PersistAuthState() error {
	path, err := StorageStatePath()
	if err != nil {
		return fmt.Errorf("failed to resolve storage state path: %w", err)
	}
	if err := SaveStorageState(s.context, path); err != nil {
		return err
	}
	s.logger.Debugf("storage state saved to %s", path)
	return nil
}

// Close releases the page and its browser resources. Errors are logged
// and swallowed; a half-dead browser must never block a new search.
func (s *Session) Close() error {
	if err := s.page.Close(); err != nil {
		s.logger.Debugf("page close: %v", err)
	}
	if err := s.context.Close(); err != nil {
		s.logger.Debugf("context close: %v", err)
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.logger.Debugf("browser close: %v", err)
		}
	}
	return nil
}

// parseLinks extracts anchor text and hrefs from an HTML document.
func parseLinks(content string) ([]search.Link, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page html: %w", err)
	}

	var links []search.Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			var href string
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					href = attr.Val
					break
				}
			}
			if href != "" {
				links = append(links, search.Link{
					Text: strings.TrimSpace(nodeText(n)),
					Href: href,
				})
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return links, nil
}

// nodeText concatenates the text content beneath a node.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(nodeText(child))
	}
	return b.String()
}
