package search

import "time"

// Page is the browser surface the controller drives. Implementations
// wrap a live automation driver; every method is expected to fail with an
// error (never panic) when the underlying page has gone away.
type Page interface {
	// Navigate loads url, waiting at most timeout for the DOM to be ready.
	Navigate(url string, timeout time.Duration) error

	// Text returns the full rendered text of the page.
	Text() (string, error)

	// Evaluate runs a JavaScript expression in the page and returns its
	// result.
	Evaluate(script string) (any, error)

	// IsVisible reports whether an element matching selector is visible.
	// Selector errors count as not visible.
	IsVisible(selector string) bool

	// WaitForSelector blocks until selector matches or timeout elapses.
	WaitForSelector(selector string, timeout time.Duration) error

	// Click clicks the first element matching selector.
	Click(selector string) error

	// Fill types value into the element matching selector.
	Fill(selector, value string) error

	// Press sends a key press to the element matching selector.
	Press(selector, key string) error

	// Links returns all outbound hyperlinks currently in the DOM.
	Links() ([]Link, error)

	// URL returns the current page address.
	URL() string

	// PersistAuthState snapshots cookies and local storage so other
	// processes can reuse the authenticated state.
	PersistAuthState() error

	// Close releases the page and its owning browser resources.
	Close() error
}

// LaunchOptions configure one browser launch.
type LaunchOptions struct {
	// Headless runs the browser without a window. The intervention
	// handler always launches with Headless false.
	Headless bool

	// Language is the interface language passed as the browser locale.
	Language string

	// ReuseProfile opens the persistent profile directory so cookies
	// survive across launches. Used by the visible intervention window.
	ReuseProfile bool
}

// Launcher starts browser resources. The concrete driver is chosen once
// at construction time; the controller never probes for capabilities
// per call.
type Launcher interface {
	Launch(opts LaunchOptions) (Page, error)
}
