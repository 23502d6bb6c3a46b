package search

import (
	"context"
	"strings"
	"time"

	"aimodesearch/pkg/logging"
)

// InterventionHandler hands a blocked turn over to a human. It opens a
// visible browser window on the same URL, reusing the persisted profile,
// and waits for the page to leave the problem state. It always runs
// synchronously to completion or timeout, never in parallel with a
// normal search attempt.
type InterventionHandler struct {
	// Timeout bounds the whole manual-verification window.
	Timeout time.Duration

	// PollInterval is how often the page is re-checked.
	PollInterval time.Duration

	// SettleDelay is how long the final render gets to settle after the
	// user cleared the challenge, before the page is read.
	SettleDelay time.Duration

	launcher Launcher
	logger   *logging.Logger
}

// NewInterventionHandler returns a handler with the default 5-minute
// window and 2-second polling.
func NewInterventionHandler(launcher Launcher, logger *logging.Logger) *InterventionHandler {
	return &InterventionHandler{
		Timeout:      DefaultInterventionTimeout,
		PollInterval: 2 * time.Second,
		SettleDelay:  2 * time.Second,
		launcher:     launcher,
		logger:       logger,
	}
}

// minResolvedContentLength is how much page text counts as "results are
// showing" when no AI-mode marker is present.
const minResolvedContentLength = 1000

// Resolve opens the visible window on url and waits for the user to clear
// the challenge, then extracts the answer for query. On timeout it
// returns a failed result and a VerificationTimeoutError so the caller
// can record a cooldown.
func (h *InterventionHandler) Resolve(ctx context.Context, url, query, reason string) (SearchResult, error) {
	h.logger.Infof("user intervention required: %s", reason)

	page, err := h.launcher.Launch(LaunchOptions{
		Headless:     false,
		ReuseProfile: true,
	})
	if err != nil {
		h.logger.Errorf("could not open visible browser window: %v", err)
		return Failure(query, "could not open a browser window for manual verification: "+err.Error()), err
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			h.logger.Debugf("intervention window close: %v", closeErr)
		}
	}()

	// Navigation may itself fail on a blocked network; the window stays
	// open so the user can still act.
	if navErr := page.Navigate(url, 2*time.Minute); navErr != nil {
		h.logger.Warnf("intervention navigation failed, leaving window for the user: %v", navErr)
	}

	resolved := pollUntil(ctx, h.PollInterval, h.Timeout, func() tickResult {
		content, textErr := page.Text()
		if textErr != nil {
			h.logger.Debugf("intervention poll: page text unavailable: %v", textErr)
			return pollContinue
		}
		if h.pageResolved(content, page.URL()) {
			return pollDone
		}
		return pollContinue
	})

	if !resolved {
		timeoutErr := &VerificationTimeoutError{Waited: h.Timeout}
		h.logger.Warnf("%v", timeoutErr)
		return Failure(query, timeoutErr.Error()), timeoutErr
	}

	h.logger.Infof("user cleared the challenge, extracting results")
	time.Sleep(h.SettleDelay)

	text, err := page.Text()
	if err != nil {
		return Failure(query, "extraction after verification failed: "+err.Error()), err
	}
	links, err := page.Links()
	if err != nil {
		h.logger.Warnf("link harvest after verification failed: %v", err)
		links = nil
	}

	result := Extract(text, links)
	result.Query = query
	return result, nil
}

// pageResolved reports whether the page has left the problem state: no
// verification keywords, not on an error page, and actual results showing.
func (h *InterventionHandler) pageResolved(content, currentURL string) bool {
	if IsCaptchaPage(content) || strings.Contains(strings.ToLower(currentURL), "sorry") {
		return false
	}
	if findAnswerStart(content) >= 0 {
		return true
	}
	return len(content) > minResolvedContentLength
}
