package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"aimodesearch/pkg/logging"
)

// Config tunes a Controller. Zero values are replaced by the defaults.
type Config struct {
	NavigationTimeout   time.Duration
	StreamWait          time.Duration
	SessionTimeout      time.Duration
	InterventionTimeout time.Duration
	Cooldown            time.Duration
	Headless            bool
	DefaultLanguage     string
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		NavigationTimeout:   DefaultNavigationTimeout,
		StreamWait:          DefaultStreamWait,
		SessionTimeout:      DefaultSessionTimeout,
		InterventionTimeout: DefaultInterventionTimeout,
		Cooldown:            DefaultCooldown,
		Headless:            true,
		DefaultLanguage:     "zh-CN",
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.NavigationTimeout <= 0 {
		c.NavigationTimeout = def.NavigationTimeout
	}
	if c.StreamWait <= 0 {
		c.StreamWait = def.StreamWait
	}
	if c.SessionTimeout <= 0 {
		c.SessionTimeout = def.SessionTimeout
	}
	if c.InterventionTimeout <= 0 {
		c.InterventionTimeout = def.InterventionTimeout
	}
	if c.Cooldown <= 0 {
		c.Cooldown = def.Cooldown
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = def.DefaultLanguage
	}
	return c
}

// Controller owns one browser session and coordinates navigation,
// streaming detection, extraction and the intervention fallback. Callers
// must serialize Search/ContinueConversation per controller; the internal
// lock enforces that no two session-mutating operations overlap.
type Controller struct {
	mu sync.Mutex

	cfg          Config
	launcher     Launcher
	logger       *logging.Logger
	monitor      *StreamMonitor
	diff         *DiffEngine
	intervention *InterventionHandler

	sess session

	// cooldownUntil gates new attempts after a verification timeout so an
	// unattended user is not prompted repeatedly.
	cooldownUntil time.Time
}

// NewController builds a Controller around the given launcher. The
// launcher decides the concrete driver once; the controller never probes
// for capabilities per call.
func NewController(launcher Launcher, cfg Config, logger *logging.Logger) *Controller {
	cfg = cfg.withDefaults()
	c := &Controller{
		cfg:      cfg,
		launcher: launcher,
		logger:   logger,
		monitor:  NewStreamMonitor(logger),
		diff:     NewDiffEngine(logger),
	}
	c.intervention = NewInterventionHandler(launcher, logger)
	c.intervention.Timeout = cfg.InterventionTimeout
	return c
}

// CooldownRemaining returns how long the post-verification cooldown still
// has to run, zero when none is active.
func (c *Controller) CooldownRemaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	remaining := time.Until(c.cooldownUntil)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HasActiveSession reports whether a live, unexpired session exists.
// An expired session is torn down as a side effect.
func (c *Controller) HasActiveSession() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasActiveSessionLocked()
}

func (c *Controller) hasActiveSessionLocked() bool {
	if !c.sess.active() {
		return false
	}
	if c.sess.expired(c.cfg.SessionTimeout) {
		c.logger.Infof("session idle past %s, closing", c.cfg.SessionTimeout)
		c.sess.state = stateTimedOut
		c.closeSessionLocked()
		return false
	}
	return true
}

// CloseSession releases the browser session idempotently. Teardown errors
// are logged, never surfaced.
func (c *Controller) CloseSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess.state == stateActive || c.sess.state == stateStarting {
		c.sess.state = stateClosed
	}
	c.closeSessionLocked()
}

func (c *Controller) closeSessionLocked() {
	if c.sess.page != nil {
		if err := c.sess.page.Close(); err != nil {
			c.logger.Debugf("session teardown: %v", err)
		}
	}
	c.sess.reset()
	c.logger.Infof("browser session closed")
}

// EnsureSession starts a browser session if none is active or the active
// one has expired. It returns false on unrecoverable startup failure
// without throwing.
func (c *Controller) EnsureSession(language string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ensureSessionLocked(language)
}

func (c *Controller) ensureSessionLocked(language string) bool {
	if c.hasActiveSessionLocked() {
		c.sess.touch()
		return true
	}

	c.logger.Infof("starting browser session (language=%s, headless=%t)", language, c.cfg.Headless)
	c.sess.state = stateStarting

	page, err := c.launcher.Launch(LaunchOptions{
		Headless: c.cfg.Headless,
		Language: language,
	})
	if err != nil {
		c.logger.Errorf("browser session start failed: %v", err)
		c.sess.state = stateErrored
		c.sess.reset()
		return false
	}

	c.sess.page = page
	c.sess.language = language
	c.sess.state = stateActive
	c.sess.touch()
	c.logger.Infof("browser session started")
	return true
}

// Search runs one search turn and starts a fresh conversation baseline.
// It never returns an error: every failure mode is reported through the
// result.
func (c *Controller) Search(ctx context.Context, query, language string) SearchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchLocked(ctx, query, language)
}

func (c *Controller) searchLocked(ctx context.Context, query, language string) SearchResult {
	if language == "" {
		language = c.cfg.DefaultLanguage
	}
	c.logger.Infof("search: query=%q language=%s", query, language)

	if advisory, cooling := c.cooldownAdvisoryLocked(query); cooling {
		return advisory
	}

	if !c.ensureSessionLocked(language) {
		return Failure(query, "could not start a browser session")
	}

	url := BuildSearchURL(query, language)
	return c.runTurnLocked(ctx, query, url, true)
}

// ContinueConversation submits a follow-up in the live session and
// returns only the newly generated content. Without an active session it
// degrades to a fresh search.
func (c *Controller) ContinueConversation(ctx context.Context, query string) SearchResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Infof("follow-up: query=%q", query)

	if advisory, cooling := c.cooldownAdvisoryLocked(query); cooling {
		return advisory
	}

	if !c.hasActiveSessionLocked() {
		c.logger.Warnf("no active session for follow-up, falling back to a new search")
		return c.searchLocked(ctx, query, "")
	}
	c.sess.touch()

	if !c.submitFollowUpLocked(query) {
		c.logger.Warnf("no follow-up input on the page, navigating to a new search")
		url := BuildSearchURL(query, c.sess.language)
		return c.runTurnLocked(ctx, query, url, true)
	}

	return c.finishFollowUpLocked(ctx, query)
}

// cooldownAdvisoryLocked returns the advisory result when the controller
// is inside the post-verification cooldown window.
func (c *Controller) cooldownAdvisoryLocked(query string) (SearchResult, bool) {
	remaining := time.Until(c.cooldownUntil)
	if remaining <= 0 {
		return SearchResult{}, false
	}
	c.logger.Infof("cooling down for another %s after a verification timeout", remaining.Round(time.Second))
	return Failure(query, fmt.Sprintf(
		"search is paused for %s: the last attempt required manual verification and timed out; retry once someone can complete it",
		remaining.Round(time.Second))), true
}

// runTurnLocked navigates to url and runs the wait/extract pipeline. When
// resetBaseline is true the turn starts a new conversation and the diff
// baseline is replaced rather than diffed against.
func (c *Controller) runTurnLocked(ctx context.Context, query, url string, resetBaseline bool) SearchResult {
	page := c.sess.page
	language := c.sess.language

	if err := page.Navigate(url, c.cfg.NavigationTimeout); err != nil {
		navErr := &NavigationError{URL: url, Err: err}
		c.logger.Warnf("%v, handing over to the user", navErr)
		c.sess.state = stateErrored
		c.closeSessionLocked()
		return c.interveneLocked(ctx, url, query, language, navErr.Error())
	}
	c.sess.touch()

	c.waitForAIContentLocked(ctx)
	c.monitor.WaitForCompletion(ctx, page, c.cfg.StreamWait)

	text, err := page.Text()
	if err != nil {
		c.logger.Errorf("page text unavailable: %v", err)
		c.sess.state = stateErrored
		c.closeSessionLocked()
		return Failure(query, (&SessionError{Op: "read", Err: err}).Error())
	}

	if IsCaptchaPage(text) {
		c.logger.Warnf("verification challenge detected")
		c.sess.state = stateErrored
		c.closeSessionLocked()
		return c.interveneLocked(ctx, url, query, language, "verification challenge detected")
	}

	result := c.extractLocked(page, query)
	if result.Success {
		if resetBaseline {
			c.sess.lastAIAnswer = result.AIAnswer
		}
		c.sess.touch()
		if err := page.PersistAuthState(); err != nil {
			c.logger.Debugf("auth state not persisted: %v", err)
		}
	}
	c.logger.Infof("turn complete: success=%t answer=%d chars sources=%d", result.Success, len(result.AIAnswer), len(result.Sources))
	return result
}

// finishFollowUpLocked runs the wait/extract pipeline after a follow-up
// was submitted and derives the incremental answer.
func (c *Controller) finishFollowUpLocked(ctx context.Context, query string) SearchResult {
	page := c.sess.page

	c.waitForAIContentLocked(ctx)
	c.monitor.WaitForCompletion(ctx, page, c.cfg.StreamWait)

	text, err := page.Text()
	if err != nil {
		c.logger.Errorf("page text unavailable after follow-up: %v", err)
		c.sess.state = stateErrored
		c.closeSessionLocked()
		return Failure(query, (&SessionError{Op: "read", Err: err}).Error())
	}

	if IsCaptchaPage(text) {
		// Mid-conversation challenges are not worth an intervention
		// window; the conversation context is already lost.
		c.logger.Warnf("verification challenge during follow-up, closing session")
		c.sess.state = stateErrored
		c.closeSessionLocked()
		return Failure(query, "verification required, please run a new search")
	}

	result := c.extractLocked(page, query)
	if !result.Success {
		return result
	}

	fullAnswer := result.AIAnswer
	result.AIAnswer = c.diff.ExtractIncremental(fullAnswer, c.sess.lastAIAnswer, query)

	// The baseline must stay the full transcript answer so the next diff
	// compares against everything rendered so far.
	c.sess.lastAIAnswer = fullAnswer
	c.sess.touch()

	c.logger.Infof("follow-up complete: full=%d chars incremental=%d chars", len(fullAnswer), len(result.AIAnswer))
	return result
}

// extractLocked reads the page and builds the result for query.
func (c *Controller) extractLocked(page Page, query string) SearchResult {
	text, err := page.Text()
	if err != nil {
		return Failure(query, "content extraction failed: "+err.Error())
	}
	links, err := page.Links()
	if err != nil {
		c.logger.Warnf("link harvest failed: %v", err)
		links = nil
	}
	result := Extract(text, links)
	result.Query = query
	return result
}

// interveneLocked runs the human-intervention handler for url and records
// the cooldown on a verification timeout. The session is already closed;
// language is the interrupted turn's language so follow-ups continue the
// conversation in the language the caller searched in.
func (c *Controller) interveneLocked(ctx context.Context, url, query, language, reason string) SearchResult {
	result, err := c.intervention.Resolve(ctx, url, query, reason)

	var timeoutErr *VerificationTimeoutError
	if errors.As(err, &timeoutErr) {
		c.cooldownUntil = time.Now().Add(c.cfg.Cooldown)
		c.logger.Infof("cooldown recorded for %s", c.cfg.Cooldown)
	}

	if result.Success {
		if language == "" {
			language = c.cfg.DefaultLanguage
		}
		// The intervention turn starts a fresh conversation baseline.
		if c.ensureSessionLocked(language) {
			c.sess.lastAIAnswer = result.AIAnswer
		}
	}
	return result
}

// waitForAIContentLocked waits for the answer region to show up: consent
// dialog dismissal first, then a fast keyword check, then the container
// selectors, then a short keyword re-poll for slow loads.
func (c *Controller) waitForAIContentLocked(ctx context.Context) bool {
	page := c.sess.page
	c.dismissConsentLocked(page)

	if text, err := page.Text(); err == nil && findAnswerStart(text) >= 0 {
		c.logger.Debugf("answer region found by keyword")
		return true
	}

	for _, selector := range AIContainerSelectors {
		if err := page.WaitForSelector(selector, 1500*time.Millisecond); err == nil {
			c.logger.Debugf("answer region found by selector %s", selector)
			return true
		}
	}

	return pollUntil(ctx, time.Second, 3*time.Second, func() tickResult {
		text, err := page.Text()
		if err != nil {
			return pollStop
		}
		if findAnswerStart(text) >= 0 {
			return pollDone
		}
		return pollContinue
	})
}

// dismissConsentLocked clicks through the cookie consent dialog when one
// is shown. Selector attempts first, JS fallback second.
func (c *Controller) dismissConsentLocked(page Page) {
	for _, label := range ConsentButtonLabels {
		selector := fmt.Sprintf(`button:has-text(%q)`, label)
		if !page.IsVisible(selector) {
			continue
		}
		if err := page.Click(selector); err == nil {
			c.logger.Infof("dismissed consent dialog via %s", selector)
			time.Sleep(time.Second)
			return
		}
	}
	if clicked, err := page.Evaluate(clickConsentScript); err == nil {
		if ok, _ := clicked.(bool); ok {
			c.logger.Infof("dismissed consent dialog via script")
			time.Sleep(time.Second)
		}
	}
}

// submitFollowUpLocked types the follow-up into the conversation input.
// Selector-driven fill first, JS fallback second. Returns false when the
// page has no follow-up input at all.
func (c *Controller) submitFollowUpLocked(query string) bool {
	page := c.sess.page

	for _, selector := range FollowUpSelectors {
		if !page.IsVisible(selector) {
			continue
		}
		if err := page.Click(selector); err != nil {
			continue
		}
		if err := page.Fill(selector, query); err != nil {
			continue
		}
		if err := page.Press(selector, "Enter"); err != nil {
			continue
		}
		c.logger.Debugf("follow-up submitted via selector %s", selector)
		return true
	}

	present, err := page.Evaluate(hasFollowUpInputScript)
	if err != nil {
		return false
	}
	if ok, _ := present.(bool); !ok {
		return false
	}

	encoded, err := json.Marshal(query)
	if err != nil {
		return false
	}
	submitted, err := page.Evaluate("(" + submitFollowUpScript + ")(" + string(encoded) + ")")
	if err != nil {
		return false
	}
	ok, _ := submitted.(bool)
	if ok {
		c.logger.Debugf("follow-up submitted via script")
	}
	return ok
}
