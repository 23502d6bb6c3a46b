package browser

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"

	"aimodesearch/pkg/logging"
	"aimodesearch/pkg/search"
)

// userAgent masks the automated Chromium build as a desktop Edge install.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36 Edg/131.0.0.0"

// launchArgs disable the signals Google uses to spot automated browsers.
var launchArgs = []string{
	"--disable-blink-features=AutomationControlled",
	"--disable-infobars",
	"--no-sandbox",
	"--disable-dev-shm-usage",
	"--disable-gpu",
}

// Launcher starts Chromium pages backed by Playwright. The driver, the
// local browser executable, and the proxy are resolved once when the
// launcher is constructed; Launch itself only starts browsers.
type Launcher struct {
	mu         sync.Mutex
	pw         *playwright.Playwright
	executable string
	proxy      string
	logger     *logging.Logger
}

// NewLauncher installs the Playwright driver if needed, starts it, and
// resolves the local browser and proxy. A non-empty proxyOverride is
// used verbatim; otherwise the environment and common local ports are
// probed. It fails with search.ErrBrowserUnavailable when no Chrome or
// Edge install is found.
func NewLauncher(logger *logging.Logger, proxyOverride string) (*Launcher, error) {
	executable := FindBrowser()
	if executable == "" {
		return nil, search.ErrBrowserUnavailable
	}

	// Driver output goes nowhere; stdout belongs to the MCP transport.
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(opts); err != nil {
		return nil, fmt.Errorf("failed to install playwright driver: %w", err)
	}
	pw, err := playwright.Run(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright driver: %w", err)
	}

	proxy := proxyOverride
	if proxy == "" {
		proxy = DetectProxy()
	}
	if proxy != "" {
		logger.Infof("using proxy %s", proxy)
	}
	logger.Infof("browser executable: %s", executable)

	return &Launcher{
		pw:         pw,
		executable: executable,
		proxy:      proxy,
		logger:     logger,
	}, nil
}

// Launch starts a browser and returns a ready page.
func (l *Launcher) Launch(opts search.LaunchOptions) (search.Page, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if opts.ReuseProfile {
		return l.launchPersistent(opts)
	}
	return l.launchEphemeral(opts)
}

// launchEphemeral starts a fresh browser whose context is seeded from the
// saved storage state, if a recent one exists.
func (l *Launcher) launchEphemeral(opts search.LaunchOptions) (search.Page, error) {
	launchOpts := playwright.BrowserTypeLaunchOptions{
		ExecutablePath: playwright.String(l.executable),
		Headless:       playwright.Bool(opts.Headless),
		Args:           launchArgs,
	}
	if l.proxy != "" {
		launchOpts.Proxy = &playwright.Proxy{Server: l.proxy}
	}
	browser, err := l.pw.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport:  &playwright.Size{Width: 1920, Height: 1080},
		UserAgent: playwright.String(userAgent),
	}
	if opts.Language != "" {
		contextOpts.Locale = playwright.String(opts.Language)
	}
	if statePath := LoadableStorageState(); statePath != "" {
		contextOpts.StorageStatePath = playwright.String(statePath)
		l.logger.Debugf("restoring storage state from %s", statePath)
	}
	context, err := browser.NewContext(contextOpts)
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	setupResourceBlocking(page, l.logger)

	return &Session{
		page:    page,
		context: context,
		browser: browser,
		logger:  l.logger,
	}, nil
}

// launchPersistent opens the on-disk profile in a visible window. The
// profile keeps cookies across launches, which is what lets a human solve
// a verification challenge once and have later headless runs benefit.
func (l *Launcher) launchPersistent(opts search.LaunchOptions) (search.Page, error) {
	profileDir, err := ProfileDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile directory: %w", err)
	}

	contextOpts := playwright.BrowserTypeLaunchPersistentContextOptions{
		ExecutablePath: playwright.String(l.executable),
		Headless:       playwright.Bool(false),
		Args:           launchArgs,
		Viewport:       &playwright.Size{Width: 1280, Height: 800},
		UserAgent:      playwright.String(userAgent),
	}
	if opts.Language != "" {
		contextOpts.Locale = playwright.String(opts.Language)
	}
	if l.proxy != "" {
		contextOpts.Proxy = &playwright.Proxy{Server: l.proxy}
	}
	context, err := l.pw.Chromium.LaunchPersistentContext(profileDir, contextOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch persistent context: %w", err)
	}

	// A persistent context opens with one blank page already attached.
	var page playwright.Page
	if pages := context.Pages(); len(pages) > 0 {
		page = pages[0]
	} else {
		page, err = context.NewPage()
		if err != nil {
			context.Close()
			return nil, fmt.Errorf("failed to create page: %w", err)
		}
	}
	setupResourceBlocking(page, l.logger)

	return &Session{
		page:    page,
		context: context,
		logger:  l.logger,
	}, nil
}

// Shutdown stops the Playwright driver. Pages launched earlier become
// unusable afterwards.
func (l *Launcher) Shutdown() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pw == nil {
		return nil
	}
	if err := l.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright driver: %w", err)
	}
	l.pw = nil
	return nil
}
