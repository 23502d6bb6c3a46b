package browser

import (
	"github.com/gobwas/glob"
	"github.com/playwright-community/playwright-go"

	"aimodesearch/pkg/logging"
)

// blockedResourceTypes are request kinds aborted to cut memory and
// bandwidth; the pages are read as text, so none of these matter.
var blockedResourceTypes = map[string]struct{}{
	"image": {},
	"font":  {},
	"media": {},
}

// blockedURLGlobs match ad and tracking endpoints.
var blockedURLGlobs = []glob.Glob{
	glob.MustCompile("*googleadservices.com*"),
	glob.MustCompile("*googlesyndication.com*"),
	glob.MustCompile("*doubleclick.net*"),
	glob.MustCompile("*google-analytics.com*"),
	glob.MustCompile("*googletagmanager.com*"),
	glob.MustCompile("*facebook.com/tr*"),
	glob.MustCompile("*connect.facebook.net*"),
}

// setupResourceBlocking routes every request through a filter that aborts
// useless resources and ad/tracker calls. Route errors are logged only;
// blocking is an optimization, never a requirement.
func setupResourceBlocking(page playwright.Page, logger *logging.Logger) {
	err := page.Route("**/*", func(route playwright.Route) {
		request := route.Request()
		if _, blocked := blockedResourceTypes[request.ResourceType()]; blocked {
			_ = route.Abort()
			return
		}
		url := request.URL()
		for _, pattern := range blockedURLGlobs {
			if pattern.Match(url) {
				_ = route.Abort()
				return
			}
		}
		_ = route.Continue()
	})
	if err != nil {
		logger.Warnf("resource blocking not installed: %v", err)
	}
}
