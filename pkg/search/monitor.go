package search

import (
	"context"
	"strings"
	"time"

	"aimodesearch/pkg/logging"
)

// StreamMonitor decides when a streamed AI answer has finished rendering.
// It combines an explicit ready signal (the follow-up input appearing)
// with a debounced content-stability check, which tolerates pages that
// either announce completion or merely stop emitting tokens.
type StreamMonitor struct {
	// Interval between page samples.
	Interval time.Duration

	// StableThreshold is how many consecutive unchanged samples count as
	// completion.
	StableThreshold int

	// MinContentLength guards against declaring completion while the
	// page still shows only a thinking placeholder.
	MinContentLength int

	logger *logging.Logger
}

// NewStreamMonitor returns a monitor with the tuned defaults: 500 ms
// sampling, three stable ticks, 500-character minimum.
func NewStreamMonitor(logger *logging.Logger) *StreamMonitor {
	return &StreamMonitor{
		Interval:         500 * time.Millisecond,
		StableThreshold:  3,
		MinContentLength: 500,
		logger:           logger,
	}
}

// WaitForCompletion polls page until the answer appears complete or
// maxWait elapses. A false return is advisory: the caller proceeds to
// extract best-effort content anyway.
func (m *StreamMonitor) WaitForCompletion(ctx context.Context, page Page, maxWait time.Duration) bool {
	lastLength := 0
	stable := 0

	done := pollUntil(ctx, m.Interval, maxWait, func() tickResult {
		content, err := page.Text()
		if err != nil {
			m.logger.Warnf("streaming wait: page text unavailable: %v", err)
			return pollStop
		}
		length := len(content)

		switch {
		case hasFollowUpAffordance(page) && length >= m.MinContentLength:
			// The follow-up input only appears once generation finished.
			m.logger.Infof("follow-up affordance present, streaming complete at %d chars", length)
			return pollDone

		case m.hasLoadingIndicator(page):
			stable = 0
			m.logger.Debugf("loading indicator visible, still streaming")

		case containsLoadingKeyword(content):
			stable = 0
			m.logger.Debugf("loading keyword present, still streaming")

		case length == lastLength && length >= m.MinContentLength:
			stable++
			m.logger.Debugf("content stable %d/%d at %d chars", stable, m.StableThreshold, length)
			if stable >= m.StableThreshold {
				return pollDone
			}

		default:
			stable = 0
			m.logger.Debugf("content still growing: %d -> %d", lastLength, length)
		}

		lastLength = length
		return pollContinue
	})

	if !done {
		m.logger.Warnf("streaming wait did not settle within %s", maxWait)
	}
	return done
}

func (m *StreamMonitor) hasLoadingIndicator(page Page) bool {
	for _, selector := range LoadingIndicatorSelectors {
		if page.IsVisible(selector) {
			return true
		}
	}
	return false
}

func hasFollowUpAffordance(page Page) bool {
	for _, selector := range FollowUpSelectors {
		if page.IsVisible(selector) {
			return true
		}
	}
	return false
}

func containsLoadingKeyword(content string) bool {
	for _, keyword := range loadingKeywords {
		if strings.Contains(content, keyword) {
			return true
		}
	}
	return false
}
