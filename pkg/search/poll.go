package search

import (
	"context"
	"time"
)

// tickResult is a poll tick's verdict.
type tickResult int

const (
	// pollContinue keeps polling.
	pollContinue tickResult = iota
	// pollDone stops polling with success.
	pollDone
	// pollStop aborts polling without success, e.g. the page went away.
	pollStop
)

// pollUntil invokes tick every interval until it reports pollDone or
// pollStop, maxWait elapses, or ctx is cancelled. It returns true only
// when tick reported pollDone. Each iteration suspends for the full
// interval, so other work in the process can proceed.
func pollUntil(ctx context.Context, interval, maxWait time.Duration, tick func() tickResult) bool {
	deadline := time.NewTimer(maxWait)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		switch tick() {
		case pollDone:
			return true
		case pollStop:
			return false
		}

		select {
		case <-ctx.Done():
			return false
		case <-deadline.C:
			return false
		case <-ticker.C:
		}
	}
}
