package search

import "time"

// sessionState tracks the browser session lifecycle. Terminal states all
// transition back to inactive once teardown completes.
type sessionState int

const (
	stateInactive sessionState = iota
	stateStarting
	stateActive
	stateTimedOut
	stateErrored
	stateClosed
)

func (s sessionState) String() string {
	switch s {
	case stateStarting:
		return "starting"
	case stateActive:
		return "active"
	case stateTimedOut:
		return "timed-out"
	case stateErrored:
		return "errored"
	case stateClosed:
		return "closed"
	default:
		return "inactive"
	}
}

// session is the single browser session a controller owns. It is only
// ever mutated under the controller's lock.
type session struct {
	state        sessionState
	page         Page
	language     string
	lastActivity time.Time

	// lastAIAnswer is the diff baseline for the next follow-up. Always
	// the full extracted answer, never the diffed value.
	lastAIAnswer string
}

func (s *session) active() bool {
	return s.state == stateActive && s.page != nil
}

// expired reports whether the session has been idle past timeout.
func (s *session) expired(timeout time.Duration) bool {
	if !s.active() || s.lastActivity.IsZero() {
		return false
	}
	return time.Since(s.lastActivity) > timeout
}

func (s *session) touch() {
	s.lastActivity = time.Now()
}

// reset clears all session state after teardown.
func (s *session) reset() {
	s.state = stateInactive
	s.page = nil
	s.language = ""
	s.lastActivity = time.Time{}
	s.lastAIAnswer = ""
}
