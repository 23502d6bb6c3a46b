package search

import (
	"regexp"
	"strings"

	"aimodesearch/pkg/logging"
)

// matchKind tags which boundary strategy located the previous answer
// inside the full transcript.
type matchKind int

const (
	matchNone matchKind = iota
	matchExact
	matchPrefix
	matchCore
)

func (k matchKind) String() string {
	switch k {
	case matchExact:
		return "exact"
	case matchPrefix:
		return "prefix"
	case matchCore:
		return "core-substring"
	default:
		return "none"
	}
}

// boundaryMatch is the position in the full transcript where the new
// content begins, tagged with the strategy that produced it.
type boundaryMatch struct {
	kind matchKind
	end  int
}

// DiffEngine derives the newly generated content of a follow-up turn by
// subtracting the previous answer and the echoed user query from the full
// re-rendered transcript. The window sizes are empirically tuned and kept
// configurable.
type DiffEngine struct {
	// PrefixWindow is how many leading characters of the previous answer
	// are compared when the full text merely starts with it.
	PrefixWindow int

	// CoreSliceLen is the length of the middle slice of the previous
	// answer used as a last-resort locator.
	CoreSliceLen int

	// SnapWindow bounds the newline search around an estimated boundary.
	SnapWindow int

	logger *logging.Logger
}

// NewDiffEngine returns a DiffEngine with the tuned defaults.
func NewDiffEngine(logger *logging.Logger) *DiffEngine {
	return &DiffEngine{
		PrefixWindow: 200,
		CoreSliceLen: 100,
		SnapWindow:   50,
		logger:       logger,
	}
}

// ExtractIncremental returns only the content generated after
// previousContent, with the echoed userQuery stripped from its start.
// When the previous answer cannot be located the full content is returned
// unchanged; content is never silently dropped.
func (e *DiffEngine) ExtractIncremental(fullContent, previousContent, userQuery string) string {
	if fullContent == "" {
		return ""
	}
	if previousContent == "" {
		return fullContent
	}

	remainder := e.removePrevious(fullContent, previousContent)
	if remainder != "" && userQuery != "" {
		remainder = e.removeEchoedQuery(remainder, userQuery)
	}
	return remainder
}

// removePrevious cuts everything up to and including the previous answer,
// trying the boundary strategies in a fixed order.
func (e *DiffEngine) removePrevious(full, previous string) string {
	strategies := []func(full, previous string) boundaryMatch{
		e.matchExactBoundary,
		e.matchPrefixBoundary,
		e.matchCoreBoundary,
	}
	for _, strategy := range strategies {
		m := strategy(full, previous)
		if m.kind == matchNone {
			continue
		}
		e.logger.Debugf("incremental boundary via %s match at %d", m.kind, m.end)
		return strings.TrimSpace(full[m.end:])
	}
	e.logger.Warnf("incremental extraction could not locate previous answer, keeping full content")
	return full
}

func (e *DiffEngine) matchExactBoundary(full, previous string) boundaryMatch {
	idx := strings.Index(full, previous)
	if idx == -1 {
		return boundaryMatch{kind: matchNone}
	}
	return boundaryMatch{kind: matchExact, end: idx + len(previous)}
}

// matchPrefixBoundary applies when the full transcript starts with the
// leading PrefixWindow characters of the previous answer but the rest has
// been re-rendered with small differences. The boundary is estimated at
// the previous answer's length and snapped to the nearest newline inside
// the snap window. All windows count runes, not bytes, so the tuning
// holds for CJK answers.
func (e *DiffEngine) matchPrefixBoundary(full, previous string) boundaryMatch {
	prevRunes := []rune(previous)
	prefixLen := min(e.PrefixWindow, len(prevRunes))
	prefix := strings.TrimSpace(string(prevRunes[:prefixLen]))
	if prefix == "" || !strings.HasPrefix(full, prefix) {
		return boundaryMatch{kind: matchNone}
	}

	fullRunes := []rune(full)
	estimated := min(len(prevRunes), len(fullRunes))
	searchStart := max(0, estimated-e.SnapWindow)
	searchEnd := min(len(fullRunes), estimated+e.SnapWindow)
	boundary := estimated
	for i := searchEnd - 1; i >= searchStart; i-- {
		if fullRunes[i] == '\n' {
			boundary = i + 1
			break
		}
	}
	return boundaryMatch{kind: matchPrefix, end: len(string(fullRunes[:boundary]))}
}

// matchCoreBoundary locates a CoreSliceLen-rune slice from the middle of
// the previous answer, which tolerates changes at both its ends.
func (e *DiffEngine) matchCoreBoundary(full, previous string) boundaryMatch {
	prevRunes := []rune(previous)
	if len(prevRunes) <= e.CoreSliceLen {
		return boundaryMatch{kind: matchNone}
	}
	midStart := len(prevRunes)/2 - e.CoreSliceLen/2
	core := string(prevRunes[midStart : midStart+e.CoreSliceLen])

	corePos := strings.Index(full, core)
	if corePos == -1 {
		return boundaryMatch{kind: matchNone}
	}
	estimated := min(corePos+len(string(prevRunes[midStart:])), len(full))
	return boundaryMatch{kind: matchCore, end: estimated}
}

// echoedQueryFuzzWindow is how far into the remainder a fuzzy query match
// may start.
const echoedQueryFuzzWindow = 20

var queryPunctuation = regexp.MustCompile(`[\s\?？\!！\.。\,，]+`)

// removeEchoedQuery strips the user's question from the start of the new
// content. The transcript re-renders it between the previous answer and
// the new one, so exact, fuzzy and punctuation-normalized prefix matches
// are tried in order; no match leaves the content untouched.
func (e *DiffEngine) removeEchoedQuery(content, query string) string {
	if strings.HasPrefix(content, query) {
		return strings.TrimSpace(content[len(query):])
	}

	normalizedQuery := strings.TrimSpace(query)
	searchRange := min(len(normalizedQuery)+50, len(content))
	if pos := strings.Index(content[:searchRange], normalizedQuery); pos != -1 && pos < echoedQueryFuzzWindow {
		return strings.TrimSpace(content[pos+len(normalizedQuery):])
	}

	if trimmed, ok := e.removeNormalizedQuery(content, normalizedQuery); ok {
		return trimmed
	}

	e.logger.Debugf("echoed query not found at start of incremental content")
	return content
}

// removeNormalizedQuery matches the query ignoring whitespace and common
// punctuation, scanning rune by rune from the start of the content.
func (e *DiffEngine) removeNormalizedQuery(content, query string) (string, bool) {
	queryNorm := queryPunctuation.ReplaceAllString(query, "")
	if len([]rune(queryNorm)) < 5 {
		return "", false
	}

	runes := []rune(content)
	matched := 0
	target := []rune(queryNorm)
	for i, r := range runes {
		if queryPunctuation.MatchString(string(r)) {
			continue
		}
		if matched < len(target) && r == target[matched] {
			matched++
			if matched == len(target) {
				rest := runes[i+1:]
				// The question's own trailing punctuation follows the
				// last matched rune; it belongs to the echo, not the
				// answer.
				for len(rest) > 0 && queryPunctuation.MatchString(string(rest[0])) {
					rest = rest[1:]
				}
				return strings.TrimSpace(string(rest)), true
			}
			continue
		}
		// Mismatch before the echo completed: the content does not start
		// with the query.
		return "", false
	}
	return "", false
}
