package config

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// SectionIDSearch is the identifier for the search settings section
	SectionIDSearch = "search"

	// Default values for search settings
	defaultLanguage            = "zh-CN"
	defaultHeadless            = true
	defaultNavigationTimeout   = 30 * time.Second
	defaultStreamWait          = 30 * time.Second
	defaultSessionTimeout      = 5 * time.Minute
	defaultInterventionTimeout = 5 * time.Minute
	defaultCooldown            = 5 * time.Minute
)

// SearchSection manages the search behavior settings.
type SearchSection struct {
	DefaultLanguage     string        `json:"default_language"`
	Headless            bool          `json:"headless"`
	ProxyOverride       string        `json:"proxy_override"`
	NavigationTimeout   time.Duration `json:"navigation_timeout"`
	StreamWait          time.Duration `json:"stream_wait"`
	SessionTimeout      time.Duration `json:"session_timeout"`
	InterventionTimeout time.Duration `json:"intervention_timeout"`
	Cooldown            time.Duration `json:"cooldown"`
	mu                  sync.RWMutex
}

// NewSearchSection creates a search section with default settings.
func NewSearchSection() *SearchSection {
	return &SearchSection{
		DefaultLanguage:     defaultLanguage,
		Headless:            defaultHeadless,
		NavigationTimeout:   defaultNavigationTimeout,
		StreamWait:          defaultStreamWait,
		SessionTimeout:      defaultSessionTimeout,
		InterventionTimeout: defaultInterventionTimeout,
		Cooldown:            defaultCooldown,
	}
}

// ID returns the section identifier.
func (s *SearchSection) ID() string {
	return SectionIDSearch
}

// Title returns the section title.
func (s *SearchSection) Title() string {
	return "Search Settings"
}

// Description returns the section description.
func (s *SearchSection) Description() string {
	return "Configure search behavior including interface language, headless mode and timeouts."
}

// Data returns the current configuration data.
func (s *SearchSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"default_language":     s.DefaultLanguage,
		"headless":             s.Headless,
		"proxy_override":       s.ProxyOverride,
		"navigation_timeout":   s.NavigationTimeout.String(),
		"stream_wait":          s.StreamWait.String(),
		"session_timeout":      s.SessionTimeout.String(),
		"intervention_timeout": s.InterventionTimeout.String(),
		"cooldown":             s.Cooldown.String(),
	}
}

// SetData updates the configuration from the provided data.
func (s *SearchSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "default_language":
			lang, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid value type for default_language: expected string, got %T", value)
			}
			s.DefaultLanguage = lang

		case "headless":
			enabled, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for headless: expected bool, got %T", value)
			}
			s.Headless = enabled

		case "proxy_override":
			proxy, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid value type for proxy_override: expected string, got %T", value)
			}
			s.ProxyOverride = proxy

		case "navigation_timeout":
			d, err := parseDuration(key, value)
			if err != nil {
				return err
			}
			s.NavigationTimeout = d

		case "stream_wait":
			d, err := parseDuration(key, value)
			if err != nil {
				return err
			}
			s.StreamWait = d

		case "session_timeout":
			d, err := parseDuration(key, value)
			if err != nil {
				return err
			}
			s.SessionTimeout = d

		case "intervention_timeout":
			d, err := parseDuration(key, value)
			if err != nil {
				return err
			}
			s.InterventionTimeout = d

		case "cooldown":
			d, err := parseDuration(key, value)
			if err != nil {
				return err
			}
			s.Cooldown = d

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// parseDuration accepts duration strings and the numeric forms JSON
// decoding produces.
func parseDuration(key string, value interface{}) (time.Duration, error) {
	switch v := value.(type) {
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid duration string for %s: %w", key, err)
		}
		return d, nil
	case float64:
		return time.Duration(v), nil
	case int64:
		return time.Duration(v), nil
	default:
		return 0, fmt.Errorf("invalid value type for %s: expected string or number, got %T", key, value)
	}
}

// Validate validates the current configuration.
func (s *SearchSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.DefaultLanguage == "" {
		return fmt.Errorf("default_language must not be empty")
	}
	if s.ProxyOverride != "" && !strings.Contains(s.ProxyOverride, "://") {
		return fmt.Errorf("proxy_override must include a scheme, e.g. http://127.0.0.1:7890")
	}
	for name, d := range map[string]time.Duration{
		"navigation_timeout":   s.NavigationTimeout,
		"stream_wait":          s.StreamWait,
		"session_timeout":      s.SessionTimeout,
		"intervention_timeout": s.InterventionTimeout,
		"cooldown":             s.Cooldown,
	} {
		if d < time.Second || d > time.Hour {
			return fmt.Errorf("%s must be between 1s and 1h, got %v", name, d)
		}
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *SearchSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.DefaultLanguage = defaultLanguage
	s.Headless = defaultHeadless
	s.ProxyOverride = ""
	s.NavigationTimeout = defaultNavigationTimeout
	s.StreamWait = defaultStreamWait
	s.SessionTimeout = defaultSessionTimeout
	s.InterventionTimeout = defaultInterventionTimeout
	s.Cooldown = defaultCooldown
}

// GetDefaultLanguage returns the configured interface language.
func (s *SearchSection) GetDefaultLanguage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.DefaultLanguage
}

// GetHeadless returns whether searches run without a browser window.
func (s *SearchSection) GetHeadless() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Headless
}

// GetProxyOverride returns the configured proxy server, empty when the
// environment and local ports should be probed instead.
func (s *SearchSection) GetProxyOverride() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ProxyOverride
}

// GetTimeouts returns the navigation, stream wait, session, intervention
// and cooldown durations.
func (s *SearchSection) GetTimeouts() (time.Duration, time.Duration, time.Duration, time.Duration, time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NavigationTimeout, s.StreamWait, s.SessionTimeout, s.InterventionTimeout, s.Cooldown
}

// SetDefaultLanguage sets the interface language.
func (s *SearchSection) SetDefaultLanguage(language string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DefaultLanguage = language
}

// SetHeadless sets whether searches run without a browser window.
func (s *SearchSection) SetHeadless(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Headless = enabled
}
