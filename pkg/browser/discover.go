package browser

import (
	"os"
	"path/filepath"
)

// chromePaths are the usual Chrome install locations across platforms.
var chromePaths = []string{
	// Windows
	`C:\Program Files\Google\Chrome\Application\chrome.exe`,
	`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
	// macOS
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	// Linux
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/usr/bin/chromium-browser",
	"/usr/bin/chromium",
}

// edgePaths are the usual Edge install locations, tried after Chrome.
var edgePaths = []string{
	// Windows
	`C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe`,
	`C:\Program Files\Microsoft\Edge\Application\msedge.exe`,
	// macOS
	"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
	// Linux
	"/usr/bin/microsoft-edge",
	"/usr/bin/microsoft-edge-stable",
}

// FindBrowser returns the path of an installed Chromium-family browser,
// preferring Chrome over Edge, or "" when none is present.
func FindBrowser() string {
	candidates := make([]string, 0, len(chromePaths)+len(edgePaths)+1)
	if home, err := os.UserHomeDir(); err == nil {
		// Per-user Chrome install on Windows
		candidates = append(candidates, filepath.Join(home, `AppData\Local\Google\Chrome\Application\chrome.exe`))
	}
	candidates = append(candidates, chromePaths...)
	candidates = append(candidates, edgePaths...)

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
