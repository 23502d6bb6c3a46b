package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// maxStorageStateAge is how long a persisted auth snapshot stays usable
// before a fresh login is required.
const maxStorageStateAge = 24 * time.Hour

// DataDir returns the dedicated data directory, creating it if needed.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, ".aimodesearch")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

// ProfileDir returns the persistent browser profile directory used by the
// visible intervention window, creating it if needed.
func ProfileDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	profile := filepath.Join(dir, "profile")
	if err := os.MkdirAll(profile, 0750); err != nil {
		return "", fmt.Errorf("failed to create profile directory: %w", err)
	}
	return profile, nil
}

// StorageStatePath returns the location of the shared auth snapshot.
func StorageStatePath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "storage_state.json"), nil
}

// LoadableStorageState returns the snapshot path when a fresh-enough
// snapshot exists, "" otherwise.
func LoadableStorageState() string {
	path, err := StorageStatePath()
	if err != nil {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	if time.Since(info.ModTime()) > maxStorageStateAge {
		return ""
	}
	return path
}

// SaveStorageState snapshots the context's cookies and local storage to
// the shared location. The snapshot is written to a per-process temp file
// and moved into place with an atomic rename, so concurrent readers and
// writers never see a partial file.
func SaveStorageState(ctx playwright.BrowserContext, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tempPath := fmt.Sprintf("%s.%d.tmp", path, os.Getpid())
	if _, err := ctx.StorageState(tempPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to write auth snapshot: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to move auth snapshot into place: %w", err)
	}
	return nil
}
