package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gofrs/flock"
)

// DirLock guards the current working directory so only one bot instance runs
// in it at a time. Code queries let the claude CLI edit files in this
// directory, so two instances sharing it would trample each other.
type DirLock struct {
	lockFile *flock.Flock
	lockPath string
}

// sanitizeDirPath converts a directory path to a safe lock file name.
func sanitizeDirPath(dirPath string) string {
	sanitized := strings.ReplaceAll(dirPath, "/", "--")
	sanitized = strings.ReplaceAll(sanitized, "\\", "--")
	sanitized = strings.ReplaceAll(sanitized, ":", "--")

	// Remove any remaining problematic characters
	reg := regexp.MustCompile(`[^\w\-.]`)
	sanitized = reg.ReplaceAllString(sanitized, "-")

	// Trim leading/trailing dots and dashes to avoid hidden files
	sanitized = strings.Trim(sanitized, ".-")

	if sanitized == "" {
		sanitized = "default"
	}

	return sanitized
}

// NewDirLock creates a lock keyed on the current working directory.
func NewDirLock() (*DirLock, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	sanitizedDir := sanitizeDirPath(cwd)

	lockDir := filepath.Join(os.TempDir(), "claudecord")
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	lockPath := filepath.Join(lockDir, fmt.Sprintf("%s.lock", sanitizedDir))

	return &DirLock{
		lockFile: flock.New(lockPath),
		lockPath: lockPath,
	}, nil
}

// TryLock attempts to acquire the directory lock.
// Returns nil if successful, error if the lock is already held.
func (dl *DirLock) TryLock() error {
	locked, err := dl.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another claudecord instance is already running in this directory")
	}

	return nil
}

// Unlock releases the directory lock and removes the lock file.
func (dl *DirLock) Unlock() error {
	if dl.lockFile == nil {
		return nil
	}

	if err := dl.lockFile.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock: %w", err)
	}

	if err := os.Remove(dl.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}

	return nil
}

// GetLockPath returns the path to the lock file (for debugging/testing)
func (dl *DirLock) GetLockPath() string {
	return dl.lockPath
}
