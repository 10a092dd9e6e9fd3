package logging

import (
	"os"
	"path/filepath"
)

// DefaultLogDir returns the default log directory (~/.mba-setup/logs/).
// Falls back to temp directory if home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".mba-setup", "logs")
	}
	return filepath.Join(home, ".mba-setup", "logs")
}

// DefaultLogPath returns the default setup log path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "setup.log")
}

// EnsureLogDir creates the log directory if it doesn't exist.
func EnsureLogDir() error {
	return os.MkdirAll(DefaultLogDir(), 0o755)
}
