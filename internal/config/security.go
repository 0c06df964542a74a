package config

import (
	"fmt"
	"os"
	"runtime"
)

// SecureFilePermissions ensures a file has 0600 permissions.
// This is a no-op on Windows.
func SecureFilePermissions(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat file: %w", err)
	}

	if info.Mode().Perm() == 0600 {
		return nil
	}

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	return nil
}

// WarnInsecurePermissions returns a warning message when a credential file
// is readable by other users, or an empty string when it is secure. Used
// before touching the shared AWS files.
func WarnInsecurePermissions(path string) string {
	if runtime.GOOS == "windows" {
		return ""
	}

	info, err := os.Stat(path)
	if err != nil {
		return ""
	}

	mode := info.Mode().Perm()
	if mode&0077 != 0 {
		return fmt.Sprintf("Warning: %s has insecure permissions %04o (should be 0600)", path, mode)
	}
	return ""
}
