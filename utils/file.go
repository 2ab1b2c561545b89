package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExpandUser replaces a leading ~ with the current user's home directory
func ExpandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// FileTimestamp returns the timestamp used in generated file names
func FileTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// IsWritableDir reports whether dir exists and a file can be created in it
func IsWritableDir(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}

	probe, err := os.CreateTemp(dir, ".adbw-probe-*")
	if err != nil {
		return false
	}

	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return true
}

// EnsureDir creates dir (and parents) if it does not exist yet
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %v", dir, err)
	}
	return nil
}
