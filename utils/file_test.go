package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestExpandUser(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tilde slash", "~/foo/bar", filepath.Join(home, "foo/bar")},
		{"bare tilde", "~", home},
		{"absolute untouched", "/tmp/foo", "/tmp/foo"},
		{"relative untouched", "foo/bar", "foo/bar"},
		{"tilde mid-path untouched", "/tmp/~notme", "/tmp/~notme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandUser(tt.in); got != tt.want {
				t.Errorf("ExpandUser(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFileTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	if got := FileTimestamp(ts); got != "20250314_150926" {
		t.Errorf("FileTimestamp() = %q, want 20250314_150926", got)
	}
}

func TestIsWritableDir(t *testing.T) {
	tmpDir := t.TempDir()
	if !IsWritableDir(tmpDir) {
		t.Errorf("expected temp dir %s to be writable", tmpDir)
	}

	if IsWritableDir(filepath.Join(tmpDir, "does-not-exist")) {
		t.Error("expected missing dir to be reported unwritable")
	}

	// a file is not a writable directory
	f := filepath.Join(tmpDir, "plain.txt")
	if err := os.WriteFile(f, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if IsWritableDir(f) {
		t.Error("expected plain file to be reported unwritable")
	}

	// no probe files should be left behind
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".adbw-probe-") {
			t.Errorf("probe file left behind: %s", e.Name())
		}
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("expected directory at %s", dir)
	}

	// idempotent
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir() second call error: %v", err)
	}
}
