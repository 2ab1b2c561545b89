package adb

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCollectSplitAPKs_BaseFirst(t *testing.T) {
	paths := []string{
		"splits/split_config.arm64_v8a.apk",
		"splits/split_config.en.apk",
		"splits/base.apk",
		"splits/readme.txt",
	}

	apks, cleanup, err := collectSplitAPKs(paths)
	defer cleanup()
	if err != nil {
		t.Fatalf("collectSplitAPKs() error: %v", err)
	}

	if len(apks) != 3 {
		t.Fatalf("expected 3 APKs, got %d: %v", len(apks), apks)
	}
	if filepath.Base(apks[0]) != "base.apk" {
		t.Errorf("first APK = %q, want base.apk", apks[0])
	}
}

func TestCollectSplitAPKs_Directory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"split_a.apk", "base.apk", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	apks, cleanup, err := collectSplitAPKs([]string{dir})
	defer cleanup()
	if err != nil {
		t.Fatalf("collectSplitAPKs() error: %v", err)
	}

	if len(apks) != 2 {
		t.Fatalf("expected 2 APKs, got %d: %v", len(apks), apks)
	}
	if filepath.Base(apks[0]) != "base.apk" {
		t.Errorf("first APK = %q, want base.apk", apks[0])
	}
}

func TestCollectSplitAPKs_MissingPath(t *testing.T) {
	_, cleanup, err := collectSplitAPKs([]string{"/does/not/exist"})
	defer cleanup()
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestIsBundleFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"bundle.xapk", true},
		{"bundle.XAPK", true},
		{"bundle.zip", true},
		{"bundle.apkm", true},
		{"bundle.apks", true},
		{"app.apk", false},
		{"app", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isBundleFile(tt.path); got != tt.want {
				t.Errorf("isBundleFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestValidPriority(t *testing.T) {
	for _, p := range []string{"V", "D", "I", "W", "E", "F", "S"} {
		if !ValidPriority(p) {
			t.Errorf("ValidPriority(%q) = false, want true", p)
		}
	}
	for _, p := range []string{"", "X", "VD", "v"} {
		if ValidPriority(p) {
			t.Errorf("ValidPriority(%q) = true, want false", p)
		}
	}
}
