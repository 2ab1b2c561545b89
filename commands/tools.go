package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rpnesseling/adbw/adb"
	"github.com/rpnesseling/adbw/utils"
)

const platformToolsURL = "https://dl.google.com/android/repository/platform-tools-latest-%s.zip"

// platformToolsOS maps the host OS to Google's download naming.
func platformToolsOS() (string, error) {
	switch runtime.GOOS {
	case "windows", "darwin", "linux":
		return runtime.GOOS, nil
	}
	return "", fmt.Errorf("no platform-tools download for %s", runtime.GOOS)
}

// DownloadPlatformToolsCommand fetches the latest platform-tools archive and
// unpacks it to ./platform-tools. An existing copy is only replaced after
// confirm returns true.
func DownloadPlatformToolsCommand(ctx context.Context, confirm func(path string) bool) *CommandResponse {
	osName, err := platformToolsOS()
	if err != nil {
		return NewErrorResponse(err)
	}

	dest := "platform-tools"
	if _, err := os.Stat(dest); err == nil {
		if confirm == nil || !confirm(dest) {
			return NewErrorResponse(fmt.Errorf("aborted, %s already exists", dest))
		}
		if err := os.RemoveAll(dest); err != nil {
			return NewErrorResponse(fmt.Errorf("failed to remove existing %s: %v", dest, err))
		}
	}

	tmp, err := os.CreateTemp("", "platform-tools-*.zip")
	if err != nil {
		return NewErrorResponse(err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	url := fmt.Sprintf(platformToolsURL, osName)
	utils.Info("Downloading %s...", url)
	if err := utils.DownloadFile(url, tmp.Name()); err != nil {
		return NewErrorResponse(err)
	}

	// the archive carries a top-level platform-tools/ directory
	if err := utils.UnzipTo(tmp.Name(), "."); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to extract platform-tools: %v", err))
	}

	adbBin := filepath.Join(dest, "adb")
	if runtime.GOOS == "windows" {
		adbBin += ".exe"
	}

	version := "unknown"
	if v, err := adb.NewWithPath(adbBin).Version(ctx); err == nil {
		version = v
	}
	return NewSuccessResponse(map[string]interface{}{
		"path":    dest,
		"version": version,
		"message": fmt.Sprintf("Installed %s (%s)", dest, version),
	})
}
