package utils

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DownloadFile downloads a file from the given URL to the specified local path
func DownloadFile(url, localPath string) error {
	Verbose("Downloading %s to %s", url, localPath)
	started := time.Now()

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download file: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	file, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	defer file.Close()

	written, err := io.Copy(file, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write file: %v", err)
	}

	Verbose("Downloaded %d bytes in %s", written, time.Since(started).Round(time.Millisecond))
	return nil
}
