package utils

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownloadFile_Success(t *testing.T) {
	payload := "platform-tools archive payload"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	tmpFile := filepath.Join(t.TempDir(), "archive.zip")

	err := DownloadFile(server.URL, tmpFile)
	assert.NoError(t, err, "Download should succeed")
	assert.FileExists(t, tmpFile, "Downloaded file should exist")

	content, err := os.ReadFile(tmpFile)
	assert.NoError(t, err, "Should be able to read downloaded file")
	assert.Equal(t, payload, string(content), "Downloaded content should match served payload")
}

func TestDownloadFile_HTTPError(t *testing.T) {
	// Create test server that returns 404
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Not Found"))
	}))
	defer func() { server.Close() }()

	tmpFile := filepath.Join(t.TempDir(), "download_test.txt")
	err := DownloadFile(server.URL, tmpFile)

	assert.Error(t, err, "Should return error for 404 response")
	assert.Contains(t, err.Error(), "download returned status 404", "Error should mention status code")

	assert.NoFileExists(t, tmpFile, "File should not exist after failed download")
}

func TestDownloadFile_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // shut down before the request

	err := DownloadFile(server.URL, filepath.Join(t.TempDir(), "unreachable.txt"))
	assert.Error(t, err, "Should return error when server is unreachable")
}
