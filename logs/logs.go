// Package logs implements log capture beyond plain tailing: snapshot files,
// support bundles and scheduled chunked capture with gzip compression.
package logs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rpnesseling/adbw/adb"
	"github.com/rpnesseling/adbw/utils"
)

// Service saves log output to disk. Redact, when set, is applied to all
// exported text before it is written.
type Service struct {
	Exec   *adb.Executor
	Redact func(string) string
}

func (s *Service) redact(text string) string {
	if s.Redact == nil {
		return text
	}
	return s.Redact(text)
}

// SaveSnapshot dumps the current log buffer to logcat_<serial>_<ts>.txt in
// dir (default: working directory) and returns the path.
func (s *Service) SaveSnapshot(ctx context.Context, serial, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}

	out, err := s.Exec.LogcatSnapshot(ctx, serial)
	if err != nil {
		return "", fmt.Errorf("failed to read log buffer: %v", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("logcat_%s_%s.txt", serial, utils.FileTimestamp(time.Now())))
	if err := os.WriteFile(path, []byte(s.redact(out)+"\n"), 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %v", err)
	}
	return path, nil
}

// Bundle collects a logcat snapshot and a full bugreport into
// bundle_<serial>_<ts>.zip under dir. The staging directory is removed once
// the archive is written. A failing bugreport is skipped with a warning so
// the bundle still carries the logs.
func (s *Service) Bundle(ctx context.Context, serial, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}

	name := fmt.Sprintf("bundle_%s_%s", serial, utils.FileTimestamp(time.Now()))
	staging := filepath.Join(dir, name)
	if err := utils.EnsureDir(staging); err != nil {
		return "", err
	}
	defer os.RemoveAll(staging)

	snap, err := s.Exec.LogcatSnapshot(ctx, serial)
	if err != nil {
		return "", fmt.Errorf("failed to read log buffer: %v", err)
	}
	if err := os.WriteFile(filepath.Join(staging, "logcat.txt"), []byte(s.redact(snap)+"\n"), 0644); err != nil {
		return "", fmt.Errorf("failed to stage logcat: %v", err)
	}

	utils.Info("Collecting bugreport from %s, this can take a few minutes...", serial)
	if _, err := s.Exec.Bugreport(ctx, serial, staging); err != nil {
		utils.Warn("Bugreport failed, bundling logcat only: %v", err)
	}

	zipPath := filepath.Join(dir, name+".zip")
	if err := utils.ZipDir(staging, zipPath); err != nil {
		return "", fmt.Errorf("failed to create bundle: %v", err)
	}
	return zipPath, nil
}
