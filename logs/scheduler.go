package logs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/rpnesseling/adbw/adb"
	"github.com/rpnesseling/adbw/utils"
)

// Capture floors. Anything shorter turns scheduled capture into busy-looping
// the device, so requests below these are clamped up.
const (
	MinCaptureDuration = 30 * time.Second
	MinCaptureInterval = 5 * time.Second

	DefaultCaptureDuration = 5 * time.Minute
	DefaultCaptureInterval = 30 * time.Second
)

// Scheduler drains the log buffer on an interval, writing each non-empty
// snapshot as a gzipped chunk file, until the total duration has elapsed.
type Scheduler struct {
	Exec     *adb.Executor
	Duration time.Duration // total capture time, default 5m, floor 30s
	Interval time.Duration // time between drains, default 30s, floor 5s
	OutDir   string        // capture directory, default scheduled_logs_<serial>_<ts>
	Redact   func(string) string
}

// Summary describes a finished (or interrupted) scheduled capture.
type Summary struct {
	ChunkCount int           `json:"chunkCount"`
	OutDir     string        `json:"outDir"`
	Elapsed    time.Duration `json:"elapsed"`
}

func (s *Scheduler) normalize() (time.Duration, time.Duration) {
	duration, interval := s.Duration, s.Interval
	if duration == 0 {
		duration = DefaultCaptureDuration
	}
	if interval == 0 {
		interval = DefaultCaptureInterval
	}
	if duration < MinCaptureDuration {
		utils.Warn("Capture duration %s is below the %s floor, using the floor", duration, MinCaptureDuration)
		duration = MinCaptureDuration
	}
	if interval < MinCaptureInterval {
		utils.Warn("Capture interval %s is below the %s floor, using the floor", interval, MinCaptureInterval)
		interval = MinCaptureInterval
	}
	return duration, interval
}

// Run captures chunks until the duration elapses or ctx is cancelled.
// Cancellation is a normal stop: the summary for the chunks written so far
// is returned without an error.
func (s *Scheduler) Run(ctx context.Context, serial string) (*Summary, error) {
	duration, interval := s.normalize()

	outDir := s.OutDir
	if outDir == "" {
		outDir = fmt.Sprintf("scheduled_logs_%s_%s", serial, utils.FileTimestamp(time.Now()))
	}
	if err := utils.EnsureDir(outDir); err != nil {
		return nil, err
	}

	sum := &Summary{OutDir: outDir}
	started := time.Now()
	defer func() { sum.Elapsed = time.Since(started) }()

	utils.Info("Scheduled capture on %s: %s total, draining every %s into %s", serial, duration, interval, outDir)

	for time.Since(started) < duration {
		snap, err := s.Exec.LogcatSnapshot(ctx, serial)
		if err != nil {
			if ctx.Err() != nil {
				return sum, nil
			}
			return sum, fmt.Errorf("failed to read log buffer: %v", err)
		}

		if strings.TrimSpace(snap) != "" {
			if s.Redact != nil {
				snap = s.Redact(snap)
			}
			sum.ChunkCount++
			raw := filepath.Join(outDir, fmt.Sprintf("logcat_chunk_%03d.txt", sum.ChunkCount))
			if err := os.WriteFile(raw, []byte(snap+"\n"), 0644); err != nil {
				return sum, fmt.Errorf("failed to write chunk: %v", err)
			}
			if err := gzipFile(raw); err != nil {
				// keep the uncompressed chunk rather than lose it
				utils.Warn("Failed to compress %s, keeping raw file: %v", raw, err)
			}
		}

		if err := s.Exec.LogcatClear(ctx, serial); err != nil && ctx.Err() == nil {
			utils.Warn("Failed to clear log buffer: %v", err)
		}

		select {
		case <-ctx.Done():
			return sum, nil
		case <-time.After(interval):
		}
	}

	return sum, nil
}

// gzipFile compresses path to path.gz at the fastest level and removes the
// original on success.
func gzipFile(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}

	zw, err := gzip.NewWriterLevel(out, gzip.BestSpeed)
	if err != nil {
		out.Close()
		return err
	}
	if _, err := io.Copy(zw, in); err != nil {
		zw.Close()
		out.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	in.Close()
	return os.Remove(path)
}
