package adb

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/rpnesseling/adbw/utils"
)

const (
	// screenrecord refuses time limits outside 1..180 seconds
	MinRecordSeconds     = 1
	MaxRecordSeconds     = 180
	DefaultRecordSeconds = 15
)

// Screenshot captures the screen to a remote PNG, pulls it to localPath and
// removes the remote file. An empty localPath gets a timestamped default.
// Returns the local file written.
func (e *Executor) Screenshot(ctx context.Context, serial, localPath string) (string, error) {
	if localPath == "" {
		localPath = fmt.Sprintf("screenshot_%s_%s.png", serial, utils.FileTimestamp(time.Now()))
	}
	remote := path.Join("/sdcard", path.Base(localPath))

	if _, err := e.Shell(ctx, serial, "screencap", "-p", remote); err != nil {
		return "", fmt.Errorf("failed to capture screen: %v", err)
	}
	if _, err := e.Pull(ctx, serial, remote, localPath); err != nil {
		return "", fmt.Errorf("failed to pull screenshot: %v", err)
	}
	if err := e.RemoveRemote(ctx, serial, remote); err != nil {
		utils.Warn("Failed to remove remote screenshot %s: %v", remote, err)
	}

	return localPath, nil
}

// ScreenRecord records the screen for the given number of seconds (clamped
// to 1..180, default 15), pulls the MP4 and removes the remote file. The
// shell call gets a context deadline a little past the recording time so a
// wedged screenrecord cannot hang the tool.
func (e *Executor) ScreenRecord(ctx context.Context, serial string, seconds int, localPath string) (string, error) {
	if seconds <= 0 {
		seconds = DefaultRecordSeconds
	}
	if seconds < MinRecordSeconds {
		seconds = MinRecordSeconds
	}
	if seconds > MaxRecordSeconds {
		seconds = MaxRecordSeconds
	}

	if localPath == "" {
		localPath = fmt.Sprintf("screenrecord_%s_%s.mp4", serial, utils.FileTimestamp(time.Now()))
	}
	remote := path.Join("/sdcard", path.Base(localPath))

	recordCtx, cancel := context.WithTimeout(ctx, time.Duration(seconds+15)*time.Second)
	defer cancel()

	utils.Info("Recording %ds of screen on %s...", seconds, serial)
	if _, err := e.Shell(recordCtx, serial, "screenrecord", "--time-limit", fmt.Sprintf("%d", seconds), remote); err != nil {
		return "", fmt.Errorf("failed to record screen: %v", err)
	}
	if _, err := e.Pull(ctx, serial, remote, localPath); err != nil {
		return "", fmt.Errorf("failed to pull recording: %v", err)
	}
	if err := e.RemoveRemote(ctx, serial, remote); err != nil {
		utils.Warn("Failed to remove remote recording %s: %v", remote, err)
	}

	return localPath, nil
}
