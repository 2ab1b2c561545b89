package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rpnesseling/adbw/logs"
)

// TailLogsCommand streams logcat to w until ctx is cancelled. With an empty
// tag and priority the full unfiltered log is streamed.
func TailLogsCommand(ctx context.Context, device, tag, priority string, w io.Writer) error {
	exec, err := Exec()
	if err != nil {
		return err
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return err
	}

	if tag == "" && priority == "" {
		return exec.LogcatTail(ctx, dev.Serial, w)
	}
	return exec.LogcatTailFiltered(ctx, dev.Serial, tag, priority, w)
}

// SaveLogsCommand writes a logcat snapshot file and returns its path.
func SaveLogsCommand(ctx context.Context, device, dir string) *CommandResponse {
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	svc := &logs.Service{Exec: exec, Redact: redactHook(ctx)}
	path, err := svc.SaveSnapshot(ctx, dev.Serial, dir)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"path": path,
	})
}

// ClearLogsCommand empties the device log buffer.
func ClearLogsCommand(ctx context.Context, device string) *CommandResponse {
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	if err := exec.LogcatClear(ctx, dev.Serial); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to clear logs: %v", err))
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Cleared log buffer on %s", dev.Serial),
	})
}

// BundleLogsCommand zips a logcat snapshot and a bugreport for sharing.
func BundleLogsCommand(ctx context.Context, device, dir string) *CommandResponse {
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	svc := &logs.Service{Exec: exec, Redact: redactHook(ctx)}
	path, err := svc.Bundle(ctx, dev.Serial, dir)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"path": path,
	})
}

// ScheduledCaptureCommand drains the log buffer into gzipped chunks on an
// interval until the duration elapses or ctx is cancelled.
func ScheduledCaptureCommand(ctx context.Context, device string, duration, interval time.Duration, outDir string) *CommandResponse {
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	scheduler := &logs.Scheduler{
		Exec:     exec,
		Duration: duration,
		Interval: interval,
		OutDir:   outDir,
		Redact:   redactHook(ctx),
	}
	summary, err := scheduler.Run(ctx, dev.Serial)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(summary)
}
