package commands

import (
	"context"
	"fmt"
)

// ScreenshotCommand captures the device screen to a local PNG.
func ScreenshotCommand(ctx context.Context, device, outPath string) *CommandResponse {
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	path, err := exec.Screenshot(ctx, dev.Serial, outPath)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"path": path,
	})
}

// ScreenRecordCommand records the screen for up to three minutes and pulls
// the MP4.
func ScreenRecordCommand(ctx context.Context, device string, seconds int, outPath string) *CommandResponse {
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	path, err := exec.ScreenRecord(ctx, dev.Serial, seconds, outPath)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"path":    path,
		"message": fmt.Sprintf("Recorded %s", path),
	})
}
