package adb

import (
	"context"
	"fmt"
	"os"
)

// DefaultPushDir is where pushed files land when no remote path is given.
const DefaultPushDir = "/sdcard/Download/"

// Push copies a local file or directory to the device. adb prints transfer
// stats which are returned for display.
func (e *Executor) Push(ctx context.Context, serial, local, remote string) (string, error) {
	if _, err := os.Stat(local); err != nil {
		return "", fmt.Errorf("local path does not exist: %s", local)
	}
	if remote == "" {
		remote = DefaultPushDir
	}
	return e.Run(ctx, serial, "push", local, remote)
}

// Pull copies a remote file or directory from the device.
func (e *Executor) Pull(ctx context.Context, serial, remote, local string) (string, error) {
	if remote == "" {
		return "", fmt.Errorf("remote path is required")
	}
	args := []string{"pull", remote}
	if local != "" {
		args = append(args, local)
	}
	return e.Run(ctx, serial, args...)
}

// RemoveRemote deletes a file on the device. Used to clean up after
// screenshot and screenrecord pulls.
func (e *Executor) RemoveRemote(ctx context.Context, serial, remote string) error {
	_, err := e.Shell(ctx, serial, "rm", remote)
	return err
}
