package commands

import (
	"context"
	"fmt"
)

// PushCommand copies a local file or directory to the device. An empty
// remote path lands in the default download directory.
func PushCommand(ctx context.Context, device, local, remote string) *CommandResponse {
	if local == "" {
		return NewErrorResponse(fmt.Errorf("a local path is required"))
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	out, err := exec.Push(ctx, dev.Serial, local, remote)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("push failed: %v", err))
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": out,
	})
}

// PullCommand copies a remote file or directory from the device.
func PullCommand(ctx context.Context, device, remote, local string) *CommandResponse {
	if remote == "" {
		return NewErrorResponse(fmt.Errorf("a remote path is required"))
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	out, err := exec.Pull(ctx, dev.Serial, remote, local)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("pull failed: %v", err))
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": out,
	})
}
