package commands

import (
	"context"
	"fmt"

	"github.com/rpnesseling/adbw/adb"
)

// ForwardCommand manages host-to-device port forwards. action is one of
// list, add, remove; specs are passed through verbatim (tcp:8080,
// localabstract:name).
func ForwardCommand(ctx context.Context, device, action, local, remote string) *CommandResponse {
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	switch action {
	case "", "list":
		entries, err := exec.ForwardList(ctx, dev.Serial)
		if err != nil {
			return NewErrorResponse(err)
		}
		if entries == nil {
			entries = []adb.ForwardEntry{}
		}
		return NewSuccessResponse(entries)

	case "add":
		if local == "" || remote == "" {
			return NewErrorResponse(fmt.Errorf("forward add needs a local and a remote spec, e.g. tcp:8080 tcp:8080"))
		}
		if err := exec.ForwardAdd(ctx, dev.Serial, local, remote); err != nil {
			return NewErrorResponse(err)
		}
		return NewSuccessResponse(map[string]interface{}{
			"message": fmt.Sprintf("Forwarding %s -> %s on %s", local, remote, dev.Serial),
		})

	case "remove":
		if local == "" {
			return NewErrorResponse(fmt.Errorf("forward remove needs the local spec"))
		}
		if err := exec.ForwardRemove(ctx, dev.Serial, local); err != nil {
			return NewErrorResponse(err)
		}
		return NewSuccessResponse(map[string]interface{}{
			"message": fmt.Sprintf("Removed forward %s on %s", local, dev.Serial),
		})
	}

	return NewErrorResponse(fmt.Errorf("unknown forward action %q, expected list, add or remove", action))
}

// ReverseCommand manages device-to-host port reverses.
func ReverseCommand(ctx context.Context, device, action, remote, local string) *CommandResponse {
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	switch action {
	case "", "list":
		entries, err := exec.ReverseList(ctx, dev.Serial)
		if err != nil {
			return NewErrorResponse(err)
		}
		if entries == nil {
			entries = []adb.ForwardEntry{}
		}
		return NewSuccessResponse(entries)

	case "add":
		if remote == "" || local == "" {
			return NewErrorResponse(fmt.Errorf("reverse add needs a remote and a local spec, e.g. tcp:8080 tcp:8080"))
		}
		if err := exec.ReverseAdd(ctx, dev.Serial, remote, local); err != nil {
			return NewErrorResponse(err)
		}
		return NewSuccessResponse(map[string]interface{}{
			"message": fmt.Sprintf("Reversing %s -> %s on %s", remote, local, dev.Serial),
		})

	case "remove":
		if remote == "" {
			return NewErrorResponse(fmt.Errorf("reverse remove needs the remote spec"))
		}
		if err := exec.ReverseRemove(ctx, dev.Serial, remote); err != nil {
			return NewErrorResponse(err)
		}
		return NewSuccessResponse(map[string]interface{}{
			"message": fmt.Sprintf("Removed reverse %s on %s", remote, dev.Serial),
		})
	}

	return NewErrorResponse(fmt.Errorf("unknown reverse action %q, expected list, add or remove", action))
}
