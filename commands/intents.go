package commands

import (
	"context"
	"fmt"
)

// OpenURLCommand opens a URL or deep link on the device.
func OpenURLCommand(ctx context.Context, device, url string) *CommandResponse {
	if url == "" {
		return NewErrorResponse(fmt.Errorf("a URL is required"))
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	if _, err := exec.OpenURL(ctx, dev.Serial, url); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to open %s: %v", url, err))
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Opened %s on %s", url, dev.Serial),
	})
}

// StartIntentCommand starts an explicit component, with optional
// `--es key value` style extras passed through to am.
func StartIntentCommand(ctx context.Context, device, component string, extras []string) *CommandResponse {
	if component == "" {
		return NewErrorResponse(fmt.Errorf("a component (package/activity) is required"))
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	out, err := exec.StartComponent(ctx, dev.Serial, component, extras...)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": out,
	})
}

// BroadcastIntentCommand sends a broadcast with the given action.
func BroadcastIntentCommand(ctx context.Context, device, action string, extras []string) *CommandResponse {
	if action == "" {
		return NewErrorResponse(fmt.Errorf("a broadcast action is required"))
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	out, err := exec.Broadcast(ctx, dev.Serial, action, extras...)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": out,
	})
}

// AmRawCommand passes an argument list to am unchanged, for intents the
// structured commands cannot express.
func AmRawCommand(ctx context.Context, device string, amArgs []string) *CommandResponse {
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	out, err := exec.AmRaw(ctx, dev.Serial, amArgs)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": out,
	})
}
