package adb

import (
	"context"
	"fmt"
	"strings"
)

// Launch starts an app. With an activity it uses `am start -n`; without, the
// monkey launcher intent trick so the default activity does not need to be
// known. Activity names starting with "." are prefixed with the package.
func (e *Executor) Launch(ctx context.Context, serial, pkg, activity string) error {
	var out string
	var err error

	if activity != "" {
		if strings.HasPrefix(activity, ".") {
			activity = pkg + activity
		}
		out, err = e.Shell(ctx, serial, "am", "start", "-n", pkg+"/"+activity)
	} else {
		out, err = e.Shell(ctx, serial, "monkey", "-p", pkg, "-c", "android.intent.category.LAUNCHER", "1")
	}

	if err != nil {
		return fmt.Errorf("failed to launch %s: %v", pkg, err)
	}
	if strings.Contains(out, "Error") || strings.Contains(out, "No activities found") {
		return fmt.Errorf("failed to launch %s: %s", pkg, out)
	}
	return nil
}

// ForceStop stops all processes of a package.
func (e *Executor) ForceStop(ctx context.Context, serial, pkg string) error {
	_, err := e.Shell(ctx, serial, "am", "force-stop", pkg)
	if err != nil {
		return fmt.Errorf("failed to force-stop %s: %v", pkg, err)
	}
	return nil
}

// OpenURL fires a VIEW intent for the given URL or deep link.
func (e *Executor) OpenURL(ctx context.Context, serial, url string) (string, error) {
	out, err := e.Shell(ctx, serial, "am", "start", "-a", "android.intent.action.VIEW", "-d", url)
	if err != nil {
		return out, err
	}
	if strings.Contains(out, "Error") {
		return out, fmt.Errorf("failed to open %s: %s", url, out)
	}
	return out, nil
}

// StartComponent starts an explicit component (package/.Activity) with
// optional extra am arguments appended verbatim.
func (e *Executor) StartComponent(ctx context.Context, serial, component string, extras ...string) (string, error) {
	args := append([]string{"am", "start", "-n", component}, extras...)
	out, err := e.Shell(ctx, serial, args...)
	if err != nil {
		return out, err
	}
	if strings.Contains(out, "Error") {
		return out, fmt.Errorf("failed to start %s: %s", component, out)
	}
	return out, nil
}

// Broadcast sends a broadcast intent with the given action.
func (e *Executor) Broadcast(ctx context.Context, serial, action string, extras ...string) (string, error) {
	args := append([]string{"am", "broadcast", "-a", action}, extras...)
	return e.Shell(ctx, serial, args...)
}

// AmRaw runs an arbitrary `am` argument list for the cases the dedicated
// helpers do not cover.
func (e *Executor) AmRaw(ctx context.Context, serial string, amArgs []string) (string, error) {
	if len(amArgs) == 0 {
		return "", fmt.Errorf("am arguments are required")
	}
	return e.Shell(ctx, serial, append([]string{"am"}, amArgs...)...)
}
