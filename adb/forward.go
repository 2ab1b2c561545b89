package adb

import (
	"context"
	"fmt"
	"strings"
)

// ForwardEntry is one row of `adb forward --list` / `adb reverse --list`.
type ForwardEntry struct {
	Serial string `json:"serial"`
	Local  string `json:"local"`
	Remote string `json:"remote"`
}

// ForwardList lists active host-to-device forwards for a device.
func (e *Executor) ForwardList(ctx context.Context, serial string) ([]ForwardEntry, error) {
	out, err := e.Run(ctx, serial, "forward", "--list")
	if err != nil {
		return nil, err
	}
	return parseForwardList(out), nil
}

// ForwardAdd adds a forward. Specs (tcp:8080, localabstract:name) are
// passed through verbatim.
func (e *Executor) ForwardAdd(ctx context.Context, serial, local, remote string) error {
	if local == "" || remote == "" {
		return fmt.Errorf("local and remote specs are required")
	}
	_, err := e.Run(ctx, serial, "forward", local, remote)
	return err
}

// ForwardRemove removes the forward bound to the local spec.
func (e *Executor) ForwardRemove(ctx context.Context, serial, local string) error {
	_, err := e.Run(ctx, serial, "forward", "--remove", local)
	return err
}

// ReverseList lists active device-to-host reverses.
func (e *Executor) ReverseList(ctx context.Context, serial string) ([]ForwardEntry, error) {
	out, err := e.Run(ctx, serial, "reverse", "--list")
	if err != nil {
		return nil, err
	}
	return parseForwardList(out), nil
}

// ReverseAdd adds a reverse (device connections to remote land on local).
func (e *Executor) ReverseAdd(ctx context.Context, serial, remote, local string) error {
	if remote == "" || local == "" {
		return fmt.Errorf("remote and local specs are required")
	}
	_, err := e.Run(ctx, serial, "reverse", remote, local)
	return err
}

// ReverseRemove removes the reverse bound to the remote spec.
func (e *Executor) ReverseRemove(ctx context.Context, serial, remote string) error {
	_, err := e.Run(ctx, serial, "reverse", "--remove", remote)
	return err
}

// parseForwardList parses "<serial> <local> <remote>" rows.
func parseForwardList(out string) []ForwardEntry {
	var entries []ForwardEntry
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) != 3 {
			continue
		}
		entries = append(entries, ForwardEntry{
			Serial: fields[0],
			Local:  fields[1],
			Remote: fields[2],
		})
	}
	return entries
}
