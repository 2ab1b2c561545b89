package commands

import (
	"context"
	"fmt"

	"github.com/rpnesseling/adbw/diag"
)

func reporter(ctx context.Context) (*diag.Reporter, error) {
	exec, err := Exec()
	if err != nil {
		return nil, err
	}
	return &diag.Reporter{Exec: exec, Redact: redactHook(ctx)}, nil
}

// HealthReportCommand writes the text and JSON health reports and returns
// their paths.
func HealthReportCommand(ctx context.Context, device string) *CommandResponse {
	r, err := reporter(ctx)
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	txtPath, jsonPath, err := r.HealthReport(ctx, dev.Serial)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"text": txtPath,
		"json": jsonPath,
	})
}

// DeviceSnapshotCommand captures packages, props and settings to a JSON
// snapshot file.
func DeviceSnapshotCommand(ctx context.Context, device string) *CommandResponse {
	r, err := reporter(ctx)
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	path, err := r.Snapshot(ctx, dev.Serial)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"path": path,
	})
}

// RestoreSettingsCommand writes a snapshot's settings back to the device.
// confirm is asked once per namespace before anything is applied.
func RestoreSettingsCommand(ctx context.Context, device, snapshotPath string, confirm func(ns string, count int) bool) *CommandResponse {
	if snapshotPath == "" {
		return NewErrorResponse(fmt.Errorf("a snapshot file is required"))
	}
	r, err := reporter(ctx)
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	snap, err := diag.ReadSnapshot(snapshotPath)
	if err != nil {
		return NewErrorResponse(err)
	}

	summary, err := r.Restore(ctx, dev.Serial, snap, confirm)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(summary)
}

// NetworkReportCommand writes the network diagnostics report and returns
// its path.
func NetworkReportCommand(ctx context.Context, device string) *CommandResponse {
	r, err := reporter(ctx)
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	path, err := r.NetworkReport(ctx, dev.Serial)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"path": path,
	})
}

// ProcessInspectCommand returns process, pid and service details for
// processes matching query.
func ProcessInspectCommand(ctx context.Context, device, query string) *CommandResponse {
	r, err := reporter(ctx)
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	text, err := r.ProcessReport(ctx, dev.Serial, query)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"report": text,
	})
}
