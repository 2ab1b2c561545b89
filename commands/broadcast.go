package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// DeviceResult is the per-device outcome of a broadcast operation.
type DeviceResult struct {
	Serial  string `json:"serial"`
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// InstallAllCommand installs an APK on every device in state "device",
// continuing past per-device failures. The response data carries the
// per-device results and counts.
func InstallAllCommand(ctx context.Context, apkPath string) *CommandResponse {
	if apkPath == "" {
		return NewErrorResponse(fmt.Errorf("APK path is required"))
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}

	devs, err := exec.Devices(ctx)
	if err != nil {
		return NewErrorResponse(err)
	}

	var results []DeviceResult
	installed := 0
	for _, d := range devs {
		if !d.Online() {
			continue
		}
		resp := InstallAppCommand(ctx, InstallRequest{Device: d.Serial, Path: apkPath, SkipCheck: true})
		result := DeviceResult{Serial: d.Serial, OK: resp.Status == "ok"}
		if result.OK {
			installed++
			result.Message = "installed"
		} else {
			result.Message = resp.Error
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		return NewErrorResponse(fmt.Errorf("no online devices found"))
	}
	return NewSuccessResponse(map[string]interface{}{
		"results": results,
		"message": fmt.Sprintf("Installed on %d of %d devices", installed, len(results)),
	})
}

// ShellAllCommand runs a shell command on every online device, writing the
// output to w grouped under a colored per-device header.
func ShellAllCommand(ctx context.Context, cmd string, w io.Writer) *CommandResponse {
	if strings.TrimSpace(cmd) == "" {
		return NewErrorResponse(fmt.Errorf("a shell command is required"))
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}

	devs, err := exec.Devices(ctx)
	if err != nil {
		return NewErrorResponse(err)
	}

	header := color.New(color.FgCyan, color.Bold)
	failure := color.New(color.FgRed)

	outputs := map[string]string{}
	ran := 0
	for _, d := range devs {
		if !d.Online() {
			continue
		}
		ran++
		header.Fprintf(w, "==== %s ====\n", d.Label())

		out, err := exec.Shell(ctx, d.Serial, strings.Fields(cmd)...)
		if err != nil {
			failure.Fprintf(w, "error: %v\n\n", err)
			outputs[d.Serial] = fmt.Sprintf("error: %v", err)
			continue
		}
		fmt.Fprintf(w, "%s\n\n", out)
		outputs[d.Serial] = out
	}

	if ran == 0 {
		return NewErrorResponse(fmt.Errorf("no online devices found"))
	}
	return NewSuccessResponse(outputs)
}
