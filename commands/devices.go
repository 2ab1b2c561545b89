package commands

import (
	"context"
	"fmt"

	"github.com/rpnesseling/adbw/adb"
)

// DevicesCommand lists attached devices. With includeAVDs, Android Virtual
// Devices that are not running are appended as offline emulator entries.
func DevicesCommand(ctx context.Context, includeAVDs bool) *CommandResponse {
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}

	devs, err := exec.Devices(ctx)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error getting devices: %v", err))
	}
	if includeAVDs {
		devs = append(devs, adb.OfflineAVDDevices(devs)...)
	}
	if devs == nil {
		devs = []adb.Device{}
	}

	return NewSuccessResponse(devs)
}

// DeviceInfoCommand returns the device entry for one device.
func DeviceInfoCommand(ctx context.Context, serialOrAlias string) *CommandResponse {
	device, err := ResolveDevice(ctx, serialOrAlias)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(device)
}

// DeviceSummaryCommand returns model, brand, Android version and related
// identity props for one device.
func DeviceSummaryCommand(ctx context.Context, serialOrAlias string) *CommandResponse {
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	device, err := ResolveDevice(ctx, serialOrAlias)
	if err != nil {
		return NewErrorResponse(err)
	}

	summary, err := exec.Summary(ctx, device.Serial)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to read device summary: %v", err))
	}
	summary["serial"] = device.Serial
	return NewSuccessResponse(summary)
}

// RebootCommand reboots a device into the given mode: empty for a normal
// reboot, or recovery / bootloader.
func RebootCommand(ctx context.Context, serialOrAlias, mode string) *CommandResponse {
	switch mode {
	case "", "normal", "recovery", "bootloader":
	default:
		return NewErrorResponse(fmt.Errorf("unknown reboot mode %q, expected normal, recovery or bootloader", mode))
	}
	if mode == "normal" {
		mode = ""
	}

	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	device, err := ResolveDevice(ctx, serialOrAlias)
	if err != nil {
		return NewErrorResponse(err)
	}

	if err := exec.Reboot(ctx, device.Serial, mode); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to reboot %s: %v", device.Serial, err))
	}

	target := "system"
	if mode != "" {
		target = mode
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Rebooting %s into %s", device.Serial, target),
	})
}
