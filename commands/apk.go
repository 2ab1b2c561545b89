package commands

import (
	"context"

	"github.com/rpnesseling/adbw/apk"
)

// ApkInfoCommand inspects a local APK with aapt.
func ApkInfoCommand(ctx context.Context, apkPath string) *CommandResponse {
	info, err := apk.Inspect(ctx, conf.AaptPath, apkPath)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(info)
}

// ApkCheckCommand inspects a local APK and compares it against the selected
// device: installed version (downgrade) and device API level.
func ApkCheckCommand(ctx context.Context, device, apkPath string) *CommandResponse {
	info, err := apk.Inspect(ctx, conf.AaptPath, apkPath)
	if err != nil {
		return NewErrorResponse(err)
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	warnings := apk.PreInstallCheck(ctx, exec, dev.Serial, info)
	data := map[string]interface{}{
		"apk":      info,
		"device":   dev.Serial,
		"warnings": warnings,
	}
	if len(warnings) == 0 {
		data["message"] = "No installation concerns found"
	}
	return NewSuccessResponse(data)
}
