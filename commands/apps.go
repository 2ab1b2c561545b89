package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpnesseling/adbw/adb"
	"github.com/rpnesseling/adbw/apk"
	"github.com/rpnesseling/adbw/utils"
)

// InstallRequest carries the parameters for APK installation.
type InstallRequest struct {
	Device     string `json:"device,omitempty"`
	Path       string `json:"path"`
	Downgrade  bool   `json:"downgrade,omitempty"`
	GrantPerms bool   `json:"grantPerms,omitempty"`
	SkipCheck  bool   `json:"skipCheck,omitempty"`
}

// InstallAppCommand installs a single APK. Unless SkipCheck is set, the APK
// is inspected with aapt first and downgrade or compatibility warnings are
// logged before the install. Signature-related install failures get a
// classification hint appended.
func InstallAppCommand(ctx context.Context, req InstallRequest) *CommandResponse {
	if req.Path == "" {
		return NewErrorResponse(fmt.Errorf("APK path is required"))
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	device, err := ResolveDevice(ctx, req.Device)
	if err != nil {
		return NewErrorResponse(err)
	}

	var warnings []string
	if !req.SkipCheck {
		if info, err := apk.Inspect(ctx, conf.AaptPath, req.Path); err == nil {
			warnings = apk.PreInstallCheck(ctx, exec, device.Serial, info)
			for _, w := range warnings {
				utils.Warn("%s", w)
			}
		} else {
			utils.Verbose("Skipping pre-install check: %v", err)
		}
	}

	out, err := exec.Install(ctx, device.Serial, req.Path, adb.InstallOptions{
		Replace:    true,
		Downgrade:  req.Downgrade,
		GrantPerms: req.GrantPerms,
	})
	if err != nil {
		if verdict := apk.SignatureVerdict(conf.SignatureCheckMode, err.Error()+" "+out); verdict != "" {
			return NewErrorResponse(fmt.Errorf("%v (%s)", err, verdict))
		}
		return NewErrorResponse(err)
	}

	data := map[string]interface{}{
		"message": fmt.Sprintf("Installed %s on %s", req.Path, device.Serial),
	}
	if len(warnings) > 0 {
		data["warnings"] = warnings
	}
	return NewSuccessResponse(data)
}

// InstallSplitCommand installs split APKs from a list of files, a directory
// or a bundle archive.
func InstallSplitCommand(ctx context.Context, device string, paths []string, downgrade bool) *CommandResponse {
	if len(paths) == 0 {
		return NewErrorResponse(fmt.Errorf("at least one APK path is required"))
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	if _, err := exec.InstallMultiple(ctx, dev.Serial, paths, adb.InstallOptions{
		Replace:   true,
		Downgrade: downgrade,
	}); err != nil {
		return NewErrorResponse(err)
	}

	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Installed split APKs on %s", dev.Serial),
	})
}

// UninstallAppCommand removes a package, optionally keeping its data.
func UninstallAppCommand(ctx context.Context, device, pkg string, keepData bool) *CommandResponse {
	if pkg == "" {
		return NewErrorResponse(fmt.Errorf("package name is required"))
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	if err := exec.Uninstall(ctx, dev.Serial, pkg, keepData); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to uninstall %s: %v", pkg, err))
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Uninstalled %s from %s", pkg, dev.Serial),
	})
}

// ListAppsCommand lists installed packages. filter is one of all,
// third-party, system.
func ListAppsCommand(ctx context.Context, device, filter string, withUID bool) *CommandResponse {
	var pf adb.PackageFilter
	switch filter {
	case "", "all":
		pf = adb.PackagesAll
	case "third-party", "3":
		pf = adb.PackagesThirdParty
	case "system":
		pf = adb.PackagesSystem
	default:
		return NewErrorResponse(fmt.Errorf("unknown package filter %q, expected all, third-party or system", filter))
	}

	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	entries, err := exec.ListPackages(ctx, dev.Serial, pf, withUID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to list packages: %v", err))
	}
	if entries == nil {
		entries = []adb.PackageEntry{}
	}
	return NewSuccessResponse(entries)
}

// AppInfoCommand returns the parsed dumpsys package record for one package.
func AppInfoCommand(ctx context.Context, device, pkg string) *CommandResponse {
	if pkg == "" {
		return NewErrorResponse(fmt.Errorf("package name is required"))
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	info, err := exec.PackageInfoQuery(ctx, dev.Serial, pkg)
	if err != nil {
		if errors.Is(err, adb.ErrPackageNotFound) {
			return NewErrorResponse(fmt.Errorf("package %s is not installed on %s", pkg, dev.Serial))
		}
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(info)
}

// LaunchAppCommand launches an app, by explicit activity or via the
// launcher intent.
func LaunchAppCommand(ctx context.Context, device, pkg, activity string) *CommandResponse {
	if pkg == "" {
		return NewErrorResponse(fmt.Errorf("package name is required"))
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	if err := exec.Launch(ctx, dev.Serial, pkg, activity); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to launch %s: %v", pkg, err))
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Launched %s on %s", pkg, dev.Serial),
	})
}

// TerminateAppCommand force-stops an app.
func TerminateAppCommand(ctx context.Context, device, pkg string) *CommandResponse {
	if pkg == "" {
		return NewErrorResponse(fmt.Errorf("package name is required"))
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	if err := exec.ForceStop(ctx, dev.Serial, pkg); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to stop %s: %v", pkg, err))
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Stopped %s on %s", pkg, dev.Serial),
	})
}

// ClearDataCommand wipes an app's data and cache.
func ClearDataCommand(ctx context.Context, device, pkg string) *CommandResponse {
	if pkg == "" {
		return NewErrorResponse(fmt.Errorf("package name is required"))
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	if err := exec.ClearData(ctx, dev.Serial, pkg); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to clear data of %s: %v", pkg, err))
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Cleared data of %s on %s", pkg, dev.Serial),
	})
}

// SearchPackagesCommand finds installed packages by case-insensitive
// substring.
func SearchPackagesCommand(ctx context.Context, device, query string) *CommandResponse {
	if query == "" {
		return NewErrorResponse(fmt.Errorf("a search term is required"))
	}
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	matches, err := exec.PackageSearch(ctx, dev.Serial, query)
	if err != nil {
		return NewErrorResponse(err)
	}
	if matches == nil {
		matches = []string{}
	}
	return NewSuccessResponse(matches)
}

// PermissionsCommand lists granted permissions, or grants/revokes one.
// action is one of list, grant, revoke.
func PermissionsCommand(ctx context.Context, device, action, pkg, permission string) *CommandResponse {
	if pkg == "" {
		return NewErrorResponse(fmt.Errorf("package name is required"))
	}
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
		perms, err := exec.GrantedPermissions(ctx, dev.Serial, pkg)
		if err != nil {
			return NewErrorResponse(err)
		}
		if perms == nil {
			perms = []string{}
		}
		return NewSuccessResponse(perms)

	case "grant":
		if permission == "" {
			return NewErrorResponse(fmt.Errorf("a permission name is required"))
		}
		if err := exec.Grant(ctx, dev.Serial, pkg, permission); err != nil {
			return NewErrorResponse(err)
		}
		return NewSuccessResponse(map[string]interface{}{
			"message": fmt.Sprintf("Granted %s to %s", permission, pkg),
		})

	case "revoke":
		if permission == "" {
			return NewErrorResponse(fmt.Errorf("a permission name is required"))
		}
		if err := exec.Revoke(ctx, dev.Serial, pkg, permission); err != nil {
			return NewErrorResponse(err)
		}
		return NewSuccessResponse(map[string]interface{}{
			"message": fmt.Sprintf("Revoked %s from %s", permission, pkg),
		})
	}

	return NewErrorResponse(fmt.Errorf("unknown permissions action %q, expected list, grant or revoke", action))
}
