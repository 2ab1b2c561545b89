// Package apk reads APK metadata out of `aapt dump badging` output and runs
// pre-install checks against a device.
package apk

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/rpnesseling/adbw/adb"
)

// Info is the metadata aapt reports for an APK.
type Info struct {
	Package     string `json:"package"`
	VersionCode int64  `json:"versionCode"`
	VersionName string `json:"versionName"`
	Label       string `json:"label,omitempty"`
	MinSDK      int    `json:"minSdk,omitempty"`
	TargetSDK   int    `json:"targetSdk,omitempty"`
}

var (
	badgingNameRe        = regexp.MustCompile(`(?m)^package:.*\bname='([^']*)'`)
	badgingVersionCodeRe = regexp.MustCompile(`(?m)^package:.*\bversionCode='([^']*)'`)
	badgingVersionNameRe = regexp.MustCompile(`(?m)^package:.*\bversionName='([^']*)'`)
	badgingLabelRe       = regexp.MustCompile(`(?m)^application-label:'([^']*)'`)
	badgingSdkRe         = regexp.MustCompile(`(?m)^sdkVersion:'([^']*)'`)
	badgingTargetSdkRe   = regexp.MustCompile(`(?m)^targetSdkVersion:'([^']*)'`)
)

// ParseBadging extracts package metadata from `aapt dump badging` text.
// Output without a package line is rejected.
func ParseBadging(out string) (*Info, error) {
	name := badgingNameRe.FindStringSubmatch(out)
	if name == nil {
		return nil, fmt.Errorf("no package line in aapt output, not a valid APK dump")
	}

	info := &Info{Package: name[1]}
	if m := badgingVersionCodeRe.FindStringSubmatch(out); m != nil {
		info.VersionCode, _ = strconv.ParseInt(m[1], 10, 64)
	}
	if m := badgingVersionNameRe.FindStringSubmatch(out); m != nil {
		info.VersionName = m[1]
	}
	if m := badgingLabelRe.FindStringSubmatch(out); m != nil {
		info.Label = m[1]
	}
	if m := badgingSdkRe.FindStringSubmatch(out); m != nil {
		info.MinSDK, _ = strconv.Atoi(m[1])
	}
	if m := badgingTargetSdkRe.FindStringSubmatch(out); m != nil {
		info.TargetSDK, _ = strconv.Atoi(m[1])
	}
	return info, nil
}

// ResolveAapt locates the aapt binary: explicit path first, then $PATH.
func ResolveAapt(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("aapt not found at %s: %v", explicit, err)
		}
		return explicit, nil
	}
	path, err := exec.LookPath("aapt")
	if err != nil {
		return "", fmt.Errorf("aapt not found, install the Android build-tools and add them to PATH or set aapt_path in the config")
	}
	return path, nil
}

// Inspect runs `aapt dump badging` on the APK and parses the result.
func Inspect(ctx context.Context, aaptPath, apkPath string) (*Info, error) {
	if _, err := os.Stat(apkPath); err != nil {
		return nil, fmt.Errorf("apk not found: %v", err)
	}
	aapt, err := ResolveAapt(aaptPath)
	if err != nil {
		return nil, err
	}

	out, err := exec.CommandContext(ctx, aapt, "dump", "badging", apkPath).CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("aapt dump badging failed: %v: %s", err, strings.TrimSpace(string(out)))
	}
	return ParseBadging(string(out))
}

// PreInstallCheck compares the APK against what the device already runs and
// returns human-readable warnings. An APK with a lower versionCode than the
// installed one triggers a downgrade warning; a device API level below the
// APK minimum triggers a compatibility warning.
func PreInstallCheck(ctx context.Context, exec *adb.Executor, serial string, info *Info) []string {
	var warnings []string

	if info.VersionCode > 0 {
		if installed, ok := exec.InstalledVersionCode(ctx, serial, info.Package); ok && installed > info.VersionCode {
			warnings = append(warnings,
				fmt.Sprintf("installed versionCode %d is newer than the APK's %d, install will need --downgrade", installed, info.VersionCode))
		}
	}

	if info.MinSDK > 0 {
		if sdk, err := exec.DeviceProp(ctx, serial, "ro.build.version.sdk"); err == nil {
			if api, err := strconv.Atoi(strings.TrimSpace(sdk)); err == nil && api < info.MinSDK {
				warnings = append(warnings,
					fmt.Sprintf("device API level %d is below the APK minimum %d", api, info.MinSDK))
			}
		}
	}

	return warnings
}
