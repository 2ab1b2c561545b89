package adb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rpnesseling/adbw/utils"
)

// ErrPackageNotFound is returned when dumpsys knows nothing about a package.
var ErrPackageNotFound = errors.New("package not found")

// InstallOptions control the flags passed to `adb install`.
type InstallOptions struct {
	Replace    bool // -r
	Downgrade  bool // -d
	GrantPerms bool // -g
}

// installFailureMessages maps INSTALL_FAILED_* tokens to friendly messages.
var installFailureMessages = map[string]string{
	"INSTALL_FAILED_VERSION_DOWNGRADE":       "the APK is older than the installed version (use downgrade to force)",
	"INSTALL_FAILED_MISSING_SHARED_LIBRARY":  "the APK requires a shared library the device does not have",
	"INSTALL_FAILED_OLDER_SDK":               "the APK requires a newer Android version than the device runs",
	"INSTALL_FAILED_DUPLICATE_PACKAGE":       "a package with the same name is already installed",
	"INSTALL_FAILED_INSUFFICIENT_STORAGE":    "the device does not have enough free storage",
	"INSTALL_FAILED_UPDATE_INCOMPATIBLE":     "the installed package was signed with a different key (uninstall it first)",
	"INSTALL_FAILED_TEST_ONLY":               "the APK is marked test-only (build a release or use -t)",
	"INSTALL_FAILED_VERIFICATION_FAILURE":    "the package verifier rejected the APK",
	"INSTALL_FAILED_NO_MATCHING_ABIS":        "the APK has no native code for the device architecture",
	"INSTALL_PARSE_FAILED_NO_CERTIFICATES":   "the APK is unsigned or its signature is corrupt",
	"INSTALL_FAILED_USER_RESTRICTED":         "installation was blocked by a device policy or user setting",
	"INSTALL_FAILED_INVALID_APK":             "the APK file is invalid or corrupt",
}

var installFailedToken = regexp.MustCompile(`INSTALL_(?:PARSE_)?FAILED_[A-Z_0-9]+`)

// classifyInstallError extracts the INSTALL_FAILED_* token from adb output
// and maps it to a friendly message. Unknown tokens pass through raw.
func classifyInstallError(output string) error {
	token := installFailedToken.FindString(output)
	if token == "" {
		return fmt.Errorf("install failed: %s", strings.TrimSpace(output))
	}
	if msg, ok := installFailureMessages[token]; ok {
		return fmt.Errorf("install failed (%s): %s", token, msg)
	}
	return fmt.Errorf("install failed: %s", token)
}

// Install installs a single APK. adb prints "Success" on the last line when
// the install went through; anything else is a failure even on exit 0.
func (e *Executor) Install(ctx context.Context, serial, apkPath string, opts InstallOptions) (string, error) {
	if _, err := os.Stat(apkPath); err != nil {
		return "", fmt.Errorf("APK path does not exist: %s", apkPath)
	}

	args := []string{"install"}
	if opts.Replace {
		args = append(args, "-r")
	}
	if opts.Downgrade {
		args = append(args, "-d")
	}
	if opts.GrantPerms {
		args = append(args, "-g")
	}
	args = append(args, apkPath)

	out, err := e.Run(ctx, serial, args...)
	if err != nil {
		if out != "" {
			return out, classifyInstallError(out)
		}
		return out, err
	}
	if !strings.Contains(out, "Success") {
		return out, classifyInstallError(out)
	}
	return out, nil
}

// InstallMultiple installs split APKs with `adb install-multiple`. The input
// may be a list of APK files, a directory containing them, or a .zip/.xapk
// bundle which is extracted to a temp directory first. base.apk is ordered
// first when present.
func (e *Executor) InstallMultiple(ctx context.Context, serial string, paths []string, opts InstallOptions) (string, error) {
	apks, cleanup, err := collectSplitAPKs(paths)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return "", err
	}
	if len(apks) == 0 {
		return "", fmt.Errorf("no APK files found")
	}

	args := []string{"install-multiple"}
	if opts.Replace {
		args = append(args, "-r")
	}
	if opts.Downgrade {
		args = append(args, "-d")
	}
	if opts.GrantPerms {
		args = append(args, "-g")
	}
	args = append(args, apks...)

	out, err := e.Run(ctx, serial, args...)
	if err != nil {
		if out != "" {
			return out, classifyInstallError(out)
		}
		return out, err
	}
	if !strings.Contains(out, "Success") {
		return out, classifyInstallError(out)
	}
	return out, nil
}

// collectSplitAPKs expands the given paths into a sorted APK list with
// base.apk first. A returned cleanup function removes any temp extraction.
func collectSplitAPKs(paths []string) ([]string, func(), error) {
	cleanup := func() {}

	if len(paths) == 1 {
		info, err := os.Stat(paths[0])
		if err != nil {
			return nil, cleanup, fmt.Errorf("path does not exist: %s", paths[0])
		}

		switch {
		case info.IsDir():
			matches, err := filepath.Glob(filepath.Join(paths[0], "*.apk"))
			if err != nil {
				return nil, cleanup, err
			}
			paths = matches

		case isBundleFile(paths[0]):
			tempDir, err := utils.Unzip(paths[0])
			if err != nil {
				return nil, cleanup, fmt.Errorf("failed to extract bundle: %v", err)
			}
			cleanup = func() { os.RemoveAll(tempDir) }
			matches, err := filepath.Glob(filepath.Join(tempDir, "*.apk"))
			if err != nil {
				return nil, cleanup, err
			}
			paths = matches
		}
	}

	var apks []string
	for _, p := range paths {
		if strings.EqualFold(filepath.Ext(p), ".apk") {
			apks = append(apks, p)
		}
	}

	sort.SliceStable(apks, func(i, j int) bool {
		return filepath.Base(apks[i]) == "base.apk" && filepath.Base(apks[j]) != "base.apk"
	})

	return apks, cleanup, nil
}

func isBundleFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".xapk", ".apkm", ".apks":
		return true
	}
	return false
}

// Uninstall removes a package. keepData maps to `adb uninstall -k`.
func (e *Executor) Uninstall(ctx context.Context, serial, pkg string, keepData bool) error {
	args := []string{"uninstall"}
	if keepData {
		args = append(args, "-k")
	}
	args = append(args, pkg)

	out, err := e.Run(ctx, serial, args...)
	if err != nil {
		return err
	}
	if !strings.Contains(out, "Success") {
		return fmt.Errorf("uninstall failed: %s", out)
	}
	return nil
}

// PackageFilter selects which packages `pm list packages` reports.
type PackageFilter int

const (
	PackagesAll PackageFilter = iota
	PackagesThirdParty
	PackagesSystem
)

// PackageEntry is one parsed line of `pm list packages`.
type PackageEntry struct {
	Name string `json:"name"`
	UID  string `json:"uid,omitempty"`
}

// ListPackages lists installed packages. withUID adds -U so pm reports the
// app uid next to each package.
func (e *Executor) ListPackages(ctx context.Context, serial string, filter PackageFilter, withUID bool) ([]PackageEntry, error) {
	args := []string{"pm", "list", "packages"}
	switch filter {
	case PackagesThirdParty:
		args = append(args, "-3")
	case PackagesSystem:
		args = append(args, "-s")
	}
	if withUID {
		args = append(args, "-U")
	}

	out, err := e.Shell(ctx, serial, args...)
	if err != nil {
		return nil, err
	}
	return parsePackageList(out), nil
}

// parsePackageList parses "package:<name>[ uid:<uid>]" lines.
func parsePackageList(output string) []PackageEntry {
	var entries []PackageEntry
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "package:") {
			continue
		}
		line = strings.TrimPrefix(line, "package:")

		entry := PackageEntry{Name: line}
		if idx := strings.Index(line, " uid:"); idx >= 0 {
			entry.Name = line[:idx]
			entry.UID = strings.TrimSpace(line[idx+len(" uid:"):])
		}
		if entry.Name != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

// PackageSearch filters installed packages by case-insensitive substring,
// capped at 100 matches.
func (e *Executor) PackageSearch(ctx context.Context, serial, query string) ([]string, error) {
	entries, err := e.ListPackages(ctx, serial, PackagesAll, false)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	var matches []string
	for _, entry := range entries {
		if query == "" || strings.Contains(strings.ToLower(entry.Name), query) {
			matches = append(matches, entry.Name)
			if len(matches) == 100 {
				break
			}
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// PackageInfo is the subset of `dumpsys package` the tool reports.
type PackageInfo struct {
	Package          string `json:"package"`
	VersionName      string `json:"versionName,omitempty"`
	VersionCode      int64  `json:"versionCode,omitempty"`
	MinSdk           string `json:"minSdk,omitempty"`
	TargetSdk        string `json:"targetSdk,omitempty"`
	FirstInstallTime string `json:"firstInstallTime,omitempty"`
	LastUpdateTime   string `json:"lastUpdateTime,omitempty"`
	Installer        string `json:"installer,omitempty"`
	DataDir          string `json:"dataDir,omitempty"`
	Flags            string `json:"flags,omitempty"`
}

var (
	versionNameRe  = regexp.MustCompile(`(?m)^\s*versionName=(\S+)`)
	versionCodeRe  = regexp.MustCompile(`(?m)^\s*versionCode=(\d+)`)
	minSdkRe       = regexp.MustCompile(`minSdk=(\d+)`)
	targetSdkRe    = regexp.MustCompile(`targetSdk=(\d+)`)
	firstInstallRe = regexp.MustCompile(`(?m)^\s*firstInstallTime=(.+)$`)
	lastUpdateRe   = regexp.MustCompile(`(?m)^\s*lastUpdateTime=(.+)$`)
	installerRe    = regexp.MustCompile(`(?m)^\s*installerPackageName=(\S+)`)
	dataDirRe      = regexp.MustCompile(`(?m)^\s*dataDir=(\S+)`)
	pkgFlagsRe     = regexp.MustCompile(`(?m)^\s*(?:pkgFlags|flags)=\[\s*([^\]]*)\]`)
)

// PackageInfoQuery runs `dumpsys package <pkg>` and extracts the interesting
// fields. A package dumpsys knows nothing about yields ErrPackageNotFound.
func (e *Executor) PackageInfoQuery(ctx context.Context, serial, pkg string) (*PackageInfo, error) {
	out, err := e.Shell(ctx, serial, "dumpsys", "package", pkg)
	if err != nil {
		return nil, err
	}
	return parsePackageDump(pkg, out)
}

func parsePackageDump(pkg, out string) (*PackageInfo, error) {
	if !strings.Contains(out, "Package ["+pkg+"]") {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, pkg)
	}

	info := &PackageInfo{Package: pkg}
	if m := versionNameRe.FindStringSubmatch(out); m != nil {
		info.VersionName = m[1]
	}
	if m := versionCodeRe.FindStringSubmatch(out); m != nil {
		// first integer token; newer dumps append minSdk/targetSdk on the line
		info.VersionCode, _ = strconv.ParseInt(m[1], 10, 64)
	}
	if m := minSdkRe.FindStringSubmatch(out); m != nil {
		info.MinSdk = m[1]
	}
	if m := targetSdkRe.FindStringSubmatch(out); m != nil {
		info.TargetSdk = m[1]
	}
	if m := firstInstallRe.FindStringSubmatch(out); m != nil {
		info.FirstInstallTime = strings.TrimSpace(m[1])
	}
	if m := lastUpdateRe.FindStringSubmatch(out); m != nil {
		info.LastUpdateTime = strings.TrimSpace(m[1])
	}
	if m := installerRe.FindStringSubmatch(out); m != nil && m[1] != "null" {
		info.Installer = m[1]
	}
	if m := dataDirRe.FindStringSubmatch(out); m != nil {
		info.DataDir = m[1]
	}
	if m := pkgFlagsRe.FindStringSubmatch(out); m != nil {
		info.Flags = strings.TrimSpace(m[1])
	}

	return info, nil
}

// InstalledVersionCode returns the installed versionCode of a package, or
// false when the package is not installed.
func (e *Executor) InstalledVersionCode(ctx context.Context, serial, pkg string) (int64, bool) {
	info, err := e.PackageInfoQuery(ctx, serial, pkg)
	if err != nil {
		return 0, false
	}
	return info.VersionCode, info.VersionCode > 0
}

// ClearData wipes app data with `pm clear`. pm prints Success/Failed.
func (e *Executor) ClearData(ctx context.Context, serial, pkg string) error {
	out, err := e.Shell(ctx, serial, "pm", "clear", pkg)
	if err != nil {
		return err
	}
	if !strings.Contains(out, "Success") {
		return fmt.Errorf("failed to clear data for %s: %s", pkg, out)
	}
	return nil
}

// Grant grants a runtime permission.
func (e *Executor) Grant(ctx context.Context, serial, pkg, permission string) error {
	out, err := e.Shell(ctx, serial, "pm", "grant", pkg, permission)
	if err != nil {
		return err
	}
	// pm grant is silent on success
	if strings.Contains(out, "Exception") || strings.Contains(out, "Error") {
		return fmt.Errorf("failed to grant %s: %s", permission, out)
	}
	return nil
}

// Revoke revokes a runtime permission.
func (e *Executor) Revoke(ctx context.Context, serial, pkg, permission string) error {
	out, err := e.Shell(ctx, serial, "pm", "revoke", pkg, permission)
	if err != nil {
		return err
	}
	if strings.Contains(out, "Exception") || strings.Contains(out, "Error") {
		return fmt.Errorf("failed to revoke %s: %s", permission, out)
	}
	return nil
}

// GrantedPermissions lists the android.permission.* lines dumpsys marks as
// granted for the package.
func (e *Executor) GrantedPermissions(ctx context.Context, serial, pkg string) ([]string, error) {
	out, err := e.Shell(ctx, serial, "dumpsys", "package", pkg)
	if err != nil {
		return nil, err
	}
	return parseGrantedPermissions(out), nil
}

func parseGrantedPermissions(out string) []string {
	var granted []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, "android.permission.") {
			continue
		}
		if strings.Contains(line, "granted=true") || strings.Contains(line, "granted: true") {
			granted = append(granted, line)
		}
	}
	return granted
}
