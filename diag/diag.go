// Package diag builds device diagnostics: health reports, settings
// snapshots with restore, network reports and a process inspector.
package diag

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rpnesseling/adbw/adb"
	"github.com/rpnesseling/adbw/utils"
)

const connectivityPreviewLimit = 4000

// Reporter writes diagnostic report files. Redact, when set, is applied to
// every report before it hits disk.
type Reporter struct {
	Exec   *adb.Executor
	Redact func(string) string
	OutDir string // default: working directory
}

func (r *Reporter) outPath(name string) string {
	if r.OutDir == "" {
		return name
	}
	return filepath.Join(r.OutDir, name)
}

func (r *Reporter) redact(text string) string {
	if r.Redact == nil {
		return text
	}
	return r.Redact(text)
}

// probe runs one shell command and folds a failure into the output text so
// a single broken probe never sinks the whole report.
func (r *Reporter) probe(ctx context.Context, serial string, args ...string) string {
	out, err := r.Exec.Shell(ctx, serial, args...)
	if err != nil {
		return fmt.Sprintf("probe failed: %v", err)
	}
	return out
}

// HealthReport probes device identity, storage, battery, thermals and
// routing, then writes a sectioned text report and a JSON twin. Returns the
// two paths.
func (r *Reporter) HealthReport(ctx context.Context, serial string) (string, string, error) {
	sections := []struct {
		key   string
		title string
		args  []string
	}{
		{"model", "Model", []string{"getprop", "ro.product.model"}},
		{"brand", "Brand", []string{"getprop", "ro.product.brand"}},
		{"androidVersion", "Android version", []string{"getprop", "ro.build.version.release"}},
		{"apiLevel", "API level", []string{"getprop", "ro.build.version.sdk"}},
		{"storage", "Storage (df -h)", []string{"df", "-h"}},
		{"battery", "Battery (dumpsys battery)", []string{"dumpsys", "battery"}},
		{"thermal", "Thermals (dumpsys thermalservice)", []string{"dumpsys", "thermalservice"}},
		{"routing", "Routing (ip route)", []string{"ip", "route"}},
	}

	report := make(map[string]string, len(sections)+2)
	report["serial"] = serial
	report["taken"] = time.Now().Format(time.RFC3339)

	var text strings.Builder
	fmt.Fprintf(&text, "Health report for %s, taken %s\n", serial, report["taken"])
	for _, s := range sections {
		out := r.probe(ctx, serial, s.args...)
		report[s.key] = out
		fmt.Fprintf(&text, "\n==== %s ====\n%s\n", s.title, out)
	}

	ts := utils.FileTimestamp(time.Now())
	txtPath := r.outPath(fmt.Sprintf("health_report_%s_%s.txt", serial, ts))
	jsonPath := r.outPath(fmt.Sprintf("health_report_%s_%s.json", serial, ts))

	if err := os.WriteFile(txtPath, []byte(r.redact(text.String())), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write health report: %v", err)
	}

	for k, v := range report {
		report[k] = r.redact(v)
	}
	blob, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", "", err
	}
	if err := os.WriteFile(jsonPath, append(blob, '\n'), 0644); err != nil {
		return "", "", fmt.Errorf("failed to write health report json: %v", err)
	}

	return txtPath, jsonPath, nil
}

// DeviceSnapshot is a point-in-time capture of installed packages, system
// properties and the three settings namespaces.
type DeviceSnapshot struct {
	Serial     string                       `json:"serial"`
	Taken      time.Time                    `json:"taken"`
	Packages   []string                     `json:"packages"`
	ThirdParty []string                     `json:"thirdPartyPackages"`
	Props      map[string]string            `json:"props"`
	Settings   map[string]map[string]string `json:"settings"`
}

// SettingsNamespaces lists the settings areas captured and restored.
var SettingsNamespaces = []string{"global", "system", "secure"}

var getpropLineRe = regexp.MustCompile(`^\[(.+?)\]: \[(.*)\]$`)

func parseGetprop(out string) map[string]string {
	props := map[string]string{}
	for _, line := range strings.Split(out, "\n") {
		if m := getpropLineRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			props[m[1]] = m[2]
		}
	}
	return props
}

func parseSettingsList(out string) map[string]string {
	settings := map[string]string{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if k, v, ok := strings.Cut(line, "="); ok {
			settings[k] = v
		}
	}
	return settings
}

// Snapshot captures packages, props and settings to
// device_snapshot_<serial>_<ts>.json and returns the path.
func (r *Reporter) Snapshot(ctx context.Context, serial string) (string, error) {
	snap := &DeviceSnapshot{
		Serial:   serial,
		Taken:    time.Now(),
		Settings: map[string]map[string]string{},
	}

	all, err := r.Exec.ListPackages(ctx, serial, adb.PackagesAll, false)
	if err != nil {
		return "", fmt.Errorf("failed to list packages: %v", err)
	}
	for _, p := range all {
		snap.Packages = append(snap.Packages, p.Name)
	}
	sort.Strings(snap.Packages)

	third, err := r.Exec.ListPackages(ctx, serial, adb.PackagesThirdParty, false)
	if err != nil {
		return "", fmt.Errorf("failed to list third-party packages: %v", err)
	}
	for _, p := range third {
		snap.ThirdParty = append(snap.ThirdParty, p.Name)
	}
	sort.Strings(snap.ThirdParty)

	props, err := r.Exec.Shell(ctx, serial, "getprop")
	if err != nil {
		return "", fmt.Errorf("failed to read properties: %v", err)
	}
	snap.Props = parseGetprop(props)

	for _, ns := range SettingsNamespaces {
		out, err := r.Exec.Shell(ctx, serial, "settings", "list", ns)
		if err != nil {
			utils.Warn("Failed to read %s settings: %v", ns, err)
			snap.Settings[ns] = map[string]string{}
			continue
		}
		snap.Settings[ns] = parseSettingsList(out)
	}

	blob, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", err
	}

	path := r.outPath(fmt.Sprintf("device_snapshot_%s_%s.json", serial, utils.FileTimestamp(time.Now())))
	if err := os.WriteFile(path, []byte(r.redact(string(blob))+"\n"), 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %v", err)
	}
	return path, nil
}

// RestoreSummary counts what a settings restore actually did.
type RestoreSummary struct {
	Applied int      `json:"applied"`
	Failed  int      `json:"failed"`
	Skipped []string `json:"skippedNamespaces,omitempty"`
}

// ReadSnapshot loads a snapshot file written by Snapshot.
func ReadSnapshot(path string) (*DeviceSnapshot, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %v", err)
	}
	var snap DeviceSnapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return nil, fmt.Errorf("not a valid snapshot file: %v", err)
	}
	return &snap, nil
}

// Restore writes the snapshot's settings back to the device. confirm is
// called once per namespace with its entry count; a false return skips that
// namespace. Per-entry failures are counted, never fatal.
func (r *Reporter) Restore(ctx context.Context, serial string, snap *DeviceSnapshot, confirm func(ns string, count int) bool) (*RestoreSummary, error) {
	if confirm == nil {
		return nil, fmt.Errorf("restore requires a confirmation callback")
	}

	sum := &RestoreSummary{}
	for _, ns := range SettingsNamespaces {
		entries := snap.Settings[ns]
		if len(entries) == 0 {
			continue
		}
		if !confirm(ns, len(entries)) {
			sum.Skipped = append(sum.Skipped, ns)
			continue
		}
		if ns == "secure" {
			utils.Warn("Writes to the secure namespace may be rejected without root")
		}

		keys := make([]string, 0, len(entries))
		for k := range entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if ctx.Err() != nil {
				return sum, ctx.Err()
			}
			if _, err := r.Exec.Shell(ctx, serial, "settings", "put", ns, k, entries[k]); err != nil {
				utils.Warn("Failed to restore %s/%s: %v", ns, k, err)
				sum.Failed++
				continue
			}
			sum.Applied++
		}
	}
	return sum, nil
}

// NetworkReport probes interfaces, routing, DNS, reachability and
// connectivity state into network_report_<serial>_<ts>.txt.
func (r *Reporter) NetworkReport(ctx context.Context, serial string) (string, error) {
	var text strings.Builder
	fmt.Fprintf(&text, "Network report for %s, taken %s\n", serial, time.Now().Format(time.RFC3339))

	sections := []struct {
		title string
		args  []string
	}{
		{"Interfaces (ip addr)", []string{"ip", "addr"}},
		{"Routing (ip route)", []string{"ip", "route"}},
		{"DNS properties", []string{"getprop", "|", "grep", "dns"}},
		{"Reachability (ping -c 2 8.8.8.8)", []string{"ping", "-c", "2", "8.8.8.8"}},
	}
	for _, s := range sections {
		fmt.Fprintf(&text, "\n==== %s ====\n%s\n", s.title, r.probe(ctx, serial, s.args...))
	}

	connectivity := r.probe(ctx, serial, "dumpsys", "connectivity")
	fmt.Fprintf(&text, "\n==== Connectivity (dumpsys connectivity) ====\n%s\n", truncate(connectivity, connectivityPreviewLimit))

	path := r.outPath(fmt.Sprintf("network_report_%s_%s.txt", serial, utils.FileTimestamp(time.Now())))
	if err := os.WriteFile(path, []byte(r.redact(text.String())), 0644); err != nil {
		return "", fmt.Errorf("failed to write network report: %v", err)
	}
	return path, nil
}

// ProcessReport inspects processes matching query: matching `ps -A` rows,
// `pidof`, and a truncated `dumpsys activity services` preview. The result
// is display text, nothing is written to disk.
func (r *Reporter) ProcessReport(ctx context.Context, serial, query string) (string, error) {
	if query == "" {
		return "", fmt.Errorf("a process name or package is required")
	}

	ps, err := r.Exec.Shell(ctx, serial, "ps", "-A")
	if err != nil {
		return "", fmt.Errorf("failed to list processes: %v", err)
	}

	var matched []string
	for _, line := range strings.Split(ps, "\n") {
		if strings.Contains(line, query) {
			matched = append(matched, line)
		}
	}

	var text strings.Builder
	fmt.Fprintf(&text, "==== Processes matching %q ====\n", query)
	if len(matched) == 0 {
		text.WriteString("no matching processes\n")
	} else {
		text.WriteString(strings.Join(matched, "\n") + "\n")
	}

	fmt.Fprintf(&text, "\n==== pidof %s ====\n%s\n", query, r.probe(ctx, serial, "pidof", query))
	fmt.Fprintf(&text, "\n==== Services (dumpsys activity services %s) ====\n%s\n",
		query, truncate(r.probe(ctx, serial, "dumpsys", "activity", "services", query), connectivityPreviewLimit))

	return r.redact(text.String()), nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "\n... (truncated)"
}
