package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rpnesseling/adbw/commands"
	"github.com/rpnesseling/adbw/utils"
)

// DeviceParams is the common parameter shape for methods that only need a
// device. The device field may be empty for auto-selection.
type DeviceParams struct {
	Device string `json:"device,omitempty"`
}

type DevicesParams struct {
	AVDs bool `json:"avds,omitempty"`
}

type AppsListParams struct {
	Device  string `json:"device,omitempty"`
	Filter  string `json:"filter,omitempty"`
	WithUID bool   `json:"withUid,omitempty"`
}

type AppsInstallParams struct {
	Device     string `json:"device,omitempty"`
	Path       string `json:"path"`
	Downgrade  bool   `json:"downgrade,omitempty"`
	GrantPerms bool   `json:"grantPerms,omitempty"`
	SkipCheck  bool   `json:"skipCheck,omitempty"`
}

type AppsUninstallParams struct {
	Device   string `json:"device,omitempty"`
	Package  string `json:"package"`
	KeepData bool   `json:"keepData,omitempty"`
}

type AppsLaunchParams struct {
	Device   string `json:"device,omitempty"`
	Package  string `json:"package"`
	Activity string `json:"activity,omitempty"`
}

type PackageParams struct {
	Device  string `json:"device,omitempty"`
	Package string `json:"package"`
}

type LogcatSnapshotParams struct {
	Device string `json:"device,omitempty"`
	Dir    string `json:"dir,omitempty"`
}

type ShellParams struct {
	Device  string `json:"device,omitempty"`
	Command string `json:"command"`
}

type PushParams struct {
	Device string `json:"device,omitempty"`
	Local  string `json:"local"`
	Remote string `json:"remote"`
}

type PullParams struct {
	Device string `json:"device,omitempty"`
	Remote string `json:"remote"`
	Local  string `json:"local,omitempty"`
}

type WorkflowRunParams struct {
	Device string `json:"device,omitempty"`
	Name   string `json:"name"`
}

func handleDevices(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var devicesParams DevicesParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &devicesParams); err != nil {
			return nil, invalidParams("invalid parameters: %v. Expected fields: avds", err)
		}
	}

	response := commands.DevicesCommand(ctx, devicesParams.AVDs)
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleDeviceInfo(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var deviceParams DeviceParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &deviceParams); err != nil {
			return nil, invalidParams("invalid parameters: %v. Expected fields: device", err)
		}
	}

	response := commands.DeviceInfoCommand(ctx, deviceParams.Device)
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleAppsList(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var listParams AppsListParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &listParams); err != nil {
			return nil, invalidParams("invalid parameters: %v. Expected fields: device, filter, withUid", err)
		}
	}

	response := commands.ListAppsCommand(ctx, listParams.Device, listParams.Filter, listParams.WithUID)
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleAppsInstall(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, invalidParams("'params' is required with fields: device, path")
	}

	var installParams AppsInstallParams
	if err := json.Unmarshal(params, &installParams); err != nil {
		return nil, invalidParams("invalid parameters: %v. Expected fields: device, path, downgrade, grantPerms, skipCheck", err)
	}
	if installParams.Path == "" {
		return nil, invalidParams("'path' is required")
	}

	req := commands.InstallRequest{
		Device:     installParams.Device,
		Path:       installParams.Path,
		Downgrade:  installParams.Downgrade,
		GrantPerms: installParams.GrantPerms,
		SkipCheck:  installParams.SkipCheck,
	}

	response := commands.InstallAppCommand(ctx, req)
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleAppsUninstall(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, invalidParams("'params' is required with fields: device, package")
	}

	var uninstallParams AppsUninstallParams
	if err := json.Unmarshal(params, &uninstallParams); err != nil {
		return nil, invalidParams("invalid parameters: %v. Expected fields: device, package, keepData", err)
	}
	if uninstallParams.Package == "" {
		return nil, invalidParams("'package' is required")
	}

	response := commands.UninstallAppCommand(ctx, uninstallParams.Device, uninstallParams.Package, uninstallParams.KeepData)
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleAppsLaunch(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, invalidParams("'params' is required with fields: device, package, activity")
	}

	var launchParams AppsLaunchParams
	if err := json.Unmarshal(params, &launchParams); err != nil {
		return nil, invalidParams("invalid parameters: %v. Expected fields: device, package, activity", err)
	}
	if launchParams.Package == "" {
		return nil, invalidParams("'package' is required")
	}

	response := commands.LaunchAppCommand(ctx, launchParams.Device, launchParams.Package, launchParams.Activity)
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleAppsTerminate(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, invalidParams("'params' is required with fields: device, package")
	}

	var terminateParams PackageParams
	if err := json.Unmarshal(params, &terminateParams); err != nil {
		return nil, invalidParams("invalid parameters: %v. Expected fields: device, package", err)
	}
	if terminateParams.Package == "" {
		return nil, invalidParams("'package' is required")
	}

	response := commands.TerminateAppCommand(ctx, terminateParams.Device, terminateParams.Package)
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleAppsClearData(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, invalidParams("'params' is required with fields: device, package")
	}

	var clearParams PackageParams
	if err := json.Unmarshal(params, &clearParams); err != nil {
		return nil, invalidParams("invalid parameters: %v. Expected fields: device, package", err)
	}
	if clearParams.Package == "" {
		return nil, invalidParams("'package' is required")
	}

	response := commands.ClearDataCommand(ctx, clearParams.Device, clearParams.Package)
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleLogcatSnapshot(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var snapshotParams LogcatSnapshotParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &snapshotParams); err != nil {
			return nil, invalidParams("invalid parameters: %v. Expected fields: device, dir", err)
		}
	}

	response := commands.SaveLogsCommand(ctx, snapshotParams.Device, snapshotParams.Dir)
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleScreenshot(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var deviceParams DeviceParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &deviceParams); err != nil {
			return nil, invalidParams("invalid parameters: %v. Expected fields: device", err)
		}
	}

	tmp, err := os.CreateTemp("", "adbw_screenshot_*.png")
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(tmpPath) }()

	response := commands.ScreenshotCommand(ctx, deviceParams.Device, tmpPath)
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}

	imageBytes, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("error reading screenshot: %w", err)
	}

	return map[string]interface{}{
		"format": "png",
		"data":   fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(imageBytes)),
	}, nil
}

func handleShell(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, invalidParams("'params' is required with fields: device, command")
	}

	var shellParams ShellParams
	if err := json.Unmarshal(params, &shellParams); err != nil {
		return nil, invalidParams("invalid parameters: %v. Expected fields: device, command", err)
	}
	if shellParams.Command == "" {
		return nil, invalidParams("'command' is required")
	}

	response := commands.ShellCommand(ctx, shellParams.Device, strings.Fields(shellParams.Command))
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handlePush(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, invalidParams("'params' is required with fields: device, local, remote")
	}

	var pushParams PushParams
	if err := json.Unmarshal(params, &pushParams); err != nil {
		return nil, invalidParams("invalid parameters: %v. Expected fields: device, local, remote", err)
	}
	if pushParams.Local == "" || pushParams.Remote == "" {
		return nil, invalidParams("'local' and 'remote' are required")
	}

	response := commands.PushCommand(ctx, pushParams.Device, pushParams.Local, pushParams.Remote)
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handlePull(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, invalidParams("'params' is required with fields: device, remote, local")
	}

	var pullParams PullParams
	if err := json.Unmarshal(params, &pullParams); err != nil {
		return nil, invalidParams("invalid parameters: %v. Expected fields: device, remote, local", err)
	}
	if pullParams.Remote == "" {
		return nil, invalidParams("'remote' is required")
	}

	response := commands.PullCommand(ctx, pullParams.Device, pullParams.Remote, pullParams.Local)
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleForwardList(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var deviceParams DeviceParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &deviceParams); err != nil {
			return nil, invalidParams("invalid parameters: %v. Expected fields: device", err)
		}
	}

	response := commands.ForwardCommand(ctx, deviceParams.Device, "list", "", "")
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleWorkflows(ctx context.Context, params json.RawMessage) (interface{}, error) {
	response := commands.WorkflowListCommand()
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleWorkflowRun(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, invalidParams("'params' is required with fields: device, name")
	}

	var runParams WorkflowRunParams
	if err := json.Unmarshal(params, &runParams); err != nil {
		return nil, invalidParams("invalid parameters: %v. Expected fields: device, name", err)
	}
	if runParams.Name == "" {
		return nil, invalidParams("'name' is required")
	}

	// log tail steps have nowhere to stream over a unary call, so their
	// output is discarded and each one is capped at a short window
	stepCtx := func(parent context.Context) (context.Context, context.CancelFunc) {
		return context.WithTimeout(parent, 10*time.Second)
	}

	response := commands.WorkflowRunCommand(ctx, runParams.Device, runParams.Name, io.Discard, stepCtx)
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func handleHealthReport(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var deviceParams DeviceParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &deviceParams); err != nil {
			return nil, invalidParams("invalid parameters: %v. Expected fields: device", err)
		}
	}

	response := commands.HealthReportCommand(ctx, deviceParams.Device)
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func (s *Server) handleShutdown(ctx context.Context, params json.RawMessage) (interface{}, error) {
	utils.Info("Shutdown requested over RPC")

	// shut down from a goroutine so this response still gets written
	go func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Shutdown(shutdownCtx)
	}()

	return okResponse, nil
}
