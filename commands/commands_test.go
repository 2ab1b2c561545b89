package commands

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpnesseling/adbw/config"
	"github.com/rpnesseling/adbw/diag"
	"github.com/rpnesseling/adbw/store"
)

// configure points the command layer at a temp store and a bogus adb path,
// so device-touching commands fail fast instead of reaching an adb binary
// on the test machine.
func configure(t *testing.T) {
	t.Helper()
	Configure(&config.Config{
		ADBPath:  "/nonexistent/adb",
		StoreDir: t.TempDir(),
	})
}

func TestConfigureWiresStores(t *testing.T) {
	configure(t)

	require.NotNil(t, Config())
	require.NotNil(t, Stores())

	_, err := Exec()
	assert.ErrorContains(t, err, "configured adb path does not exist")
}

func TestDeviceCommandsFailCleanlyWithoutAdb(t *testing.T) {
	configure(t)
	ctx := context.Background()

	for name, resp := range map[string]*CommandResponse{
		"devices":    DevicesCommand(ctx, false),
		"summary":    DeviceSummaryCommand(ctx, ""),
		"screenshot": ScreenshotCommand(ctx, "", ""),
		"shell":      ShellCommand(ctx, "", []string{"id"}),
		"forward":    ForwardCommand(ctx, "", "list", "", ""),
	} {
		assert.Equal(t, "error", resp.Status, name)
		assert.NotEmpty(t, resp.Error, name)
	}
}

func TestValidationRunsBeforeDeviceAccess(t *testing.T) {
	configure(t)
	ctx := context.Background()

	tests := []struct {
		name string
		resp *CommandResponse
		want string
	}{
		{"install without path", InstallAppCommand(ctx, InstallRequest{}), "APK path is required"},
		{"split install without paths", InstallSplitCommand(ctx, "", nil, false), "at least one APK path is required"},
		{"uninstall without package", UninstallAppCommand(ctx, "", "", false), "package name is required"},
		{"launch without package", LaunchAppCommand(ctx, "", "", ""), "package name is required"},
		{"list with unknown filter", ListAppsCommand(ctx, "", "bogus", false), "unknown package filter"},
		{"reboot with unknown mode", RebootCommand(ctx, "", "sideways"), "unknown reboot mode"},
		{"push without local", PushCommand(ctx, "", "", "/sdcard/"), "local path is required"},
		{"pull without remote", PullCommand(ctx, "", "", "."), "remote path is required"},
		{"open without url", OpenURLCommand(ctx, "", ""), "URL is required"},
		{"start without component", StartIntentCommand(ctx, "", "", nil), "component"},
		{"broadcast without action", BroadcastIntentCommand(ctx, "", "", nil), "broadcast action is required"},
		{"connect without address", WifiConnectCommand(ctx, ""), "device address is required"},
		{"shell without command", ShellCommand(ctx, "", nil), "shell command is required"},
		{"search without term", SearchPackagesCommand(ctx, "", ""), "search term is required"},
		{"restore without snapshot", RestoreSettingsCommand(ctx, "", "", nil), "snapshot file is required"},
		{"broadcast install without apk", InstallAllCommand(ctx, ""), "APK path is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, "error", tt.resp.Status)
			assert.Contains(t, tt.resp.Error, tt.want)
		})
	}
}

func TestWorkflowCommandsRoundTrip(t *testing.T) {
	configure(t)

	save := WorkflowSaveCommand(store.Workflow{
		Name: "smoke",
		Steps: []store.Step{
			{Action: "clear_data", Package: "com.example.app"},
			{Action: "launch_app", Package: "com.example.app"},
		},
	})
	require.Equal(t, "ok", save.Status, save.Error)

	list := WorkflowListCommand()
	require.Equal(t, "ok", list.Status)
	flows, ok := list.Data.([]store.Workflow)
	require.True(t, ok)
	require.Len(t, flows, 1)
	assert.Equal(t, "smoke", flows[0].Name)

	require.Equal(t, "ok", WorkflowShowCommand("smoke").Status)
	require.Equal(t, "ok", WorkflowDeleteCommand("smoke").Status)
	assert.Equal(t, "error", WorkflowShowCommand("smoke").Status)
}

func TestWorkflowSaveRejectsInvalidSteps(t *testing.T) {
	configure(t)

	resp := WorkflowSaveCommand(store.Workflow{
		Name:  "bad",
		Steps: []store.Step{{Action: "warp_drive"}},
	})
	require.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "unknown action")

	resp = WorkflowSaveCommand(store.Workflow{
		Name:  "bad",
		Steps: []store.Step{{Action: "install_apk"}},
	})
	require.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "apk_path is required")

	assert.Empty(t, stores.Workflows(), "invalid workflows must not be persisted")
}

func TestProfileAndAliasCommands(t *testing.T) {
	configure(t)

	require.Equal(t, "ok", ProfileSaveCommand("dev", store.Profile{Package: "com.example.app"}).Status)

	show := ProfileShowCommand("dev")
	require.Equal(t, "ok", show.Status)
	p, ok := show.Data.(*store.Profile)
	require.True(t, ok)
	assert.Equal(t, "com.example.app", p.Package)

	require.Equal(t, "ok", ProfileDeleteCommand("dev").Status)
	assert.Equal(t, "error", ProfileShowCommand("dev").Status)

	require.Equal(t, "ok", AliasSetCommand("pixel", "R5CR1234567").Status)
	aliases, ok := AliasListCommand().Data.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "R5CR1234567", aliases["pixel"])

	require.Equal(t, "ok", AliasRemoveCommand("pixel").Status)
	assert.Equal(t, "error", AliasSetCommand("", "").Status)
}

func TestDevLoopOptionsMerged(t *testing.T) {
	configure(t)
	require.Equal(t, "ok", ProfileSaveCommand("app", store.Profile{
		Package: "com.example.app",
		APKPath: "/tmp/app.apk",
		LogTag:  "ExampleApp",
	}).Status)

	merged, err := DevLoopOptions{Profile: "app", Activity: ".Main"}.merged(stores)
	require.NoError(t, err)
	assert.Equal(t, "com.example.app", merged.Package)
	assert.Equal(t, ".Main", merged.Activity, "explicit values override the profile")
	assert.Equal(t, "/tmp/app.apk", merged.APKPath)
	assert.Equal(t, "ExampleApp", merged.LogTag)

	_, err = DevLoopOptions{Profile: "missing"}.merged(stores)
	assert.Error(t, err)
}

func TestDoctorReportsWithoutAdb(t *testing.T) {
	configure(t)

	resp := DoctorCommand(context.Background())
	require.Equal(t, "ok", resp.Status)

	checks, ok := resp.Data.([]diag.DoctorCheck)
	require.True(t, ok)
	require.NotEmpty(t, checks)

	var adbCheck *diag.DoctorCheck
	for i := range checks {
		if checks[i].Name == "adb binary" {
			adbCheck = &checks[i]
		}
	}
	require.NotNil(t, adbCheck)
	assert.False(t, adbCheck.OK)
	assert.True(t, adbCheck.Critical)
	assert.True(t, diag.CriticalFailure(checks))
}

func TestPlatformToolsOS(t *testing.T) {
	name, err := platformToolsOS()
	require.NoError(t, err)
	assert.Equal(t, runtime.GOOS, name)
}
