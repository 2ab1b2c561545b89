package workflow

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpnesseling/adbw/adb"
	"github.com/rpnesseling/adbw/store"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		wf      store.Workflow
		wantErr string
	}{
		{
			name: "valid workflow",
			wf: store.Workflow{Name: "smoke", Steps: []store.Step{
				{Action: ActionInstallAPK, APKPath: "/tmp/app.apk"},
				{Action: ActionClearData, Package: "com.example.app"},
				{Action: ActionLaunchApp, Package: "com.example.app", Activity: ".MainActivity"},
				{Action: ActionTailLogcat, Tag: "MyApp", Priority: "W"},
			}},
		},
		{
			name:    "missing name",
			wf:      store.Workflow{Steps: []store.Step{{Action: ActionClearData, Package: "a"}}},
			wantErr: "name is required",
		},
		{
			name:    "no steps",
			wf:      store.Workflow{Name: "empty"},
			wantErr: "no steps",
		},
		{
			name: "unknown action reports step index",
			wf: store.Workflow{Name: "bad", Steps: []store.Step{
				{Action: ActionClearData, Package: "com.example.app"},
				{Action: "reboot_device"},
			}},
			wantErr: "step 2",
		},
		{
			name: "install without apk path",
			wf: store.Workflow{Name: "bad", Steps: []store.Step{
				{Action: ActionInstallAPK},
			}},
			wantErr: "apk_path is required",
		},
		{
			name: "clear data without package",
			wf: store.Workflow{Name: "bad", Steps: []store.Step{
				{Action: ActionClearData},
			}},
			wantErr: "package is required",
		},
		{
			name: "launch without package",
			wf: store.Workflow{Name: "bad", Steps: []store.Step{
				{Action: ActionLaunchApp, Activity: ".Main"},
			}},
			wantErr: "package is required",
		},
		{
			name: "tail with bad priority",
			wf: store.Workflow{Name: "bad", Steps: []store.Step{
				{Action: ActionTailLogcat, Priority: "X"},
			}},
			wantErr: "priority",
		},
		{
			name: "tail with empty tag and priority is fine",
			wf: store.Workflow{Name: "ok", Steps: []store.Step{
				{Action: ActionTailLogcat},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.wf)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRunContinuesPastBadSteps(t *testing.T) {
	// a non-existent adb binary makes every executed step fail, while
	// invalid steps must be skipped without ever reaching the binary
	runner := &Runner{Exec: adb.NewWithPath("/nonexistent/adb"), LogWriter: &strings.Builder{}}

	wf := store.Workflow{Name: "mixed", Steps: []store.Step{
		{Action: "fly_to_moon"},
		{Action: ActionClearData, Package: "com.example.app"},
		{Action: ActionInstallAPK},
	}}

	report, err := runner.Run(context.Background(), "emulator-5554", wf)
	require.NoError(t, err)
	require.Len(t, report.Steps, 3)

	assert.Equal(t, StepSkipped, report.Steps[0].Status)
	assert.Contains(t, report.Steps[0].Message, "unknown action")
	assert.Equal(t, StepFailed, report.Steps[1].Status)
	assert.Equal(t, StepSkipped, report.Steps[2].Status)
	assert.Contains(t, report.Steps[2].Message, "apk_path")

	assert.Equal(t, 1, report.Failed())
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "mixed", report.Workflow)
	assert.Equal(t, "emulator-5554", report.Serial)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	runner := &Runner{Exec: adb.NewWithPath("/nonexistent/adb")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wf := store.Workflow{Name: "never", Steps: []store.Step{
		{Action: ActionClearData, Package: "com.example.app"},
	}}

	report, err := runner.Run(ctx, "emulator-5554", wf)
	require.Error(t, err)
	assert.Empty(t, report.Steps)
}
