// Package workflow plays back saved workflows: fixed-vocabulary steps
// executed sequentially against one device. A failing or invalid step never
// aborts the run; the report carries per-step outcomes.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/rpnesseling/adbw/adb"
	"github.com/rpnesseling/adbw/store"
	"github.com/rpnesseling/adbw/utils"
)

// Step actions understood by the engine.
const (
	ActionInstallAPK = "install_apk"
	ActionClearData  = "clear_data"
	ActionLaunchApp  = "launch_app"
	ActionTailLogcat = "tail_filtered_logcat"
)

// ErrUnknownAction marks a step whose action is not in the vocabulary.
var ErrUnknownAction = errors.New("unknown action")

// Actions lists the valid step actions for prompts and validation messages.
func Actions() []string {
	return []string{ActionInstallAPK, ActionClearData, ActionLaunchApp, ActionTailLogcat}
}

// Step outcome states in the run report.
const (
	StepOK      = "ok"
	StepSkipped = "skipped"
	StepFailed  = "failed"
)

// StepResult is the outcome of one executed step.
type StepResult struct {
	Index    int           `json:"index"`
	Action   string        `json:"action"`
	Status   string        `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

// RunReport summarizes one workflow playback.
type RunReport struct {
	RunID    string        `json:"runId"`
	Workflow string        `json:"workflow"`
	Serial   string        `json:"serial"`
	Steps    []StepResult  `json:"steps"`
	Started  time.Time     `json:"started"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Failed counts the steps that ended in StepFailed.
func (r *RunReport) Failed() int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == StepFailed {
			n++
		}
	}
	return n
}

// Validate checks every step of a workflow for an unknown action or a
// missing required parameter, reported with the step index.
func Validate(w store.Workflow) error {
	if w.Name == "" {
		return fmt.Errorf("workflow name is required")
	}
	if len(w.Steps) == 0 {
		return fmt.Errorf("workflow has no steps")
	}
	for i, step := range w.Steps {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		}
	}
	return nil
}

func validateStep(step store.Step) error {
	switch step.Action {
	case ActionInstallAPK:
		if step.APKPath == "" {
			return fmt.Errorf("apk_path is required")
		}
	case ActionClearData:
		if step.Package == "" {
			return fmt.Errorf("package is required")
		}
	case ActionLaunchApp:
		if step.Package == "" {
			return fmt.Errorf("package is required")
		}
	case ActionTailLogcat:
		if step.Priority != "" && !adb.ValidPriority(step.Priority) {
			return fmt.Errorf("priority %q is not one of V D I W E F S", step.Priority)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, step.Action)
	}
	return nil
}

// Runner executes workflows. LogWriter receives streamed logcat output from
// tail steps; StepCtx wraps the context handed to streaming steps so the
// caller can make Ctrl-C cancel only the current step.
type Runner struct {
	Exec      *adb.Executor
	LogWriter io.Writer
	StepCtx   func(ctx context.Context) (context.Context, context.CancelFunc)
}

// Run plays back all steps of the workflow in order. Steps with invalid
// parameters are recorded as skipped; adb failures as failed. Playback
// continues either way. Run only errors when ctx is cancelled outright.
func (r *Runner) Run(ctx context.Context, serial string, w store.Workflow) (*RunReport, error) {
	report := &RunReport{
		RunID:    uuid.New().String(),
		Workflow: w.Name,
		Serial:   serial,
		Started:  time.Now(),
	}

	utils.Info("Running workflow %s (%d steps) on %s, run %s", w.Name, len(w.Steps), serial, report.RunID)

	for i, step := range w.Steps {
		if ctx.Err() != nil {
			report.Elapsed = time.Since(report.Started)
			return report, ctx.Err()
		}

		started := time.Now()
		result := StepResult{Index: i + 1, Action: step.Action}

		if err := validateStep(step); err != nil {
			result.Status = StepSkipped
			result.Message = err.Error()
			utils.Warn("Step %d skipped: %v", i+1, err)
		} else if err := r.runStep(ctx, serial, step); err != nil {
			result.Status = StepFailed
			result.Message = err.Error()
			utils.Warn("Step %d (%s) failed: %v", i+1, step.Action, err)
		} else {
			result.Status = StepOK
		}

		result.Duration = time.Since(started)
		report.Steps = append(report.Steps, result)
	}

	report.Elapsed = time.Since(report.Started)
	return report, nil
}

func (r *Runner) runStep(ctx context.Context, serial string, step store.Step) error {
	switch step.Action {
	case ActionInstallAPK:
		_, err := r.Exec.Install(ctx, serial, step.APKPath, adb.InstallOptions{Replace: true})
		return err

	case ActionClearData:
		return r.Exec.ClearData(ctx, serial, step.Package)

	case ActionLaunchApp:
		return r.Exec.Launch(ctx, serial, step.Package, step.Activity)

	case ActionTailLogcat:
		stepCtx, cancel := ctx, context.CancelFunc(func() {})
		if r.StepCtx != nil {
			stepCtx, cancel = r.StepCtx(ctx)
		}
		defer cancel()

		w := r.LogWriter
		if w == nil {
			w = os.Stdout
		}
		return r.Exec.LogcatTailFiltered(stepCtx, serial, step.Tag, step.Priority, w)
	}

	// unreachable: validateStep rejects unknown actions
	return fmt.Errorf("%w: %s", ErrUnknownAction, step.Action)
}
