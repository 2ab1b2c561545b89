package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/rpnesseling/adbw/store"
	"github.com/rpnesseling/adbw/workflow"
)

// WorkflowListCommand lists the saved workflows.
func WorkflowListCommand() *CommandResponse {
	flows := stores.Workflows()
	if flows == nil {
		flows = []store.Workflow{}
	}
	return NewSuccessResponse(flows)
}

// WorkflowShowCommand returns one workflow with its steps.
func WorkflowShowCommand(name string) *CommandResponse {
	w, err := stores.Workflow(name)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(w)
}

// WorkflowSaveCommand validates and persists a workflow, replacing any
// existing workflow with the same name.
func WorkflowSaveCommand(w store.Workflow) *CommandResponse {
	if err := workflow.Validate(w); err != nil {
		return NewErrorResponse(err)
	}
	if err := stores.SaveWorkflow(w); err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Saved workflow %s (%d steps)", w.Name, len(w.Steps)),
	})
}

// WorkflowDeleteCommand removes a saved workflow.
func WorkflowDeleteCommand(name string) *CommandResponse {
	if err := stores.DeleteWorkflow(name); err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Deleted workflow %s", name),
	})
}

// WorkflowRunCommand plays back a saved workflow on one device. logWriter
// receives streamed logcat output from tail steps; stepCtx, when set, wraps
// the context of streaming steps so the caller can cancel a single step.
func WorkflowRunCommand(ctx context.Context, device, name string, logWriter io.Writer, stepCtx func(context.Context) (context.Context, context.CancelFunc)) *CommandResponse {
	exec, err := Exec()
	if err != nil {
		return NewErrorResponse(err)
	}
	dev, err := ResolveDevice(ctx, device)
	if err != nil {
		return NewErrorResponse(err)
	}

	w, err := stores.Workflow(name)
	if err != nil {
		return NewErrorResponse(err)
	}

	runner := &workflow.Runner{Exec: exec, LogWriter: logWriter, StepCtx: stepCtx}
	report, err := runner.Run(ctx, dev.Serial, *w)
	if err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(report)
}
