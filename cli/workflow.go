package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/rpnesseling/adbw/commands"
	"github.com/rpnesseling/adbw/store"
	"github.com/spf13/cobra"
)

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Manage and run saved workflows",
}

var workflowListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved workflows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.WorkflowListCommand())
	},
}

var workflowShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a workflow's steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.WorkflowShowCommand(args[0]))
	},
}

var workflowSaveCmd = &cobra.Command{
	Use:   "save <file.json>",
	Short: "Save a workflow from a JSON definition",
	Long: `Save a workflow from a JSON file of the form
{"name": "...", "steps": [{"action": "install_apk", "apk_path": "..."}]}.
A workflow with the same name is replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read workflow file: %w", err)
		}
		var w store.Workflow
		if err := json.Unmarshal(raw, &w); err != nil {
			return fmt.Errorf("failed to parse workflow file: %w", err)
		}
		return renderResponse(commands.WorkflowSaveCommand(w))
	},
}

var workflowRunCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Run a workflow on the selected device",
	Long: `Run a workflow. Step failures are recorded and playback continues.
Ctrl-C during a log tail step cancels that step only; press it again to
stop the process.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// interrupts cancel the current streaming step, not the run, so
		// the run context is detached from the root context
		stepCtx := func(parent context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(parent, os.Interrupt)
		}
		return renderResponse(commands.WorkflowRunCommand(context.Background(), deviceFlag, args[0], os.Stdout, stepCtx))
	},
}

var workflowDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a workflow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.WorkflowDeleteCommand(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(workflowCmd)

	workflowCmd.AddCommand(workflowListCmd)
	workflowCmd.AddCommand(workflowShowCmd)
	workflowCmd.AddCommand(workflowSaveCmd)
	workflowCmd.AddCommand(workflowRunCmd)
	workflowCmd.AddCommand(workflowDeleteCmd)
}
