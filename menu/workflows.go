package menu

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rpnesseling/adbw/commands"
	"github.com/rpnesseling/adbw/store"
	"github.com/rpnesseling/adbw/workflow"
)

// workflowsMenu covers saved workflows, profiles, aliases and the dev loop.
func (m *Menu) workflowsMenu(ctx context.Context) {
	for !m.eof {
		switch m.choose("Workflows and profiles", "Back", []string{
			"List workflows",
			"Show workflow",
			"Create workflow",
			"Run workflow",
			"Delete workflow",
			"Profiles",
			"Device aliases",
			"Dev loop",
		}) {
		case 0:
			return
		case 1:
			m.show(commands.WorkflowListCommand())
		case 2:
			m.show(commands.WorkflowShowCommand(m.prompt("Workflow name")))
		case 3:
			m.createWorkflow()
		case 4:
			m.runWorkflow(ctx)
		case 5:
			m.show(commands.WorkflowDeleteCommand(m.prompt("Workflow name")))
		case 6:
			m.profilesMenu()
		case 7:
			m.aliasesMenu()
		case 8:
			m.devLoop(ctx)
		}
	}
}

// createWorkflow builds a step list interactively, one action at a time.
func (m *Menu) createWorkflow() {
	name := m.prompt("Workflow name")
	if name == "" {
		return
	}

	actions := workflow.Actions()
	var steps []store.Step
	for !m.eof {
		pick := m.choose(fmt.Sprintf("Step %d", len(steps)+1), "Done", actions)
		if pick == 0 {
			break
		}

		step := store.Step{Action: actions[pick-1]}
		switch step.Action {
		case workflow.ActionInstallAPK:
			step.APKPath = m.prompt("APK path")
		case workflow.ActionClearData:
			step.Package = m.prompt("Package")
		case workflow.ActionLaunchApp:
			step.Package = m.prompt("Package")
			step.Activity = m.prompt("Activity (empty for the launcher default)")
		case workflow.ActionTailLogcat:
			step.Tag = m.prompt("Tag (empty for all)")
			step.Priority = m.promptDefault("Priority (V D I W E F S)", "I")
		}
		steps = append(steps, step)
	}

	if len(steps) == 0 {
		fmt.Fprintln(m.out, "No steps, nothing saved.")
		return
	}
	m.show(commands.WorkflowSaveCommand(store.Workflow{Name: name, Steps: steps}))
}

// runWorkflow plays back a saved workflow. Ctrl-C during a tail step skips
// to the next step instead of ending the run.
func (m *Menu) runWorkflow(ctx context.Context) {
	name := m.prompt("Workflow name")
	if name == "" {
		return
	}

	fmt.Fprintln(m.out, "Ctrl-C during a log tail step skips to the next step.")
	m.show(commands.WorkflowRunCommand(ctx, m.device, name, m.out, func(stepParent context.Context) (context.Context, context.CancelFunc) {
		return signal.NotifyContext(stepParent, os.Interrupt)
	}))
}

func (m *Menu) profilesMenu() {
	for !m.eof {
		switch m.choose("Profiles", "Back", []string{"List", "Show", "Save", "Delete"}) {
		case 0:
			return
		case 1:
			m.show(commands.ProfileListCommand())
		case 2:
			m.show(commands.ProfileShowCommand(m.prompt("Profile name")))
		case 3:
			name := m.prompt("Profile name")
			if name == "" {
				continue
			}
			m.show(commands.ProfileSaveCommand(name, store.Profile{
				Package:  m.prompt("Package"),
				Activity: m.prompt("Activity (empty for default)"),
				LogTag:   m.prompt("Log tag (empty for none)"),
				APKPath:  m.prompt("APK path (empty for none)"),
			}))
		case 4:
			m.show(commands.ProfileDeleteCommand(m.prompt("Profile name")))
		}
	}
}

func (m *Menu) aliasesMenu() {
	for !m.eof {
		switch m.choose("Device aliases", "Back", []string{"List", "Set", "Remove"}) {
		case 0:
			return
		case 1:
			m.show(commands.AliasListCommand())
		case 2:
			alias := m.prompt("Alias")
			serial := m.prompt("Serial")
			m.show(commands.AliasSetCommand(alias, serial))
		case 3:
			m.show(commands.AliasRemoveCommand(m.prompt("Alias")))
		}
	}
}

// devLoop runs install, clear, launch and tail as one cycle, optionally
// re-running when the APK changes.
func (m *Menu) devLoop(ctx context.Context) {
	opts := commands.DevLoopOptions{Device: m.device}
	opts.Profile = m.prompt("Profile (empty to enter values by hand)")
	if opts.Profile == "" {
		opts.Package = m.prompt("Package")
		opts.APKPath = m.prompt("APK path (empty to skip the install)")
		opts.Activity = m.prompt("Activity (empty for the launcher default)")
		opts.Tag = m.prompt("Log tag (empty for the configured default)")
	}
	opts.Watch = m.confirm("Re-run when the APK changes?")

	fmt.Fprintln(m.out, "Dev loop running, Ctrl-C returns to the menu.")
	loopCtx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()
	if err := commands.DevLoopCommand(loopCtx, opts, m.out); err != nil && loopCtx.Err() == nil {
		m.showErr(err)
	}
}
