package menu

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/rpnesseling/adbw/commands"
)

// utilitiesMenu is the grab bag: shell, capture, forwarding, intents,
// broadcasts and tool management.
func (m *Menu) utilitiesMenu(ctx context.Context) {
	for !m.eof {
		switch m.choose("Utilities", "Back", []string{
			"Interactive shell",
			"Screenshot",
			"Screen record",
			"Port forwarding",
			"Intent runner",
			"Multi-device broadcast",
			"APK insight",
			"Download platform-tools",
		}) {
		case 0:
			return
		case 1:
			m.interactiveShell(ctx)
		case 2:
			m.show(commands.ScreenshotCommand(ctx, m.device, m.prompt("Output file (empty for a timestamped name)")))
		case 3:
			m.screenRecord(ctx)
		case 4:
			m.portForwarding(ctx)
		case 5:
			m.intentRunner(ctx)
		case 6:
			m.broadcast(ctx)
		case 7:
			m.apkInsight(ctx)
		case 8:
			m.show(commands.DownloadPlatformToolsCommand(ctx, func(path string) bool {
				return m.confirm(fmt.Sprintf("Replace existing %s?", path))
			}))
		}
	}
}

func (m *Menu) interactiveShell(ctx context.Context) {
	shellCtx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()
	if err := commands.InteractiveShellCommand(shellCtx, m.device, m.raw, m.out); err != nil {
		m.showErr(err)
	}
}

func (m *Menu) screenRecord(ctx context.Context) {
	seconds, err := strconv.Atoi(m.promptDefault("Duration in seconds (1-180)", "15"))
	if err != nil {
		m.showErr(err)
		return
	}
	out := m.prompt("Output file (empty for a timestamped name)")

	fmt.Fprintln(m.out, "Recording, Ctrl-C stops early.")
	recCtx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()
	m.show(commands.ScreenRecordCommand(recCtx, m.device, seconds, out))
}

func (m *Menu) portForwarding(ctx context.Context) {
	switch m.choose("Port forwarding", "Back", []string{
		"List forwards",
		"Add forward (host to device)",
		"Remove forward",
		"List reverses",
		"Add reverse (device to host)",
		"Remove reverse",
	}) {
	case 0:
		return
	case 1:
		m.show(commands.ForwardCommand(ctx, m.device, "list", "", ""))
	case 2:
		local := m.promptDefault("Local spec", "tcp:8080")
		remote := m.promptDefault("Remote spec", "tcp:8080")
		m.show(commands.ForwardCommand(ctx, m.device, "add", local, remote))
	case 3:
		m.show(commands.ForwardCommand(ctx, m.device, "remove", m.prompt("Local spec"), ""))
	case 4:
		m.show(commands.ReverseCommand(ctx, m.device, "list", "", ""))
	case 5:
		remote := m.promptDefault("Remote spec", "tcp:8080")
		local := m.promptDefault("Local spec", "tcp:8080")
		m.show(commands.ReverseCommand(ctx, m.device, "add", remote, local))
	case 6:
		m.show(commands.ReverseCommand(ctx, m.device, "remove", m.prompt("Remote spec"), ""))
	}
}

func (m *Menu) intentRunner(ctx context.Context) {
	switch m.choose("Intent runner", "Back", []string{
		"Open URL",
		"Start activity",
		"Send broadcast",
		"Raw am command",
	}) {
	case 0:
		return
	case 1:
		m.show(commands.OpenURLCommand(ctx, m.device, m.prompt("URL")))
	case 2:
		component := m.prompt("Component (package/activity)")
		extras := strings.Fields(m.prompt("Extras (-e key value ..., empty for none)"))
		m.show(commands.StartIntentCommand(ctx, m.device, component, extras))
	case 3:
		action := m.prompt("Broadcast action")
		extras := strings.Fields(m.prompt("Extras (-e key value ..., empty for none)"))
		m.show(commands.BroadcastIntentCommand(ctx, m.device, action, extras))
	case 4:
		m.show(commands.AmRawCommand(ctx, m.device, strings.Fields(m.prompt("am arguments"))))
	}
}

func (m *Menu) broadcast(ctx context.Context) {
	switch m.choose("Multi-device broadcast", "Back", []string{
		"Install APK on every device",
		"Run shell command on every device",
	}) {
	case 0:
		return
	case 1:
		m.show(commands.InstallAllCommand(ctx, m.prompt("APK path")))
	case 2:
		m.show(commands.ShellAllCommand(ctx, m.prompt("Shell command"), m.out))
	}
}

func (m *Menu) apkInsight(ctx context.Context) {
	path := m.prompt("APK path")
	if path == "" {
		return
	}
	if m.confirm("Compare against the selected device?") {
		m.show(commands.ApkCheckCommand(ctx, m.device, path))
		return
	}
	m.show(commands.ApkInfoCommand(ctx, path))
}
