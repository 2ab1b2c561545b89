package menu

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rpnesseling/adbw/commands"
)

// loggingMenu covers logcat capture and the diagnostic reports.
func (m *Menu) loggingMenu(ctx context.Context) {
	for !m.eof {
		switch m.choose("Logging and diagnostics", "Back", []string{
			"Tail logcat",
			"Tail filtered",
			"Save log snapshot",
			"Scheduled capture",
			"Log bundle (logcat + bugreport)",
			"Health report",
			"Device snapshot",
			"Restore settings",
			"Network report",
			"Process inspector",
		}) {
		case 0:
			return
		case 1:
			m.tailLogs(ctx, "", "")
		case 2:
			tag := m.prompt("Tag (empty for all)")
			priority := m.promptDefault("Priority (V D I W E F S)", "V")
			m.tailLogs(ctx, tag, priority)
		case 3:
			m.show(commands.SaveLogsCommand(ctx, m.device, m.promptDefault("Output directory", ".")))
		case 4:
			m.scheduledCapture(ctx)
		case 5:
			m.show(commands.BundleLogsCommand(ctx, m.device, m.promptDefault("Output directory", ".")))
		case 6:
			m.show(commands.HealthReportCommand(ctx, m.device))
		case 7:
			m.show(commands.DeviceSnapshotCommand(ctx, m.device))
		case 8:
			m.restoreSettings(ctx)
		case 9:
			m.show(commands.NetworkReportCommand(ctx, m.device))
		case 10:
			m.show(commands.ProcessInspectCommand(ctx, m.device, m.prompt("Process name or package")))
		}
	}
}

func (m *Menu) tailLogs(ctx context.Context, tag, priority string) {
	fmt.Fprintln(m.out, "Streaming logcat, Ctrl-C returns to the menu.")
	tailCtx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	err := commands.TailLogsCommand(tailCtx, m.device, tag, priority, m.out)
	if err != nil && tailCtx.Err() == nil {
		m.showErr(err)
	}
}

func (m *Menu) scheduledCapture(ctx context.Context) {
	duration, err := time.ParseDuration(m.promptDefault("Total duration", "10m"))
	if err != nil {
		m.showErr(err)
		return
	}
	interval, err := time.ParseDuration(m.promptDefault("Chunk interval", "1m"))
	if err != nil {
		m.showErr(err)
		return
	}
	dir := m.promptDefault("Output directory", ".")

	fmt.Fprintln(m.out, "Capturing, Ctrl-C stops early and keeps the finished chunks.")
	capCtx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()
	m.show(commands.ScheduledCaptureCommand(capCtx, m.device, duration, interval, dir))
}

func (m *Menu) restoreSettings(ctx context.Context) {
	path := m.prompt("Snapshot file")
	if path == "" {
		return
	}
	m.show(commands.RestoreSettingsCommand(ctx, m.device, path, func(ns string, count int) bool {
		return m.confirm(fmt.Sprintf("Apply %d %s settings?", count, ns))
	}))
}
