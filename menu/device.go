package menu

import (
	"context"
	"fmt"

	"github.com/rpnesseling/adbw/adb"
	"github.com/rpnesseling/adbw/commands"
)

// deviceMenu covers device discovery, selection and connectivity.
func (m *Menu) deviceMenu(ctx context.Context) {
	for !m.eof {
		switch m.choose("Device and session", "Back", []string{
			"List devices",
			"Switch device",
			"Device summary",
			"Reboot",
			"Wi-Fi connect",
			"Wi-Fi disconnect",
		}) {
		case 0:
			return
		case 1:
			m.show(commands.DevicesCommand(ctx, true))
		case 2:
			m.switchDevice(ctx)
		case 3:
			m.show(commands.DeviceSummaryCommand(ctx, m.device))
		case 4:
			mode := m.promptDefault("Mode (normal, recovery, bootloader)", "normal")
			m.show(commands.RebootCommand(ctx, m.device, mode))
		case 5:
			m.show(commands.WifiConnectCommand(ctx, m.prompt("Device address (ip[:port])")))
		case 6:
			m.show(commands.WifiDisconnectCommand(ctx, m.prompt("Device address (empty disconnects all)")))
		}
	}
}

// switchDevice retargets the session. A typed serial or alias wins; an
// empty answer falls back to picking from the attached list.
func (m *Menu) switchDevice(ctx context.Context) {
	if typed := m.prompt("Serial or alias (empty to pick from a list)"); typed != "" {
		m.device = typed
		fmt.Fprintf(m.out, "Now targeting %s.\n", typed)
		return
	}
	if m.eof {
		return
	}

	resp := commands.DevicesCommand(ctx, true)
	if resp.Status == "error" {
		m.show(resp)
		return
	}
	devs, _ := resp.Data.([]adb.Device)
	if len(devs) == 0 {
		fmt.Fprintln(m.out, "No devices attached.")
		return
	}

	bySerial := make(map[string]string)
	for alias, serial := range commands.Stores().Aliases() {
		bySerial[serial] = alias
	}

	labels := make([]string, len(devs))
	for i, d := range devs {
		label := fmt.Sprintf("%s  [%s]", d.Label(), d.State)
		if alias := bySerial[d.Serial]; alias != "" {
			label += "  alias: " + alias
		}
		labels[i] = label
	}

	if pick := m.choose("Attached devices", "Keep current", labels); pick > 0 {
		m.device = devs[pick-1].Serial
		fmt.Fprintf(m.out, "Now targeting %s.\n", devs[pick-1].Label())
	}
}
