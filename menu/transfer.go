package menu

import (
	"context"

	"github.com/rpnesseling/adbw/commands"
)

func (m *Menu) transferMenu(ctx context.Context) {
	for !m.eof {
		switch m.choose("File transfer", "Back", []string{
			"Push to device",
			"Pull from device",
		}) {
		case 0:
			return
		case 1:
			local := m.prompt("Local path")
			remote := m.promptDefault("Remote path", "/sdcard/Download/")
			m.show(commands.PushCommand(ctx, m.device, local, remote))
		case 2:
			remote := m.prompt("Remote path")
			local := m.promptDefault("Local path", ".")
			m.show(commands.PullCommand(ctx, m.device, remote, local))
		}
	}
}
