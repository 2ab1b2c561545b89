package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpnesseling/adbw/commands"
)

// appsMenu covers APK installs and package management.
func (m *Menu) appsMenu(ctx context.Context) {
	for !m.eof {
		switch m.choose("App and package", "Back", []string{
			"Install APK",
			"Install split APKs",
			"List packages",
			"Package info",
			"Search packages",
			"Launch app",
			"Uninstall app",
			"Force-stop app",
			"Clear app data",
			"Permissions",
		}) {
		case 0:
			return
		case 1:
			m.installAPK(ctx)
		case 2:
			paths := strings.Fields(m.prompt("APK paths (space separated)"))
			m.show(commands.InstallSplitCommand(ctx, m.device, paths, false))
		case 3:
			filter := m.promptDefault("Filter (all, third-party, system)", "all")
			m.show(commands.ListAppsCommand(ctx, m.device, filter, false))
		case 4:
			m.show(commands.AppInfoCommand(ctx, m.device, m.prompt("Package")))
		case 5:
			m.searchPackages(ctx)
		case 6:
			pkg := m.prompt("Package")
			activity := m.prompt("Activity (empty for the launcher default)")
			m.show(commands.LaunchAppCommand(ctx, m.device, pkg, activity))
		case 7:
			pkg := m.prompt("Package")
			keep := m.confirm("Keep app data?")
			m.show(commands.UninstallAppCommand(ctx, m.device, pkg, keep))
		case 8:
			m.show(commands.TerminateAppCommand(ctx, m.device, m.prompt("Package")))
		case 9:
			m.show(commands.ClearDataCommand(ctx, m.device, m.prompt("Package")))
		case 10:
			m.permissions(ctx)
		}
	}
}

// installAPK shows the aapt insight for the file before committing to the
// install.
func (m *Menu) installAPK(ctx context.Context) {
	path := m.prompt("APK path")
	if path == "" {
		return
	}

	insight := commands.ApkCheckCommand(ctx, m.device, path)
	if insight.Status == "error" {
		fmt.Fprintf(m.out, "Insight unavailable: %s\n", insight.Error)
	} else {
		m.showData(insight.Data)
	}

	if !m.confirm("Install?") {
		return
	}
	m.show(commands.InstallAppCommand(ctx, commands.InstallRequest{
		Device:    m.device,
		Path:      path,
		Downgrade: m.confirm("Allow version downgrade?"),
		SkipCheck: true, // the insight above already covered it
	}))
}

// searchPackages runs a query and offers actions on the picked match.
func (m *Menu) searchPackages(ctx context.Context) {
	query := m.prompt("Search term")
	if query == "" {
		return
	}

	resp := commands.SearchPackagesCommand(ctx, m.device, query)
	if resp.Status == "error" {
		m.show(resp)
		return
	}
	matches, _ := resp.Data.([]string)
	if len(matches) == 0 {
		fmt.Fprintln(m.out, "No packages match.")
		return
	}

	pick := m.choose("Matches", "Back", matches)
	if pick == 0 {
		return
	}
	pkg := matches[pick-1]

	switch m.choose(pkg, "Back", []string{"Launch", "Force-stop", "Info"}) {
	case 1:
		m.show(commands.LaunchAppCommand(ctx, m.device, pkg, ""))
	case 2:
		m.show(commands.TerminateAppCommand(ctx, m.device, pkg))
	case 3:
		m.show(commands.AppInfoCommand(ctx, m.device, pkg))
	}
}

// permissions lists granted permissions or grants/revokes one.
func (m *Menu) permissions(ctx context.Context) {
	var action string
	switch m.choose("Permissions", "Back", []string{"List granted", "Grant", "Revoke"}) {
	case 0:
		return
	case 1:
		action = "list"
	case 2:
		action = "grant"
	case 3:
		action = "revoke"
	}

	pkg := m.prompt("Package")
	permission := ""
	if action != "list" {
		permission = m.prompt("Permission (android.permission.CAMERA)")
	}
	m.show(commands.PermissionsCommand(ctx, m.device, action, pkg, permission))
}
