package cli

import (
	"fmt"
	"strings"

	"github.com/rpnesseling/adbw/commands"
	"github.com/spf13/cobra"
)

var restoreYes bool

var diagCmd = &cobra.Command{
	Use:   "diag",
	Short: "Device diagnostics and reports",
}

var diagHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Write a device health report (text + JSON)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.HealthReportCommand(cmd.Context(), deviceFlag))
	},
}

var diagSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Snapshot installed packages, props and settings to JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.DeviceSnapshotCommand(cmd.Context(), deviceFlag))
	},
}

var diagRestoreCmd = &cobra.Command{
	Use:   "restore <snapshot.json>",
	Short: "Restore settings from a device snapshot",
	Long: `Restore the settings namespaces recorded in a snapshot. Each
namespace is confirmed before any value is written; secure settings may be
rejected by the device without root.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm := func(ns string, count int) bool {
			if restoreYes {
				return true
			}
			fmt.Printf("Apply %d %s settings? [y/N] ", count, ns)
			var answer string
			_, _ = fmt.Scanln(&answer)
			answer = strings.ToLower(strings.TrimSpace(answer))
			return answer == "y" || answer == "yes"
		}
		return renderResponse(commands.RestoreSettingsCommand(cmd.Context(), deviceFlag, args[0], confirm))
	},
}

var diagNetworkCmd = &cobra.Command{
	Use:   "network",
	Short: "Write a network diagnostics report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.NetworkReportCommand(cmd.Context(), deviceFlag))
	},
}

var diagPsCmd = &cobra.Command{
	Use:   "ps <query>",
	Short: "Inspect processes matching a name or package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.ProcessInspectCommand(cmd.Context(), deviceFlag, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(diagCmd)

	diagCmd.AddCommand(diagHealthCmd)
	diagCmd.AddCommand(diagSnapshotCmd)
	diagCmd.AddCommand(diagRestoreCmd)
	diagCmd.AddCommand(diagNetworkCmd)
	diagCmd.AddCommand(diagPsCmd)

	diagRestoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "apply all namespaces without prompting")
}
