package cli

import (
	"github.com/rpnesseling/adbw/commands"
	"github.com/spf13/cobra"
)

var includeAVDs bool

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List connected devices",
	Long:  `List all attached Android devices and emulators with their state.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.DevicesCommand(cmd.Context(), includeAVDs))
	},
}

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Device management commands",
}

var deviceInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show device details",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.DeviceInfoCommand(cmd.Context(), deviceFlag))
	},
}

var deviceSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show model, Android version, battery and storage at a glance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.DeviceSummaryCommand(cmd.Context(), deviceFlag))
	},
}

var deviceRebootCmd = &cobra.Command{
	Use:       "reboot [normal|recovery|bootloader]",
	Short:     "Reboot the device",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"normal", "recovery", "bootloader"},
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := ""
		if len(args) > 0 {
			mode = args[0]
		}
		return renderResponse(commands.RebootCommand(cmd.Context(), deviceFlag, mode))
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	devicesCmd.Flags().BoolVar(&includeAVDs, "avds", false, "include configured AVDs that are not running")

	rootCmd.AddCommand(deviceCmd)
	deviceCmd.AddCommand(deviceInfoCmd)
	deviceCmd.AddCommand(deviceSummaryCmd)
	deviceCmd.AddCommand(deviceRebootCmd)
}
