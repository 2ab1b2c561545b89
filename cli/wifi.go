package cli

import (
	"github.com/rpnesseling/adbw/commands"
	"github.com/spf13/cobra"
)

var wifiCmd = &cobra.Command{
	Use:   "wifi",
	Short: "Wireless debugging commands",
}

var wifiConnectCmd = &cobra.Command{
	Use:   "connect <ip[:port]>",
	Short: "Connect to a device over TCP/IP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.WifiConnectCommand(cmd.Context(), args[0]))
	},
}

var wifiDisconnectCmd = &cobra.Command{
	Use:   "disconnect [ip[:port]]",
	Short: "Disconnect a TCP/IP device (all when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hostport := ""
		if len(args) > 0 {
			hostport = args[0]
		}
		return renderResponse(commands.WifiDisconnectCommand(cmd.Context(), hostport))
	},
}

var wifiPairCmd = &cobra.Command{
	Use:   "pair <ip:port> <code>",
	Short: "Pair with a device using a pairing code",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.WifiPairCommand(cmd.Context(), args[0], args[1]))
	},
}

var wifiEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Switch the USB device to TCP/IP mode and print its address",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.WifiEnableCommand(cmd.Context(), deviceFlag))
	},
}

func init() {
	rootCmd.AddCommand(wifiCmd)

	wifiCmd.AddCommand(wifiConnectCmd)
	wifiCmd.AddCommand(wifiDisconnectCmd)
	wifiCmd.AddCommand(wifiPairCmd)
	wifiCmd.AddCommand(wifiEnableCmd)
}
