package cli

import (
	"github.com/rpnesseling/adbw/commands"
	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:   "push <local> [remote]",
	Short: "Copy a file to the device",
	Long:  `Copy a local file to the device. The remote path defaults to /sdcard/Download/.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		remote := ""
		if len(args) > 1 {
			remote = args[1]
		}
		return renderResponse(commands.PushCommand(cmd.Context(), deviceFlag, args[0], remote))
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull <remote> [local]",
	Short: "Copy a file from the device",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		local := ""
		if len(args) > 1 {
			local = args[1]
		}
		return renderResponse(commands.PullCommand(cmd.Context(), deviceFlag, args[0], local))
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(pullCmd)
}
