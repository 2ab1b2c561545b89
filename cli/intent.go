package cli

import (
	"github.com/rpnesseling/adbw/commands"
	"github.com/spf13/cobra"
)

var intentCmd = &cobra.Command{
	Use:   "intent",
	Short: "Send intents via am",
}

var intentViewCmd = &cobra.Command{
	Use:   "view <url>",
	Short: "Open a URL or deep link on the device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.OpenURLCommand(cmd.Context(), deviceFlag, args[0]))
	},
}

var intentStartCmd = &cobra.Command{
	Use:   "start <package/activity> [extras...]",
	Short: "Start an explicit component",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.StartIntentCommand(cmd.Context(), deviceFlag, args[0], args[1:]))
	},
}

var intentBroadcastCmd = &cobra.Command{
	Use:   "broadcast <action> [extras...]",
	Short: "Send a broadcast intent",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.BroadcastIntentCommand(cmd.Context(), deviceFlag, args[0], args[1:]))
	},
}

var intentRawCmd = &cobra.Command{
	Use:   "raw <am-args...>",
	Short: "Run am with raw arguments",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.AmRawCommand(cmd.Context(), deviceFlag, args))
	},
}

func init() {
	rootCmd.AddCommand(intentCmd)

	intentCmd.AddCommand(intentViewCmd)
	intentCmd.AddCommand(intentStartCmd)
	intentCmd.AddCommand(intentBroadcastCmd)
	intentCmd.AddCommand(intentRawCmd)
}
