package cli

import (
	"github.com/rpnesseling/adbw/commands"
	"github.com/spf13/cobra"
)

var forwardCmd = &cobra.Command{
	Use:   "forward [list|add|remove] [specs...]",
	Short: "Manage host-to-device port forwards",
	Long: `Manage port forwards. Specs are passed to adb verbatim, e.g.
tcp:8080 or localabstract:name.

  adbw forward                        list forwards
  adbw forward add tcp:8080 tcp:8080  forward host 8080 to device 8080
  adbw forward remove tcp:8080        drop the forward`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		action, local, remote := forwardArgs(args)
		return renderResponse(commands.ForwardCommand(cmd.Context(), deviceFlag, action, local, remote))
	},
}

var reverseCmd = &cobra.Command{
	Use:   "reverse [list|add|remove] [specs...]",
	Short: "Manage device-to-host port reverses",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		action, remote, local := forwardArgs(args)
		return renderResponse(commands.ReverseCommand(cmd.Context(), deviceFlag, action, remote, local))
	},
}

// forwardArgs maps positional arguments onto (action, first, second), with
// a bare invocation meaning list.
func forwardArgs(args []string) (action, first, second string) {
	if len(args) == 0 {
		return "list", "", ""
	}
	action = args[0]
	if len(args) > 1 {
		first = args[1]
	}
	if len(args) > 2 {
		second = args[2]
	}
	return action, first, second
}

func init() {
	rootCmd.AddCommand(forwardCmd)
	rootCmd.AddCommand(reverseCmd)
}
