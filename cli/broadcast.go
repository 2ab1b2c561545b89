package cli

import (
	"io"
	"os"
	"strings"

	"github.com/rpnesseling/adbw/commands"
	"github.com/spf13/cobra"
)

var broadcastCmd = &cobra.Command{
	Use:   "broadcast",
	Short: "Run an operation on every online device",
}

var broadcastInstallCmd = &cobra.Command{
	Use:   "install <apk>",
	Short: "Install an APK on all online devices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.InstallAllCommand(cmd.Context(), args[0]))
	},
}

var broadcastShellCmd = &cobra.Command{
	Use:   "shell <command...>",
	Short: "Run a shell command on all online devices",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// per-device output streams with colored headers, except in json
		// mode where the response document is the only stdout output
		var w io.Writer = os.Stdout
		if jsonOutput {
			w = io.Discard
		}

		response := commands.ShellAllCommand(cmd.Context(), strings.Join(args, " "), w)
		if jsonOutput || response.Status == "error" {
			return renderResponse(response)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(broadcastCmd)

	broadcastCmd.AddCommand(broadcastInstallCmd)
	broadcastCmd.AddCommand(broadcastShellCmd)
}
