package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rpnesseling/adbw/commands"
	"github.com/spf13/cobra"
)

var interactiveShell bool

var shellCmd = &cobra.Command{
	Use:   "shell [command...]",
	Short: "Run a shell command on the device",
	Long: `Run a shell command on the device. With -i an interactive session
starts: !history lists recent commands, !<N> re-runs entry N, exit leaves.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if interactiveShell {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return commands.InteractiveShellCommand(ctx, deviceFlag, os.Stdin, os.Stdout)
		}
		if len(args) == 0 {
			return fmt.Errorf("a command is required, or use -i for an interactive session")
		}
		return renderResponse(commands.ShellCommand(cmd.Context(), deviceFlag, args))
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().BoolVarP(&interactiveShell, "interactive", "i", false, "start an interactive session with history")
}
