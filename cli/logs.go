package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpnesseling/adbw/commands"
	"github.com/spf13/cobra"
)

var (
	logsTag         string
	logsPriority    string
	logsOutDir      string
	captureDuration time.Duration
	captureInterval time.Duration
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Logcat capture commands",
}

var logsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Stream logcat until interrupted",
	Long:  `Stream logcat to stdout. With --tag the stream is filtered to <tag>:<priority> *:S. Streams text regardless of --json.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return commands.TailLogsCommand(ctx, deviceFlag, logsTag, logsPriority, os.Stdout)
	},
}

var logsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a logcat snapshot to a file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.SaveLogsCommand(cmd.Context(), deviceFlag, logsOutDir))
	},
}

var logsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the device log buffer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.ClearLogsCommand(cmd.Context(), deviceFlag))
	},
}

var logsBundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Capture logcat and a bugreport into a zip",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.BundleLogsCommand(cmd.Context(), deviceFlag, logsOutDir))
	},
}

var logsScheduledCmd = &cobra.Command{
	Use:   "scheduled",
	Short: "Capture logcat in gzipped chunks on a schedule",
	Long: `Capture the log buffer every interval for the given duration. Each
non-empty snapshot is written as a gzipped chunk and the buffer is cleared.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Ctrl-C ends the capture early; chunks written so far remain
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return renderResponse(commands.ScheduledCaptureCommand(ctx, deviceFlag, captureDuration, captureInterval, logsOutDir))
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.AddCommand(logsTailCmd)
	logsCmd.AddCommand(logsSaveCmd)
	logsCmd.AddCommand(logsClearCmd)
	logsCmd.AddCommand(logsBundleCmd)
	logsCmd.AddCommand(logsScheduledCmd)

	logsTailCmd.Flags().StringVar(&logsTag, "tag", "", "logcat tag filter")
	logsTailCmd.Flags().StringVar(&logsPriority, "priority", "", "minimum priority (V D I W E F S)")
	logsSaveCmd.Flags().StringVar(&logsOutDir, "out", "", "output directory (default current)")
	logsBundleCmd.Flags().StringVar(&logsOutDir, "out", "", "output directory (default current)")
	logsScheduledCmd.Flags().DurationVar(&captureDuration, "duration", 0, "total capture time (default 5m, floor 30s)")
	logsScheduledCmd.Flags().DurationVar(&captureInterval, "interval", 0, "time between snapshots (default 30s, floor 5s)")
	logsScheduledCmd.Flags().StringVar(&logsOutDir, "out", "", "chunk directory (default scheduled_logs_<serial>_<ts>)")
}
