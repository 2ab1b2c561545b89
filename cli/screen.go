package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rpnesseling/adbw/commands"
	"github.com/spf13/cobra"
)

var (
	screenshotOut string
	recordOut     string
	recordSeconds int
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture the device screen to a PNG",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.ScreenshotCommand(cmd.Context(), deviceFlag, screenshotOut))
	},
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record the device screen to an MP4",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return renderResponse(commands.ScreenRecordCommand(ctx, deviceFlag, recordSeconds, recordOut))
	},
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	rootCmd.AddCommand(recordCmd)

	screenshotCmd.Flags().StringVarP(&screenshotOut, "output", "o", "", "output path (default screenshot_<serial>_<ts>.png)")
	recordCmd.Flags().StringVarP(&recordOut, "output", "o", "", "output path (default screenrecord_<serial>_<ts>.mp4)")
	recordCmd.Flags().IntVarP(&recordSeconds, "time", "t", 0, "recording length in seconds, 1-180 (default 15)")
}
