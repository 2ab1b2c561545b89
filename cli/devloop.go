package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rpnesseling/adbw/commands"
	"github.com/spf13/cobra"
)

var (
	devloopProfile  string
	devloopPackage  string
	devloopActivity string
	devloopAPKPath  string
	devloopTag      string
	devloopWatch    bool
)

var devloopCmd = &cobra.Command{
	Use:   "devloop",
	Short: "Install, clear, launch and tail logs in one cycle",
	Long: `Run the edit-install-launch-log cycle: install the APK when one is
configured, clear app data, launch, then tail the tag-filtered logcat until
interrupted. --watch re-runs the cycle whenever the APK file changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := commands.DevLoopOptions{
			Device:   deviceFlag,
			Profile:  devloopProfile,
			Package:  devloopPackage,
			Activity: devloopActivity,
			APKPath:  devloopAPKPath,
			Tag:      devloopTag,
			Watch:    devloopWatch,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return commands.DevLoopCommand(ctx, opts, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(devloopCmd)

	devloopCmd.Flags().StringVar(&devloopProfile, "profile", "", "profile to load settings from")
	devloopCmd.Flags().StringVar(&devloopPackage, "package", "", "application package (overrides profile)")
	devloopCmd.Flags().StringVar(&devloopActivity, "activity", "", "activity to launch (overrides profile)")
	devloopCmd.Flags().StringVar(&devloopAPKPath, "apk", "", "APK to install each cycle (overrides profile)")
	devloopCmd.Flags().StringVar(&devloopTag, "tag", "", "logcat tag to follow (overrides profile)")
	devloopCmd.Flags().BoolVar(&devloopWatch, "watch", false, "re-run the cycle when the APK changes")
}
