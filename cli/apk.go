package cli

import (
	"github.com/rpnesseling/adbw/commands"
	"github.com/spf13/cobra"
)

var apkCmd = &cobra.Command{
	Use:   "apk",
	Short: "Inspect local APK files with aapt",
}

var apkInfoCmd = &cobra.Command{
	Use:   "info <apk>",
	Short: "Show package, version and SDK levels of an APK",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.ApkInfoCommand(cmd.Context(), args[0]))
	},
}

var apkCheckCmd = &cobra.Command{
	Use:   "check <apk>",
	Short: "Check an APK against the selected device before installing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.ApkCheckCommand(cmd.Context(), deviceFlag, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(apkCmd)

	apkCmd.AddCommand(apkInfoCmd)
	apkCmd.AddCommand(apkCheckCmd)
}
