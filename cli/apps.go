package cli

import (
	"github.com/rpnesseling/adbw/commands"
	"github.com/spf13/cobra"
)

var (
	installDowngrade  bool
	installGrantPerms bool
	installSkipCheck  bool
	uninstallKeepData bool
	appsListFilter    string
	appsListUID       bool
	launchActivity    string
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "App and package commands",
}

var appsInstallCmd = &cobra.Command{
	Use:   "install <apk>",
	Short: "Install an APK",
	Long:  `Install an APK. The file is inspected with aapt first; downgrade and SDK compatibility warnings are printed before the install runs.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := commands.InstallRequest{
			Device:     deviceFlag,
			Path:       args[0],
			Downgrade:  installDowngrade,
			GrantPerms: installGrantPerms,
			SkipCheck:  installSkipCheck,
		}
		return renderResponse(commands.InstallAppCommand(cmd.Context(), req))
	},
}

var appsInstallSplitCmd = &cobra.Command{
	Use:   "install-split <apk|dir|bundle>...",
	Short: "Install split APKs",
	Long:  `Install split APKs from a list of files, a directory of APKs, or a .zip/.xapk bundle.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.InstallSplitCommand(cmd.Context(), deviceFlag, args, installDowngrade))
	},
}

var appsUninstallCmd = &cobra.Command{
	Use:   "uninstall <package>",
	Short: "Uninstall a package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.UninstallAppCommand(cmd.Context(), deviceFlag, args[0], uninstallKeepData))
	},
}

var appsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed packages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.ListAppsCommand(cmd.Context(), deviceFlag, appsListFilter, appsListUID))
	},
}

var appsInfoCmd = &cobra.Command{
	Use:   "info <package>",
	Short: "Show package details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.AppInfoCommand(cmd.Context(), deviceFlag, args[0]))
	},
}

var appsLaunchCmd = &cobra.Command{
	Use:   "launch <package>",
	Short: "Launch an app",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.LaunchAppCommand(cmd.Context(), deviceFlag, args[0], launchActivity))
	},
}

var appsStopCmd = &cobra.Command{
	Use:   "stop <package>",
	Short: "Force-stop an app",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.TerminateAppCommand(cmd.Context(), deviceFlag, args[0]))
	},
}

var appsClearCmd = &cobra.Command{
	Use:   "clear <package>",
	Short: "Clear app data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.ClearDataCommand(cmd.Context(), deviceFlag, args[0]))
	},
}

var appsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search installed packages by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.SearchPackagesCommand(cmd.Context(), deviceFlag, args[0]))
	},
}

var appsPermsCmd = &cobra.Command{
	Use:   "perms <list|grant|revoke> <package> [permission]",
	Short: "List granted permissions, or grant/revoke one",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		permission := ""
		if len(args) > 2 {
			permission = args[2]
		}
		return renderResponse(commands.PermissionsCommand(cmd.Context(), deviceFlag, args[0], args[1], permission))
	},
}

func init() {
	rootCmd.AddCommand(appsCmd)

	appsCmd.AddCommand(appsInstallCmd)
	appsCmd.AddCommand(appsInstallSplitCmd)
	appsCmd.AddCommand(appsUninstallCmd)
	appsCmd.AddCommand(appsListCmd)
	appsCmd.AddCommand(appsInfoCmd)
	appsCmd.AddCommand(appsLaunchCmd)
	appsCmd.AddCommand(appsStopCmd)
	appsCmd.AddCommand(appsClearCmd)
	appsCmd.AddCommand(appsSearchCmd)
	appsCmd.AddCommand(appsPermsCmd)

	appsInstallCmd.Flags().BoolVar(&installDowngrade, "downgrade", false, "allow version code downgrade (-d)")
	appsInstallCmd.Flags().BoolVar(&installGrantPerms, "grant", false, "grant all runtime permissions (-g)")
	appsInstallCmd.Flags().BoolVar(&installSkipCheck, "skip-check", false, "skip the aapt pre-install check")
	appsInstallSplitCmd.Flags().BoolVar(&installDowngrade, "downgrade", false, "allow version code downgrade (-d)")
	appsUninstallCmd.Flags().BoolVarP(&uninstallKeepData, "keep-data", "k", false, "keep app data and caches")
	appsListCmd.Flags().StringVar(&appsListFilter, "filter", "", "all, third-party or system")
	appsListCmd.Flags().BoolVar(&appsListUID, "uid", false, "include package UIDs")
	appsLaunchCmd.Flags().StringVar(&launchActivity, "activity", "", "explicit activity to start")
}
