package cli

import (
	"github.com/rpnesseling/adbw/commands"
	"github.com/rpnesseling/adbw/store"
	"github.com/spf13/cobra"
)

var (
	profilePackage  string
	profileActivity string
	profileLogTag   string
	profileAPKPath  string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage app profiles for the dev loop",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.ProfileListCommand())
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.ProfileShowCommand(args[0]))
	},
}

var profileSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a profile from flags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := store.Profile{
			Package:  profilePackage,
			Activity: profileActivity,
			LogTag:   profileLogTag,
			APKPath:  profileAPKPath,
		}
		return renderResponse(commands.ProfileSaveCommand(args[0], p))
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.ProfileDeleteCommand(args[0]))
	},
}

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage device aliases",
	Long:  `Manage device aliases. An alias stands in for a serial anywhere --device is accepted.`,
}

var aliasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List aliases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.AliasListCommand())
	},
}

var aliasSetCmd = &cobra.Command{
	Use:   "set <alias> <serial>",
	Short: "Point an alias at a serial",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.AliasSetCommand(args[0], args[1]))
	},
}

var aliasRemoveCmd = &cobra.Command{
	Use:   "rm <alias>",
	Short: "Remove an alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderResponse(commands.AliasRemoveCommand(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profileDeleteCmd)

	profileSaveCmd.Flags().StringVar(&profilePackage, "package", "", "application package")
	profileSaveCmd.Flags().StringVar(&profileActivity, "activity", "", "activity to launch")
	profileSaveCmd.Flags().StringVar(&profileLogTag, "tag", "", "logcat tag to follow")
	profileSaveCmd.Flags().StringVar(&profileAPKPath, "apk", "", "APK to install each cycle")

	rootCmd.AddCommand(aliasCmd)
	aliasCmd.AddCommand(aliasListCmd)
	aliasCmd.AddCommand(aliasSetCmd)
	aliasCmd.AddCommand(aliasRemoveCmd)
}
