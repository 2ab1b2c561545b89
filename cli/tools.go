package cli

import (
	"fmt"
	"strings"

	"github.com/rpnesseling/adbw/commands"
	"github.com/spf13/cobra"
)

var toolsYes bool

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Developer tool management",
}

var toolsPlatformCmd = &cobra.Command{
	Use:   "platform-tools",
	Short: "Download the latest platform-tools into ./platform-tools",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm := func(path string) bool {
			if toolsYes {
				return true
			}
			fmt.Printf("Replace existing %s? [y/N] ", path)
			var answer string
			_, _ = fmt.Scanln(&answer)
			answer = strings.ToLower(strings.TrimSpace(answer))
			return answer == "y" || answer == "yes"
		}
		return renderResponse(commands.DownloadPlatformToolsCommand(cmd.Context(), confirm))
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.AddCommand(toolsPlatformCmd)

	toolsPlatformCmd.Flags().BoolVarP(&toolsYes, "yes", "y", false, "replace an existing platform-tools directory without prompting")
}
