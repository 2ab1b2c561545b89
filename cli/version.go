package cli

import (
	"fmt"

	"github.com/rpnesseling/adbw/commands"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print adbw and adb versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			data := map[string]interface{}{"adbw": version}
			if exec, err := commands.Exec(); err == nil {
				if v, err := exec.Version(cmd.Context()); err == nil {
					data["adb"] = v
				}
			}
			printJson(data)
			return nil
		}

		fmt.Printf("adbw %s\n", version)
		exec, err := commands.Exec()
		if err != nil {
			fmt.Printf("adb: %v\n", err)
			return nil
		}
		if v, err := exec.Version(cmd.Context()); err == nil {
			fmt.Println(v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
