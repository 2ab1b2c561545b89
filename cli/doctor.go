package cli

import (
	"fmt"

	"github.com/rpnesseling/adbw/commands"
	"github.com/rpnesseling/adbw/diag"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check adb, aapt and workspace prerequisites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		response := commands.DoctorCommand(cmd.Context())
		if jsonOutput {
			printJson(response)
		} else if checks, ok := response.Data.([]diag.DoctorCheck); ok {
			for _, c := range checks {
				mark := "ok"
				if !c.OK {
					mark = "FAIL"
					if !c.Critical {
						mark = "warn"
					}
				}
				fmt.Printf("[%4s] %-20s %s\n", mark, c.Name, c.Detail)
			}
		}

		if response.Status == "error" {
			return fmt.Errorf("%s", response.Error)
		}
		if checks, ok := response.Data.([]diag.DoctorCheck); ok && diag.CriticalFailure(checks) {
			return fmt.Errorf("critical checks failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
