// Package cli wires the cobra command tree to the command layer.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rpnesseling/adbw/commands"
	"github.com/rpnesseling/adbw/config"
	"github.com/rpnesseling/adbw/menu"
	"github.com/rpnesseling/adbw/utils"
	"github.com/spf13/cobra"
)

const version = "dev"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "adbw",
	Short: "An interactive workbench for Android devices",
	Long: `adbw fronts the adb and aapt developer tools: device management,
app installs, log capture, diagnostics, persisted workflows and an
interactive menu. Run without arguments to enter menu mode.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// menu mode needs a terminal; piped stdin gets the help text
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			return cmd.Help()
		}
		return menu.Run(cmd.Context())
	},
}

func initConfig() {
	utils.SetVerbose(verbose)

	cfg, err := config.Load(configPath)
	if err != nil {
		utils.Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	commands.Configure(cfg)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&deviceFlag, "device", "d", "", "target device serial or alias")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print the full response as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// printJson is a helper function to print JSON responses
func printJson(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(jsonData))
}

// renderResponse prints a command response. With --json the response
// envelope is the single stdout document; otherwise data prints as text or
// indented JSON and errors surface through the non-zero exit path.
func renderResponse(response *commands.CommandResponse) error {
	if jsonOutput {
		printJson(response)
	} else if response.Status != "error" {
		renderData(response.Data)
	}

	if response.Status == "error" {
		return fmt.Errorf("%s", response.Error)
	}
	return nil
}

// renderData prints single-string payloads as plain text, everything else
// as indented JSON.
func renderData(data interface{}) {
	if data == nil {
		return
	}

	if m, ok := data.(map[string]interface{}); ok && len(m) == 1 {
		for _, key := range []string{"message", "output", "report"} {
			if v, ok := m[key].(string); ok {
				fmt.Println(v)
				return
			}
		}
	}

	printJson(data)
}
