package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

var debugFlag bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log API request timing to stderr")
}

var rootCmd = &cobra.Command{
	Use:   "gdocs",
	Short: "Google Docs, Drive and Sheets from the command line",
	Long: `gdocs edits Google Docs, manages Drive files and reads/writes Sheets.
Every command prints a single JSON result to stdout.

Examples:
  gdocs auth                                  # print the consent URL
  gdocs auth <code>                           # exchange an authorization code
  gdocs docs create "Notes"
  gdocs docs create-from-markdown "Plan" --file plan.md
  gdocs drive list --folder <id>
  gdocs sheets read <id> "Sheet1!A1:C10"`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		printJSON(map[string]any{
			"status": "error",
			"error":  err.Error(),
		})
		os.Exit(1)
	}
}
