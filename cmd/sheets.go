package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var sheetsRaw bool

func init() {
	sheetsWriteCmd.Flags().BoolVar(&sheetsRaw, "raw", false, "Store values verbatim instead of parsing them")
	sheetsAppendCmd.Flags().BoolVar(&sheetsRaw, "raw", false, "Store values verbatim instead of parsing them")

	sheetsCmd.AddCommand(
		sheetsCreateCmd,
		sheetsReadCmd,
		sheetsWriteCmd,
		sheetsAppendCmd,
		sheetsClearCmd,
		sheetsMetadataCmd,
	)
	rootCmd.AddCommand(sheetsCmd)
}

var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "Read and write Google Sheets",
}

var sheetsCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation("create", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.sheets.Create(ctx, args[0])
		})
	},
}

var sheetsReadCmd = &cobra.Command{
	Use:   "read <spreadsheet-id> <range>",
	Short: "Read values from an A1-notation range",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation("read", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.sheets.Read(ctx, args[0], args[1])
		})
	},
}

var sheetsWriteCmd = &cobra.Command{
	Use:   "write <spreadsheet-id> <range> <values-json>",
	Short: "Overwrite a range with values",
	Long: `Overwrite a range with values given as a JSON array of rows, e.g.:
  gdocs sheets write <id> "Sheet1!A1:B2" '[["Name","Score"],["Ada",100]]'`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := parseValues(args[2])
		if err != nil {
			return emitInvalid("write", err.Error())
		}
		return runOperation("write", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.sheets.Write(ctx, args[0], args[1], values, sheetsRaw)
		})
	},
}

var sheetsAppendCmd = &cobra.Command{
	Use:   "append <spreadsheet-id> <range> <values-json>",
	Short: "Append rows after the last data row",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := parseValues(args[2])
		if err != nil {
			return emitInvalid("append", err.Error())
		}
		return runOperation("append", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.sheets.Append(ctx, args[0], args[1], values, sheetsRaw)
		})
	},
}

var sheetsClearCmd = &cobra.Command{
	Use:   "clear <spreadsheet-id> <range>",
	Short: "Clear a range's values",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation("clear", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.sheets.Clear(ctx, args[0], args[1])
		})
	},
}

var sheetsMetadataCmd = &cobra.Command{
	Use:   "metadata <spreadsheet-id>",
	Short: "Show the spreadsheet's properties and sheets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation("get_metadata", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.sheets.GetMetadata(ctx, args[0])
		})
	},
}

func parseValues(arg string) ([][]any, error) {
	var values [][]any
	if err := json.Unmarshal([]byte(arg), &values); err != nil {
		return nil, fmt.Errorf("invalid values JSON: %v", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("values must contain at least one row")
	}
	return values, nil
}
