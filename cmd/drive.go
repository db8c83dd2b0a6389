package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	driveFolder    string
	drivePageSize  int64
	driveName      string
	driveParent    string
	drivePermanent bool
)

func init() {
	driveListCmd.Flags().StringVar(&driveFolder, "folder", "", "List only this folder's contents")
	driveListCmd.Flags().Int64Var(&drivePageSize, "page-size", 20, "Maximum number of files")

	driveSearchCmd.Flags().Int64Var(&drivePageSize, "page-size", 20, "Maximum number of files")

	driveUploadCmd.Flags().StringVar(&driveName, "name", "", "File name in Drive (default: local file name)")
	driveUploadCmd.Flags().StringVar(&driveFolder, "folder", "", "Destination folder ID")

	driveUpdateCmd.Flags().StringVar(&driveName, "name", "", "New file name in Drive (default: keep current)")

	driveMkdirCmd.Flags().StringVar(&driveParent, "parent", "", "Parent folder ID")

	driveDeleteCmd.Flags().BoolVar(&drivePermanent, "permanent", false, "Delete permanently instead of trashing")

	driveCmd.AddCommand(
		driveListCmd,
		driveSearchCmd,
		driveGetCmd,
		driveUploadCmd,
		driveUpdateCmd,
		driveDownloadCmd,
		driveMkdirCmd,
		driveDeleteCmd,
	)
	rootCmd.AddCommand(driveCmd)
}

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Manage Google Drive files",
}

var driveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List files, most recently modified first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation("list", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.drive.List(ctx, driveFolder, drivePageSize)
		})
	},
}

var driveSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search files with a Drive query expression",
	Long: `Search files with a Drive query expression, e.g.:
  gdocs drive search "name contains 'report'"
  gdocs drive search "mimeType = 'application/pdf'"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation("search", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.drive.Search(ctx, args[0], drivePageSize)
		})
	},
}

var driveGetCmd = &cobra.Command{
	Use:   "get <file-id>",
	Short: "Show a file's metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation("get_metadata", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.drive.GetMetadata(ctx, args[0])
		})
	},
}

var driveUploadCmd = &cobra.Command{
	Use:   "upload <local-path>",
	Short: "Upload a local file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation("upload", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.drive.Upload(ctx, args[0], driveName, driveFolder)
		})
	},
}

var driveUpdateCmd = &cobra.Command{
	Use:   "update <file-id> <local-path>",
	Short: "Replace a file's content with a local file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation("update", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.drive.Update(ctx, args[0], args[1], driveName)
		})
	},
}

var driveDownloadCmd = &cobra.Command{
	Use:   "download <file-id> <output-path>",
	Short: "Download a file, exporting Workspace types to portable formats",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation("download", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.drive.Download(ctx, args[0], args[1])
		})
	},
}

var driveMkdirCmd = &cobra.Command{
	Use:   "mkdir <name>",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation("create_folder", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.drive.CreateFolder(ctx, args[0], driveParent)
		})
	},
}

var driveDeleteCmd = &cobra.Command{
	Use:   "delete <file-id>",
	Short: "Trash a file (or delete permanently with --permanent)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation("delete", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.drive.Delete(ctx, args[0], drivePermanent)
		})
	},
}
