package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var (
	docsRender    bool
	docsContent   string
	docsFile      string
	docsMatchCase bool
	docsIndex     int64
	docsWidth     float64
	docsHeight    float64
	docsTableData string
)

func init() {
	docsReadCmd.Flags().BoolVar(&docsRender, "render", false, "Render the content to the terminal instead of printing JSON")

	docsCreateCmd.Flags().StringVar(&docsContent, "content", "", "Initial plain-text content")
	docsCreateCmd.Flags().StringVar(&docsFile, "file", "", "Read initial content from a file")

	docsCreateMarkdownCmd.Flags().StringVar(&docsContent, "content", "", "Markdown content")
	docsCreateMarkdownCmd.Flags().StringVar(&docsFile, "file", "", "Read markdown content from a file")

	docsInsertMarkdownCmd.Flags().StringVar(&docsContent, "content", "", "Markdown content")
	docsInsertMarkdownCmd.Flags().StringVar(&docsFile, "file", "", "Read markdown content from a file")
	docsInsertMarkdownCmd.Flags().Int64Var(&docsIndex, "index", 0, "Insertion index (default: end of document)")

	docsReplaceCmd.Flags().BoolVar(&docsMatchCase, "match-case", false, "Match case when finding text")

	docsFormatCmd.Flags().Bool("bold", false, "Set bold on or off")
	docsFormatCmd.Flags().Bool("italic", false, "Set italic on or off")
	docsFormatCmd.Flags().Bool("underline", false, "Set underline on or off")

	docsInsertImageCmd.Flags().Int64Var(&docsIndex, "index", 0, "Insertion index (default: end of document)")
	docsInsertImageCmd.Flags().Float64Var(&docsWidth, "width", 0, "Image width in points")
	docsInsertImageCmd.Flags().Float64Var(&docsHeight, "height", 0, "Image height in points")

	docsInsertTableCmd.Flags().Int64Var(&docsIndex, "index", 0, "Insertion index (default: end of document)")
	docsInsertTableCmd.Flags().StringVar(&docsTableData, "data", "", "Cell contents as a JSON array of string arrays")

	docsCmd.AddCommand(
		docsReadCmd,
		docsStructureCmd,
		docsCreateCmd,
		docsCreateMarkdownCmd,
		docsInsertCmd,
		docsInsertMarkdownCmd,
		docsAppendCmd,
		docsReplaceCmd,
		docsFormatCmd,
		docsPageBreakCmd,
		docsDeleteCmd,
		docsInsertImageCmd,
		docsInsertTableCmd,
	)
	rootCmd.AddCommand(docsCmd)
}

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Read and edit Google Docs",
}

var docsReadCmd = &cobra.Command{
	Use:   "read <document-id>",
	Short: "Read a document's text content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !docsRender {
			return runOperation("read", func(ctx context.Context, svc *services) (map[string]any, error) {
				return svc.docs.Read(ctx, args[0])
			})
		}

		ctx := context.Background()
		svc, err := newServices(ctx)
		if err != nil {
			return emitError("read", err)
		}
		result, err := svc.docs.Read(ctx, args[0])
		if err != nil {
			return emitError("read", err)
		}
		content, _ := result["content"].(string)
		rendered, err := renderMarkdown(content, svc.cfg.RenderStyle)
		if err != nil {
			return emitError("read", err)
		}
		fmt.Print(rendered)
		return nil
	},
}

var docsStructureCmd = &cobra.Command{
	Use:   "structure <document-id>",
	Short: "Show the document's heading outline with index ranges",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation("structure", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.docs.Structure(ctx, args[0])
		})
	},
}

var docsCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := contentInput(true)
		if err != nil {
			return emitInvalid("create", err.Error())
		}
		return runOperation("create", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.docs.Create(ctx, args[0], content)
		})
	},
}

var docsCreateMarkdownCmd = &cobra.Command{
	Use:   "create-from-markdown <title>",
	Short: "Create a document from markdown with formatting and tables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := contentInput(false)
		if err != nil {
			return emitInvalid("create_from_markdown", err.Error())
		}
		return runOperation("create_from_markdown", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.docs.CreateFromMarkdown(ctx, args[0], content)
		})
	},
}

var docsInsertCmd = &cobra.Command{
	Use:   "insert <document-id> <index> <text>",
	Short: "Insert text at an index",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[1])
		if err != nil {
			return emitInvalid("insert", err.Error())
		}
		return runOperation("insert", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.docs.Insert(ctx, args[0], args[2], index)
		})
	},
}

var docsInsertMarkdownCmd = &cobra.Command{
	Use:   "insert-from-markdown <document-id>",
	Short: "Insert rendered markdown into an existing document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := contentInput(false)
		if err != nil {
			return emitInvalid("insert_from_markdown", err.Error())
		}
		index := optionalIndex(cmd)
		return runOperation("insert_from_markdown", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.docs.InsertFromMarkdown(ctx, args[0], content, index)
		})
	},
}

var docsAppendCmd = &cobra.Command{
	Use:   "append <document-id> <text>",
	Short: "Append text at the end of the document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation("append", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.docs.Append(ctx, args[0], args[1])
		})
	},
}

var docsReplaceCmd = &cobra.Command{
	Use:   "replace <document-id> <find> <replace>",
	Short: "Replace every occurrence of a string",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation("replace", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.docs.Replace(ctx, args[0], args[1], args[2], docsMatchCase)
		})
	},
}

var docsFormatCmd = &cobra.Command{
	Use:   "format <document-id> <start> <end>",
	Short: "Apply bold/italic/underline over an index range",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseIndex(args[1])
		if err != nil {
			return emitInvalid("format", err.Error())
		}
		end, err := parseIndex(args[2])
		if err != nil {
			return emitInvalid("format", err.Error())
		}
		bold := optionalBool(cmd, "bold")
		italic := optionalBool(cmd, "italic")
		underline := optionalBool(cmd, "underline")
		if bold == nil && italic == nil && underline == nil {
			return emitInvalid("format", "at least one of --bold, --italic, --underline is required")
		}
		return runOperation("format", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.docs.Format(ctx, args[0], start, end, bold, italic, underline)
		})
	},
}

var docsPageBreakCmd = &cobra.Command{
	Use:   "page-break <document-id> <index>",
	Short: "Insert a page break",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[1])
		if err != nil {
			return emitInvalid("page_break", err.Error())
		}
		return runOperation("page_break", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.docs.PageBreak(ctx, args[0], index)
		})
	},
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete <document-id> <start> <end>",
	Short: "Delete a content range",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseIndex(args[1])
		if err != nil {
			return emitInvalid("delete", err.Error())
		}
		end, err := parseIndex(args[2])
		if err != nil {
			return emitInvalid("delete", err.Error())
		}
		if end <= start {
			return emitInvalid("delete", "end must be greater than start")
		}
		return runOperation("delete", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.docs.Delete(ctx, args[0], start, end)
		})
	},
}

var docsInsertImageCmd = &cobra.Command{
	Use:   "insert-image <document-id> <image-url>",
	Short: "Insert an inline image from a URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index := optionalIndex(cmd)
		var width, height *float64
		if cmd.Flags().Changed("width") {
			width = &docsWidth
		}
		if cmd.Flags().Changed("height") {
			height = &docsHeight
		}
		return runOperation("insert_image", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.docs.InsertImage(ctx, args[0], args[1], index, width, height)
		})
	},
}

var docsInsertTableCmd = &cobra.Command{
	Use:   "insert-table <document-id> <rows> <cols>",
	Short: "Insert a table, optionally pre-filled from --data",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := parseIndex(args[1])
		if err != nil {
			return emitInvalid("insert_table", err.Error())
		}
		cols, err := parseIndex(args[2])
		if err != nil {
			return emitInvalid("insert_table", err.Error())
		}
		if rows <= 0 || cols <= 0 {
			return emitInvalid("insert_table", "rows and cols must be positive")
		}

		var data [][]string
		if docsTableData != "" {
			if err := json.Unmarshal([]byte(docsTableData), &data); err != nil {
				return emitInvalid("insert_table", fmt.Sprintf("invalid --data JSON: %v", err))
			}
		}
		index := optionalIndex(cmd)
		return runOperation("insert_table", func(ctx context.Context, svc *services) (map[string]any, error) {
			return svc.docs.InsertTable(ctx, args[0], rows, cols, index, data)
		})
	},
}

// contentInput resolves --content vs --file. With allowEmpty, neither flag
// is fine and yields "".
func contentInput(allowEmpty bool) (string, error) {
	if docsContent != "" && docsFile != "" {
		return "", fmt.Errorf("--content and --file are mutually exclusive")
	}
	if docsFile != "" {
		raw, err := os.ReadFile(docsFile)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %v", docsFile, err)
		}
		return string(raw), nil
	}
	if docsContent == "" && !allowEmpty {
		return "", fmt.Errorf("one of --content or --file is required")
	}
	return docsContent, nil
}

func parseIndex(arg string) (int64, error) {
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", arg)
	}
	return n, nil
}

func optionalIndex(cmd *cobra.Command) *int64 {
	if cmd.Flags().Changed("index") {
		return &docsIndex
	}
	return nil
}

func optionalBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

func renderMarkdown(content, style string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(100)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(content)
}
