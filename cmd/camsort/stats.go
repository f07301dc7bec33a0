package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"camsort/internal/stats"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	var (
		root   string
		camera string
		month  string
	)

	cmd := &cobra.Command{
		Use:   "stats [directory]",
		Short: "Summarize the organized archive",
		Long: `Count files and bytes across the organized archive, broken down by
extension, camera and year. The scan can be narrowed to one camera
folder, one YYYY.MM month bucket, or both.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if root == "" && len(args) > 0 {
				root = args[0]
			}
			if root == "" {
				root = cfg.Archive.Root
			}

			collector := stats.NewCollector(root, cfg.Archive.Reserved, cfg.ExtensionSet())
			result, err := collector.Collect(stats.Scope{Camera: camera, Month: month})
			if err != nil {
				return fmt.Errorf("error scanning archive: %w", err)
			}

			fmt.Println(result.Render())
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "d", "", "Archive root to scan (defaults to the configured root)")
	cmd.Flags().StringVarP(&camera, "camera", "c", "", "Limit the scan to one camera folder")
	cmd.Flags().StringVarP(&month, "month", "m", "", "Limit the scan to one YYYY.MM bucket")

	return cmd
}
