package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"camsort/internal/private"
	"camsort/internal/report"
)

// NewPrivateCmd creates the private command
func NewPrivateCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "private [directory]",
		Short: "Mirror marked folders into the private area",
		Long: `Copy every folder whose name matches the private marker (default
"*(X)*") into the reserved private folder, preserving its relative
path. Folders already mirrored are skipped, never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if root == "" && len(args) > 0 {
				root = args[0]
			}
			if root == "" {
				root = cfg.Archive.Root
			}

			copier, err := private.NewCopier(root, cfg.Private.Folder, cfg.Private.Marker)
			if err != nil {
				return fmt.Errorf("invalid private marker %q: %w", cfg.Private.Marker, err)
			}

			rep, err := copier.Run()
			if err != nil {
				return fmt.Errorf("error mirroring private folders: %w", err)
			}

			for _, entry := range rep.Entries {
				fmt.Printf("  %-8s %s\n", entry.Status, entry.RelPath)
			}
			fmt.Printf("Mirrored %d folders (%s), %d already present, %d errors\n",
				rep.Copied, report.HumanBytes(rep.TotalBytes), rep.Skipped, rep.Errors)
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "d", "", "Archive root to scan (defaults to the configured root)")

	return cmd
}
