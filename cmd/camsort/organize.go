package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"camsort/internal/log"
	"camsort/internal/metadata"
	"camsort/internal/organize"
	"camsort/internal/report"
	"camsort/internal/tui"
)

// NewOrganizeCmd creates the organize command
func NewOrganizeCmd() *cobra.Command {
	var (
		root   string
		dryRun bool
		all    bool
		scope  []string
	)

	cmd := &cobra.Command{
		Use:   "organize [directory]",
		Short: "Classify a capture directory by camera model and month",
		Long: `Classify the media files sitting flat in the capture directory into
per-camera folders, then bucket the selected cameras' files into
YYYY.MM month folders. Without --all or --scope, an interactive picker
chooses which cameras proceed to the month phase.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if root == "" && len(args) > 0 {
				root = args[0]
			}
			if root != "" {
				cfg.Archive.Root = root
			}
			if cmd.Flags().Changed("dry-run") {
				cfg.Settings.DryRun = dryRun
			}

			if logPath, err := log.AddFileOutput(cfg.Settings.LogDir, "camsort"); err != nil {
				log.Warn("could not open log file: %v", err)
			} else {
				log.Debug("logging to %s", logPath)
			}

			provider, err := metadata.New(cfg.Metadata.Tool, time.Duration(cfg.Metadata.TimeoutSeconds)*time.Second)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.Settings.DryRun {
				fmt.Printf("Dry run: planning organization for '%s'\n", cfg.Archive.Root)
			} else {
				fmt.Printf("Organizing '%s'\n", cfg.Archive.Root)
			}

			engine := organize.NewEngine(cfg, provider)
			result, err := engine.Run(ctx, scopeProvider(all, scope))
			if err != nil {
				return fmt.Errorf("error organizing directory: %w", err)
			}

			fmt.Println(report.RenderSummary(result))

			if path, err := report.WriteTXT(cfg.Settings.ReportDir, result); err != nil {
				log.Warn("could not write summary report: %v", err)
			} else {
				fmt.Printf("Summary written to %s\n", path)
			}

			if cfg.Settings.DryRun {
				fmt.Println("Dry run complete. No files were moved.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "d", "", "Capture directory to organize (overrides argument)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would be done without moving files")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Bucket every camera folder without asking")
	cmd.Flags().StringSliceVar(&scope, "scope", nil, "Camera folders to bucket (repeatable, skips the picker)")

	return cmd
}

// scopeProvider picks how the month-phase camera folders are chosen: an
// explicit --scope list, everything with --all, the interactive picker on a
// terminal, and everything otherwise (scripts and cron runs get no prompt).
func scopeProvider(all bool, scope []string) organize.ScopeProvider {
	switch {
	case len(scope) > 0:
		return organize.StaticScope(scope)
	case all:
		return organize.AllFolders()
	case isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()):
		return tui.NewPicker()
	default:
		return organize.AllFolders()
	}
}
