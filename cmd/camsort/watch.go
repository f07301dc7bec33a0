package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"camsort/internal/log"
	"camsort/internal/metadata"
	"camsort/internal/organize"
	"camsort/internal/watch"
)

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	var (
		root   string
		settle int
	)

	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Watch the capture directory and classify new files",
		Long: `Watch the capture directory and move each new media file into its
camera model folder as soon as it appears. Month bucketing is left to
an explicit 'camsort organize' run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if root == "" && len(args) > 0 {
				root = args[0]
			}
			if root != "" {
				cfg.Archive.Root = root
			}

			if logPath, err := log.AddFileOutput(cfg.Settings.LogDir, "camsort_watch"); err != nil {
				log.Warn("could not open log file: %v", err)
			} else {
				log.Debug("logging to %s", logPath)
			}

			provider, err := metadata.New(cfg.Metadata.Tool, time.Duration(cfg.Metadata.TimeoutSeconds)*time.Second)
			if err != nil {
				return err
			}
			engine := organize.NewEngine(cfg, provider)

			watcher, err := watch.New(cfg.Archive.Root, engine, time.Duration(settle)*time.Second)
			if err != nil {
				return fmt.Errorf("error setting up watcher: %w", err)
			}
			if err := watcher.Start(); err != nil {
				return err
			}

			fmt.Printf("Watching %s. Press Ctrl+C to stop.\n", cfg.Archive.Root)

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			<-sigChan

			fmt.Println("Stopping...")
			watcher.Stop()
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "d", "", "Capture directory to watch (defaults to the configured root)")
	cmd.Flags().IntVarP(&settle, "settle", "s", 2, "Seconds to wait for a new file to finish writing")

	return cmd
}
