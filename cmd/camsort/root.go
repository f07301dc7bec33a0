package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"camsort/internal/config"
	"camsort/internal/log"
)

var (
	cfgFile string
	debug   bool
	cfg     *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "camsort",
		Short: "Organize camera dumps by camera model and capture month",
		Long: `Camsort classifies media files dumped into a capture directory,
first into one folder per camera model, then into YYYY.MM month buckets
derived from EXIF capture dates. Duplicates already present in the
archive are detected by content hash and left where they are.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetDebug(debug)

			var configErr error
			if cfgFile != "" {
				cfg, configErr = config.LoadConfigFile(cfgFile)
			} else {
				cfg, configErr = config.LoadConfig()
			}
			if configErr != nil {
				fmt.Printf("Warning: %v\n", configErr)
				fmt.Println("Using default settings.")
				cfg = config.New()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/camsort/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(NewOrganizeCmd())
	rootCmd.AddCommand(NewPrivateCmd())
	rootCmd.AddCommand(NewStatsCmd())
	rootCmd.AddCommand(NewWatchCmd())

	return rootCmd
}
