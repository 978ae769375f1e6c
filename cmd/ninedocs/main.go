// Package main implements the ninedocs CLI: the build, validation, and
// screenshot-capture toolchain for the 9Boxer documentation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ninedocs/internal/config"
)

var (
	// Global flags
	cfgPath string
	verbose bool
	noColor bool

	// Loaded once in PersistentPreRunE, shared by all commands.
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ninedocs",
	Short: "ninedocs - 9Boxer documentation toolchain",
	Long: `ninedocs builds and validates the 9Boxer documentation.

It covers the three stages of the docs pipeline:

  1. check    validate pages, nav entries, links, anchors, and images
  2. capture  drive the running app with a headless browser and take
              the screenshots the docs reference
  3. build    render the markdown into a browsable static site

Warnings (missing screenshots, broken anchors, orphan pages) never fail
a run; only structural errors do.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		if verbose {
			cfg.Logging.Level = "debug"
		}
		logger, err = cfg.Logging.BuildLogger()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultPath, "path to ninedocs.yml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "plain output, no terminal styling")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
