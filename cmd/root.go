// Package cmd provides the themer command-line interface. Commands share a
// project configuration resolved once from the nearest themer.toml, and a
// structured logger configured by --log-level.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/themerdev/themer/internal/config"
	"github.com/themerdev/themer/internal/errors"
	"github.com/themerdev/themer/internal/logging"
)

var (
	configPath string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "themer",
	Short: "Generate theme and color-scheme artifacts from templates",
	Long: `Themer renders user-supplied templates against themes and color schemes
and keeps the generated tree in sync with its inputs across repeated runs.

Files a human has edited since the last render are never overwritten unless
--force is given; everything else is regenerated only when its inputs
actually changed.

Quick start:
  themer render             Render everything that is new or stale
  themer render --dry-run   Show what would happen without touching disk
  themer status             Classify every output file
  themer watch              Re-render whenever inputs change`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.IsKind(err, errors.KindInternal) {
			fmt.Fprintln(os.Stderr, "this is a bug in themer; please report it")
		}

		return 1
	}

	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the project themer.toml (skips ancestor discovery)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
}

// newLogger builds the run logger from the persistent flags.
func newLogger() logging.Logger {
	return logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(logLevel),
		Format: logFormat,
		Output: os.Stderr,
	})
}

// loadConfig resolves the project configuration: from --config when given,
// otherwise by ancestor search from the current directory.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return nil, errors.Wrapf(errors.KindConfig, err, "failed to resolve config path %q", configPath)
		}

		return config.LoadAt(filepath.Dir(abs))
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(errors.KindConfig, err, "failed to determine working directory")
	}

	return config.Load(cwd)
}
