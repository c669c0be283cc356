package cmd

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/themerdev/themer/internal/manifest"
	"github.com/themerdev/themer/internal/render"
	"github.com/themerdev/themer/internal/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Re-render whenever themes, schemes, or templates change",
	Long: `Watch performs an initial render and then watches the project's theme,
scheme, and template directories, re-rendering after each debounced burst
of changes. Render output directories and themer's own state are ignored
so a render never retriggers itself.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		runOnce := func(ctx context.Context, _ []string) error {
			session, err := render.NewSession(cfg, logger, render.Normal, false)
			if err != nil {
				return err
			}

			_, err = session.Run(ctx)

			return err
		}

		if err := runOnce(cmd.Context(), nil); err != nil {
			return err
		}

		stateDir := cfg.Project.Root + "/" + manifest.StateDir
		ignore := func(path string) bool {
			return strings.HasPrefix(path, stateDir)
		}

		w, err := watcher.New(logger, watchDebounce, ignore, runOnce)
		if err != nil {
			return err
		}

		for _, dir := range []string{cfg.Dirs.Themes, cfg.Dirs.Schemes, cfg.Dirs.Templates} {
			if err := w.AddRecursive(dir); err != nil {
				return err
			}
		}

		logger.Info(cmd.Context(), "watching for changes",
			"themes", cfg.Dirs.Themes, "schemes", cfg.Dirs.Schemes, "templates", cfg.Dirs.Templates)

		if err := w.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "settle time before re-rendering")
	rootCmd.AddCommand(watchCmd)
}
