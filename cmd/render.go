package cmd

import (
	"github.com/spf13/cobra"

	"github.com/themerdev/themer/internal/render"
)

var (
	renderForce  bool
	renderDryRun bool
)

var renderCmd = &cobra.Command{
	Use:     "render",
	Aliases: []string{"r"},
	Short:   "Render all themes, schemes, and templates",
	Long: `Render walks every theme, scheme, and eligible template, writes outputs
that are new or whose inputs changed, and records what it wrote in the
project manifest.

Files modified outside themer are reported as conflicts and left alone;
pass --force to overwrite them. With --dry-run the full decision logic runs
but nothing on disk changes, including the manifest.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mode := render.Normal
		if renderForce {
			mode = render.Force
		}

		session, err := render.NewSession(cfg, logger, mode, renderDryRun)
		if err != nil {
			return err
		}

		report, err := session.Run(cmd.Context())
		if err != nil {
			return err
		}

		logger.Info(cmd.Context(), "render finished",
			"files", len(report.Actions),
			"written", report.Written(),
			"conflicts", report.Conflicts(),
			"dry_run", report.DryRun,
		)

		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVarP(&renderForce, "force", "f", false, "overwrite files modified outside themer")
	renderCmd.Flags().BoolVarP(&renderDryRun, "dry-run", "n", false, "compute decisions without touching disk")
	rootCmd.AddCommand(renderCmd)
}
