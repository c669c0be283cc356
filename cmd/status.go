package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/themerdev/themer/internal/render"
)

var statusOutput string

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Classify every output file without rendering",
	Long: `Status runs the full decision logic as a dry run and reports, for each
output file, whether it is not tracked, unchanged, stale, or modified by
hand, and what a render would do about it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		session, err := render.NewSession(cfg, logger, render.Normal, true)
		if err != nil {
			return err
		}

		report, err := session.Run(cmd.Context())
		if err != nil {
			return err
		}

		return printReport(report, statusOutput)
	},
}

func printReport(report *render.Report, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Print(string(data))

	default:
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tTHEME\tSCHEME\tSTATUS\tACTION")
		for _, a := range report.Actions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.Path, a.Theme, a.Scheme, a.Status, a.Decision)
		}

		return w.Flush()
	}

	return nil
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "table", "output format (table|json|yaml)")
	rootCmd.AddCommand(statusCmd)
}
