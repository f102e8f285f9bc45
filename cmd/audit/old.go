package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/audit"
	"github.com/git-pkgs/audit/output"
)

var (
	oldOpts    runOptions
	sinceYears int
)

var oldCmd = &cobra.Command{
	Use:   "old",
	Short: "Report dependencies older than a threshold of years",
	Long:  "Report dependencies whose installed version was published more than the given number of years ago, alongside the latest release for comparison.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, workspaces, registry, err := oldOpts.load()
		if err != nil {
			return err
		}

		since := sinceYears
		if !cmd.Flags().Changed("since") {
			since = cfg.Since
		}

		auditor := audit.New(registry)
		reports := auditor.Old(cmd.Context(), workspaces, since, oldOpts.prodOnly)

		if oldOpts.format == "json" {
			return output.WriteJSON(os.Stdout, reports)
		}
		return output.WriteOld(os.Stdout, reports)
	},
}

func init() {
	oldOpts.bind(oldCmd)
	oldCmd.Flags().IntVar(&sinceYears, "since", 4, "staleness threshold in years")
	rootCmd.AddCommand(oldCmd)
}
