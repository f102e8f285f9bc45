package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/audit"
	"github.com/git-pkgs/audit/output"
)

var deprecatedOpts runOptions

var deprecatedCmd = &cobra.Command{
	Use:   "deprecated",
	Short: "Report dependencies the registry marks as deprecated",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, workspaces, registry, err := deprecatedOpts.load()
		if err != nil {
			return err
		}

		auditor := audit.New(registry)
		reports := auditor.Deprecated(cmd.Context(), workspaces, deprecatedOpts.prodOnly)

		if deprecatedOpts.format == "json" {
			return output.WriteJSON(os.Stdout, reports)
		}
		return output.WriteDeprecated(os.Stdout, reports)
	},
}

func init() {
	deprecatedOpts.bind(deprecatedCmd)
	rootCmd.AddCommand(deprecatedCmd)
}
