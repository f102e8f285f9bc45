package main

import (
	"fmt"
	"os"

	"github.com/git-pkgs/purl"
	"github.com/spf13/cobra"

	"github.com/git-pkgs/audit/npm"
)

var infoRegistry string

var infoCmd = &cobra.Command{
	Use:   "info <purl>",
	Short: "Show registry metadata for a single package",
	Long: `Show registry metadata for a package identified by its package URL,
e.g. "pkg:npm/react" or "pkg:npm/react@18.2.0". With a version, the
version's deprecation status is shown as well.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := purl.Parse(args[0])
		if err != nil {
			return fmt.Errorf("parsing purl: %w", err)
		}
		if p.Type != "npm" {
			return fmt.Errorf("unsupported ecosystem %q, only npm is supported", p.Type)
		}
		name := p.FullName()

		registry := npm.New(infoRegistry, nil)

		meta, err := registry.FetchMetadata(cmd.Context(), name)
		if err != nil {
			return err
		}

		w := os.Stdout
		fmt.Fprintf(w, "%s\n", meta.Name)
		fmt.Fprintf(w, "  latest:   %s\n", meta.Latest())
		if modified, ok := meta.Modified(); ok {
			fmt.Fprintf(w, "  modified: %s\n", modified.Format("02/01/2006"))
		}
		fmt.Fprintf(w, "  registry: %s\n", registry.URLs().Registry(name, p.Version))
		fmt.Fprintf(w, "  purl:     %s\n", registry.URLs().PURL(name, p.Version))

		if p.Version == "" {
			return nil
		}

		info, err := registry.FetchVersion(cmd.Context(), name, p.Version)
		if err != nil {
			return err
		}

		if published, ok := meta.PublishedAt(p.Version); ok {
			fmt.Fprintf(w, "  %s published %s\n", p.Version, published.Format("02/01/2006"))
		}
		if info.Deprecated.Active() {
			if msg := info.Deprecated.Message(); msg != "" {
				fmt.Fprintf(w, "  DEPRECATED: %s\n", msg)
			} else {
				fmt.Fprintf(w, "  DEPRECATED\n")
			}
		}
		return nil
	},
}

func init() {
	infoCmd.Flags().StringVar(&infoRegistry, "registry", "", "npm registry base URL")
	rootCmd.AddCommand(infoCmd)
}
