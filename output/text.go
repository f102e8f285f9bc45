// Package output renders audit reports for the console or as JSON.
package output

import (
	"fmt"
	"io"

	"github.com/git-pkgs/audit"
)

const dateLayout = "02/01/2006"

// WriteOld renders stale-dependency reports as indented text, one block per
// workspace with production/development sections and a totals footer.
func WriteOld(w io.Writer, reports []audit.OldReport) error {
	for _, r := range reports {
		if _, err := fmt.Fprintf(w, "\n[%s] old packages:\n", r.Workspace); err != nil {
			return err
		}

		if r.ProdOnly {
			if err := writeOldPackages(w, r.Prod, ""); err != nil {
				return err
			}
		} else {
			if err := writeOldPackages(w, r.Prod, "production:"); err != nil {
				return err
			}
			if err := writeOldPackages(w, r.Dev, "development:"); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "\n  total: %s\n", r.Totals()); err != nil {
			return err
		}
	}
	return nil
}

func writeOldPackages(w io.Writer, pkgs []audit.OldPackage, header string) error {
	if len(pkgs) == 0 {
		return nil
	}

	indent := "  "
	if header != "" {
		if _, err := fmt.Fprintf(w, "\n  %s\n", header); err != nil {
			return err
		}
		indent = "    "
	}

	for _, p := range pkgs {
		if _, err := fmt.Fprintf(w, "\n%s%s@%s (%s)\n",
			indent, p.Name, p.Version, p.PublishedAt.Format(dateLayout)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s    -> %d years old, %d older than latest\n",
			indent, p.Age, p.Age-p.LatestAge); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s        -> latest @%s (%s)\n",
			indent, p.LatestVersion, p.LatestPublishedAt.Format(dateLayout)); err != nil {
			return err
		}
	}
	return nil
}

// WriteDeprecated renders deprecated-dependency reports as indented text.
func WriteDeprecated(w io.Writer, reports []audit.DeprecatedReport) error {
	for _, r := range reports {
		if _, err := fmt.Fprintf(w, "\n[%s] deprecated packages:\n", r.Workspace); err != nil {
			return err
		}

		if r.ProdOnly {
			if err := writeDeprecatedPackages(w, r.Prod, ""); err != nil {
				return err
			}
		} else {
			if err := writeDeprecatedPackages(w, r.Prod, "production:"); err != nil {
				return err
			}
			if err := writeDeprecatedPackages(w, r.Dev, "development:"); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "\n  total: %s\n", r.Totals()); err != nil {
			return err
		}
	}
	return nil
}

func writeDeprecatedPackages(w io.Writer, pkgs []audit.DeprecatedPackage, header string) error {
	if len(pkgs) == 0 {
		return nil
	}

	indent := "  "
	if header != "" {
		if _, err := fmt.Fprintf(w, "\n  %s\n", header); err != nil {
			return err
		}
		indent = "    "
	}

	for _, p := range pkgs {
		if _, err := fmt.Fprintf(w, "\n%s%s@%s", indent, p.Name, p.Version); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
