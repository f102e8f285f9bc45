package audit

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Deprecated reports, per workspace, the dependencies whose installed
// version carries an active deprecation marker. Concurrency, ordering and
// failure handling follow the same rules as Old.
func (a *Auditor) Deprecated(ctx context.Context, workspaces []Workspace, prodOnly bool) []DeprecatedReport {
	reports := make([]DeprecatedReport, len(workspaces))

	var g errgroup.Group
	for i, ws := range workspaces {
		g.Go(func() error {
			report := DeprecatedReport{
				Workspace: ws.Name,
				Prod:      a.deprecatedList(ctx, ws.Prod),
				ProdOnly:  prodOnly,
			}
			if !prodOnly {
				report.Dev = a.deprecatedList(ctx, ws.Dev)
			}
			reports[i] = report
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

func (a *Auditor) deprecatedList(ctx context.Context, refs []PackageRef) []DeprecatedPackage {
	slots := make([]*DeprecatedPackage, len(refs))

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, ref := range refs {
		g.Go(func() error {
			info, err := a.registry.FetchVersion(ctx, ref.Name, ref.Version)
			if err != nil {
				slog.Debug("dropping package from report", "package", ref.Name, "version", ref.Version, "error", err)
				return nil
			}
			if !IsDeprecated(info.Deprecated) {
				return nil
			}
			slots[i] = &DeprecatedPackage{
				Name:    ref.Name,
				Version: ref.Version,
				Message: info.Deprecated.Message(),
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]DeprecatedPackage, 0, len(refs))
	for _, pkg := range slots {
		if pkg != nil {
			out = append(out, *pkg)
		}
	}
	return out
}
