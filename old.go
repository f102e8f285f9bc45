package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/git-pkgs/audit/npm"
)

// ErrNotInTimetable means a lock file's installed version is missing from
// the package's registry publish-time history (unpublished version, or lock
// and registry out of sync).
var ErrNotInTimetable = errors.New("version not in publish timetable")

// Old reports, per workspace, the dependencies whose installed version was
// published more than thresholdYears years before the auditor's reference
// time. Workspaces run concurrently; the returned slice preserves the input
// workspace order and each list preserves manifest declaration order.
// Lookup failures drop the affected package.
func (a *Auditor) Old(ctx context.Context, workspaces []Workspace, thresholdYears int, prodOnly bool) []OldReport {
	reports := make([]OldReport, len(workspaces))

	var g errgroup.Group
	for i, ws := range workspaces {
		g.Go(func() error {
			report := OldReport{
				Workspace: ws.Name,
				Prod:      a.oldList(ctx, ws.Prod, thresholdYears),
				ProdOnly:  prodOnly,
			}
			if !prodOnly {
				report.Dev = a.oldList(ctx, ws.Dev, thresholdYears)
			}
			reports[i] = report
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

// oldList fetches metadata for each ref concurrently, keeps the stale ones,
// and preserves input order via index-addressed slots.
func (a *Auditor) oldList(ctx context.Context, refs []PackageRef, thresholdYears int) []OldPackage {
	slots := make([]*OldPackage, len(refs))

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, ref := range refs {
		g.Go(func() error {
			meta, err := a.registry.FetchMetadata(ctx, ref.Name)
			if err != nil {
				slog.Debug("dropping package from report", "package", ref.Name, "error", err)
				return nil
			}
			pkg, err := a.agePackage(ref, meta)
			if err != nil {
				slog.Debug("dropping package from report", "package", ref.Name, "error", err)
				return nil
			}
			if !IsStale(pkg.Age, thresholdYears) {
				return nil
			}
			slots[i] = pkg
			return nil
		})
	}
	_ = g.Wait()

	out := make([]OldPackage, 0, len(refs))
	for _, pkg := range slots {
		if pkg != nil {
			out = append(out, *pkg)
		}
	}
	return out
}

// agePackage combines one installed ref with its registry metadata. The
// installed version must appear in the publish timetable, and the metadata
// must carry a latest tag and a modified timestamp; anything missing makes
// the package ineligible for the report.
func (a *Auditor) agePackage(ref PackageRef, meta *npm.Metadata) (*OldPackage, error) {
	published, ok := meta.PublishedAt(ref.Version)
	if !ok {
		return nil, fmt.Errorf("%s@%s: %w", ref.Name, ref.Version, ErrNotInTimetable)
	}

	latest := meta.Latest()
	if latest == "" {
		return nil, fmt.Errorf("%s: no latest dist-tag", ref.Name)
	}
	modified, ok := meta.Modified()
	if !ok {
		return nil, fmt.Errorf("%s: no modified timestamp", ref.Name)
	}

	return &OldPackage{
		Name:              ref.Name,
		Version:           ref.Version,
		PublishedAt:       published,
		Age:               AgeYears(a.now, published),
		LatestVersion:     latest,
		LatestPublishedAt: modified,
		LatestAge:         AgeYears(a.now, modified),
		Behind:            BehindLatest(ref.Version, latest),
	}, nil
}
