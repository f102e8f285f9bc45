// Package audit checks a JavaScript project's installed dependencies
// against an npm registry, reporting deprecated packages and packages whose
// installed version is older than a threshold of years.
//
// Basic usage:
//
//	workspaces, err := audit.LoadWorkspaces("path/to/monorepo", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	a := audit.New(npm.New("", nil))
//	reports := a.Old(context.Background(), workspaces, 4, false)
//	output.WriteOld(os.Stdout, reports)
//
// Registry lookups run concurrently per workspace and per dependency list,
// but report ordering always follows declaration order: workspaces in the
// order supplied, packages in the order their manifest declares them.
// Failed lookups drop the affected package from the report; only missing or
// malformed manifest/lock files are surfaced as errors.
package audit

import (
	"context"
	"time"

	"github.com/git-pkgs/audit/manifest"
	"github.com/git-pkgs/audit/npm"
)

// PackageRef is one installed (name, version) pair.
type PackageRef = manifest.Dependency

// Workspace is the audit input for one workspace: its display name and its
// resolved production and development dependency lists.
type Workspace struct {
	Name string
	Prod []PackageRef
	Dev  []PackageRef
}

// Registry is the set of registry point queries the auditor needs.
// *npm.Registry satisfies it.
type Registry interface {
	FetchMetadata(ctx context.Context, name string) (*npm.Metadata, error)
	FetchVersion(ctx context.Context, name, version string) (*npm.VersionInfo, error)
}

const defaultConcurrency = 15

// Auditor drives registry lookups and folds the results into reports.
//
// The reference time for all age computations is captured once at
// construction, so every package in one run is judged against the same
// instant regardless of when its lookup completes.
type Auditor struct {
	registry    Registry
	now         time.Time
	concurrency int
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithNow fixes the reference time used for age computations.
func WithNow(now time.Time) Option {
	return func(a *Auditor) {
		a.now = now
	}
}

// WithConcurrency caps the number of in-flight registry lookups per
// dependency list.
func WithConcurrency(n int) Option {
	return func(a *Auditor) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// New creates an Auditor querying reg.
func New(reg Registry, opts ...Option) *Auditor {
	a := &Auditor{
		registry:    reg,
		now:         time.Now(),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LoadWorkspaces resolves the given workspaces' installed dependencies from
// the manifests under root and the root lock file. A nil workspaces slice
// reads the workspace list from the root manifest, falling back to
// single-repo mode.
func LoadWorkspaces(root string, workspaces []string) ([]Workspace, error) {
	resolved, err := manifest.Load(root, workspaces)
	if err != nil {
		return nil, err
	}

	out := make([]Workspace, len(resolved))
	for i, ws := range resolved {
		out[i] = Workspace{Name: ws.Name, Prod: ws.Prod, Dev: ws.Dev}
	}
	return out, nil
}
