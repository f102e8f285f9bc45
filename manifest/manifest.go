// Package manifest locates the installed dependency versions of a project.
//
// Direct dependency names come from a workspace's package.json; the exact
// installed version of each comes from the root package-lock.json's flat
// "packages" map. In a monorepo the lock keys a workspace-local install as
// "<workspace>/node_modules/<name>", while hoisted installs live under
// plain "node_modules/<name>". Resolution tries the workspace-local key
// first and falls back to the hoisted one.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	// ErrManifestNotFound means a workspace's package.json is missing.
	ErrManifestNotFound = errors.New("package.json not found")
	// ErrLockNotFound means the root package-lock.json is missing.
	ErrLockNotFound = errors.New("package-lock.json not found")
)

// ParseError wraps a malformed manifest or lock file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Dependency is one resolved (name, installed version) pair.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Manifest holds the parts of a package.json the audit needs. Dependency
// names keep their declaration order.
type Manifest struct {
	Workspaces []string
	Deps       []string
	DevDeps    []string
}

type manifestJSON struct {
	Workspaces      []string                               `json:"workspaces"`
	Dependencies    *orderedmap.OrderedMap[string, string] `json:"dependencies"`
	DevDependencies *orderedmap.OrderedMap[string, string] `json:"devDependencies"`
}

// ParseManifest reads dir/package.json.
func ParseManifest(dir string) (*Manifest, error) {
	p := filepath.Join(dir, "package.json")
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("%w at %q", ErrManifestNotFound, p)
	}

	var raw manifestJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: p, Err: err}
	}

	return &Manifest{
		Workspaces: raw.Workspaces,
		Deps:       keys(raw.Dependencies),
		DevDeps:    keys(raw.DevDependencies),
	}, nil
}

func keys(m *orderedmap.OrderedMap[string, string]) []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Lock is the root package-lock.json's resolved-packages map.
type Lock struct {
	packages map[string]lockEntry
}

type lockEntry struct {
	Version string `json:"version"`
}

type lockJSON struct {
	Packages map[string]lockEntry `json:"packages"`
}

// ParseLock reads dir/package-lock.json.
func ParseLock(dir string) (*Lock, error) {
	p := filepath.Join(dir, "package-lock.json")
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("%w at %q", ErrLockNotFound, p)
	}

	var raw lockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: p, Err: err}
	}

	return &Lock{packages: raw.Packages}, nil
}

// Resolve pairs dependency names with their installed version from the lock.
// Names absent from the lock map are silently dropped. Output order follows
// the input name order.
func (l *Lock) Resolve(names []string, workspace string) []Dependency {
	deps := make([]Dependency, 0, len(names))
	for _, name := range names {
		version, ok := l.version(path.Join(workspace, "node_modules", name))
		if !ok {
			version, ok = l.version("node_modules/" + name)
		}
		if !ok {
			continue
		}
		deps = append(deps, Dependency{Name: name, Version: version})
	}
	return deps
}

func (l *Lock) version(key string) (string, bool) {
	entry, ok := l.packages[key]
	if !ok || entry.Version == "" {
		return "", false
	}
	return entry.Version, true
}

// WorkspaceDeps is one workspace's resolved dependency lists.
type WorkspaceDeps struct {
	Name string
	Prod []Dependency
	Dev  []Dependency
}

// Load resolves dependencies for every workspace under root. A nil
// workspaces slice means "read the root manifest's workspaces field"; an
// empty result falls back to single-repo mode (the root manifest itself).
// Missing or malformed files are fatal.
func Load(root string, workspaces []string) ([]WorkspaceDeps, error) {
	lock, err := ParseLock(root)
	if err != nil {
		return nil, err
	}

	if workspaces == nil {
		rootManifest, err := ParseManifest(root)
		if err != nil {
			return nil, err
		}
		workspaces = rootManifest.Workspaces
	}
	if len(workspaces) == 0 {
		workspaces = []string{""}
	}

	out := make([]WorkspaceDeps, 0, len(workspaces))
	for _, ws := range workspaces {
		m, err := ParseManifest(filepath.Join(root, ws))
		if err != nil {
			return nil, err
		}
		out = append(out, WorkspaceDeps{
			Name: ws,
			Prod: lock.Resolve(m.Deps, ws),
			Dev:  lock.Resolve(m.DevDeps, ws),
		})
	}
	return out, nil
}
