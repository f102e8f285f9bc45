package audit

import (
	"fmt"
	"time"
)

// OldPackage is one stale dependency with the version and age details shown
// to the user, including the latest release for comparison.
type OldPackage struct {
	Name              string    `json:"name"`
	Version           string    `json:"version"`
	PublishedAt       time.Time `json:"publishedAt"`
	Age               int       `json:"age"`
	LatestVersion     string    `json:"latestVersion"`
	LatestPublishedAt time.Time `json:"latestPublishedAt"`
	LatestAge         int       `json:"latestAge"`
	Behind            bool      `json:"behind"`
}

// DeprecatedPackage is one dependency whose installed version the registry
// marks as deprecated. Message is empty when the marker was a bare flag.
type DeprecatedPackage struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Message string `json:"message,omitempty"`
}

// OldReport is one workspace's stale-dependency results.
type OldReport struct {
	Workspace string       `json:"workspace"`
	Prod      []OldPackage `json:"production"`
	Dev       []OldPackage `json:"development,omitempty"`
	ProdOnly  bool         `json:"-"`
}

// Totals renders the report's summary line, e.g.
// "1 old dependency, 0 old dev dependencies".
func (r OldReport) Totals() string {
	return totalsLine(len(r.Prod), len(r.Dev), r.ProdOnly, "old")
}

// DeprecatedReport is one workspace's deprecated-dependency results.
type DeprecatedReport struct {
	Workspace string              `json:"workspace"`
	Prod      []DeprecatedPackage `json:"production"`
	Dev       []DeprecatedPackage `json:"development,omitempty"`
	ProdOnly  bool                `json:"-"`
}

func (r DeprecatedReport) Totals() string {
	return totalsLine(len(r.Prod), len(r.Dev), r.ProdOnly, "deprecated")
}

func totalsLine(prod, dev int, prodOnly bool, kind string) string {
	if prodOnly {
		return fmt.Sprintf("%d %s production %s", prod, kind, dependencyNoun(prod))
	}
	return fmt.Sprintf("%d %s %s, %d %s dev %s",
		prod, kind, dependencyNoun(prod),
		dev, kind, dependencyNoun(dev))
}

func dependencyNoun(n int) string {
	if n == 1 {
		return "dependency"
	}
	return "dependencies"
}
