package audit

import (
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/git-pkgs/audit/npm"
)

// IsDeprecated reports whether a version's deprecation marker deprecates
// it: any message does, a boolean flag only when true, absence never.
func IsDeprecated(marker *npm.Deprecation) bool {
	return marker.Active()
}

// AgeYears returns the number of whole calendar years elapsed from
// published to now, anchored on month and day rather than a 365-day
// approximation. Future publish dates clamp to zero.
func AgeYears(now, published time.Time) int {
	years := now.Year() - published.Year()
	if published.AddDate(years, 0, 0).After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// IsStale reports whether an installed version's age strictly exceeds the
// threshold. An age equal to the threshold is not stale.
func IsStale(age, thresholdYears int) bool {
	return age > thresholdYears
}

// BehindLatest reports whether installed is a lower semver than latest.
// Versions that do not parse as semver are treated as not behind.
func BehindLatest(installed, latest string) bool {
	cur, err := semver.NewVersion(installed)
	if err != nil {
		return false
	}
	newest, err := semver.NewVersion(latest)
	if err != nil {
		return false
	}
	return cur.LessThan(newest)
}
