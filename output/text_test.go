package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/git-pkgs/audit"
)

func oldPkg(name, version string, published time.Time, age int, latest string, latestPublished time.Time, latestAge int) audit.OldPackage {
	return audit.OldPackage{
		Name:              name,
		Version:           version,
		PublishedAt:       published,
		Age:               age,
		LatestVersion:     latest,
		LatestPublishedAt: latestPublished,
		LatestAge:         latestAge,
		Behind:            false,
	}
}

func TestWriteOld(t *testing.T) {
	published := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	latestPublished := time.Date(2023, 6, 14, 0, 0, 0, 0, time.UTC)

	reports := []audit.OldReport{{
		Workspace: "frontend/",
		Prod: []audit.OldPackage{
			oldPkg("old1", "0.0.1", published, 23, "0.0.1", latestPublished, 0),
			oldPkg("old2", "0.0.1", published, 23, "0.0.1", latestPublished, 0),
		},
		Dev: []audit.OldPackage{
			oldPkg("old-dev1", "0.0.1", published, 23, "0.0.1", latestPublished, 0),
			oldPkg("old-dev2", "0.0.1", published, 23, "0.0.1", latestPublished, 0),
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteOld(&buf, reports))

	expected := "\n[frontend/] old packages:\n" +
		"\n  production:\n" +
		"\n    old1@0.0.1 (01/01/2000)\n" +
		"        -> 23 years old, 23 older than latest\n" +
		"            -> latest @0.0.1 (14/06/2023)\n" +
		"\n    old2@0.0.1 (01/01/2000)\n" +
		"        -> 23 years old, 23 older than latest\n" +
		"            -> latest @0.0.1 (14/06/2023)\n" +
		"\n  development:\n" +
		"\n    old-dev1@0.0.1 (01/01/2000)\n" +
		"        -> 23 years old, 23 older than latest\n" +
		"            -> latest @0.0.1 (14/06/2023)\n" +
		"\n    old-dev2@0.0.1 (01/01/2000)\n" +
		"        -> 23 years old, 23 older than latest\n" +
		"            -> latest @0.0.1 (14/06/2023)\n" +
		"\n  total: 2 old dependencies, 2 old dev dependencies\n"

	assert.Equal(t, expected, buf.String())
}

func TestWriteOldProdOnly(t *testing.T) {
	published := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	latestPublished := time.Date(2023, 6, 14, 0, 0, 0, 0, time.UTC)

	reports := []audit.OldReport{{
		Workspace: "backend/",
		Prod: []audit.OldPackage{
			oldPkg("old1", "0.0.1", published, 23, "0.0.1", latestPublished, 0),
		},
		ProdOnly: true,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteOld(&buf, reports))

	expected := "\n[backend/] old packages:\n" +
		"\n  old1@0.0.1 (01/01/2000)\n" +
		"      -> 23 years old, 23 older than latest\n" +
		"          -> latest @0.0.1 (14/06/2023)\n" +
		"\n  total: 1 old production dependency\n"

	assert.Equal(t, expected, buf.String())
}

func TestWriteOldEmpty(t *testing.T) {
	reports := []audit.OldReport{{Workspace: "common/"}}

	var buf bytes.Buffer
	require.NoError(t, WriteOld(&buf, reports))

	expected := "\n[common/] old packages:\n" +
		"\n  total: 0 old dependencies, 0 old dev dependencies\n"

	assert.Equal(t, expected, buf.String())
}

func TestWriteDeprecated(t *testing.T) {
	reports := []audit.DeprecatedReport{{
		Workspace: "backend/",
		Prod: []audit.DeprecatedPackage{
			{Name: "querystring", Version: "0.2.0", Message: "The querystring API is considered Legacy."},
			{Name: "left-pad", Version: "1.3.0"},
		},
		Dev: []audit.DeprecatedPackage{
			{Name: "request", Version: "2.88.2"},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteDeprecated(&buf, reports))

	expected := "\n[backend/] deprecated packages:\n" +
		"\n  production:\n" +
		"\n    querystring@0.2.0" +
		"\n    left-pad@1.3.0\n" +
		"\n  development:\n" +
		"\n    request@2.88.2\n" +
		"\n  total: 2 deprecated dependencies, 1 deprecated dev dependency\n"

	assert.Equal(t, expected, buf.String())
}

func TestWriteDeprecatedProdOnly(t *testing.T) {
	reports := []audit.DeprecatedReport{{
		Workspace: "backend/",
		Prod: []audit.DeprecatedPackage{
			{Name: "querystring", Version: "0.2.0"},
		},
		ProdOnly: true,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteDeprecated(&buf, reports))

	expected := "\n[backend/] deprecated packages:\n" +
		"\n  querystring@0.2.0\n" +
		"\n  total: 1 deprecated production dependency\n"

	assert.Equal(t, expected, buf.String())
}

func TestWriteOldMultipleWorkspaces(t *testing.T) {
	published := time.Date(2015, 3, 10, 0, 0, 0, 0, time.UTC)
	latestPublished := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	reports := []audit.OldReport{
		{
			Workspace: "backend/",
			Prod: []audit.OldPackage{
				oldPkg("express", "4.18.2", published, 8, "4.19.0", latestPublished, 0),
			},
		},
		{Workspace: "frontend/"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOld(&buf, reports))

	expected := "\n[backend/] old packages:\n" +
		"\n  production:\n" +
		"\n    express@4.18.2 (10/03/2015)\n" +
		"        -> 8 years old, 8 older than latest\n" +
		"            -> latest @4.19.0 (01/06/2023)\n" +
		"\n  total: 1 old dependency, 0 old dev dependencies\n" +
		"\n[frontend/] old packages:\n" +
		"\n  total: 0 old dependencies, 0 old dev dependencies\n"

	assert.Equal(t, expected, buf.String())
}

func TestWriteJSON(t *testing.T) {
	reports := []audit.DeprecatedReport{{
		Workspace: "backend/",
		Prod: []audit.DeprecatedPackage{
			{Name: "querystring", Version: "0.2.0", Message: "legacy"},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, reports))

	expected := `[
  {
    "workspace": "backend/",
    "production": [
      {
        "name": "querystring",
        "version": "0.2.0",
        "message": "legacy"
      }
    ]
  }
]
`
	assert.Equal(t, expected, buf.String())
}
