package manifest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifestOrder(t *testing.T) {
	m, err := ParseManifest(filepath.Join("testdata", "monorepo", "common"))
	require.NoError(t, err)

	// Declaration order, not sorted
	assert.Equal(t, []string{"lodash.map", "ghost", "lodash.uniq"}, m.Deps)
	assert.Empty(t, m.DevDeps)
}

func TestParseManifestWorkspaces(t *testing.T) {
	m, err := ParseManifest(filepath.Join("testdata", "monorepo"))
	require.NoError(t, err)

	assert.Equal(t, []string{"backend/", "common/", "frontend/"}, m.Workspaces)
}

func TestParseManifestMissing(t *testing.T) {
	_, err := ParseManifest(t.TempDir())
	assert.ErrorIs(t, err, ErrManifestNotFound)
}

func TestParseManifestMalformed(t *testing.T) {
	_, err := ParseManifest(filepath.Join("testdata", "broken"))

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Path, "package.json")
}

func TestParseLockMissing(t *testing.T) {
	_, err := ParseLock(t.TempDir())
	assert.ErrorIs(t, err, ErrLockNotFound)
}

func TestParseLockMalformed(t *testing.T) {
	_, err := ParseLock(filepath.Join("testdata", "broken"))

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestResolveHoisted(t *testing.T) {
	lock, err := ParseLock(filepath.Join("testdata", "monorepo"))
	require.NoError(t, err)

	deps := lock.Resolve([]string{"express", "pluralize"}, "backend/")

	// backend installs are hoisted to the root node_modules
	assert.Equal(t, []Dependency{
		{Name: "express", Version: "4.18.2"},
		{Name: "pluralize", Version: "7.0.0"},
	}, deps)
}

func TestResolveWorkspaceLocal(t *testing.T) {
	lock, err := ParseLock(filepath.Join("testdata", "monorepo"))
	require.NoError(t, err)

	deps := lock.Resolve([]string{"react", "react-refresh"}, "frontend/")

	assert.Equal(t, []Dependency{
		{Name: "react", Version: "18.2.0"},
		{Name: "react-refresh", Version: "0.8.3"},
	}, deps)
}

func TestResolveDropsMissing(t *testing.T) {
	lock, err := ParseLock(filepath.Join("testdata", "monorepo"))
	require.NoError(t, err)

	// "ghost" has a lock entry without a version, "nothere" has none at all
	deps := lock.Resolve([]string{"lodash.map", "ghost", "nothere", "lodash.uniq"}, "common/")

	assert.Equal(t, []Dependency{
		{Name: "lodash.map", Version: "4.6.0"},
		{Name: "lodash.uniq", Version: "4.5.0"},
	}, deps)
}

func TestLoadMonorepo(t *testing.T) {
	workspaces, err := Load(filepath.Join("testdata", "monorepo"), nil)
	require.NoError(t, err)
	require.Len(t, workspaces, 3)

	// Workspace order follows the root manifest
	assert.Equal(t, "backend/", workspaces[0].Name)
	assert.Equal(t, "common/", workspaces[1].Name)
	assert.Equal(t, "frontend/", workspaces[2].Name)

	assert.Equal(t, []Dependency{
		{Name: "express", Version: "4.18.2"},
		{Name: "pluralize", Version: "7.0.0"},
	}, workspaces[0].Prod)
	assert.Equal(t, []Dependency{
		{Name: "jest", Version: "29.5.0"},
	}, workspaces[0].Dev)

	assert.Equal(t, []Dependency{
		{Name: "file-loader", Version: "1.1.11"},
	}, workspaces[2].Dev)
}

func TestLoadExplicitWorkspaces(t *testing.T) {
	workspaces, err := Load(filepath.Join("testdata", "monorepo"), []string{"frontend/"})
	require.NoError(t, err)
	require.Len(t, workspaces, 1)

	assert.Equal(t, "frontend/", workspaces[0].Name)
	assert.Equal(t, []Dependency{
		{Name: "react", Version: "18.2.0"},
		{Name: "react-refresh", Version: "0.8.3"},
	}, workspaces[0].Prod)
}

func TestLoadSingleRepo(t *testing.T) {
	// No workspaces flag and none in the manifest: audit the root itself
	workspaces, err := Load(filepath.Join("testdata", "single"), nil)
	require.NoError(t, err)
	require.Len(t, workspaces, 1)

	assert.Equal(t, "", workspaces[0].Name)
	assert.Equal(t, []Dependency{{Name: "moment", Version: "2.29.4"}}, workspaces[0].Prod)
	assert.Equal(t, []Dependency{{Name: "typescript", Version: "5.1.3"}}, workspaces[0].Dev)
}

func TestLoadUnknownWorkspace(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "monorepo"), []string{"missing/"})
	assert.ErrorIs(t, err, ErrManifestNotFound)
}
