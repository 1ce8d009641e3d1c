package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyGitHubToken, "ghp_test"))
	require.NoError(t, store.Set(KeyFetchCap, int64(500)))
	require.NoError(t, store.Set("ui.verbose", true))

	assert.Equal(t, "ghp_test", store.GetString(KeyGitHubToken))
	assert.Equal(t, 500, store.GetInt(KeyFetchCap))
	assert.True(t, store.GetBool("ui.verbose"))

	// Missing keys return zero values.
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyGitHubToken, "ghp_persisted"))
	require.NoError(t, store.Set(KeyPerPage, int64(50)))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "ghp_persisted", reloaded.GetString(KeyGitHubToken))
	assert.Equal(t, 50, reloaded.GetInt(KeyPerPage))
}

func TestConfigStore_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	raw := "[github]\ntoken = \"ghp_from_file\"\n\n[stars]\nfetch_cap = 250\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(raw), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "ghp_from_file", store.GetString(KeyGitHubToken))
	assert.Equal(t, 250, store.GetInt(KeyFetchCap))
}

func TestConfigStore_TokenFileHasRestrictedPermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyGitHubToken, "ghp_secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_MissingFileStartsEmpty(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get(KeyGitHubToken)
	assert.False(t, ok)
}
