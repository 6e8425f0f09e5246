package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Set(KeyAPIKey, "fc-secret"))
	assert.Equal(t, "fc-secret", store.GetString(KeyAPIKey))
	assert.Equal(t, "", store.GetString(KeyBaseURL))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(KeyDefaultFormat, "markdown"))

	second, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "markdown", second.GetString(KeyDefaultFormat))
}

func TestConfigStore_SetEmptyRemovesKey(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyAPIKey, "fc-secret"))
	require.NoError(t, store.Set(KeyAPIKey, ""))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "", reloaded.GetString(KeyAPIKey))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set(KeyAPIKey, "fc-secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "config file holds the API key")
}

func TestConfigStore_Keys(t *testing.T) {
	store := newStore(t)
	assert.Equal(t, []string{"api_key", "base_url", "default_format"}, store.Keys())
}

func TestConfigStore_IgnoresMissingFile(t *testing.T) {
	store := newStore(t)
	assert.Equal(t, "", store.GetString(KeyAPIKey))
}
