package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/starradar-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/starradar-cli/internal/core/domain"
)

func newTestConfig(t *testing.T) *file.ConfigStore {
	t.Helper()
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestPATProvider_GetToken(t *testing.T) {
	t.Run("environment variable wins over config", func(t *testing.T) {
		config := newTestConfig(t)
		require.NoError(t, config.Set(file.KeyGitHubToken, "ghp_from_config"))
		t.Setenv(EnvToken, "ghp_from_env")

		provider := NewPATProvider(config)
		token, err := provider.GetToken(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "ghp_from_env", token)
	})

	t.Run("falls back to the config store", func(t *testing.T) {
		config := newTestConfig(t)
		require.NoError(t, config.Set(file.KeyGitHubToken, "ghp_from_config"))
		t.Setenv(EnvToken, "")

		provider := NewPATProvider(config)
		token, err := provider.GetToken(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "ghp_from_config", token)
	})

	t.Run("no token anywhere", func(t *testing.T) {
		t.Setenv(EnvToken, "")
		provider := NewPATProvider(newTestConfig(t))

		_, err := provider.GetToken(context.Background())

		assert.ErrorIs(t, err, domain.ErrNoToken)
		assert.False(t, provider.IsAuthenticated())
	})
}
