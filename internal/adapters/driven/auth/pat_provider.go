// Package auth provides token providers for the GitHub connector.
package auth

import (
	"context"
	"os"

	"github.com/custodia-labs/starradar-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/starradar-cli/internal/core/domain"
	"github.com/custodia-labs/starradar-cli/internal/core/ports/driven"
)

// EnvToken is the environment variable consulted before the config
// store, so CI and one-off runs need no config file.
const EnvToken = "STARRADAR_GITHUB_TOKEN"

// Ensure PATProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*PATProvider)(nil)

// PATProvider provides a static Personal Access Token from the
// environment or the config store. PATs don't expire and don't
// require refresh.
type PATProvider struct {
	config driven.ConfigStore
}

// NewPATProvider creates a token provider backed by the config store.
func NewPATProvider(config driven.ConfigStore) *PATProvider {
	return &PATProvider{config: config}
}

// GetToken returns the PAT. The environment variable wins over the
// stored value. Returns domain.ErrNoToken when neither is set.
func (p *PATProvider) GetToken(_ context.Context) (string, error) {
	if token := os.Getenv(EnvToken); token != "" {
		return token, nil
	}
	if token := p.config.GetString(file.KeyGitHubToken); token != "" {
		return token, nil
	}
	return "", domain.ErrNoToken
}

// IsAuthenticated returns true if a token is available.
func (p *PATProvider) IsAuthenticated() bool {
	token, err := p.GetToken(context.Background())
	return err == nil && token != ""
}
