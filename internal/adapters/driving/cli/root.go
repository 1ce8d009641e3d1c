// Package cli implements the command-line interface for starradar.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/starradar-cli/internal/adapters/driven/auth"
	configfile "github.com/custodia-labs/starradar-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/starradar-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/starradar-cli/internal/connectors/github"
	"github.com/custodia-labs/starradar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/starradar-cli/internal/core/services"
	"github.com/custodia-labs/starradar-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services wired in Execute and swapped by tests.
var (
	starsService  driving.StarsService
	radarsService driving.RadarsService
	configStore   *configfile.ConfigStore

	// gatewayClient is the concrete GitHub client, kept so commands
	// can read the locally tracked rate budget. Nil under tests.
	gatewayClient *github.Client
)

var rootCmd = &cobra.Command{
	Use:   "starradar",
	Short: "Aggregate, browse, and search your GitHub stars",
	Long: `starradar aggregates your starred GitHub repositories into a local
working set you can browse, search, and curate into radars.

Searches run in two modes: 'starred' filters your aggregated stars
locally, 'all' queries the GitHub search index. Radars are named
collections of repositories persisted across sessions.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute wires the production adapters and runs the root command.
func Execute() {
	cleanup, err := setupServices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupServices builds the service graph: config, token provider,
// GitHub gateway, radar storage. Returns a cleanup function releasing
// held resources.
func setupServices() (func(), error) {
	store, err := configfile.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("config store: %w", err)
	}
	configStore = store

	provider := auth.NewPATProvider(store)
	gateway := github.NewClient(provider)

	stars := services.NewStarsService(gateway)
	if cap := store.GetInt(configfile.KeyFetchCap); cap > 0 {
		stars.SetCorpusCap(cap)
	}
	starsService = stars
	gatewayClient = gateway

	radarStore, err := sqlite.NewRadarStore("")
	if err != nil {
		return nil, fmt.Errorf("radar store: %w", err)
	}
	radarsService = services.NewRadarsService(radarStore)

	return func() {
		stars.Close()
		if err := radarStore.Close(); err != nil {
			logger.Warn("Closing radar store: %v", err)
		}
	}, nil
}
