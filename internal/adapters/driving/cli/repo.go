package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var repoJSON bool

var repoCmd = &cobra.Command{
	Use:   "repo [owner/repo]",
	Short: "Show repository details",
	Long: `Fetches a single repository and shows its details, including
locally derived growth metrics and whether you have starred it.`,
	Args: cobra.ExactArgs(1),
	RunE: runRepo,
}

func init() {
	repoCmd.Flags().BoolVar(&repoJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(repoCmd)
}

func runRepo(cmd *cobra.Command, args []string) error {
	if starsService == nil {
		return errors.New("stars service not configured")
	}

	owner, name, err := parseRepoRef(args[0])
	if err != nil {
		return err
	}

	record, err := starsService.GetRepository(context.Background(), owner, name)
	if err != nil {
		return fmt.Errorf("fetching %s/%s: %w", owner, name, err)
	}

	if repoJSON {
		return outputJSON(cmd, record)
	}
	outputRepoDetail(cmd, record)
	return nil
}
