package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/starradar-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/starradar-cli/internal/core/domain"
)

var (
	starsCap     int
	starsSort    string
	starsPage    int
	starsPerPage int
	starsJSON    bool
)

var starsCmd = &cobra.Command{
	Use:   "stars",
	Short: "Browse your starred repositories",
	Long: `Aggregates your starred repositories into a local working set and
shows one page of it. The working set is fetched once per session;
page turns and sort changes are served from the cache.

Sort keys: stars, forks, updated, starred.`,
	RunE: runStars,
}

func init() {
	starsCmd.Flags().IntVar(&starsCap, "cap", 0, "maximum repositories to aggregate (0 = config default)")
	starsCmd.Flags().StringVarP(&starsSort, "sort", "s", "stars", "sort order")
	starsCmd.Flags().IntVarP(&starsPage, "page", "p", 1, "page to show")
	starsCmd.Flags().IntVarP(&starsPerPage, "per-page", "n", 30, "results per page")
	starsCmd.Flags().BoolVar(&starsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(starsCmd)
}

func runStars(cmd *cobra.Command, _ []string) error {
	if starsService == nil {
		return errors.New("stars service not configured")
	}

	ctx := context.Background()

	cap := starsCap
	if cap == 0 && configStore != nil {
		cap = configStore.GetInt(configfile.KeyFetchCap)
	}
	if cap > 0 {
		if _, err := starsService.FetchStarred(ctx, cap); err != nil {
			return fmt.Errorf("fetching starred repositories: %w", err)
		}
	}

	page, err := starsService.Browse(ctx, domain.SortKey(starsSort), starsPage, starsPerPage)
	if err != nil {
		if errors.Is(err, domain.ErrSuperseded) {
			return nil
		}
		return fmt.Errorf("browsing starred repositories: %w", err)
	}

	if starsJSON {
		return outputJSON(cmd, page)
	}

	outputRepoTable(cmd, page.Repos)
	cmd.Println()
	cmd.Printf("Page %d, %d starred total", page.Page, page.TotalCount)
	if page.Clamped {
		cmd.Print(" (truncated)")
	}
	cmd.Println()
	return nil
}
