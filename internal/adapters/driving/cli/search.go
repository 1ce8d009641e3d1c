package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
	"github.com/custodia-labs/starradar-cli/internal/core/ports/driving"
)

var (
	searchMode    string
	searchSort    string
	searchPage    int
	searchPerPage int
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search repositories",
	Long: `Searches repositories in one of two modes.

Mode 'starred' (default) filters your aggregated starred repositories
locally; the corpus is fetched once and reused across searches.
Mode 'all' queries the GitHub search index; an empty query shows
popular repositories, and a query wrapped in double quotes matches
the repository name only.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchMode, "mode", "m", "starred", "search mode (starred, all)")
	searchCmd.Flags().StringVarP(&searchSort, "sort", "s", "stars", "sort order")
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "page to show")
	searchCmd.Flags().IntVarP(&searchPerPage, "per-page", "n", 30, "results per page")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if starsService == nil {
		return errors.New("stars service not configured")
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	page, err := starsService.Search(context.Background(), driving.SearchRequest{
		Query:   query,
		Mode:    domain.SearchMode(searchMode),
		Sort:    domain.SortKey(searchSort),
		Page:    searchPage,
		PerPage: searchPerPage,
	})
	if err != nil {
		// A superseded submission was replaced by a newer one; its
		// result is dropped without noise.
		if errors.Is(err, domain.ErrSuperseded) {
			return nil
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, page)
	}

	outputRepoTable(cmd, page.Repos)
	cmd.Println()
	cmd.Printf("Page %d of %d results", page.Page, page.TotalCount)
	if page.Clamped {
		cmd.Printf(" (index reports %d, showing first %d)", page.RawTotalCount, domain.SearchTotalCeiling)
	}
	cmd.Println()
	return nil
}
