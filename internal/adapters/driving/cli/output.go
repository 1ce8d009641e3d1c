package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/starradar-cli/internal/core/domain"
)

// parseRepoRef splits an "owner/name" argument.
func parseRepoRef(ref string) (owner, name string, err error) {
	parts := strings.SplitN(strings.TrimSpace(ref), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository reference %q, expected owner/name", ref)
	}
	return parts[0], parts[1], nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// outputRepoTable renders a compact listing of repositories.
func outputRepoTable(cmd *cobra.Command, repos []domain.RepositoryRecord) {
	if len(repos) == 0 {
		cmd.Println("No repositories found.")
		return
	}

	now := time.Now()
	for i := range repos {
		r := &repos[i]
		marker := " "
		if r.IsStarred {
			marker = "*"
		}
		trend := ""
		if r.ComputeMetrics(now).Trending {
			trend = " [trending]"
		}

		cmd.Printf("%s %-45s %8d stars  %6d forks%s\n", marker, r.FullName, r.Stars, r.Forks, trend)
		if r.Description != "" {
			cmd.Printf("      %s\n", truncate(r.Description, 100))
		}
	}
}

// outputRepoDetail renders the full record for one repository.
func outputRepoDetail(cmd *cobra.Command, r *domain.RepositoryRecord) {
	metrics := r.ComputeMetrics(time.Now())

	cmd.Printf("%s\n", r.FullName)
	if r.Description != "" {
		cmd.Printf("  %s\n", r.Description)
	}
	cmd.Println()
	cmd.Printf("  Stars:       %d\n", r.Stars)
	cmd.Printf("  Forks:       %d\n", r.Forks)
	cmd.Printf("  Watchers:    %d\n", r.Watchers)
	cmd.Printf("  Open issues: %d\n", r.OpenIssues)
	if r.Language != "" {
		cmd.Printf("  Language:    %s\n", r.Language)
	}
	if len(r.Topics) > 0 {
		cmd.Printf("  Topics:      %s\n", strings.Join(r.Topics, ", "))
	}
	if r.License != "" {
		cmd.Printf("  License:     %s\n", r.License)
	}
	cmd.Printf("  Growth:      %.1f stars/day", metrics.GrowthRate)
	if metrics.Trending {
		cmd.Print("  [trending]")
	}
	cmd.Println()
	if !r.PushedAt.IsZero() {
		cmd.Printf("  Last push:   %s\n", r.PushedAt.Format("2006-01-02"))
	}
	if r.IsStarred {
		cmd.Println("  Starred:     yes")
	}
}

// truncate shortens s to at most maxLen runes, never splitting a
// multi-byte character.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}
