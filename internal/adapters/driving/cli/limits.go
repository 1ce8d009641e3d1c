package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Show the GitHub API rate limit budget",
	RunE:  runLimits,
}

func init() {
	rootCmd.AddCommand(limitsCmd)
}

func runLimits(cmd *cobra.Command, _ []string) error {
	if starsService == nil {
		return errors.New("stars service not configured")
	}

	status, err := starsService.RateLimit(context.Background())
	if err != nil {
		return fmt.Errorf("fetching rate limit: %w", err)
	}

	cmd.Printf("Core API: %d/%d remaining\n", status.Remaining, status.Limit)
	if !status.ResetAt.IsZero() {
		cmd.Printf("Resets:   %s (%s)\n",
			status.ResetAt.Local().Format("15:04:05"),
			time.Until(status.ResetAt).Round(time.Second))
	}

	// The client also tracks the budget from response headers; show it
	// so a drifted local view is visible next to the authoritative one.
	if gatewayClient != nil {
		local := gatewayClient.Limiter().Status()
		cmd.Printf("Tracked:  %d/%d remaining (from response headers)\n", local.Remaining, local.Limit)
	}
	return nil
}
