package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var starCmd = &cobra.Command{
	Use:   "star [owner/repo]",
	Short: "Star a repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runStar,
}

var unstarCmd = &cobra.Command{
	Use:   "unstar [owner/repo]",
	Short: "Remove a star from a repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnstar,
}

func init() {
	rootCmd.AddCommand(starCmd)
	rootCmd.AddCommand(unstarCmd)
}

func runStar(cmd *cobra.Command, args []string) error {
	if starsService == nil {
		return errors.New("stars service not configured")
	}

	owner, name, err := parseRepoRef(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	record, err := starsService.GetRepository(ctx, owner, name)
	if err != nil {
		return fmt.Errorf("resolving %s/%s: %w", owner, name, err)
	}
	if record.IsStarred {
		cmd.Printf("%s is already starred.\n", record.FullName)
		return nil
	}

	if err := starsService.Star(ctx, *record); err != nil {
		return fmt.Errorf("starring %s: %w", record.FullName, err)
	}
	cmd.Printf("Starred %s.\n", record.FullName)
	return nil
}

func runUnstar(cmd *cobra.Command, args []string) error {
	if starsService == nil {
		return errors.New("stars service not configured")
	}

	owner, name, err := parseRepoRef(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	record, err := starsService.GetRepository(ctx, owner, name)
	if err != nil {
		return fmt.Errorf("resolving %s/%s: %w", owner, name, err)
	}
	if !record.IsStarred {
		cmd.Printf("%s is not starred.\n", record.FullName)
		return nil
	}

	if err := starsService.Unstar(ctx, *record); err != nil {
		return fmt.Errorf("unstarring %s: %w", record.FullName, err)
	}
	cmd.Printf("Unstarred %s.\n", record.FullName)
	return nil
}
