package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var radarCmd = &cobra.Command{
	Use:   "radar",
	Short: "Manage radar collections",
	Long: `Radars are named collections of repositories you curate and keep
across sessions.

Examples:
  starradar radar create ml-tools --description "ML stack to watch"
  starradar radar add ml-tools huggingface/transformers
  starradar radar show ml-tools
  starradar radar remove ml-tools huggingface/transformers
  starradar radar delete ml-tools`,
}

var radarCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new radar",
	Args:  cobra.ExactArgs(1),
	RunE:  runRadarCreate,
}

var radarListCmd = &cobra.Command{
	Use:   "list",
	Short: "List radars",
	RunE:  runRadarList,
}

var radarShowCmd = &cobra.Command{
	Use:   "show [radar]",
	Short: "Show a radar and its members",
	Args:  cobra.ExactArgs(1),
	RunE:  runRadarShow,
}

var radarRenameCmd = &cobra.Command{
	Use:   "rename [radar] [new-name]",
	Short: "Rename a radar",
	Args:  cobra.ExactArgs(2),
	RunE:  runRadarRename,
}

var radarDeleteCmd = &cobra.Command{
	Use:   "delete [radar]",
	Short: "Delete a radar",
	Args:  cobra.ExactArgs(1),
	RunE:  runRadarDelete,
}

var radarAddCmd = &cobra.Command{
	Use:   "add [radar] [owner/repo]",
	Short: "Add a repository to a radar",
	Args:  cobra.ExactArgs(2),
	RunE:  runRadarAdd,
}

var radarRemoveCmd = &cobra.Command{
	Use:   "remove [radar] [owner/repo]",
	Short: "Remove a repository from a radar",
	Args:  cobra.ExactArgs(2),
	RunE:  runRadarRemove,
}

var radarDescription string

func init() {
	radarCreateCmd.Flags().StringVarP(&radarDescription, "description", "d", "", "radar description")
	radarRenameCmd.Flags().StringVarP(&radarDescription, "description", "d", "", "radar description")

	radarCmd.AddCommand(radarCreateCmd)
	radarCmd.AddCommand(radarListCmd)
	radarCmd.AddCommand(radarShowCmd)
	radarCmd.AddCommand(radarRenameCmd)
	radarCmd.AddCommand(radarDeleteCmd)
	radarCmd.AddCommand(radarAddCmd)
	radarCmd.AddCommand(radarRemoveCmd)
	rootCmd.AddCommand(radarCmd)
}

func runRadarCreate(cmd *cobra.Command, args []string) error {
	if radarsService == nil {
		return errors.New("radars service not configured")
	}

	radar, err := radarsService.Create(context.Background(), args[0], radarDescription)
	if err != nil {
		return fmt.Errorf("creating radar: %w", err)
	}
	cmd.Printf("Created radar %q (%s).\n", radar.Name, radar.ID)
	return nil
}

func runRadarList(cmd *cobra.Command, _ []string) error {
	if radarsService == nil {
		return errors.New("radars service not configured")
	}

	radars, err := radarsService.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing radars: %w", err)
	}
	if len(radars) == 0 {
		cmd.Println("No radars yet. Create one with 'starradar radar create <name>'.")
		return nil
	}

	for i := range radars {
		cmd.Printf("%-25s %3d repos", radars[i].Name, len(radars[i].RepoIDs))
		if radars[i].Description != "" {
			cmd.Printf("  %s", radars[i].Description)
		}
		cmd.Println()
	}
	return nil
}

func runRadarShow(cmd *cobra.Command, args []string) error {
	if radarsService == nil {
		return errors.New("radars service not configured")
	}

	radar, err := radarsService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("radar %q: %w", args[0], err)
	}

	cmd.Printf("%s (%s)\n", radar.Name, radar.ID)
	if radar.Description != "" {
		cmd.Printf("  %s\n", radar.Description)
	}
	cmd.Printf("  Created: %s\n", radar.CreatedAt.Format("2006-01-02"))
	cmd.Printf("  Members: %d\n", len(radar.RepoIDs))
	for _, id := range radar.RepoIDs {
		cmd.Printf("    %d\n", id)
	}
	return nil
}

func runRadarRename(cmd *cobra.Command, args []string) error {
	if radarsService == nil {
		return errors.New("radars service not configured")
	}

	radar, err := radarsService.Rename(context.Background(), args[0], args[1], radarDescription)
	if err != nil {
		return fmt.Errorf("renaming radar: %w", err)
	}
	cmd.Printf("Renamed radar to %q.\n", radar.Name)
	return nil
}

func runRadarDelete(cmd *cobra.Command, args []string) error {
	if radarsService == nil {
		return errors.New("radars service not configured")
	}

	if err := radarsService.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("deleting radar: %w", err)
	}
	cmd.Printf("Deleted radar %q.\n", args[0])
	return nil
}

func runRadarAdd(cmd *cobra.Command, args []string) error {
	if radarsService == nil || starsService == nil {
		return errors.New("services not configured")
	}

	owner, name, err := parseRepoRef(args[1])
	if err != nil {
		return err
	}

	ctx := context.Background()
	record, err := starsService.GetRepository(ctx, owner, name)
	if err != nil {
		return fmt.Errorf("resolving %s/%s: %w", owner, name, err)
	}

	radar, err := radarsService.AddRepo(ctx, args[0], record.ID)
	if err != nil {
		return fmt.Errorf("adding to radar: %w", err)
	}
	cmd.Printf("Added %s to %q (%d repos).\n", record.FullName, radar.Name, len(radar.RepoIDs))
	return nil
}

func runRadarRemove(cmd *cobra.Command, args []string) error {
	if radarsService == nil || starsService == nil {
		return errors.New("services not configured")
	}

	owner, name, err := parseRepoRef(args[1])
	if err != nil {
		return err
	}

	ctx := context.Background()
	record, err := starsService.GetRepository(ctx, owner, name)
	if err != nil {
		return fmt.Errorf("resolving %s/%s: %w", owner, name, err)
	}

	radar, err := radarsService.RemoveRepo(ctx, args[0], record.ID)
	if err != nil {
		return fmt.Errorf("removing from radar: %w", err)
	}
	cmd.Printf("Removed %s from %q (%d repos).\n", record.FullName, radar.Name, len(radar.RepoIDs))
	return nil
}
