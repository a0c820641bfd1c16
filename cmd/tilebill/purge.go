package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frozen33/inventory/internal/config"
	"github.com/frozen33/inventory/internal/service"
	"github.com/frozen33/inventory/internal/storage/sqlite"
	"github.com/frozen33/inventory/pkg/logging"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete bills older than the retention threshold",
	Long: "Deletes every saved bill created strictly more than the given number\n" +
		"of days ago. This is explicit maintenance; the server never purges on\n" +
		"its own.",
	RunE: runPurge,
}

func init() {
	purgeCmd.Flags().Int("days", 0, "retention threshold in days (default from config)")
	purgeCmd.Flags().Bool("dry-run", false, "count matching bills without deleting")
	rootCmd.AddCommand(purgeCmd)
}

func runPurge(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	days, _ := cmd.Flags().GetInt("days")
	if days == 0 {
		days = cfg.RetentionDays
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	svc := service.NewBillService(store, nil)

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		count, err := svc.CountOldBills(cmd.Context(), days)
		if err != nil {
			return err
		}
		fmt.Printf("%d bill(s) older than %d days\n", count, days)
		return nil
	}

	deleted, err := svc.PurgeOldBills(cmd.Context(), days)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d bill(s) older than %d days\n", deleted, days)
	return nil
}
