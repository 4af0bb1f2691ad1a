package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/expotrack/internal/database"
)

var clearSnapshotCmd = &cobra.Command{
	Use:   "clear-snapshot",
	Short: "Delete the stored fallback snapshots",
	Long: `Delete every dataset saved in the snapshot store, so the next failed
upstream fetch falls straight through to the bundled mock data.`,
	RunE: clearSnapshot,
}

func init() {
	rootCmd.AddCommand(clearSnapshotCmd)
}

func clearSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Snapshot.DSN == "" {
		return fmt.Errorf("snapshot.dsn is not configured")
	}

	fmt.Println("🔌 Connecting to snapshot store...")
	db, err := database.NewConnection(&cfg.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snaps, err := db.ListSnapshots(ctx)
	if err != nil {
		return err
	}
	for _, s := range snaps {
		fmt.Printf("   %-10s %4d records from %-8s captured %s\n", s.Kind, s.RecordCount, s.Source, s.CapturedAt.Format(time.RFC3339))
	}

	n, err := db.ClearSnapshots(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("🧹 Removed %d %s\n", n, pluralize(int(n), "snapshot", "snapshots"))
	return nil
}
