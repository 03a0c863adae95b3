package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the status of tracked open issues and pull requests",
	Long: `Queries the forge for the current state of every contribution still
recorded as open and applies closed and merged transitions, which in
turn updates the success rate.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		d, err := buildDeps()
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		updated, err := d.bot(false).SyncStatuses(ctx)
		if err != nil {
			return fmt.Errorf("syncing statuses: %w", err)
		}
		fmt.Printf("Records updated: %d\n", updated)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
