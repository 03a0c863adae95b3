package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Perform one contribution pass",
	Long: `Searches for repositories matching the configured skills, ranks them,
and contributes to suitable ones within the configured rate limits.
With --dry-run every check runs but nothing is posted or recorded.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := buildDeps()
		if err != nil {
			return err
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		stats, err := d.bot(dryRun).Run(ctx)
		if err != nil {
			return fmt.Errorf("contribution pass: %w", err)
		}

		fmt.Printf("Repositories considered: %d (skipped %d)\n", stats.ReposConsidered, stats.ReposSkipped)
		fmt.Printf("Comments posted:         %d\n", stats.Comments)
		fmt.Printf("Issues opened:           %d\n", stats.IssuesOpened)
		fmt.Printf("Actions skipped:         %d\n", stats.ActionsSkipped)
		return nil
	},
}

func init() {
	runCmd.Flags().Bool("dry-run", false, "Run all checks without posting or recording anything")
	rootCmd.AddCommand(runCmd)
}
