package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the contribution report and today's quota usage",
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := buildDeps()
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			report := d.tracker.GenerateReport()
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		d.tracker.WriteSummary(os.Stdout)

		s := d.engine.Summary()
		fmt.Println()
		fmt.Printf("Today's activity: %d of %d actions\n", s.Today.Total, s.Limits.TotalPerDay)
		fmt.Printf("  Issues:   %d (remaining %d)\n", s.Today.Issues, s.Remaining.Issues)
		fmt.Printf("  PRs:      %d (remaining %d)\n", s.Today.PRs, s.Remaining.PRs)
		fmt.Printf("  Comments: %d (remaining %d)\n", s.Today.Comments, s.Remaining.Comments)
		fmt.Printf("Active repositories: %d\n", s.ActiveRepositories)
		if s.LastActivity != nil {
			fmt.Printf("Last activity: %s\n", s.LastActivity.Format("2006-01-02 15:04:05 MST"))
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().Bool("json", false, "Output the full report as JSON")
	rootCmd.AddCommand(reportCmd)
}
