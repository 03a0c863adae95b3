package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rahuljoshi07/contribot/internal/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render the profile README from the contribution report",
	Long: `Generates a profile README.md with contribution statistics, top
repositories, and recent activity. Copy the result into your profile
repository to publish the dashboard.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := buildDeps()
		if err != nil {
			return err
		}

		outDir, _ := cmd.Flags().GetString("output")
		tmplPath, _ := cmd.Flags().GetString("template")

		report := d.tracker.GenerateReport()
		r := dashboard.NewRenderer(outDir, tmplPath)
		path, err := r.Render(d.cfg.Username, &report)
		if err != nil {
			return fmt.Errorf("rendering dashboard: %w", err)
		}
		fmt.Printf("Profile README written to: %s\n", path)
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringP("output", "o", ".", "Directory to write README.md into")
	dashboardCmd.Flags().String("template", "", "Custom README template path (built-in when empty)")
	rootCmd.AddCommand(dashboardCmd)
}
