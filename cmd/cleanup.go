package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Prune activity log buckets older than the retention window",
	RunE: func(_ *cobra.Command, _ []string) error {
		d, err := buildDeps()
		if err != nil {
			return err
		}
		d.engine.CleanupOldLogs()
		fmt.Println("Activity log cleaned up.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}
