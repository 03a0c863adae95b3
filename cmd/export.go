package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the contribution ledger as CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := buildDeps()
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "-" {
			return d.tracker.ExportCSV(os.Stdout)
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()

		if err := d.tracker.ExportCSV(f); err != nil {
			return fmt.Errorf("exporting csv: %w", err)
		}
		fmt.Printf("Contributions exported to: %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "contributions.csv", "Output file path, or - for stdout")
	rootCmd.AddCommand(exportCmd)
}
