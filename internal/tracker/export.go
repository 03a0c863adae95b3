package tracker

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// ExportCSV writes every tracked contribution to w as CSV, one row per
// record across all three kinds.
func (t *Tracker) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Type", "Repository", "Title", "URL", "Created At", "Status"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, e := range t.allEntries() {
		row := []string{
			string(e.Kind),
			e.Repository,
			e.Title,
			e.URL,
			e.CreatedAt.Format(time.RFC3339),
			e.Status,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummary renders a human-readable contribution summary to w.
func (t *Tracker) WriteSummary(w io.Writer) {
	report := t.GenerateReport()

	fmt.Fprintf(w, "Contribution summary for %s (generated %s)\n",
		report.Username, report.GeneratedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(w, "  Total contributions: %d\n", report.Summary.TotalContributions)
	fmt.Fprintf(w, "  Issues created:      %d\n", report.Summary.TotalIssues)
	fmt.Fprintf(w, "  Pull requests:       %d\n", report.Summary.TotalPRs)
	fmt.Fprintf(w, "  Comments:            %d\n", report.Summary.TotalComments)
	fmt.Fprintf(w, "  Success rate:        %.2f%%\n", report.Summary.SuccessRate)

	if len(report.TopRepositories) > 0 {
		fmt.Fprintln(w, "Top repositories:")
		for i, rc := range report.TopRepositories {
			fmt.Fprintf(w, "  %d. %s (%d contributions)\n", i+1, rc.Repository, rc.Contributions)
		}
	}
	fmt.Fprintf(w, "Last %d days: %d contributions\n", recentWindowDays, report.RecentActivity.Last30Days)
}
