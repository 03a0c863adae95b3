package tracker

import (
	"sort"
	"time"
)

// recentWindowDays is the activity slice included in a report.
const recentWindowDays = 30

// topRepoLimit caps the top-repositories list in a report.
const topRepoLimit = 10

// Entry is one contribution in the merged, type-agnostic view used by the
// recent-activity slice and the CSV export.
type Entry struct {
	Kind       Kind      `json:"type"`
	Repository string    `json:"repository"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"createdAt"`
	Status     string    `json:"status"`
}

// RepoCount pairs a repository with its contribution count.
type RepoCount struct {
	Repository    string `json:"repository"`
	Contributions int    `json:"contributions"`
}

// ReportSummary aggregates the ledger's headline numbers.
type ReportSummary struct {
	TotalContributions int     `json:"totalContributions"`
	TotalIssues        int     `json:"totalIssues"`
	TotalPRs           int     `json:"totalPRs"`
	TotalComments      int     `json:"totalComments"`
	SuccessRate        float64 `json:"successRate"`
	AcceptedPRs        int     `json:"acceptedPRs"`
	ClosedIssues       int     `json:"closedIssues"`
}

// RecentActivity is the last-30-days slice of the ledger.
type RecentActivity struct {
	Last30Days    int     `json:"last30Days"`
	Contributions []Entry `json:"contributions"`
}

// TypeBreakdown counts contributions per record kind.
type TypeBreakdown struct {
	Issues       int `json:"issues"`
	PullRequests int `json:"pullRequests"`
	Comments     int `json:"comments"`
}

// Report is the structured summary consumed by presentation collaborators
// such as the dashboard and the CSV export.
type Report struct {
	Username          string         `json:"username"`
	GeneratedAt       time.Time      `json:"generatedAt"`
	Summary           ReportSummary  `json:"summary"`
	RecentActivity    RecentActivity `json:"recentActivity"`
	TopRepositories   []RepoCount    `json:"topRepositories"`
	ContributionTypes TypeBreakdown  `json:"contributionTypes"`
}

// GenerateReport derives a Report from the ledger. It is a pure read with
// no side effects.
func (t *Tracker) GenerateReport() Report {
	stats := t.data.Stats
	recent := t.recentEntries(recentWindowDays)

	return Report{
		Username:    t.username,
		GeneratedAt: t.now(),
		Summary: ReportSummary{
			TotalContributions: stats.TotalIssues + stats.TotalPRs + stats.TotalComments,
			TotalIssues:        stats.TotalIssues,
			TotalPRs:           stats.TotalPRs,
			TotalComments:      stats.TotalComments,
			SuccessRate:        stats.SuccessRate,
			AcceptedPRs:        stats.AcceptedPRs,
			ClosedIssues:       stats.ClosedIssues,
		},
		RecentActivity: RecentActivity{
			Last30Days:    len(recent),
			Contributions: recent,
		},
		TopRepositories:   t.topRepositories(topRepoLimit),
		ContributionTypes: TypeBreakdown{
			Issues:       stats.TotalIssues,
			PullRequests: stats.TotalPRs,
			Comments:     stats.TotalComments,
		},
	}
}

// allEntries merges the three record sequences into the type-agnostic view.
func (t *Tracker) allEntries() []Entry {
	entries := make([]Entry, 0, len(t.data.Issues)+len(t.data.PullRequests)+len(t.data.Comments))
	for _, rec := range t.data.Issues {
		entries = append(entries, Entry{
			Kind:       KindIssue,
			Repository: rec.Repository,
			Title:      rec.Title,
			URL:        rec.URL,
			CreatedAt:  rec.CreatedAt,
			Status:     string(rec.Status),
		})
	}
	for _, rec := range t.data.PullRequests {
		entries = append(entries, Entry{
			Kind:       KindPullRequest,
			Repository: rec.Repository,
			Title:      rec.Title,
			URL:        rec.URL,
			CreatedAt:  rec.CreatedAt,
			Status:     string(rec.Status),
		})
	}
	for _, rec := range t.data.Comments {
		entries = append(entries, Entry{
			Kind:       KindComment,
			Repository: rec.Repository,
			Title:      rec.IssueTitle,
			URL:        rec.URL,
			CreatedAt:  rec.CreatedAt,
			Status:     "N/A",
		})
	}
	return entries
}

// recentEntries returns entries created within the last `days` days,
// newest first.
func (t *Tracker) recentEntries(days int) []Entry {
	cutoff := t.now().AddDate(0, 0, -days)
	var recent []Entry
	for _, e := range t.allEntries() {
		if !e.CreatedAt.Before(cutoff) {
			recent = append(recent, e)
		}
	}
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	return recent
}

// topRepositories returns up to limit repositories ordered by contribution
// count, ties broken by name for a stable order.
func (t *Tracker) topRepositories(limit int) []RepoCount {
	counts := make(map[string]int)
	for _, e := range t.allEntries() {
		counts[e.Repository]++
	}
	top := make([]RepoCount, 0, len(counts))
	for repo, n := range counts {
		top = append(top, RepoCount{Repository: repo, Contributions: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Contributions != top[j].Contributions {
			return top[i].Contributions > top[j].Contributions
		}
		return top[i].Repository < top[j].Repository
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

// OpenIssues returns the issue records still in the open state.
func (t *Tracker) OpenIssues() []IssueRecord {
	var open []IssueRecord
	for _, rec := range t.data.Issues {
		if rec.Status == StatusOpen {
			open = append(open, rec)
		}
	}
	return open
}

// OpenPullRequests returns the pull request records still in the open state.
func (t *Tracker) OpenPullRequests() []PullRequestRecord {
	var open []PullRequestRecord
	for _, rec := range t.data.PullRequests {
		if rec.Status == StatusOpen {
			open = append(open, rec)
		}
	}
	return open
}
