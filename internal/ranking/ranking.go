// Package ranking orders candidate repositories by contribution
// potential before the agent spends its quota on them.
package ranking

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/rahuljoshi07/contribot/internal/forge"
)

// responsiveDays is the mean open-to-close time, in days, under which a
// maintainer counts as responsive.
const responsiveDays = 30

// Scored pairs a repository with its contribution-potential score.
type Scored struct {
	Repo  forge.Repository
	Score int
}

// Rank scores the repositories and returns them ordered best first.
// The score favors a star sweet spot, recent activity, an approachable
// open-issue count, community forks, and responsive maintainers.
func Rank(repos []forge.Repository, now time.Time) []Scored {
	scored := make([]Scored, 0, len(repos))
	for _, repo := range repos {
		scored = append(scored, Scored{Repo: repo, Score: score(repo, now)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func score(repo forge.Repository, now time.Time) int {
	n := 0

	switch {
	case repo.Stars >= 100 && repo.Stars <= 1000:
		n += 10
	case repo.Stars >= 50 && repo.Stars <= 5000:
		n += 5
	default:
		n++
	}

	switch days := now.Sub(repo.UpdatedAt).Hours() / 24; {
	case days <= 7:
		n += 8
	case days <= 30:
		n += 5
	case days <= 90:
		n += 2
	}

	switch {
	case repo.OpenIssues >= 5 && repo.OpenIssues <= 20:
		n += 8
	case repo.OpenIssues >= 1 && repo.OpenIssues <= 50:
		n += 5
	case repo.OpenIssues > 50:
		n += 2
	}

	if mean, ok := meanResponseDays(repo.ResponseDays); ok {
		if mean < responsiveDays {
			n += 10
		} else if mean < 2*responsiveDays {
			n += 5
		}
	}

	switch {
	case repo.Forks >= 10 && repo.Forks <= 100:
		n += 5
	case repo.Forks >= 5:
		n += 3
	}

	return n
}

// meanResponseDays averages the sampled open-to-close durations. Returns
// ok=false when no sample is available.
func meanResponseDays(days []float64) (float64, bool) {
	if len(days) == 0 {
		return 0, false
	}
	mean, err := stats.Mean(days)
	if err != nil {
		return 0, false
	}
	return mean, true
}
