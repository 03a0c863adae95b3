package ethics

import "github.com/rahuljoshi07/contribot/internal/forge"

// Verdict is the outcome of a suitability or content-quality check.
// Reason is set only when the check fails.
type Verdict struct {
	OK     bool
	Reason string
}

// Repository suitability thresholds. Stars bound both ways: very small
// repositories are likely dead, very large ones are overwhelmed with
// automated contributions already.
const (
	minStars        = 5
	maxStars        = 10000
	minForks        = 2
	maxInactiveDays = 90
)

// RepositorySuitable reports whether repo is an acceptable contribution
// target. Predicates are evaluated in a fixed order and the first failure
// determines the reason.
func (e *Engine) RepositorySuitable(repo forge.Repository) Verdict {
	if repo.Stars < minStars {
		return Verdict{Reason: "too few stars (likely inactive)"}
	}
	if repo.Stars > maxStars {
		return Verdict{Reason: "too many stars (likely overwhelmed with contributions)"}
	}
	if repo.Forks < minForks {
		return Verdict{Reason: "too few forks (low community interest)"}
	}
	if !repo.HasIssues {
		return Verdict{Reason: "issues disabled"}
	}
	if repo.Archived {
		return Verdict{Reason: "repository is archived"}
	}
	if daysSince := e.now().Sub(repo.UpdatedAt).Hours() / 24; daysSince > maxInactiveDays {
		return Verdict{Reason: "repository inactive for too long"}
	}
	return Verdict{OK: true}
}
