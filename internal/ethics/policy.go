package ethics

import "time"

// Policy holds the quotas the engine enforces. Values are fixed for the
// lifetime of an Engine.
type Policy struct {
	IssuesPerHour    int
	PRsPerHour       int
	CommentsPerHour  int
	TotalPerDay      int
	Cooldown         time.Duration
	MaxPerRepoPerDay int
}

// DefaultPolicy returns the stock quotas: 5 issues, 3 PRs and 10 comments
// per hour, 50 actions per day, a 5 minute cooldown between actions, and at
// most 3 contributions per repository per day.
func DefaultPolicy() Policy {
	return Policy{
		IssuesPerHour:    5,
		PRsPerHour:       3,
		CommentsPerHour:  10,
		TotalPerDay:      50,
		Cooldown:         5 * time.Minute,
		MaxPerRepoPerDay: 3,
	}
}
