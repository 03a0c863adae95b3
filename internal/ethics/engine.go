// Package ethics decides whether an automated contribution is permitted
// right now. The engine enforces hourly and daily quotas, a cooldown
// between consecutive actions, and a per-repository daily cap, backed by a
// durable activity log. It also judges repository suitability and
// contribution content quality.
package ethics

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/rahuljoshi07/contribot/internal/storage"
)

// ActionKind is the category of an automated contribution.
type ActionKind string

const (
	ActionIssue   ActionKind = "issue"
	ActionPR      ActionKind = "pr"
	ActionComment ActionKind = "comment"
)

// Decision is the outcome of a rate-limit check. Reason is set only when
// the action is denied.
type Decision struct {
	Allowed bool
	Reason  string
}

// Engine evaluates and records automated actions against a Policy.
// It is not safe for concurrent use: the check/record pair is two calls,
// and callers run them back to back in one sequential pass.
type Engine struct {
	policy Policy
	store  storage.Store
	log    *ActivityLog
	now    func() time.Time
}

// New returns an Engine backed by store. A previously persisted activity
// log is loaded if present; a missing or unreadable document starts the
// engine with an empty log.
func New(policy Policy, store storage.Store) *Engine {
	log := newActivityLog()
	if err := store.Load(log); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("could not load activity log, starting empty", "error", err)
		}
		log = newActivityLog()
	}
	log.init()
	return &Engine{
		policy: policy,
		store:  store,
		log:    log,
		now:    time.Now,
	}
}

// Policy returns the quotas the engine enforces.
func (e *Engine) Policy() Policy { return e.policy }

// CheckAction reports whether an action of the given kind against repo is
// currently allowed. It is a pure read: callers can probe repeatedly
// without consuming quota. Checks short-circuit in a fixed order: cooldown,
// daily total, hourly per-kind ceiling, per-repository daily cap.
func (e *Engine) CheckAction(kind ActionKind, repo string) Decision {
	now := e.now()
	today := dayKey(now)

	if e.log.LastActivity != nil {
		since := now.Sub(*e.log.LastActivity)
		if since < e.policy.Cooldown {
			wait := int(math.Ceil((e.policy.Cooldown - since).Seconds()))
			return Decision{Reason: fmt.Sprintf("cooldown active, wait %d seconds", wait)}
		}
	}

	if daily, ok := e.log.Daily[today]; ok && daily.Total >= e.policy.TotalPerDay {
		return Decision{Reason: fmt.Sprintf("daily limit reached (%d actions per day)", e.policy.TotalPerDay)}
	}

	if hourly, ok := e.log.Hourly[hourKey(now)]; ok {
		switch kind {
		case ActionIssue:
			if hourly.Issues >= e.policy.IssuesPerHour {
				return Decision{Reason: fmt.Sprintf("hourly issue limit reached (%d per hour)", e.policy.IssuesPerHour)}
			}
		case ActionPR:
			if hourly.PRs >= e.policy.PRsPerHour {
				return Decision{Reason: fmt.Sprintf("hourly PR limit reached (%d per hour)", e.policy.PRsPerHour)}
			}
		case ActionComment:
			if hourly.Comments >= e.policy.CommentsPerHour {
				return Decision{Reason: fmt.Sprintf("hourly comment limit reached (%d per hour)", e.policy.CommentsPerHour)}
			}
		}
	}

	if rd, ok := e.log.Repositories[repo]; ok {
		if rd.LastContributionDate == today && rd.DailyContributions >= e.policy.MaxPerRepoPerDay {
			return Decision{Reason: fmt.Sprintf("repository daily limit reached (max %d contributions per repo per day)", e.policy.MaxPerRepoPerDay)}
		}
	}

	return Decision{Allowed: true}
}

// RecordAction consumes a quota slot for an action that was just performed.
// It increments the daily, hourly and per-repository counters, stamps the
// cooldown timer, and persists the log. Callers must run CheckAction
// immediately before this in the same logical step.
func (e *Engine) RecordAction(kind ActionKind, repo string) {
	now := e.now()
	today := dayKey(now)

	daily := e.log.day(today)
	hourly := e.log.hour(hourKey(now))
	switch kind {
	case ActionIssue:
		daily.Issues++
		hourly.Issues++
	case ActionPR:
		daily.PRs++
		hourly.PRs++
	case ActionComment:
		daily.Comments++
		hourly.Comments++
	}
	daily.Total++

	ts := now
	e.log.LastActivity = &ts

	rd := e.log.repo(repo)
	rd.LastActivity = &ts
	rd.TotalContributions++
	if rd.LastContributionDate != today {
		rd.DailyContributions = 1
		rd.LastContributionDate = today
	} else {
		rd.DailyContributions++
	}

	e.persist()
	slog.Debug("recorded action", "kind", kind, "repo", repo, "today_total", daily.Total)
}

// Remaining holds quota left for today, per category.
type Remaining struct {
	Total    int `json:"total"`
	Issues   int `json:"issues"`
	PRs      int `json:"prs"`
	Comments int `json:"comments"`
}

// Summary is a point-in-time view of today's activity against the limits.
type Summary struct {
	Today              DayCounters `json:"todayActivity"`
	Limits             Policy      `json:"limits"`
	Remaining          Remaining   `json:"remainingToday"`
	ActiveRepositories int         `json:"activeRepositories"`
	LastActivity       *time.Time  `json:"lastActivity"`
}

// Summary derives today's counters, the configured limits and the
// remaining quota per category.
func (e *Engine) Summary() Summary {
	today := DayCounters{}
	if d, ok := e.log.Daily[dayKey(e.now())]; ok {
		today = *d
	}
	return Summary{
		Today:  today,
		Limits: e.policy,
		Remaining: Remaining{
			Total:    max(0, e.policy.TotalPerDay-today.Total),
			Issues:   max(0, e.policy.IssuesPerHour-today.Issues),
			PRs:      max(0, e.policy.PRsPerHour-today.PRs),
			Comments: max(0, e.policy.CommentsPerHour-today.Comments),
		},
		ActiveRepositories: len(e.log.Repositories),
		LastActivity:       e.log.LastActivity,
	}
}

// retentionDays is how long daily and hourly buckets are kept.
const retentionDays = 30

// CleanupOldLogs drops daily and hourly buckets older than the retention
// window and persists the trimmed log.
func (e *Engine) CleanupOldLogs() {
	cutoff := e.now().UTC().AddDate(0, 0, -retentionDays)

	for key := range e.log.Daily {
		if d, err := time.Parse(dateLayout, key); err == nil && d.Before(cutoff) {
			delete(e.log.Daily, key)
		}
	}
	for key := range e.log.Hourly {
		if len(key) < len(dateLayout) {
			continue
		}
		if d, err := time.Parse(dateLayout, key[:len(dateLayout)]); err == nil && d.Before(cutoff) {
			delete(e.log.Hourly, key)
		}
	}

	e.persist()
}

// persist writes the activity log through to storage. Failures are logged
// and swallowed: the engine stays usable with in-memory state only.
func (e *Engine) persist() {
	if err := e.store.Save(e.log); err != nil {
		slog.Error("saving activity log", "error", err)
	}
}
