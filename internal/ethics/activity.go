package ethics

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DayCounters counts recorded actions for one calendar date (UTC).
// Total is always the sum of the three categories.
type DayCounters struct {
	Issues   int `json:"issues"`
	PRs      int `json:"prs"`
	Comments int `json:"comments"`
	Total    int `json:"total"`
}

// HourCounters counts recorded actions for one (date, hour-of-day) bucket.
type HourCounters struct {
	Issues   int `json:"issues"`
	PRs      int `json:"prs"`
	Comments int `json:"comments"`
}

// RepoActivity tracks contributions made to a single repository.
type RepoActivity struct {
	LastActivity         *time.Time `json:"lastActivity"`
	TotalContributions   int        `json:"totalContributions"`
	DailyContributions   int        `json:"dailyContributions"`
	LastContributionDate string     `json:"lastContributionDate"`
}

// ActivityLog is the persisted activity document. Map entries are created
// lazily when an action is first recorded for a bucket.
type ActivityLog struct {
	Daily        map[string]*DayCounters  `json:"daily"`
	Hourly       map[string]*HourCounters `json:"hourly"`
	LastActivity *time.Time               `json:"lastActivity"`
	Repositories map[string]*RepoActivity `json:"repositories"`
}

func newActivityLog() *ActivityLog {
	return &ActivityLog{
		Daily:        make(map[string]*DayCounters),
		Hourly:       make(map[string]*HourCounters),
		Repositories: make(map[string]*RepoActivity),
	}
}

// init restores map fields after loading a document that omitted them.
func (l *ActivityLog) init() {
	if l.Daily == nil {
		l.Daily = make(map[string]*DayCounters)
	}
	if l.Hourly == nil {
		l.Hourly = make(map[string]*HourCounters)
	}
	if l.Repositories == nil {
		l.Repositories = make(map[string]*RepoActivity)
	}
}

func (l *ActivityLog) day(key string) *DayCounters {
	d, ok := l.Daily[key]
	if !ok {
		d = &DayCounters{}
		l.Daily[key] = d
	}
	return d
}

func (l *ActivityLog) hour(key string) *HourCounters {
	h, ok := l.Hourly[key]
	if !ok {
		h = &HourCounters{}
		l.Hourly[key] = h
	}
	return h
}

func (l *ActivityLog) repo(name string) *RepoActivity {
	r, ok := l.Repositories[name]
	if !ok {
		r = &RepoActivity{}
		l.Repositories[name] = r
	}
	return r
}

// dayKey returns the UTC calendar date bucket for t.
func dayKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// hourKey returns the (date, hour-of-day) bucket for t, both in UTC.
func hourKey(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%s-%d", u.Format(dateLayout), u.Hour())
}
