// Package tracker is the durable ledger of contributions the agent has
// made: issues opened, pull requests submitted, comments posted. It derives
// aggregate statistics and reports from the recorded history.
package tracker

import (
	"errors"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/rahuljoshi07/contribot/internal/forge"
	"github.com/rahuljoshi07/contribot/internal/storage"
	"github.com/rahuljoshi07/contribot/internal/textutil"
)

// Kind discriminates the three contribution record variants.
type Kind string

const (
	KindIssue       Kind = "issue"
	KindPullRequest Kind = "pullRequest"
	KindComment     Kind = "comment"
)

// Status is the lifecycle state of an issue or pull request record.
// Issues go open to closed, pull requests open to merged; both terminal.
// Comments have no status.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
	StatusMerged Status = "merged"
)

// commentExcerptLen bounds how much of a comment body is stored.
const commentExcerptLen = 100

// IssueRecord is one issue the agent opened.
type IssueRecord struct {
	ID         int64     `json:"id"`
	Number     int       `json:"number"`
	Title      string    `json:"title"`
	Repository string    `json:"repository"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"createdAt"`
	Status     Status    `json:"status"`
	Labels     []string  `json:"labels,omitempty"`
}

// PullRequestRecord is one pull request the agent submitted.
type PullRequestRecord struct {
	ID         int64     `json:"id"`
	Number     int       `json:"number"`
	Title      string    `json:"title"`
	Repository string    `json:"repository"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"createdAt"`
	Status     Status    `json:"status"`
	Additions  int       `json:"additions"`
	Deletions  int       `json:"deletions"`
}

// CommentRecord is one comment the agent posted on an issue.
type CommentRecord struct {
	ID         int64     `json:"id"`
	Repository string    `json:"repository"`
	IssueTitle string    `json:"issueTitle"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"createdAt"`
	Excerpt    string    `json:"content"`
}

// Stats holds the aggregate counters derived from the record sequences.
type Stats struct {
	TotalIssues   int     `json:"totalIssues"`
	TotalPRs      int     `json:"totalPRs"`
	TotalComments int     `json:"totalComments"`
	AcceptedPRs   int     `json:"acceptedPRs"`
	ClosedIssues  int     `json:"closedIssues"`
	SuccessRate   float64 `json:"successRate"`
}

// Contributions is the persisted ledger document.
type Contributions struct {
	Issues       []IssueRecord       `json:"issues"`
	PullRequests []PullRequestRecord `json:"pullRequests"`
	Comments     []CommentRecord     `json:"comments"`
	Stats        Stats               `json:"stats"`
}

// Tracker records contributions for one user and persists them after every
// mutation. Not safe for concurrent use.
type Tracker struct {
	username string
	store    storage.Store
	data     *Contributions
	now      func() time.Time
}

// New returns a Tracker for username backed by store. A previously
// persisted ledger is loaded if present; otherwise the ledger starts empty.
func New(username string, store storage.Store) *Tracker {
	data := &Contributions{}
	if err := store.Load(data); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("could not load contributions, starting empty", "error", err)
		}
		data = &Contributions{}
	}
	return &Tracker{
		username: username,
		store:    store,
		data:     data,
		now:      time.Now,
	}
}

// Username returns the user the ledger belongs to.
func (t *Tracker) Username() string { return t.username }

// TrackIssue records an issue opened on repo and returns the stored record.
func (t *Tracker) TrackIssue(repo forge.Repository, issue forge.Issue) IssueRecord {
	rec := IssueRecord{
		ID:         issue.ID,
		Number:     issue.Number,
		Title:      issue.Title,
		Repository: repo.FullName,
		URL:        issue.HTMLURL,
		CreatedAt:  t.now(),
		Status:     StatusOpen,
		Labels:     issue.Labels,
	}
	t.data.Issues = append(t.data.Issues, rec)
	t.data.Stats.TotalIssues++
	t.persist()
	slog.Info("tracked issue", "repo", repo.FullName, "title", rec.Title)
	return rec
}

// TrackPullRequest records a pull request submitted to repo.
func (t *Tracker) TrackPullRequest(repo forge.Repository, pr forge.PullRequest) PullRequestRecord {
	rec := PullRequestRecord{
		ID:         pr.ID,
		Number:     pr.Number,
		Title:      pr.Title,
		Repository: repo.FullName,
		URL:        pr.HTMLURL,
		CreatedAt:  t.now(),
		Status:     StatusOpen,
		Additions:  pr.Additions,
		Deletions:  pr.Deletions,
	}
	t.data.PullRequests = append(t.data.PullRequests, rec)
	t.data.Stats.TotalPRs++
	t.persist()
	slog.Info("tracked pull request", "repo", repo.FullName, "title", rec.Title)
	return rec
}

// TrackComment records a comment posted on an issue in repo. Only a
// bounded excerpt of the body is stored.
func (t *Tracker) TrackComment(repo forge.Repository, c forge.Comment) CommentRecord {
	rec := CommentRecord{
		ID:         c.ID,
		Repository: repo.FullName,
		IssueTitle: c.IssueTitle,
		URL:        c.HTMLURL,
		CreatedAt:  t.now(),
		Excerpt:    textutil.Excerpt(c.Body, commentExcerptLen),
	}
	t.data.Comments = append(t.data.Comments, rec)
	t.data.Stats.TotalComments++
	t.persist()
	slog.Info("tracked comment", "repo", repo.FullName, "issue", rec.IssueTitle)
	return rec
}

// UpdateStatus transitions the record identified by (id, kind) to status
// and reports whether a record was found and actually transitioned.
// Success counters increment only on the open-to-closed (issues) and
// open-to-merged (pull requests) transitions, so repeating a terminal
// update never double-counts.
func (t *Tracker) UpdateStatus(id int64, kind Kind, status Status) bool {
	switch kind {
	case KindIssue:
		for i := range t.data.Issues {
			rec := &t.data.Issues[i]
			if rec.ID != id {
				continue
			}
			if rec.Status == status {
				return false
			}
			if rec.Status == StatusOpen && status == StatusClosed {
				t.data.Stats.ClosedIssues++
			}
			rec.Status = status
			t.recomputeSuccessRate()
			t.persist()
			slog.Info("updated issue status", "id", id, "status", status)
			return true
		}
	case KindPullRequest:
		for i := range t.data.PullRequests {
			rec := &t.data.PullRequests[i]
			if rec.ID != id {
				continue
			}
			if rec.Status == status {
				return false
			}
			if rec.Status == StatusOpen && status == StatusMerged {
				t.data.Stats.AcceptedPRs++
			}
			rec.Status = status
			t.recomputeSuccessRate()
			t.persist()
			slog.Info("updated pull request status", "id", id, "status", status)
			return true
		}
	}
	return false
}

// recomputeSuccessRate refreshes the percentage of issues and PRs that
// reached a successful terminal state. Left at zero while no issues or PRs
// have been tracked.
func (t *Tracker) recomputeSuccessRate() {
	total := t.data.Stats.TotalIssues + t.data.Stats.TotalPRs
	if total == 0 {
		return
	}
	rate := float64(t.data.Stats.ClosedIssues+t.data.Stats.AcceptedPRs) / float64(total) * 100
	t.data.Stats.SuccessRate = math.Round(rate*100) / 100
}

// persist writes the ledger through to storage. Failures are logged and
// swallowed: in-memory state remains the only copy for the run.
func (t *Tracker) persist() {
	if err := t.store.Save(t.data); err != nil {
		slog.Error("saving contributions", "error", err)
	}
}
