package forge

import (
	"strings"
	"time"
)

// Repository holds the metadata the agent needs to judge and contribute to
// a repository. Shapes mirror the GitHub REST API and are treated as opaque
// inputs by the core.
type Repository struct {
	ID          int64
	Name        string
	FullName    string
	Owner       string
	HTMLURL     string
	Description string
	Language    string
	Topics      []string
	Stars       int
	Forks       int
	OpenIssues  int
	HasIssues   bool
	Archived    bool
	UpdatedAt   time.Time

	// ResponseDays holds open-to-close durations, in days, for a sample of
	// recently closed issues. Empty when responsiveness was not sampled.
	ResponseDays []float64
}

// OwnerAndName splits a "owner/name" full name. Falls back to the Owner and
// Name fields when the full name is not in canonical form.
func (r Repository) OwnerAndName() (string, string) {
	if owner, name, ok := strings.Cut(r.FullName, "/"); ok {
		return owner, name
	}
	return r.Owner, r.Name
}

// Issue holds an open issue the agent may comment on.
type Issue struct {
	ID        int64
	Number    int
	Title     string
	Body      string
	HTMLURL   string
	State     string
	Labels    []string
	Comments  int
	CreatedAt time.Time
}

// PullRequest holds a pull request the agent has opened.
type PullRequest struct {
	ID        int64
	Number    int
	Title     string
	HTMLURL   string
	Additions int
	Deletions int
}

// Comment holds a comment the agent has posted on an issue.
type Comment struct {
	ID         int64
	Body       string
	HTMLURL    string
	IssueTitle string
}
