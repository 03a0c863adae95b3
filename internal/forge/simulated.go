package forge

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Simulated is an in-memory forge used when no API token is configured.
// It serves fixture repositories and issues and fabricates the results of
// write operations, so a full agent pass can run without network access.
type Simulated struct {
	nextID atomic.Int64
	now    func() time.Time
}

// NewSimulated returns a Simulated forge.
func NewSimulated() *Simulated {
	s := &Simulated{now: time.Now}
	s.nextID.Store(9000)
	return s
}

// SearchRepositories returns the fixture repositories regardless of query.
func (s *Simulated) SearchRepositories(_ context.Context, query string, limit int) ([]Repository, error) {
	slog.Debug("simulated repository search", "query", query)
	now := s.now()
	repos := []Repository{
		{
			ID:          123456,
			Name:        "mock-repository",
			FullName:    "mock-user/mock-repository",
			Owner:       "mock-user",
			HTMLURL:     "https://github.com/mock-user/mock-repository",
			Description: "A mock repository for testing",
			Language:    "JavaScript",
			Stars:       50,
			Forks:       20,
			OpenIssues:  5,
			HasIssues:   true,
			UpdatedAt:   now,
		},
		{
			ID:          654321,
			Name:        "mock-python-repo",
			FullName:    "mock-user/mock-python-repo",
			Owner:       "mock-user",
			HTMLURL:     "https://github.com/mock-user/mock-python-repo",
			Description: "A mock Python repository for testing",
			Language:    "Python",
			Stars:       100,
			Forks:       30,
			OpenIssues:  8,
			HasIssues:   true,
			UpdatedAt:   now,
		},
	}
	if limit < len(repos) {
		repos = repos[:limit]
	}
	return repos, nil
}

// ListOpenIssues returns fixture issues attributed to repo.
func (s *Simulated) ListOpenIssues(_ context.Context, repo Repository, limit int) ([]Issue, error) {
	now := s.now()
	issues := []Issue{
		{
			ID:        101,
			Number:    1,
			Title:     "Fix performance issue in data loading",
			Body:      "The data loading is slow when handling large datasets.",
			HTMLURL:   fmt.Sprintf("https://github.com/%s/issues/1", repo.FullName),
			State:     "open",
			Comments:  2,
			CreatedAt: now,
		},
		{
			ID:        102,
			Number:    2,
			Title:     "Add documentation for API endpoints",
			Body:      "We need better documentation for the REST API endpoints.",
			HTMLURL:   fmt.Sprintf("https://github.com/%s/issues/2", repo.FullName),
			State:     "open",
			CreatedAt: now,
		},
		{
			ID:        103,
			Number:    3,
			Title:     "Implement dark mode theme",
			Body:      "Users have requested a dark mode option for better visibility.",
			HTMLURL:   fmt.Sprintf("https://github.com/%s/issues/3", repo.FullName),
			State:     "open",
			Comments:  5,
			CreatedAt: now,
		},
	}
	if limit < len(issues) {
		issues = issues[:limit]
	}
	return issues, nil
}

// CreateComment pretends to post a comment and returns the fabricated
// record.
func (s *Simulated) CreateComment(_ context.Context, repo Repository, issue Issue, body string) (Comment, error) {
	id := s.nextID.Add(1)
	slog.Info("simulated comment", "repo", repo.FullName, "issue", issue.Number)
	return Comment{
		ID:         id,
		Body:       body,
		HTMLURL:    fmt.Sprintf("%s#issuecomment-%d", issue.HTMLURL, id),
		IssueTitle: issue.Title,
	}, nil
}

// CreateIssue pretends to open an issue on repo.
func (s *Simulated) CreateIssue(_ context.Context, repo Repository, title, body string) (Issue, error) {
	id := s.nextID.Add(1)
	slog.Info("simulated issue", "repo", repo.FullName, "title", title)
	return Issue{
		ID:        id,
		Number:    int(id),
		Title:     title,
		Body:      body,
		HTMLURL:   fmt.Sprintf("https://github.com/%s/issues/%d", repo.FullName, id),
		State:     "open",
		CreatedAt: s.now(),
	}, nil
}

// IssueState reports every simulated issue as still open.
func (s *Simulated) IssueState(context.Context, string, int) (string, error) {
	return "open", nil
}

// PullRequestState reports every simulated pull request as still open.
func (s *Simulated) PullRequestState(context.Context, string, int) (string, error) {
	return "open", nil
}

// SampleResponsiveness fills a fixed, responsive-looking sample.
func (s *Simulated) SampleResponsiveness(_ context.Context, repo *Repository) error {
	repo.ResponseDays = []float64{1.5, 3, 6}
	return nil
}
