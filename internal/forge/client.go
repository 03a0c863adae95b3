package forge

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// responsivenessSample is how many recently closed issues feed the
// maintainer-responsiveness measurement.
const responsivenessSample = 10

// Client is the GitHub-backed forge gateway.
type Client struct {
	gh *github.Client
}

// NewClient returns a Client authenticated with token. Secondary rate
// limits are handled transparently by sleeping until they lift.
func NewClient(token string) (*Client, error) {
	waiter, err := github_ratelimit.NewRateLimitWaiter(nil,
		github_ratelimit.WithSingleSleepLimit(time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("creating rate limit waiter: %w", err)
	}
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   waiter,
		},
		Timeout: 30 * time.Second,
	}
	return &Client{gh: github.NewClient(httpClient)}, nil
}

// SearchRepositories returns up to limit repositories matching the GitHub
// search query, sorted by last update.
func (c *Client) SearchRepositories(ctx context.Context, query string, limit int) ([]Repository, error) {
	opts := &github.SearchOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: limit},
	}
	result, _, err := c.gh.Search.Repositories(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("searching repositories: %w", err)
	}

	repos := make([]Repository, 0, len(result.Repositories))
	for _, r := range result.Repositories {
		if len(repos) >= limit {
			break
		}
		repos = append(repos, convertRepository(r))
	}
	return repos, nil
}

// ListOpenIssues returns up to limit open issues on repo, skipping pull
// requests (the issues API reports those too).
func (c *Client) ListOpenIssues(ctx context.Context, repo Repository, limit int) ([]Issue, error) {
	owner, name := repo.OwnerAndName()
	opts := &github.IssueListByRepoOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: limit},
	}
	ghIssues, _, err := c.gh.Issues.ListByRepo(ctx, owner, name, opts)
	if err != nil {
		return nil, fmt.Errorf("listing issues for %s: %w", repo.FullName, err)
	}

	issues := make([]Issue, 0, len(ghIssues))
	for _, is := range ghIssues {
		if is.IsPullRequest() {
			continue
		}
		if len(issues) >= limit {
			break
		}
		issues = append(issues, convertIssue(is))
	}
	return issues, nil
}

// CreateComment posts body as a comment on the given issue.
func (c *Client) CreateComment(ctx context.Context, repo Repository, issue Issue, body string) (Comment, error) {
	owner, name := repo.OwnerAndName()
	created, _, err := c.gh.Issues.CreateComment(ctx, owner, name, issue.Number, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		return Comment{}, fmt.Errorf("commenting on %s#%d: %w", repo.FullName, issue.Number, err)
	}
	return Comment{
		ID:         created.GetID(),
		Body:       created.GetBody(),
		HTMLURL:    created.GetHTMLURL(),
		IssueTitle: issue.Title,
	}, nil
}

// CreateIssue opens a new issue on repo.
func (c *Client) CreateIssue(ctx context.Context, repo Repository, title, body string) (Issue, error) {
	owner, name := repo.OwnerAndName()
	created, _, err := c.gh.Issues.Create(ctx, owner, name, &github.IssueRequest{
		Title: github.Ptr(title),
		Body:  github.Ptr(body),
	})
	if err != nil {
		return Issue{}, fmt.Errorf("creating issue on %s: %w", repo.FullName, err)
	}
	return convertIssue(created), nil
}

// IssueState returns the current state of an issue ("open" or "closed").
func (c *Client) IssueState(ctx context.Context, repoFullName string, number int) (string, error) {
	repo := Repository{FullName: repoFullName}
	owner, name := repo.OwnerAndName()
	issue, _, err := c.gh.Issues.Get(ctx, owner, name, number)
	if err != nil {
		return "", fmt.Errorf("fetching issue %s#%d: %w", repoFullName, number, err)
	}
	return issue.GetState(), nil
}

// PullRequestState returns "merged" for merged pull requests, otherwise
// the API state ("open" or "closed").
func (c *Client) PullRequestState(ctx context.Context, repoFullName string, number int) (string, error) {
	repo := Repository{FullName: repoFullName}
	owner, name := repo.OwnerAndName()
	pr, _, err := c.gh.PullRequests.Get(ctx, owner, name, number)
	if err != nil {
		return "", fmt.Errorf("fetching pull request %s#%d: %w", repoFullName, number, err)
	}
	if pr.GetMerged() {
		return "merged", nil
	}
	return pr.GetState(), nil
}

// SampleResponsiveness measures maintainer responsiveness from recently
// closed issues and fills repo.ResponseDays.
func (c *Client) SampleResponsiveness(ctx context.Context, repo *Repository) error {
	owner, name := repo.OwnerAndName()
	opts := &github.IssueListByRepoOptions{
		State:       "closed",
		ListOptions: github.ListOptions{PerPage: responsivenessSample},
	}
	closed, _, err := c.gh.Issues.ListByRepo(ctx, owner, name, opts)
	if err != nil {
		return fmt.Errorf("listing closed issues for %s: %w", repo.FullName, err)
	}

	var days []float64
	for _, is := range closed {
		if is.IsPullRequest() || is.ClosedAt == nil || is.CreatedAt == nil {
			continue
		}
		days = append(days, is.GetClosedAt().Time.Sub(is.GetCreatedAt().Time).Hours()/24)
	}
	repo.ResponseDays = days
	return nil
}

func convertRepository(r *github.Repository) Repository {
	var owner string
	if r.GetOwner() != nil {
		owner = r.GetOwner().GetLogin()
	}
	return Repository{
		ID:          r.GetID(),
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Owner:       owner,
		HTMLURL:     r.GetHTMLURL(),
		Description: r.GetDescription(),
		Language:    r.GetLanguage(),
		Topics:      r.Topics,
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		OpenIssues:  r.GetOpenIssuesCount(),
		HasIssues:   r.GetHasIssues(),
		Archived:    r.GetArchived(),
		UpdatedAt:   r.GetUpdatedAt().Time,
	}
}

func convertIssue(is *github.Issue) Issue {
	labels := make([]string, 0, len(is.Labels))
	for _, l := range is.Labels {
		labels = append(labels, l.GetName())
	}
	return Issue{
		ID:        is.GetID(),
		Number:    is.GetNumber(),
		Title:     is.GetTitle(),
		Body:      is.GetBody(),
		HTMLURL:   is.GetHTMLURL(),
		State:     is.GetState(),
		Labels:    labels,
		Comments:  is.GetComments(),
		CreatedAt: is.GetCreatedAt().Time,
	}
}
