package bot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahuljoshi07/contribot/internal/ethics"
	"github.com/rahuljoshi07/contribot/internal/forge"
	"github.com/rahuljoshi07/contribot/internal/storage"
	"github.com/rahuljoshi07/contribot/internal/tracker"
)

// fakeForge is a scriptable Forge for orchestration tests.
type fakeForge struct {
	repos     []forge.Repository
	issues    map[string][]forge.Issue
	searchErr error

	comments      []string
	createdIssues []string
	issueStates   map[string]string
	prStates      map[string]string
	nextID        int64
}

func (f *fakeForge) SearchRepositories(_ context.Context, _ string, limit int) ([]forge.Repository, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if limit < len(f.repos) {
		return f.repos[:limit], nil
	}
	return f.repos, nil
}

func (f *fakeForge) ListOpenIssues(_ context.Context, repo forge.Repository, limit int) ([]forge.Issue, error) {
	issues := f.issues[repo.FullName]
	if limit < len(issues) {
		issues = issues[:limit]
	}
	return issues, nil
}

func (f *fakeForge) CreateComment(_ context.Context, repo forge.Repository, issue forge.Issue, body string) (forge.Comment, error) {
	f.nextID++
	f.comments = append(f.comments, body)
	return forge.Comment{ID: f.nextID, Body: body, HTMLURL: issue.HTMLURL, IssueTitle: issue.Title}, nil
}

func (f *fakeForge) CreateIssue(_ context.Context, repo forge.Repository, title, body string) (forge.Issue, error) {
	f.nextID++
	f.createdIssues = append(f.createdIssues, title)
	return forge.Issue{ID: f.nextID, Number: int(f.nextID), Title: title, Body: body, State: "open"}, nil
}

func (f *fakeForge) IssueState(_ context.Context, repo string, number int) (string, error) {
	state, ok := f.issueStates[fmt.Sprintf("%s#%d", repo, number)]
	if !ok {
		return "", errors.New("not found")
	}
	return state, nil
}

func (f *fakeForge) PullRequestState(_ context.Context, repo string, number int) (string, error) {
	state, ok := f.prStates[fmt.Sprintf("%s#%d", repo, number)]
	if !ok {
		return "", errors.New("not found")
	}
	return state, nil
}

func (f *fakeForge) SampleResponsiveness(_ context.Context, repo *forge.Repository) error {
	repo.ResponseDays = []float64{2, 4}
	return nil
}

func healthyRepo(name string, now time.Time) forge.Repository {
	return forge.Repository{
		ID:          1,
		Name:        name,
		FullName:    "octo/" + name,
		Owner:       "octo",
		Description: "a healthy fixture",
		Language:    "JavaScript",
		Stars:       50,
		Forks:       5,
		OpenIssues:  10,
		HasIssues:   true,
		UpdatedAt:   now,
	}
}

func newTestBot(f Forge, policy ethics.Policy, opts Options) (*Bot, *tracker.Tracker) {
	engine := ethics.New(policy, storage.NewMemStore())
	tr := tracker.New("octocat", storage.NewMemStore())
	b := New(f, engine, tr, opts)
	return b, tr
}

func relaxedPolicy() ethics.Policy {
	p := ethics.DefaultPolicy()
	p.Cooldown = 0
	return p
}

func TestRunCommentsOnMatchingIssues(t *testing.T) {
	now := time.Now()
	repo := healthyRepo("widgets", now)
	f := &fakeForge{
		repos: []forge.Repository{repo},
		issues: map[string][]forge.Issue{
			repo.FullName: {
				{ID: 11, Number: 1, Title: "Slow startup", Body: "Startup is slow on large projects.", HTMLURL: "https://example.com/1"},
				{ID: 12, Number: 2, Title: "Crash on save", Body: "An error is thrown when saving.", HTMLURL: "https://example.com/2"},
			},
		},
	}
	b, tr := newTestBot(f, relaxedPolicy(), Options{Skills: []string{"javascript"}, MaxRepos: 10, MaxIssues: 5})

	stats, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Comments)
	assert.Equal(t, 1, stats.ReposConsidered)
	assert.Zero(t, stats.ReposSkipped)
	require.Len(t, f.comments, 2)
	assert.Contains(t, f.comments[0], "JavaScript")

	report := tr.GenerateReport()
	assert.Equal(t, 2, report.Summary.TotalComments)
	assert.Equal(t, 2, report.Summary.TotalContributions)
}

func TestRunSkipsUnsuitableRepositories(t *testing.T) {
	now := time.Now()
	archived := healthyRepo("relic", now)
	archived.Archived = true
	f := &fakeForge{repos: []forge.Repository{archived}}
	b, _ := newTestBot(f, relaxedPolicy(), Options{Skills: []string{"javascript"}, MaxRepos: 10, MaxIssues: 5})

	stats, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.ReposSkipped)
	assert.Empty(t, f.comments)
}

func TestRunOpensSuggestionIssueForMissingDescription(t *testing.T) {
	now := time.Now()
	repo := healthyRepo("widgets", now)
	repo.Description = ""
	f := &fakeForge{repos: []forge.Repository{repo}}
	b, tr := newTestBot(f, relaxedPolicy(), Options{Skills: []string{"javascript"}, MaxRepos: 10, MaxIssues: 5})

	stats, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.IssuesOpened)
	require.Len(t, f.createdIssues, 1)
	assert.Contains(t, f.createdIssues[0], "description")
	assert.Equal(t, 1, tr.GenerateReport().Summary.TotalIssues)
}

func TestRunEndsWhenDailyBudgetExhausted(t *testing.T) {
	now := time.Now()
	first := healthyRepo("widgets", now)
	second := healthyRepo("gadgets", now)
	second.ID = 2
	issues := []forge.Issue{
		{ID: 11, Number: 1, Title: "Slow startup", Body: "Startup is slow on large projects.", HTMLURL: "https://example.com/1"},
		{ID: 12, Number: 2, Title: "Crash on save", Body: "An error is thrown when saving.", HTMLURL: "https://example.com/2"},
	}
	f := &fakeForge{
		repos:  []forge.Repository{first, second},
		issues: map[string][]forge.Issue{first.FullName: issues, second.FullName: issues},
	}

	policy := relaxedPolicy()
	policy.TotalPerDay = 1
	b, _ := newTestBot(f, policy, Options{Skills: []string{"javascript"}, MaxRepos: 10, MaxIssues: 5})

	stats, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, f.comments, 1)
	assert.Equal(t, 1, stats.Comments)
}

func TestRunRespectsRepoDailyCap(t *testing.T) {
	now := time.Now()
	repo := healthyRepo("widgets", now)
	var issues []forge.Issue
	for i := 0; i < 5; i++ {
		issues = append(issues, forge.Issue{
			ID:      int64(20 + i),
			Number:  i + 1,
			Title:   fmt.Sprintf("Report %d", i+1),
			Body:    "An error is thrown when saving.",
			HTMLURL: fmt.Sprintf("https://example.com/%d", i+1),
		})
	}
	f := &fakeForge{
		repos:  []forge.Repository{repo},
		issues: map[string][]forge.Issue{repo.FullName: issues},
	}
	b, _ := newTestBot(f, relaxedPolicy(), Options{Skills: []string{"javascript"}, MaxRepos: 10, MaxIssues: 10})

	stats, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, f.comments, 3)
	assert.Equal(t, 2, stats.ActionsSkipped)
}

func TestRunDryRunHasNoSideEffects(t *testing.T) {
	now := time.Now()
	repo := healthyRepo("widgets", now)
	repo.Description = ""
	f := &fakeForge{
		repos: []forge.Repository{repo},
		issues: map[string][]forge.Issue{
			repo.FullName: {
				{ID: 11, Number: 1, Title: "Slow startup", Body: "Startup is slow on large projects.", HTMLURL: "https://example.com/1"},
			},
		},
	}
	b, tr := newTestBot(f, relaxedPolicy(), Options{Skills: []string{"javascript"}, MaxRepos: 10, MaxIssues: 5, DryRun: true})

	stats, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Comments)
	assert.Equal(t, 1, stats.IssuesOpened)
	assert.Empty(t, f.comments)
	assert.Empty(t, f.createdIssues)
	assert.Zero(t, tr.GenerateReport().Summary.TotalContributions)
}

func TestRunSearchFailureAborts(t *testing.T) {
	f := &fakeForge{searchErr: errors.New("api unavailable")}
	b, _ := newTestBot(f, relaxedPolicy(), Options{Skills: []string{"javascript"}, MaxRepos: 10, MaxIssues: 5})

	_, err := b.Run(context.Background())
	assert.Error(t, err)
}

func TestRunAgainstSimulatedForge(t *testing.T) {
	b, tr := newTestBot(forge.NewSimulated(), relaxedPolicy(),
		Options{Skills: []string{"javascript", "python"}, MaxRepos: 10, MaxIssues: 5})

	stats, err := b.Run(context.Background())
	require.NoError(t, err)

	// two fixture repositories, capped at three contributions each
	assert.Equal(t, 6, stats.Comments)
	assert.Equal(t, 6, tr.GenerateReport().Summary.TotalComments)
}

func TestSyncStatuses(t *testing.T) {
	now := time.Now()
	repo := healthyRepo("widgets", now)
	f := &fakeForge{
		issueStates: map[string]string{"octo/widgets#1": "closed", "octo/widgets#2": "open"},
		prStates:    map[string]string{"octo/widgets#7": "merged"},
	}
	b, tr := newTestBot(f, relaxedPolicy(), Options{})

	tr.TrackIssue(repo, forge.Issue{ID: 11, Number: 1, Title: "One"})
	tr.TrackIssue(repo, forge.Issue{ID: 12, Number: 2, Title: "Two"})
	tr.TrackPullRequest(repo, forge.PullRequest{ID: 13, Number: 7, Title: "Fix"})

	updated, err := b.SyncStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	report := tr.GenerateReport()
	assert.Equal(t, 1, report.Summary.ClosedIssues)
	assert.Equal(t, 1, report.Summary.AcceptedPRs)
	assert.InDelta(t, 66.67, report.Summary.SuccessRate, 0.01)
}

func TestSyncStatusesLookupFailureLeavesRecordOpen(t *testing.T) {
	now := time.Now()
	repo := healthyRepo("widgets", now)
	f := &fakeForge{issueStates: map[string]string{}}
	b, tr := newTestBot(f, relaxedPolicy(), Options{})

	tr.TrackIssue(repo, forge.Issue{ID: 11, Number: 1, Title: "One"})

	updated, err := b.SyncStatuses(context.Background())
	require.NoError(t, err)
	assert.Zero(t, updated)
	assert.Len(t, tr.OpenIssues(), 1)
}
