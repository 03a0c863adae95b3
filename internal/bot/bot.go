// Package bot orchestrates one contribution pass: discover repositories,
// filter them through the ethics engine, analyze open issues, act, and
// record everything in the ledger.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rahuljoshi07/contribot/internal/advisor"
	"github.com/rahuljoshi07/contribot/internal/ethics"
	"github.com/rahuljoshi07/contribot/internal/forge"
	"github.com/rahuljoshi07/contribot/internal/ranking"
	"github.com/rahuljoshi07/contribot/internal/skills"
	"github.com/rahuljoshi07/contribot/internal/tracker"
)

// Forge is the subset of the GitHub gateway the bot needs. Both the real
// client and the simulated forge satisfy it.
type Forge interface {
	SearchRepositories(ctx context.Context, query string, limit int) ([]forge.Repository, error)
	ListOpenIssues(ctx context.Context, repo forge.Repository, limit int) ([]forge.Issue, error)
	CreateComment(ctx context.Context, repo forge.Repository, issue forge.Issue, body string) (forge.Comment, error)
	CreateIssue(ctx context.Context, repo forge.Repository, title, body string) (forge.Issue, error)
	IssueState(ctx context.Context, repoFullName string, number int) (string, error)
	PullRequestState(ctx context.Context, repoFullName string, number int) (string, error)
	SampleResponsiveness(ctx context.Context, repo *forge.Repository) error
}

// Options tunes one contribution pass.
type Options struct {
	Skills    []string
	MaxRepos  int
	MaxIssues int
	Delay     time.Duration
	DryRun    bool
}

// Bot runs contribution passes against a forge, consulting the ethics
// engine before every action and recording outcomes in the tracker.
type Bot struct {
	forge   Forge
	engine  *ethics.Engine
	tracker *tracker.Tracker
	opts    Options

	now func() time.Time
}

// New wires a Bot from its collaborators.
func New(f Forge, e *ethics.Engine, t *tracker.Tracker, opts Options) *Bot {
	return &Bot{
		forge:   f,
		engine:  e,
		tracker: t,
		opts:    opts,
		now:     time.Now,
	}
}

// RunStats summarizes what one pass did.
type RunStats struct {
	ReposConsidered int
	ReposSkipped    int
	Comments        int
	IssuesOpened    int
	ActionsSkipped  int
}

// Run performs one sequential contribution pass. Individual failures are
// logged and skipped; only search failure or context cancellation aborts
// the pass. The pass also ends early once the daily budget is exhausted.
func (b *Bot) Run(ctx context.Context) (RunStats, error) {
	var stats RunStats

	query := skills.BuildQuery(b.opts.Skills, skills.DefaultCriteria())
	slog.Info("searching repositories", "query", query)

	repos, err := b.forge.SearchRepositories(ctx, query, b.opts.MaxRepos)
	if err != nil {
		return stats, fmt.Errorf("searching repositories: %w", err)
	}
	for i := range repos {
		if err := b.forge.SampleResponsiveness(ctx, &repos[i]); err != nil {
			slog.Warn("responsiveness sample failed", "repo", repos[i].FullName, "error", err)
		}
	}

	for _, scored := range ranking.Rank(repos, b.now()) {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		repo := scored.Repo
		stats.ReposConsidered++

		if v := b.engine.RepositorySuitable(repo); !v.OK {
			slog.Info("skipping repository", "repo", repo.FullName, "reason", v.Reason)
			stats.ReposSkipped++
			continue
		}
		slog.Info("considering repository", "repo", repo.FullName, "score", scored.Score)

		done, err := b.contributeTo(ctx, repo, &stats)
		if err != nil {
			return stats, err
		}
		if done {
			break
		}
	}

	b.engine.CleanupOldLogs()
	slog.Info("pass complete",
		"repos", stats.ReposConsidered,
		"comments", stats.Comments,
		"issues", stats.IssuesOpened,
		"skipped", stats.ActionsSkipped)
	return stats, nil
}

// contributeTo works through one repository. It returns done=true when the
// daily budget ran out and the whole pass should stop.
func (b *Bot) contributeTo(ctx context.Context, repo forge.Repository, stats *RunStats) (bool, error) {
	if done, err := b.suggestDescription(ctx, repo, stats); done || err != nil {
		return done, err
	}

	issues, err := b.forge.ListOpenIssues(ctx, repo, b.opts.MaxIssues)
	if err != nil {
		slog.Warn("listing issues failed", "repo", repo.FullName, "error", err)
		return false, nil
	}

	for _, issue := range issues {
		advice := advisor.Analyze(issue.Body, repo.Language)
		if !advice.ShouldComment {
			continue
		}
		if v := b.engine.ValidateContribution(ethics.ActionComment, advice.Comment, repo); !v.OK {
			slog.Info("comment rejected", "repo", repo.FullName, "issue", issue.Number, "reason", v.Reason)
			stats.ActionsSkipped++
			continue
		}

		decision := b.engine.CheckAction(ethics.ActionComment, repo.FullName)
		if !decision.Allowed {
			if b.engine.Summary().Remaining.Total == 0 {
				slog.Info("daily budget exhausted, ending pass")
				return true, nil
			}
			slog.Info("action denied", "repo", repo.FullName, "reason", decision.Reason)
			stats.ActionsSkipped++
			continue
		}

		if b.opts.DryRun {
			slog.Info("dry run: would comment", "repo", repo.FullName, "issue", issue.Number)
			stats.Comments++
			continue
		}

		comment, err := b.forge.CreateComment(ctx, repo, issue, advice.Comment)
		if err != nil {
			slog.Warn("creating comment failed", "repo", repo.FullName, "issue", issue.Number, "error", err)
			continue
		}
		b.engine.RecordAction(ethics.ActionComment, repo.FullName)
		b.tracker.TrackComment(repo, comment)
		stats.Comments++

		if err := b.pause(ctx); err != nil {
			return false, err
		}
	}
	return false, nil
}

// suggestDescription opens a suggestion issue on repositories that have no
// description, gated by the same ethics checks as any other action.
func (b *Bot) suggestDescription(ctx context.Context, repo forge.Repository, stats *RunStats) (bool, error) {
	if strings.TrimSpace(repo.Description) != "" {
		return false, nil
	}

	title := "Suggestion: add a project description"
	body := "This project has no description yet. Adding a short summary of what it does and how to get started would make it easier for new contributors to find and use."
	if repo.Language != "" {
		body = fmt.Sprintf("This %s project has no description yet. Adding a short summary of what it does and how to get started would make it easier for new contributors to find and use.", repo.Language)
	}

	if v := b.engine.ValidateContribution(ethics.ActionIssue, body, repo); !v.OK {
		slog.Info("suggestion rejected", "repo", repo.FullName, "reason", v.Reason)
		stats.ActionsSkipped++
		return false, nil
	}

	decision := b.engine.CheckAction(ethics.ActionIssue, repo.FullName)
	if !decision.Allowed {
		if b.engine.Summary().Remaining.Total == 0 {
			slog.Info("daily budget exhausted, ending pass")
			return true, nil
		}
		slog.Info("action denied", "repo", repo.FullName, "reason", decision.Reason)
		stats.ActionsSkipped++
		return false, nil
	}

	if b.opts.DryRun {
		slog.Info("dry run: would open issue", "repo", repo.FullName, "title", title)
		stats.IssuesOpened++
		return false, nil
	}

	issue, err := b.forge.CreateIssue(ctx, repo, title, body)
	if err != nil {
		slog.Warn("creating issue failed", "repo", repo.FullName, "error", err)
		return false, nil
	}
	b.engine.RecordAction(ethics.ActionIssue, repo.FullName)
	b.tracker.TrackIssue(repo, issue)
	stats.IssuesOpened++

	return false, b.pause(ctx)
}

// pause waits out the pacing delay, or returns early when ctx is done.
func (b *Bot) pause(ctx context.Context) error {
	if b.opts.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(b.opts.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
