package bot

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rahuljoshi07/contribot/internal/tracker"
)

// syncConcurrency bounds concurrent status lookups against the forge.
const syncConcurrency = 5

// SyncStatuses queries the forge for the current state of every tracked
// open issue and pull request and applies closed and merged transitions.
// It returns how many records changed state. Lookup failures are logged
// and the record is left untouched.
func (b *Bot) SyncStatuses(ctx context.Context) (int, error) {
	var (
		mu      sync.Mutex
		updated int
	)
	apply := func(id int64, kind tracker.Kind, status tracker.Status) {
		mu.Lock()
		defer mu.Unlock()
		if b.tracker.UpdateStatus(id, kind, status) {
			updated++
		}
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(syncConcurrency)

	for _, rec := range b.tracker.OpenIssues() {
		rec := rec
		g.Go(func() error {
			state, err := b.forge.IssueState(gCtx, rec.Repository, rec.Number)
			if err != nil {
				slog.Warn("issue state lookup failed", "repo", rec.Repository, "number", rec.Number, "error", err)
				return nil
			}
			if state == "closed" {
				apply(rec.ID, tracker.KindIssue, tracker.StatusClosed)
			}
			return nil
		})
	}

	for _, rec := range b.tracker.OpenPullRequests() {
		rec := rec
		g.Go(func() error {
			state, err := b.forge.PullRequestState(gCtx, rec.Repository, rec.Number)
			if err != nil {
				slog.Warn("pull request state lookup failed", "repo", rec.Repository, "number", rec.Number, "error", err)
				return nil
			}
			switch state {
			case "merged":
				apply(rec.ID, tracker.KindPullRequest, tracker.StatusMerged)
			case "closed":
				apply(rec.ID, tracker.KindPullRequest, tracker.StatusClosed)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return updated, err
	}
	slog.Info("status sync complete", "updated", updated)
	return updated, nil
}
