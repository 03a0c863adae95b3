package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/rahuljoshi07/contribot/internal/bot"
	"github.com/rahuljoshi07/contribot/internal/config"
	"github.com/rahuljoshi07/contribot/internal/ethics"
	"github.com/rahuljoshi07/contribot/internal/forge"
	"github.com/rahuljoshi07/contribot/internal/storage"
	"github.com/rahuljoshi07/contribot/internal/tracker"
)

// Data file names inside the configured data directory.
const (
	activityLogFile   = "activity_log.json"
	contributionsFile = "contributions.json"
)

// deps bundles the collaborators every command needs.
type deps struct {
	cfg     *config.Config
	engine  *ethics.Engine
	tracker *tracker.Tracker
	forge   bot.Forge
}

func buildDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	engine := ethics.New(cfg.Policy(), storage.NewFileStore(filepath.Join(cfg.DataDir, activityLogFile)))
	tr := tracker.New(cfg.Username, storage.NewFileStore(filepath.Join(cfg.DataDir, contributionsFile)))

	var f bot.Forge
	if cfg.Simulation() {
		slog.Warn("no GITHUB_TOKEN configured, running in simulation mode")
		f = forge.NewSimulated()
	} else {
		client, err := forge.NewClient(cfg.GitHubToken)
		if err != nil {
			return nil, fmt.Errorf("creating github client: %w", err)
		}
		f = client
	}

	return &deps{cfg: cfg, engine: engine, tracker: tr, forge: f}, nil
}

func (d *deps) bot(dryRun bool) *bot.Bot {
	return bot.New(d.forge, d.engine, d.tracker, bot.Options{
		Skills:    d.cfg.Skills,
		MaxRepos:  d.cfg.MaxRepos,
		MaxIssues: d.cfg.MaxIssues,
		Delay:     d.cfg.ContributionDelay,
		DryRun:    dryRun,
	})
}
