// Package config holds the agent's runtime configuration, loaded from the
// environment with sensible defaults.
package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/rahuljoshi07/contribot/internal/ethics"
)

var validUsername = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,37}[a-zA-Z0-9])?$`)

// simulatedUsername stands in for the real account when the agent runs
// without a token.
const simulatedUsername = "mock-user"

// Config holds all runtime configuration for contribot.
type Config struct {
	// GitHubToken authenticates API calls. When empty the agent runs in
	// simulation mode against a fixture forge.
	GitHubToken string `envconfig:"GITHUB_TOKEN"`

	// Username is the account contributions are attributed to.
	Username string `envconfig:"GITHUB_USERNAME"`

	// BotName signs generated content where a display name is needed.
	BotName string `envconfig:"BOT_NAME" default:"GitHub Contribution Bot"`

	// Skills drives repository discovery (comma separated).
	Skills []string `envconfig:"SKILLS" default:"javascript,python,react,nodejs"`

	// MaxRepos bounds how many repositories one search pass considers.
	MaxRepos int `envconfig:"MAX_REPOS_PER_SEARCH" default:"10"`

	// MaxIssues bounds how many open issues per repository are inspected.
	MaxIssues int `envconfig:"MAX_ISSUES_PER_REPO" default:"5"`

	// ContributionDelay is the pacing pause between external actions.
	ContributionDelay time.Duration `envconfig:"CONTRIBUTION_DELAY" default:"5s"`

	// DataDir is where the activity log and ledger JSON documents live.
	DataDir string `envconfig:"DATA_DIR" default:"./data"`

	// Rate limit quota overrides.
	IssuesPerHour    int           `envconfig:"ISSUES_PER_HOUR" default:"5"`
	PRsPerHour       int           `envconfig:"PRS_PER_HOUR" default:"3"`
	CommentsPerHour  int           `envconfig:"COMMENTS_PER_HOUR" default:"10"`
	TotalPerDay      int           `envconfig:"TOTAL_PER_DAY" default:"50"`
	Cooldown         time.Duration `envconfig:"COOLDOWN_PERIOD" default:"5m"`
	MaxPerRepoPerDay int           `envconfig:"MAX_PER_REPO_PER_DAY" default:"3"`

	// DryRun performs every check but no external side effects.
	// Set from the command line, not the environment.
	DryRun bool `ignored:"true"`
}

// Load reads the configuration from the environment. A missing token is
// not an error: the agent degrades to simulation mode.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if c.Simulation() && c.Username == "" {
		c.Username = simulatedUsername
	}
	return &c, nil
}

// Simulation reports whether the agent runs without real API access.
func (c *Config) Simulation() bool {
	return c.GitHubToken == ""
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Username == "" {
		return fmt.Errorf("GITHUB_USERNAME is required when a token is configured")
	}
	if !validUsername.MatchString(c.Username) {
		return fmt.Errorf("invalid github username %q", c.Username)
	}
	if len(c.Skills) == 0 {
		return fmt.Errorf("at least one skill is required")
	}
	if c.MaxRepos < 1 {
		return fmt.Errorf("MAX_REPOS_PER_SEARCH must be at least 1")
	}
	if c.MaxIssues < 1 {
		return fmt.Errorf("MAX_ISSUES_PER_REPO must be at least 1")
	}
	if c.ContributionDelay < 0 {
		return fmt.Errorf("CONTRIBUTION_DELAY must not be negative")
	}
	if c.TotalPerDay < 1 {
		return fmt.Errorf("TOTAL_PER_DAY must be at least 1")
	}
	return nil
}

// Policy maps the configured quotas onto the ethics engine policy.
func (c *Config) Policy() ethics.Policy {
	return ethics.Policy{
		IssuesPerHour:    c.IssuesPerHour,
		PRsPerHour:       c.PRsPerHour,
		CommentsPerHour:  c.CommentsPerHour,
		TotalPerDay:      c.TotalPerDay,
		Cooldown:         c.Cooldown,
		MaxPerRepoPerDay: c.MaxPerRepoPerDay,
	}
}
