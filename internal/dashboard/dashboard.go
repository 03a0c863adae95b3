// Package dashboard renders a profile README from the contribution report.
package dashboard

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/rahuljoshi07/contribot/internal/tracker"
)

// Renderer writes the profile README into outputDir.
type Renderer struct {
	outputDir string
	tmplPath  string
}

// NewRenderer returns a Renderer that writes to outputDir. When tmplPath
// is empty the built-in template is used.
func NewRenderer(outputDir, tmplPath string) *Renderer {
	return &Renderer{outputDir: outputDir, tmplPath: tmplPath}
}

type readmeData struct {
	Username           string
	TotalContributions int
	TotalIssues        int
	TotalPRs           int
	TotalComments      int
	SuccessRate        float64
	TopRepositories    string
	RecentActivity     string
}

// Render produces README.md from the report and returns its path.
func (r *Renderer) Render(username string, report *tracker.Report) (string, error) {
	tmplStr := defaultTemplate
	if r.tmplPath != "" {
		raw, err := os.ReadFile(r.tmplPath)
		if err != nil {
			return "", fmt.Errorf("reading template %s: %w", r.tmplPath, err)
		}
		tmplStr = string(raw)
	}

	tmpl, err := template.New("readme").Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing readme template: %w", err)
	}

	data := readmeData{
		Username:           username,
		TotalContributions: report.Summary.TotalContributions,
		TotalIssues:        report.Summary.TotalIssues,
		TotalPRs:           report.Summary.TotalPRs,
		TotalComments:      report.Summary.TotalComments,
		SuccessRate:        report.Summary.SuccessRate,
		TopRepositories:    formatTopRepositories(report.TopRepositories),
		RecentActivity:     formatRecentActivity(report.RecentActivity.Contributions),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing readme template: %w", err)
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", r.outputDir, err)
	}

	path := filepath.Join(r.outputDir, "README.md")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}

	slog.Info("wrote profile readme", "path", path)
	return path, nil
}

func formatTopRepositories(repos []tracker.RepoCount) string {
	if len(repos) == 0 {
		return "_No contributions yet._"
	}
	var b strings.Builder
	for i, rc := range repos {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- **%s** (%d contributions)", rc.Repository, rc.Contributions)
	}
	return b.String()
}

func formatRecentActivity(entries []tracker.Entry) string {
	if len(entries) == 0 {
		return "_No recent activity._"
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		title := e.Title
		if title == "" {
			title = "Contribution"
		}
		fmt.Fprintf(&b, "- **%s**: [%s](%s)", e.Kind, title, e.URL)
	}
	return b.String()
}
