package skills

import (
	"strings"
	"testing"
)

func TestTopicsFor(t *testing.T) {
	tests := []struct {
		skill string
		want  string // a topic that must be present
	}{
		{"javascript", "frontend"},
		{"JavaScript", "frontend"}, // lookup is case-insensitive
		{"kubernetes", "k8s"},
		{"cobol", "cobol"}, // unknown skill falls back to itself
	}

	for _, tt := range tests {
		t.Run(tt.skill, func(t *testing.T) {
			topics := TopicsFor(tt.skill)
			found := false
			for _, topic := range topics {
				if topic == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("TopicsFor(%q) = %v, want it to contain %q", tt.skill, topics, tt.want)
			}
		})
	}
}

func TestBuildQuery(t *testing.T) {
	q := BuildQuery([]string{"javascript", "reactjs"}, DefaultCriteria())

	for _, part := range []string{"stars:10..1000", "pushed:>2026-01-01", "language:javascript", "topic:javascript"} {
		if !strings.Contains(q, part) {
			t.Errorf("query %q missing %q", q, part)
		}
	}
	if n := strings.Count(q, "topic:"); n != 3 {
		t.Errorf("expected 3 topic qualifiers, got %d in %q", n, q)
	}
}

func TestBuildQueryLanguageOverride(t *testing.T) {
	c := DefaultCriteria()
	c.Language = "go"
	q := BuildQuery([]string{"javascript"}, c)
	if !strings.Contains(q, "language:go") {
		t.Errorf("query %q missing language override", q)
	}
	if strings.Contains(q, "language:javascript") {
		t.Errorf("query %q should not infer language when overridden", q)
	}
}

func TestDominantLanguage(t *testing.T) {
	// javascript appears in javascript, reactjs and nodejs lists.
	if got := dominantLanguage([]string{"javascript", "reactjs", "nodejs", "python"}); got != "javascript" {
		t.Errorf("dominantLanguage = %q, want javascript", got)
	}
	if got := dominantLanguage([]string{"unknown-skill"}); got != "" {
		t.Errorf("dominantLanguage for unknown skills = %q, want empty", got)
	}
}
