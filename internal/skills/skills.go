// Package skills maps a skill profile onto GitHub repository search
// queries, topics and languages.
package skills

import (
	"fmt"
	"sort"
	"strings"
)

// Skill describes how one technology maps onto repository search.
type Skill struct {
	SearchQueries []string
	Languages     []string
	Topics        []string
}

// mapping covers the technologies the agent's default profile targets.
// Unknown skills fall back to using the skill name itself as query/topic.
var mapping = map[string]Skill{
	"javascript": {
		SearchQueries: []string{"javascript", "js", "web-development"},
		Languages:     []string{"javascript"},
		Topics:        []string{"javascript", "js", "web", "frontend"},
	},
	"typescript": {
		SearchQueries: []string{"typescript", "ts", "type-safety"},
		Languages:     []string{"typescript"},
		Topics:        []string{"typescript", "javascript", "type-safety"},
	},
	"python": {
		SearchQueries: []string{"python", "data-science", "machine-learning"},
		Languages:     []string{"python"},
		Topics:        []string{"python", "data-science", "ml", "automation"},
	},
	"go": {
		SearchQueries: []string{"go", "golang", "concurrency"},
		Languages:     []string{"go"},
		Topics:        []string{"go", "golang", "concurrency"},
	},
	"java": {
		SearchQueries: []string{"java", "spring", "enterprise"},
		Languages:     []string{"java"},
		Topics:        []string{"java", "spring", "enterprise"},
	},
	"rust": {
		SearchQueries: []string{"rust", "systems-programming", "memory-safety"},
		Languages:     []string{"rust"},
		Topics:        []string{"rust", "systems", "memory-safety"},
	},
	"reactjs": {
		SearchQueries: []string{"react", "reactjs", "frontend"},
		Languages:     []string{"javascript", "typescript"},
		Topics:        []string{"react", "reactjs", "frontend", "ui"},
	},
	"react": {
		SearchQueries: []string{"react", "reactjs", "frontend"},
		Languages:     []string{"javascript", "typescript"},
		Topics:        []string{"react", "reactjs", "frontend", "ui"},
	},
	"nodejs": {
		SearchQueries: []string{"nodejs", "node", "backend"},
		Languages:     []string{"javascript", "typescript"},
		Topics:        []string{"nodejs", "node", "backend"},
	},
	"docker": {
		SearchQueries: []string{"docker", "dockerfile", "containerization"},
		Languages:     []string{"dockerfile"},
		Topics:        []string{"docker", "containers", "containerization"},
	},
	"kubernetes": {
		SearchQueries: []string{"kubernetes", "k8s", "container-orchestration"},
		Languages:     []string{"yaml"},
		Topics:        []string{"kubernetes", "k8s", "orchestration", "devops"},
	},
	"terraform": {
		SearchQueries: []string{"terraform", "infrastructure-as-code", "iac"},
		Languages:     []string{"hcl"},
		Topics:        []string{"terraform", "infrastructure", "iac"},
	},
}

// TopicsFor returns the topics associated with skill, falling back to the
// skill name itself when the skill is unknown.
func TopicsFor(skill string) []string {
	if s, ok := mapping[strings.ToLower(skill)]; ok {
		return s.Topics
	}
	return []string{strings.ToLower(skill)}
}

// LanguagesFor returns the languages associated with skill, empty when the
// skill is unknown.
func LanguagesFor(skill string) []string {
	if s, ok := mapping[strings.ToLower(skill)]; ok {
		return s.Languages
	}
	return nil
}

// QueryCriteria tunes the generated search query.
type QueryCriteria struct {
	MinStars  int
	MaxStars  int
	Language  string // overrides the language inferred from skills
	PushedCut string // e.g. ">2026-01-01"
	MaxTopics int
}

// DefaultCriteria matches the agent's stock search window.
func DefaultCriteria() QueryCriteria {
	return QueryCriteria{
		MinStars:  10,
		MaxStars:  1000,
		PushedCut: ">2026-01-01",
		MaxTopics: 3,
	}
}

// BuildQuery assembles a GitHub search expression for the given skills:
// a star range, a push-date cutoff, the most common language across the
// skills, and up to MaxTopics topic qualifiers.
func BuildQuery(skillNames []string, c QueryCriteria) string {
	parts := []string{fmt.Sprintf("stars:%d..%d", c.MinStars, c.MaxStars)}
	if c.PushedCut != "" {
		parts = append(parts, "pushed:"+c.PushedCut)
	}

	if lang := c.Language; lang != "" {
		parts = append(parts, "language:"+lang)
	} else if lang := dominantLanguage(skillNames); lang != "" {
		parts = append(parts, "language:"+lang)
	}

	var topics []string
	for _, name := range skillNames {
		topics = append(topics, TopicsFor(name)...)
	}
	if c.MaxTopics > 0 && len(topics) > c.MaxTopics {
		topics = topics[:c.MaxTopics]
	}
	for _, topic := range topics {
		parts = append(parts, "topic:"+topic)
	}

	return strings.Join(parts, " ")
}

// dominantLanguage returns the language appearing most often across the
// skills' language lists, ties broken alphabetically.
func dominantLanguage(skillNames []string) string {
	counts := make(map[string]int)
	for _, name := range skillNames {
		for _, lang := range LanguagesFor(name) {
			counts[lang]++
		}
	}
	if len(counts) == 0 {
		return ""
	}
	langs := make([]string, 0, len(counts))
	for lang := range counts {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		if counts[langs[i]] != counts[langs[j]] {
			return counts[langs[i]] > counts[langs[j]]
		}
		return langs[i] < langs[j]
	})
	return langs[0]
}
