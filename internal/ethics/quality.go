package ethics

import (
	"regexp"
	"strings"

	"github.com/rahuljoshi07/contribot/internal/forge"
)

// Content length bounds for a contribution body.
const (
	minContentLength = 20
	maxContentLength = 2000
)

// Spam heuristics, checked in order. The repeated-character check is a
// direct scan because RE2 has no backreferences.
var (
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	commercialPattern = regexp.MustCompile(`(?i)\b(buy|sell|cheap|discount|offer|deal)\b`)
	ordinalPattern    = regexp.MustCompile(`(?i)\b(first|second|third|fourth|fifth)\b.*\b(first|second|third|fourth|fifth)\b`)
)

// languageTerms maps a repository's primary language to keywords at least
// one of which must appear in a contribution for it to count as relevant.
// Languages not listed here are not relevance-checked.
var languageTerms = map[string][]string{
	"JavaScript": {"js", "javascript", "node", "react", "vue", "angular"},
	"Python":     {"python", "py", "django", "flask", "pandas", "numpy"},
	"Java":       {"java", "spring", "maven", "gradle", "jvm"},
	"C++":        {"cpp", "c++", "cmake", "gcc", "clang"},
	"Go":         {"go", "golang", "goroutine", "gin", "fiber"},
}

// ValidateContribution judges whether content is substantial enough, free
// of spam patterns, and relevant to the target repository's language.
func (e *Engine) ValidateContribution(kind ActionKind, content string, repo forge.Repository) Verdict {
	if len(content) < minContentLength {
		return Verdict{Reason: "contribution too short (lacks substance)"}
	}
	if len(content) > maxContentLength {
		return Verdict{Reason: "contribution too long (may be spam)"}
	}

	if hasRepeatedRun(content, 11) ||
		urlPattern.MatchString(content) ||
		commercialPattern.MatchString(content) ||
		ordinalPattern.MatchString(content) {
		return Verdict{Reason: "content appears to be spam"}
	}

	if terms, ok := languageTerms[repo.Language]; ok && len(terms) > 0 {
		lower := strings.ToLower(content)
		relevant := false
		for _, term := range terms {
			if strings.Contains(lower, term) {
				relevant = true
				break
			}
		}
		if !relevant {
			return Verdict{Reason: "content not relevant to repository language"}
		}
	}

	return Verdict{OK: true}
}

// hasRepeatedRun reports whether s contains n or more consecutive
// occurrences of the same rune.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run >= n {
			return true
		}
	}
	return false
}
