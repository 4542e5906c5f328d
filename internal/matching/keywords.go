package matching

import (
	"strings"
	"unicode/utf8"

	"github.com/spigell/jobfit/internal/jobs"
	"github.com/spigell/jobfit/internal/resume"
)

const (
	minKeywordLen   = 4
	pointsPerHit    = 5
	keywordScoreMin = 50
	keywordScoreMax = 95
)

// Keywords builds the lower-cased keyword set of a resume: skill names plus
// words of at least four characters from experience titles and descriptions.
// Order follows first appearance.
func Keywords(r resume.Resume) []string {
	seen := make(map[string]struct{})
	keywords := make([]string, 0)

	add := func(word string) {
		if word == "" {
			return
		}
		if _, ok := seen[word]; ok {
			return
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}

	for _, skill := range r.Skills {
		add(strings.ToLower(strings.TrimSpace(skill.Name)))
	}

	for _, exp := range r.Experience {
		for _, text := range []string{exp.Title, exp.Description} {
			for _, word := range strings.Fields(strings.ToLower(text)) {
				if utf8.RuneCountInString(word) >= minKeywordLen {
					add(word)
				}
			}
		}
	}

	return keywords
}

// KeywordScore counts keywords found as substrings of the job text and maps
// the count into [50, 95].
func KeywordScore(job jobs.Job, keywords []string) int {
	text := strings.ToLower(job.Text())

	hits := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			hits++
		}
	}

	return max(min(hits*pointsPerHit, keywordScoreMax), keywordScoreMin)
}
