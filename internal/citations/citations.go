// Package citations resolves authored citation patterns against transcript
// sentences to find supporting evidence for strength/gap findings.
package citations

import (
	"sort"
	"strings"

	"hvac-call-insights/internal/types"
)

// Match links a sentence to the first citation pattern that matched it.
type Match struct {
	SentenceIndex  int            `json:"sentence_index"`
	Sentence       types.Sentence `json:"sentence"`
	MatchedPattern string         `json:"matched_pattern"`
}

// Resolve tests each sentence against the patterns in list order and records
// the first case-insensitive substring hit; a sentence contributes at most one
// match even when several patterns apply. Results come back sorted by sentence
// index ascending regardless of input order, and a sentence index is never
// reported twice even if the caller passes overlapping subsets. No match for
// any pattern is a legitimate empty result, not an error.
func Resolve(sentences []types.IndexedSentence, patterns []string) []Match {
	matches := []Match{}
	if len(sentences) == 0 || len(patterns) == 0 {
		return matches
	}
	seen := make(map[int]bool, len(sentences))
	for _, s := range sentences {
		if seen[s.Index] {
			continue
		}
		lower := strings.ToLower(s.Text)
		for _, p := range patterns {
			if p == "" || !strings.Contains(lower, strings.ToLower(p)) {
				continue
			}
			matches = append(matches, Match{
				SentenceIndex:  s.Index,
				Sentence:       s.Sentence,
				MatchedPattern: p,
			})
			seen[s.Index] = true
			break
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].SentenceIndex < matches[j].SentenceIndex
	})
	return matches
}
