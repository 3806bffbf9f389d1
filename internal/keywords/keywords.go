// Package keywords counts mentions of a fixed vocabulary across a transcript
// and exposes highlight offsets for the rendering layer. Matching is literal
// case-insensitive substring containment, nothing semantic.
package keywords

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"hvac-call-insights/internal/types"
)

// Mention records one sentence that contained a keyword. A sentence counts at
// most once per keyword no matter how often the phrase repeats inside it.
type Mention struct {
	SentenceIndex int    `json:"sentence_index"`
	TimeMs        int64  `json:"time_ms"`
	Speaker       string `json:"speaker"`
	Text          string `json:"text"`
	Spans         []Span `json:"spans,omitempty"`
}

// Tally is the dashboard count for one vocabulary entry.
type Tally struct {
	Keyword  types.KeywordDef `json:"keyword"`
	Count    int              `json:"count"`
	Mentions []Mention        `json:"mentions,omitempty"`
}

// Count scans the transcript against the vocabulary. One sentence can count
// toward several distinct keywords. Keywords with no mentions still appear
// with a zero tally so the dashboard can render the full vocabulary.
func Count(sentences []types.Sentence, vocab []types.KeywordDef) map[string]Tally {
	out := make(map[string]Tally, len(vocab))
	for _, kw := range vocab {
		out[kw.Phrase] = Tally{Keyword: kw}
	}
	for i, s := range sentences {
		lower := strings.ToLower(s.Text)
		for _, kw := range vocab {
			if kw.Phrase == "" || !strings.Contains(lower, kw.Phrase) {
				continue
			}
			t := out[kw.Phrase]
			t.Count++
			t.Mentions = append(t.Mentions, Mention{
				SentenceIndex: i,
				TimeMs:        s.Start,
				Speaker:       s.Speaker,
				Text:          s.Text,
				Spans:         Spans(s.Text, []types.KeywordDef{kw}),
			})
			out[kw.Phrase] = t
		}
	}
	return out
}

// Span is a highlight range into a sentence's text, in bytes. The renderer
// decides how to style it; no markup is built here.
type Span struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Keyword string `json:"keyword"`
}

// Spans finds every occurrence of every vocabulary phrase in text, sorted by
// start offset. Offsets are byte positions in the original text: lowering can
// change a rune's byte width (the Kelvin sign lowers to a one-byte "k"), so
// hits in the lowered copy are mapped back through an offset table.
func Spans(text string, vocab []types.KeywordDef) []Span {
	lower, offs := lowerWithOffsets(text)
	var spans []Span
	for _, kw := range vocab {
		if kw.Phrase == "" {
			continue
		}
		for from := 0; ; {
			i := strings.Index(lower[from:], kw.Phrase)
			if i < 0 {
				break
			}
			hit := from + i
			spans = append(spans, Span{Start: offs[hit], End: offs[hit+len(kw.Phrase)], Keyword: kw.Phrase})
			from = hit + len(kw.Phrase)
		}
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
	return spans
}

// lowerWithOffsets lowercases text rune by rune (the same per-rune mapping
// strings.ToLower applies) and records, for each byte of the lowered string,
// the byte offset of the originating rune in text. The table carries one
// extra entry so a hit's end offset can be mapped too.
func lowerWithOffsets(text string) (string, []int) {
	var b strings.Builder
	b.Grow(len(text))
	offs := make([]int, 0, len(text)+1)
	for i, r := range text {
		lr := unicode.ToLower(r)
		for j := 0; j < utf8.RuneLen(lr); j++ {
			offs = append(offs, i)
		}
		b.WriteRune(lr)
	}
	offs = append(offs, len(text))
	return b.String(), offs
}
