// Package transcript is the sentence store: it materializes the ordered
// sentence sequence the analysis core consumes, from a JSON file, an xlsx
// export, or a URL. Ordering and field sanity are enforced here, at the
// boundary; the core packages trust what they are handed.
package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"hvac-call-insights/internal/logger"
	"hvac-call-insights/internal/types"
)

// Load reads a `{"sentences": [...]}` JSON file.
func Load(path string) ([]types.Sentence, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	var t types.Transcript
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	if err := Validate(t.Sentences); err != nil {
		return nil, err
	}
	return Normalize(t.Sentences), nil
}

// Normalize enforces the start-ascending ordering invariant the whole
// analysis relies on. Input that already honors it is returned as-is;
// unordered input is copied, stably sorted, and logged as a warning because
// it means the transcription source broke its contract.
func Normalize(sentences []types.Sentence) []types.Sentence {
	if sort.SliceIsSorted(sentences, func(i, j int) bool {
		return sentences[i].Start < sentences[j].Start
	}) {
		return sentences
	}
	logger.Component("transcript").Warn("sentences arrived out of order; re-sorting by start time")
	out := make([]types.Sentence, len(sentences))
	copy(out, sentences)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// Validate checks the per-sentence field contract: end after start, non-empty
// speaker and text, confidence in [0,1]. The core never re-validates, so a
// transcript that fails here is rejected outright.
func Validate(sentences []types.Sentence) error {
	for i, s := range sentences {
		switch {
		case s.End <= s.Start:
			return fmt.Errorf("sentence %d: end %d not after start %d", i, s.End, s.Start)
		case s.Speaker == "":
			return fmt.Errorf("sentence %d: missing speaker", i)
		case s.Text == "":
			return fmt.Errorf("sentence %d: missing text", i)
		case s.Confidence < 0 || s.Confidence > 1:
			return fmt.Errorf("sentence %d: confidence %v outside [0,1]", i, s.Confidence)
		}
	}
	return nil
}
