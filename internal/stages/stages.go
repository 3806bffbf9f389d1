// Package stages maps percentage-based stage definitions onto the absolute
// timeline of a call and partitions the transcript into per-stage subsets.
package stages

import (
	"math"

	"hvac-call-insights/internal/types"
)

// Bounds derives call start/end/duration from the first and last sentence.
// An empty transcript yields the zero bounds, not an error. Ordering is
// trusted as-is: the loader sorts, this package does not.
func Bounds(sentences []types.Sentence) types.CallBounds {
	if len(sentences) == 0 {
		return types.CallBounds{}
	}
	start := sentences[0].Start
	end := sentences[len(sentences)-1].End
	return types.CallBounds{Start: start, End: end, Duration: end - start}
}

// GeneratedStage is a stage definition with absolute call-relative times
// attached. Timed is false when the transcript was empty and no times could
// be derived; callers must treat that as "no data yet", not a zero-length
// call.
type GeneratedStage struct {
	types.StageDefinition
	StartTime int64 `json:"start_time"`
	EndTime   int64 `json:"end_time"`
	Timed     bool  `json:"timed"`
}

// Generate converts the ordered stage definitions into absolute timestamp
// ranges over the call's bounds. Pure: same inputs, same output.
func Generate(defs []types.StageDefinition, sentences []types.Sentence) []GeneratedStage {
	out := make([]GeneratedStage, len(defs))
	if len(sentences) == 0 {
		for i, d := range defs {
			out[i] = GeneratedStage{StageDefinition: d}
		}
		return out
	}
	b := Bounds(sentences)
	for i, d := range defs {
		out[i] = GeneratedStage{
			StageDefinition: d,
			StartTime:       absTime(b, d.StartPercent),
			EndTime:         absTime(b, d.EndPercent),
			Timed:           true,
		}
	}
	return out
}

func absTime(b types.CallBounds, pct float64) int64 {
	return int64(math.Round(float64(b.Start) + float64(b.Duration)*pct/100))
}

// StageGroup pairs a generated stage with the transcript subset it owns.
type StageGroup struct {
	Stage     GeneratedStage          `json:"stage"`
	Sentences []types.IndexedSentence `json:"sentences"`
}

// Partition assigns every sentence to the first stage (in list order) whose
// interval contains its start time. Intervals are half-open
// [StartTime, EndTime), except the last stage which is closed on both ends so
// a sentence starting exactly at call end is not dropped. Stages that match
// no sentence still appear in the result with an empty subset; an empty
// transcript produces an empty mapping.
func Partition(generated []GeneratedStage, sentences []types.Sentence) map[string]StageGroup {
	groups := map[string]StageGroup{}
	if len(sentences) == 0 {
		return groups
	}
	for _, st := range generated {
		groups[st.ID] = StageGroup{Stage: st}
	}
	last := len(generated) - 1
	for i, s := range sentences {
		for j, st := range generated {
			if !st.Timed {
				continue
			}
			if s.Start < st.StartTime || s.Start > st.EndTime {
				continue
			}
			if s.Start == st.EndTime && j != last {
				continue
			}
			g := groups[st.ID]
			g.Sentences = append(g.Sentences, types.IndexedSentence{Index: i, Sentence: s})
			groups[st.ID] = g
			break
		}
	}
	return groups
}
